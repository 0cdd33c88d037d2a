package generator

import (
	"fmt"

	"github.com/comigor/debatemate/internal/debate"
)

func stanceInstruction(topic string, stance debate.Stance) string {
	prompt := fmt.Sprintf("You are a virtual debate partner discussing the topic: %q. ", topic)

	switch stance {
	case debate.StanceFor:
		prompt += "You should argue strongly FOR this position with compelling arguments, evidence, and persuasive rhetoric. Challenge the user's opposing viewpoints respectfully but firmly."
	case debate.StanceAgainst:
		prompt += "You should argue strongly AGAINST this position with compelling arguments, evidence, and persuasive rhetoric. Challenge the user's supporting viewpoints respectfully but firmly."
	default:
		prompt += "You should play devil's advocate, challenging the user's arguments regardless of which side they take. Provide balanced perspectives and help them strengthen their reasoning."
	}
	return prompt
}
