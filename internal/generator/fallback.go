package generator

import (
	"fmt"

	"github.com/comigor/debatemate/internal/debate"
)

// Canned replies used when the model call fails. Two per stance; %s is the
// debate topic.
var fallbackResponses = map[debate.Stance][]string{
	debate.StanceFor: {
		"I strongly support the position on %s. There are numerous compelling reasons why this stance is valid. First, considering the evidence available, we can see clear benefits. Second, historical precedents show positive outcomes when this approach is taken. What specific aspects would you like to challenge?",
		"As a proponent of this position on %s, I believe the advantages are clear. Research consistently shows positive outcomes, and experts in the field generally agree on its merits. I'd be interested to hear your counterarguments so we can explore this topic further.",
	},
	debate.StanceAgainst: {
		"I must disagree with the position on %s. The evidence suggests several significant problems with this approach. First, there are practical concerns about implementation. Second, there are ethical considerations that cannot be overlooked. What makes you support this position?",
		"I find myself strongly opposed to this stance on %s. Critical analysis reveals fundamental flaws in the reasoning, and the potential negative consequences outweigh any benefits. I'm curious about what aspects of this position you find compelling?",
	},
	debate.StanceNeutral: {
		"That's an interesting perspective on %s. While there are valid points in your argument, we should also consider alternative viewpoints. Have you thought about the counterarguments? There are compelling points on both sides of this debate.",
		"I see merit in some aspects of your position on %s, but I also recognize valid counterpoints. A balanced analysis requires us to consider multiple perspectives. What do you think about the opposing arguments?",
	},
}

func (g *Generator) fallback(topic string, stance debate.Stance) string {
	bank, ok := fallbackResponses[stance]
	if !ok {
		bank = fallbackResponses[debate.StanceNeutral]
	}

	g.mu.Lock()
	i := g.rng.Intn(len(bank))
	g.mu.Unlock()

	return fmt.Sprintf(bank[i], topic)
}
