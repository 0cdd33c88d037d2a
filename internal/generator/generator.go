// Package generator produces the AI side of a debate turn. It calls an
// OpenAI-compatible chat completion endpoint and falls back to canned
// per-stance replies when the call fails, so a debate never dead-ends on an
// unreachable model.
package generator

import (
	"context"
	"math/rand"
	"sync"

	"github.com/sashabaranov/go-openai"

	"github.com/comigor/debatemate/internal/debate"
	"github.com/comigor/debatemate/internal/logger"
)

// Generation parameters sent with every request. Tunable, not contractual.
const (
	temperature     = 0.6
	topP            = 0.85
	maxOutputTokens = 1000
)

// ChatClient is the minimal subset of openai.Client used by the generator;
// it is easy to mock in tests.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator is stateless between invocations apart from its random source,
// which is injectable so tests can pin fallback selection.
type Generator struct {
	client ChatClient
	model  string

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Generator. rng drives fallback selection; pass a fixed-seed
// source in tests.
func New(client ChatClient, model string, rng *rand.Rand) *Generator {
	return &Generator{client: client, model: model, rng: rng}
}

// Generate returns the next assistant utterance for the given transcript
// history, topic and stance. It never fails: any error from the model call
// resolves to a canned fallback reply for the stance.
func (g *Generator) Generate(ctx context.Context, history []debate.Message, topic string, stance debate.Stance) string {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == debate.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	// The stance instruction rides as the final user turn, after the seeded
	// history, matching how the upstream chat session is driven.
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: stanceInstruction(topic, stance),
	})

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxOutputTokens,
	})
	if err != nil {
		logger.L.Warn("chat completion failed; using fallback response", "error", err, "stance", stance)
		return g.fallback(topic, stance)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		logger.L.Warn("chat completion returned no content; using fallback response", "stance", stance)
		return g.fallback(topic, stance)
	}

	return resp.Choices[0].Message.Content
}
