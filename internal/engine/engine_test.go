package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comigor/debatemate/internal/debate"
	"github.com/comigor/debatemate/internal/store"
)

// mockGenerator echoes a counter so turns are distinguishable.
type mockGenerator struct {
	calls int
	// lastHistory records what the engine fed the generator.
	lastHistory []debate.Message
	lastTopic   string
	lastStance  debate.Stance
}

func (m *mockGenerator) Generate(ctx context.Context, history []debate.Message, topic string, stance debate.Stance) string {
	m.calls++
	m.lastHistory = history
	m.lastTopic = topic
	m.lastStance = stance
	return fmt.Sprintf("assistant reply %d", m.calls)
}

func newEngine() (*Engine, *mockGenerator) {
	gen := &mockGenerator{}
	return New(store.NewMemory(), gen), gen
}

func TestStart_SeedsTwoMessages(t *testing.T) {
	e, gen := newEngine()

	d, err := e.Start(context.Background(), "Is remote work better?", "for", "u1")
	require.NoError(t, err)
	require.NotEmpty(t, d.ID)
	require.Equal(t, "Is remote work better?", d.Topic)
	require.Equal(t, debate.StanceFor, d.Stance)
	require.True(t, d.Active)

	require.Len(t, d.Messages, 2)
	require.Equal(t, debate.RoleUser, d.Messages[0].Role)
	require.Equal(t, debate.RoleAssistant, d.Messages[1].Role)
	require.Contains(t, d.Messages[0].Content, "Is remote work better?")
	require.Contains(t, d.Messages[0].Content, "argue for this position")

	require.Equal(t, 1, gen.calls)
	require.Len(t, gen.lastHistory, 1, "generator sees only the synthetic prompt on start")
}

func TestStart_EmptyTopic(t *testing.T) {
	e, gen := newEngine()

	for _, topic := range []string{"", "   "} {
		_, err := e.Start(context.Background(), topic, "for", "")
		require.ErrorIs(t, err, debate.ErrValidation)
	}
	require.Zero(t, gen.calls, "validation fails before the generator is invoked")
}

func TestStart_UnknownStanceDefaultsToNeutral(t *testing.T) {
	e, _ := newEngine()

	d, err := e.Start(context.Background(), "topic", "weird", "")
	require.NoError(t, err)
	require.Equal(t, debate.StanceNeutral, d.Stance)
	require.Contains(t, d.Messages[0].Content, "devil's advocate")
}

func TestAdvanceTurn_AppendsAlternatingPairs(t *testing.T) {
	e, gen := newEngine()
	ctx := context.Background()

	d, err := e.Start(ctx, "topic", "against", "u1")
	require.NoError(t, err)

	const turns = 3
	for i := 1; i <= turns; i++ {
		msgs, err := e.AdvanceTurn(ctx, d.ID, fmt.Sprintf("user point %d", i))
		require.NoError(t, err)

		require.Len(t, msgs, 2, "exactly the two new messages come back")
		require.Equal(t, debate.RoleUser, msgs[0].Role)
		require.Equal(t, fmt.Sprintf("user point %d", i), msgs[0].Content)
		require.Equal(t, debate.RoleAssistant, msgs[1].Role)
		require.NotEmpty(t, msgs[1].Content)
	}

	got, err := e.Get(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 2+2*turns)
	for i, m := range got.Messages {
		want := debate.RoleUser
		if i%2 == 1 {
			want = debate.RoleAssistant
		}
		require.Equal(t, want, m.Role, "message %d", i)
	}

	// The generator sees the full history including the just-appended user turn.
	require.Len(t, gen.lastHistory, 2+2*turns-1)
	require.Equal(t, "topic", gen.lastTopic)
	require.Equal(t, debate.StanceAgainst, gen.lastStance)
}

func TestAdvanceTurn_Validation(t *testing.T) {
	e, _ := newEngine()
	ctx := context.Background()

	d, err := e.Start(ctx, "topic", "neutral", "")
	require.NoError(t, err)

	_, err = e.AdvanceTurn(ctx, d.ID, "  ")
	require.ErrorIs(t, err, debate.ErrValidation)

	_, err = e.AdvanceTurn(ctx, "no-such-id", "hello")
	require.ErrorIs(t, err, debate.ErrNotFound)
}

func TestAdvanceTurn_ClosedSession(t *testing.T) {
	e, _ := newEngine()
	ctx := context.Background()

	d, err := e.Start(ctx, "topic", "for", "")
	require.NoError(t, err)
	_, err = e.Close(ctx, d.ID)
	require.NoError(t, err)

	_, err = e.AdvanceTurn(ctx, d.ID, "too late")
	require.ErrorIs(t, err, debate.ErrSessionClosed)

	got, err := e.Get(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 2, "rejected turn leaves the transcript unchanged")
}

func TestClose_Idempotent(t *testing.T) {
	e, _ := newEngine()
	ctx := context.Background()

	d, err := e.Start(ctx, "topic", "for", "")
	require.NoError(t, err)

	closed, err := e.Close(ctx, d.ID)
	require.NoError(t, err)
	require.False(t, closed.Active)

	again, err := e.Close(ctx, d.ID)
	require.NoError(t, err)
	require.False(t, again.Active)

	_, err = e.Close(ctx, "no-such-id")
	require.ErrorIs(t, err, debate.ErrNotFound)
}

func TestList_RespectsOwnerFilter(t *testing.T) {
	e, _ := newEngine()
	ctx := context.Background()

	_, err := e.Start(ctx, "mine", "for", "u1")
	require.NoError(t, err)
	_, err = e.Start(ctx, "theirs", "against", "u2")
	require.NoError(t, err)

	got, err := e.List(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "theirs", got[0].Topic)
}

// End-to-end scenario: start, advance, close, advance again.
func TestDebateLifecycle(t *testing.T) {
	e, _ := newEngine()
	ctx := context.Background()

	d, err := e.Start(ctx, "Is remote work better?", "for", "u1")
	require.NoError(t, err)
	require.Equal(t, "Is remote work better?", d.Topic)
	require.Equal(t, debate.StanceFor, d.Stance)

	msgs, err := e.AdvanceTurn(ctx, d.ID, "I disagree because...")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, debate.RoleUser, msgs[0].Role)
	require.Equal(t, "I disagree because...", msgs[0].Content)
	require.Equal(t, debate.RoleAssistant, msgs[1].Role)
	require.NotEmpty(t, msgs[1].Content)

	_, err = e.Close(ctx, d.ID)
	require.NoError(t, err)

	_, err = e.AdvanceTurn(ctx, d.ID, "one more point")
	require.ErrorIs(t, err, debate.ErrSessionClosed)
}
