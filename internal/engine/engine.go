// Package engine orchestrates debate sessions: it seeds the first AI turn on
// start, advances one turn at a time, and closes sessions. The session
// lifecycle (Active, Closed) is modelled as a state machine; mutations on one
// session are serialized by a per-session mutex.
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/qmuntal/stateless"

	"github.com/comigor/debatemate/internal/debate"
	"github.com/comigor/debatemate/internal/logger"
	"github.com/comigor/debatemate/internal/store"
)

// Session lifecycle states.
type SessionState stateless.State

var (
	StateActive SessionState = "Active"
	StateClosed SessionState = "Closed"
)

// Session lifecycle triggers.
type SessionTrigger stateless.Trigger

var (
	TriggerAdvanceTurn SessionTrigger = "AdvanceTurn"
	TriggerClose       SessionTrigger = "Close"
)

// Generator produces the next assistant utterance. It never fails; see the
// generator package's fallback policy.
type Generator interface {
	Generate(ctx context.Context, history []debate.Message, topic string, stance debate.Stance) string
}

// Engine is the debate session engine.
type Engine struct {
	store store.Store
	gen   Generator

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an Engine on top of a session store and a response generator.
func New(s store.Store, g Generator) *Engine {
	return &Engine{store: s, gen: g, locks: make(map[string]*sync.Mutex)}
}

// lifecycle builds the per-session state machine from a loaded session.
// Advancing re-enters Active; closing is permitted from both states so Close
// stays idempotent.
func lifecycle(d *debate.Debate) *stateless.StateMachine {
	initial := StateClosed
	if d.Active {
		initial = StateActive
	}
	m := stateless.NewStateMachine(initial)
	m.Configure(StateActive).
		PermitReentry(TriggerAdvanceTurn).
		Permit(TriggerClose, StateClosed)
	m.Configure(StateClosed).
		PermitReentry(TriggerClose)
	return m
}

// sessionLock returns the mutex serializing mutations of one session id.
// Entries live as long as the engine; at this system's scale that is the same
// lifetime as the in-memory store's data.
func (e *Engine) sessionLock(id string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[id]
	if !ok {
		l = &sync.Mutex{}
		e.locks[id] = l
	}
	return l
}

// openingPrompt synthesizes the first user-role message of a session. The
// human user does not type this; the engine does.
func openingPrompt(topic string, stance debate.Stance) string {
	var intent string
	switch stance {
	case debate.StanceFor:
		intent = "argue for this position"
	case debate.StanceAgainst:
		intent = "argue against this position"
	default:
		intent = "play devil's advocate"
	}
	return fmt.Sprintf("Let's debate about %q. I'll %s. Please start by sharing your initial thoughts.", topic, intent)
}

// Start creates a new debate session, performing the first AI turn before the
// session exists: the synthetic opening prompt and the AI's reply become the
// first two transcript entries.
func (e *Engine) Start(ctx context.Context, topic, stance, userID string) (*debate.Debate, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", debate.ErrValidation)
	}

	st := debate.ParseStance(stance)
	d := debate.New(topic, st, userID)

	if _, err := d.AppendMessage(debate.RoleUser, openingPrompt(topic, st)); err != nil {
		return nil, err
	}
	reply := e.gen.Generate(ctx, d.Messages.History(), topic, st)
	if _, err := d.AppendMessage(debate.RoleAssistant, reply); err != nil {
		return nil, err
	}

	if err := e.store.Create(ctx, d); err != nil {
		return nil, err
	}
	logger.L.Info("debate started", "id", d.ID, "topic", topic, "stance", st, "user", userID)
	return d, nil
}

// AdvanceTurn appends the user's message, generates the assistant reply with
// the full updated history, persists, and returns exactly the two new
// messages. Both appends reach the store together or not at all.
func (e *Engine) AdvanceTurn(ctx context.Context, id, content string) ([]debate.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: message content is required", debate.ErrValidation)
	}

	lock := e.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	d, err := e.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle(d).FireCtx(ctx, TriggerAdvanceTurn); err != nil {
		return nil, fmt.Errorf("%w: %s", debate.ErrSessionClosed, id)
	}

	if _, err := d.AppendMessage(debate.RoleUser, content); err != nil {
		return nil, err
	}
	reply := e.gen.Generate(ctx, d.Messages.History(), d.Topic, d.Stance)
	if _, err := d.AppendMessage(debate.RoleAssistant, reply); err != nil {
		return nil, err
	}

	if err := e.store.Update(ctx, d); err != nil {
		return nil, err
	}
	logger.L.Debug("debate turn advanced", "id", d.ID, "messages", len(d.Messages))
	return d.Messages.Tail(2), nil
}

// Close deactivates a session. Closing an already-closed session succeeds
// with no effect beyond the timestamp refresh.
func (e *Engine) Close(ctx context.Context, id string) (*debate.Debate, error) {
	lock := e.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	d, err := e.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle(d).FireCtx(ctx, TriggerClose); err != nil {
		return nil, fmt.Errorf("close debate %s: %w", id, err)
	}

	d.Close()
	if err := e.store.Update(ctx, d); err != nil {
		return nil, err
	}
	logger.L.Info("debate closed", "id", d.ID)
	return d, nil
}

// Get returns the full session including its transcript.
func (e *Engine) Get(ctx context.Context, id string) (*debate.Debate, error) {
	return e.store.FindByID(ctx, id)
}

// List returns transcript-free summaries, newest first. An empty userID
// lists every session.
func (e *Engine) List(ctx context.Context, userID string) ([]debate.Summary, error) {
	return e.store.ListByUser(ctx, userID)
}
