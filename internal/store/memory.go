package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/comigor/debatemate/internal/debate"
)

// Memory is the demo-mode backend. Data lives only for the process lifetime.
type Memory struct {
	mu      sync.RWMutex
	debates map[string]*debate.Debate
}

// NewMemory creates an empty in-memory store. All state is owned by the
// returned instance; there are no package-level collections.
func NewMemory() *Memory {
	return &Memory{debates: make(map[string]*debate.Debate)}
}

func (m *Memory) Create(ctx context.Context, d *debate.Debate) error {
	now := time.Now().UTC()
	d.ID = uuid.Must(uuid.NewV7()).String()
	d.CreatedAt = now
	d.UpdatedAt = now

	m.mu.Lock()
	m.debates[d.ID] = d.Clone()
	m.mu.Unlock()
	return nil
}

func (m *Memory) FindByID(ctx context.Context, id string) (*debate.Debate, error) {
	m.mu.RLock()
	d, ok := m.debates[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", debate.ErrNotFound, id)
	}
	return d.Clone(), nil
}

func (m *Memory) ListByUser(ctx context.Context, userID string) ([]debate.Summary, error) {
	m.mu.RLock()
	out := make([]debate.Summary, 0, len(m.debates))
	for _, d := range m.debates {
		if userID != "" && d.UserID != userID {
			continue
		}
		out = append(out, d.Summarize())
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *Memory) Update(ctx context.Context, d *debate.Debate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.debates[d.ID]; !ok {
		return fmt.Errorf("%w: %s", debate.ErrNotFound, d.ID)
	}
	d.Touch()
	m.debates[d.ID] = d.Clone()
	return nil
}
