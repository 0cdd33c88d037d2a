// Package store persists debate sessions. Two interchangeable backends
// implement Store: a durable SQLite store and a process-lifetime in-memory
// store. The backend is chosen once at startup and fixed for the process
// lifetime.
package store

import (
	"context"

	"github.com/comigor/debatemate/internal/config"
	"github.com/comigor/debatemate/internal/debate"
	"github.com/comigor/debatemate/internal/logger"
)

// Store is the persistence contract the engine depends on.
type Store interface {
	// Create assigns a unique id and timestamps, then persists the debate.
	Create(ctx context.Context, d *debate.Debate) error
	// FindByID returns the debate or debate.ErrNotFound.
	FindByID(ctx context.Context, id string) (*debate.Debate, error)
	// ListByUser returns transcript-free summaries ordered by UpdatedAt
	// descending. An empty userID lists everything.
	ListByUser(ctx context.Context, userID string) ([]debate.Summary, error)
	// Update persists mutations to an already-retrieved debate and refreshes
	// its UpdatedAt. Unknown ids yield debate.ErrNotFound.
	Update(ctx context.Context, d *debate.Debate) error
}

// Select picks the backend at startup: SQLite when it can be opened, the
// in-memory store otherwise. There is no mid-run failover.
func Select(cfg config.StoreConfig) Store {
	s, err := NewSQLite(cfg.Path)
	if err != nil {
		logger.L.Warn("sqlite unavailable; using in-memory debate store", "path", cfg.Path, "error", err)
		return NewMemory()
	}
	logger.L.Info("sqlite debate store ready", "path", cfg.Path)
	return s
}
