package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/google/uuid"

	"github.com/comigor/debatemate/internal/config"
	"github.com/comigor/debatemate/internal/debate"
	"github.com/comigor/debatemate/internal/logger"
)

// Store persists user accounts. Same dual-backend split as the debate store.
type Store interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	Exists(ctx context.Context, username, email string) (bool, error)
}

// SelectStore mirrors store.Select: SQLite when reachable, in-memory
// otherwise, decided once at startup.
func SelectStore(cfg config.StoreConfig) Store {
	s, err := NewSQLiteStore(cfg.Path)
	if err != nil {
		logger.L.Warn("sqlite unavailable; using in-memory user store", "path", cfg.Path, "error", err)
		return NewMemoryStore()
	}
	return s
}

// MemoryStore keeps accounts for the process lifetime only.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*User // keyed by id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]*User)}
}

func (m *MemoryStore) Create(ctx context.Context, u *User) error {
	u.ID = uuid.Must(uuid.NewV7()).String()
	u.CreatedAt = time.Now().UTC()

	m.mu.Lock()
	cp := *u
	m.users[u.ID] = &cp
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", debate.ErrNotFound, email)
}

func (m *MemoryStore) Exists(ctx context.Context, username, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

const userSchema = `CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    DATETIME NOT NULL
);`

// SQLiteStore is the durable backend. It shares the database file with the
// debate store; sqlite serializes the writers.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(10000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", debate.ErrPersistence, path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", debate.ErrPersistence, path, err)
	}
	if _, err := db.Exec(userSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create schema: %v", debate.ErrPersistence, err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Create(ctx context.Context, u *User) error {
	u.ID = uuid.Must(uuid.NewV7()).String()
	u.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at) VALUES (?,?,?,?,?);`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: insert user: %v", debate.ErrPersistence, err)
	}
	return nil
}

func (s *SQLiteStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE email = ?;`, email)

	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", debate.ErrNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query user: %v", debate.ErrPersistence, err)
	}
	return &u, nil
}

func (s *SQLiteStore) Exists(ctx context.Context, username, email string) (bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE username = ? OR email = ?;`, username, email)
	var n int
	if err := row.Scan(&n); err != nil {
		return false, fmt.Errorf("%w: query user: %v", debate.ErrPersistence, err)
	}
	return n > 0, nil
}
