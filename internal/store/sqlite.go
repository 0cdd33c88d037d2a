package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/google/uuid"

	"github.com/comigor/debatemate/internal/debate"
)

const schema = `CREATE TABLE IF NOT EXISTS debates (
	id         TEXT PRIMARY KEY,
	topic      TEXT NOT NULL,
	stance     TEXT NOT NULL,
	user_id    TEXT NOT NULL DEFAULT '',
	messages   TEXT NOT NULL,
	active     INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);`

// SQLite is the durable backend. The transcript is stored as a JSON column
// so each turn's two appends persist atomically with the row update.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the database at path and ensures the
// schema exists.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(10000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", debate.ErrPersistence, path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", debate.ErrPersistence, path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create schema: %v", debate.ErrPersistence, err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Create(ctx context.Context, d *debate.Debate) error {
	now := time.Now().UTC()
	d.ID = uuid.Must(uuid.NewV7()).String()
	d.CreatedAt = now
	d.UpdatedAt = now

	messages, err := json.Marshal(d.Messages)
	if err != nil {
		return fmt.Errorf("%w: encode transcript: %v", debate.ErrPersistence, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO debates (id, topic, stance, user_id, messages, active, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?);`,
		d.ID, d.Topic, string(d.Stance), d.UserID, string(messages), d.Active, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: insert debate: %v", debate.ErrPersistence, err)
	}
	return nil
}

func (s *SQLite) FindByID(ctx context.Context, id string) (*debate.Debate, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, topic, stance, user_id, messages, active, created_at, updated_at
		 FROM debates WHERE id = ?;`, id)

	var d debate.Debate
	var stance, messages string
	err := row.Scan(&d.ID, &d.Topic, &stance, &d.UserID, &messages, &d.Active, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", debate.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query debate: %v", debate.ErrPersistence, err)
	}
	d.Stance = debate.Stance(stance)
	if err := json.Unmarshal([]byte(messages), &d.Messages); err != nil {
		return nil, fmt.Errorf("%w: decode transcript: %v", debate.ErrPersistence, err)
	}
	return &d, nil
}

func (s *SQLite) ListByUser(ctx context.Context, userID string) ([]debate.Summary, error) {
	query := `SELECT id, topic, stance, active, created_at, updated_at FROM debates`
	args := []any{}
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY updated_at DESC;`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list debates: %v", debate.ErrPersistence, err)
	}
	defer rows.Close()

	out := []debate.Summary{}
	for rows.Next() {
		var sum debate.Summary
		var stance string
		if err := rows.Scan(&sum.ID, &sum.Topic, &stance, &sum.Active, &sum.CreatedAt, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan debate: %v", debate.ErrPersistence, err)
		}
		sum.Stance = debate.Stance(stance)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list debates: %v", debate.ErrPersistence, err)
	}
	return out, nil
}

func (s *SQLite) Update(ctx context.Context, d *debate.Debate) error {
	d.Touch()
	messages, err := json.Marshal(d.Messages)
	if err != nil {
		return fmt.Errorf("%w: encode transcript: %v", debate.ErrPersistence, err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE debates SET messages = ?, active = ?, updated_at = ? WHERE id = ?;`,
		string(messages), d.Active, d.UpdatedAt, d.ID)
	if err != nil {
		return fmt.Errorf("%w: update debate: %v", debate.ErrPersistence, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", debate.ErrNotFound, d.ID)
	}
	return nil
}
