// Package apikey manages API keys in a SQLite database. Keys are UUID v4
// strings, one active key per user email; revocation deactivates a key
// without deleting its row.
package apikey

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/Scriptura/core/errors"
	"github.com/FocuswithJustin/Scriptura/core/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS api_keys (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_email TEXT NOT NULL UNIQUE,
	api_key TEXT NOT NULL UNIQUE,
	active INTEGER NOT NULL DEFAULT 1
)`

// Key is one API key record.
type Key struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	Key    string `json:"api_key"`
	Active bool   `json:"active"`
}

// Store is the SQLite-backed key registry.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the key database at path.
func Open(path string) (*Store, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening key database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating api_keys table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Issue creates a fresh key for an email address. Reissuing for a known
// email replaces its key and reactivates it.
func (s *Store) Issue(ctx context.Context, email string) (Key, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return Key{}, errors.NewValidation("email", "must be a valid email address")
	}

	key := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO api_keys (user_email, api_key, active) VALUES (?, ?, 1)
		ON CONFLICT(user_email) DO UPDATE SET api_key = excluded.api_key, active = 1`,
		email, key)
	if err != nil {
		return Key{}, fmt.Errorf("issuing key: %w", err)
	}

	var rec Key
	var active int
	err = s.db.QueryRowContext(ctx,
		`SELECT id, user_email, api_key, active FROM api_keys WHERE user_email = ?`, email).
		Scan(&rec.ID, &rec.Email, &rec.Key, &active)
	if err != nil {
		return Key{}, fmt.Errorf("reading issued key: %w", err)
	}
	rec.Active = active != 0
	return rec, nil
}

// Revoke deactivates the key belonging to an email address.
func (s *Store) Revoke(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	res, err := s.db.ExecContext(ctx,
		`UPDATE api_keys SET active = 0 WHERE user_email = ?`, email)
	if err != nil {
		return fmt.Errorf("revoking key: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("revoking key: %w", err)
	}
	if n == 0 {
		return errors.NewNotFound("api key", email)
	}
	return nil
}

// Validate reports whether key exists and is active.
func (s *Store) Validate(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, nil
	}
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM api_keys WHERE api_key = ? AND active = 1`, key).
		Scan(&count)
	if err != nil {
		return false, fmt.Errorf("validating key: %w", err)
	}
	return count > 0, nil
}

// List returns every key record, oldest first.
func (s *Store) List(ctx context.Context) ([]Key, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_email, api_key, active FROM api_keys ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	var out []Key
	for rows.Next() {
		var rec Key
		var active int
		if err := rows.Scan(&rec.ID, &rec.Email, &rec.Key, &active); err != nil {
			return nil, fmt.Errorf("scanning key row: %w", err)
		}
		rec.Active = active != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}
