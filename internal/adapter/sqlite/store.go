// Package sqlite persists the client session between CLI invocations.
package sqlite

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"taskdeck/internal/domain"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps a *sql.DB and implements the session store port.
type Store struct {
	sql *sql.DB
}

var _ domain.SessionStore = (*Store)(nil)

// Open creates the parent directory if needed, opens the database, pings,
// and runs migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}
	}

	s, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := s.Ping(); err != nil {
		_ = s.Close()
		return nil, err
	}

	st := &Store{sql: s}
	if err := st.migrate(); err != nil {
		_ = s.Close()
		return nil, err
	}
	return st, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.sql.Close()
}

func (s *Store) migrate() error {
	_, err := s.sql.Exec(
		"CREATE TABLE IF NOT EXISTS session_kv (key TEXT PRIMARY KEY, value TEXT NOT NULL);",
	)
	return err
}

// Get returns the stored value, or the empty string when the key is absent.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.sql.QueryRow("SELECT value FROM session_kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.sql.Exec(
		"INSERT INTO session_kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

// Remove deletes key. Removing an absent key is a no-op.
func (s *Store) Remove(key string) error {
	_, err := s.sql.Exec("DELETE FROM session_kv WHERE key = ?", key)
	return err
}
