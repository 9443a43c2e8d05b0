// internal/auth/sqlite.go
package auth

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteStore is the default TokenStore, a single-file sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the token database at path. Parent
// directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating session directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS session_tokens (
			sid       TEXT NOT NULL,
			scope     TEXT NOT NULL,
			token     TEXT NOT NULL,
			issued_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (sid, scope)
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	log.Debug().Str("path", path).Msg("session token store ready")
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) SetToken(ctx context.Context, sid string, scope Scope, token string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_tokens (sid, scope, token) VALUES (?, ?, ?)
		ON CONFLICT (sid, scope) DO UPDATE SET token = excluded.token, issued_at = CURRENT_TIMESTAMP`,
		sid, string(scope), token)
	return err
}

func (s *SQLiteStore) Token(ctx context.Context, sid string, scope Scope) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx,
		`SELECT token FROM session_tokens WHERE sid = ? AND scope = ?`,
		sid, string(scope)).Scan(&token)
	if err == sql.ErrNoRows {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *SQLiteStore) ClearAll(ctx context.Context, sid string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_tokens WHERE sid = ?`, sid)
	return err
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
