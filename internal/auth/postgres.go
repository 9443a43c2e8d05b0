// internal/auth/postgres.go
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore backs the token store with Postgres, for deployments that
// run more than one portal instance behind a balancer and cannot use a
// local sqlite file.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, url string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connecting session database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging session database: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS session_tokens (
			sid       TEXT NOT NULL,
			scope     TEXT NOT NULL,
			token     TEXT NOT NULL,
			issued_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (sid, scope)
		)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) SetToken(ctx context.Context, sid string, scope Scope, token string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO session_tokens (sid, scope, token) VALUES ($1, $2, $3)
		ON CONFLICT (sid, scope) DO UPDATE SET token = excluded.token, issued_at = now()`,
		sid, string(scope), token)
	return err
}

func (s *PostgresStore) Token(ctx context.Context, sid string, scope Scope) (string, error) {
	var token string
	err := s.pool.QueryRow(ctx,
		`SELECT token FROM session_tokens WHERE sid = $1 AND scope = $2`,
		sid, string(scope)).Scan(&token)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *PostgresStore) ClearAll(ctx context.Context, sid string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM session_tokens WHERE sid = $1`, sid)
	return err
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
