package session

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool used by the postgres backend.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresBackend stores slots in the session_slots table.
type PostgresBackend struct {
	db Querier
}

// NewPostgresBackend builds the backend.
func NewPostgresBackend(db Querier) *PostgresBackend {
	return &PostgresBackend{db: db}
}

// Scope returns the store for id.
func (b *PostgresBackend) Scope(id string) Store {
	return &postgresStore{db: b.db, scope: id}
}

type postgresStore struct {
	db    Querier
	scope string
}

func (s *postgresStore) Get(ctx context.Context, key string) (string, error) {
	const query = `
        SELECT value FROM session_slots
        WHERE scope_id=$1 AND slot_key=$2`
	var value string
	if err := s.db.QueryRow(ctx, query, s.scope, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *postgresStore) Set(ctx context.Context, key, value string) error {
	const query = `
        INSERT INTO session_slots (scope_id, slot_key, value)
        VALUES ($1,$2,$3)
        ON CONFLICT (scope_id, slot_key)
        DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()`
	_, err := s.db.Exec(ctx, query, s.scope, key, value)
	return err
}

func (s *postgresStore) Clear(ctx context.Context, key string) error {
	const query = `
        DELETE FROM session_slots
        WHERE scope_id=$1 AND slot_key=$2`
	_, err := s.db.Exec(ctx, query, s.scope, key)
	return err
}
