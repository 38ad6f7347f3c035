/*
Package postgres implements the store over PostgreSQL with pgx.

Races between concurrent lobby requests are closed in SQL: a partial unique
index keeps one nation per human per server, the ready toggle is a single
array UPDATE, and a game starts through a status-conditional UPDATE.
*/
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"geopolitik/internal/app/db"
)

// Store is the PostgreSQL backend.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to dsn and migrates the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := db.NewPool(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}

// mapErr normalizes driver errors onto db.ErrNotFound and db.ErrDuplicate.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return db.ErrNotFound
	case db.IsUniqueViolation(err):
		return db.ErrDuplicate
	default:
		return err
	}
}
