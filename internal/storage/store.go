// Package storage implements the durable review store on Postgres.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sevigo/page-warden/internal/core"
)

type postgresStore struct {
	db *sqlx.DB
}

// NewStore creates a core.ReviewStore backed by Postgres. The whole collection
// for a (repo, owner) key lives in one row, so a save is a single upsert: the
// read-modify-write cycle of a request is the atomicity boundary, and
// concurrent writers race under last-writer-wins.
func NewStore(db *sqlx.DB) core.ReviewStore {
	return &postgresStore{db: db}
}

// Load returns the persisted collection, or an empty one when the key has
// never been written.
func (s *postgresStore) Load(ctx context.Context, repo, owner string) (core.Collection, error) {
	var payload []byte
	query := `SELECT payload FROM review_collections WHERE repo = $1 AND owner = $2`
	err := s.db.QueryRowContext(ctx, query, repo, owner).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Collection{}, nil
		}
		return nil, fmt.Errorf("failed to load reviews for %s/%s: %w", owner, repo, err)
	}

	col, err := core.DecodeCollection(payload)
	if err != nil {
		return nil, fmt.Errorf("corrupt review collection for %s/%s: %w", owner, repo, err)
	}
	return col, nil
}

// Save replaces the persisted collection in one statement, leaving the prior
// row intact on failure.
func (s *postgresStore) Save(ctx context.Context, repo, owner string, c core.Collection) error {
	payload, err := core.EncodeCollection(c)
	if err != nil {
		return fmt.Errorf("failed to encode reviews for %s/%s: %w", owner, repo, err)
	}

	query := `
		INSERT INTO review_collections (repo, owner, payload, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (repo, owner) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
	if _, err := s.db.ExecContext(ctx, query, repo, owner, payload, time.Now()); err != nil {
		return fmt.Errorf("failed to save reviews for %s/%s: %w", owner, repo, err)
	}
	return nil
}
