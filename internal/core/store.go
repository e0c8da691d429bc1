package core

import "context"

// ReviewStore is the durable mapping from a (repo, owner) key to its review
// collection. It is the sole source of truth: callers read, modify, and rewrite
// the whole collection per request and never cache across requests.
//
//go:generate mockgen -destination=../mocks/mock_store.go -package=mocks . ReviewStore
type ReviewStore interface {
	// Load returns the persisted collection, or an empty one if the key has
	// never been written.
	Load(ctx context.Context, repo, owner string) (Collection, error)
	// Save atomically replaces the persisted collection. A failed save leaves
	// the previous value intact.
	Save(ctx context.Context, repo, owner string, c Collection) error
}
