// Package docstore is a small document-collection abstraction with a
// Firestore backend and a SQL (postgres/sqlite) backend.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the addressed document does not exist.
var ErrNotFound = errors.New("document not found")

// Document is a stored record and its store-assigned id.
type Document struct {
	ID   string
	Data map[string]any
}

// Store is a collection-scoped document database.
type Store interface {
	Get(ctx context.Context, collection, id string) (*Document, error)
	List(ctx context.Context, collection string) ([]Document, error)
	// Add stores data under a new id and returns the id.
	Add(ctx context.Context, collection string, data map[string]any) (string, error)
	// Update merges top-level keys into an existing document.
	Update(ctx context.Context, collection, id string, data map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	Ping(ctx context.Context) error
	Close() error
}
