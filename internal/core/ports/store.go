package ports

import "go.trai.ch/ship/internal/core/domain"

// MetadataStore defines the interface for the persisted signature to
// cache-entry document. The document is loaded once at construction and
// rewritten in full after every mutation.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type MetadataStore interface {
	// Get retrieves the entry for a signature.
	// Returns nil, nil if not found.
	Get(signature string) (*domain.CacheEntry, error)

	// Put inserts or overwrites the entry for a signature and persists
	// the document.
	Put(signature string, entry domain.CacheEntry) error

	// Delete removes the entry for a signature and persists the
	// document. Deleting an absent signature is not an error.
	Delete(signature string) error

	// All returns a copy of every live entry keyed by signature.
	All() (map[string]domain.CacheEntry, error)

	// Reset drops every entry and persists the empty document.
	Reset() error
}
