// Package meta implements the persisted cache metadata document.
package meta

import (
	"encoding/json"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.MetadataStore = (*Store)(nil)

// Store implements ports.MetadataStore using a single flat JSON file
// mapping signature -> entry. The document is read once at construction
// and rewritten in full after every mutation. An advisory file lock
// guards each load and persist so two processes cannot interleave a
// partial write; concurrent mutation across processes still resolves
// last-writer-wins on the whole document.
type Store struct {
	path string
	lock *flock.Flock

	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
}

// NewStore creates a MetadataStore backed by the file at the given
// path. The file is created lazily on first mutation.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, zerr.Wrap(err, "failed to create cache directory")
	}
	s := &Store{
		path:    filepath.Clean(path),
		lock:    flock.New(filepath.Clean(path) + ".lock"),
		entries: make(map[string]domain.CacheEntry),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return zerr.Wrap(err, "failed to acquire metadata lock")
	}
	defer s.lock.Unlock() //nolint:errcheck // Best effort unlock in defer

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read cache metadata")
	}

	if len(data) == 0 {
		return nil
	}

	// Unknown extra fields in an entry are dropped here, not rejected;
	// the document stays forward-readable.
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return zerr.Wrap(err, "failed to unmarshal cache metadata")
	}

	return nil
}

// save rewrites the whole document. Callers must hold s.mu.
func (s *Store) save() error {
	if err := s.lock.Lock(); err != nil {
		return zerr.Wrap(err, "failed to acquire metadata lock")
	}
	defer s.lock.Unlock() //nolint:errcheck // Best effort unlock in defer

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache metadata")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for cache metadata")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write cache metadata")
	}

	return nil
}

// Get retrieves the entry for a signature. Returns nil, nil if absent.
func (s *Store) Get(signature string) (*domain.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[signature]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Put inserts or overwrites the entry for a signature. A failed
// persist rolls the in-memory map back, so memory never claims an
// entry the document does not hold.
func (s *Store) Put(signature string, entry domain.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.entries[signature]
	s.entries[signature] = entry
	if err := s.save(); err != nil {
		if existed {
			s.entries[signature] = prev
		} else {
			delete(s.entries, signature)
		}
		return err
	}
	return nil
}

// Delete removes the entry for a signature. Absent signatures are a
// no-op that still persists, keeping the document authoritative. A
// failed persist restores the entry in memory.
func (s *Store) Delete(signature string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.entries[signature]
	delete(s.entries, signature)
	if err := s.save(); err != nil {
		if existed {
			s.entries[signature] = prev
		}
		return err
	}
	return nil
}

// All returns a copy of every live entry keyed by signature.
func (s *Store) All() (map[string]domain.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.CacheEntry, len(s.entries))
	maps.Copy(out, s.entries)
	return out, nil
}

// Reset drops every entry and persists the empty document. A failed
// persist keeps the previous entries in memory.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.entries
	s.entries = make(map[string]domain.CacheEntry)
	if err := s.save(); err != nil {
		s.entries = prev
		return err
	}
	return nil
}
