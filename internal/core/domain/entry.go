// Package domain contains the core types for the build cache and
// import discovery subsystems.
package domain

import "time"

// CacheEntry is the metadata record for one stored build artifact.
// The map key in the persisted document is the build signature, so the
// signature itself is not repeated inside the record.
//
// The JSON field names are part of the on-disk metadata format. Unknown
// extra fields in a record are ignored on load, never rejected.
type CacheEntry struct {
	// CacheID names the artifact directory under the cache root. It is
	// derived from the signature prefix plus the creation time, so two
	// stores of the same signature never collide on disk.
	CacheID string `json:"cache_id"`

	// StoredAt is the creation timestamp, serialized as RFC 3339.
	StoredAt time.Time `json:"timestamp"`

	// SourcePath and Invocation are provenance only. Lookup is by
	// signature; these are never consulted to decide a hit.
	SourcePath string `json:"script_path,omitempty"`
	Invocation string `json:"command,omitempty"`

	// SizeMB is the total size of the stored artifact tree, computed
	// when the artifact was copied into the cache.
	SizeMB float64 `json:"size_mb"`

	// ArtifactHash is a fast content digest of the stored tree, checked
	// on lookup hits to catch out-of-band modification. Empty when the
	// digest could not be computed at store time.
	ArtifactHash string `json:"artifact_hash,omitempty"`
}

// Expired reports whether the entry is older than the retention period
// at the given instant.
func (e CacheEntry) Expired(now time.Time, retention time.Duration) bool {
	return now.Sub(e.StoredAt) >= retention
}

// CacheStats is a point-in-time summary of the cache contents.
type CacheStats struct {
	Entries       int
	TotalSizeMB   float64
	MaxSizeMB     float64
	RetentionDays int
	Dir           string
}
