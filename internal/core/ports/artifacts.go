package ports

// ArtifactStore defines the filesystem operations the cache and the
// orchestrator perform on build artifacts.
//
//go:generate mockgen -source=artifacts.go -destination=mocks/mock_artifacts.go -package=mocks
type ArtifactStore interface {
	// Exists reports whether a path exists on storage.
	Exists(path string) bool

	// Stash copies the file or tree at src to dst and returns the total
	// size copied in MB. The copy is written under a temporary name and
	// renamed into place on completion, so a partially written artifact
	// is never visible at dst.
	Stash(src, dst string) (sizeMB float64, err error)

	// Deliver merge-copies the contents of the src directory into dst,
	// replacing colliding files and directories. dst is created when
	// absent. The source is left in place; the cache keeps its own copy.
	Deliver(src, dst string) error

	// Remove deletes the file or tree at path. Removing an absent path
	// is not an error.
	Remove(path string) error
}
