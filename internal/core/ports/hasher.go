package ports

// Hasher defines the interface for computing build signatures and
// artifact digests.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// BuildSignature computes the collision-resistant signature for a
	// (script content, script mtime, invocation) triple. An unreadable
	// script is an error; the caller must treat it as a cache miss.
	BuildSignature(scriptPath, invocation string) (string, error)

	// ArtifactDigest computes a fast content digest over the file or
	// directory tree at path. It is an integrity check, not a
	// correctness gate, so a non-cryptographic hash is acceptable.
	ArtifactDigest(path string) (string, error)
}
