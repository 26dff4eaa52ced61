// Package hash computes build signatures and artifact digests.
package hash

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/ship/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher implements ports.Hasher.
//
// Build signatures use SHA-256: the signature is the sole correctness
// gate against serving a wrong artifact, so collision resistance is
// required. Artifact digests use XXHash: they only detect out-of-band
// modification of an already-trusted tree, so speed wins there.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// BuildSignature computes the signature for a (script, invocation)
// pair: SHA-256 over the script's content hash, its modification time,
// and the full invocation string, colon-separated. The mtime component
// defeats false hits when content transiently reproduces identical
// bytes mid-edit.
func (h *Hasher) BuildSignature(scriptPath, invocation string) (string, error) {
	contentHash, err := h.fileSHA256(scriptPath)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(scriptPath)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to stat script"), "path", scriptPath)
	}
	mtime := strconv.FormatInt(info.ModTime().UnixNano(), 10)

	sig := sha256.New()
	_, _ = io.WriteString(sig, contentHash)
	_, _ = io.WriteString(sig, ":")
	_, _ = io.WriteString(sig, mtime)
	_, _ = io.WriteString(sig, ":")
	_, _ = io.WriteString(sig, invocation)

	return hex.EncodeToString(sig.Sum(nil)), nil
}

func (h *Hasher) fileSHA256(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open script"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash script content"), "path", path)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// ArtifactDigest computes an XXHash digest over the file or tree at
// path. Each file contributes its root-relative path and content hash,
// in the deterministic order WalkDir yields.
func (h *Hasher) ArtifactDigest(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to stat artifact"), "path", path)
	}

	digest := xxhash.New()

	if !info.IsDir() {
		if err := h.digestFile(path, filepath.Base(path), digest); err != nil {
			return "", err
		}
		return fmt.Sprintf("%016x", digest.Sum64()), nil
	}

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(path, p)
		if relErr != nil {
			rel = p
		}
		return h.digestFile(p, filepath.ToSlash(rel), digest)
	})
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to digest artifact tree"), "path", path)
	}

	return fmt.Sprintf("%016x", digest.Sum64()), nil
}

func (h *Hasher) digestFile(path, rel string, digest *xxhash.Digest) error {
	_, _ = digest.WriteString(rel)
	_, _ = digest.Write([]byte{0}) // Separator

	f, err := os.Open(path) //nolint:gosec // Path produced by WalkDir over caller-controlled root
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open artifact file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	content := xxhash.New()
	if _, err := io.Copy(content, f); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to hash artifact file"), "path", path)
	}

	if err := binary.Write(digest, binary.LittleEndian, content.Sum64()); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
