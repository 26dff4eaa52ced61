// Package fs provides the filesystem adapter for artifact trees.
package fs

import (
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/ship/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactStore = (*Files)(nil)

// Files implements ports.ArtifactStore on the local filesystem.
type Files struct{}

// NewFiles creates a new Files adapter.
func NewFiles() *Files {
	return &Files{}
}

// Exists reports whether a path exists.
func (f *Files) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Stash copies the file or tree at src to dst and returns the size
// copied in MB. The copy goes to dst+".tmp" first and is renamed into
// place, so an interrupted copy never leaves a partial artifact visible
// under dst.
func (f *Files) Stash(src, dst string) (float64, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to stat stash source"), "path", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return 0, zerr.Wrap(err, "failed to create cache root")
	}

	tmp := dst + ".tmp"
	// A leftover tmp from an interrupted earlier run is stale; replace it.
	if err := os.RemoveAll(tmp); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to clear stale temp artifact"), "path", tmp)
	}

	var bytes int64
	if info.IsDir() {
		bytes, err = f.copyTree(src, tmp)
	} else {
		bytes, err = f.copyFile(src, tmp, info.Mode())
	}
	if err != nil {
		_ = os.RemoveAll(tmp)
		return 0, err
	}

	if err := os.Rename(tmp, dst); err != nil {
		_ = os.RemoveAll(tmp)
		return 0, zerr.With(zerr.Wrap(err, "failed to finalize stashed artifact"), "path", dst)
	}

	return float64(bytes) / (1024 * 1024), nil
}

// Deliver merge-copies the contents of the src directory into dst,
// replacing anything that collides. The source is left in place.
func (f *Files) Deliver(src, dst string) error {
	if err := os.MkdirAll(dst, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", dst)
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat delivery source"), "path", src)
	}

	// A one-file build delivers a single executable.
	if !srcInfo.IsDir() {
		target := filepath.Join(dst, filepath.Base(src))
		if err := os.RemoveAll(target); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to replace existing output"), "path", target)
		}
		_, err := f.copyFile(src, target, srcInfo.Mode())
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read delivery source"), "path", src)
	}

	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		if err := os.RemoveAll(to); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to replace existing output"), "path", to)
		}

		if entry.IsDir() {
			if _, err := f.copyTree(from, to); err != nil {
				return err
			}
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to stat delivery entry"), "path", from)
		}
		if _, err := f.copyFile(from, to, info.Mode()); err != nil {
			return err
		}
	}

	return nil
}

// Remove deletes the file or tree at path. Absent paths are a no-op.
func (f *Files) Remove(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove artifact"), "path", path)
	}
	return nil
}

// copyTree copies the directory src to dst and returns the total bytes
// copied. dst must not exist.
func (f *Files) copyTree(src, dst string) (int64, error) {
	var total int64

	err := filepath.WalkDir(src, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o750)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		n, err := f.copyFile(path, target, info.Mode())
		total += n
		return err
	})
	if err != nil {
		return total, zerr.With(zerr.Wrap(err, "failed to copy artifact tree"), "path", src)
	}

	return total, nil
}

func (f *Files) copyFile(src, dst string, mode iofs.FileMode) (int64, error) {
	in, err := os.Open(src) //nolint:gosec // Path produced by walking caller-controlled root
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open source file"), "path", src)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	//nolint:gosec // Destination is inside the cache or output root
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to create destination file"), "path", dst)
	}

	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, zerr.With(zerr.Wrap(err, "failed to copy file"), "path", dst)
	}

	return n, nil
}
