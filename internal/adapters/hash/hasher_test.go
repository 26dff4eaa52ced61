package hash_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ship/internal/adapters/hash"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestHasher_BuildSignature_Deterministic(t *testing.T) {
	tmpDir := t.TempDir()
	script := writeFile(t, tmpDir, "app.py", "import numpy\n")

	h := hash.NewHasher()

	sig1, err := h.BuildSignature(script, "pyinstaller --onefile app.py")
	require.NoError(t, err)
	sig2, err := h.BuildSignature(script, "pyinstaller --onefile app.py")
	require.NoError(t, err)

	assert.Equal(t, sig1, sig2)
	assert.Len(t, sig1, 64) // hex-encoded SHA-256
}

func TestHasher_BuildSignature_SensitiveToContent(t *testing.T) {
	tmpDir := t.TempDir()
	script := writeFile(t, tmpDir, "app.py", "import numpy\n")

	h := hash.NewHasher()
	invocation := "pyinstaller app.py"

	before, err := h.BuildSignature(script, invocation)
	require.NoError(t, err)

	// Change one byte. Push the mtime forward as well so the test does
	// not depend on filesystem timestamp granularity.
	require.NoError(t, os.WriteFile(script, []byte("import pandas\n"), 0o644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(script, future, future))

	after, err := h.BuildSignature(script, invocation)
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestHasher_BuildSignature_SensitiveToInvocation(t *testing.T) {
	tmpDir := t.TempDir()
	script := writeFile(t, tmpDir, "app.py", "import numpy\n")

	h := hash.NewHasher()

	sig1, err := h.BuildSignature(script, "pyinstaller app.py")
	require.NoError(t, err)
	sig2, err := h.BuildSignature(script, "pyinstaller --onefile app.py")
	require.NoError(t, err)

	assert.NotEqual(t, sig1, sig2)
}

func TestHasher_BuildSignature_UnreadableScript(t *testing.T) {
	h := hash.NewHasher()

	_, err := h.BuildSignature(filepath.Join(t.TempDir(), "missing.py"), "pyinstaller missing.py")
	require.Error(t, err)
}

func TestHasher_ArtifactDigest_Tree(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "sub"), 0o755))
	writeFile(t, tmpDir, "a.txt", "alpha")
	writeFile(t, filepath.Join(tmpDir, "sub"), "b.txt", "beta")

	h := hash.NewHasher()

	d1, err := h.ArtifactDigest(tmpDir)
	require.NoError(t, err)
	d2, err := h.ArtifactDigest(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 16)

	// Modifying a file changes the digest.
	writeFile(t, filepath.Join(tmpDir, "sub"), "b.txt", "gamma")
	d3, err := h.ArtifactDigest(tmpDir)
	require.NoError(t, err)
	assert.NotEqual(t, d1, d3)
}

func TestHasher_ArtifactDigest_SingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	file := writeFile(t, tmpDir, "app.exe", "binary")

	h := hash.NewHasher()

	d, err := h.ArtifactDigest(file)
	require.NoError(t, err)
	assert.Len(t, d, 16)
}
