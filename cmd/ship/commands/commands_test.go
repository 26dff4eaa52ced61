package commands_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ship/cmd/ship/commands"
	"go.trai.ch/ship/internal/adapters/fs"
	"go.trai.ch/ship/internal/adapters/hash"
	"go.trai.ch/ship/internal/adapters/meta"
	"go.trai.ch/ship/internal/adapters/pyscan"
	"go.trai.ch/ship/internal/adapters/telemetry"
	"go.trai.ch/ship/internal/app"
	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/engine/cache"
	"go.trai.ch/ship/internal/engine/discover"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

type openResolver struct{}

func (openResolver) Resolves(string) bool { return true }

type fakeEngine struct {
	calls int
}

func (e *fakeEngine) Build(_ context.Context, _ []string, distPath string) error {
	e.calls++
	return os.WriteFile(filepath.Join(distPath, "app.exe"), []byte("built"), 0o644)
}

// cliFixture shares one set of components across invocations; each exec
// builds a fresh CLI, matching one process per command.
type cliFixture struct {
	components *app.Components
	engine     *fakeEngine
	script     string
}

func newFixture(t *testing.T) *cliFixture {
	t.Helper()

	tmp := t.TempDir()
	settings := domain.DefaultSettings()
	settings.Cache.Dir = filepath.Join(tmp, "cache")
	settings.Engine.OutputDir = filepath.Join(tmp, "output")

	store, err := meta.NewStore(filepath.Join(settings.Cache.Dir, meta.MetadataFilename))
	require.NoError(t, err)

	log := nopLogger{}
	tracer := telemetry.NewNoOpTracer()
	files := fs.NewFiles()

	buildCache := cache.New(settings.Cache, store, hash.NewHasher(), files, log, tracer)
	discoverer := discover.New(settings.Discover, pyscan.NewParser(), openResolver{}, log, tracer)
	eng := &fakeEngine{}
	packager := app.New(settings.Engine, buildCache, discoverer, eng, files, log, tracer)

	script := filepath.Join(tmp, "app.py")
	require.NoError(t, os.WriteFile(script, []byte("import requests\n"), 0o644))

	return &cliFixture{
		components: &app.Components{
			Packager:   packager,
			Cache:      buildCache,
			Discoverer: discoverer,
			Logger:     log,
			Settings:   &settings,
		},
		engine: eng,
		script: script,
	}
}

func (f *cliFixture) exec(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	cli := commands.New(f.components)
	out := &bytes.Buffer{}
	cli.SetOutput(out, out)
	if stdin != nil {
		cli.SetInput(stdin)
	}
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestPackage_Success(t *testing.T) {
	f := newFixture(t)

	out, err := f.exec(t, nil, "package", "--yes", "pyinstaller", "--onefile", f.script)
	require.NoError(t, err)

	assert.Equal(t, 1, f.engine.calls)
	assert.Contains(t, out, "Packaged into")
	assert.Contains(t, out, "hidden imports")
}

func TestPackage_CacheHitReported(t *testing.T) {
	f := newFixture(t)

	_, err := f.exec(t, nil, "package", "--yes", "pyinstaller", f.script)
	require.NoError(t, err)

	out, err := f.exec(t, nil, "package", "--yes", "pyinstaller", f.script)
	require.NoError(t, err)

	assert.Equal(t, 1, f.engine.calls)
	assert.Contains(t, out, "Reused cached build")
}

func TestPackage_NoArgsShowsHelp(t *testing.T) {
	f := newFixture(t)

	out, err := f.exec(t, nil, "package")
	require.NoError(t, err)

	assert.Equal(t, 0, f.engine.calls)
	assert.Contains(t, out, "Usage:")
}

func TestPackage_OverwriteDeclined(t *testing.T) {
	f := newFixture(t)

	_, err := f.exec(t, nil, "package", "--yes", "pyinstaller", "--onefile", f.script)
	require.NoError(t, err)

	// The previous build sits in the output directory; answering "n"
	// to the prompt aborts the run.
	out, err := f.exec(t, strings.NewReader("n\n"), "package", "pyinstaller", "--onefile", f.script)
	require.NoError(t, err)

	assert.Equal(t, 1, f.engine.calls)
	assert.Contains(t, out, "Aborted.")
}

func TestPackage_OverwriteConfirmed(t *testing.T) {
	f := newFixture(t)

	_, err := f.exec(t, nil, "package", "--yes", "pyinstaller", "--onefile", f.script)
	require.NoError(t, err)

	out, err := f.exec(t, strings.NewReader("y\n"), "package", "pyinstaller", "--onefile", f.script)
	require.NoError(t, err)

	assert.Contains(t, out, "Reused cached build")
}

func TestPackage_UnrelatedOutputNeedsNoPrompt(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.MkdirAll(f.components.Settings.Engine.OutputDir, 0o755))
	stray := filepath.Join(f.components.Settings.Engine.OutputDir, "notes.txt")
	require.NoError(t, os.WriteFile(stray, []byte("keep"), 0o644))

	// Stdin is empty, so a prompt would abort the run.
	out, err := f.exec(t, strings.NewReader(""), "package", "pyinstaller", "--onefile", f.script)
	require.NoError(t, err)

	assert.Equal(t, 1, f.engine.calls)
	assert.Contains(t, out, "Packaged into")
}

func TestCacheStats(t *testing.T) {
	f := newFixture(t)

	out, err := f.exec(t, nil, "cache", "stats")
	require.NoError(t, err)

	assert.Contains(t, out, "Entries:   0")
	assert.Contains(t, out, "Retention: 30 days")
}

func TestCacheClear(t *testing.T) {
	f := newFixture(t)

	_, err := f.exec(t, nil, "package", "--yes", "pyinstaller", f.script)
	require.NoError(t, err)

	out, err := f.exec(t, nil, "cache", "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Cache cleared.")

	out, err = f.exec(t, nil, "cache", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries:   0")
}

func TestDiscover(t *testing.T) {
	f := newFixture(t)

	out, err := f.exec(t, nil, "discover", f.script)
	require.NoError(t, err)

	assert.Contains(t, out, "requests")
}

func TestDiscover_NothingFound(t *testing.T) {
	f := newFixture(t)
	plain := filepath.Join(t.TempDir(), "plain.py")
	require.NoError(t, os.WriteFile(plain, []byte("print('hi')\n"), 0o644))

	out, err := f.exec(t, nil, "discover", plain)
	require.NoError(t, err)

	assert.Contains(t, out, "No hidden imports found.")
}

func TestVersion(t *testing.T) {
	f := newFixture(t)

	out, err := f.exec(t, nil, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "ship version")
}

func TestRoot_Help(t *testing.T) {
	f := newFixture(t)

	out, err := f.exec(t, nil, "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "ship")
}
