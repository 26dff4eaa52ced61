package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ship/internal/core/domain"
)

func TestSplitInvocation(t *testing.T) {
	tests := []struct {
		name       string
		invocation string
		want       []string
	}{
		{
			name:       "plain",
			invocation: "pyinstaller --onefile app.py",
			want:       []string{"pyinstaller", "--onefile", "app.py"},
		},
		{
			name:       "double quoted path with spaces",
			invocation: `pyinstaller "my app.py"`,
			want:       []string{"pyinstaller", "my app.py"},
		},
		{
			name:       "single quoted",
			invocation: "pyinstaller 'my app.py' --windowed",
			want:       []string{"pyinstaller", "my app.py", "--windowed"},
		},
		{
			name:       "collapsed whitespace",
			invocation: "pyinstaller   \t app.py",
			want:       []string{"pyinstaller", "app.py"},
		},
		{
			name:       "empty quotes keep an argument",
			invocation: `pyinstaller "" app.py`,
			want:       []string{"pyinstaller", "", "app.py"},
		},
		{
			name:       "empty string",
			invocation: "",
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.SplitInvocation(tt.invocation))
		})
	}
}

func TestExtractScriptPath(t *testing.T) {
	tests := []struct {
		name       string
		invocation string
		want       string
	}{
		{"simple", "pyinstaller app.py", "app.py"},
		{"flags before script", "pyinstaller --onefile --windowed app.py", "app.py"},
		{"quoted path", `pyinstaller "my app.py"`, "my app.py"},
		{"flag value ending in py ignored", "pyinstaller --name=app.py", ""},
		{"no script", "pyinstaller app.spec", ""},
		{"first of two scripts", "pyinstaller a.py b.py", "a.py"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ExtractScriptPath(tt.invocation))
		})
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		name       string
		invocation string
		want       string
	}{
		{"script base name", "pyinstaller --onefile dir/app.py", "app"},
		{"name flag wins", "pyinstaller --name tool app.py", "tool"},
		{"name flag equals form", "pyinstaller --name=tool app.py", "tool"},
		{"short name flag", "pyinstaller -n tool app.py", "tool"},
		{"no script no name", "pyinstaller app.spec", ""},
		{"dangling name flag", "pyinstaller app.py --name", "app"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.OutputName(tt.invocation))
		})
	}
}

func TestOneFile(t *testing.T) {
	assert.True(t, domain.OneFile("pyinstaller --onefile app.py"))
	assert.True(t, domain.OneFile("pyinstaller -F app.py"))
	assert.False(t, domain.OneFile("pyinstaller app.py"))
}

func TestTopLevelModule(t *testing.T) {
	assert.Equal(t, "pkg", domain.TopLevelModule("pkg.sub.mod"))
	assert.Equal(t, "os", domain.TopLevelModule("os"))
	assert.Equal(t, "", domain.TopLevelModule(""))
}

func TestModuleSet(t *testing.T) {
	set := domain.NewModuleSet()

	set.Add("numpy")
	set.Add("numpy")
	set.Add("requests")
	set.Add("")

	assert.True(t, set.Has("numpy"))
	assert.False(t, set.Has(""))
	assert.Equal(t, []string{"numpy", "requests"}, set.Sorted())

	set.Remove("numpy")
	assert.False(t, set.Has("numpy"))

	assert.False(t, set.MarkVisited("/a.py"))
	assert.True(t, set.MarkVisited("/a.py"))
	assert.Equal(t, 1, set.VisitedCount())
}

func TestCacheEntry_Expired(t *testing.T) {
	now := time.Now()
	entry := domain.CacheEntry{StoredAt: now.Add(-29 * 24 * time.Hour)}
	retention := 30 * 24 * time.Hour

	assert.False(t, entry.Expired(now, retention))
	assert.True(t, entry.Expired(now.Add(48*time.Hour), retention))
	assert.True(t, entry.Expired(now.Add(24*time.Hour), retention), "exactly at the boundary counts as expired")
}
