package domain

import (
	"os"
	"path/filepath"
	"time"
)

// Default configuration values. These match the documented defaults of
// the configuration surface: 1024 MB cache, 30 day retention, scan
// depth 3, both subsystems enabled.
const (
	DefaultMaxCacheSizeMB   = 1024
	DefaultRetentionDays    = 30
	DefaultScanDepth        = 3
	DefaultEngineCommand    = "pyinstaller"
	DefaultOutputDir        = "output"
	DefaultPythonInterpreter = "python3"
)

// EvictionSlack is the fraction of the size limit eviction shrinks the
// cache to. Evicting down to exactly the limit would re-trigger
// eviction on the next small store.
const EvictionSlack = 0.8

// CacheSettings configures the build cache.
type CacheSettings struct {
	Enabled       bool
	Dir           string
	MaxSizeMB     float64
	RetentionDays int
}

// Retention returns the retention period as a duration.
func (s CacheSettings) Retention() time.Duration {
	return time.Duration(s.RetentionDays) * 24 * time.Hour
}

// DiscoverSettings configures the import discoverer.
type DiscoverSettings struct {
	Enabled   bool
	ScanDepth int
	// Python is the interpreter probed for the installed-package
	// manifest used to filter unresolvable modules.
	Python string
}

// EngineSettings configures the external packaging engine invocation.
type EngineSettings struct {
	Command   string
	OutputDir string
}

// Settings is the full runtime configuration. Components receive their
// section at construction; there is no process-global state.
type Settings struct {
	Cache    CacheSettings
	Discover DiscoverSettings
	Engine   EngineSettings
}

// DefaultSettings returns the documented defaults. The cache root lives
// under the user home directory, falling back to the working directory
// when the home cannot be resolved.
func DefaultSettings() Settings {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Settings{
		Cache: CacheSettings{
			Enabled:       true,
			Dir:           filepath.Join(home, ".ship", "cache"),
			MaxSizeMB:     DefaultMaxCacheSizeMB,
			RetentionDays: DefaultRetentionDays,
		},
		Discover: DiscoverSettings{
			Enabled:   true,
			ScanDepth: DefaultScanDepth,
			Python:    DefaultPythonInterpreter,
		},
		Engine: EngineSettings{
			Command:   DefaultEngineCommand,
			OutputDir: DefaultOutputDir,
		},
	}
}
