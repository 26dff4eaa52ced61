// Package config provides the configuration loader for ship.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file looked up in the working
// directory.
const DefaultFilename = "ship.yaml"

var _ ports.SettingsLoader = (*FileLoader)(nil)

// FileLoader implements ports.SettingsLoader using a YAML file.
type FileLoader struct {
	Filename string
}

// Load reads the configuration from the given working directory. A
// missing file yields the defaults; a present but malformed file is an
// error, since silently ignoring a user's config is worse than failing.
func (l *FileLoader) Load(cwd string) (*domain.Settings, error) {
	name := l.Filename
	if name == "" {
		name = DefaultFilename
	}
	return Load(filepath.Join(cwd, name))
}

// Load reads a configuration file and returns the merged settings.
func Load(path string) (*domain.Settings, error) {
	settings := domain.DefaultSettings()

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &settings, nil
		}
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var shipfile Shipfile
	if err := yaml.Unmarshal(data, &shipfile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	apply(&settings, shipfile)
	return &settings, nil
}

func apply(s *domain.Settings, f Shipfile) {
	if f.Cache.Enabled != nil {
		s.Cache.Enabled = *f.Cache.Enabled
	}
	if f.Cache.Dir != "" {
		s.Cache.Dir = f.Cache.Dir
	}
	if f.Cache.MaxSizeMB > 0 {
		s.Cache.MaxSizeMB = f.Cache.MaxSizeMB
	}
	if f.Cache.RetentionDays > 0 {
		s.Cache.RetentionDays = f.Cache.RetentionDays
	}

	if f.Imports.Enabled != nil {
		s.Discover.Enabled = *f.Imports.Enabled
	}
	if f.Imports.ScanDepth > 0 {
		s.Discover.ScanDepth = f.Imports.ScanDepth
	}
	if f.Imports.Python != "" {
		s.Discover.Python = f.Imports.Python
	}

	if f.Engine.Command != "" {
		s.Engine.Command = f.Engine.Command
	}
	if f.Engine.OutputDir != "" {
		s.Engine.OutputDir = f.Engine.OutputDir
	}
}
