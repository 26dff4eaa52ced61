package config

// Shipfile represents the structure of the ship.yaml configuration
// file. Every field is optional; unset values fall back to the
// documented defaults. Booleans are pointers so "explicitly false" and
// "unset" stay distinguishable.
type Shipfile struct {
	Cache   CacheDTO   `yaml:"cache"`
	Imports ImportsDTO `yaml:"imports"`
	Engine  EngineDTO  `yaml:"engine"`
}

// CacheDTO configures the build cache.
type CacheDTO struct {
	Enabled       *bool   `yaml:"enabled"`
	Dir           string  `yaml:"dir"`
	MaxSizeMB     float64 `yaml:"max_size_mb"`
	RetentionDays int     `yaml:"retention_days"`
}

// ImportsDTO configures the import discoverer.
type ImportsDTO struct {
	Enabled   *bool  `yaml:"enabled"`
	ScanDepth int    `yaml:"scan_depth"`
	Python    string `yaml:"python"`
}

// EngineDTO configures the packaging engine invocation.
type EngineDTO struct {
	Command   string `yaml:"command"`
	OutputDir string `yaml:"output_dir"`
}
