// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/ship/internal/adapters/config"
	_ "go.trai.ch/ship/internal/adapters/engine"
	_ "go.trai.ch/ship/internal/adapters/fs"
	_ "go.trai.ch/ship/internal/adapters/hash"
	_ "go.trai.ch/ship/internal/adapters/logger"
	_ "go.trai.ch/ship/internal/adapters/meta"
	_ "go.trai.ch/ship/internal/adapters/pyenv"
	_ "go.trai.ch/ship/internal/adapters/pyscan"
	_ "go.trai.ch/ship/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/ship/internal/app"
	_ "go.trai.ch/ship/internal/engine/cache"
	_ "go.trai.ch/ship/internal/engine/discover"
)
