package app

import (
	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports"
	"go.trai.ch/ship/internal/engine/cache"
	"go.trai.ch/ship/internal/engine/discover"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the
// CLI layer.
type Components struct {
	Packager   *Packager
	Cache      *cache.Cache
	Discoverer *discover.Discoverer
	Logger     ports.Logger
	Settings   *domain.Settings
}
