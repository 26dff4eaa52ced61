package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ship/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/ship/internal/adapters/engine"    //nolint:depguard // Wired in app layer
	"go.trai.ch/ship/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/ship/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/ship/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports"
	"go.trai.ch/ship/internal/engine/cache"
	"go.trai.ch/ship/internal/engine/discover"
)

const (
	// PackagerNodeID is the unique identifier for the Packager Graft node.
	PackagerNodeID graft.ID = "app.packager"
	// ComponentsNodeID is the unique identifier for the components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*Packager]{
		ID:        PackagerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			cache.NodeID,
			discover.NodeID,
			engine.NodeID,
			fs.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Packager, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			buildCache, err := graft.Dep[*cache.Cache](ctx)
			if err != nil {
				return nil, err
			}
			discoverer, err := graft.Dep[*discover.Discoverer](ctx)
			if err != nil {
				return nil, err
			}
			eng, err := graft.Dep[ports.Engine](ctx)
			if err != nil {
				return nil, err
			}
			files, err := graft.Dep[ports.ArtifactStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return New(settings.Engine, buildCache, discoverer, eng, files, log, tracer), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			PackagerNodeID,
			cache.NodeID,
			discover.NodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	packager, err := graft.Dep[*Packager](ctx)
	if err != nil {
		return nil, err
	}

	buildCache, err := graft.Dep[*cache.Cache](ctx)
	if err != nil {
		return nil, err
	}

	discoverer, err := graft.Dep[*discover.Discoverer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[*domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		Packager:   packager,
		Cache:      buildCache,
		Discoverer: discoverer,
		Logger:     log,
		Settings:   settings,
	}, nil
}
