package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ship/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ship/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ship/internal/adapters/hash"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ship/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ship/internal/adapters/meta"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ship/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports"
)

// NodeID is the unique identifier for the build cache Graft node.
const NodeID graft.ID = "engine.cache"

func init() {
	graft.Register(graft.Node[*Cache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			meta.NodeID,
			hash.NodeID,
			fs.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Cache, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.MetadataStore](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
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
			return New(settings.Cache, store, hasher, files, log, tracer), nil
		},
	})
}
