package discover

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ship/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ship/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ship/internal/adapters/pyenv"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ship/internal/adapters/pyscan"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ship/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports"
)

// NodeID is the unique identifier for the import discoverer Graft node.
const NodeID graft.ID = "engine.discover"

func init() {
	graft.Register(graft.Node[*Discoverer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			pyscan.NodeID,
			pyenv.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Discoverer, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			parser, err := graft.Dep[ports.ImportParser](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[ports.ModuleResolver](ctx)
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
			return New(settings.Discover, parser, resolver, log, tracer), nil
		},
	})
}
