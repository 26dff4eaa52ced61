package pyenv

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ship/internal/adapters/config"
	"go.trai.ch/ship/internal/adapters/logger"
	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports"
)

// NodeID is the unique identifier for the module resolver Graft node.
const NodeID graft.ID = "adapter.module_resolver"

func init() {
	graft.Register(graft.Node[ports.ModuleResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ModuleResolver, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(settings.Discover.Python, log), nil
		},
	})
}
