package meta

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/ship/internal/adapters/config"
	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports"
)

// MetadataFilename is the name of the metadata document inside the
// cache root.
const MetadataFilename = "cache_metadata.json"

// NodeID is the unique identifier for the metadata store Graft node.
const NodeID graft.ID = "adapter.metadata_store"

func init() {
	graft.Register(graft.Node[ports.MetadataStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.MetadataStore, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(filepath.Join(settings.Cache.Dir, MetadataFilename))
		},
	})
}
