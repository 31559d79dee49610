package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/den/internal/adapters/backend"  //nolint:depguard // Wired in app layer
	"go.trai.ch/den/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/den/internal/adapters/manifest" //nolint:depguard // Wired in app layer
	"go.trai.ch/den/internal/adapters/repodata" //nolint:depguard // Wired in app layer
	"go.trai.ch/den/internal/core/ports"
	"go.trai.ch/den/internal/engine/dispatch"
)

// NodeID is the unique identifier for the main App Graft node.
const NodeID graft.ID = "app.main"

func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			manifest.NodeID,
			backend.NodeID,
			repodata.NodeID,
			dispatch.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			manifests, err := graft.Dep[ports.ManifestLoader](ctx)
			if err != nil {
				return nil, err
			}

			backends, err := graft.Dep[ports.BackendFactory](ctx)
			if err != nil {
				return nil, err
			}

			repodataLoader, err := graft.Dep[ports.RepodataLoader](ctx)
			if err != nil {
				return nil, err
			}

			builder, err := graft.Dep[*dispatch.Builder](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(manifests, backends, repodataLoader, builder, log), nil
		},
	})
}
