package git

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/den/internal/adapters/config" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/den/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/den/internal/core/ports"
)

const NodeID graft.ID = "adapter.git"

func init() {
	graft.Register(graft.Node[ports.GitResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.GitResolver, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(cfg.CacheDir, log), nil
		},
	})
}
