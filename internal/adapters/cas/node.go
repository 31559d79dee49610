package cas

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/den/internal/adapters/config" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/den/internal/core/domain"
	"go.trai.ch/den/internal/core/ports"
)

const NodeID graft.ID = "adapter.build_cache_store"

func init() {
	graft.Register(graft.Node[ports.BuildCacheStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.BuildCacheStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(filepath.Join(cfg.CacheDir, "source-builds.json"))
		},
	})
}
