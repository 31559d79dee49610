package envdir

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/den/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/den/internal/core/ports"
)

const NodeID graft.ID = "adapter.envdir"

func init() {
	graft.Register(graft.Node[ports.EnvironmentInstaller]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.EnvironmentInstaller, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewInstaller(log), nil
		},
	})
}
