package backend

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/den/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/den/internal/core/ports"
)

const NodeID graft.ID = "adapter.backend"

// DefaultCommand is the backend den spawns when the workspace does not name
// one.
var DefaultCommand = []string{"den-backend"}

func init() {
	graft.Register(graft.Node[ports.BackendFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.BackendFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewCommandFactory(DefaultCommand, log), nil
		},
	})
}
