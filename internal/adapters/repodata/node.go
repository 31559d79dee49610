package repodata

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/den/internal/core/ports"
)

const NodeID graft.ID = "adapter.repodata"

func init() {
	graft.Register(graft.Node[ports.RepodataLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RepodataLoader, error) {
			return NewLoader(), nil
		},
	})
}
