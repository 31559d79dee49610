package solver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/den/internal/core/ports"
)

const NodeID graft.ID = "adapter.solver"

func init() {
	graft.Register(graft.Node[ports.CondaSolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CondaSolver, error) {
			return New(), nil
		},
	})
}
