package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/den/internal/core/domain"
)

const NodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[*domain.Config]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*domain.Config, error) {
			return NewLoader().Load(".")
		},
	})
}
