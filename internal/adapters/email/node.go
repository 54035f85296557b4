package email

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/Hemant2A2/Wizflow/internal/adapters/logger"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
)

// NodeID is the unique identifier for the EMAIL executor Graft node.
const NodeID graft.ID = "adapter.executor.email"

func init() {
	graft.Register(graft.Node[*Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Executor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log), nil
		},
	})
}
