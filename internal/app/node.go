package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/Hemant2A2/Wizflow/internal/adapters/blueprint" //nolint:depguard // Wired in app layer
	"github.com/Hemant2A2/Wizflow/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"github.com/Hemant2A2/Wizflow/internal/adapters/inmembus"  //nolint:depguard // Wired in app layer
	"github.com/Hemant2A2/Wizflow/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
	"github.com/Hemant2A2/Wizflow/internal/engine/scheduler"
)

// AppNodeID is the unique identifier for the batch CLI's App Graft node.
const AppNodeID graft.ID = "app.main"

// ComponentsNodeID is the unique identifier for the App Components Graft node.
const ComponentsNodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			blueprint.NodeID,
			scheduler.NodeID,
			cas.NodeID,
			inmembus.StatusStoreNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.BlueprintLoader](ctx)
			if err != nil {
				return nil, err
			}
			sched, err := graft.Dep[*scheduler.Scheduler](ctx)
			if err != nil {
				return nil, err
			}
			taskCache, err := graft.Dep[ports.Cache](ctx)
			if err != nil {
				return nil, err
			}
			status, err := graft.Dep[*inmembus.StatusStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(loader, sched, taskCache, status, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}
