package scheduler

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/Hemant2A2/Wizflow/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"github.com/Hemant2A2/Wizflow/internal/adapters/email"     //nolint:depguard // Wired in engine wiring
	"github.com/Hemant2A2/Wizflow/internal/adapters/inmembus"  //nolint:depguard // Wired in engine wiring
	"github.com/Hemant2A2/Wizflow/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"github.com/Hemant2A2/Wizflow/internal/adapters/restapi"   //nolint:depguard // Wired in engine wiring
	"github.com/Hemant2A2/Wizflow/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"github.com/Hemant2A2/Wizflow/internal/adapters/telemetry/progrock"
	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
)

// NodeID is the unique identifier for the batch CLI's Scheduler Graft
// node: cas-backed cache, in-memory bus/status store, progrock terminal
// telemetry. The server binary wires its own Scheduler manually in
// internal/app.NewServerRegistry, Redis-backed throughout — two
// concrete *Scheduler values can't both pass through graft's per-type
// registry, so only one binary's wiring is graft-driven.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			restapi.NodeID,
			email.NodeID,
			cas.NodeID,
			inmembus.BusNodeID,
			inmembus.StatusStoreNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			shellExec, err := graft.Dep[*shell.Executor](ctx)
			if err != nil {
				return nil, err
			}
			restapiExec, err := graft.Dep[*restapi.Executor](ctx)
			if err != nil {
				return nil, err
			}
			emailExec, err := graft.Dep[*email.Executor](ctx)
			if err != nil {
				return nil, err
			}

			taskCache, err := graft.Dep[ports.Cache](ctx)
			if err != nil {
				return nil, err
			}
			bus, err := graft.Dep[*inmembus.Bus](ctx)
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
			rec, err := graft.Dep[*progrock.Recorder](ctx)
			if err != nil {
				return nil, err
			}

			executors := map[domain.TaskType]ports.Executor{
				domain.TaskShell:   shellExec,
				domain.TaskRESTAPI: restapiExec,
				domain.TaskEmail:   emailExec,
			}

			return NewScheduler(executors, taskCache, bus, status, log, rec), nil
		},
	})
}
