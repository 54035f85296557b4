package app

import (
	"github.com/Hemant2A2/Wizflow/internal/adapters/email"
	"github.com/Hemant2A2/Wizflow/internal/adapters/rediscache"
	"github.com/Hemant2A2/Wizflow/internal/adapters/restapi"
	"github.com/Hemant2A2/Wizflow/internal/adapters/shell"
	"github.com/Hemant2A2/Wizflow/internal/adapters/telemetry"
	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
	"github.com/Hemant2A2/Wizflow/internal/engine/scheduler"
)

// Components bundles the pieces cmd/wizflow needs from the CLI layer:
// the App itself plus the logger a failed command's error is logged to.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NewServerRegistry wires a Registry for the Control Session server: a
// Scheduler backed entirely by Redis (cache, event bus, status store),
// the same way internal/engine/scheduler.NodeID wires a cas/inmembus one
// for the batch CLI. Built by hand rather than through graft, since a
// second concrete *scheduler.Scheduler node would collide with the CLI's
// graft-registered one under the same Go type. The returned EventBus is
// the same instance the Scheduler publishes to, for wsforward.Handler's
// own Subscribe calls.
func NewServerRegistry(redisAddr string, log ports.Logger) (*Registry, ports.EventBus) {
	client := rediscache.NewClient(redisAddr)
	taskCache := rediscache.NewCache(client)
	bus := rediscache.NewBus(client)
	status := rediscache.NewStatusStore(client)

	executors := map[domain.TaskType]ports.Executor{
		domain.TaskShell:   shell.NewExecutor(log),
		domain.TaskRESTAPI: restapi.NewExecutor(log),
		domain.TaskEmail:   email.NewExecutor(log),
	}

	sched := scheduler.NewScheduler(executors, taskCache, bus, status, log, telemetry.NewNoOp())
	return NewRegistry(sched), bus
}
