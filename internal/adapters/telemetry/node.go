package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
)

// NoOpNodeID is the unique identifier for the no-op Telemetry Graft node,
// used by the server binary where no terminal progress view applies.
//
// Registered as the concrete *NoOp type, not ports.Telemetry: graft keys
// nodes by type, and the progrock adapter also implements ports.Telemetry
// for the batch CLI, so the two cannot share one interface-typed node.
// internal/app picks between them explicitly when wiring a Scheduler.
const NoOpNodeID graft.ID = "adapter.telemetry.noop"

func init() {
	graft.Register(graft.Node[*NoOp]{
		ID:        NoOpNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*NoOp, error) {
			return NewNoOp(), nil
		},
	})
}
