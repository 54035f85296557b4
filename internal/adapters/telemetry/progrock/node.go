package progrock

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the progrock Telemetry Graft node,
// registered as the concrete *Recorder type rather than ports.Telemetry
// so it can coexist with the no-op adapter under graft's per-type
// node registry.
const NodeID graft.ID = "adapter.telemetry.progrock"

func init() {
	graft.Register(graft.Node[*Recorder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Recorder, error) {
			return New().(*Recorder), nil
		},
	})
}
