package inmembus

import (
	"context"

	"github.com/grindlemire/graft"
)

// Node IDs for the in-memory Bus and StatusStore. Registered under their
// own concrete types rather than ports.EventBus/ports.StatusStore so they
// can coexist with the rediscache adapters, which implement the same
// interfaces for the server binary.
const (
	BusNodeID         graft.ID = "adapter.inmembus.eventbus"
	StatusStoreNodeID graft.ID = "adapter.inmembus.statusstore"
)

func init() {
	graft.Register(graft.Node[*Bus]{
		ID:        BusNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Bus, error) {
			return NewBus(), nil
		},
	})

	graft.Register(graft.Node[*StatusStore]{
		ID:        StatusStoreNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*StatusStore, error) {
			return NewStatusStore(), nil
		},
	})
}
