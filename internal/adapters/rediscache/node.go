package rediscache

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
)

// EnvRedisAddr names the environment variable carrying the Redis address
// used by the server binary's Control Sessions.
const EnvRedisAddr = "WIZFLOW_REDIS_ADDR"

// DefaultAddr is used when EnvRedisAddr is unset.
const DefaultAddr = "localhost:6379"

// Node IDs for the Redis-backed Cache, EventBus, and StatusStore.
// Registered under their own concrete types, not ports.Cache/ports.EventBus/
// ports.StatusStore, so they can coexist with the in-memory and file-backed
// adapters that implement the same interfaces; internal/app picks the
// backend explicitly per binary.
const (
	ClientNodeID      graft.ID = "adapter.rediscache.client"
	CacheNodeID       graft.ID = "adapter.rediscache.cache"
	BusNodeID         graft.ID = "adapter.rediscache.eventbus"
	StatusStoreNodeID graft.ID = "adapter.rediscache.statusstore"
)

func init() {
	graft.Register(graft.Node[*Client]{
		ID:        ClientNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Client, error) {
			addr := os.Getenv(EnvRedisAddr)
			if addr == "" {
				addr = DefaultAddr
			}
			return NewClient(addr), nil
		},
	})

	graft.Register(graft.Node[*Cache]{
		ID:        CacheNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ClientNodeID},
		Run: func(ctx context.Context) (*Cache, error) {
			client, err := graft.Dep[*Client](ctx)
			if err != nil {
				return nil, err
			}
			return NewCache(client), nil
		},
	})

	graft.Register(graft.Node[*Bus]{
		ID:        BusNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ClientNodeID},
		Run: func(ctx context.Context) (*Bus, error) {
			client, err := graft.Dep[*Client](ctx)
			if err != nil {
				return nil, err
			}
			return NewBus(client), nil
		},
	})

	graft.Register(graft.Node[*StatusStore]{
		ID:        StatusStoreNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ClientNodeID},
		Run: func(ctx context.Context) (*StatusStore, error) {
			client, err := graft.Dep[*Client](ctx)
			if err != nil {
				return nil, err
			}
			return NewStatusStore(client), nil
		},
	})
}
