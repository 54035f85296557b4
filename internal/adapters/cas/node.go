package cas

import (
	"context"
	"os"

	"github.com/grindlemire/graft"

	"github.com/Hemant2A2/Wizflow/internal/core/ports"
)

// NodeID is the unique identifier for the file-backed Cache Graft node.
const NodeID graft.ID = "adapter.cache.cas"

// DefaultDir is the cache directory used when WIZFLOW_CACHE_DIR is unset.
const DefaultDir = ".wizflow/cache"

func init() {
	graft.Register(graft.Node[ports.Cache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Cache, error) {
			dir := os.Getenv("WIZFLOW_CACHE_DIR")
			if dir == "" {
				dir = DefaultDir
			}
			return NewStore(dir)
		},
	})
}
