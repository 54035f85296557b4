// Package ports defines the core interfaces the engine depends on: task
// execution, caching, the event bus, status storage, and logging.
package ports

import (
	"context"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
)

// Executor runs a single resolved task and returns its raw output, which
// the Output Extractor then projects into named outputs.
//
type Executor interface {
	// Execute runs task (already template-resolved) with baseDir as its
	// working directory / artifact root.
	Execute(ctx context.Context, task domain.Task, baseDir string) (any, error)
}
