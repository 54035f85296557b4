// Package app implements the application layer shared by the batch CLI
// and the Control Session server: blueprint loading, driver selection,
// and (for the server) tracking in-flight workflows.
package app

import (
	"context"

	"go.trai.ch/zerr"

	"github.com/Hemant2A2/Wizflow/internal/core/cache"
	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/graph"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
	"github.com/Hemant2A2/Wizflow/internal/engine/scheduler"
)

// App is the batch-driver application logic: load a blueprint from disk
// and run it to completion, serially or in parallel.
type App struct {
	loader ports.BlueprintLoader
	sched  *scheduler.Scheduler
	cache  ports.Cache
	status ports.StatusStore
	logger ports.Logger
}

// New creates a new App instance.
func New(loader ports.BlueprintLoader, sched *scheduler.Scheduler, taskCache ports.Cache, status ports.StatusStore, logger ports.Logger) *App {
	return &App{loader: loader, sched: sched, cache: taskCache, status: status, logger: logger}
}

// RunOptions configures a single batch invocation.
type RunOptions struct {
	BaseDir  string
	Parallel bool
	Workers  int
}

// Run loads the blueprint at path and drives it to completion, returning
// the workflow's final status so the caller can pick an exit code (spec's
// batch contract: 0 on success, 1 on blueprint-load error or any failed
// task).
func (a *App) Run(ctx context.Context, path string, opts RunOptions) (domain.WorkflowStatus, error) {
	wf, err := a.loader.Load(path)
	if err != nil {
		return domain.WorkflowPending, zerr.Wrap(err, "failed to load blueprint")
	}
	wf.Normalize()

	runOpts := scheduler.RunOptions{BaseDir: opts.BaseDir, Workers: opts.Workers}
	var runErr error
	if opts.Parallel {
		runErr = a.sched.RunParallel(ctx, wf, runOpts)
	} else {
		runErr = a.sched.RunSerial(ctx, wf, runOpts)
	}
	if runErr != nil {
		return domain.WorkflowPending, runErr
	}

	return a.status.WorkflowStatus(ctx, wf.Key())
}

// Plan loads the blueprint at path and reports which tasks would
// re-execute against the current cache, without running anything. Dirty
// tasks are those whose raw fingerprint no longer matches the cached
// entry, plus the transitive closure of their dependents.
func (a *App) Plan(ctx context.Context, path string) (map[string]bool, error) {
	wf, err := a.loader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load blueprint")
	}
	wf.Normalize()

	g, err := graph.Build(wf.Tasks)
	if err != nil {
		return nil, err
	}
	if _, err := graph.TopologicalOrder(g); err != nil {
		return nil, err
	}

	return cache.Plan(ctx, a.cache, wf.Key(), g)
}

// Scheduler exposes the underlying Execution Controller the App runs
// workflows on.
func (a *App) Scheduler() *scheduler.Scheduler {
	return a.sched
}

// Loader exposes the blueprint loader the App reads blueprint files with.
func (a *App) Loader() ports.BlueprintLoader {
	return a.loader
}
