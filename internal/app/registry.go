package app

import (
	"context"
	"sync"

	"go.trai.ch/zerr"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/engine/scheduler"
)

// runEntry remembers enough about a started workflow to relaunch it on
// RESTART: the blueprint itself (Restart only resets status, it does not
// re-run anything) and the driver/options the original START requested.
type runEntry struct {
	wf       *domain.Workflow
	parallel bool
	opts     scheduler.RunOptions
}

// Registry is the process-scoped, explicit alternative to a package-level
// singleton map: it tracks every workflow a Control Session has started
// against one Scheduler, so a later PAUSE/RESUME/RESTART control message
// (which names no workflow explicitly — a session is scoped to the
// workflow its own START named) can be routed to the right run.
type Registry struct {
	sched *scheduler.Scheduler

	mu   sync.Mutex
	runs map[string]*runEntry
}

// NewRegistry wires a Registry around the shared Scheduler.
func NewRegistry(sched *scheduler.Scheduler) *Registry {
	return &Registry{sched: sched, runs: make(map[string]*runEntry)}
}

// Scheduler exposes the underlying Execution Controller, e.g. for
// WorkflowOutput lookups once a run reaches COMPLETED.
func (r *Registry) Scheduler() *scheduler.Scheduler {
	return r.sched
}

// Start registers wf and launches it on the requested driver in a new
// goroutine. It returns immediately with the workflow's key and a channel
// that receives the run's terminal error (nil on success), once.
func (r *Registry) Start(ctx context.Context, wf *domain.Workflow, parallel bool, opts scheduler.RunOptions) (string, <-chan error) {
	wf.Normalize()
	wfKey := wf.Key()

	r.mu.Lock()
	r.runs[wfKey] = &runEntry{wf: wf, parallel: parallel, opts: opts}
	r.mu.Unlock()

	return wfKey, r.launch(ctx, wf, parallel, opts)
}

// Pause engages wfKey's pause gate.
func (r *Registry) Pause(ctx context.Context, wfKey string) error {
	if !r.known(wfKey) {
		return zerr.With(domain.ErrWorkflowNotFound, "workflow_key", wfKey)
	}
	return r.sched.Pause(ctx, wfKey)
}

// Resume releases wfKey's pause gate.
func (r *Registry) Resume(ctx context.Context, wfKey string) error {
	if !r.known(wfKey) {
		return zerr.With(domain.ErrWorkflowNotFound, "workflow_key", wfKey)
	}
	return r.sched.Resume(ctx, wfKey)
}

// Restart resets wfKey's status map (whole-workflow or from fromTask down)
// and relaunches it on the same driver/options the original START used.
// It returns a fresh terminal-error channel for the relaunched run.
func (r *Registry) Restart(ctx context.Context, wfKey, fromTask string) (<-chan error, error) {
	r.mu.Lock()
	entry, ok := r.runs[wfKey]
	r.mu.Unlock()
	if !ok {
		return nil, zerr.With(domain.ErrWorkflowNotFound, "workflow_key", wfKey)
	}

	if err := r.sched.Restart(ctx, entry.wf, fromTask); err != nil {
		return nil, err
	}
	return r.launch(ctx, entry.wf, entry.parallel, entry.opts), nil
}

func (r *Registry) launch(ctx context.Context, wf *domain.Workflow, parallel bool, opts scheduler.RunOptions) <-chan error {
	done := make(chan error, 1)
	go func() {
		if parallel {
			done <- r.sched.RunParallel(ctx, wf, opts)
			return
		}
		done <- r.sched.RunSerial(ctx, wf, opts)
	}()
	return done
}

func (r *Registry) known(wfKey string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.runs[wfKey]
	return ok
}
