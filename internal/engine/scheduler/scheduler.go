// Package scheduler implements the Execution Controller: the serial and
// parallel drivers that walk a workflow's dependency graph, dispatching
// each task through the shared per-task path (pause gate, cache check,
// template resolution, executor dispatch, output extraction, cache
// store, status/event publish).
package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/zerr"

	"github.com/Hemant2A2/Wizflow/internal/core/cache"
	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/extract"
	"github.com/Hemant2A2/Wizflow/internal/core/graph"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
	"github.com/Hemant2A2/Wizflow/internal/core/template"
)

const pausePollInterval = 500 * time.Millisecond

const baseDirPerm = 0o750

// RunOptions configures a single driver invocation. BaseDir defaults to
// runs/<workflow_name>_<version> when empty. Workers is only consulted by
// RunParallel; when zero it defaults to min(graph max width, NumCPU()*5).
type RunOptions struct {
	BaseDir string
	Workers int
}

// Scheduler is the process-scoped Execution Controller for every workflow
// it is asked to run. One Scheduler may drive many concurrent workflows;
// per-workflow state (graph, results, pause wake channel) is keyed by
// workflow key and guarded independently from the task-dispatch path.
type Scheduler struct {
	executors map[domain.TaskType]ports.Executor
	cache     ports.Cache
	bus       ports.EventBus
	status    ports.StatusStore
	logger    ports.Logger
	telemetry ports.Telemetry

	stateMu sync.RWMutex
	graphs  map[string]*domain.Graph
	results map[string]domain.ResultMap
	wake    map[string]chan struct{}
}

// NewScheduler wires a Scheduler from its executor set and backing ports.
func NewScheduler(
	executors map[domain.TaskType]ports.Executor,
	taskCache ports.Cache,
	bus ports.EventBus,
	status ports.StatusStore,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *Scheduler {
	return &Scheduler{
		executors: executors,
		cache:     taskCache,
		bus:       bus,
		status:    status,
		logger:    logger,
		telemetry: telemetry,
		graphs:    make(map[string]*domain.Graph),
		results:   make(map[string]domain.ResultMap),
		wake:      make(map[string]chan struct{}),
	}
}

// Graph returns the dependency graph built by the most recent run for wfKey.
func (s *Scheduler) Graph(wfKey string) (*domain.Graph, bool) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	g, ok := s.graphs[wfKey]
	return g, ok
}

// Results returns a snapshot of the named outputs produced so far for wfKey.
func (s *Scheduler) Results(wfKey string) domain.ResultMap {
	return s.snapshotResults(wfKey)
}

// WorkflowOutput maps each leaf task id (zero out-degree) to its entry in
// the result map, the payload the Control Session sends on COMPLETED.
func (s *Scheduler) WorkflowOutput(wfKey string) map[string]any {
	g, ok := s.Graph(wfKey)
	if !ok {
		return nil
	}
	results := s.snapshotResults(wfKey)
	out := make(map[string]any, len(g.Leaves()))
	for _, leaf := range g.Leaves() {
		out[leaf] = results[leaf]
	}
	return out
}

// Pause engages the pause gate: no task transitions to RUNNING until Resume.
func (s *Scheduler) Pause(ctx context.Context, wfKey string) error {
	return s.setWorkflowStatus(ctx, wfKey, domain.WorkflowPaused)
}

// Resume releases the pause gate.
func (s *Scheduler) Resume(ctx context.Context, wfKey string) error {
	return s.setWorkflowStatus(ctx, wfKey, domain.WorkflowRunning)
}

func (s *Scheduler) storeGraph(wfKey string, g *domain.Graph) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.graphs[wfKey] = g
}

func (s *Scheduler) snapshotResults(wfKey string) domain.ResultMap {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	rm := s.results[wfKey]
	out := make(domain.ResultMap, len(rm))
	for k, v := range rm {
		out[k] = v
	}
	return out
}

func (s *Scheduler) storeResult(wfKey, taskID string, outputs map[string]any) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	rm := s.results[wfKey]
	if rm == nil {
		rm = make(domain.ResultMap)
		s.results[wfKey] = rm
	}
	rm[taskID] = outputs
}

// wakeChan returns the current wake channel for wfKey, creating one if
// this is the first caller to observe it.
func (s *Scheduler) wakeChan(wfKey string) chan struct{} {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	ch, ok := s.wake[wfKey]
	if !ok {
		ch = make(chan struct{})
		s.wake[wfKey] = ch
	}
	return ch
}

// broadcastWake closes the current wake channel for wfKey and installs a
// fresh one, releasing every pause-gate goroutine blocked on the old one.
// This is the condition-variable substitute spec.md §5/§9 describes: a
// level-triggered wakeup fired on every workflow-status write.
func (s *Scheduler) broadcastWake(wfKey string) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if ch, ok := s.wake[wfKey]; ok {
		close(ch)
	}
	s.wake[wfKey] = make(chan struct{})
}

func (s *Scheduler) setWorkflowStatus(ctx context.Context, wfKey string, status domain.WorkflowStatus) error {
	if err := s.status.SetWorkflowStatus(ctx, wfKey, status); err != nil {
		return err
	}
	s.broadcastWake(wfKey)
	return s.bus.Publish(ctx, wfKey, domain.WorkflowUpdate(status))
}

func (s *Scheduler) setTaskStatus(ctx context.Context, wfKey, taskID string, status domain.TaskStatus) error {
	if err := s.status.SetTaskStatus(ctx, wfKey, taskID, status); err != nil {
		return err
	}
	return s.bus.Publish(ctx, wfKey, domain.TaskUpdate(taskID, status))
}

// pauseGate blocks the caller while wfKey's workflow status is PAUSED. It
// wakes either on the next status-write broadcast or a 500ms fallback poll.
func (s *Scheduler) pauseGate(ctx context.Context, wfKey string) error {
	for {
		status, err := s.status.WorkflowStatus(ctx, wfKey)
		if err != nil {
			return err
		}
		if status != domain.WorkflowPaused {
			return nil
		}
		wake := s.wakeChan(wfKey)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-wake:
		case <-time.After(pausePollInterval):
		}
	}
}

func (s *Scheduler) failTask(ctx context.Context, wfKey, taskID string, cause error) error {
	s.logger.Error(cause)
	return s.setTaskStatus(ctx, wfKey, taskID, domain.TaskFailed)
}

// runOneTask is the shared per-task path for both drivers: pause gate,
// cache check, template resolution, executor dispatch, output extraction,
// cache store, status/event publish. It never mutates a caller-owned
// results map; it returns the task's outputs so the dispatch thread (the
// only place allowed to mutate shared scheduling state) can record them.
//
// A cached entry is only served when the resolved fingerprint matches AND
// the task is not in reexec — the Invalidation Planner's pre-run verdict
// for descendants whose own resolved config didn't change but which sit
// downstream of an edited task.
func (s *Scheduler) runOneTask(
	ctx context.Context,
	wfKey, baseDir string,
	task domain.Task,
	parentResults domain.ResultMap,
	reexec map[string]bool,
) (outputs map[string]any, failed bool, err error) {
	if err := s.pauseGate(ctx, wfKey); err != nil {
		return nil, false, err
	}
	if err := s.setTaskStatus(ctx, wfKey, task.ID, domain.TaskRunning); err != nil {
		return nil, false, err
	}

	vctx, vertex := s.telemetry.Record(ctx, task.ID)

	rawFp, rfperr := cache.Fingerprint(task)
	if rfperr != nil {
		vertex.Complete(rfperr)
		return nil, true, s.failTask(ctx, wfKey, task.ID, rfperr)
	}

	tctx := template.BuildContext(task, parentResults)
	resolved, rerr := template.Resolve(task, tctx)
	if rerr != nil {
		vertex.Complete(rerr)
		return nil, true, s.failTask(ctx, wfKey, task.ID, rerr)
	}

	fp, ferr := cache.Fingerprint(resolved)
	if ferr != nil {
		vertex.Complete(ferr)
		return nil, true, s.failTask(ctx, wfKey, task.ID, ferr)
	}

	entry, lerr := s.cache.Load(ctx, wfKey, task.ID)
	if lerr != nil {
		vertex.Complete(lerr)
		return nil, false, lerr
	}
	if entry != nil && entry.ConfigHash == fp && !reexec[task.ID] {
		vertex.Cached()
		if err := s.setTaskStatus(ctx, wfKey, task.ID, domain.TaskCompleted); err != nil {
			return nil, false, err
		}
		return entry.Outputs, false, nil
	}

	executor, ok := s.executors[resolved.Type]
	if !ok {
		taskErr := domain.NewTaskExecutionError(task.ID, zerr.With(domain.ErrUnknownTaskType, "type", string(resolved.Type)))
		vertex.Complete(taskErr)
		return nil, true, s.failTask(ctx, wfKey, task.ID, taskErr)
	}

	raw, eerr := executor.Execute(vctx, resolved, baseDir)
	if eerr != nil {
		wrapped := domain.NewTaskExecutionError(task.ID, eerr)
		vertex.Complete(wrapped)
		return nil, true, s.failTask(ctx, wfKey, task.ID, wrapped)
	}

	extracted, xerr := extract.ExtractAll(resolved, raw)
	if xerr != nil {
		wrapped := domain.NewTaskExecutionError(task.ID, xerr)
		vertex.Complete(wrapped)
		return nil, true, s.failTask(ctx, wfKey, task.ID, wrapped)
	}

	if serr := s.cache.Store(ctx, wfKey, task.ID, domain.CacheEntry{Outputs: extracted, ConfigHash: fp, RawHash: rawFp}); serr != nil {
		s.logger.Warn("cache store failed for task " + task.ID + ": " + serr.Error())
	}

	vertex.Complete(nil)
	if err := s.setTaskStatus(ctx, wfKey, task.ID, domain.TaskCompleted); err != nil {
		return extracted, false, err
	}
	return extracted, false, nil
}

// blockDescendants marks every transitive dependent of id as blocked, via
// BFS over the graph's forward (dependents) edges.
func blockDescendants(g *domain.Graph, id string, blocked map[string]bool) {
	queue := append([]string(nil), g.Dependents(id)...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if blocked[next] {
			continue
		}
		blocked[next] = true
		queue = append(queue, g.Dependents(next)...)
	}
}

func resolveBaseDir(wf *domain.Workflow, opts RunOptions) (string, error) {
	dir := opts.BaseDir
	if dir == "" {
		dir = filepath.Join("runs", wf.WorkflowName+"_"+wf.Version)
	}
	if err := os.MkdirAll(dir, baseDirPerm); err != nil {
		return "", zerr.Wrap(err, "scheduler: create base dir")
	}
	return dir, nil
}

func buildGraph(wf *domain.Workflow) (*domain.Graph, error) {
	g, err := graph.Build(wf.Tasks)
	if err != nil {
		return nil, err
	}
	if _, err := graph.TopologicalOrder(g); err != nil {
		return nil, err
	}
	return g, nil
}
