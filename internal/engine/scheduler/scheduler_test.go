package scheduler_test

import (
	"context"
	"sync"
	"testing"

	"github.com/Hemant2A2/Wizflow/internal/adapters/inmembus"
	"github.com/Hemant2A2/Wizflow/internal/adapters/telemetry"
	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
	"github.com/Hemant2A2/Wizflow/internal/engine/scheduler"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]domain.CacheEntry
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]domain.CacheEntry)}
}

func (c *fakeCache) key(wfKey, taskID string) string { return wfKey + ":" + taskID }

func (c *fakeCache) Load(_ context.Context, wfKey, taskID string) (*domain.CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[c.key(wfKey, taskID)]
	if !ok {
		return nil, nil
	}
	cp := e
	return &cp, nil
}

func (c *fakeCache) Store(_ context.Context, wfKey, taskID string, entry domain.CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(wfKey, taskID)] = entry
	return nil
}

var _ ports.Cache = (*fakeCache)(nil)

type behaviorFunc func(task domain.Task) (any, error)

// fakeExecutor stands in for shell/restapi/email in scheduler tests: it
// records per-task call counts (to verify cache-hit invariants) without
// spawning real subprocesses or network calls.
type fakeExecutor struct {
	mu        sync.Mutex
	calls     map[string]int
	behavior  behaviorFunc
	onExecute func(task domain.Task)
}

func newFakeExecutor(behavior behaviorFunc) *fakeExecutor {
	return &fakeExecutor{calls: make(map[string]int), behavior: behavior}
}

func (f *fakeExecutor) Execute(_ context.Context, task domain.Task, _ string) (any, error) {
	f.mu.Lock()
	f.calls[task.ID]++
	f.mu.Unlock()
	if f.onExecute != nil {
		f.onExecute(task)
	}
	return f.behavior(task)
}

func (f *fakeExecutor) callCount(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[id]
}

var _ ports.Executor = (*fakeExecutor)(nil)

type harness struct {
	sched  *scheduler.Scheduler
	bus    *inmembus.Bus
	status *inmembus.StatusStore
	cache  *fakeCache
	exec   *fakeExecutor
}

func newHarness(t *testing.T, behavior behaviorFunc) *harness {
	t.Helper()
	bus := inmembus.NewBus()
	status := inmembus.NewStatusStore()
	fcache := newFakeCache()
	exec := newFakeExecutor(behavior)

	executors := map[domain.TaskType]ports.Executor{
		domain.TaskShell: exec,
	}
	sched := scheduler.NewScheduler(executors, fcache, bus, status, nopLogger{}, telemetry.NewNoOp())
	return &harness{sched: sched, bus: bus, status: status, cache: fcache, exec: exec}
}

func shellTask(id, command string, dependsOn []string, outputName string) domain.Task {
	return domain.Task{
		ID:        id,
		Type:      domain.TaskShell,
		Command:   command,
		DependsOn: dependsOn,
		Outputs: map[string]domain.ExtractionSpec{
			outputName: {Type: "json", JSONPath: "$"},
		},
	}
}
