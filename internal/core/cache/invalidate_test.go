package cache_test

import (
	"context"
	"testing"

	"github.com/Hemant2A2/Wizflow/internal/core/cache"
	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/graph"
)

type fakeCache struct {
	entries map[string]domain.CacheEntry
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]domain.CacheEntry)}
}

func (f *fakeCache) key(wfKey, taskID string) string { return wfKey + ":" + taskID }

func (f *fakeCache) Load(_ context.Context, wfKey, taskID string) (*domain.CacheEntry, error) {
	e, ok := f.entries[f.key(wfKey, taskID)]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (f *fakeCache) Store(_ context.Context, wfKey, taskID string, entry domain.CacheEntry) error {
	f.entries[f.key(wfKey, taskID)] = entry
	return nil
}

func TestPlan_NoCacheMeansEverythingDirty(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", Type: domain.TaskShell, Command: "echo a"},
		{ID: "b", Type: domain.TaskShell, Command: "echo b", DependsOn: []string{"a"}},
	}
	g, err := graph.Build(tasks)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	plan, err := cache.Plan(context.Background(), newFakeCache(), "wf:v1", g)
	if err != nil {
		t.Fatalf("unexpected plan error: %v", err)
	}
	if !plan["a"] || !plan["b"] {
		t.Fatalf("expected both tasks dirty on cold cache, got %v", plan)
	}
}

func TestPlan_UnchangedTasksStayClean(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", Type: domain.TaskShell, Command: "echo a"},
		{ID: "b", Type: domain.TaskShell, Command: "echo b", DependsOn: []string{"a"}},
	}
	g, err := graph.Build(tasks)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	store := newFakeCache()
	for _, task := range tasks {
		fp, err := cache.Fingerprint(task)
		if err != nil {
			t.Fatalf("unexpected fingerprint error: %v", err)
		}
		if err := store.Store(context.Background(), "wf:v1", task.ID, domain.CacheEntry{RawHash: fp}); err != nil {
			t.Fatalf("unexpected store error: %v", err)
		}
	}

	plan, err := cache.Plan(context.Background(), store, "wf:v1", g)
	if err != nil {
		t.Fatalf("unexpected plan error: %v", err)
	}
	if plan["a"] || plan["b"] {
		t.Fatalf("expected no tasks dirty when cache matches, got %v", plan)
	}
}

func TestPlan_ChangeInvalidatesDescendants(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", Type: domain.TaskShell, Command: "echo a"},
		{ID: "b", Type: domain.TaskShell, Command: "echo b", DependsOn: []string{"a"}},
		{ID: "c", Type: domain.TaskShell, Command: "echo c", DependsOn: []string{"b"}},
	}
	g, err := graph.Build(tasks)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	store := newFakeCache()
	for _, task := range tasks {
		fp, err := cache.Fingerprint(task)
		if err != nil {
			t.Fatalf("unexpected fingerprint error: %v", err)
		}
		if err := store.Store(context.Background(), "wf:v1", task.ID, domain.CacheEntry{RawHash: fp}); err != nil {
			t.Fatalf("unexpected store error: %v", err)
		}
	}
	// Simulate a change to task "a" by storing a stale hash for it.
	if err := store.Store(context.Background(), "wf:v1", "a", domain.CacheEntry{RawHash: "stale"}); err != nil {
		t.Fatalf("unexpected store error: %v", err)
	}

	plan, err := cache.Plan(context.Background(), store, "wf:v1", g)
	if err != nil {
		t.Fatalf("unexpected plan error: %v", err)
	}
	if !plan["a"] || !plan["b"] || !plan["c"] {
		t.Fatalf("expected a, b, and c all dirty due to transitive closure, got %v", plan)
	}
}
