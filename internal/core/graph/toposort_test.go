package graph_test

import (
	"testing"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/graph"
)

func TestTopologicalOrder_LinearChain(t *testing.T) {
	tasks := []domain.Task{
		{ID: "c", Type: domain.TaskShell, Command: "echo c", DependsOn: []string{"b"}},
		{ID: "a", Type: domain.TaskShell, Command: "echo a"},
		{ID: "b", Type: domain.TaskShell, Command: "echo b", DependsOn: []string{"a"}},
	}

	g, err := graph.Build(tasks)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	order, err := graph.TopologicalOrder(g)
	if err != nil {
		t.Fatalf("unexpected toposort error: %v", err)
	}

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestTopologicalOrder_DeterministicTieBreak(t *testing.T) {
	tasks := []domain.Task{
		{ID: "z", Type: domain.TaskShell, Command: "echo z"},
		{ID: "y", Type: domain.TaskShell, Command: "echo y"},
		{ID: "x", Type: domain.TaskShell, Command: "echo x"},
	}

	g, err := graph.Build(tasks)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	order, err := graph.TopologicalOrder(g)
	if err != nil {
		t.Fatalf("unexpected toposort error: %v", err)
	}

	want := []string{"x", "y", "z"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected deterministic lexicographic order %v, got %v", want, order)
		}
	}
}

func TestTopologicalOrder_Cycle(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", Type: domain.TaskShell, Command: "echo a", DependsOn: []string{"b"}},
		{ID: "b", Type: domain.TaskShell, Command: "echo b", DependsOn: []string{"a"}},
	}

	g, err := graph.Build(tasks)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	_, err = graph.TopologicalOrder(g)
	if err == nil {
		t.Fatal("expected cycle error, got nil")
	}
	if _, ok := err.(*domain.CycleError); !ok {
		t.Fatalf("expected *domain.CycleError, got %T", err)
	}
}

func TestMaxWidth(t *testing.T) {
	// a -> b, a -> c, b -> d, c -> d  (width 2 at the b/c level)
	tasks := []domain.Task{
		{ID: "a", Type: domain.TaskShell, Command: "echo a"},
		{ID: "b", Type: domain.TaskShell, Command: "echo b", DependsOn: []string{"a"}},
		{ID: "c", Type: domain.TaskShell, Command: "echo c", DependsOn: []string{"a"}},
		{ID: "d", Type: domain.TaskShell, Command: "echo d", DependsOn: []string{"b", "c"}},
	}

	g, err := graph.Build(tasks)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	if width := graph.MaxWidth(g); width != 2 {
		t.Fatalf("expected max width 2, got %d", width)
	}
}

func TestMaxWidth_Cycle(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", Type: domain.TaskShell, Command: "echo a", DependsOn: []string{"b"}},
		{ID: "b", Type: domain.TaskShell, Command: "echo b", DependsOn: []string{"a"}},
	}

	g, err := graph.Build(tasks)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	if width := graph.MaxWidth(g); width != 0 {
		t.Fatalf("expected 0 for cyclic graph, got %d", width)
	}
}
