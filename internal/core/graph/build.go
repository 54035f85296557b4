// Package graph builds and orders the task dependency graph: the Graph
// Builder validates blueprint-level shape (duplicate ids, unknown
// dependencies, missing required fields); the Topological Scheduler
// (toposort.go) separately detects cycles and computes an execution
// order and the graph's max width.
package graph

import (
	"sort"

	"go.trai.ch/zerr"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
)

// Build validates a flat task list and constructs a domain.Graph from it.
// It checks for duplicate task ids, dependencies on unknown task ids, and
// fields required by each task's type. It does NOT detect cycles — that
// is the Topological Scheduler's responsibility, so a graph returned by
// Build may still be cyclic.
func Build(tasks []domain.Task) (*domain.Graph, error) {
	if len(tasks) == 0 {
		return nil, domain.NewBlueprintError(domain.ErrNoTasks)
	}

	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			return nil, domain.NewBlueprintError(zerr.With(domain.ErrTaskAlreadyExists, "task_id", t.ID))
		}
		seen[t.ID] = true

		if err := requireFields(t); err != nil {
			return nil, domain.NewBlueprintError(err)
		}
	}

	for _, t := range tasks {
		for _, dep := range t.DependsOn {
			if !seen[dep] {
				return nil, domain.NewBlueprintError(zerr.With(domain.ErrMissingDependency, "task_id", t.ID, "dependency", dep))
			}
		}
	}

	return domain.NewGraph(tasks), nil
}

// requireFields enforces the fields each task type needs to execute,
// independent of template resolution (placeholders are allowed in these
// fields; only their presence is checked here).
func requireFields(t domain.Task) error {
	switch t.Type {
	case domain.TaskShell:
		if t.Command == "" {
			return zerr.With(domain.ErrMissingField, "task_id", t.ID, "field", "command")
		}
	case domain.TaskRESTAPI:
		if t.URL == "" {
			return zerr.With(domain.ErrMissingField, "task_id", t.ID, "field", "url")
		}
		if t.Method == "" {
			return zerr.With(domain.ErrMissingField, "task_id", t.ID, "field", "method")
		}
	case domain.TaskEmail:
		if len(t.Recipients) == 0 {
			return zerr.With(domain.ErrMissingField, "task_id", t.ID, "field", "recipients")
		}
	default:
		return zerr.With(domain.ErrUnknownTaskType, "task_id", t.ID, "type", string(t.Type))
	}
	return nil
}

// sortedCopy returns ids sorted lexicographically, for deterministic
// iteration over disconnected components / tie-broken frontiers.
func sortedCopy(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out
}
