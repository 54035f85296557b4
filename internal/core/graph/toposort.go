package graph

import (
	"go.trai.ch/zerr"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
)

// TopologicalOrder computes a deterministic execution order for g using
// Kahn's algorithm: the ready frontier (zero-indegree nodes) is sorted
// lexicographically at every step, so disconnected components and ties
// order the same way on every run. Returns a *domain.CycleError if fewer
// ids are emitted than the graph contains.
func TopologicalOrder(g *domain.Graph) ([]string, error) {
	indegree := g.Indegree()
	ids := sortedCopy(g.TaskIDs())

	var ready []string
	for _, id := range ids {
		if indegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	order := make([]string, 0, g.TaskCount())
	for len(ready) > 0 {
		ready = sortedCopy(ready)
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		for _, child := range sortedCopy(g.Dependents(next)) {
			indegree[child]--
			if indegree[child] == 0 {
				ready = append(ready, child)
			}
		}
	}

	if len(order) != g.TaskCount() {
		return nil, domain.NewCycleError(zerr.With(domain.ErrCycleDetected, "resolved", len(order), "total", g.TaskCount()))
	}
	return order, nil
}

// MaxWidth computes the widest simultaneous zero-indegree frontier seen
// while peeling the graph level by level, used to size the Execution
// Controller's worker pool. Returns 0 if g contains a cycle (callers
// should run TopologicalOrder first to surface that error).
func MaxWidth(g *domain.Graph) int {
	indegree := g.Indegree()
	ids := sortedCopy(g.TaskIDs())

	var frontier []string
	for _, id := range ids {
		if indegree[id] == 0 {
			frontier = append(frontier, id)
		}
	}

	max := 0
	processed := 0
	for len(frontier) > 0 {
		if len(frontier) > max {
			max = len(frontier)
		}
		var next []string
		for _, id := range frontier {
			processed++
			for _, child := range g.Dependents(id) {
				indegree[child]--
				if indegree[child] == 0 {
					next = append(next, child)
				}
			}
		}
		frontier = next
	}

	if processed != g.TaskCount() {
		return 0
	}
	return max
}
