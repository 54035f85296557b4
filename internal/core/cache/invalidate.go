package cache

import (
	"context"

	"go.trai.ch/zerr"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
)

// Plan decides, for every task in g, whether it must be re-executed: a
// task is dirty if its raw (pre-template) fingerprint no longer matches
// the cached entry's RawHash (or no cached entry exists), or if any of
// its ancestors is dirty. Dirtiness is transitive over domain.Graph's
// dependents edges, mirroring the Invalidation Planner's two-step
// contract: per-task fingerprint diff, then descendant closure.
//
// The resolved-fingerprint recheck against post-template task
// descriptors happens later, at dispatch time in the Execution
// Controller, once upstream outputs are known.
func Plan(ctx context.Context, store ports.Cache, wfKey string, g *domain.Graph) (map[string]bool, error) {
	reexec := make(map[string]bool, g.TaskCount())

	for _, id := range g.TaskIDs() {
		task, ok := g.Task(id)
		if !ok {
			continue
		}

		fp, err := Fingerprint(task)
		if err != nil {
			return nil, zerr.With(err, "task_id", id)
		}

		entry, err := store.Load(ctx, wfKey, id)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "cache: load entry"), "task_id", id)
		}

		if entry == nil || entry.RawHash != fp {
			reexec[id] = true
		}
	}

	// Transitive closure: any descendant of a dirty task is dirty too,
	// since its template context depends on the dirty task's (possibly
	// changed) outputs.
	queue := make([]string, 0, len(reexec))
	for id := range reexec {
		queue = append(queue, id)
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range g.Dependents(id) {
			if !reexec[child] {
				reexec[child] = true
				queue = append(queue, child)
			}
		}
	}

	return reexec, nil
}
