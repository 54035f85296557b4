package scheduler

import (
	"context"

	"github.com/Hemant2A2/Wizflow/internal/core/cache"
	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/graph"
)

// RunSerial drives wf to completion one task at a time, in topological
// order. A failing task's transitive descendants are marked blocked and
// published PENDING rather than dispatched.
func (s *Scheduler) RunSerial(ctx context.Context, wf *domain.Workflow, opts RunOptions) error {
	wf.Normalize()
	wfKey := wf.Key()

	g, err := buildGraph(wf)
	if err != nil {
		return err
	}
	s.storeGraph(wfKey, g)

	baseDir, err := resolveBaseDir(wf, opts)
	if err != nil {
		return err
	}

	order, err := graph.TopologicalOrder(g)
	if err != nil {
		return err
	}

	reexec, err := cache.Plan(ctx, s.cache, wfKey, g)
	if err != nil {
		return err
	}

	if err := s.setWorkflowStatus(ctx, wfKey, domain.WorkflowRunning); err != nil {
		return err
	}

	results := make(domain.ResultMap, g.TaskCount())
	blocked := make(map[string]bool)
	anyFailed := false

	for _, id := range order {
		task, ok := g.Task(id)
		if !ok {
			continue
		}

		if blocked[id] {
			if err := s.setTaskStatus(ctx, wfKey, id, domain.TaskPending); err != nil {
				return err
			}
			continue
		}

		outputs, failed, err := s.runOneTask(ctx, wfKey, baseDir, task, results, reexec)
		if err != nil {
			return err
		}
		if failed {
			anyFailed = true
			blockDescendants(g, id, blocked)
			continue
		}

		results[id] = outputs
		s.storeResult(wfKey, id, outputs)
	}

	final := domain.WorkflowCompleted
	if anyFailed {
		final = domain.WorkflowFailed
	}
	return s.setWorkflowStatus(ctx, wfKey, final)
}
