package scheduler

import (
	"context"

	"go.trai.ch/zerr"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
)

// Restart resets wf's status map to PENDING: the whole workflow when
// fromTask is empty, otherwise fromTask and its transitive descendants. A
// subsequent RunSerial/RunParallel call re-evaluates the cache fresh —
// nothing about the plan from before the restart is carried over.
func (s *Scheduler) Restart(ctx context.Context, wf *domain.Workflow, fromTask string) error {
	wf.Normalize()
	wfKey := wf.Key()

	g, err := buildGraph(wf)
	if err != nil {
		return err
	}
	s.storeGraph(wfKey, g)

	targets := make(map[string]bool)
	if fromTask == "" {
		for _, id := range g.TaskIDs() {
			targets[id] = true
		}
	} else {
		if _, ok := g.Task(fromTask); !ok {
			return zerr.With(domain.ErrTaskNotFound, "task_id", fromTask)
		}
		targets[fromTask] = true
		queue := []string{fromTask}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			for _, child := range g.Dependents(id) {
				if !targets[child] {
					targets[child] = true
					queue = append(queue, child)
				}
			}
		}
	}

	for id := range targets {
		if err := s.setTaskStatus(ctx, wfKey, id, domain.TaskPending); err != nil {
			return err
		}
	}

	return s.setWorkflowStatus(ctx, wfKey, domain.WorkflowPending)
}
