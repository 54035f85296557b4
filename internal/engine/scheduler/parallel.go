package scheduler

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/Hemant2A2/Wizflow/internal/core/cache"
	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/graph"
)

type taskResult struct {
	taskID  string
	outputs map[string]any
	failed  bool
	err     error
}

// RunParallel drives wf with a bounded worker pool. Workers never mutate
// shared scheduling state (results, indegree, blocked) directly — each
// worker returns its outcome on a channel, and only the dispatch loop
// below (this goroutine) applies it, per the teacher's documented
// "dispatch thread" invariant generalized from a buffered-channel pool to
// a semaphore.Weighted so worker count can scale with graph width.
func (s *Scheduler) RunParallel(ctx context.Context, wf *domain.Workflow, opts RunOptions) error {
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

	workers := opts.Workers
	if workers <= 0 {
		workers = min(graph.MaxWidth(g), runtime.NumCPU()*5)
	}
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))

	reexec, err := cache.Plan(ctx, s.cache, wfKey, g)
	if err != nil {
		return err
	}

	if err := s.setWorkflowStatus(ctx, wfKey, domain.WorkflowRunning); err != nil {
		return err
	}

	results := make(domain.ResultMap, g.TaskCount())
	indegree := g.Indegree()
	blocked := make(map[string]bool)
	anyFailed := false
	active := 0
	var firstErr error

	resultsCh := make(chan taskResult)

	dispatch := func(id string) {
		task, ok := g.Task(id)
		if !ok {
			return
		}
		snapshot := make(domain.ResultMap, len(results))
		for k, v := range results {
			snapshot[k] = v
		}

		active++
		go func() {
			if aerr := sem.Acquire(ctx, 1); aerr != nil {
				resultsCh <- taskResult{taskID: id, err: aerr}
				return
			}
			defer sem.Release(1)
			outputs, failed, rerr := s.runOneTask(ctx, wfKey, baseDir, task, snapshot, reexec)
			resultsCh <- taskResult{taskID: id, outputs: outputs, failed: failed, err: rerr}
		}()
	}

	for _, id := range g.TaskIDs() {
		if indegree[id] == 0 {
			dispatch(id)
		}
	}

	for active > 0 {
		res := <-resultsCh
		active--

		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}

		if res.failed {
			anyFailed = true
			blockDescendants(g, res.taskID, blocked)
		} else {
			results[res.taskID] = res.outputs
			s.storeResult(wfKey, res.taskID, res.outputs)
		}

		queue := append([]string(nil), g.Dependents(res.taskID)...)
		for len(queue) > 0 {
			child := queue[0]
			queue = queue[1:]
			indegree[child]--
			if indegree[child] != 0 {
				continue
			}
			if blocked[child] {
				if serr := s.setTaskStatus(ctx, wfKey, child, domain.TaskPending); serr != nil && firstErr == nil {
					firstErr = serr
				}
				queue = append(queue, g.Dependents(child)...)
				continue
			}
			dispatch(child)
		}
	}

	if firstErr != nil {
		return firstErr
	}

	final := domain.WorkflowCompleted
	if anyFailed {
		final = domain.WorkflowFailed
	}
	return s.setWorkflowStatus(ctx, wfKey, final)
}
