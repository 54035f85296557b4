package inmembus

import (
	"context"
	"sync"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
)

var _ ports.StatusStore = (*StatusStore)(nil)

// StatusStore holds workflow and task status in process memory, mirroring
// the wf:<id>:status and wf:<id>:tasks keys of the Redis-backed store.
type StatusStore struct {
	mu       sync.RWMutex
	workflow map[string]domain.WorkflowStatus
	tasks    map[string]map[string]domain.TaskStatus
}

// NewStatusStore constructs an empty in-memory StatusStore.
func NewStatusStore() *StatusStore {
	return &StatusStore{
		workflow: make(map[string]domain.WorkflowStatus),
		tasks:    make(map[string]map[string]domain.TaskStatus),
	}
}

// WorkflowStatus returns the workflow's status, defaulting to PENDING.
func (s *StatusStore) WorkflowStatus(_ context.Context, wfKey string) (domain.WorkflowStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status, ok := s.workflow[wfKey]
	if !ok {
		return domain.WorkflowPending, nil
	}
	return status, nil
}

// SetWorkflowStatus writes the workflow's status.
func (s *StatusStore) SetWorkflowStatus(_ context.Context, wfKey string, status domain.WorkflowStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workflow[wfKey] = status
	return nil
}

// TaskStatuses returns a copy of the task_id -> status map for the workflow.
func (s *StatusStore) TaskStatuses(_ context.Context, wfKey string) (map[string]domain.TaskStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.TaskStatus, len(s.tasks[wfKey]))
	for id, status := range s.tasks[wfKey] {
		out[id] = status
	}
	return out, nil
}

// SetTaskStatus writes a single task's status.
func (s *StatusStore) SetTaskStatus(_ context.Context, wfKey, taskID string, status domain.TaskStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tasks[wfKey] == nil {
		s.tasks[wfKey] = make(map[string]domain.TaskStatus)
	}
	s.tasks[wfKey][taskID] = status
	return nil
}
