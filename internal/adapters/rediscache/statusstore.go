package rediscache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
)

var _ ports.StatusStore = (*StatusStore)(nil)

// StatusStore implements ports.StatusStore on the wf:<id>:status string key
// and the wf:<id>:tasks hash, matching the external KV interface's layout.
type StatusStore struct {
	client *Client
}

// NewStatusStore wraps client as a ports.StatusStore.
func NewStatusStore(client *Client) *StatusStore {
	return &StatusStore{client: client}
}

func statusKey(wfKey string) string {
	return "wf:" + wfKey + ":status"
}

func tasksKey(wfKey string) string {
	return "wf:" + wfKey + ":tasks"
}

// WorkflowStatus returns the workflow's status, defaulting to PENDING when unset.
func (s *StatusStore) WorkflowStatus(ctx context.Context, wfKey string) (domain.WorkflowStatus, error) {
	var raw string
	err := withRetry(ctx, "statusstore.workflowstatus", func() error {
		var getErr error
		raw, getErr = s.client.rdb.Get(ctx, statusKey(wfKey)).Result()
		if errors.Is(getErr, redis.Nil) {
			return nil
		}
		return getErr
	})
	if err != nil {
		return "", err
	}
	if raw == "" {
		return domain.WorkflowPending, nil
	}
	return domain.NormalizeWorkflowStatus(raw), nil
}

// SetWorkflowStatus writes the workflow's status.
func (s *StatusStore) SetWorkflowStatus(ctx context.Context, wfKey string, status domain.WorkflowStatus) error {
	return withRetry(ctx, "statusstore.setworkflowstatus", func() error {
		return s.client.rdb.Set(ctx, statusKey(wfKey), string(status), 0).Err()
	})
}

// TaskStatuses returns the full task_id -> status map for the workflow.
func (s *StatusStore) TaskStatuses(ctx context.Context, wfKey string) (map[string]domain.TaskStatus, error) {
	var raw map[string]string
	err := withRetry(ctx, "statusstore.taskstatuses", func() error {
		var getErr error
		raw, getErr = s.client.rdb.HGetAll(ctx, tasksKey(wfKey)).Result()
		return getErr
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.TaskStatus, len(raw))
	for taskID, status := range raw {
		out[taskID] = domain.NormalizeTaskStatus(status)
	}
	return out, nil
}

// SetTaskStatus writes a single task's status.
func (s *StatusStore) SetTaskStatus(ctx context.Context, wfKey, taskID string, status domain.TaskStatus) error {
	return withRetry(ctx, "statusstore.settaskstatus", func() error {
		return s.client.rdb.HSet(ctx, tasksKey(wfKey), taskID, string(status)).Err()
	})
}
