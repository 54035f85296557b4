package ports

import (
	"context"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
)

// Cache stores and retrieves per-task results keyed by workflow identity
// and task id, as described in the Fingerprint & Cache component.
//
type Cache interface {
	// Load retrieves the cache entry for (wfKey, taskID).
	// Returns nil, nil if not found.
	Load(ctx context.Context, wfKey, taskID string) (*domain.CacheEntry, error)

	// Store writes the cache entry for (wfKey, taskID).
	Store(ctx context.Context, wfKey, taskID string, entry domain.CacheEntry) error
}

// StatusStore persists workflow and task status, mirroring the
// wf:<id>:status and wf:<id>:tasks keys from the external KV interface.
type StatusStore interface {
	// WorkflowStatus returns the current workflow status, defaulting to PENDING if unset.
	WorkflowStatus(ctx context.Context, wfKey string) (domain.WorkflowStatus, error)
	// SetWorkflowStatus writes the workflow status.
	SetWorkflowStatus(ctx context.Context, wfKey string, status domain.WorkflowStatus) error
	// TaskStatuses returns the full task_id -> status map for the workflow.
	TaskStatuses(ctx context.Context, wfKey string) (map[string]domain.TaskStatus, error)
	// SetTaskStatus writes a single task's status.
	SetTaskStatus(ctx context.Context, wfKey, taskID string, status domain.TaskStatus) error
}
