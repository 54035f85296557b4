package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when the blueprint declares a duplicate task id.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrMissingDependency is returned when depends_on references an id absent from the blueprint.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when the topological sort cannot order every task.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskNotFound is returned when a requested task is not found in the graph.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrMissingField is returned when a task is missing a field required by its type.
	ErrMissingField = zerr.New("missing required field")

	// ErrUnknownTaskType is returned when a task declares a type outside SHELL/RESTAPI/EMAIL.
	ErrUnknownTaskType = zerr.New("unknown task type")

	// ErrNoTasks is returned when a blueprint declares zero tasks.
	ErrNoTasks = zerr.New("workflow has no tasks")

	// ErrWorkflowNotFound is returned when a control session references an unregistered workflow key.
	ErrWorkflowNotFound = zerr.New("workflow not found")

	// ErrNonSuccessResponse is returned when a RESTAPI task's response status is outside the 2xx range.
	ErrNonSuccessResponse = zerr.New("non-2xx response")

	// ErrBlueprintNotFound is returned when a blueprint path does not exist.
	ErrBlueprintNotFound = zerr.New("blueprint not found")
)

// BlueprintError wraps a malformed-blueprint failure: duplicate id, unknown
// dependency, or missing required field. Fatal at load; no workflow is created.
type BlueprintError struct {
	cause error
}

// NewBlueprintError wraps cause as a BlueprintError.
func NewBlueprintError(cause error) *BlueprintError {
	return &BlueprintError{cause: cause}
}

func (e *BlueprintError) Error() string {
	return "blueprint error: " + e.cause.Error()
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *BlueprintError) Unwrap() error {
	return e.cause
}

// CycleError indicates the topological sort emitted fewer ids than nodes.
type CycleError struct {
	cause error
}

// NewCycleError wraps cause as a CycleError.
func NewCycleError(cause error) *CycleError {
	return &CycleError{cause: cause}
}

func (e *CycleError) Error() string {
	return "cycle error: " + e.cause.Error()
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *CycleError) Unwrap() error {
	return e.cause
}

// TaskExecutionError carries the failing task's id alongside the underlying
// executor failure. It is recorded as a task FAILED transition; it never
// propagates out of the Execution Controller.
type TaskExecutionError struct {
	TaskID string
	Cause  error
}

// NewTaskExecutionError constructs a TaskExecutionError for taskID.
func NewTaskExecutionError(taskID string, cause error) *TaskExecutionError {
	return &TaskExecutionError{TaskID: taskID, Cause: cause}
}

func (e *TaskExecutionError) Error() string {
	return "task " + e.TaskID + " failed: " + e.Cause.Error()
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *TaskExecutionError) Unwrap() error {
	return e.Cause
}

// TransientBusError indicates the KV/pub-sub backing store was unavailable.
// Adapters may retry a bounded number of times before surfacing this.
type TransientBusError struct {
	Op    string
	Cause error
}

// NewTransientBusError constructs a TransientBusError for the given operation.
func NewTransientBusError(op string, cause error) *TransientBusError {
	return &TransientBusError{Op: op, Cause: cause}
}

func (e *TransientBusError) Error() string {
	return "transient bus error during " + e.Op + ": " + e.Cause.Error()
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *TransientBusError) Unwrap() error {
	return e.Cause
}
