// Package domain contains the core domain models for workflow execution:
// tasks, graphs, statuses, and the errors the engine raises.
package domain

// TaskType identifies which executor a task runs under.
type TaskType string

const (
	// TaskShell runs a command via a shell interpreter.
	TaskShell TaskType = "SHELL"
	// TaskRESTAPI issues an HTTP request.
	TaskRESTAPI TaskType = "RESTAPI"
	// TaskEmail sends an email to one or more recipients.
	TaskEmail TaskType = "EMAIL"
)

// ExtractionSpec describes how a named output is projected from a task's
// raw executor result.
type ExtractionSpec struct {
	Type     string `json:"type"`
	JSONPath string `json:"json_path,omitempty"`
	Path     string `json:"path,omitempty"`
}

// Task is the immutable description of a unit of work within a workflow.
type Task struct {
	ID         string                    `json:"id"`
	Type       TaskType                  `json:"type"`
	DependsOn  []string                  `json:"depends_on,omitempty"`
	Outputs    map[string]ExtractionSpec `json:"outputs,omitempty"`

	// SHELL
	Command string `json:"command,omitempty"`

	// RESTAPI
	Method  string            `json:"method,omitempty"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    any               `json:"body,omitempty"`

	// EMAIL
	Subject    string   `json:"subject,omitempty"`
	EmailBody  string   `json:"emailBody,omitempty"`
	Recipients []string `json:"recipients,omitempty"`
}

// Workflow is the top-level blueprint: a name, version, and set of tasks.
type Workflow struct {
	WorkflowName string `json:"workflow_name"`
	Version      string `json:"version,omitempty"`
	Tasks        []Task `json:"tasks"`
}

// Key returns the identity key used to namespace cache, status, and event
// bus entries for this workflow: "<name>:<version>".
func (w *Workflow) Key() string {
	v := w.Version
	if v == "" {
		v = "v1"
	}
	return w.WorkflowName + ":" + v
}

// Normalize fills in defaults (version) that downstream code relies on
// being present.
func (w *Workflow) Normalize() {
	if w.Version == "" {
		w.Version = "v1"
	}
}
