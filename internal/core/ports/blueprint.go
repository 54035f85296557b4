package ports

import "github.com/Hemant2A2/Wizflow/internal/core/domain"

// BlueprintLoader reads a workflow blueprint from some source (file,
// stdin, an inline JSON string from a control message) and returns the
// parsed, not-yet-validated workflow.
//
type BlueprintLoader interface {
	Load(path string) (*domain.Workflow, error)
	LoadBytes(data []byte) (*domain.Workflow, error)
}
