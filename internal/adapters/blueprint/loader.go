// Package blueprint implements ports.BlueprintLoader, reading a workflow
// definition from a JSON file on disk or from an already-read byte slice
// (an inline blueprint carried on a Control Session's START message).
package blueprint

import (
	"encoding/json"
	"os"

	"go.trai.ch/zerr"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
)

var _ ports.BlueprintLoader = (*Loader)(nil)

// Loader reads workflow blueprints from JSON.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the blueprint at path and parses it.
func (l *Loader) Load(path string) (*domain.Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, zerr.With(domain.ErrBlueprintNotFound, "path", path)
		}
		return nil, domain.NewBlueprintError(err)
	}
	return l.LoadBytes(data)
}

// LoadBytes parses a blueprint already held in memory.
func (l *Loader) LoadBytes(data []byte) (*domain.Workflow, error) {
	var wf domain.Workflow
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, domain.NewBlueprintError(err)
	}
	wf.Normalize()
	if len(wf.Tasks) == 0 {
		return nil, domain.NewBlueprintError(domain.ErrNoTasks)
	}
	if l.Logger != nil {
		l.Logger.Info("blueprint loaded: " + wf.Key())
	}
	return &wf, nil
}
