// Package extract projects a task's raw executor output into the named
// outputs declared by its ExtractionSpecs.
package extract

import (
	"github.com/PaesslerAG/jsonpath"

	"go.trai.ch/zerr"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
)

// Extract applies spec to raw, the executor's unprocessed result.
//
//   - "json" evaluates spec.JSONPath against raw and returns the first
//     match, or nil if nothing matches.
//   - "file" returns spec.Path verbatim; the file itself is written by
//     the executor, not read here.
//   - anything else passes raw through unchanged.
func Extract(spec domain.ExtractionSpec, raw any) (any, error) {
	switch spec.Type {
	case "json":
		val, err := jsonpath.Get(spec.JSONPath, raw)
		if err != nil {
			// jsonpath.Get returns an error for a path with no match;
			// that is a normal, non-fatal outcome here.
			return nil, nil //nolint:nilerr
		}
		return val, nil
	case "file":
		return spec.Path, nil
	default:
		return raw, nil
	}
}

// ExtractAll runs Extract for every output spec declared on task against
// the same raw result, returning the named outputs map stored in the
// cache and relayed to downstream tasks.
func ExtractAll(task domain.Task, raw any) (map[string]any, error) {
	outputs := make(map[string]any, len(task.Outputs))
	for name, spec := range task.Outputs {
		val, err := Extract(spec, raw)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "extract: output"), "task_id", task.ID, "output", name)
		}
		outputs[name] = val
	}
	return outputs, nil
}
