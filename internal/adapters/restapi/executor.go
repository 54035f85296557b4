// Package restapi provides the RESTAPI task executor adapter.
package restapi

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.trai.ch/zerr"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
)

const dirPerm = 0o750

var _ ports.Executor = (*Executor)(nil)

// Executor runs a task's HTTP request via go-resty and returns the
// decoded response body.
type Executor struct {
	client *resty.Client
	logger ports.Logger
}

// NewExecutor creates a RESTAPI Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		client: resty.New(),
		logger: logger,
	}
}

// Execute sends task's request and returns the parsed JSON response body
// (or the raw response text if it is not JSON). Any output spec of type
// "json" additionally causes the raw response body to be written to
// baseDir/<json_path>.
func (e *Executor) Execute(ctx context.Context, task domain.Task, baseDir string) (any, error) {
	req := e.client.R().SetContext(ctx).SetHeaders(task.Headers)
	if task.Body != nil {
		req = req.SetBody(task.Body)
	}

	resp, err := req.Execute(strings.ToUpper(task.Method), task.URL)
	if err != nil {
		return nil, domain.NewTaskExecutionError(task.ID, zerr.With(zerr.Wrap(err, "restapi: request failed"), "task_id", task.ID, "url", task.URL))
	}
	if resp.IsError() {
		return nil, domain.NewTaskExecutionError(task.ID, zerr.With(domain.ErrNonSuccessResponse, "task_id", task.ID, "status", resp.StatusCode()))
	}

	raw := resp.Body()

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		parsed = string(raw)
	}

	if err := e.dumpJSONOutputs(task, baseDir, raw); err != nil {
		e.logger.Warn("restapi: failed to dump artifact for task " + task.ID + ": " + err.Error())
	}

	return parsed, nil
}

// dumpJSONOutputs writes raw to baseDir/<json_path> for every output spec
// of type "json", creating json_path's parent directories as needed.
func (e *Executor) dumpJSONOutputs(task domain.Task, baseDir string, raw []byte) error {
	for _, spec := range task.Outputs {
		if spec.Type != "json" || spec.JSONPath == "" {
			continue
		}
		dest := filepath.Join(baseDir, spec.JSONPath)
		if err := os.MkdirAll(filepath.Dir(dest), dirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, "restapi: mkdir artifact dir"), "task_id", task.ID)
		}
		if err := os.WriteFile(dest, raw, 0o644); err != nil { //nolint:gosec // artifact dir is task-scoped
			return zerr.With(zerr.Wrap(err, "restapi: write artifact"), "task_id", task.ID)
		}
	}
	return nil
}
