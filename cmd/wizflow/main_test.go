package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hemant2A2/Wizflow/internal/adapters/blueprint"
	"github.com/Hemant2A2/Wizflow/internal/adapters/cas"
	"github.com/Hemant2A2/Wizflow/internal/adapters/inmembus"
	"github.com/Hemant2A2/Wizflow/internal/adapters/shell"
	"github.com/Hemant2A2/Wizflow/internal/adapters/telemetry"
	"github.com/Hemant2A2/Wizflow/internal/app"
	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
	"github.com/Hemant2A2/Wizflow/internal/engine/scheduler"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

func writeBlueprint(t *testing.T, wf domain.Workflow) string {
	t.Helper()
	data, err := json.Marshal(wf)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "wf.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func testComponents(t *testing.T) *app.Components {
	t.Helper()
	log := nopLogger{}

	taskCache, err := cas.NewStore(t.TempDir())
	require.NoError(t, err)

	executors := map[domain.TaskType]ports.Executor{
		domain.TaskShell: shell.NewExecutor(log),
	}
	bus := inmembus.NewBus()
	status := inmembus.NewStatusStore()
	sched := scheduler.NewScheduler(executors, taskCache, bus, status, log, telemetry.NewNoOp())

	a := app.New(blueprint.NewLoader(log), sched, taskCache, status, log)
	return &app.Components{App: a, Logger: log}
}

func TestRun_Success(t *testing.T) {
	components := testComponents(t)
	path := writeBlueprint(t, domain.Workflow{
		WorkflowName: "greet",
		Tasks: []domain.Task{
			{ID: "A", Type: domain.TaskShell, Command: "echo hi"},
		},
	})

	var stderr bytes.Buffer
	code := run(context.Background(), []string{"run", path, "--base-dir", t.TempDir()}, &stderr, func(context.Context) (*app.Components, error) {
		return components, nil
	})

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr.String())
}

func TestRun_BlueprintLoadFailure(t *testing.T) {
	components := testComponents(t)

	var stderr bytes.Buffer
	code := run(context.Background(), []string{"run", "/no/such/blueprint.json"}, &stderr, func(context.Context) (*app.Components, error) {
		return components, nil
	})

	assert.Equal(t, 1, code)
}

func TestRun_ProviderFailure(t *testing.T) {
	var stderr bytes.Buffer
	code := run(context.Background(), []string{"run", "wf.json"}, &stderr, func(context.Context) (*app.Components, error) {
		return nil, assert.AnError
	})

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), assert.AnError.Error())
}

func TestRun_Version(t *testing.T) {
	components := testComponents(t)

	code := run(context.Background(), []string{"version"}, os.Stderr, func(context.Context) (*app.Components, error) {
		return components, nil
	})

	assert.Equal(t, 0, code)
}
