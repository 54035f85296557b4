package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hemant2A2/Wizflow/cmd/wizflow/commands"
	"github.com/Hemant2A2/Wizflow/internal/app"
	"github.com/Hemant2A2/Wizflow/internal/build"
	"github.com/Hemant2A2/Wizflow/internal/core/domain"
)

type mockApp struct {
	runFunc  func(ctx context.Context, path string, opts app.RunOptions) (domain.WorkflowStatus, error)
	planFunc func(ctx context.Context, path string) (map[string]bool, error)
}

func (m *mockApp) Run(ctx context.Context, path string, opts app.RunOptions) (domain.WorkflowStatus, error) {
	if m.runFunc != nil {
		return m.runFunc(ctx, path, opts)
	}
	return domain.WorkflowCompleted, nil
}

func (m *mockApp) Plan(ctx context.Context, path string) (map[string]bool, error) {
	if m.planFunc != nil {
		return m.planFunc(ctx, path)
	}
	return nil, nil
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.RunOptions
		var capturedPath string
		called := false

		mock := &mockApp{
			runFunc: func(_ context.Context, path string, opts app.RunOptions) (domain.WorkflowStatus, error) {
				capturedPath = path
				capturedOpts = opts
				called = true
				return domain.WorkflowCompleted, nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "wf.json", "--parallel", "--workers", "4"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, "wf.json", capturedPath)
		assert.True(t, capturedOpts.Parallel)
		assert.Equal(t, 4, capturedOpts.Workers)
		assert.Equal(t, 0, cli.ExitCode())
	})

	t.Run("exits 1 on failed workflow status", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(context.Context, string, app.RunOptions) (domain.WorkflowStatus, error) {
				return domain.WorkflowFailed, nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "wf.json"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, cli.ExitCode())
	})

	t.Run("returns error and exits 1 on blueprint load failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(context.Context, string, app.RunOptions) (domain.WorkflowStatus, error) {
				return domain.WorkflowPending, errors.New("blueprint not found")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "missing.json"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Equal(t, 1, cli.ExitCode())
	})
}

func TestCommands_Plan(t *testing.T) {
	mock := &mockApp{
		planFunc: func(context.Context, string) (map[string]bool, error) {
			return map[string]bool{"A": true, "B": false}, nil
		},
	}

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"plan", "wf.json"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "A")
	assert.NotContains(t, buf.String(), "B\n")
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), build.Version)
}
