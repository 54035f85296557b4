// Package shell provides the SHELL task executor adapter.
package shell

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/zerr"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
)

var _ ports.Executor = (*Executor)(nil)

// Executor runs a task's Command through the system shell.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a shell Executor that streams command output
// through logger.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute runs task.Command via "sh -c" with baseDir as the working
// directory, and returns the command's trimmed stdout as the raw output.
// A non-zero exit wraps the failure, including captured stderr, in a
// *domain.TaskExecutionError.
func (e *Executor) Execute(ctx context.Context, task domain.Task, baseDir string) (any, error) {
	if task.Command == "" {
		return "", nil
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", task.Command) //nolint:gosec // blueprint-controlled command
	cmd.Dir = baseDir
	cmd.Env = os.Environ()

	var stdout strings.Builder
	var stderr strings.Builder
	cmd.Stdout = &logWriter{logger: e.logger, level: "info", dup: &stdout}
	cmd.Stderr = &logWriter{logger: e.logger, level: "error", dup: &stderr}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if ok := asExitError(err, &exitErr); ok {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.With(zerr.Wrap(err, "shell: command failed"), "task_id", task.ID, "exit_code", exitCode, "stderr", stderr.String())
		return nil, domain.NewTaskExecutionError(task.ID, wrapped)
	}

	return strings.TrimSpace(stdout.String()), nil
}

func asExitError(err error, target **exec.ExitError) bool {
	ee, ok := err.(*exec.ExitError)
	if !ok {
		return false
	}
	*target = ee
	return true
}

// logWriter streams command output to the logger line by line while also
// buffering it in dup so Execute can return the captured text.
type logWriter struct {
	logger ports.Logger
	level  string
	dup    *strings.Builder
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.dup.Write(p) //nolint:errcheck // strings.Builder.Write never errors

	for _, line := range strings.Split(strings.TrimSuffix(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}
		if w.level == "info" {
			w.logger.Info(line)
		} else {
			w.logger.Error(zerr.New(line))
		}
	}
	return len(p), nil
}
