package blueprint_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Hemant2A2/Wizflow/internal/adapters/blueprint"
	"github.com/Hemant2A2/Wizflow/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string)  {}
func (nopLogger) Warn(string)  {}
func (nopLogger) Error(error)  {}

func TestLoader_LoadBytes_OK(t *testing.T) {
	l := blueprint.NewLoader(nopLogger{})
	wf, err := l.LoadBytes([]byte(`{"workflow_name":"demo","tasks":[{"id":"a","type":"SHELL","command":"echo hi"}]}`))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	if wf.WorkflowName != "demo" || wf.Version != "v1" {
		t.Fatalf("got %+v", wf)
	}
}

func TestLoader_LoadBytes_NoTasks(t *testing.T) {
	l := blueprint.NewLoader(nopLogger{})
	_, err := l.LoadBytes([]byte(`{"workflow_name":"demo","tasks":[]}`))
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := err.(*domain.BlueprintError); !ok {
		t.Fatalf("expected *domain.BlueprintError, got %T", err)
	}
}

func TestLoader_LoadBytes_Malformed(t *testing.T) {
	l := blueprint.NewLoader(nopLogger{})
	_, err := l.LoadBytes([]byte(`not json`))
	if _, ok := err.(*domain.BlueprintError); !ok {
		t.Fatalf("expected *domain.BlueprintError, got %T", err)
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	l := blueprint.NewLoader(nopLogger{})
	_, err := l.Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestLoader_Load_FromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wf.json")
	if err := os.WriteFile(path, []byte(`{"workflow_name":"demo","version":"v2","tasks":[{"id":"a","type":"SHELL","command":"echo hi"}]}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	l := blueprint.NewLoader(nopLogger{})
	wf, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if wf.Version != "v2" {
		t.Fatalf("got version %q", wf.Version)
	}
}
