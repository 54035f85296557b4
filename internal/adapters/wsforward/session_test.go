package wsforward_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hemant2A2/Wizflow/internal/adapters/blueprint"
	"github.com/Hemant2A2/Wizflow/internal/adapters/cas"
	"github.com/Hemant2A2/Wizflow/internal/adapters/inmembus"
	"github.com/Hemant2A2/Wizflow/internal/adapters/shell"
	"github.com/Hemant2A2/Wizflow/internal/adapters/telemetry"
	"github.com/Hemant2A2/Wizflow/internal/adapters/wsforward"
	"github.com/Hemant2A2/Wizflow/internal/app"
	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
	"github.com/Hemant2A2/Wizflow/internal/engine/scheduler"
)

type nopLogger struct{}

func (nopLogger) Info(string)  {}
func (nopLogger) Warn(string)  {}
func (nopLogger) Error(error)  {}

func newTestServer(t *testing.T) (*httptest.Server, *app.Registry) {
	t.Helper()
	log := nopLogger{}

	taskCache, err := cas.NewStore(t.TempDir())
	require.NoError(t, err)

	bus := inmembus.NewBus()
	status := inmembus.NewStatusStore()
	executors := map[domain.TaskType]ports.Executor{
		domain.TaskShell: shell.NewExecutor(log),
	}
	sched := scheduler.NewScheduler(executors, taskCache, bus, status, log, telemetry.NewNoOp())
	registry := app.NewRegistry(sched)
	loader := blueprint.NewLoader(log)

	handler := wsforward.NewHandler(registry, bus, loader, log)
	srv := httptest.NewServer(handler)
	return srv, registry
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestSession_StartRunsToCompletionAndRelaysOutput(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	conn := dial(t, srv)

	blueprintJSON := `{"workflow_name":"greet","tasks":[{"id":"A","type":"SHELL","command":"echo hi","outputs":{"greeting":{"type":"raw"}}}]}`
	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":     "START",
		"workflow": blueprintJSON,
	}))

	seenStarted, seenAck, seenCompleted, seenOutput := false, false, false, false
	deadline := time.Now().Add(5 * time.Second)
	for !(seenStarted && seenAck && seenCompleted && seenOutput) && time.Now().Before(deadline) {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg map[string]any
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		switch msg["type"] {
		case "workflow_started":
			seenStarted = true
		case "start_ack":
			seenAck = true
		case "workflow_update":
			if msg["status"] == "COMPLETED" {
				seenCompleted = true
			}
		case "workflow_output":
			seenOutput = true
		}
	}

	assert.True(t, seenStarted, "expected workflow_started")
	assert.True(t, seenAck, "expected start_ack")
	assert.True(t, seenCompleted, "expected terminal workflow_update COMPLETED")
	assert.True(t, seenOutput, "expected workflow_output")
}

func TestSession_UnknownControlTypeReportsError(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	conn := dial(t, srv)
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "BOGUS"}))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg map[string]any
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg["type"])
}

func TestSession_PauseBeforeStartReportsWorkflowNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	conn := dial(t, srv)
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "PAUSE"}))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg map[string]any
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg["type"])
}

