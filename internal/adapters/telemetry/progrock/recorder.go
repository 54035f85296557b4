// Package progrock implements ports.Telemetry as a local terminal
// progress view for batch CLI runs: one vertex per Record call the
// Scheduler makes for a task.
package progrock

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"github.com/Hemant2A2/Wizflow/internal/core/ports"
)

// Recorder implements ports.Telemetry using progrock's tape recorder.
type Recorder struct {
	tape *progrock.Tape
	rec  *progrock.Recorder
}

// New creates a Recorder backed by a fresh tape.
func New() ports.Telemetry {
	tape := progrock.NewTape()
	rec := progrock.NewRecorder(tape)
	return &Recorder{tape: tape, rec: rec}
}

// Record starts recording a new vertex for name.
func (r *Recorder) Record(ctx context.Context, name string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	return ctx, &Vertex{vertex: v}
}

// Close flushes and closes the tape.
func (r *Recorder) Close() error {
	return r.tape.Close()
}
