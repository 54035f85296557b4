// Package telemetry holds Telemetry adapters that are not tied to a
// specific rendering backend.
package telemetry

import (
	"context"
	"io"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
)

var (
	_ ports.Telemetry = (*NoOp)(nil)
	_ ports.Vertex    = (*NoOpVertex)(nil)
)

// NoOp is a ports.Telemetry that records nothing, used by the server
// binary and by tests where no terminal progress view is wanted.
type NoOp struct{}

// NewNoOp creates a NoOp telemetry recorder.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns ctx unchanged alongside a NoOpVertex.
func (t *NoOp) Record(ctx context.Context, _ string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
	return ctx, &NoOpVertex{}
}

// Close does nothing.
func (t *NoOp) Close() error { return nil }

// NoOpVertex is a ports.Vertex that discards everything written to it.
type NoOpVertex struct{}

// Stdout returns io.Discard.
func (v *NoOpVertex) Stdout() io.Writer { return io.Discard }

// Stderr returns io.Discard.
func (v *NoOpVertex) Stderr() io.Writer { return io.Discard }

// Log does nothing.
func (v *NoOpVertex) Log(_ domain.LogLevel, _ string) {}

// Complete does nothing.
func (v *NoOpVertex) Complete(_ error) {}

// Cached does nothing.
func (v *NoOpVertex) Cached() {}
