package ports

import (
	"context"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
)

// EventBus publishes workflow/task status transitions and relays them to
// subscribers in publish order, per workflow.
//
type EventBus interface {
	// Publish sends env to every current subscriber of wfKey.
	Publish(ctx context.Context, wfKey string, env domain.Envelope) error

	// Subscribe returns a channel of envelopes for wfKey and an unsubscribe
	// function. The channel is closed once unsubscribe is called.
	Subscribe(ctx context.Context, wfKey string) (<-chan domain.Envelope, func() error, error)
}
