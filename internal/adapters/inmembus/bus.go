// Package inmembus implements ports.EventBus and ports.StatusStore entirely
// in process memory, so the batch CLI and unit tests never depend on a
// reachable Redis instance to run a workflow locally.
package inmembus

import (
	"context"
	"sync"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
)

const subscriberBuffer = 64

var _ ports.EventBus = (*Bus)(nil)

type subscriber struct {
	ch chan domain.Envelope
}

// Bus fans envelopes out to per-workflow subscriber channels. Publish order
// to a given subscriber is preserved: each subscriber has its own buffered
// channel and Publish only returns once every current subscriber has
// accepted (or dropped, on cancellation) the envelope.
type Bus struct {
	mu   sync.Mutex
	subs map[string][]*subscriber
}

// NewBus constructs an empty in-memory Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]*subscriber)}
}

// Publish delivers env, in order, to every subscriber currently registered
// for wfKey.
func (b *Bus) Publish(ctx context.Context, wfKey string, env domain.Envelope) error {
	b.mu.Lock()
	targets := make([]*subscriber, len(b.subs[wfKey]))
	copy(targets, b.subs[wfKey])
	b.mu.Unlock()

	for _, sub := range targets {
		select {
		case sub.ch <- env:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Subscribe registers a new subscriber for wfKey and returns its channel
// and an unsubscribe function that removes it from the fan-out list and
// closes the channel.
func (b *Bus) Subscribe(_ context.Context, wfKey string) (<-chan domain.Envelope, func() error, error) {
	sub := &subscriber{ch: make(chan domain.Envelope, subscriberBuffer)}

	b.mu.Lock()
	b.subs[wfKey] = append(b.subs[wfKey], sub)
	b.mu.Unlock()

	unsubscribe := func() error {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[wfKey]
		for i, s := range list {
			if s == sub {
				b.subs[wfKey] = append(list[:i], list[i+1:]...)
				break
			}
		}
		close(sub.ch)
		return nil
	}
	return sub.ch, unsubscribe, nil
}
