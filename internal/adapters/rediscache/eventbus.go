package rediscache

import (
	"context"
	"encoding/json"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
)

var _ ports.EventBus = (*Bus)(nil)

// Bus implements ports.EventBus on Redis pub/sub, one channel per workflow.
type Bus struct {
	client *Client
}

// NewBus wraps client as a ports.EventBus.
func NewBus(client *Client) *Bus {
	return &Bus{client: client}
}

func channelName(wfKey string) string {
	return "wf:" + wfKey + ":events"
}

// Publish marshals env and publishes it to wfKey's channel.
func (b *Bus) Publish(ctx context.Context, wfKey string, env domain.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return withRetry(ctx, "eventbus.publish", func() error {
		return b.client.rdb.Publish(ctx, channelName(wfKey), data).Err()
	})
}

// Subscribe opens a Redis pub/sub subscription for wfKey and relays
// decoded envelopes on the returned channel until unsubscribe is called
// or ctx is cancelled. Malformed payloads are dropped rather than
// surfaced, since a bad publish must never wedge a live subscriber.
func (b *Bus) Subscribe(ctx context.Context, wfKey string) (<-chan domain.Envelope, func() error, error) {
	sub := b.client.rdb.Subscribe(ctx, channelName(wfKey))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, domain.NewTransientBusError("eventbus.subscribe", err)
	}

	out := make(chan domain.Envelope)
	raw := sub.Channel()
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-raw:
				if !ok {
					return
				}
				var env domain.Envelope
				if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
					continue
				}
				select {
				case out <- env:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	unsubscribe := func() error {
		return sub.Close()
	}
	return out, unsubscribe, nil
}
