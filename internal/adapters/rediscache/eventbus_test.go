package rediscache_test

import (
	"context"
	"testing"
	"time"

	"github.com/Hemant2A2/Wizflow/internal/adapters/rediscache"
	"github.com/Hemant2A2/Wizflow/internal/core/domain"
)

func TestBus_PublishSubscribe(t *testing.T) {
	client := newTestClient(t)
	bus := rediscache.NewBus(client)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	envelopes, unsubscribe, err := bus.Subscribe(ctx, "wf-1")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer unsubscribe()

	want := domain.TaskUpdate("task-1", domain.TaskCompleted)
	// miniredis delivers pub/sub asynchronously; retry the publish until a
	// subscriber is confirmed attached.
	go func() {
		for {
			if err := bus.Publish(ctx, "wf-1", want); err != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(20 * time.Millisecond):
			}
		}
	}()

	select {
	case got := <-envelopes:
		if got.TaskID != want.TaskID || got.Status != want.Status {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for envelope")
	}
}

func TestBus_UnsubscribeClosesChannel(t *testing.T) {
	client := newTestClient(t)
	bus := rediscache.NewBus(client)
	ctx := context.Background()

	envelopes, unsubscribe, err := bus.Subscribe(ctx, "wf-2")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := unsubscribe(); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}

	select {
	case _, ok := <-envelopes:
		if ok {
			t.Fatal("expected channel to be closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}
