package wsforward

import (
	"context"

	"github.com/gorilla/websocket"
	"go.trai.ch/zerr"

	"github.com/Hemant2A2/Wizflow/internal/app"
	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
	"github.com/Hemant2A2/Wizflow/internal/engine/scheduler"
)

// Session owns one client connection and races two awaitables per
// iteration, per spec's single-threaded-cooperative model: the next
// control message from the client, and the next envelope from the
// workflow's event bus. Whichever arrives first is handled; the other
// stays armed for the next iteration.
type Session struct {
	conn     *websocket.Conn
	registry *app.Registry
	bus      ports.EventBus
	loader   ports.BlueprintLoader
	logger   ports.Logger

	wfKey string
}

// New wires a Session around an already-upgraded connection.
func New(conn *websocket.Conn, registry *app.Registry, bus ports.EventBus, loader ports.BlueprintLoader, logger ports.Logger) *Session {
	return &Session{conn: conn, registry: registry, bus: bus, loader: loader, logger: logger}
}

// Serve drives the session until the connection closes, the context is
// cancelled, or the workflow reaches a terminal status and the client
// disconnects. The caller owns the underlying connection's lifecycle
// (close it after Serve returns).
func (s *Session) Serve(ctx context.Context) error {
	reads := make(chan controlMessage)
	readErrs := make(chan error, 1)
	go s.readLoop(ctx, reads, readErrs)

	var events <-chan domain.Envelope
	var unsubscribe func() error
	defer func() {
		if unsubscribe != nil {
			_ = unsubscribe()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-readErrs:
			return err

		case msg, ok := <-reads:
			if !ok {
				return nil
			}
			if err := s.handleControl(ctx, msg, &events, &unsubscribe); err != nil {
				s.logger.Error(err)
				_ = s.conn.WriteJSON(errorMessage{Type: "error", Message: err.Error()})
			}

		case env, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if err := s.conn.WriteJSON(env); err != nil {
				return err
			}
			if env.Type == domain.EnvelopeWorkflowUpdate && domain.WorkflowStatus(env.Status) == domain.WorkflowCompleted {
				output := s.registry.Scheduler().WorkflowOutput(s.wfKey)
				if err := s.conn.WriteJSON(domain.WorkflowOutput(output)); err != nil {
					return err
				}
			}
		}
	}
}

// readLoop feeds decoded control messages to reads until ReadJSON fails,
// at which point it reports the error and returns. It never blocks
// indefinitely on a full reads channel past ctx cancellation.
func (s *Session) readLoop(ctx context.Context, reads chan<- controlMessage, errs chan<- error) {
	defer close(reads)
	for {
		var msg controlMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			select {
			case errs <- err:
			case <-ctx.Done():
			}
			return
		}
		select {
		case reads <- msg:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) handleControl(ctx context.Context, msg controlMessage, events *<-chan domain.Envelope, unsubscribe *func() error) error {
	switch msg.Type {
	case controlStart:
		return s.handleStart(ctx, msg, events, unsubscribe)
	case controlPause:
		if err := s.registry.Pause(ctx, s.wfKey); err != nil {
			return err
		}
	case controlResume:
		if err := s.registry.Resume(ctx, s.wfKey); err != nil {
			return err
		}
	case controlRestart:
		if _, err := s.registry.Restart(ctx, s.wfKey, msg.FromTask); err != nil {
			return err
		}
	default:
		return zerr.With(errUnknownControlType, "type", msg.Type)
	}
	return s.conn.WriteJSON(ackMessage{Type: ackType(msg.Type)})
}

func (s *Session) handleStart(ctx context.Context, msg controlMessage, events *<-chan domain.Envelope, unsubscribe *func() error) error {
	data, err := blueprintBytes(msg.Workflow)
	if err != nil {
		return err
	}
	wf, err := s.loader.LoadBytes(data)
	if err != nil {
		return err
	}
	s.wfKey = wf.Key()

	ch, unsub, err := s.bus.Subscribe(ctx, s.wfKey)
	if err != nil {
		return err
	}
	*events = ch
	*unsubscribe = unsub

	// Control Sessions always drive the parallel driver: an interactive
	// client wants independent branches running concurrently, not the
	// batch CLI's sequential default.
	s.registry.Start(ctx, wf, true, scheduler.RunOptions{})

	if err := s.conn.WriteJSON(startedMessage{Type: "workflow_started", Workflow: s.wfKey}); err != nil {
		return err
	}
	return s.conn.WriteJSON(ackMessage{Type: ackType(msg.Type)})
}
