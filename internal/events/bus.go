// Package events routes host notifications to the handlers registered at startup.
package events

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Listener processes events
type Listener interface {
	HandleEvent(ctx context.Context, event *Event) error
	Priority() int
	ID() string
}

type funcListener struct {
	id       string
	priority int
	fn       func(ctx context.Context, event *Event) error
}

func (l *funcListener) HandleEvent(ctx context.Context, event *Event) error {
	return l.fn(ctx, event)
}

func (l *funcListener) Priority() int {
	return l.priority
}

func (l *funcListener) ID() string {
	return l.id
}

// NewListener adapts a function to a Listener
func NewListener(id string, priority int, fn func(ctx context.Context, event *Event) error) Listener {
	return &funcListener{id: id, priority: priority, fn: fn}
}

// Dispatcher maps an event type to its listeners, lowest priority first
type Dispatcher struct {
	listeners map[EventType][]Listener
	mu        sync.RWMutex
	logger    *zap.Logger
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
		logger:    logger,
	}
}

// Subscribe adds a listener for an event type. Listeners with equal priority
// run in subscription order.
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listeners[eventType] = append(d.listeners[eventType], listener)

	sort.SliceStable(d.listeners[eventType], func(i, j int) bool {
		return d.listeners[eventType][i].Priority() < d.listeners[eventType][j].Priority()
	})

	d.logger.Debug("subscribed listener",
		zap.String("listener", listener.ID()),
		zap.String("event", string(eventType)),
		zap.Int("priority", listener.Priority()))
}

// Unsubscribe removes a listener
func (d *Dispatcher) Unsubscribe(eventType EventType, listenerID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	listeners := d.listeners[eventType]
	for i, l := range listeners {
		if l.ID() != listenerID {
			continue
		}
		d.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)
		d.logger.Debug("unsubscribed listener",
			zap.String("listener", listenerID),
			zap.String("event", string(eventType)))
		return
	}
}

// Emit runs every listener for the event in order. A failing listener does not
// stop the rest; all failures are returned joined.
func (d *Dispatcher) Emit(ctx context.Context, event *Event) error {
	if event == nil {
		return errors.New("event is required")
	}

	d.mu.RLock()
	listeners := make([]Listener, len(d.listeners[event.Type]))
	copy(listeners, d.listeners[event.Type])
	d.mu.RUnlock()

	var errs []error
	for _, listener := range listeners {
		if err := listener.HandleEvent(ctx, event); err != nil {
			d.logger.Warn("listener failed",
				zap.String("listener", listener.ID()),
				zap.String("event", string(event.Type)),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("listener %s failed: %w", listener.ID(), err))
		}
	}

	return errors.Join(errs...)
}

// Clear removes all listeners
func (d *Dispatcher) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listeners = make(map[EventType][]Listener)
}
