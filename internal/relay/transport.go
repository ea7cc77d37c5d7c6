package relay

//go:generate mockgen -destination=mock/mock_transport.go -package=mockrelay -source=transport.go

import (
	"context"
	"sync"
)

// Handler receives a payload published by another client.
type Handler func(ctx context.Context, payload []byte)

// Transport is an at-most-once broadcast channel. Publishers never receive their
// own messages and nothing is queued for clients that are not subscribed.
type Transport interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Subscribe(ctx context.Context, topic string, handler Handler) (unsubscribe func(), err error)
}

// MemoryBus connects in-process transports. Delivery is synchronous, which keeps
// protocol tests deterministic.
type MemoryBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]*memorySub
}

type memorySub struct {
	owner   *MemoryTransport
	handler Handler
}

// NewMemoryBus creates a bus with no endpoints
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[string]map[int]*memorySub)}
}

// Transport returns a new endpoint on the bus
func (b *MemoryBus) Transport() *MemoryTransport {
	return &MemoryTransport{bus: b}
}

// MemoryTransport is one client's endpoint on a MemoryBus
type MemoryTransport struct {
	bus *MemoryBus
}

// Publish implements Transport
func (t *MemoryTransport) Publish(ctx context.Context, topic string, payload []byte) error {
	t.bus.mu.RLock()
	var targets []Handler
	for _, sub := range t.bus.subs[topic] {
		if sub.owner != t {
			targets = append(targets, sub.handler)
		}
	}
	t.bus.mu.RUnlock()

	for _, handler := range targets {
		handler(ctx, append([]byte(nil), payload...))
	}
	return nil
}

// Subscribe implements Transport
func (t *MemoryTransport) Subscribe(_ context.Context, topic string, handler Handler) (func(), error) {
	t.bus.mu.Lock()
	defer t.bus.mu.Unlock()

	t.bus.nextID++
	id := t.bus.nextID
	if t.bus.subs[topic] == nil {
		t.bus.subs[topic] = make(map[int]*memorySub)
	}
	t.bus.subs[topic][id] = &memorySub{owner: t, handler: handler}

	return func() {
		t.bus.mu.Lock()
		defer t.bus.mu.Unlock()
		delete(t.bus.subs[topic], id)
	}, nil
}
