package helper

import (
	"context"
	"slices"
	"sync"

	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
	"github.com/KirkDiggler/saves-helper/internal/relay"
	"github.com/KirkDiggler/saves-helper/internal/world"
)

// TransportFactory opens a relay endpoint for one user. Endpoints never deliver
// their own messages, so every client needs its own.
type TransportFactory func(ctx context.Context, userID string) (relay.Transport, error)

// PoolConfig holds configuration for a Pool
type PoolConfig struct {
	// Base is copied for every client; User and Transport are filled in per user.
	Base         Config
	NewTransport TransportFactory
}

// Pool hands out one started Client per user of a shared world.
type Pool struct {
	base         Config
	newTransport TransportFactory

	mu      sync.Mutex
	clients map[string]*Client
}

// NewPool creates a pool
func NewPool(cfg *PoolConfig) *Pool {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.NewTransport == nil {
		panic("transport factory is required")
	}
	return &Pool{
		base:         cfg.Base,
		newTransport: cfg.NewTransport,
		clients:      make(map[string]*Client),
	}
}

// Client returns the user's client, creating and starting it on first use. Users
// listed in GMUserIDs join as gamemasters.
func (p *Pool) Client(ctx context.Context, userID, name string) (*Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.clients[userID]; ok {
		return c, nil
	}

	role := world.RolePlayer
	if slices.Contains(p.base.GMUserIDs, userID) {
		role = world.RoleGamemaster
	}

	transport, err := p.newTransport(ctx, userID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to open relay transport for %s", userID)
	}

	cfg := p.base
	cfg.User = &world.User{ID: userID, Name: name, Role: role}
	cfg.Transport = transport
	c, err := New(&cfg)
	if err != nil {
		return nil, err
	}
	if err := c.Start(ctx); err != nil {
		return nil, err
	}
	p.clients[userID] = c
	return c, nil
}

// Close stops every client
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, c := range p.clients {
		c.Close()
		delete(p.clients, id)
	}
}
