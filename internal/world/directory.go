package world

//go:generate mockgen -destination=mock/mock_directory.go -package=mockworld -source=directory.go

import (
	"context"
	"sync"

	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
)

// Directory resolves host references to tokens, actors and items.
type Directory interface {
	Token(ctx context.Context, uuid string) (*Token, error)
	Actor(ctx context.Context, uuid string) (Actor, error)
	Item(ctx context.Context, uuid string) (*Item, error)
}

// TokenActor resolves the actor behind a token, or nil when there is none.
func TokenActor(ctx context.Context, dir Directory, token *Token) Actor {
	if token == nil || token.ActorUUID == "" {
		return nil
	}
	actor, err := dir.Actor(ctx, token.ActorUUID)
	if err != nil {
		return nil
	}
	return actor
}

// MemoryDirectory is a Directory backed by maps
type MemoryDirectory struct {
	mu     sync.RWMutex
	tokens map[string]*Token
	actors map[string]Actor
	items  map[string]*Item
}

// NewMemoryDirectory creates an empty directory
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		tokens: make(map[string]*Token),
		actors: make(map[string]Actor),
		items:  make(map[string]*Item),
	}
}

// AddToken registers a token
func (d *MemoryDirectory) AddToken(token *Token) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tokens[token.UUID] = token
}

// AddActor registers an actor
func (d *MemoryDirectory) AddActor(actor Actor) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.actors[actor.UUID()] = actor
}

// AddItem registers an item
func (d *MemoryDirectory) AddItem(item *Item) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items[item.UUID] = item
}

// Token implements Directory
func (d *MemoryDirectory) Token(_ context.Context, uuid string) (*Token, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	token, ok := d.tokens[uuid]
	if !ok {
		return nil, dnderr.NotFoundf("token %s not found", uuid)
	}
	return token, nil
}

// Actor implements Directory
func (d *MemoryDirectory) Actor(_ context.Context, uuid string) (Actor, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	actor, ok := d.actors[uuid]
	if !ok {
		return nil, dnderr.NotFoundf("actor %s not found", uuid)
	}
	return actor, nil
}

// Item implements Directory
func (d *MemoryDirectory) Item(_ context.Context, uuid string) (*Item, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	item, ok := d.items[uuid]
	if !ok {
		return nil, dnderr.NotFoundf("item %s not found", uuid)
	}
	return item, nil
}
