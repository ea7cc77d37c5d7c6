package chat

import (
	"context"
	"sync"
	"time"

	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
	"github.com/KirkDiggler/saves-helper/internal/uuid"
)

// MemoryStore is a Store held in process. It hands out copies so callers never
// share state with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	messages map[string]*Message
	order    []string
	ids      uuid.Generator
	now      func() time.Time
}

// MemoryStoreConfig configures a MemoryStore
type MemoryStoreConfig struct {
	UUIDGenerator uuid.Generator
	Now           func() time.Time
}

// NewMemoryStore creates an empty store
func NewMemoryStore(cfg *MemoryStoreConfig) *MemoryStore {
	store := &MemoryStore{
		messages: make(map[string]*Message),
		ids:      uuid.NewGoogleUUIDGenerator(),
		now:      time.Now,
	}
	if cfg != nil {
		if cfg.UUIDGenerator != nil {
			store.ids = cfg.UUIDGenerator
		}
		if cfg.Now != nil {
			store.now = cfg.Now
		}
	}
	return store
}

// Create implements Store
func (s *MemoryStore) Create(_ context.Context, msg *Message) (*Message, error) {
	if msg == nil {
		return nil, dnderr.InvalidArgument("message is required")
	}

	stored := msg.Clone()
	if stored.ID == "" {
		stored.ID = s.ids.New()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now()
	}
	if stored.Flags != nil {
		normalized, err := normalize(stored.Flags)
		if err != nil {
			return nil, err
		}
		stored.Flags, _ = normalized.(map[string]any)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.messages[stored.ID]; exists {
		return nil, dnderr.InvalidArgumentf("message %s already exists", stored.ID)
	}
	s.messages[stored.ID] = stored
	s.order = append(s.order, stored.ID)

	return stored.Clone(), nil
}

// Get implements Store
func (s *MemoryStore) Get(_ context.Context, id string) (*Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[id]
	if !ok {
		return nil, dnderr.NotFoundf("message %s not found", id)
	}
	return msg.Clone(), nil
}

// Update implements Store
func (s *MemoryStore) Update(_ context.Context, id string, patch Patch) (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[id]
	if !ok {
		return nil, dnderr.NotFoundf("message %s not found", id)
	}

	updated := msg.Clone()
	if err := patch.Apply(updated); err != nil {
		return nil, err
	}
	s.messages[id] = updated

	return updated.Clone(), nil
}

// Delete implements Store
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.messages[id]; !ok {
		return dnderr.NotFoundf("message %s not found", id)
	}
	delete(s.messages, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List implements Store
func (s *MemoryStore) List(_ context.Context) ([]*Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Message, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.messages[id].Clone())
	}
	return out, nil
}
