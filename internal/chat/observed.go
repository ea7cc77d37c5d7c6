package chat

import "context"

// ChangeType says what happened to a message.
type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// Change is delivered to observers after a write succeeds.
type Change struct {
	Type    ChangeType
	Message *Message
	// Patch is set for updates.
	Patch Patch
	// ID is set for deletions.
	ID string
}

// Observer is notified of committed writes. It runs on the writer's goroutine.
type Observer func(ctx context.Context, change *Change)

// ObservedStore wraps a Store and notifies observers of every committed write.
type ObservedStore struct {
	Store
	observers []Observer
}

// NewObservedStore wraps store
func NewObservedStore(store Store, observers ...Observer) *ObservedStore {
	if store == nil {
		panic("store is required")
	}
	return &ObservedStore{Store: store, observers: observers}
}

// Observe registers another observer. Not safe to call concurrently with writes.
func (s *ObservedStore) Observe(observer Observer) {
	s.observers = append(s.observers, observer)
}

func (s *ObservedStore) notify(ctx context.Context, change *Change) {
	for _, observer := range s.observers {
		observer(ctx, change)
	}
}

// Create implements Store
func (s *ObservedStore) Create(ctx context.Context, msg *Message) (*Message, error) {
	created, err := s.Store.Create(ctx, msg)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, &Change{Type: ChangeCreated, Message: created.Clone()})
	return created, nil
}

// Update implements Store
func (s *ObservedStore) Update(ctx context.Context, id string, patch Patch) (*Message, error) {
	updated, err := s.Store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, &Change{Type: ChangeUpdated, Message: updated.Clone(), Patch: patch})
	return updated, nil
}

// Delete implements Store
func (s *ObservedStore) Delete(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	s.notify(ctx, &Change{Type: ChangeDeleted, ID: id})
	return nil
}
