package chat

//go:generate mockgen -destination=mock/mock_store.go -package=mockchat -source=store.go

import "context"

// Store persists messages. Update merges a sparse patch server side.
type Store interface {
	// Create assigns an id when msg.ID is empty and returns the stored message.
	Create(ctx context.Context, msg *Message) (*Message, error)
	Get(ctx context.Context, id string) (*Message, error)
	Update(ctx context.Context, id string, patch Patch) (*Message, error)
	Delete(ctx context.Context, id string) error
	// List returns the transcript oldest first.
	List(ctx context.Context) ([]*Message, error)
}
