package relay

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/saves-helper/internal/uuid"
)

type redisFrame struct {
	Sender  string          `json:"sender"`
	Payload json.RawMessage `json:"payload"`
}

// RedisTransport relays over Redis Pub/Sub. Frames carry the sender id so a client
// can drop its own messages.
type RedisTransport struct {
	client   redis.UniversalClient
	senderID string
	logger   *zap.Logger
}

// RedisTransportConfig configures a RedisTransport
type RedisTransportConfig struct {
	Client redis.UniversalClient
	// SenderID identifies this client; generated when empty.
	SenderID string
	Logger   *zap.Logger
}

// NewRedisTransport creates a Pub/Sub transport
func NewRedisTransport(cfg *RedisTransportConfig) *RedisTransport {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	t := &RedisTransport{
		client:   cfg.Client,
		senderID: cfg.SenderID,
		logger:   cfg.Logger,
	}
	if t.senderID == "" {
		t.senderID = uuid.NewGoogleUUIDGenerator().New()
	}
	if t.logger == nil {
		t.logger = zap.NewNop()
	}
	return t
}

// Publish implements Transport
func (t *RedisTransport) Publish(ctx context.Context, topic string, payload []byte) error {
	frame, err := json.Marshal(redisFrame{Sender: t.senderID, Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to encode relay frame: %w", err)
	}
	if err := t.client.Publish(ctx, topic, frame).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe implements Transport. Handlers run on a single goroutine per subscription.
func (t *RedisTransport) Subscribe(ctx context.Context, topic string, handler Handler) (func(), error) {
	pubsub := t.client.Subscribe(ctx, topic)

	// wait for the subscription to be confirmed before reporting success
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	ch := pubsub.Channel()
	go func() {
		for msg := range ch {
			t.deliver(ctx, msg.Payload, handler)
		}
	}()

	return func() {
		if err := pubsub.Close(); err != nil {
			t.logger.Debug("closing relay subscription", zap.String("topic", topic), zap.Error(err))
		}
	}, nil
}

func (t *RedisTransport) deliver(ctx context.Context, raw string, handler Handler) {
	var frame redisFrame
	if err := json.Unmarshal([]byte(raw), &frame); err != nil {
		t.logger.Warn("dropping malformed relay frame", zap.Error(err))
		return
	}
	if frame.Sender == t.senderID {
		return
	}
	handler(ctx, frame.Payload)
}
