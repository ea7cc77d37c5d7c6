// Package relay lets clients without write access to a saves message hand their
// changes to a privileged client. Delivery is fire and forget.
package relay

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/KirkDiggler/saves-helper/internal/world"
)

// Receiver applies relayed changes with the receiving client's own authority.
type Receiver interface {
	HandleSaveRolled(ctx context.Context, msg *SaveRolled) error
	HandleUpdateApplied(ctx context.Context, msg *UpdateApplied) error
}

// Relay sends and receives relay messages for one client.
type Relay struct {
	transport Transport
	user      *world.User
	logger    *zap.Logger
}

// Config holds the dependencies of a Relay
type Config struct {
	Transport Transport
	// User is the local user; only privileged users act on inbound messages.
	User   *world.User
	Logger *zap.Logger
}

// New creates a Relay
func New(cfg *Config) *Relay {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Transport == nil {
		panic("transport is required")
	}
	if cfg.User == nil {
		panic("user is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Relay{
		transport: cfg.Transport,
		user:      cfg.User,
		logger:    logger,
	}
}

// SendSaveRolled broadcasts a roll result. Nobody acknowledges it.
func (r *Relay) SendSaveRolled(ctx context.Context, msg *SaveRolled) error {
	if msg == nil {
		return errors.New("message is required")
	}
	payload, err := EncodeSaveRolled(msg)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", TypeSaveRolled, err)
	}
	r.logger.Debug("relaying save result",
		zap.String("message", msg.Message),
		zap.String("token", msg.Token),
		zap.Stringer("degree", msg.DegreeOfSuccess))
	return r.transport.Publish(ctx, Topic, payload)
}

// SendUpdateApplied broadcasts an applied-damage marker. Nobody acknowledges it.
func (r *Relay) SendUpdateApplied(ctx context.Context, msg *UpdateApplied) error {
	if msg == nil {
		return errors.New("message is required")
	}
	payload, err := EncodeUpdateApplied(msg)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", TypeUpdateApplied, err)
	}
	r.logger.Debug("relaying applied damage",
		zap.String("message", msg.Message),
		zap.String("token", msg.Token))
	return r.transport.Publish(ctx, Topic, payload)
}

// Listen subscribes receiver to inbound messages. Messages are dropped unless the
// local user is privileged; role is the only check made.
func (r *Relay) Listen(ctx context.Context, receiver Receiver) (func(), error) {
	if receiver == nil {
		return nil, errors.New("receiver is required")
	}
	return r.transport.Subscribe(ctx, Topic, func(ctx context.Context, payload []byte) {
		r.handle(ctx, receiver, payload)
	})
}

func (r *Relay) handle(ctx context.Context, receiver Receiver, payload []byte) {
	if !r.user.IsGM() {
		return
	}

	decoded, err := Decode(payload)
	if err != nil {
		r.logger.Warn("dropping relay message", zap.Error(err))
		return
	}

	switch msg := decoded.(type) {
	case *SaveRolled:
		err = receiver.HandleSaveRolled(ctx, msg)
	case *UpdateApplied:
		err = receiver.HandleUpdateApplied(ctx, msg)
	default:
		return
	}
	if err != nil {
		r.logger.Warn("failed to apply relay message", zap.Error(err))
	}
}
