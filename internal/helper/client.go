// Package helper wires the saves services for one connected user and exposes the
// entry points a host calls when its users act.
package helper

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/KirkDiggler/saves-helper/internal/chat"
	"github.com/KirkDiggler/saves-helper/internal/config"
	"github.com/KirkDiggler/saves-helper/internal/dice"
	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
	"github.com/KirkDiggler/saves-helper/internal/events"
	"github.com/KirkDiggler/saves-helper/internal/relay"
	"github.com/KirkDiggler/saves-helper/internal/render"
	"github.com/KirkDiggler/saves-helper/internal/scene"
	"github.com/KirkDiggler/saves-helper/internal/services/damage"
	"github.com/KirkDiggler/saves-helper/internal/services/detector"
	"github.com/KirkDiggler/saves-helper/internal/services/records"
	"github.com/KirkDiggler/saves-helper/internal/services/rolls"
	"github.com/KirkDiggler/saves-helper/internal/spells"
	"github.com/KirkDiggler/saves-helper/internal/targeting"
	"github.com/KirkDiggler/saves-helper/internal/world"
)

// Config holds what a Client shares with the other clients of a world.
type Config struct {
	User *world.User
	// GMUserIDs receive whispered rolls.
	GMUserIDs []string
	Store     chat.Store
	Transport relay.Transport
	Directory world.Directory
	Scenes    *scene.Registry
	Catalog   spells.Catalog
	Settings  config.Settings
	// Dice is optional and defaults to a random roller.
	Dice dice.Roller
	// Roller is optional and defaults to a dice roller on Dice.
	Roller    rolls.CheckRoller
	Confirmer rolls.Confirmer
	Waiter    rolls.AnimationWaiter
	Notifier  damage.Notifier
	Logger    *zap.Logger
}

// Client is one user's view of the saves helper.
type Client struct {
	User       *world.User
	Session    *world.Session
	Store      *chat.ObservedStore
	Dispatcher *events.Dispatcher
	Renderer   *render.Renderer
	Enumerator *targeting.Enumerator
	Records    records.Service
	Detector   detector.Service
	Rolls      rolls.Service
	Damage     damage.Service

	scenes *scene.Registry
	relay  *relay.Relay
	logger *zap.Logger

	mu        sync.Mutex
	stopRelay func()
}

// New wires a client. Call Start to begin processing relayed changes.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.User == nil {
		panic("user is required")
	}
	if cfg.Store == nil {
		panic("store is required")
	}
	if cfg.Transport == nil {
		panic("transport is required")
	}
	if cfg.Directory == nil {
		panic("directory is required")
	}
	if cfg.Scenes == nil {
		panic("scenes are required")
	}
	if cfg.Catalog == nil {
		panic("spell catalog is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("user", cfg.User.ID))

	c := &Client{
		User:       cfg.User,
		Session:    world.NewSession(cfg.User),
		Dispatcher: events.NewDispatcher(logger),
		scenes:     cfg.Scenes,
		logger:     logger,
	}
	c.Store = chat.NewObservedStore(cfg.Store, c.observe)

	renderer, err := render.New(&render.Config{
		Directory:          cfg.Directory,
		IgnoreHealingSaves: cfg.Settings.IgnoreHealingSaves,
		Logger:             logger,
	})
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to build renderer")
	}
	c.Renderer = renderer

	c.Enumerator = targeting.New(&targeting.Config{
		Directory: cfg.Directory,
		Scenes:    cfg.Scenes,
		Logger:    logger,
	})

	c.relay = relay.New(&relay.Config{
		Transport: cfg.Transport,
		User:      cfg.User,
		Logger:    logger,
	})

	c.Records = records.NewService(&records.ServiceConfig{
		Store:      c.Store,
		Renderer:   renderer,
		Enumerator: c.Enumerator,
		Relay:      c.relay,
		User:       cfg.User,
		Logger:     logger,
	})

	c.Detector = detector.NewService(&detector.ServiceConfig{
		Records:    c.Records,
		Store:      c.Store,
		Catalog:    cfg.Catalog,
		Directory:  cfg.Directory,
		Enumerator: c.Enumerator,
		Session:    c.Session,
		Localizer:  renderer.Localizer(),
		Logger:     logger,
	})

	roller := cfg.Roller
	if roller == nil {
		roller = rolls.NewDiceCheckRoller(&rolls.DiceCheckRollerConfig{
			Dice:      cfg.Dice,
			Store:     c.Store,
			User:      cfg.User,
			GMUserIDs: cfg.GMUserIDs,
		})
	}
	c.Rolls = rolls.NewService(&rolls.ServiceConfig{
		Records:   c.Records,
		Directory: cfg.Directory,
		Roller:    roller,
		Waiter:    cfg.Waiter,
		Confirmer: cfg.Confirmer,
		Settings:  cfg.Settings,
		User:      cfg.User,
		Logger:    logger,
	})

	c.Damage = damage.NewService(&damage.ServiceConfig{
		Store:      c.Store,
		Records:    c.Records,
		Directory:  cfg.Directory,
		Enumerator: c.Enumerator,
		Notifier:   cfg.Notifier,
		Settings:   cfg.Settings,
		User:       cfg.User,
		Logger:     logger,
	})

	c.Detector.Register(c.Dispatcher)
	c.Dispatcher.Subscribe(events.EventTypeCheckRerolled, events.NewListener("rolls.reroll", 10,
		func(ctx context.Context, event *events.Event) error {
			if event.UserID != c.User.ID {
				return nil
			}
			return c.Rolls.OnReroll(ctx, event.Reroll)
		}))

	return c, nil
}

// Start listens for relayed changes. Only privileged users act on them.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopRelay != nil {
		return nil
	}
	stop, err := c.relay.Listen(ctx, c.Records)
	if err != nil {
		return dnderr.Wrap(err, "failed to listen for relay messages")
	}
	c.stopRelay = stop
	return nil
}

// Close stops listening for relayed changes
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopRelay != nil {
		c.stopRelay()
		c.stopRelay = nil
	}
}

// observe turns committed writes by this client into dispatcher events.
func (c *Client) observe(ctx context.Context, change *chat.Change) {
	var event *events.Event
	switch change.Type {
	case chat.ChangeCreated:
		event = &events.Event{Type: events.EventTypeMessageCreated, Message: change.Message}
	case chat.ChangeUpdated:
		event = &events.Event{Type: events.EventTypeMessageUpdated, Message: change.Message}
	default:
		return
	}
	event.UserID = c.User.ID

	if err := c.Dispatcher.Emit(ctx, event); err != nil {
		c.logger.Warn("event handlers failed",
			zap.String("event", string(event.Type)),
			zap.String("message", change.Message.ID),
			zap.Error(err))
	}
}

// PostMessage creates a message authored by this client's user.
func (c *Client) PostMessage(ctx context.Context, msg *chat.Message) (*chat.Message, error) {
	if msg == nil {
		return nil, dnderr.InvalidArgument("message is required")
	}
	msg.AuthorID = c.User.ID
	return c.Store.Create(ctx, msg)
}

// EditMessage announces an edit to the handlers before persisting it.
func (c *Client) EditMessage(ctx context.Context, id string, patch chat.Patch) (*chat.Message, error) {
	current, err := c.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := &chat.Message{}
	if err := patch.Apply(changed); err != nil {
		return nil, err
	}
	if err := c.Dispatcher.Emit(ctx, &events.Event{
		Type:    events.EventTypeMessageUpdating,
		UserID:  c.User.ID,
		Message: current,
		Changed: changed.Flags,
	}); err != nil {
		c.logger.Warn("updating handlers failed", zap.String("message", id), zap.Error(err))
	}

	return c.Store.Update(ctx, id, patch)
}

// PlaceTemplate draws an area template on its scene and announces it.
func (c *Client) PlaceTemplate(ctx context.Context, template *scene.Template) error {
	if template == nil {
		return dnderr.InvalidArgument("template is required")
	}
	s, err := c.scenes.Scene(template.SceneID)
	if err != nil {
		return err
	}
	template.AuthorID = c.User.ID
	s.AddTemplate(template)

	return c.Dispatcher.Emit(ctx, &events.Event{
		Type:     events.EventTypeTemplateCreated,
		UserID:   c.User.ID,
		Template: template,
	})
}

// Reroll announces a check rerolled outside the original roll call.
func (c *Client) Reroll(ctx context.Context, reroll *events.Reroll) error {
	if reroll == nil {
		return dnderr.InvalidArgument("reroll is required")
	}
	return c.Dispatcher.Emit(ctx, &events.Event{
		Type:   events.EventTypeCheckRerolled,
		UserID: c.User.ID,
		Reroll: reroll,
	})
}

// SetTargets replaces the user's current target selection
func (c *Client) SetTargets(tokenUUIDs []string) {
	c.Session.SetTargets(tokenUUIDs)
}
