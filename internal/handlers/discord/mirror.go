package discord

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/KirkDiggler/saves-helper/internal/chat"
	"github.com/KirkDiggler/saves-helper/internal/domain/saves"
	"github.com/KirkDiggler/saves-helper/internal/render"
	"github.com/KirkDiggler/saves-helper/internal/services/damage"
)

// DiscordSession is the part of *discordgo.Session the bridge uses
type DiscordSession interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(edit *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

// ButtonsFunc returns the damage application buttons for a damage message.
type ButtonsFunc func(ctx context.Context, damageMessageID string) ([]*damage.RollButtons, error)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// Mirror posts persisted chat messages to a Discord channel and keeps them in sync.
type Mirror struct {
	session   DiscordSession
	store     chat.Store
	channelID string
	renderer  *render.Renderer
	buttons   ButtonsFunc
	logger    *zap.Logger

	mu     sync.Mutex
	posted map[string]string
}

// MirrorConfig holds configuration for a Mirror
type MirrorConfig struct {
	Session DiscordSession
	// Store is read to redraw damage messages when their record changes.
	Store     chat.Store
	ChannelID string
	Renderer  *render.Renderer
	// Buttons is optional; without it damage messages carry no buttons.
	Buttons ButtonsFunc
	Logger  *zap.Logger
}

// NewMirror creates a Mirror
func NewMirror(cfg *MirrorConfig) *Mirror {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Session == nil {
		panic("session is required")
	}
	if cfg.Store == nil {
		panic("store is required")
	}
	if cfg.ChannelID == "" {
		panic("channel id is required")
	}
	if cfg.Renderer == nil {
		panic("renderer is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Mirror{
		session:   cfg.Session,
		store:     cfg.Store,
		channelID: cfg.ChannelID,
		renderer:  cfg.Renderer,
		buttons:   cfg.Buttons,
		logger:    logger,
		posted:    make(map[string]string),
	}
}

// DiscordMessageID returns the channel message mirroring a chat message
func (m *Mirror) DiscordMessageID(chatID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.posted[chatID]
	return id, ok
}

// Observe is a chat.Observer
func (m *Mirror) Observe(ctx context.Context, change *chat.Change) {
	var err error
	switch change.Type {
	case chat.ChangeCreated, chat.ChangeUpdated:
		err = m.sync(ctx, change.Message)
		if err == nil {
			err = m.refreshLinkedDamage(ctx, change.Message)
		}
	case chat.ChangeDeleted:
		err = m.remove(change.ID)
	}
	if err != nil {
		m.logger.Warn("failed to mirror message",
			zap.String("change", string(change.Type)),
			zap.Error(err))
	}
}

// refreshLinkedDamage redraws a record's damage buttons, whose highlights follow its results.
func (m *Mirror) refreshLinkedDamage(ctx context.Context, msg *chat.Message) error {
	flags, ok, err := saves.DecodeSaves(msg.Flags)
	if err != nil || !ok || flags.DamageMessage == "" {
		return err
	}
	if _, posted := m.DiscordMessageID(flags.DamageMessage); !posted {
		return nil
	}
	damageMsg, err := m.store.Get(ctx, flags.DamageMessage)
	if err != nil {
		return err
	}
	p, err := m.damagePayload(ctx, damageMsg)
	if err != nil {
		return err
	}
	return m.edit(damageMsg.ID, p)
}

type payload struct {
	content    string
	embeds     []*discordgo.MessageEmbed
	components []discordgo.MessageComponent
}

func (m *Mirror) sync(ctx context.Context, msg *chat.Message) error {
	if msg == nil || len(msg.Whisper) > 0 {
		return nil
	}

	p, err := m.build(ctx, msg)
	if err != nil || p == nil {
		return err
	}

	if _, ok := m.DiscordMessageID(msg.ID); ok {
		return m.edit(msg.ID, p)
	}

	sent, err := m.session.ChannelMessageSendComplex(m.channelID, &discordgo.MessageSend{
		Content:    p.content,
		Embeds:     p.embeds,
		Components: p.components,
	})
	if err != nil {
		return fmt.Errorf("failed to post message %s: %w", msg.ID, err)
	}

	m.mu.Lock()
	m.posted[msg.ID] = sent.ID
	m.mu.Unlock()
	return nil
}

func (m *Mirror) edit(chatID string, p *payload) error {
	discordID, ok := m.DiscordMessageID(chatID)
	if !ok {
		return nil
	}
	embeds := p.embeds
	components := p.components
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	edit := &discordgo.MessageEdit{
		ID:         discordID,
		Channel:    m.channelID,
		Embeds:     &embeds,
		Components: &components,
	}
	if p.content != "" {
		edit.Content = &p.content
	}
	if _, err := m.session.ChannelMessageEditComplex(edit); err != nil {
		return fmt.Errorf("failed to edit message %s: %w", chatID, err)
	}
	return nil
}

func (m *Mirror) remove(chatID string) error {
	m.mu.Lock()
	discordID, ok := m.posted[chatID]
	delete(m.posted, chatID)
	m.mu.Unlock()

	if !ok {
		return nil
	}
	return m.session.ChannelMessageDelete(m.channelID, discordID)
}

func (m *Mirror) build(ctx context.Context, msg *chat.Message) (*payload, error) {
	flags, isRecord, err := saves.DecodeSaves(msg.Flags)
	if err != nil {
		return nil, err
	}
	if isRecord {
		rec := flags.Record(msg.ID, nil)
		view := m.renderer.View(ctx, rec)
		localizer := m.renderer.Localizer()
		return &payload{
			embeds:     []*discordgo.MessageEmbed{RecordEmbed(view, localizer)},
			components: RecordComponents(msg.ID, view, localizer),
		}, nil
	}

	if msg.ContextType() == saves.ContextDamageRoll {
		return m.damagePayload(ctx, msg)
	}

	text := plainText(msg.Content)
	if text == "" {
		return nil, nil
	}
	if msg.Speaker.Alias != "" {
		text = fmt.Sprintf("**%s**: %s", msg.Speaker.Alias, text)
	}
	return &payload{content: truncate(text, 2000)}, nil
}

func (m *Mirror) damagePayload(ctx context.Context, msg *chat.Message) (*payload, error) {
	p := &payload{embeds: []*discordgo.MessageEmbed{DamageEmbed(plainText(msg.Content), msg.Rolls)}}
	if m.buttons == nil {
		return p, nil
	}

	buttons, err := m.buttons(ctx, msg.ID)
	if err != nil {
		return nil, err
	}
	p.components = DamageComponents(msg.ID, buttons, m.renderer.Localizer())
	return p, nil
}

func plainText(content string) string {
	text := html.UnescapeString(htmlTag.ReplaceAllString(content, " "))
	return strings.Join(strings.Fields(text), " ")
}
