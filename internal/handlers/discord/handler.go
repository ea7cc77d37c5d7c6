// Package discord bridges the saves helper to a Discord channel: slash commands
// post action messages, buttons roll saves and apply damage.
package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/KirkDiggler/saves-helper/internal/chat"
	"github.com/KirkDiggler/saves-helper/internal/dice"
	"github.com/KirkDiggler/saves-helper/internal/domain/saves"
	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
	"github.com/KirkDiggler/saves-helper/internal/helper"
	"github.com/KirkDiggler/saves-helper/internal/scene"
	"github.com/KirkDiggler/saves-helper/internal/services/damage"
	"github.com/KirkDiggler/saves-helper/internal/services/rolls"
	"github.com/KirkDiggler/saves-helper/internal/world"
)

// CommandName is the root slash command
const CommandName = "saves"

// Handler handles all Discord interactions
type Handler struct {
	pool    *helper.Pool
	session DiscordSession
	scenes  *scene.Registry
	sceneID string
	logger  *zap.Logger
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	Pool    *helper.Pool
	Session DiscordSession
	Scenes  *scene.Registry
	// SceneID is the scene bare token ids refer to.
	SceneID string
	Logger  *zap.Logger
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Pool == nil {
		panic("client pool is required")
	}
	if cfg.Session == nil {
		panic("session is required")
	}
	if cfg.Scenes == nil {
		panic("scene registry is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		pool:    cfg.Pool,
		session: cfg.Session,
		scenes:  cfg.Scenes,
		sceneID: cfg.SceneID,
		logger:  logger,
	}
}

// Commands returns the slash commands the handler answers
func Commands() []*discordgo.ApplicationCommand {
	saveChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Fortitude", Value: "fortitude"},
		{Name: "Reflex", Value: "reflex"},
		{Name: "Will", Value: "will"},
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandName,
			Description: "Saving throw helper",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "target",
					Description: "Select the tokens your next action targets",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "tokens",
							Description: "Comma separated token ids",
							Required:    true,
						},
					},
				},
				{
					Name:        "cast",
					Description: "Cast a spell",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "spell",
							Description: "Spell reference",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "caster",
							Description: "Casting actor",
							Required:    true,
						},
					},
				},
				{
					Name:        "variant",
					Description: "Choose the variant of a cast spell",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "message",
							Description: "Spell cast message id",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "overlay",
							Description: "Variant id",
							Required:    true,
						},
					},
				},
				{
					Name:        "check",
					Description: "Ask for a saving throw",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "save",
							Description: "Save type",
							Required:    true,
							Choices:     saveChoices,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "dc",
							Description: "Difficulty class",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "basic",
							Description: "Basic save",
						},
					},
				},
				{
					Name:        "damage",
					Description: "Roll damage for the last action",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "Rolled total",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "type",
							Description: "Damage type, e.g. fire",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "origin",
							Description: "Spell or item the damage comes from",
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "healing",
							Description: "Heal instead of damage",
						},
					},
				},
				{
					Name:        "template",
					Description: "Place an area template for a message",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "message",
							Description: "Action message id",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "shape",
							Description: "Template shape",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Burst", Value: string(scene.ShapeCircle)},
								{Name: "Cone", Value: string(scene.ShapeCone)},
								{Name: "Square", Value: string(scene.ShapeRect)},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "col",
							Description: "Column of the origin's top left corner",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "row",
							Description: "Row of the origin's top left corner",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "distance",
							Description: "Radius, length or side in feet",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "direction",
							Description: "Cone heading in degrees, clockwise from east",
						},
					},
				},
			},
		},
	}
}

// RegisterCommands registers the slash commands for a guild, or globally when guildID is empty
func RegisterCommands(s *discordgo.Session, appID, guildID string) error {
	for _, cmd := range Commands() {
		if _, err := s.ApplicationCommandCreate(appID, guildID, cmd); err != nil {
			return fmt.Errorf("failed to create command %s: %w", cmd.Name, err)
		}
	}
	return nil
}

// HandleInteraction handles all Discord interactions
func (h *Handler) HandleInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var err error
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		err = h.handleCommand(ctx, i)
	case discordgo.InteractionMessageComponent:
		err = h.handleComponent(ctx, i)
	}
	if err != nil {
		h.logger.Warn("interaction failed", zap.String("interaction", i.ID), zap.Error(err))
		h.respond(i, describeError(err))
	}
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func (h *Handler) client(ctx context.Context, i *discordgo.InteractionCreate) (*helper.Client, error) {
	user := interactionUser(i)
	if user == nil {
		return nil, dnderr.InvalidArgument("interaction has no user")
	}
	return h.pool.Client(ctx, user.ID, user.Username)
}

// respond sends an ephemeral reply
func (h *Handler) respond(i *discordgo.InteractionCreate, content string) {
	err := h.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		h.logger.Debug("failed to respond", zap.String("interaction", i.ID), zap.Error(err))
	}
}

// respondComponents sends an ephemeral reply carrying components
func (h *Handler) respondComponents(i *discordgo.InteractionCreate, content string, components []discordgo.MessageComponent) {
	err := h.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		h.logger.Debug("failed to respond", zap.String("interaction", i.ID), zap.Error(err))
	}
}

func describeError(err error) string {
	switch dnderr.GetCode(err) {
	case dnderr.CodePermissionDenied:
		return "❌ You can't do that for this token."
	case dnderr.CodeNotFound:
		return "❌ That message or token no longer exists."
	case dnderr.CodeInvalidArgument:
		return fmt.Sprintf("❌ %v", err)
	default:
		return "❌ Something went wrong."
	}
}

func (h *Handler) tokenUUID(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, "Scene.") || h.sceneID == "" {
		return id
	}
	return world.TokenUUID(h.sceneID, id)
}

func (h *Handler) handleCommand(ctx context.Context, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	if data.Name != CommandName || len(data.Options) == 0 {
		return nil
	}
	sub := data.Options[0]
	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(sub.Options))
	for _, opt := range sub.Options {
		opts[opt.Name] = opt
	}

	c, err := h.client(ctx, i)
	if err != nil {
		return err
	}

	switch sub.Name {
	case "target":
		var targets []string
		for _, id := range strings.Split(opts["tokens"].StringValue(), ",") {
			if id = strings.TrimSpace(id); id != "" {
				targets = append(targets, h.tokenUUID(id))
			}
		}
		c.SetTargets(targets)
		h.respond(i, fmt.Sprintf("🎯 Targeting %d token(s).", len(c.Session.Targets())))
		return nil

	case "cast":
		caster := opts["caster"].StringValue()
		msg, err := c.PostMessage(ctx, &chat.Message{
			Speaker: chat.Speaker{Actor: caster, Alias: interactionUser(i).Username},
			Content: fmt.Sprintf("casts %s", opts["spell"].StringValue()),
			Flags: map[string]any{saves.HostNamespace: map[string]any{
				"context": map[string]any{"type": saves.ContextSpellCast},
				"origin":  map[string]any{"uuid": opts["spell"].StringValue(), "type": "spell", "actor": caster},
			}},
		})
		if err != nil {
			return err
		}
		h.respond(i, fmt.Sprintf("✨ Cast posted as `%s`.", msg.ID))
		return nil

	case "variant":
		_, err := c.EditMessage(ctx, opts["message"].StringValue(), chat.Patch{
			"flags." + saves.HostNamespace + ".origin.variant": map[string]any{
				"overlays": []string{opts["overlay"].StringValue()},
			},
		})
		if err != nil {
			return err
		}
		h.respond(i, "✨ Variant chosen.")
		return nil

	case "check":
		saveType := opts["save"].StringValue()
		dc := opts["dc"].IntValue()
		basic := ""
		if opt, ok := opts["basic"]; ok && opt.BoolValue() {
			basic = "basic "
		}
		name := strings.ToUpper(saveType[:1]) + saveType[1:]
		msg, err := c.PostMessage(ctx, &chat.Message{
			Speaker: chat.Speaker{Alias: interactionUser(i).Username},
			Content: fmt.Sprintf(`<p>DC %d %s<a class="inline-check" data-pf2-check="%s" data-pf2-dc="%d">%s</a> save</p>`,
				dc, basic, saveType, dc, name),
		})
		if err != nil {
			return err
		}
		h.respond(i, fmt.Sprintf("🎲 Check posted as `%s`.", msg.ID))
		return nil

	case "damage":
		kind := dice.KindDamage
		if opt, ok := opts["healing"]; ok && opt.BoolValue() {
			kind = dice.KindHealing
		}
		amount := int(opts["amount"].IntValue())
		damageType := opts["type"].StringValue()
		host := map[string]any{"context": map[string]any{"type": saves.ContextDamageRoll}}
		if opt, ok := opts["origin"]; ok && opt.StringValue() != "" {
			host["origin"] = map[string]any{"uuid": opt.StringValue()}
		}
		msg, err := c.PostMessage(ctx, &chat.Message{
			Speaker: chat.Speaker{Alias: interactionUser(i).Username},
			Rolls: []*dice.DamageRoll{{
				Formula:   fmt.Sprintf("%d %s", amount, damageType),
				Instances: []dice.DamageInstance{{Type: damageType, Formula: fmt.Sprint(amount), Total: amount}},
				Kinds:     []dice.DamageKind{kind},
			}},
			Flags: map[string]any{saves.HostNamespace: host},
		})
		if err != nil {
			return err
		}
		h.respond(i, fmt.Sprintf("💥 Damage posted as `%s`.", msg.ID))
		return nil

	case "template":
		s, err := h.scenes.Scene(h.sceneID)
		if err != nil {
			return err
		}
		origin := s.Corner(scene.Cell{Col: int(opts["col"].IntValue()), Row: int(opts["row"].IntValue())})
		template := &scene.Template{
			ID:        opts["message"].StringValue() + "-template",
			SceneID:   h.sceneID,
			Shape:     scene.Shape(opts["shape"].StringValue()),
			Origin:    origin,
			Distance:  float64(opts["distance"].IntValue()),
			MessageID: opts["message"].StringValue(),
		}
		switch template.Shape {
		case scene.ShapeRect:
			template.Width = template.Distance
		case scene.ShapeCone:
			template.Angle = 90
			if opt, ok := opts["direction"]; ok {
				template.Direction = float64(opt.IntValue())
			}
		}
		if err := c.PlaceTemplate(ctx, template); err != nil {
			return err
		}
		h.respond(i, "📐 Template placed.")
		return nil
	}
	return nil
}

func (h *Handler) handleComponent(ctx context.Context, i *discordgo.InteractionCreate) error {
	id, ok, err := ParseComponentID(i.MessageComponentData().CustomID)
	if !ok {
		return nil
	}
	if err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "bad button")
	}

	c, err := h.client(ctx, i)
	if err != nil {
		return err
	}

	switch id.Action {
	case ActionRoll, ActionRollPick:
		token := id.TokenUUID
		if id.Action == ActionRollPick {
			if token, err = selectedToken(i); err != nil {
				return err
			}
		}
		if err := c.Rolls.RollSave(ctx, &rolls.RollSaveInput{RecordID: id.MessageID, TokenUUID: token}); err != nil {
			return err
		}
		h.respond(i, "🎲 Rolled.")

	case ActionPick:
		token, err := selectedToken(i)
		if err != nil {
			return err
		}
		return h.pickToken(ctx, i, c, id, token)

	case ActionRollAll, ActionRollNPCs:
		roll := c.Rolls.RollAll
		if id.Action == ActionRollNPCs {
			roll = c.Rolls.RollNPCs
		}
		result, err := roll(ctx, id.MessageID, false)
		if err != nil {
			return err
		}
		h.respond(i, batchSummary(len(result.Rolled), len(result.Failed), "Rolled"))

	case ActionTargets:
		rec, err := c.Records.AddTargets(ctx, id.MessageID, c.Session.Targets())
		if err != nil {
			return err
		}
		h.respond(i, fmt.Sprintf("🎯 %d target(s) set.", len(rec.Targets)))

	case ActionApply, ActionShield:
		outcome, err := c.Damage.Apply(ctx, &damage.ApplyInput{
			TokenInput: damage.TokenInput{
				MessageID:   id.MessageID,
				RollIndex:   id.RollIndex,
				TokenUUID:   id.TokenUUID,
				ShieldBlock: id.Action == ActionShield,
			},
			Multiplier: id.Multiplier,
		})
		if err != nil {
			return err
		}
		if !outcome.Applied {
			h.respond(i, "Nothing to apply.")
			return nil
		}
		h.respond(i, fmt.Sprintf("✅ Applied ×%s.", formatMultiplier(id.Multiplier)))

	case ActionApplyAll, ActionApplyNPCs:
		apply := c.Damage.ApplyToAll
		if id.Action == ActionApplyNPCs {
			apply = c.Damage.ApplyToNPCs
		}
		result, err := apply(ctx, id.MessageID, id.RollIndex)
		if err != nil {
			return err
		}
		h.respond(i, batchSummary(len(result.Outcomes), len(result.Failed), "Applied"))

	case ActionSplash:
		result, err := c.Damage.SplashAround(ctx, &damage.TokenInput{
			MessageID: id.MessageID,
			RollIndex: id.RollIndex,
			TokenUUID: id.TokenUUID,
		})
		if err != nil {
			return err
		}
		if result == nil {
			h.respond(i, "Nothing splashed.")
			return nil
		}
		h.respond(i, batchSummary(len(result.Outcomes), len(result.Failed), "💥 Splashed"))
	}
	return nil
}

func selectedToken(i *discordgo.InteractionCreate) (string, error) {
	values := i.MessageComponentData().Values
	if len(values) == 0 || values[0] == "" {
		return "", dnderr.InvalidArgument("no token selected")
	}
	return values[0], nil
}

// pickToken replies with the buttons for one token on one roll of a damage message.
func (h *Handler) pickToken(ctx context.Context, i *discordgo.InteractionCreate, c *helper.Client, id ComponentID, token string) error {
	buttons, err := c.Damage.Buttons(ctx, id.MessageID)
	if err != nil {
		return err
	}

	for _, rb := range buttons {
		if rb.RollIndex != id.RollIndex {
			continue
		}
		for _, tb := range rb.Tokens {
			if tb.TokenUUID != token {
				continue
			}
			if tb.AlreadyApplied {
				h.respond(i, "Already applied.")
				return nil
			}
			h.respondComponents(i, fmt.Sprintf("**%s**", tb.Name),
				TokenComponents(id.MessageID, rb, tb, c.Renderer.Localizer()))
			return nil
		}
	}
	return dnderr.NotFoundf("token %s is not on roll %d of %s", token, id.RollIndex, id.MessageID)
}

func batchSummary(done, failed int, verb string) string {
	if failed == 0 {
		return fmt.Sprintf("%s for %d token(s).", verb, done)
	}
	return fmt.Sprintf("%s for %d token(s); %d failed.", verb, done, failed)
}

func formatMultiplier(m float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", m), "0"), ".")
}
