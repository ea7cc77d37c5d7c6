package discord

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/KirkDiggler/saves-helper/internal/chat"
	"github.com/KirkDiggler/saves-helper/internal/config"
	mockdice "github.com/KirkDiggler/saves-helper/internal/dice/mock"
	"github.com/KirkDiggler/saves-helper/internal/domain/saves"
	"github.com/KirkDiggler/saves-helper/internal/helper"
	"github.com/KirkDiggler/saves-helper/internal/relay"
	"github.com/KirkDiggler/saves-helper/internal/render"
	"github.com/KirkDiggler/saves-helper/internal/scene"
	"github.com/KirkDiggler/saves-helper/internal/services/damage"
	"github.com/KirkDiggler/saves-helper/internal/spells"
	"github.com/KirkDiggler/saves-helper/internal/testutils"
	"github.com/KirkDiggler/saves-helper/internal/world"
)

type HandlerTestSuite struct {
	suite.Suite
	ctx context.Context

	world   *testutils.World
	dice    *mockdice.ManualMockRoller
	session *mockSession
	mirror  *Mirror
	pool    *helper.Pool
	handler *Handler

	goblin   *world.Token
	orc      *world.Token
	goblinHP *world.Creature
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.world = testutils.NewWorld()
	s.dice = mockdice.NewManualMockRoller()
	s.session = newMockSession()

	s.goblin, s.goblinHP = s.world.AddToken("goblin", testutils.CreateTestCreature("goblin", "Goblin", 30, 5), scene.Cell{Col: 0, Row: 0})
	s.orc, _ = s.world.AddToken("orc", testutils.CreateTestCreature("orc", "Orc", 30, 5), scene.Cell{Col: 1, Row: 0})
	s.world.Directory.AddActor(world.NewCreature(testutils.CreateTestCharacter("ezren", "Ezren", 20, 20)))

	renderer, err := render.New(&render.Config{Directory: s.world.Directory, IgnoreHealingSaves: true})
	s.Require().NoError(err)

	s.mirror = NewMirror(&MirrorConfig{
		Session:   s.session,
		Store:     s.world.Store,
		ChannelID: "table",
		Renderer:  renderer,
		Buttons: func(ctx context.Context, id string) ([]*damage.RollButtons, error) {
			gm, err := s.pool.Client(ctx, "gm", "GM")
			if err != nil {
				return nil, err
			}
			return gm.Damage.Buttons(ctx, id)
		},
		Logger: zaptest.NewLogger(s.T()),
	})

	bus := relay.NewMemoryBus()
	s.pool = helper.NewPool(&helper.PoolConfig{
		Base: helper.Config{
			GMUserIDs: []string{"gm"},
			Store:     chat.NewObservedStore(s.world.Store, s.mirror.Observe),
			Directory: s.world.Directory,
			Scenes:    s.world.Scenes,
			Catalog: spells.NewMemoryCatalog(
				&spells.Spell{UUID: "Item.fireball", Name: "Fireball", Defense: &spells.SaveDefense{Statistic: "reflex", Basic: true}},
			),
			Settings: config.DefaultSettings(),
			Dice:     s.dice,
			Logger:   zaptest.NewLogger(s.T()),
		},
		NewTransport: func(context.Context, string) (relay.Transport, error) {
			return bus.Transport(), nil
		},
	})

	s.handler = NewHandler(&HandlerConfig{
		Pool:    s.pool,
		Session: s.session,
		Scenes:  s.world.Scenes,
		SceneID: testutils.TestSceneID,
		Logger:  zaptest.NewLogger(s.T()),
	})
}

func (s *HandlerTestSuite) TearDownTest() {
	s.pool.Close()
}

func option(name string, t discordgo.ApplicationCommandOptionType, value any) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: t, Value: value}
}

func (s *HandlerTestSuite) command(userID, sub string, opts ...*discordgo.ApplicationCommandInteractionDataOption) {
	s.handler.HandleInteraction(nil, &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:     "i-" + sub,
		Type:   discordgo.InteractionApplicationCommand,
		Member: &discordgo.Member{User: &discordgo.User{ID: userID, Username: userID}},
		Data: discordgo.ApplicationCommandInteractionData{
			Name: CommandName,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{{
				Name:    sub,
				Type:    discordgo.ApplicationCommandOptionSubCommand,
				Options: opts,
			}},
		},
	}})
}

func (s *HandlerTestSuite) click(userID string, id ComponentID) {
	s.handler.HandleInteraction(nil, &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:   "i-" + id.Action,
		Type: discordgo.InteractionMessageComponent,
		User: &discordgo.User{ID: userID, Username: userID},
		Data: discordgo.MessageComponentInteractionData{CustomID: id.String()},
	}})
}

// choose submits a select menu interaction with one chosen value.
func (s *HandlerTestSuite) choose(userID string, id ComponentID, value string) {
	s.handler.HandleInteraction(nil, &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:   "i-" + id.Action,
		Type: discordgo.InteractionMessageComponent,
		User: &discordgo.User{ID: userID, Username: userID},
		Data: discordgo.MessageComponentInteractionData{
			CustomID:      id.String(),
			ComponentType: discordgo.SelectMenuComponent,
			Values:        []string{value},
		},
	}})
}

// castFireball targets goblin and orc and casts, returning the record id.
func (s *HandlerTestSuite) castFireball() string {
	s.command("gm", "target", option("tokens", discordgo.ApplicationCommandOptionString, "goblin, orc"))
	s.command("gm", "cast",
		option("spell", discordgo.ApplicationCommandOptionString, "Item.fireball"),
		option("caster", discordgo.ApplicationCommandOptionString, "Actor.ezren"))

	msgs, err := s.world.Store.List(s.ctx)
	s.Require().NoError(err)
	for _, msg := range msgs {
		if _, ok, _ := saves.DecodeSaves(msg.Flags); ok {
			return msg.ID
		}
	}
	s.FailNow("no saves record was created")
	return ""
}

func (s *HandlerTestSuite) TestCast_PostsRecordEmbed() {
	recordID := s.castFireball()

	discordID, ok := s.mirror.DiscordMessageID(recordID)
	s.Require().True(ok)
	embeds := s.session.sent[discordID].Embeds
	s.Require().Len(embeds, 1)
	s.Require().Len(embeds[0].Fields, 2)
	s.Equal("Goblin", embeds[0].Fields[0].Name)
	s.Equal("⏳ waiting", embeds[0].Fields[0].Value)
	s.Contains(s.session.lastResponse(), "Cast posted")
}

func (s *HandlerTestSuite) TestRollButton_UpdatesEmbed() {
	recordID := s.castFireball()
	s.dice.SetNextRoll(3)

	s.click("gm", ComponentID{Action: ActionRoll, MessageID: recordID, TokenUUID: s.goblin.UUID})

	gm, err := s.pool.Client(s.ctx, "gm", "GM")
	s.Require().NoError(err)
	rec, err := gm.Records.Get(s.ctx, recordID)
	s.Require().NoError(err)
	result, ok := rec.Result(s.goblin.UUID)
	s.Require().True(ok)
	s.Equal(saves.CriticalFailure, result.DegreeOfSuccess)

	discordID, _ := s.mirror.DiscordMessageID(recordID)
	edit := s.session.lastEdit(discordID)
	s.Require().NotNil(edit)
	s.Require().NotNil(edit.Embeds)
	s.True(strings.HasPrefix((*edit.Embeds)[0].Fields[0].Value, degreeEmoji[saves.CriticalFailure.String()]))
}

func (s *HandlerTestSuite) TestRollButton_PlayerCannotRollNPC() {
	recordID := s.castFireball()

	s.click("p1", ComponentID{Action: ActionRoll, MessageID: recordID, TokenUUID: s.goblin.UUID})

	s.Equal("❌ You can't do that for this token.", s.session.lastResponse())
}

func (s *HandlerTestSuite) TestDamageAndApply() {
	recordID := s.castFireball()
	s.dice.SetRolls([]int{3, 3})
	s.click("gm", ComponentID{Action: ActionRollAll, MessageID: recordID})
	s.Contains(s.session.lastResponse(), "Rolled for 2 token(s)")

	s.command("gm", "damage",
		option("amount", discordgo.ApplicationCommandOptionInteger, float64(10)),
		option("type", discordgo.ApplicationCommandOptionString, "fire"),
		option("origin", discordgo.ApplicationCommandOptionString, "Item.fireball"))

	gm, err := s.pool.Client(s.ctx, "gm", "GM")
	s.Require().NoError(err)
	rec, err := gm.Records.Get(s.ctx, recordID)
	s.Require().NoError(err)
	s.Require().NotEmpty(rec.DamageMessage)

	// The record update redraws the damage message with highlighted buttons.
	damageDiscordID, ok := s.mirror.DiscordMessageID(rec.DamageMessage)
	s.Require().True(ok)
	s.NotEmpty(s.session.sent[damageDiscordID].Embeds)

	s.click("gm", ComponentID{Action: ActionApply, MessageID: rec.DamageMessage, TokenUUID: s.goblin.UUID, Multiplier: 2})
	s.Equal("✅ Applied ×2.", s.session.lastResponse())
	s.Equal(10, s.goblinHP.HitPoints())

	s.click("gm", ComponentID{Action: ActionApplyAll, MessageID: rec.DamageMessage})
	s.Equal(10, s.goblinHP.HitPoints())

	rec, err = gm.Records.Get(s.ctx, recordID)
	s.Require().NoError(err)
	s.True(rec.IsApplied(s.goblin.UUID))
	s.True(rec.IsApplied(s.orc.UUID))
}

func (s *HandlerTestSuite) TestPickToken_RepliesWithThatTokensButtons() {
	recordID := s.castFireball()
	s.dice.SetRolls([]int{3, 3})
	s.click("gm", ComponentID{Action: ActionRollAll, MessageID: recordID})
	s.command("gm", "damage",
		option("amount", discordgo.ApplicationCommandOptionInteger, float64(10)),
		option("type", discordgo.ApplicationCommandOptionString, "fire"),
		option("origin", discordgo.ApplicationCommandOptionString, "Item.fireball"))

	gm, err := s.pool.Client(s.ctx, "gm", "GM")
	s.Require().NoError(err)
	rec, err := gm.Records.Get(s.ctx, recordID)
	s.Require().NoError(err)

	s.choose("gm", ComponentID{Action: ActionPick, MessageID: rec.DamageMessage}, s.orc.UUID)
	s.Contains(s.session.lastResponse(), "Orc")

	var splash, apply *ComponentID
	for _, row := range s.session.lastComponents() {
		for _, c := range row.(discordgo.ActionsRow).Components {
			id, _, err := ParseComponentID(c.(discordgo.Button).CustomID)
			s.Require().NoError(err)
			s.Equal(s.orc.UUID, id.TokenUUID)
			switch {
			case id.Action == ActionSplash:
				splash = &id
			case id.Action == ActionApply && id.Multiplier == 1:
				apply = &id
			}
		}
	}
	s.Require().NotNil(splash)
	s.Require().NotNil(apply)

	s.click("gm", *apply)
	s.Equal("✅ Applied ×1.", s.session.lastResponse())

	s.choose("gm", ComponentID{Action: ActionPick, MessageID: rec.DamageMessage}, s.orc.UUID)
	s.Equal("Already applied.", s.session.lastResponse())
}

func (s *HandlerTestSuite) TestPickToken_UnknownToken() {
	recordID := s.castFireball()
	s.command("gm", "damage",
		option("amount", discordgo.ApplicationCommandOptionInteger, float64(10)),
		option("type", discordgo.ApplicationCommandOptionString, "fire"),
		option("origin", discordgo.ApplicationCommandOptionString, "Item.fireball"))

	gm, err := s.pool.Client(s.ctx, "gm", "GM")
	s.Require().NoError(err)
	rec, err := gm.Records.Get(s.ctx, recordID)
	s.Require().NoError(err)

	s.choose("gm", ComponentID{Action: ActionPick, MessageID: rec.DamageMessage}, "Scene.nowhere.Token.ghost")
	s.Equal("❌ That message or token no longer exists.", s.session.lastResponse())
}

func (s *HandlerTestSuite) TestRollPick_RollsChosenToken() {
	recordID := s.castFireball()
	s.dice.SetRolls([]int{15})

	s.choose("gm", ComponentID{Action: ActionRollPick, MessageID: recordID}, s.goblin.UUID)
	s.Equal("🎲 Rolled.", s.session.lastResponse())

	gm, err := s.pool.Client(s.ctx, "gm", "GM")
	s.Require().NoError(err)
	rec, err := gm.Records.Get(s.ctx, recordID)
	s.Require().NoError(err)
	_, ok := rec.Result(s.goblin.UUID)
	s.True(ok)
}

func (s *HandlerTestSuite) TestTemplateCommand_Retargets() {
	s.command("gm", "target", option("tokens", discordgo.ApplicationCommandOptionString, "goblin"))
	s.command("gm", "cast",
		option("spell", discordgo.ApplicationCommandOptionString, "Item.fireball"),
		option("caster", discordgo.ApplicationCommandOptionString, "Actor.ezren"))
	recordID := ""
	source := ""
	msgs, err := s.world.Store.List(s.ctx)
	s.Require().NoError(err)
	for _, msg := range msgs {
		if _, ok, _ := saves.DecodeSaves(msg.Flags); ok {
			recordID = msg.ID
		} else if msg.ContextType() == saves.ContextSpellCast {
			source = msg.ID
		}
	}
	s.Require().NotEmpty(source)

	s.command("gm", "template",
		option("message", discordgo.ApplicationCommandOptionString, source),
		option("shape", discordgo.ApplicationCommandOptionString, string(scene.ShapeRect)),
		option("col", discordgo.ApplicationCommandOptionInteger, float64(0)),
		option("row", discordgo.ApplicationCommandOptionInteger, float64(0)),
		option("distance", discordgo.ApplicationCommandOptionInteger, float64(10)))
	s.Equal("📐 Template placed.", s.session.lastResponse())

	gm, err := s.pool.Client(s.ctx, "gm", "GM")
	s.Require().NoError(err)
	rec, err := gm.Records.Get(s.ctx, recordID)
	s.Require().NoError(err)
	s.ElementsMatch([]string{s.goblin.UUID, s.orc.UUID}, rec.Targets)
}

func (s *HandlerTestSuite) TestCheckCommand_CreatesRecord() {
	s.command("gm", "target", option("tokens", discordgo.ApplicationCommandOptionString, "orc"))
	s.command("gm", "check",
		option("save", discordgo.ApplicationCommandOptionString, "will"),
		option("dc", discordgo.ApplicationCommandOptionInteger, float64(17)),
		option("basic", discordgo.ApplicationCommandOptionBoolean, true))

	msgs, err := s.world.Store.List(s.ctx)
	s.Require().NoError(err)
	var found *saves.SavesFlags
	for _, msg := range msgs {
		if flags, ok, _ := saves.DecodeSaves(msg.Flags); ok {
			found = flags
		}
	}
	s.Require().NotNil(found)
	s.Equal("will", found.SaveType)
	s.Equal(17, found.DC)
	s.True(found.Basic)
}

func (s *HandlerTestSuite) TestForeignButtonIgnored() {
	s.handler.HandleInteraction(nil, &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent,
		User: &discordgo.User{ID: "gm"},
		Data: discordgo.MessageComponentInteractionData{CustomID: "character:quickshow:char_123"},
	}})
	s.Empty(s.session.responses)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func TestDescribeError(t *testing.T) {
	assert.Equal(t, "❌ Something went wrong.", describeError(fmt.Errorf("boom")))
}

func TestChannelNotifier(t *testing.T) {
	session := newMockSession()
	notifier := NewChannelNotifier(session, "table")

	require.NoError(t, notifier.Notify(context.Background(), "Goblin is not on the scene"))
	require.Len(t, session.sent, 1)
	assert.Equal(t, "⚠️ Goblin is not on the scene", session.sent["d1"].Content)
}
