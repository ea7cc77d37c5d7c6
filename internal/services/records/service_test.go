package records_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/KirkDiggler/saves-helper/internal/chat"
	"github.com/KirkDiggler/saves-helper/internal/domain/saves"
	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
	"github.com/KirkDiggler/saves-helper/internal/relay"
	"github.com/KirkDiggler/saves-helper/internal/render"
	"github.com/KirkDiggler/saves-helper/internal/scene"
	"github.com/KirkDiggler/saves-helper/internal/services/records"
	"github.com/KirkDiggler/saves-helper/internal/targeting"
	"github.com/KirkDiggler/saves-helper/internal/testutils"
	"github.com/KirkDiggler/saves-helper/internal/world"
)

type RecordsServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	world  *testutils.World
	gm     records.Service
	player records.Service

	goblin *world.Token
	orc    *world.Token
	chest  *world.Token
	source *chat.Message
}

var (
	gmUser     = &world.User{ID: "gm", Role: world.RoleGamemaster}
	playerUser = &world.User{ID: "player", Role: world.RolePlayer}
)

func (s *RecordsServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.world = testutils.NewWorld()

	s.goblin, _ = s.world.AddToken("goblin", testutils.CreateTestCreature("goblin", "Goblin", 6, 5), scene.Cell{Col: 0, Row: 0})
	s.orc, _ = s.world.AddToken("orc", testutils.CreateTestCreature("orc", "Orc", 15, 6), scene.Cell{Col: 1, Row: 0})
	chest := testutils.CreateTestCreature("chest", "Chest", 0, 0)
	chest.Category = world.CategoryLoot
	s.chest, _ = s.world.AddToken("chest", chest, scene.Cell{Col: 2, Row: 0})

	renderer, err := render.New(&render.Config{Directory: s.world.Directory, IgnoreHealingSaves: true})
	s.Require().NoError(err)
	enumerator := targeting.New(&targeting.Config{Directory: s.world.Directory, Scenes: s.world.Scenes})

	bus := relay.NewMemoryBus()
	newService := func(user *world.User) (records.Service, *relay.Relay) {
		r := relay.New(&relay.Config{Transport: bus.Transport(), User: user})
		return records.NewService(&records.ServiceConfig{
			Store:      s.world.Store,
			Renderer:   renderer,
			Enumerator: enumerator,
			Relay:      r,
			User:       user,
			Logger:     zaptest.NewLogger(s.T()),
		}), r
	}

	var gmRelay *relay.Relay
	s.gm, gmRelay = newService(gmUser)
	s.player, _ = newService(playerUser)
	_, err = gmRelay.Listen(s.ctx, s.gm)
	s.Require().NoError(err)

	s.source, err = s.world.Store.Create(s.ctx, &chat.Message{
		AuthorID: playerUser.ID,
		Flags: map[string]any{
			saves.HostNamespace: map[string]any{
				"context": map[string]any{"type": saves.ContextSpellCast},
				"origin":  map[string]any{"uuid": "Item.fireball", "type": "spell"},
			},
		},
	})
	s.Require().NoError(err)
}

func (s *RecordsServiceTestSuite) createAsGM() *saves.Record {
	rec, err := s.gm.Create(s.ctx, &records.CreateInput{
		Source:   s.source,
		SaveInfo: &saves.SaveInfo{SaveType: "reflex", Basic: true, DC: 20},
		Origin:   &saves.Origin{UUID: "Item.fireball", Type: "spell"},
		Targets:  []string{s.goblin.UUID, s.chest.UUID, s.orc.UUID, "Scene.scene1.Token.missing"},
	})
	s.Require().NoError(err)
	return rec
}

func (s *RecordsServiceTestSuite) TestCreate() {
	rec := s.createAsGM()

	s.Equal([]string{s.goblin.UUID, s.orc.UUID}, rec.Targets)
	s.Equal(s.source.ID, rec.SourceMessage)

	source, err := s.world.Store.Get(s.ctx, s.source.ID)
	s.Require().NoError(err)
	link, err := saves.DecodeSource(source.Flags)
	s.Require().NoError(err)
	s.Equal(rec.ID, link.SavesMessage)

	msg, err := s.world.Store.Get(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(gmUser.ID, msg.AuthorID)
	s.Contains(msg.Content, "DC 20 basic Reflex save")
	s.Contains(msg.Content, "Goblin")
	s.NotContains(msg.Content, "Chest")

	stored, err := s.gm.Get(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(rec.Targets, stored.Targets)
	s.Equal(&saves.SaveInfo{SaveType: "reflex", Basic: true, DC: 20}, stored.SaveInfo)
	s.Empty(stored.Results)
}

func (s *RecordsServiceTestSuite) TestCreate_RequiresSaveInfo() {
	_, err := s.gm.Create(s.ctx, &records.CreateInput{Source: s.source})
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *RecordsServiceTestSuite) TestGet_NotASavesMessage() {
	_, err := s.gm.Get(s.ctx, s.source.ID)
	s.True(dnderr.IsNotFound(err))
}

func (s *RecordsServiceTestSuite) TestRecordResult_AuthorWritesDirectly() {
	rec := s.createAsGM()

	result := saves.SaveResult{DegreeOfSuccess: saves.Success, RollValue: 22}
	s.Require().NoError(s.gm.RecordResult(s.ctx, rec.ID, s.goblin.UUID, result))

	stored, err := s.gm.Get(s.ctx, rec.ID)
	s.Require().NoError(err)
	got, ok := stored.Result(s.goblin.UUID)
	s.True(ok)
	s.Equal(result, got)

	msg, err := s.world.Store.Get(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Contains(msg.Content, `class="result success"`)
}

func (s *RecordsServiceTestSuite) TestRecordResult_PlayerRelaysToGM() {
	rec := s.createAsGM()

	result := saves.SaveResult{DegreeOfSuccess: saves.CriticalFailure, RollValue: 5}
	s.Require().NoError(s.player.RecordResult(s.ctx, rec.ID, s.orc.UUID, result))

	stored, err := s.gm.Get(s.ctx, rec.ID)
	s.Require().NoError(err)
	got, ok := stored.Result(s.orc.UUID)
	s.True(ok, "the GM applies the relayed result")
	s.Equal(result, got)
}

func (s *RecordsServiceTestSuite) TestRecordResult_MissingMessageIsNoop() {
	s.NoError(s.gm.RecordResult(s.ctx, "nope", s.goblin.UUID, saves.SaveResult{}))
	s.NoError(s.player.RecordResult(s.ctx, "nope", s.goblin.UUID, saves.SaveResult{}))
}

func (s *RecordsServiceTestSuite) TestRelayedResults_Commute() {
	a := saves.SaveResult{DegreeOfSuccess: saves.Failure, RollValue: 12}
	b := saves.SaveResult{DegreeOfSuccess: saves.Success, RollValue: 21}

	first := s.createAsGM()
	s.Require().NoError(s.player.RecordResult(s.ctx, first.ID, s.goblin.UUID, a))
	s.Require().NoError(s.player.RecordResult(s.ctx, first.ID, s.orc.UUID, b))

	second := s.createAsGM()
	s.Require().NoError(s.player.RecordResult(s.ctx, second.ID, s.orc.UUID, b))
	s.Require().NoError(s.player.RecordResult(s.ctx, second.ID, s.goblin.UUID, a))

	one, err := s.gm.Get(s.ctx, first.ID)
	s.Require().NoError(err)
	two, err := s.gm.Get(s.ctx, second.ID)
	s.Require().NoError(err)
	s.Equal(one.Results, two.Results)
}

func (s *RecordsServiceTestSuite) TestAddTargets_KeepsResultsOfRemovedTargets() {
	rec := s.createAsGM()
	s.Require().NoError(s.gm.RecordResult(s.ctx, rec.ID, s.goblin.UUID, saves.SaveResult{DegreeOfSuccess: saves.Failure, RollValue: 9}))

	updated, err := s.gm.AddTargets(s.ctx, rec.ID, []string{s.orc.UUID, s.chest.UUID})
	s.Require().NoError(err)
	s.Equal([]string{s.orc.UUID}, updated.Targets)

	stored, err := s.gm.Get(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal([]string{s.orc.UUID}, stored.Targets)
	_, ok := stored.Result(s.goblin.UUID)
	s.True(ok, "results for removed targets stay in storage")

	msg, err := s.world.Store.Get(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.NotContains(msg.Content, "Goblin")
}

func (s *RecordsServiceTestSuite) TestAddTargets_PlayerDenied() {
	rec := s.createAsGM()

	_, err := s.player.AddTargets(s.ctx, rec.ID, []string{s.orc.UUID})
	s.True(dnderr.IsPermissionDenied(err))
}

func (s *RecordsServiceTestSuite) TestRecompute_PreservesResults() {
	rec := s.createAsGM()
	s.Require().NoError(s.gm.RecordResult(s.ctx, rec.ID, s.goblin.UUID, saves.SaveResult{DegreeOfSuccess: saves.Success, RollValue: 20}))

	updated, err := s.gm.Recompute(s.ctx, rec.ID, &records.CreateInput{
		Source:   s.source,
		SaveInfo: &saves.SaveInfo{SaveType: "fortitude", DC: 24},
		Origin:   &saves.Origin{UUID: "Item.fireball", Variant: &saves.Variant{Overlays: []string{"v2"}}},
	})
	s.Require().NoError(err)
	s.Equal(rec.ID, updated.ID)

	stored, err := s.gm.Get(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(&saves.SaveInfo{SaveType: "fortitude", DC: 24}, stored.SaveInfo)
	s.Equal([]string{"v2"}, stored.Origin.Variant.Overlays)
	s.Equal(rec.Targets, stored.Targets)
	_, ok := stored.Result(s.goblin.UUID)
	s.True(ok)

	msg, err := s.world.Store.Get(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Contains(msg.Content, "DC 24 Fortitude save")
}

func (s *RecordsServiceTestSuite) TestRemove() {
	rec := s.createAsGM()
	source, err := s.world.Store.Get(s.ctx, s.source.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.gm.Remove(s.ctx, source))

	_, err = s.world.Store.Get(s.ctx, rec.ID)
	s.True(dnderr.IsNotFound(err))

	source, err = s.world.Store.Get(s.ctx, s.source.ID)
	s.Require().NoError(err)
	link, err := saves.DecodeSource(source.Flags)
	s.Require().NoError(err)
	s.Empty(link.SavesMessage)

	s.NoError(s.gm.Remove(s.ctx, source), "removing twice is a no-op")
}

func (s *RecordsServiceTestSuite) damageMessage(author string) *chat.Message {
	msg, err := s.world.Store.Create(s.ctx, &chat.Message{
		AuthorID: author,
		Flags: map[string]any{
			saves.HostNamespace: map[string]any{
				"context": map[string]any{"type": saves.ContextDamageRoll},
				"origin":  map[string]any{"uuid": "Item.fireball"},
			},
		},
	})
	s.Require().NoError(err)
	return msg
}

func (s *RecordsServiceTestSuite) TestLinkDamage_AndApplied() {
	rec := s.createAsGM()
	damage := s.damageMessage(gmUser.ID)

	s.Require().NoError(s.gm.LinkDamage(s.ctx, rec.ID, damage.ID))
	s.Require().NoError(s.gm.MarkApplied(s.ctx, damage.ID, s.goblin.UUID, s.orc.UUID))

	stored, err := s.gm.Get(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(damage.ID, stored.DamageMessage)
	s.True(stored.IsApplied(s.goblin.UUID))
	s.True(stored.IsApplied(s.orc.UUID))

	damage, err = s.world.Store.Get(s.ctx, damage.ID)
	s.Require().NoError(err)
	flags, ok, err := saves.DecodeDamage(damage.Flags)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(rec.ID, flags.SavesMessage)
}

func (s *RecordsServiceTestSuite) TestMarkApplied_PlayerRelays() {
	rec := s.createAsGM()
	damage := s.damageMessage(gmUser.ID)
	s.Require().NoError(s.gm.LinkDamage(s.ctx, rec.ID, damage.ID))

	s.Require().NoError(s.player.MarkApplied(s.ctx, damage.ID, s.orc.UUID))

	stored, err := s.gm.Get(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.True(stored.IsApplied(s.orc.UUID))
	s.False(stored.IsApplied(s.goblin.UUID))
}

func (s *RecordsServiceTestSuite) TestHandleUpdateApplied_IgnoresForeignMessages() {
	damage := s.damageMessage(gmUser.ID)

	s.Require().NoError(s.gm.HandleUpdateApplied(s.ctx, &relay.UpdateApplied{Message: damage.ID, Token: s.orc.UUID}))

	damage, err := s.world.Store.Get(s.ctx, damage.ID)
	s.Require().NoError(err)
	s.False(saves.HasNamespace(damage.Flags))
}

func (s *RecordsServiceTestSuite) TestCanWrite() {
	authored := &chat.Message{AuthorID: playerUser.ID}
	other := &chat.Message{AuthorID: "someone"}

	s.True(s.player.CanWrite(authored))
	s.False(s.player.CanWrite(other))
	s.True(s.gm.CanWrite(other))
	s.False(s.gm.CanWrite(nil))
}

func TestRecordsServiceSuite(t *testing.T) {
	suite.Run(t, new(RecordsServiceTestSuite))
}
