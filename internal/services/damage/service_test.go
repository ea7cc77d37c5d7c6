package damage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/KirkDiggler/saves-helper/internal/chat"
	"github.com/KirkDiggler/saves-helper/internal/config"
	"github.com/KirkDiggler/saves-helper/internal/dice"
	"github.com/KirkDiggler/saves-helper/internal/domain/saves"
	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
	"github.com/KirkDiggler/saves-helper/internal/relay"
	"github.com/KirkDiggler/saves-helper/internal/render"
	"github.com/KirkDiggler/saves-helper/internal/scene"
	"github.com/KirkDiggler/saves-helper/internal/services/damage"
	mockdamage "github.com/KirkDiggler/saves-helper/internal/services/damage/mock"
	"github.com/KirkDiggler/saves-helper/internal/services/records"
	"github.com/KirkDiggler/saves-helper/internal/targeting"
	"github.com/KirkDiggler/saves-helper/internal/testutils"
	"github.com/KirkDiggler/saves-helper/internal/world"
)

var (
	gmUser     = &world.User{ID: "gm", Role: world.RoleGamemaster}
	playerUser = &world.User{ID: "player", Role: world.RolePlayer}
)

type DamageServiceTestSuite struct {
	suite.Suite
	ctx  context.Context
	ctrl *gomock.Controller

	world         *testutils.World
	enumerator    *targeting.Enumerator
	gmRecords     records.Service
	playerRecords records.Service

	goblin   *world.Token
	orc      *world.Token
	valeros  *world.Token
	goblinHP *world.Creature
	orcHP    *world.Creature
	caster   *world.Creature

	record *saves.Record
}

func (s *DamageServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.world = testutils.NewWorld()

	goblin := testutils.CreateTestCreature("goblin", "Goblin", 30, 5)
	goblin.MaxHitPoints = 60
	s.goblin, s.goblinHP = s.world.AddToken("goblin", goblin, scene.Cell{Col: 0, Row: 0})
	s.orc, s.orcHP = s.world.AddToken("orc", testutils.CreateTestCreature("orc", "Orc", 30, 5), scene.Cell{Col: 1, Row: 0})
	s.valeros, _ = s.world.AddToken("valeros", testutils.CreateTestCharacter("valeros", "Valeros", 30, 18), scene.Cell{Col: 6, Row: 6})
	s.valeros.Owners = []string{playerUser.ID}

	s.caster = world.NewCreature(testutils.CreateTestCharacter("ezren", "Ezren", 20, 20))
	s.world.Directory.AddActor(s.caster)
	s.world.Directory.AddItem(&world.Item{UUID: "Item.fireball", Name: "Fireball", Type: "spell", ActorUUID: s.caster.UUID()})

	renderer, err := render.New(&render.Config{Directory: s.world.Directory})
	s.Require().NoError(err)
	s.enumerator = targeting.New(&targeting.Config{Directory: s.world.Directory, Scenes: s.world.Scenes})

	bus := relay.NewMemoryBus()
	newRecords := func(user *world.User) (records.Service, *relay.Relay) {
		r := relay.New(&relay.Config{Transport: bus.Transport(), User: user})
		return records.NewService(&records.ServiceConfig{
			Store:      s.world.Store,
			Renderer:   renderer,
			Enumerator: s.enumerator,
			Relay:      r,
			User:       user,
			Logger:     zaptest.NewLogger(s.T()),
		}), r
	}
	var gmRelay *relay.Relay
	s.gmRecords, gmRelay = newRecords(gmUser)
	s.playerRecords, _ = newRecords(playerUser)
	_, err = gmRelay.Listen(s.ctx, s.gmRecords)
	s.Require().NoError(err)

	source, err := s.world.Store.Create(s.ctx, &chat.Message{AuthorID: gmUser.ID})
	s.Require().NoError(err)
	s.record, err = s.gmRecords.Create(s.ctx, &records.CreateInput{
		Source:   source,
		SaveInfo: &saves.SaveInfo{SaveType: "reflex", Basic: true, DC: 18},
		Origin:   &saves.Origin{UUID: "Item.fireball", Type: "spell"},
		Targets:  []string{s.goblin.UUID, s.orc.UUID, s.valeros.UUID},
	})
	s.Require().NoError(err)
}

func (s *DamageServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *DamageServiceTestSuite) newService(user *world.User, notifier damage.Notifier) damage.Service {
	recs := s.gmRecords
	if user == playerUser {
		recs = s.playerRecords
	}
	return damage.NewService(&damage.ServiceConfig{
		Store:      s.world.Store,
		Records:    recs,
		Directory:  s.world.Directory,
		Enumerator: s.enumerator,
		Notifier:   notifier,
		Settings:   config.DefaultSettings(),
		User:       user,
		Logger:     zaptest.NewLogger(s.T()),
	})
}

// postDamage creates a damage message for a 20 point fire roll and links it to the record.
func (s *DamageServiceTestSuite) postDamage(kinds []dice.DamageKind, rollOptions ...string) *chat.Message {
	msg, err := s.world.Store.Create(s.ctx, &chat.Message{
		AuthorID: gmUser.ID,
		Speaker:  chat.Speaker{Actor: s.caster.UUID()},
		Rolls: []*dice.DamageRoll{{
			Formula:   "6d6 fire",
			Instances: []dice.DamageInstance{{Type: "fire", Formula: "6d6", Total: 20}},
			Kinds:     kinds,
		}},
		Flags: map[string]any{
			saves.HostNamespace: map[string]any{
				"context": map[string]any{"type": saves.ContextDamageRoll},
				"origin":  map[string]any{"uuid": "Item.fireball", "type": "spell", "rollOptions": rollOptions},
			},
		},
	})
	s.Require().NoError(err)
	s.Require().NoError(s.gmRecords.LinkDamage(s.ctx, s.record.ID, msg.ID))
	return msg
}

func (s *DamageServiceTestSuite) recordResult(token *world.Token, degree saves.DegreeOfSuccess) {
	s.Require().NoError(s.gmRecords.RecordResult(s.ctx, s.record.ID, token.UUID, saves.SaveResult{DegreeOfSuccess: degree, RollValue: 10}))
}

func (s *DamageServiceTestSuite) applied(damageID string) map[string]bool {
	rec, err := s.gmRecords.Get(s.ctx, s.record.ID)
	s.Require().NoError(err)
	s.Require().Equal(damageID, rec.DamageMessage)
	return rec.Applied
}

func (s *DamageServiceTestSuite) TestApplyForToken_CriticalFailureDoubles() {
	svc := s.newService(gmUser, nil)
	s.recordResult(s.goblin, saves.CriticalFailure)
	msg := s.postDamage([]dice.DamageKind{dice.KindDamage})

	outcome, err := svc.ApplyForToken(s.ctx, &damage.TokenInput{MessageID: msg.ID, TokenUUID: s.goblin.UUID})
	s.Require().NoError(err)

	s.Equal(2.0, outcome.Multiplier)
	s.True(outcome.Applied)
	s.True(outcome.Marked)
	s.Equal(0, s.goblinHP.HitPoints())
	history := s.goblinHP.History()
	s.Require().Len(history, 1)
	s.Equal(40, history[0].Damage.Total())
	s.Equal("criticalFailure", history[0].Outcome)
	s.True(s.applied(msg.ID)[saves.NormalizeID(s.goblin.UUID)])
}

func (s *DamageServiceTestSuite) TestApplyForToken_SuccessHalves() {
	svc := s.newService(gmUser, nil)
	s.recordResult(s.orc, saves.Success)
	msg := s.postDamage([]dice.DamageKind{dice.KindDamage})

	outcome, err := svc.ApplyForToken(s.ctx, &damage.TokenInput{MessageID: msg.ID, TokenUUID: s.orc.UUID})
	s.Require().NoError(err)

	s.Equal(0.5, outcome.Multiplier)
	s.Equal(20, s.orcHP.HitPoints())
	s.True(s.applied(msg.ID)[saves.NormalizeID(s.orc.UUID)])

	history := s.orcHP.History()
	s.Require().Len(history, 1)
	s.Equal("success", history[0].Outcome)
	s.Equal("Item.fireball", history[0].ItemUUID)
	s.False(history[0].SkipIWR)
	s.Contains(history[0].RollOptions, "origin:enemy")

	rec, err := s.gmRecords.Get(s.ctx, s.record.ID)
	s.Require().NoError(err)
	msgRec, err := s.world.Store.Get(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Contains(msgRec.Content, `class="result success"`)
}

func (s *DamageServiceTestSuite) TestApplyForToken_CriticalSuccessOnlyMarks() {
	svc := s.newService(gmUser, nil)
	s.recordResult(s.goblin, saves.CriticalSuccess)
	msg := s.postDamage([]dice.DamageKind{dice.KindDamage})

	outcome, err := svc.ApplyForToken(s.ctx, &damage.TokenInput{MessageID: msg.ID, TokenUUID: s.goblin.UUID})
	s.Require().NoError(err)

	s.True(outcome.Marked)
	s.Nil(outcome.Result)
	s.Equal(30, s.goblinHP.HitPoints())
	s.Empty(s.goblinHP.History())
	s.True(s.applied(msg.ID)[saves.NormalizeID(s.goblin.UUID)])
}

func (s *DamageServiceTestSuite) TestApplyForToken_NoResultIsNoop() {
	svc := s.newService(gmUser, nil)
	msg := s.postDamage([]dice.DamageKind{dice.KindDamage})

	outcome, err := svc.ApplyForToken(s.ctx, &damage.TokenInput{MessageID: msg.ID, TokenUUID: s.goblin.UUID})
	s.Require().NoError(err)

	s.False(outcome.Applied)
	s.Equal(30, s.goblinHP.HitPoints())
	s.Empty(s.applied(msg.ID))
}

func (s *DamageServiceTestSuite) TestApplyForToken_HealingIgnoresSave() {
	svc := s.newService(gmUser, nil)
	s.recordResult(s.goblin, saves.CriticalFailure)
	msg := s.postDamage([]dice.DamageKind{dice.KindHealing}, "vitality")

	outcome, err := svc.ApplyForToken(s.ctx, &damage.TokenInput{MessageID: msg.ID, TokenUUID: s.goblin.UUID})
	s.Require().NoError(err)

	s.Equal(float64(damage.HealingMultiplier), outcome.Multiplier)
	s.Equal(50, s.goblinHP.HitPoints())

	history := s.goblinHP.History()
	s.Require().Len(history, 1)
	s.True(history[0].SkipIWR)
	s.Equal(-20, history[0].Damage.Flat)
}

func (s *DamageServiceTestSuite) TestApplyForToken_HealingUsesHealingDomain() {
	healer := testutils.CreateTestCharacter("kyra", "Kyra", 20, 20)
	effect := func(slug string) world.EffectGenerator {
		return func(_ context.Context, _ *world.EffectContext) (*world.Effect, error) {
			return &world.Effect{Type: "effect", Slug: slug, RollOptions: []string{"effect:" + slug}}, nil
		}
	}
	healer.Ephemeral = map[string]map[world.Affects][]world.EffectGenerator{
		damage.DomainHealingReceived: {world.AffectsTarget: {effect("warm-light")}},
		damage.DomainDamageReceived:  {world.AffectsTarget: {effect("searing-light")}},
	}
	kyra := world.NewCreature(healer)
	s.world.Directory.AddActor(kyra)

	svc := s.newService(gmUser, nil)
	msg := s.postDamage([]dice.DamageKind{dice.KindHealing}, "vitality")
	_, err := s.world.Store.Update(s.ctx, msg.ID, chat.Patch{"speaker": chat.Speaker{Actor: kyra.UUID()}})
	s.Require().NoError(err)

	outcome, err := svc.ApplyForToken(s.ctx, &damage.TokenInput{MessageID: msg.ID, TokenUUID: s.goblin.UUID})
	s.Require().NoError(err)
	s.Require().True(outcome.Applied)

	history := s.goblinHP.History()
	s.Require().Len(history, 1)
	s.Contains(history[0].RollOptions, "self:effect:warm-light")
	s.NotContains(history[0].RollOptions, "self:effect:searing-light")
}

func (s *DamageServiceTestSuite) TestApplyForToken_HealingNeedsMatchingMode() {
	svc := s.newService(gmUser, nil)
	msg := s.postDamage([]dice.DamageKind{dice.KindHealing}, "void")

	outcome, err := svc.ApplyForToken(s.ctx, &damage.TokenInput{MessageID: msg.ID, TokenUUID: s.goblin.UUID})
	s.Require().NoError(err)

	s.False(outcome.Applied)
	s.Equal(30, s.goblinHP.HitPoints())
}

func (s *DamageServiceTestSuite) TestApplyForToken_AlreadyAppliedIsNotReapplied() {
	svc := s.newService(gmUser, nil)
	s.recordResult(s.goblin, saves.Failure)
	msg := s.postDamage([]dice.DamageKind{dice.KindDamage})

	input := &damage.TokenInput{MessageID: msg.ID, TokenUUID: s.goblin.UUID}
	_, err := svc.ApplyForToken(s.ctx, input)
	s.Require().NoError(err)
	s.Equal(10, s.goblinHP.HitPoints())

	outcome, err := svc.ApplyForToken(s.ctx, input)
	s.Require().NoError(err)
	s.False(outcome.Applied)
	s.Equal(10, s.goblinHP.HitPoints())

	_, err = svc.Apply(s.ctx, &damage.ApplyInput{TokenInput: *input, Multiplier: 1})
	s.Require().NoError(err)
	s.Equal(10, s.goblinHP.HitPoints())
}

func (s *DamageServiceTestSuite) TestApplyForToken_MissingMessageIsNoop() {
	svc := s.newService(gmUser, nil)

	outcome, err := svc.ApplyForToken(s.ctx, &damage.TokenInput{MessageID: "nope", TokenUUID: s.goblin.UUID})
	s.Require().NoError(err)
	s.False(outcome.Applied)
}

func (s *DamageServiceTestSuite) TestApply_ExplicitMultiplierWithShieldBlock() {
	shielded := testutils.CreateTestCreature("guard", "Guard", 30, 5)
	shielded.ShieldHardness = 5
	guard, guardHP := s.world.AddToken("guard", shielded, scene.Cell{Col: 3, Row: 3})

	svc := s.newService(gmUser, nil)
	msg := s.postDamage([]dice.DamageKind{dice.KindDamage})

	outcome, err := svc.Apply(s.ctx, &damage.ApplyInput{
		TokenInput: damage.TokenInput{MessageID: msg.ID, TokenUUID: guard.UUID, Addend: 2, ShieldBlock: true},
		Multiplier: 1,
	})
	s.Require().NoError(err)

	// 20 + 2 addend - 5 hardness
	s.Equal(17, outcome.Result.Applied)
	s.Equal(13, guardHP.HitPoints())
	s.True(s.applied(msg.ID)[saves.NormalizeID(guard.UUID)])
}

func (s *DamageServiceTestSuite) TestApply_PlayerMarkerTravelsThroughRelay() {
	svc := s.newService(playerUser, nil)
	msg := s.postDamage([]dice.DamageKind{dice.KindDamage})

	outcome, err := svc.Apply(s.ctx, &damage.ApplyInput{
		TokenInput: damage.TokenInput{MessageID: msg.ID, TokenUUID: s.valeros.UUID},
		Multiplier: 0.5,
	})
	s.Require().NoError(err)
	s.True(outcome.Marked)
	s.True(s.applied(msg.ID)[saves.NormalizeID(s.valeros.UUID)])
}

func (s *DamageServiceTestSuite) TestApply_EphemeralEffectsReachTheClone() {
	caster := testutils.CreateTestCharacter("seoni", "Seoni", 20, 20)
	caster.Ephemeral = map[string]map[world.Affects][]world.EffectGenerator{
		damage.DomainDamageReceived: {
			world.AffectsTarget: {
				func(_ context.Context, ec *world.EffectContext) (*world.Effect, error) {
					if ec.Resolvables["spell"] != "Item.fireball" {
						return nil, nil
					}
					return &world.Effect{Type: "effect", Slug: "fire-ward", Resistances: map[string]int{"fire": 5}}, nil
				},
			},
		},
	}
	seoni := world.NewCreature(caster)
	s.world.Directory.AddActor(seoni)

	svc := s.newService(gmUser, nil)
	msg := s.postDamage([]dice.DamageKind{dice.KindDamage})
	_, err := s.world.Store.Update(s.ctx, msg.ID, chat.Patch{"speaker": chat.Speaker{Actor: seoni.UUID()}})
	s.Require().NoError(err)

	outcome, err := svc.Apply(s.ctx, &damage.ApplyInput{
		TokenInput: damage.TokenInput{MessageID: msg.ID, TokenUUID: s.goblin.UUID},
		Multiplier: 1,
	})
	s.Require().NoError(err)
	s.Equal(15, outcome.Result.Applied)
}

func (s *DamageServiceTestSuite) TestApplyToAll_MarksEveryProcessedToken() {
	svc := s.newService(gmUser, nil)
	s.recordResult(s.goblin, saves.Failure)
	s.recordResult(s.orc, saves.CriticalSuccess)
	msg := s.postDamage([]dice.DamageKind{dice.KindDamage})

	batch, err := svc.ApplyToAll(s.ctx, msg.ID, 0)
	s.Require().NoError(err)
	s.Len(batch.Outcomes, 2)
	s.Empty(batch.Failed)

	s.Equal(10, s.goblinHP.HitPoints())
	s.Equal(30, s.orcHP.HitPoints())

	applied := s.applied(msg.ID)
	s.True(applied[saves.NormalizeID(s.goblin.UUID)])
	s.True(applied[saves.NormalizeID(s.orc.UUID)])
	s.False(applied[saves.NormalizeID(s.valeros.UUID)])
}

func (s *DamageServiceTestSuite) TestApplyToAll_SkipsAlreadyApplied() {
	svc := s.newService(gmUser, nil)
	s.recordResult(s.goblin, saves.Failure)
	msg := s.postDamage([]dice.DamageKind{dice.KindDamage})

	_, err := svc.ApplyToAll(s.ctx, msg.ID, 0)
	s.Require().NoError(err)
	batch, err := svc.ApplyToAll(s.ctx, msg.ID, 0)
	s.Require().NoError(err)

	s.Empty(batch.Outcomes)
	s.Equal(10, s.goblinHP.HitPoints())
}

func (s *DamageServiceTestSuite) TestApplyToNPCs_SkipsPlayerTokens() {
	svc := s.newService(gmUser, nil)
	s.recordResult(s.goblin, saves.Failure)
	s.recordResult(s.valeros, saves.Failure)
	msg := s.postDamage([]dice.DamageKind{dice.KindDamage})

	batch, err := svc.ApplyToNPCs(s.ctx, msg.ID, 0)
	s.Require().NoError(err)
	s.Require().Len(batch.Outcomes, 1)
	s.Equal(s.goblin.UUID, batch.Outcomes[0].TokenUUID)
	s.False(s.applied(msg.ID)[saves.NormalizeID(s.valeros.UUID)])
}

func (s *DamageServiceTestSuite) TestApplyToAll_RequiresGM() {
	svc := s.newService(playerUser, nil)
	msg := s.postDamage([]dice.DamageKind{dice.KindDamage})

	_, err := svc.ApplyToAll(s.ctx, msg.ID, 0)
	s.True(dnderr.IsPermissionDenied(err))
}

func (s *DamageServiceTestSuite) TestSplashAround_HitsNeighboursWithoutMarking() {
	svc := s.newService(gmUser, nil)
	s.recordResult(s.orc, saves.CriticalSuccess)
	msg := s.postDamage([]dice.DamageKind{dice.KindDamage})

	batch, err := svc.SplashAround(s.ctx, &damage.TokenInput{MessageID: msg.ID, TokenUUID: s.goblin.UUID})
	s.Require().NoError(err)
	s.Require().Len(batch.Outcomes, 1)
	s.Equal(s.orc.UUID, batch.Outcomes[0].TokenUUID)
	s.False(batch.Outcomes[0].Marked)

	// Full damage regardless of the orc's critical success.
	s.Equal(10, s.orcHP.HitPoints())
	s.Equal(30, s.goblinHP.HitPoints())
	s.Equal("success", s.orcHP.History()[0].Outcome)
	s.Empty(s.applied(msg.ID))

	// Repeating the splash is allowed.
	_, err = svc.SplashAround(s.ctx, &damage.TokenInput{MessageID: msg.ID, TokenUUID: s.goblin.UUID})
	s.Require().NoError(err)
	s.Equal(0, s.orcHP.HitPoints())
}

func (s *DamageServiceTestSuite) TestSplashAround_WallBlocks() {
	s.world.Scene.AddWall(scene.Wall{
		A:              scene.Point{X: 100, Y: -100},
		B:              scene.Point{X: 100, Y: 200},
		BlocksMovement: true,
	})
	svc := s.newService(gmUser, nil)
	msg := s.postDamage([]dice.DamageKind{dice.KindDamage})

	batch, err := svc.SplashAround(s.ctx, &damage.TokenInput{MessageID: msg.ID, TokenUUID: s.goblin.UUID})
	s.Require().NoError(err)
	s.Empty(batch.Outcomes)
	s.Equal(30, s.orcHP.HitPoints())
}

func (s *DamageServiceTestSuite) TestSplashAround_TokenOffSceneNotifies() {
	ghost := &world.Token{UUID: world.TokenUUID(testutils.TestSceneID, "ghost"), SceneID: testutils.TestSceneID, Name: "Ghost"}
	s.world.Directory.AddToken(ghost)

	notifier := mockdamage.NewMockNotifier(s.ctrl)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil)

	svc := s.newService(gmUser, notifier)
	msg := s.postDamage([]dice.DamageKind{dice.KindDamage})

	batch, err := svc.SplashAround(s.ctx, &damage.TokenInput{MessageID: msg.ID, TokenUUID: ghost.UUID})
	s.Require().NoError(err)
	s.Empty(batch.Outcomes)
}

func (s *DamageServiceTestSuite) TestButtons_HighlightBasicResult() {
	svc := s.newService(gmUser, nil)
	s.recordResult(s.goblin, saves.Failure)
	s.recordResult(s.orc, saves.Success)
	msg := s.postDamage([]dice.DamageKind{dice.KindDamage})
	_, err := svc.ApplyForToken(s.ctx, &damage.TokenInput{MessageID: msg.ID, TokenUUID: s.orc.UUID})
	s.Require().NoError(err)

	rolls, err := svc.Buttons(s.ctx, msg.ID)
	s.Require().NoError(err)
	s.Require().Len(rolls, 1)
	s.True(rolls[0].Batch)
	s.Require().Len(rolls[0].Tokens, 3)

	goblin := rolls[0].Tokens[0]
	s.Equal(s.goblin.UUID, goblin.TokenUUID)
	s.False(goblin.AlreadyApplied)
	s.True(goblin.ShieldBlock)
	s.Require().Len(goblin.Buttons, 4)
	s.Equal(render.KeyDamageFull, goblin.Buttons[0].LabelKey)
	s.True(goblin.Buttons[0].Highlighted)
	s.False(goblin.Buttons[1].Highlighted)

	orc := rolls[0].Tokens[1]
	s.True(orc.AlreadyApplied)
	s.True(orc.Buttons[1].Highlighted)

	valeros := rolls[0].Tokens[2]
	s.Nil(valeros.Degree)
	for _, b := range valeros.Buttons {
		s.False(b.Highlighted)
	}
}

func (s *DamageServiceTestSuite) TestButtons_PlayerSeesOwnTokensOnly() {
	svc := s.newService(playerUser, nil)
	msg := s.postDamage([]dice.DamageKind{dice.KindHealing}, "vitality")

	rolls, err := svc.Buttons(s.ctx, msg.ID)
	s.Require().NoError(err)
	s.Require().Len(rolls, 1)
	s.False(rolls[0].Batch)
	s.Require().Len(rolls[0].Tokens, 1)

	valeros := rolls[0].Tokens[0]
	s.Require().Len(valeros.Buttons, 1)
	s.Equal(render.KeyDamageHealing, valeros.Buttons[0].LabelKey)
	s.True(valeros.Buttons[0].Highlighted)
}

func TestDamageServiceSuite(t *testing.T) {
	suite.Run(t, new(DamageServiceTestSuite))
}
