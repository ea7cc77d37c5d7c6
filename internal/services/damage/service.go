// Package damage applies damage and healing rolls to the targets of a saves record,
// scaled by each target's save result.
package damage

//go:generate mockgen -destination=mock/mock_service.go -package=mockdamage -source=service.go

import (
	"context"
	"regexp"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/saves-helper/internal/chat"
	"github.com/KirkDiggler/saves-helper/internal/config"
	"github.com/KirkDiggler/saves-helper/internal/dice"
	"github.com/KirkDiggler/saves-helper/internal/domain/saves"
	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
	"github.com/KirkDiggler/saves-helper/internal/services/records"
	"github.com/KirkDiggler/saves-helper/internal/targeting"
	"github.com/KirkDiggler/saves-helper/internal/world"
)

// HealingMultiplier is applied when healing bypasses the save result.
const HealingMultiplier = -1

// Service defines the damage application operations
type Service interface {
	// ApplyForToken applies a roll to one token using its recorded save result.
	ApplyForToken(ctx context.Context, input *TokenInput) (*Outcome, error)

	// Apply applies a roll to one token with an explicit multiplier.
	Apply(ctx context.Context, input *ApplyInput) (*Outcome, error)

	// ApplyToAll applies a roll to every unapplied target with a save result or
	// eligible healing, marking all of them in one update.
	ApplyToAll(ctx context.Context, damageMessageID string, rollIndex int) (*BatchOutcome, error)

	// ApplyToNPCs is ApplyToAll limited to tokens without a player owner
	ApplyToNPCs(ctx context.Context, damageMessageID string, rollIndex int) (*BatchOutcome, error)

	// SplashAround applies full damage to the tokens around one token.
	// Applied markers are left untouched.
	SplashAround(ctx context.Context, input *TokenInput) (*BatchOutcome, error)

	// Buttons describes the per-token application affordances for a damage message.
	Buttons(ctx context.Context, damageMessageID string) ([]*RollButtons, error)
}

// TokenInput identifies a roll on a damage message and a token to apply it to.
type TokenInput struct {
	MessageID   string
	RollIndex   int
	TokenUUID   string
	Addend      int
	ShieldBlock bool
}

// ApplyInput is a TokenInput with the multiplier the user picked.
type ApplyInput struct {
	TokenInput
	Multiplier float64
}

// Outcome reports what happened to one token.
type Outcome struct {
	TokenUUID  string
	Multiplier float64
	// Applied is false when a prerequisite was missing and nothing happened.
	Applied bool
	// Marked is true when the token was marked applied.
	Marked bool
	Result *world.DamageResult
}

// BatchOutcome collects the per-token outcomes of a batch.
type BatchOutcome struct {
	Outcomes []*Outcome
	Failed   map[string]error
}

// Notifier surfaces problems the user has to fix in the scene.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

type service struct {
	store      chat.Store
	records    records.Service
	directory  world.Directory
	enumerator *targeting.Enumerator
	notifier   Notifier
	settings   config.Settings
	user       *world.User
	logger     *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Store      chat.Store
	Records    records.Service
	Directory  world.Directory
	Enumerator *targeting.Enumerator
	// Notifier is optional; without one splash problems are only logged.
	Notifier Notifier
	Settings config.Settings
	User     *world.User
	Logger   *zap.Logger
}

// NewService creates a new damage service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Store == nil {
		panic("store is required")
	}
	if cfg.Records == nil {
		panic("records service is required")
	}
	if cfg.Directory == nil {
		panic("directory is required")
	}
	if cfg.Enumerator == nil {
		panic("enumerator is required")
	}
	if cfg.User == nil {
		panic("user is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		store:      cfg.Store,
		records:    cfg.Records,
		directory:  cfg.Directory,
		enumerator: cfg.Enumerator,
		notifier:   cfg.Notifier,
		settings:   cfg.Settings,
		user:       cfg.User,
		logger:     logger,
	}
}

// damageContext is a damage message with the saves record it is linked to.
type damageContext struct {
	message *chat.Message
	flags   *saves.DamageFlags
	record  *saves.Record
}

func (d *damageContext) targets() []string {
	if d.record != nil {
		return d.record.Targets
	}
	if d.flags != nil {
		return d.flags.Targets
	}
	return nil
}

func (d *damageContext) result(tokenUUID string) (saves.SaveResult, bool) {
	if d.record == nil {
		return saves.SaveResult{}, false
	}
	return d.record.Result(tokenUUID)
}

func (d *damageContext) applied(tokenUUID string) bool {
	return d.flags != nil && d.flags.Applied[saves.NormalizeID(tokenUUID)]
}

func (d *damageContext) healingTraits() saves.HealingTraits {
	origin := d.message.Origin()
	if origin == nil {
		return saves.HealingTraits{}
	}
	return saves.HealingTraitsFromOptions(origin.RollOptions)
}

func (s *service) load(ctx context.Context, damageMessageID string) (*damageContext, error) {
	msg, err := s.store.Get(ctx, damageMessageID)
	if err != nil {
		return nil, err
	}

	dc := &damageContext{message: msg}
	flags, ok, err := saves.DecodeDamage(msg.Flags)
	if err != nil {
		return nil, err
	}
	if !ok {
		return dc, nil
	}
	dc.flags = flags

	if flags.SavesMessage != "" {
		rec, err := s.records.Get(ctx, flags.SavesMessage)
		switch {
		case dnderr.IsNotFound(err):
			s.logger.Debug("linked saves message is gone", zap.String("saves", flags.SavesMessage))
		case err != nil:
			return nil, err
		default:
			dc.record = rec
		}
	}
	return dc, nil
}

// outcomeName is the degree the host reports to the actor, "success" when unknown.
func outcomeName(result saves.SaveResult, ok bool) string {
	if !ok {
		return saves.Success.String()
	}
	return result.DegreeOfSuccess.String()
}

// multiplierFor picks the multiplier for a token: healing when the roll heals this
// kind of creature, otherwise the save result's. ok is false when neither applies.
func (s *service) multiplierFor(dc *damageContext, roll *dice.DamageRoll, actor world.Actor, tokenUUID string) (float64, bool) {
	if roll.HasKind(dice.KindHealing) && s.settings.ApplyHealing && saves.CanApplyHealing(actor, dc.healingTraits()) {
		return HealingMultiplier, true
	}
	result, ok := dc.result(tokenUUID)
	if !ok {
		return 0, false
	}
	return saves.Multiplier(result.DegreeOfSuccess), true
}

func (s *service) ApplyForToken(ctx context.Context, input *TokenInput) (*Outcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}

	dc, err := s.load(ctx, input.MessageID)
	if dnderr.IsNotFound(err) {
		return &Outcome{TokenUUID: input.TokenUUID}, nil
	}
	if err != nil {
		return nil, err
	}

	roll := dc.message.Roll(input.RollIndex)
	token, actor := s.resolve(ctx, input.TokenUUID)
	if roll == nil || actor == nil {
		return &Outcome{TokenUUID: input.TokenUUID}, nil
	}
	if dc.applied(token.UUID) {
		s.logger.Debug("damage already applied", zap.String("message", dc.message.ID), zap.String("token", token.UUID))
		return &Outcome{TokenUUID: token.UUID}, nil
	}

	multiplier, ok := s.multiplierFor(dc, roll, actor, token.UUID)
	if !ok {
		s.logger.Debug("no save result to apply", zap.String("token", token.UUID))
		return &Outcome{TokenUUID: token.UUID}, nil
	}

	if multiplier == 0 {
		if err := s.records.MarkApplied(ctx, dc.message.ID, token.UUID); err != nil {
			return nil, err
		}
		return &Outcome{TokenUUID: token.UUID, Multiplier: 0, Applied: true, Marked: true}, nil
	}

	result, found := dc.result(token.UUID)
	return s.applyFromMessage(ctx, dc, &application{
		token:       token,
		actor:       actor,
		multiplier:  multiplier,
		addend:      input.Addend,
		rollIndex:   input.RollIndex,
		shieldBlock: input.ShieldBlock,
		outcome:     outcomeName(result, found),
		mark:        true,
	})
}

func (s *service) Apply(ctx context.Context, input *ApplyInput) (*Outcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}

	dc, err := s.load(ctx, input.MessageID)
	if dnderr.IsNotFound(err) {
		return &Outcome{TokenUUID: input.TokenUUID}, nil
	}
	if err != nil {
		return nil, err
	}

	token, actor := s.resolve(ctx, input.TokenUUID)
	if actor == nil {
		return &Outcome{TokenUUID: input.TokenUUID}, nil
	}
	if dc.applied(token.UUID) {
		s.logger.Debug("damage already applied", zap.String("message", dc.message.ID), zap.String("token", token.UUID))
		return &Outcome{TokenUUID: token.UUID}, nil
	}

	shieldBlock := input.ShieldBlock && input.Multiplier > 0
	result, found := dc.result(token.UUID)
	return s.applyFromMessage(ctx, dc, &application{
		token:       token,
		actor:       actor,
		multiplier:  input.Multiplier,
		addend:      input.Addend,
		rollIndex:   input.RollIndex,
		shieldBlock: shieldBlock,
		outcome:     outcomeName(result, found),
		mark:        true,
	})
}

func (s *service) ApplyToAll(ctx context.Context, damageMessageID string, rollIndex int) (*BatchOutcome, error) {
	return s.applyBatch(ctx, damageMessageID, rollIndex, false)
}

func (s *service) ApplyToNPCs(ctx context.Context, damageMessageID string, rollIndex int) (*BatchOutcome, error) {
	return s.applyBatch(ctx, damageMessageID, rollIndex, true)
}

func (s *service) applyBatch(ctx context.Context, damageMessageID string, rollIndex int, npcOnly bool) (*BatchOutcome, error) {
	if !s.user.IsGM() {
		return nil, dnderr.PermissionDeniedf("user %s may not apply damage to every target", s.user.ID)
	}

	batch := &BatchOutcome{Failed: make(map[string]error)}

	dc, err := s.load(ctx, damageMessageID)
	if dnderr.IsNotFound(err) {
		return batch, nil
	}
	if err != nil {
		return nil, err
	}
	roll := dc.message.Roll(rollIndex)
	if roll == nil {
		return batch, nil
	}

	var (
		g      errgroup.Group
		mu     sync.Mutex
		marked []string
	)
	for _, tokenUUID := range dc.targets() {
		if dc.applied(tokenUUID) {
			continue
		}
		token, actor := s.resolve(ctx, tokenUUID)
		if actor == nil || !token.IsOwner(s.user) {
			continue
		}
		if npcOnly && token.PlayerOwned {
			continue
		}

		multiplier, ok := s.multiplierFor(dc, roll, actor, token.UUID)
		if !ok {
			continue
		}
		if multiplier == 0 {
			mu.Lock()
			marked = append(marked, token.UUID)
			batch.Outcomes = append(batch.Outcomes, &Outcome{TokenUUID: token.UUID, Applied: true, Marked: true})
			mu.Unlock()
			continue
		}

		result, found := dc.result(token.UUID)
		app := &application{
			token:      token,
			actor:      actor,
			multiplier: multiplier,
			rollIndex:  rollIndex,
			outcome:    outcomeName(result, found),
		}
		g.Go(func() error {
			outcome, err := s.applyFromMessage(ctx, dc, app)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warn("damage application failed",
					zap.String("message", damageMessageID),
					zap.String("token", app.token.UUID),
					zap.Error(err))
				batch.Failed[app.token.UUID] = err
				return nil
			}
			if outcome.Applied {
				outcome.Marked = true
				marked = append(marked, app.token.UUID)
			}
			batch.Outcomes = append(batch.Outcomes, outcome)
			return nil
		})
	}
	_ = g.Wait()

	if len(marked) > 0 {
		if err := s.records.MarkApplied(ctx, damageMessageID, marked...); err != nil {
			return nil, err
		}
	}
	return batch, nil
}

func (s *service) SplashAround(ctx context.Context, input *TokenInput) (*BatchOutcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}

	batch := &BatchOutcome{Failed: make(map[string]error)}

	dc, err := s.load(ctx, input.MessageID)
	if dnderr.IsNotFound(err) {
		return batch, nil
	}
	if err != nil {
		return nil, err
	}
	if dc.message.Roll(input.RollIndex) == nil {
		return batch, nil
	}

	around, err := s.enumerator.SplashTargets(ctx, input.TokenUUID)
	if dnderr.IsNotFound(err) {
		s.notify(ctx, "Token "+input.TokenUUID+" is not on the active scene")
		return batch, nil
	}
	if err != nil {
		return nil, err
	}

	for _, tokenUUID := range around {
		token, actor := s.resolve(ctx, tokenUUID)
		if actor == nil {
			continue
		}
		outcome, err := s.applyFromMessage(ctx, dc, &application{
			token:      token,
			actor:      actor,
			multiplier: 1,
			addend:     input.Addend,
			rollIndex:  input.RollIndex,
			outcome:    saves.Success.String(),
		})
		if err != nil {
			s.logger.Warn("splash damage failed", zap.String("token", tokenUUID), zap.Error(err))
			batch.Failed[tokenUUID] = err
			continue
		}
		batch.Outcomes = append(batch.Outcomes, outcome)
	}
	return batch, nil
}

func (s *service) notify(ctx context.Context, message string) {
	s.logger.Warn(message)
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, message); err != nil {
		s.logger.Debug("notification failed", zap.Error(err))
	}
}

func (s *service) resolve(ctx context.Context, tokenUUID string) (*world.Token, world.Actor) {
	token, err := s.directory.Token(ctx, tokenUUID)
	if err != nil {
		return nil, nil
	}
	return token, world.TokenActor(ctx, s.directory, token)
}

type application struct {
	token       *world.Token
	actor       world.Actor
	multiplier  float64
	addend      int
	rollIndex   int
	shieldBlock bool
	outcome     string
	// mark records the token as applied once the damage lands.
	mark bool
}

var selfOrTarget = regexp.MustCompile(`^(?:self|target)(?::|$)`)

func (s *service) applyFromMessage(ctx context.Context, dc *damageContext, app *application) (*Outcome, error) {
	outcome := &Outcome{TokenUUID: app.token.UUID, Multiplier: app.multiplier}

	roll := dc.message.Roll(app.rollIndex)
	if roll == nil {
		return outcome, nil
	}

	var damage world.DamageValue
	if app.multiplier < 0 {
		damage.Flat = int(app.multiplier*float64(roll.Total())) + app.addend
	} else {
		damage.Roll = roll.Alter(app.multiplier, app.addend)
	}

	var messageOptions []string
	if hc := dc.message.Host().Context; hc != nil {
		messageOptions = slices.Clone(hc.Options)
	}
	var originOptions []string
	for _, opt := range messageOptions {
		if strings.HasPrefix(opt, "self:") {
			originOptions = append(originOptions, "origin"+strings.TrimPrefix(opt, "self"))
		}
	}

	var item *world.Item
	itemUUID := ""
	if origin := dc.message.Origin(); origin != nil {
		itemUUID = origin.UUID
		item, _ = s.directory.Item(ctx, origin.UUID)
	}
	var effectOptions []string
	if item.IsOfType("affliction", "condition", "effect") {
		effectOptions = item.RollOptions("item")
	}

	var originActor world.Actor
	if dc.message.Speaker.Actor != "" {
		originActor, _ = s.directory.Actor(ctx, dc.message.Speaker.Actor)
	}
	if app.actor.Alliance() != "" && originActor != nil {
		relation := "enemy"
		if app.actor.Alliance() == originActor.Alliance() {
			relation = "ally"
		}
		messageOptions = append(messageOptions, "origin:"+relation)
	}
	if !slices.ContainsFunc(messageOptions, func(o string) bool { return strings.HasPrefix(o, "target") }) {
		messageOptions = append(messageOptions, app.actor.SelfRollOptions("target")...)
	}

	var effects []*world.Effect
	if app.multiplier != 0 {
		domain := DomainDamageReceived
		if app.multiplier < 0 {
			domain = DomainHealingReceived
		}
		var err error
		effects, err = ExtractEphemeralEffects(ctx, &EphemeralInput{
			Affects: world.AffectsTarget,
			Origin:  originActor,
			Target:  app.actor,
			Item:    item,
			Domains: []string{domain},
			Options: messageOptions,
		})
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to resolve ephemeral effects")
		}
	}
	clone := app.actor.ContextualClone(originOptions, effects)

	var rollOptions []string
	for _, opt := range messageOptions {
		if !selfOrTarget.MatchString(opt) {
			rollOptions = append(rollOptions, opt)
		}
	}
	rollOptions = append(rollOptions, effectOptions...)
	rollOptions = append(rollOptions, originOptions...)
	rollOptions = append(rollOptions, clone.SelfRollOptions("self")...)
	slices.Sort(rollOptions)
	rollOptions = slices.Compact(rollOptions)

	result, err := clone.ApplyDamage(ctx, &world.ApplyDamageParams{
		Damage:             damage,
		Token:              app.token,
		ItemUUID:           itemUUID,
		SkipIWR:            app.multiplier <= 0,
		RollOptions:        rollOptions,
		ShieldBlockRequest: app.shieldBlock,
		Outcome:            app.outcome,
	})
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to apply damage to %s", app.token.UUID)
	}
	if result == nil {
		return outcome, nil
	}
	outcome.Applied = true
	outcome.Result = result

	if app.mark {
		if err := s.records.MarkApplied(ctx, dc.message.ID, app.token.UUID); err != nil {
			return nil, err
		}
		outcome.Marked = true
	}
	return outcome, nil
}
