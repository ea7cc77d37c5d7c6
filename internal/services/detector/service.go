// Package detector watches action messages and opens a saves record when one
// asks for a saving throw.
package detector

//go:generate mockgen -destination=mock/mock_service.go -package=mockdetector -source=service.go

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/KirkDiggler/saves-helper/internal/chat"
	"github.com/KirkDiggler/saves-helper/internal/domain/saves"
	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
	"github.com/KirkDiggler/saves-helper/internal/events"
	"github.com/KirkDiggler/saves-helper/internal/render"
	"github.com/KirkDiggler/saves-helper/internal/services/records"
	"github.com/KirkDiggler/saves-helper/internal/spells"
	"github.com/KirkDiggler/saves-helper/internal/targeting"
	"github.com/KirkDiggler/saves-helper/internal/world"
)

// Attack traits that make a strike ask for a reflex save instead of rolling against AC
const (
	TraitArea     = "area"
	TraitAutoFire = "auto-fire"
)

// Service defines the save detection operations
type Service interface {
	// Detect works out the save an action message asks for, if any.
	Detect(ctx context.Context, msg *chat.Message) (*Detection, error)

	// OnMessageCreated opens a saves record for a new action message, or links a
	// damage roll to the record it belongs to.
	OnMessageCreated(ctx context.Context, event *events.Event) error

	// OnMessageUpdating follows a spell's variant choice: it opens, recomputes or
	// removes the record to match the chosen variant.
	OnMessageUpdating(ctx context.Context, event *events.Event) error

	// OnTemplateCreated retargets a record to the tokens under its area template.
	OnTemplateCreated(ctx context.Context, event *events.Event) error

	// Register subscribes the handlers on a dispatcher
	Register(dispatcher *events.Dispatcher)
}

// Detection is a save found on an action message.
type Detection struct {
	SaveInfo *saves.SaveInfo
	Origin   *saves.Origin
}

type service struct {
	records    records.Service
	store      chat.Store
	catalog    spells.Catalog
	directory  world.Directory
	enumerator *targeting.Enumerator
	session    *world.Session
	localizer  *render.Localizer
	logger     *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Records    records.Service
	Store      chat.Store
	Catalog    spells.Catalog
	Directory  world.Directory
	Enumerator *targeting.Enumerator
	Session    *world.Session
	Localizer  *render.Localizer
	Logger     *zap.Logger
}

// NewService creates a new detector service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Records == nil {
		panic("records service is required")
	}
	if cfg.Store == nil {
		panic("store is required")
	}
	if cfg.Catalog == nil {
		panic("spell catalog is required")
	}
	if cfg.Directory == nil {
		panic("directory is required")
	}
	if cfg.Enumerator == nil {
		panic("enumerator is required")
	}
	if cfg.Session == nil {
		panic("session is required")
	}
	if cfg.Localizer == nil {
		panic("localizer is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		records:    cfg.Records,
		store:      cfg.Store,
		catalog:    cfg.Catalog,
		directory:  cfg.Directory,
		enumerator: cfg.Enumerator,
		session:    cfg.Session,
		localizer:  cfg.Localizer,
		logger:     logger,
	}
}

func (s *service) Register(dispatcher *events.Dispatcher) {
	dispatcher.Subscribe(events.EventTypeMessageCreated, events.NewListener("detector.created", 10, s.OnMessageCreated))
	dispatcher.Subscribe(events.EventTypeMessageUpdating, events.NewListener("detector.updating", 10, s.OnMessageUpdating))
	dispatcher.Subscribe(events.EventTypeTemplateCreated, events.NewListener("detector.template", 10, s.OnTemplateCreated))
}

func (s *service) local(event *events.Event) bool {
	return event != nil && event.UserID == s.session.User().ID
}

func (s *service) OnMessageCreated(ctx context.Context, event *events.Event) error {
	if !s.local(event) || event.Message == nil {
		return nil
	}
	msg := event.Message

	// Records and save rolls are our own output.
	if _, ok, _ := saves.DecodeSaves(msg.Flags); ok {
		return nil
	}
	switch msg.ContextType() {
	case saves.ContextSavingThrow:
		return nil
	case saves.ContextDamageRoll:
		return s.linkDamage(ctx, msg)
	}

	found, err := s.Detect(ctx, msg)
	if err != nil {
		return err
	}
	if found == nil {
		return nil
	}

	_, err = s.records.Create(ctx, &records.CreateInput{
		Source:   msg,
		SaveInfo: found.SaveInfo,
		Origin:   found.Origin,
		Targets:  s.session.Targets(),
	})
	return err
}

func (s *service) Detect(ctx context.Context, msg *chat.Message) (*Detection, error) {
	if msg == nil {
		return nil, nil
	}

	switch {
	case msg.ContextType() == saves.ContextSpellCast:
		return s.detectSpell(ctx, msg, msg.Origin())
	case msg.ContextType() == saves.ContextDamageRoll:
		return nil, nil
	case msg.Attack != nil:
		return s.detectAreaAttack(msg), nil
	default:
		return s.detectInlineCheck(ctx, msg), nil
	}
}

func (s *service) detectSpell(ctx context.Context, msg *chat.Message, origin *saves.Origin) (*Detection, error) {
	if origin == nil || origin.UUID == "" {
		return nil, nil
	}

	spell, err := s.catalog.Spell(ctx, origin.UUID)
	if dnderr.IsNotFound(err) {
		s.logger.Debug("unknown spell", zap.String("spell", origin.UUID))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var overlays []string
	if origin.Variant != nil {
		overlays = origin.Variant.Overlays
	}
	// Spells with variants wait for a variant to be chosen.
	if spell.HasVariants() && len(overlays) == 0 {
		return nil, nil
	}
	defense := spell.ResolveDefense(overlays)
	if defense == nil || defense.Statistic == "" {
		return nil, nil
	}

	dc := s.casterDC(ctx, msg, origin, spell.SpellcastingStatistic())
	if dc == 0 {
		s.logger.Debug("caster has no spell DC", zap.String("spell", origin.UUID))
		return nil, nil
	}

	return &Detection{
		SaveInfo: &saves.SaveInfo{
			SaveType: defense.Statistic,
			Basic:    defense.Basic,
			DC:       dc,
		},
		Origin: origin,
	}, nil
}

func (s *service) casterDC(ctx context.Context, msg *chat.Message, origin *saves.Origin, statistic string) int {
	for _, ref := range []string{origin.Actor, msg.Speaker.Actor} {
		if ref == "" {
			continue
		}
		actor, err := s.directory.Actor(ctx, ref)
		if err != nil {
			continue
		}
		if stat := actor.Statistic(statistic); stat != nil {
			return stat.DC
		}
	}
	return 0
}

func (s *service) detectAreaAttack(msg *chat.Message) *Detection {
	attack := msg.Attack
	if attack == nil || attack.Statistic == nil {
		return nil
	}
	if !slices.Contains(attack.Traits, TraitArea) && !slices.Contains(attack.Traits, TraitAutoFire) {
		return nil
	}

	origin := msg.Origin()
	if origin == nil && attack.ItemUUID != "" {
		origin = &saves.Origin{UUID: attack.ItemUUID, Type: "weapon", Actor: msg.Speaker.Actor}
	}

	return &Detection{
		SaveInfo: &saves.SaveInfo{SaveType: "reflex", Basic: true, DC: attack.Statistic.DC},
		Origin:   origin,
	}
}

func (s *service) detectInlineCheck(ctx context.Context, msg *chat.Message) *Detection {
	check, ok := FindInlineCheck(msg.Content)
	if !ok {
		return nil
	}

	dc := check.DC
	if dc == 0 && check.Against != "" && msg.Speaker.Actor != "" {
		if actor, err := s.directory.Actor(ctx, msg.Speaker.Actor); err == nil {
			if stat := actor.Statistic(check.Against); stat != nil {
				dc = stat.DC
			}
		}
	}
	if dc == 0 {
		s.logger.Debug("inline check without a DC", zap.String("message", msg.ID))
		return nil
	}

	return &Detection{
		SaveInfo: &saves.SaveInfo{
			SaveType: check.SaveType,
			Basic:    ContainsPhrase(msg.Content, s.localizer.BasicSavePhrase(check.SaveType)),
			DC:       dc,
		},
		Origin: msg.Origin(),
	}
}

// linkDamage attaches a damage roll to the newest unlinked record for the same
// item, or captures the current targets on it when there is none.
func (s *service) linkDamage(ctx context.Context, msg *chat.Message) error {
	if origin := msg.Origin(); origin != nil && origin.UUID != "" {
		transcript, err := s.store.List(ctx)
		if err != nil {
			return err
		}
		for i := len(transcript) - 1; i >= 0; i-- {
			rec, ok, err := s.records.Find(ctx, transcript[i])
			if err != nil || !ok {
				continue
			}
			if rec.DamageMessage != "" || rec.Origin == nil || rec.Origin.UUID != origin.UUID {
				continue
			}
			return s.records.LinkDamage(ctx, rec.ID, msg.ID)
		}
	}

	targets := s.enumerator.Filter(ctx, s.session.Targets(), false, "")
	if _, err := s.store.Update(ctx, msg.ID, chat.Patch{
		saves.FlagPath("targets"): targets,
	}); err != nil {
		return dnderr.Wrapf(err, "failed to capture targets on %s", msg.ID)
	}
	return nil
}

func (s *service) OnMessageUpdating(ctx context.Context, event *events.Event) error {
	if !s.local(event) || event.Message == nil || event.Changed == nil {
		return nil
	}
	msg := event.Message

	changed, err := saves.DecodeHost(event.Changed)
	if err != nil {
		return err
	}
	contextType := msg.ContextType()
	if changed.Context != nil && changed.Context.Type != "" {
		contextType = changed.Context.Type
	}
	if contextType != saves.ContextSpellCast || changed.Origin == nil {
		return nil
	}
	current := msg.Origin()
	if current == nil {
		return nil
	}

	link, err := saves.DecodeSource(msg.Flags)
	if err != nil {
		return err
	}

	spell, err := s.catalog.Spell(ctx, current.UUID)
	if err != nil && !dnderr.IsNotFound(err) {
		return err
	}
	if spell != nil && !spell.HasVariants() {
		return nil
	}

	origin := *current
	if changed.Origin.UUID != "" {
		origin.UUID = changed.Origin.UUID
	}
	if changed.Origin.RollOptions != nil {
		origin.RollOptions = changed.Origin.RollOptions
	}
	origin.Variant = changed.Origin.Variant

	var found *Detection
	if spell != nil && origin.Variant != nil {
		if found, err = s.detectSpell(ctx, msg, &origin); err != nil {
			return err
		}
	}

	if found == nil {
		if link.SavesMessage == "" {
			return nil
		}
		s.logger.Debug("variant has no save, removing record", zap.String("record", link.SavesMessage))
		return s.records.Remove(ctx, msg)
	}

	input := &records.CreateInput{
		Source:   msg,
		SaveInfo: found.SaveInfo,
		Origin:   found.Origin,
	}
	if link.SavesMessage != "" {
		_, err := s.records.Recompute(ctx, link.SavesMessage, input)
		if !dnderr.IsNotFound(err) {
			return err
		}
	}
	input.Targets = s.session.Targets()
	_, err = s.records.Create(ctx, input)
	return err
}

func (s *service) OnTemplateCreated(ctx context.Context, event *events.Event) error {
	if !s.local(event) || event.Template == nil || event.Template.MessageID == "" {
		return nil
	}

	source, err := s.store.Get(ctx, event.Template.MessageID)
	if dnderr.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if source.AuthorID != s.session.User().ID {
		return nil
	}

	link, err := saves.DecodeSource(source.Flags)
	if err != nil || link.SavesMessage == "" {
		return err
	}
	rec, err := s.records.Get(ctx, link.SavesMessage)
	if dnderr.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if rec.SaveInfo == nil || rec.SaveInfo.SaveType == "" {
		return nil
	}

	targets, err := s.enumerator.TemplateTargets(ctx, event.Template, rec.SaveInfo.SaveType)
	if err != nil {
		return err
	}
	s.session.SetTargets(targets)

	_, err = s.records.AddTargets(ctx, rec.ID, s.session.Targets())
	return err
}
