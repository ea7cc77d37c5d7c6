// Package records owns saves records: creating them next to the action they
// came from, keeping their rendered content in step with their flags, and
// writing roll results and applied-damage markers.
package records

//go:generate mockgen -destination=mock/mock_service.go -package=mockrecords -source=service.go

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/saves-helper/internal/chat"
	"github.com/KirkDiggler/saves-helper/internal/domain/saves"
	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
	"github.com/KirkDiggler/saves-helper/internal/relay"
	"github.com/KirkDiggler/saves-helper/internal/targeting"
	"github.com/KirkDiggler/saves-helper/internal/world"
)

// Service defines the saves record operations
type Service interface {
	// Create posts a saves message for an action and links it from the source message.
	Create(ctx context.Context, input *CreateInput) (*saves.Record, error)

	// Recompute rewrites a record's save info, origin and content in place, keeping its results.
	Recompute(ctx context.Context, recordID string, input *CreateInput) (*saves.Record, error)

	// Remove deletes the saves message linked from source and clears the back reference.
	Remove(ctx context.Context, source *chat.Message) error

	// Get returns the record stored on a saves message
	Get(ctx context.Context, recordID string) (*saves.Record, error)

	// Find returns the record for a saves message if msg is one.
	Find(ctx context.Context, msg *chat.Message) (*saves.Record, bool, error)

	// AddTargets replaces the record's targets with the eligible subset of tokenUUIDs.
	AddTargets(ctx context.Context, recordID string, tokenUUIDs []string) (*saves.Record, error)

	// RecordResult stores a token's save result, or relays it when the local user
	// may not write the record.
	RecordResult(ctx context.Context, recordID, tokenUUID string, result saves.SaveResult) error

	// MarkApplied marks damage from a damage message as applied to tokens, or relays
	// the markers when the local user may not write the message.
	MarkApplied(ctx context.Context, damageMessageID string, tokenUUIDs ...string) error

	// LinkDamage cross references a saves message and the damage message rolled for it.
	LinkDamage(ctx context.Context, recordID, damageMessageID string) error

	// Render produces a record's message content
	Render(ctx context.Context, rec *saves.Record) (string, error)

	// CanWrite reports whether the local user may write msg directly
	CanWrite(msg *chat.Message) bool

	relay.Receiver
}

// CreateInput describes a new save obligation.
type CreateInput struct {
	Source   *chat.Message
	SaveInfo *saves.SaveInfo
	Origin   *saves.Origin
	// Targets are candidate token UUIDs; ineligible ones are dropped.
	Targets []string
	Label   *saves.Label
}

// Renderer renders record content
type Renderer interface {
	Render(ctx context.Context, rec *saves.Record) (string, error)
}

// Sender relays writes the local user has no authority for
type Sender interface {
	SendSaveRolled(ctx context.Context, msg *relay.SaveRolled) error
	SendUpdateApplied(ctx context.Context, msg *relay.UpdateApplied) error
}

type service struct {
	store      chat.Store
	renderer   Renderer
	enumerator *targeting.Enumerator
	relay      Sender
	user       *world.User
	logger     *zap.Logger
	locks      *recordLocks
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Store      chat.Store
	Renderer   Renderer
	Enumerator *targeting.Enumerator
	Relay      Sender
	User       *world.User
	Logger     *zap.Logger
}

// NewService creates a new records service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Store == nil {
		panic("store is required")
	}
	if cfg.Renderer == nil {
		panic("renderer is required")
	}
	if cfg.Enumerator == nil {
		panic("enumerator is required")
	}
	if cfg.Relay == nil {
		panic("relay is required")
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
		renderer:   cfg.Renderer,
		enumerator: cfg.Enumerator,
		relay:      cfg.Relay,
		user:       cfg.User,
		logger:     logger,
		locks:      newRecordLocks(),
	}
}

func (s *service) CanWrite(msg *chat.Message) bool {
	return msg != nil && (msg.AuthorID == s.user.ID || s.user.IsGM())
}

func (s *service) Render(ctx context.Context, rec *saves.Record) (string, error) {
	return s.renderer.Render(ctx, rec)
}

func saveStatistic(info *saves.SaveInfo) string {
	if info == nil {
		return ""
	}
	return info.SaveType
}

func (s *service) Create(ctx context.Context, input *CreateInput) (*saves.Record, error) {
	if input == nil || input.Source == nil {
		return nil, dnderr.InvalidArgument("source message is required")
	}
	if input.SaveInfo == nil {
		return nil, dnderr.InvalidArgument("save info is required")
	}

	rec := &saves.Record{
		Targets:       s.enumerator.Filter(ctx, input.Targets, false, saveStatistic(input.SaveInfo)),
		SaveInfo:      input.SaveInfo,
		Origin:        input.Origin,
		Results:       make(map[string]saves.SaveResult),
		SourceMessage: input.Source.ID,
		Label:         input.Label,
	}

	content, err := s.renderer.Render(ctx, rec)
	if err != nil {
		return nil, err
	}
	flags, err := saves.Encode(saves.FlagsFromRecord(rec))
	if err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, &chat.Message{
		AuthorID: s.user.ID,
		Speaker:  input.Source.Speaker,
		Content:  content,
		Flags:    map[string]any{saves.Namespace: flags},
	})
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to create saves message")
	}
	rec.ID = created.ID

	if _, err := s.store.Update(ctx, input.Source.ID, chat.Patch{
		saves.FlagPath("savesMessage"): created.ID,
	}); err != nil {
		return nil, dnderr.Wrapf(err, "failed to link saves message %s", created.ID)
	}

	s.logger.Debug("created saves record",
		zap.String("record", rec.ID),
		zap.String("source", input.Source.ID),
		zap.Int("targets", len(rec.Targets)))

	return rec, nil
}

func (s *service) Recompute(ctx context.Context, recordID string, input *CreateInput) (*saves.Record, error) {
	if input == nil || input.SaveInfo == nil {
		return nil, dnderr.InvalidArgument("save info is required")
	}

	unlock := s.locks.lock(recordID)
	defer unlock()

	current, err := s.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}

	rec := &saves.Record{
		ID:            current.ID,
		Targets:       current.Targets,
		SaveInfo:      input.SaveInfo,
		Origin:        input.Origin,
		Results:       current.Results,
		Applied:       current.Applied,
		SourceMessage: current.SourceMessage,
		DamageMessage: current.DamageMessage,
		Label:         current.Label,
	}
	if input.Source != nil {
		rec.SourceMessage = input.Source.ID
	}
	if input.Targets != nil {
		rec.Targets = s.enumerator.Filter(ctx, input.Targets, false, saveStatistic(input.SaveInfo))
	}
	if input.Label != nil {
		rec.Label = input.Label
	}

	if err := s.write(ctx, rec, chat.Patch{}); err != nil {
		return nil, err
	}
	return rec, nil
}

// write persists rec's flags and freshly rendered content in one update. An empty
// patch replaces the whole namespace; otherwise only the given paths change.
func (s *service) write(ctx context.Context, rec *saves.Record, patch chat.Patch) error {
	content, err := s.renderer.Render(ctx, rec)
	if err != nil {
		return err
	}

	if len(patch) == 0 {
		flags, err := saves.Encode(saves.FlagsFromRecord(rec))
		if err != nil {
			return err
		}
		patch[saves.NamespacePath()] = flags
	}
	patch["content"] = content

	if _, err := s.store.Update(ctx, rec.ID, patch); err != nil {
		return dnderr.Wrapf(err, "failed to update saves message %s", rec.ID)
	}
	return nil
}

func (s *service) Remove(ctx context.Context, source *chat.Message) error {
	if source == nil {
		return dnderr.InvalidArgument("source message is required")
	}

	link, err := saves.DecodeSource(source.Flags)
	if err != nil {
		return err
	}
	if link.SavesMessage == "" {
		return nil
	}

	if err := s.store.Delete(ctx, link.SavesMessage); err != nil && !dnderr.IsNotFound(err) {
		return dnderr.Wrapf(err, "failed to delete saves message %s", link.SavesMessage)
	}
	if _, err := s.store.Update(ctx, source.ID, chat.Patch{
		saves.FlagPath("savesMessage"): chat.Deleted,
	}); err != nil {
		return dnderr.Wrapf(err, "failed to unlink saves message from %s", source.ID)
	}

	s.logger.Debug("removed saves record",
		zap.String("record", link.SavesMessage),
		zap.String("source", source.ID))
	return nil
}

func (s *service) Get(ctx context.Context, recordID string) (*saves.Record, error) {
	msg, err := s.store.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}
	rec, ok, err := s.Find(ctx, msg)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, dnderr.NotFoundf("message %s is not a saves message", recordID)
	}
	return rec, nil
}

func (s *service) Find(ctx context.Context, msg *chat.Message) (*saves.Record, bool, error) {
	if msg == nil {
		return nil, false, nil
	}
	flags, ok, err := saves.DecodeSaves(msg.Flags)
	if err != nil || !ok {
		return nil, false, err
	}

	var applied map[string]bool
	if flags.DamageMessage != "" {
		damage, err := s.store.Get(ctx, flags.DamageMessage)
		switch {
		case err == nil:
			if damageFlags, ok, err := saves.DecodeDamage(damage.Flags); err == nil && ok {
				applied = damageFlags.Applied
			}
		case !dnderr.IsNotFound(err):
			return nil, false, err
		}
	}

	return flags.Record(msg.ID, applied), true, nil
}

func (s *service) AddTargets(ctx context.Context, recordID string, tokenUUIDs []string) (*saves.Record, error) {
	unlock := s.locks.lock(recordID)
	defer unlock()

	msg, err := s.store.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if !s.CanWrite(msg) {
		return nil, dnderr.PermissionDeniedf("user %s may not retarget %s", s.user.ID, recordID)
	}
	rec, ok, err := s.Find(ctx, msg)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, dnderr.NotFoundf("message %s is not a saves message", recordID)
	}

	rec.Targets = s.enumerator.Filter(ctx, tokenUUIDs, false, saveStatistic(rec.SaveInfo))

	if err := s.write(ctx, rec, chat.Patch{saves.FlagPath("targets"): rec.Targets}); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *service) RecordResult(ctx context.Context, recordID, tokenUUID string, result saves.SaveResult) error {
	msg, err := s.store.Get(ctx, recordID)
	if dnderr.IsNotFound(err) {
		s.logger.Debug("saves message is gone, dropping result", zap.String("record", recordID))
		return nil
	}
	if err != nil {
		return err
	}

	if !s.CanWrite(msg) {
		return s.relay.SendSaveRolled(ctx, &relay.SaveRolled{
			Message:         recordID,
			Token:           tokenUUID,
			DegreeOfSuccess: result.DegreeOfSuccess,
			RollValue:       result.RollValue,
		})
	}
	return s.writeResult(ctx, recordID, tokenUUID, result)
}

// writeResult re-reads the saves message under its lock so concurrent results
// each render on top of the ones written before them.
func (s *service) writeResult(ctx context.Context, recordID, tokenUUID string, result saves.SaveResult) error {
	unlock := s.locks.lock(recordID)
	defer unlock()

	msg, err := s.store.Get(ctx, recordID)
	if dnderr.IsNotFound(err) {
		s.logger.Debug("saves message is gone, dropping result", zap.String("record", recordID))
		return nil
	}
	if err != nil {
		return err
	}

	rec, ok, err := s.Find(ctx, msg)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Debug("not a saves message, dropping result", zap.String("message", msg.ID))
		return nil
	}

	rec.Results[saves.NormalizeID(tokenUUID)] = result
	return s.write(ctx, rec, chat.Patch{saves.ResultPath(tokenUUID): result})
}

func (s *service) MarkApplied(ctx context.Context, damageMessageID string, tokenUUIDs ...string) error {
	if len(tokenUUIDs) == 0 {
		return nil
	}

	msg, err := s.store.Get(ctx, damageMessageID)
	if dnderr.IsNotFound(err) {
		s.logger.Debug("damage message is gone, dropping applied marker", zap.String("message", damageMessageID))
		return nil
	}
	if err != nil {
		return err
	}

	if !s.CanWrite(msg) {
		for _, token := range tokenUUIDs {
			if err := s.relay.SendUpdateApplied(ctx, &relay.UpdateApplied{
				Message: damageMessageID,
				Token:   token,
			}); err != nil {
				return err
			}
		}
		return nil
	}
	return s.writeApplied(ctx, damageMessageID, tokenUUIDs)
}

func (s *service) writeApplied(ctx context.Context, damageMessageID string, tokenUUIDs []string) error {
	patch := make(chat.Patch, len(tokenUUIDs))
	for _, token := range tokenUUIDs {
		patch[saves.AppliedPath(token)] = true
	}
	if _, err := s.store.Update(ctx, damageMessageID, patch); err != nil {
		return dnderr.Wrapf(err, "failed to mark damage %s applied", damageMessageID)
	}
	return nil
}

func (s *service) LinkDamage(ctx context.Context, recordID, damageMessageID string) error {
	if _, err := s.store.Update(ctx, damageMessageID, chat.Patch{
		saves.FlagPath("savesMessage"): recordID,
	}); err != nil {
		return dnderr.Wrapf(err, "failed to link damage message %s", damageMessageID)
	}
	unlock := s.locks.lock(recordID)
	defer unlock()

	if _, err := s.store.Update(ctx, recordID, chat.Patch{
		saves.FlagPath("damageMessage"): damageMessageID,
	}); err != nil {
		return dnderr.Wrapf(err, "failed to link saves message %s", recordID)
	}
	return nil
}

// HandleSaveRolled implements relay.Receiver
func (s *service) HandleSaveRolled(ctx context.Context, msg *relay.SaveRolled) error {
	return s.writeResult(ctx, msg.Message, msg.Token, saves.SaveResult{
		DegreeOfSuccess: msg.DegreeOfSuccess,
		RollValue:       msg.RollValue,
	})
}

// HandleUpdateApplied implements relay.Receiver
func (s *service) HandleUpdateApplied(ctx context.Context, msg *relay.UpdateApplied) error {
	damage, err := s.store.Get(ctx, msg.Message)
	if dnderr.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !saves.HasNamespace(damage.Flags) {
		return nil
	}
	return s.writeApplied(ctx, msg.Message, []string{msg.Token})
}
