// Package rolls runs saving throws for the targets of a saves record and feeds
// the results back into it.
package rolls

//go:generate mockgen -destination=mock/mock_service.go -package=mockrolls -source=service.go

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/saves-helper/internal/chat"
	"github.com/KirkDiggler/saves-helper/internal/config"
	"github.com/KirkDiggler/saves-helper/internal/domain/saves"
	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
	"github.com/KirkDiggler/saves-helper/internal/events"
	"github.com/KirkDiggler/saves-helper/internal/services/records"
	"github.com/KirkDiggler/saves-helper/internal/world"
)

// Service defines the roll orchestration operations
type Service interface {
	// RollSave rolls one token's save for a record
	RollSave(ctx context.Context, input *RollSaveInput) error

	// RollAll rolls for every target the user owns that has no result yet
	RollAll(ctx context.Context, recordID string, shiftKey bool) (*BatchResult, error)

	// RollNPCs is RollAll limited to tokens without a player owner
	RollNPCs(ctx context.Context, recordID string, shiftKey bool) (*BatchResult, error)

	// OnReroll records a rerolled saving throw made for a record
	OnReroll(ctx context.Context, reroll *events.Reroll) error

	// HandleResult records a finished roll for a record
	HandleResult(ctx context.Context, recordID string, result *CheckResult, rollMessage *chat.Message) error
}

// RollSaveInput identifies one roll
type RollSaveInput struct {
	RecordID  string
	TokenUUID string
	// ShiftKey is the modifier held when the roll was requested.
	ShiftKey bool
}

// BatchResult reports which tokens a batch rolled for and which failed.
type BatchResult struct {
	Rolled []string
	Failed map[string]error
	// Declined is set when the user said no to the confirmation.
	Declined bool
}

type service struct {
	records   records.Service
	directory world.Directory
	roller    CheckRoller
	waiter    AnimationWaiter
	confirmer Confirmer
	settings  config.Settings
	user      *world.User
	logger    *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Records   records.Service
	Directory world.Directory
	Roller    CheckRoller
	// Waiter is optional; results are recorded once the animation ends.
	Waiter AnimationWaiter
	// Confirmer is optional; without one batches roll without asking.
	Confirmer Confirmer
	Settings  config.Settings
	User      *world.User
	Logger    *zap.Logger
}

// NewService creates a new rolls service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Records == nil {
		panic("records service is required")
	}
	if cfg.Directory == nil {
		panic("directory is required")
	}
	if cfg.Roller == nil {
		panic("roller is required")
	}
	if cfg.User == nil {
		panic("user is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		records:   cfg.Records,
		directory: cfg.Directory,
		roller:    cfg.Roller,
		waiter:    cfg.Waiter,
		confirmer: cfg.Confirmer,
		settings:  cfg.Settings,
		user:      cfg.User,
		logger:    logger,
	}
}

// skipDialog inverts the shift key when dialogs are skipped by default.
func (s *service) skipDialog(shiftKey bool) bool {
	return s.settings.ForceSkipDialog != shiftKey
}

func (s *service) RollSave(ctx context.Context, input *RollSaveInput) error {
	if input == nil {
		return dnderr.InvalidArgument("input is required")
	}

	rec, err := s.records.Get(ctx, input.RecordID)
	if dnderr.IsNotFound(err) {
		s.logger.Debug("no saves record to roll for", zap.String("record", input.RecordID))
		return nil
	}
	if err != nil {
		return err
	}

	token, err := s.directory.Token(ctx, input.TokenUUID)
	if err != nil {
		return err
	}
	if !token.IsOwner(s.user) {
		return dnderr.PermissionDeniedf("user %s does not own %s", s.user.ID, token.UUID)
	}

	return s.roll(ctx, rec, token, input.ShiftKey)
}

func (s *service) roll(ctx context.Context, rec *saves.Record, token *world.Token, shiftKey bool) error {
	if rec.SaveInfo == nil || rec.Origin == nil {
		s.logger.Debug("record has nothing to roll", zap.String("record", rec.ID))
		return nil
	}

	actor := world.TokenActor(ctx, s.directory, token)
	if actor == nil {
		return nil
	}
	stat := actor.Statistic(rec.SaveInfo.SaveType)
	if stat == nil {
		s.logger.Debug("actor has no such save",
			zap.String("token", token.UUID),
			zap.String("save", rec.SaveInfo.SaveType))
		return nil
	}

	rollMode := RollModePublic
	if token.Hidden {
		rollMode = RollModeGM
	}

	recordID := rec.ID
	return s.roller.RollCheck(ctx, &CheckRequest{
		Token:            token,
		Actor:            actor,
		Statistic:        stat,
		ItemUUID:         rec.Origin.UUID,
		OriginActor:      rec.Origin.Actor,
		DC:               rec.SaveInfo.DC,
		SkipDialog:       s.skipDialog(shiftKey),
		Identifier:       recordID,
		RollMode:         rollMode,
		CreateMessage:    !s.settings.HideSavingThrows,
		ExtraRollOptions: rec.SaveInfo.ExtraRollOptions,
		Callback: func(ctx context.Context, result *CheckResult, rollMessage *chat.Message) error {
			return s.HandleResult(ctx, recordID, result, rollMessage)
		},
	})
}

func (s *service) RollAll(ctx context.Context, recordID string, shiftKey bool) (*BatchResult, error) {
	return s.rollBatch(ctx, recordID, shiftKey, false)
}

func (s *service) RollNPCs(ctx context.Context, recordID string, shiftKey bool) (*BatchResult, error) {
	return s.rollBatch(ctx, recordID, shiftKey, true)
}

// rollBatch rolls concurrently for every pending token and waits for all of them.
// A token whose roll fails is reported and does not stop the others.
func (s *service) rollBatch(ctx context.Context, recordID string, shiftKey, npcOnly bool) (*BatchResult, error) {
	rec, err := s.records.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}

	tokens := s.pending(ctx, rec, npcOnly)
	batch := &BatchResult{Failed: make(map[string]error)}
	if len(tokens) == 0 {
		return batch, nil
	}

	if len(tokens) > 1 && !s.settings.SkipMultipleRollConfirmation && s.confirmer != nil {
		ok, err := s.confirmer.Confirm(ctx, len(tokens))
		if err != nil {
			return nil, err
		}
		if !ok {
			batch.Declined = true
			return batch, nil
		}
	}

	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	for _, token := range tokens {
		g.Go(func() error {
			err := s.roll(ctx, rec, token, shiftKey)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warn("save roll failed",
					zap.String("record", rec.ID),
					zap.String("token", token.UUID),
					zap.Error(err))
				batch.Failed[token.UUID] = err
				return nil
			}
			batch.Rolled = append(batch.Rolled, token.UUID)
			return nil
		})
	}
	_ = g.Wait()

	return batch, nil
}

// pending returns the targets the user may roll for that have no result yet.
func (s *service) pending(ctx context.Context, rec *saves.Record, npcOnly bool) []*world.Token {
	var tokens []*world.Token
	for _, uuid := range rec.Targets {
		if _, ok := rec.Result(uuid); ok {
			continue
		}
		token, err := s.directory.Token(ctx, uuid)
		if err != nil {
			continue
		}
		if !token.IsOwner(s.user) {
			continue
		}
		if npcOnly && token.PlayerOwned {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

func (s *service) HandleResult(ctx context.Context, recordID string, result *CheckResult, rollMessage *chat.Message) error {
	if result == nil || result.Degree == nil {
		return nil
	}

	if s.waiter != nil && rollMessage != nil && rollMessage.ID != "" {
		if err := s.waiter.WaitForAnimation(ctx, rollMessage.ID); err != nil {
			s.logger.Debug("dice animation wait failed", zap.String("message", rollMessage.ID), zap.Error(err))
		}
	}

	ctxFlags := rollMessage.Host().Context
	if ctxFlags == nil || ctxFlags.Target == nil || ctxFlags.Target.Token == "" {
		s.logger.Debug("roll message has no target token", zap.String("record", recordID))
		return nil
	}

	return s.records.RecordResult(ctx, recordID, ctxFlags.Target.Token, saves.SaveResult{
		DegreeOfSuccess: *result.Degree,
		RollValue:       result.Total,
	})
}

func (s *service) OnReroll(ctx context.Context, reroll *events.Reroll) error {
	if reroll == nil || reroll.Type != saves.ContextSavingThrow || reroll.Identifier == "" {
		return nil
	}
	if reroll.Message == nil {
		return nil
	}

	rec, err := s.records.Get(ctx, reroll.Identifier)
	if dnderr.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if rec.SourceMessage == "" {
		return nil
	}

	degree := saves.DegreeOfSuccess(reroll.Degree)
	if !degree.Valid() {
		return dnderr.InvalidArgumentf("invalid degree of success %d", reroll.Degree)
	}
	return s.HandleResult(ctx, rec.ID, &CheckResult{
		Degree:  &degree,
		Total:   reroll.Total,
		Natural: reroll.Natural,
	}, reroll.Message)
}
