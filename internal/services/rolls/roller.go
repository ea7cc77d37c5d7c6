package rolls

//go:generate mockgen -destination=mock/mock_roller.go -package=mockrolls -source=roller.go

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/saves-helper/internal/chat"
	"github.com/KirkDiggler/saves-helper/internal/dice"
	"github.com/KirkDiggler/saves-helper/internal/domain/saves"
	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
	"github.com/KirkDiggler/saves-helper/internal/world"
)

// Roll modes
const (
	RollModePublic = "roll"
	RollModeGM     = "gmroll"
)

// CheckResult is an evaluated check. Degree is nil when the roll has no DC to grade against.
type CheckResult struct {
	Degree  *saves.DegreeOfSuccess
	Total   int
	Natural int
}

// Callback receives a finished roll and the message it produced, if any.
type Callback func(ctx context.Context, result *CheckResult, rollMessage *chat.Message) error

// CheckRequest is everything the roll subsystem needs for one saving throw.
type CheckRequest struct {
	Token            *world.Token
	Actor            world.Actor
	Statistic        *world.Statistic
	ItemUUID         string
	OriginActor      string
	DC               int
	SkipDialog       bool
	Identifier       string
	RollMode         string
	CreateMessage    bool
	ExtraRollOptions []string
	Callback         Callback
}

// CheckRoller runs checks. Implementations call req.Callback once the roll is evaluated.
type CheckRoller interface {
	RollCheck(ctx context.Context, req *CheckRequest) error
}

// AnimationWaiter blocks until the dice animation for a message has finished.
type AnimationWaiter interface {
	WaitForAnimation(ctx context.Context, messageID string) error
}

// Confirmer asks the user before rolling for several tokens at once.
type Confirmer interface {
	Confirm(ctx context.Context, count int) (bool, error)
}

// DiceCheckRoller rolls d20 + modifier and grades the total against the DC.
type DiceCheckRoller struct {
	dice  dice.Roller
	store chat.Store
	user  *world.User
	// GMUserIDs receive gmroll messages.
	gmUserIDs []string
}

// DiceCheckRollerConfig configures a DiceCheckRoller
type DiceCheckRollerConfig struct {
	Dice      dice.Roller
	Store     chat.Store
	User      *world.User
	GMUserIDs []string
}

// NewDiceCheckRoller creates a DiceCheckRoller
func NewDiceCheckRoller(cfg *DiceCheckRollerConfig) *DiceCheckRoller {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Store == nil {
		panic("store is required")
	}
	if cfg.User == nil {
		panic("user is required")
	}

	roller := cfg.Dice
	if roller == nil {
		roller = dice.NewRandomRoller()
	}

	return &DiceCheckRoller{
		dice:      roller,
		store:     cfg.Store,
		user:      cfg.User,
		gmUserIDs: cfg.GMUserIDs,
	}
}

// RollCheck implements CheckRoller. The roll message is persisted only when
// req.CreateMessage is set; the callback always receives it.
func (r *DiceCheckRoller) RollCheck(ctx context.Context, req *CheckRequest) error {
	if req == nil || req.Statistic == nil {
		return dnderr.InvalidArgument("statistic is required")
	}

	roll, err := r.dice.Roll(1, 20, req.Statistic.Modifier)
	if err != nil {
		return dnderr.Wrapf(err, "failed to roll %s", req.Statistic.Slug)
	}

	result := &CheckResult{
		Total:   roll.Total,
		Natural: roll.Natural(),
	}
	outcome := ""
	if req.DC > 0 {
		degree := saves.DegreeOfSuccess(dice.CheckDegree(result.Natural, result.Total, req.DC))
		result.Degree = &degree
		outcome = degree.String()
	}

	msg := &chat.Message{
		AuthorID: r.user.ID,
		Content:  fmt.Sprintf("%s save: %d", req.Statistic.Slug, result.Total),
		Flags: map[string]any{
			saves.HostNamespace: map[string]any{
				"context": map[string]any{
					"type":       saves.ContextSavingThrow,
					"identifier": req.Identifier,
					"outcome":    outcome,
					"options":    append([]string{}, req.ExtraRollOptions...),
					"domains":    []string{saves.ContextSavingThrow, req.Statistic.Slug},
					"target":     targetFlags(req),
				},
				"origin": map[string]any{
					"uuid":  req.ItemUUID,
					"actor": req.OriginActor,
				},
			},
		},
	}
	if req.Token != nil {
		msg.Speaker = chat.Speaker{Token: req.Token.UUID, Actor: req.Token.ActorUUID, Alias: req.Token.Name}
	}
	if req.RollMode == RollModeGM {
		msg.Whisper = append([]string{}, r.gmUserIDs...)
	}

	if req.CreateMessage {
		if msg, err = r.store.Create(ctx, msg); err != nil {
			return dnderr.Wrap(err, "failed to post roll message")
		}
	}

	if req.Callback == nil {
		return nil
	}
	return req.Callback(ctx, result, msg)
}

func targetFlags(req *CheckRequest) map[string]any {
	target := map[string]any{}
	if req.Token != nil {
		target["token"] = req.Token.UUID
	}
	if req.Actor != nil {
		target["actor"] = req.Actor.UUID()
	}
	return target
}
