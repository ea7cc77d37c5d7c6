package damage

import (
	"context"

	"github.com/KirkDiggler/saves-helper/internal/dice"
	"github.com/KirkDiggler/saves-helper/internal/domain/saves"
	"github.com/KirkDiggler/saves-helper/internal/render"
)

// Button is one way to apply a roll to a token.
type Button struct {
	Multiplier float64
	LabelKey   string
	// Highlighted marks the button matching the token's basic save result.
	Highlighted bool
}

// TokenButtons are the buttons offered for one token.
type TokenButtons struct {
	TokenUUID      string
	Name           string
	Degree         *saves.DegreeOfSuccess
	AlreadyApplied bool
	ShieldBlock    bool
	Buttons        []Button
}

// RollButtons are the buttons for one roll on a damage message.
type RollButtons struct {
	RollIndex int
	Healing   bool
	// Batch is set when the user may apply to every target at once.
	Batch  bool
	Tokens []*TokenButtons
}

func (s *service) Buttons(ctx context.Context, damageMessageID string) ([]*RollButtons, error) {
	dc, err := s.load(ctx, damageMessageID)
	if err != nil {
		return nil, err
	}
	if dc.flags == nil {
		return nil, nil
	}

	targets := dc.targets()
	if len(targets) == 0 {
		return nil, nil
	}

	var traits saves.HealingTraits
	if s.settings.ApplyHealing {
		traits = dc.healingTraits()
	}
	basic := dc.record != nil && dc.record.SaveInfo != nil && dc.record.SaveInfo.Basic

	var out []*RollButtons
	for index, roll := range dc.message.Rolls {
		rb := &RollButtons{
			RollIndex: index,
			Healing:   roll.HasKind(dice.KindHealing),
		}

		for _, tokenUUID := range targets {
			token, actor := s.resolve(ctx, tokenUUID)
			if token == nil || !token.IsOwner(s.user) {
				continue
			}
			highlightHeal := rb.Healing && saves.CanApplyHealing(actor, traits)

			tb := &TokenButtons{
				TokenUUID:      token.UUID,
				Name:           token.Name,
				AlreadyApplied: dc.applied(token.UUID),
			}
			if result, ok := dc.result(token.UUID); ok {
				degree := result.DegreeOfSuccess
				tb.Degree = &degree
			}
			highlight := func(want saves.DegreeOfSuccess) bool {
				return !highlightHeal && basic && tb.Degree != nil && *tb.Degree == want
			}

			if roll.HasKind(dice.KindDamage) {
				full := render.KeyDamageFull
				if roll.SplashOnly {
					full = render.KeySplash
				}
				tb.ShieldBlock = true
				tb.Buttons = append(tb.Buttons,
					Button{Multiplier: 1, LabelKey: full, Highlighted: highlight(saves.Failure)},
					Button{Multiplier: 0.5, LabelKey: render.KeyDamageHalf, Highlighted: highlight(saves.Success)},
					Button{Multiplier: 2, LabelKey: render.KeyDamageDouble, Highlighted: highlight(saves.CriticalFailure)},
					Button{Multiplier: 3, LabelKey: render.KeyDamageTriple},
				)
			}
			if rb.Healing {
				tb.Buttons = append(tb.Buttons, Button{
					Multiplier:  HealingMultiplier,
					LabelKey:    render.KeyDamageHealing,
					Highlighted: highlightHeal,
				})
			}
			rb.Tokens = append(rb.Tokens, tb)
		}

		rb.Batch = s.user.IsGM() && basic && len(rb.Tokens) > 0
		out = append(out, rb)
	}
	return out, nil
}
