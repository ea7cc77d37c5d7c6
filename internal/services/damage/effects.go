package damage

import (
	"context"

	"github.com/KirkDiggler/saves-helper/internal/world"
)

// Damage application domains
const (
	DomainDamageReceived  = "damage-received"
	DomainHealingReceived = "healing-received"
)

// EphemeralInput describes one side of an interaction to resolve ephemeral effects for.
type EphemeralInput struct {
	Affects world.Affects
	Origin  world.Actor
	Target  world.Actor
	Item    *world.Item
	Domains []string
	Options []string
}

// ExtractEphemeralEffects runs the effect generators one actor contributes to the
// other for the domains. Generators see the caller's options plus both actors' own
// options. Nothing is returned unless both actors are known.
func ExtractEphemeralEffects(ctx context.Context, input *EphemeralInput) ([]*world.Effect, error) {
	if input == nil || input.Origin == nil || input.Target == nil {
		return nil, nil
	}

	from, to := input.Origin, input.Target
	if input.Affects != world.AffectsTarget {
		from, to = to, from
	}

	test := append([]string{}, input.Options...)
	test = append(test, from.RollOptions(input.Domains)...)
	test = append(test, to.SelfRollOptions(string(input.Affects))...)

	resolvables := map[string]string{}
	if input.Item != nil {
		if input.Item.IsOfType("spell") {
			resolvables["spell"] = input.Item.UUID
		} else {
			resolvables["weapon"] = input.Item.UUID
		}
	}

	var effects []*world.Effect
	for _, domain := range input.Domains {
		for _, generate := range from.EphemeralEffects(domain, input.Affects) {
			effect, err := generate(ctx, &world.EffectContext{Test: test, Resolvables: resolvables})
			if err != nil {
				return nil, err
			}
			if effect == nil {
				continue
			}
			effect.Context = &world.EffectOrigin{
				OriginActor: from.UUID(),
				TargetActor: to.UUID(),
			}
			if effect.Type == "effect" {
				effect.Unlimited = true
			}
			effects = append(effects, effect)
		}
	}
	return effects, nil
}
