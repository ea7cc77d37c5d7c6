package saves

import "github.com/KirkDiggler/saves-helper/internal/world"

// HealingTraits are the healing affinities read off a roll's options.
type HealingTraits struct {
	Vitality bool
	Void     bool
	Spirit   bool
	Mental   bool
}

// Any reports whether at least one affinity is present
func (h HealingTraits) Any() bool {
	return h.Vitality || h.Void || h.Spirit || h.Mental
}

// HealingTraitsFromOptions reads affinities from roll options
func HealingTraitsFromOptions(options []string) HealingTraits {
	var traits HealingTraits
	for _, opt := range options {
		switch opt {
		case "vitality":
			traits.Vitality = true
		case "void":
			traits.Void = true
		case "spirit":
			traits.Spirit = true
		case "mental":
			traits.Mental = true
		}
	}
	return traits
}

// CanApplyHealing reports whether a healing effect with these traits affects the actor.
func CanApplyHealing(actor world.Actor, traits HealingTraits) bool {
	if actor == nil {
		return false
	}

	mode := actor.ModeOfBeing()
	switch {
	case traits.Vitality && mode == world.ModeLiving:
		return true
	case traits.Void && mode == world.ModeUndead:
		return true
	case traits.Spirit && mode != world.ModeConstruct && mode != world.ModeObject:
		return true
	case traits.Mental && !actor.HasTrait("mindless"):
		return true
	}
	return false
}
