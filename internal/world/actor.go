package world

//go:generate mockgen -destination=mock/mock_actor.go -package=mockworld -source=actor.go

import (
	"context"

	"github.com/KirkDiggler/saves-helper/internal/dice"
)

// Category is the broad kind of an actor.
type Category string

const (
	// CategoryCreature matches every creature category in IsOfType checks.
	CategoryCreature  Category = "creature"
	CategoryCharacter Category = "character"
	CategoryNPC       Category = "npc"
	CategoryFamiliar  Category = "familiar"
	CategoryHazard    Category = "hazard"
	CategoryVehicle   Category = "vehicle"
	CategoryLoot      Category = "loot"
	CategoryParty     Category = "party"
)

// IsCreature reports whether the category counts as a creature.
func (c Category) IsCreature() bool {
	switch c {
	case CategoryCharacter, CategoryNPC, CategoryFamiliar:
		return true
	}
	return false
}

// ModeOfBeing decides which healing traits can affect an actor.
type ModeOfBeing string

const (
	ModeLiving    ModeOfBeing = "living"
	ModeUndead    ModeOfBeing = "undead"
	ModeConstruct ModeOfBeing = "construct"
	ModeObject    ModeOfBeing = "object"
)

// Alliance groups actors into sides.
type Alliance string

const (
	AllianceParty      Alliance = "party"
	AllianceOpposition Alliance = "opposition"
)

// Statistic is a named modifier with its derived DC, e.g. "reflex" or "spell-dc".
type Statistic struct {
	Slug     string
	Modifier int
	DC       int
}

// Affects selects which side of an interaction an ephemeral effect lands on.
type Affects string

const (
	AffectsTarget Affects = "target"
	AffectsOrigin Affects = "origin"
)

// EffectContext is what an effect generator is tested against.
type EffectContext struct {
	Test        []string
	Resolvables map[string]string
}

// EffectGenerator produces an effect when its predicate matches, or nil.
type EffectGenerator func(ctx context.Context, ec *EffectContext) (*Effect, error)

// EffectOrigin records who an ephemeral effect came from and landed on.
type EffectOrigin struct {
	OriginActor string
	TargetActor string
}

// Effect is a transient modifier applied to a contextual clone.
type Effect struct {
	Type        string
	Slug        string
	Name        string
	RollOptions []string
	Resistances map[string]int
	Weaknesses  map[string]int
	Context     *EffectOrigin
	Unlimited   bool
}

// DamageValue is either an evaluated roll or a flat amount; negative flat amounts heal.
type DamageValue struct {
	Roll *dice.DamageRoll
	Flat int
}

// Total returns the raw amount before any immunity, weakness or resistance.
func (v DamageValue) Total() int {
	if v.Roll != nil {
		return v.Roll.Total()
	}
	return v.Flat
}

// ApplyDamageParams is the contract of an actor's damage application routine.
type ApplyDamageParams struct {
	Damage             DamageValue
	Token              *Token
	ItemUUID           string
	SkipIWR            bool
	RollOptions        []string
	ShieldBlockRequest bool
	Outcome            string
}

// DamageResult reports what an application did.
type DamageResult struct {
	Applied   int
	HitPoints int
}

// Actor is the slice of the host's actor model this module consumes.
type Actor interface {
	UUID() string
	Name() string
	Category() Category
	IsOfType(categories ...Category) bool
	IsDead() bool
	Statistic(slug string) *Statistic
	ModeOfBeing() ModeOfBeing
	HasTrait(trait string) bool
	Alliance() Alliance
	RollOptions(domains []string) []string
	SelfRollOptions(prefix string) []string
	EphemeralEffects(domain string, affects Affects) []EffectGenerator
	ContextualClone(rollOptions []string, effects []*Effect) Actor
	ApplyDamage(ctx context.Context, params *ApplyDamageParams) (*DamageResult, error)
}
