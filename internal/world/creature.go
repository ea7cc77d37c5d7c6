package world

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

type hitPoints struct {
	mu      sync.Mutex
	value   int
	max     int
	history []*ApplyDamageParams
}

// CreatureConfig describes a Creature
type CreatureConfig struct {
	UUID           string
	Name           string
	Category       Category
	HitPoints      int
	MaxHitPoints   int
	Statistics     []*Statistic
	ModeOfBeing    ModeOfBeing
	Traits         []string
	Alliance       Alliance
	Resistances    map[string]int
	Weaknesses     map[string]int
	Immunities     []string
	ShieldHardness int
	Ephemeral      map[string]map[Affects][]EffectGenerator
}

// Creature is an in-process Actor with hit points and simple IWR.
// Contextual clones share hit points with the creature they were cloned from.
type Creature struct {
	uuid           string
	name           string
	category       Category
	statistics     map[string]*Statistic
	mode           ModeOfBeing
	traits         []string
	alliance       Alliance
	resistances    map[string]int
	weaknesses     map[string]int
	immunities     []string
	shieldHardness int
	ephemeral      map[string]map[Affects][]EffectGenerator
	extraOptions   []string
	effects        []*Effect
	hp             *hitPoints
}

// NewCreature creates a Creature
func NewCreature(cfg *CreatureConfig) *Creature {
	if cfg == nil {
		panic("creature config is required")
	}

	maxHP := cfg.MaxHitPoints
	if maxHP == 0 {
		maxHP = cfg.HitPoints
	}
	category := cfg.Category
	if category == "" {
		category = CategoryNPC
	}
	mode := cfg.ModeOfBeing
	if mode == "" {
		mode = ModeLiving
	}

	stats := make(map[string]*Statistic, len(cfg.Statistics))
	for _, stat := range cfg.Statistics {
		stats[stat.Slug] = stat
	}

	return &Creature{
		uuid:           cfg.UUID,
		name:           cfg.Name,
		category:       category,
		statistics:     stats,
		mode:           mode,
		traits:         slices.Clone(cfg.Traits),
		alliance:       cfg.Alliance,
		resistances:    cfg.Resistances,
		weaknesses:     cfg.Weaknesses,
		immunities:     cfg.Immunities,
		shieldHardness: cfg.ShieldHardness,
		ephemeral:      cfg.Ephemeral,
		hp:             &hitPoints{value: cfg.HitPoints, max: maxHP},
	}
}

// UUID returns the actor reference
func (c *Creature) UUID() string {
	return c.uuid
}

// Name returns the display name
func (c *Creature) Name() string {
	return c.name
}

// Category returns the actor category
func (c *Creature) Category() Category {
	return c.category
}

// ModeOfBeing returns whether the creature is living, undead, a construct or an object
func (c *Creature) ModeOfBeing() ModeOfBeing {
	return c.mode
}

// Alliance returns the creature's side
func (c *Creature) Alliance() Alliance {
	return c.alliance
}

// IsOfType reports whether the creature's category is any of categories
func (c *Creature) IsOfType(categories ...Category) bool {
	for _, category := range categories {
		if category == c.category || (category == CategoryCreature && c.category.IsCreature()) {
			return true
		}
	}
	return false
}

// IsDead reports whether hit points have reached zero
func (c *Creature) IsDead() bool {
	c.hp.mu.Lock()
	defer c.hp.mu.Unlock()
	return c.hp.max > 0 && c.hp.value <= 0
}

// HitPoints returns current hit points
func (c *Creature) HitPoints() int {
	c.hp.mu.Lock()
	defer c.hp.mu.Unlock()
	return c.hp.value
}

// History returns every application made against the creature or its clones
func (c *Creature) History() []*ApplyDamageParams {
	c.hp.mu.Lock()
	defer c.hp.mu.Unlock()
	return slices.Clone(c.hp.history)
}

// Statistic returns the named statistic or nil
func (c *Creature) Statistic(slug string) *Statistic {
	return c.statistics[slug]
}

// HasTrait reports whether the creature has the trait
func (c *Creature) HasTrait(trait string) bool {
	return slices.Contains(c.traits, trait)
}

func (c *Creature) selfOptions() []string {
	options := []string{
		fmt.Sprintf("mode:%s", c.mode),
		fmt.Sprintf("type:%s", c.category),
	}
	if c.alliance != "" {
		options = append(options, fmt.Sprintf("alliance:%s", c.alliance))
	}
	for _, trait := range c.traits {
		options = append(options, fmt.Sprintf("trait:%s", trait))
	}
	for _, effect := range c.effects {
		options = append(options, effect.RollOptions...)
	}
	return options
}

// SelfRollOptions returns the creature's own options under prefix, e.g. "target:trait:undead"
func (c *Creature) SelfRollOptions(prefix string) []string {
	if prefix == "" {
		prefix = "self"
	}
	options := []string{prefix}
	for _, opt := range c.selfOptions() {
		options = append(options, prefix+":"+opt)
	}
	return options
}

// RollOptions returns self options plus contextual options for the domains
func (c *Creature) RollOptions(domains []string) []string {
	options := c.SelfRollOptions("self")
	for _, domain := range domains {
		options = append(options, "domain:"+domain)
	}
	return append(options, c.extraOptions...)
}

// EphemeralEffects returns the generators registered for the domain
func (c *Creature) EphemeralEffects(domain string, affects Affects) []EffectGenerator {
	if c.ephemeral == nil {
		return nil
	}
	return c.ephemeral[domain][affects]
}

// ContextualClone returns a clone carrying extra roll options and effects
func (c *Creature) ContextualClone(rollOptions []string, effects []*Effect) Actor {
	clone := *c
	clone.extraOptions = append(slices.Clone(c.extraOptions), rollOptions...)
	clone.effects = append(slices.Clone(c.effects), effects...)
	return &clone
}

func (c *Creature) resistance(damageType string) int {
	total := c.resistances[damageType]
	for _, effect := range c.effects {
		total += effect.Resistances[damageType]
	}
	return total
}

func (c *Creature) weakness(damageType string) int {
	total := c.weaknesses[damageType]
	for _, effect := range c.effects {
		total += effect.Weaknesses[damageType]
	}
	return total
}

func (c *Creature) adjust(params *ApplyDamageParams) int {
	roll := params.Damage.Roll
	if roll == nil || params.SkipIWR {
		return params.Damage.Total()
	}

	amount := 0
	for _, inst := range roll.Instances {
		if inst.Type != "" && slices.Contains(c.immunities, inst.Type) {
			continue
		}
		value := inst.Total
		if inst.Type != "" {
			value += c.weakness(inst.Type)
			value -= c.resistance(inst.Type)
		}
		amount += max(value, 0)
	}
	return amount
}

// ApplyDamage changes hit points. Negative amounts heal up to maximum.
func (c *Creature) ApplyDamage(_ context.Context, params *ApplyDamageParams) (*DamageResult, error) {
	if params == nil {
		return nil, fmt.Errorf("damage params are required")
	}

	amount := c.adjust(params)
	if amount > 0 && params.ShieldBlockRequest && c.shieldHardness > 0 {
		amount = max(amount-c.shieldHardness, 0)
	}

	c.hp.mu.Lock()
	defer c.hp.mu.Unlock()

	before := c.hp.value
	if amount < 0 {
		c.hp.value = min(c.hp.value-amount, c.hp.max)
	} else {
		c.hp.value = max(c.hp.value-amount, 0)
	}
	c.hp.history = append(c.hp.history, params)

	return &DamageResult{
		Applied:   before - c.hp.value,
		HitPoints: c.hp.value,
	}, nil
}
