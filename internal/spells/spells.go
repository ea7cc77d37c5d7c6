// Package spells resolves spell definitions and their save defenses.
package spells

//go:generate mockgen -destination=mock/mock_catalog.go -package=mockspells -source=spells.go

import (
	"context"
	"slices"
	"sync"

	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
)

// DefaultSpellcasting is the statistic a caster's spell DC comes from.
const DefaultSpellcasting = "spell"

// SaveDefense is the save a spell demands.
type SaveDefense struct {
	Statistic string
	Basic     bool
}

// Variant is an overlay that replaces the spell's defense, e.g. a heightened or alternate mode.
// A nil Defense means the variant has no save.
type Variant struct {
	ID      string
	Name    string
	Defense *SaveDefense
}

// Spell is the slice of a spell definition the saves detector needs.
type Spell struct {
	UUID    string
	Name    string
	Traits  []string
	Defense *SaveDefense
	// Variants are keyed by overlay id. A spell with variants defers detection
	// until one is chosen.
	Variants []*Variant
	// Spellcasting names the caster statistic supplying the DC.
	Spellcasting string
}

// HasVariants reports whether the spell offers override variants
func (s *Spell) HasVariants() bool {
	return s != nil && len(s.Variants) > 0
}

// Variant finds an override variant by overlay id
func (s *Spell) Variant(overlayID string) *Variant {
	if s == nil {
		return nil
	}
	for _, v := range s.Variants {
		if v.ID == overlayID {
			return v
		}
	}
	return nil
}

// SpellcastingStatistic returns the statistic slug for the caster's DC
func (s *Spell) SpellcastingStatistic() string {
	if s == nil || s.Spellcasting == "" {
		return DefaultSpellcasting
	}
	return s.Spellcasting
}

// HasTrait reports whether the spell carries a trait
func (s *Spell) HasTrait(trait string) bool {
	return s != nil && slices.Contains(s.Traits, trait)
}

// ResolveDefense returns the defense in effect for the chosen overlays. The first
// overlay selects the variant; an unknown overlay or a spell with variants and no
// overlay chosen yields no defense.
func (s *Spell) ResolveDefense(overlays []string) *SaveDefense {
	if s == nil {
		return nil
	}
	if !s.HasVariants() {
		return s.Defense
	}
	if len(overlays) == 0 {
		return nil
	}
	variant := s.Variant(overlays[0])
	if variant == nil {
		return nil
	}
	return variant.Defense
}

// Catalog looks up spells by reference.
type Catalog interface {
	Spell(ctx context.Context, uuid string) (*Spell, error)
}

// MemoryCatalog is a Catalog backed by a map
type MemoryCatalog struct {
	mu     sync.RWMutex
	spells map[string]*Spell
}

// NewMemoryCatalog creates a catalog holding spells
func NewMemoryCatalog(spells ...*Spell) *MemoryCatalog {
	c := &MemoryCatalog{spells: make(map[string]*Spell, len(spells))}
	for _, s := range spells {
		c.spells[s.UUID] = s
	}
	return c
}

// Add registers or replaces a spell
func (c *MemoryCatalog) Add(spell *Spell) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.spells[spell.UUID] = spell
}

// Spell implements Catalog
func (c *MemoryCatalog) Spell(_ context.Context, uuid string) (*Spell, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	spell, ok := c.spells[uuid]
	if !ok {
		return nil, dnderr.NotFoundf("spell %s not found", uuid)
	}
	return spell, nil
}

// ChainCatalog asks each catalog in turn and returns the first hit.
type ChainCatalog []Catalog

// Spell implements Catalog
func (c ChainCatalog) Spell(ctx context.Context, uuid string) (*Spell, error) {
	for _, catalog := range c {
		spell, err := catalog.Spell(ctx, uuid)
		if err == nil {
			return spell, nil
		}
		if !dnderr.IsNotFound(err) {
			return nil, err
		}
	}
	return nil, dnderr.NotFoundf("spell %s not found", uuid)
}
