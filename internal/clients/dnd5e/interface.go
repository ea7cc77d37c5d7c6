package dnd5e

//go:generate mockgen -destination=mock/mock_client.go -package=mockdnd5e . Client

import (
	"context"

	"github.com/KirkDiggler/saves-helper/internal/spells"
)

// Client resolves spells from the D&D 5e SRD API and implements spells.Catalog.
type Client interface {
	Spell(ctx context.Context, uuid string) (*spells.Spell, error)
	GetSpell(key string) (*spells.Spell, error)
	ListSpellKeysByClass(classKey string) ([]string, error)
}
