package dnd5e

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"

	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
	"github.com/KirkDiggler/saves-helper/internal/spells"
)

// UUIDPrefix is prepended to SRD spell keys to form spell references,
// e.g. "Compendium.srd.spells.fireball".
const UUIDPrefix = "Compendium.srd.spells."

// spellAPI is the part of the SRD API client this package calls.
type spellAPI interface {
	GetSpell(key string) (*apiEntities.Spell, error)
	ListSpells(input *dnd5e.ListSpellsInput) ([]*apiEntities.ReferenceItem, error)
}

type client struct {
	client spellAPI

	mu    sync.RWMutex
	cache map[string]*spells.Spell
}

// Config configures the API client
type Config struct {
	HttpClient *http.Client
}

// New creates a Client against the public API
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("cfg is required")
	}

	dndClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client: cfg.HttpClient,
	})
	if err != nil {
		return nil, err
	}

	return newClient(dndClient), nil
}

func newClient(api spellAPI) *client {
	return &client{
		client: api,
		cache:  make(map[string]*spells.Spell),
	}
}

// SpellUUID builds the reference for an SRD spell key
func SpellUUID(key string) string {
	return UUIDPrefix + key
}

// Spell implements spells.Catalog. References outside the SRD prefix are not found.
func (c *client) Spell(_ context.Context, uuid string) (*spells.Spell, error) {
	key, ok := strings.CutPrefix(uuid, UUIDPrefix)
	if !ok || key == "" {
		return nil, dnderr.NotFoundf("spell %s not found", uuid)
	}
	return c.GetSpell(key)
}

// GetSpell retrieves a spell by key. Results are cached for the life of the client.
func (c *client) GetSpell(key string) (*spells.Spell, error) {
	c.mu.RLock()
	cached, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	apiSpell, err := c.client.GetSpell(key)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get spell %s", key)
	}
	if apiSpell == nil {
		return nil, dnderr.NotFoundf("spell %s not found", key)
	}

	spell := convertSpell(apiSpell)

	c.mu.Lock()
	c.cache[key] = spell
	c.mu.Unlock()
	return spell, nil
}

// ListSpellKeysByClass lists the SRD keys of a class's spells
func (c *client) ListSpellKeysByClass(classKey string) ([]string, error) {
	refs, err := c.client.ListSpells(&dnd5e.ListSpellsInput{
		Class: classKey,
	})
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to list spells for class %s", classKey)
	}

	keys := make([]string, 0, len(refs))
	for _, ref := range refs {
		keys = append(keys, ref.Key)
	}
	return keys, nil
}
