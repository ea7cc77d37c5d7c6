package testutils

import (
	"github.com/KirkDiggler/saves-helper/internal/chat"
	"github.com/KirkDiggler/saves-helper/internal/scene"
	"github.com/KirkDiggler/saves-helper/internal/uuid"
	"github.com/KirkDiggler/saves-helper/internal/world"
)

// TestSceneID is the scene every fixture token is placed on
const TestSceneID = "scene1"

// CreateTestCreature creates an NPC with all three saves at the given modifier
func CreateTestCreature(id, name string, hp, saveModifier int) *world.CreatureConfig {
	return &world.CreatureConfig{
		UUID:      "Actor." + id,
		Name:      name,
		HitPoints: hp,
		Statistics: []*world.Statistic{
			{Slug: "fortitude", Modifier: saveModifier, DC: 10 + saveModifier},
			{Slug: "reflex", Modifier: saveModifier, DC: 10 + saveModifier},
			{Slug: "will", Modifier: saveModifier, DC: 10 + saveModifier},
		},
		Alliance: world.AllianceOpposition,
	}
}

// CreateTestCharacter creates a player character with a spell DC
func CreateTestCharacter(id, name string, hp, spellDC int) *world.CreatureConfig {
	cfg := CreateTestCreature(id, name, hp, 8)
	cfg.Category = world.CategoryCharacter
	cfg.Alliance = world.AllianceParty
	cfg.Statistics = append(cfg.Statistics, &world.Statistic{Slug: "spell", Modifier: spellDC - 10, DC: spellDC})
	return cfg
}

// World bundles the in-memory collaborators a service test needs.
type World struct {
	Directory *world.MemoryDirectory
	Scenes    *scene.Registry
	Scene     *scene.Scene
	Store     *chat.MemoryStore
}

// NewWorld creates an empty world with one 5-unit grid scene and a store that
// hands out msg1, msg2, ... ids.
func NewWorld() *World {
	s := scene.New(&scene.Config{ID: TestSceneID})
	scenes := scene.NewRegistry()
	scenes.Add(s)

	return &World{
		Directory: world.NewMemoryDirectory(),
		Scenes:    scenes,
		Scene:     s,
		Store: chat.NewMemoryStore(&chat.MemoryStoreConfig{
			UUIDGenerator: uuid.NewSequentialGenerator("msg"),
		}),
	}
}

// AddToken registers the creature, a token for it and places the token at cell.
func (w *World) AddToken(tokenID string, cfg *world.CreatureConfig, cell scene.Cell) (*world.Token, *world.Creature) {
	creature := world.NewCreature(cfg)
	w.Directory.AddActor(creature)

	token := &world.Token{
		UUID:        world.TokenUUID(TestSceneID, tokenID),
		SceneID:     TestSceneID,
		Name:        cfg.Name,
		ActorUUID:   cfg.UUID,
		PlayerOwned: cfg.Category == world.CategoryCharacter,
	}
	w.Directory.AddToken(token)
	w.Scene.PlaceToken(token.UUID, cell, 1)
	return token, creature
}
