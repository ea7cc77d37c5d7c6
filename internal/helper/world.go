package helper

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/saves-helper/internal/scene"
	"github.com/KirkDiggler/saves-helper/internal/spells"
	"github.com/KirkDiggler/saves-helper/internal/world"
)

// World is the shared state every client of a table reads.
type World struct {
	Directory *world.MemoryDirectory
	Scenes    *scene.Registry
	// Spells are the table's own spell definitions, consulted before any remote catalog.
	Spells *spells.MemoryCatalog
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		Directory: world.NewMemoryDirectory(),
		Scenes:    scene.NewRegistry(),
		Spells:    spells.NewMemoryCatalog(),
	}
}

type worldFile struct {
	Scenes []sceneSeed `yaml:"scenes"`
	Actors []actorSeed `yaml:"actors"`
	Items  []itemSeed  `yaml:"items"`
	Tokens []tokenSeed `yaml:"tokens"`
	Spells []spellSeed `yaml:"spells"`
}

type spellSeed struct {
	UUID         string        `yaml:"uuid"`
	Name         string        `yaml:"name"`
	Traits       []string      `yaml:"traits"`
	Save         string        `yaml:"save"`
	Basic        bool          `yaml:"basic"`
	Spellcasting string        `yaml:"spellcasting"`
	Variants     []variantSeed `yaml:"variants"`
}

type variantSeed struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Save  string `yaml:"save"`
	Basic bool   `yaml:"basic"`
}

func defense(save string, basic bool) *spells.SaveDefense {
	if save == "" {
		return nil
	}
	return &spells.SaveDefense{Statistic: save, Basic: basic}
}

type sceneSeed struct {
	ID           string     `yaml:"id"`
	GridSize     float64    `yaml:"gridSize"`
	GridDistance float64    `yaml:"gridDistance"`
	Walls        []wallSeed `yaml:"walls"`
}

type wallSeed struct {
	From           [2]float64 `yaml:"from"`
	To             [2]float64 `yaml:"to"`
	BlocksMovement bool       `yaml:"blocksMovement"`
}

type actorSeed struct {
	UUID         string         `yaml:"uuid"`
	Name         string         `yaml:"name"`
	Category     string         `yaml:"category"`
	HitPoints    int            `yaml:"hp"`
	MaxHitPoints int            `yaml:"maxHp"`
	Statistics   map[string]int `yaml:"statistics"`
	ModeOfBeing  string         `yaml:"modeOfBeing"`
	Traits       []string       `yaml:"traits"`
	Alliance     string         `yaml:"alliance"`
	Resistances  map[string]int `yaml:"resistances"`
	Weaknesses   map[string]int `yaml:"weaknesses"`
	Immunities   []string       `yaml:"immunities"`
}

type itemSeed struct {
	UUID   string   `yaml:"uuid"`
	Name   string   `yaml:"name"`
	Type   string   `yaml:"type"`
	Actor  string   `yaml:"actor"`
	Traits []string `yaml:"traits"`
}

type tokenSeed struct {
	ID     string   `yaml:"id"`
	Scene  string   `yaml:"scene"`
	Actor  string   `yaml:"actor"`
	Name   string   `yaml:"name"`
	Col    int      `yaml:"col"`
	Row    int      `yaml:"row"`
	Size   int      `yaml:"size"`
	Hidden bool     `yaml:"hidden"`
	Owners []string `yaml:"owners"`
	Image  string   `yaml:"image"`
}

// LoadWorldFile reads a world description from a YAML file
func LoadWorldFile(path string) (*World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open world file: %w", err)
	}
	defer f.Close()

	return LoadWorld(f)
}

// LoadWorld reads a world description. Statistics map a slug to its modifier;
// DCs are 10 + modifier.
func LoadWorld(r io.Reader) (*World, error) {
	var file worldFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode world: %w", err)
	}

	w := NewWorld()
	for _, seed := range file.Scenes {
		if seed.ID == "" {
			return nil, fmt.Errorf("scene without an id")
		}
		s := scene.New(&scene.Config{ID: seed.ID, GridSize: seed.GridSize, GridDistance: seed.GridDistance})
		for _, wall := range seed.Walls {
			s.AddWall(scene.Wall{
				A:              scene.Point{X: wall.From[0], Y: wall.From[1]},
				B:              scene.Point{X: wall.To[0], Y: wall.To[1]},
				BlocksMovement: wall.BlocksMovement,
			})
		}
		w.Scenes.Add(s)
	}

	actors := make(map[string]*actorSeed, len(file.Actors))
	for i := range file.Actors {
		seed := &file.Actors[i]
		if seed.UUID == "" {
			return nil, fmt.Errorf("actor %q without a uuid", seed.Name)
		}
		actors[seed.UUID] = seed
		w.Directory.AddActor(world.NewCreature(seed.config()))
	}

	for _, seed := range file.Items {
		w.Directory.AddItem(&world.Item{
			UUID:      seed.UUID,
			Name:      seed.Name,
			Type:      seed.Type,
			ActorUUID: seed.Actor,
			Traits:    seed.Traits,
		})
	}

	for _, seed := range file.Tokens {
		s, err := w.Scenes.Scene(seed.Scene)
		if err != nil {
			return nil, fmt.Errorf("token %s: %w", seed.ID, err)
		}
		actor, ok := actors[seed.Actor]
		if !ok {
			return nil, fmt.Errorf("token %s references unknown actor %s", seed.ID, seed.Actor)
		}

		name := seed.Name
		if name == "" {
			name = actor.Name
		}
		token := &world.Token{
			UUID:        world.TokenUUID(seed.Scene, seed.ID),
			SceneID:     seed.Scene,
			Name:        name,
			Hidden:      seed.Hidden,
			PlayerOwned: world.Category(actor.Category) == world.CategoryCharacter,
			Owners:      seed.Owners,
			ActorUUID:   seed.Actor,
			Image:       seed.Image,
			Scale:       1,
		}
		w.Directory.AddToken(token)
		s.PlaceToken(token.UUID, scene.Cell{Col: seed.Col, Row: seed.Row}, max(seed.Size, 1))
	}

	for _, seed := range file.Spells {
		spell := &spells.Spell{
			UUID:         seed.UUID,
			Name:         seed.Name,
			Traits:       seed.Traits,
			Defense:      defense(seed.Save, seed.Basic),
			Spellcasting: seed.Spellcasting,
		}
		for _, v := range seed.Variants {
			spell.Variants = append(spell.Variants, &spells.Variant{ID: v.ID, Name: v.Name, Defense: defense(v.Save, v.Basic)})
		}
		w.Spells.Add(spell)
	}

	return w, nil
}

func (a *actorSeed) config() *world.CreatureConfig {
	cfg := &world.CreatureConfig{
		UUID:         a.UUID,
		Name:         a.Name,
		Category:     world.Category(a.Category),
		HitPoints:    a.HitPoints,
		MaxHitPoints: a.MaxHitPoints,
		ModeOfBeing:  world.ModeOfBeing(a.ModeOfBeing),
		Traits:       a.Traits,
		Alliance:     world.Alliance(a.Alliance),
		Resistances:  a.Resistances,
		Weaknesses:   a.Weaknesses,
		Immunities:   a.Immunities,
	}
	for slug, modifier := range a.Statistics {
		cfg.Statistics = append(cfg.Statistics, &world.Statistic{Slug: slug, Modifier: modifier, DC: 10 + modifier})
	}
	return cfg
}
