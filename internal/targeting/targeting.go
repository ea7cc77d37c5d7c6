// Package targeting decides which tokens an action's save applies to.
package targeting

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/saves-helper/internal/scene"
	"github.com/KirkDiggler/saves-helper/internal/world"
)

// SplashRadius is the distance splash damage reaches around its target.
const SplashRadius = 5

// SceneProvider resolves scenes by id
type SceneProvider interface {
	Scene(id string) (*scene.Scene, error)
}

// IsEligible reports whether an actor can be asked for a save: it must expose the
// requested statistic, be a creature, hazard or vehicle, and be alive when ignoreDead is set.
func IsEligible(actor world.Actor, ignoreDead bool, saveStatistic string) bool {
	if actor == nil {
		return false
	}
	if saveStatistic != "" && actor.Statistic(saveStatistic) == nil {
		return false
	}
	if !actor.IsOfType(world.CategoryCreature, world.CategoryHazard, world.CategoryVehicle) {
		return false
	}
	if ignoreDead && actor.IsDead() {
		return false
	}
	return true
}

// Enumerator resolves token references and applies the eligibility rules
type Enumerator struct {
	directory world.Directory
	scenes    SceneProvider
	logger    *zap.Logger
}

// Config holds the dependencies of an Enumerator
type Config struct {
	Directory world.Directory
	Scenes    SceneProvider
	Logger    *zap.Logger
}

// New creates an Enumerator
func New(cfg *Config) *Enumerator {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Directory == nil {
		panic("directory is required")
	}
	if cfg.Scenes == nil {
		panic("scene provider is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Enumerator{
		directory: cfg.Directory,
		scenes:    cfg.Scenes,
		logger:    logger,
	}
}

// FilterTarget applies IsEligible to a token's actor
func (e *Enumerator) FilterTarget(ctx context.Context, token *world.Token, ignoreDead bool, saveStatistic string) bool {
	return IsEligible(world.TokenActor(ctx, e.directory, token), ignoreDead, saveStatistic)
}

// Filter keeps the eligible tokens from uuids, in order and without duplicates.
// Unresolvable references are dropped.
func (e *Enumerator) Filter(ctx context.Context, uuids []string, ignoreDead bool, saveStatistic string) []string {
	seen := make(map[string]bool, len(uuids))
	out := make([]string, 0, len(uuids))
	for _, id := range uuids {
		if seen[id] {
			continue
		}
		seen[id] = true

		token, err := e.directory.Token(ctx, id)
		if err != nil {
			e.logger.Debug("dropping unresolved target", zap.String("token", id), zap.Error(err))
			continue
		}
		if e.FilterTarget(ctx, token, ignoreDead, saveStatistic) {
			out = append(out, id)
		}
	}
	return out
}

// TemplateTargets returns the living eligible tokens under an area template.
func (e *Enumerator) TemplateTargets(ctx context.Context, template *scene.Template, saveStatistic string) ([]string, error) {
	s, err := e.scenes.Scene(template.SceneID)
	if err != nil {
		return nil, err
	}
	return e.Filter(ctx, s.TemplateTokens(template), true, saveStatistic), nil
}

// SplashTargets returns the tokens within splash range of a token, excluding it,
// that can be reached without crossing a wall.
func (e *Enumerator) SplashTargets(ctx context.Context, tokenUUID string) ([]string, error) {
	token, err := e.directory.Token(ctx, tokenUUID)
	if err != nil {
		return nil, err
	}
	s, err := e.scenes.Scene(token.SceneID)
	if err != nil {
		return nil, err
	}
	origin, err := s.Placement(tokenUUID)
	if err != nil {
		return nil, err
	}

	reach := s.UnitsToCells(SplashRadius)
	size := max(origin.Size, 1)
	minCell := scene.Cell{Col: origin.Cell.Col - reach, Row: origin.Cell.Row - reach}
	maxCell := scene.Cell{Col: origin.Cell.Col + size - 1 + reach, Row: origin.Cell.Row + size - 1 + reach}

	var out []string
	for _, id := range s.TokensInArea(minCell, maxCell) {
		if id == tokenUUID {
			continue
		}
		other, err := s.Placement(id)
		if err != nil {
			continue
		}
		if s.Distance(origin, other) > SplashRadius {
			continue
		}
		if s.CollidesMove(s.Center(origin.Cell), s.Center(other.Cell)) {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}
