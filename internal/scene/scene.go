// Package scene is a square-grid scene: token placement with a bucketed spatial
// index, movement-blocking walls and area templates.
package scene

import (
	"math"
	"slices"
	"sync"

	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
)

const bucketSize = 4

type bucketKey struct {
	col int
	row int
}

func bucketOf(c Cell) bucketKey {
	return bucketKey{col: floorDiv(c.Col, bucketSize), row: floorDiv(c.Row, bucketSize)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Placement is where a token sits. Size is its footprint in cells per side.
type Placement struct {
	TokenUUID string
	Cell      Cell
	Size      int
}

// Cells returns every cell the token covers
func (p *Placement) Cells() []Cell {
	size := max(p.Size, 1)
	cells := make([]Cell, 0, size*size)
	for dc := 0; dc < size; dc++ {
		for dr := 0; dr < size; dr++ {
			cells = append(cells, Cell{Col: p.Cell.Col + dc, Row: p.Cell.Row + dr})
		}
	}
	return cells
}

// Config describes a scene
type Config struct {
	ID string
	// GridSize is pixels per cell.
	GridSize float64
	// GridDistance is distance units per cell.
	GridDistance float64
}

// Scene holds tokens, walls and templates on a square grid.
type Scene struct {
	id           string
	gridSize     float64
	gridDistance float64

	mu        sync.RWMutex
	tokens    map[string]*Placement
	index     map[bucketKey][]string
	maxSize   int
	walls     []Wall
	templates map[string]*Template
}

// New creates an empty scene
func New(cfg *Config) *Scene {
	if cfg == nil {
		panic("scene config is required")
	}
	s := &Scene{
		id:           cfg.ID,
		gridSize:     cfg.GridSize,
		gridDistance: cfg.GridDistance,
		tokens:       make(map[string]*Placement),
		index:        make(map[bucketKey][]string),
		maxSize:      1,
		templates:    make(map[string]*Template),
	}
	if s.gridSize <= 0 {
		s.gridSize = 100
	}
	if s.gridDistance <= 0 {
		s.gridDistance = 5
	}
	return s
}

// ID returns the scene id
func (s *Scene) ID() string {
	return s.id
}

// GridDistance returns distance units per cell
func (s *Scene) GridDistance() float64 {
	return s.gridDistance
}

// UnitsToCells converts a distance to whole grid cells, rounding down.
func (s *Scene) UnitsToCells(distance float64) int {
	return int(math.Floor(distance/s.gridDistance + 1e-9))
}

// Center returns the pixel center of a cell
func (s *Scene) Center(c Cell) Point {
	return Point{
		X: (float64(c.Col) + 0.5) * s.gridSize,
		Y: (float64(c.Row) + 0.5) * s.gridSize,
	}
}

// Corner returns the grid intersection at the top left of a cell
func (s *Scene) Corner(c Cell) Point {
	return Point{X: float64(c.Col) * s.gridSize, Y: float64(c.Row) * s.gridSize}
}

// CellAt returns the cell containing a point
func (s *Scene) CellAt(p Point) Cell {
	return Cell{
		Col: int(math.Floor(p.X / s.gridSize)),
		Row: int(math.Floor(p.Y / s.gridSize)),
	}
}

// PlaceToken puts or moves a token
func (s *Scene) PlaceToken(tokenUUID string, cell Cell, size int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(tokenUUID)

	size = max(size, 1)
	s.tokens[tokenUUID] = &Placement{TokenUUID: tokenUUID, Cell: cell, Size: size}
	key := bucketOf(cell)
	s.index[key] = append(s.index[key], tokenUUID)
	s.maxSize = max(s.maxSize, size)
}

// RemoveToken takes a token off the scene
func (s *Scene) RemoveToken(tokenUUID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(tokenUUID)
}

func (s *Scene) removeLocked(tokenUUID string) {
	placement, ok := s.tokens[tokenUUID]
	if !ok {
		return
	}
	key := bucketOf(placement.Cell)
	s.index[key] = slices.DeleteFunc(s.index[key], func(id string) bool { return id == tokenUUID })
	if len(s.index[key]) == 0 {
		delete(s.index, key)
	}
	delete(s.tokens, tokenUUID)
}

// Placement returns where a token sits
func (s *Scene) Placement(tokenUUID string) (*Placement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	placement, ok := s.tokens[tokenUUID]
	if !ok {
		return nil, dnderr.NotFoundf("token %s is not on scene %s", tokenUUID, s.id)
	}
	copied := *placement
	return &copied, nil
}

// AddWall adds a wall segment
func (s *Scene) AddWall(wall Wall) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.walls = append(s.walls, wall)
}

// CollidesMove reports whether moving in a straight line from a to b crosses a
// movement-blocking wall.
func (s *Scene) CollidesMove(a, b Point) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, wall := range s.walls {
		if !wall.BlocksMovement {
			continue
		}
		if SegmentsIntersect(a, b, wall.A, wall.B) {
			return true
		}
	}
	return false
}

// TokensInArea returns tokens with any covered cell inside the inclusive cell
// rectangle, found through the bucket index.
func (s *Scene) TokensInArea(minCell, maxCell Cell) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// a large token anchored up-left of the area can still reach into it
	reach := s.maxSize - 1
	from := bucketOf(Cell{Col: minCell.Col - reach, Row: minCell.Row - reach})
	to := bucketOf(maxCell)

	var found []string
	for bc := from.col; bc <= to.col; bc++ {
		for br := from.row; br <= to.row; br++ {
			for _, id := range s.index[bucketKey{col: bc, row: br}] {
				p := s.tokens[id]
				size := max(p.Size, 1)
				if p.Cell.Col+size-1 < minCell.Col || p.Cell.Col > maxCell.Col {
					continue
				}
				if p.Cell.Row+size-1 < minCell.Row || p.Cell.Row > maxCell.Row {
					continue
				}
				found = append(found, id)
			}
		}
	}
	slices.Sort(found)
	return found
}

// Distance returns the measured distance between the nearest covered cells of two tokens.
func (s *Scene) Distance(a, b *Placement) float64 {
	best := math.MaxInt
	for _, ca := range a.Cells() {
		for _, cb := range b.Cells() {
			best = min(best, MeasureCells(ca, cb))
		}
	}
	return float64(best) * s.gridDistance
}
