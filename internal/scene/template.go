package scene

import (
	"math"
	"slices"
)

// Shape is an area template's geometry.
type Shape string

const (
	ShapeCircle Shape = "circle"
	ShapeRect   Shape = "rect"
	ShapeCone   Shape = "cone"
)

// Template is a placed area effect. Distances are in scene units.
type Template struct {
	ID      string `json:"id"`
	SceneID string `json:"sceneId"`
	Shape   Shape  `json:"shape"`
	// Origin is the circle and cone point, or the rect's top left corner.
	Origin   Point   `json:"origin"`
	Distance float64 `json:"distance"`
	// Width is the rect width; Distance is its height.
	Width float64 `json:"width,omitempty"`
	// Direction is the cone heading in degrees, clockwise from east.
	Direction float64 `json:"direction,omitempty"`
	// Angle is the cone's spread in degrees.
	Angle float64 `json:"angle,omitempty"`
	// MessageID is the action message that placed the template.
	MessageID string `json:"messageId,omitempty"`
	AuthorID  string `json:"authorId,omitempty"`
}

// AddTemplate stores a template
func (s *Scene) AddTemplate(t *Template) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[t.ID] = t
}

// Template returns a stored template or nil
func (s *Scene) Template(id string) *Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.templates[id]
}

func (s *Scene) pixels(units float64) float64 {
	return units / s.gridDistance * s.gridSize
}

func (s *Scene) contains(t *Template, p Point) bool {
	const epsilon = 1e-6
	dx := p.X - t.Origin.X
	dy := p.Y - t.Origin.Y

	switch t.Shape {
	case ShapeCircle:
		return math.Hypot(dx, dy) <= s.pixels(t.Distance)+epsilon
	case ShapeRect:
		return dx >= -epsilon && dy >= -epsilon &&
			dx <= s.pixels(t.Width)+epsilon && dy <= s.pixels(t.Distance)+epsilon
	case ShapeCone:
		if math.Hypot(dx, dy) > s.pixels(t.Distance)+epsilon {
			return false
		}
		spread := t.Angle
		if spread <= 0 {
			spread = 90
		}
		heading := math.Atan2(dy, dx) * 180 / math.Pi
		delta := math.Mod(heading-t.Direction+540, 360) - 180
		return math.Abs(delta) <= spread/2+epsilon
	}
	return false
}

func (s *Scene) bounds(t *Template) (Cell, Cell) {
	reach := s.pixels(t.Distance)
	switch t.Shape {
	case ShapeRect:
		return s.CellAt(t.Origin), s.CellAt(Point{X: t.Origin.X + s.pixels(t.Width), Y: t.Origin.Y + reach})
	default:
		return s.CellAt(Point{X: t.Origin.X - reach, Y: t.Origin.Y - reach}),
			s.CellAt(Point{X: t.Origin.X + reach, Y: t.Origin.Y + reach})
	}
}

// TemplateCells returns the cells whose centers the template covers and that can be
// reached from the template origin without crossing a wall.
func (s *Scene) TemplateCells(t *Template) []Cell {
	minCell, maxCell := s.bounds(t)

	var cells []Cell
	for col := minCell.Col; col <= maxCell.Col; col++ {
		for row := minCell.Row; row <= maxCell.Row; row++ {
			cell := Cell{Col: col, Row: row}
			center := s.Center(cell)
			if !s.contains(t, center) {
				continue
			}
			if s.CollidesMove(t.Origin, center) {
				continue
			}
			cells = append(cells, cell)
		}
	}
	return cells
}

// TemplateTokens returns the tokens covering at least one template cell.
func (s *Scene) TemplateTokens(t *Template) []string {
	cells := s.TemplateCells(t)
	if len(cells) == 0 {
		return nil
	}

	covered := make(map[Cell]bool, len(cells))
	minCell, maxCell := cells[0], cells[0]
	for _, c := range cells {
		covered[c] = true
		minCell = Cell{Col: min(minCell.Col, c.Col), Row: min(minCell.Row, c.Row)}
		maxCell = Cell{Col: max(maxCell.Col, c.Col), Row: max(maxCell.Row, c.Row)}
	}

	var tokens []string
	for _, id := range s.TokensInArea(minCell, maxCell) {
		placement, err := s.Placement(id)
		if err != nil {
			continue
		}
		if slices.ContainsFunc(placement.Cells(), func(c Cell) bool { return covered[c] }) {
			tokens = append(tokens, id)
		}
	}
	return tokens
}
