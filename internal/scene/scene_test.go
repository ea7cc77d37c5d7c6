package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
)

func newTestScene() *Scene {
	return New(&Config{ID: "s1", GridSize: 100, GridDistance: 5})
}

func TestMeasureCells(t *testing.T) {
	testCases := []struct {
		name string
		a, b Cell
		want int
	}{
		{name: "straight", a: Cell{0, 0}, b: Cell{3, 0}, want: 3},
		{name: "one diagonal", a: Cell{0, 0}, b: Cell{1, 1}, want: 1},
		{name: "second diagonal costs double", a: Cell{0, 0}, b: Cell{2, 2}, want: 3},
		{name: "three diagonals", a: Cell{0, 0}, b: Cell{3, 3}, want: 4},
		{name: "mixed", a: Cell{0, 0}, b: Cell{4, 2}, want: 5},
		{name: "negative", a: Cell{-1, -1}, b: Cell{1, -1}, want: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MeasureCells(tc.a, tc.b))
			assert.Equal(t, tc.want, MeasureCells(tc.b, tc.a))
		})
	}
}

func TestSegmentsIntersect(t *testing.T) {
	assert.True(t, SegmentsIntersect(Point{0, 0}, Point{10, 10}, Point{0, 10}, Point{10, 0}))
	assert.False(t, SegmentsIntersect(Point{0, 0}, Point{10, 0}, Point{0, 5}, Point{10, 5}))
	assert.True(t, SegmentsIntersect(Point{0, 0}, Point{10, 0}, Point{5, 0}, Point{5, 5}))
}

func TestTokensInArea_UsesIndexAndFootprint(t *testing.T) {
	s := newTestScene()
	s.PlaceToken("small", Cell{0, 0}, 1)
	s.PlaceToken("far", Cell{9, 9}, 1)
	s.PlaceToken("large", Cell{-2, -2}, 3)
	s.PlaceToken("neg", Cell{-5, -5}, 1)

	assert.Equal(t, []string{"large", "small"}, s.TokensInArea(Cell{0, 0}, Cell{1, 1}))
	assert.Equal(t, []string{"far"}, s.TokensInArea(Cell{8, 8}, Cell{12, 12}))

	s.PlaceToken("small", Cell{9, 8}, 1)
	assert.Equal(t, []string{"far", "small"}, s.TokensInArea(Cell{8, 8}, Cell{12, 12}))

	s.RemoveToken("far")
	assert.Equal(t, []string{"small"}, s.TokensInArea(Cell{8, 8}, Cell{12, 12}))
}

func TestPlacement_NotFound(t *testing.T) {
	_, err := newTestScene().Placement("ghost")
	assert.True(t, dnderr.IsNotFound(err))
}

func TestCollidesMove(t *testing.T) {
	s := newTestScene()
	s.AddWall(Wall{A: Point{200, 0}, B: Point{200, 300}, BlocksMovement: true})
	s.AddWall(Wall{A: Point{0, 250}, B: Point{400, 250}, BlocksMovement: false})

	assert.True(t, s.CollidesMove(s.Center(Cell{1, 0}), s.Center(Cell{2, 0})))
	assert.False(t, s.CollidesMove(s.Center(Cell{0, 0}), s.Center(Cell{1, 0})))
	assert.False(t, s.CollidesMove(s.Center(Cell{0, 1}), s.Center(Cell{0, 3})))
}

func TestTemplateTokens_Circle(t *testing.T) {
	s := newTestScene()
	s.PlaceToken("a", Cell{0, 0}, 1)
	s.PlaceToken("b", Cell{1, 1}, 1)
	s.PlaceToken("c", Cell{3, 3}, 1)

	burst := &Template{ID: "t1", Shape: ShapeCircle, Origin: Point{100, 100}, Distance: 5}
	assert.ElementsMatch(t, []Cell{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, s.TemplateCells(burst))
	assert.Equal(t, []string{"a", "b"}, s.TemplateTokens(burst))

	s.AddWall(Wall{A: Point{120, 0}, B: Point{120, 200}, BlocksMovement: true})
	assert.ElementsMatch(t, []Cell{{0, 0}, {0, 1}}, s.TemplateCells(burst))
	assert.Equal(t, []string{"a"}, s.TemplateTokens(burst))
}

func TestTemplateCells_ConeAndRect(t *testing.T) {
	s := newTestScene()

	cone := &Template{Shape: ShapeCone, Origin: Point{50, 50}, Distance: 15, Direction: 0, Angle: 90}
	cells := s.TemplateCells(cone)
	assert.Contains(t, cells, Cell{1, 0})
	assert.Contains(t, cells, Cell{2, 1})
	assert.NotContains(t, cells, Cell{0, 1})

	rect := &Template{Shape: ShapeRect, Origin: Point{0, 0}, Width: 10, Distance: 5}
	assert.ElementsMatch(t, []Cell{{0, 0}, {1, 0}}, s.TemplateCells(rect))
}

func TestDistanceAndUnits(t *testing.T) {
	s := newTestScene()
	s.PlaceToken("a", Cell{0, 0}, 1)
	s.PlaceToken("b", Cell{1, 1}, 1)
	s.PlaceToken("big", Cell{3, 0}, 2)

	a, err := s.Placement("a")
	require.NoError(t, err)
	b, err := s.Placement("b")
	require.NoError(t, err)
	big, err := s.Placement("big")
	require.NoError(t, err)

	assert.Equal(t, 5.0, s.Distance(a, b))
	assert.Equal(t, 10.0, s.Distance(b, big))
	assert.Equal(t, 1, s.UnitsToCells(5))
	assert.Equal(t, 2, s.UnitsToCells(14))
}

func TestCenterAndCorner(t *testing.T) {
	s := newTestScene()

	assert.Equal(t, Point{X: 250, Y: 150}, s.Center(Cell{2, 1}))
	assert.Equal(t, Point{X: 200, Y: 100}, s.Corner(Cell{2, 1}))
	assert.Equal(t, Cell{2, 1}, s.CellAt(s.Corner(Cell{2, 1})))
}
