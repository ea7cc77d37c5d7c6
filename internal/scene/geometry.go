package scene

import "math"

// Point is a position in scene pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Cell is a grid square.
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Wall is a segment that can block movement.
type Wall struct {
	A              Point
	B              Point
	BlocksMovement bool
}

func orientation(p, q, r Point) int {
	v := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	switch {
	case math.Abs(v) < 1e-9:
		return 0
	case v > 0:
		return 1
	default:
		return 2
	}
}

func onSegment(p, q, r Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

// SegmentsIntersect reports whether p1-q1 and p2-q2 share a point.
func SegmentsIntersect(p1, q1, p2, q2 Point) bool {
	o1 := orientation(p1, q1, p2)
	o2 := orientation(p1, q1, q2)
	o3 := orientation(p2, q2, p1)
	o4 := orientation(p2, q2, q1)

	if o1 != o2 && o3 != o4 {
		return true
	}

	switch {
	case o1 == 0 && onSegment(p1, p2, q1):
		return true
	case o2 == 0 && onSegment(p1, q2, q1):
		return true
	case o3 == 0 && onSegment(p2, p1, q2):
		return true
	case o4 == 0 && onSegment(p2, q1, q2):
		return true
	}
	return false
}

// MeasureCells counts grid squares between two cells, with every second
// diagonal step costing two squares.
func MeasureCells(a, b Cell) int {
	dx := abs(a.Col - b.Col)
	dy := abs(a.Row - b.Row)
	diagonal := min(dx, dy)
	straight := max(dx, dy) - diagonal
	return straight + diagonal + diagonal/2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
