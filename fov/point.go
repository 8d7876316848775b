package fov

import (
	"fmt"
	"sort"
)

// Point is a cell coordinate. Y grows downward, matching row-major grids.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// PointSet is the result of a sparse query.
type PointSet map[Point]struct{}

// Contains reports whether p is in the set.
func (s PointSet) Contains(p Point) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of points in the set.
func (s PointSet) Len() int {
	return len(s)
}

func (s PointSet) add(p Point) {
	s[p] = struct{}{}
}

// Sorted returns the points ordered by row, then column.
func (s PointSet) Sorted() []Point {
	out := make([]Point, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Grid flattens the set into a row-major byte grid of the given size.
// Points outside the grid are dropped.
func (s PointSet) Grid(width, height int) []byte {
	out := make([]byte, width*height)
	for p := range s {
		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		out[p.Y*width+p.X] = 1
	}
	return out
}

// DenseIndex converts (x, y) to a row-major index.
func DenseIndex(x, y, width int) int {
	return y*width + x
}

// DenseCoords converts a row-major index to (x, y).
func DenseCoords(index, width int) (x, y int) {
	return index % width, index / width
}

// Blocker reports whether a cell blocks light. Implementations must be
// deterministic for the duration of a query; they may be called more than
// once for the same point.
type Blocker interface {
	BlocksLight(p Point) bool
}

// BlockerFunc adapts a closure to a Blocker.
type BlockerFunc func(p Point) bool

// BlocksLight calls f(p).
func (f BlockerFunc) BlocksLight(p Point) bool {
	return f(p)
}
