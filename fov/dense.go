package fov

import (
	"fmt"
	"math"
)

// row is one slice of a quadrant at a fixed depth, bounded by two slopes.
// Slope arithmetic stays in float32 and every product is converted
// explicitly so it is rounded before the ±0.5 offset is applied.
type row struct {
	depth float32
	start float32
	end   float32
}

// columns returns the inclusive column range covered by the row.
// Half-integers round inward on both sides.
func (r row) columns() (lo, hi int) {
	lo = int(math.Floor(float64(float32(r.depth*r.start) + 0.5)))
	hi = int(math.Ceil(float64(float32(r.depth*r.end) - 0.5)))
	return lo, hi
}

// symmetric reports whether the centre of col lies inside the row's slopes.
func (r row) symmetric(col int) bool {
	c := float32(col)
	return c >= float32(r.depth*r.start) && c <= float32(r.depth*r.end)
}

func (r row) next() row {
	return row{depth: r.depth + 1, start: r.start, end: r.end}
}

// slope of the left edge of col at depth.
func slope(depth float32, col int) float32 {
	return (2*float32(col) - 1) / (2 * depth)
}

// ComputeDense returns the cells visible from origin on a row-major grid.
// A non-zero grid byte blocks light. The result has the same length as
// grid with 1 marking visible cells. Cells whose Manhattan distance from
// origin is radius or more are never visible; the origin always is.
//
// Cells beyond the grid edge are treated as opaque.
func ComputeDense(origin int, grid []byte, width, radius int) ([]byte, error) {
	if err := checkDense(origin, grid, width, radius); err != nil {
		return nil, err
	}
	out := make([]byte, len(grid))
	out[origin] = 1

	g := denseGrid{cells: grid, width: width, height: len(grid) / width}
	ox, oy := DenseCoords(origin, width)
	o := Point{X: ox, Y: oy}
	rows := make([]row, 0, min(radius, 64))
	for _, c := range cardinals {
		rows = g.scan(c, o, radius, out, rows)
	}
	return out, nil
}

// MustComputeDense is like ComputeDense but panics on invalid input.
func MustComputeDense(origin int, grid []byte, width, radius int) []byte {
	out, err := ComputeDense(origin, grid, width, radius)
	if err != nil {
		panic(err)
	}
	return out
}

func checkDense(origin int, grid []byte, width, radius int) error {
	switch {
	case radius < 0:
		return fmt.Errorf("dense radius %d: %w", radius, ErrNegativeRadius)
	case width <= 0:
		return fmt.Errorf("dense width %d: %w", width, ErrInvalidWidth)
	case len(grid) == 0 || len(grid)%width != 0:
		return fmt.Errorf("dense grid of %d cells, width %d: %w", len(grid), width, ErrRaggedGrid)
	case origin < 0 || origin >= len(grid):
		return fmt.Errorf("dense origin %d, grid of %d cells: %w", origin, len(grid), ErrOriginOutOfBounds)
	}
	return nil
}

type denseGrid struct {
	cells  []byte
	width  int
	height int
}

// index returns the flat index of p, or false if p is off the grid.
func (g denseGrid) index(p Point) (int, bool) {
	if p.X < 0 || p.X >= g.width || p.Y < 0 || p.Y >= g.height {
		return 0, false
	}
	return p.Y*g.width + p.X, true
}

// scan walks one quadrant. Rows are kept on an explicit stack; the stack
// slice is returned so callers can reuse its storage for the next quadrant.
func (g denseGrid) scan(c cardinal, origin Point, radius int, out []byte, rows []row) []row {
	rows = append(rows[:0], row{depth: 1, start: -1, end: 1})
	for len(rows) > 0 {
		r := rows[len(rows)-1]
		rows = rows[:len(rows)-1]

		depth := int(r.depth)
		if depth >= radius {
			// Every cell here is at least depth away.
			continue
		}
		entry := r
		lo, hi := r.columns()
		seen, prevBlocks := false, false
		for col := lo; col <= hi; col++ {
			p := c.transform(origin, depth, col)
			idx, inside := g.index(p)
			blocks := !inside || g.cells[idx] != 0

			if inside && depth+absInt(col) < radius && (blocks || entry.symmetric(col)) {
				out[idx] = 1
			}
			if seen {
				if prevBlocks && !blocks {
					r.start = slope(r.depth, col)
				}
				if !prevBlocks && blocks {
					n := r.next()
					n.end = slope(r.depth, col)
					rows = append(rows, n)
				}
			}
			seen, prevBlocks = true, blocks
		}
		if seen && !prevBlocks {
			rows = append(rows, r.next())
		}
	}
	return rows
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
