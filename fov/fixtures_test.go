package fov

import (
	"math/rand"
	"strings"
	"testing"
)

// roomMap is a 10x10 room: two cells of wall on every side, 6x6 open.
func roomMap() []byte {
	return []byte{
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
		1, 1, 0, 0, 0, 0, 0, 0, 1, 1,
		1, 1, 0, 0, 0, 0, 0, 0, 1, 1,
		1, 1, 0, 0, 0, 0, 0, 0, 1, 1,
		1, 1, 0, 0, 0, 0, 0, 0, 1, 1,
		1, 1, 0, 0, 0, 0, 0, 0, 1, 1,
		1, 1, 0, 0, 0, 0, 0, 0, 1, 1,
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	}
}

// pillarRoomMap is roomMap with a single pillar at (3,3).
func pillarRoomMap() []byte {
	m := roomMap()
	m[33] = 1
	return m
}

const roomWidth = 10

// gridBlocker treats out-of-grid points as opaque.
func gridBlocker(grid []byte, width int) Blocker {
	height := len(grid) / width
	return BlockerFunc(func(p Point) bool {
		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			return true
		}
		return grid[p.Y*width+p.X] != 0
	})
}

func openGrid(width, height int) []byte {
	return make([]byte, width*height)
}

// randomGrid scatters walls over roughly density of the cells.
func randomGrid(rng *rand.Rand, width, height int, density float64) []byte {
	g := make([]byte, width*height)
	for i := range g {
		if rng.Float64() < density {
			g[i] = 1
		}
	}
	return g
}

// renderGrid draws a visibility grid as rows of '#' (visible) and '.'.
func renderGrid(vis []byte, width int) string {
	var b strings.Builder
	for i, v := range vis {
		if i > 0 && i%width == 0 {
			b.WriteByte('\n')
		}
		if v != 0 {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

func assertGrid(t *testing.T, got, want []byte, width int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("grid length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d differs (got %d, want %d)\ngot:\n%s\nwant:\n%s",
				i, got[i], want[i], renderGrid(got, width), renderGrid(want, width))
		}
	}
}
