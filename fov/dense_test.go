package fov

import (
	"errors"
	"math/rand"
	"testing"
)

func TestDense_RoomFullyVisible(t *testing.T) {
	want := []byte{
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 1, 1, 1, 1, 1, 1, 1, 1, 0,
		0, 1, 1, 1, 1, 1, 1, 1, 1, 0,
		0, 1, 1, 1, 1, 1, 1, 1, 1, 0,
		0, 1, 1, 1, 1, 1, 1, 1, 1, 0,
		0, 1, 1, 1, 1, 1, 1, 1, 1, 0,
		0, 1, 1, 1, 1, 1, 1, 1, 1, 0,
		0, 1, 1, 1, 1, 1, 1, 1, 1, 0,
		0, 1, 1, 1, 1, 1, 1, 1, 1, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	got, err := ComputeDense(35, roomMap(), roomWidth, 10)
	if err != nil {
		t.Fatalf("ComputeDense: %v", err)
	}
	assertGrid(t, got, want, roomWidth)
}

func TestDense_PillarOccludesNorthWestCorner(t *testing.T) {
	want := []byte{
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 1, 1, 1, 1, 1, 1, 1, 1, 0,
		0, 0, 0, 1, 1, 1, 1, 1, 1, 0,
		0, 1, 0, 1, 1, 1, 1, 1, 1, 0,
		0, 1, 1, 1, 1, 1, 1, 1, 1, 0,
		0, 1, 1, 1, 1, 1, 1, 1, 1, 0,
		0, 1, 1, 1, 1, 1, 1, 1, 1, 0,
		0, 1, 1, 1, 1, 1, 1, 1, 1, 0,
		0, 1, 1, 1, 1, 1, 1, 1, 1, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	got, err := ComputeDense(45, pillarRoomMap(), roomWidth, 10)
	if err != nil {
		t.Fatalf("ComputeDense: %v", err)
	}
	assertGrid(t, got, want, roomWidth)
	if got[33] != 1 {
		t.Fatal("the pillar itself should be visible")
	}
}

func TestDense_RadiusZeroAndOneOnlyOrigin(t *testing.T) {
	grid := openGrid(9, 9)
	origin := DenseIndex(4, 4, 9)
	for _, radius := range []int{0, 1} {
		got := MustComputeDense(origin, grid, 9, radius)
		for i, v := range got {
			if i == origin && v != 1 {
				t.Fatalf("radius %d: origin not visible", radius)
			}
			if i != origin && v != 0 {
				t.Fatalf("radius %d: cell %d visible, want only origin", radius, i)
			}
		}
	}
}

func TestDense_OriginVisibleInsideWall(t *testing.T) {
	grid := []byte{
		1, 1, 1,
		1, 1, 1,
		1, 1, 1,
	}
	got := MustComputeDense(4, grid, 3, 5)
	if got[4] != 1 {
		t.Fatal("origin must always be visible")
	}
	// The neighbours block light but are themselves lit.
	for _, i := range []int{0, 1, 2, 3, 5, 6, 7, 8} {
		if got[i] != 1 {
			t.Fatalf("adjacent wall %d should be visible", i)
		}
	}
}

func TestDense_OpenMapIsDiamond(t *testing.T) {
	const w, h, radius = 21, 21, 6
	got := MustComputeDense(DenseIndex(10, 10, w), openGrid(w, h), w, radius)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want := byte(0)
			if absInt(x-10)+absInt(y-10) < radius {
				want = 1
			}
			if got[DenseIndex(x, y, w)] != want {
				t.Fatalf("cell (%d,%d) visible=%d, want %d\n%s", x, y, got[DenseIndex(x, y, w)], want, renderGrid(got, w))
			}
		}
	}
}

func TestDense_MapEdgeActsAsWall(t *testing.T) {
	// Origin one cell from the corner with a radius far beyond the grid.
	const w, h = 5, 5
	got := MustComputeDense(DenseIndex(1, 1, w), openGrid(w, h), w, 10)
	for i, v := range got {
		if v != 1 {
			x, y := DenseCoords(i, w)
			t.Fatalf("cell (%d,%d) should be visible on an open map", x, y)
		}
	}
}

func TestDense_NoWrapAcrossRows(t *testing.T) {
	// A wall column at x=3 hides the right edge. If columns wrapped onto the
	// next row, cells at x=0 would leak into the east quadrant.
	const w, h = 6, 6
	grid := openGrid(w, h)
	for y := 0; y < h; y++ {
		grid[DenseIndex(3, y, w)] = 1
	}
	got := MustComputeDense(DenseIndex(1, 2, w), grid, w, 20)
	for y := 0; y < h; y++ {
		for x := 4; x < w; x++ {
			if got[DenseIndex(x, y, w)] != 0 {
				t.Fatalf("cell (%d,%d) behind the wall should be hidden\n%s", x, y, renderGrid(got, w))
			}
		}
	}
}

func TestDense_SingleBlockerShadow(t *testing.T) {
	const w, h = 21, 21
	grid := openGrid(w, h)
	grid[DenseIndex(12, 10, w)] = 1
	got := MustComputeDense(DenseIndex(10, 10, w), grid, w, 8)

	if got[DenseIndex(12, 10, w)] != 1 {
		t.Fatal("blocker should be visible")
	}
	for _, x := range []int{13, 14, 15, 16} {
		if got[DenseIndex(x, 10, w)] != 0 {
			t.Fatalf("cell (%d,10) behind the blocker should be shadowed", x)
		}
	}
	for _, p := range []Point{{12, 13}, {12, 7}, {11, 10}, {13, 12}} {
		if got[DenseIndex(p.X, p.Y, w)] != 1 {
			t.Fatalf("cell %v beside the shadow should be visible", p)
		}
	}
}

func TestDense_MonotonicRadius(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const w, h = 15, 12
	for trial := 0; trial < 40; trial++ {
		grid := randomGrid(rng, w, h, 0.25)
		origin := rng.Intn(w * h)
		prev := MustComputeDense(origin, grid, w, 0)
		for radius := 1; radius < 14; radius++ {
			cur := MustComputeDense(origin, grid, w, radius)
			for i := range prev {
				if prev[i] == 1 && cur[i] == 0 {
					t.Fatalf("trial %d: cell %d visible at radius %d but not %d", trial, i, radius-1, radius)
				}
			}
			prev = cur
		}
	}
}

func TestDense_SymmetricBetweenFloors(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	const w, h = 12, 10
	grid := randomGrid(rng, w, h, 0.2)
	results := make(map[int][]byte)
	for i, c := range grid {
		if c == 0 {
			results[i] = MustComputeDense(i, grid, w, 30)
		}
	}
	for a, visA := range results {
		for b, visB := range results {
			if visA[b] != visB[a] {
				t.Fatalf("asymmetric: %d sees %d = %d, %d sees %d = %d", a, b, visA[b], b, a, visB[a])
			}
		}
	}
}

func TestDense_Idempotent(t *testing.T) {
	grid := pillarRoomMap()
	a := MustComputeDense(45, grid, roomWidth, 7)
	b := MustComputeDense(45, grid, roomWidth, 7)
	assertGrid(t, a, b, roomWidth)
}

func TestDense_DoesNotMutateInput(t *testing.T) {
	grid := pillarRoomMap()
	before := append([]byte(nil), grid...)
	MustComputeDense(45, grid, roomWidth, 10)
	assertGrid(t, grid, before, roomWidth)
}

func TestDense_RejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		origin int
		grid   []byte
		width  int
		radius int
		want   error
	}{
		{"negative radius", 0, openGrid(3, 3), 3, -1, ErrNegativeRadius},
		{"zero width", 0, openGrid(3, 3), 0, 2, ErrInvalidWidth},
		{"ragged grid", 0, make([]byte, 10), 3, 2, ErrRaggedGrid},
		{"empty grid", 0, nil, 3, 2, ErrRaggedGrid},
		{"origin past end", 9, openGrid(3, 3), 3, 2, ErrOriginOutOfBounds},
		{"negative origin", -1, openGrid(3, 3), 3, 2, ErrOriginOutOfBounds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeDense(tc.origin, tc.grid, tc.width, tc.radius)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestMustComputeDense_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-bounds origin")
		}
	}()
	MustComputeDense(100, openGrid(3, 3), 3, 2)
}

func TestRowColumns_HalfSlopeRounding(t *testing.T) {
	r := row{depth: 2, start: -0.25, end: 0.75}
	lo, hi := r.columns()
	// -0.5+0.5 floors to 0; 1.5-0.5 ceils to 1.
	if lo != 0 || hi != 1 {
		t.Fatalf("columns = [%d,%d], want [0,1]", lo, hi)
	}
	if r.symmetric(-1) || !r.symmetric(0) || !r.symmetric(1) || r.symmetric(2) {
		t.Fatal("symmetry check disagrees with slope bounds")
	}
}

func TestRowColumns_InvertedIsEmpty(t *testing.T) {
	r := row{depth: 3, start: 0.5, end: -0.5}
	lo, hi := r.columns()
	if lo <= hi {
		t.Fatalf("inverted row should be empty, got [%d,%d]", lo, hi)
	}
}
