package fov

import (
	"math/rand"
	"testing"
)

func BenchmarkDense_PillarRoom(b *testing.B) {
	grid := pillarRoomMap()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		MustComputeDense(45, grid, roomWidth, 10)
	}
}

func BenchmarkSparse_PillarRoom(b *testing.B) {
	blocker := gridBlocker(pillarRoomMap(), roomWidth)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		MustComputeSparse(Point{X: 5, Y: 4}, blocker, 10)
	}
}

func BenchmarkDense_Cave128(b *testing.B) {
	const w = 128
	grid := randomGrid(rand.New(rand.NewSource(1)), w, w, 0.15)
	origin := DenseIndex(64, 64, w)
	grid[origin] = 0
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		MustComputeDense(origin, grid, w, 40)
	}
}

func BenchmarkSparse_Cave128(b *testing.B) {
	const w = 128
	grid := randomGrid(rand.New(rand.NewSource(1)), w, w, 0.15)
	blocker := gridBlocker(grid, w)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		MustComputeSparse(Point{X: 64, Y: 64}, blocker, 40)
	}
}
