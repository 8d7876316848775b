package tilemap

import (
	"math"

	"github.com/Garsondee/shadowcast/fov"
)

// losInset shrinks each opaque tile's box so rays grazing a corner exactly
// are not blocked.
const losInset = 0.01

// HasLineOfSight returns true if a straight line between the centres of a
// and b does not pass through any light-blocking tile. The end tiles
// themselves never block, so a wall can be seen.
func (tm *TileMap) HasLineOfSight(a, b fov.Point) bool {
	ax, ay := float64(a.X)+0.5, float64(a.Y)+0.5
	bx, by := float64(b.X)+0.5, float64(b.Y)+0.5
	minC, maxC := min(a.X, b.X), max(a.X, b.X)
	minR, maxR := min(a.Y, b.Y), max(a.Y, b.Y)
	for row := minR; row <= maxR; row++ {
		for col := minC; col <= maxC; col++ {
			if (col == a.X && row == a.Y) || (col == b.X && row == b.Y) {
				continue
			}
			if !tm.BlocksLight(col, row) {
				continue
			}
			if rayIntersectsAABB(ax, ay, bx, by,
				float64(col)+losInset, float64(row)+losInset,
				float64(col+1)-losInset, float64(row+1)-losInset) {
				return false
			}
		}
	}
	return true
}

// rayAABBHitT returns the first segment parameter t in [0,1] where the line
// from (ox,oy)->(ex,ey) enters the AABB. The bool is false when no hit exists.
func rayAABBHitT(ox, oy, ex, ey, minX, minY, maxX, maxY float64) (float64, bool) {
	dx := ex - ox
	dy := ey - oy

	tMin := 0.0
	tMax := 1.0

	// X slab
	if math.Abs(dx) < 1e-12 {
		if ox < minX || ox > maxX {
			return 0, false
		}
	} else {
		invD := 1.0 / dx
		t1 := (minX - ox) * invD
		t2 := (maxX - ox) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	// Y slab
	if math.Abs(dy) < 1e-12 {
		if oy < minY || oy > maxY {
			return 0, false
		}
	} else {
		invD := 1.0 / dy
		t1 := (minY - oy) * invD
		t2 := (maxY - oy) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 || tMin > 1 {
		return 0, false
	}
	return tMin, true
}

// rayIntersectsAABB checks if the segment from (ox,oy)->(ex,ey) intersects
// the axis-aligned box (minX,minY)-(maxX,maxY).
func rayIntersectsAABB(ox, oy, ex, ey, minX, minY, maxX, maxY float64) bool {
	_, hit := rayAABBHitT(ox, oy, ex, ey, minX, minY, maxX, maxY)
	return hit
}

// RayAgreement returns the fraction of visible tiles in vis whose centre
// has a clear ray from vantage. Symmetric shadowcasting is more permissive
// than centre-to-centre rays, so values below 1 are expected near corners.
func (tm *TileMap) RayAgreement(vantage fov.Point, vis []byte) float64 {
	total, agree := 0, 0
	for i, v := range vis {
		if v == 0 {
			continue
		}
		total++
		if tm.HasLineOfSight(vantage, tm.Cell(i)) {
			agree++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(agree) / float64(total)
}
