package fov

import "fmt"

// ComputeSparse returns the points visible from origin. blocker is queried
// lazily, so the space need not be bounded or backed by a grid. Points
// whose squared Euclidean distance from origin is radius² or more are
// never visible; the origin always is.
func ComputeSparse(origin Point, blocker Blocker, radius int) (PointSet, error) {
	if radius < 0 {
		return nil, fmt.Errorf("sparse radius %d: %w", radius, ErrNegativeRadius)
	}
	if blocker == nil {
		return nil, ErrNilBlocker
	}
	if f, ok := blocker.(BlockerFunc); ok && f == nil {
		return nil, ErrNilBlocker
	}
	s := sparseScan{
		origin:  origin,
		blocker: blocker,
		radius:  radius,
		r2:      radius * radius,
		visible: PointSet{origin: {}},
	}
	for _, o := range octants {
		s.castLight(o, 1, 1.0, 0.0)
	}
	return s.visible, nil
}

// MustComputeSparse is like ComputeSparse but panics on invalid input.
func MustComputeSparse(origin Point, blocker Blocker, radius int) PointSet {
	out, err := ComputeSparse(origin, blocker, radius)
	if err != nil {
		panic(err)
	}
	return out
}

type sparseScan struct {
	origin  Point
	blocker Blocker
	radius  int
	r2      int
	visible PointSet
}

// castLight scans one octant from depth row outward. start and end are the
// still-open slopes, start >= end. Each wall found on an open stretch
// recurses one row deeper with the wedge clipped at the wall.
func (s *sparseScan) castLight(o octant, row int, start, end float64) {
	if start < end {
		return
	}
	var newStart float64
	for j := row; j <= s.radius; j++ {
		dy := -j
		blocked := false
		for dx := -j; dx <= 0; dx++ {
			p := o.transform(s.origin, dx, dy)
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)
			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if dx*dx+dy*dy < s.r2 {
				s.visible.add(p)
			}
			wall := s.blocker.BlocksLight(p)
			if blocked {
				if wall {
					newStart = rSlope
					continue
				}
				blocked = false
				start = newStart
				continue
			}
			if wall && j < s.radius {
				blocked = true
				s.castLight(o, j+1, start, lSlope)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
