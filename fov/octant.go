package fov

// octant holds the multipliers that map a canonical scan, where the major
// axis runs up (dy = -depth) and dx sweeps from the diagonal to the axis,
// onto one eighth of the plane.
type octant struct {
	xx, xy, yx, yy int
}

// octants is the classic 4×8 multiplier table, one column per octant.
var octants = [8]octant{
	{xx: 1, xy: 0, yx: 0, yy: 1},
	{xx: 0, xy: 1, yx: 1, yy: 0},
	{xx: 0, xy: -1, yx: 1, yy: 0},
	{xx: -1, xy: 0, yx: 0, yy: 1},
	{xx: -1, xy: 0, yx: 0, yy: -1},
	{xx: 0, xy: -1, yx: -1, yy: 0},
	{xx: 0, xy: 1, yx: -1, yy: 0},
	{xx: 1, xy: 0, yx: 0, yy: -1},
}

// transform maps local (dx, dy) to a point relative to origin.
func (o octant) transform(origin Point, dx, dy int) Point {
	return Point{
		X: origin.X + dx*o.xx + dy*o.xy,
		Y: origin.Y + dx*o.yx + dy*o.yy,
	}
}
