package fov

// cardinal is one of the four quadrants scanned by the dense engine.
// Depth grows away from the origin along the cardinal axis, column runs
// perpendicular to it.
type cardinal uint8

const (
	north cardinal = iota
	east
	west
	south
)

var cardinals = [...]cardinal{north, east, west, south}

// transform maps a quadrant-local (depth, col) to grid coordinates.
// It works on (x, y) rather than flat indices so a column can never wrap
// onto the neighbouring grid row.
func (c cardinal) transform(origin Point, depth, col int) Point {
	switch c {
	case north:
		return Point{X: origin.X + col, Y: origin.Y - depth}
	case east:
		return Point{X: origin.X + depth, Y: origin.Y + col}
	case west:
		return Point{X: origin.X - depth, Y: origin.Y + col}
	default:
		return Point{X: origin.X + col, Y: origin.Y + depth}
	}
}

func (c cardinal) String() string {
	switch c {
	case north:
		return "north"
	case east:
		return "east"
	case west:
		return "west"
	default:
		return "south"
	}
}
