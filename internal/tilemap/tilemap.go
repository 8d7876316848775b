// Package tilemap is the per-cell terrain model that feeds the FOV engines.
package tilemap

import (
	"fmt"

	"github.com/Garsondee/shadowcast/fov"
)

// GroundType identifies the base surface of a tile.
type GroundType uint8

const (
	GroundFloor  GroundType = iota // Default flagstone floor
	GroundGrass                    // Open ground
	GroundDirt                     // Packed earth
	GroundWater                    // Shallow water
	GroundRubble                   // Scattered debris
	GroundChasm                    // Open pit, impassable but transparent
	groundTypeCount                // sentinel
)

// ObjectType identifies an object sitting on a tile.
type ObjectType uint8

const (
	ObjectNone         ObjectType = iota // Empty cell
	ObjectWall                           // Structural wall
	ObjectWallDamaged                    // Holed wall, still opaque
	ObjectWindow                         // Intact window: see through, cannot pass
	ObjectWindowBroken                   // Broken window, passable
	ObjectDoor                           // Closed door, blocks move + light
	ObjectDoorOpen                       // Open door, passable
	ObjectDoorBroken                     // Destroyed door frame
	ObjectPillar                         // Structural column
	ObjectCrate                          // Stacked crates
	ObjectTable                          // Furniture, low
	ObjectHedgerow                       // Thick hedge
	ObjectBush                           // Decorative bush
	ObjectTreeTrunk                      // Tree base
	ObjectRubblePile                     // Heaped debris
	ObjectFence                          // Chain-link fence
	objectTypeCount                      // sentinel
)

// opaqueThreshold is the opacity at which an object blocks light outright.
const opaqueThreshold = 0.5

// objectBlocksMovement returns true if the object is impassable.
func objectBlocksMovement(o ObjectType) bool {
	switch o {
	case ObjectWall, ObjectWallDamaged, ObjectWindow, ObjectDoor,
		ObjectPillar, ObjectCrate, ObjectTreeTrunk:
		return true
	default:
		return false
	}
}

// objectOpacity returns a 0-1 opacity value. 1.0 = fully opaque.
func objectOpacity(o ObjectType) float64 {
	switch o {
	case ObjectWall, ObjectDoor, ObjectPillar, ObjectCrate, ObjectTreeTrunk:
		return 1.0
	case ObjectWallDamaged:
		return 0.7
	case ObjectHedgerow:
		return 0.5
	case ObjectBush, ObjectRubblePile:
		return 0.3
	case ObjectFence:
		return 0.1
	default:
		return 0.0
	}
}

// objectBlocksLight returns true if the object fully blocks line of sight.
func objectBlocksLight(o ObjectType) bool {
	return objectOpacity(o) >= opaqueThreshold
}

// objectDefaultDurability returns the starting hit points for breakable
// objects. 0 means unbreakable.
func objectDefaultDurability(o ObjectType) int16 {
	switch o {
	case ObjectWindow:
		return 30
	case ObjectDoor:
		return 40
	case ObjectTable:
		return 20
	case ObjectCrate:
		return 50
	case ObjectHedgerow:
		return 60
	case ObjectBush:
		return 15
	case ObjectFence:
		return 15
	default:
		return 0
	}
}

// TileFlags is a bitfield for per-tile metadata.
type TileFlags uint8

const (
	TileFlagIndoor  TileFlags = 1 << iota // inside a building footprint
	TileFlagDamaged                       // object or ground has been damaged
	TileFlagSpawn                         // marked vantage in the source map
)

// Tile represents one cell of the map.
type Tile struct {
	Ground     GroundType
	Object     ObjectType // ObjectNone if empty
	Flags      TileFlags
	Durability int16 // hit points for breakable objects
}

// TileMap is the authoritative per-cell terrain representation.
type TileMap struct {
	Cols  int
	Rows  int
	Tiles []Tile // row-major: index = row*Cols + col
}

// NewTileMap creates a tile map of plain floor.
func NewTileMap(cols, rows int) *TileMap {
	return &TileMap{Cols: cols, Rows: rows, Tiles: make([]Tile, cols*rows)}
}

// InBounds returns true if (col, row) is within the tile map.
func (tm *TileMap) InBounds(col, row int) bool {
	return col >= 0 && col < tm.Cols && row >= 0 && row < tm.Rows
}

// Index returns the row-major index of (col, row).
func (tm *TileMap) Index(col, row int) int {
	return fov.DenseIndex(col, row, tm.Cols)
}

// Cell returns the coordinate of a row-major index.
func (tm *TileMap) Cell(index int) fov.Point {
	x, y := fov.DenseCoords(index, tm.Cols)
	return fov.Point{X: x, Y: y}
}

// At returns a pointer to the tile at (col, row), or nil if out of bounds.
func (tm *TileMap) At(col, row int) *Tile {
	if !tm.InBounds(col, row) {
		return nil
	}
	return &tm.Tiles[row*tm.Cols+col]
}

// Ground returns the ground type at (col, row).
func (tm *TileMap) Ground(col, row int) GroundType {
	if !tm.InBounds(col, row) {
		return GroundFloor
	}
	return tm.Tiles[row*tm.Cols+col].Ground
}

// ObjectAt returns the object type at (col, row).
func (tm *TileMap) ObjectAt(col, row int) ObjectType {
	if !tm.InBounds(col, row) {
		return ObjectNone
	}
	return tm.Tiles[row*tm.Cols+col].Object
}

// IsPassable returns true if a walker can enter (col, row).
func (tm *TileMap) IsPassable(col, row int) bool {
	if !tm.InBounds(col, row) {
		return false
	}
	t := &tm.Tiles[row*tm.Cols+col]
	return !objectBlocksMovement(t.Object) && t.Ground != GroundChasm
}

// Opacity returns the opacity of (col, row). Out of bounds is opaque.
func (tm *TileMap) Opacity(col, row int) float64 {
	if !tm.InBounds(col, row) {
		return 1
	}
	return objectOpacity(tm.Tiles[row*tm.Cols+col].Object)
}

// BlocksLight reports whether (col, row) stops line of sight. Cells off the
// map block light.
func (tm *TileMap) BlocksLight(col, row int) bool {
	if !tm.InBounds(col, row) {
		return true
	}
	return objectBlocksLight(tm.Tiles[row*tm.Cols+col].Object)
}

// HasFlag returns true if every bit of f is set on the tile.
func (tm *TileMap) HasFlag(col, row int, f TileFlags) bool {
	if !tm.InBounds(col, row) {
		return false
	}
	return tm.Tiles[row*tm.Cols+col].Flags&f == f
}

// SetGround sets the ground type for a tile.
func (tm *TileMap) SetGround(col, row int, g GroundType) {
	if !tm.InBounds(col, row) {
		return
	}
	tm.Tiles[row*tm.Cols+col].Ground = g
}

// SetObject places an object on a tile, initialising durability from defaults.
func (tm *TileMap) SetObject(col, row int, o ObjectType) {
	if !tm.InBounds(col, row) {
		return
	}
	t := &tm.Tiles[row*tm.Cols+col]
	t.Object = o
	t.Durability = objectDefaultDurability(o)
}

// AddFlag sets flag bits on a tile.
func (tm *TileMap) AddFlag(col, row int, f TileFlags) {
	if !tm.InBounds(col, row) {
		return
	}
	tm.Tiles[row*tm.Cols+col].Flags |= f
}

// ToggleDoor opens a closed door or closes an open one. It returns false if
// there is no intact door at (col, row).
func (tm *TileMap) ToggleDoor(col, row int) bool {
	t := tm.At(col, row)
	if t == nil {
		return false
	}
	switch t.Object {
	case ObjectDoor:
		t.Object = ObjectDoorOpen
	case ObjectDoorOpen:
		t.Object = ObjectDoor
	default:
		return false
	}
	return true
}

// DamageTile reduces durability and transitions breakable objects when destroyed.
func (tm *TileMap) DamageTile(col, row int, dmg int) {
	t := tm.At(col, row)
	if t == nil || t.Durability <= 0 {
		return // already broken or unbreakable
	}
	t.Durability -= int16(min(dmg, 1<<14)) // #nosec G115 -- clamped above
	if t.Durability > 0 {
		return
	}
	t.Durability = 0
	switch t.Object {
	case ObjectWindow:
		t.Object = ObjectWindowBroken
	case ObjectDoor:
		t.Object = ObjectDoorBroken
	case ObjectTable, ObjectCrate:
		t.Object = ObjectNone
		t.Ground = GroundRubble
	case ObjectHedgerow:
		t.Object = ObjectBush
	case ObjectBush, ObjectFence:
		t.Object = ObjectNone
	}
	t.Flags |= TileFlagDamaged
}

// Opacities flattens the map into the dense engine's input: 1 where light
// is blocked, 0 elsewhere.
func (tm *TileMap) Opacities() []byte {
	out := make([]byte, len(tm.Tiles))
	for i := range tm.Tiles {
		if objectBlocksLight(tm.Tiles[i].Object) {
			out[i] = 1
		}
	}
	return out
}

// Blocker adapts the map to the sparse engine. The map is read live, so the
// caller must not mutate it while a query runs.
func (tm *TileMap) Blocker() fov.Blocker {
	return fov.BlockerFunc(func(p fov.Point) bool {
		return tm.BlocksLight(p.X, p.Y)
	})
}

// Visible runs the chosen engine from vantage and returns a row-major grid
// with 1 marking visible tiles.
func (tm *TileMap) Visible(engine fov.Engine, vantage fov.Point, radius int) ([]byte, error) {
	if !tm.InBounds(vantage.X, vantage.Y) {
		return nil, fmt.Errorf("vantage %v outside %dx%d map: %w", vantage, tm.Cols, tm.Rows, fov.ErrOriginOutOfBounds)
	}
	switch engine {
	case fov.EngineDense:
		return fov.ComputeDense(tm.Index(vantage.X, vantage.Y), tm.Opacities(), tm.Cols, radius)
	case fov.EngineSparse:
		set, err := fov.ComputeSparse(vantage, tm.Blocker(), radius)
		if err != nil {
			return nil, err
		}
		return set.Grid(tm.Cols, tm.Rows), nil
	default:
		return nil, fmt.Errorf("visible: unsupported engine %v", engine)
	}
}
