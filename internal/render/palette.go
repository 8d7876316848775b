package render

import (
	"image/color"

	"github.com/Garsondee/shadowcast/internal/tilemap"
)

// VantageColour marks the viewer's own tile.
var VantageColour = color.RGBA{R: 255, G: 240, B: 60, A: 255}

var groundColours = map[tilemap.GroundType]color.RGBA{
	tilemap.GroundFloor:  {R: 46, G: 44, B: 39, A: 255},
	tilemap.GroundGrass:  {R: 44, G: 66, B: 40, A: 255},
	tilemap.GroundDirt:   {R: 70, G: 58, B: 42, A: 255},
	tilemap.GroundWater:  {R: 55, G: 70, B: 100, A: 255},
	tilemap.GroundRubble: {R: 72, G: 68, B: 56, A: 255},
	tilemap.GroundChasm:  {R: 8, G: 6, B: 4, A: 255},
}

var objectColours = map[tilemap.ObjectType]color.RGBA{
	tilemap.ObjectWall:         {R: 85, G: 80, B: 68, A: 255},
	tilemap.ObjectWallDamaged:  {R: 100, G: 94, B: 80, A: 255},
	tilemap.ObjectWindow:       {R: 120, G: 160, B: 210, A: 255},
	tilemap.ObjectWindowBroken: {R: 110, G: 150, B: 200, A: 255},
	tilemap.ObjectDoor:         {R: 118, G: 92, B: 60, A: 255},
	tilemap.ObjectDoorOpen:     {R: 92, G: 74, B: 50, A: 255},
	tilemap.ObjectDoorBroken:   {R: 82, G: 70, B: 56, A: 255},
	tilemap.ObjectPillar:       {R: 138, G: 130, B: 112, A: 255},
	tilemap.ObjectCrate:        {R: 120, G: 96, B: 58, A: 255},
	tilemap.ObjectTable:        {R: 104, G: 84, B: 56, A: 255},
	tilemap.ObjectHedgerow:     {R: 40, G: 92, B: 36, A: 255},
	tilemap.ObjectBush:         {R: 58, G: 104, B: 48, A: 255},
	tilemap.ObjectTreeTrunk:    {R: 76, G: 56, B: 36, A: 255},
	tilemap.ObjectRubblePile:   {R: 92, G: 84, B: 68, A: 255},
	tilemap.ObjectFence:        {R: 110, G: 100, B: 80, A: 255},
}

// TileColour returns the fill for a tile. Tiles out of view are drawn at a
// third of their brightness.
func TileColour(t tilemap.Tile, visible bool) color.RGBA {
	c, ok := objectColours[t.Object]
	if !ok {
		c = groundColours[t.Ground]
	}
	if t.Flags&tilemap.TileFlagIndoor != 0 && t.Object == tilemap.ObjectNone {
		c.R, c.G, c.B = c.R+10, c.G+8, c.B+6
	}
	if !visible {
		c.R, c.G, c.B = c.R/3, c.G/3, c.B/3
	}
	c.A = 255
	return c
}
