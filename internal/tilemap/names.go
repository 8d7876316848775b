package tilemap

import (
	"fmt"
	"strings"
)

var groundNames = [groundTypeCount]string{
	GroundFloor:  "floor",
	GroundGrass:  "grass",
	GroundDirt:   "dirt",
	GroundWater:  "water",
	GroundRubble: "rubble",
	GroundChasm:  "chasm",
}

var objectNames = [objectTypeCount]string{
	ObjectNone:         "none",
	ObjectWall:         "wall",
	ObjectWallDamaged:  "wall_damaged",
	ObjectWindow:       "window",
	ObjectWindowBroken: "window_broken",
	ObjectDoor:         "door",
	ObjectDoorOpen:     "door_open",
	ObjectDoorBroken:   "door_broken",
	ObjectPillar:       "pillar",
	ObjectCrate:        "crate",
	ObjectTable:        "table",
	ObjectHedgerow:     "hedgerow",
	ObjectBush:         "bush",
	ObjectTreeTrunk:    "tree",
	ObjectRubblePile:   "rubble_pile",
	ObjectFence:        "fence",
}

// objectGlyphs is the ASCII form used by map literals and renderers.
var objectGlyphs = [objectTypeCount]byte{
	ObjectNone:         '.',
	ObjectWall:         '#',
	ObjectWallDamaged:  '%',
	ObjectWindow:       '"',
	ObjectWindowBroken: ',',
	ObjectDoor:         '+',
	ObjectDoorOpen:     '\'',
	ObjectDoorBroken:   '_',
	ObjectPillar:       'O',
	ObjectCrate:        'X',
	ObjectTable:        'T',
	ObjectHedgerow:     'H',
	ObjectBush:         '*',
	ObjectTreeTrunk:    'Y',
	ObjectRubblePile:   ';',
	ObjectFence:        '|',
}

var groundGlyphs = [groundTypeCount]byte{
	GroundFloor:  '.',
	GroundGrass:  '`',
	GroundDirt:   ':',
	GroundWater:  '~',
	GroundRubble: '^',
	GroundChasm:  ' ',
}

func (g GroundType) String() string {
	if g >= groundTypeCount {
		return fmt.Sprintf("ground(%d)", uint8(g))
	}
	return groundNames[g]
}

func (o ObjectType) String() string {
	if o >= objectTypeCount {
		return fmt.Sprintf("object(%d)", uint8(o))
	}
	return objectNames[o]
}

// ParseGround looks a ground type up by name.
func ParseGround(name string) (GroundType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for g, n := range groundNames {
		if n == name {
			return GroundType(g), nil
		}
	}
	return 0, fmt.Errorf("unknown ground type %q", name)
}

// ParseObject looks an object type up by name.
func ParseObject(name string) (ObjectType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for o, n := range objectNames {
		if n == name {
			return ObjectType(o), nil
		}
	}
	return 0, fmt.Errorf("unknown object type %q", name)
}

// ObjectForGlyph returns the object drawn as c in map literals.
func ObjectForGlyph(c byte) (ObjectType, bool) {
	for o, g := range objectGlyphs {
		if g == c {
			return ObjectType(o), true
		}
	}
	return ObjectNone, false
}

// Glyph returns the ASCII character for a tile: its object if any,
// otherwise its ground.
func (t Tile) Glyph() byte {
	if t.Object != ObjectNone && t.Object < objectTypeCount {
		return objectGlyphs[t.Object]
	}
	if t.Ground < groundTypeCount {
		return groundGlyphs[t.Ground]
	}
	return '?'
}
