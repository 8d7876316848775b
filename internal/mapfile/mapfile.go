// Package mapfile loads tile maps from YAML documents and ASCII literals.
package mapfile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/shadowcast/fov"
	"github.com/Garsondee/shadowcast/internal/tilemap"
)

// VantageGlyph marks a vantage point on open floor.
const VantageGlyph = '@'

// Vantage is a viewer position in a map document.
type Vantage struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// LegendEntry describes what a glyph places on a tile. In YAML it is
// either an object name ("pillar") or a mapping with object, ground and
// indoor keys.
type LegendEntry struct {
	Object string `yaml:"object"`
	Ground string `yaml:"ground"`
	Indoor bool   `yaml:"indoor"`
}

// UnmarshalYAML accepts the scalar shorthand as well as the full mapping.
func (e *LegendEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		e.Object = value.Value
		return nil
	}
	type plain LegendEntry
	return value.Decode((*plain)(e))
}

// Document is the on-disk form of a map.
type Document struct {
	Name     string                 `yaml:"name"`
	Radius   int                    `yaml:"radius"` // 0 = use the configured default
	Legend   map[string]LegendEntry `yaml:"legend"`
	Rows     []string               `yaml:"rows"`
	Vantages []Vantage              `yaml:"vantages"`
}

// Level is a built map ready for FOV queries.
type Level struct {
	Name     string
	Radius   int
	Map      *tilemap.TileMap
	Vantages []fov.Point
}

type cellSpec struct {
	object tilemap.ObjectType
	ground tilemap.GroundType
	flags  tilemap.TileFlags
}

var ErrEmptyMap = errors.New("map has no rows")

// Load reads and builds a YAML map document.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map %s: %w", path, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", path, err)
	}
	if lvl.Name == "" {
		lvl.Name = path
	}
	return lvl, nil
}

// Parse decodes and builds a YAML map document.
func Parse(data []byte) (*Level, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse map: %w", err)
	}
	return doc.Build()
}

// ParseASCII builds a map from a literal using the default glyphs. Blank
// leading and trailing lines are ignored.
func ParseASCII(s string) (*Level, error) {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	doc := Document{Rows: lines}
	return doc.Build()
}

// Build validates the document and constructs its tile map.
func (d *Document) Build() (*Level, error) {
	if len(d.Rows) == 0 || len(d.Rows[0]) == 0 {
		return nil, ErrEmptyMap
	}
	if d.Radius < 0 {
		return nil, fmt.Errorf("radius %d must not be negative", d.Radius)
	}
	legend, err := d.legend()
	if err != nil {
		return nil, err
	}

	cols, rows := len(d.Rows[0]), len(d.Rows)
	tm := tilemap.NewTileMap(cols, rows)
	lvl := &Level{Name: d.Name, Radius: d.Radius, Map: tm}
	for y, line := range d.Rows {
		if len(line) != cols {
			return nil, fmt.Errorf("row %d has width %d, want %d", y, len(line), cols)
		}
		for x := 0; x < cols; x++ {
			c := line[x]
			if c == VantageGlyph {
				tm.AddFlag(x, y, tilemap.TileFlagSpawn)
				lvl.Vantages = append(lvl.Vantages, fov.Point{X: x, Y: y})
				continue
			}
			spec, ok := legend[c]
			if !ok {
				return nil, fmt.Errorf("unknown glyph %q at (%d,%d)", c, x, y)
			}
			tm.SetGround(x, y, spec.ground)
			tm.SetObject(x, y, spec.object)
			tm.AddFlag(x, y, spec.flags)
		}
	}
	for _, v := range d.Vantages {
		if !tm.InBounds(v.X, v.Y) {
			return nil, fmt.Errorf("vantage (%d,%d) outside %dx%d map", v.X, v.Y, cols, rows)
		}
		lvl.Vantages = append(lvl.Vantages, fov.Point{X: v.X, Y: v.Y})
	}
	return lvl, nil
}

// legend merges the document legend over the default glyphs.
func (d *Document) legend() (map[byte]cellSpec, error) {
	out := make(map[byte]cellSpec)
	for c := 0; c < 256; c++ {
		if o, ok := tilemap.ObjectForGlyph(byte(c)); ok {
			out[byte(c)] = cellSpec{object: o}
		}
	}
	out['~'] = cellSpec{ground: tilemap.GroundWater}

	for key, e := range d.Legend {
		if len(key) != 1 {
			return nil, fmt.Errorf("legend key %q must be a single character", key)
		}
		if key[0] == VantageGlyph {
			return nil, fmt.Errorf("legend key %q is reserved for vantages", key)
		}
		var spec cellSpec
		if e.Object != "" {
			o, err := tilemap.ParseObject(e.Object)
			if err != nil {
				return nil, fmt.Errorf("legend %q: %w", key, err)
			}
			spec.object = o
		}
		if e.Ground != "" {
			g, err := tilemap.ParseGround(e.Ground)
			if err != nil {
				return nil, fmt.Errorf("legend %q: %w", key, err)
			}
			spec.ground = g
		}
		if e.Indoor {
			spec.flags |= tilemap.TileFlagIndoor
		}
		out[key[0]] = spec
	}
	return out, nil
}
