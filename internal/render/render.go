// Package render draws visibility results as text and images.
package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/Garsondee/shadowcast/fov"
	"github.com/Garsondee/shadowcast/internal/tilemap"
)

// HiddenGlyph is the default glyph for tiles out of view.
const HiddenGlyph = ' '

// Glyphs used by Diff for cells only one of the two grids marks visible.
const (
	OnlyFirstGlyph  = '1'
	OnlySecondGlyph = '2'
)

func visibleAt(vis []byte, i int) bool {
	return i < len(vis) && vis[i] != 0
}

// ASCII draws the map as seen from vantage: '@' at the vantage, the tile
// glyph where visible and a blank elsewhere.
func ASCII(tm *tilemap.TileMap, vis []byte, vantage fov.Point) string {
	return ASCIIWith(tm, vis, vantage, HiddenGlyph)
}

// ASCIIWith is ASCII with a custom glyph for hidden tiles.
func ASCIIWith(tm *tilemap.TileMap, vis []byte, vantage fov.Point, hidden byte) string {
	var sb strings.Builder
	sb.Grow((tm.Cols + 1) * tm.Rows)
	for row := 0; row < tm.Rows; row++ {
		for col := 0; col < tm.Cols; col++ {
			i := tm.Index(col, row)
			switch {
			case col == vantage.X && row == vantage.Y:
				sb.WriteByte('@')
			case visibleAt(vis, i):
				sb.WriteByte(tm.Tiles[i].Glyph())
			default:
				sb.WriteByte(hidden)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Diff overlays two visibility grids of the same map. Cells both grids
// mark are drawn with their tile glyph, cells only one marks with
// OnlyFirstGlyph or OnlySecondGlyph. It also returns how many cells differ.
func Diff(tm *tilemap.TileMap, a, b []byte, vantage fov.Point) (string, int) {
	var sb strings.Builder
	sb.Grow((tm.Cols + 1) * tm.Rows)
	n := 0
	for row := 0; row < tm.Rows; row++ {
		for col := 0; col < tm.Cols; col++ {
			i := tm.Index(col, row)
			va, vb := visibleAt(a, i), visibleAt(b, i)
			switch {
			case col == vantage.X && row == vantage.Y:
				sb.WriteByte('@')
			case va && vb:
				sb.WriteByte(tm.Tiles[i].Glyph())
			case va:
				sb.WriteByte(OnlyFirstGlyph)
				n++
			case vb:
				sb.WriteByte(OnlySecondGlyph)
				n++
			default:
				sb.WriteByte(HiddenGlyph)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String(), n
}

// Image returns a one-pixel-per-tile picture of the visibility grid.
func Image(tm *tilemap.TileMap, vis []byte, vantage fov.Point) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, tm.Cols, tm.Rows))
	for row := 0; row < tm.Rows; row++ {
		for col := 0; col < tm.Cols; col++ {
			i := tm.Index(col, row)
			c := TileColour(tm.Tiles[i], visibleAt(vis, i))
			if col == vantage.X && row == vantage.Y {
				c = VantageColour
			}
			img.SetRGBA(col, row, c)
		}
	}
	return img
}

// Scale enlarges img so every pixel becomes a cellSize square.
func Scale(img image.Image, cellSize int) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*cellSize, b.Dy()*cellSize))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// PNG encodes the visibility grid with cellSize pixels per tile.
func PNG(w io.Writer, tm *tilemap.TileMap, vis []byte, vantage fov.Point, cellSize int) error {
	if cellSize < 1 {
		return fmt.Errorf("cell size %d must be at least 1", cellSize)
	}
	if err := png.Encode(w, Scale(Image(tm, vis, vantage), cellSize)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
