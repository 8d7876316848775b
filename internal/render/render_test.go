package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/Garsondee/shadowcast/fov"
	"github.com/Garsondee/shadowcast/internal/tilemap"
)

// corridor is a 5x3 map: walls round a single row of floor with a closed
// door in the middle.
func corridor() *tilemap.TileMap {
	tm := tilemap.NewTileMap(5, 3)
	for col := 0; col < 5; col++ {
		tm.SetObject(col, 0, tilemap.ObjectWall)
		tm.SetObject(col, 2, tilemap.ObjectWall)
	}
	tm.SetObject(0, 1, tilemap.ObjectWall)
	tm.SetObject(4, 1, tilemap.ObjectWall)
	tm.SetObject(2, 1, tilemap.ObjectDoor)
	return tm
}

func TestASCII_HiddenBehindDoor(t *testing.T) {
	tm := corridor()
	vantage := fov.Point{X: 1, Y: 1}
	vis, err := tm.Visible(fov.EngineDense, vantage, 5)
	if err != nil {
		t.Fatalf("Visible: %v", err)
	}
	got := ASCII(tm, vis, vantage)
	want := "###  \n#@+  \n###  \n"
	if got != want {
		t.Fatalf("ASCII mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestASCIIWith_CustomHiddenGlyph(t *testing.T) {
	tm := corridor()
	vis := make([]byte, len(tm.Tiles))
	got := ASCIIWith(tm, vis, fov.Point{X: 3, Y: 1}, '?')
	if got != "?????\n???@?\n?????\n" {
		t.Fatalf("unexpected render:\n%s", got)
	}
}

func TestASCII_ShortGridTreatedAsHidden(t *testing.T) {
	tm := corridor()
	got := ASCII(tm, []byte{1}, fov.Point{X: 1, Y: 1})
	if !strings.HasPrefix(got, "#    \n") {
		t.Fatalf("expected only the first cell drawn, got:\n%s", got)
	}
}

func TestDiff_MarksDisagreements(t *testing.T) {
	tm := corridor()
	a := make([]byte, len(tm.Tiles))
	b := make([]byte, len(tm.Tiles))
	a[tm.Index(0, 0)] = 1
	b[tm.Index(0, 0)] = 1
	a[tm.Index(1, 0)] = 1
	b[tm.Index(3, 1)] = 1

	got, n := Diff(tm, a, b, fov.Point{X: 1, Y: 1})
	if n != 2 {
		t.Fatalf("expected 2 differing cells, got %d", n)
	}
	want := "#1   \n @ 2 \n     \n"
	if got != want {
		t.Fatalf("Diff mismatch\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestDiff_EnginesOnPillarRoom(t *testing.T) {
	tm := tilemap.NewTileMap(10, 10)
	for row := 0; row < 10; row++ {
		for col := 0; col < 10; col++ {
			if row < 2 || row > 7 || col < 2 || col > 7 {
				tm.SetObject(col, row, tilemap.ObjectWall)
			}
		}
	}
	tm.SetObject(3, 3, tilemap.ObjectPillar)
	vantage := fov.Point{X: 5, Y: 4}
	dense, err := tm.Visible(fov.EngineDense, vantage, 10)
	if err != nil {
		t.Fatal(err)
	}
	sparse, err := tm.Visible(fov.EngineSparse, vantage, 10)
	if err != nil {
		t.Fatal(err)
	}
	_, n := Diff(tm, dense, sparse, vantage)
	if n == 0 {
		t.Fatal("expected the engines to disagree somewhere on the pillar room")
	}
}

func TestImage_ColoursVisibility(t *testing.T) {
	tm := corridor()
	vantage := fov.Point{X: 1, Y: 1}
	vis := make([]byte, len(tm.Tiles))
	vis[tm.Index(0, 0)] = 1

	img := Image(tm, vis, vantage)
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 3 {
		t.Fatalf("expected 5x3 image, got %v", img.Bounds())
	}
	if img.RGBAAt(1, 1) != VantageColour {
		t.Fatal("vantage tile should use VantageColour")
	}
	lit := img.RGBAAt(0, 0)
	dark := img.RGBAAt(1, 0)
	if lit.R <= dark.R || lit.G <= dark.G || lit.B <= dark.B {
		t.Fatalf("visible wall %v should be brighter than hidden wall %v", lit, dark)
	}
}

func TestTileColour_ObjectOverridesGround(t *testing.T) {
	water := tilemap.Tile{Ground: tilemap.GroundWater}
	wall := tilemap.Tile{Ground: tilemap.GroundWater, Object: tilemap.ObjectWall}
	if TileColour(water, true) == TileColour(wall, true) {
		t.Fatal("a wall on water should not look like water")
	}
	if TileColour(water, true).A != 255 || TileColour(water, false).A != 255 {
		t.Fatal("tile colours should be opaque")
	}
}

func TestPNG_ScalesCells(t *testing.T) {
	tm := corridor()
	vantage := fov.Point{X: 1, Y: 1}
	vis, err := tm.Visible(fov.EngineSparse, vantage, 5)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := PNG(&buf, tm, vis, vantage, 4); err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 12 {
		t.Fatalf("expected 20x12, got %v", img.Bounds())
	}
	r, g, b, _ := img.At(5, 5).RGBA()
	vr, vg, vb, _ := VantageColour.RGBA()
	if r != vr || g != vg || b != vb {
		t.Fatal("scaled vantage cell should keep its colour")
	}
}

func TestPNG_RejectsBadCellSize(t *testing.T) {
	var buf bytes.Buffer
	if err := PNG(&buf, corridor(), nil, fov.Point{}, 0); err == nil {
		t.Fatal("expected error for cell size 0")
	}
}
