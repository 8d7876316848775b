// Package viewer is an interactive ebiten front end for exploring FOV on a
// tile map.
package viewer

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/Garsondee/shadowcast/fov"
	"github.com/Garsondee/shadowcast/internal/config"
	"github.com/Garsondee/shadowcast/internal/mapfile"
	"github.com/Garsondee/shadowcast/internal/render"
	"github.com/Garsondee/shadowcast/internal/tilemap"
)

// hudScale is the upscale factor applied to the debug-font HUD.
const hudScale = 2

// damageStep is the durability removed by one B press.
const damageStep = 25

// Game holds the map, the current query and the input state.
type Game struct {
	log      *zap.Logger
	name     string
	tm       *tilemap.TileMap
	tileSize int

	vantage fov.Point
	engine  fov.Engine
	radius  int
	vis     []byte
	visible int
	agree   float64
	err     error
	dirty   bool

	cursor   fov.Point
	cursorOK bool

	showHUD bool
	hudBuf  *ebiten.Image
}

// New builds a viewer for lvl. The first vantage of the level is used, or
// the map centre when it has none.
func New(lvl *mapfile.Level, cfg *config.Config, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	radius := cfg.FOV.Radius
	if lvl.Radius > 0 {
		radius = lvl.Radius
	}
	vantage := fov.Point{X: lvl.Map.Cols / 2, Y: lvl.Map.Rows / 2}
	if len(lvl.Vantages) > 0 {
		vantage = lvl.Vantages[0]
	}
	g := &Game{
		log:      log,
		name:     lvl.Name,
		tm:       lvl.Map,
		tileSize: cfg.Viewer.TileSize,
		vantage:  vantage,
		engine:   cfg.FOV.Engine,
		radius:   radius,
		showHUD:  cfg.Viewer.ShowHUD,
		dirty:    true,
	}
	g.recompute()
	return g
}

// recompute reruns the current query if anything changed since the last one.
func (g *Game) recompute() {
	if !g.dirty {
		return
	}
	g.dirty = false
	vis, err := g.tm.Visible(g.engine, g.vantage, g.radius)
	g.err = err
	if err != nil {
		g.log.Warn("fov query failed", zap.Error(err))
		g.vis = nil
		g.visible = 0
		return
	}
	g.vis = vis
	g.visible = 0
	for _, v := range vis {
		if v != 0 {
			g.visible++
		}
	}
	g.agree = g.tm.RayAgreement(g.vantage, vis)
	g.log.Debug("fov updated",
		zap.String("map", g.name),
		zap.Stringer("engine", g.engine),
		zap.Stringer("vantage", g.vantage),
		zap.Int("radius", g.radius),
		zap.Int("visible", g.visible),
	)
}

// moveVantage places the viewer on p. Tiles a walker cannot enter are
// refused.
func (g *Game) moveVantage(p fov.Point) {
	if p == g.vantage || !g.tm.IsPassable(p.X, p.Y) {
		return
	}
	g.vantage = p
	g.dirty = true
}

func (g *Game) cycleEngine() {
	g.engine = g.engine.Next()
	g.dirty = true
}

func (g *Game) changeRadius(delta int) {
	r := clampRadius(g.radius+delta, g.maxRadius())
	if r != g.radius {
		g.radius = r
		g.dirty = true
	}
}

func (g *Game) maxRadius() int {
	return g.tm.Cols + g.tm.Rows
}

func (g *Game) toggleDoor(p fov.Point) {
	if g.tm.ToggleDoor(p.X, p.Y) {
		g.log.Debug("door toggled", zap.Stringer("at", p), zap.Stringer("now", g.tm.ObjectAt(p.X, p.Y)))
		g.dirty = true
	}
}

// damage hits the tile at p once. The query reruns only when the object
// changed.
func (g *Game) damage(p fov.Point) {
	t := g.tm.At(p.X, p.Y)
	if t == nil {
		return
	}
	before := t.Object
	g.tm.DamageTile(p.X, p.Y, damageStep)
	if t.Object != before {
		g.log.Debug("tile broken", zap.Stringer("at", p), zap.Stringer("was", before), zap.Stringer("now", t.Object))
		g.dirty = true
	}
}

// cursorCell returns the tile under the mouse, if any.
func (g *Game) cursorCell() (fov.Point, bool) {
	mx, my := ebiten.CursorPosition()
	return screenToCell(mx, my, g.tileSize, g.tm.Cols, g.tm.Rows)
}

// handleInput applies edge-triggered key and mouse presses.
func (g *Game) handleInput() {
	g.cursor, g.cursorOK = g.cursorCell()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && g.cursorOK {
		g.moveVantage(g.cursor)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.cycleEngine()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.changeRadius(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.changeRadius(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) && g.cursorOK {
		g.toggleDoor(g.cursor)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) && g.cursorOK {
		g.damage(g.cursor)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
}

func (g *Game) Update() error {
	g.handleInput()
	g.recompute()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})

	ts := float32(g.tileSize)
	for row := 0; row < g.tm.Rows; row++ {
		for col := 0; col < g.tm.Cols; col++ {
			i := g.tm.Index(col, row)
			visible := i < len(g.vis) && g.vis[i] != 0
			x0, y0 := float32(col)*ts, float32(row)*ts
			vector.FillRect(screen, x0, y0, ts, ts, tileColour(g.tm.Tiles[i], visible), false)
		}
	}

	// Vantage marker and radius outline.
	vx, vy := float32(g.vantage.X)*ts, float32(g.vantage.Y)*ts
	inset := ts / 4
	vector.FillRect(screen, vx+inset, vy+inset, ts-2*inset, ts-2*inset, render.VantageColour, false)
	vector.StrokeRect(screen, vx, vy, ts, ts, 1.0, color.RGBA{R: 255, G: 255, B: 255, A: 120}, false)

	if g.cursorOK {
		vector.StrokeRect(screen, float32(g.cursor.X)*ts, float32(g.cursor.Y)*ts, ts, ts, 1.0,
			color.RGBA{R: 80, G: 140, B: 80, A: 160}, false)
	}

	if g.showHUD {
		g.drawHUD(screen)
	}
}

// hudLines is the HUD text for the current state.
func (g *Game) hudLines() []string {
	lines := []string{
		fmt.Sprintf("Map: %s", g.name),
		fmt.Sprintf("Engine: %s  Tab=switch", g.engine),
		fmt.Sprintf("Radius: %d  +/- adjust", g.radius),
		fmt.Sprintf("Vantage: %v  click=move", g.vantage),
		fmt.Sprintf("Visible: %d  ray agreement: %.2f", g.visible, g.agree),
	}
	if g.cursorOK {
		t := g.tm.At(g.cursor.X, g.cursor.Y)
		lines = append(lines, fmt.Sprintf("Cursor: %v %s opacity=%.1f hp=%d",
			g.cursor, tileLabel(*t), g.tm.Opacity(g.cursor.X, g.cursor.Y), t.Durability))
	}
	if g.err != nil {
		lines = append(lines, fmt.Sprintf("error: %v", g.err))
	}
	lines = append(lines, "D=toggle door  B=damage (under cursor)", "[H] toggle HUD")
	return lines
}

func tileLabel(t tilemap.Tile) string {
	if t.Object != tilemap.ObjectNone {
		return t.Object.String()
	}
	return t.Ground.String()
}

// drawHUD renders state and key hints in the bottom-left corner.
// Text is drawn into hudBuf at 1x then composited onto the screen at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	w, h := g.Layout(0, 0)
	if g.hudBuf == nil {
		g.hudBuf = ebiten.NewImage(w/hudScale, h/hudScale)
	}

	lines := g.hudLines()
	const lineH = 12 // debug font line height at 1x
	const charW = 6  // debug font char width at 1x
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bx := float32(4)
	by := float32(h/hudScale) - boxH - 4

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH,
		color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH,
		1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(hudScale), float64(hudScale))
	screen.DrawImage(g.hudBuf, opts)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.tm.Cols * g.tileSize, g.tm.Rows * g.tileSize
}

// screenToCell maps a screen pixel to the tile under it.
func screenToCell(x, y, tileSize, cols, rows int) (fov.Point, bool) {
	if x < 0 || y < 0 || tileSize <= 0 {
		return fov.Point{}, false
	}
	p := fov.Point{X: x / tileSize, Y: y / tileSize}
	if p.X >= cols || p.Y >= rows {
		return fov.Point{}, false
	}
	return p, true
}

// tileColour is the fill for a tile, dimmed when out of view.
func tileColour(t tilemap.Tile, visible bool) color.RGBA {
	return render.TileColour(t, visible)
}

func clampRadius(r, limit int) int {
	if r < 0 {
		return 0
	}
	if r > limit {
		return limit
	}
	return r
}
