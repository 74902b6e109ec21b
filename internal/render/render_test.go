package render

import (
	"math"
	"testing"

	"github.com/neon-racer/neon_racer/internal/game"
	"github.com/neon-racer/neon_racer/internal/hud"
	"github.com/neon-racer/neon_racer/internal/profile"
	"github.com/neon-racer/neon_racer/internal/world"
)

func TestCP437RoundTrip(t *testing.T) {
	for code := 1; code < 256; code++ {
		r := CP437ToUnicode[code]
		got, ok := ToCP437(r)
		if !ok || int(got) != code {
			t.Fatalf("code %d -> %q -> %d (%v)", code, r, got, ok)
		}
	}
	if _, ok := ToCP437('♡'); ok {
		t.Error("♡ has no CP437 code")
	}
	if code, _ := ToCP437('█'); code != GlyphFullBlock {
		t.Errorf("█ = %d", code)
	}
}

func TestCellBufferWrites(t *testing.T) {
	buf := NewCellBuffer(10, 3)
	n := buf.WriteString(8, 1, "a♥z", ColorYellow, ColorBlue)
	if n != 3 {
		t.Fatalf("wrote %d runes", n)
	}
	if c := buf.Get(9, 1); c.Glyph != GlyphHeart || c.FG != ColorYellow || c.BG != ColorBlue {
		t.Fatalf("cell = %+v", c)
	}
	buf.WriteString(0, 0, "é♡", ColorWhite, ColorBlack)
	if buf.Get(1, 0).Glyph != '?' {
		t.Error("unmapped rune not replaced")
	}

	buf.SetBG(0, 2, ColorRed)
	buf.SetGlyph(0, 2, 'x', ColorGreen)
	if c := buf.Get(0, 2); c != (Cell{'x', ColorGreen, ColorRed}) {
		t.Fatalf("layered cell = %+v", c)
	}

	buf.WriteCentered(2, "abcd", ColorWhite, ColorBlack)
	if buf.Get(3, 2).Glyph != 'a' || buf.Get(6, 2).Glyph != 'd' {
		t.Error("string not centered")
	}

	buf.Resize(4, 4)
	if len(buf.Cells) != 16 || buf.Get(0, 2).Glyph != ' ' {
		t.Error("resize did not clear")
	}
	if buf.Get(-1, 0) != (Cell{}) {
		t.Error("out of bounds read")
	}
}

func TestAtlasGlyphs(t *testing.T) {
	img := BuildAtlas()
	if img.Bounds().Dx() != 256 || img.Bounds().Dy() != 256 {
		t.Fatalf("atlas bounds %v", img.Bounds())
	}
	inked := func(code byte) int {
		n := 0
		r := AtlasRect(code)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				if img.NRGBAAt(x, y).A > 0 {
					n++
				}
			}
		}
		return n
	}

	if n := inked(GlyphFullBlock); n != GlyphWidth*GlyphHeight {
		t.Errorf("full block inked %d pixels", n)
	}
	if n := inked(GlyphLowerHalf); n != GlyphWidth*GlyphHeight/2 {
		t.Errorf("lower half inked %d pixels", n)
	}
	if n := inked(' '); n != 0 {
		t.Errorf("space inked %d pixels", n)
	}
	for _, code := range []byte{'A', '7', GlyphHeart, GlyphSun, GlyphSmallDot, 201, 205, 215} {
		if inked(code) == 0 {
			t.Errorf("glyph %d is blank", code)
		}
	}
}

func TestProjection(t *testing.T) {
	cam := DefaultCamera(2)
	p := NewProjection(80, 45, cam, 0)

	sx, sy, d, ok := p.Project(0, 0, 0)
	if !ok || d != 10 || sx != 40 {
		t.Fatalf("player projects to (%v, %v) depth %v", sx, sy, d)
	}
	if sy <= p.Horizon() || sy >= 45 {
		t.Fatalf("player row %v outside the road area", sy)
	}
	if _, _, _, ok := p.Project(0, 0, 15); ok {
		t.Error("point behind the camera projected")
	}

	// Depth seen through a row matches the depth that projects onto it.
	_, far, _, _ := p.Project(0, 0, -90)
	row := int(far)
	depth, ok := p.RowDepth(row)
	if !ok || math.Abs(depth-100) > 15 {
		t.Errorf("row %d sees depth %v, want ~100", row, depth)
	}
	if _, ok := p.RowDepth(0); ok {
		t.Error("sky row sees the road")
	}

	// The bend shifts far points, not the camera column.
	bent := NewProjection(80, 45, cam, 0.4)
	farX, _, _, _ := bent.Project(0, 0, -200)
	if farX <= 40 {
		t.Errorf("positive bend moved far road to column %v", farX)
	}
	if x := bent.GroundX(40, 210); math.Abs(x+bent.Shift(210)) > bent.CellWidth(210) {
		t.Errorf("centre column sees x=%v", x)
	}
}

func TestBoxGrowsWithProximity(t *testing.T) {
	p := NewProjection(80, 45, DefaultCamera(2), 0)
	x0, y0, x1, y1, _, ok := p.Box(0, -20, 2, 1.4)
	fx0, fy0, fx1, fy1, _, fok := p.Box(0, -200, 2, 1.4)
	if !ok || !fok {
		t.Fatal("boxes not visible")
	}
	if x1-x0 <= fx1-fx0 || y1-y0 < fy1-fy0 {
		t.Errorf("near box %d..%d smaller than far box %d..%d", x0, x1, fx0, fx1)
	}
	if y1 <= fy1 {
		t.Error("near box not below far box")
	}
}

func countBG(buf *CellBuffer, bg uint8) int {
	n := 0
	for _, c := range buf.Cells {
		if c.BG == bg {
			n++
		}
	}
	return n
}

func TestRoadDraw(t *testing.T) {
	buf := NewCellBuffer(80, 45)
	r := NewRoadRenderer(2)
	r.Paint = world.PaintCyan
	snap := &game.Snapshot{
		Playing: true,
		Biome:   world.BiomeCity,
		Player:  game.PlayerState{Health: 3, Speed: 100},
		Traffic: []game.TrafficView{{Class: world.VehicleSports, Lane: 2, X: 2.5, Z: -30}},
	}
	r.Draw(buf, snap)

	if c := buf.Get(5, 0); c.BG != ColorSkyCity {
		t.Errorf("sky cell = %+v", c)
	}
	if countBG(buf, ColorAsphalt) == 0 {
		t.Error("no road drawn")
	}
	if countBG(buf, ColorWhite) == 0 {
		t.Error("city road has no edge lines")
	}
	if countBG(buf, PaintColor(world.PaintCyan)) == 0 {
		t.Error("player car missing")
	}
	if countBG(buf, TrafficColor(world.VehicleSports, 2)) == 0 {
		t.Error("traffic car missing")
	}

	buf.Clear()
	snap.Biome = world.BiomeJungle
	snap.Traffic = nil
	r.Draw(buf, snap)
	if countBG(buf, ColorDirtRoad) == 0 {
		t.Error("no jungle road")
	}
	if countBG(buf, ColorWhite) != 0 {
		t.Error("jungle road has edge lines")
	}
}

func TestPlayerBlinksWhileInvulnerable(t *testing.T) {
	buf := NewCellBuffer(80, 45)
	r := NewRoadRenderer(2)
	snap := &game.Snapshot{Player: game.PlayerState{Health: 2, Invulnerable: 1.2}}
	r.Draw(buf, snap)
	hidden := countBG(buf, PaintColor(r.Paint)) == 0

	buf.Clear()
	snap.Player.Invulnerable = 1.1
	r.Draw(buf, snap)
	shown := countBG(buf, PaintColor(r.Paint)) > 0
	if !hidden || !shown {
		t.Errorf("blink phases: hidden=%v shown=%v", hidden, shown)
	}
}

func TestDrawHUD(t *testing.T) {
	buf := NewCellBuffer(80, 45)
	h := hud.New(3)
	h.Reset()
	h.Observe(0, game.StepResult{Events: []game.Event{{Kind: game.EventCrash, Health: 2}}})
	snap := &game.Snapshot{
		Playing: true,
		Player:  game.PlayerState{Distance: 42, Speed: 120, Health: 2},
		Boost:   game.NewBoostMeter(12, 4, 0.5),
	}
	DrawHUD(buf, h.Model(snap, nil))

	if buf.Get(1, 0).Glyph != '4' || buf.Get(2, 0).Glyph != '2' {
		t.Error("score missing")
	}
	if c := buf.Get(2, 1); c.Glyph != GlyphHeart || c.FG != ColorLightRed {
		t.Errorf("second heart = %+v", c)
	}
	if c := buf.Get(3, 1); c.FG != ColorDarkGray {
		t.Errorf("lost heart = %+v", c)
	}
	if buf.Get(40, 44).BG != ColorRed {
		t.Error("no danger frame")
	}
}

func TestDrawHUDComboTimer(t *testing.T) {
	buf := NewCellBuffer(80, 45)
	DrawHUD(buf, hud.Model{ComboTimer: "x2 0.9s", MaxHealth: 3})
	x := 80 - nitroBarWidth - 12
	if c := buf.Get(x, 2); c.Glyph != 'x' || c.FG != ColorLightMagenta {
		t.Fatalf("combo timer cell = %+v", c)
	}
	if buf.Get(x+3, 2).Glyph != '0' {
		t.Error("combo seconds missing")
	}
}

func TestDrawOverlay(t *testing.T) {
	buf := NewCellBuffer(80, 45)
	m := hud.Model{Title: "NEON RACER", Best: "BEST: 0 M", Prompt: "START"}
	var menu hud.Menu
	DrawOverlay(buf, m, menu.Lines(profile.DefaultSettings()), "ENTER: start")

	found := false
	for y := 0; y < buf.Rows && !found; y++ {
		for x := 0; x < buf.Cols; x++ {
			if buf.Get(x, y).Glyph == GlyphRight {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("menu cursor not drawn")
	}
	if buf.Get(34, 44).Glyph != 'E' {
		t.Error("hint not drawn")
	}

	buf.Clear()
	DrawOverlay(buf, hud.Model{}, nil, "")
	if countBG(buf, ColorBlack) != len(buf.Cells) || buf.Get(40, 22).Glyph != ' ' {
		t.Error("overlay drawn during a run")
	}
}
