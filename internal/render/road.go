package render

import (
	"math"

	"github.com/neon-racer/neon_racer/internal/game"
	"github.com/neon-racer/neon_racer/internal/world"
)

// Camera places the viewer behind and above the player, looking down the road.
type Camera struct {
	Height     float64 // above the road
	Distance   float64 // behind the player
	FOV        float64 // vertical field of view, degrees
	Horizon    float64 // horizon row as a fraction of the screen height
	CellAspect float64 // cell height over cell width
	Near       float64
	Fog        float64 // depth past which the scene fades to haze
}

// DefaultCamera returns the chase camera for cells of the given aspect.
func DefaultCamera(cellAspect float64) Camera {
	return Camera{
		Height:     5,
		Distance:   10,
		FOV:        60,
		Horizon:    0.3,
		CellAspect: cellAspect,
		Near:       1,
		Fog:        260,
	}
}

// BendFactor scales the curved-world shift: a point at depth d moves
// sideways by bend * d² * BendFactor.
const BendFactor = 0.001

// Projection maps world coordinates onto a grid of cells.
type Projection struct {
	Cols, Rows int

	cam     Camera
	horizon float64
	focalX  float64
	focalY  float64
	bend    float64
}

// NewProjection prepares cam for a cols x rows grid and the road bend of the run.
func NewProjection(cols, rows int, cam Camera, bend float64) Projection {
	focalY := float64(rows) / 2 / math.Tan(cam.FOV*math.Pi/360)
	return Projection{
		Cols:    cols,
		Rows:    rows,
		cam:     cam,
		horizon: float64(rows) * cam.Horizon,
		focalX:  focalY * cam.CellAspect,
		focalY:  focalY,
		bend:    bend,
	}
}

// Horizon returns the screen row of the horizon.
func (p Projection) Horizon() float64 { return p.horizon }

// Depth returns the camera distance of world z.
func (p Projection) Depth(z float64) float64 { return p.cam.Distance - z }

// Shift returns the sideways bend offset at depth d.
func (p Projection) Shift(d float64) float64 { return p.bend * d * d * BendFactor }

// Project returns the screen position of the world point (x, y, z) and its
// depth. ok is false for points behind the near plane.
func (p Projection) Project(x, y, z float64) (sx, sy, d float64, ok bool) {
	d = p.Depth(z)
	if d < p.cam.Near {
		return 0, 0, d, false
	}
	sx = float64(p.Cols)/2 + (x+p.Shift(d))*p.focalX/d
	sy = p.horizon + (p.cam.Height-y)*p.focalY/d
	return sx, sy, d, true
}

// RowDepth returns the depth of the road seen through the middle of row.
// Rows at or above the horizon see no road.
func (p Projection) RowDepth(row int) (float64, bool) {
	dy := float64(row) + 0.5 - p.horizon
	if dy <= 0 {
		return 0, false
	}
	return p.cam.Height * p.focalY / dy, true
}

// GroundX returns the world x seen through the middle of col at depth d.
func (p Projection) GroundX(col int, d float64) float64 {
	return (float64(col)+0.5-float64(p.Cols)/2)*d/p.focalX - p.Shift(d)
}

// CellWidth returns the world width covered by one column at depth d.
func (p Projection) CellWidth(d float64) float64 { return d / p.focalX }

// Box returns the inclusive cell rectangle of an object of world size w x h
// standing on the road at (x, z).
func (p Projection) Box(x, z, w, h float64) (x0, y0, x1, y1 int, d float64, ok bool) {
	sx, sy, d, ok := p.Project(x, 0, z)
	if !ok {
		return 0, 0, 0, 0, d, false
	}
	cw := max(1, int(math.Round(w*p.focalX/d)))
	ch := max(1, int(math.Round(h*p.focalY/d)))
	x0 = int(math.Floor(sx - float64(cw)/2 + 0.5))
	x1 = x0 + cw - 1
	y1 = int(math.Ceil(sy)) - 1
	y0 = y1 - ch + 1
	return x0, y0, x1, y1, d, true
}

// Dash layout of the centre line, in meters along the road.
const (
	DashPeriod = 8.0
	DashLength = 5.0
)

const edgeInset = 0.45 // edge line distance inside the road edge

// Sprite sizes (width, height) in world units.
var carSizes = map[world.CarType][2]float64{
	world.CarMuscle: {2.0, 1.2},
	world.CarRacer:  {1.9, 1.0},
	world.CarSUV:    {2.2, 1.6},
	world.CarF1:     {1.8, 0.8},
	world.CarTruck:  {2.4, 2.0},
}

var trafficHeights = [world.VehicleClassCount]float64{
	world.VehicleTruck:  3.0,
	world.VehicleSUV:    1.7,
	world.VehicleSedan:  1.3,
	world.VehicleSports: 1.0,
	world.VehicleBike:   1.4,
}

var trafficColors = [world.VehicleClassCount][]uint8{
	world.VehicleTruck:  {ColorBrown, ColorCyan},
	world.VehicleSUV:    {ColorLightGreen, ColorLightGray, ColorBlue},
	world.VehicleSedan:  {ColorLightBlue, ColorLightRed, ColorLightMagenta, ColorWhite},
	world.VehicleSports: {ColorYellow},
	world.VehicleBike:   {ColorLightGray, ColorDarkGray},
}

// TrafficColor returns the body color of a traffic car driving in lane.
func TrafficColor(class world.VehicleClass, lane int) uint8 {
	if int(class) >= world.VehicleClassCount {
		return ColorWhite
	}
	cs := trafficColors[class]
	return cs[(lane%len(cs)+len(cs))%len(cs)]
}

var scenerySizes = [...][2]float64{
	world.SceneryTree:         {3, 6},
	world.SceneryBuilding:     {8, 18},
	world.SceneryCactus:       {1, 3},
	world.SceneryRock:         {3, 1.5},
	world.SceneryHouse:        {6, 5},
	world.SceneryIsland:       {12, 2},
	world.SceneryTrafficLight: {0.6, 6},
}

// RoadRenderer draws the 3D scene of a snapshot into a CellBuffer.
type RoadRenderer struct {
	Camera Camera
	Paint  world.Paint
}

// NewRoadRenderer creates a renderer for cells of the given aspect.
func NewRoadRenderer(cellAspect float64) *RoadRenderer {
	return &RoadRenderer{Camera: DefaultCamera(cellAspect)}
}

// Draw renders sky, road, scenery, traffic, particles and the player car.
func (r *RoadRenderer) Draw(buf *CellBuffer, snap *game.Snapshot) {
	proj := NewProjection(buf.Cols, buf.Rows, r.Camera, snap.Bend)
	colors := ColorsFor(snap.Biome)

	r.drawSky(buf, proj, colors)
	r.drawGround(buf, proj, colors, snap.Player.Odometer)
	for _, sc := range snap.Scenery {
		r.drawScenery(buf, proj, sc, snap.Clock)
	}
	for _, car := range snap.Traffic {
		r.drawTraffic(buf, proj, car)
	}
	for _, pt := range snap.Particles {
		r.drawParticle(buf, proj, pt)
	}
	r.drawPlayer(buf, proj, snap)
}

func (r *RoadRenderer) drawSky(buf *CellBuffer, proj Projection, colors BiomeColors) {
	top := min(int(math.Ceil(proj.Horizon())), buf.Rows)
	buf.Fill(0, 0, buf.Cols, top, ' ', ColorWhite, colors.Sky)
	if colors.Stars {
		for row := 0; row < top-1; row++ {
			for col := 0; col < buf.Cols; col++ {
				switch hash2(col, row) % 47 {
				case 0:
					buf.SetGlyph(col, row, GlyphSmallDot, ColorWhite)
				case 1:
					buf.SetGlyph(col, row, GlyphSmallDot, ColorDarkGray)
				}
			}
		}
	}
	if top >= 3 {
		buf.SetGlyph(buf.Cols/2, top-3, GlyphSun, ColorYellow)
	}
}

func (r *RoadRenderer) drawGround(buf *CellBuffer, proj Projection, colors BiomeColors, odometer float64) {
	half := world.RoadWidth / 2
	for row := 0; row < buf.Rows; row++ {
		d, ok := proj.RowDepth(row)
		if !ok {
			continue
		}
		z := proj.Depth(0) - d
		u := z - odometer
		dash := mod(u, DashPeriod) < DashLength
		line := max(proj.CellWidth(d)/2, 0.2)
		fogged := d > r.Camera.Fog

		for col := 0; col < buf.Cols; col++ {
			x := proj.GroundX(col, d)
			ax := math.Abs(x)
			if ax > half {
				if fogged {
					buf.Set(col, row, GlyphLightShade, colors.Ground, colors.Sky)
					continue
				}
				glyph := byte(' ')
				if hash2(int(math.Floor(u/3)), int(math.Floor(x/3)))%9 == 0 {
					glyph = GlyphSmallDot
				}
				buf.Set(col, row, glyph, colors.GroundFG, colors.Ground)
				continue
			}

			bg := colors.Road
			switch {
			case colors.HasShoulder && ax > half-0.3:
				bg = colors.Shoulder
			case colors.HasEdge && math.Abs(ax-(half-edgeInset)) <= line:
				bg = colors.Edge
			case dash && ax <= line:
				bg = colors.Centre
			}
			if fogged {
				buf.Set(col, row, GlyphLightShade, bg, colors.Sky)
				continue
			}
			buf.Set(col, row, ' ', ColorWhite, bg)
		}
	}
}

func (r *RoadRenderer) drawScenery(buf *CellBuffer, proj Projection, sc game.SceneryView, clock float64) {
	if int(sc.Kind) >= len(scenerySizes) {
		return
	}
	size := scenerySizes[sc.Kind]
	x0, y0, x1, y1, d, ok := proj.Box(sc.X, sc.Z, size[0], size[1])
	if !ok {
		return
	}
	if d > r.Camera.Fog {
		buf.SetGlyph((x0+x1)/2, y1, GlyphSmallDot, ColorDarkGray)
		return
	}
	h := y1 - y0 + 1
	for row := y0; row <= y1; row++ {
		for col := x0; col <= x1; col++ {
			switch sc.Kind {
			case world.SceneryTree:
				if row > y1-h/3 {
					if col == (x0+x1)/2 {
						buf.Set(col, row, ' ', ColorWhite, ColorBrown)
					}
				} else {
					buf.Set(col, row, GlyphClub, ColorLightGreen, ColorGreen)
				}
			case world.SceneryBuilding:
				glyph, fg := byte(' '), uint8(ColorDarkGray)
				if row < y1 && (col+row)%2 == 0 && hash2(col-x0, row-y0)%3 != 0 {
					glyph, fg = GlyphSquare, ColorYellow
				}
				buf.Set(col, row, glyph, fg, ColorDarkGray)
			case world.SceneryCactus:
				buf.SetGlyph(col, row, 215, ColorLightGreen)
			case world.SceneryRock:
				buf.Set(col, row, GlyphDarkShade, ColorLightGray, ColorDarkGray)
			case world.SceneryHouse:
				if h > 1 && row < y0+max(h/3, 1) {
					buf.SetGlyph(col, row, GlyphLowerHalf, ColorLightRed)
				} else {
					glyph := byte(' ')
					if row == y1 && col == (x0+x1)/2 {
						glyph = GlyphFullBlock
					}
					buf.Set(col, row, glyph, ColorBrown, ColorLightGray)
				}
			case world.SceneryIsland:
				if row == y0 && col == (x0+x1)/2 {
					buf.Set(col, row, GlyphSpade, ColorLightGreen, ColorBrown)
				} else {
					buf.Set(col, row, GlyphMediumShade, ColorYellow, ColorBrown)
				}
			case world.SceneryTrafficLight:
				if row == y0 {
					buf.SetGlyph(col, row, GlyphBullet, signalColor(clock))
				} else {
					buf.SetGlyph(col, row, GlyphVLine, ColorDarkGray)
				}
			}
		}
	}
}

// signalColor cycles green, amber and red every three seconds.
func signalColor(clock float64) uint8 {
	switch int(clock/3) % 3 {
	case 0:
		return ColorLightGreen
	case 1:
		return ColorYellow
	default:
		return ColorLightRed
	}
}

func (r *RoadRenderer) drawTraffic(buf *CellBuffer, proj Projection, car game.TrafficView) {
	if int(car.Class) >= world.VehicleClassCount {
		return
	}
	t := world.VehicleTemplates[car.Class]
	x0, y0, x1, y1, d, ok := proj.Box(car.X, car.Z, t.Width, trafficHeights[car.Class])
	if !ok {
		return
	}
	body := TrafficColor(car.Class, car.Lane)
	if d > r.Camera.Fog {
		buf.SetGlyph((x0+x1)/2, y1, GlyphSmallDot, body)
		return
	}
	drawCar(buf, x0, y0, x1, y1, body, 0)
}

func (r *RoadRenderer) drawParticle(buf *CellBuffer, proj Projection, pt game.ParticleView) {
	sx, sy, _, ok := proj.Project(pt.X, pt.Y, pt.Z)
	if !ok {
		return
	}
	glyph := byte(GlyphSmallDot)
	switch {
	case pt.Life > 0.6:
		glyph = GlyphBullet
	case pt.Life > 0.3:
		glyph = GlyphDot
	}
	buf.SetGlyph(int(math.Floor(sx)), int(math.Floor(sy)), glyph, ColorNitro)
}

func (r *RoadRenderer) drawPlayer(buf *CellBuffer, proj Projection, snap *game.Snapshot) {
	p := snap.Player
	if p.Invulnerable > 0 && int(p.Invulnerable*8)%2 == 1 {
		return
	}
	size, ok := carSizes[snap.Car]
	if !ok {
		size = carSizes[world.CarMuscle]
	}
	x0, y0, x1, y1, _, ok := proj.Box(p.RenderX, 0, size[0], size[1])
	if !ok {
		return
	}
	lean := 0
	switch tilt := (p.RenderX - p.LaneX) * 0.15; {
	case tilt > 0.05:
		lean = -1
	case tilt < -0.05:
		lean = 1
	}
	drawCar(buf, x0, y0, x1, y1, PaintColor(r.Paint), lean)
}

// drawCar draws a car seen from behind: a rounded roof, a rear window and
// tail lights on the bottom row. lean shifts the roof by one cell.
func drawCar(buf *CellBuffer, x0, y0, x1, y1 int, body uint8, lean int) {
	if x0 == x1 && y0 == y1 {
		buf.SetGlyph(x0, y0, GlyphSquare, body)
		return
	}
	for row := y0; row <= y1; row++ {
		for col := x0; col <= x1; col++ {
			switch {
			case row == y0 && y1 > y0:
				buf.SetGlyph(col+lean, row, GlyphLowerHalf, body)
			case row == y0+1 && y1-y0 >= 2 && col > x0 && col < x1:
				buf.Set(col, row, GlyphLightShade, ColorDarkGray, body)
			case row == y1 && (col == x0 || col == x1) && x1 > x0:
				buf.Set(col, row, GlyphBullet, ColorLightRed, body)
			default:
				buf.Set(col, row, ' ', ColorWhite, body)
			}
		}
	}
}

func mod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}

// hash2 scatters texture details deterministically over a grid.
func hash2(a, b int) uint32 {
	h := uint32(a)*374761393 + uint32(b)*668265263
	h = (h ^ h>>13) * 1274126177
	return h ^ h>>16
}
