package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/neon-racer/neon_racer/internal/audio"
	"github.com/neon-racer/neon_racer/internal/controls"
	"github.com/neon-racer/neon_racer/internal/profile"
	"github.com/neon-racer/neon_racer/internal/render"
	"github.com/neon-racer/neon_racer/internal/render/gfx"
	"github.com/neon-racer/neon_racer/internal/session"
	"github.com/neon-racer/neon_racer/internal/world"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	cellWidth    = 16
	cellHeight   = 16
	gridCols     = screenWidth / cellWidth   // 80
	gridRows     = screenHeight / cellHeight // 45
	title        = "Neon Racer"

	keySteerRate = 300.0 // steer units per second while an arrow is held

	// Steering widgets, in pixels.
	sliderLeft  = screenWidth / 4
	sliderWidth = screenWidth / 2
	sliderY     = screenHeight - 3*cellHeight
	wheelX      = screenWidth / 2
	wheelY      = screenHeight - 5*cellHeight
	wheelRadius = 3 * cellWidth
)

const menuHint = "UP/DOWN: select  LEFT/RIGHT: change  ENTER: race  ESC: quit"

// Game implements ebiten.Game.
type Game struct {
	session  *session.Session
	renderer *gfx.GridRenderer
	frame    controls.Frame
}

func NewGame(s *session.Session) *Game {
	atlas := gfx.NewFontAtlas()
	return &Game{
		session:  s,
		renderer: gfx.NewGridRenderer(atlas, cellWidth, cellHeight),
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if !g.session.Racing() {
			return ebiten.Termination
		}
		g.session.Abandon()
		return nil
	}
	dt := 1 / float64(ebiten.TPS())

	if !g.session.Racing() {
		g.updateMenu()
		return nil
	}

	g.readControls(dt)
	mode := g.session.Sim.ControlMode()
	g.session.Update(dt, g.frame.Input(mode))
	return nil
}

func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func pressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func (g *Game) updateMenu() {
	s := g.session
	switch {
	case justPressed(ebiten.KeyArrowUp, ebiten.KeyW):
		s.Menu.Up()
	case justPressed(ebiten.KeyArrowDown, ebiten.KeyS):
		s.Menu.Down()
	case justPressed(ebiten.KeyArrowLeft, ebiten.KeyArrowRight, ebiten.KeyA, ebiten.KeyD):
		if err := s.CycleSetting(); err != nil {
			log.Printf("settings not saved: %v", err)
		}
	case justPressed(ebiten.KeyEnter, ebiten.KeySpace):
		g.frame = controls.Frame{}
		s.StartRace()
	}
}

// readControls fills the frame from the keyboard and, in the continuous
// modes, the mouse.
func (g *Game) readControls(dt float64) {
	f := &g.frame
	f.Set(controls.ActionLeft, pressed(ebiten.KeyArrowLeft, ebiten.KeyA))
	f.Set(controls.ActionRight, pressed(ebiten.KeyArrowRight, ebiten.KeyD))
	f.Set(controls.ActionGas, pressed(ebiten.KeyArrowUp, ebiten.KeyW))
	f.Set(controls.ActionBrake, pressed(ebiten.KeyArrowDown, ebiten.KeyS))
	f.Set(controls.ActionBoost, pressed(ebiten.KeySpace, ebiten.KeyN, ebiten.KeyShift))

	mx, my := ebiten.CursorPosition()
	mouse := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	switch mode := g.session.Sim.ControlMode(); {
	case mode == world.ControlSlider && mouse:
		f.Steer = controls.SliderValue(float64(mx), sliderLeft, sliderWidth)
	case mode == world.ControlWheel && mouse:
		f.Steer = controls.WheelAngle(float64(mx-wheelX), float64(my-wheelY))
	default:
		f.Steer = controls.RampSteer(f.Steer, f.Down[controls.ActionLeft], f.Down[controls.ActionRight], dt, keySteerRate)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	buf := g.session.Draw()
	if g.session.Racing() {
		fps := fmt.Sprintf("FPS: %.0f", ebiten.ActualFPS())
		buf.WriteString(gridCols-len(fps)-1, gridRows-1, fps, render.ColorDarkGray, render.ColorBlack)
	}
	g.renderer.Draw(screen, buf)
	if g.session.Racing() {
		g.drawSteering(screen)
	}
}

// drawSteering shows the widget of the current control mode off the cell grid.
func (g *Game) drawSteering(screen *ebiten.Image) {
	steer := g.frame.Steer
	switch g.session.Sim.ControlMode() {
	case world.ControlSlider:
		for x := sliderLeft; x < sliderLeft+sliderWidth; x += cellWidth {
			g.renderer.DrawFloating(screen, render.GlyphHLine, render.ColorDarkGray, float64(x), sliderY)
		}
		kx := sliderLeft + (steer/controls.SteerLimit+1)/2*sliderWidth - cellWidth/2
		g.renderer.DrawFloating(screen, render.GlyphDiamond, render.ColorLightMagenta, kx, sliderY)
	case world.ControlWheel:
		g.renderer.DrawFloating(screen, render.GlyphCircle, render.ColorDarkGray, wheelX-cellWidth/2, wheelY-cellHeight/2)
		a := steer * math.Pi / 180
		px := wheelX + wheelRadius*math.Sin(a) - cellWidth/2
		py := wheelY - wheelRadius*math.Cos(a) - cellHeight/2
		g.renderer.DrawFloating(screen, render.GlyphBullet, render.ColorLightMagenta, px, py)
	default:
		left, right := uint8(render.ColorDarkGray), uint8(render.ColorDarkGray)
		if g.frame.Down[controls.ActionLeft] {
			left = render.ColorLightMagenta
		}
		if g.frame.Down[controls.ActionRight] {
			right = render.ColorLightMagenta
		}
		g.renderer.DrawFloating(screen, render.GlyphLeft, left, sliderLeft, sliderY)
		g.renderer.DrawFloating(screen, render.GlyphRight, right, sliderLeft+sliderWidth-cellWidth, sliderY)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	profilePath := flag.String("profile", profile.DefaultPath(), "settings and high score file")
	tuningPath := flag.String("tuning", "", "JSON file overriding gameplay constants")
	seed := flag.Uint64("seed", 0, "traffic seed; 0 picks one from the clock")
	flag.Parse()

	tuning, err := world.LoadTuningFile(*tuningPath)
	if err != nil {
		log.Fatal(err)
	}
	prof, err := profile.Load(*profilePath)
	if err != nil {
		log.Printf("%v; starting with default settings", err)
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	var sound session.Sound
	synth := audio.New()
	if err := synth.Start(); err != nil {
		log.Printf("sound disabled: %v", err)
	} else {
		defer synth.Close()
		sound = synth
	}

	s := session.New(session.Options{
		Cols:       gridCols,
		Rows:       gridRows,
		CellAspect: float64(cellHeight) / cellWidth,
		Tuning:     tuning,
		Seed:       *seed,
		Profile:    prof,
		Sound:      sound,
		Hint:       menuHint,
	})

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(NewGame(s)); err != nil {
		log.Fatal(err)
	}
	if err := prof.Err(); err != nil {
		log.Printf("high score not saved: %v", err)
	}
}
