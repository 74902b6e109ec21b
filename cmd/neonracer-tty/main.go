// Command neonracer-tty plays Neon Racer in a terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/neon-racer/neon_racer/internal/audio"
	"github.com/neon-racer/neon_racer/internal/controls"
	"github.com/neon-racer/neon_racer/internal/profile"
	"github.com/neon-racer/neon_racer/internal/render"
	"github.com/neon-racer/neon_racer/internal/session"
	"github.com/neon-racer/neon_racer/internal/world"
)

const (
	frameRate = 30
	maxStep   = 0.1 // seconds; longer stalls are not simulated
	// Terminals repeat a held key after a delay of up to half a second.
	keyHold      = 0.5
	keySteerRate = 300.0
	cellAspect   = 2.0
)

const menuHint = "↑↓ select  ←→ change  ENTER race  ESC quit or leave race"

type client struct {
	screen  tcell.Screen
	session *session.Session
	keys    *controls.HeldKeys
	frame   controls.Frame
	colors  [render.PaletteSize]tcell.Color
}

func newClient(s tcell.Screen, sess *session.Session) *client {
	c := &client{screen: s, session: sess, keys: controls.NewHeldKeys(keyHold)}
	for i, rgb := range render.Palette {
		c.colors[i] = tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
	}
	return c
}

// actionForKey maps a terminal key to a driving action.
func actionForKey(e *tcell.EventKey) (controls.Action, bool) {
	switch e.Key() {
	case tcell.KeyLeft:
		return controls.ActionLeft, true
	case tcell.KeyRight:
		return controls.ActionRight, true
	case tcell.KeyUp:
		return controls.ActionGas, true
	case tcell.KeyDown:
		return controls.ActionBrake, true
	case tcell.KeyRune:
		return controls.ActionForRune(e.Rune())
	}
	return 0, false
}

// handleQuit reports whether the key closes the client. Escape during a
// race only abandons it.
func (c *client) handleQuit(e *tcell.EventKey) bool {
	switch e.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape:
		if !c.session.Racing() {
			return true
		}
		c.session.Abandon()
	}
	return false
}

func (c *client) handleKey(e *tcell.EventKey) {
	s := c.session
	if s.Racing() {
		if a, ok := actionForKey(e); ok {
			c.keys.Press(a)
		}
		return
	}

	a, ok := actionForKey(e)
	switch {
	case e.Key() == tcell.KeyEnter, ok && a == controls.ActionBoost:
		c.keys = controls.NewHeldKeys(keyHold)
		c.frame = controls.Frame{}
		s.StartRace()
	case ok && a == controls.ActionGas:
		s.Menu.Up()
	case ok && a == controls.ActionBrake:
		s.Menu.Down()
	case ok && (a == controls.ActionLeft || a == controls.ActionRight):
		if err := s.CycleSetting(); err != nil {
			log.Printf("settings not saved: %v", err)
		}
	}
}

func (c *client) update(dt float64) {
	s := c.session
	if !s.Racing() {
		return
	}
	c.keys.Advance(dt)
	f := &c.frame
	c.keys.Fill(f)
	mode := s.Sim.ControlMode()
	if mode.Continuous() {
		f.Steer = controls.RampSteer(f.Steer, f.Down[controls.ActionLeft], f.Down[controls.ActionRight], dt, keySteerRate)
	}
	s.Update(dt, f.Input(mode))
}

func (c *client) render() {
	buf := c.session.Draw()
	for y := 0; y < buf.Rows; y++ {
		for x := 0; x < buf.Cols; x++ {
			cell := buf.Get(x, y)
			st := tcell.StyleDefault.Foreground(c.colors[cell.FG]).Background(c.colors[cell.BG])
			c.screen.SetContent(x, y, render.CP437ToUnicode[cell.Glyph], nil, st)
		}
	}
	c.screen.Show()
}

func (c *client) resize() {
	w, h := c.screen.Size()
	if w > 0 && h > 0 {
		c.session.Resize(w, h)
	}
	c.screen.Sync()
}

func main() {
	profilePath := flag.String("profile", profile.DefaultPath(), "settings and high score file")
	tuningPath := flag.String("tuning", "", "JSON file overriding gameplay constants")
	seed := flag.Uint64("seed", 0, "traffic seed; 0 picks one from the clock")
	quiet := flag.Bool("quiet", false, "do not open the audio device")
	flag.Parse()

	tuning, err := world.LoadTuningFile(*tuningPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// The screen owns the terminal; warnings are printed after Fini.
	var warnings []string
	prof, err := profile.Load(*profilePath)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("%v; started with default settings", err))
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	var sound session.Sound
	if !*quiet {
		synth := audio.New()
		if err := synth.Start(); err != nil {
			warnings = append(warnings, fmt.Sprintf("sound disabled: %v", err))
		} else {
			defer synth.Close()
			sound = synth
		}
	}

	s, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := s.Init(); err != nil {
		log.Fatal(err)
	}
	s.Clear()
	s.HideCursor()

	w, h := s.Size()
	c := newClient(s, session.New(session.Options{
		Cols:       w,
		Rows:       h,
		CellAspect: cellAspect,
		Tuning:     tuning,
		Seed:       *seed,
		Profile:    prof,
		Sound:      sound,
		Hint:       menuHint,
	}))
	log.SetOutput(logSink{&warnings})

	c.run()
	s.Fini()

	if err := prof.Err(); err != nil {
		warnings = append(warnings, fmt.Sprintf("high score not saved: %v", err))
	}
	for _, msg := range warnings {
		fmt.Fprintln(os.Stderr, msg)
	}
}

// logSink collects log output while the screen is up.
type logSink struct{ lines *[]string }

func (l logSink) Write(p []byte) (int, error) {
	*l.lines = append(*l.lines, strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func (c *client) run() {
	events := make(chan tcell.Event, 32)
	go func() {
		for {
			events <- c.screen.PollEvent()
		}
	}()

	tick := time.NewTicker(time.Second / frameRate)
	defer tick.Stop()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				c.resize()
			case *tcell.EventKey:
				if c.handleQuit(e) {
					return
				}
				c.handleKey(e)
			}
		case now := <-tick.C:
			dt := min(now.Sub(last).Seconds(), maxStep)
			last = now
			c.update(dt)
			c.render()
		}
	}
}
