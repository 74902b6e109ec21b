// Package session ties the simulation to the HUD, the garage menu, the
// profile and the sound for one player. Both clients drive a Session and
// only differ in how they read devices and present the cell buffer.
package session

import (
	"fmt"

	"github.com/neon-racer/neon_racer/internal/game"
	"github.com/neon-racer/neon_racer/internal/hud"
	"github.com/neon-racer/neon_racer/internal/profile"
	"github.com/neon-racer/neon_racer/internal/render"
	"github.com/neon-racer/neon_racer/internal/world"
)

// Sound is the audio a session drives.
type Sound interface {
	game.Audio
	SetMuted(muted bool)
}

type silent struct{ game.NopAudio }

func (silent) SetMuted(bool) {}

// Options configure a new session.
type Options struct {
	Cols, Rows int
	CellAspect float64 // cell height over width
	Tuning     *world.Tuning
	Seed       uint64
	Profile    *profile.Profile
	Sound      Sound  // nil plays nothing
	Hint       string // key help shown under the menu
}

// Session is one player's game.
type Session struct {
	Sim     *game.Sim
	HUD     *hud.HUD
	Menu    hud.Menu
	Profile *profile.Profile
	Road    *render.RoadRenderer
	Buf     *render.CellBuffer
	Hint    string

	sound Sound
}

// New creates a session showing the menu.
func New(opt Options) *Session {
	if opt.Profile == nil {
		opt.Profile = &profile.Profile{Settings: profile.DefaultSettings()}
	}
	if opt.Sound == nil {
		opt.Sound = silent{}
	}
	set := opt.Profile.Settings
	sim := game.NewSim(game.Config{
		Tuning:  opt.Tuning,
		Seed:    opt.Seed,
		Biome:   set.Biome,
		Control: set.Control,
		Car:     set.Car,
		Scores:  opt.Profile,
		Audio:   opt.Sound,
	})
	s := &Session{
		Sim:     sim,
		HUD:     hud.New(sim.Tuning().StartHealth),
		Profile: opt.Profile,
		Road:    render.NewRoadRenderer(opt.CellAspect),
		Buf:     render.NewCellBuffer(opt.Cols, opt.Rows),
		Hint:    opt.Hint,
		sound:   opt.Sound,
	}
	s.Road.Paint = set.Paint
	s.sound.SetMuted(set.Muted)
	return s
}

// Racing reports whether a run is in progress.
func (s *Session) Racing() bool { return s.Sim.Playing }

// Settings returns the current player settings.
func (s *Session) Settings() profile.Settings { return s.Profile.Settings }

// StartRace begins a new run with the current settings.
func (s *Session) StartRace() {
	s.Sim.Reset()
	s.HUD.Reset()
}

// Abandon ends the run without scoring it and returns to the menu.
func (s *Session) Abandon() {
	s.Sim.Stop()
	s.HUD.Leave()
}

// CycleSetting advances the menu row under the cursor, applies it and
// saves the profile.
func (s *Session) CycleSetting() error {
	set := &s.Profile.Settings
	switch s.Menu.Cycle(set) {
	case hud.ItemCar:
		s.Sim.SetCarType(set.Car)
	case hud.ItemPaint:
		s.Road.Paint = set.Paint
	case hud.ItemBiome:
		s.Sim.SetBiome(set.Biome)
	case hud.ItemControl:
		s.Sim.SetControlMode(set.Control)
	case hud.ItemSound:
		s.sound.SetMuted(set.Muted)
	}
	if s.Profile.Path == "" {
		return nil
	}
	if err := s.Profile.Save(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Update advances the run by dt seconds.
func (s *Session) Update(dt float64, in game.Input) game.StepResult {
	res := s.Sim.Step(dt, in)
	s.HUD.Observe(dt, res)
	return res
}

// Resize changes the size of the cell buffer.
func (s *Session) Resize(cols, rows int) {
	if cols != s.Buf.Cols || rows != s.Buf.Rows {
		s.Buf.Resize(cols, rows)
	}
}

// Draw renders the scene, HUD and any overlay into Buf and returns it.
func (s *Session) Draw() *render.CellBuffer {
	s.Buf.Clear()
	snap := s.Sim.Snapshot()
	s.Road.Draw(s.Buf, &snap)

	m := s.HUD.Model(&snap, s.Sim.Log)
	if snap.Playing || m.GameOver {
		render.DrawHUD(s.Buf, m)
	}
	if !snap.Playing {
		render.DrawOverlay(s.Buf, m, s.Menu.Lines(s.Profile.Settings), s.Hint)
	}
	return s.Buf
}
