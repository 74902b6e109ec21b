// Package profile persists the player's settings and best distance in an
// ini file.
package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/ini.v1"

	"github.com/neon-racer/neon_racer/internal/world"
)

// FileName is the default profile file name inside the config directory.
const FileName = "neonracer.ini"

const (
	sectionSettings = "Settings"
	sectionScore    = "Score"
)

// Settings are the player's choices from the garage menu.
type Settings struct {
	Car     world.CarType
	Paint   world.Paint
	Biome   world.Biome
	Control world.ControlMode
	Muted   bool
}

// DefaultSettings returns the settings of a fresh profile.
func DefaultSettings() Settings {
	return Settings{
		Car:     world.CarMuscle,
		Paint:   world.PaintRed,
		Biome:   world.BiomeCity,
		Control: world.ControlSlider,
	}
}

// Profile holds the settings and the single high-score slot. It satisfies
// game.HighScoreStore; a new record is written to disk immediately.
type Profile struct {
	Path     string
	Settings Settings

	best    int
	saveErr error
}

// DefaultPath returns the profile location under the user config directory,
// or the working directory when that is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(dir, "neonracer", FileName)
}

// Load reads the profile at path. A missing file yields a fresh profile.
// Unknown or malformed values fall back to their defaults.
func Load(path string) (*Profile, error) {
	p := &Profile{Path: path, Settings: DefaultSettings()}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	cfg, err := ini.Load(path)
	if err != nil {
		return p, fmt.Errorf("load profile %s: %w", path, err)
	}

	s := cfg.Section(sectionSettings)
	if c, ok := world.ParseCarType(s.Key("car").String()); ok {
		p.Settings.Car = c
	}
	if c, ok := world.ParsePaint(s.Key("paint").String()); ok {
		p.Settings.Paint = c
	}
	if b, ok := world.ParseBiome(s.Key("biome").String()); ok {
		p.Settings.Biome = b
	}
	if m, ok := world.ParseControlMode(s.Key("control").String()); ok {
		p.Settings.Control = m
	}
	p.Settings.Muted = s.Key("muted").MustBool(false)
	p.best = max(cfg.Section(sectionScore).Key("best").MustInt(0), 0)
	return p, nil
}

// Save writes the profile to its path, creating the directory if needed.
func (p *Profile) Save() error {
	cfg := ini.Empty()
	s := cfg.Section(sectionSettings)
	s.Key("car").SetValue(p.Settings.Car.String())
	s.Key("paint").SetValue(p.Settings.Paint.String())
	s.Key("biome").SetValue(p.Settings.Biome.String())
	s.Key("control").SetValue(p.Settings.Control.String())
	s.Key("muted").SetValue(strconv.FormatBool(p.Settings.Muted))
	cfg.Section(sectionScore).Key("best").SetValue(strconv.Itoa(p.best))

	if dir := filepath.Dir(p.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create profile directory %s: %w", dir, err)
		}
	}
	if err := cfg.SaveTo(p.Path); err != nil {
		return fmt.Errorf("save profile %s: %w", p.Path, err)
	}
	return nil
}

// HighScore returns the best distance on record.
func (p *Profile) HighScore() int { return p.best }

// SetHighScore records a new best and saves the profile. A failed save
// keeps the score in memory and is reported by Err.
func (p *Profile) SetHighScore(score int) {
	p.best = max(score, 0)
	p.saveErr = p.Save()
}

// Err returns the error of the last save triggered by SetHighScore.
func (p *Profile) Err() error { return p.saveErr }
