package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/neon-racer/neon_racer/internal/game"
	"github.com/neon-racer/neon_racer/internal/world"
)

var _ game.HighScoreStore = (*Profile)(nil)

func TestLoadMissingFile(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "none.ini"))
	if err != nil {
		t.Fatal(err)
	}
	if p.Settings != DefaultSettings() || p.HighScore() != 0 {
		t.Fatalf("fresh profile = %+v best %d", p.Settings, p.HighScore())
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", FileName)
	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	p.Settings = Settings{
		Car:     world.CarF1,
		Paint:   world.PaintLime,
		Biome:   world.BiomeOcean,
		Control: world.ControlWheel,
		Muted:   true,
	}
	p.SetHighScore(1500)
	if err := p.Err(); err != nil {
		t.Fatal(err)
	}

	q, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if q.Settings != p.Settings {
		t.Errorf("settings = %+v, want %+v", q.Settings, p.Settings)
	}
	if q.HighScore() != 1500 {
		t.Errorf("best = %d, want 1500", q.HighScore())
	}
}

func TestLoadBadValuesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	data := "[Settings]\ncar = hovercraft\nbiome = desert\nmuted = maybe\n[Score]\nbest = -40\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Settings.Car != world.CarMuscle || p.Settings.Biome != world.BiomeDesert || p.Settings.Muted {
		t.Errorf("settings = %+v", p.Settings)
	}
	if p.HighScore() != 0 {
		t.Errorf("best = %d, want 0", p.HighScore())
	}
}

func TestLoadReportsParseErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("[Settings\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "load profile") {
		t.Fatalf("err = %v", err)
	}
	if p == nil || p.Settings != DefaultSettings() {
		t.Fatal("no usable profile on error")
	}
}

func TestProfileDrivesGameOver(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatal(err)
	}
	p.SetHighScore(1200)

	s := game.NewSim(game.Config{Seed: 1, Scores: p})
	s.Reset()
	s.Player.Distance = 1500
	s.Player.Health = 1
	s.Player.Speed = 100
	pool := s.Pools.Traffic[world.VehicleSedan]
	_, car, ok := pool.Acquire()
	if !ok {
		t.Fatal("no sedan")
	}
	car.X, car.Z = 0, 0
	car.Speed = 100
	s.Step(0.016, game.Input{Gas: true})

	if s.Playing || !s.Outcome.NewHighScore {
		t.Fatalf("outcome = %+v playing %v", s.Outcome, s.Playing)
	}
	q, err := Load(p.Path)
	if err != nil {
		t.Fatal(err)
	}
	if q.HighScore() != s.Outcome.Score {
		t.Fatalf("stored best = %d, want %d", q.HighScore(), s.Outcome.Score)
	}
}
