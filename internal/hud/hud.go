// Package hud builds the heads-up display from the simulation state.
// It keeps the few transient effects the core does not track: the combo
// popup and the crash flash.
package hud

import (
	"fmt"
	"math"
	"strings"

	"github.com/neon-racer/neon_racer/internal/game"
)

// Display times in seconds.
const (
	ComboShowTime = 1.0
	FlashTime     = 1.0
)

// Heart glyphs used by HealthText.
const (
	HeartFull  = '♥'
	HeartEmpty = '♡'
)

// Model is everything the HUD draws for one frame.
type Model struct {
	Score     string // "1234 m"
	Speed     string // "187 km/h"
	Health    int
	MaxHealth int

	BoostFraction float64
	BoostLabel    string // NITRO or CHRG
	BoostReadout  string // seconds with one decimal
	Boosting      bool
	Recharging    bool

	ComboLines []string // empty when no popup is showing
	ComboTimer string   // "x3 1.4s" while a combo can still grow
	Flash      bool     // crash danger overlay

	GameOver   bool
	Title      string // NEW HIGH SCORE! or CRASHED
	FinalScore string // SCORE: N M
	Best       string
	Prompt     string

	Log []game.Message
}

// HealthText renders health as hearts.
func (m Model) HealthText() string {
	return strings.Repeat(string(HeartFull), max(m.Health, 0)) +
		strings.Repeat(string(HeartEmpty), max(m.MaxHealth-m.Health, 0))
}

// HUD tracks the transient display state between frames.
type HUD struct {
	MaxHealth int
	LogLines  int

	comboTimer float64
	comboLines []string
	flashTimer float64
	started    bool
}

// New creates a HUD for runs starting with maxHealth.
func New(maxHealth int) *HUD {
	return &HUD{MaxHealth: maxHealth, LogLines: 4}
}

// Reset clears transient effects at the start of a run.
func (h *HUD) Reset() {
	h.comboTimer = 0
	h.comboLines = nil
	h.flashTimer = 0
	h.started = true
}

// Leave forgets the last run so the title screen shows instead of the
// game-over screen.
func (h *HUD) Leave() {
	h.Reset()
	h.started = false
}

// Observe ages the effects by dt and reacts to the events of the last step.
func (h *HUD) Observe(dt float64, res game.StepResult) {
	h.comboTimer = max(h.comboTimer-dt, 0)
	h.flashTimer = max(h.flashTimer-dt, 0)
	for _, e := range res.Events {
		switch e.Kind {
		case game.EventNearMiss:
			h.comboLines = []string{
				fmt.Sprintf("NEAR MISS! +%d", e.Reward),
				fmt.Sprintf("x%d COMBO", e.Count),
			}
			h.comboTimer = ComboShowTime
		case game.EventCrash:
			h.flashTimer = FlashTime
		}
	}
}

// Model builds the display model for snap.
func (h *HUD) Model(snap *game.Snapshot, log *game.MessageLog) Model {
	p := snap.Player
	m := Model{
		Score:         fmt.Sprintf("%d m", int(math.Floor(p.Distance))),
		Speed:         fmt.Sprintf("%d km/h", int(math.Floor(p.Speed))),
		Health:        p.Health,
		MaxHealth:     h.MaxHealth,
		BoostFraction: snap.Boost.Fraction(),
		BoostLabel:    snap.Boost.Label(),
		BoostReadout:  fmt.Sprintf("%.1f", snap.Boost.Readout()),
		Boosting:      p.Boosting,
		Recharging:    snap.Boost.Phase == game.BoostCooldown,
		Flash:         h.flashTimer > 0,
	}
	if h.comboTimer > 0 {
		m.ComboLines = h.comboLines
	}
	if r := snap.ComboRemaining(); r > 0 {
		m.ComboTimer = fmt.Sprintf("x%d %.1fs", snap.Combo.Count, r)
	}
	if log != nil {
		m.Log = log.Recent(h.LogLines)
	}

	switch {
	case !snap.Playing && h.started:
		m.GameOver = true
		m.Title = "CRASHED"
		if snap.Outcome.NewHighScore {
			m.Title = "NEW HIGH SCORE!"
		}
		m.FinalScore = fmt.Sprintf("SCORE: %d M", snap.Outcome.Score)
		m.Best = fmt.Sprintf("BEST: %d M", snap.Outcome.Best)
		m.Prompt = "RETRY"
	case !snap.Playing:
		m.Title = "NEON RACER"
		m.Best = fmt.Sprintf("BEST: %d M", snap.HighScore)
		m.Prompt = "START"
	}
	return m
}
