// Package autopilot drives the player's car from a snapshot. The bench uses
// it to play runs headless; tests use it to exercise long runs.
package autopilot

import (
	"math"

	"github.com/neon-racer/neon_racer/internal/game"
	"github.com/neon-racer/neon_racer/internal/world"
)

// Gaps are the lateral positions between lanes where no traffic can reach
// the player.
var Gaps = [...]float64{-5, 0, 5}

// Config tunes the pilot.
type Config struct {
	LookAhead      float64 // traffic further ahead is ignored
	NearMissOffset float64 // lateral offset used to skim a car; 0 never skims
	Margin         float64 // extra clearance on top of the collision distance
	Gain           float64 // proportional steering gain
	Deadband       float64 // buttons mode: no input inside this error
	BoostReserve   float64 // nitro is only burned above this much fuel
}

// DefaultConfig returns a pilot that hunts near misses.
func DefaultConfig() Config {
	return Config{
		LookAhead:      80,
		NearMissOffset: 2.0,
		Margin:         0.3,
		Gain:           0.5,
		Deadband:       0.2,
		BoostReserve:   3,
	}
}

// Cautious returns a pilot that parks in a gap and never skims.
func Cautious() Config {
	cfg := DefaultConfig()
	cfg.NearMissOffset = 0
	return cfg
}

// Pilot chooses a lateral target every frame and steers toward it.
type Pilot struct {
	cfg    Config
	tuning *world.Tuning
	Target float64
}

// New creates a pilot for a sim running with tuning t.
func New(cfg Config, t *world.Tuning) *Pilot {
	if t == nil {
		t = world.DefaultTuning()
	}
	return &Pilot{cfg: cfg, tuning: t}
}

// Decide returns the input for the next step.
func (p *Pilot) Decide(snap *game.Snapshot) game.Input {
	player := snap.Player
	p.Target = p.pickTarget(snap)

	in := game.Input{
		Gas:   true,
		Boost: snap.Boost.Phase == game.BoostCharging && snap.Boost.Fuel > p.cfg.BoostReserve,
	}
	err := p.Target - player.LaneX
	if snap.Control.Continuous() {
		in.Steer = max(min(err*p.cfg.Gain*100, 100), -100)
	} else {
		in.Left = err < -p.cfg.Deadband
		in.Right = err > p.cfg.Deadband
	}
	return in
}

func (p *Pilot) pickTarget(snap *game.Snapshot) float64 {
	from := snap.Player.RenderX
	fallback := nearestGap(from)
	if !p.pathClear(snap, from, fallback) {
		// Already committed; heading anywhere else is no safer.
		fallback = nearestGap(snap.Player.LaneX)
	}
	if p.cfg.NearMissOffset <= 0 {
		return fallback
	}

	// Traffic is sorted far to near, so the last candidate is the closest.
	best := -1
	for i, car := range snap.Traffic {
		if car.NearMissed || car.Z > 0 || car.Z < -p.cfg.LookAhead {
			continue
		}
		best = i
	}
	if best < 0 {
		return fallback
	}
	car := snap.Traffic[best]
	skim := car.X - math.Copysign(p.cfg.NearMissOffset, car.X)
	skim = max(min(skim, world.PlayerLateralLimit), -world.PlayerLateralLimit)
	if !p.pathClear(snap, from, skim) {
		return fallback
	}
	return skim
}

// pathClear reports whether the sweep from x0 to x1 keeps its clearance from
// every car in the look-ahead window.
func (p *Pilot) pathClear(snap *game.Snapshot, x0, x1 float64) bool {
	lo, hi := min(x0, x1), max(x0, x1)
	clearance := p.tuning.CollisionDistance + p.cfg.Margin
	for _, car := range snap.Traffic {
		if car.Z < -p.cfg.LookAhead || car.Z > p.tuning.ContactRange {
			continue
		}
		if car.X > lo-clearance && car.X < hi+clearance {
			return false
		}
	}
	return true
}

func nearestGap(x float64) float64 {
	best := Gaps[0]
	for _, g := range Gaps[1:] {
		if math.Abs(g-x) < math.Abs(best-x) {
			best = g
		}
	}
	return best
}
