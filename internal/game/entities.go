package game

import "github.com/neon-racer/neon_racer/internal/world"

// Traffic is a pooled traffic vehicle.
type Traffic struct {
	Slot  int // fixed pool slot
	Class world.VehicleClass
	Lane  int     // index into world.Lanes
	X     float64 // lateral position
	Z     float64 // longitudinal position, negative = ahead of the player
	Speed float64 // own cruise speed in km/h, set at spawn

	// NearMissed latches after the first near miss of a pass so a car
	// lingering beside the player pays out once. Cleared on release.
	NearMissed bool
}

// clearTransient is the traffic pool release hook.
func (t *Traffic) clearTransient() {
	t.NearMissed = false
	t.Z = 0
	t.Speed = 0
}

// Scenery is a pooled roadside decoration. Every group carries all
// sub-elements and shows exactly one of them.
type Scenery struct {
	Slot    int
	Side    float64 // -1 left of the road, +1 right
	X       float64
	Z       float64
	Visible [world.SceneryKindCount]bool
	Fixed   bool // moves only with the world, never on its own
}

// Kind returns the visible sub-element, falling back to a tree.
func (s *Scenery) Kind() world.SceneryKind {
	for i, v := range s.Visible {
		if v {
			return world.SceneryKind(i)
		}
	}
	return world.SceneryTree
}

// Show hides every sub-element, then reveals k.
func (s *Scenery) Show(k world.SceneryKind) {
	s.Visible = [world.SceneryKindCount]bool{}
	if int(k) >= world.SceneryKindCount {
		k = world.SceneryTree
	}
	s.Visible[k] = true
}

func (s *Scenery) clearTransient() {
	s.Visible = [world.SceneryKindCount]bool{}
	s.Z = 0
}

// Position is the world position of a particle.
type Position struct {
	X, Y, Z float64
}

// Life is the remaining lifetime of a particle in seconds.
type Life struct {
	Remaining float64
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
