package game

import "math"

// Contact is the outcome of checking one traffic vehicle against the player.
type Contact uint8

const (
	ContactNone     Contact = iota
	ContactCollision        // close enough to hit
	ContactNearMiss         // inside the near-miss band, first time this pass
)

func (c Contact) String() string {
	switch c {
	case ContactCollision:
		return "collision"
	case ContactNearMiss:
		return "near-miss"
	default:
		return "none"
	}
}

// ContactRules holds the distances used by ClassifyContact.
type ContactRules struct {
	Range     float64 // longitudinal window around the player
	Collision float64 // lateral distance below which cars touch
	NearMiss  float64 // lateral distance below which a pass is close
}

// ClassifyContact decides what a traffic vehicle at (x, z) does to a player
// at lateral position playerX. The player sits at z = 0.
// Collisions are suppressed while the player is invulnerable; a collision
// suppressed that way is not downgraded to a near miss.
func ClassifyContact(r ContactRules, playerX, x, z float64, nearMissed, invulnerable bool) Contact {
	if math.Abs(z) >= r.Range {
		return ContactNone
	}
	dx := math.Abs(x - playerX)
	switch {
	case dx < r.Collision:
		if invulnerable {
			return ContactNone
		}
		return ContactCollision
	case dx < r.NearMiss && !nearMissed:
		return ContactNearMiss
	}
	return ContactNone
}
