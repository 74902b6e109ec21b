package world

// Road geometry (world units, roughly meters).
// The player sits at Z = 0 and never moves along the travel axis; the world
// scrolls toward +Z instead. Negative Z is ahead of the player.
const (
	RoadWidth = 20.0
	LaneWidth = 5.0
	LaneCount = 4

	// PlayerLateralLimit bounds the player's lateral position.
	PlayerLateralLimit = 6.0

	SpawnZ   = -300.0 // where traffic and scenery appear
	DespawnZ = 20.0   // entities are released once they pass this far behind the player
	OutranZ  = -450.0 // traffic left this far ahead is released as well

	SceneryMinOffset = 15.0 // scenery band starts this far from the road center
	SceneryBandWidth = 10.0 // and spans this many units outward
)

// Lanes holds the lateral center of each lane, left to right.
var Lanes = [LaneCount]float64{-7.5, -2.5, 2.5, 7.5}

// KmhToMps converts the speedometer unit into world units per second.
func KmhToMps(kmh float64) float64 { return kmh / 3.6 }
