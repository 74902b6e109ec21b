package game

import (
	"math/rand/v2"

	"github.com/neon-racer/neon_racer/internal/world"
)

// SceneryPoolSize is the fixed capacity of the scenery pool.
const SceneryPoolSize = 30

// Pools groups the entity pools of one simulation.
type Pools struct {
	Traffic [world.VehicleClassCount]*Pool[Traffic]
	Scenery *Pool[Scenery]
}

// NewPools builds every pool at its fixed capacity.
func NewPools() *Pools {
	ps := &Pools{}
	for i, tmpl := range world.VehicleTemplates {
		class := world.VehicleClass(i)
		ps.Traffic[i] = NewPool(tmpl.PoolSize, func(slot int) Traffic {
			return Traffic{Slot: slot, Class: class}
		}, (*Traffic).clearTransient)
	}
	ps.Scenery = NewPool(SceneryPoolSize, func(slot int) Scenery {
		return Scenery{Slot: slot}
	}, (*Scenery).clearTransient)
	return ps
}

// ResetAll releases every entity in every pool.
func (ps *Pools) ResetAll() {
	for _, p := range ps.Traffic {
		p.ResetAll()
	}
	ps.Scenery.ResetAll()
}

// ActiveTraffic returns the number of active traffic vehicles across classes.
func (ps *Pools) ActiveTraffic() int {
	n := 0
	for _, p := range ps.Traffic {
		n += p.Len()
	}
	return n
}

// TrafficCap returns the number of traffic vehicles the pools can hold.
func (ps *Pools) TrafficCap() int {
	n := 0
	for _, p := range ps.Traffic {
		n += p.Cap()
	}
	return n
}

// SpawnStats counts spawn attempts for the bench report.
type SpawnStats struct {
	Traffic        int
	TrafficDropped int // pool was exhausted
	Scenery        int
	SceneryDropped int
}

// Spawner populates the road ahead of the player. It draws from a seeded
// generator so a run is reproducible from its seed.
type Spawner struct {
	rng    *rand.Rand
	pools  *Pools
	tuning *world.Tuning
	Stats  SpawnStats
}

// NewSpawner creates a spawner over pools.
func NewSpawner(seed uint64, pools *Pools, tuning *world.Tuning) *Spawner {
	return &Spawner{
		rng:    rand.New(rand.NewPCG(seed, seed>>8|3)),
		pools:  pools,
		tuning: tuning,
	}
}

// Float64 exposes the spawner's generator to other per-run rolls (bend,
// particle jitter) so a run draws from a single sequence.
func (s *Spawner) Float64() float64 { return s.rng.Float64() }

// SpawnTraffic rolls for one traffic vehicle. It returns the spawned entity,
// or nil when the roll failed, the player is too slow or the pool is empty.
func (s *Spawner) SpawnTraffic(playerSpeed float64) *Traffic {
	t := s.tuning
	if playerSpeed < t.SpawnMinSpeed {
		return nil
	}
	if s.rng.Float64() >= t.TrafficSpawnChance {
		return nil
	}
	lane := s.rng.IntN(world.LaneCount)
	class := world.PickVehicleClass(s.rng.Float64())

	_, car, ok := s.pools.Traffic[class].Acquire()
	if !ok {
		s.Stats.TrafficDropped++
		return nil
	}
	// Every lane carries same-direction traffic.
	car.Lane = lane
	car.X = world.Lanes[lane]
	car.Z = world.SpawnZ
	car.Speed = playerSpeed*t.TrafficSpeedFactor + s.rng.Float64()*t.TrafficSpeedJitter
	car.NearMissed = false
	s.Stats.Traffic++
	return car
}

// SpawnScenery rolls for one roadside decoration matching biome.
func (s *Spawner) SpawnScenery(playerSpeed float64, biome world.Biome) *Scenery {
	t := s.tuning
	if playerSpeed < t.SpawnMinSpeed {
		return nil
	}
	if s.rng.Float64() >= t.ScenerySpawnChance {
		return nil
	}
	_, grp, ok := s.pools.Scenery.Acquire()
	if !ok {
		s.Stats.SceneryDropped++
		return nil
	}
	grp.Show(world.PickScenery(biome, s.rng.Float64()))

	side := 1.0
	if s.rng.Float64() > 0.5 {
		side = -1.0
	}
	grp.Side = side
	grp.X = side * (world.SceneryMinOffset + s.rng.Float64()*world.SceneryBandWidth)
	grp.Z = world.SpawnZ
	grp.Fixed = true
	s.Stats.Scenery++
	return grp
}
