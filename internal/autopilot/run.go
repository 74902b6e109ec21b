package autopilot

import (
	"github.com/neon-racer/neon_racer/internal/game"
	"github.com/neon-racer/neon_racer/internal/world"
)

// RunStats summarizes one unattended run.
type RunStats struct {
	Seed       uint64 // set by the caller
	Score      int
	Seconds    float64 // simulated
	Crashes    int
	NearMisses int
	BestCombo  int
	Finished   bool // the run ended in a game over before the time limit
	Spawns     game.SpawnStats

	PeakTraffic int // most vehicles on the road at once
	TrafficCap  int
}

// Drive plays one run of up to limit simulated seconds with the pilot at the
// wheel, stepping at dt.
func Drive(cfg Config, sim *game.Sim, dt, limit float64) RunStats {
	p := New(cfg, sim.Tuning())
	sim.Reset()
	var st RunStats
	for sim.Playing && sim.Clock < limit {
		snap := sim.Snapshot()
		res := sim.Step(dt, p.Decide(&snap))
		st.PeakTraffic = max(st.PeakTraffic, sim.Pools.ActiveTraffic())
		for _, e := range res.Events {
			switch e.Kind {
			case game.EventNearMiss:
				st.NearMisses++
				st.BestCombo = max(st.BestCombo, e.Count)
			case game.EventCrash:
				st.Crashes++
			case game.EventGameOver:
				st.Finished = true
			}
		}
	}
	st.Seconds = sim.Clock
	st.Score = int(sim.Player.Distance)
	st.Spawns = sim.Spawner.Stats
	st.TrafficCap = sim.Pools.TrafficCap()
	return st
}

// NewBenchSim creates a silent slider-mode sim for Drive.
func NewBenchSim(seed uint64, t *world.Tuning) *game.Sim {
	return game.NewSim(game.Config{
		Tuning:  t,
		Seed:    seed,
		Control: world.ControlSlider,
		Scores:  &game.MemoryScores{},
		Audio:   game.NopAudio{},
	})
}
