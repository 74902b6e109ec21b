package game

import (
	"math"
	"math/rand/v2"
	"reflect"
	"slices"
	"testing"

	"github.com/neon-racer/neon_racer/internal/world"
)

type recordingAudio struct {
	cues   []Cue
	engine float64
}

func (a *recordingAudio) Cue(c Cue) { a.cues = append(a.cues, c) }
func (a *recordingAudio) Engine(speed float64, _ world.CarType) {
	a.engine = speed
}

func startSim(t *testing.T, cfg Config) *Sim {
	t.Helper()
	s := NewSim(cfg)
	s.Reset()
	if !s.Playing {
		t.Fatal("Reset did not start a run")
	}
	return s
}

// placeCar puts a sedan level with the player at lateral position x,
// cruising at the player's speed.
func placeCar(s *Sim, x float64) (Handle, *Traffic) {
	h, car, _ := s.Pools.Traffic[world.VehicleSedan].Acquire()
	car.X = x
	car.Z = 0
	car.Speed = s.Player.Speed
	return h, car
}

func TestStepDoesNothingOutsideARun(t *testing.T) {
	s := NewSim(Config{})
	res := s.Step(0.016, Input{Gas: true})
	if len(res.Events) != 0 || s.Player.Speed != 0 || s.Clock != 0 {
		t.Fatalf("idle sim advanced: speed=%v clock=%v", s.Player.Speed, s.Clock)
	}
}

func TestCollision(t *testing.T) {
	audio := &recordingAudio{}
	s := startSim(t, Config{Audio: audio})
	s.Player.Speed = 100
	placeCar(s, 0)

	res := s.Step(0.016, Input{})
	if !res.Has(EventCrash) {
		t.Fatalf("no crash event in %+v", res.Events)
	}
	if s.Player.Health != 2 {
		t.Fatalf("health = %d, want 2", s.Player.Health)
	}
	if s.Player.Invulnerable != 2.0 {
		t.Fatalf("invulnerable = %v, want 2.0", s.Player.Invulnerable)
	}
	want := (100 - 10*0.016) * 0.2
	if math.Abs(s.Player.Speed-want) > 1e-9 {
		t.Fatalf("speed = %v, want %v", s.Player.Speed, want)
	}
	if len(audio.cues) != 1 || audio.cues[0] != CueCrash {
		t.Fatalf("cues = %v, want [crash]", audio.cues)
	}

	// Still overlapping, but invulnerable.
	res = s.Step(0.016, Input{})
	if res.Has(EventCrash) || s.Player.Health != 2 {
		t.Fatal("crashed again while invulnerable")
	}
}

func TestGameOverStoresHighScore(t *testing.T) {
	tests := []struct {
		name     string
		stored   int
		distance float64
		wantBest int
		wantNew  bool
	}{
		{"beats record", 1200, 1500.7, 1500, true},
		{"short of record", 2000, 1500, 2000, false},
		{"ties record", 1500, 1500.2, 1500, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := &MemoryScores{Best: tt.stored}
			s := startSim(t, Config{Scores: scores})
			s.Player.Health = 1
			s.Player.Distance = tt.distance
			placeCar(s, 0)

			res := s.Step(0.016, Input{})
			if !res.Has(EventGameOver) {
				t.Fatalf("no game-over event in %+v", res.Events)
			}
			if s.Playing {
				t.Fatal("still playing at health 0")
			}
			if s.Player.Health != 0 {
				t.Fatalf("health = %d, want 0", s.Player.Health)
			}
			if scores.Best != tt.wantBest {
				t.Fatalf("stored = %d, want %d", scores.Best, tt.wantBest)
			}
			if s.Outcome.Score != int(tt.distance) || s.Outcome.Best != tt.wantBest || s.Outcome.NewHighScore != tt.wantNew {
				t.Fatalf("outcome = %+v", s.Outcome)
			}
		})
	}
}

func TestGameOverStopsContacts(t *testing.T) {
	s := startSim(t, Config{})
	s.Player.Health = 1
	placeCar(s, 0)
	placeCar(s, 0.5)

	res := s.Step(0.016, Input{})
	crashes := 0
	for _, e := range res.Events {
		if e.Kind == EventCrash {
			crashes++
		}
	}
	if crashes != 1 {
		t.Fatalf("%d crashes in the final frame, want 1", crashes)
	}
	if s.Step(0.016, Input{}).Events != nil {
		t.Fatal("step after game over produced events")
	}
}

func TestNearMissLatchAndCombo(t *testing.T) {
	audio := &recordingAudio{}
	s := startSim(t, Config{Audio: audio})
	h, car := placeCar(s, 2)

	res := s.Step(0.016, Input{})
	if !res.Has(EventNearMiss) || !car.NearMissed {
		t.Fatal("first pass did not score a near miss")
	}
	if s.Combo.Count != 1 || s.Player.Distance != 100 {
		t.Fatalf("combo=%d distance=%v, want 1 and 100", s.Combo.Count, s.Player.Distance)
	}

	for i := 0; i < 5; i++ {
		if s.Step(0.016, Input{}).Has(EventNearMiss) {
			t.Fatal("latched car scored again")
		}
	}

	s.Pools.Traffic[world.VehicleSedan].Release(h)
	if car.NearMissed {
		t.Fatal("release kept the near-miss latch")
	}
	h2, _ := placeCar(s, -2)
	if h2 != h {
		t.Fatalf("pool handed out slot %d, want recycled slot %d", h2, h)
	}

	res = s.Step(0.016, Input{})
	if !res.Has(EventNearMiss) {
		t.Fatal("respawned car did not score")
	}
	if res.Events[0].Count != 2 || res.Events[0].Reward != 200 {
		t.Fatalf("event = %+v, want count 2 reward 200", res.Events[0])
	}
	if s.Player.Distance != 300 {
		t.Fatalf("distance = %v, want 300", s.Player.Distance)
	}
	if len(audio.cues) != 2 || audio.cues[1] != CueNearMiss {
		t.Fatalf("cues = %v", audio.cues)
	}

	// Let the combo lapse, then score once more.
	s.Pools.Traffic[world.VehicleSedan].Release(h2)
	for i := 0; i < 21; i++ {
		s.Step(0.1, Input{})
	}
	if s.Combo.Count != 0 {
		t.Fatalf("combo = %d after 2.1s, want 0", s.Combo.Count)
	}
	placeCar(s, 2)
	res = s.Step(0.016, Input{})
	if !res.Has(EventNearMiss) || res.Events[0].Count != 1 {
		t.Fatalf("events = %+v, want a fresh combo of 1", res.Events)
	}
}

func TestNearMissRefillsFuel(t *testing.T) {
	s := startSim(t, Config{})
	s.Boost.Fuel = 5
	placeCar(s, 2)
	s.Step(0.1, Input{})
	// 5 + 0.5 regen*0.1 + 0.5 bonus
	if math.Abs(s.Boost.Fuel-5.55) > 1e-9 {
		t.Fatalf("fuel = %v, want 5.55", s.Boost.Fuel)
	}
}

func TestNoSpawnsWhileStopped(t *testing.T) {
	s := startSim(t, Config{Seed: 42})
	for i := 0; i < 300; i++ {
		s.Step(1.0/60, Input{})
	}
	st := s.Spawner.Stats
	if st.Traffic+st.TrafficDropped+st.Scenery+st.SceneryDropped != 0 {
		t.Fatalf("spawned while stopped: %+v", st)
	}
	if s.Pools.ActiveTraffic() != 0 || s.Pools.Scenery.Len() != 0 {
		t.Fatal("entities on a stopped road")
	}
}

func TestSpeedResponse(t *testing.T) {
	s := startSim(t, Config{})
	for i := 0; i < 10; i++ {
		s.Step(0.1, Input{Gas: true})
	}
	if math.Abs(s.Player.Speed-50) > 1e-9 {
		t.Fatalf("speed = %v after 1s of gas, want 50", s.Player.Speed)
	}
	for i := 0; i < 5; i++ {
		s.Step(0.1, Input{Brake: true})
	}
	if math.Abs(s.Player.Speed-10) > 1e-9 {
		t.Fatalf("speed = %v after 0.5s of brake, want 10", s.Player.Speed)
	}
	for i := 0; i < 20; i++ {
		s.Step(0.1, Input{})
	}
	if s.Player.Speed != 0 {
		t.Fatalf("speed = %v after coasting, want 0", s.Player.Speed)
	}
}

func TestBoostRaisesSpeedCap(t *testing.T) {
	s := startSim(t, Config{})
	s.Player.Speed = 300
	s.Step(0.1, Input{Gas: true})
	if s.Player.Speed != 300 {
		t.Fatalf("speed = %v without boost, want capped at 300", s.Player.Speed)
	}
	s.Step(0.1, Input{Gas: true, Boost: true})
	if !s.Player.Boosting || math.Abs(s.Player.Speed-317) > 1e-9 {
		t.Fatalf("boosting=%v speed=%v, want 317", s.Player.Boosting, s.Player.Speed)
	}
	if s.Particles.Count() != 1 {
		t.Fatalf("%d trail particles, want 1", s.Particles.Count())
	}
	s.Step(0.1, Input{Gas: true})
	if s.Player.Speed != 300 {
		t.Fatalf("speed = %v after boost ends, want 300", s.Player.Speed)
	}
}

func TestSteering(t *testing.T) {
	s := startSim(t, Config{Control: world.ControlButtons})
	s.Step(0.1, Input{Right: true})
	if s.Player.LaneX != 0 {
		t.Fatal("steered while stopped")
	}

	s.Player.Speed = 100
	s.Step(0.1, Input{Left: true, Right: true, Gas: true})
	if math.Abs(s.Player.LaneX-1) > 1e-9 {
		t.Fatalf("laneX = %v, want 1 (right wins)", s.Player.LaneX)
	}
	if math.Abs(s.Player.RenderX-0.5) > 1e-9 {
		t.Fatalf("renderX = %v, want 0.5", s.Player.RenderX)
	}

	s.SetControlMode(world.ControlSlider)
	for i := 0; i < 20; i++ {
		s.Step(0.1, Input{Steer: -250, Gas: true})
	}
	if s.Player.LaneX != -world.PlayerLateralLimit {
		t.Fatalf("laneX = %v, want clamped to -6", s.Player.LaneX)
	}
}

func TestFrameTimeIsCapped(t *testing.T) {
	s := startSim(t, Config{})
	s.Step(5, Input{Gas: true})
	if s.Clock != 0.1 || math.Abs(s.Player.Speed-5) > 1e-9 {
		t.Fatalf("clock=%v speed=%v, want a 0.1s step", s.Clock, s.Player.Speed)
	}
	s.Step(-1, Input{})
	if s.Clock != 0.1 {
		t.Fatal("negative dt moved the clock")
	}
}

func TestStateStaysInRangeUnderRandomInput(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	s := startSim(t, Config{Seed: 5})
	tun := s.Tuning()
	for i := 0; i < 20000; i++ {
		if i%500 == 0 {
			s.SetControlMode(world.ControlModes[rng.IntN(len(world.ControlModes))])
		}
		in := Input{
			Left:  rng.IntN(3) == 0,
			Right: rng.IntN(3) == 0,
			Gas:   rng.IntN(4) != 0,
			Brake: rng.IntN(5) == 0,
			Boost: rng.IntN(2) == 0,
			Steer: rng.Float64()*300 - 150,
		}
		s.Step(rng.Float64()*0.2, in)

		p := s.Player
		limit := tun.MaxSpeed
		if p.Boosting {
			limit = tun.BoostMaxSpeed
		}
		switch {
		case s.Boost.Fuel < 0 || s.Boost.Fuel > tun.BoostFuelMax:
			t.Fatalf("step %d: fuel %v", i, s.Boost.Fuel)
		case p.Speed < 0 || p.Speed > limit:
			t.Fatalf("step %d: speed %v over %v", i, p.Speed, limit)
		case math.Abs(p.LaneX) > world.PlayerLateralLimit || math.Abs(p.RenderX) > world.PlayerLateralLimit:
			t.Fatalf("step %d: lateral %v / %v", i, p.LaneX, p.RenderX)
		case p.Health < 0 || p.Health > tun.StartHealth:
			t.Fatalf("step %d: health %d", i, p.Health)
		case s.Boost.Phase == BoostCooldown && s.Boost.Fuel != 0:
			t.Fatalf("step %d: fuel %v during cooldown", i, s.Boost.Fuel)
		}
		if !s.Playing {
			s.Reset()
		}
	}
}

func TestSameSeedSameRun(t *testing.T) {
	run := func() Snapshot {
		s := NewSim(Config{Seed: 1234, Biome: world.BiomeCity, Control: world.ControlSlider})
		s.Reset()
		rng := rand.New(rand.NewPCG(1, 2))
		for i := 0; i < 3000 && s.Playing; i++ {
			s.Step(1.0/60, Input{
				Gas:   true,
				Boost: i%400 < 150,
				Steer: math.Sin(float64(i)/90) * 80 * rng.Float64(),
			})
		}
		return s.Snapshot()
	}
	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two runs with the same seed and input diverged")
	}
	if len(a.Traffic) == 0 && len(a.Scenery) == 0 {
		t.Fatal("run never spawned anything")
	}
}

func TestResetStartsCleanRun(t *testing.T) {
	s := startSim(t, Config{Seed: 3})
	for i := 0; i < 600; i++ {
		s.Step(1.0/60, Input{Gas: true, Boost: true})
	}
	s.Reset()
	snap := s.Snapshot()
	if snap.Player != (PlayerState{Health: 3}) {
		t.Fatalf("player = %+v after Reset", snap.Player)
	}
	if snap.Boost.Fuel != 12 || snap.Boost.Phase != BoostCharging || snap.Combo.Count != 0 {
		t.Fatal("meters not reset")
	}
	if len(snap.Traffic)+len(snap.Scenery)+len(snap.Particles) != 0 {
		t.Fatal("entities survived Reset")
	}
	if math.Abs(snap.Bend) > s.Tuning().MaxBend {
		t.Fatalf("bend %v out of range", snap.Bend)
	}
}

func TestSnapshotIsSortedFarToNear(t *testing.T) {
	s := startSim(t, Config{})
	for _, z := range []float64{-10, -200, -50} {
		_, car, _ := s.Pools.Traffic[world.VehicleBike].Acquire()
		car.Z = z
	}
	snap := s.Snapshot()
	for i := 1; i < len(snap.Traffic); i++ {
		if snap.Traffic[i-1].Z > snap.Traffic[i].Z {
			t.Fatalf("traffic not sorted: %+v", snap.Traffic)
		}
	}
}

func TestTrafficCulledBehindAndAhead(t *testing.T) {
	s := startSim(t, Config{})
	behind, car := placeCar(s, 7.5)
	car.Z = 19.99
	car.Speed = -100 // closes at 100 km/h
	ahead, fast := placeCar(s, -7.5)
	fast.Z = -449.99
	fast.Speed = 100

	s.Step(0.1, Input{})
	pool := s.Pools.Traffic[world.VehicleSedan]
	if pool.Active(behind) || pool.Active(ahead) {
		t.Fatal("cars beyond the road ends were kept")
	}
}

func TestNewSimUsesDefaultTuning(t *testing.T) {
	s := NewSim(Config{})
	if *s.Tuning() != *world.DefaultTuning() {
		t.Fatalf("tuning = %+v", *s.Tuning())
	}
	s.Tuning().MaxSpeed = 1
	if world.DefaultTuning().MaxSpeed == 1 {
		t.Fatal("sims share the default tuning")
	}
}

func TestCollisionAfterInvulnerabilityEnds(t *testing.T) {
	s := startSim(t, Config{})
	s.Player.Speed = 100
	_, car := placeCar(s, 0)
	if res := s.Step(0.1, Input{}); !res.Has(EventCrash) {
		t.Fatal("first contact did not crash")
	}

	elapsed := 0.0
	for i := 0; i < 30; i++ {
		car.X, car.Z, car.Speed = s.Player.RenderX, 0, s.Player.Speed
		res := s.Step(0.1, Input{})
		elapsed += 0.1
		if res.Has(EventCrash) {
			if elapsed < 1.9 {
				t.Fatalf("crashed again after %.1f s while invulnerable", elapsed)
			}
			if s.Player.Health != 1 {
				t.Fatalf("health = %d, want 1", s.Player.Health)
			}
			return
		}
	}
	t.Fatal("no second crash after the invulnerability window")
}

func TestBoostTransitionsInStep(t *testing.T) {
	s := startSim(t, Config{})
	tun := s.Tuning()

	depleted := false
	for i := 0; i < 200 && !depleted; i++ {
		res := s.Step(0.1, Input{Gas: true, Boost: true})
		depleted = res.Has(EventBoostDepleted)
	}
	if !depleted {
		t.Fatal("holding boost never emptied the meter")
	}
	if s.Boost.Phase != BoostCooldown || s.Boost.Fuel != 0 {
		t.Fatalf("after depletion: phase=%v fuel=%v", s.Boost.Phase, s.Boost.Fuel)
	}

	waited := 0.0
	recharged := false
	for i := 0; i < 60 && !recharged; i++ {
		res := s.Step(0.1, Input{Gas: true, Boost: true})
		waited += 0.1
		recharged = res.Has(EventBoostRecharged)
	}
	if !recharged {
		t.Fatal("meter never recharged")
	}
	if waited < tun.BoostRecharge-0.1-1e-9 || waited > tun.BoostRecharge+0.1+1e-9 {
		t.Fatalf("recharged after %.1f s, want about %.1f", waited, tun.BoostRecharge)
	}
	if s.Boost.Phase != BoostCharging || s.Boost.Fuel != tun.BoostFuelMax {
		t.Fatalf("after recharge: phase=%v fuel=%v", s.Boost.Phase, s.Boost.Fuel)
	}

	var texts []string
	for _, m := range s.Log.Recent(10) {
		texts = append(texts, m.Text)
	}
	for _, want := range []string{"Nitro empty, recharging.", "Nitro recharged."} {
		if !slices.Contains(texts, want) {
			t.Errorf("log %q lacks %q", texts, want)
		}
	}
}

func TestStopKeepsEntities(t *testing.T) {
	audio := &recordingAudio{}
	s := startSim(t, Config{Audio: audio})
	s.Player.Speed = 120
	h, _ := placeCar(s, 5)
	s.Step(0.016, Input{Gas: true})

	s.Stop()
	if s.Playing || audio.engine != 0 {
		t.Fatalf("playing=%v engine=%v after Stop", s.Playing, audio.engine)
	}
	if !s.Pools.Traffic[world.VehicleSedan].Active(h) {
		t.Fatal("Stop released traffic")
	}
	if s.Outcome != (RunOutcome{}) {
		t.Fatalf("Stop scored the run: %+v", s.Outcome)
	}
	clock, speed := s.Clock, s.Player.Speed
	if res := s.Step(0.016, Input{Gas: true}); len(res.Events) != 0 || s.Clock != clock || s.Player.Speed != speed {
		t.Fatal("stopped sim advanced")
	}
}
