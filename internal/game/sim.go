package game

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/neon-racer/neon_racer/internal/world"
)

const (
	logSize  = 50
	logWidth = 40
)

// Config describes one simulation.
type Config struct {
	Tuning  *world.Tuning // nil uses world.DefaultTuning
	Seed    uint64
	Biome   world.Biome
	Control world.ControlMode
	Car     world.CarType
	Scores  HighScoreStore // nil keeps the score in memory
	Audio   Audio          // nil is silent
}

// Input is the control snapshot for one frame.
type Input struct {
	Left, Right bool    // buttons mode
	Gas, Brake  bool    // gas wins when both are held
	Steer       float64 // slider and wheel modes, -100..100
	Boost       bool
}

// PlayerState is the player's car.
type PlayerState struct {
	Speed        float64 // km/h
	LaneX        float64 // steering target, clamped to the lateral limit
	RenderX      float64 // smoothed position used on screen and for contacts
	Distance     float64 // score units (meters plus near-miss bonuses)
	Odometer     float64 // meters actually driven
	Health       int
	Invulnerable float64 // seconds left
	Boosting     bool
}

// RunOutcome is the result of a finished run.
type RunOutcome struct {
	Score        int
	Best         int // high score after the run
	NewHighScore bool
}

// EventKind identifies something that happened during a step.
type EventKind uint8

const (
	EventNearMiss EventKind = iota
	EventCrash
	EventGameOver
	EventBoostDepleted
	EventBoostRecharged
)

func (k EventKind) String() string {
	switch k {
	case EventNearMiss:
		return "near-miss"
	case EventCrash:
		return "crash"
	case EventGameOver:
		return "game-over"
	case EventBoostDepleted:
		return "boost-depleted"
	case EventBoostRecharged:
		return "boost-recharged"
	}
	return "unknown"
}

// Event is a step event. Count and Reward are set for near misses, Health
// for crashes.
type Event struct {
	Kind   EventKind
	Count  int
	Reward int
	Health int
}

// StepResult lists what happened during one step. Events aliases a buffer
// owned by the Sim and is valid until the next Step.
type StepResult struct {
	Events []Event
}

// Has reports whether the step produced an event of kind k.
func (r StepResult) Has(k EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// Sim is the game simulation. It owns all gameplay state; clients call Step
// once per frame and draw from Snapshot.
type Sim struct {
	Player    PlayerState
	Boost     BoostMeter
	Combo     ComboTracker
	Pools     *Pools
	Spawner   *Spawner
	Particles *ParticleSystem
	Log       *MessageLog

	Clock   float64 // simulated seconds since Reset
	Playing bool
	Bend    float64 // road curvature for this run
	Outcome RunOutcome

	tuning  *world.Tuning
	biome   world.Biome
	control world.ControlMode
	car     world.CarType
	scores  HighScoreStore
	audio   Audio
	events  []Event
}

// NewSim creates a simulation sitting in the menu. Call Reset to start a run.
func NewSim(cfg Config) *Sim {
	t := cfg.Tuning
	if t == nil {
		t = world.DefaultTuning()
	}
	scores := cfg.Scores
	if scores == nil {
		scores = &MemoryScores{}
	}
	audio := cfg.Audio
	if audio == nil {
		audio = NopAudio{}
	}
	pools := NewPools()
	return &Sim{
		Boost:     NewBoostMeter(t.BoostFuelMax, t.BoostRecharge, t.BoostRegenRate),
		Combo:     ComboTracker{Window: t.ComboWindow},
		Pools:     pools,
		Spawner:   NewSpawner(cfg.Seed, pools, t),
		Particles: NewParticleSystem(),
		Log:       NewMessageLog(logSize, logWidth),
		Player:    PlayerState{Health: t.StartHealth},
		tuning:    t,
		biome:     cfg.Biome,
		control:   cfg.Control,
		car:       cfg.Car,
		scores:    scores,
		audio:     audio,
	}
}

// Tuning returns the constants the simulation runs with.
func (s *Sim) Tuning() *world.Tuning { return s.tuning }

// Biome returns the current biome.
func (s *Sim) Biome() world.Biome { return s.biome }

// ControlMode returns the current control mode.
func (s *Sim) ControlMode() world.ControlMode { return s.control }

// CarType returns the player's car type.
func (s *Sim) CarType() world.CarType { return s.car }

// SetBiome changes the scenery and palette. Scenery already on the road keeps
// its variant.
func (s *Sim) SetBiome(b world.Biome) { s.biome = b }

// SetControlMode changes how Input.Steer and the buttons are read.
func (s *Sim) SetControlMode(m world.ControlMode) { s.control = m }

// SetCarType changes the player's car.
func (s *Sim) SetCarType(c world.CarType) { s.car = c }

// HighScore returns the stored best score.
func (s *Sim) HighScore() int { return s.scores.HighScore() }

// Reset starts a new run.
func (s *Sim) Reset() {
	t := s.tuning
	s.Player = PlayerState{Health: t.StartHealth}
	s.Boost.Reset()
	s.Combo.Reset()
	s.Pools.ResetAll()
	s.Particles.Clear()
	s.Spawner.Stats = SpawnStats{}
	s.Log.Clear()
	s.Log.Add(0, fmt.Sprintf("Green light. %s road, best %d m.", s.biome.Title(), s.scores.HighScore()), MsgInfo)

	side := 1.0
	if s.Spawner.Float64() < 0.5 {
		side = -1.0
	}
	s.Bend = side * s.Spawner.Float64() * t.MaxBend

	s.Clock = 0
	s.Outcome = RunOutcome{}
	s.events = s.events[:0]
	s.Playing = true
}

// Stop leaves the run without scoring it. Entities stay where they are until
// the next Reset.
func (s *Sim) Stop() {
	s.Playing = false
	s.audio.Engine(0, s.car)
}

// Step advances the simulation by dt seconds. It does nothing while no run
// is in progress.
func (s *Sim) Step(dt float64, in Input) StepResult {
	s.events = s.events[:0]
	if !s.Playing {
		return StepResult{}
	}
	t := s.tuning
	p := &s.Player

	dt = clamp(dt, 0, t.MaxFrameTime)
	s.Clock += dt
	p.Invulnerable = max(p.Invulnerable-dt, 0)
	s.Combo.Expire(s.Clock)

	switch {
	case in.Gas:
		p.Speed += t.Accel * dt
	case in.Brake:
		p.Speed -= t.Brake * dt
	default:
		p.Speed -= t.Coast * dt
	}

	s.updateBoost(dt, in.Boost)

	if p.Speed > t.SteerMinSpeed {
		p.LaneX += s.steer(in) * t.SteerSpeed * dt * 2
		p.LaneX = clamp(p.LaneX, -world.PlayerLateralLimit, world.PlayerLateralLimit)
	}
	p.RenderX += (p.LaneX - p.RenderX) * min(dt*t.LateralSmoothing, 1)

	mps := world.KmhToMps(p.Speed)
	p.Distance += mps * dt
	p.Odometer += mps * dt

	s.Spawner.SpawnTraffic(p.Speed)
	s.Spawner.SpawnScenery(p.Speed, s.biome)

	s.moveTraffic(dt)
	s.Pools.Scenery.ForEach(func(_ Handle, sc *Scenery) bool {
		sc.Z += mps * dt
		return sc.Z > world.DespawnZ
	})

	s.Particles.Update(dt, mps)

	if s.Playing {
		s.audio.Engine(p.Speed, s.car)
	} else {
		s.audio.Engine(0, s.car)
	}
	return StepResult{Events: s.events}
}

func (s *Sim) updateBoost(dt float64, held bool) {
	t := s.tuning
	p := &s.Player

	before := s.Boost.Phase
	p.Boosting = s.Boost.Update(dt, held)
	switch {
	case before == BoostCharging && s.Boost.Phase == BoostCooldown:
		s.Log.Add(s.Clock, "Nitro empty, recharging.", MsgWarning)
		s.events = append(s.events, Event{Kind: EventBoostDepleted})
	case before == BoostCooldown && s.Boost.Phase == BoostCharging:
		s.Log.Add(s.Clock, "Nitro recharged.", MsgInfo)
		s.events = append(s.events, Event{Kind: EventBoostRecharged})
	}

	limit := t.MaxSpeed
	if p.Boosting {
		p.Speed += t.AccelBoost * dt
		limit = t.BoostMaxSpeed
		s.emitTrail()
	}
	p.Speed = clamp(p.Speed, 0, limit)
}

// emitTrail drops one nitro particle behind the car.
func (s *Sim) emitTrail() {
	jitter := s.Spawner.Float64() - 0.5
	s.Particles.Emit(Position{
		X: s.Player.RenderX + jitter,
		Y: 0.5,
		Z: 1.5,
	}, s.tuning.ParticleLife)
}

// steer returns the steering signal in [-1, 1] for the current control mode.
func (s *Sim) steer(in Input) float64 {
	if s.control.Continuous() {
		return clamp(in.Steer, -100, 100) / 100
	}
	steer := 0.0
	if in.Left {
		steer = -s.tuning.ButtonSteer
	}
	if in.Right {
		steer = s.tuning.ButtonSteer
	}
	return steer
}

// moveTraffic integrates every car relative to the player, culls the ones
// that left the road and resolves contacts right after each car moves.
func (s *Sim) moveTraffic(dt float64) {
	t := s.tuning
	rules := ContactRules{
		Range:     t.ContactRange,
		Collision: t.CollisionDistance,
		NearMiss:  t.NearMissDistance,
	}
	playerSpeed := s.Player.Speed
	for _, pool := range s.Pools.Traffic {
		pool.ForEach(func(_ Handle, car *Traffic) bool {
			car.Z += world.KmhToMps(playerSpeed-car.Speed) * dt
			if car.Z > world.DespawnZ || car.Z < world.OutranZ {
				return true
			}
			if s.Playing {
				s.resolveContact(car, rules)
			}
			return false
		})
	}
}

func (s *Sim) resolveContact(car *Traffic, rules ContactRules) {
	p := &s.Player
	switch ClassifyContact(rules, p.RenderX, car.X, car.Z, car.NearMissed, p.Invulnerable > 0) {
	case ContactNearMiss:
		car.NearMissed = true
		s.nearMiss()
	case ContactCollision:
		s.crash()
	}
}

func (s *Sim) nearMiss() {
	t := s.tuning
	count := s.Combo.Hit(s.Clock)
	reward := int(t.NearMissPoints) * count
	s.Player.Distance += float64(reward)
	s.Boost.Refill(t.NearMissFuelBonus)
	s.audio.Cue(CueNearMiss)

	msg := fmt.Sprintf("Near miss! +%d", reward)
	if count > 1 {
		msg += fmt.Sprintf(" (x%d combo)", count)
	}
	s.Log.Add(s.Clock, msg, MsgBonus)
	s.events = append(s.events, Event{Kind: EventNearMiss, Count: count, Reward: reward})
}

func (s *Sim) crash() {
	t := s.tuning
	p := &s.Player
	p.Health--
	p.Invulnerable = t.InvulnerableTime
	p.Speed *= t.CrashSpeedFactor
	s.audio.Cue(CueCrash)
	s.events = append(s.events, Event{Kind: EventCrash, Health: max(p.Health, 0)})

	if p.Health <= 0 {
		p.Health = 0
		s.gameOver()
		return
	}
	s.Log.Add(s.Clock, fmt.Sprintf("Crashed! %d left.", p.Health), MsgWarning)
}

func (s *Sim) gameOver() {
	s.Playing = false
	score := int(math.Floor(s.Player.Distance))
	best := s.scores.HighScore()
	out := RunOutcome{Score: score, Best: best}
	if score > best {
		s.scores.SetHighScore(score)
		out.Best = score
		out.NewHighScore = true
		s.Log.Add(s.Clock, fmt.Sprintf("Wrecked. New high score: %d m!", score), MsgRecord)
	} else {
		s.Log.Add(s.Clock, fmt.Sprintf("Wrecked at %d m.", score), MsgCritical)
	}
	s.Outcome = out
	s.events = append(s.events, Event{Kind: EventGameOver})
}

// TrafficView is a read-only copy of a traffic vehicle.
type TrafficView struct {
	Class      world.VehicleClass
	Lane       int
	X, Z       float64
	Speed      float64
	NearMissed bool
}

// SceneryView is a read-only copy of a scenery group.
type SceneryView struct {
	Kind world.SceneryKind
	Side float64
	X, Z float64
}

// Snapshot is the state handed to renderers after a step. Traffic and
// scenery are sorted far to near.
type Snapshot struct {
	Clock     float64
	Playing   bool
	Player    PlayerState
	Boost     BoostMeter
	Combo     ComboTracker
	Bend      float64
	Biome     world.Biome
	Control   world.ControlMode
	Car       world.CarType
	Outcome   RunOutcome
	HighScore int

	Traffic   []TrafficView
	Scenery   []SceneryView
	Particles []ParticleView
}

// ComboRemaining returns the seconds left on the current combo.
func (snap *Snapshot) ComboRemaining() float64 {
	return snap.Combo.Remaining(snap.Clock)
}

// Snapshot copies the current state.
func (s *Sim) Snapshot() Snapshot {
	snap := Snapshot{
		Clock:     s.Clock,
		Playing:   s.Playing,
		Player:    s.Player,
		Boost:     s.Boost,
		Combo:     s.Combo,
		Bend:      s.Bend,
		Biome:     s.biome,
		Control:   s.control,
		Car:       s.car,
		Outcome:   s.Outcome,
		HighScore: s.scores.HighScore(),
		Traffic:   make([]TrafficView, 0, s.Pools.ActiveTraffic()),
		Scenery:   make([]SceneryView, 0, s.Pools.Scenery.Len()),
	}
	for _, pool := range s.Pools.Traffic {
		pool.Each(func(_ Handle, car *Traffic) {
			snap.Traffic = append(snap.Traffic, TrafficView{
				Class:      car.Class,
				Lane:       car.Lane,
				X:          car.X,
				Z:          car.Z,
				Speed:      car.Speed,
				NearMissed: car.NearMissed,
			})
		})
	}
	s.Pools.Scenery.Each(func(_ Handle, sc *Scenery) {
		snap.Scenery = append(snap.Scenery, SceneryView{Kind: sc.Kind(), Side: sc.Side, X: sc.X, Z: sc.Z})
	})
	snap.Particles = s.Particles.AppendViews(nil)

	slices.SortStableFunc(snap.Traffic, func(a, b TrafficView) int { return cmp.Compare(a.Z, b.Z) })
	slices.SortStableFunc(snap.Scenery, func(a, b SceneryView) int { return cmp.Compare(a.Z, b.Z) })
	return snap
}
