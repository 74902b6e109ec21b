package world

// Tuning holds every gameplay constant the simulation reads.
// DefaultTuning matches the shipped game; a JSON file may override any field
// (see LoadTuning) for balance experiments.
type Tuning struct {
	// Longitudinal motion (km/h and km/h per second)
	MaxSpeed      float64 `json:"max_speed"`
	BoostMaxSpeed float64 `json:"boost_max_speed"`
	Accel         float64 `json:"accel"`
	AccelBoost    float64 `json:"accel_boost"`
	Brake         float64 `json:"brake"`
	Coast         float64 `json:"coast"`
	MaxFrameTime  float64 `json:"max_frame_time"`

	// Lateral motion
	SteerSpeed       float64 `json:"steer_speed"`
	SteerMinSpeed    float64 `json:"steer_min_speed"`
	ButtonSteer      float64 `json:"button_steer"`
	LateralSmoothing float64 `json:"lateral_smoothing"`

	// Nitro
	BoostFuelMax      float64 `json:"boost_fuel_max"`
	BoostRecharge     float64 `json:"boost_recharge"`
	BoostRegenRate    float64 `json:"boost_regen_rate"`
	NearMissFuelBonus float64 `json:"near_miss_fuel_bonus"`

	// Spawning
	SpawnMinSpeed      float64 `json:"spawn_min_speed"`
	TrafficSpawnChance float64 `json:"traffic_spawn_chance"`
	ScenerySpawnChance float64 `json:"scenery_spawn_chance"`
	TrafficSpeedFactor float64 `json:"traffic_speed_factor"`
	TrafficSpeedJitter float64 `json:"traffic_speed_jitter"`

	// Contacts
	ContactRange      float64 `json:"contact_range"`
	CollisionDistance float64 `json:"collision_distance"`
	NearMissDistance  float64 `json:"near_miss_distance"`
	NearMissPoints    float64 `json:"near_miss_points"`
	ComboWindow       float64 `json:"combo_window"`

	// Damage
	StartHealth      int     `json:"start_health"`
	InvulnerableTime float64 `json:"invulnerable_time"`
	CrashSpeedFactor float64 `json:"crash_speed_factor"`

	// Presentation
	ParticleLife float64 `json:"particle_life"`
	MaxBend      float64 `json:"max_bend"`
}

// DefaultTuning returns the shipped gameplay constants.
func DefaultTuning() *Tuning {
	return &Tuning{
		MaxSpeed:      300,
		BoostMaxSpeed: 500,
		Accel:         50,
		AccelBoost:    120,
		Brake:         80,
		Coast:         10,
		MaxFrameTime:  0.1,

		SteerSpeed:       10,
		SteerMinSpeed:    5,
		ButtonSteer:      0.5,
		LateralSmoothing: 5,

		BoostFuelMax:      12.0,
		BoostRecharge:     4.0,
		BoostRegenRate:    0.5,
		NearMissFuelBonus: 0.5,

		SpawnMinSpeed:      10,
		TrafficSpawnChance: 0.02,
		ScenerySpawnChance: 0.05,
		TrafficSpeedFactor: 0.5,
		TrafficSpeedJitter: 20,

		ContactRange:      2.5,
		CollisionDistance: 1.6,
		NearMissDistance:  2.5,
		NearMissPoints:    100,
		ComboWindow:       2.0,

		StartHealth:      3,
		InvulnerableTime: 2.0,
		CrashSpeedFactor: 0.2,

		ParticleLife: 1.0,
		MaxBend:      0.4,
	}
}
