package world

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidTuning is returned (wrapped) when a tuning file parses but
// describes a game that cannot run.
var ErrInvalidTuning = errors.New("invalid tuning")

// LoadTuning parses a Tuning from JSON bytes. Fields missing from the
// document keep their DefaultTuning value.
func LoadTuning(data []byte) (*Tuning, error) {
	t := DefaultTuning()
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadTuningFile reads a tuning file. An empty path yields DefaultTuning.
func LoadTuningFile(path string) (*Tuning, error) {
	if path == "" {
		return DefaultTuning(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning %s: %w", path, err)
	}
	t, err := LoadTuning(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Validate reports the first constant that would break the simulation.
func (t *Tuning) Validate() error {
	switch {
	case t.MaxSpeed <= 0:
		return fmt.Errorf("%w: max_speed must be positive", ErrInvalidTuning)
	case t.BoostMaxSpeed < t.MaxSpeed:
		return fmt.Errorf("%w: boost_max_speed (%.1f) below max_speed (%.1f)", ErrInvalidTuning, t.BoostMaxSpeed, t.MaxSpeed)
	case t.MaxFrameTime <= 0:
		return fmt.Errorf("%w: max_frame_time must be positive", ErrInvalidTuning)
	case t.BoostFuelMax <= 0:
		return fmt.Errorf("%w: boost_fuel_max must be positive", ErrInvalidTuning)
	case t.BoostRecharge <= 0:
		return fmt.Errorf("%w: boost_recharge must be positive", ErrInvalidTuning)
	case t.TrafficSpawnChance < 0 || t.TrafficSpawnChance > 1:
		return fmt.Errorf("%w: traffic_spawn_chance %.3f outside [0,1]", ErrInvalidTuning, t.TrafficSpawnChance)
	case t.ScenerySpawnChance < 0 || t.ScenerySpawnChance > 1:
		return fmt.Errorf("%w: scenery_spawn_chance %.3f outside [0,1]", ErrInvalidTuning, t.ScenerySpawnChance)
	case t.CollisionDistance <= 0 || t.NearMissDistance < t.CollisionDistance:
		return fmt.Errorf("%w: need 0 < collision_distance <= near_miss_distance", ErrInvalidTuning)
	case t.ComboWindow <= 0:
		return fmt.Errorf("%w: combo_window must be positive", ErrInvalidTuning)
	case t.StartHealth <= 0:
		return fmt.Errorf("%w: start_health must be positive", ErrInvalidTuning)
	case t.CrashSpeedFactor < 0 || t.CrashSpeedFactor > 1:
		return fmt.Errorf("%w: crash_speed_factor %.2f outside [0,1]", ErrInvalidTuning, t.CrashSpeedFactor)
	}
	return nil
}
