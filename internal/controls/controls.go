// Package controls turns raw device input into the simulation's Input.
package controls

import (
	"math"

	"github.com/neon-racer/neon_racer/internal/game"
	"github.com/neon-racer/neon_racer/internal/world"
)

// SteerLimit bounds the continuous steer signal.
const SteerLimit = 100.0

// Action is a driving control a key can be bound to.
type Action uint8

const (
	ActionLeft Action = iota
	ActionRight
	ActionGas
	ActionBrake
	ActionBoost
	actionCount
)

// ActionCount is the number of bindable actions.
const ActionCount = int(actionCount)

var actionNames = [...]string{"left", "right", "gas", "brake", "boost"}

func (a Action) String() string {
	if int(a) < ActionCount {
		return actionNames[a]
	}
	return "unknown"
}

// runeBindings maps letter keys to actions. Arrow keys and space are bound by
// each client since their key codes differ.
var runeBindings = map[rune]Action{
	'a': ActionLeft, 'A': ActionLeft,
	'd': ActionRight, 'D': ActionRight,
	'w': ActionGas, 'W': ActionGas,
	's': ActionBrake, 'S': ActionBrake,
	'n': ActionBoost, 'N': ActionBoost,
	' ': ActionBoost,
}

// ActionForRune returns the action bound to a printable key.
func ActionForRune(r rune) (Action, bool) {
	a, ok := runeBindings[r]
	return a, ok
}

// WheelAngle converts a pointer offset from the wheel center (screen
// coordinates, y down) into a steer value. Straight up is 0, right is
// positive; the result is clamped to ±SteerLimit.
func WheelAngle(dx, dy float64) float64 {
	if dx == 0 && dy == 0 {
		return 0
	}
	angle := math.Atan2(dy, dx)*180/math.Pi + 90
	if angle > 180 {
		angle -= 360
	}
	return clampSteer(angle)
}

// SliderValue maps a pointer x on a horizontal track starting at left to a
// steer value, center of the track being 0.
func SliderValue(x, left, width float64) float64 {
	if width <= 0 {
		return 0
	}
	frac := (x - left) / width
	return clampSteer((frac*2 - 1) * SteerLimit)
}

// RampSteer moves a keyboard-driven steer value toward the held direction at
// rate units per second, springing back to 0 when neither is held.
func RampSteer(cur float64, left, right bool, dt, rate float64) float64 {
	target := 0.0
	switch {
	case left && !right:
		target = -SteerLimit
	case right && !left:
		target = SteerLimit
	}
	step := rate * dt
	if target == 0 {
		// Springs back twice as fast as it winds up.
		step *= 2
	}
	switch {
	case cur < target:
		cur = min(cur+step, target)
	case cur > target:
		cur = max(cur-step, target)
	}
	return clampSteer(cur)
}

func clampSteer(v float64) float64 {
	return max(min(v, SteerLimit), -SteerLimit)
}

// Frame is the raw control state gathered by a client for one frame.
type Frame struct {
	Down  [ActionCount]bool
	Steer float64 // pointer or ramped keyboard value
}

// Set marks an action held.
func (f *Frame) Set(a Action, down bool) {
	if int(a) < ActionCount {
		f.Down[a] = down
	}
}

// Input builds the simulation input for mode. Steer is only passed on in
// the continuous modes; left and right only in buttons mode.
func (f Frame) Input(mode world.ControlMode) game.Input {
	in := game.Input{
		Gas:   f.Down[ActionGas],
		Brake: f.Down[ActionBrake],
		Boost: f.Down[ActionBoost],
	}
	if mode.Continuous() {
		in.Steer = clampSteer(f.Steer)
	} else {
		in.Left = f.Down[ActionLeft]
		in.Right = f.Down[ActionRight]
	}
	return in
}

// HeldKeys approximates held keys on terminals, which report presses and
// auto-repeat but never releases. A press keeps its action down for Hold
// seconds.
type HeldKeys struct {
	Hold  float64
	now   float64
	until [ActionCount]float64
}

// NewHeldKeys creates a tracker with the given hold time.
func NewHeldKeys(hold float64) *HeldKeys {
	return &HeldKeys{Hold: hold}
}

// Press records a key press for a.
func (h *HeldKeys) Press(a Action) {
	if int(a) < ActionCount {
		h.until[a] = h.now + h.Hold
	}
}

// Release drops a immediately.
func (h *HeldKeys) Release(a Action) {
	if int(a) < ActionCount {
		h.until[a] = 0
	}
}

// Advance moves the tracker's clock forward.
func (h *HeldKeys) Advance(dt float64) { h.now += dt }

// Down reports whether a counts as held.
func (h *HeldKeys) Down(a Action) bool {
	return int(a) < ActionCount && h.until[a] > h.now
}

// Fill copies the held state into f.
func (h *HeldKeys) Fill(f *Frame) {
	for a := range f.Down {
		f.Down[a] = h.Down(Action(a))
	}
}
