package world

import "strings"

// VehicleClass identifies a kind of traffic vehicle. Each class has its own pool.
type VehicleClass uint8

const (
	VehicleTruck VehicleClass = iota
	VehicleSUV
	VehicleSedan
	VehicleSports
	VehicleBike
	vehicleClassCount
)

// VehicleClassCount is the number of traffic classes.
const VehicleClassCount = int(vehicleClassCount)

// VehicleTemplate defines the fixed stats of a traffic class.
type VehicleTemplate struct {
	Class    VehicleClass
	Name     string
	Width    float64 // lateral size in world units
	Length   float64 // longitudinal size in world units
	PoolSize int     // fixed pool capacity
	SpawnCap float64 // upper bound of this class on the cumulative spawn roll
}

// VehicleTemplates holds the template for every traffic class, indexed by class.
var VehicleTemplates = [VehicleClassCount]VehicleTemplate{
	VehicleTruck:  {VehicleTruck, "truck", 2.4, 8.0, 5, 0.10},
	VehicleSUV:    {VehicleSUV, "suv", 2.0, 4.6, 10, 0.30},
	VehicleSedan:  {VehicleSedan, "sedan", 2.0, 4.0, 10, 0.70},
	VehicleSports: {VehicleSports, "sports", 1.8, 3.5, 10, 0.85},
	VehicleBike:   {VehicleBike, "bike", 0.6, 2.0, 10, 1.00},
}

func (c VehicleClass) String() string {
	if int(c) < VehicleClassCount {
		return VehicleTemplates[c].Name
	}
	return "unknown"
}

// PickVehicleClass maps a uniform roll in [0, 1) onto the cumulative spawn
// distribution: truck < 0.10, SUV < 0.30, sedan < 0.70, sports < 0.85, bike otherwise.
func PickVehicleClass(roll float64) VehicleClass {
	for _, t := range VehicleTemplates[:VehicleClassCount-1] {
		if roll < t.SpawnCap {
			return t.Class
		}
	}
	return VehicleBike
}

// CarType is the body style of the player's car. It changes the engine sound
// and the sprite, never the handling.
type CarType uint8

const (
	CarMuscle CarType = iota
	CarRacer
	CarSUV
	CarF1
	CarTruck
)

// CarTypes lists every player car in menu order.
var CarTypes = []CarType{CarMuscle, CarRacer, CarSUV, CarF1, CarTruck}

var carTypeNames = [...]string{
	CarMuscle: "muscle",
	CarRacer:  "racer",
	CarSUV:    "suv",
	CarF1:     "f1",
	CarTruck:  "truck",
}

var carTypeTitles = [...]string{
	CarMuscle: "Muscle",
	CarRacer:  "Racer",
	CarSUV:    "SUV",
	CarF1:     "Formula",
	CarTruck:  "Truck",
}

func (c CarType) String() string {
	if int(c) < len(carTypeNames) {
		return carTypeNames[c]
	}
	return "unknown"
}

// Title returns the menu label of the car type.
func (c CarType) Title() string {
	if int(c) < len(carTypeTitles) {
		return carTypeTitles[c]
	}
	return "Unknown"
}

// Next returns the car type after c in menu order, wrapping around.
func (c CarType) Next() CarType {
	return CarType((int(c) + 1) % len(CarTypes))
}

// ParseCarType maps a settings key to a CarType. Unknown names report false.
func ParseCarType(name string) (CarType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range carTypeNames {
		if n == name {
			return CarType(i), true
		}
	}
	return CarMuscle, false
}

// ControlMode selects how the steer signal is produced.
type ControlMode uint8

const (
	ControlButtons ControlMode = iota // discrete left/right, half steer
	ControlSlider                     // continuous -100..100 slider
	ControlWheel                      // continuous -100..100 wheel angle
)

// ControlModes lists every control mode in menu order.
var ControlModes = []ControlMode{ControlSlider, ControlButtons, ControlWheel}

var controlModeNames = [...]string{
	ControlButtons: "buttons",
	ControlSlider:  "slider",
	ControlWheel:   "wheel",
}

func (m ControlMode) String() string {
	if int(m) < len(controlModeNames) {
		return controlModeNames[m]
	}
	return "unknown"
}

// Continuous reports whether the mode reads the analog steer value.
func (m ControlMode) Continuous() bool { return m != ControlButtons }

// Next returns the control mode after m in menu order, wrapping around.
func (m ControlMode) Next() ControlMode {
	for i, cm := range ControlModes {
		if cm == m {
			return ControlModes[(i+1)%len(ControlModes)]
		}
	}
	return ControlButtons
}

// ParseControlMode maps a settings key to a ControlMode. Unknown names report false.
func ParseControlMode(name string) (ControlMode, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range controlModeNames {
		if n == name {
			return ControlMode(i), true
		}
	}
	return ControlButtons, false
}

// Paint is a body colour for the player's car.
type Paint uint8

const (
	PaintRed Paint = iota
	PaintCyan
	PaintLime
	PaintYellow
	PaintMagenta
	PaintWhite
	PaintBlack
	paintCount
)

// PaintCount is the number of selectable colours.
const PaintCount = int(paintCount)

var paintNames = [...]string{"red", "cyan", "lime", "yellow", "magenta", "white", "black"}

// PaintRGB holds the colour of every paint as 0xRRGGBB.
var PaintRGB = [PaintCount]uint32{0xff0000, 0x00ffff, 0x39ff14, 0xffff00, 0xff00ff, 0xffffff, 0x111111}

func (p Paint) String() string {
	if int(p) < PaintCount {
		return paintNames[p]
	}
	return "unknown"
}

// Next returns the following paint in menu order, wrapping around.
func (p Paint) Next() Paint {
	return Paint((int(p) + 1) % PaintCount)
}

// ParsePaint looks up a paint by name.
func ParsePaint(name string) (Paint, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range paintNames {
		if n == name {
			return Paint(i), true
		}
	}
	return PaintRed, false
}
