package game

// BoostPhase is the state of the nitro meter.
type BoostPhase uint8

const (
	BoostCharging BoostPhase = iota // fuel can be burned, regenerates while idle
	BoostCooldown                   // empty, locked until the recharge timer runs out
)

func (p BoostPhase) String() string {
	if p == BoostCooldown {
		return "cooldown"
	}
	return "charging"
}

// BoostMeter tracks nitro fuel.
// Fuel stays in [0, FuelMax]. During cooldown fuel is frozen at zero and
// is restored to full in one step when the recharge timer expires.
type BoostMeter struct {
	Fuel          float64
	Phase         BoostPhase
	CooldownTimer float64

	FuelMax          float64
	RechargeDuration float64
	RegenRate        float64 // fuel per second while idle
}

// NewBoostMeter creates a full meter.
func NewBoostMeter(fuelMax, recharge, regen float64) BoostMeter {
	return BoostMeter{
		Fuel:             fuelMax,
		Phase:            BoostCharging,
		FuelMax:          fuelMax,
		RechargeDuration: recharge,
		RegenRate:        regen,
	}
}

// Reset refills the meter and leaves cooldown.
func (m *BoostMeter) Reset() {
	m.Fuel = m.FuelMax
	m.Phase = BoostCharging
	m.CooldownTimer = 0
}

// Update advances the meter by dt with the boost input held or not and
// reports whether the car is boosting this frame.
func (m *BoostMeter) Update(dt float64, held bool) bool {
	if m.Phase == BoostCooldown {
		m.CooldownTimer -= dt
		if m.CooldownTimer <= 0 {
			m.CooldownTimer = 0
			m.Phase = BoostCharging
			m.Fuel = m.FuelMax
		}
		return false
	}

	boosting := false
	switch {
	case held && m.Fuel > 0:
		boosting = true
		m.Fuel -= dt
		if m.Fuel <= 0 {
			m.Fuel = 0
			m.Phase = BoostCooldown
			m.CooldownTimer = m.RechargeDuration
		}
	case !held && m.Fuel < m.FuelMax:
		m.Fuel += dt * m.RegenRate
	}
	m.Fuel = clamp(m.Fuel, 0, m.FuelMax)
	return boosting
}

// Refill adds fuel (near-miss reward). Ignored during cooldown.
func (m *BoostMeter) Refill(amount float64) {
	if m.Phase == BoostCooldown {
		return
	}
	m.Fuel = clamp(m.Fuel+amount, 0, m.FuelMax)
}

// Fraction returns the ring fill shown by the HUD: fuel left while
// charging, recharge progress while cooling down.
func (m *BoostMeter) Fraction() float64 {
	if m.Phase == BoostCooldown {
		if m.RechargeDuration <= 0 {
			return 1
		}
		return clamp(1-m.CooldownTimer/m.RechargeDuration, 0, 1)
	}
	if m.FuelMax <= 0 {
		return 0
	}
	return m.Fuel / m.FuelMax
}

// Label returns the HUD caption for the current phase.
func (m *BoostMeter) Label() string {
	if m.Phase == BoostCooldown {
		return "CHRG"
	}
	return "NITRO"
}

// Readout returns the seconds shown under the caption: fuel left, or the
// remaining recharge time during cooldown.
func (m *BoostMeter) Readout() float64 {
	if m.Phase == BoostCooldown {
		return m.CooldownTimer
	}
	return m.Fuel
}
