package device

// Fan speed bounds and default.
const (
	fanSpeedMin     = 1
	fanSpeedMax     = 5
	fanDefaultSpeed = 2
)

// Fan is a variable-speed fan. Speed is always within [1, 5] even while the
// fan is off; turning the fan on resumes at the stored speed.
type Fan struct {
	base

	speed int
}

// NewFan creates a fan at the default speed. The orchestrator normally goes
// through Factory.Fan instead.
func NewFan(id, name, location, createdBy string) *Fan {
	return &Fan{
		base:  newBase(id, name, location, createdBy, KindFan),
		speed: fanDefaultSpeed,
	}
}

// SetSpeed sets the fan speed, clamped to [1, 5].
func (f *Fan) SetSpeed(speed int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.speed = Clamp.Int(speed, fanSpeedMin, fanSpeedMax)
	f.logger.Info("speed set", "id", f.id, "speed", f.speed)
}

// Speed returns the current fan speed.
func (f *Fan) Speed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.speed
}

// SetToDefaults restores the default speed. Power state is untouched.
func (f *Fan) SetToDefaults() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.speed = fanDefaultSpeed
	f.logger.Info("reset to defaults", "id", f.id)
}

// Clone returns an independent snapshot copy of the fan.
func (f *Fan) Clone() Device {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &Fan{
		base:  f.cloneBase(),
		speed: f.speed,
	}
}
