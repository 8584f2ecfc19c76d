package device

import "time"

// SecurityMode is the arming state of a security unit.
type SecurityMode string

// Arming modes.
const (
	ModeDisarmed SecurityMode = "DISARMED"
	ModeHome     SecurityMode = "HOME"
	ModeAway     SecurityMode = "AWAY"
)

var securityModes = []string{
	string(ModeDisarmed), string(ModeHome), string(ModeAway),
}

// Locations treated as sensitive while the unit is in HOME mode. Motion
// anywhere else is ignored in that mode.
const (
	LocationEntrance = "Entrance"
	LocationWindow   = "Window"
)

const eventTimeLayout = "2006-01-02 15:04:05"

// SecurityUnit is an armable alarm panel. It observes every motion event in
// the home and decides, from its arming mode and the event's location,
// whether to trigger the alarm.
//
// Arming and disarming are tied to power: turning the unit on arms it in its
// current mode, turning it off disarms it and silences any active alarm.
// Each unit keeps its own append-only event history with wall-clock
// timestamps.
type SecurityUnit struct {
	base

	mode   SecurityMode
	alarm  bool
	events []string
}

// NewSecurityUnit creates a disarmed security unit with no events. The
// orchestrator normally goes through Factory.Security instead.
func NewSecurityUnit(id, name, location, createdBy string) *SecurityUnit {
	return &SecurityUnit{
		base: newBase(id, name, location, createdBy, KindSecurity),
		mode: ModeDisarmed,
	}
}

// TurnOn arms the unit, recording an event on the actual transition.
func (s *SecurityUnit) TurnOn() {
	if s.turnOn() {
		s.recordEvent("System armed")
	}
}

// TurnOff disarms the unit, silencing any active alarm and recording an
// event on the actual transition.
func (s *SecurityUnit) TurnOff() {
	if s.turnOff() {
		s.mu.Lock()
		if s.alarm {
			s.alarm = false
			s.logger.Info("alarm deactivated", "id", s.id)
		}
		s.mu.Unlock()
		s.recordEvent("System disarmed")
	}
}

// SetSecurityMode sets the arming mode. Unknown modes fall back to DISARMED.
func (s *SecurityUnit) SetSecurityMode(mode SecurityMode) {
	s.mu.Lock()
	s.mode = SecurityMode(Clamp.Pick(string(mode), securityModes, string(ModeDisarmed)))
	applied := s.mode
	s.mu.Unlock()
	s.recordEvent("Security mode changed to " + string(applied))
	s.logger.Info("security mode set", "id", s.id, "mode", applied)
}

// SecurityModeValue returns the arming mode.
func (s *SecurityUnit) SecurityModeValue() SecurityMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// DetectMotion evaluates a motion event against the arming mode. AWAY
// triggers the alarm for any location; HOME only for the sensitive
// locations (Entrance, Window); DISARMED never. Powered-off units ignore
// motion entirely.
func (s *SecurityUnit) DetectMotion(location string) {
	s.mu.Lock()
	if !s.on {
		s.mu.Unlock()
		return
	}
	mode := s.mode
	s.mu.Unlock()

	s.recordEvent("Motion detected at " + location)

	switch mode {
	case ModeAway:
		s.ActivateAlarm()
	case ModeHome:
		if location == LocationEntrance || location == LocationWindow {
			s.ActivateAlarm()
		}
	}
}

// ActivateAlarm triggers the alarm. Idempotent; powered-off units cannot
// alarm.
func (s *SecurityUnit) ActivateAlarm() {
	s.mu.Lock()
	if !s.on || s.alarm {
		s.mu.Unlock()
		return
	}
	s.alarm = true
	s.mu.Unlock()
	s.recordEvent("ALARM activated")
	s.logger.Warn("alarm activated", "id", s.id)
}

// DeactivateAlarm silences the alarm. Idempotent.
func (s *SecurityUnit) DeactivateAlarm() {
	s.mu.Lock()
	if !s.alarm {
		s.mu.Unlock()
		return
	}
	s.alarm = false
	s.mu.Unlock()
	s.recordEvent("ALARM deactivated")
	s.logger.Info("alarm deactivated", "id", s.id)
}

// AlarmActive reports whether the alarm is currently triggered.
func (s *SecurityUnit) AlarmActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alarm
}

// Events returns a copy of the unit's event history, oldest first.
func (s *SecurityUnit) Events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]string, len(s.events))
	copy(events, s.events)
	return events
}

func (s *SecurityUnit) recordEvent(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, time.Now().Format(eventTimeLayout)+": "+msg)
}

// SetToDefaults disarms the mode and silences the alarm. Power state and the
// event history are untouched.
func (s *SecurityUnit) SetToDefaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeDisarmed
	s.alarm = false
	s.logger.Info("reset to defaults", "id", s.id)
}

// Clone returns an independent snapshot copy of the security unit.
func (s *SecurityUnit) Clone() Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	cpy := &SecurityUnit{
		base:  s.cloneBase(),
		mode:  s.mode,
		alarm: s.alarm,
	}
	if s.events != nil {
		cpy.events = make([]string, len(s.events))
		copy(cpy.events, s.events)
	}
	return cpy
}
