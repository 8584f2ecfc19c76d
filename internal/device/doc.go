// Package device provides the controllable-device model for Homestead Core.
//
// Devices are modelled as a closed set of concrete types (Light, Fan,
// Climate, SecurityUnit) behind capability interfaces. Callers never branch
// on concrete type identity: power control is the Switchable capability,
// attribute control goes through BrightnessControl, SpeedControl,
// TemperatureControl and SecurityModeControl, and motion handling through
// MotionActivatable and MotionObserver. The scheduler and the orchestrator
// query these structurally.
//
// # Validation policy
//
// Every setter for a bounded attribute is total: out-of-range numeric input
// is clamped to the nearest bound and invalid enumerated input is replaced
// with the type's default. This silent-clamp behaviour is centralised in the
// ClampingValidator (clamp.go) so it can later be swapped for strict
// validation without touching call sites.
//
// # Thread Safety
//
// Each device carries its own mutex; all exported methods are safe for
// concurrent use. Mutating calls emit informational log lines through an
// injectable Logger with a no-op default — logging never blocks or alters
// a mutation.
package device
