package device

import (
	"sync"
	"time"

	"github.com/ashford-labs/homestead-core/internal/schedule"
)

// Logger defines the logging interface used by devices.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Kind identifies the concrete device variant, for presentation and audit
// purposes only — behaviour is always dispatched through the capability
// interfaces below, never by comparing kinds.
type Kind string

// Kind constants.
const (
	KindLight    Kind = "light"
	KindFan      Kind = "fan"
	KindClimate  Kind = "climate"
	KindSecurity Kind = "security"
)

// Device is the common surface shared by every controllable entity:
// identity, location label, task ownership and a default-settings reset.
//
// The identifier is assigned at creation and immutable. Scheduled tasks are
// owned by their device; removing a task from its device destroys it.
type Device interface {
	ID() string
	Name() string
	SetName(name string)
	Location() string
	SetLocation(location string)
	CreatedBy() string
	Kind() Kind

	// LastStateChange is the time of the most recent actual power
	// transition (no-op TurnOn/TurnOff calls do not update it).
	LastStateChange() time.Time

	Tasks() []*schedule.Task
	AddTask(task *schedule.Task)
	RemoveTask(taskID string) bool

	// SetToDefaults resets type-specific attributes to their fixed
	// defaults without changing the power state.
	SetToDefaults()

	// Clone returns an independent snapshot copy of the device.
	Clone() Device
}

// Switchable is the power-control capability. Both transitions are no-ops
// when the device is already in the target state.
type Switchable interface {
	TurnOn()
	TurnOff()
	IsOn() bool
}

// BrightnessControl is the dimming capability.
type BrightnessControl interface {
	SetBrightness(level int)
	Brightness() int
}

// SpeedControl is the fan-speed capability.
type SpeedControl interface {
	SetSpeed(speed int)
	Speed() int
}

// TemperatureControl is the setpoint capability.
type TemperatureControl interface {
	SetTemperature(celsius int)
	Temperature() int
}

// SecurityModeControl is the arming-mode capability.
type SecurityModeControl interface {
	SetSecurityMode(mode SecurityMode)
	SecurityModeValue() SecurityMode
}

// MotionActivatable is implemented by devices that can switch themselves on
// in response to motion (lights with the motion-activation flag).
type MotionActivatable interface {
	MotionActivated() bool
	ActivateByMotion()
}

// MotionObserver is implemented by devices that want to be told about every
// motion event regardless of location (security units).
type MotionObserver interface {
	DetectMotion(location string)
}

// base carries the state every device shares. Concrete types embed it and
// layer their own attributes on the same mutex.
type base struct {
	mu sync.Mutex

	id        string
	name      string
	location  string
	createdBy string
	kind      Kind

	on         bool
	lastChange time.Time

	tasks []*schedule.Task

	logger Logger
}

func newBase(id, name, location, createdBy string, kind Kind) base {
	return base{
		id:         id,
		name:       name,
		location:   location,
		createdBy:  createdBy,
		kind:       kind,
		lastChange: time.Now().UTC(),
		logger:     noopLogger{},
	}
}

// SetLogger sets the logger for the device.
func (b *base) SetLogger(logger Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if logger == nil {
		logger = noopLogger{}
	}
	b.logger = logger
}

func (b *base) ID() string        { return b.id }
func (b *base) CreatedBy() string { return b.createdBy }
func (b *base) Kind() Kind        { return b.kind }

func (b *base) Name() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.name
}

func (b *base) SetName(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.name = name
}

func (b *base) Location() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.location
}

func (b *base) SetLocation(location string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.location = location
}

func (b *base) LastStateChange() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastChange
}

func (b *base) IsOn() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.on
}

// TurnOn transitions OFF→ON; already-on devices are untouched.
func (b *base) TurnOn() { b.turnOn() }

// TurnOff transitions ON→OFF; already-off devices are untouched.
func (b *base) TurnOff() { b.turnOff() }

// turnOn reports whether an actual transition occurred, so subtypes can
// attach side effects to real transitions only.
func (b *base) turnOn() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.on {
		return false
	}
	b.on = true
	b.lastChange = time.Now().UTC()
	b.logger.Info("device turned on", "id", b.id, "name", b.name)
	return true
}

func (b *base) turnOff() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.on {
		return false
	}
	b.on = false
	b.lastChange = time.Now().UTC()
	b.logger.Info("device turned off", "id", b.id, "name", b.name)
	return true
}

// Tasks returns the device's scheduled tasks. The slice is a copy; the task
// pointers are live.
func (b *base) Tasks() []*schedule.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	tasks := make([]*schedule.Task, len(b.tasks))
	copy(tasks, b.tasks)
	return tasks
}

// AddTask attaches a scheduled task to the device.
func (b *base) AddTask(task *schedule.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tasks = append(b.tasks, task)
	b.logger.Info("scheduled task added", "device", b.id, "task", task.ID, "name", task.Name)
}

// RemoveTask detaches a task by ID, reporting whether it was present.
func (b *base) RemoveTask(taskID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, t := range b.tasks {
		if t.ID == taskID {
			b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
			b.logger.Info("scheduled task removed", "device", b.id, "task", taskID)
			return true
		}
	}
	return false
}

// cloneBase copies the shared state into a fresh base (new mutex, cloned
// task list). Callers must hold b.mu.
func (b *base) cloneBase() base {
	cpy := base{
		id:         b.id,
		name:       b.name,
		location:   b.location,
		createdBy:  b.createdBy,
		kind:       b.kind,
		on:         b.on,
		lastChange: b.lastChange,
		logger:     b.logger,
	}
	if b.tasks != nil {
		cpy.tasks = make([]*schedule.Task, len(b.tasks))
		for i, t := range b.tasks {
			cpy.tasks[i] = t.Clone()
		}
	}
	return cpy
}

// Factory creates devices with a consistent ID source and logger.
//
// The ID generator is injectable so tests can use a deterministic sequence;
// production wiring uses UUIDGenerator.
type Factory struct {
	gen    IDGenerator
	logger Logger
}

// NewFactory creates a device factory. A nil generator defaults to
// UUIDGenerator; a nil logger defaults to no-op.
func NewFactory(gen IDGenerator, logger Logger) *Factory {
	if gen == nil {
		gen = UUIDGenerator
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &Factory{gen: gen, logger: logger}
}

// Light creates a light with a generated ID.
func (f *Factory) Light(name, location, createdBy string) *Light {
	l := NewLight(f.gen(prefixLight), name, location, createdBy)
	l.SetLogger(f.logger)
	return l
}

// Fan creates a fan with a generated ID.
func (f *Factory) Fan(name, location, createdBy string) *Fan {
	d := NewFan(f.gen(prefixFan), name, location, createdBy)
	d.SetLogger(f.logger)
	return d
}

// Climate creates a climate unit with a generated ID.
func (f *Factory) Climate(name, location, createdBy string) *Climate {
	d := NewClimate(f.gen(prefixClimate), name, location, createdBy)
	d.SetLogger(f.logger)
	return d
}

// Security creates a security unit with a generated ID.
func (f *Factory) Security(name, location, createdBy string) *SecurityUnit {
	d := NewSecurityUnit(f.gen(prefixSecurity), name, location, createdBy)
	d.SetLogger(f.logger)
	return d
}
