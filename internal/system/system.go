package system

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ashford-labs/homestead-core/internal/auth"
	"github.com/ashford-labs/homestead-core/internal/device"
	"github.com/ashford-labs/homestead-core/internal/schedule"
)

// Logger defines the logging interface used by the system.
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

const logTimeLayout = "2006-01-02 15:04:05"

// systemActor is the initiator label recorded when no session is active.
const systemActor = "SYSTEM"

// System is the controller orchestrator: device registry, accounts, the
// single session, the master switch and the activity log.
type System struct {
	mu sync.Mutex

	// tickMu admits one tick at a time; an overlapping tick is rejected.
	tickMu sync.Mutex

	devices map[string]device.Device
	users   map[string]*auth.User
	current *auth.User
	on      bool
	log     []string

	logger Logger
}

// New constructs a system seeded with the given accounts. A nil logger
// defaults to no-op. The system starts switched off with no session.
func New(logger Logger, users ...*auth.User) *System {
	if logger == nil {
		logger = noopLogger{}
	}
	s := &System{
		devices: make(map[string]device.Device),
		users:   make(map[string]*auth.User),
		logger:  logger,
	}
	for _, u := range users {
		if u != nil {
			s.users[u.Username] = u
		}
	}
	return s
}

// recordLocked appends a timestamped entry to the activity log.
// Callers must hold s.mu.
func (s *System) recordLocked(event string) {
	s.log = append(s.log, time.Now().Format(logTimeLayout)+" - "+event)
}

// record appends a timestamped entry, taking the lock itself.
func (s *System) record(event string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordLocked(event)
}

// requireLocked returns the session account if it holds the permission tag.
// Callers must hold s.mu.
func (s *System) requireLocked(perm auth.Permission) (*auth.User, error) {
	if s.current == nil {
		return nil, auth.ErrNotAuthenticated
	}
	if !s.current.HasPermission(perm) {
		return nil, auth.ErrPermissionDenied
	}
	return s.current, nil
}

// Login establishes the session for the given credentials. Unknown usernames
// and wrong passwords both fail with ErrInvalidCredentials; the reason is
// never disclosed. A successful login replaces any existing session.
func (s *System) Login(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok || !u.Authenticate(password) {
		s.recordLocked("Failed login attempt")
		s.logger.Warn("login failed", "username", username)
		return auth.ErrInvalidCredentials
	}

	s.current = u
	s.recordLocked(fmt.Sprintf("User %s logged in", u.Username))
	s.logger.Info("user logged in", "username", u.Username, "role", u.Role())
	return nil
}

// Logout clears the session. With no session it is a no-op.
func (s *System) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}
	s.recordLocked(fmt.Sprintf("User %s logged out", s.current.Username))
	s.logger.Info("user logged out", "username", s.current.Username)
	s.current = nil
}

// CurrentUser returns the session account, if any.
func (s *System) CurrentUser() (*auth.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.current != nil
}

// ChangePassword replaces the session account's credential after verifying
// the old one.
func (s *System) ChangePassword(oldPassword, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return auth.ErrNotAuthenticated
	}
	if err := s.current.ChangePassword(oldPassword, newPassword); err != nil {
		return err
	}
	s.recordLocked(fmt.Sprintf("User %s changed password", s.current.Username))
	s.logger.Info("password changed", "username", s.current.Username)
	return nil
}

// AddDevice registers a device. Requires the device:add tag. A device whose
// ID is already registered is rejected with device.ErrDeviceExists.
func (s *System) AddDevice(d device.Device) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, err := s.requireLocked(auth.PermDeviceAdd)
	if err != nil {
		return err
	}
	if _, exists := s.devices[d.ID()]; exists {
		return fmt.Errorf("%w: %s", device.ErrDeviceExists, d.ID())
	}

	s.devices[d.ID()] = d
	s.recordLocked(fmt.Sprintf("Device added: %s (%s) by %s", d.ID(), d.Name(), actor.Username))
	s.logger.Info("device added", "id", d.ID(), "name", d.Name(), "kind", d.Kind(), "by", actor.Username)
	return nil
}

// RemoveDevice unregisters a device and destroys its scheduled tasks.
// Requires the device:remove tag. Unknown IDs fail with
// device.ErrDeviceNotFound and leave the registry untouched.
func (s *System) RemoveDevice(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, err := s.requireLocked(auth.PermDeviceRemove)
	if err != nil {
		return err
	}
	d, ok := s.devices[id]
	if !ok {
		return fmt.Errorf("%w: %s", device.ErrDeviceNotFound, id)
	}

	delete(s.devices, id)
	s.recordLocked(fmt.Sprintf("Device removed: %s (%s) by %s", id, d.Name(), actor.Username))
	s.logger.Info("device removed", "id", id, "by", actor.Username)
	return nil
}

// GetDevice returns the live device handle for direct control calls.
// Requires the device:control tag.
func (s *System) GetDevice(id string) (device.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireLocked(auth.PermDeviceControl); err != nil {
		return nil, err
	}
	d, ok := s.devices[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", device.ErrDeviceNotFound, id)
	}
	return d, nil
}

// Devices returns snapshot clones of every registered device, ordered by ID.
// Without a session holding the device:view tag it returns an empty slice.
func (s *System) Devices() []device.Device {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireLocked(auth.PermDeviceView); err != nil {
		return []device.Device{}
	}

	out := make([]device.Device, 0, len(s.devices))
	for _, d := range s.devices {
		out = append(out, d.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// DeviceCount returns the number of registered devices. Not gated; it leaks
// no device state.
func (s *System) DeviceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.devices)
}

// AddUser registers an account, overwriting any account with the same
// username. Requires the user:manage tag.
func (s *System) AddUser(u *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, err := s.requireLocked(auth.PermUserManage)
	if err != nil {
		return err
	}

	s.users[u.Username] = u
	s.recordLocked(fmt.Sprintf("User added: %s (%s) by %s", u.Username, u.Role(), actor.Username))
	s.logger.Info("user added", "username", u.Username, "role", u.Role(), "by", actor.Username)
	return nil
}

// AddScheduledTask attaches a task to a device. Requires the device:control
// tag. The task's device reference is overwritten with the target ID.
func (s *System) AddScheduledTask(deviceID string, task *schedule.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, err := s.requireLocked(auth.PermDeviceControl)
	if err != nil {
		return err
	}
	d, ok := s.devices[deviceID]
	if !ok {
		return fmt.Errorf("%w: %s", device.ErrDeviceNotFound, deviceID)
	}

	task.DeviceID = deviceID
	d.AddTask(task)
	s.recordLocked(fmt.Sprintf("Scheduled task added to %s: %s by %s", deviceID, task, actor.Username))
	return nil
}

// RemoveScheduledTask detaches a task from a device, destroying it.
// Requires the device:control tag.
func (s *System) RemoveScheduledTask(deviceID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, err := s.requireLocked(auth.PermDeviceControl)
	if err != nil {
		return err
	}
	d, ok := s.devices[deviceID]
	if !ok {
		return fmt.Errorf("%w: %s", device.ErrDeviceNotFound, deviceID)
	}
	if !d.RemoveTask(taskID) {
		return fmt.Errorf("%w: %s", device.ErrTaskNotFound, taskID)
	}

	s.recordLocked(fmt.Sprintf("Scheduled task %s removed from %s by %s", taskID, deviceID, actor.Username))
	return nil
}

// TurnSystemOn switches the master flag on and cascades over every
// power-controllable device: each is turned on and reset to its default
// settings. Not permission gated.
func (s *System) TurnSystemOn() {
	s.mu.Lock()
	s.on = true
	actor := systemActor
	if s.current != nil {
		actor = s.current.Username
	}
	devices := s.snapshotLocked()
	s.recordLocked("System turned ON by " + actor)
	s.mu.Unlock()

	for _, d := range devices {
		if sw, ok := d.(device.Switchable); ok {
			sw.TurnOn()
			d.SetToDefaults()
		}
	}
	s.logger.Info("system turned on", "by", actor, "devices", len(devices))
}

// TurnSystemOff switches the master flag off and turns every
// power-controllable device off. Not permission gated.
func (s *System) TurnSystemOff() {
	s.mu.Lock()
	s.on = false
	actor := systemActor
	if s.current != nil {
		actor = s.current.Username
	}
	devices := s.snapshotLocked()
	s.recordLocked("System turned OFF by " + actor)
	s.mu.Unlock()

	for _, d := range devices {
		if sw, ok := d.(device.Switchable); ok {
			sw.TurnOff()
		}
	}
	s.logger.Info("system turned off", "by", actor, "devices", len(devices))
}

// IsSystemOn reports the master flag.
func (s *System) IsSystemOn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.on
}

// snapshotLocked returns the live device handles. Callers must hold s.mu and
// must release it before touching the devices.
func (s *System) snapshotLocked() []device.Device {
	out := make([]device.Device, 0, len(s.devices))
	for _, d := range s.devices {
		out = append(out, d)
	}
	return out
}

// HandleMotionDetected reacts to a motion event at a location. While the
// system is off, motion is ignored entirely. Otherwise motion-activated
// lights at that location that are off switch themselves on, and every
// motion observer is notified regardless of location.
func (s *System) HandleMotionDetected(location string) {
	s.mu.Lock()
	if !s.on {
		s.mu.Unlock()
		return
	}
	devices := s.snapshotLocked()
	s.recordLocked("Motion detected at " + location)
	s.mu.Unlock()

	for _, d := range devices {
		if ma, ok := d.(device.MotionActivatable); ok && d.Location() == location {
			if sw, isSwitch := d.(device.Switchable); isSwitch && !sw.IsOn() && ma.MotionActivated() {
				ma.ActivateByMotion()
				s.record(fmt.Sprintf("Motion activated %s (%s)", d.ID(), d.Name()))
				s.logger.Info("motion activated device", "id", d.ID(), "location", location)
			}
		}
		if obs, ok := d.(device.MotionObserver); ok {
			obs.DetectMotion(location)
		}
	}
}

// Logs returns a copy of the activity log, oldest first. Without a session
// holding the logs:view tag it returns an empty slice.
func (s *System) Logs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireLocked(auth.PermLogsView); err != nil {
		return []string{}
	}
	out := make([]string, len(s.log))
	copy(out, s.log)
	return out
}
