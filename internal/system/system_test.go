package system

import (
	"errors"
	"testing"

	"github.com/ashford-labs/homestead-core/internal/auth"
	"github.com/ashford-labs/homestead-core/internal/device"
	"github.com/ashford-labs/homestead-core/internal/schedule"
)

// newTestSystem builds a system seeded with an administrator and a resident.
func newTestSystem(t *testing.T) *System {
	t.Helper()

	admin, err := auth.NewAdmin("admin", "adminpass", "Administrator")
	if err != nil {
		t.Fatalf("NewAdmin: %v", err)
	}
	resident, err := auth.NewUser("resident", "residentpass", "Resident")
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}

	return New(nil, admin, resident)
}

func login(t *testing.T, s *System, username, password string) {
	t.Helper()
	if err := s.Login(username, password); err != nil {
		t.Fatalf("Login(%s): %v", username, err)
	}
}

func TestLoginFailureIsGeneric(t *testing.T) {
	s := newTestSystem(t)

	unknownErr := s.Login("ghost", "whatever")
	wrongErr := s.Login("admin", "wrongpass")

	if !errors.Is(unknownErr, auth.ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongErr, auth.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", wrongErr)
	}
	// The two failure modes must be indistinguishable to the caller.
	if unknownErr.Error() != wrongErr.Error() {
		t.Errorf("failure messages differ: %q vs %q", unknownErr, wrongErr)
	}
	if _, ok := s.CurrentUser(); ok {
		t.Error("failed login must not establish a session")
	}
}

func TestLoginAndLogout(t *testing.T) {
	s := newTestSystem(t)

	login(t, s, "admin", "adminpass")
	u, ok := s.CurrentUser()
	if !ok || u.Username != "admin" {
		t.Fatalf("CurrentUser() = %v, %v; want admin session", u, ok)
	}

	s.Logout()
	if _, ok := s.CurrentUser(); ok {
		t.Error("expected no session after logout")
	}

	s.Logout() // no session, no-op
}

func TestChangePassword(t *testing.T) {
	s := newTestSystem(t)

	if err := s.ChangePassword("adminpass", "newpass"); !errors.Is(err, auth.ErrNotAuthenticated) {
		t.Errorf("err = %v without a session, want ErrNotAuthenticated", err)
	}

	login(t, s, "admin", "adminpass")
	if err := s.ChangePassword("wrongpass", "newpass"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("err = %v with wrong old password, want ErrInvalidCredentials", err)
	}
	if err := s.ChangePassword("adminpass", "newpass"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	s.Logout()
	if err := s.Login("admin", "newpass"); err != nil {
		t.Errorf("Login with new password: %v", err)
	}
}

func TestAddDeviceRequiresAuthentication(t *testing.T) {
	s := newTestSystem(t)
	l := device.NewLight("lgt-1", "Lamp", "Bedroom", "admin")

	err := s.AddDevice(l)

	if !errors.Is(err, auth.ErrAuthentication) {
		t.Errorf("err = %v, want the ErrAuthentication family", err)
	}
	if got := s.DeviceCount(); got != 0 {
		t.Errorf("DeviceCount() = %d after rejected add, want 0", got)
	}
}

func TestAddDeviceRequiresPermission(t *testing.T) {
	s := newTestSystem(t)
	login(t, s, "resident", "residentpass")

	err := s.AddDevice(device.NewLight("lgt-1", "Lamp", "Bedroom", "resident"))

	if !errors.Is(err, auth.ErrPermissionDenied) {
		t.Errorf("err = %v, want ErrPermissionDenied", err)
	}
	if got := s.DeviceCount(); got != 0 {
		t.Errorf("DeviceCount() = %d, want 0", got)
	}
}

func TestAddDeviceRejectsDuplicateID(t *testing.T) {
	s := newTestSystem(t)
	login(t, s, "admin", "adminpass")

	if err := s.AddDevice(device.NewLight("lgt-1", "Lamp", "Bedroom", "admin")); err != nil {
		t.Fatalf("AddDevice: %v", err)
	}
	err := s.AddDevice(device.NewFan("lgt-1", "Imposter", "Bedroom", "admin"))

	if !errors.Is(err, device.ErrDeviceExists) {
		t.Errorf("err = %v, want ErrDeviceExists", err)
	}
	if got := s.DeviceCount(); got != 1 {
		t.Errorf("DeviceCount() = %d, want 1", got)
	}
}

func TestRemoveDevice(t *testing.T) {
	s := newTestSystem(t)
	login(t, s, "admin", "adminpass")

	if err := s.AddDevice(device.NewLight("lgt-1", "Lamp", "Bedroom", "admin")); err != nil {
		t.Fatalf("AddDevice: %v", err)
	}

	if err := s.RemoveDevice("unknown"); !errors.Is(err, device.ErrDeviceNotFound) {
		t.Errorf("err = %v for unknown ID, want ErrDeviceNotFound", err)
	}
	if got := s.DeviceCount(); got != 1 {
		t.Errorf("DeviceCount() = %d after failed remove, want 1", got)
	}

	if err := s.RemoveDevice("lgt-1"); err != nil {
		t.Fatalf("RemoveDevice: %v", err)
	}
	if got := s.DeviceCount(); got != 0 {
		t.Errorf("DeviceCount() = %d, want 0", got)
	}
}

func TestDevicesReturnsSortedClones(t *testing.T) {
	s := newTestSystem(t)
	login(t, s, "admin", "adminpass")

	for _, d := range []device.Device{
		device.NewFan("fan-2", "Fan", "Bedroom", "admin"),
		device.NewLight("lgt-1", "Lamp", "Bedroom", "admin"),
		device.NewClimate("cli-3", "AC", "Living Room", "admin"),
	} {
		if err := s.AddDevice(d); err != nil {
			t.Fatalf("AddDevice: %v", err)
		}
	}

	devices := s.Devices()
	if len(devices) != 3 {
		t.Fatalf("Devices() len = %d, want 3", len(devices))
	}
	for i := 1; i < len(devices); i++ {
		if devices[i-1].ID() > devices[i].ID() {
			t.Errorf("devices not sorted by ID: %s before %s", devices[i-1].ID(), devices[i].ID())
		}
	}

	// Snapshots: mutating a returned device must not touch the registry.
	var snap *device.Light
	for _, d := range devices {
		if d.ID() == "lgt-1" {
			snap = d.(*device.Light)
		}
	}
	snap.SetBrightness(5)
	live, err := s.GetDevice("lgt-1")
	if err != nil {
		t.Fatalf("GetDevice: %v", err)
	}
	if got := live.(*device.Light).Brightness(); got != 50 {
		t.Errorf("registry brightness = %d after mutating a snapshot, want 50", got)
	}
}

func TestDevicesWithoutViewPermissionIsEmpty(t *testing.T) {
	s := newTestSystem(t)
	login(t, s, "admin", "adminpass")
	if err := s.AddDevice(device.NewLight("lgt-1", "Lamp", "Bedroom", "admin")); err != nil {
		t.Fatalf("AddDevice: %v", err)
	}
	s.Logout()

	if got := s.Devices(); len(got) != 0 {
		t.Errorf("Devices() len = %d without a session, want 0", len(got))
	}
}

func TestGetDeviceUnknown(t *testing.T) {
	s := newTestSystem(t)
	login(t, s, "resident", "residentpass")

	if _, err := s.GetDevice("unknown"); !errors.Is(err, device.ErrDeviceNotFound) {
		t.Errorf("err = %v, want ErrDeviceNotFound", err)
	}
}

func TestAddUserRequiresManagePermission(t *testing.T) {
	s := newTestSystem(t)
	guest, err := auth.NewUser("guest", "guestpass", "Guest")
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}

	login(t, s, "resident", "residentpass")
	if err := s.AddUser(guest); !errors.Is(err, auth.ErrPermissionDenied) {
		t.Errorf("err = %v for resident, want ErrPermissionDenied", err)
	}

	s.Logout()
	login(t, s, "admin", "adminpass")
	if err := s.AddUser(guest); err != nil {
		t.Fatalf("AddUser: %v", err)
	}

	s.Logout()
	if err := s.Login("guest", "guestpass"); err != nil {
		t.Errorf("Login as added user: %v", err)
	}
}

func TestTurnSystemOnCascades(t *testing.T) {
	s := newTestSystem(t)
	login(t, s, "admin", "adminpass")

	l := device.NewLight("lgt-1", "Lamp", "Bedroom", "admin")
	l.SetBrightness(90)
	f := device.NewFan("fan-1", "Fan", "Bedroom", "admin")
	f.SetSpeed(5)
	for _, d := range []device.Device{l, f} {
		if err := s.AddDevice(d); err != nil {
			t.Fatalf("AddDevice: %v", err)
		}
	}

	s.TurnSystemOn()

	if !s.IsSystemOn() {
		t.Fatal("expected system on")
	}
	if !l.IsOn() || !f.IsOn() {
		t.Error("cascade should turn every device on")
	}
	if got := l.Brightness(); got != 50 {
		t.Errorf("light brightness = %d after cascade, want default 50", got)
	}
	if got := f.Speed(); got != 2 {
		t.Errorf("fan speed = %d after cascade, want default 2", got)
	}

	s.TurnSystemOff()
	if s.IsSystemOn() {
		t.Fatal("expected system off")
	}
	if l.IsOn() || f.IsOn() {
		t.Error("cascade should turn every device off")
	}
}

func TestLogsGatedSilently(t *testing.T) {
	s := newTestSystem(t)
	login(t, s, "admin", "adminpass")
	if err := s.AddDevice(device.NewLight("lgt-1", "Lamp", "Bedroom", "admin")); err != nil {
		t.Fatalf("AddDevice: %v", err)
	}

	adminLogs := s.Logs()
	if len(adminLogs) == 0 {
		t.Fatal("expected log entries for the admin")
	}

	s.Logout()
	login(t, s, "resident", "residentpass")
	if got := s.Logs(); len(got) != 0 {
		t.Errorf("Logs() len = %d for resident, want 0", len(got))
	}
}

func TestHandleMotionDetected(t *testing.T) {
	s := newTestSystem(t)
	login(t, s, "admin", "adminpass")

	s.TurnSystemOn()

	hall := device.NewLight("lgt-1", "Hall Lamp", "Hallway", "admin")
	hall.TurnOff()
	bedroom := device.NewLight("lgt-2", "Bedroom Lamp", "Bedroom", "admin")
	bedroom.TurnOff()
	panel := device.NewSecurityUnit("sec-1", "Panel", "Entrance", "admin")
	panel.TurnOn()
	panel.SetSecurityMode(device.ModeAway)
	for _, d := range []device.Device{hall, bedroom, panel} {
		if err := s.AddDevice(d); err != nil {
			t.Fatalf("AddDevice: %v", err)
		}
	}

	s.HandleMotionDetected("Hallway")

	if !hall.IsOn() {
		t.Error("motion should activate the light at its location")
	}
	if got := hall.Brightness(); got != 70 {
		t.Errorf("hall brightness = %d, want motion level 70", got)
	}
	if bedroom.IsOn() {
		t.Error("lights elsewhere must stay off")
	}
	// The observer is notified regardless of location: AWAY mode alarms.
	if !panel.AlarmActive() {
		t.Error("security unit in AWAY should alarm on any motion")
	}
}

func TestHandleMotionIgnoredWhileSystemOff(t *testing.T) {
	s := newTestSystem(t)
	login(t, s, "admin", "adminpass")

	hall := device.NewLight("lgt-1", "Hall Lamp", "Hallway", "admin")
	if err := s.AddDevice(hall); err != nil {
		t.Fatalf("AddDevice: %v", err)
	}

	s.HandleMotionDetected("Hallway")

	if hall.IsOn() {
		t.Error("motion must be ignored while the system is off")
	}
}

func TestScheduledTaskManagement(t *testing.T) {
	s := newTestSystem(t)
	login(t, s, "resident", "residentpass")

	task := schedule.NewTask("wake", "", schedule.ActionOn, nil, schedule.At(7, 0), schedule.Everyday())
	if err := s.AddScheduledTask("unknown", task); !errors.Is(err, device.ErrDeviceNotFound) {
		t.Errorf("err = %v for unknown device, want ErrDeviceNotFound", err)
	}

	s.Logout()
	login(t, s, "admin", "adminpass")
	l := device.NewLight("lgt-1", "Lamp", "Bedroom", "admin")
	if err := s.AddDevice(l); err != nil {
		t.Fatalf("AddDevice: %v", err)
	}

	if err := s.AddScheduledTask("lgt-1", task); err != nil {
		t.Fatalf("AddScheduledTask: %v", err)
	}
	if task.DeviceID != "lgt-1" {
		t.Errorf("task.DeviceID = %q, want lgt-1", task.DeviceID)
	}
	if got := len(l.Tasks()); got != 1 {
		t.Fatalf("device task count = %d, want 1", got)
	}

	if err := s.RemoveScheduledTask("lgt-1", "missing"); !errors.Is(err, device.ErrTaskNotFound) {
		t.Errorf("err = %v for unknown task, want ErrTaskNotFound", err)
	}
	if err := s.RemoveScheduledTask("lgt-1", task.ID); err != nil {
		t.Fatalf("RemoveScheduledTask: %v", err)
	}
	if got := len(l.Tasks()); got != 0 {
		t.Errorf("device task count = %d after removal, want 0", got)
	}
}
