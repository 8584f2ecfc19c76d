package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Action identifies what a scheduled task does to its device when it fires.
type Action string

// Action tags. ON and OFF apply to any power-controllable device; the SET_*
// actions require the matching control capability and at least one parameter.
const (
	ActionOn              Action = "ON"
	ActionOff             Action = "OFF"
	ActionSetBrightness   Action = "SET_BRIGHTNESS"
	ActionSetSpeed        Action = "SET_SPEED"
	ActionSetTemperature  Action = "SET_TEMPERATURE"
	ActionSetSecurityMode Action = "SET_SECURITY_MODE"
)

// TimeOfDay is a wall-clock trigger time with minute precision.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// At builds a TimeOfDay, clamping the hour to [0,23] and the minute to [0,59].
func At(hour, minute int) TimeOfDay {
	return TimeOfDay{Hour: clamp(hour, 0, 23), Minute: clamp(minute, 0, 59)}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Matches reports whether the instant falls on this exact hour and minute.
func (t TimeOfDay) Matches(now time.Time) bool {
	return t.Hour == now.Hour() && t.Minute == now.Minute()
}

// MinuteOfDay returns the time as minutes since midnight.
func (t TimeOfDay) MinuteOfDay() int {
	return t.Hour*60 + t.Minute
}

// String formats the time as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Weekdays is a 7-day trigger mask, Sunday = index 0 through Saturday = 6.
// This matches time.Weekday numbering directly.
type Weekdays [7]bool

// Everyday returns a mask with all seven days enabled.
func Everyday() Weekdays {
	return Weekdays{true, true, true, true, true, true, true}
}

// On returns a mask with only the given weekdays enabled.
func On(days ...time.Weekday) Weekdays {
	var mask Weekdays
	for _, d := range days {
		mask[int(d)%7] = true
	}
	return mask
}

// Contains reports whether the mask enables the given weekday.
func (w Weekdays) Contains(day time.Weekday) bool {
	return w[int(day)%7]
}

// String lists the enabled days, e.g. "Mon Wed Fri".
func (w Weekdays) String() string {
	names := [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	var parts []string
	for i, enabled := range w {
		if enabled {
			parts = append(parts, names[i])
		}
	}
	return strings.Join(parts, " ")
}

// Task is an immutable trigger descriptor owned by a device.
//
// The device reference is non-owning: the task's lifetime is bound to the
// device that holds it, and removal from the device destroys it. Enabled
// defaults to true at creation.
type Task struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	DeviceID string    `json:"device_id"`
	Action   Action    `json:"action"`
	Params   []string  `json:"params,omitempty"`
	At       TimeOfDay `json:"at"`
	Days     Weekdays  `json:"days"`
	Enabled  bool      `json:"enabled"`
}

// NewTask creates an enabled task with a generated ID.
func NewTask(name, deviceID string, action Action, params []string, at TimeOfDay, days Weekdays) *Task {
	return &Task{
		ID:       "tsk-" + uuid.NewString()[:8],
		Name:     name,
		DeviceID: deviceID,
		Action:   action,
		Params:   params,
		At:       at,
		Days:     days,
		Enabled:  true,
	}
}

// Clone returns an independent copy of the task.
func (t *Task) Clone() *Task {
	cpy := *t
	if t.Params != nil {
		cpy.Params = make([]string, len(t.Params))
		copy(cpy.Params, t.Params)
	}
	return &cpy
}

// Matches reports whether the task should fire at the given instant:
// enabled, weekday bit set, and exact hour/minute equality.
func (t *Task) Matches(now time.Time) bool {
	return t.Enabled && t.Days.Contains(now.Weekday()) && t.At.Matches(now)
}

// String summarises the task for audit logging.
func (t *Task) String() string {
	return fmt.Sprintf("%s - %s at %s on %s", t.Name, t.Action, t.At, t.Days)
}
