package system

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ashford-labs/homestead-core/internal/device"
	"github.com/ashford-labs/homestead-core/internal/schedule"
)

// Tick evaluates every device's scheduled tasks against now and executes
// the matches. The caller supplies the instant, so the engine itself never
// reads the clock and tests can drive it deterministically.
//
// A tick arriving while the previous one is still running is rejected with
// a log line, not queued. While the system is off, ticks are no-ops.
func (s *System) Tick(now time.Time) {
	if !s.tickMu.TryLock() {
		s.logger.Warn("tick overlapped previous tick; skipping", "at", now)
		return
	}
	defer s.tickMu.Unlock()

	s.mu.Lock()
	on := s.on
	devices := s.snapshotLocked()
	s.mu.Unlock()

	if !on {
		return
	}

	for _, d := range devices {
		for _, task := range d.Tasks() {
			if !task.Matches(now) {
				continue
			}
			s.executeTask(d, task)
		}
	}
}

// executeTask dispatches one matched task through the device's capability
// interfaces. A task whose action the device cannot perform, or whose
// parameters do not parse, is logged and skipped; execution never fails
// the tick.
func (s *System) executeTask(d device.Device, task *schedule.Task) {
	switch task.Action {
	case schedule.ActionOn:
		sw, ok := d.(device.Switchable)
		if !ok {
			s.skipTask(d, task, "device is not switchable")
			return
		}
		sw.TurnOn()

	case schedule.ActionOff:
		sw, ok := d.(device.Switchable)
		if !ok {
			s.skipTask(d, task, "device is not switchable")
			return
		}
		sw.TurnOff()

	case schedule.ActionSetBrightness:
		bc, ok := d.(device.BrightnessControl)
		if !ok {
			s.skipTask(d, task, "device has no brightness control")
			return
		}
		level, err := taskIntParam(task)
		if err != nil {
			s.skipTask(d, task, err.Error())
			return
		}
		bc.SetBrightness(level)

	case schedule.ActionSetSpeed:
		sc, ok := d.(device.SpeedControl)
		if !ok {
			s.skipTask(d, task, "device has no speed control")
			return
		}
		speed, err := taskIntParam(task)
		if err != nil {
			s.skipTask(d, task, err.Error())
			return
		}
		sc.SetSpeed(speed)

	case schedule.ActionSetTemperature:
		tc, ok := d.(device.TemperatureControl)
		if !ok {
			s.skipTask(d, task, "device has no temperature control")
			return
		}
		celsius, err := taskIntParam(task)
		if err != nil {
			s.skipTask(d, task, err.Error())
			return
		}
		tc.SetTemperature(celsius)

	case schedule.ActionSetSecurityMode:
		mc, ok := d.(device.SecurityModeControl)
		if !ok {
			s.skipTask(d, task, "device has no security mode control")
			return
		}
		if len(task.Params) == 0 {
			s.skipTask(d, task, "missing mode parameter")
			return
		}
		mc.SetSecurityMode(device.SecurityMode(task.Params[0]))

	default:
		s.skipTask(d, task, "unknown action")
		return
	}

	s.record(fmt.Sprintf("Executed scheduled task on %s: %s", d.ID(), task))
	s.logger.Info("scheduled task executed",
		"device", d.ID(), "task", task.ID, "action", task.Action)
}

// skipTask records a skipped task execution. Skips are visible in the
// activity log but never abort the tick.
func (s *System) skipTask(d device.Device, task *schedule.Task, reason string) {
	s.record(fmt.Sprintf("Skipped scheduled task on %s: %s (%s)", d.ID(), task, reason))
	s.logger.Warn("scheduled task skipped",
		"device", d.ID(), "task", task.ID, "action", task.Action, "reason", reason)
}

// taskIntParam parses the single integer parameter the SET_* numeric
// actions carry.
func taskIntParam(task *schedule.Task) (int, error) {
	if len(task.Params) == 0 {
		return 0, fmt.Errorf("missing parameter")
	}
	v, err := strconv.Atoi(task.Params[0])
	if err != nil {
		return 0, fmt.Errorf("invalid parameter %q", task.Params[0])
	}
	return v, nil
}
