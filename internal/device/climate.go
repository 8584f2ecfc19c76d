package device

import (
	"time"

	"github.com/ashford-labs/homestead-core/internal/schedule"
)

// Climate setpoint bounds and default.
const (
	climateTempMin     = 16
	climateTempMax     = 30
	climateDefaultTemp = 24
)

// Mode is the operating mode of a climate unit.
type Mode string

// Operating modes.
const (
	ModeCool Mode = "COOL"
	ModeHeat Mode = "HEAT"
	ModeFan  Mode = "FAN"
	ModeDry  Mode = "DRY"
	ModeAuto Mode = "AUTO"
)

var climateModes = []string{
	string(ModeCool), string(ModeHeat), string(ModeFan), string(ModeDry), string(ModeAuto),
}

// Energy-saving floor and ceiling: cooling no lower than 24, heating no
// higher than 20.
const (
	energySavingCoolMin = 24
	energySavingHeatMax = 20
)

// Quiet-hours setpoint limits: cooling no lower than 24, heating no higher
// than 22.
const (
	quietCoolMin = 24
	quietHeatMax = 22
)

// autoBand is one segment of the daily auto-adjust profile.
type autoBand struct {
	// after and before bound the band with strict inequalities on the
	// minute of day; boundary minutes fall through to the night band.
	after, before int
	cool, heat    int
}

// autoBands is the daily profile: early morning, daytime, evening. Any
// minute outside these bands (night) uses autoNight.
var autoBands = []autoBand{
	{after: 5 * 60, before: 8 * 60, cool: 23, heat: 22},
	{after: 8 * 60, before: 17 * 60, cool: 25, heat: 20},
	{after: 17 * 60, before: 22 * 60, cool: 24, heat: 22},
}

var autoNight = autoBand{cool: 26, heat: 19}

// Climate is a heating/cooling unit with a bounded setpoint, an operating
// mode, and three optional setpoint policies: energy saving, time-of-day
// auto-adjustment, and quiet hours.
//
// Policies only ever move the setpoint while the unit is powered on, and
// only in the conserving direction (cooling up, heating down for energy
// saving; both toward comfort limits for quiet hours).
type Climate struct {
	base

	temperature int
	mode        Mode

	energySaving bool
	autoAdjust   bool

	quietStart schedule.TimeOfDay
	quietEnd   schedule.TimeOfDay
}

// NewClimate creates a climate unit at the default setpoint in cooling mode,
// with quiet hours preset to 22:00–07:00 (policies disabled). The
// orchestrator normally goes through Factory.Climate instead.
func NewClimate(id, name, location, createdBy string) *Climate {
	return &Climate{
		base:        newBase(id, name, location, createdBy, KindClimate),
		temperature: climateDefaultTemp,
		mode:        ModeCool,
		quietStart:  schedule.At(22, 0),
		quietEnd:    schedule.At(7, 0),
	}
}

// SetTemperature sets the target temperature in whole degrees Celsius,
// clamped to [16, 30].
func (c *Climate) SetTemperature(celsius int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.temperature = Clamp.Int(celsius, climateTempMin, climateTempMax)
	c.logger.Info("temperature set", "id", c.id, "celsius", c.temperature)
}

// Temperature returns the target temperature in degrees Celsius.
func (c *Climate) Temperature() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.temperature
}

// SetMode sets the operating mode. Unknown modes fall back to COOL.
func (c *Climate) SetMode(mode Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = Mode(Clamp.Pick(string(mode), climateModes, string(ModeCool)))
	c.logger.Info("mode set", "id", c.id, "mode", c.mode)
}

// ModeValue returns the operating mode.
func (c *Climate) ModeValue() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetEnergySaving toggles the energy-saving policy. Enabling it on a powered
// unit immediately nudges the setpoint into the saving range: cooling below
// 24 rises to 24, heating above 20 drops to 20.
func (c *Climate) SetEnergySaving(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.energySaving = enabled
	if enabled && c.on {
		c.applyEnergySavingLocked()
	}
	c.logger.Info("energy saving set", "id", c.id, "enabled", enabled)
}

// EnergySaving reports whether the energy-saving policy is active.
func (c *Climate) EnergySaving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.energySaving
}

func (c *Climate) applyEnergySavingLocked() {
	switch c.mode {
	case ModeCool:
		if c.temperature < energySavingCoolMin {
			c.temperature = energySavingCoolMin
		}
	case ModeHeat:
		if c.temperature > energySavingHeatMax {
			c.temperature = energySavingHeatMax
		}
	}
}

// SetAutoAdjust toggles the time-of-day policy. Enabling it on a powered
// unit applies the current band's setpoint immediately.
func (c *Climate) SetAutoAdjust(enabled bool, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoAdjust = enabled
	if enabled && c.on {
		c.adjustAutoLocked(now)
	}
	c.logger.Info("auto adjust set", "id", c.id, "enabled", enabled)
}

// AutoAdjust reports whether the time-of-day policy is active.
func (c *Climate) AutoAdjust() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoAdjust
}

// AdjustTemperatureAuto applies the time-of-day setpoint for now. It is a
// no-op when the policy is disabled or the unit is off.
func (c *Climate) AdjustTemperatureAuto(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.autoAdjust || !c.on {
		return
	}
	c.adjustAutoLocked(now)
}

func (c *Climate) adjustAutoLocked(now time.Time) {
	minute := now.Hour()*60 + now.Minute()
	band := autoNight
	for _, b := range autoBands {
		if minute > b.after && minute < b.before {
			band = b
			break
		}
	}
	switch c.mode {
	case ModeCool:
		c.temperature = band.cool
	case ModeHeat:
		c.temperature = band.heat
	default:
		return
	}
	c.logger.Info("auto adjusted", "id", c.id, "celsius", c.temperature)
}

// SetQuietHours sets the quiet-hours window. A start later than the end
// means the window wraps past midnight.
func (c *Climate) SetQuietHours(start, end schedule.TimeOfDay) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quietStart = start
	c.quietEnd = end
}

// QuietHours returns the quiet-hours window.
func (c *Climate) QuietHours() (start, end schedule.TimeOfDay) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quietStart, c.quietEnd
}

// InQuietHours reports whether now falls within the quiet-hours window,
// inclusive of the start minute and exclusive of the end minute.
func (c *Climate) InQuietHours(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inQuietHoursLocked(now)
}

func (c *Climate) inQuietHoursLocked(now time.Time) bool {
	minute := now.Hour()*60 + now.Minute()
	start := c.quietStart.MinuteOfDay()
	end := c.quietEnd.MinuteOfDay()
	if start <= end {
		return minute >= start && minute < end
	}
	// Window wraps past midnight.
	return minute >= start || minute < end
}

// AdjustForQuietHours moderates the setpoint while now is inside the
// quiet-hours window: cooling below 24 rises to 24, heating above 22 drops
// to 22. It is a no-op outside the window or while the unit is off.
func (c *Climate) AdjustForQuietHours(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.on || !c.inQuietHoursLocked(now) {
		return
	}
	switch c.mode {
	case ModeCool:
		if c.temperature < quietCoolMin {
			c.temperature = quietCoolMin
			c.logger.Info("quiet hours adjusted", "id", c.id, "celsius", c.temperature)
		}
	case ModeHeat:
		if c.temperature > quietHeatMax {
			c.temperature = quietHeatMax
			c.logger.Info("quiet hours adjusted", "id", c.id, "celsius", c.temperature)
		}
	}
}

// SetToDefaults restores the default setpoint and mode. Power state and the
// policy flags are untouched.
func (c *Climate) SetToDefaults() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.temperature = climateDefaultTemp
	c.mode = ModeCool
	c.logger.Info("reset to defaults", "id", c.id)
}

// Clone returns an independent snapshot copy of the climate unit.
func (c *Climate) Clone() Device {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &Climate{
		base:         c.cloneBase(),
		temperature:  c.temperature,
		mode:         c.mode,
		energySaving: c.energySaving,
		autoAdjust:   c.autoAdjust,
		quietStart:   c.quietStart,
		quietEnd:     c.quietEnd,
	}
}
