package device

// Light defaults and bounds.
const (
	lightBrightnessMin     = 0
	lightBrightnessMax     = 100
	lightDefaultBrightness = 50

	// lightDefaultMotionBrightness is the level applied when motion
	// switches a light on.
	lightDefaultMotionBrightness = 70
)

// Colors a light can display.
const (
	ColorWhite     = "White"
	ColorWarmWhite = "Warm White"
	ColorBlue      = "Blue"
	ColorRed       = "Red"
)

// lightColors lists every valid color value.
var lightColors = []string{ColorWhite, ColorWarmWhite, ColorBlue, ColorRed}

// Light is a dimmable, color-selectable luminaire. New lights are
// motion-activated by default: when motion reaches them they switch on and
// jump to a raised brightness.
type Light struct {
	base

	brightness       int
	color            string
	motionActivated  bool
	motionBrightness int
}

// NewLight creates a light with default brightness, color and motion
// behaviour. The orchestrator normally goes through Factory.Light instead.
func NewLight(id, name, location, createdBy string) *Light {
	return &Light{
		base:             newBase(id, name, location, createdBy, KindLight),
		brightness:       lightDefaultBrightness,
		color:            ColorWhite,
		motionActivated:  true,
		motionBrightness: lightDefaultMotionBrightness,
	}
}

// SetBrightness sets the light level, clamped to [0, 100].
func (l *Light) SetBrightness(level int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.brightness = Clamp.Int(level, lightBrightnessMin, lightBrightnessMax)
	l.logger.Info("brightness set", "id", l.id, "level", l.brightness)
}

// Brightness returns the current light level.
func (l *Light) Brightness() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.brightness
}

// SetColor sets the display color. Unknown colors fall back to White.
func (l *Light) SetColor(color string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = Clamp.Pick(color, lightColors, ColorWhite)
	l.logger.Info("color set", "id", l.id, "color", l.color)
}

// Color returns the current display color.
func (l *Light) Color() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

// SetMotionActivated toggles whether motion events switch this light on.
func (l *Light) SetMotionActivated(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.motionActivated = enabled
}

// MotionActivated reports whether motion events switch this light on.
func (l *Light) MotionActivated() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.motionActivated
}

// SetMotionBrightness sets the level applied on motion, clamped to [0, 100].
func (l *Light) SetMotionBrightness(level int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.motionBrightness = Clamp.Int(level, lightBrightnessMin, lightBrightnessMax)
}

// MotionBrightness returns the level applied on motion.
func (l *Light) MotionBrightness() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.motionBrightness
}

// ActivateByMotion switches the light on and raises its brightness to the
// motion level. It is a no-op when motion activation is disabled.
func (l *Light) ActivateByMotion() {
	l.mu.Lock()
	if !l.motionActivated {
		l.mu.Unlock()
		return
	}
	target := l.motionBrightness
	l.mu.Unlock()

	l.TurnOn()
	l.SetBrightness(target)
}

// SetToDefaults restores default brightness and color. Power state and the
// motion-activation flag are untouched.
func (l *Light) SetToDefaults() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.brightness = lightDefaultBrightness
	l.color = ColorWhite
	l.logger.Info("reset to defaults", "id", l.id)
}

// Clone returns an independent snapshot copy of the light.
func (l *Light) Clone() Device {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Light{
		base:             l.cloneBase(),
		brightness:       l.brightness,
		color:            l.color,
		motionActivated:  l.motionActivated,
		motionBrightness: l.motionBrightness,
	}
}
