// Package clock owns the authoritative game timestamp. One real second equals
// one game minute at 1x speed; the scheduler that drives Advance lives in the
// engine package.
package clock

import (
	"fmt"
	"log"
	"sync"
)

const (
	secondsPerMinute = 60
	minutesPerHour   = 60
	hoursPerDay      = 24
	secondsPerDay    = secondsPerMinute * minutesPerHour * hoursPerDay

	// WakeHour is when sleep fast-forward ends.
	WakeHour = 7

	// SleepSpeedScale is reserved for sleep fast-forward and is not settable
	// through SetSpeed.
	SleepSpeedScale = 100
)

// GameTime is a point on the game calendar. Second carries fractional
// precision; display formatting truncates it.
type GameTime struct {
	Day    int
	Hour   int
	Minute int
	Second float64
}

func (t GameTime) String() string {
	return fmt.Sprintf("Day %d, %02d:%02d:%02.0f", t.Day, t.Hour, t.Minute, t.Second)
}

// absSeconds is the elapsed game seconds since day 1, 00:00:00.
func (t GameTime) absSeconds() float64 {
	return float64(t.Day-1)*secondsPerDay +
		float64(t.Hour)*minutesPerHour*secondsPerMinute +
		float64(t.Minute)*secondsPerMinute +
		t.Second
}

func timeFromAbs(abs float64) GameTime {
	day := int(abs / secondsPerDay)
	rem := abs - float64(day)*secondsPerDay
	hour := int(rem / (minutesPerHour * secondsPerMinute))
	rem -= float64(hour) * minutesPerHour * secondsPerMinute
	minute := int(rem / secondsPerMinute)
	rem -= float64(minute) * secondsPerMinute
	return GameTime{Day: day + 1, Hour: hour, Minute: minute, Second: rem}
}

// Clock holds the game time plus the pause/speed/sleep axes. All methods are
// safe for concurrent use; readers get value snapshots.
type Clock struct {
	mu sync.Mutex

	t        GameTime
	speed    int
	paused   bool
	sleeping bool

	onTick func(GameTime)
	logger *log.Logger
}

// New returns a clock reset to day 1, 07:00:00, 1x, unpaused, awake. onTick
// fires synchronously after every successful Advance and must not block.
func New(onTick func(GameTime), logger *log.Logger) *Clock {
	return &Clock{
		t:      GameTime{Day: 1, Hour: WakeHour},
		speed:  1,
		onTick: onTick,
		logger: logger,
	}
}

// Advance adds gameSeconds to the clock, cascading through minutes, hours and
// days. While paused (and not sleeping) it is a no-op and the tick callback
// does not fire. Crossing or landing exactly on 07:00:00 while sleeping wakes
// the clock and restores 1x speed.
func (c *Clock) Advance(gameSeconds float64) bool {
	if gameSeconds < 0 {
		return false
	}

	c.mu.Lock()
	if c.paused && !c.sleeping {
		c.mu.Unlock()
		return false
	}

	start := c.t.absSeconds()
	end := start + gameSeconds
	c.t = timeFromAbs(end)

	if c.sleeping && end >= nextWakeAbs(start) {
		c.sleeping = false
		c.speed = 1
	}

	snap := c.t
	cb := c.onTick
	c.mu.Unlock()

	if cb != nil {
		cb(snap)
	}
	return true
}

// nextWakeAbs is the first 07:00:00 strictly after the given absolute time.
func nextWakeAbs(abs float64) float64 {
	wakeOffset := float64(WakeHour * minutesPerHour * secondsPerMinute)
	day := int((abs - wakeOffset) / secondsPerDay)
	next := float64(day)*secondsPerDay + wakeOffset
	for next <= abs {
		next += secondsPerDay
	}
	return next
}

// SetSpeed accepts exactly 1, 2 or 4. Anything else (including the reserved
// sleep scale) is rejected with a log line, not an error.
func (c *Clock) SetSpeed(scale int) {
	if scale != 1 && scale != 2 && scale != 4 {
		if c.logger != nil {
			c.logger.Printf("clock: rejected speed scale %d", scale)
		}
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sleeping {
		// Sleep owns the speed until wake.
		return
	}
	c.speed = scale
}

// StartSleep forces 100x fast-forward until the next 07:00:00. Idempotent.
// Sleep clears pause: it advances time unconditionally.
func (c *Clock) StartSleep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sleeping {
		return
	}
	c.sleeping = true
	c.paused = false
	c.speed = SleepSpeedScale
}

// StopSleep wakes the clock early and restores 1x speed.
func (c *Clock) StopSleep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.sleeping {
		return
	}
	c.sleeping = false
	c.speed = 1
}

func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sleeping {
		return
	}
	c.paused = true
}

func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
}

func (c *Clock) Now() GameTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *Clock) Speed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

func (c *Clock) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

func (c *Clock) Sleeping() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sleeping
}
