// Package clock is the simulated time source shared by the live view and
// the server. It is safe for concurrent use.
package clock

import (
	"math"
	"sync"
	"time"
)

// Speeds are the selectable rates in simulated hours per step.
var Speeds = []float64{1, 6, 24, 72}

// DefaultSpeed is one simulated day per step.
const DefaultSpeed = 24.0

// State is a point-in-time copy of the clock.
type State struct {
	Time    time.Time `json:"time"`
	Playing bool      `json:"playing"`
	Speed   float64   `json:"speed"`
}

type Clock struct {
	mu      sync.RWMutex
	now     time.Time
	playing bool
	speed   float64
}

// New returns a paused clock at start running DefaultSpeed.
func New(start time.Time) *Clock {
	return &Clock{now: start.UTC(), speed: DefaultSpeed}
}

func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *Clock) Playing() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playing
}

func (c *Clock) Speed() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.speed
}

func (c *Clock) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State{Time: c.now, Playing: c.playing, Speed: c.speed}
}

// Step advances by one step of Speed hours if the clock is playing and
// returns the resulting time.
func (c *Clock) Step() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing {
		c.now = c.now.Add(hours(c.speed))
	}
	return c.now
}

// Skip moves the clock by whole or fractional days, playing or not.
func (c *Clock) Skip(days float64) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = addDays(c.now, days)
	return c.now
}

// addDays adds whole days by calendar and the fraction as a Duration.
func addDays(t time.Time, days float64) time.Time {
	whole, frac := math.Modf(days)
	return t.AddDate(0, 0, int(whole)).Add(hours(frac * 24))
}

// Set jumps to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t.UTC()
	c.mu.Unlock()
}

// Reset jumps to now, typically the wall clock.
func (c *Clock) Reset(now time.Time) { c.Set(now) }

func (c *Clock) SetPlaying(playing bool) {
	c.mu.Lock()
	c.playing = playing
	c.mu.Unlock()
}

// Toggle flips play/pause and returns the new state.
func (c *Clock) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = !c.playing
	return c.playing
}

// SetSpeed sets the rate in hours per step. Non-positive rates are
// ignored.
func (c *Clock) SetSpeed(hoursPerStep float64) {
	if !(hoursPerStep > 0) {
		return
	}
	c.mu.Lock()
	c.speed = hoursPerStep
	c.mu.Unlock()
}

// Faster moves to the next preset above the current speed, or stays on
// the fastest.
func (c *Clock) Faster() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range Speeds {
		if s > c.speed {
			c.speed = s
			return s
		}
	}
	return c.speed
}

// Slower moves to the next preset below the current speed, or stays on
// the slowest.
func (c *Clock) Slower() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(Speeds) - 1; i >= 0; i-- {
		if Speeds[i] < c.speed {
			c.speed = Speeds[i]
			return c.speed
		}
	}
	return c.speed
}

func hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
