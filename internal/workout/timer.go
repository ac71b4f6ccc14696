package workout

import (
	"fmt"
	"sync"
)

// Presets offered for the rest timer, in seconds. Selecting one sets
// the count to that value directly and stops the timer.
var Presets = []int{30, 60, 90, 300}

// Timer is the free-running count-up rest/cardio timer. It advances in
// whole seconds through Tick, driven by a one-second ticker while the
// session view is active.
type Timer struct {
	mu      sync.Mutex
	seconds int
	running bool
}

// Start sets the running flag.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = true
}

// Pause clears the running flag without touching the count.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
}

// Toggle flips the running flag and reports the new state.
func (t *Timer) Toggle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = !t.running
	return t.running
}

// Reset stops the timer and zeroes the count.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
	t.seconds = 0
}

// SetPreset stops the timer and sets the count to the preset value.
// This is an absolute set, not an offset.
func (t *Timer) SetPreset(seconds int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
	t.seconds = seconds
}

// Tick advances the count by one second while running.
func (t *Timer) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		t.seconds++
	}
}

// Seconds returns the current count.
func (t *Timer) Seconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seconds
}

// Running reports whether the timer is counting.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// FormatSeconds renders a count as mm:ss.
func FormatSeconds(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
