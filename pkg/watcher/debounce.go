package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is how long the debouncer waits after the last
// trigger before firing. Editors and atomic-rename writers produce bursts of
// events for a single logical save.
const DefaultDebounceDuration = 250 * time.Millisecond

// Debouncer collapses bursts of triggers into a single callback invocation.
// Each Trigger resets the timer; the callback runs once the triggers stop for
// the configured duration.
type Debouncer struct {
	duration time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet period. A
// non-positive duration fires callbacks immediately.
func NewDebouncer(d time.Duration) *Debouncer {
	return &Debouncer{duration: d}
}

// Trigger schedules fn to run after the quiet period. If a previous trigger
// is still pending, its timer is reset and only the latest fn runs.
func (d *Debouncer) Trigger(fn func()) {
	if d.duration <= 0 {
		fn()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, fn)
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
