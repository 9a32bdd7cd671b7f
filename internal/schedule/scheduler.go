// Package schedule coalesces bursts of structural edits into a single
// debounced renumbering pass.
package schedule

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet interval before a renumber pass fires.
const DefaultDebounce = 500 * time.Millisecond

// Renumberer runs when the debounce window closes. It executes once per
// burst of notifications, on the timer's goroutine.
type Renumberer struct {
	debounce time.Duration
	run      func()

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	running bool
	stopped bool
}

// NewRenumberer creates a scheduler invoking run after each quiet
// interval. debounce <= 0 selects the default.
func NewRenumberer(debounce time.Duration, run func()) *Renumberer {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Renumberer{debounce: debounce, run: run}
}

// Notify records a structural change and (re)starts the debounce timer.
// Any number of notifications within the window coalesce into one pass.
func (r *Renumberer) Notify() {
	if r == nil {
		return
	}

	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.pending = true
	if r.timer == nil {
		r.timer = time.AfterFunc(r.debounce, r.onTimer)
		r.mu.Unlock()
		return
	}
	r.timer.Reset(r.debounce)
	r.mu.Unlock()
}

func (r *Renumberer) onTimer() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	if r.running {
		// A pass is in flight; come back for the pending changes.
		if r.timer != nil {
			r.timer.Reset(r.debounce)
		}
		r.mu.Unlock()
		return
	}
	if !r.pending {
		r.mu.Unlock()
		return
	}
	r.pending = false
	r.running = true
	r.mu.Unlock()

	r.run()

	r.mu.Lock()
	r.running = false
	rearm := r.pending && !r.stopped
	if rearm && r.timer != nil {
		r.timer.Reset(r.debounce)
	}
	r.mu.Unlock()
}

// Flush runs a pending pass immediately, without waiting for the timer.
// No-op when nothing is pending.
func (r *Renumberer) Flush() {
	r.mu.Lock()
	if r.stopped || !r.pending || r.running {
		r.mu.Unlock()
		return
	}
	r.pending = false
	r.running = true
	if r.timer != nil {
		r.timer.Stop()
	}
	r.mu.Unlock()

	r.run()

	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
}

// Stop cancels any armed timer and ignores further notifications
// (document unload).
func (r *Renumberer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	r.pending = false
	if r.timer != nil {
		r.timer.Stop()
	}
}
