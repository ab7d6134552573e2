package draft

import (
	"sync"
	"time"
)

// DebounceWindow is the idle period after the last mutation before the
// draft is written.
const DebounceWindow = time.Second

// Autosaver owns the single pending save timer. Every mutation calls Arm,
// which cancels any scheduled write and starts a fresh countdown, so at
// most one write happens per quiet window and only the newest state is
// persisted. A failed write is reported through onError and nothing else:
// the in-memory document stays authoritative until the next save lands.
type Autosaver struct {
	mu      sync.Mutex
	timer   *time.Timer
	delay   time.Duration
	flush   func() error
	onError func(error)
}

// NewAutosaver wires a flush callback (which snapshots and persists the
// current state) and an error sink. onError may be nil.
func NewAutosaver(delay time.Duration, flush func() error, onError func(error)) *Autosaver {
	if onError == nil {
		onError = func(error) {}
	}
	return &Autosaver{delay: delay, flush: flush, onError: onError}
}

// Arm resets and starts the countdown. Safe to call from any goroutine.
func (a *Autosaver) Arm() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.fire)
}

func (a *Autosaver) fire() {
	if err := a.flush(); err != nil {
		a.onError(err)
	}
}

// Flush cancels any pending countdown and writes immediately. Used on
// shutdown so the last edits are not lost to the debounce window.
func (a *Autosaver) Flush() error {
	a.Stop()
	return a.flush()
}

// Stop cancels any pending write without flushing.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
