// Package notify holds the transient user-visible notice: one message at
// a time, auto-dismissed after a fixed display period. The front end
// polls GET /notice and renders whatever is current.
package notify

import (
	"sync"
	"time"
)

// DismissAfter is how long a notice stays visible.
const DismissAfter = 3 * time.Second

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notice struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// Center keeps the current notice. A new push replaces the old one and
// restarts the dismiss timer, mirroring a toast that gets overwritten.
type Center struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *Notice
	timer   *time.Timer
}

func NewCenter() *Center { return &Center{ttl: DismissAfter} }

// NewCenterTTL exists for tests that cannot wait three seconds.
func NewCenterTTL(ttl time.Duration) *Center { return &Center{ttl: ttl} }

// Push shows a notice and arms its auto-dismiss.
func (c *Center) Push(kind Kind, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = &Notice{Message: message, Kind: kind}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.ttl, c.dismiss)
}

func (c *Center) dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}

// Current returns the visible notice, or nil once dismissed.
func (c *Center) Current() *Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}
