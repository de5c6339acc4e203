// Package countdown drives a once-per-period callback that can be replaced.
//
// A Driver owns at most one live timer. Arm cancels the previous one before
// scheduling the next, and callbacks from a superseded arm are dropped even
// if their timer already fired, so a reset never leaves a stale tick behind.
package countdown

import (
	"sync"
	"time"
)

// DefaultPeriod is one game second.
const DefaultPeriod = time.Second

// Driver runs step once per period until step returns false or the driver
// is re-armed or stopped.
type Driver struct {
	clock  Clock
	period time.Duration

	mu    sync.Mutex
	gen   uint64
	timer Timer
}

// New returns a Driver. A nil clock means SystemClock; period <= 0 means
// DefaultPeriod.
func New(clock Clock, period time.Duration) *Driver {
	if clock == nil {
		clock = SystemClock{}
	}
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Driver{clock: clock, period: period}
}

// Arm cancels any live timer and starts calling step every period.
// step reports whether another firing should be scheduled.
func (d *Driver) Arm(step func() bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.scheduleLocked(d.gen, step)
}

// Stop cancels the live timer, if any.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Active reports whether a timer is scheduled.
func (d *Driver) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Driver) cancelLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Driver) scheduleLocked(gen uint64, step func() bool) {
	d.timer = d.clock.AfterFunc(d.period, func() { d.fire(gen, step) })
}

func (d *Driver) fire(gen uint64, step func() bool) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	// step runs without d.mu so it may call back into the owner, which in
	// turn may Arm or Stop this driver.
	more := step()

	d.mu.Lock()
	defer d.mu.Unlock()
	if more && gen == d.gen {
		d.scheduleLocked(gen, step)
	}
}
