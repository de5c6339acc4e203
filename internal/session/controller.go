// Package session owns one live game: its State, its countdown, and the
// observers that render it.
//
// Every operation runs to completion under the controller's lock, so
// observers never see a half-applied transition. The countdown is the only
// source of events that the player did not trigger.
package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/hiddenwords/internal/countdown"
	"github.com/robalobadob/hiddenwords/internal/game"
)

// Listener receives the view after each transition. It runs while the
// controller is locked and must not call back into the controller.
type Listener func(game.View)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger attaches a logger; the default discards output.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithPeriod sets the countdown period (default one second).
func WithPeriod(d time.Duration) Option {
	return func(c *Controller) { c.period = d }
}

// Controller is a single game session.
type Controller struct {
	rules  *game.Rules
	clock  countdown.Clock
	period time.Duration
	log    zerolog.Logger

	mu        sync.Mutex
	state     game.State
	epoch     uint64
	driver    *countdown.Driver
	listeners map[uint64]Listener
	nextID    uint64
	closed    bool
	done      chan struct{}
}

// New builds a controller and starts its first game.
func New(rules *game.Rules, clock countdown.Clock, opts ...Option) *Controller {
	c := &Controller{
		rules:     rules,
		clock:     clock,
		log:       zerolog.Nop(),
		listeners: make(map[uint64]Listener),
		done:      make(chan struct{}),
	}
	for _, o := range opts {
		o(c)
	}
	c.driver = countdown.New(c.clock, c.period)
	c.StartNewGame()
	return c
}

// StartNewGame replaces the session with a fresh one and restarts the countdown.
func (c *Controller) StartNewGame() game.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.rules.View(c.state)
	}

	c.epoch++
	c.state = c.rules.Start()
	epoch := c.epoch
	if c.state.Remaining > 0 {
		c.driver.Arm(func() bool { return c.tickEpoch(epoch) })
	} else {
		c.driver.Stop()
	}
	c.log.Debug().Uint64("epoch", epoch).Int("remaining", c.state.Remaining).Msg("new game")
	return c.commitLocked()
}

// SubmitGuess evaluates raw against the target words.
func (c *Controller) SubmitGuess(raw string) game.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	before := len(c.state.Found)
	c.state = c.rules.SubmitGuess(c.state, raw)
	if len(c.state.Found) > before {
		c.log.Debug().Int("found", len(c.state.Found)).Msg("word found")
	}
	return c.commitLocked()
}

// UpdateInput records the current input text.
func (c *Controller) UpdateInput(text string) game.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = game.UpdateInput(c.state, text)
	return c.commitLocked()
}

// Tick applies one countdown step to the current session. The countdown
// calls it through tickEpoch; it is exported for manual stepping.
func (c *Controller) Tick() game.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.rules.Tick(c.state)
	if c.state.Remaining == 0 {
		c.driver.Stop()
	}
	return c.commitLocked()
}

// View returns the current view without changing anything.
func (c *Controller) View() game.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rules.View(c.state)
}

// Subscribe registers fn and immediately sends it the current view.
// The returned func removes it.
func (c *Controller) Subscribe(fn Listener) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.listeners[id] = fn
	fn(c.rules.View(c.state))
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Close stops the countdown, drops all listeners and closes Done.
// StartNewGame is a no-op afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.driver.Stop()
	c.listeners = make(map[uint64]Listener)
	close(c.done)
}

// Done is closed once the controller is closed.
func (c *Controller) Done() <-chan struct{} { return c.done }

// tickEpoch ticks only if epoch is still the live session.
func (c *Controller) tickEpoch(epoch uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || epoch != c.epoch {
		return false
	}
	c.state = c.rules.Tick(c.state)
	c.commitLocked()
	if c.state.Remaining == 0 {
		c.log.Debug().Uint64("epoch", epoch).Msg("countdown finished")
		return false
	}
	return true
}

// commitLocked notifies listeners of the current view. Caller holds c.mu.
func (c *Controller) commitLocked() game.View {
	v := c.rules.View(c.state)
	for _, fn := range c.listeners {
		fn(v)
	}
	return v
}
