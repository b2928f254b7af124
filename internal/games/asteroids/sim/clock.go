package sim

import (
	"cmp"
	"slices"
	"time"
)

// MaxElapsed caps a single tick's elapsed time so a stalled host (suspended
// terminal, slow SSH link) does not teleport time-based entities.
const MaxElapsed = 250 * time.Millisecond

// event is a deferred action. It runs on the first tick at or after dueAt,
// and only if stillValid still holds at that moment.
type event struct {
	name       string
	dueAt      time.Duration
	action     func()
	stillValid func() bool
}

// Clock accumulates simulation time and owns the deferred-event queue.
// Time only moves when Advance is called, so tests drive it directly.
type Clock struct {
	now   time.Duration
	ticks uint64
	queue []event
}

// Advance adds one tick's elapsed time and returns the amount applied.
// Negative values count as zero.
func (c *Clock) Advance(elapsed time.Duration) time.Duration {
	elapsed = min(max(elapsed, 0), MaxElapsed)
	c.now += elapsed
	c.ticks++
	return elapsed
}

// Now returns accumulated simulation time.
func (c *Clock) Now() time.Duration { return c.now }

// Ticks returns the number of Advance calls.
func (c *Clock) Ticks() uint64 { return c.ticks }

// Schedule queues action to run delay from now. A nil stillValid always holds.
func (c *Clock) Schedule(name string, delay time.Duration, action func(), stillValid func() bool) {
	c.queue = append(c.queue, event{
		name:       name,
		dueAt:      c.now + max(delay, 0),
		action:     action,
		stillValid: stillValid,
	})
}

// Pending reports whether an event with the given name is queued.
func (c *Clock) Pending(name string) bool {
	return slices.ContainsFunc(c.queue, func(e event) bool { return e.name == name })
}

// RunDue pops every event that has come due, in due order, and runs the ones
// that are still valid. Events queued by an action wait for a later call.
// It returns the number of actions run.
func (c *Clock) RunDue() int {
	var due []event
	kept := c.queue[:0]
	for _, e := range c.queue {
		if e.dueAt <= c.now {
			due = append(due, e)
		} else {
			kept = append(kept, e)
		}
	}
	clear(c.queue[len(kept):])
	c.queue = kept

	slices.SortStableFunc(due, func(a, b event) int {
		return cmp.Compare(a.dueAt, b.dueAt)
	})

	ran := 0
	for _, e := range due {
		if e.stillValid != nil && !e.stillValid() {
			continue
		}
		e.action()
		ran++
	}
	return ran
}

// Cancel drops every queued event.
func (c *Clock) Cancel() {
	clear(c.queue)
	c.queue = c.queue[:0]
}
