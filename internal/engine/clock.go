package engine

import (
	"sync"
	"time"
)

// Timer is a cancellable handle to a recurring callback.
type Timer interface {
	Stop()
}

// Clock provides the current time and recurring callbacks.
type Clock interface {
	Now() time.Time
	Every(interval time.Duration, fn func()) Timer
}

// RealClock returns a Clock backed by time.Ticker.
func RealClock() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Every(interval time.Duration, fn func()) Timer {
	t := &tickerTimer{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go t.run(fn)
	return t
}

type tickerTimer struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerTimer) run(fn func()) {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			select {
			case <-t.done:
				return
			default:
			}
			fn()
		}
	}
}

// Stop does not wait for a callback that is already running.
func (t *tickerTimer) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}

// ManualClock is a Clock whose callbacks only run when Fire is called.
type ManualClock struct {
	mu       sync.Mutex
	now      time.Time
	interval time.Duration
	timers   []*manualTimer
}

// NewManualClock returns a ManualClock starting at now.
func NewManualClock(now time.Time) *ManualClock {
	return &ManualClock{now: now}
}

// Now implements Clock.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Every implements Clock.
func (c *ManualClock) Every(interval time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{fn: fn}
	c.interval = interval
	c.timers = append(c.timers, t)
	return t
}

// Fire advances the clock by one interval and runs every armed callback
// once. It returns the number of callbacks run.
func (c *ManualClock) Fire() int {
	c.mu.Lock()
	c.now = c.now.Add(c.interval)
	armed := make([]*manualTimer, 0, len(c.timers))
	kept := c.timers[:0]
	for _, t := range c.timers {
		if t.stopped() {
			continue
		}
		kept = append(kept, t)
		armed = append(armed, t)
	}
	c.timers = kept
	c.mu.Unlock()

	for _, t := range armed {
		t.fn()
	}
	return len(armed)
}

// Armed reports how many callbacks are still registered.
func (c *ManualClock) Armed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped() {
			n++
		}
	}
	return n
}

type manualTimer struct {
	mu   sync.Mutex
	fn   func()
	stop bool
}

func (t *manualTimer) Stop() {
	t.mu.Lock()
	t.stop = true
	t.mu.Unlock()
}

func (t *manualTimer) stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop
}
