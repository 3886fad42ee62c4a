package clock

import (
	"sync"
	"time"
)

// FakeClock is a Clock for tests. Time only moves when Advance or Set is called,
// and tickers fire at the exact instants they are due.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

// NewFakeClock creates a FakeClock starting at the given time
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Since(t time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Sub(t)
}

func (c *FakeClock) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive ticker interval")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	ticker := &fakeTicker{
		interval: d,
		nextTick: c.now.Add(d),
		ch:       make(chan time.Time, 1024),
	}
	c.tickers = append(c.tickers, ticker)
	return ticker
}

// Advance moves the clock forward by d, delivering every tick that falls due
// on the way with the tick's own timestamp.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	target := c.now.Add(d)
	for {
		next := target
		for _, ticker := range c.tickers {
			ticker.mu.Lock()
			if !ticker.stopped && ticker.nextTick.Before(next) {
				next = ticker.nextTick
			}
			ticker.mu.Unlock()
		}

		c.now = next

		for _, ticker := range c.tickers {
			ticker.mu.Lock()
			for !ticker.stopped && !ticker.nextTick.After(c.now) {
				select {
				case ticker.ch <- ticker.nextTick:
				default:
				}
				ticker.nextTick = ticker.nextTick.Add(ticker.interval)
			}
			ticker.mu.Unlock()
		}

		if next.Equal(target) {
			break
		}
	}
	c.pruneLocked()
}

// Set jumps the clock to t without firing tickers. Moving backwards is allowed
// so tests can simulate a clock anomaly.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// ActiveTickers returns the number of tickers that have not been stopped
func (c *FakeClock) ActiveTickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked()
	return len(c.tickers)
}

// pruneLocked drops stopped tickers. Must be called with mu held.
func (c *FakeClock) pruneLocked() {
	kept := c.tickers[:0]
	for _, ticker := range c.tickers {
		ticker.mu.Lock()
		stopped := ticker.stopped
		ticker.mu.Unlock()
		if !stopped {
			kept = append(kept, ticker)
		}
	}
	for i := len(kept); i < len(c.tickers); i++ {
		c.tickers[i] = nil
	}
	c.tickers = kept
}

type fakeTicker struct {
	mu       sync.Mutex
	interval time.Duration
	nextTick time.Time
	ch       chan time.Time
	stopped  bool
}

func (t *fakeTicker) C() <-chan time.Time {
	return t.ch
}

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}
