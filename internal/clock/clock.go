package clock

import "time"

// Clock is the timestamp source every timer measures against.
// Production code uses NewRealClock; tests use FakeClock.
type Clock interface {
	// Now returns the current time
	Now() time.Time
	// Since returns the duration since t
	Since(t time.Time) time.Duration
	// NewTicker creates a Ticker that sends the current time on its channel every d
	NewTicker(d time.Duration) Ticker
}

// Ticker represents a repeating sampler trigger
type Ticker interface {
	// C returns the ticker's time channel
	C() <-chan time.Time
	// Stop turns off the ticker
	Stop()
}

type realClock struct{}

// NewRealClock creates a Clock backed by the standard time package.
// Times it returns carry a monotonic reading, so deltas between them are
// not affected by wall-clock adjustments.
func NewRealClock() Clock {
	return &realClock{}
}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func (c *realClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

func (c *realClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{ticker: time.NewTicker(d)}
}

type realTicker struct {
	ticker *time.Ticker
}

func (t *realTicker) C() <-chan time.Time {
	return t.ticker.C
}

func (t *realTicker) Stop() {
	t.ticker.Stop()
}
