package timer

import "time"

// Countdown counts a single duration down to zero. It backs AMRAP and For-Time blocks.
type Countdown struct {
	*runner
	cfg CountdownConfig
}

var (
	_ Timer        = (*Countdown)(nil)
	_ RoundCounter = (*Countdown)(nil)
)

// NewCountdown validates cfg and returns a countdown that has not started
func NewCountdown(cfg CountdownConfig, opts Options) (*Countdown, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Countdown{cfg: cfg}
	c.runner = newRunner(KindCountdown, opts)
	c.attach(c)
	return c, nil
}

// IncrementRound adds one to the athlete's own round count
func (c *Countdown) IncrementRound() {
	c.incrementRound()
}

func (c *Countdown) begin(now time.Time) {
	c.phase = newPhase(now, c.cfg.Duration)
}

func (c *Countdown) advance(now time.Time) bool {
	return c.phase.due(now)
}

func (c *Countdown) fill(now time.Time, s *State) {
	if !s.Started {
		s.Time = c.cfg.Duration
		return
	}
	s.Time = c.phase.remaining(now)
}

func (c *Countdown) total() time.Duration {
	return c.cfg.Duration
}

func (c *Countdown) clear() {}

func (c *Countdown) describe(in *InternalState) {
	if !in.Started {
		in.PhaseDuration = c.cfg.Duration
	}
}
