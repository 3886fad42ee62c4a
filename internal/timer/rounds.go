package timer

import "time"

// Rounds is an EMOM timer: one continuous countdown of Rounds x RoundDuration.
// The current round is derived from elapsed time and never stored.
type Rounds struct {
	*runner
	cfg RoundsConfig
}

var _ Timer = (*Rounds)(nil)

// NewRounds validates cfg and returns an EMOM timer that has not started
func NewRounds(cfg RoundsConfig, opts Options) (*Rounds, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Rounds{cfg: cfg}
	t.runner = newRunner(KindRounds, opts)
	t.attach(t)
	return t, nil
}

func (t *Rounds) begin(now time.Time) {
	t.phase = newPhase(now, t.cfg.Total())
}

func (t *Rounds) advance(now time.Time) bool {
	return t.phase.due(now)
}

func (t *Rounds) fill(now time.Time, s *State) {
	s.Rounds = t.cfg.Rounds
	if !s.Started {
		s.Time = t.cfg.Total()
		s.Round = 1
		s.RoundTime = t.cfg.RoundDuration
		return
	}
	s.Time = t.phase.remaining(now)
	s.Round = roundAt(s.Elapsed, t.cfg.RoundDuration, t.cfg.Rounds)
	s.RoundTime = roundRemaining(s.Elapsed, t.cfg.RoundDuration, t.cfg.Total())
}

func (t *Rounds) total() time.Duration {
	return t.cfg.Total()
}

func (t *Rounds) clear() {}

func (t *Rounds) describe(in *InternalState) {
	in.Rounds = t.cfg.Rounds
	in.RoundDuration = t.cfg.RoundDuration
	if !in.Started {
		in.PhaseDuration = t.cfg.Total()
	}
}
