package timer

import "time"

// Tabata alternates work and rest phases: WORK(1), REST(1), ..., WORK(Rounds).
// There is no rest after the last work phase.
//
// Each phase starts at the instant the previous one ended, so late samples
// never stretch the session.
type Tabata struct {
	*runner
	cfg   TabataConfig
	round int
	work  bool
}

var _ Timer = (*Tabata)(nil)

// NewTabata validates cfg and returns a Tabata timer that has not started
func NewTabata(cfg TabataConfig, opts Options) (*Tabata, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Tabata{cfg: cfg}
	t.runner = newRunner(KindTabata, opts)
	t.attach(t)
	return t, nil
}

func (t *Tabata) begin(now time.Time) {
	t.round = 1
	t.work = true
	t.phase = newPhase(now, t.cfg.Work)
}

// advance runs every transition that is due by now. Each pass moves the phase
// end forward by a whole phase and the last work phase returns, so the loop
// runs at most 2*Rounds-1 times even with zero rest.
func (t *Tabata) advance(now time.Time) bool {
	for t.phase.due(now) {
		if t.work && t.round >= t.cfg.Rounds {
			return true
		}
		end := t.phase.targetEnd
		t.offset += t.phase.duration
		if t.work {
			t.work = false
			t.phase = newPhase(end, t.cfg.Rest)
		} else {
			t.round++
			t.work = true
			t.phase = newPhase(end, t.cfg.Work)
		}
		t.logger.Printf("Tabata: round %d/%d %s", t.round, t.cfg.Rounds, phaseName(t.work))
	}
	return false
}

func (t *Tabata) fill(now time.Time, s *State) {
	s.Rounds = t.cfg.Rounds
	if !s.Started {
		s.Time = t.cfg.Work
		s.Round = 1
		s.WorkPhase = true
		return
	}
	s.Time = t.phase.remaining(now)
	s.Round = t.round
	s.WorkPhase = t.work
}

func (t *Tabata) total() time.Duration {
	return t.cfg.Total()
}

func (t *Tabata) clear() {
	t.round = 0
	t.work = false
}

func (t *Tabata) describe(in *InternalState) {
	in.Rounds = t.cfg.Rounds
	if !in.Started {
		in.Round = 1
		in.WorkPhase = true
		in.PhaseDuration = t.cfg.Work
		return
	}
	in.Round = t.round
	in.WorkPhase = t.work
}

func phaseName(work bool) string {
	if work {
		return "work"
	}
	return "rest"
}
