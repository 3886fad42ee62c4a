package timer

import "time"

// phase tracks one clock-measured segment. Bounded phases count down to
// targetEnd; open phases only measure elapsed time.
//
// targetEnd is fixed when the phase is armed and only moves forward by the
// pause gaps of this phase, so remaining time is never rebuilt from a stale value.
type phase struct {
	armed       bool
	bounded     bool
	startedAt   time.Time
	duration    time.Duration
	targetEnd   time.Time
	pausedAt    time.Time
	pausedTotal time.Duration
}

func newPhase(at time.Time, d time.Duration) phase {
	return phase{
		armed:     true,
		bounded:   true,
		startedAt: at,
		duration:  d,
		targetEnd: at.Add(d),
	}
}

func newOpenPhase(at time.Time) phase {
	return phase{armed: true, startedAt: at}
}

func (p *phase) pause(now time.Time) {
	if p.pausedAt.IsZero() {
		p.pausedAt = now
	}
}

// resume adds the gap since pause. A clock that moved backwards adds nothing.
func (p *phase) resume(now time.Time) {
	if p.pausedAt.IsZero() {
		return
	}
	gap := now.Sub(p.pausedAt)
	if gap < 0 {
		gap = 0
	}
	p.pausedTotal += gap
	if p.bounded {
		p.targetEnd = p.targetEnd.Add(gap)
	}
	p.pausedAt = time.Time{}
}

// freeze stops the phase clock for good. Bounded phases never freeze past their end.
func (p *phase) freeze(at time.Time) {
	if !p.pausedAt.IsZero() {
		return
	}
	if p.bounded && at.After(p.targetEnd) {
		at = p.targetEnd
	}
	p.pausedAt = at
}

func (p phase) reference(now time.Time) time.Time {
	if !p.pausedAt.IsZero() {
		return p.pausedAt
	}
	return now
}

func (p phase) elapsed(now time.Time) time.Duration {
	if !p.armed {
		return 0
	}
	e := p.reference(now).Sub(p.startedAt) - p.pausedTotal
	if e < 0 {
		return 0
	}
	if p.bounded && e > p.duration {
		return p.duration
	}
	return e
}

func (p phase) remaining(now time.Time) time.Duration {
	if !p.armed {
		return p.duration
	}
	if !p.bounded {
		return 0
	}
	r := p.targetEnd.Sub(p.reference(now))
	if r < 0 {
		return 0
	}
	if r > p.duration {
		return p.duration
	}
	return r
}

func (p phase) due(now time.Time) bool {
	return p.armed && p.bounded && !p.reference(now).Before(p.targetEnd)
}
