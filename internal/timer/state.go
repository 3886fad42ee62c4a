package timer

import (
	"time"

	"fortio.org/safecast"
)

// State is an immutable snapshot of a timer, delivered to subscribers on every sample
type State struct {
	Kind Kind

	// Time is the remaining time for countdown kinds (the current phase for
	// Tabata) and the elapsed time for the stopwatch.
	Time time.Duration
	// Elapsed is the total unpaused time since the first start
	Elapsed time.Duration
	// RoundTime is the time left in the current EMOM round
	RoundTime time.Duration

	Round     int // clock-derived, 1-indexed (Rounds, Tabata)
	Rounds    int // configured round count (Rounds, Tabata)
	WorkPhase bool

	// ManualRounds is the athlete-reported round count, unrelated to the clock
	ManualRounds int

	Started   bool
	Running   bool
	Paused    bool
	Completed bool
	Finished  bool
}

// Terminal reports whether the timer reached natural completion or was finished
func (s State) Terminal() bool {
	return s.Completed || s.Finished
}

// DisplaySeconds returns the whole seconds to show: rounded up for countdowns
// so one second is shown down to the last millisecond, rounded down for the stopwatch.
func (s State) DisplaySeconds() int64 {
	if s.Kind == KindStopwatch {
		return int64(s.Time / time.Second)
	}
	return ceilSeconds(s.Time)
}

// Result is the final record of a run
type Result struct {
	Kind         Kind
	Elapsed      time.Duration
	Remaining    time.Duration
	Round        int
	ManualRounds int
	Completed    bool // false when the run was ended with Finish
}

// InternalState is a read-only copy of the clock bookkeeping, for presentation
// layers that resample faster than the timer's own sampling interval.
type InternalState struct {
	Kind    Kind
	Started bool
	Running bool
	Paused  bool

	StartedAt      time.Time     // first start of the run
	PhaseStartedAt time.Time     // start of the current phase (equals StartedAt except for Tabata)
	PhaseDuration  time.Duration // zero for the stopwatch
	PhaseOffset    time.Duration // unpaused time spent in earlier phases
	TargetEnd      time.Time     // zero for the stopwatch
	PausedAt       time.Time     // set while paused and once terminal
	PausedTotal    time.Duration // pause time within the current phase

	Rounds        int
	RoundDuration time.Duration // EMOM only
	Round         int           // Tabata only; EMOM rounds come from RoundAt
	WorkPhase     bool
}

func (in InternalState) phase() phase {
	return phase{
		armed:       in.Started,
		bounded:     in.Kind != KindStopwatch,
		startedAt:   in.PhaseStartedAt,
		duration:    in.PhaseDuration,
		targetEnd:   in.TargetEnd,
		pausedAt:    in.PausedAt,
		pausedTotal: in.PausedTotal,
	}
}

// RemainingAt returns the time left in the current phase at now
func (in InternalState) RemainingAt(now time.Time) time.Duration {
	return in.phase().remaining(now)
}

// ElapsedAt returns the total unpaused time at now
func (in InternalState) ElapsedAt(now time.Time) time.Duration {
	if !in.Started {
		return 0
	}
	return in.PhaseOffset + in.phase().elapsed(now)
}

// RoundAt returns the round in progress at now
func (in InternalState) RoundAt(now time.Time) int {
	switch in.Kind {
	case KindRounds:
		return roundAt(in.ElapsedAt(now), in.RoundDuration, in.Rounds)
	case KindTabata:
		return in.Round
	}
	return 0
}

// RoundRemainingAt returns the time left in the current EMOM round at now
func (in InternalState) RoundRemainingAt(now time.Time) time.Duration {
	if in.Kind != KindRounds {
		return 0
	}
	if !in.Started {
		return in.RoundDuration
	}
	return roundRemaining(in.ElapsedAt(now), in.RoundDuration, in.PhaseDuration)
}

// roundAt is the only place the EMOM round is derived: min(rounds, floor(elapsed/roundDuration)+1)
func roundAt(elapsed, roundDuration time.Duration, rounds int) int {
	if roundDuration <= 0 || rounds < 1 {
		return 0
	}
	idx, err := safecast.Conv[int](int64(elapsed / roundDuration))
	if err != nil || idx >= rounds {
		return rounds
	}
	return idx + 1
}

func roundRemaining(elapsed, roundDuration, total time.Duration) time.Duration {
	if roundDuration <= 0 || elapsed >= total {
		return 0
	}
	return roundDuration - elapsed%roundDuration
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64((d + time.Second - 1) / time.Second)
}
