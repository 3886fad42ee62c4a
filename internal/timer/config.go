package timer

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"time"

	"github.com/lowaak/wod-timer/internal/clock"
)

// ErrInvalidConfig is wrapped by every configuration validation error
var ErrInvalidConfig = errors.New("invalid timer configuration")

// DefaultSampleInterval is how often a running timer recomputes and publishes its state
const DefaultSampleInterval = time.Second

// Kind identifies the timer family
type Kind string

const (
	KindCountdown Kind = "countdown" // single countdown to zero (AMRAP, For-Time)
	KindRounds    Kind = "rounds"    // EMOM: equal rounds over one continuous countdown
	KindTabata    Kind = "tabata"    // alternating work/rest phases
	KindStopwatch Kind = "stopwatch" // unbounded count up (Free)
)

// Label returns the name used in log lines
func (k Kind) Label() string {
	switch k {
	case KindCountdown:
		return "Countdown"
	case KindRounds:
		return "Rounds"
	case KindTabata:
		return "Tabata"
	case KindStopwatch:
		return "Stopwatch"
	}
	return string(k)
}

// CountdownConfig configures a Countdown. A zero Duration is legal and
// completes on the first sample.
type CountdownConfig struct {
	Duration time.Duration
}

// Validate reports whether the configuration can drive a timer
func (c CountdownConfig) Validate() error {
	if c.Duration < 0 {
		return fmt.Errorf("%w: countdown duration %v is negative", ErrInvalidConfig, c.Duration)
	}
	return nil
}

// RoundsConfig configures an EMOM timer
type RoundsConfig struct {
	Rounds        int
	RoundDuration time.Duration
}

// Total returns the length of the whole session
func (c RoundsConfig) Total() time.Duration {
	return time.Duration(c.Rounds) * c.RoundDuration
}

// Validate reports whether the configuration can drive a timer
func (c RoundsConfig) Validate() error {
	if c.Rounds < 1 {
		return fmt.Errorf("%w: rounds must be at least 1, got %d", ErrInvalidConfig, c.Rounds)
	}
	if c.RoundDuration <= 0 {
		return fmt.Errorf("%w: round duration must be positive, got %v", ErrInvalidConfig, c.RoundDuration)
	}
	if c.RoundDuration > math.MaxInt64/time.Duration(c.Rounds) {
		return fmt.Errorf("%w: %d rounds of %v overflow", ErrInvalidConfig, c.Rounds, c.RoundDuration)
	}
	return nil
}

// TabataConfig configures a work/rest interval timer
type TabataConfig struct {
	Rounds int
	Work   time.Duration
	Rest   time.Duration
}

// Total returns the length of the whole session. There is no rest after the last round.
func (c TabataConfig) Total() time.Duration {
	return time.Duration(c.Rounds)*c.Work + time.Duration(c.Rounds-1)*c.Rest
}

// Validate reports whether the configuration can drive a timer
func (c TabataConfig) Validate() error {
	if c.Rounds < 1 {
		return fmt.Errorf("%w: rounds must be at least 1, got %d", ErrInvalidConfig, c.Rounds)
	}
	if c.Work <= 0 {
		return fmt.Errorf("%w: work duration must be positive, got %v", ErrInvalidConfig, c.Work)
	}
	if c.Rest < 0 {
		return fmt.Errorf("%w: rest duration %v is negative", ErrInvalidConfig, c.Rest)
	}
	if c.Work+c.Rest > math.MaxInt64/time.Duration(c.Rounds) {
		return fmt.Errorf("%w: %d rounds of %v/%v overflow", ErrInvalidConfig, c.Rounds, c.Work, c.Rest)
	}
	return nil
}

// Options holds the collaborators shared by every timer kind
type Options struct {
	Clock          clock.Clock   // defaults to the real clock
	Logger         *log.Logger   // defaults to a discarding logger
	SampleInterval time.Duration // defaults to DefaultSampleInterval
	OnComplete     func(State)   // called once per run on natural completion
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = clock.NewRealClock()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}
	if o.SampleInterval <= 0 {
		o.SampleInterval = DefaultSampleInterval
	}
	return o
}
