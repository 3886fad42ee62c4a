package workout

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lowaak/wod-timer/internal/timer"
)

// ErrInvalidWorkout is wrapped by every workout validation error
var ErrInvalidWorkout = errors.New("invalid workout")

// MaxBlockSeconds caps every per-block time field
const MaxBlockSeconds = 24 * 60 * 60

// BlockKind selects the timer a block runs on
type BlockKind string

const (
	KindAMRAP   BlockKind = "amrap"   // as many rounds as possible before the clock runs out
	KindForTime BlockKind = "fortime" // work through the block against a time cap
	KindEMOM    BlockKind = "emom"    // every minute on the minute
	KindTabata  BlockKind = "tabata"  // work/rest intervals
	KindFree    BlockKind = "free"    // open stopwatch
)

// AllBlockKinds lists the block kinds in display order
var AllBlockKinds = []BlockKind{KindAMRAP, KindForTime, KindEMOM, KindTabata, KindFree}

// DisplayName returns the label shown to the athlete
func (k BlockKind) DisplayName() string {
	switch k {
	case KindAMRAP:
		return "AMRAP"
	case KindForTime:
		return "For Time"
	case KindEMOM:
		return "EMOM"
	case KindTabata:
		return "Tabata"
	case KindFree:
		return "Free"
	}
	return string(k)
}

// ParseBlockKind accepts the kind names used in plan files and on the command line
func ParseBlockKind(s string) (BlockKind, error) {
	k := BlockKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case "for-time", "for_time":
		return KindForTime, nil
	case "stopwatch":
		return KindFree, nil
	}
	for _, known := range AllBlockKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown block kind %q", ErrInvalidWorkout, s)
}

// Block is one timed part of a workout. Only the fields of its kind are used.
type Block struct {
	Name string    `yaml:"name,omitempty" toml:"name,omitempty"`
	Kind BlockKind `yaml:"kind" toml:"kind"`

	// AMRAP length or For-Time cap
	DurationSeconds int `yaml:"duration_seconds,omitempty" toml:"duration_seconds,omitempty"`

	// EMOM and Tabata
	Rounds int `yaml:"rounds,omitempty" toml:"rounds,omitempty"`
	// EMOM round length
	RoundSeconds int `yaml:"round_seconds,omitempty" toml:"round_seconds,omitempty"`

	// Tabata phases
	WorkSeconds int `yaml:"work_seconds,omitempty" toml:"work_seconds,omitempty"`
	RestSeconds int `yaml:"rest_seconds,omitempty" toml:"rest_seconds,omitempty"`

	Exercises []string `yaml:"exercises,omitempty" toml:"exercises,omitempty"`
}

// Workout is an ordered list of blocks run one after another
type Workout struct {
	ID     string  `yaml:"id,omitempty" toml:"id,omitempty"`
	Name   string  `yaml:"name" toml:"name"`
	Notes  string  `yaml:"notes,omitempty" toml:"notes,omitempty"`
	Blocks []Block `yaml:"blocks" toml:"blocks"`
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// Title returns the block name, or a name derived from its configuration
func (b Block) Title() string {
	if b.Name != "" {
		return b.Name
	}
	return b.Summary()
}

// Summary describes the block's timing, e.g. "EMOM 10 x 01:00"
func (b Block) Summary() string {
	switch b.Kind {
	case KindAMRAP:
		return fmt.Sprintf("AMRAP %s", timer.FormatClock(seconds(b.DurationSeconds)))
	case KindForTime:
		return fmt.Sprintf("For Time (cap %s)", timer.FormatClock(seconds(b.DurationSeconds)))
	case KindEMOM:
		return fmt.Sprintf("EMOM %d x %s", b.Rounds, timer.FormatClock(seconds(b.RoundSeconds)))
	case KindTabata:
		return fmt.Sprintf("Tabata %d x %ds/%ds", b.Rounds, b.WorkSeconds, b.RestSeconds)
	case KindFree:
		return "Free"
	}
	return string(b.Kind)
}

// Duration returns the planned length of the block. Free blocks have none.
func (b Block) Duration() time.Duration {
	switch b.Kind {
	case KindAMRAP, KindForTime:
		return seconds(b.DurationSeconds)
	case KindEMOM:
		return b.roundsConfig().Total()
	case KindTabata:
		return b.tabataConfig().Total()
	}
	return 0
}

func (b Block) roundsConfig() timer.RoundsConfig {
	return timer.RoundsConfig{Rounds: b.Rounds, RoundDuration: seconds(b.RoundSeconds)}
}

func (b Block) tabataConfig() timer.TabataConfig {
	return timer.TabataConfig{Rounds: b.Rounds, Work: seconds(b.WorkSeconds), Rest: seconds(b.RestSeconds)}
}

// Validate checks the fields of the block's kind
func (b Block) Validate() error {
	for name, v := range map[string]int{
		"duration_seconds": b.DurationSeconds,
		"round_seconds":    b.RoundSeconds,
		"work_seconds":     b.WorkSeconds,
		"rest_seconds":     b.RestSeconds,
	} {
		if v > MaxBlockSeconds {
			return fmt.Errorf("%w: %s %d exceeds %d", ErrInvalidWorkout, name, v, MaxBlockSeconds)
		}
	}

	var err error
	switch b.Kind {
	case KindAMRAP, KindForTime:
		if b.DurationSeconds <= 0 {
			return fmt.Errorf("%w: %s block needs duration_seconds > 0", ErrInvalidWorkout, b.Kind)
		}
	case KindEMOM:
		err = b.roundsConfig().Validate()
	case KindTabata:
		err = b.tabataConfig().Validate()
	case KindFree:
	default:
		return fmt.Errorf("%w: unknown block kind %q", ErrInvalidWorkout, b.Kind)
	}
	if err != nil {
		return fmt.Errorf("%w: %s block: %w", ErrInvalidWorkout, b.Kind, err)
	}
	return nil
}

// NewTimer builds the timer that runs this block
func (b Block) NewTimer(opts timer.Options) (timer.Timer, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	switch b.Kind {
	case KindAMRAP, KindForTime:
		return timer.NewCountdown(timer.CountdownConfig{Duration: seconds(b.DurationSeconds)}, opts)
	case KindEMOM:
		return timer.NewRounds(b.roundsConfig(), opts)
	case KindTabata:
		return timer.NewTabata(b.tabataConfig(), opts)
	default:
		return timer.NewStopwatch(opts)
	}
}

// TotalDuration returns the planned length of all blocks. Free blocks count as zero.
func (w *Workout) TotalDuration() time.Duration {
	var total time.Duration
	for _, block := range w.Blocks {
		total += block.Duration()
	}
	return total
}

// Validate checks the workout and every block in it
func (w *Workout) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidWorkout)
	}
	if len(w.Blocks) == 0 {
		return fmt.Errorf("%w: %q has no blocks", ErrInvalidWorkout, w.Name)
	}
	for i, block := range w.Blocks {
		if err := block.Validate(); err != nil {
			return fmt.Errorf("%q block %d: %w", w.Name, i+1, err)
		}
	}
	return nil
}
