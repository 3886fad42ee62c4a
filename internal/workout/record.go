package workout

import (
	"time"

	"github.com/lowaak/wod-timer/internal/timer"
)

// BlockResult is what one block of a session produced
type BlockResult struct {
	Name         string        `yaml:"name"`
	Kind         BlockKind     `yaml:"kind"`
	Elapsed      time.Duration `yaml:"elapsed"`
	Remaining    time.Duration `yaml:"remaining,omitempty"`
	Round        int           `yaml:"round,omitempty"`
	ManualRounds int           `yaml:"manual_rounds,omitempty"`
	Completed    bool          `yaml:"completed"`
	Skipped      bool          `yaml:"skipped,omitempty"`
}

// NewBlockResult records the outcome of a block's timer
func NewBlockResult(b Block, r timer.Result) BlockResult {
	return BlockResult{
		Name:         b.Title(),
		Kind:         b.Kind,
		Elapsed:      r.Elapsed,
		Remaining:    r.Remaining,
		Round:        r.Round,
		ManualRounds: r.ManualRounds,
		Completed:    r.Completed,
	}
}

// SessionRecord is one run of a workout, kept in the history
type SessionRecord struct {
	ID          string        `yaml:"id"`
	WorkoutID   string        `yaml:"workout_id,omitempty"`
	WorkoutName string        `yaml:"workout_name"`
	StartedAt   time.Time     `yaml:"started_at"`
	EndedAt     time.Time     `yaml:"ended_at"`
	Blocks      []BlockResult `yaml:"blocks"`
	Completed   bool          `yaml:"completed"`
}

// TotalElapsed sums the active time of every block
func (s SessionRecord) TotalElapsed() time.Duration {
	var total time.Duration
	for _, b := range s.Blocks {
		total += b.Elapsed
	}
	return total
}
