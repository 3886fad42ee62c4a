package session

import (
	"context"

	"github.com/lowaak/wod-timer/internal/timer"
	"github.com/lowaak/wod-timer/internal/workout"
)

//go:generate mockgen -destination=mock_result_sink.go -package=session . ResultSink

// ResultSink receives the record of every session that ran to its end
type ResultSink interface {
	SaveSession(ctx context.Context, rec workout.SessionRecord) error
}

// Status represents the current status of a session
type Status int

const (
	StatusIdle      Status = iota // No workout loaded
	StatusReady                   // Block loaded but not started
	StatusRunning                 // Block timer running
	StatusPaused                  // Block timer paused
	StatusCompleted               // Every block is done
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusReady:
		return "Ready"
	case StatusRunning:
		return "Running"
	case StatusPaused:
		return "Paused"
	case StatusCompleted:
		return "Completed"
	}
	return "Unknown"
}

// State holds the current state of a session
type State struct {
	Status       Status
	WorkoutID    string
	WorkoutName  string
	BlockIdx     int // Index of the current block (0-based)
	BlockCount   int
	BlockName    string
	BlockKind    workout.BlockKind
	BlockSummary string
	Exercises    []string
	NextBlock    string                // Title of the following block, empty on the last one
	Timer        timer.State           // Last snapshot of the current block's timer
	Results      []workout.BlockResult // One entry per block already left
}

