package tui

import (
	"github.com/lowaak/wod-timer/internal/session"
	"github.com/lowaak/wod-timer/internal/workout"
)

// UIViewImpl defines the interface for framework-specific UI implementations
type UIViewImpl interface {
	// Initialize is called after construction to set up framework-specific widgets
	// controller is used to handle UI events
	Initialize(controller *UIController)

	// SetupKeyboardHandlers sets up keyboard event handlers
	SetupKeyboardHandlers(controller *UIController)

	// Run starts the UI framework and blocks until it exits
	Run() error

	// Stop stops the UI framework
	Stop()

	// Draw refreshes/redraws the UI
	Draw() error

	// --- Mode Management ---

	SetMode(mode UIMode)
	GetCurrentMode() UIMode

	// --- Log View (shared across modes) ---

	GetLogViewHeight() int
	ClearLogView()
	WriteLogLine(line string) error

	// --- Timer Mode ---

	// UpdateSessionState updates the block, round and results panels
	UpdateSessionState(state session.State)

	// UpdateClock updates the big clock. Called at the display refresh rate.
	UpdateClock(face ClockFace)

	// --- Workout Selection Mode ---

	SetWorkoutList(workouts []workout.Workout)
}
