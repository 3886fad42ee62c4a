package tui

import (
	"log"

	"github.com/lowaak/wod-timer/internal/session"
	"github.com/lowaak/wod-timer/internal/timer"
	"github.com/lowaak/wod-timer/internal/workout"
)

//go:generate mockgen -destination=mock_session_controller.go -package=tui . SessionController

// SessionController is the part of session.Manager the UI drives
type SessionController interface {
	Load(w *workout.Workout) error
	Start()
	Pause()
	Reset()
	SkipBlock()
	Finish()
	IncrementRound()
	GetState() session.State
	ListenToState(ch chan session.State) func()
	TimerInternalState() (timer.InternalState, bool)
	Shutdown()
}

var _ SessionController = (*session.Manager)(nil)

// UIController handles UI events and coordinates with the UIModel and the session
type UIController struct {
	model   *UIModel
	session SessionController
	logger  *log.Logger
}

// NewUIController creates a new UIController with the given dependencies
func NewUIController(model *UIModel, sessionCtl SessionController, logger *log.Logger) *UIController {
	if model == nil {
		panic("UIController: model cannot be nil")
	}
	if sessionCtl == nil {
		panic("UIController: session cannot be nil")
	}
	if logger == nil {
		panic("UIController: logger cannot be nil")
	}
	return &UIController{
		model:   model,
		session: sessionCtl,
		logger:  logger,
	}
}

// OnEscapeKey handles when the Escape or quit key is pressed
func (c *UIController) OnEscapeKey() {
	c.model.RequestCloseApplication()
}

// OnModeChange handles when the user requests a mode change
func (c *UIController) OnModeChange(mode UIMode) {
	if info, ok := GetUIModeInfo(mode); ok {
		c.logger.Printf("Switching to %s mode", info.DisplayName)
	}
	c.model.SetMode(mode)
}

// OnWorkoutSelected loads the workout at index and shows the timer
func (c *UIController) OnWorkoutSelected(index int) {
	workouts := c.model.GetWorkouts()
	if index < 0 || index >= len(workouts) {
		c.logger.Printf("Invalid workout index: %d", index)
		return
	}

	w := workouts[index]
	c.logger.Printf("Workout selected: %s", w.Name)
	if err := c.session.Load(&w); err != nil {
		c.logger.Printf("Cannot load %s: %v", w.Name, err)
		return
	}
	if w.ID != "" {
		c.model.SetLastWorkoutID(w.ID)
	}
	c.model.SetMode(UIModeTimer)
}

// ToggleTimer starts, pauses, or resumes the current block based on the session state
func (c *UIController) ToggleTimer() {
	state := c.session.GetState()
	switch state.Status {
	case session.StatusReady, session.StatusPaused:
		c.session.Start()
	case session.StatusRunning:
		c.session.Pause()
	case session.StatusCompleted:
		c.logger.Printf("Workout complete - press %q to run it again", KeyReset)
	default:
		c.logger.Printf("No workout loaded - select one in Workout Selection mode (press 2)")
	}
}

// ResetSession returns the session to its first block
func (c *UIController) ResetSession() {
	c.session.Reset()
}

// SkipBlock moves on without completing the current block
func (c *UIController) SkipBlock() {
	c.session.SkipBlock()
}

// FinishBlock stops the current block with the time on the clock
func (c *UIController) FinishBlock() {
	c.session.Finish()
}

// IncrementRound counts a round by hand
func (c *UIController) IncrementRound() {
	c.session.IncrementRound()
}

// Shutdown stops the session and cleans up resources
func (c *UIController) Shutdown() {
	c.session.Shutdown()
}
