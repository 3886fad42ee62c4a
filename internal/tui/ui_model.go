package tui

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/lowaak/wod-timer/internal/events"
	"github.com/lowaak/wod-timer/internal/go_func_utils"
	"github.com/lowaak/wod-timer/internal/workout"
)

// UIState holds the current state of the UI that views need to render
type UIState struct {
	Mode UIMode
}

// UIModel holds what the views render besides the session itself
type UIModel struct {
	logEvent              *events.ChannelEvent[string]
	closeApplicationEvent *events.ChannelEvent[struct{}]
	uiStateEvent          *events.ChannelEvent[UIState]
	uiState               UIState
	workoutsEvent         *events.ChannelEvent[[]workout.Workout]
	workouts              []workout.Workout
	logLines              []string
	persistence           *uiModelPersistence
	logMu                 sync.RWMutex
	mu                    sync.RWMutex
	ctx                   context.Context
	cancel                context.CancelFunc
	wg                    sync.WaitGroup
	logger                *log.Logger
}

// NewUIModel creates the model and starts reading log lines from uiLogChan.
// UI preferences are kept in stateDir; an empty stateDir keeps them in memory.
func NewUIModel(logger *log.Logger, uiLogChan <-chan string, workouts []workout.Workout, stateDir string) *UIModel {
	if logger == nil {
		panic("UIModel: logger cannot be nil")
	}
	if uiLogChan == nil {
		panic("UIModel: uiLogChan cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())
	model := &UIModel{
		logEvent:              events.NewChannelEvent[string](false),
		closeApplicationEvent: events.NewChannelEvent[struct{}](true),
		uiStateEvent:          events.NewChannelEvent[UIState](true),
		uiState:               UIState{Mode: UIModeWorkoutSelection},
		workoutsEvent:         events.NewChannelEvent[[]workout.Workout](true),
		workouts:              workouts,
		logLines:              make([]string, 0, maxLogLines),
		persistence:           newUIModelPersistence(logger, stateDir),
		ctx:                   ctx,
		cancel:                cancel,
		logger:                logger,
	}
	model.uiStateEvent.Notify(model.uiState)
	model.workoutsEvent.Notify(workouts)

	// Read from the UI log channel and populate logLines
	go_func_utils.SafeGoWithWaitGroup(model.logger, &model.wg, func() { model.readFromLogChannel(ctx, uiLogChan) })

	return model
}

// Shutdown stops all goroutines and waits for them to finish
func (m *UIModel) Shutdown() {
	m.logger.Println("UIModel: Shutting down")
	m.cancel()
	m.wg.Wait()
	m.logger.Println("UIModel: Shutdown complete")
}

// ListenToLog registers a channel to receive log messages
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToLog(ch chan string) func() {
	return m.logEvent.Listen(ch)
}

// ListenToCloseApplication registers a channel to receive close application signals
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToCloseApplication(ch chan struct{}) func() {
	return m.closeApplicationEvent.Listen(ch)
}

// RequestCloseApplication signals that the application should close
func (m *UIModel) RequestCloseApplication() {
	m.closeApplicationEvent.Notify(struct{}{})
}

// ListenToUIState registers a channel to receive UI state changes
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToUIState(ch chan UIState) func() {
	return m.uiStateEvent.Listen(ch)
}

// GetUIState returns the current UI state
func (m *UIModel) GetUIState() UIState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.uiState
}

// SetMode updates the current UI mode and notifies listeners
func (m *UIModel) SetMode(mode UIMode) {
	m.mu.Lock()
	if m.uiState.Mode == mode {
		m.mu.Unlock()
		return
	}
	m.uiState.Mode = mode
	state := m.uiState
	m.mu.Unlock()

	m.uiStateEvent.Notify(state)
}

// ListenToWorkouts registers a channel to receive the selectable workouts
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToWorkouts(ch chan []workout.Workout) func() {
	return m.workoutsEvent.Listen(ch)
}

// GetWorkouts returns the selectable workouts
func (m *UIModel) GetWorkouts() []workout.Workout {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.workouts
}

// SetWorkouts replaces the selectable workouts
func (m *UIModel) SetWorkouts(workouts []workout.Workout) {
	m.mu.Lock()
	m.workouts = workouts
	m.mu.Unlock()

	m.workoutsEvent.Notify(workouts)
}

// GetLastWorkoutIndex returns the index of the most recently selected workout, or 0
func (m *UIModel) GetLastWorkoutIndex() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id := m.persistence.getLastWorkoutID()
	if id == "" {
		return 0
	}
	for i := range m.workouts {
		if m.workouts[i].ID == id {
			return i
		}
	}
	return 0
}

// SetLastWorkoutID remembers the selected workout for the next run
func (m *UIModel) SetLastWorkoutID(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persistence.setLastWorkoutID(id)
}

// readFromLogChannel reads log lines from the channel and populates logLines
func (m *UIModel) readFromLogChannel(ctx context.Context, logChan <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-logChan:
			if !ok {
				return
			}

			m.logMu.Lock()
			m.logLines = append(m.logLines, line)
			if len(m.logLines) > maxLogLines {
				// Keep the most recent maxLogLines
				m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
			}
			m.logMu.Unlock()

			m.logEvent.Notify(line)
		}
	}
}

// GetLogTail returns the last n lines of logs
func (m *UIModel) GetLogTail(n int) []string {
	m.logMu.RLock()
	defer m.logMu.RUnlock()

	if n <= 0 {
		return []string{}
	}

	if n >= len(m.logLines) {
		result := make([]string, len(m.logLines))
		copy(result, m.logLines)
		return result
	}

	result := make([]string, n)
	copy(result, m.logLines[len(m.logLines)-n:])
	return result
}

// LogChannelWriter is an io.Writer that forwards each written line to a channel.
// Lines are dropped while the channel is full so logging never blocks on the UI.
type LogChannelWriter struct {
	ch chan<- string
}

// NewLogChannel returns a channel for NewUIModel and the writer that feeds it
func NewLogChannel() (<-chan string, *LogChannelWriter) {
	ch := make(chan string, logChanDepth)
	return ch, &LogChannelWriter{ch: ch}
}

func (w *LogChannelWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		select {
		case w.ch <- line + "\n":
		default:
		}
	}
	return len(p), nil
}
