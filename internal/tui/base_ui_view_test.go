package tui

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lowaak/wod-timer/internal/clock"
	"github.com/lowaak/wod-timer/internal/session"
	"github.com/lowaak/wod-timer/internal/timer"
	"github.com/lowaak/wod-timer/internal/workout"
)

// recordingView is a UIViewImpl that remembers what it was asked to show
type recordingView struct {
	mu          sync.Mutex
	initialized bool
	keysSet     bool
	mode        UIMode
	stopped     bool
	logLines    []string
	workouts    []workout.Workout
	states      []session.State
	faces       []ClockFace
}

func (v *recordingView) Initialize(*UIController) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.initialized = true
}

func (v *recordingView) SetupKeyboardHandlers(*UIController) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.keysSet = true
}

func (v *recordingView) Run() error { return nil }

func (v *recordingView) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopped = true
}

func (v *recordingView) Draw() error { return nil }

func (v *recordingView) SetMode(mode UIMode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mode = mode
}

func (v *recordingView) GetCurrentMode() UIMode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

func (v *recordingView) GetLogViewHeight() int { return 5 }

func (v *recordingView) ClearLogView() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.logLines = nil
}

func (v *recordingView) WriteLogLine(line string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.logLines = append(v.logLines, line)
	return nil
}

func (v *recordingView) UpdateSessionState(state session.State) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.states = append(v.states, state)
}

func (v *recordingView) UpdateClock(face ClockFace) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.faces = append(v.faces, face)
}

func (v *recordingView) SetWorkoutList(workouts []workout.Workout) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.workouts = workouts
}

type viewSnapshot struct {
	initialized bool
	keysSet     bool
	mode        UIMode
	stopped     bool
	logLines    []string
	workouts    []workout.Workout
	states      []session.State
	faces       []ClockFace
}

func (v *recordingView) snapshot() viewSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return viewSnapshot{
		initialized: v.initialized,
		keysSet:     v.keysSet,
		mode:        v.mode,
		stopped:     v.stopped,
		logLines:    append([]string(nil), v.logLines...),
		workouts:    v.workouts,
		states:      append([]session.State(nil), v.states...),
		faces:       append([]ClockFace(nil), v.faces...),
	}
}

type viewHarness struct {
	base       *BaseUIView
	view       *recordingView
	model      *UIModel
	logChan    chan string
	clock      *clock.FakeClock
	stateCh    chan chan session.State
	internal   func() (timer.InternalState, bool)
	internalMu sync.Mutex
}

func newViewHarness(t *testing.T) *viewHarness {
	t.Helper()
	h := &viewHarness{
		view:    &recordingView{},
		clock:   clock.NewFakeClock(t0),
		stateCh: make(chan chan session.State, 1),
		logChan: make(chan string, 10),
	}
	h.setInternal(timer.InternalState{}, false)

	ctrl := gomock.NewController(t)
	sessionCtl := NewMockSessionController(ctrl)
	sessionCtl.EXPECT().ListenToState(gomock.Any()).DoAndReturn(func(ch chan session.State) func() {
		h.stateCh <- ch
		return func() {}
	})
	sessionCtl.EXPECT().TimerInternalState().DoAndReturn(func() (timer.InternalState, bool) {
		h.internalMu.Lock()
		defer h.internalMu.Unlock()
		return h.internal()
	}).AnyTimes()

	h.model = NewUIModel(testLogger(), h.logChan, sampleWorkouts(), "")
	controller := NewUIController(h.model, sessionCtl, testLogger())
	h.base = NewBaseUIView(NewBaseUIViewArg{
		UIViewImpl:     h.view,
		UIModel:        h.model,
		UIController:   controller,
		Session:        sessionCtl,
		Clock:          h.clock,
		DisplayRefresh: 50 * time.Millisecond,
		Logger:         testLogger(),
	})
	t.Cleanup(func() {
		h.base.Shutdown()
		h.model.Shutdown()
	})
	return h
}

func (h *viewHarness) setInternal(in timer.InternalState, ok bool) {
	h.internalMu.Lock()
	defer h.internalMu.Unlock()
	h.internal = func() (timer.InternalState, bool) { return in, ok }
}

func TestNewBaseUIView_NilArgs(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessionCtl := NewMockSessionController(ctrl)
	model, _ := newTestModel(t, "")
	controller := NewUIController(model, sessionCtl, testLogger())

	full := NewBaseUIViewArg{
		UIViewImpl:   &recordingView{},
		UIModel:      model,
		UIController: controller,
		Session:      sessionCtl,
		Logger:       testLogger(),
	}
	for name, mutate := range map[string]func(a *NewBaseUIViewArg){
		"logger":     func(a *NewBaseUIViewArg) { a.Logger = nil },
		"view":       func(a *NewBaseUIViewArg) { a.UIViewImpl = nil },
		"controller": func(a *NewBaseUIViewArg) { a.UIController = nil },
		"model":      func(a *NewBaseUIViewArg) { a.UIModel = nil },
		"session":    func(a *NewBaseUIViewArg) { a.Session = nil },
	} {
		args := full
		mutate(&args)
		assert.Panics(t, func() { NewBaseUIView(args) }, name)
	}
}

func TestBaseUIView_Setup(t *testing.T) {
	h := newViewHarness(t)

	require.Eventually(t, func() bool {
		s := h.view.snapshot()
		return len(s.workouts) == 2 && len(s.faces) > 0
	}, time.Second, 5*time.Millisecond)

	s := h.view.snapshot()
	assert.True(t, s.initialized)
	assert.True(t, s.keysSet)
	assert.Equal(t, UIModeWorkoutSelection, s.mode)
	assert.Equal(t, ClockFace{Main: "00:00.00"}, s.faces[0])
}

func TestBaseUIView_ForwardsSessionState(t *testing.T) {
	h := newViewHarness(t)
	ch := <-h.stateCh

	ch <- session.State{Status: session.StatusReady, WorkoutName: "Cindy"}

	require.Eventually(t, func() bool {
		s := h.view.snapshot()
		return len(s.states) == 1 && s.states[0].WorkoutName == "Cindy"
	}, time.Second, 5*time.Millisecond)
}

func TestBaseUIView_RefreshesClock(t *testing.T) {
	h := newViewHarness(t)
	require.Eventually(t, func() bool { return h.clock.ActiveTickers() == 1 }, time.Second, 5*time.Millisecond)

	h.setInternal(timer.InternalState{
		Kind:           timer.KindCountdown,
		Started:        true,
		Running:        true,
		StartedAt:      t0,
		PhaseStartedAt: t0,
		PhaseDuration:  time.Minute,
		TargetEnd:      t0.Add(time.Minute),
	}, true)
	h.clock.Advance(50 * time.Millisecond)

	require.Eventually(t, func() bool {
		faces := h.view.snapshot().faces
		return len(faces) > 0 && faces[len(faces)-1].Main == "00:59.95"
	}, time.Second, 5*time.Millisecond)
}

func TestBaseUIView_ModeAndClose(t *testing.T) {
	h := newViewHarness(t)

	h.model.SetMode(UIModeTimer)
	require.Eventually(t, func() bool { return h.view.GetCurrentMode() == UIModeTimer }, time.Second, 5*time.Millisecond)

	h.model.RequestCloseApplication()
	require.Eventually(t, func() bool { return h.view.snapshot().stopped }, time.Second, 5*time.Millisecond)
}

func TestBaseUIView_FollowsLatestMode(t *testing.T) {
	for i := 0; i < 20; i++ {
		h := newViewHarness(t)

		// both changes land before the listener goroutine reads the replayed mode
		h.model.SetMode(UIModeTimer)
		h.model.SetMode(UIModeWorkoutSelection)
		h.model.SetMode(UIModeTimer)
		require.Eventually(t, func() bool { return h.view.GetCurrentMode() == UIModeTimer }, time.Second, 5*time.Millisecond)
	}
}

func TestBaseUIView_ShowsLogTail(t *testing.T) {
	h := newViewHarness(t)

	for i := 0; i < 7; i++ {
		h.logChan <- "Manager: line\n"
	}
	h.logChan <- "Manager: last\n"

	require.Eventually(t, func() bool {
		lines := h.view.snapshot().logLines
		return len(lines) == 5 && lines[4] == "Manager: last\n"
	}, time.Second, 5*time.Millisecond)
}
