package session

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lowaak/wod-timer/internal/clock"
	"github.com/lowaak/wod-timer/internal/workout"
)

var t0 = time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)

type harness struct {
	m      *Manager
	clock  *clock.FakeClock
	states chan State
}

func newHarness(t *testing.T, autoAdvance bool, sink ResultSink) *harness {
	t.Helper()
	fc := clock.NewFakeClock(t0)
	m := NewManager(ManagerArgs{
		Logger:      log.New(io.Discard, "", 0),
		Clock:       fc,
		AutoAdvance: autoAdvance,
		Sink:        sink,
	})
	t.Cleanup(m.Shutdown)

	states := make(chan State, 4096)
	t.Cleanup(m.ListenToState(states))
	return &harness{m: m, clock: fc, states: states}
}

// waitFor reads published states until one satisfies pred
func (h *harness) waitFor(t *testing.T, pred func(State) bool) State {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case s := <-h.states:
			if pred(s) {
				return s
			}
		case <-timeout:
			require.FailNow(t, "timed out waiting for a matching session state", "last known: %+v", h.m.GetState())
			return State{}
		}
	}
}

func sessionDone(s State) bool { return s.Status == StatusCompleted }

func twoBlocks() *workout.Workout {
	return &workout.Workout{
		ID:   "w1",
		Name: "Test",
		Blocks: []workout.Block{
			{Kind: workout.KindAMRAP, DurationSeconds: 10, Exercises: []string{"burpees"}},
			{Name: "Intervals", Kind: workout.KindEMOM, Rounds: 2, RoundSeconds: 5},
		},
	}
}

func TestNewManager_NilLoggerPanics(t *testing.T) {
	assert.Panics(t, func() { NewManager(ManagerArgs{}) })
}

func TestManager_IdleIgnoresCommands(t *testing.T) {
	h := newHarness(t, false, nil)

	h.m.Start()
	h.m.Pause()
	h.m.SkipBlock()
	h.m.Finish()
	h.m.IncrementRound()
	h.m.Reset()

	s := h.m.GetState()
	assert.Equal(t, StatusIdle, s.Status)
	assert.Equal(t, "Idle", s.Status.String())
	_, ok := h.m.TimerInternalState()
	assert.False(t, ok)
}

func TestManager_Load(t *testing.T) {
	h := newHarness(t, false, nil)

	require.NoError(t, h.m.Load(twoBlocks()))
	s := h.m.GetState()
	assert.Equal(t, StatusReady, s.Status)
	assert.Equal(t, "w1", s.WorkoutID)
	assert.Equal(t, "Test", s.WorkoutName)
	assert.Equal(t, 0, s.BlockIdx)
	assert.Equal(t, 2, s.BlockCount)
	assert.Equal(t, "AMRAP 00:10", s.BlockName)
	assert.Equal(t, workout.KindAMRAP, s.BlockKind)
	assert.Equal(t, []string{"burpees"}, s.Exercises)
	assert.Equal(t, "Intervals", s.NextBlock)
	assert.Equal(t, 10*time.Second, s.Timer.Time)

	in, ok := h.m.TimerInternalState()
	require.True(t, ok)
	assert.False(t, in.Started)

	err := h.m.Load(&workout.Workout{Name: "empty"})
	assert.ErrorIs(t, err, workout.ErrInvalidWorkout)

	require.NoError(t, h.m.Load(nil))
	assert.Equal(t, StatusIdle, h.m.GetState().Status)
}

func TestManager_LoadRefusedWhileInProgress(t *testing.T) {
	h := newHarness(t, false, nil)
	require.NoError(t, h.m.Load(twoBlocks()))
	h.m.Start()

	assert.ErrorIs(t, h.m.Load(twoBlocks()), ErrBusy)
	h.m.Pause()
	assert.ErrorIs(t, h.m.Load(twoBlocks()), ErrBusy)
	assert.Equal(t, StatusPaused, h.m.GetState().Status)
}

func TestManager_AutoAdvanceRecordsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockResultSink(ctrl)
	saved := make(chan workout.SessionRecord, 1)
	sink.EXPECT().SaveSession(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec workout.SessionRecord) error {
			saved <- rec
			return nil
		}).Times(1)

	h := newHarness(t, true, sink)
	require.NoError(t, h.m.Load(twoBlocks()))
	h.m.Start()
	assert.Equal(t, StatusRunning, h.m.GetState().Status)

	h.clock.Advance(10 * time.Second)
	h.waitFor(t, func(s State) bool { return s.BlockIdx == 1 && s.Status == StatusRunning })

	h.clock.Advance(10 * time.Second)
	final := h.waitFor(t, sessionDone)
	assert.True(t, final.Timer.Completed)
	require.Len(t, final.Results, 2)

	rec := <-saved
	assert.Equal(t, "w1", rec.WorkoutID)
	assert.Equal(t, "Test", rec.WorkoutName)
	assert.True(t, rec.Completed)
	assert.Equal(t, t0, rec.StartedAt)
	assert.Equal(t, t0.Add(20*time.Second), rec.EndedAt)
	require.Len(t, rec.Blocks, 2)

	assert.Equal(t, workout.KindAMRAP, rec.Blocks[0].Kind)
	assert.Equal(t, 10*time.Second, rec.Blocks[0].Elapsed)
	assert.True(t, rec.Blocks[0].Completed)

	assert.Equal(t, "Intervals", rec.Blocks[1].Name)
	assert.Equal(t, 10*time.Second, rec.Blocks[1].Elapsed)
	assert.Equal(t, 2, rec.Blocks[1].Round)
	assert.True(t, rec.Blocks[1].Completed)
	assert.Equal(t, 20*time.Second, rec.TotalElapsed())

	// commands after the end are ignored
	h.m.Start()
	assert.Equal(t, StatusCompleted, h.m.GetState().Status)
	assert.Equal(t, 0, h.clock.ActiveTickers())
}

func TestManager_WithoutAutoAdvanceWaitsInReady(t *testing.T) {
	h := newHarness(t, false, nil)
	require.NoError(t, h.m.Load(twoBlocks()))
	h.m.Start()

	h.clock.Advance(10 * time.Second)
	s := h.waitFor(t, func(s State) bool { return s.BlockIdx == 1 })
	assert.Equal(t, StatusReady, s.Status)
	assert.False(t, s.Timer.Started)
	require.Len(t, s.Results, 1)
	assert.True(t, s.Results[0].Completed)

	// time spent between blocks is not counted
	h.clock.Advance(time.Minute)
	h.m.Start()
	h.clock.Advance(10 * time.Second)
	s = h.waitFor(t, sessionDone)
	assert.Equal(t, 10*time.Second, s.Results[1].Elapsed)
}

func TestManager_PauseResume(t *testing.T) {
	h := newHarness(t, false, nil)
	require.NoError(t, h.m.Load(twoBlocks()))
	h.m.Start()

	h.clock.Advance(3 * time.Second)
	h.waitFor(t, func(s State) bool { return s.Timer.Elapsed == 3*time.Second })
	h.m.Pause()
	assert.Equal(t, StatusPaused, h.m.GetState().Status)

	h.clock.Advance(time.Hour)
	h.m.Start()
	s := h.m.GetState()
	assert.Equal(t, StatusRunning, s.Status)
	assert.Equal(t, 3*time.Second, s.Timer.Elapsed)
	assert.Equal(t, 7*time.Second, s.Timer.Time)

	h.clock.Advance(7 * time.Second)
	h.waitFor(t, func(s State) bool { return s.BlockIdx == 1 })
}

func TestManager_FinishAndSkip(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockResultSink(ctrl)
	saved := make(chan workout.SessionRecord, 1)
	sink.EXPECT().SaveSession(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec workout.SessionRecord) error {
			saved <- rec
			return nil
		})

	h := newHarness(t, true, sink)
	w := &workout.Workout{
		Name: "Fran",
		Blocks: []workout.Block{
			{Kind: workout.KindForTime, DurationSeconds: 600},
			{Name: "Cool-down", Kind: workout.KindFree},
		},
	}
	require.NoError(t, h.m.Load(w))
	h.m.Start()
	h.clock.Advance(5 * time.Second)

	h.m.Finish()
	s := h.m.GetState()
	assert.Equal(t, 1, s.BlockIdx)
	assert.Equal(t, StatusRunning, s.Status, "a running block hands over to the next one")
	require.Len(t, s.Results, 1)
	assert.Equal(t, 5*time.Second, s.Results[0].Elapsed)
	assert.Equal(t, 595*time.Second, s.Results[0].Remaining)
	assert.False(t, s.Results[0].Completed)
	assert.False(t, s.Results[0].Skipped)

	h.clock.Advance(2 * time.Second)
	h.m.SkipBlock()
	s = h.m.GetState()
	assert.Equal(t, StatusCompleted, s.Status)
	require.Len(t, s.Results, 2)
	assert.True(t, s.Results[1].Skipped)
	assert.Equal(t, 2*time.Second, s.Results[1].Elapsed)

	rec := <-saved
	assert.False(t, rec.Completed)
	assert.Equal(t, 7*time.Second, rec.TotalElapsed())
}

func TestManager_FinishBeforeStartIgnored(t *testing.T) {
	h := newHarness(t, false, nil)
	require.NoError(t, h.m.Load(twoBlocks()))

	h.m.Finish()
	s := h.m.GetState()
	assert.Equal(t, 0, s.BlockIdx)
	assert.Equal(t, StatusReady, s.Status)
	assert.Empty(t, s.Results)
}

func TestManager_NothingRunIsNotRecorded(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockResultSink(ctrl)
	sink.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Times(0)

	h := newHarness(t, false, sink)
	require.NoError(t, h.m.Load(twoBlocks()))
	h.m.SkipBlock()
	h.m.SkipBlock()

	s := h.m.GetState()
	assert.Equal(t, StatusCompleted, s.Status)
	require.Len(t, s.Results, 2)
	assert.True(t, s.Results[0].Skipped)
	assert.True(t, s.Results[1].Skipped)
}

func TestManager_SinkErrorKeepsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockResultSink(ctrl)
	sink.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	h := newHarness(t, false, sink)
	require.NoError(t, h.m.Load(&workout.Workout{Name: "One", Blocks: []workout.Block{{Kind: workout.KindFree}}}))
	h.m.Start()
	h.clock.Advance(30 * time.Second)
	h.m.Finish()

	s := h.m.GetState()
	assert.Equal(t, StatusCompleted, s.Status)
	assert.True(t, s.Timer.Finished)
	assert.Equal(t, 30*time.Second, s.Results[0].Elapsed)
}

func TestManager_IncrementRound(t *testing.T) {
	h := newHarness(t, false, nil)
	require.NoError(t, h.m.Load(twoBlocks()))

	h.m.Start()
	h.m.IncrementRound()
	h.m.IncrementRound()
	assert.Equal(t, 2, h.m.GetState().Timer.ManualRounds)

	h.clock.Advance(10 * time.Second)
	s := h.waitFor(t, func(s State) bool { return s.BlockIdx == 1 })
	assert.Equal(t, 2, s.Results[0].ManualRounds)

	// EMOM counts its own rounds
	h.m.Start()
	h.m.IncrementRound()
	assert.Equal(t, 0, h.m.GetState().Timer.ManualRounds)
}

func TestManager_Reset(t *testing.T) {
	h := newHarness(t, true, nil)
	require.NoError(t, h.m.Load(twoBlocks()))
	h.m.Start()
	h.clock.Advance(10 * time.Second)
	h.waitFor(t, func(s State) bool { return s.BlockIdx == 1 && s.Status == StatusRunning })

	h.m.Reset()
	s := h.m.GetState()
	assert.Equal(t, StatusReady, s.Status)
	assert.Equal(t, 0, s.BlockIdx)
	assert.Empty(t, s.Results)
	assert.False(t, s.Timer.Started)
	assert.Equal(t, 0, h.clock.ActiveTickers())

	// reset also works once the session is over
	h.m.SkipBlock()
	h.m.SkipBlock()
	require.Equal(t, StatusCompleted, h.m.GetState().Status)
	h.m.Reset()
	assert.Equal(t, StatusReady, h.m.GetState().Status)
}

func TestManager_ListenReplaysCurrentState(t *testing.T) {
	h := newHarness(t, false, nil)
	require.NoError(t, h.m.Load(twoBlocks()))

	late := make(chan State, 1)
	unregister := h.m.ListenToState(late)
	defer unregister()

	select {
	case s := <-late:
		assert.Equal(t, StatusReady, s.Status)
		assert.Equal(t, "Test", s.WorkoutName)
	case <-time.After(time.Second):
		require.FailNow(t, "no replayed state")
	}
}

func TestManager_SlowListenerEndsOnNewestState(t *testing.T) {
	h := newHarness(t, false, nil)
	require.NoError(t, h.m.Load(twoBlocks()))

	// the replayed Ready state sits unread while the session moves on
	late := make(chan State, 1)
	unregister := h.m.ListenToState(late)
	defer unregister()

	h.m.Start()
	h.m.SkipBlock()
	h.m.SkipBlock()
	require.Equal(t, StatusCompleted, h.m.GetState().Status)

	var last State
	require.Eventually(t, func() bool {
		select {
		case s := <-late:
			last = s
		default:
		}
		return last.Status == StatusCompleted
	}, time.Second, 5*time.Millisecond)
}

func TestManager_Shutdown(t *testing.T) {
	h := newHarness(t, false, nil)
	require.NoError(t, h.m.Load(twoBlocks()))
	h.m.Start()

	h.m.Shutdown()
	h.m.Shutdown()
	assert.Equal(t, 0, h.clock.ActiveTickers())

	done := make(chan struct{})
	go func() {
		h.m.Start()
		h.m.Pause()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "commands block after shutdown")
	}
}
