package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lowaak/wod-timer/internal/timer"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func bounded(kind timer.Kind, d time.Duration) timer.InternalState {
	return timer.InternalState{
		Kind:           kind,
		Started:        true,
		Running:        true,
		StartedAt:      t0,
		PhaseStartedAt: t0,
		PhaseDuration:  d,
		TargetEnd:      t0.Add(d),
	}
}

func TestNewClockFace_Countdown(t *testing.T) {
	face := NewClockFace(bounded(timer.KindCountdown, time.Minute), t0.Add(15500*time.Millisecond))
	assert.Equal(t, ClockFace{Main: "00:44.50"}, face)
}

func TestNewClockFace_Rounds(t *testing.T) {
	in := bounded(timer.KindRounds, 3*time.Minute)
	in.Rounds = 3
	in.RoundDuration = time.Minute

	face := NewClockFace(in, t0.Add(70*time.Second))
	assert.Equal(t, "00:50.00", face.Main)
	assert.Equal(t, "Round 2/3  total 01:50", face.Detail)
	assert.False(t, face.Work)
}

func TestNewClockFace_Tabata(t *testing.T) {
	in := bounded(timer.KindTabata, 20*time.Second)
	in.Rounds = 8
	in.Round = 1
	in.WorkPhase = true

	face := NewClockFace(in, t0.Add(5*time.Second))
	assert.Equal(t, ClockFace{Main: "00:15.00", Detail: "WORK  1/8", Work: true}, face)

	in.WorkPhase = false
	face = NewClockFace(in, t0.Add(5*time.Second))
	assert.Equal(t, "REST  1/8", face.Detail)
	assert.False(t, face.Work)
}

func TestNewClockFace_Stopwatch(t *testing.T) {
	in := timer.InternalState{Kind: timer.KindStopwatch, Started: true, Running: true, StartedAt: t0, PhaseStartedAt: t0}
	face := NewClockFace(in, t0.Add(61250*time.Millisecond))
	assert.Equal(t, ClockFace{Main: "01:01.25"}, face)
}

func TestNewClockFace_Paused(t *testing.T) {
	in := bounded(timer.KindCountdown, time.Minute)
	in.Running = false
	in.Paused = true
	in.PausedAt = t0.Add(10 * time.Second)

	face := NewClockFace(in, t0.Add(40*time.Second))
	assert.Equal(t, "00:50.00", face.Main)
}

func TestRenderBig(t *testing.T) {
	assert.Equal(t, "       _ \n  | o | |\n  | o |_|", RenderBig("1:0"))
	assert.Equal(t, "   \n   \n   ", RenderBig("x"))
	assert.Equal(t, "\n\n", RenderBig(""))
}
