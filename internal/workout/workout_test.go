package workout

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/wod-timer/internal/timer"
)

func TestBlock_Validate(t *testing.T) {
	tests := []struct {
		name    string
		block   Block
		wantErr bool
	}{
		{"amrap", Block{Kind: KindAMRAP, DurationSeconds: 600}, false},
		{"amrap without duration", Block{Kind: KindAMRAP}, true},
		{"fortime", Block{Kind: KindForTime, DurationSeconds: 900}, false},
		{"emom", Block{Kind: KindEMOM, Rounds: 10, RoundSeconds: 60}, false},
		{"emom without rounds", Block{Kind: KindEMOM, RoundSeconds: 60}, true},
		{"emom without round length", Block{Kind: KindEMOM, Rounds: 10}, true},
		{"tabata", Block{Kind: KindTabata, Rounds: 8, WorkSeconds: 20, RestSeconds: 10}, false},
		{"tabata without rest", Block{Kind: KindTabata, Rounds: 8, WorkSeconds: 20}, false},
		{"tabata negative rest", Block{Kind: KindTabata, Rounds: 8, WorkSeconds: 20, RestSeconds: -1}, true},
		{"free", Block{Kind: KindFree}, false},
		{"unknown kind", Block{Kind: "crossfit"}, true},
		{"too long", Block{Kind: KindAMRAP, DurationSeconds: MaxBlockSeconds + 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.block.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidWorkout))
		})
	}
}

func TestBlock_ValidateWrapsTimerError(t *testing.T) {
	err := Block{Kind: KindTabata, Rounds: 0, WorkSeconds: 20}.Validate()
	assert.ErrorIs(t, err, ErrInvalidWorkout)
	assert.ErrorIs(t, err, timer.ErrInvalidConfig)
}

func TestBlock_NewTimer(t *testing.T) {
	tests := []struct {
		block Block
		kind  timer.Kind
		time  time.Duration
	}{
		{Block{Kind: KindAMRAP, DurationSeconds: 720}, timer.KindCountdown, 12 * time.Minute},
		{Block{Kind: KindForTime, DurationSeconds: 600}, timer.KindCountdown, 10 * time.Minute},
		{Block{Kind: KindEMOM, Rounds: 10, RoundSeconds: 60}, timer.KindRounds, 10 * time.Minute},
		{Block{Kind: KindTabata, Rounds: 8, WorkSeconds: 20, RestSeconds: 10}, timer.KindTabata, 20 * time.Second},
		{Block{Kind: KindFree}, timer.KindStopwatch, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.block.Kind), func(t *testing.T) {
			tm, err := tt.block.NewTimer(timer.Options{})
			require.NoError(t, err)
			defer tm.Destroy()

			assert.Equal(t, tt.kind, tm.Kind())
			assert.Equal(t, tt.time, tm.State().Time)
			assert.False(t, tm.State().Started)
		})
	}

	_, err := Block{Kind: KindEMOM}.NewTimer(timer.Options{})
	assert.ErrorIs(t, err, ErrInvalidWorkout)
}

func TestBlock_SummaryAndDuration(t *testing.T) {
	tests := []struct {
		block    Block
		summary  string
		duration time.Duration
	}{
		{Block{Kind: KindAMRAP, DurationSeconds: 1200}, "AMRAP 20:00", 20 * time.Minute},
		{Block{Kind: KindForTime, DurationSeconds: 600}, "For Time (cap 10:00)", 10 * time.Minute},
		{Block{Kind: KindEMOM, Rounds: 10, RoundSeconds: 90}, "EMOM 10 x 01:30", 15 * time.Minute},
		{Block{Kind: KindTabata, Rounds: 8, WorkSeconds: 20, RestSeconds: 10}, "Tabata 8 x 20s/10s", 230 * time.Second},
		{Block{Kind: KindFree}, "Free", 0},
	}
	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			assert.Equal(t, tt.summary, tt.block.Summary())
			assert.Equal(t, tt.summary, tt.block.Title())
			assert.Equal(t, tt.duration, tt.block.Duration())
		})
	}

	named := Block{Name: "Warm-up", Kind: KindFree}
	assert.Equal(t, "Warm-up", named.Title())
}

func TestParseBlockKind(t *testing.T) {
	tests := map[string]BlockKind{
		"amrap":     KindAMRAP,
		" AMRAP ":   KindAMRAP,
		"fortime":   KindForTime,
		"for-time":  KindForTime,
		"emom":      KindEMOM,
		"Tabata":    KindTabata,
		"free":      KindFree,
		"stopwatch": KindFree,
	}
	for in, want := range tests {
		got, err := ParseBlockKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseBlockKind("chipper")
	assert.ErrorIs(t, err, ErrInvalidWorkout)
}

func TestWorkout_Validate(t *testing.T) {
	valid := Workout{Name: "Test", Blocks: []Block{{Kind: KindFree}}}
	assert.NoError(t, valid.Validate())

	noName := Workout{Blocks: []Block{{Kind: KindFree}}}
	assert.ErrorIs(t, noName.Validate(), ErrInvalidWorkout)

	noBlocks := Workout{Name: "Empty"}
	assert.ErrorIs(t, noBlocks.Validate(), ErrInvalidWorkout)

	badBlock := Workout{Name: "Bad", Blocks: []Block{{Kind: KindFree}, {Kind: KindEMOM}}}
	err := badBlock.Validate()
	assert.ErrorIs(t, err, ErrInvalidWorkout)
	assert.Contains(t, err.Error(), "block 2")
}

func TestPresets(t *testing.T) {
	ids := make(map[string]bool)
	for _, w := range Presets {
		t.Run(w.Name, func(t *testing.T) {
			assert.NoError(t, w.Validate())
			assert.NotEmpty(t, w.ID)
			assert.False(t, ids[w.ID], "duplicate preset id %s", w.ID)
			ids[w.ID] = true
		})
	}

	cindy, ok := FindPreset("preset-cindy")
	require.True(t, ok)
	assert.Equal(t, 20*time.Minute, cindy.TotalDuration())

	_, ok = FindPreset("nope")
	assert.False(t, ok)
}

func TestNewBlockResult(t *testing.T) {
	b := Block{Name: "Cindy", Kind: KindAMRAP, DurationSeconds: 1200}
	r := timer.Result{Kind: timer.KindCountdown, Elapsed: 20 * time.Minute, ManualRounds: 17, Completed: true}

	assert.Equal(t, BlockResult{
		Name:         "Cindy",
		Kind:         KindAMRAP,
		Elapsed:      20 * time.Minute,
		ManualRounds: 17,
		Completed:    true,
	}, NewBlockResult(b, r))

	rec := SessionRecord{Blocks: []BlockResult{{Elapsed: time.Minute}, {Elapsed: 2 * time.Minute}}}
	assert.Equal(t, 3*time.Minute, rec.TotalElapsed())
}
