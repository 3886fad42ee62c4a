package main

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/wod-timer/internal/storage"
	"github.com/lowaak/wod-timer/internal/workout"
)

// isolate keeps the user's config and environment out of the command under test
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	color.NoColor = true
	return filepath.Join(home, "data")
}

func execute(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--data-dir", dataDir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildBlock(t *testing.T) {
	tests := []struct {
		name    string
		kind    workout.BlockKind
		args    []string
		want    workout.Block
		wantErr bool
	}{
		{"amrap minutes", workout.KindAMRAP, []string{"20m"}, workout.Block{Kind: workout.KindAMRAP, DurationSeconds: 1200}, false},
		{"fortime seconds", workout.KindForTime, []string{"600"}, workout.Block{Kind: workout.KindForTime, DurationSeconds: 600}, false},
		{"emom", workout.KindEMOM, []string{"10", "1m"}, workout.Block{Kind: workout.KindEMOM, Rounds: 10, RoundSeconds: 60}, false},
		{"tabata defaults", workout.KindTabata, nil, workout.Block{Kind: workout.KindTabata, Rounds: 8, WorkSeconds: 20, RestSeconds: 10}, false},
		{"tabata custom", workout.KindTabata, []string{"6", "40s", "0"}, workout.Block{Kind: workout.KindTabata, Rounds: 6, WorkSeconds: 40}, false},
		{"free", workout.KindFree, nil, workout.Block{Kind: workout.KindFree}, false},
		{"amrap missing duration", workout.KindAMRAP, nil, workout.Block{}, true},
		{"amrap zero", workout.KindAMRAP, []string{"0"}, workout.Block{}, true},
		{"emom bad rounds", workout.KindEMOM, []string{"ten", "60"}, workout.Block{}, true},
		{"emom zero rounds", workout.KindEMOM, []string{"0", "60"}, workout.Block{}, true},
		{"tabata too many", workout.KindTabata, []string{"8", "20", "10", "5"}, workout.Block{}, true},
		{"free with args", workout.KindFree, []string{"5m"}, workout.Block{}, true},
		{"fraction of a second", workout.KindAMRAP, []string{"1.5s"}, workout.Block{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildBlock(tt.kind, tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSeconds(t *testing.T) {
	n, err := parseSeconds("90")
	require.NoError(t, err)
	assert.Equal(t, 90, n)

	n, err = parseSeconds("1m30s")
	require.NoError(t, err)
	assert.Equal(t, 90, n)

	_, err = parseSeconds("soon")
	assert.ErrorIs(t, err, errUsage)
}

const planYAML = `
workouts:
  - id: monday
    name: Monday
    blocks:
      - kind: emom
        rounds: 12
        round_seconds: 60
        exercises: [5 deadlifts]
  - id: tuesday
    name: Tuesday
    blocks:
      - kind: amrap
        duration_seconds: 900
`

func TestWorkoutCommands(t *testing.T) {
	dataDir := isolate(t)
	plan := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(plan, []byte(planYAML), 0o644))

	out, err := execute(t, dataDir, "workout", "import", plan)
	require.NoError(t, err)
	assert.Contains(t, out, "saved Monday")
	assert.Contains(t, out, "saved Tuesday")

	out, err = execute(t, dataDir, "workout", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Monday  [monday]  1 blocks  12:00")
	assert.Contains(t, out, "Tuesday  [tuesday]  1 blocks  15:00")
	assert.Contains(t, out, "Presets:")
	assert.Contains(t, out, "Cindy")

	out, err = execute(t, dataDir, "workout", "show", "monday")
	require.NoError(t, err)
	assert.Contains(t, out, "id: monday")
	assert.Contains(t, out, "- 5 deadlifts")

	out, err = execute(t, dataDir, "workout", "delete", "monday")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted monday")

	_, err = execute(t, dataDir, "workout", "show", "monday")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = execute(t, dataDir, "workout", "delete", "monday")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestWorkoutShow_Preset(t *testing.T) {
	dataDir := isolate(t)

	out, err := execute(t, dataDir, "workout", "show", "preset-cindy")
	require.NoError(t, err)
	assert.Contains(t, out, "Cindy")
	assert.Contains(t, out, "length: 20:00")
}

func TestWorkoutImport_BadPlan(t *testing.T) {
	dataDir := isolate(t)
	plan := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(plan, []byte("workouts: []\n"), 0o644))

	_, err := execute(t, dataDir, "workout", "import", plan)
	assert.ErrorIs(t, err, workout.ErrInvalidWorkout)
}

func TestWorkoutList_Empty(t *testing.T) {
	dataDir := isolate(t)

	out, err := execute(t, dataDir, "workout", "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "Classic Tabata")

	out, err = execute(t, dataDir, "workout", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved workouts")
}

func TestHistory(t *testing.T) {
	dataDir := isolate(t)

	out, err := execute(t, dataDir, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded yet")

	store, err := storage.New(dataDir, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	for i, name := range []string{"Cindy", "Fran", "Tabata"} {
		rec := workout.SessionRecord{
			WorkoutName: name,
			StartedAt:   start.Add(time.Duration(i) * time.Hour),
			EndedAt:     start.Add(time.Duration(i)*time.Hour + 20*time.Minute),
			Completed:   i != 1,
			Blocks: []workout.BlockResult{
				{Name: name, Kind: workout.KindAMRAP, Elapsed: 20 * time.Minute, ManualRounds: 3, Skipped: i == 1},
			},
		}
		require.NoError(t, store.SaveSession(context.Background(), rec))
	}

	out, err = execute(t, dataDir, "history", "--limit", "2", "--details")
	require.NoError(t, err)
	assert.NotContains(t, out, "Cindy")
	assert.Contains(t, out, "2026-03-01 10:00  Fran  20:00  incomplete")
	assert.Contains(t, out, "2026-03-01 11:00  Tabata  20:00  completed")
	assert.Contains(t, out, "1. Fran  20:00  3 rounds  skipped")
}

func TestRun_RejectsBadArguments(t *testing.T) {
	dataDir := isolate(t)

	_, err := execute(t, dataDir, "run", "yoga")
	assert.ErrorIs(t, err, workout.ErrInvalidWorkout)

	_, err = execute(t, dataDir, "run", "emom", "10")
	assert.ErrorIs(t, err, errUsage)
}
