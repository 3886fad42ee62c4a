package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"github.com/lowaak/wod-timer/internal/workout"
)

var errUsage = errors.New("bad arguments")

func newRunCmd() *cobra.Command {
	var exercises []string
	cmd := &cobra.Command{
		Use:   "run <kind> [args]",
		Short: "Run a single ad-hoc block",
		Long: `Run a single block without saving a workout first.

  run amrap <duration>                  e.g. run amrap 20m
  run fortime <cap>                     e.g. run fortime 12m
  run emom <rounds> <round>             e.g. run emom 10 1m
  run tabata [rounds [work [rest]]]     defaults 8 20s 10s
  run free

Durations accept Go syntax (90s, 1m30s) or plain seconds.`,
		Args: cobra.RangeArgs(1, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := workout.ParseBlockKind(args[0])
			if err != nil {
				return err
			}
			block, err := buildBlock(kind, args[1:])
			if err != nil {
				return err
			}
			block.Exercises = exercises
			w := &workout.Workout{Name: block.Summary(), Blocks: []workout.Block{block}}
			if err := w.Validate(); err != nil {
				return err
			}
			return runTUI(cmd, w)
		},
	}
	cmd.Flags().StringSliceVarP(&exercises, "exercise", "e", nil, "exercise shown next to the clock (repeatable)")
	return cmd
}

// buildBlock turns the positional arguments of run into a block
func buildBlock(kind workout.BlockKind, args []string) (workout.Block, error) {
	block := workout.Block{Kind: kind}
	var err error

	switch kind {
	case workout.KindAMRAP, workout.KindForTime:
		if len(args) != 1 {
			return block, fmt.Errorf("%w: %s takes one duration", errUsage, kind)
		}
		block.DurationSeconds, err = parseSeconds(args[0])

	case workout.KindEMOM:
		if len(args) != 2 {
			return block, fmt.Errorf("%w: emom takes a round count and a round duration", errUsage)
		}
		if block.Rounds, err = strconv.Atoi(args[0]); err != nil {
			return block, fmt.Errorf("%w: rounds %q: %v", errUsage, args[0], err)
		}
		block.RoundSeconds, err = parseSeconds(args[1])

	case workout.KindTabata:
		if len(args) > 3 {
			return block, fmt.Errorf("%w: tabata takes at most rounds, work and rest", errUsage)
		}
		block.Rounds, block.WorkSeconds, block.RestSeconds = 8, 20, 10
		if len(args) > 0 {
			if block.Rounds, err = strconv.Atoi(args[0]); err != nil {
				return block, fmt.Errorf("%w: rounds %q: %v", errUsage, args[0], err)
			}
		}
		if len(args) > 1 {
			if block.WorkSeconds, err = parseSeconds(args[1]); err != nil {
				return block, err
			}
		}
		if len(args) > 2 {
			block.RestSeconds, err = parseSeconds(args[2])
		}

	case workout.KindFree:
		if len(args) != 0 {
			return block, fmt.Errorf("%w: free takes no arguments", errUsage)
		}
	}
	if err != nil {
		return block, err
	}
	return block, block.Validate()
}

// parseSeconds accepts "90", "90s" or "1m30s". Fractions of a second are refused.
func parseSeconds(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: duration %q: %v", errUsage, s, err)
	}
	if d%time.Second != 0 {
		return 0, fmt.Errorf("%w: duration %q is not a whole number of seconds", errUsage, s)
	}
	n, err := safecast.Conv[int](int64(d / time.Second))
	if err != nil {
		return 0, fmt.Errorf("%w: duration %q: %v", errUsage, s, err)
	}
	return n, nil
}
