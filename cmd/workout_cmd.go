package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lowaak/wod-timer/internal/storage"
	"github.com/lowaak/wod-timer/internal/workout"
)

func newWorkoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Manage saved workouts",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List saved workouts and presets",
			Args:  cobra.NoArgs,
			RunE:  runWorkoutList,
		},
		&cobra.Command{
			Use:   "presets",
			Short: "List the built-in workouts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				for _, w := range workout.Presets {
					printWorkoutLine(cmd.OutOrStdout(), w)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show the blocks of a workout",
			Args:  cobra.ExactArgs(1),
			RunE:  runWorkoutShow,
		},
		&cobra.Command{
			Use:   "import <plan-file>",
			Short: "Save every workout of a .toml or .yaml plan file",
			Args:  cobra.ExactArgs(1),
			RunE:  runWorkoutImport,
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a saved workout",
			Args:  cobra.ExactArgs(1),
			RunE:  runWorkoutDelete,
		},
		&cobra.Command{
			Use:   "run <id>",
			Short: "Open the timer with a workout loaded",
			Args:  cobra.ExactArgs(1),
			RunE:  runWorkoutRun,
		},
	)
	return cmd
}

// findWorkout looks in the store first, then in the presets
func findWorkout(store *storage.Store, id string) (*workout.Workout, error) {
	w, err := store.Get(id)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, storage.ErrNotFound) && !errors.Is(err, storage.ErrInvalidID) {
		return nil, err
	}
	if preset, ok := workout.FindPreset(id); ok {
		return &preset, nil
	}
	return nil, fmt.Errorf("workout %q: %w", id, storage.ErrNotFound)
}

func runWorkoutList(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer a.Close()

	stored, err := a.store.List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(stored) == 0 {
		_, _ = noticeColor.Fprintln(out, "No saved workouts. Import a plan with: wodtimer workout import <file>")
	}
	for _, w := range stored {
		printWorkoutLine(out, w)
	}
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Presets:")
	for _, w := range workout.Presets {
		printWorkoutLine(out, w)
	}
	return nil
}

func runWorkoutShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer a.Close()

	w, err := findWorkout(a.store, args[0])
	if err != nil {
		return err
	}
	printWorkoutDetails(cmd.OutOrStdout(), *w)
	return nil
}

func runWorkoutImport(cmd *cobra.Command, args []string) error {
	workouts, err := workout.LoadPlanFile(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer a.Close()

	for i := range workouts {
		if err := a.store.Save(context.Background(), &workouts[i]); err != nil {
			return err
		}
		_, _ = okColor.Fprint(cmd.OutOrStdout(), "saved ")
		printWorkoutLine(cmd.OutOrStdout(), workouts[i])
	}
	return nil
}

func runWorkoutDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.Delete(context.Background(), args[0]); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
	return nil
}

func runWorkoutRun(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, io.Discard)
	if err != nil {
		return err
	}
	w, err := findWorkout(a.store, args[0])
	a.Close()
	if err != nil {
		return err
	}
	return runTUI(cmd, w)
}
