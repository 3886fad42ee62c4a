package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/lowaak/wod-timer/internal/timer"
	"github.com/lowaak/wod-timer/internal/workout"
)

var (
	nameColor   = color.New(color.FgCyan, color.Bold)
	idColor     = color.New(color.FgHiBlack)
	kindColor   = color.New(color.FgYellow)
	okColor     = color.New(color.FgGreen, color.Bold)
	failColor   = color.New(color.FgRed, color.Bold)
	noticeColor = color.New(color.FgYellow)
)

func formatLength(d time.Duration) string {
	if d <= 0 {
		return "open"
	}
	return timer.FormatClock(d)
}

func printWorkoutLine(w io.Writer, wo workout.Workout) {
	_, _ = nameColor.Fprint(w, wo.Name)
	_, _ = fmt.Fprint(w, "  ")
	_, _ = idColor.Fprintf(w, "[%s]", wo.ID)
	_, _ = fmt.Fprintf(w, "  %d blocks  %s\n", len(wo.Blocks), formatLength(wo.TotalDuration()))
}

func printWorkoutDetails(w io.Writer, wo workout.Workout) {
	_, _ = nameColor.Fprintln(w, wo.Name)
	_, _ = idColor.Fprintf(w, "id: %s\n", wo.ID)
	if wo.Notes != "" {
		_, _ = fmt.Fprintln(w, wo.Notes)
	}
	_, _ = fmt.Fprintf(w, "length: %s\n\n", formatLength(wo.TotalDuration()))
	for i, b := range wo.Blocks {
		_, _ = fmt.Fprintf(w, "%2d. ", i+1)
		_, _ = kindColor.Fprint(w, b.Kind.DisplayName())
		_, _ = fmt.Fprintf(w, "  %s\n", b.Title())
		for _, ex := range b.Exercises {
			_, _ = fmt.Fprintf(w, "      - %s\n", ex)
		}
	}
}

func printSessionLine(w io.Writer, rec workout.SessionRecord) {
	_, _ = fmt.Fprintf(w, "%s  ", rec.StartedAt.Local().Format("2006-01-02 15:04"))
	_, _ = nameColor.Fprint(w, rec.WorkoutName)
	_, _ = fmt.Fprintf(w, "  %s  ", timer.FormatClock(rec.TotalElapsed()))
	if rec.Completed {
		_, _ = okColor.Fprintln(w, "completed")
	} else {
		_, _ = failColor.Fprintln(w, "incomplete")
	}
}

func printSessionBlocks(w io.Writer, rec workout.SessionRecord) {
	for i, b := range rec.Blocks {
		_, _ = fmt.Fprintf(w, "      %d. %s  %s", i+1, b.Name, timer.FormatClock(b.Elapsed))
		if b.ManualRounds > 0 {
			_, _ = fmt.Fprintf(w, "  %d rounds", b.ManualRounds)
		}
		if b.Skipped {
			_, _ = noticeColor.Fprint(w, "  skipped")
		}
		_, _ = fmt.Fprintln(w)
	}
}
