package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/lowaak/wod-timer/internal/timer"
)

// ClockFace is what the big clock shows at one instant
type ClockFace struct {
	Main   string // MM:SS.cc
	Detail string // round or phase line, empty when the kind has none
	Work   bool   // Tabata work phase
}

// NewClockFace resamples the timer bookkeeping at now. Between two published
// snapshots this keeps the clock moving at the display's own refresh rate.
func NewClockFace(in timer.InternalState, now time.Time) ClockFace {
	switch in.Kind {
	case timer.KindCountdown:
		return ClockFace{Main: timer.FormatCentis(in.RemainingAt(now))}

	case timer.KindRounds:
		return ClockFace{
			Main: timer.FormatCentis(in.RoundRemainingAt(now)),
			Detail: fmt.Sprintf("Round %d/%d  total %s",
				in.RoundAt(now), in.Rounds, timer.FormatCountdown(in.RemainingAt(now))),
		}

	case timer.KindTabata:
		phase := "REST"
		if in.WorkPhase {
			phase = "WORK"
		}
		return ClockFace{
			Main:   timer.FormatCentis(in.RemainingAt(now)),
			Detail: fmt.Sprintf("%s  %d/%d", phase, in.RoundAt(now), in.Rounds),
			Work:   in.WorkPhase,
		}

	case timer.KindStopwatch:
		return ClockFace{Main: timer.FormatCentis(in.ElapsedAt(now))}
	}
	return ClockFace{Main: timer.FormatCentis(0)}
}

// three-row segment glyphs for the big clock
var bigGlyphs = map[rune][3]string{
	'0': {" _ ", "| |", "|_|"},
	'1': {"   ", "  |", "  |"},
	'2': {" _ ", " _|", "|_ "},
	'3': {" _ ", " _|", " _|"},
	'4': {"   ", "|_|", "  |"},
	'5': {" _ ", "|_ ", " _|"},
	'6': {" _ ", "|_ ", "|_|"},
	'7': {" _ ", "  |", "  |"},
	'8': {" _ ", "|_|", "|_|"},
	'9': {" _ ", "|_|", " _|"},
	':': {" ", "o", "o"},
	'.': {" ", " ", "o"},
}

// RenderBig draws s with the big clock glyphs. Unknown runes become blanks.
func RenderBig(s string) string {
	var rows [3]strings.Builder
	for i, r := range s {
		glyph, ok := bigGlyphs[r]
		if !ok {
			glyph = [3]string{"   ", "   ", "   "}
		}
		for row := range rows {
			if i > 0 {
				rows[row].WriteByte(' ')
			}
			rows[row].WriteString(glyph[row])
		}
	}
	return rows[0].String() + "\n" + rows[1].String() + "\n" + rows[2].String()
}
