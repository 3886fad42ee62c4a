package timer

import (
	"fmt"
	"time"
)

// FormatClock renders d as MM:SS, dropping partial seconds. Minutes do not wrap at 60.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return formatSeconds(int64(d / time.Second))
}

// FormatCountdown renders d as MM:SS, rounding partial seconds up so a countdown
// reads 00:01 until it actually reaches zero.
func FormatCountdown(d time.Duration) string {
	return formatSeconds(ceilSeconds(d))
}

// FormatCentis renders d as MM:SS.cc
func FormatCentis(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%s.%02d", formatSeconds(ms/1000), (ms%1000)/10)
}

func formatSeconds(total int64) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
