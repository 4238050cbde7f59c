package utils

import (
	"fmt"
	"math"
	"time"
)

// Terminal colors used by the CLI output.
const (
	SuccessColor = "\x1b[92m"
	ErrorColor   = "\x1b[31m"
	DefaultColor = "\x1b[39m"
)

// FormatTime formats time.Duration output to a human readable value.
func FormatTime(d time.Duration) string {
	if d.Seconds() < 1.0 {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d.Seconds() < 60.0 {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d.Minutes() < 60.0 {
		remainingSeconds := math.Mod(d.Seconds(), 60)
		return fmt.Sprintf("%dm:%ds", int64(d.Minutes()), int64(remainingSeconds))
	}
	if d.Hours() < 24.0 {
		remainingMinutes := math.Mod(d.Minutes(), 60)
		remainingSeconds := math.Mod(d.Seconds(), 60)
		return fmt.Sprintf("%dh:%dm:%ds",
			int64(d.Hours()), int64(remainingMinutes), int64(remainingSeconds))
	}
	remainingHours := math.Mod(d.Hours(), 24)
	remainingMinutes := math.Mod(d.Minutes(), 60)
	remainingSeconds := math.Mod(d.Seconds(), 60)
	return fmt.Sprintf("%dd:%dh:%dm:%ds",
		int64(d.Hours()/24), int64(remainingHours),
		int64(remainingMinutes), int64(remainingSeconds))
}
