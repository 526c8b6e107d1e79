package model

import (
	"fmt"
	"math"
)

// FormatClock renders seconds as m:ss, or h:mm:ss from one hour up.
// Negative and NaN inputs render as 0:00.
func FormatClock(totalSeconds float64) string {
	if math.IsNaN(totalSeconds) || totalSeconds < 0 {
		return "0:00"
	}

	total := int(math.Floor(totalSeconds))
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FormatTimestamp renders seconds as MM:SS with minutes uncapped.
func FormatTimestamp(totalSeconds float64) string {
	if math.IsNaN(totalSeconds) || totalSeconds < 0 {
		return "00:00"
	}
	total := int(math.Floor(totalSeconds))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
