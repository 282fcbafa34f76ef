package progress

import (
	"fmt"
	"math"
	"time"
)

// Status texts
const (
	CalculatingText = "Calculating..."
	RemainingFormat = "Time Remaining: %d minutes %d seconds"
)

// Estimate derives the remaining download time from the latest percentage,
// the stream's total size and the time elapsed since the session started.
// It reports false when elapsed or the downloaded byte count is not positive.
func Estimate(percent float64, totalSize int64, elapsed time.Duration) (time.Duration, bool) {
	downloaded := percent / 100 * float64(totalSize)
	seconds := elapsed.Seconds()
	if seconds <= 0 || downloaded <= 0 {
		return 0, false
	}

	speed := downloaded / seconds
	remaining := (float64(totalSize) - downloaded) / speed
	if remaining < 0 {
		remaining = 0
	}
	return time.Duration(math.Floor(remaining)) * time.Second, true
}

// FormatRemaining renders d as whole minutes and whole seconds
func FormatRemaining(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf(RemainingFormat, total/60, total%60)
}
