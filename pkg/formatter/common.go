package formatter

import (
	"fmt"
	"io"
	"time"
)

// PrintScanSummary prints the scan timestamp, duration and volume count
func PrintScanSummary(w io.Writer, scanStartTime time.Time, scanDuration time.Duration, regions, volumes int) {
	// Format the scan time
	timeStr := scanStartTime.Format("2006-01-02 15:04:05")

	// Format the duration
	durationStr := fmt.Sprintf("%.2fs", scanDuration.Seconds())

	fmt.Fprintf(w, "\nScan completed at %s (took %s): %d available volumes in %d regions\n",
		timeStr, durationStr, volumes, regions)
}
