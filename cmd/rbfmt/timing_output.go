package main

import (
	"fmt"
	"io"
	"time"

	"rbfmt/internal/observ"
)

// printTimings prints per-phase durations. Per-file stages are summed over
// all workers, so wall time is shown separately.
func printTimings(out io.Writer, timer *observ.Timer, wall time.Duration) {
	if out == nil || timer == nil {
		return
	}
	if _, err := io.WriteString(out, timer.Summary()); err != nil {
		return
	}
	fmt.Fprintf(out, "  %-20s %7.2f ms\n", "wall", toMillis(wall))
}
