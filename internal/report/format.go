package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// FormatText writes a report in human-readable form.
func FormatText(w io.Writer, r *Report) {
	status := "PASSED"
	if !r.Passed {
		status = "FAILED"
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Fake Async Detector Results")
	fmt.Fprintln(w, "============================")
	fmt.Fprintf(w, "Status: %s\n", status)
	if r.RunID != "" {
		fmt.Fprintf(w, "Run ID: %s\n", r.RunID)
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintf(w, "  Total tasks:    %d\n", r.TotalTasks)
	fmt.Fprintf(w, "  Blocking tasks: %d\n", r.BlockingTasks)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Execution:")
	fmt.Fprintf(w, "  Successful: %d\n", r.SuccessfulTasks)
	fmt.Fprintf(w, "  Failed:     %d\n", r.FailedTasks)
	fmt.Fprintf(w, "  Total time: %v\n", r.TotalTime.Round(time.Millisecond))
	fmt.Fprintf(w, "  Throughput: %.2f tasks/sec\n", r.Throughput)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Latency:")
	fmt.Fprintf(w, "  p50: %s\n", FormatDuration(r.P50Latency))
	fmt.Fprintf(w, "  p95: %s\n", FormatDuration(r.P95Latency))
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Scheduler:")
	fmt.Fprintf(w, "  Stalls detected: %d\n", r.StallCount)
	fmt.Fprintf(w, "  Max stall:       %s\n", FormatDuration(r.MaxStall))

	if len(r.Criteria) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "Pass Criteria:")
		for _, result := range r.Criteria {
			symbol := "✓"
			if !result.Passed {
				symbol = "✗"
			}
			fmt.Fprintf(w, "  %s %s %s (actual: %s)\n",
				symbol, result.Name, result.Threshold, result.Actual)
		}
	}
}

// FormatJSON writes a report in JSON form.
func FormatJSON(w io.Writer, r *Report) {
	output := struct {
		RunID           string            `json:"runId,omitempty"`
		TotalTasks      int               `json:"totalTasks"`
		BlockingTasks   int               `json:"blockingTasks"`
		SuccessfulTasks int               `json:"successfulTasks"`
		FailedTasks     int               `json:"failedTasks"`
		TotalTime       string            `json:"totalTime"`
		TotalSeconds    float64           `json:"totalSeconds"`
		Throughput      float64           `json:"throughput"`
		P50Latency      string            `json:"p50Latency"`
		P95Latency      string            `json:"p95Latency"`
		StallCount      int               `json:"stallCount"`
		MaxStall        string            `json:"maxStallDuration"`
		Passed          bool              `json:"passed"`
		Criteria        []CriterionResult `json:"criteria"`
	}{
		RunID:           r.RunID,
		TotalTasks:      r.TotalTasks,
		BlockingTasks:   r.BlockingTasks,
		SuccessfulTasks: r.SuccessfulTasks,
		FailedTasks:     r.FailedTasks,
		TotalTime:       r.TotalTime.Round(time.Microsecond).String(),
		TotalSeconds:    r.TotalTime.Seconds(),
		Throughput:      r.Throughput,
		P50Latency:      FormatDuration(r.P50Latency),
		P95Latency:      FormatDuration(r.P95Latency),
		StallCount:      r.StallCount,
		MaxStall:        FormatDuration(r.MaxStall),
		Passed:          r.Passed,
		Criteria:        r.Criteria,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(output) // stdout errors are unrecoverable
}

// FormatDuration formats a duration for display.
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}
