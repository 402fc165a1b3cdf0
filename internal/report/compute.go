package report

import (
	"sort"
	"time"

	"rapbench/internal/core"
)

// Summarize computes a Report from raw run data. Pure function of its
// inputs, no side effects; calling it twice on the same data yields
// identical reports.
//
// The failed-task count is derived once, from the terminal outcome list.
// Percentiles are drawn only from tasks that actually completed, which is
// all of them by the time the orchestrator hands its data over.
func Summarize(outcomes []core.Outcome, stalls []time.Duration, totalTime time.Duration, meta RunMeta, criteria Criteria) *Report {
	r := &Report{
		RunID:         meta.RunID,
		TotalTasks:    meta.TotalTasks,
		BlockingTasks: meta.BlockingTasks,
		TotalTime:     totalTime,
	}

	latencies := make([]time.Duration, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Success {
			r.SuccessfulTasks++
		} else {
			r.FailedTasks++
		}
		latencies = append(latencies, o.Latency)
	}

	if totalTime > 0 {
		r.Throughput = float64(r.SuccessfulTasks) / totalTime.Seconds()
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	r.P50Latency = Percentile(latencies, 0.50)
	r.P95Latency = Percentile(latencies, 0.95)

	r.StallCount = len(stalls)
	for _, s := range stalls {
		if s > r.MaxStall {
			r.MaxStall = s
		}
	}

	r.Criteria = criteria.Check(r)
	r.Passed = true
	for _, c := range r.Criteria {
		if !c.Passed {
			r.Passed = false
			break
		}
	}
	return r
}

// Percentile returns the value at rank floor(n*p) of an ascending-sorted
// slice, clamped to the last element when the computed index would run
// past the end. Returns 0 for an empty slice.
func Percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}
