package report

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// Check evaluates the four verdict criteria against a computed report.
// The returned results are in a stable order: stall, throughput, p95,
// success rate.
func (c Criteria) Check(r *Report) []CriterionResult {
	c = c.withDefaults()

	successRate := 0.0
	if r.TotalTasks > 0 {
		successRate = float64(r.SuccessfulTasks) / float64(r.TotalTasks)
	}

	return []CriterionResult{
		{
			Name:      "max_stall",
			Passed:    r.MaxStall < c.MaxStall,
			Threshold: fmt.Sprintf("< %s", FormatDuration(c.MaxStall)),
			Actual:    FormatDuration(r.MaxStall),
		},
		{
			Name:      "throughput",
			Passed:    r.Throughput > c.MinThroughput,
			Threshold: fmt.Sprintf("> %.0f tasks/sec", c.MinThroughput),
			Actual:    fmt.Sprintf("%.2f tasks/sec", r.Throughput),
		},
		{
			Name:      "p95_latency",
			Passed:    r.P95Latency < c.MaxP95,
			Threshold: fmt.Sprintf("< %s", FormatDuration(c.MaxP95)),
			Actual:    FormatDuration(r.P95Latency),
		},
		{
			Name:      "success_rate",
			Passed:    float64(r.SuccessfulTasks) > float64(r.TotalTasks)*c.MinSuccessRate,
			Threshold: fmt.Sprintf("> %.0f%%", c.MinSuccessRate*100),
			Actual:    fmt.Sprintf("%.1f%%", successRate*100),
		},
	}
}

// ParseCriteriaJSON overlays criteria fields from a JSON object onto base.
// Durations accept Go duration strings ("20ms") or numeric seconds.
// Unknown fields are ignored so callers can keep shared criteria blobs.
func ParseCriteriaJSON(base Criteria, s string) (Criteria, error) {
	if !gjson.Valid(s) {
		return base, fmt.Errorf("invalid criteria JSON: %q", s)
	}

	out := base
	if v := gjson.Get(s, "max_stall"); v.Exists() {
		d, err := parseDurationValue(v)
		if err != nil {
			return base, fmt.Errorf("criteria max_stall: %w", err)
		}
		out.MaxStall = d
	}
	if v := gjson.Get(s, "min_throughput"); v.Exists() {
		out.MinThroughput = v.Float()
	}
	if v := gjson.Get(s, "max_p95"); v.Exists() {
		d, err := parseDurationValue(v)
		if err != nil {
			return base, fmt.Errorf("criteria max_p95: %w", err)
		}
		out.MaxP95 = d
	}
	if v := gjson.Get(s, "min_success_rate"); v.Exists() {
		out.MinSuccessRate = v.Float()
	}
	return out, nil
}

func parseDurationValue(v gjson.Result) (time.Duration, error) {
	if v.Type == gjson.Number {
		return time.Duration(v.Float() * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(v.String())
	if err != nil {
		return 0, fmt.Errorf("parsing duration %q: %w", v.String(), err)
	}
	return d, nil
}
