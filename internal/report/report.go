// Package report turns raw run data into an aggregate verdict.
package report

import "time"

// Default verdict thresholds. They define "genuine async behavior" for
// simple I/O-shaped workloads and are deliberately overridable.
const (
	DefaultMaxStall       = 10 * time.Millisecond
	DefaultMinThroughput  = 100.0 // successful tasks per second
	DefaultMaxP95         = time.Second
	DefaultMinSuccessRate = 0.95
)

// Criteria defines the pass/fail thresholds for a run. Zero-valued fields
// fall back to the defaults when checked.
type Criteria struct {
	MaxStall       time.Duration `yaml:"max_stall"`
	MinThroughput  float64       `yaml:"min_throughput"`
	MaxP95         time.Duration `yaml:"max_p95"`
	MinSuccessRate float64       `yaml:"min_success_rate"`
}

// DefaultCriteria returns the default verdict thresholds.
func DefaultCriteria() Criteria {
	return Criteria{
		MaxStall:       DefaultMaxStall,
		MinThroughput:  DefaultMinThroughput,
		MaxP95:         DefaultMaxP95,
		MinSuccessRate: DefaultMinSuccessRate,
	}
}

func (c Criteria) withDefaults() Criteria {
	d := DefaultCriteria()
	if c.MaxStall == 0 {
		c.MaxStall = d.MaxStall
	}
	if c.MinThroughput == 0 {
		c.MinThroughput = d.MinThroughput
	}
	if c.MaxP95 == 0 {
		c.MaxP95 = d.MaxP95
	}
	if c.MinSuccessRate == 0 {
		c.MinSuccessRate = d.MinSuccessRate
	}
	return c
}

// CriterionResult is the outcome of a single verdict criterion.
type CriterionResult struct {
	Name      string `json:"name"`
	Passed    bool   `json:"passed"`
	Threshold string `json:"threshold"`
	Actual    string `json:"actual"`
}

// RunMeta carries run identity and configuration counts into Summarize.
// The orchestrator fills it in; Summarize itself stays deterministic.
type RunMeta struct {
	RunID         string
	TotalTasks    int
	BlockingTasks int
}

// Report is the final aggregate of one detector run. Produced exactly once
// per run, immutable afterwards.
type Report struct {
	RunID           string
	TotalTasks      int
	BlockingTasks   int
	SuccessfulTasks int
	FailedTasks     int
	TotalTime       time.Duration
	Throughput      float64 // successful tasks per second
	P50Latency      time.Duration
	P95Latency      time.Duration
	StallCount      int
	MaxStall        time.Duration
	Passed          bool
	Criteria        []CriterionResult
}

// Violations returns only the failed criterion results.
func (r *Report) Violations() []CriterionResult {
	violations := make([]CriterionResult, 0)
	for _, result := range r.Criteria {
		if !result.Passed {
			violations = append(violations, result)
		}
	}
	return violations
}
