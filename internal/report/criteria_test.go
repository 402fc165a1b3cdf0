package report

import (
	"strings"
	"testing"
	"time"
)

func passingReport() *Report {
	return &Report{
		TotalTasks:      100,
		SuccessfulTasks: 100,
		Throughput:      500,
		P50Latency:      2 * time.Millisecond,
		P95Latency:      5 * time.Millisecond,
		MaxStall:        time.Millisecond,
	}
}

func findResult(t *testing.T, results []CriterionResult, name string) CriterionResult {
	t.Helper()
	for _, r := range results {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("criterion %q not found in %v", name, results)
	return CriterionResult{}
}

func TestCriteria_CheckAllPass(t *testing.T) {
	results := Criteria{}.Check(passingReport())

	if len(results) != 4 {
		t.Fatalf("expected 4 criteria results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("criterion %s failed: threshold %s, actual %s", r.Name, r.Threshold, r.Actual)
		}
	}
}

func TestCriteria_StallViolation(t *testing.T) {
	r := passingReport()
	r.MaxStall = 25 * time.Millisecond

	result := findResult(t, Criteria{}.Check(r), "max_stall")
	if result.Passed {
		t.Error("expected max_stall to fail at 25ms against the 10ms default")
	}
}

func TestCriteria_ThroughputViolation(t *testing.T) {
	r := passingReport()
	r.Throughput = 50

	result := findResult(t, Criteria{}.Check(r), "throughput")
	if result.Passed {
		t.Error("expected throughput to fail at 50/sec against the 100/sec default")
	}
}

func TestCriteria_P95Violation(t *testing.T) {
	r := passingReport()
	r.P95Latency = 2 * time.Second

	result := findResult(t, Criteria{}.Check(r), "p95_latency")
	if result.Passed {
		t.Error("expected p95_latency to fail at 2s against the 1s default")
	}
}

func TestCriteria_SuccessRateViolation(t *testing.T) {
	r := passingReport()
	r.SuccessfulTasks = 90 // 90% < 95%

	result := findResult(t, Criteria{}.Check(r), "success_rate")
	if result.Passed {
		t.Error("expected success_rate to fail at 90% against the 95% default")
	}
}

func TestCriteria_CustomThresholds(t *testing.T) {
	r := passingReport()
	r.MaxStall = 25 * time.Millisecond

	// Recalibrated for a slower workload class.
	c := Criteria{MaxStall: 100 * time.Millisecond}
	result := findResult(t, c.Check(r), "max_stall")
	if !result.Passed {
		t.Errorf("expected max_stall to pass under a 100ms threshold, actual %s", result.Actual)
	}
}

func TestParseCriteriaJSON_DurationString(t *testing.T) {
	c, err := ParseCriteriaJSON(DefaultCriteria(), `{"max_stall":"20ms","max_p95":"500ms"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.MaxStall != 20*time.Millisecond {
		t.Errorf("MaxStall = %v, expected 20ms", c.MaxStall)
	}
	if c.MaxP95 != 500*time.Millisecond {
		t.Errorf("MaxP95 = %v, expected 500ms", c.MaxP95)
	}
	// Untouched fields keep the base values.
	if c.MinThroughput != DefaultMinThroughput {
		t.Errorf("MinThroughput = %v, expected default", c.MinThroughput)
	}
}

func TestParseCriteriaJSON_NumericSeconds(t *testing.T) {
	c, err := ParseCriteriaJSON(DefaultCriteria(), `{"max_stall":0.05,"min_throughput":250,"min_success_rate":0.99}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.MaxStall != 50*time.Millisecond {
		t.Errorf("MaxStall = %v, expected 50ms", c.MaxStall)
	}
	if c.MinThroughput != 250 {
		t.Errorf("MinThroughput = %v, expected 250", c.MinThroughput)
	}
	if c.MinSuccessRate != 0.99 {
		t.Errorf("MinSuccessRate = %v, expected 0.99", c.MinSuccessRate)
	}
}

func TestParseCriteriaJSON_Invalid(t *testing.T) {
	if _, err := ParseCriteriaJSON(DefaultCriteria(), `{not json`); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := ParseCriteriaJSON(DefaultCriteria(), `{"max_stall":"not-a-duration"}`); err == nil {
		t.Error("expected error for unparseable duration")
	}
}

func TestParseCriteriaJSON_IgnoresUnknownFields(t *testing.T) {
	c, err := ParseCriteriaJSON(DefaultCriteria(), `{"something_else":1}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != DefaultCriteria() {
		t.Errorf("criteria changed by unknown field: %+v", c)
	}
}

func TestReport_Violations(t *testing.T) {
	r := passingReport()
	r.Throughput = 1
	r.MaxStall = time.Minute
	r.Criteria = Criteria{}.Check(r)

	violations := r.Violations()
	if len(violations) != 2 {
		t.Fatalf("expected 2 violations, got %d: %v", len(violations), violations)
	}
	for _, v := range violations {
		if v.Name != "max_stall" && v.Name != "throughput" {
			t.Errorf("unexpected violation %q", v.Name)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{42 * time.Millisecond, "42.00ms"},
		{1500 * time.Millisecond, "1.50s"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.in); got != c.want {
			t.Errorf("FormatDuration(%v) = %q, expected %q", c.in, got, c.want)
		}
	}
}

func TestCriteria_ThresholdStrings(t *testing.T) {
	result := findResult(t, Criteria{}.Check(passingReport()), "success_rate")
	if !strings.Contains(result.Threshold, "95%") {
		t.Errorf("success_rate threshold %q should mention 95%%", result.Threshold)
	}
}
