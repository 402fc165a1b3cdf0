package prometheus

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"rapbench/internal/core"
	"rapbench/internal/report"
)

func TestExporter_RecordsEvents(t *testing.T) {
	reg := prom.NewRegistry()
	exporter, err := NewExporter("rapbench", reg)
	if err != nil {
		t.Fatalf("NewExporter failed: %v", err)
	}

	exporter.TaskCompleted(core.Outcome{TaskID: 0, Latency: 3 * time.Millisecond, Success: true})
	exporter.TaskCompleted(core.Outcome{TaskID: 1, Latency: 5 * time.Millisecond, Success: false, Error: "boom"})
	exporter.StallDetected(12 * time.Millisecond)

	if got := testutil.ToFloat64(exporter.tasksTotal.WithLabelValues("success")); got != 1 {
		t.Errorf("success counter = %v, expected 1", got)
	}
	if got := testutil.ToFloat64(exporter.tasksTotal.WithLabelValues("failure")); got != 1 {
		t.Errorf("failure counter = %v, expected 1", got)
	}
	if got := testutil.ToFloat64(exporter.stallsTotal); got != 1 {
		t.Errorf("stalls counter = %v, expected 1", got)
	}
}

func TestExporter_SetReport(t *testing.T) {
	reg := prom.NewRegistry()
	exporter, err := NewExporter("rapbench", reg)
	if err != nil {
		t.Fatalf("NewExporter failed: %v", err)
	}

	exporter.SetReport(&report.Report{
		Throughput: 250,
		P50Latency: 2 * time.Millisecond,
		P95Latency: 8 * time.Millisecond,
		MaxStall:   4 * time.Millisecond,
		Passed:     true,
	})

	if got := testutil.ToFloat64(exporter.throughput); got != 250 {
		t.Errorf("throughput gauge = %v, expected 250", got)
	}
	if got := testutil.ToFloat64(exporter.maxStallSeconds); got != 0.004 {
		t.Errorf("max stall gauge = %v, expected 0.004", got)
	}
	if got := testutil.ToFloat64(exporter.verdict); got != 1 {
		t.Errorf("verdict gauge = %v, expected 1", got)
	}
}

func TestExporter_AlreadyRegisteredReuse(t *testing.T) {
	reg := prom.NewRegistry()
	first, err := NewExporter("rapbench", reg)
	if err != nil {
		t.Fatalf("first NewExporter failed: %v", err)
	}
	second, err := NewExporter("rapbench", reg)
	if err != nil {
		t.Fatalf("second NewExporter failed: %v", err)
	}

	first.StallDetected(time.Millisecond)
	second.StallDetected(time.Millisecond)

	if got := testutil.ToFloat64(first.stallsTotal); got != 2 {
		t.Errorf("shared stalls counter = %v, expected 2", got)
	}
}

func TestExporter_NilSafe(t *testing.T) {
	var exporter *Exporter
	exporter.TaskCompleted(core.Outcome{})
	exporter.StallDetected(time.Millisecond)
	exporter.SetReport(nil)
}
