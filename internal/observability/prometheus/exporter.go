// Package prometheus exposes live detector metrics as Prometheus
// collectors.
package prometheus

import (
	"errors"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"rapbench/internal/core"
	"rapbench/internal/report"
)

// Exporter adapts run events and the final report to Prometheus
// collectors. It implements core.Observer for the live metrics.
type Exporter struct {
	taskLatencySeconds prom.Histogram
	tasksTotal         *prom.CounterVec
	stallsTotal        prom.Counter
	maxStallSeconds    prom.Gauge
	throughput         prom.Gauge
	p50Seconds         prom.Gauge
	p95Seconds         prom.Gauge
	verdict            prom.Gauge
}

var _ core.Observer = (*Exporter)(nil)

// NewExporter creates and registers the detector's collectors. A nil
// Registerer uses the default registry; already-registered collectors are
// reused.
func NewExporter(namespace string, reg prom.Registerer) (*Exporter, error) {
	if namespace == "" {
		namespace = "rapbench"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}

	latency := prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "task_latency_seconds",
		Help:      "Measured task latency in seconds.",
		Buckets:   prom.DefBuckets,
	})
	tasks := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_completed_total",
		Help:      "Total measured tasks by terminal status.",
	}, []string{"status"})
	stalls := prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "stalls_total",
		Help:      "Total scheduler stalls observed by the heartbeat monitor.",
	})
	maxStall := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "max_stall_seconds",
		Help:      "Largest scheduler stall of the run in seconds.",
	})
	throughput := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "throughput_tasks_per_second",
		Help:      "Successful tasks per second of the finished run.",
	})
	p50 := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "p50_latency_seconds",
		Help:      "Median task latency of the finished run in seconds.",
	})
	p95 := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "p95_latency_seconds",
		Help:      "95th percentile task latency of the finished run in seconds.",
	})
	verdict := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "verdict_passed",
		Help:      "1 when the finished run passed all criteria, 0 otherwise.",
	})

	var err error
	if latency, err = registerCollector(reg, latency); err != nil {
		return nil, err
	}
	if tasks, err = registerCollector(reg, tasks); err != nil {
		return nil, err
	}
	if stalls, err = registerCollector(reg, stalls); err != nil {
		return nil, err
	}
	if maxStall, err = registerCollector(reg, maxStall); err != nil {
		return nil, err
	}
	if throughput, err = registerCollector(reg, throughput); err != nil {
		return nil, err
	}
	if p50, err = registerCollector(reg, p50); err != nil {
		return nil, err
	}
	if p95, err = registerCollector(reg, p95); err != nil {
		return nil, err
	}
	if verdict, err = registerCollector(reg, verdict); err != nil {
		return nil, err
	}

	return &Exporter{
		taskLatencySeconds: latency,
		tasksTotal:         tasks,
		stallsTotal:        stalls,
		maxStallSeconds:    maxStall,
		throughput:         throughput,
		p50Seconds:         p50,
		p95Seconds:         p95,
		verdict:            verdict,
	}, nil
}

// TaskCompleted implements core.Observer.
func (e *Exporter) TaskCompleted(o core.Outcome) {
	if e == nil {
		return
	}
	e.taskLatencySeconds.Observe(o.Latency.Seconds())
	status := "success"
	if !o.Success {
		status = "failure"
	}
	e.tasksTotal.WithLabelValues(status).Inc()
}

// StallDetected implements core.Observer.
func (e *Exporter) StallDetected(d time.Duration) {
	if e == nil {
		return
	}
	e.stallsTotal.Inc()
}

// SetReport publishes the final aggregate gauges.
func (e *Exporter) SetReport(r *report.Report) {
	if e == nil || r == nil {
		return
	}
	e.maxStallSeconds.Set(r.MaxStall.Seconds())
	e.throughput.Set(r.Throughput)
	e.p50Seconds.Set(r.P50Latency.Seconds())
	e.p95Seconds.Set(r.P95Latency.Seconds())
	if r.Passed {
		e.verdict.Set(1)
	} else {
		e.verdict.Set(0)
	}
}

func registerCollector[C prom.Collector](reg prom.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		are := prom.AlreadyRegisteredError{}
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}
