// Package detector runs the scheduler-responsiveness benchmark: a fleet of
// short concurrent tasks plus deliberate blocking load, probed by a
// fine-grained heartbeat, summarized into a pass/fail report.
package detector

import (
	"context"
	"fmt"
	"time"

	"rapbench/internal/core"
	"rapbench/internal/report"
)

// Defaults for RunConfig fields left at their zero value. TotalTasks has
// no default: zero tasks is a usage error, rejected by Validate.
const (
	DefaultHeartbeatInterval = time.Millisecond
	DefaultStallFactor       = 1.5
	DefaultBlockingDuration  = time.Second
)

// ConfigError reports an invalid RunConfig. It is surfaced before any task
// is scheduled and is the run's only failure mode.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid run config: %s: %s", e.Field, e.Reason)
}

// RunConfig describes one detector run. It is immutable for the duration
// of the run; the zero value of optional fields selects the defaults.
type RunConfig struct {
	// Workload is invoked once per measured task. Required.
	Workload core.Workload

	// TotalTasks is the number of concurrent measured tasks.
	TotalTasks int

	// BlockingTasks is the number of long-running background invocations
	// launched for contention. Their outcomes are not reported.
	BlockingTasks int

	// BlockingWorkload overrides the default 1s cooperative sleep used
	// for blocking load.
	BlockingWorkload core.Workload

	// HeartbeatInterval is the monitor's nominal suspension interval.
	HeartbeatInterval time.Duration

	// StallThresholdFactor scales the interval; overshoot beyond
	// interval*factor is recorded as a stall.
	StallThresholdFactor float64

	// SpawnRate paces task launches per second. 0 launches all tasks at
	// once, which is the contractual default.
	SpawnRate int

	// Criteria holds the verdict thresholds. Zero fields use defaults.
	Criteria report.Criteria

	// Observer receives live task and stall events. Optional.
	Observer core.Observer
}

func (c RunConfig) withDefaults() RunConfig {
	if c.HeartbeatInterval == 0 {
		c.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if c.StallThresholdFactor == 0 {
		c.StallThresholdFactor = DefaultStallFactor
	}
	if c.BlockingWorkload == nil {
		c.BlockingWorkload = defaultBlocking(DefaultBlockingDuration)
	}
	if c.Observer == nil {
		c.Observer = core.NullObserver
	}
	return c
}

// Validate checks the configuration preconditions. Returns a *ConfigError
// describing the first violation found.
func (c RunConfig) Validate() error {
	if c.Workload == nil {
		return &ConfigError{Field: "workload", Reason: "must not be nil"}
	}
	if c.TotalTasks < 1 {
		return &ConfigError{Field: "total_tasks", Reason: "must be >= 1"}
	}
	if c.BlockingTasks < 0 {
		return &ConfigError{Field: "blocking_tasks", Reason: "must be >= 0"}
	}
	if c.HeartbeatInterval <= 0 {
		return &ConfigError{Field: "heartbeat_interval", Reason: "must be positive"}
	}
	if c.StallThresholdFactor < 1 {
		return &ConfigError{Field: "stall_threshold_factor", Reason: "must be >= 1"}
	}
	if c.SpawnRate < 0 {
		return &ConfigError{Field: "spawn_rate", Reason: "must be >= 0"}
	}
	return nil
}

// defaultBlocking is a cooperative fixed-duration sleep. It contends for
// the scheduler without monopolizing it, matching the default blocking
// load of the detector contract.
func defaultBlocking(d time.Duration) core.Workload {
	return core.WorkloadFunc(func(ctx context.Context) error {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	})
}
