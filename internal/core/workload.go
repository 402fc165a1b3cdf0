// Package core defines the fundamental interfaces and types for rapbench.
package core

import (
	"context"
	"time"
)

// Workload is an opaque operation under measurement. It is invoked once
// per task instance and either completes or returns an error. Invoke must
// suspend cooperatively (timers, channels, I/O readiness) rather than
// holding an OS thread, or the scheduler probe cannot see past it.
type Workload interface {
	Invoke(ctx context.Context) error
}

// WorkloadFunc adapts a plain function to the Workload interface.
type WorkloadFunc func(ctx context.Context) error

func (f WorkloadFunc) Invoke(ctx context.Context) error { return f(ctx) }

// Outcome is the terminal record of a single measured task. A failing
// workload still yields a latency; failure never suppresses timing data.
type Outcome struct {
	TaskID  int
	Latency time.Duration
	Success bool
	Error   string
}

// Observer receives live run events. Implementations must be safe for
// concurrent use; the task runners and the heartbeat monitor call it from
// their own goroutines.
type Observer interface {
	TaskCompleted(Outcome)
	StallDetected(stall time.Duration)
}

// NullObserver discards all events.
var NullObserver Observer = nullObserver{}

type nullObserver struct{}

func (nullObserver) TaskCompleted(Outcome)       {}
func (nullObserver) StallDetected(time.Duration) {}

// MultiObserver fans events out to several observers in order.
func MultiObserver(obs ...Observer) Observer {
	filtered := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return filtered
}

type multiObserver []Observer

func (m multiObserver) TaskCompleted(o Outcome) {
	for _, obs := range m {
		obs.TaskCompleted(o)
	}
}

func (m multiObserver) StallDetected(d time.Duration) {
	for _, obs := range m {
		obs.StallDetected(d)
	}
}
