package workload

import (
	"context"
	"errors"
	"time"

	"rapbench/internal/core"
)

// Sleep returns a workload that suspends cooperatively for d using the
// runtime timer. This is the well-behaved baseline: it yields the
// scheduler for its whole duration.
func Sleep(d time.Duration) core.Workload {
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

// Busy returns a workload that spins for d without a single suspension
// point. It stands in for "fake async": an operation that looks
// concurrent from the outside but holds its execution context the whole
// time.
func Busy(d time.Duration) core.Workload {
	return core.WorkloadFunc(func(ctx context.Context) error {
		start := time.Now()
		for time.Since(start) < d {
		}
		return nil
	})
}

// Failing returns a workload that always fails with the given message.
func Failing(msg string) core.Workload {
	err := errors.New(msg)
	return core.WorkloadFunc(func(ctx context.Context) error {
		return err
	})
}
