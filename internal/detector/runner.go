package detector

import (
	"context"
	"fmt"

	"rapbench/internal/core"
)

// runTask executes one workload invocation and writes its terminal
// outcome into the slot pre-assigned to this task. Each task owns its own
// slot, so the writes need no synchronization beyond the join barrier.
func runTask(ctx context.Context, clock core.Clock, w core.Workload, taskID int, slot *core.Outcome, observer core.Observer) {
	start := clock.Now()
	err := invoke(ctx, w)
	latency := clock.Since(start)

	outcome := core.Outcome{
		TaskID:  taskID,
		Latency: latency,
		Success: err == nil,
	}
	if err != nil {
		outcome.Error = err.Error()
	}
	*slot = outcome
	observer.TaskCompleted(outcome)
}

// invoke calls the workload, converting a panic into an error so that a
// misbehaving workload still reaches a terminal outcome instead of
// tearing down the run.
func invoke(ctx context.Context, w core.Workload) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("workload panic: %v", r)
		}
	}()
	return w.Invoke(ctx)
}
