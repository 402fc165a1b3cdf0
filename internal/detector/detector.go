package detector

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"rapbench/internal/core"
	"rapbench/internal/ratelimit"
	"rapbench/internal/report"
)

// Detector orchestrates one benchmark run.
type Detector struct {
	clock core.Clock
}

// New creates a Detector backed by the real clock.
func New() *Detector {
	return NewWithClock(core.RealClock{})
}

// NewWithClock creates a Detector with a caller-supplied clock.
func NewWithClock(clock core.Clock) *Detector {
	return &Detector{clock: clock}
}

// Run executes one detector run and returns its report.
//
// The heartbeat monitor, the blocking load, and all measured tasks are
// peer goroutines on the same scheduler; the only synchronization between
// them is the join barrier on the measured tasks. An individual task
// failure is information, not a control path: it never aborts siblings or
// the run. The only error returns are an invalid configuration, rejected
// before anything is scheduled, and cancellation of ctx while task
// launches are still being paced.
func (d *Detector) Run(ctx context.Context, cfg RunConfig) (*report.Report, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// runCtx bounds the blocking load: fire-and-forget for the report,
	// but never leaked past this call.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	mon := newMonitor(d.clock, cfg.HeartbeatInterval, cfg.StallThresholdFactor, cfg.Observer)
	monCtx, stopMonitor := context.WithCancel(runCtx)
	defer stopMonitor()
	go mon.run(monCtx)

	for i := 0; i < cfg.BlockingTasks; i++ {
		go func() {
			_ = invoke(runCtx, cfg.BlockingWorkload)
		}()
	}

	var limiter *ratelimit.Limiter
	if cfg.SpawnRate > 0 {
		limiter = ratelimit.New(cfg.SpawnRate)
	}

	outcomes := make([]core.Outcome, cfg.TotalTasks)
	var wg sync.WaitGroup

	runStart := d.clock.Now()
	var launchErr error
	for i := range outcomes {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				launchErr = err
				break
			}
		}
		wg.Add(1)
		go func(taskID int) {
			defer wg.Done()
			runTask(runCtx, d.clock, cfg.Workload, taskID, &outcomes[taskID], cfg.Observer)
		}(i)
	}

	if launchErr != nil {
		// Abandoned launch: let the tasks already in flight observe the
		// cancellation instead of waiting out their workloads.
		cancel()
	}

	// Join barrier: no outcome is final and aggregation does not start
	// until every launched task has completed.
	wg.Wait()
	totalTime := d.clock.Since(runStart)

	stopMonitor()
	mon.wait()

	if launchErr != nil {
		return nil, launchErr
	}

	meta := report.RunMeta{
		RunID:         uuid.NewString(),
		TotalTasks:    cfg.TotalTasks,
		BlockingTasks: cfg.BlockingTasks,
	}
	return report.Summarize(outcomes, mon.Samples(), totalTime, meta, cfg.Criteria), nil
}
