package detector

import (
	"context"
	"sync"
	"time"

	"rapbench/internal/core"
)

// monitor is the heartbeat probe. It suspends on the runtime's timer for
// a fixed interval and records how far each resumption overshot that
// interval. The suspension itself is the measurement: the monitor is a
// peer of the measured tasks on the same scheduler, so anything that
// monopolizes the scheduler delays the monitor too.
type monitor struct {
	clock    core.Clock
	interval time.Duration
	factor   float64
	observer core.Observer

	mu      sync.Mutex
	samples []time.Duration
	done    chan struct{}
}

func newMonitor(clock core.Clock, interval time.Duration, factor float64, observer core.Observer) *monitor {
	return &monitor{
		clock:    clock,
		interval: interval,
		factor:   factor,
		observer: observer,
		done:     make(chan struct{}),
	}
}

// run loops until ctx is cancelled. Cancellation is cooperative: it is
// observed at the timer select and exits cleanly, never as a run failure.
func (m *monitor) run(ctx context.Context) {
	defer close(m.done)

	timer := time.NewTimer(m.interval)
	defer timer.Stop()

	lastCheck := m.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		elapsed := m.clock.Since(lastCheck)
		if float64(elapsed) > float64(m.interval)*m.factor {
			stall := elapsed - m.interval
			m.mu.Lock()
			m.samples = append(m.samples, stall)
			m.mu.Unlock()
			m.observer.StallDetected(stall)
		}
		lastCheck = m.clock.Now()
		timer.Reset(m.interval)
	}
}

// wait blocks until the monitor goroutine has exited. Samples must not be
// read before wait returns.
func (m *monitor) wait() {
	<-m.done
}

// Samples returns a copy of the recorded stall durations.
func (m *monitor) Samples() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, len(m.samples))
	copy(out, m.samples)
	return out
}
