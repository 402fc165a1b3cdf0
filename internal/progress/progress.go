// Package progress renders a live status line while a run is in flight.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"rapbench/internal/core"
)

// Progress is a core.Observer that counts task completions and stalls and
// prints a single updating line once per second.
type Progress struct {
	total     int
	completed atomic.Int64
	failed    atomic.Int64
	stalls    atomic.Int64

	startTime time.Time
	ticker    *time.Ticker
	stopCh    chan struct{}
	stopped   atomic.Bool
	quiet     bool
	output    io.Writer
	mu        sync.Mutex
}

var _ core.Observer = (*Progress)(nil)

func New(total int, quiet bool) *Progress {
	return &Progress{
		total:  total,
		quiet:  quiet,
		output: os.Stderr,
	}
}

func (p *Progress) SetOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.output = w
}

// TaskCompleted implements core.Observer.
func (p *Progress) TaskCompleted(o core.Outcome) {
	p.completed.Add(1)
	if !o.Success {
		p.failed.Add(1)
	}
}

// StallDetected implements core.Observer.
func (p *Progress) StallDetected(time.Duration) {
	p.stalls.Add(1)
}

func (p *Progress) Start() {
	if p.quiet {
		return
	}
	p.startTime = time.Now()
	p.stopCh = make(chan struct{})
	p.ticker = time.NewTicker(1 * time.Second)
	go p.run()
}

func (p *Progress) run() {
	for {
		select {
		case <-p.stopCh:
			return
		case <-p.ticker.C:
			p.printLine()
		}
	}
}

func (p *Progress) printLine() {
	elapsed := time.Since(p.startTime).Round(time.Second)
	mins := int(elapsed.Minutes())
	secs := int(elapsed.Seconds()) % 60
	p.mu.Lock()
	fmt.Fprintf(p.output, "\033[K[%02d:%02d] Tasks: %d/%d | Failures: %d | Stalls: %d\r",
		mins, secs, p.completed.Load(), p.total, p.failed.Load(), p.stalls.Load())
	p.mu.Unlock()
}

func (p *Progress) Stop() {
	if p.quiet || p.stopped.Swap(true) {
		return
	}
	if p.ticker != nil {
		p.ticker.Stop()
	}
	if p.stopCh != nil {
		close(p.stopCh)
	}
	p.mu.Lock()
	fmt.Fprintln(p.output)
	p.mu.Unlock()
}
