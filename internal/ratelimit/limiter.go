// Package ratelimit paces task launches for the detector.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles task launches to a fixed rate per second. The
// detector contract launches everything at once; a Limiter is only
// attached when a spawn rate is explicitly configured.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a Limiter allowing perSecond launches per second, with a
// burst of the same size.
func New(perSecond int) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(perSecond), perSecond),
	}
}

// Wait blocks until the next launch is permitted or ctx is cancelled.
// A zero-rate limiter never waits.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.limiter.Limit() == 0 {
		return nil
	}
	return l.limiter.Wait(ctx)
}
