package resilience

import (
	"context"
	"sync"
	"time"
)

// RateLimiter hands out at most one permit per interval. Permits are
// serialized: a caller holds the lock while it waits, so concurrent callers
// queue up and each one observes the previous permit time. There is no burst.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRateLimiter builds a limiter for requestsPerSecond. A non-positive rate
// disables waiting.
func NewRateLimiter(requestsPerSecond float64) *RateLimiter {
	var interval time.Duration
	if requestsPerSecond > 0 {
		interval = time.Duration(float64(time.Second) / requestsPerSecond)
	}
	return &RateLimiter{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

func (l *RateLimiter) Interval() time.Duration {
	if l == nil {
		return 0
	}
	return l.interval
}

// Acquire blocks until the interval has elapsed since the previous permit.
// It only fails when ctx ends while waiting; in that case no permit is taken.
func (l *RateLimiter) Acquire(ctx context.Context) error {
	if l == nil {
		return nil
	}
	_, err := l.acquire(ctx)
	return err
}

// acquire returns the clock reading the permit was issued at.
func (l *RateLimiter) acquire(ctx context.Context) (time.Time, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}

	if !l.last.IsZero() && l.interval > 0 {
		if wait := l.interval - l.now().Sub(l.last); wait > 0 {
			if err := l.sleep(ctx, wait); err != nil {
				return time.Time{}, err
			}
		}
	}

	l.last = l.now()
	return l.last, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
