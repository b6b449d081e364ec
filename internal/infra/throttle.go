// Package infra provides shared infrastructure for outbound Reddit calls.
// Throttle paces requests with a token bucket and caps how many run at once.
package infra

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// MaxConcurrentRequests limits parallel API calls
const MaxConcurrentRequests = 5

// Throttle combines a token-bucket rate limiter with a concurrency semaphore.
// It is safe for concurrent use.
type Throttle struct {
	limiter   *rate.Limiter
	semaphore chan struct{}
}

// NewThrottle allows requestsPerMinute calls per minute, bursting up to
// maxConcurrent, with at most maxConcurrent in flight.
func NewThrottle(requestsPerMinute, maxConcurrent int) *Throttle {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	if maxConcurrent <= 0 {
		maxConcurrent = MaxConcurrentRequests
	}
	return &Throttle{
		limiter:   rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), maxConcurrent),
		semaphore: make(chan struct{}, maxConcurrent),
	}
}

// Acquire blocks until a slot and a token are available or ctx is done.
// On success the caller must call the returned release function.
// waited reports whether the caller had to wait for the rate limiter.
func (t *Throttle) Acquire(ctx context.Context) (release func(), waited bool, err error) {
	select {
	case t.semaphore <- struct{}{}:
	case <-ctx.Done():
		return nil, false, fmt.Errorf("context canceled while waiting for request slot: %w", ctx.Err())
	}

	r := t.limiter.Reserve()
	if !r.OK() {
		<-t.semaphore
		return nil, false, fmt.Errorf("rate limiter cannot satisfy request")
	}
	if delay := r.Delay(); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
			waited = true
		case <-ctx.Done():
			r.Cancel()
			<-t.semaphore
			return nil, false, fmt.Errorf("context canceled while waiting for rate limiter: %w", ctx.Err())
		}
	}

	return func() { <-t.semaphore }, waited, nil
}

// InFlight returns the number of slots currently held
func (t *Throttle) InFlight() int {
	return len(t.semaphore)
}

// Capacity returns the maximum number of concurrent requests
func (t *Throttle) Capacity() int {
	return cap(t.semaphore)
}
