// Package retrylimit paces and retries calls to upstream HTTP APIs. The rate
// adapts to what the remote side tolerates: it creeps up while requests
// succeed and is cut back when the remote pushes back.
package retrylimit

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is an adaptive rate limiter. Safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	min, max rate.Limit
	lastCut  time.Time
}

// NewLimiter creates a Limiter starting at initial requests per second,
// bounded by min and max.
func NewLimiter(initial, min, max rate.Limit) *Limiter {
	if min < 1 {
		min = 1
	}
	if initial < min {
		initial = min
	}
	return &Limiter{
		limiter: rate.NewLimiter(initial, int(initial)),
		min:     min,
		max:     max,
	}
}

// Wait blocks until a request may proceed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Success nudges the rate up by one rps, unless a recent cut suggests the
// remote is still unhappy.
func (l *Limiter) Success() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if time.Since(l.lastCut) < 10*time.Second {
		return
	}
	l.set(l.limiter.Limit() + 1)
}

// Backoff halves the rate after the remote signalled overload.
func (l *Limiter) Backoff() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastCut = time.Now()
	l.set(l.limiter.Limit() / 2)
}

// Limit returns the current requests per second.
func (l *Limiter) Limit() rate.Limit {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.limiter.Limit()
}

func (l *Limiter) set(v rate.Limit) {
	if v > l.max {
		v = l.max
	}
	if v < l.min {
		v = l.min
	}
	if v != l.limiter.Limit() {
		l.limiter.SetLimit(v)
		l.limiter.SetBurst(int(v))
	}
}

// StatusError reports an HTTP status code; Do uses it to decide whether a
// failure should shrink the rate.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.URL, e.Code)
}

// Permanent wraps errors that must not be retried.
type Permanent struct {
	Err error
}

func (p *Permanent) Error() string { return p.Err.Error() }
func (p *Permanent) Unwrap() error { return p.Err }

// Do runs fn up to attempts times with exponential backoff and jitter,
// pacing each attempt through lim when it is non-nil. It stops early on
// success, a Permanent error, or ctx cancellation.
func Do(ctx context.Context, lim *Limiter, attempts int, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	delay := 500 * time.Millisecond
	var err error

	for attempt := 1; attempt <= attempts; attempt++ {
		if lim != nil {
			if werr := lim.Wait(ctx); werr != nil {
				return werr
			}
		}

		if err = fn(); err == nil {
			if lim != nil {
				lim.Success()
			}
			return nil
		}

		var perm *Permanent
		if errors.As(err, &perm) {
			return perm.Err
		}
		if shouldBackoff(err) && lim != nil {
			lim.Backoff()
		}
		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(withJitter(delay)):
		}
		if delay *= 2; delay > 10*time.Second {
			delay = 10 * time.Second
		}
	}

	return fmt.Errorf("after %d attempts: %w", attempts, err)
}

func shouldBackoff(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == http.StatusTooManyRequests || se.Code >= 500
}

// withJitter adds up to 25% of d to avoid synchronized retries.
func withJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return d
	}
	return d + time.Duration(rand.Int63n(int64(d/4)))
}
