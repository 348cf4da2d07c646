// Package ratelimit throttles outbound API calls with one token bucket per
// resource family ("books", "authors", "admin", ...).
package ratelimit

import (
	"context"
	"slices"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultIdleTTL is how long an unused family keeps its bucket.
const DefaultIdleTTL = 10 * time.Minute

type bucket struct {
	*rate.Limiter
	lastUsed time.Time
}

// Limiter hands out a token bucket per family. Buckets idle for longer than
// the TTL are dropped by a background sweep.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a limiter allowing rps calls per second per family with the
// given burst.
func New(rps float64, burst int) *Limiter {
	return NewWithTTL(rps, burst, DefaultIdleTTL)
}

// NewWithTTL is New with a custom idle TTL. A TTL of zero keeps buckets forever.
func NewWithTTL(rps float64, burst int, idleTTL time.Duration) *Limiter {
	l := &Limiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
		done:    make(chan struct{}),
	}
	if idleTTL > 0 {
		go l.sweepLoop()
	}
	return l
}

// Allow reports whether a call for family may proceed now, consuming a token if so.
func (l *Limiter) Allow(family string) bool {
	return l.bucketFor(family).Allow()
}

// Wait blocks until a call for family may proceed or ctx is done.
func (l *Limiter) Wait(ctx context.Context, family string) error {
	return l.bucketFor(family).Wait(ctx)
}

// Families returns the families that currently hold a bucket, sorted.
func (l *Limiter) Families() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, 0, len(l.buckets))
	for family := range l.buckets {
		out = append(out, family)
	}
	slices.Sort(out)
	return out
}

// Stop ends the sweep goroutine. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

func (l *Limiter) bucketFor(family string) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[family]
	if !ok {
		b = &bucket{Limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[family] = b
	}
	b.lastUsed = time.Now()
	return b
}

// sweep drops buckets last used before cutoff.
func (l *Limiter) sweep(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for family, b := range l.buckets {
		if b.lastUsed.Before(cutoff) {
			delete(l.buckets, family)
		}
	}
}

func (l *Limiter) sweepLoop() {
	ticker := time.NewTicker(l.idleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case now := <-ticker.C:
			l.sweep(now.Add(-l.idleTTL))
		}
	}
}
