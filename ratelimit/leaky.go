// Package ratelimit provides the leaky-bucket token issuer used to pace
// outbound HTTP calls and the named cooldown buckets consulted by command
// dispatch policy.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned by AcquireOne after the bucket has been closed.
var ErrClosed = errors.New("ratelimit: bucket closed")

// LeakyBucket issues tokens that accumulate at a fixed refill rate, capped
// at a maximum. AcquireOne suspends until a token is available; waiters are
// served in arrival order. A waiter that is cancelled before receiving its
// token never consumes one, so cancellation leaves the pool intact.
type LeakyBucket struct {
	tokens    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewLeakyBucket creates a bucket holding at most max tokens, starting
// full, refilled by refillAmount tokens every refillInterval.
func NewLeakyBucket(max int, refillInterval time.Duration, refillAmount int) *LeakyBucket {
	b := &LeakyBucket{
		tokens: make(chan struct{}, max),
		done:   make(chan struct{}),
	}
	for i := 0; i < max; i++ {
		b.tokens <- struct{}{}
	}
	go b.refill(refillInterval, refillAmount)

	return b
}

// PerSecond creates a bucket admitting n calls per second with a burst of n.
func PerSecond(n int) *LeakyBucket {
	return NewLeakyBucket(n, time.Second, n)
}

func (b *LeakyBucket) refill(interval time.Duration, amount int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-b.done:
			return
		case <-ticker.C:
			for i := 0; i < amount; i++ {
				select {
				case b.tokens <- struct{}{}:
				default:
					// pool already at max
				}
			}
		}
	}
}

// AcquireOne blocks until a token is available, then consumes it. It
// returns the context error if ctx is cancelled first, or ErrClosed if the
// bucket is closed while waiting.
func (b *LeakyBucket) AcquireOne(ctx context.Context) error {
	select {
	case <-b.tokens:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-b.done:
		return ErrClosed
	}
}

// TryAcquire consumes a token if one is immediately available.
func (b *LeakyBucket) TryAcquire() bool {
	select {
	case <-b.tokens:
		return true
	default:
		return false
	}
}

// Close stops the refill loop and unblocks pending waiters with ErrClosed.
func (b *LeakyBucket) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}
