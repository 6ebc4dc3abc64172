package ratelimit

import (
	"sync"
	"time"
)

// BucketName identifies a cooldown group. All applies to every prefix
// command; the others cover a command family.
type BucketName string

const (
	// All is consulted for every prefix command invocation.
	All BucketName = "all"
	// Render covers the replay render commands.
	Render BucketName = "render"
)

// Bucket is a sliding-window cooldown keyed by user id.
type Bucket struct {
	mu     sync.Mutex
	window time.Duration
	limit  int
	hits   map[string][]time.Time
	now    func() time.Time
}

func newBucket(window time.Duration, limit int, now func() time.Time) *Bucket {
	return &Bucket{
		window: window,
		limit:  limit,
		hits:   make(map[string][]time.Time),
		now:    now,
	}
}

// Take admits the user and returns 0, or returns the number of whole
// seconds remaining until the next slot frees up. An admitted call
// consumes a slot.
func (b *Bucket) Take(user string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	hits := b.hits[user]

	// Drop hits that have left the window.
	keep := hits[:0]
	for _, hit := range hits {
		if now.Sub(hit) < b.window {
			keep = append(keep, hit)
		}
	}

	if len(keep) >= b.limit {
		b.hits[user] = keep
		remaining := keep[0].Add(b.window).Sub(now)

		secs := int64(remaining / time.Second)
		if remaining%time.Second > 0 {
			secs++
		}

		return secs
	}

	b.hits[user] = append(keep, now)

	return 0
}

// Buckets is the fixed set of named cooldown buckets.
type Buckets struct {
	buckets map[BucketName]*Bucket
}

// NewBuckets builds the process-lifetime bucket set.
func NewBuckets() *Buckets {
	return newBucketsAt(time.Now)
}

func newBucketsAt(now func() time.Time) *Buckets {
	return &Buckets{
		buckets: map[BucketName]*Bucket{
			All:    newBucket(30*time.Second, 30, now),
			Render: newBucket(20*time.Second, 2, now),
		},
	}
}

// Get returns the named bucket, or nil for an unknown name.
func (b *Buckets) Get(name BucketName) *Bucket {
	return b.buckets[name]
}
