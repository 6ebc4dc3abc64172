package ratelimit

import (
	"testing"
	"time"
)

func TestBucketTake(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }
	b := newBucket(10*time.Second, 2, clock)

	if got := b.Take("user"); got != 0 {
		t.Fatalf("first take = %d, want 0", got)
	}
	if got := b.Take("user"); got != 0 {
		t.Fatalf("second take = %d, want 0", got)
	}

	now = now.Add(3 * time.Second)
	if got := b.Take("user"); got != 7 {
		t.Fatalf("third take = %d, want 7 seconds remaining", got)
	}

	// Other users have their own window.
	if got := b.Take("other"); got != 0 {
		t.Fatalf("other user take = %d, want 0", got)
	}

	// Once the oldest hit leaves the window the user is admitted again.
	now = now.Add(8 * time.Second)
	if got := b.Take("user"); got != 0 {
		t.Fatalf("take after expiry = %d, want 0", got)
	}
}

func TestBucketTakeRoundsUp(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }
	b := newBucket(5*time.Second, 1, clock)

	if got := b.Take("user"); got != 0 {
		t.Fatalf("first take = %d, want 0", got)
	}

	now = now.Add(4500 * time.Millisecond)
	if got := b.Take("user"); got != 1 {
		t.Fatalf("take with 500ms remaining = %d, want 1", got)
	}
}

func TestBucketsNamed(t *testing.T) {
	bs := NewBuckets()

	for _, name := range []BucketName{All, Render} {
		if bs.Get(name) == nil {
			t.Errorf("bucket %q missing", name)
		}
	}

	if bs.Get("nope") != nil {
		t.Error("unknown bucket should be nil")
	}
}
