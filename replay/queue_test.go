package replay

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()

	first := &Job{ID: uuid.New()}
	second := &Job{ID: uuid.New()}
	q.Push(first)
	q.Push(second)

	ctx := context.Background()

	job, err := q.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if job != first {
		t.Error("Next did not return the first pushed job")
	}

	// Next peeks; the job stays visible until Finish.
	if got := q.Len(); got != 2 {
		t.Errorf("Len = %d, want 2", got)
	}

	q.Finish()

	job, err = q.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if job != second {
		t.Error("Next did not return the second pushed job")
	}

	q.Finish()
	if got := q.Len(); got != 0 {
		t.Errorf("Len = %d, want 0", got)
	}
}

func TestQueueNextBlocksUntilPush(t *testing.T) {
	q := NewQueue()

	got := make(chan *Job, 1)
	go func() {
		job, err := q.Next(context.Background())
		if err != nil {
			t.Errorf("Next: %v", err)
		}
		got <- job
	}()

	job := &Job{ID: uuid.New()}
	time.AfterFunc(10*time.Millisecond, func() { q.Push(job) })

	select {
	case j := <-got:
		if j != job {
			t.Error("Next returned a different job")
		}
	case <-time.After(time.Second):
		t.Fatal("Next did not wake after Push")
	}
}

func TestQueueNextCancellation(t *testing.T) {
	q := NewQueue()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := q.Next(ctx); err == nil {
		t.Error("Next on cancelled context should fail")
	}
}

func TestQueueSnapshot(t *testing.T) {
	q := NewQueue()
	a := &Job{ID: uuid.New()}
	b := &Job{ID: uuid.New()}
	q.Push(a)
	q.Push(b)

	snap := q.Snapshot()
	if len(snap) != 2 || snap[0] != a || snap[1] != b {
		t.Errorf("Snapshot = %v, want [a b]", snap)
	}

	// Mutating the snapshot must not affect the queue.
	snap[0] = nil
	if q.Snapshot()[0] != a {
		t.Error("Snapshot aliases the internal slice")
	}
}
