package replay

import (
	"context"
	"sync"

	"github.com/MaxOhn/shishabot/telemetry"
)

// Queue is a FIFO of render jobs. Jobs stay in the queue while they are
// being processed so status snapshots include the active job; the worker
// removes them on completion.
type Queue struct {
	mu     sync.Mutex
	jobs   []*Job
	notify chan struct{}
}

func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Push appends a job and wakes the worker.
func (q *Queue) Push(job *Job) {
	q.mu.Lock()
	q.jobs = append(q.jobs, job)
	telemetry.SetReplayQueueDepth(len(q.jobs))
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Next blocks until a job is at the front of the queue and returns it
// without removing it.
func (q *Queue) Next(ctx context.Context) (*Job, error) {
	for {
		q.mu.Lock()
		if len(q.jobs) > 0 {
			job := q.jobs[0]
			q.mu.Unlock()
			return job, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.notify:
		}
	}
}

// Finish removes the front job after the worker is done with it.
func (q *Queue) Finish() {
	q.mu.Lock()
	if len(q.jobs) > 0 {
		q.jobs = q.jobs[1:]
	}
	telemetry.SetReplayQueueDepth(len(q.jobs))
	q.mu.Unlock()
}

// Snapshot returns the queued jobs in order, the active one first.
func (q *Queue) Snapshot() []*Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	jobs := make([]*Job, len(q.jobs))
	copy(jobs, q.jobs)

	return jobs
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}
