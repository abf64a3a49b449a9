// Package expiry provides an in-process broker for deferred story deletion.
package expiry

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/blackmichael/instaapp/internal/domain"
)

// DefaultLease is how long a delivered job is withheld before it is delivered again.
const DefaultLease = 5 * time.Minute

// MemoryQueue is a domain.ExpiryQueue kept in memory as a min-heap ordered by run
// time. Jobs are lost on restart; the visibility filter and the periodic sweep cover
// stories whose jobs were lost.
type MemoryQueue struct {
	mu       sync.Mutex
	pending  jobHeap
	inflight map[string]leasedJob
	lease    time.Duration
}

type leasedJob struct {
	job   domain.ExpiryJob
	until time.Time
}

func NewMemoryQueue(lease time.Duration) *MemoryQueue {
	if lease <= 0 {
		lease = DefaultLease
	}
	return &MemoryQueue{
		inflight: make(map[string]leasedJob),
		lease:    lease,
	}
}

func (q *MemoryQueue) Enqueue(_ context.Context, job domain.ExpiryJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	heap.Push(&q.pending, job)
	return nil
}

// Due hands out up to limit jobs whose run time has passed, earliest first. A job
// stays leased until Complete is called or the lease runs out.
func (q *MemoryQueue) Due(_ context.Context, now time.Time, limit int) ([]domain.ExpiryJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for id, l := range q.inflight {
		if !l.until.After(now) {
			delete(q.inflight, id)
			heap.Push(&q.pending, l.job)
		}
	}

	var due []domain.ExpiryJob
	for q.pending.Len() > 0 && len(due) < limit {
		next := q.pending[0]
		if next.RunAt.After(now) {
			break
		}
		heap.Pop(&q.pending)
		q.inflight[next.ID] = leasedJob{job: next, until: now.Add(q.lease)}
		due = append(due, next)
	}
	return due, nil
}

func (q *MemoryQueue) Complete(_ context.Context, jobID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.inflight, jobID)
	return nil
}

// Len returns the number of jobs not yet completed.
func (q *MemoryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending.Len() + len(q.inflight)
}

type jobHeap []domain.ExpiryJob

func (h jobHeap) Len() int { return len(h) }

func (h jobHeap) Less(i, j int) bool {
	if h[i].RunAt.Equal(h[j].RunAt) {
		return h[i].ID < h[j].ID
	}
	return h[i].RunAt.Before(h[j].RunAt)
}

func (h jobHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *jobHeap) Push(x any) { *h = append(*h, x.(domain.ExpiryJob)) }

func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	job := old[n-1]
	*h = old[:n-1]
	return job
}

var _ domain.ExpiryQueue = (*MemoryQueue)(nil)
