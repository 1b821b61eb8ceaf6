package netsuite

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

var (
	// ErrQueueFull is returned when the request queue limit is reached.
	ErrQueueFull = errors.New("netsuite: request queue is full")

	// ErrAcquireTimeout is returned when waiting for a request slot times out.
	ErrAcquireTimeout = errors.New("netsuite: timeout waiting for a request slot")
)

// requestSemaphore caps in-flight requests to the account's web services
// concurrency allowance. Queueing client-side keeps excess requests from
// ever reaching NetSuite, where they would burn governance units just to
// be rejected.
type requestSemaphore struct {
	slots    chan struct{}
	limit    int
	waiters  int32 // atomic
	maxQueue int
	timeout  time.Duration
}

// newRequestSemaphore creates a semaphore with the given limits.
// limit: maximum concurrent requests.
// maxQueue: maximum waiters (-1 = unbounded, 0 = no queue).
// timeout: how long Acquire waits for a slot.
func newRequestSemaphore(limit, maxQueue int, timeout time.Duration) *requestSemaphore {
	if limit < 1 {
		limit = 1
	}
	return &requestSemaphore{
		slots:    make(chan struct{}, limit),
		limit:    limit,
		maxQueue: maxQueue,
		timeout:  timeout,
	}
}

// Acquire blocks until a request slot is available or timeout/cancel.
func (s *requestSemaphore) Acquire(ctx context.Context) error {
	// Grab a free slot without joining the queue, so maxQueue=0 still
	// admits requests while slots are open.
	select {
	case s.slots <- struct{}{}:
		return nil
	default:
	}

	queued := atomic.AddInt32(&s.waiters, 1)
	defer atomic.AddInt32(&s.waiters, -1)

	if s.maxQueue >= 0 && int(queued) > s.maxQueue {
		return ErrQueueFull
	}

	timeout := s.timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case s.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrAcquireTimeout
	}
}

// Release returns a request slot. It must only be called after a
// successful Acquire.
func (s *requestSemaphore) Release() {
	select {
	case <-s.slots:
	default:
		// Unpaired Release; nothing to return.
	}
}

// Stats returns current utilization: busy slots, waiters, and the
// concurrency limit.
func (s *requestSemaphore) Stats() (active, queued, limit int) {
	return len(s.slots), int(atomic.LoadInt32(&s.waiters)), s.limit
}
