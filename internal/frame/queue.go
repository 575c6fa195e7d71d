// Package frame schedules per-display-refresh callbacks.
//
// A host owns a Queue and calls Dispatch once per refresh (after vsync on
// the window host, on every ticker beat on the terminal host). Components
// never sleep or run timers of their own; they request the next frame from
// the Requester they were given, the same way a browser page would use
// requestAnimationFrame.
package frame

import (
	"time"

	"github.com/Faultbox/floating-geometry/internal/clock"
)

// RequestID identifies a pending frame request.
type RequestID uint64

// Callback runs once for a frame. now is the frame timestamp.
type Callback func(now time.Time)

// Requester hands out one-shot frame callbacks.
type Requester interface {
	RequestFrame(cb Callback) RequestID
	CancelFrame(id RequestID)
}

type request struct {
	id RequestID
	cb Callback
}

// Queue is a host-driven Requester. It is not safe for concurrent use; the
// host calls every method from its loop goroutine.
type Queue struct {
	clock   clock.Clock
	next    RequestID
	pending []request
	running []request
}

// NewQueue creates a queue stamping frames with c.
func NewQueue(c clock.Clock) *Queue {
	if c == nil {
		c = clock.Real{}
	}
	return &Queue{
		clock:   c,
		pending: make([]request, 0, 4),
	}
}

// RequestFrame schedules cb for the next Dispatch.
func (q *Queue) RequestFrame(cb Callback) RequestID {
	q.next++
	q.pending = append(q.pending, request{id: q.next, cb: cb})
	return q.next
}

// CancelFrame drops a pending request. Unknown or already-run IDs are ignored.
func (q *Queue) CancelFrame(id RequestID) {
	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	// Cancelled by an earlier callback of the batch being dispatched.
	for i := range q.running {
		if q.running[i].id == id {
			q.running[i].cb = nil
			return
		}
	}
}

// Dispatch runs every callback requested before the call and returns how
// many ran. Callbacks requested while dispatching wait for the next call.
func (q *Queue) Dispatch() int {
	if len(q.pending) == 0 {
		return 0
	}

	q.running, q.pending = q.pending, make([]request, 0, cap(q.pending))
	now := q.clock.Now()

	ran := 0
	for i := range q.running {
		cb := q.running[i].cb
		if cb == nil {
			continue
		}
		q.running[i].cb = nil
		cb(now)
		ran++
	}
	q.running = q.running[:0]
	return ran
}

// Pending returns the number of outstanding requests.
func (q *Queue) Pending() int {
	return len(q.pending)
}
