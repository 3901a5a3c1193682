package page

import (
	"time"

	"github.com/tomz197/nightsky/internal/host"
)

type frameRequest struct {
	id        host.FrameID
	fn        func(time.Time)
	cancelled bool
}

// frameQueue holds animation callbacks until the next frame.
type frameQueue struct {
	next    host.FrameID
	pending []*frameRequest
	live    map[host.FrameID]*frameRequest
}

func newFrameQueue() frameQueue {
	return frameQueue{live: make(map[host.FrameID]*frameRequest)}
}

func (q *frameQueue) request(fn func(time.Time)) host.FrameID {
	q.next++
	r := &frameRequest{id: q.next, fn: fn}
	q.pending = append(q.pending, r)
	q.live[r.id] = r
	return r.id
}

func (q *frameQueue) cancel(id host.FrameID) {
	if r, ok := q.live[id]; ok {
		r.cancelled = true
		delete(q.live, id)
	}
}

func (q *frameQueue) run(now time.Time) {
	batch := q.pending
	q.pending = nil
	for _, r := range batch {
		if r.cancelled {
			continue
		}
		delete(q.live, r.id)
		r.fn(now)
	}
}

func (q *frameQueue) len() int {
	return len(q.live)
}
