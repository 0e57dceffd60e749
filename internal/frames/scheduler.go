// Package frames schedules repaints. It provides a frame Scheduler with a
// real ticker-driven implementation and a manual one for tests, and the
// Painter that coalesces invalidations, handles resizes and runs the
// self-rescheduling animation loop used while a drag is active.
package frames

import (
	"slices"
	"sync"
	"time"
)

// Handle identifies a scheduled frame callback. The zero Handle is never
// returned for a scheduled callback.
type Handle uint64

// Callback runs once per requested frame.
type Callback func(now time.Time)

// Scheduler runs callbacks on the next frame.
type Scheduler interface {
	// Request schedules fn for the next frame.
	Request(fn Callback) Handle
	// Cancel drops a scheduled callback. Unknown or already run handles are ignored.
	Cancel(h Handle)
}

// queue is the ordered set of pending callbacks shared by the schedulers
type queue struct {
	mu      sync.Mutex
	next    Handle
	order   []Handle
	pending map[Handle]Callback
	closed  bool
}

func (q *queue) request(fn Callback) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed || fn == nil {
		return 0
	}
	if q.pending == nil {
		q.pending = make(map[Handle]Callback)
	}
	q.next++
	q.pending[q.next] = fn
	q.order = append(q.order, q.next)
	return q.next
}

func (q *queue) cancel(h Handle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.pending[h]; !ok {
		return
	}
	delete(q.pending, h)
	q.order = slices.DeleteFunc(q.order, func(o Handle) bool { return o == h })
}

// take removes and returns every pending callback in request order
func (q *queue) take() []Callback {
	q.mu.Lock()
	defer q.mu.Unlock()
	fns := make([]Callback, 0, len(q.order))
	for _, h := range q.order {
		fns = append(fns, q.pending[h])
	}
	q.order = nil
	clear(q.pending)
	return fns
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.order)
}

func (q *queue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.order = nil
	clear(q.pending)
}

// Manual is a deterministic Scheduler. Callbacks run only when Step is
// called; callbacks requested during a step run on the following step.
type Manual struct {
	q queue
}

// NewManual returns an empty manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

// Request implements Scheduler.
func (m *Manual) Request(fn Callback) Handle { return m.q.request(fn) }

// Cancel implements Scheduler.
func (m *Manual) Cancel(h Handle) { m.q.cancel(h) }

// Pending returns the number of scheduled callbacks.
func (m *Manual) Pending() int { return m.q.len() }

// Step runs the callbacks pending at call time and returns how many ran.
func (m *Manual) Step(now time.Time) int {
	fns := m.q.take()
	for _, fn := range fns {
		fn(now)
	}
	return len(fns)
}

// DefaultInterval is one frame at 60 Hz
const DefaultInterval = time.Second / 60

// Loop is a ticker-driven Scheduler. Callbacks run serialized on the loop
// goroutine. Close must be called to stop it.
type Loop struct {
	q         queue
	interval  time.Duration
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewLoop starts a loop ticking at interval; a non-positive interval selects
// DefaultInterval.
func NewLoop(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	l := &Loop{
		interval: interval,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go l.run()
	return l
}

// Request implements Scheduler. It returns 0 after Close.
func (l *Loop) Request(fn Callback) Handle { return l.q.request(fn) }

// Cancel implements Scheduler.
func (l *Loop) Cancel(h Handle) { l.q.cancel(h) }

// Close stops the loop and waits for a running frame to finish. Pending
// callbacks are dropped. Close must not be called from a callback.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.q.close()
		close(l.quit)
	})
	<-l.done
}

func (l *Loop) run() {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.quit:
			return
		case now := <-ticker.C:
			for _, fn := range l.q.take() {
				fn(now)
			}
		}
	}
}

var (
	_ Scheduler = (*Manual)(nil)
	_ Scheduler = (*Loop)(nil)
)
