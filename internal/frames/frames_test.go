package frames

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	mu        sync.Mutex
	ticks     []Tick
	resizes   int
	resizeErr error
	paintErr  error
}

func (f *fakeTarget) Resize(_, _, _ float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resizes++
	return f.resizeErr
}

func (f *fakeTarget) Paint(t Tick) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ticks = append(f.ticks, t)
	return f.paintErr
}

func (f *fakeTarget) paints() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ticks)
}

type countingRecorder struct {
	mu    sync.Mutex
	kinds map[string]int
}

func (c *countingRecorder) RecordFrame(kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kinds == nil {
		c.kinds = make(map[string]int)
	}
	c.kinds[kind]++
}

// lateScheduler ignores Cancel, like a loop that already dequeued the
// callback when Cancel arrives.
type lateScheduler struct {
	fns  []Callback
	next Handle
}

func (l *lateScheduler) Request(fn Callback) Handle {
	l.fns = append(l.fns, fn)
	l.next++
	return l.next
}

func (l *lateScheduler) Cancel(Handle) {}

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManualStepOrderAndDeferral(t *testing.T) {
	t.Parallel()

	m := NewManual()
	var order []int
	m.Request(func(time.Time) { order = append(order, 1) })
	m.Request(func(time.Time) {
		order = append(order, 2)
		m.Request(func(time.Time) { order = append(order, 3) })
	})

	assert.Equal(t, 2, m.Step(t0))
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 1, m.Pending(), "callback requested during a step waits for the next one")

	assert.Equal(t, 1, m.Step(t0))
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 0, m.Step(t0))
}

func TestManualCancel(t *testing.T) {
	t.Parallel()

	m := NewManual()
	ran := false
	h := m.Request(func(time.Time) { ran = true })
	require.NotZero(t, h)

	m.Cancel(h)
	m.Cancel(h)
	m.Cancel(Handle(999))

	assert.Equal(t, 0, m.Step(t0))
	assert.False(t, ran)
	assert.Zero(t, m.Request(nil))
}

func TestInvalidateCoalesces(t *testing.T) {
	t.Parallel()

	m := NewManual()
	target := &fakeTarget{}
	p := NewPainter(m, target, 800, 600, 1)

	for range 5 {
		p.Invalidate()
	}
	assert.Equal(t, 1, m.Pending())
	assert.True(t, p.Pending())

	m.Step(t0)
	assert.Equal(t, 1, target.paints())
	assert.Equal(t, 1, target.resizes, "first frame initializes the backing store")
	assert.False(t, p.Pending())

	p.Invalidate()
	m.Step(t0)
	assert.Equal(t, 2, target.paints())
	assert.Equal(t, 1, target.resizes, "unchanged size does not reinitialize")
}

func TestResizeCancelsPendingFrame(t *testing.T) {
	t.Parallel()

	m := NewManual()
	target := &fakeTarget{}
	p := NewPainter(m, target, 800, 600, 1)

	p.Invalidate()
	p.Resize(1024, 768, 2)
	assert.Equal(t, 1, m.Pending())

	m.Step(t0)
	require.Equal(t, 1, target.paints())
	tick := target.ticks[0]
	assert.Equal(t, KindResize, tick.Kind)
	assert.InDelta(t, 1024.0, tick.Width, 0)
	assert.InDelta(t, 768.0, tick.Height, 0)
	assert.InDelta(t, 2.0, tick.DPR, 0)

	w, h, dpr := p.Size()
	assert.InDelta(t, 1024.0, w, 0)
	assert.InDelta(t, 768.0, h, 0)
	assert.InDelta(t, 2.0, dpr, 0)
}

func TestDequeuedFrameKeepsNewerPending(t *testing.T) {
	t.Parallel()

	s := &lateScheduler{}
	target := &fakeTarget{}
	p := NewPainter(s, target, 800, 600, 1)

	p.Invalidate()
	p.Resize(1024, 768, 1)
	require.Len(t, s.fns, 2)

	// the cancelled frame still runs
	s.fns[0](t0)
	assert.True(t, p.Pending(), "resize frame stays pending")
	assert.Equal(t, 0, target.paints())

	p.Invalidate()
	assert.Len(t, s.fns, 2, "no duplicate frame scheduled")

	s.fns[1](t0)
	require.Equal(t, 1, target.paints())
	assert.Equal(t, KindResize, target.ticks[0].Kind)
	assert.False(t, p.Pending())
}

func TestStoppedDequeuedFrameDoesNotPaint(t *testing.T) {
	t.Parallel()

	s := &lateScheduler{}
	target := &fakeTarget{}
	p := NewPainter(s, target, 800, 600, 1)

	p.Invalidate()
	p.Stop()
	s.fns[0](t0)
	assert.Equal(t, 0, target.paints())
	assert.False(t, p.Pending())
}

func TestResizeNonPositiveDPR(t *testing.T) {
	t.Parallel()

	p := NewPainter(NewManual(), &fakeTarget{}, 100, 100, 0)
	_, _, dpr := p.Size()
	assert.InDelta(t, 1.0, dpr, 0)

	p.Resize(100, 100, -3)
	_, _, dpr = p.Size()
	assert.InDelta(t, 1.0, dpr, 0)
}

func TestAnimationReschedulesUntilStopped(t *testing.T) {
	t.Parallel()

	m := NewManual()
	target := &fakeTarget{}
	rec := &countingRecorder{}
	p := NewPainter(m, target, 800, 600, 1)
	p.SetRecorder(rec)

	p.StartAnimation()
	p.StartAnimation()
	assert.True(t, p.Animating())
	assert.Equal(t, 1, m.Pending())

	for range 3 {
		m.Step(t0)
	}
	assert.Equal(t, 3, target.paints())

	p.Invalidate()
	assert.False(t, p.Pending(), "animation already repaints every frame")

	p.StopAnimation()
	assert.False(t, p.Animating())
	assert.True(t, p.Pending(), "stop requests one final frame")

	m.Step(t0)
	assert.Equal(t, 4, target.paints())
	assert.Equal(t, 0, m.Pending())
	assert.Equal(t, 3, rec.kinds[KindAnimation])
	assert.Equal(t, 1, rec.kinds[KindEvent])
}

func TestStopAnimationWithoutAnimationIsNoop(t *testing.T) {
	t.Parallel()

	m := NewManual()
	p := NewPainter(m, &fakeTarget{}, 10, 10, 1)
	p.StopAnimation()
	assert.Equal(t, 0, m.Pending())
}

func TestStopCancelsEverything(t *testing.T) {
	t.Parallel()

	m := NewManual()
	target := &fakeTarget{}
	p := NewPainter(m, target, 10, 10, 1)
	p.Resize(20, 20, 1)
	p.StartAnimation()
	p.Stop()

	assert.Equal(t, 0, m.Step(t0))
	assert.Equal(t, 0, target.paints())
	assert.False(t, p.Animating())
}

func TestResizeFailureSkipsPaint(t *testing.T) {
	t.Parallel()

	m := NewManual()
	target := &fakeTarget{resizeErr: errors.New("no memory")}
	p := NewPainter(m, target, 10, 10, 1)
	p.Invalidate()
	m.Step(t0)

	assert.Equal(t, 1, target.resizes)
	assert.Equal(t, 0, target.paints())
}

func TestPaintErrorStillCountsFrame(t *testing.T) {
	t.Parallel()

	m := NewManual()
	rec := &countingRecorder{}
	p := NewPainter(m, &fakeTarget{paintErr: errors.New("boom")}, 10, 10, 1)
	p.SetRecorder(rec)
	p.Invalidate()
	m.Step(t0)

	assert.Equal(t, 1, rec.kinds[KindEvent])
}

func TestLoopRunsCallbacks(t *testing.T) {
	t.Parallel()

	l := NewLoop(time.Millisecond)
	defer l.Close()

	var ran atomic.Int32
	done := make(chan struct{})
	l.Request(func(time.Time) {
		ran.Add(1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not run callback")
	}
	assert.Equal(t, int32(1), ran.Load())
}

func TestLoopCancelAndClose(t *testing.T) {
	t.Parallel()

	l := NewLoop(0)
	var ran atomic.Bool
	h := l.Request(func(time.Time) { ran.Store(true) })
	l.Cancel(h)
	l.Close()
	l.Close()

	assert.Zero(t, l.Request(func(time.Time) {}), "closed loop rejects requests")
	assert.False(t, ran.Load())
}

func TestPainterOnLoop(t *testing.T) {
	t.Parallel()

	l := NewLoop(time.Millisecond)
	defer l.Close()

	target := &fakeTarget{}
	p := NewPainter(l, target, 100, 100, 1)
	p.StartAnimation()

	require.Eventually(t, func() bool { return target.paints() >= 3 }, 2*time.Second, time.Millisecond)
	p.Stop()
}
