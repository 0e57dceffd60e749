package frames

import (
	"sync"
	"time"

	"github.com/tphakala/hxdiagram/internal/logger"
)

// Frame kinds
const (
	KindEvent     = "event"
	KindAnimation = "animation"
	KindResize    = "resize"
)

// Tick describes one painted frame.
type Tick struct {
	Now    time.Time
	Kind   string
	Width  float64
	Height float64
	DPR    float64
}

// Target is what a Painter paints on.
type Target interface {
	// Resize reinitializes the backing store for a logical size and density.
	Resize(width, height, dpr float64) error
	// Paint draws one frame.
	Paint(t Tick) error
}

// FrameRecorder receives per-frame statistics.
type FrameRecorder interface {
	RecordFrame(kind string)
}

// Painter coalesces repaint requests onto a Scheduler.
//
// At most one event frame is pending at any time. Resize cancels the
// pending frame before scheduling a new one, so a frame never paints with
// stale dimensions. While animating, every animation frame schedules the
// next one until StopAnimation.
type Painter struct {
	sched  Scheduler
	target Target

	mu        sync.Mutex
	pending   Handle
	pendKind  string
	animation Handle
	animating bool
	resized   bool
	width     float64
	height    float64
	dpr       float64
	recorder  FrameRecorder
}

// NewPainter returns a painter for target with an initial logical size.
func NewPainter(sched Scheduler, target Target, width, height, dpr float64) *Painter {
	if dpr <= 0 {
		dpr = 1
	}
	return &Painter{
		sched:   sched,
		target:  target,
		width:   width,
		height:  height,
		dpr:     dpr,
		resized: true,
	}
}

// SetRecorder installs a frame statistics recorder.
func (p *Painter) SetRecorder(r FrameRecorder) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.recorder = r
}

// Invalidate requests a repaint on the next frame. Repeated calls before
// the frame runs are coalesced, and an active animation already repaints
// every frame.
func (p *Painter) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending != 0 || p.animating {
		return
	}
	p.schedulePendingLocked(KindEvent)
}

// Resize records a new logical size and pixel density. A pending frame is
// cancelled and rescheduled so it paints with the new dimensions.
func (p *Painter) Resize(width, height, dpr float64) {
	if dpr <= 0 {
		dpr = 1
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pending != 0 {
		p.sched.Cancel(p.pending)
		p.pending = 0
	}
	if width != p.width || height != p.height || dpr != p.dpr {
		p.resized = true
	}
	p.width, p.height, p.dpr = width, height, dpr
	p.schedulePendingLocked(KindResize)
}

// StartAnimation begins the self-rescheduling animation loop. It is a no-op
// while already animating.
func (p *Painter) StartAnimation() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.animating {
		return
	}
	p.animating = true
	p.animation = p.sched.Request(p.animationFrame)
}

// StopAnimation ends the animation loop and requests one final frame so the
// last animated state does not linger.
func (p *Painter) StopAnimation() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.animating {
		return
	}
	p.animating = false
	if p.animation != 0 {
		p.sched.Cancel(p.animation)
		p.animation = 0
	}
	if p.pending == 0 {
		p.schedulePendingLocked(KindEvent)
	}
}

// Animating reports whether the animation loop is running.
func (p *Painter) Animating() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.animating
}

// Pending reports whether an event or resize frame is scheduled.
func (p *Painter) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != 0
}

// Size returns the current logical size and density.
func (p *Painter) Size() (width, height, dpr float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width, p.height, p.dpr
}

// Stop cancels every scheduled frame, including the animation loop.
func (p *Painter) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.animating = false
	if p.animation != 0 {
		p.sched.Cancel(p.animation)
		p.animation = 0
	}
	if p.pending != 0 {
		p.sched.Cancel(p.pending)
		p.pending = 0
	}
}

func (p *Painter) schedulePendingLocked(kind string) {
	p.pendKind = kind
	h := new(Handle)
	*h = p.sched.Request(func(now time.Time) { p.pendingFrame(now, h) })
	p.pending = *h
}

// pendingFrame runs a scheduled event or resize frame. A callback whose
// handle was cancelled or replaced after the scheduler dequeued it leaves
// the newer pending frame alone and does not paint.
func (p *Painter) pendingFrame(now time.Time, h *Handle) {
	p.mu.Lock()
	if p.pending == 0 || p.pending != *h {
		p.mu.Unlock()
		return
	}
	p.pending = 0
	kind := p.pendKind
	p.mu.Unlock()

	p.paint(now, kind)
}

func (p *Painter) animationFrame(now time.Time) {
	p.mu.Lock()
	if !p.animating {
		p.mu.Unlock()
		return
	}
	p.animation = p.sched.Request(p.animationFrame)
	p.mu.Unlock()

	p.paint(now, KindAnimation)
}

func (p *Painter) paint(now time.Time, kind string) {
	p.mu.Lock()
	tick := Tick{Now: now, Kind: kind, Width: p.width, Height: p.height, DPR: p.dpr}
	resize := p.resized
	p.resized = false
	rec := p.recorder
	p.mu.Unlock()

	if resize {
		if err := p.target.Resize(tick.Width, tick.Height, tick.DPR); err != nil {
			GetLogger().Warn("backing store resize failed",
				logger.Float64("width", tick.Width),
				logger.Float64("height", tick.Height),
				logger.Float64("dpr", tick.DPR),
				logger.Error(err))
			return
		}
	}
	if err := p.target.Paint(tick); err != nil {
		GetLogger().Debug("frame paint failed",
			logger.String("kind", kind),
			logger.Error(err))
	}
	if rec != nil {
		rec.RecordFrame(kind)
	}
}
