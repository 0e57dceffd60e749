// Package interaction translates pointer and keyboard input on the drawing
// surface into session commits. It owns the transient drag and hover state,
// which never enters the session or its history.
package interaction

import (
	"github.com/tphakala/hxdiagram/internal/curves"
	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/labels"
	"github.com/tphakala/hxdiagram/internal/logger"
	"github.com/tphakala/hxdiagram/internal/projection"
	"github.com/tphakala/hxdiagram/internal/session"
)

// Minimum process extents applied on release
const (
	minDeltaH     = 0.25  // kJ/kg
	minDeltaX     = 0.1   // g/kg
	dragEpsilonH  = 0.02  // kJ/kg
	dragEpsilonX  = 0.005 // g/kg
	tooltipOffset = 12.0  // px right of the hit
	tooltipLift   = 8.0   // px above the hit
)

// Host applies commits to the edit session. Each commit is one undo step.
type Host interface {
	Bounds() projection.Bounds
	ActiveCaseID() string
	Curves() curves.Set
	PlacePoint(caseID string, at session.Coord) error
	CommitProcess(caseID string, typ session.ProcessType, p1, p2 session.Coord) error
	Undo() bool
	Redo() bool
}

// Surface is the pointer capture side of the drawing surface.
type Surface interface {
	SetPointerCapture(pointerID int) error
	ReleasePointerCapture(pointerID int) error
}

// Animator schedules repaints. frames.Painter implements it.
type Animator interface {
	Invalidate()
	StartAnimation()
	StopAnimation()
}

// Drag is the in-progress process sketch.
type Drag struct {
	Tool      Tool
	CaseID    string
	Anchor    session.Coord
	Current   session.Coord
	PointerID int
}

// Tooltip is hover text anchored in pixels.
type Tooltip struct {
	Text string
	X, Y float64
}

// Hover is the crosshair position and the tooltips for the curves under it.
type Hover struct {
	At       session.Coord
	Inside   bool // At lies within the diagram bounds
	Tooltips []Tooltip
}

// Controller is the input state machine.
type Controller struct {
	host    Host
	surface Surface
	anim    Animator
	labels  *labels.Labels
	proj    *projection.Projection

	state   State
	tool    Tool
	drag    *Drag
	hover   *Hover
	message string

	observer func(from, to State)
}

// NewController returns an idle controller with the point tool selected.
// surface and anim may be nil.
func NewController(host Host, surface Surface, anim Animator, lbl *labels.Labels) *Controller {
	if lbl == nil {
		lbl = labels.New("")
	}
	return &Controller{
		host:    host,
		surface: surface,
		anim:    anim,
		labels:  lbl,
		tool:    ToolPoint,
	}
}

// SetProjection installs the projection used to map pointer positions. It
// must be refreshed whenever the surface size or the bounds change.
func (c *Controller) SetProjection(p *projection.Projection) {
	c.proj = p
}

// SetTool selects the drawing tool. An active drag is aborted.
func (c *Controller) SetTool(t Tool) {
	if c.state == DraggingProcess {
		c.abort()
	}
	c.tool = t
}

// SetStateObserver installs a callback invoked on every state transition.
func (c *Controller) SetStateObserver(fn func(from, to State)) {
	c.observer = fn
}

// Tool returns the selected tool.
func (c *Controller) Tool() Tool { return c.tool }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Message returns the user-facing message of the last failed commit, or ""
// after a successful one.
func (c *Controller) Message() string { return c.message }

// Drag returns the active drag, if any.
func (c *Controller) Drag() (Drag, bool) {
	if c.drag == nil {
		return Drag{}, false
	}
	return *c.drag, true
}

// Hover returns the hover state, if the pointer is over the surface.
func (c *Controller) Hover() (Hover, bool) {
	if c.hover == nil || c.state == DraggingProcess {
		return Hover{}, false
	}
	return *c.hover, true
}

// HandlePointer processes one pointer event and reports whether it was
// consumed.
func (c *Controller) HandlePointer(ev PointerEvent) bool {
	switch ev.Kind {
	case PointerDown:
		return c.pointerDown(ev)
	case PointerMove:
		return c.pointerMove(ev)
	case PointerUp:
		return c.pointerUp(ev)
	case PointerLeave:
		if c.hover == nil {
			return false
		}
		c.hover = nil
		c.invalidate()
		return true
	case PointerCancel:
		if c.drag == nil || c.drag.PointerID != ev.ID {
			return false
		}
		c.abort()
		return true
	default:
		return false
	}
}

// HandleKey processes one key event and reports whether it was consumed.
func (c *Controller) HandleKey(ev KeyEvent) bool {
	switch ev.command() {
	case cmdAbort:
		c.abort()
		return true
	case cmdUndo:
		if c.state == DraggingProcess {
			c.abort()
		}
		if c.host.Undo() {
			c.message = ""
		}
		c.invalidate()
		return true
	case cmdRedo:
		if c.state == DraggingProcess {
			c.abort()
		}
		if c.host.Redo() {
			c.message = ""
		}
		c.invalidate()
		return true
	default:
		return false
	}
}

func (c *Controller) pointerDown(ev PointerEvent) bool {
	if c.proj == nil || c.state != Idle || !ev.primary() {
		return false
	}
	at := c.domainAt(ev.X, ev.Y)
	caseID := c.host.ActiveCaseID()

	if c.tool == ToolPoint {
		c.setState(PlacingPoint)
		c.report(c.host.PlacePoint(caseID, at))
		c.setState(Idle)
		c.invalidate()
		return true
	}
	if !c.tool.drags() {
		return false
	}

	if c.surface != nil {
		if err := c.surface.SetPointerCapture(ev.ID); err != nil {
			GetLogger().Debug("pointer capture failed", logger.Int("pointer_id", ev.ID), logger.Error(err))
		}
	}
	c.drag = &Drag{Tool: c.tool, CaseID: caseID, Anchor: at, Current: at, PointerID: ev.ID}
	c.setState(DraggingProcess)
	if c.anim != nil {
		c.anim.StartAnimation()
	}
	return true
}

func (c *Controller) pointerMove(ev PointerEvent) bool {
	if c.proj == nil {
		return false
	}
	if c.state == DraggingProcess {
		if ev.ID != c.drag.PointerID {
			return false
		}
		at := c.domainAt(ev.X, ev.Y)
		if c.drag.Tool == ToolAdiabatic {
			c.drag.Current = session.Coord{X: at.X, H: c.drag.Anchor.H}
		} else {
			c.drag.Current = session.Coord{X: c.drag.Anchor.X, H: at.H}
		}
		// the animation loop repaints
		return true
	}

	c.updateHover(ev.X, ev.Y)
	c.invalidate()
	return true
}

func (c *Controller) pointerUp(ev PointerEvent) bool {
	if c.state != DraggingProcess || ev.ID != c.drag.PointerID {
		return false
	}
	d := *c.drag
	typ, _ := d.Tool.ProcessType()
	p1, p2 := Endpoints(d.Tool, d.Anchor, d.Current, c.host.Bounds())
	c.report(c.host.CommitProcess(d.CaseID, typ, p1, p2))
	c.finishDrag()
	return true
}

// abort drops an active drag without committing
func (c *Controller) abort() {
	if c.state == DraggingProcess {
		c.finishDrag()
		return
	}
	c.invalidate()
}

func (c *Controller) finishDrag() {
	id := c.drag.PointerID
	c.drag = nil
	if c.anim != nil {
		c.anim.StopAnimation()
	}
	if c.surface != nil {
		if err := c.surface.ReleasePointerCapture(id); err != nil {
			GetLogger().Debug("pointer release failed", logger.Int("pointer_id", id), logger.Error(err))
		}
	}
	c.setState(Idle)
	c.invalidate()
}

func (c *Controller) updateHover(px, py float64) {
	x, h := c.proj.Unproject(px, py)
	hv := &Hover{
		At:     session.Coord{X: x, H: h},
		Inside: c.proj.Bounds().Contains(x, h),
	}

	hit := curves.HoverHit(c.host.Curves(), c.proj, px, py, curves.HitRadius)
	if hit.Isotherm != nil {
		hv.Tooltips = append(hv.Tooltips, Tooltip{
			Text: c.labels.IsothermTooltip(hit.Isotherm.Value),
			X:    hit.Isotherm.LX + tooltipOffset,
			Y:    hit.Isotherm.LY - tooltipLift,
		})
	}
	if hit.RH != nil {
		hv.Tooltips = append(hv.Tooltips, Tooltip{
			Text: c.labels.RHTooltip(hit.RH.Value),
			X:    hit.RH.LX + tooltipOffset,
			Y:    hit.RH.LY - tooltipLift,
		})
	}
	c.hover = hv
}

// domainAt unprojects and clamps a pointer position to the bounds
func (c *Controller) domainAt(px, py float64) session.Coord {
	x, h := c.proj.Unproject(px, py)
	x, h = c.host.Bounds().Clamp(x, h)
	return session.Coord{X: x, H: h}
}

func (c *Controller) report(err error) {
	if err == nil {
		c.message = ""
		return
	}
	c.message = errors.UserMessage(err)
	if c.message == "" {
		c.message = err.Error()
	}
	GetLogger().Debug("commit rejected", logger.String("tool", string(c.tool)), logger.Error(err))
}

func (c *Controller) setState(s State) {
	if s == c.state {
		return
	}
	from := c.state
	c.state = s
	if c.observer != nil {
		c.observer(from, s)
	}
}

func (c *Controller) invalidate() {
	if c.anim != nil {
		c.anim.Invalidate()
	}
}

// Endpoints turns a drag into process endpoints. Heater and cooler keep the
// anchor's x and adiabatic keeps its h; a drag shorter than the minimum
// extent is widened to it. An adiabatic anchor too close to XMax moves left
// so the widened segment fits the domain.
func Endpoints(tool Tool, anchor, current session.Coord, b projection.Bounds) (p1, p2 session.Coord) {
	p1, p2 = anchor, current
	switch tool {
	case ToolHeater:
		p2.X = p1.X
		if !(p2.H > p1.H+dragEpsilonH) {
			p2.H = p1.H + minDeltaH
		}
	case ToolCooler:
		p2.X = p1.X
		if !(p2.H < p1.H-dragEpsilonH) {
			p2.H = p1.H - minDeltaH
		}
	case ToolAdiabatic:
		p2.H = p1.H
		if !(p2.X > p1.X+dragEpsilonX) {
			p2.X = p1.X + minDeltaX
		}
		if p2.X > b.XMax {
			// anchored at the edge: shift the segment left to fit
			p2.X = b.XMax
			p1.X = min(p1.X, b.XMax-minDeltaX)
		}
	}
	return p1, p2
}
