package engine

import (
	"time"

	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/frames"
	"github.com/tphakala/hxdiagram/internal/render"
)

// target adapts the engine to frames.Target
type target struct {
	e *Engine
}

func (t *target) Resize(width, height, dpr float64) error {
	if err := t.e.surface.Resize(width, height, dpr); err != nil {
		return err
	}
	t.e.refreshProjection(width, height)
	return nil
}

func (t *target) Paint(tick frames.Tick) error {
	return t.e.paint(tick.Now)
}

var _ frames.Target = (*target)(nil)

// Frame assembles the paint input from the session and the transient
// interaction state.
func (e *Engine) Frame(now time.Time) render.Frame {
	f := render.Frame{
		Now:        now,
		Projection: e.proj,
		Session:    e.sess,
		Curves:     e.Curves(),
		LabelMode:  e.labelMode,
		ShowLabels: e.showLabels,
	}

	if d, ok := e.ctrl.Drag(); ok {
		typ, _ := d.Tool.ProcessType()
		f.Preview = &render.Preview{
			Type:   typ,
			CaseID: d.CaseID,
			P1:     d.Anchor,
			P2:     d.Current,
		}
	}
	if hv, ok := e.ctrl.Hover(); ok && hv.Inside {
		at := hv.At
		f.Crosshair = &at
		for _, tt := range hv.Tooltips {
			f.Tooltips = append(f.Tooltips, render.Tooltip{Text: tt.Text, X: tt.X, Y: tt.Y})
		}
	}
	return f
}

func (e *Engine) paint(now time.Time) error {
	if e.proj == nil {
		return errors.New(e.projErr).
			Category(errors.CategoryRender).
			Context("operation", "paint").
			Build()
	}
	return e.renderer.Paint(e.surface.Canvas(), e.Frame(now))
}

// PaintNow paints one frame synchronously, outside the scheduler.
func (e *Engine) PaintNow(now time.Time) error {
	w, h, dpr := e.painter.Size()
	if err := e.surface.Resize(w, h, dpr); err != nil {
		return err
	}
	return e.paint(now)
}
