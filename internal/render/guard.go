package render

import (
	"math"

	"github.com/tphakala/hxdiagram/internal/errors"
)

// guard forwards draw calls while every coordinate is finite. The first
// non-finite value records an error and every later call is dropped.
type guard struct {
	c     Canvas
	layer string
	err   error
}

func (g *guard) ok(vals ...float64) bool {
	if g.err != nil {
		return false
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			g.err = errors.Newf("non-finite coordinate while painting %s", g.layer).
				Category(errors.CategoryRender).
				Context("layer", g.layer).
				Build()
			return false
		}
	}
	return true
}

func (g *guard) okPts(pts []Pt) bool {
	for _, p := range pts {
		if !g.ok(p.X, p.Y) {
			return false
		}
	}
	return g.err == nil
}

func (g *guard) Size() (width, height float64) { return g.c.Size() }

func (g *guard) Clear(color string) {
	if g.err == nil {
		g.c.Clear(color)
	}
}

func (g *guard) FillRect(x, y, w, h float64, f Fill) {
	if g.ok(x, y, w, h) {
		g.c.FillRect(x, y, w, h, f)
	}
}

func (g *guard) StrokeRect(x, y, w, h float64, s Stroke) {
	if g.ok(x, y, w, h, s.Width, s.DashOffset) {
		g.c.StrokeRect(x, y, w, h, s)
	}
}

func (g *guard) Line(x1, y1, x2, y2 float64, s Stroke) {
	if g.ok(x1, y1, x2, y2, s.Width, s.DashOffset) {
		g.c.Line(x1, y1, x2, y2, s)
	}
}

func (g *guard) Polyline(pts []Pt, s Stroke) {
	if g.okPts(pts) && g.ok(s.Width, s.DashOffset) {
		g.c.Polyline(pts, s)
	}
}

func (g *guard) FillPolygon(pts []Pt, f Fill) {
	if g.okPts(pts) {
		g.c.FillPolygon(pts, f)
	}
}

func (g *guard) Circle(cx, cy, r float64, f Fill, s Stroke) {
	if g.ok(cx, cy, r) {
		g.c.Circle(cx, cy, r, f, s)
	}
}

func (g *guard) Text(text string, x, y float64, style TextStyle) {
	if g.ok(x, y, style.Rotate) {
		g.c.Text(text, x, y, style)
	}
}

func (g *guard) MeasureText(text string, size float64) float64 {
	return g.c.MeasureText(text, size)
}

var _ Canvas = (*guard)(nil)
