package render

import (
	"math"
	"time"

	"golang.org/x/time/rate"

	"github.com/tphakala/hxdiagram/internal/curves"
	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/labels"
	"github.com/tphakala/hxdiagram/internal/logger"
	"github.com/tphakala/hxdiagram/internal/observability/metrics"
	"github.com/tphakala/hxdiagram/internal/projection"
	"github.com/tphakala/hxdiagram/internal/session"
	"github.com/tphakala/hxdiagram/internal/theme"
)

// errorLogInterval limits how often aborted paint passes are logged
const errorLogInterval = 5 * time.Second

// Preview is the process being dragged.
type Preview struct {
	Type   session.ProcessType
	CaseID string
	P1, P2 session.Coord
}

// Tooltip is hover text anchored in logical pixels.
type Tooltip struct {
	Text string
	X, Y float64
}

// Frame is everything one paint pass needs.
type Frame struct {
	Now        time.Time
	Projection *projection.Projection
	Session    *session.Session
	Curves     curves.Set
	LabelMode  string
	ShowLabels bool
	Preview    *Preview
	Crosshair  *session.Coord // nil hides the crosshair
	Tooltips   []Tooltip
}

// PaintRecorder receives paint statistics. DiagramMetrics implements it.
type PaintRecorder interface {
	RecordDuration(operation string, seconds float64)
	RecordRenderError(reason string)
}

// Renderer paints frames. It keeps no per-frame state.
type Renderer struct {
	labels  *labels.Labels
	metrics PaintRecorder
	errLog  *rate.Sometimes
}

// NewRenderer returns a renderer; metrics may be nil.
func NewRenderer(lbl *labels.Labels, rec PaintRecorder) *Renderer {
	if lbl == nil {
		lbl = labels.New("")
	}
	return &Renderer{
		labels:  lbl,
		metrics: rec,
		errLog:  &rate.Sometimes{First: 1, Interval: errorLogInterval},
	}
}

type layer struct {
	name  string
	paint func(c Canvas, f Frame)
}

// Paint draws one frame in layer order: background, grid and axes, curves,
// processes, drag preview, points, crosshair and tooltips. When a layer
// produces a non-finite coordinate the pass stops, the canvas shows an error
// placeholder and the error is returned.
func (r *Renderer) Paint(c Canvas, f Frame) error {
	start := time.Now()

	if f.Projection == nil || f.Session == nil {
		return errors.Newf("frame is missing projection or session").
			Category(errors.CategoryRender).
			Build()
	}

	g := &guard{c: c}
	layers := [...]layer{
		{"background", r.background},
		{"grid", r.grid},
		{"curves", r.curves},
		{"processes", r.processes},
		{"preview", r.preview},
		{"points", r.points},
		{"crosshair", r.crosshair},
		{"tooltips", r.tooltips},
	}
	for _, l := range layers {
		g.layer = l.name
		l.paint(g, f)
		if g.err != nil {
			break
		}
	}

	if g.err != nil {
		r.placeholder(c)
		if r.metrics != nil {
			r.metrics.RecordRenderError(g.layer)
		}
		r.errLog.Do(func() {
			GetLogger().Error("paint pass aborted",
				logger.String("layer", g.layer),
				logger.Error(g.err))
		})
		return g.err
	}

	if r.metrics != nil {
		r.metrics.RecordDuration(metrics.OpPaint, time.Since(start).Seconds())
	}
	return nil
}

// placeholder replaces a failed frame with the error text
func (r *Renderer) placeholder(c Canvas) {
	c.Clear(theme.Background)
	c.Text(r.labels.ComputationError(), 16, 24, TextStyle{Color: theme.ErrorText, Size: 14})
}

// layout holds the size-dependent text metrics
type layout struct {
	font       float64
	axisFont   float64
	tickOffset float64
	titleInset float64
	titleLeft  float64
}

func layoutFor(p *projection.Projection) layout {
	if p.Compact() {
		return layout{font: 11, axisFont: 12, tickOffset: 16, titleInset: 6, titleLeft: 20}
	}
	return layout{font: 12, axisFont: 13, tickOffset: 20, titleInset: 8, titleLeft: 24}
}

func (r *Renderer) background(c Canvas, f Frame) {
	w, h := f.Projection.Size()
	c.FillRect(0, 0, w, h, Fill{Color: theme.Background})
}

func (r *Renderer) grid(c Canvas, f Frame) {
	lay := layoutFor(f.Projection)
	rect := f.Projection.PlotRect()
	tick := TextStyle{Color: theme.TickText, Size: lay.font}

	for _, gl := range f.Projection.Grid() {
		color := theme.GridMinor
		if gl.Major {
			color = theme.GridMajor
		}
		c.Line(gl.X1, gl.Y1, gl.X2, gl.Y2, Stroke{Color: color, Width: theme.GridWidth})
		if !gl.Labeled {
			continue
		}
		text := r.labels.Number(gl.Value, 0)
		if gl.Vertical {
			tick.Anchor = AnchorMiddle
			c.Text(text, gl.X1, rect.Y+rect.H+lay.tickOffset, tick)
		} else {
			tick.Anchor = AnchorEnd
			c.Text(text, rect.X-lay.tickOffset, gl.Y1+4, tick)
		}
	}

	_, h := f.Projection.Size()
	title := TextStyle{Color: theme.AxisText, Size: lay.axisFont, Anchor: AnchorMiddle}
	c.Text(r.labels.AxisX(), rect.X+rect.W/2, h-lay.titleInset, title)
	title.Rotate = -math.Pi / 2
	c.Text(r.labels.AxisH(), lay.titleLeft, rect.Y+rect.H/2, title)
}

func (r *Renderer) curves(c Canvas, f Frame) {
	draw := func(line curves.Polyline) {
		if len(line.Points) < 2 {
			return
		}
		pts := make([]Pt, len(line.Points))
		for i, p := range line.Points {
			pts[i].X, pts[i].Y = f.Projection.Project(p.X, p.H)
		}
		color, width := theme.CurveStyle(line.Kind)
		c.Polyline(pts, Stroke{Color: color, Width: width})
	}
	for _, line := range f.Curves.Isotherms {
		draw(line)
	}
	for _, line := range f.Curves.RHCurves {
		draw(line)
	}
	if f.Curves.Saturation != nil {
		draw(*f.Curves.Saturation)
	}
}

func (r *Renderer) processes(c Canvas, f Frame) {
	visible := visibleCases(f.Session)
	for _, pr := range f.Session.Processes {
		if !visible[pr.CaseID] {
			continue
		}
		color := theme.CaseColor(f.Session, pr.CaseID)
		x1, y1 := f.Projection.Project(pr.P1.X, pr.P1.H)
		x2, y2 := f.Projection.Project(pr.P2.X, pr.P2.H)

		c.Line(x1, y1, x2, y2, Stroke{Color: color, Width: theme.ProcessHaloWidth, Alpha: theme.ProcessHaloAlpha})
		c.Line(x1, y1, x2, y2, Stroke{Color: color, Width: theme.ProcessWidth, Dash: theme.ProcessDash(pr.Type)})
		arrowHead(c, x1, y1, x2, y2, color)
	}
}

func (r *Renderer) preview(c Canvas, f Frame) {
	pv := f.Preview
	if pv == nil {
		return
	}
	color := theme.CaseColor(f.Session, pv.CaseID)
	ms := float64(f.Now.UnixNano()) / 1e6
	phase := math.Mod(ms/120, 20)
	x1, y1 := f.Projection.Project(pv.P1.X, pv.P1.H)
	x2, y2 := f.Projection.Project(pv.P2.X, pv.P2.H)

	c.Line(x1, y1, x2, y2, Stroke{Color: color, Width: theme.PreviewHaloWidth, Alpha: theme.PreviewHaloAlpha})
	c.Line(x1, y1, x2, y2, Stroke{
		Color:      color,
		Width:      theme.PreviewWidth,
		Dash:       theme.PreviewDash,
		DashOffset: -phase,
	})
	arrowHead(c, x1, y1, x2, y2, color)

	radius := theme.MarkerRadius + 2*math.Sin(ms/150)
	c.Circle(x2, y2, radius,
		Fill{Color: color, Alpha: theme.PreviewPulseAlpha},
		Stroke{Color: theme.MarkerStroke, Width: 1})
}

func (r *Renderer) points(c Canvas, f Frame) {
	lay := layoutFor(f.Projection)
	visible := visibleCases(f.Session)
	for i, p := range f.Session.Points {
		if !visible[p.CaseID] {
			continue
		}
		px, py := f.Projection.Project(p.X, p.H)
		c.Circle(px, py, theme.MarkerRadius,
			Fill{Color: theme.CaseColor(f.Session, p.CaseID)},
			Stroke{Color: theme.MarkerStroke, Width: theme.MarkerStrokeWidth})
		if f.ShowLabels {
			c.Text(r.labels.PointLabel(f.LabelMode, i, p.Label), px+10, py-6,
				TextStyle{Color: theme.AxisText, Size: lay.font})
		}
	}
}

func (r *Renderer) crosshair(c Canvas, f Frame) {
	at := f.Crosshair
	if at == nil || !f.Projection.Bounds().Contains(at.X, at.H) {
		return
	}
	rect := f.Projection.PlotRect()
	px, py := f.Projection.Project(at.X, at.H)
	s := Stroke{Color: theme.Crosshair, Width: 1, Dash: theme.CrosshairDash}
	c.Line(px, rect.Y, px, rect.Y+rect.H, s)
	c.Line(rect.X, py, rect.X+rect.W, py, s)
}

func (r *Renderer) tooltips(c Canvas, f Frame) {
	const padBox, boxH = 6.0, 18.0
	size := layoutFor(f.Projection).font
	for _, tt := range f.Tooltips {
		tw := c.MeasureText(tt.Text, size)
		x, y := tt.X-padBox, tt.Y-boxH
		w, h := tw+2*padBox, boxH+2
		c.FillRect(x, y, w, h, Fill{Color: theme.TooltipFill, Alpha: theme.TooltipAlpha})
		c.StrokeRect(x, y, w, h, Stroke{Color: theme.TooltipBorder, Width: 1})
		c.Text(tt.Text, tt.X, tt.Y-2, TextStyle{Color: theme.TooltipText, Size: size})
	}
}

// arrowHead fills a triangle at (x2, y2) pointing along the segment
func arrowHead(c Canvas, x1, y1, x2, y2 float64, color string) {
	ang := math.Atan2(y2-y1, x2-x1)
	size := theme.ArrowSize
	c.FillPolygon([]Pt{
		{x2, y2},
		{x2 - size*math.Cos(ang-math.Pi/8), y2 - size*math.Sin(ang-math.Pi/8)},
		{x2 - size*math.Cos(ang+math.Pi/8), y2 - size*math.Sin(ang+math.Pi/8)},
	}, Fill{Color: color})
}

func visibleCases(s *session.Session) map[string]bool {
	ids := s.VisibleCaseIDs()
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
