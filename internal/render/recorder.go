package render

import "slices"

// Op kinds recorded by Recorder
const (
	OpClear      = "clear"
	OpFillRect   = "fill_rect"
	OpStrokeRect = "stroke_rect"
	OpLine       = "line"
	OpPolyline   = "polyline"
	OpPolygon    = "polygon"
	OpCircle     = "circle"
	OpText       = "text"
)

// Op is one recorded draw call.
type Op struct {
	Kind   string
	Points []Pt
	Radius float64
	Text   string
	Color  string
	Width  float64
	Alpha  float64
	Dash   []float64
	Offset float64
	Anchor Anchor
	Rotate float64
}

// Recorder is a Canvas that records draw calls instead of drawing.
type Recorder struct {
	Width, Height float64
	Ops           []Op
}

// NewRecorder returns an empty recorder with a logical size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{Width: width, Height: height}
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Of returns the recorded calls of one kind in order.
func (r *Recorder) Of(kind string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the text of every recorded text call.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Of(OpText) {
		out = append(out, op.Text)
	}
	return out
}

// Index returns the position of the first call matching fn, or -1.
func (r *Recorder) Index(fn func(Op) bool) int {
	return slices.IndexFunc(r.Ops, fn)
}

func (r *Recorder) Size() (width, height float64) { return r.Width, r.Height }

func (r *Recorder) Clear(color string) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Color: color})
}

func (r *Recorder) FillRect(x, y, w, h float64, f Fill) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Points: []Pt{{x, y}, {x + w, y + h}}, Color: f.Color, Alpha: f.Alpha})
}

func (r *Recorder) StrokeRect(x, y, w, h float64, s Stroke) {
	r.Ops = append(r.Ops, strokeOp(OpStrokeRect, []Pt{{x, y}, {x + w, y + h}}, s))
}

func (r *Recorder) Line(x1, y1, x2, y2 float64, s Stroke) {
	r.Ops = append(r.Ops, strokeOp(OpLine, []Pt{{x1, y1}, {x2, y2}}, s))
}

func (r *Recorder) Polyline(pts []Pt, s Stroke) {
	r.Ops = append(r.Ops, strokeOp(OpPolyline, slices.Clone(pts), s))
}

func (r *Recorder) FillPolygon(pts []Pt, f Fill) {
	r.Ops = append(r.Ops, Op{Kind: OpPolygon, Points: slices.Clone(pts), Color: f.Color, Alpha: f.Alpha})
}

func (r *Recorder) Circle(cx, cy, rad float64, f Fill, s Stroke) {
	r.Ops = append(r.Ops, Op{
		Kind:   OpCircle,
		Points: []Pt{{cx, cy}},
		Radius: rad,
		Color:  f.Color,
		Alpha:  f.Alpha,
		Width:  s.Width,
	})
}

func (r *Recorder) Text(text string, x, y float64, style TextStyle) {
	r.Ops = append(r.Ops, Op{
		Kind:   OpText,
		Points: []Pt{{x, y}},
		Text:   text,
		Color:  style.Color,
		Anchor: style.Anchor,
		Rotate: style.Rotate,
	})
}

// MeasureText approximates an average glyph width of 0.6 em.
func (r *Recorder) MeasureText(text string, size float64) float64 {
	return float64(len([]rune(text))) * size * 0.6
}

func strokeOp(kind string, pts []Pt, s Stroke) Op {
	return Op{
		Kind:   kind,
		Points: pts,
		Color:  s.Color,
		Width:  s.Width,
		Alpha:  s.Alpha,
		Dash:   slices.Clone(s.Dash),
		Offset: s.DashOffset,
	}
}

var _ Canvas = (*Recorder)(nil)
