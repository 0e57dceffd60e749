// Package export serializes a session into a resolution-independent vector
// document. It recomputes its own fixed-size projection and curves and shares
// nothing with the live renderer except the theme, so an export never
// depends on the size of the interactive surface.
package export

import (
	"math"

	"github.com/tphakala/hxdiagram/internal/conf"
	"github.com/tphakala/hxdiagram/internal/curves"
	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/labels"
	"github.com/tphakala/hxdiagram/internal/projection"
	"github.com/tphakala/hxdiagram/internal/session"
	"github.com/tphakala/hxdiagram/internal/theme"
)

// Export text sizes and offsets in document pixels
const (
	tickFontSize   = 16
	titleFontSize  = 18
	markerFontSize = 15
	tickOffsetX    = 22 // below the plot
	tickOffsetY    = 16 // left of the plot
	titleInset     = 14
	titleLeft      = 26
)

// Point is a document coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GridLine is one grid line.
type GridLine struct {
	From  Point  `json:"from"`
	To    Point  `json:"to"`
	Major bool   `json:"major"`
	Color string `json:"color"`
}

// Text is a positioned text run. Anchor is start, middle or end; Rotate is
// in degrees.
type Text struct {
	At     Point   `json:"at"`
	Text   string  `json:"text"`
	Anchor string  `json:"anchor"`
	Size   float64 `json:"size"`
	Color  string  `json:"color"`
	Rotate float64 `json:"rotate,omitempty"`
}

// Curve is a psychrometric curve.
type Curve struct {
	Kind   curves.Kind `json:"kind"`
	Value  float64     `json:"value"`
	Color  string      `json:"color"`
	Width  float64     `json:"width"`
	Points []Point     `json:"points"`
}

// Process is a drawn process with its arrowhead.
type Process struct {
	ID     string              `json:"id"`
	CaseID string              `json:"case_id"`
	Type   session.ProcessType `json:"type"`
	Color  string              `json:"color"`
	Dash   []float64           `json:"dash,omitempty"`
	Points [2]Point            `json:"points"`
	Arrow  [3]Point            `json:"arrow"`
}

// Marker is a point marker.
type Marker struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
	Label string  `json:"label,omitempty"`
}

// Document is the complete vector description of a diagram.
type Document struct {
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Bounds     projection.Bounds `json:"bounds"`
	Background string            `json:"background"`
	GridLines  []GridLine        `json:"grid_lines"`
	TickLabels []Text            `json:"tick_labels"`
	Curves     []Curve           `json:"curves"`
	Processes  []Process         `json:"processes"`
	Markers    []Marker          `json:"markers"`
	AxisTitles [2]Text           `json:"axis_titles"`
}

// Options control what an export contains.
type Options struct {
	Curves     curves.Options
	LabelMode  string
	ShowLabels bool
	Labels     *labels.Labels
	// Generator memoizes curve sets across exports; nil generates directly.
	Generator *curves.Generator
}

// DefaultOptions exports every curve family with semantic labels.
func DefaultOptions() Options {
	return Options{
		Curves:     curves.AllVisible,
		LabelMode:  conf.LabelModeSemantic,
		ShowLabels: true,
	}
}

// Build lays out the session at the fixed export size. Only visible cases
// are included.
func Build(sess *session.Session, bounds projection.Bounds, opts Options) (*Document, error) {
	if sess == nil {
		return nil, errors.Newf("nothing to export").
			Category(errors.CategoryExport).
			Build()
	}
	lbl := opts.Labels
	if lbl == nil {
		lbl = labels.New("")
	}

	proj := projection.ForExport(bounds)
	w, h := proj.Size()
	rect := proj.PlotRect()
	doc := &Document{
		Width:      w,
		Height:     h,
		Bounds:     bounds,
		Background: theme.Background,
	}

	for _, gl := range proj.Grid() {
		color := theme.GridMinor
		if gl.Major {
			color = theme.GridMajor
		}
		doc.GridLines = append(doc.GridLines, GridLine{
			From:  Point{gl.X1, gl.Y1},
			To:    Point{gl.X2, gl.Y2},
			Major: gl.Major,
			Color: color,
		})
		if !gl.Labeled {
			continue
		}
		t := Text{Text: lbl.Number(gl.Value, 0), Size: tickFontSize, Color: theme.TickText}
		if gl.Vertical {
			t.At, t.Anchor = Point{gl.X1, rect.Y + rect.H + tickOffsetX}, "middle"
		} else {
			t.At, t.Anchor = Point{rect.X - tickOffsetY, gl.Y1 + 4}, "end"
		}
		doc.TickLabels = append(doc.TickLabels, t)
	}

	var set curves.Set
	if opts.Generator != nil {
		set = opts.Generator.Generate(bounds, opts.Curves)
	} else {
		set = curves.Generate(bounds, opts.Curves)
	}
	addCurve := func(line curves.Polyline) {
		if len(line.Points) < 2 {
			return
		}
		color, width := theme.CurveStyle(line.Kind)
		c := Curve{Kind: line.Kind, Value: line.Value, Color: color, Width: width}
		for _, p := range line.Points {
			px, py := proj.Project(p.X, p.H)
			c.Points = append(c.Points, Point{px, py})
		}
		doc.Curves = append(doc.Curves, c)
	}
	for _, line := range set.Isotherms {
		addCurve(line)
	}
	for _, line := range set.RHCurves {
		addCurve(line)
	}
	if set.Saturation != nil {
		addCurve(*set.Saturation)
	}

	visible := make(map[string]bool)
	for _, id := range sess.VisibleCaseIDs() {
		visible[id] = true
	}

	for _, pr := range sess.Processes {
		if !visible[pr.CaseID] {
			continue
		}
		x1, y1 := proj.Project(pr.P1.X, pr.P1.H)
		x2, y2 := proj.Project(pr.P2.X, pr.P2.H)
		doc.Processes = append(doc.Processes, Process{
			ID:     pr.ID,
			CaseID: pr.CaseID,
			Type:   pr.Type,
			Color:  theme.CaseColor(sess, pr.CaseID),
			Dash:   theme.ProcessDash(pr.Type),
			Points: [2]Point{{x1, y1}, {x2, y2}},
			Arrow:  arrow(x1, y1, x2, y2),
		})
	}

	for i, p := range sess.Points {
		if !visible[p.CaseID] {
			continue
		}
		px, py := proj.Project(p.X, p.H)
		m := Marker{X: px, Y: py, Color: theme.CaseColor(sess, p.CaseID)}
		if opts.ShowLabels {
			m.Label = lbl.PointLabel(opts.LabelMode, i, p.Label)
		}
		doc.Markers = append(doc.Markers, m)
	}

	doc.AxisTitles = [2]Text{
		{At: Point{rect.X + rect.W/2, h - titleInset}, Text: lbl.AxisX(), Anchor: "middle", Size: titleFontSize, Color: theme.AxisText},
		{At: Point{titleLeft, rect.Y + rect.H/2}, Text: lbl.AxisH(), Anchor: "middle", Size: titleFontSize, Color: theme.AxisText, Rotate: -90},
	}

	if err := doc.check(); err != nil {
		return nil, err
	}
	return doc, nil
}

func arrow(x1, y1, x2, y2 float64) [3]Point {
	ang := math.Atan2(y2-y1, x2-x1)
	size := theme.ArrowSize
	return [3]Point{
		{x2, y2},
		{x2 - size*math.Cos(ang-math.Pi/8), y2 - size*math.Sin(ang-math.Pi/8)},
		{x2 - size*math.Cos(ang+math.Pi/8), y2 - size*math.Sin(ang+math.Pi/8)},
	}
}

// check rejects documents with non-finite coordinates
func (d *Document) check() error {
	bad := func(what string) error {
		return errors.Newf("non-finite coordinate in exported %s", what).
			Category(errors.CategoryExport).
			Context("element", what).
			Build()
	}
	for _, p := range d.Processes {
		if !finitePts(p.Points[:]...) {
			return bad("process")
		}
	}
	for _, m := range d.Markers {
		if !finitePts(Point{m.X, m.Y}) {
			return bad("marker")
		}
	}
	for _, c := range d.Curves {
		if !finitePts(c.Points...) {
			return bad("curve")
		}
	}
	return nil
}

func finitePts(pts ...Point) bool {
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}
