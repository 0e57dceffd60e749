package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/theme"
)

// errWriter remembers the first write failure; svgo does not report them
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// EncodeSVG writes the document as a standalone SVG image.
func EncodeSVG(w io.Writer, doc *Document) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	width, height := px(doc.Width), px(doc.Height)
	canvas.Startview(width, height, 0, 0, width, height)
	canvas.Rect(0, 0, width, height, "fill:"+doc.Background)

	canvas.Gstyle("fill:none")
	for _, gl := range doc.GridLines {
		canvas.Line(px(gl.From.X), px(gl.From.Y), px(gl.To.X), px(gl.To.Y),
			strokeStyle(gl.Color, theme.GridWidth, 1, nil))
	}
	canvas.Gend()

	for _, t := range doc.TickLabels {
		text(canvas, t)
	}

	canvas.Gstyle("fill:none;stroke-linejoin:round;stroke-linecap:round")
	for _, c := range doc.Curves {
		canvas.Path(pathData(c.Points...), strokeStyle(c.Color, c.Width, 1, nil))
	}
	for _, p := range doc.Processes {
		d := pathData(p.Points[:]...)
		canvas.Path(d, strokeStyle(p.Color, theme.ProcessHaloWidth, theme.ProcessHaloAlpha, nil))
		canvas.Path(d, strokeStyle(p.Color, theme.ProcessWidth, 1, p.Dash))
	}
	canvas.Gend()

	for _, p := range doc.Processes {
		xs := []int{px(p.Arrow[0].X), px(p.Arrow[1].X), px(p.Arrow[2].X)}
		ys := []int{px(p.Arrow[0].Y), px(p.Arrow[1].Y), px(p.Arrow[2].Y)}
		canvas.Polygon(xs, ys, "fill:"+p.Color)
	}

	for _, m := range doc.Markers {
		canvas.Circle(px(m.X), px(m.Y), int(theme.MarkerRadius),
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%s", m.Color, theme.MarkerStroke, num(theme.MarkerStrokeWidth)))
		if m.Label != "" {
			text(canvas, Text{
				At:     Point{m.X + 10, m.Y - 6},
				Text:   m.Label,
				Anchor: "start",
				Size:   markerFontSize,
				Color:  theme.AxisText,
			})
		}
	}

	for _, t := range doc.AxisTitles {
		text(canvas, t)
	}
	canvas.End()

	if ew.err != nil {
		return errors.New(ew.err).
			Category(errors.CategoryExport).
			Context("format", "svg").
			Build()
	}
	return nil
}

func text(canvas *svg.SVG, t Text) {
	style := fmt.Sprintf("fill:%s;font-family:system-ui,sans-serif;font-size:%spx;text-anchor:%s",
		t.Color, num(t.Size), t.Anchor)
	if t.Rotate == 0 {
		canvas.Text(px(t.At.X), px(t.At.Y), t.Text, style)
		return
	}
	canvas.Gtransform(fmt.Sprintf("translate(%s,%s) rotate(%s)", num(t.At.X), num(t.At.Y), num(t.Rotate)))
	canvas.Text(0, 0, t.Text, style)
	canvas.Gend()
}

func strokeStyle(color string, width, alpha float64, dash []float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "stroke:%s;stroke-width:%s", color, num(width))
	if alpha < 1 {
		fmt.Fprintf(&b, ";stroke-opacity:%s", num(alpha))
	}
	if len(dash) > 0 {
		parts := make([]string, len(dash))
		for i, d := range dash {
			parts[i] = num(d)
		}
		b.WriteString(";stroke-dasharray:" + strings.Join(parts, " "))
	}
	return b.String()
}

// pathData builds a path with coordinates at 0.01 px precision
func pathData(pts ...Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(num(p.X) + " " + num(p.Y))
	}
	return b.String()
}

func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func px(v float64) int {
	return int(math.Round(v))
}
