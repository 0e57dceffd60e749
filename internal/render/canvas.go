// Package render paints the interactive diagram onto a raster canvas.
//
// Painting goes through the Canvas interface. RasterCanvas draws with gg
// into a device-pixel backing store; Recorder captures the draw calls for
// tests. Every call passes a finite-coordinate guard: a non-finite value
// aborts the paint pass and leaves an error placeholder instead of a
// half-drawn frame.
package render

// Pt is a point in logical pixels.
type Pt struct {
	X, Y float64
}

// Anchor is the horizontal text alignment.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Stroke describes a line style.
type Stroke struct {
	Color      string
	Width      float64
	Alpha      float64 // 0 means opaque
	Dash       []float64
	DashOffset float64
}

// Fill describes a fill style.
type Fill struct {
	Color string
	Alpha float64 // 0 means opaque
}

// TextStyle describes a text run. Rotate is in radians around the anchor.
type TextStyle struct {
	Color  string
	Size   float64
	Anchor Anchor
	Rotate float64
}

// Canvas is the set of draw calls the renderer needs. Coordinates are in
// logical pixels.
type Canvas interface {
	// Size returns the logical size.
	Size() (width, height float64)
	// Clear fills the whole canvas, ignoring any transform.
	Clear(color string)
	FillRect(x, y, w, h float64, f Fill)
	StrokeRect(x, y, w, h float64, s Stroke)
	Line(x1, y1, x2, y2 float64, s Stroke)
	Polyline(pts []Pt, s Stroke)
	FillPolygon(pts []Pt, f Fill)
	Circle(cx, cy, r float64, f Fill, s Stroke)
	Text(text string, x, y float64, style TextStyle)
	// MeasureText returns the advance width of text.
	MeasureText(text string, size float64) float64
}

func opacity(a float64) float64 {
	if a <= 0 || a > 1 {
		return 1
	}
	return a
}
