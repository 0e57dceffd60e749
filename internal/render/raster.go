package render

import (
	"image"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
)

// RasterCanvas draws into a device-pixel image with gg. Logical
// coordinates are scaled by the device pixel ratio.
type RasterCanvas struct {
	dc            *gg.Context
	width, height float64
	dpr           float64
}

// NewRasterCanvas allocates a backing store of width·dpr × height·dpr pixels.
func NewRasterCanvas(width, height, dpr float64) *RasterCanvas {
	pw := max(1, int(math.Round(width*dpr)))
	ph := max(1, int(math.Round(height*dpr)))
	dc := gg.NewContext(pw, ph)
	dc.Scale(dpr, dpr)
	return &RasterCanvas{dc: dc, width: width, height: height, dpr: dpr}
}

// Size implements Canvas.
func (c *RasterCanvas) Size() (width, height float64) {
	return c.width, c.height
}

// PixelSize returns the backing store size in device pixels.
func (c *RasterCanvas) PixelSize() (width, height int) {
	return c.dc.Width(), c.dc.Height()
}

// Clear implements Canvas.
func (c *RasterCanvas) Clear(hex string) {
	c.dc.SetColor(parseHex(hex, 1))
	c.dc.Clear()
}

// FillRect implements Canvas.
func (c *RasterCanvas) FillRect(x, y, w, h float64, f Fill) {
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.SetColor(parseHex(f.Color, f.Alpha))
	c.dc.Fill()
}

// StrokeRect implements Canvas.
func (c *RasterCanvas) StrokeRect(x, y, w, h float64, s Stroke) {
	c.Polyline([]Pt{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}, {x, y}}, s)
}

// Line implements Canvas.
func (c *RasterCanvas) Line(x1, y1, x2, y2 float64, s Stroke) {
	c.Polyline([]Pt{{x1, y1}, {x2, y2}}, s)
}

// Polyline implements Canvas. Dashes are split into solid runs here so the
// dash offset animates the same way on every backend.
func (c *RasterCanvas) Polyline(pts []Pt, s Stroke) {
	if len(pts) < 2 || s.Width <= 0 {
		return
	}
	for _, run := range dashRuns(pts, s.Dash, s.DashOffset) {
		c.dc.MoveTo(run[0].X, run[0].Y)
		for _, p := range run[1:] {
			c.dc.LineTo(p.X, p.Y)
		}
		c.dc.NewSubPath()
	}
	c.dc.SetColor(parseHex(s.Color, s.Alpha))
	c.dc.SetLineWidth(s.Width)
	c.dc.Stroke()
}

// FillPolygon implements Canvas.
func (c *RasterCanvas) FillPolygon(pts []Pt, f Fill) {
	if len(pts) < 3 {
		return
	}
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	c.dc.SetColor(parseHex(f.Color, f.Alpha))
	c.dc.Fill()
}

// Circle implements Canvas. An empty fill color or zero stroke width skips
// that part.
func (c *RasterCanvas) Circle(cx, cy, r float64, f Fill, s Stroke) {
	c.dc.DrawCircle(cx, cy, r)
	if f.Color != "" {
		c.dc.SetColor(parseHex(f.Color, f.Alpha))
		c.dc.FillPreserve()
	}
	if s.Width > 0 {
		c.dc.SetColor(parseHex(s.Color, s.Alpha))
		c.dc.SetLineWidth(s.Width)
		c.dc.StrokePreserve()
	}
	c.dc.ClearPath()
}

// Text implements Canvas. The raster backend uses gg's built-in bitmap face,
// so Size only affects layout done by the caller.
func (c *RasterCanvas) Text(text string, x, y float64, style TextStyle) {
	ax := 0.0
	switch style.Anchor {
	case AnchorMiddle:
		ax = 0.5
	case AnchorEnd:
		ax = 1
	}
	c.dc.SetColor(parseHex(style.Color, 1))
	if style.Rotate != 0 {
		c.dc.Push()
		c.dc.RotateAbout(style.Rotate, x, y)
		c.dc.DrawStringAnchored(text, x, y, ax, 0)
		c.dc.Pop()
		return
	}
	c.dc.DrawStringAnchored(text, x, y, ax, 0)
}

// MeasureText implements Canvas.
func (c *RasterCanvas) MeasureText(text string, _ float64) float64 {
	w, _ := c.dc.MeasureString(text)
	return w
}

// Image returns the backing store.
func (c *RasterCanvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the backing store as PNG.
func (c *RasterCanvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// parseHex parses #rgb, #rrggbb and #rrggbbaa colors and multiplies the
// alpha channel. Malformed input yields opaque black.
func parseHex(hex string, alpha float64) color.NRGBA {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if len(s) != 8 || err != nil {
		v = 0x000000ff
	}
	a := float64(v&0xff) * opacity(alpha)
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(math.Round(a)),
	}
}

var _ Canvas = (*RasterCanvas)(nil)
