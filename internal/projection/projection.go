package projection

import (
	"github.com/tphakala/hxdiagram/internal/errors"
)

// CompactBreakpoint is the surface width below which compact padding is used
const CompactBreakpoint = 640

// minPlotSize is the smallest plot region, in px, worth painting
const minPlotSize = 10

// Export dimensions, independent of any live surface
const (
	ExportWidth  = 2200
	ExportHeight = 1500
)

// Padding reserves room around the plot region for ticks and axis titles.
type Padding struct {
	Left, Right, Top, Bottom float64
}

var (
	// CompactPadding is used on narrow surfaces
	CompactPadding = Padding{Left: 86, Right: 54, Top: 42, Bottom: 40}
	// WidePadding is used on regular surfaces
	WidePadding = Padding{Left: 130, Right: 90, Top: 54, Bottom: 44}
	// ExportPadding is used for the fixed-size vector export
	ExportPadding = Padding{Left: 150, Right: 110, Top: 70, Bottom: 48}
)

// LayoutPadding picks the padding for a surface of the given logical width.
func LayoutPadding(width float64) Padding {
	if width < CompactBreakpoint {
		return CompactPadding
	}
	return WidePadding
}

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

// Projection maps diagram coordinates to pixels over a padded region.
// x grows to the right, h grows upwards.
type Projection struct {
	bounds  Bounds
	width   float64
	height  float64
	padding Padding
	plotW   float64
	plotH   float64
}

// New creates a projection for a surface of width×height logical pixels.
// It fails when the padded plot region is too small to paint.
func New(bounds Bounds, width, height float64, padding Padding) (*Projection, error) {
	plotW := width - padding.Left - padding.Right
	plotH := height - padding.Top - padding.Bottom
	if !(plotW > minPlotSize) || !(plotH > minPlotSize) {
		return nil, errors.Newf("plot region %.0fx%.0f is too small", plotW, plotH).
			Category(errors.CategoryValidation).
			Context("width", width).
			Context("height", height).
			Build()
	}

	return &Projection{
		bounds:  bounds,
		width:   width,
		height:  height,
		padding: padding,
		plotW:   plotW,
		plotH:   plotH,
	}, nil
}

// ForSurface creates a projection with the layout padding for the surface width.
func ForSurface(bounds Bounds, width, height float64) (*Projection, error) {
	return New(bounds, width, height, LayoutPadding(width))
}

// ForExport creates the fixed-size export projection.
func ForExport(bounds Bounds) *Projection {
	p, err := New(bounds, ExportWidth, ExportHeight, ExportPadding)
	if err != nil {
		// Export size is constant and always large enough
		panic(err)
	}
	return p
}

// Project maps (x g/kg, h kJ/kg) to pixel coordinates.
func (p *Projection) Project(x, h float64) (px, py float64) {
	b := p.bounds
	px = p.padding.Left + x/b.XMax*p.plotW
	py = p.padding.Top + (1-(h-b.YMin)/(b.YMax-b.YMin))*p.plotH
	return px, py
}

// Unproject maps pixel coordinates back to (x, h). It is the exact inverse of
// Project up to floating-point rounding.
func (p *Projection) Unproject(px, py float64) (x, h float64) {
	b := p.bounds
	x = (px - p.padding.Left) / p.plotW * b.XMax
	h = b.YMin + (1-(py-p.padding.Top)/p.plotH)*(b.YMax-b.YMin)
	return x, h
}

// Bounds returns the diagram bounds of the projection.
func (p *Projection) Bounds() Bounds {
	return p.bounds
}

// Size returns the logical surface size.
func (p *Projection) Size() (width, height float64) {
	return p.width, p.height
}

// Padding returns the padding of the projection.
func (p *Projection) Padding() Padding {
	return p.padding
}

// PlotRect returns the plot region in pixels.
func (p *Projection) PlotRect() Rect {
	return Rect{X: p.padding.Left, Y: p.padding.Top, W: p.plotW, H: p.plotH}
}

// Compact reports whether the projection uses compact padding.
func (p *Projection) Compact() bool {
	return p.padding == CompactPadding
}
