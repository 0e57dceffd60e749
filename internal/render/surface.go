package render

import (
	"image"
	"io"
	"math"
	"sync"

	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/logger"
)

// maxBackingSide caps either side of the backing store in device pixels
const maxBackingSide = 16384

// Surface is the drawing surface: a logical size, a device pixel ratio and
// the raster backing store sized to both. It also tracks pointer capture.
type Surface struct {
	mu          sync.Mutex
	width       float64
	height      float64
	dpr         float64
	canvas      *RasterCanvas
	allocations int
	captured    map[int]bool
}

// NewSurface allocates a surface.
func NewSurface(width, height, dpr float64) (*Surface, error) {
	s := &Surface{captured: make(map[int]bool)}
	if err := s.Resize(width, height, dpr); err != nil {
		return nil, err
	}
	return s, nil
}

// Resize reallocates the backing store when the logical size or pixel
// density changed. An unchanged size keeps the current store.
func (s *Surface) Resize(width, height, dpr float64) error {
	if err := checkSize(width, height, dpr); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.canvas != nil && width == s.width && height == s.height && dpr == s.dpr {
		return nil
	}
	s.width, s.height, s.dpr = width, height, dpr
	s.canvas = NewRasterCanvas(width, height, dpr)
	s.allocations++
	GetLogger().Debug("backing store allocated",
		logger.Float64("width", width),
		logger.Float64("height", height),
		logger.Float64("dpr", dpr))
	return nil
}

func checkSize(width, height, dpr float64) error {
	for _, v := range [...]float64{width, height, dpr} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return errors.Newf("invalid surface size %gx%g@%g", width, height, dpr).
				Category(errors.CategoryValidation).
				Build()
		}
	}
	if width*dpr > maxBackingSide || height*dpr > maxBackingSide {
		return errors.Newf("surface %gx%g@%g exceeds %d device pixels per side", width, height, dpr, maxBackingSide).
			Category(errors.CategoryValidation).
			Build()
	}
	return nil
}

// Size returns the logical size and pixel density.
func (s *Surface) Size() (width, height, dpr float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height, s.dpr
}

// Canvas returns the current backing store. The returned canvas is replaced,
// not resized, by a later Resize.
func (s *Surface) Canvas() *RasterCanvas {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas
}

// Allocations returns how many times the backing store was allocated.
func (s *Surface) Allocations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allocations
}

// Snapshot returns the rasterized frame.
func (s *Surface) Snapshot() image.Image {
	return s.Canvas().Image()
}

// WritePNG encodes the rasterized frame as PNG.
func (s *Surface) WritePNG(w io.Writer) error {
	if err := s.Canvas().EncodePNG(w); err != nil {
		return errors.New(err).
			Category(errors.CategoryExport).
			Context("operation", "encode_png").
			Build()
	}
	return nil
}

// SetPointerCapture routes all events of a pointer to this surface.
func (s *Surface) SetPointerCapture(pointerID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.captured[pointerID] = true
	return nil
}

// ReleasePointerCapture ends a capture. Releasing a pointer that is not
// captured is an error.
func (s *Surface) ReleasePointerCapture(pointerID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.captured[pointerID] {
		return errors.Newf("pointer %d is not captured", pointerID).
			Category(errors.CategoryState).
			Build()
	}
	delete(s.captured, pointerID)
	return nil
}

// Captured reports whether a pointer is captured.
func (s *Surface) Captured(pointerID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captured[pointerID]
}
