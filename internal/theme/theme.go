// Package theme holds the colors, stroke widths and dash patterns shared by
// the live renderer and the vector export.
package theme

import (
	"github.com/tphakala/hxdiagram/internal/curves"
	"github.com/tphakala/hxdiagram/internal/session"
)

// Colors
const (
	Background    = "#ffffff"
	GridMajor     = "#cbd5e1"
	GridMinor     = "#eef2f7"
	TickText      = "#334155"
	AxisText      = "#0f172a"
	Isotherm      = "#0ea5e9"
	RHCurve       = "#8b5cf6"
	Saturation    = "#ef4444"
	MarkerStroke  = "#0f172a"
	Crosshair     = "#94a3b8"
	TooltipFill   = "#ffffff"
	TooltipBorder = "#cbd5e1"
	TooltipText   = "#111827"
	ErrorText     = "#ef4444"
	FallbackCase  = "#64748b"
)

// Stroke widths and marker geometry in logical pixels
const (
	GridWidth         = 1.0
	IsothermWidth     = 1.05
	RHCurveWidth      = 1.0
	SaturationWidth   = 2.0
	ProcessWidth      = 3.0
	ProcessHaloWidth  = 8.0
	ProcessHaloAlpha  = 0.14
	PreviewWidth      = 4.0
	PreviewHaloWidth  = 10.0
	PreviewHaloAlpha  = 0.12
	PreviewPulseAlpha = 0.8
	ArrowSize         = 10.0
	MarkerRadius      = 6.0
	MarkerStrokeWidth = 1.5
	TooltipAlpha      = 0.96
)

// Dash patterns
var (
	CoolerDash    = []float64{8, 4}
	WRGDash       = []float64{3, 3}
	PreviewDash   = []float64{10, 6}
	CrosshairDash = []float64{4, 4}
)

// CurveStyle returns the stroke color and width of a curve family.
func CurveStyle(kind curves.Kind) (color string, width float64) {
	switch kind {
	case curves.KindIsotherm:
		return Isotherm, IsothermWidth
	case curves.KindSaturation:
		return Saturation, SaturationWidth
	default:
		return RHCurve, RHCurveWidth
	}
}

// ProcessDash returns the dash pattern of a process type; nil is solid.
func ProcessDash(t session.ProcessType) []float64 {
	switch t {
	case session.Cooler:
		return CoolerDash
	case session.WRG:
		return WRGDash
	default:
		return nil
	}
}

// CaseColor returns the color of a case, or a neutral color for unknown ids.
func CaseColor(s *session.Session, caseID string) string {
	if c, ok := s.Case(caseID); ok && c.Color != "" {
		return c.Color
	}
	return FallbackCase
}
