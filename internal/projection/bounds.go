// Package projection derives the diagram bounds from the psychrometric model
// and maps diagram coordinates (moisture content x in g/kg, enthalpy h in
// kJ/kg) to drawing-surface pixels and back.
package projection

import (
	"math"

	"github.com/tphakala/hxdiagram/internal/psychro"
)

// Input limits and fallbacks for the user-entered bounds
const (
	MinPressureKPa     = 30.0
	MaxPressureKPa     = 120.0
	DefaultPressureKPa = 100.0

	MinXMax     = 1.0
	MaxXMax     = 50.0
	DefaultXMax = 30.0

	DefaultTMin = -20.0
	DefaultTMax = 40.0

	// minEnthalpySpan is the minimum YMax - YMin in kJ/kg
	minEnthalpySpan = 50.0
	// enthalpyStep is the rounding grid for the derived enthalpy range
	enthalpyStep = 5.0
	// enthalpyMargin is added above and below the model extremes
	enthalpyMargin = 10.0

	fallbackYMin = -20.0
	fallbackYMax = 80.0
)

// Bounds is the diagram domain. YMin and YMax are derived from the other
// fields and must not be set directly; use NewBounds.
type Bounds struct {
	PressureKPa float64 `json:"pressure_kpa"`
	TMin        float64 `json:"t_min"`
	TMax        float64 `json:"t_max"`
	XMax        float64 `json:"x_max"`
	YMin        float64 `json:"y_min"`
	YMax        float64 `json:"y_max"`
}

// NewBounds sanitizes the user-entered values and derives the enthalpy range.
// Non-finite inputs fall back to defaults and out-of-range inputs are clamped.
func NewBounds(pressureKPa, tMin, tMax, xMax float64) Bounds {
	p := DefaultPressureKPa
	if isFinite(pressureKPa) {
		p = psychro.Clamp(pressureKPa, MinPressureKPa, MaxPressureKPa)
	}

	x := DefaultXMax
	if isFinite(xMax) {
		x = psychro.Clamp(xMax, MinXMax, MaxXMax)
	}

	lo, hi := DefaultTMin, DefaultTMax
	if isFinite(tMin) {
		lo = psychro.Clamp(tMin, psychro.MinTemperature, psychro.MaxTemperature)
	}
	if isFinite(tMax) {
		hi = psychro.Clamp(tMax, psychro.MinTemperature, psychro.MaxTemperature)
	}
	// keep a 1 K span inside the model range
	tLo := psychro.Clamp(math.Min(lo, hi-1), psychro.MinTemperature, psychro.MaxTemperature-1)
	tHi := psychro.Clamp(math.Max(hi, lo+1), psychro.MinTemperature+1, psychro.MaxTemperature)

	yMin, yMax := enthalpyRange(tLo, tHi, x)

	return Bounds{
		PressureKPa: p,
		TMin:        tLo,
		TMax:        tHi,
		XMax:        x,
		YMin:        yMin,
		YMax:        yMax,
	}
}

// enthalpyRange evaluates h at the domain corners and rounds outward
func enthalpyRange(tLo, tHi, xMax float64) (yMin, yMax float64) {
	top := psychro.Enthalpy(tHi, xMax/1000)
	bottom := psychro.Enthalpy(tLo, 0)

	yMax = math.Ceil((math.Max(top, 5)+enthalpyMargin)/enthalpyStep) * enthalpyStep
	yMin = math.Floor((math.Min(0, bottom)-enthalpyMargin)/enthalpyStep) * enthalpyStep

	if !isFinite(yMin) || !isFinite(yMax) {
		return fallbackYMin, fallbackYMax
	}
	if yMax-yMin < minEnthalpySpan {
		yMax = yMin + minEnthalpySpan
	}
	return yMin, yMax
}

// PressurePa returns the diagram pressure in Pa for the psychrometric model.
func (b Bounds) PressurePa() float64 {
	return b.PressureKPa * 1000
}

// Contains reports whether (x, h) lies inside the domain rectangle.
func (b Bounds) Contains(x, h float64) bool {
	return x >= 0 && x <= b.XMax && h >= b.YMin && h <= b.YMax
}

// Clamp limits (x, h) to the domain rectangle. Non-finite values map to the
// lower edge.
func (b Bounds) Clamp(x, h float64) (float64, float64) {
	return psychro.Clamp(x, 0, b.XMax), psychro.Clamp(h, b.YMin, b.YMax)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
