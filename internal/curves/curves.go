// Package curves generates the isotherms, constant relative humidity curves
// and saturation curve of the h-x diagram in domain units.
//
// Generation depends only on the diagram bounds and visibility toggles, never
// on session data, so the live renderer and the vector export share it.
package curves

import (
	"math"

	"github.com/tphakala/hxdiagram/internal/projection"
	"github.com/tphakala/hxdiagram/internal/psychro"
)

// Kind identifies a curve family
type Kind string

const (
	KindIsotherm   Kind = "isotherm"
	KindRH         Kind = "rh"
	KindSaturation Kind = "saturation"
)

// Sampling increments
const (
	IsothermStep       = 5.0  // K between isotherms
	RHStep             = 10.0 // % between RH curves
	RHSampleStep       = 1.0  // K between RH curve samples
	SaturationStepSize = 0.5  // K between saturation samples
)

// Coord is a point in diagram units: x in g/kg, h in kJ/kg.
type Coord struct {
	X float64 `json:"x"`
	H float64 `json:"h"`
}

// Polyline is one generated curve. Value is the temperature for isotherms
// and the relative humidity for RH and saturation curves.
type Polyline struct {
	Kind   Kind    `json:"kind"`
	Value  float64 `json:"value"`
	Points []Coord `json:"points"`
}

// Options are the visibility toggles.
type Options struct {
	Isotherms  bool
	RHCurves   bool
	Saturation bool
}

// AllVisible enables every curve family.
var AllVisible = Options{Isotherms: true, RHCurves: true, Saturation: true}

// Set groups the generated curves by family.
type Set struct {
	Isotherms  []Polyline
	RHCurves   []Polyline
	Saturation *Polyline
}

// Len returns the number of polylines in the set.
func (s Set) Len() int {
	n := len(s.Isotherms) + len(s.RHCurves)
	if s.Saturation != nil {
		n++
	}
	return n
}

// Generate builds every enabled curve family for the bounds.
func Generate(b projection.Bounds, opts Options) Set {
	var set Set
	if opts.Isotherms {
		set.Isotherms = Isotherms(b)
	}
	if opts.RHCurves {
		set.RHCurves = RHCurves(b)
	}
	if opts.Saturation {
		if sat, ok := ConstantRH(b, 100, SaturationStepSize); ok {
			sat.Kind = KindSaturation
			set.Saturation = &sat
		}
	}
	return set
}

// Isotherms returns one straight segment per temperature step. Enthalpy is
// affine in moisture content, so two endpoints describe the whole line.
func Isotherms(b projection.Bounds) []Polyline {
	n := steps(b.TMin, b.TMax, IsothermStep)
	out := make([]Polyline, 0, n)
	for i := range n {
		t := b.TMin + float64(i)*IsothermStep
		p0 := Coord{X: 0, H: psychro.Enthalpy(t, 0)}
		p1 := Coord{X: b.XMax, H: psychro.Enthalpy(t, b.XMax/1000)}
		if !finite(p0.H) || !finite(p1.H) {
			continue
		}
		out = append(out, Polyline{Kind: KindIsotherm, Value: t, Points: []Coord{p0, p1}})
	}
	return out
}

// RHCurves returns the constant relative humidity curves from 10 % to 100 %.
func RHCurves(b projection.Bounds) []Polyline {
	n := steps(RHStep, 100, RHStep)
	out := make([]Polyline, 0, n)
	for i := range n {
		rh := RHStep + float64(i)*RHStep
		if line, ok := ConstantRH(b, rh, RHSampleStep); ok {
			out = append(out, line)
		}
	}
	return out
}

// ConstantRH samples one relative humidity curve across the temperature
// range. Samples with non-finite values or x beyond XMax are dropped. The
// curve is reported only if at least two samples survive.
func ConstantRH(b projection.Bounds, rh, step float64) (Polyline, bool) {
	p := b.PressurePa()
	n := steps(b.TMin, b.TMax, step)
	pts := make([]Coord, 0, n)
	for i := range n {
		t := b.TMin + float64(i)*step
		w := psychro.HumidityRatio(t, rh, p)
		if !finite(w) {
			continue
		}
		x := w * 1000
		if x > b.XMax {
			continue
		}
		h := psychro.Enthalpy(t, w)
		if !finite(h) {
			continue
		}
		pts = append(pts, Coord{X: x, H: h})
	}
	if len(pts) < 2 {
		return Polyline{}, false
	}
	return Polyline{Kind: KindRH, Value: rh, Points: pts}, true
}

// steps counts samples from lo to hi inclusive without accumulating
// floating-point error.
func steps(lo, hi, step float64) int {
	if !(hi >= lo) || !(step > 0) {
		return 0
	}
	return int(math.Floor((hi-lo)/step+1e-9)) + 1
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
