package hvac

import (
	"github.com/tphakala/hxdiagram/internal/psychro"
)

// CoilInput sizes a sensible heater or cooler at constant moisture content.
type CoilInput struct {
	Kind       CoilKind
	InletT     float64 // °C
	InletW     float64 // kg/kg
	TargetT    float64 // °C
	Flow       float64 // m³/h at inlet conditions
	PressurePa float64
}

// CoilResult holds the coil duty. DutyKW is positive for heaters and
// negative for coolers.
type CoilResult struct {
	Kind       CoilKind `json:"kind"`
	TIn        float64  `json:"t_in"`
	TOut       float64  `json:"t_out"`
	W          float64  `json:"w"`
	X          float64  `json:"x"`
	HIn        float64  `json:"h_in"`
	HOut       float64  `json:"h_out"`
	Density    float64  `json:"density"`      // kg/m³ at inlet
	MassFlow   float64  `json:"mass_flow"`    // kg/s moist air
	MassFlowDA float64  `json:"mass_flow_da"` // kg/s dry air
	DutyKW     float64  `json:"duty_kw"`
}

// SizeCoil computes Q = ṁ_da·(h2 − h1). A heater must raise and a cooler
// must lower the temperature; anything else is rejected.
func SizeCoil(in CoilInput) (CoilResult, error) {
	if !in.Kind.Valid() {
		return CoilResult{}, invalid("unknown coil kind %q", in.Kind)
	}
	if !finite(in.InletT, in.InletW, in.TargetT) {
		return CoilResult{}, invalid("coil temperatures must be finite numbers")
	}
	if err := checkFlow("air flow", in.Flow); err != nil {
		return CoilResult{}, err
	}
	if err := checkPressure(in.PressurePa); err != nil {
		return CoilResult{}, err
	}

	switch in.Kind {
	case Heater:
		if !(in.TargetT > in.InletT) {
			return CoilResult{}, invalid("heater target %.1f °C must be above inlet %.1f °C", in.TargetT, in.InletT)
		}
	case Cooler:
		if !(in.TargetT < in.InletT) {
			return CoilResult{}, invalid("cooler target %.1f °C must be below inlet %.1f °C", in.TargetT, in.InletT)
		}
	}

	w := max(0, in.InletW)
	h1 := psychro.Enthalpy(in.InletT, w)
	h2 := psychro.Enthalpy(in.TargetT, w)
	rho := psychro.MoistAirDensity(in.InletT, w, in.PressurePa)
	mMoist := rho * in.Flow / 3600
	mDA := mMoist / (1 + w)

	return CoilResult{
		Kind:       in.Kind,
		TIn:        in.InletT,
		TOut:       in.TargetT,
		W:          w,
		X:          w * 1000,
		HIn:        h1,
		HOut:       h2,
		Density:    rho,
		MassFlow:   mMoist,
		MassFlowDA: mDA,
		DutyKW:     mDA * (h2 - h1),
	}, nil
}
