package hvac

import (
	"math"

	"github.com/tphakala/hxdiagram/internal/psychro"
)

// HeatRecoveryInput describes a sensible air-to-air heat recovery unit.
// Flows are volumetric in m³/h. An ExhaustFlow of 0 means the exhaust
// stream carries the same dry-air mass flow as the supply stream.
type HeatRecoveryInput struct {
	OutdoorT      float64 // °C
	OutdoorRH     float64 // %
	ExhaustT      float64 // °C
	ExhaustRH     float64 // %
	SupplyFlow    float64 // m³/h
	ExhaustFlow   float64 // m³/h, 0 = balanced
	Effectiveness float64 // %, clamped to [0,100]
	PressurePa    float64
}

// HeatRecoveryResult is the supply-side outcome. The outlet state keeps the
// outdoor moisture content.
type HeatRecoveryResult struct {
	W        float64 `json:"w"` // kg/kg
	X        float64 `json:"x"` // g/kg
	TOutdoor float64 `json:"t_outdoor"`
	HOutdoor float64 `json:"h_outdoor"`
	TOutlet  float64 `json:"t_outlet"`
	HOutlet  float64 `json:"h_outlet"`

	Effectiveness float64 `json:"effectiveness"` // applied, after clamping
	CSupply       float64 `json:"c_supply"`      // kW/K
	CExhaust      float64 `json:"c_exhaust"`     // kW/K
	DutyKW        float64 `json:"duty_kw"`
	Clamped       bool    `json:"clamped"` // raw outlet overshot and was limited
}

// HeatRecovery runs the capacity-rate-minimum effectiveness model:
//
//	C   = ṁ_da · cp(w)          per stream
//	Q   = ε · min(Csup, Cexh) · (Texh − Toa)
//	T2  = Toa + Q / Csup        clamped into [Toa, Texh]
func HeatRecovery(in HeatRecoveryInput) (HeatRecoveryResult, error) {
	if !finite(in.OutdoorT, in.OutdoorRH, in.ExhaustT, in.ExhaustRH, in.Effectiveness) {
		return HeatRecoveryResult{}, invalid("heat recovery inputs must be finite numbers")
	}
	if err := checkFlow("supply flow", in.SupplyFlow); err != nil {
		return HeatRecoveryResult{}, err
	}
	if in.ExhaustFlow != 0 {
		if err := checkFlow("exhaust flow", in.ExhaustFlow); err != nil {
			return HeatRecoveryResult{}, err
		}
	}
	if err := checkPressure(in.PressurePa); err != nil {
		return HeatRecoveryResult{}, err
	}

	p := in.PressurePa
	wOA := psychro.HumidityRatio(in.OutdoorT, in.OutdoorRH, p)
	wEx := psychro.HumidityRatio(in.ExhaustT, in.ExhaustRH, p)

	mSup := psychro.DryAirMassFlow(in.SupplyFlow, in.OutdoorT, wOA, p)
	mEx := mSup
	if in.ExhaustFlow != 0 {
		mEx = psychro.DryAirMassFlow(in.ExhaustFlow, in.ExhaustT, wEx, p)
	}

	cSup := mSup * psychro.MoistSpecificHeat(wOA)
	cEx := mEx * psychro.MoistSpecificHeat(wEx)
	if !(cSup > 0) || !finite(cSup, cEx) {
		return HeatRecoveryResult{}, invalid("supply capacity rate is not positive")
	}

	eff := clampPercent(in.Effectiveness)
	q := eff / 100 * math.Min(cSup, cEx) * (in.ExhaustT - in.OutdoorT)
	raw := in.OutdoorT + q/cSup

	lo, hi := math.Min(in.OutdoorT, in.ExhaustT), math.Max(in.OutdoorT, in.ExhaustT)
	t2 := psychro.Clamp(raw, lo, hi)

	return HeatRecoveryResult{
		W:             wOA,
		X:             wOA * 1000,
		TOutdoor:      in.OutdoorT,
		HOutdoor:      psychro.Enthalpy(in.OutdoorT, wOA),
		TOutlet:       t2,
		HOutlet:       psychro.Enthalpy(t2, wOA),
		Effectiveness: eff,
		CSupply:       cSup,
		CExhaust:      cEx,
		DutyKW:        cSup * (t2 - in.OutdoorT),
		Clamped:       raw != t2,
	}, nil
}
