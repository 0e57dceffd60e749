package psychro

import "math"

// State is a fully resolved moist-air state. It is computed on demand and
// never stored.
type State struct {
	T   float64 // dry-bulb temperature °C
	W   float64 // moisture content kg/kg
	X   float64 // moisture content g/kg
	H   float64 // specific enthalpy kJ/kg dry air
	RH  float64 // relative humidity %
	Rho float64 // density kg/m³
}

// StateFromTRH resolves a state from temperature and relative humidity.
func StateFromTRH(t, rh, p float64) State {
	w := HumidityRatio(t, rh, p)
	return newState(t, w, p)
}

// StateFromXH resolves a state from diagram coordinates: moisture content in
// g/kg and enthalpy in kJ/kg.
func StateFromXH(x, h, p float64) State {
	w := math.Max(0, x) / 1000
	t := TemperatureFromEnthalpy(h, w)
	return newState(t, w, p)
}

// StateFromTW resolves a state from temperature and moisture content in kg/kg.
func StateFromTW(t, w, p float64) State {
	return newState(t, math.Max(0, w), p)
}

func newState(t, w, p float64) State {
	return State{
		T:   t,
		W:   w,
		X:   w * 1000,
		H:   Enthalpy(t, w),
		RH:  RelativeHumidity(t, w, p),
		Rho: MoistAirDensity(t, w, p),
	}
}

// Finite reports whether every field of the state is a finite number.
func (s State) Finite() bool {
	for _, v := range [...]float64{s.T, s.W, s.X, s.H, s.RH, s.Rho} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
