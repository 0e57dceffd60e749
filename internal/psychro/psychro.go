// Package psychro implements the moist-air property model used by the h-x diagram.
//
// All functions are pure. Temperatures are in °C, pressure in Pa, moisture
// content w in kg water per kg dry air and enthalpy in kJ per kg dry air.
// Non-finite or out-of-range inputs are clamped instead of producing errors,
// so callers can sample freely without guarding every call.
package psychro

import "math"

// Physical constants
const (
	// RatioMW is the molecular weight ratio of water vapour to dry air
	RatioMW = 0.62198
	// RDryAir is the specific gas constant of dry air in J/(kg·K)
	RDryAir = 287.058
	// RVapour is the specific gas constant of water vapour in J/(kg·K)
	RVapour = 461.495

	// CpDryAir is the specific heat of dry air in kJ/(kg·K)
	CpDryAir = 1.006
	// CpVapour is the specific heat of water vapour in kJ/(kg·K)
	CpVapour = 1.86
	// LatentHeat is the latent heat of vaporisation at 0 °C in kJ/kg
	LatentHeat = 2501.0

	// KelvinOffset converts °C to K
	KelvinOffset = 273.15

	// StandardPressure is sea-level pressure in Pa
	StandardPressure = 101325.0
)

// Validity range of the Magnus approximation
const (
	MinTemperature = -45.0
	MaxTemperature = 60.0
)

// Magnus coefficients (Alduchov-Eskridge)
const (
	magnusC = 610.94
	magnusA = 17.625
	magnusB = 243.04
)

// pressureEpsilon guards the P - pw denominator in Pa
const pressureEpsilon = 1e-6

// Clamp limits v to [lo, hi]. Non-finite values map to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}

// SaturationPressure returns the saturation vapour pressure over water in Pa.
// T is clamped to [MinTemperature, MaxTemperature] first.
func SaturationPressure(t float64) float64 {
	tc := Clamp(t, MinTemperature, MaxTemperature)
	return magnusC * math.Exp(magnusA*tc/(tc+magnusB))
}

// HumidityRatio returns moisture content w for temperature t, relative
// humidity rh in percent and pressure p.
func HumidityRatio(t, rh, p float64) float64 {
	phi := Clamp(rh, 0, 100) / 100
	pw := phi * SaturationPressure(t)
	d := p - pw
	if !(d > pressureEpsilon) {
		return 0
	}
	return math.Max(0, RatioMW*pw/d)
}

// Enthalpy returns the specific enthalpy of moist air.
// It is affine in w for fixed t, which is why isotherms are straight lines.
func Enthalpy(t, w float64) float64 {
	return CpDryAir*t + w*(LatentHeat+CpVapour*t)
}

// TemperatureFromEnthalpy is the exact inverse of Enthalpy for fixed w.
func TemperatureFromEnthalpy(h, w float64) float64 {
	return (h - LatentHeat*w) / (CpDryAir + CpVapour*w)
}

// VapourPressure returns the partial vapour pressure in Pa for moisture content w.
func VapourPressure(w, p float64) float64 {
	w = math.Max(0, w)
	return w * p / (RatioMW + w)
}

// RelativeHumidity returns relative humidity in percent, clamped to [0, 100].
func RelativeHumidity(t, w, p float64) float64 {
	pw := VapourPressure(w, p)
	return 100 * Clamp(pw/SaturationPressure(t), 0, 1)
}

// MoistAirDensity returns the density of moist air in kg/m³ as the sum of the
// dry-air and vapour partial densities.
func MoistAirDensity(t, w, p float64) float64 {
	tk := t + KelvinOffset
	pw := VapourPressure(w, p)
	pd := p - pw
	return pd/(RDryAir*tk) + pw/(RVapour*tk)
}

// MoistSpecificHeat returns the specific heat of moist air per kg dry air.
func MoistSpecificHeat(w float64) float64 {
	return CpDryAir + CpVapour*math.Max(0, w)
}

// DryAirMassFlow converts a volumetric flow in m³/h at state (t, w) into a
// dry-air mass flow in kg/s.
func DryAirMassFlow(volumeFlow, t, w, p float64) float64 {
	rho := MoistAirDensity(t, w, p)
	moist := rho * volumeFlow / 3600
	return moist / (1 + math.Max(0, w))
}
