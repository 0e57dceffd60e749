// Package hvac implements the air-handling calculations applied to a design
// case: sensible heat recovery, heater and cooler sizing, and the secondary
// water loop of a coil.
//
// All functions are pure. They validate their input and either return a
// complete result or a validation error whose message can be shown to the
// user as is.
package hvac

import (
	"math"

	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/psychro"
)

// WaterSpecificHeat is c_w in kJ/(kg·K)
const WaterSpecificHeat = 4.187

// CoilKind selects a heater or cooler.
type CoilKind string

const (
	Heater CoilKind = "heater"
	Cooler CoilKind = "cooler"
)

// Valid reports whether k is a known coil kind.
func (k CoilKind) Valid() bool {
	return k == Heater || k == Cooler
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func invalid(format string, args ...any) *errors.EnhancedError {
	return errors.Newf(format, args...).
		Category(errors.CategoryValidation).
		Build()
}

// checkFlow validates a volumetric flow in m³/h
func checkFlow(name string, flow float64) error {
	if !finite(flow) || flow <= 0 {
		return invalid("%s must be positive", name)
	}
	return nil
}

// checkPressure validates an absolute pressure in Pa
func checkPressure(p float64) error {
	if !finite(p) || p <= 0 {
		return invalid("pressure must be positive")
	}
	return nil
}

// clampPercent limits a percentage to [0,100]; NaN maps to 0
func clampPercent(v float64) float64 {
	return psychro.Clamp(v, 0, 100)
}
