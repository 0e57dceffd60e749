package labels

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	keyAxisX            = "axis.x"
	keyAxisH            = "axis.h"
	keyTooltipT         = "tooltip.isotherm"
	keyTooltipRH        = "tooltip.rh"
	keyComputationError = "render.computation_error"
	keySummaryPoint     = "summary.point"
	keySummaryProcess   = "summary.process"
)

var processKeys = map[string]string{
	"heater":    "process.heater",
	"cooler":    "process.cooler",
	"adiabatic": "process.adiabatic",
	"wrg":       "process.wrg",
}

func init() {
	en := language.English
	message.SetString(en, keyAxisX, "x  [g/kg dry air]")
	message.SetString(en, keyAxisH, "h  [kJ/kg dry air]")
	message.SetString(en, keyTooltipT, "T ≈ %s°C")
	message.SetString(en, keyTooltipRH, "φ ≈ %s%%")
	message.SetString(en, keyComputationError, "computation error: check inputs (NaN)")
	message.SetString(en, keySummaryPoint, "%s · T=%s°C · φ=%s%% · h=%s kJ/kg · x=%s g/kg")
	message.SetString(en, keySummaryProcess, "%s · x=%s g/kg → %s g/kg (%s)\n    T₁=%s°C / φ₁=%s%% → T₂=%s°C / φ₂=%s%% · ΔT=%s K")
	message.SetString(en, "process.heater", "Heating")
	message.SetString(en, "process.cooler", "Cooling")
	message.SetString(en, "process.adiabatic", "Adiabatic")
	message.SetString(en, "process.wrg", "Heat recovery")

	de := language.German
	message.SetString(de, keyAxisX, "x  [g/kg trockene Luft]")
	message.SetString(de, keyAxisH, "h  [kJ/kg trockene Luft]")
	message.SetString(de, keyTooltipT, "T ≈ %s°C")
	message.SetString(de, keyTooltipRH, "φ ≈ %s%%")
	message.SetString(de, keyComputationError, "Zeichenfehler abgefangen: Eingaben prüfen (NaN)")
	message.SetString(de, keySummaryPoint, "%s · T=%s°C · φ=%s%% · h=%s kJ/kg · x=%s g/kg")
	message.SetString(de, keySummaryProcess, "%s · x=%s g/kg → %s g/kg (%s)\n    T₁=%s°C / φ₁=%s%% → T₂=%s°C / φ₂=%s%% · ΔT=%s K")
	message.SetString(de, "process.heater", "Heizen")
	message.SetString(de, "process.cooler", "Kühlen")
	message.SetString(de, "process.adiabatic", "Adiabatisch")
	message.SetString(de, "process.wrg", "WRG")
}
