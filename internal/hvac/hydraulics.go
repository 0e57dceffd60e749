package hvac

import "math"

// Loop identifies a coil's secondary water loop.
type Loop string

const (
	HeatingLoop Loop = "heating"
	CoolingLoop Loop = "cooling"
)

// Default loop temperatures in °C
const (
	HeatingSupplyT = 70.0
	HeatingReturnT = 50.0
	CoolingSupplyT = 35.0
	CoolingReturnT = 28.0

	// minLoopDeltaT keeps the flow finite when supply equals return
	minLoopDeltaT = 0.1
	// FlowGaugeFull is the water flow in kg/h shown as a full gauge
	FlowGaugeFull = 5000.0
)

// HydraulicConfig is the water side of a coil.
type HydraulicConfig struct {
	DutyKW  float64 `json:"duty_kw"`
	SupplyT float64 `json:"supply_t"`
	ReturnT float64 `json:"return_t"`
}

// HydraulicResult is derived for display only.
type HydraulicResult struct {
	DeltaT       float64 `json:"delta_t"`
	MassFlowKgS  float64 `json:"mass_flow_kg_s"`
	MassFlowKgH  float64 `json:"mass_flow_kg_h"`
	FlowFraction float64 `json:"flow_fraction"` // 0..1
}

// DefaultHydraulics seeds a loop from a coil result: heating loops run
// 70/50 °C with the positive duty, cooling loops 35/28 °C with |Q|.
func DefaultHydraulics(loop Loop, dutyKW float64) HydraulicConfig {
	if loop == CoolingLoop {
		return HydraulicConfig{DutyKW: math.Abs(dutyKW), SupplyT: CoolingSupplyT, ReturnT: CoolingReturnT}
	}
	return HydraulicConfig{DutyKW: max(0, dutyKW), SupplyT: HeatingSupplyT, ReturnT: HeatingReturnT}
}

// LoopFor returns the water loop serving a coil kind.
func LoopFor(kind CoilKind) Loop {
	if kind == Cooler {
		return CoolingLoop
	}
	return HeatingLoop
}

// Hydraulics computes ṁ = Q / (c_w·ΔT). Negative or non-finite duties
// count as zero.
func Hydraulics(cfg HydraulicConfig) HydraulicResult {
	dt := math.Abs(cfg.SupplyT - cfg.ReturnT)
	if !finite(dt) || dt < minLoopDeltaT {
		dt = minLoopDeltaT
	}
	q := cfg.DutyKW
	if !finite(q) || q < 0 {
		q = 0
	}

	kgs := q / (WaterSpecificHeat * dt)
	kgh := kgs * 3600
	return HydraulicResult{
		DeltaT:       dt,
		MassFlowKgS:  kgs,
		MassFlowKgH:  kgh,
		FlowFraction: min(1, kgh/FlowGaugeFull),
	}
}
