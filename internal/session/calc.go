package session

import (
	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/hvac"
	"github.com/tphakala/hxdiagram/internal/psychro"
)

// Semantic point labels emitted by the calculations
const (
	LabelOutdoor = "OA"
	LabelWRG     = "WRG"
	LabelSupply  = "ZU"
)

// RunHeatRecovery runs the heat recovery calculation for a case. On success
// it adds the outdoor and outlet points, one wrg process between them, and
// stores the result for later coil stages.
func (s *Session) RunHeatRecovery(caseID string, pressurePa float64) (hvac.HeatRecoveryResult, error) {
	c, ok := s.Case(caseID)
	if !ok {
		return hvac.HeatRecoveryResult{}, errors.NotFound("case", caseID)
	}

	res, err := hvac.HeatRecovery(hvac.HeatRecoveryInput{
		OutdoorT:      c.T,
		OutdoorRH:     c.RH,
		ExhaustT:      c.ExhaustT,
		ExhaustRH:     c.ExhaustRH,
		SupplyFlow:    c.Flow,
		ExhaustFlow:   c.ExhaustFlow,
		Effectiveness: c.Effectiveness,
		PressurePa:    pressurePa,
	})
	if err != nil {
		return hvac.HeatRecoveryResult{}, err
	}

	p1 := Coord{X: res.X, H: res.HOutdoor}
	p2 := Coord{X: res.X, H: res.HOutlet}
	pr, err := NewProcess(caseID, WRG, p1, p2)
	if err != nil {
		return hvac.HeatRecoveryResult{}, err
	}

	if err := s.addEndpoints(caseID, p1, p2, LabelOutdoor, LabelWRG); err != nil {
		return hvac.HeatRecoveryResult{}, err
	}
	s.ensureMaps()
	if !s.hasProcess(caseID, WRG, p1, p2) {
		s.Processes = append(s.Processes, pr)
	}
	s.WRG[caseID] = res
	return res, nil
}

// CoilRequest asks for a heater or cooler stage on a case.
type CoilRequest struct {
	CaseID string
	Kind   hvac.CoilKind
	// Target is the absolute outlet temperature; nil uses the case setpoint.
	Target *float64
	// Delta is an offset from the inlet temperature and overrides Target.
	Delta *float64
	// Inlet overrides the inlet state. By default the coil follows the heat
	// recovery outlet of the case, or the outdoor state without one.
	Inlet *Coord
}

// RunCoil sizes a heater or cooler and adds it to the case. The process
// keeps the inlet moisture content. A request that would not heat (or cool)
// is rejected without touching the session.
func (s *Session) RunCoil(req CoilRequest, pressurePa float64) (hvac.CoilResult, error) {
	c, ok := s.Case(req.CaseID)
	if !ok {
		return hvac.CoilResult{}, errors.NotFound("case", req.CaseID)
	}

	tIn, w, inLabel := s.coilInlet(c, req.Inlet, pressurePa)
	target := c.SetpointT
	switch {
	case req.Delta != nil:
		target = tIn + *req.Delta
	case req.Target != nil:
		target = *req.Target
	}

	res, err := hvac.SizeCoil(hvac.CoilInput{
		Kind:       req.Kind,
		InletT:     tIn,
		InletW:     w,
		TargetT:    target,
		Flow:       c.Flow,
		PressurePa: pressurePa,
	})
	if err != nil {
		return hvac.CoilResult{}, err
	}

	typ := Heater
	if req.Kind == hvac.Cooler {
		typ = Cooler
	}
	p1 := Coord{X: res.X, H: res.HIn}
	p2 := Coord{X: res.X, H: res.HOut}
	pr, err := NewProcess(c.ID, typ, p1, p2)
	if err != nil {
		return hvac.CoilResult{}, err
	}

	if err := s.addEndpoints(c.ID, p1, p2, inLabel, LabelSupply); err != nil {
		return hvac.CoilResult{}, err
	}
	s.ensureMaps()
	if !s.hasProcess(c.ID, typ, p1, p2) {
		s.Processes = append(s.Processes, pr)
	}

	s.Calc[c.ID] = CalcSummary{
		Kind:       res.Kind,
		DutyKW:     res.DutyKW,
		MassFlowDA: res.MassFlowDA,
		TIn:        res.TIn,
		TOut:       res.TOut,
	}
	s.seedHydraulics(c.ID, hvac.LoopFor(res.Kind), res.DutyKW)
	return res, nil
}

// coilInlet resolves the inlet temperature, humidity ratio and point label
func (s *Session) coilInlet(c Case, inlet *Coord, pressurePa float64) (t, w float64, label string) {
	if inlet != nil {
		w = max(0, inlet.X/1000)
		return psychro.TemperatureFromEnthalpy(inlet.H, w), w, ""
	}
	if wrg, ok := s.WRG[c.ID]; ok {
		return wrg.TOutlet, wrg.W, LabelWRG
	}
	return c.T, psychro.HumidityRatio(c.T, c.RH, pressurePa), LabelOutdoor
}

// seedHydraulics creates the loop on first use and afterwards only
// refreshes its duty, keeping user-entered water temperatures
func (s *Session) seedHydraulics(caseID string, loop hvac.Loop, dutyKW float64) {
	loops := s.Hydraulics[caseID]
	if loops == nil {
		loops = make(LoopConfigs)
		s.Hydraulics[caseID] = loops
	}
	seeded := hvac.DefaultHydraulics(loop, dutyKW)
	if cfg, ok := loops[loop]; ok {
		cfg.DutyKW = seeded.DutyKW
		loops[loop] = cfg
		return
	}
	loops[loop] = seeded
}

// SetHydraulics replaces the water loop configuration of a case.
func (s *Session) SetHydraulics(caseID string, loop hvac.Loop, cfg hvac.HydraulicConfig) error {
	if s.caseIndex(caseID) < 0 {
		return errors.NotFound("case", caseID)
	}
	if loop != hvac.HeatingLoop && loop != hvac.CoolingLoop {
		return invalid("unknown water loop %q", loop)
	}
	if !finiteCoord(Coord{X: cfg.SupplyT, H: cfg.ReturnT}) || !finiteCoord(Coord{X: cfg.DutyKW}) {
		return invalid("water loop values must be finite numbers")
	}
	if cfg.DutyKW < 0 {
		return invalid("coil duty must not be negative")
	}

	s.ensureMaps()
	loops := s.Hydraulics[caseID]
	if loops == nil {
		loops = make(LoopConfigs)
		s.Hydraulics[caseID] = loops
	}
	loops[loop] = cfg
	return nil
}

// HydraulicsOf returns the computed loop result for a case, if configured.
func (s *Session) HydraulicsOf(caseID string, loop hvac.Loop) (hvac.HydraulicResult, bool) {
	cfg, ok := s.Hydraulics[caseID][loop]
	if !ok {
		return hvac.HydraulicResult{}, false
	}
	return hvac.Hydraulics(cfg), true
}
