// Package session holds the editable state of a diagram: design cases, the
// points and processes drawn for them, and the results derived from the
// heat recovery and coil calculations.
//
// A Session is plain data. Every mutation validates its input first and
// leaves the session untouched when it fails, so callers can snapshot it
// before a commit and discard the snapshot on error.
package session

import (
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/tphakala/hxdiagram/internal/hvac"
)

// Coord is a location in diagram units.
type Coord struct {
	X float64 `json:"x"` // g/kg
	H float64 `json:"h"` // kJ/kg
}

// Point is a plotted state marker.
type Point struct {
	ID     string  `json:"id"`
	CaseID string  `json:"case_id"`
	X      float64 `json:"x"`
	H      float64 `json:"h"`
	Label  string  `json:"label,omitempty"`
}

// Coord returns the point location.
func (p Point) Coord() Coord {
	return Coord{X: p.X, H: p.H}
}

// CalcSummary is the outcome of the last coil calculation of a case.
type CalcSummary struct {
	Kind       hvac.CoilKind `json:"kind"`
	DutyKW     float64       `json:"duty_kw"`
	MassFlowDA float64       `json:"mass_flow_da"`
	TIn        float64       `json:"t_in"`
	TOut       float64       `json:"t_out"`
}

// LoopConfigs holds the water loops configured for a case.
type LoopConfigs map[hvac.Loop]hvac.HydraulicConfig

// Session is the complete editable state.
type Session struct {
	Cases        []Case                             `json:"cases"`
	Points       []Point                            `json:"points"`
	Processes    []Process                          `json:"processes"`
	WRG          map[string]hvac.HeatRecoveryResult `json:"wrg"`
	Calc         map[string]CalcSummary             `json:"calc"`
	Hydraulics   map[string]LoopConfigs             `json:"hydraulics"`
	ActiveCaseID string                             `json:"active_case_id"`
}

// newID returns a fresh identifier for cases, points and processes
var newID = uuid.NewString

// New returns a session holding the given cases. The first case becomes
// active. At least one case is required.
func New(cases ...Case) (*Session, error) {
	if len(cases) == 0 {
		return nil, errLastCase()
	}
	s := &Session{
		Cases:      slices.Clone(cases),
		WRG:        make(map[string]hvac.HeatRecoveryResult),
		Calc:       make(map[string]CalcSummary),
		Hydraulics: make(map[string]LoopConfigs),
	}
	s.ActiveCaseID = s.Cases[0].ID
	return s, nil
}

// Clone returns a deep copy sharing no slices or maps with s.
func (s *Session) Clone() *Session {
	c := &Session{
		Cases:        slices.Clone(s.Cases),
		Points:       slices.Clone(s.Points),
		Processes:    slices.Clone(s.Processes),
		WRG:          maps.Clone(s.WRG),
		Calc:         maps.Clone(s.Calc),
		Hydraulics:   make(map[string]LoopConfigs, len(s.Hydraulics)),
		ActiveCaseID: s.ActiveCaseID,
	}
	if c.WRG == nil {
		c.WRG = make(map[string]hvac.HeatRecoveryResult)
	}
	if c.Calc == nil {
		c.Calc = make(map[string]CalcSummary)
	}
	for id, loops := range s.Hydraulics {
		c.Hydraulics[id] = maps.Clone(loops)
	}
	return c
}

// Case returns the case with the given id.
func (s *Session) Case(id string) (Case, bool) {
	i := s.caseIndex(id)
	if i < 0 {
		return Case{}, false
	}
	return s.Cases[i], true
}

// ActiveCase returns the active case.
func (s *Session) ActiveCase() Case {
	if c, ok := s.Case(s.ActiveCaseID); ok {
		return c
	}
	return s.Cases[0]
}

// Point returns the point with the given id.
func (s *Session) Point(id string) (Point, bool) {
	i := slices.IndexFunc(s.Points, func(p Point) bool { return p.ID == id })
	if i < 0 {
		return Point{}, false
	}
	return s.Points[i], true
}

// Process returns the process with the given id.
func (s *Session) Process(id string) (Process, bool) {
	i := slices.IndexFunc(s.Processes, func(p Process) bool { return p.ID == id })
	if i < 0 {
		return Process{}, false
	}
	return s.Processes[i], true
}

// VisibleCaseIDs returns the ids of the visible cases in order.
func (s *Session) VisibleCaseIDs() []string {
	ids := make([]string, 0, len(s.Cases))
	for i := range s.Cases {
		if s.Cases[i].Visible {
			ids = append(ids, s.Cases[i].ID)
		}
	}
	return ids
}

// Counts returns the number of cases, points and processes.
func (s *Session) Counts() (cases, points, processes int) {
	return len(s.Cases), len(s.Points), len(s.Processes)
}

// ClearAll removes every point, process and derived result. Cases stay.
func (s *Session) ClearAll() {
	s.Points = nil
	s.Processes = nil
	s.WRG = make(map[string]hvac.HeatRecoveryResult)
	s.Calc = make(map[string]CalcSummary)
	s.Hydraulics = make(map[string]LoopConfigs)
}

// ensureMaps allocates the derived-result maps of a zero or decoded session
func (s *Session) ensureMaps() {
	if s.WRG == nil {
		s.WRG = make(map[string]hvac.HeatRecoveryResult)
	}
	if s.Calc == nil {
		s.Calc = make(map[string]CalcSummary)
	}
	if s.Hydraulics == nil {
		s.Hydraulics = make(map[string]LoopConfigs)
	}
}

func (s *Session) caseIndex(id string) int {
	return slices.IndexFunc(s.Cases, func(c Case) bool { return c.ID == id })
}
