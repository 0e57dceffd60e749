package session

import (
	"math"
	"slices"

	"github.com/tphakala/hxdiagram/internal/errors"
)

// ProcessType tags the closed set of process variants.
type ProcessType string

const (
	Heater    ProcessType = "heater"
	Cooler    ProcessType = "cooler"
	Adiabatic ProcessType = "adiabatic"
	WRG       ProcessType = "wrg"
)

// ProcessTypes lists every process variant.
var ProcessTypes = []ProcessType{Heater, Cooler, Adiabatic, WRG}

// Valid reports whether t is a known process type.
func (t ProcessType) Valid() bool {
	return slices.Contains(ProcessTypes, t)
}

// Tolerances for the process shape invariants and for point dedup
const (
	shapeTolerance = 1e-9
	dedupX         = 0.03 // g/kg
	dedupH         = 0.3  // kJ/kg
)

// Process is a directed edge from P1 to P2.
type Process struct {
	ID     string      `json:"id"`
	CaseID string      `json:"case_id"`
	Type   ProcessType `json:"type"`
	P1     Coord       `json:"p1"`
	P2     Coord       `json:"p2"`
}

// NewProcess validates the shape of a process:
//   - heater: constant x, rising h
//   - cooler: constant x, falling h
//   - adiabatic: constant h, x must change
//   - wrg: constant x
func NewProcess(caseID string, typ ProcessType, p1, p2 Coord) (Process, error) {
	if !typ.Valid() {
		return Process{}, invalid("unknown process type %q", typ)
	}
	if !finiteCoord(p1) || !finiteCoord(p2) {
		return Process{}, invalid("process endpoints must be finite")
	}
	if p1.X < 0 || p2.X < 0 {
		return Process{}, invalid("moisture content must not be negative")
	}

	sameX := math.Abs(p1.X-p2.X) <= shapeTolerance
	sameH := math.Abs(p1.H-p2.H) <= shapeTolerance

	switch typ {
	case Heater:
		if !sameX {
			return Process{}, invalid("a heater keeps the moisture content constant")
		}
		if !(p2.H > p1.H) {
			return Process{}, invalid("a heater must raise the enthalpy")
		}
	case Cooler:
		if !sameX {
			return Process{}, invalid("a cooler keeps the moisture content constant")
		}
		if !(p2.H < p1.H) {
			return Process{}, invalid("a cooler must lower the enthalpy")
		}
	case Adiabatic:
		if !sameH {
			return Process{}, invalid("an adiabatic process keeps the enthalpy constant")
		}
		if sameX {
			return Process{}, invalid("an adiabatic process must change the moisture content")
		}
	case WRG:
		if !sameX {
			return Process{}, invalid("heat recovery keeps the moisture content constant")
		}
	}

	return Process{ID: newID(), CaseID: caseID, Type: typ, P1: p1, P2: p2}, nil
}

// AddPoint places a point for a case.
func (s *Session) AddPoint(caseID string, x, h float64, label string) (Point, error) {
	if err := s.checkPoint(caseID, x, h); err != nil {
		return Point{}, err
	}
	p := Point{ID: newID(), CaseID: caseID, X: x, H: h, Label: label}
	s.Points = append(s.Points, p)
	return p, nil
}

// AddOrUpdatePoint reuses a point of the same case within 0.03 g/kg and
// 0.3 kJ/kg. A label is attached to the existing point only if it has none.
func (s *Session) AddOrUpdatePoint(caseID string, x, h float64, label string) (Point, error) {
	if err := s.checkPoint(caseID, x, h); err != nil {
		return Point{}, err
	}
	i := s.nearPoint(caseID, x, h)
	if i < 0 {
		return s.AddPoint(caseID, x, h, label)
	}
	if label != "" && s.Points[i].Label == "" {
		s.Points[i].Label = label
	}
	return s.Points[i], nil
}

// RemovePoint deletes a point. Processes are independent of points and stay.
func (s *Session) RemovePoint(id string) error {
	i := slices.IndexFunc(s.Points, func(p Point) bool { return p.ID == id })
	if i < 0 {
		return errors.NotFound("point", id)
	}
	s.Points = append(s.Points[:i:i], s.Points[i+1:]...)
	return nil
}

// LabelPoint sets or clears the label of a point.
func (s *Session) LabelPoint(id, label string) error {
	i := slices.IndexFunc(s.Points, func(p Point) bool { return p.ID == id })
	if i < 0 {
		return errors.NotFound("point", id)
	}
	s.Points[i].Label = label
	return nil
}

// AddProcess validates and appends a process.
func (s *Session) AddProcess(caseID string, typ ProcessType, p1, p2 Coord) (Process, error) {
	if s.caseIndex(caseID) < 0 {
		return Process{}, errors.NotFound("case", caseID)
	}
	pr, err := NewProcess(caseID, typ, p1, p2)
	if err != nil {
		return Process{}, err
	}
	s.Processes = append(s.Processes, pr)
	return pr, nil
}

// AddProcessWithPoints appends a process together with points at both
// endpoints, deduplicated against existing points.
func (s *Session) AddProcessWithPoints(caseID string, typ ProcessType, p1, p2 Coord, label1, label2 string) (Process, error) {
	if s.caseIndex(caseID) < 0 {
		return Process{}, errors.NotFound("case", caseID)
	}
	pr, err := NewProcess(caseID, typ, p1, p2)
	if err != nil {
		return Process{}, err
	}
	if err := s.addEndpoints(caseID, p1, p2, label1, label2); err != nil {
		return Process{}, err
	}
	s.Processes = append(s.Processes, pr)
	return pr, nil
}

// RemoveProcess deletes a process.
func (s *Session) RemoveProcess(id string) error {
	i := slices.IndexFunc(s.Processes, func(p Process) bool { return p.ID == id })
	if i < 0 {
		return errors.NotFound("process", id)
	}
	s.Processes = append(s.Processes[:i:i], s.Processes[i+1:]...)
	return nil
}

// PointsOf returns the points of a case in insertion order.
func (s *Session) PointsOf(caseID string) []Point {
	var out []Point
	for _, p := range s.Points {
		if p.CaseID == caseID {
			out = append(out, p)
		}
	}
	return out
}

// ProcessesOf returns the processes of a case in insertion order.
func (s *Session) ProcessesOf(caseID string) []Process {
	var out []Process
	for _, p := range s.Processes {
		if p.CaseID == caseID {
			out = append(out, p)
		}
	}
	return out
}

func (s *Session) checkPoint(caseID string, x, h float64) error {
	if s.caseIndex(caseID) < 0 {
		return errors.NotFound("case", caseID)
	}
	if !finiteCoord(Coord{X: x, H: h}) {
		return invalid("point coordinates must be finite")
	}
	if x < 0 {
		return invalid("moisture content must not be negative")
	}
	return nil
}

// addEndpoints places or relabels the points at both process endpoints.
// Both are checked before either is written.
func (s *Session) addEndpoints(caseID string, p1, p2 Coord, label1, label2 string) error {
	if err := s.checkPoint(caseID, p1.X, p1.H); err != nil {
		return err
	}
	if err := s.checkPoint(caseID, p2.X, p2.H); err != nil {
		return err
	}
	if _, err := s.AddOrUpdatePoint(caseID, p1.X, p1.H, label1); err != nil {
		return err
	}
	_, err := s.AddOrUpdatePoint(caseID, p2.X, p2.H, label2)
	return err
}

func (s *Session) nearPoint(caseID string, x, h float64) int {
	return slices.IndexFunc(s.Points, func(p Point) bool {
		return p.CaseID == caseID && math.Abs(p.X-x) <= dedupX && math.Abs(p.H-h) <= dedupH
	})
}

// hasProcess reports whether an equivalent process already exists
func (s *Session) hasProcess(caseID string, typ ProcessType, p1, p2 Coord) bool {
	return slices.ContainsFunc(s.Processes, func(p Process) bool {
		return p.CaseID == caseID && p.Type == typ && near(p.P1, p1) && near(p.P2, p2)
	})
}

func near(a, b Coord) bool {
	return math.Abs(a.X-b.X) <= dedupX && math.Abs(a.H-b.H) <= dedupH
}

func finiteCoord(c Coord) bool {
	return !math.IsNaN(c.X) && !math.IsInf(c.X, 0) && !math.IsNaN(c.H) && !math.IsInf(c.H, 0)
}
