package session

import (
	"fmt"
	"math"
	"strings"

	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/psychro"
)

// Palette is cycled through when new cases are added.
var Palette = []string{
	"#0ea5e9", "#16a34a", "#e11d48", "#f59e0b",
	"#8b5cf6", "#22c55e", "#06b6d4", "#ef4444",
}

// PickColor returns the palette color for the i-th case.
func PickColor(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// Conditions are the numeric design parameters of a case.
type Conditions struct {
	T             float64 `json:"t"`             // outdoor °C
	RH            float64 `json:"rh"`            // outdoor %
	ExhaustT      float64 `json:"exhaust_t"`     // °C
	ExhaustRH     float64 `json:"exhaust_rh"`    // %
	Effectiveness float64 `json:"effectiveness"` // heat recovery %
	SetpointT     float64 `json:"setpoint_t"`    // supply °C
	Flow          float64 `json:"flow"`          // supply m³/h
	ExhaustFlow   float64 `json:"exhaust_flow"`  // m³/h, 0 = balanced
}

// DefaultConditions are used for cases added without parameters.
var DefaultConditions = Conditions{
	T:             0,
	RH:            50,
	ExhaustT:      22,
	ExhaustRH:     40,
	Effectiveness: 60,
	SetpointT:     20,
	Flow:          2000,
}

// Case is one named outdoor-air design scenario.
type Case struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	Visible bool   `json:"visible"`
	Conditions
}

// NewCase validates the parameters and returns a visible case with a fresh id.
func NewCase(name, color string, cond Conditions) (Case, error) {
	c := Case{
		ID:         newID(),
		Name:       strings.TrimSpace(name),
		Color:      color,
		Visible:    true,
		Conditions: cond,
	}
	if err := c.Validate(); err != nil {
		return Case{}, err
	}
	return c, nil
}

// Validate checks the case fields against their physical ranges.
func (c Case) Validate() error {
	if c.Name == "" {
		return invalid("case name must not be empty")
	}
	checks := []struct {
		name   string
		v      float64
		lo, hi float64
	}{
		{"outdoor temperature", c.T, psychro.MinTemperature, psychro.MaxTemperature},
		{"outdoor humidity", c.RH, 0, 100},
		{"exhaust temperature", c.ExhaustT, psychro.MinTemperature, psychro.MaxTemperature},
		{"exhaust humidity", c.ExhaustRH, 0, 100},
		{"effectiveness", c.Effectiveness, 0, 100},
		{"setpoint temperature", c.SetpointT, psychro.MinTemperature, psychro.MaxTemperature},
		{"air flow", c.Flow, 0, math.MaxFloat64},
		{"exhaust air flow", c.ExhaustFlow, 0, math.MaxFloat64},
	}
	for _, chk := range checks {
		if math.IsNaN(chk.v) || chk.v < chk.lo || chk.v > chk.hi {
			if chk.hi == math.MaxFloat64 {
				return invalid("%s must not be negative", chk.name)
			}
			return invalid("%s must be between %g and %g", chk.name, chk.lo, chk.hi)
		}
	}
	if !(c.Flow > 0) {
		return invalid("air flow must be positive")
	}
	return nil
}

// CaseUpdate is a whole-field edit of a case. Nil fields are left unchanged.
type CaseUpdate struct {
	Name          *string
	Color         *string
	Visible       *bool
	T             *float64
	RH            *float64
	ExhaustT      *float64
	ExhaustRH     *float64
	Effectiveness *float64
	SetpointT     *float64
	Flow          *float64
	ExhaustFlow   *float64
}

// Empty reports whether the update changes nothing.
func (u CaseUpdate) Empty() bool {
	return u == CaseUpdate{}
}

func (u CaseUpdate) apply(c Case) Case {
	if u.Name != nil {
		c.Name = strings.TrimSpace(*u.Name)
	}
	if u.Color != nil {
		c.Color = *u.Color
	}
	if u.Visible != nil {
		c.Visible = *u.Visible
	}
	setIf(&c.T, u.T)
	setIf(&c.RH, u.RH)
	setIf(&c.ExhaustT, u.ExhaustT)
	setIf(&c.ExhaustRH, u.ExhaustRH)
	setIf(&c.Effectiveness, u.Effectiveness)
	setIf(&c.SetpointT, u.SetpointT)
	setIf(&c.Flow, u.Flow)
	setIf(&c.ExhaustFlow, u.ExhaustFlow)
	return c
}

func setIf(dst, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// DefaultSession returns the winter, summer and humid design cases.
func DefaultSession() *Session {
	s, _ := New(
		Case{ID: "winter", Name: "Winter -13 °C / 90 %", Color: "#16a34a", Visible: true, Conditions: Conditions{
			T: -13, RH: 90, ExhaustT: 22, ExhaustRH: 40, Effectiveness: 70, SetpointT: 20, Flow: 2000,
		}},
		Case{ID: "summer", Name: "Summer 35 °C / 40 %", Color: "#e11d48", Visible: true, Conditions: Conditions{
			T: 35, RH: 40, ExhaustT: 24, ExhaustRH: 50, Effectiveness: 60, SetpointT: 18, Flow: 2000,
		}},
		Case{ID: "humid", Name: "Humid 29 °C / 60 %", Color: "#f59e0b", Visible: true, Conditions: Conditions{
			T: 29, RH: 60, ExhaustT: 24, ExhaustRH: 50, Effectiveness: 60, SetpointT: 20, Flow: 2000,
		}},
	)
	return s
}

// AddCase appends a case with default conditions and makes it active. An
// empty name is replaced by "Case n".
func (s *Session) AddCase(name string) Case {
	i := len(s.Cases)
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("Case %d", i+1)
	}
	// DefaultConditions always validate
	c, _ := NewCase(name, PickColor(i), DefaultConditions)
	s.Cases = append(s.Cases, c)
	s.ActiveCaseID = c.ID
	return c
}

// InsertCase appends a fully specified case after validating it.
func (s *Session) InsertCase(c Case) error {
	if c.ID == "" {
		c.ID = newID()
	}
	if s.caseIndex(c.ID) >= 0 {
		return invalid("case %q already exists", c.ID)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	s.Cases = append(s.Cases, c)
	return nil
}

// RemoveCase deletes a case and everything derived from it. The last case
// cannot be removed. When the active case goes, the first remaining case
// becomes active.
func (s *Session) RemoveCase(id string) error {
	i := s.caseIndex(id)
	if i < 0 {
		return errors.NotFound("case", id)
	}
	if len(s.Cases) <= 1 {
		return errLastCase()
	}

	s.Cases = append(s.Cases[:i:i], s.Cases[i+1:]...)
	s.Points = deleteByCase(s.Points, id, func(p Point) string { return p.CaseID })
	s.Processes = deleteByCase(s.Processes, id, func(p Process) string { return p.CaseID })
	delete(s.WRG, id)
	delete(s.Calc, id)
	delete(s.Hydraulics, id)

	if s.ActiveCaseID == id {
		s.ActiveCaseID = s.Cases[0].ID
	}
	return nil
}

// UpdateCase applies a whole-field edit after validating the result.
func (s *Session) UpdateCase(id string, u CaseUpdate) (Case, error) {
	i := s.caseIndex(id)
	if i < 0 {
		return Case{}, errors.NotFound("case", id)
	}
	next := u.apply(s.Cases[i])
	if err := next.Validate(); err != nil {
		return Case{}, err
	}
	s.Cases[i] = next
	return next, nil
}

// SetActiveCase selects the case new points and processes belong to.
func (s *Session) SetActiveCase(id string) error {
	if s.caseIndex(id) < 0 {
		return errors.NotFound("case", id)
	}
	s.ActiveCaseID = id
	return nil
}

func deleteByCase[T any](items []T, caseID string, key func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if key(it) != caseID {
			out = append(out, it)
		}
	}
	return out
}

func invalid(format string, args ...any) error {
	return errors.Newf(format, args...).
		Category(errors.CategoryValidation).
		Build()
}

func errLastCase() error {
	return invalid("at least one case must remain")
}
