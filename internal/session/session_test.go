package session

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/hvac"
	"github.com/tphakala/hxdiagram/internal/psychro"
)

const p100 = 100000.0

func ptr[T any](v T) *T { return &v }

func TestDefaultSession(t *testing.T) {
	t.Parallel()

	s := DefaultSession()
	require.Len(t, s.Cases, 3)
	assert.Equal(t, "winter", s.ActiveCaseID)
	assert.Equal(t, []string{"winter", "summer", "humid"}, s.VisibleCaseIDs())

	winter := s.ActiveCase()
	assert.InDelta(t, -13, winter.T, 1e-12)
	assert.InDelta(t, 90, winter.RH, 1e-12)
	assert.Equal(t, "#16a34a", winter.Color)
	for _, c := range s.Cases {
		assert.NoError(t, c.Validate())
	}
}

func TestNew_RequiresCase(t *testing.T) {
	t.Parallel()

	_, err := New()
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestAddCase_PaletteAndDefaults(t *testing.T) {
	t.Parallel()

	s := DefaultSession()
	c := s.AddCase("  ")
	assert.Equal(t, "Case 4", c.Name)
	assert.Equal(t, Palette[3], c.Color)
	assert.Equal(t, DefaultConditions, c.Conditions)
	assert.Equal(t, c.ID, s.ActiveCaseID)
	assert.NotEmpty(t, c.ID)

	named := s.AddCase("Spring")
	assert.Equal(t, "Spring", named.Name)
	assert.Equal(t, Palette[4], named.Color)
}

func TestRemoveCase_Cascades(t *testing.T) {
	t.Parallel()

	s := DefaultSession()
	_, err := s.RunHeatRecovery("winter", p100)
	require.NoError(t, err)
	_, err = s.RunCoil(CoilRequest{CaseID: "winter", Kind: hvac.Heater}, p100)
	require.NoError(t, err)
	_, err = s.AddPoint("summer", 10, 40, "")
	require.NoError(t, err)

	require.NoError(t, s.RemoveCase("winter"))

	assert.Len(t, s.Cases, 2)
	assert.Equal(t, "summer", s.ActiveCaseID, "active case moves to the first remaining case")
	assert.Len(t, s.Points, 1)
	assert.Empty(t, s.Processes)
	assert.NotContains(t, s.WRG, "winter")
	assert.NotContains(t, s.Calc, "winter")
	assert.NotContains(t, s.Hydraulics, "winter")
}

func TestRemoveCase_LastCaseStays(t *testing.T) {
	t.Parallel()

	s := DefaultSession()
	require.NoError(t, s.RemoveCase("summer"))
	require.NoError(t, s.RemoveCase("humid"))

	err := s.RemoveCase("winter")
	require.Error(t, err)
	assert.Equal(t, "at least one case must remain", errors.UserMessage(err))
	assert.Len(t, s.Cases, 1)

	assert.True(t, errors.IsNotFound(s.RemoveCase("nope")))
}

func TestUpdateCase(t *testing.T) {
	t.Parallel()

	s := DefaultSession()
	c, err := s.UpdateCase("winter", CaseUpdate{T: ptr(-10.0), Name: ptr(" Cold ")})
	require.NoError(t, err)
	assert.InDelta(t, -10, c.T, 1e-12)
	assert.Equal(t, "Cold", c.Name)

	got, _ := s.Case("winter")
	assert.Equal(t, c, got)
}

func TestUpdateCase_InvalidLeavesCaseUntouched(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		upd  CaseUpdate
	}{
		{"humidity above 100", CaseUpdate{RH: ptr(120.0)}},
		{"negative flow", CaseUpdate{Flow: ptr(-1.0)}},
		{"zero flow", CaseUpdate{Flow: ptr(0.0)}},
		{"NaN temperature", CaseUpdate{T: ptr(math.NaN())}},
		{"empty name", CaseUpdate{Name: ptr("   ")}},
		{"effectiveness above 100", CaseUpdate{Effectiveness: ptr(101.0)}},
		{"infinite exhaust flow", CaseUpdate{ExhaustFlow: ptr(math.Inf(1))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := DefaultSession()
			before := s.Clone()
			_, err := s.UpdateCase("winter", tt.upd)
			require.Error(t, err)
			assert.NotEmpty(t, errors.UserMessage(err))
			assert.Equal(t, before, s)
		})
	}
}

func TestSetActiveCase(t *testing.T) {
	t.Parallel()

	s := DefaultSession()
	require.NoError(t, s.SetActiveCase("humid"))
	assert.Equal(t, "humid", s.ActiveCase().ID)
	assert.Error(t, s.SetActiveCase("missing"))
	assert.Equal(t, "humid", s.ActiveCaseID)
}

func TestClone_IsDeep(t *testing.T) {
	t.Parallel()

	s := DefaultSession()
	_, err := s.RunHeatRecovery("winter", p100)
	require.NoError(t, err)
	_, err = s.RunCoil(CoilRequest{CaseID: "winter", Kind: hvac.Heater}, p100)
	require.NoError(t, err)

	c := s.Clone()
	require.Equal(t, s, c)

	c.Points[0].Label = "changed"
	c.Cases[0].T = 5
	c.Processes[0].P1.H = 99
	c.Hydraulics["winter"][hvac.HeatingLoop] = hvac.HydraulicConfig{DutyKW: 1}
	delete(c.WRG, "winter")

	assert.NotEqual(t, "changed", s.Points[0].Label)
	assert.InDelta(t, -13, s.Cases[0].T, 1e-12)
	assert.NotEqual(t, 99.0, s.Processes[0].P1.H)
	assert.NotEqual(t, 1.0, s.Hydraulics["winter"][hvac.HeatingLoop].DutyKW)
	assert.Contains(t, s.WRG, "winter")
}

func TestClearAll_KeepsCases(t *testing.T) {
	t.Parallel()

	s := DefaultSession()
	_, err := s.RunHeatRecovery("winter", p100)
	require.NoError(t, err)

	s.ClearAll()
	assert.Len(t, s.Cases, 3)
	assert.Empty(t, s.Points)
	assert.Empty(t, s.Processes)
	assert.Empty(t, s.WRG)
	assert.Empty(t, s.Calc)
	assert.Empty(t, s.Hydraulics)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := DefaultSession()
	_, err := s.RunHeatRecovery("winter", p100)
	require.NoError(t, err)

	sum := Summarize(s, p100)
	require.Len(t, sum.Points, 2)
	require.Len(t, sum.Processes, 1)

	oa := sum.Points[0]
	assert.Equal(t, 1, oa.Index)
	assert.Equal(t, LabelOutdoor, oa.Label)
	assert.InDelta(t, -13, oa.T, 1e-9)
	assert.InDelta(t, 90, oa.RH, 1e-6)

	pr := sum.Processes[0]
	assert.Equal(t, WRG, pr.Type)
	assert.InDelta(t, -13, pr.T1, 1e-9)
	assert.InDelta(t, 11.5, pr.T2, 1e-9)
	assert.InDelta(t, 24.5, pr.DeltaT, 1e-9)
	assert.Less(t, pr.RH2, pr.RH1)
	assert.InDelta(t, psychro.RelativeHumidity(11.5, s.WRG["winter"].W, p100), pr.RH2, 1e-9)
}
