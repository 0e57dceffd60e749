package session

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/hxdiagram/internal/errors"
)

func TestNewProcess_Shapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		typ     ProcessType
		p1, p2  Coord
		wantErr bool
	}{
		{"heater up", Heater, Coord{5, 10}, Coord{5, 20}, false},
		{"heater down", Heater, Coord{5, 20}, Coord{5, 10}, true},
		{"heater flat", Heater, Coord{5, 20}, Coord{5, 20}, true},
		{"heater sloped", Heater, Coord{5, 10}, Coord{6, 20}, true},
		{"cooler down", Cooler, Coord{5, 20}, Coord{5, 10}, false},
		{"cooler up", Cooler, Coord{5, 10}, Coord{5, 20}, true},
		{"cooler sloped", Cooler, Coord{5, 20}, Coord{5.1, 10}, true},
		{"adiabatic right", Adiabatic, Coord{5, 30}, Coord{8, 30}, false},
		{"adiabatic left", Adiabatic, Coord{8, 30}, Coord{5, 30}, false},
		{"adiabatic no move", Adiabatic, Coord{5, 30}, Coord{5, 30}, true},
		{"adiabatic sloped", Adiabatic, Coord{5, 30}, Coord{8, 31}, true},
		{"wrg", WRG, Coord{1.2, -10}, Coord{1.2, 15}, false},
		{"wrg sloped", WRG, Coord{1.2, -10}, Coord{2, 15}, true},
		{"unknown type", ProcessType("mixer"), Coord{1, 1}, Coord{1, 2}, true},
		{"NaN endpoint", Heater, Coord{math.NaN(), 1}, Coord{1, 2}, true},
		{"negative x", Heater, Coord{-1, 1}, Coord{-1, 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pr, err := NewProcess("c", tt.typ, tt.p1, tt.p2)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, pr.ID)
			assert.Equal(t, tt.typ, pr.Type)
		})
	}
}

func TestAddPoint(t *testing.T) {
	t.Parallel()

	s := DefaultSession()
	p, err := s.AddPoint("winter", 10, 40, "")
	require.NoError(t, err)
	assert.Equal(t, Point{ID: p.ID, CaseID: "winter", X: 10, H: 40}, p)
	assert.Len(t, s.Points, 1)

	_, err = s.AddPoint("missing", 10, 40, "")
	assert.True(t, errors.IsNotFound(err))
	_, err = s.AddPoint("winter", math.Inf(1), 40, "")
	assert.Error(t, err)
	assert.Len(t, s.Points, 1)
}

func TestAddOrUpdatePoint_Dedup(t *testing.T) {
	t.Parallel()

	s := DefaultSession()
	first, err := s.AddOrUpdatePoint("winter", 5, 20, "")
	require.NoError(t, err)

	// Within tolerance: reuse and attach the label
	again, err := s.AddOrUpdatePoint("winter", 5.02, 20.2, "WRG")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "WRG", again.Label)

	// An existing label is kept
	kept, err := s.AddOrUpdatePoint("winter", 5, 20, "ZU")
	require.NoError(t, err)
	assert.Equal(t, "WRG", kept.Label)

	// Outside tolerance or another case: new point
	_, err = s.AddOrUpdatePoint("winter", 5.05, 20, "")
	require.NoError(t, err)
	_, err = s.AddOrUpdatePoint("summer", 5, 20, "")
	require.NoError(t, err)

	assert.Len(t, s.Points, 3)
}

func TestRemoveAndLabelPoint(t *testing.T) {
	t.Parallel()

	s := DefaultSession()
	p, err := s.AddPoint("winter", 3, 10, "")
	require.NoError(t, err)

	require.NoError(t, s.LabelPoint(p.ID, "A"))
	got, ok := s.Point(p.ID)
	require.True(t, ok)
	assert.Equal(t, "A", got.Label)

	require.NoError(t, s.RemovePoint(p.ID))
	assert.Empty(t, s.Points)
	assert.True(t, errors.IsNotFound(s.RemovePoint(p.ID)))
	assert.True(t, errors.IsNotFound(s.LabelPoint(p.ID, "B")))
}

func TestAddProcessWithPoints(t *testing.T) {
	t.Parallel()

	s := DefaultSession()
	pr, err := s.AddProcessWithPoints("winter", Heater, Coord{4, 10}, Coord{4, 25}, "", "")
	require.NoError(t, err)
	assert.Len(t, s.Processes, 1)
	assert.Len(t, s.Points, 2)

	_, err = s.AddProcessWithPoints("winter", Heater, Coord{4, 25}, Coord{4, 10}, "", "")
	require.Error(t, err)
	assert.Len(t, s.Processes, 1, "rejected process adds nothing")
	assert.Len(t, s.Points, 2)

	require.NoError(t, s.RemoveProcess(pr.ID))
	assert.Empty(t, s.Processes)
	assert.Len(t, s.Points, 2, "points outlive their process")
	assert.True(t, errors.IsNotFound(s.RemoveProcess(pr.ID)))
}

func TestAddEndpointsChecksBothBeforeWriting(t *testing.T) {
	t.Parallel()

	s := DefaultSession()

	err := s.addEndpoints("winter", Coord{4, 10}, Coord{-1, 25}, "A", "B")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
	assert.Empty(t, s.Points, "first endpoint is not written when the second is invalid")

	err = s.addEndpoints("missing", Coord{4, 10}, Coord{4, 25}, "", "")
	assert.True(t, errors.IsNotFound(err))
	assert.Empty(t, s.Points)

	require.NoError(t, s.addEndpoints("winter", Coord{4, 10}, Coord{4, 25}, "A", "B"))
	require.Len(t, s.Points, 2)
	assert.Equal(t, "A", s.Points[0].Label)
	assert.Equal(t, "B", s.Points[1].Label)
}

func TestPointsAndProcessesOf(t *testing.T) {
	t.Parallel()

	s := DefaultSession()
	_, _ = s.AddPoint("winter", 1, 1, "")
	_, _ = s.AddPoint("summer", 2, 2, "")
	_, _ = s.AddProcess("summer", Adiabatic, Coord{2, 30}, Coord{4, 30})

	assert.Len(t, s.PointsOf("winter"), 1)
	assert.Len(t, s.PointsOf("summer"), 1)
	assert.Len(t, s.ProcessesOf("summer"), 1)
	assert.Empty(t, s.ProcessesOf("winter"))
}
