package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/hvac"
	"github.com/tphakala/hxdiagram/internal/session"
)

const p100 = 100000.0

// mutations is a mix of every kind of commit-level edit
func mutations() []func(*session.Session) error {
	return []func(*session.Session) error{
		func(s *session.Session) error { _, err := s.AddPoint("winter", 10, 40, ""); return err },
		func(s *session.Session) error { _, err := s.RunHeatRecovery("winter", p100); return err },
		func(s *session.Session) error {
			_, err := s.RunCoil(session.CoilRequest{CaseID: "winter", Kind: hvac.Heater}, p100)
			return err
		},
		func(s *session.Session) error {
			t := -5.0
			_, err := s.UpdateCase("summer", session.CaseUpdate{T: &t})
			return err
		},
		func(s *session.Session) error {
			_, err := s.AddProcess("humid", session.Adiabatic, session.Coord{X: 8, H: 40}, session.Coord{X: 10, H: 40})
			return err
		},
		func(s *session.Session) error { s.AddCase("Spring"); return nil },
		func(s *session.Session) error { return s.RemoveCase("summer") },
		func(s *session.Session) error { s.ClearAll(); return nil },
	}
}

func TestUndoRedoSymmetry(t *testing.T) {
	t.Parallel()

	m := NewManager(0)
	cur := session.DefaultSession()
	initial := cur.Clone()

	muts := mutations()
	for i, fn := range muts {
		var err error
		cur, err = m.Commit(cur, fn)
		require.NoError(t, err, "mutation %d", i)
	}
	afterMutations := cur.Clone()

	for range muts {
		var ok bool
		cur, ok = m.Undo(cur)
		require.True(t, ok)
	}
	assert.Equal(t, initial, cur)

	for range muts {
		var ok bool
		cur, ok = m.Redo(cur)
		require.True(t, ok)
	}
	assert.Equal(t, afterMutations, cur)
}

func TestCommit_ErrorLeavesEverything(t *testing.T) {
	t.Parallel()

	m := NewManager(10)
	cur := session.DefaultSession()
	cur, err := m.Commit(cur, mutations()[0])
	require.NoError(t, err)
	cur, ok := m.Undo(cur)
	require.True(t, ok)

	before := cur.Clone()
	got, err := m.Commit(cur, func(s *session.Session) error {
		_, _ = s.AddPoint("winter", 1, 1, "")
		return errors.ValidationError("rejected")
	})
	require.Error(t, err)
	assert.Same(t, cur, got)
	assert.Equal(t, before, got)

	undo, redo := m.Len()
	assert.Zero(t, undo)
	assert.Equal(t, 1, redo, "failed commit keeps the redo stack")
}

func TestCommit_ClearsRedo(t *testing.T) {
	t.Parallel()

	m := NewManager(10)
	cur := session.DefaultSession()
	cur, _ = m.Commit(cur, mutations()[0])
	cur, _ = m.Undo(cur)
	require.True(t, m.CanRedo())

	_, err := m.Commit(cur, mutations()[1])
	require.NoError(t, err)
	assert.False(t, m.CanRedo())
}

func TestEmptyStacksAreNoOps(t *testing.T) {
	t.Parallel()

	m := NewManager(10)
	cur := session.DefaultSession()

	got, ok := m.Undo(cur)
	assert.False(t, ok)
	assert.Same(t, cur, got)

	got, ok = m.Redo(cur)
	assert.False(t, ok)
	assert.Same(t, cur, got)
}

func TestDepthLimit(t *testing.T) {
	t.Parallel()

	m := NewManager(3)
	cur := session.DefaultSession()
	for i := range 5 {
		var err error
		cur, err = m.Commit(cur, func(s *session.Session) error {
			_, err := s.AddPoint("winter", float64(i), 10, fmt.Sprint(i))
			return err
		})
		require.NoError(t, err)
	}

	undo, _ := m.Len()
	assert.Equal(t, 3, undo)

	for m.CanUndo() {
		cur, _ = m.Undo(cur)
	}
	// The two oldest steps were dropped
	assert.Len(t, cur.Points, 2)
}

func TestSnapshotsAreIsolated(t *testing.T) {
	t.Parallel()

	m := NewManager(10)
	cur := session.DefaultSession()
	cur, err := m.Commit(cur, mutations()[0])
	require.NoError(t, err)

	// Mutating the live session must not leak into the snapshot
	cur.Points[0].Label = "live edit"
	prev, ok := m.Undo(cur)
	require.True(t, ok)
	assert.Empty(t, prev.Points)

	m.Reset()
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
}
