// Package history keeps full-state undo and redo stacks of sessions.
package history

import (
	"github.com/tphakala/hxdiagram/internal/session"
)

// DefaultDepth is the number of undo steps kept when none is configured
const DefaultDepth = 200

// Manager holds session snapshots. Snapshots are never mutated after they
// are pushed; a commit works on a fresh clone and the previous session
// becomes the snapshot.
type Manager struct {
	undo  []*session.Session
	redo  []*session.Session
	depth int
}

// NewManager returns a manager keeping at most depth undo steps. A
// non-positive depth selects DefaultDepth.
func NewManager(depth int) *Manager {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Manager{depth: depth}
}

// Commit applies fn to a clone of current. On success current is pushed
// onto the undo stack, the redo stack is cleared and the clone is returned.
// On error current is returned unchanged and the stacks are left alone.
func (m *Manager) Commit(current *session.Session, fn func(*session.Session) error) (*session.Session, error) {
	next := current.Clone()
	if err := fn(next); err != nil {
		return current, err
	}
	m.push(current)
	m.redo = nil
	return next, nil
}

// Undo returns the previous session and remembers current for Redo. It
// reports false, returning current, when there is nothing to undo.
func (m *Manager) Undo(current *session.Session) (*session.Session, bool) {
	if len(m.undo) == 0 {
		return current, false
	}
	prev := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, current)
	return prev, true
}

// Redo is the mirror of Undo.
func (m *Manager) Redo(current *session.Session) (*session.Session, bool) {
	if len(m.redo) == 0 {
		return current, false
	}
	next := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.push(current)
	return next, true
}

// CanUndo reports whether Undo would change the session.
func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }

// CanRedo reports whether Redo would change the session.
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// Len returns the sizes of the undo and redo stacks.
func (m *Manager) Len() (undo, redo int) {
	return len(m.undo), len(m.redo)
}

// Reset drops all history.
func (m *Manager) Reset() {
	m.undo = nil
	m.redo = nil
}

func (m *Manager) push(s *session.Session) {
	m.undo = append(m.undo, s)
	if over := len(m.undo) - m.depth; over > 0 {
		clear(m.undo[:over])
		m.undo = m.undo[over:]
	}
}
