package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/hxdiagram/internal/curves"
	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/projection"
	"github.com/tphakala/hxdiagram/internal/session"
)

type commit struct {
	caseID string
	typ    session.ProcessType
	p1, p2 session.Coord
}

type fakeHost struct {
	bounds    projection.Bounds
	set       curves.Set
	points    []session.Coord
	processes []commit
	rejectErr error
	undos     int
	redos     int
}

func (h *fakeHost) Bounds() projection.Bounds { return h.bounds }
func (h *fakeHost) ActiveCaseID() string      { return "winter" }
func (h *fakeHost) Curves() curves.Set        { return h.set }

func (h *fakeHost) PlacePoint(_ string, at session.Coord) error {
	if h.rejectErr != nil {
		return h.rejectErr
	}
	h.points = append(h.points, at)
	return nil
}

func (h *fakeHost) CommitProcess(caseID string, typ session.ProcessType, p1, p2 session.Coord) error {
	if h.rejectErr != nil {
		return h.rejectErr
	}
	h.processes = append(h.processes, commit{caseID, typ, p1, p2})
	return nil
}

func (h *fakeHost) Undo() bool { h.undos++; return true }
func (h *fakeHost) Redo() bool { h.redos++; return true }

type fakeSurface struct {
	captured map[int]bool
}

func (s *fakeSurface) SetPointerCapture(id int) error {
	if s.captured == nil {
		s.captured = make(map[int]bool)
	}
	s.captured[id] = true
	return nil
}

func (s *fakeSurface) ReleasePointerCapture(id int) error {
	delete(s.captured, id)
	return nil
}

type fakeAnimator struct {
	invalidations int
	animating     bool
	starts, stops int
}

func (a *fakeAnimator) Invalidate()     { a.invalidations++ }
func (a *fakeAnimator) StartAnimation() { a.animating = true; a.starts++ }
func (a *fakeAnimator) StopAnimation()  { a.animating = false; a.stops++ }

type fixture struct {
	host    *fakeHost
	surface *fakeSurface
	anim    *fakeAnimator
	proj    *projection.Projection
	ctl     *Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b := projection.NewBounds(100, -20, 40, 30)
	proj, err := projection.New(b, 1200, 800, projection.WidePadding)
	require.NoError(t, err)

	f := &fixture{
		host:    &fakeHost{bounds: b, set: curves.Generate(b, curves.AllVisible)},
		surface: &fakeSurface{},
		anim:    &fakeAnimator{},
		proj:    proj,
	}
	f.ctl = NewController(f.host, f.surface, f.anim, nil)
	f.ctl.SetProjection(proj)
	return f
}

func (f *fixture) pointer(kind PointerKind, x, h float64) bool {
	px, py := f.proj.Project(x, h)
	return f.ctl.HandlePointer(PointerEvent{Kind: kind, ID: 1, X: px, Y: py, Buttons: 1})
}

func TestClickPlacesPointAtDomainCoordinate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	var transitions []State
	f.ctl.SetStateObserver(func(_, to State) { transitions = append(transitions, to) })

	require.True(t, f.pointer(PointerDown, 10, 40))
	require.Len(t, f.host.points, 1)
	assert.InDelta(t, 10.0, f.host.points[0].X, 1e-9)
	assert.InDelta(t, 40.0, f.host.points[0].H, 1e-9)

	assert.Equal(t, []State{PlacingPoint, Idle}, transitions)
	assert.Equal(t, Idle, f.ctl.State())
	assert.Positive(t, f.anim.invalidations)
}

func TestClickOutsidePlotIsClamped(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	require.True(t, f.ctl.HandlePointer(PointerEvent{Kind: PointerDown, ID: 1, X: 5000, Y: -5000}))
	require.Len(t, f.host.points, 1)
	b := f.host.bounds
	assert.InDelta(t, b.XMax, f.host.points[0].X, 1e-9)
	assert.InDelta(t, b.YMax, f.host.points[0].H, 1e-9)
}

func TestHeaterDrag(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.ctl.SetTool(ToolHeater)

	require.True(t, f.pointer(PointerDown, 5, 10))
	assert.Equal(t, DraggingProcess, f.ctl.State())
	assert.True(t, f.surface.captured[1])
	assert.True(t, f.anim.animating)

	// sideways motion is ignored, x stays on the anchor
	require.True(t, f.pointer(PointerMove, 9, 25))
	d, ok := f.ctl.Drag()
	require.True(t, ok)
	assert.InDelta(t, 5.0, d.Current.X, 1e-9)
	assert.InDelta(t, 25.0, d.Current.H, 1e-9)
	_, hovering := f.ctl.Hover()
	assert.False(t, hovering)

	require.True(t, f.pointer(PointerUp, 9, 25))
	require.Len(t, f.host.processes, 1)
	c := f.host.processes[0]
	assert.Equal(t, session.Heater, c.typ)
	assert.Equal(t, "winter", c.caseID)
	assert.InDelta(t, c.p1.X, c.p2.X, 1e-12)
	assert.InDelta(t, 25.0, c.p2.H, 1e-9)

	assert.Equal(t, Idle, f.ctl.State())
	assert.Empty(t, f.surface.captured)
	assert.False(t, f.anim.animating)
	_, ok = f.ctl.Drag()
	assert.False(t, ok)
}

func TestAdiabaticDragKeepsEnthalpy(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.ctl.SetTool(ToolAdiabatic)

	f.pointer(PointerDown, 4, 30)
	f.pointer(PointerMove, 8, 45)
	f.pointer(PointerUp, 8, 45)

	require.Len(t, f.host.processes, 1)
	c := f.host.processes[0]
	assert.Equal(t, session.Adiabatic, c.typ)
	assert.InDelta(t, 30.0, c.p2.H, 1e-9)
	assert.InDelta(t, 8.0, c.p2.X, 1e-9)
}

func TestEscapeAbortsDrag(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.ctl.SetTool(ToolCooler)

	f.pointer(PointerDown, 5, 30)
	require.True(t, f.ctl.HandleKey(KeyEvent{Key: "Escape"}))

	assert.Equal(t, Idle, f.ctl.State())
	assert.Empty(t, f.host.processes)
	assert.Empty(t, f.surface.captured)
	assert.False(t, f.anim.animating)
	assert.Equal(t, 1, f.anim.stops)

	assert.False(t, f.pointer(PointerUp, 5, 20), "release after abort is ignored")
}

func TestPointerCancelAbortsDrag(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.ctl.SetTool(ToolHeater)

	f.pointer(PointerDown, 5, 30)
	assert.False(t, f.ctl.HandlePointer(PointerEvent{Kind: PointerCancel, ID: 2}))
	assert.True(t, f.ctl.HandlePointer(PointerEvent{Kind: PointerCancel, ID: 1}))
	assert.Equal(t, Idle, f.ctl.State())
	assert.Empty(t, f.host.processes)
}

func TestOtherPointerIgnoredDuringDrag(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.ctl.SetTool(ToolHeater)
	f.pointer(PointerDown, 5, 30)

	px, py := f.proj.Project(5, 60)
	assert.False(t, f.ctl.HandlePointer(PointerEvent{Kind: PointerMove, ID: 7, X: px, Y: py}))
	assert.False(t, f.ctl.HandlePointer(PointerEvent{Kind: PointerDown, ID: 7, X: px, Y: py}))
	assert.False(t, f.ctl.HandlePointer(PointerEvent{Kind: PointerUp, ID: 7, X: px, Y: py}))
	assert.Equal(t, DraggingProcess, f.ctl.State())
}

func TestSecondaryButtonIgnored(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	px, py := f.proj.Project(10, 40)
	assert.False(t, f.ctl.HandlePointer(PointerEvent{Kind: PointerDown, ID: 1, X: px, Y: py, Buttons: 2}))
	assert.Empty(t, f.host.points)
}

func TestRejectedCommitSurfacesMessage(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.host.rejectErr = errors.ValidationError("flow must be positive")

	f.pointer(PointerDown, 10, 40)
	assert.Equal(t, "flow must be positive", f.ctl.Message())
	assert.Equal(t, Idle, f.ctl.State())

	f.host.rejectErr = nil
	f.pointer(PointerDown, 10, 40)
	assert.Empty(t, f.ctl.Message())
}

func TestUndoRedoShortcuts(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	tests := []struct {
		ev    KeyEvent
		undos int
		redos int
	}{
		{KeyEvent{Key: "z", Ctrl: true}, 1, 0},
		{KeyEvent{Key: "Z", Meta: true}, 2, 0},
		{KeyEvent{Key: "z", Ctrl: true, Shift: true}, 2, 1},
		{KeyEvent{Key: "y", Meta: true}, 2, 2},
	}
	for _, tt := range tests {
		require.True(t, f.ctl.HandleKey(tt.ev))
		assert.Equal(t, tt.undos, f.host.undos)
		assert.Equal(t, tt.redos, f.host.redos)
	}

	assert.False(t, f.ctl.HandleKey(KeyEvent{Key: "z"}), "plain z is not a shortcut")
	assert.False(t, f.ctl.HandleKey(KeyEvent{Key: "q", Ctrl: true}))
}

func TestHoverTooltipsAndLeave(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	// on the 20 °C isotherm at its dry-air end
	require.True(t, f.pointer(PointerMove, 0.0001, 20.12))
	hv, ok := f.ctl.Hover()
	require.True(t, ok)
	assert.True(t, hv.Inside)
	require.NotEmpty(t, hv.Tooltips)
	assert.Equal(t, "T ≈ 20°C", hv.Tooltips[0].Text)
	assert.Empty(t, f.host.points, "hover never mutates")

	require.True(t, f.ctl.HandlePointer(PointerEvent{Kind: PointerLeave}))
	_, ok = f.ctl.Hover()
	assert.False(t, ok)
	assert.False(t, f.ctl.HandlePointer(PointerEvent{Kind: PointerLeave}))
}

func TestHoverOutsideBounds(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.ctl.HandlePointer(PointerEvent{Kind: PointerMove, X: 1, Y: 1})
	hv, ok := f.ctl.Hover()
	require.True(t, ok)
	assert.False(t, hv.Inside)
}

func TestNoProjectionIgnoresPointer(t *testing.T) {
	t.Parallel()
	host := &fakeHost{bounds: projection.NewBounds(100, -20, 40, 30)}
	ctl := NewController(host, nil, nil, nil)
	assert.False(t, ctl.HandlePointer(PointerEvent{Kind: PointerDown, X: 300, Y: 300}))
	assert.False(t, ctl.HandlePointer(PointerEvent{Kind: PointerMove, X: 300, Y: 300}))
}

func TestSetToolAbortsDrag(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.ctl.SetTool(ToolHeater)
	f.pointer(PointerDown, 5, 30)
	f.ctl.SetTool(ToolPoint)
	assert.Equal(t, Idle, f.ctl.State())
	assert.Empty(t, f.surface.captured)
}

func TestEndpointsMinimumDeltas(t *testing.T) {
	t.Parallel()
	b := projection.NewBounds(100, -20, 40, 30)
	a := session.Coord{X: 5, H: 20}

	tests := []struct {
		name    string
		tool    Tool
		current session.Coord
		want    session.Coord
	}{
		{"heater too short", ToolHeater, session.Coord{X: 5, H: 20.01}, session.Coord{X: 5, H: 20.25}},
		{"heater downward", ToolHeater, session.Coord{X: 5, H: 10}, session.Coord{X: 5, H: 20.25}},
		{"heater ok", ToolHeater, session.Coord{X: 7, H: 30}, session.Coord{X: 5, H: 30}},
		{"cooler too short", ToolCooler, session.Coord{X: 5, H: 19.99}, session.Coord{X: 5, H: 19.75}},
		{"cooler ok", ToolCooler, session.Coord{X: 5, H: 12}, session.Coord{X: 5, H: 12}},
		{"adiabatic too short", ToolAdiabatic, session.Coord{X: 5.001, H: 20}, session.Coord{X: 5.1, H: 20}},
		{"adiabatic leftward", ToolAdiabatic, session.Coord{X: 2, H: 28}, session.Coord{X: 5.1, H: 20}},
		{"adiabatic ok", ToolAdiabatic, session.Coord{X: 9, H: 28}, session.Coord{X: 9, H: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p1, p2 := Endpoints(tt.tool, a, tt.current, b)
			assert.Equal(t, a, p1)
			assert.InDelta(t, tt.want.X, p2.X, 1e-9)
			assert.InDelta(t, tt.want.H, p2.H, 1e-9)
		})
	}

	edge := session.Coord{X: b.XMax, H: 20}
	p1, p2 := Endpoints(ToolAdiabatic, edge, edge, b)
	assert.InDelta(t, b.XMax-minDeltaX, p1.X, 1e-9)
	assert.InDelta(t, b.XMax, p2.X, 1e-9)
	assert.InDelta(t, 20.0, p1.H, 1e-9)
	assert.InDelta(t, 20.0, p2.H, 1e-9)

	p1, p2 = Endpoints(ToolAdiabatic, session.Coord{X: 29.95, H: 20}, session.Coord{X: 29.95, H: 20}, b)
	assert.InDelta(t, 29.9, p1.X, 1e-9)
	assert.InDelta(t, 30.0, p2.X, 1e-9)
}

func TestParseTool(t *testing.T) {
	t.Parallel()
	tool, err := ParseTool(" Heater ")
	require.NoError(t, err)
	assert.Equal(t, ToolHeater, tool)

	_, err = ParseTool("laser")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
}
