package engine

import (
	"github.com/tphakala/hxdiagram/internal/conf"
	"github.com/tphakala/hxdiagram/internal/curves"
	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/hvac"
	"github.com/tphakala/hxdiagram/internal/interaction"
	"github.com/tphakala/hxdiagram/internal/logger"
	"github.com/tphakala/hxdiagram/internal/observability/metrics"
	"github.com/tphakala/hxdiagram/internal/projection"
	"github.com/tphakala/hxdiagram/internal/session"
)

// AddCase appends a case with default conditions and makes it active.
func (e *Engine) AddCase(name string) (session.Case, Result) {
	var added session.Case
	res := e.commit(metrics.OpAddCase, func(s *session.Session) error {
		added = s.AddCase(name)
		return nil
	})
	return added, res
}

// InsertCase appends a fully specified case.
func (e *Engine) InsertCase(c session.Case) Result {
	return e.commit(metrics.OpAddCase, func(s *session.Session) error {
		return s.InsertCase(c)
	})
}

// RemoveCase deletes a case with its points, processes and results. The
// last case is never removed.
func (e *Engine) RemoveCase(id string) Result {
	return e.commit(metrics.OpRemoveCase, func(s *session.Session) error {
		return s.RemoveCase(id)
	})
}

// UpdateCase applies a whole-field edit. An empty update is not recorded.
func (e *Engine) UpdateCase(id string, u session.CaseUpdate) Result {
	if u.Empty() {
		return Result{}
	}
	return e.commit(metrics.OpUpdateCase, func(s *session.Session) error {
		_, err := s.UpdateCase(id, u)
		return err
	})
}

// SetActiveCase selects the case new points and processes belong to.
func (e *Engine) SetActiveCase(id string) Result {
	if e.sess.ActiveCaseID == id {
		return Result{}
	}
	return e.commit(metrics.OpSetActiveCase, func(s *session.Session) error {
		return s.SetActiveCase(id)
	})
}

// AddPoint places a point for a case.
func (e *Engine) AddPoint(caseID string, x, h float64, label string) (session.Point, Result) {
	var added session.Point
	res := e.commit(metrics.OpAddPoint, func(s *session.Session) error {
		p, err := s.AddPoint(caseID, x, h, label)
		added = p
		return err
	})
	return added, res
}

// RemovePoint deletes a point.
func (e *Engine) RemovePoint(id string) Result {
	return e.commit(metrics.OpRemovePoint, func(s *session.Session) error {
		return s.RemovePoint(id)
	})
}

// LabelPoint sets or clears the label of a point.
func (e *Engine) LabelPoint(id, label string) Result {
	return e.commit(metrics.OpLabelPoint, func(s *session.Session) error {
		return s.LabelPoint(id, label)
	})
}

// AddProcess appends a process without endpoint points.
func (e *Engine) AddProcess(caseID string, typ session.ProcessType, p1, p2 session.Coord) (session.Process, Result) {
	var added session.Process
	res := e.commit(metrics.OpAddProcess, func(s *session.Session) error {
		pr, err := s.AddProcess(caseID, typ, p1, p2)
		added = pr
		return err
	})
	return added, res
}

// RemoveProcess deletes a process.
func (e *Engine) RemoveProcess(id string) Result {
	return e.commit(metrics.OpRemoveProcess, func(s *session.Session) error {
		return s.RemoveProcess(id)
	})
}

// RunHeatRecovery runs the heat recovery calculation for a case.
func (e *Engine) RunHeatRecovery(caseID string) (hvac.HeatRecoveryResult, Result) {
	var out hvac.HeatRecoveryResult
	res := e.commit(metrics.OpHeatRecovery, func(s *session.Session) error {
		r, err := s.RunHeatRecovery(caseID, e.bounds.PressurePa())
		out = r
		return err
	})
	if res.OK() {
		GetLogger().Info("heat recovery computed",
			logger.String("case_id", caseID),
			logger.Float64("t_outlet", out.TOutlet),
			logger.Float64("duty_kw", out.DutyKW))
	}
	return out, res
}

// RunCoil sizes a heater or cooler stage.
func (e *Engine) RunCoil(req session.CoilRequest) (hvac.CoilResult, Result) {
	var out hvac.CoilResult
	res := e.commit(metrics.OpCoil, func(s *session.Session) error {
		r, err := s.RunCoil(req, e.bounds.PressurePa())
		out = r
		return err
	})
	if res.OK() {
		GetLogger().Info("coil sized",
			logger.String("case_id", req.CaseID),
			logger.String("kind", string(out.Kind)),
			logger.Float64("duty_kw", out.DutyKW))
	}
	return out, res
}

// SetHydraulics replaces a water loop configuration of a case.
func (e *Engine) SetHydraulics(caseID string, loop hvac.Loop, cfg hvac.HydraulicConfig) Result {
	return e.commit(metrics.OpHydraulics, func(s *session.Session) error {
		return s.SetHydraulics(caseID, loop, cfg)
	})
}

// Hydraulics returns the computed water loop of a case, if configured.
func (e *Engine) Hydraulics(caseID string, loop hvac.Loop) (hvac.HydraulicResult, bool) {
	return e.sess.HydraulicsOf(caseID, loop)
}

// ClearAll removes every point, process and derived result as one undo
// step. Cases are kept.
func (e *Engine) ClearAll() Result {
	return e.commit(metrics.OpClearAll, func(s *session.Session) error {
		s.ClearAll()
		return nil
	})
}

// Undo restores the previous session. It reports false when there is
// nothing to undo.
func (e *Engine) Undo() bool {
	prev, ok := e.history.Undo(e.sess)
	return e.applyHistory(prev, ok, metrics.ActionUndo)
}

// Redo reapplies the last undone step.
func (e *Engine) Redo() bool {
	next, ok := e.history.Redo(e.sess)
	return e.applyHistory(next, ok, metrics.ActionRedo)
}

func (e *Engine) applyHistory(s *session.Session, ok bool, action string) bool {
	if !ok {
		e.metrics.RecordHistory(metrics.ActionNoop)
		return false
	}
	e.sess = s
	e.message = ""
	e.metrics.RecordHistory(action)
	e.updateGauges()
	e.painter.Invalidate()
	return true
}

// SetBounds recomputes the diagram bounds. Inputs are clamped, so the call
// never fails. Bounds are view state and are not part of the undo history.
func (e *Engine) SetBounds(pressureKPa, tMin, tMax, xMax float64) projection.Bounds {
	e.bounds = projection.NewBounds(pressureKPa, tMin, tMax, xMax)
	w, h, _ := e.painter.Size()
	e.refreshProjection(w, h)
	e.painter.Invalidate()
	GetLogger().Debug("bounds changed",
		logger.Float64("pressure_kpa", e.bounds.PressureKPa),
		logger.Float64("y_min", e.bounds.YMin),
		logger.Float64("y_max", e.bounds.YMax))
	return e.bounds
}

// SetCurveOptions toggles curve families.
func (e *Engine) SetCurveOptions(opts curves.Options) {
	e.curveOpts = opts
	e.painter.Invalidate()
}

// CurveOptions returns the curve visibility toggles.
func (e *Engine) CurveOptions() curves.Options { return e.curveOpts }

// SetLabelMode switches between index and semantic point labels.
func (e *Engine) SetLabelMode(mode string) Result {
	if mode != conf.LabelModeIndex && mode != conf.LabelModeSemantic {
		err := errors.ValidationError("label mode must be index or semantic")
		return Result{Message: errors.UserMessage(err), Err: err}
	}
	e.labelMode = mode
	e.painter.Invalidate()
	return Result{}
}

// SetShowLabels shows or hides point labels.
func (e *Engine) SetShowLabels(show bool) {
	e.showLabels = show
	e.painter.Invalidate()
}

// SetTool selects the drawing tool.
func (e *Engine) SetTool(t interaction.Tool) {
	e.ctrl.SetTool(t)
}

// HandlePointer forwards a pointer event to the controller.
func (e *Engine) HandlePointer(ev interaction.PointerEvent) bool {
	return e.ctrl.HandlePointer(ev)
}

// HandleKey forwards a key event to the controller.
func (e *Engine) HandleKey(ev interaction.KeyEvent) bool {
	return e.ctrl.HandleKey(ev)
}

// Resize changes the logical surface size. The backing store is
// reallocated on the next frame.
func (e *Engine) Resize(width, height, dpr float64) {
	e.refreshProjection(width, height)
	e.painter.Resize(width, height, dpr)
}

// ActiveCaseID returns the active case id.
func (e *Engine) ActiveCaseID() string {
	return e.sess.ActiveCase().ID
}

// PlacePoint commits a point placed with the point tool.
func (e *Engine) PlacePoint(caseID string, at session.Coord) error {
	return e.commit(metrics.OpAddPoint, func(s *session.Session) error {
		_, err := s.AddPoint(caseID, at.X, at.H, "")
		return err
	}).Err
}

// CommitProcess commits a dragged process as one undo step. Heater and
// cooler processes bring their endpoint points along.
func (e *Engine) CommitProcess(caseID string, typ session.ProcessType, p1, p2 session.Coord) error {
	return e.commit(metrics.OpDragProcess, func(s *session.Session) error {
		if typ == session.Heater || typ == session.Cooler {
			_, err := s.AddProcessWithPoints(caseID, typ, p1, p2, "", "")
			return err
		}
		_, err := s.AddProcess(caseID, typ, p1, p2)
		return err
	}).Err
}

var _ interaction.Host = (*Engine)(nil)
