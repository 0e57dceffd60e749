package scenario

import (
	"context"
	"strings"

	"github.com/tphakala/hxdiagram/internal/conf"
	"github.com/tphakala/hxdiagram/internal/engine"
	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/hvac"
	"github.com/tphakala/hxdiagram/internal/interaction"
	"github.com/tphakala/hxdiagram/internal/logger"
	"github.com/tphakala/hxdiagram/internal/observability/metrics"
	"github.com/tphakala/hxdiagram/internal/session"
)

// Step actions
const (
	ActionHeatRecovery = "heat_recovery"
	ActionCoil         = "coil"
	ActionTool         = "tool"
	ActionPointer      = "pointer"
	ActionKey          = "key"
	ActionPoint        = "point"
	ActionProcess      = "process"
	ActionActive       = "active"
	ActionUndo         = "undo"
	ActionRedo         = "redo"
	ActionClear        = "clear"
	ActionResize       = "resize"
	ActionHydraulics   = "hydraulics"
)

// Message is a user message raised by one step.
type Message struct {
	Step   int    `json:"step"` // zero-based step index
	Action string `json:"action"`
	Text   string `json:"text"`
}

// Report is the outcome of a replay.
type Report struct {
	Steps    int
	Messages []Message
}

// Settings returns a copy of base with the script's diagram and viewport
// overrides applied.
func (s *Script) Settings(base *conf.Settings) *conf.Settings {
	if base == nil {
		base = conf.Defaults()
	}
	out := *base
	d := &out.Diagram
	for dst, src := range map[*float64]*float64{
		&d.PressureKPa: s.Diagram.PressureKPa,
		&d.TMin:        s.Diagram.TMin,
		&d.TMax:        s.Diagram.TMax,
		&d.XMax:        s.Diagram.XMax,
	} {
		if src != nil {
			*dst = *src
		}
	}
	if v := s.Viewport; v != nil {
		if v.Width > 0 {
			out.Render.Width = v.Width
		}
		if v.Height > 0 {
			out.Render.Height = v.Height
		}
		if v.DPR > 0 {
			out.Render.DPR = v.DPR
		}
	}
	return &out
}

// Session returns the script's cases as a new session, or the default
// session when the script defines none.
func (s *Script) Session() (*session.Session, error) {
	if len(s.Cases) == 0 {
		return session.DefaultSession(), nil
	}
	cases := make([]session.Case, 0, len(s.Cases))
	for i, c := range s.Cases {
		color := c.Color
		if color == "" {
			color = session.PickColor(i)
		}
		nc, err := session.NewCase(c.Name, color, c.conditions())
		if err != nil {
			return nil, errors.New(err).
				Category(errors.CategoryScenario).
				Context("case", i).
				Build()
		}
		cases = append(cases, nc)
	}
	return session.New(cases...)
}

// NewEngine builds an engine for the script.
func NewEngine(s *Script, base *conf.Settings, m *metrics.DiagramMetrics) (*engine.Engine, error) {
	sess, err := s.Session()
	if err != nil {
		return nil, err
	}
	return engine.New(engine.Options{
		Settings: s.Settings(base),
		Session:  sess,
		Metrics:  m,
	})
}

// Replay applies the steps in order and collects the user messages of
// rejected steps. A rejected step does not stop the replay; a malformed
// step or a cancelled context does.
func Replay(ctx context.Context, eng *engine.Engine, s *Script) (Report, error) {
	var report Report
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return report, errors.New(err).
				Category(errors.CategoryCancellation).
				Context("scenario", s.Name).
				Context("step", i).
				Build()
		}

		msg, err := apply(eng, step)
		if err != nil {
			return report, errors.New(err).
				Category(errors.CategoryScenario).
				Context("scenario", s.Name).
				Context("step", i).
				Context("action", step.Action).
				Build()
		}
		report.Steps++
		if msg != "" {
			report.Messages = append(report.Messages, Message{Step: i, Action: step.Action, Text: msg})
			GetLogger().Debug("step rejected",
				logger.String("scenario", s.Name),
				logger.Int("step", i),
				logger.String("message", msg))
		}
	}
	return report, nil
}

// apply runs one step and returns its user message
func apply(eng *engine.Engine, step Step) (string, error) {
	action := strings.ToLower(strings.TrimSpace(step.Action))
	switch action {
	case ActionHeatRecovery:
		id, err := caseID(eng, step.Case)
		if err != nil {
			return "", err
		}
		_, res := eng.RunHeatRecovery(id)
		return res.Message, nil

	case ActionCoil:
		id, err := caseID(eng, step.Case)
		if err != nil {
			return "", err
		}
		kind := hvac.CoilKind(strings.ToLower(step.Kind))
		if !kind.Valid() {
			return "", errors.Newf("unknown coil kind %q", step.Kind).Build()
		}
		_, res := eng.RunCoil(session.CoilRequest{CaseID: id, Kind: kind, Target: step.Target, Delta: step.Delta})
		return res.Message, nil

	case ActionTool:
		tool, err := interaction.ParseTool(step.Tool)
		if err != nil {
			return "", err
		}
		eng.SetTool(tool)
		return "", nil

	case ActionPointer:
		kind := interaction.PointerKind(strings.ToLower(step.Kind))
		eng.HandlePointer(interaction.PointerEvent{Kind: kind, ID: step.ID, X: step.X, Y: step.Y, Buttons: step.Buttons})
		if kind == interaction.PointerDown || kind == interaction.PointerUp {
			return eng.Controller().Message(), nil
		}
		return "", nil

	case ActionKey:
		eng.HandleKey(interaction.KeyEvent{Key: step.Key, Ctrl: step.Ctrl, Meta: step.Meta, Shift: step.Shift})
		return "", nil

	case ActionPoint:
		id, err := caseID(eng, step.Case)
		if err != nil {
			return "", err
		}
		_, res := eng.AddPoint(id, step.X, step.H, step.Label)
		return res.Message, nil

	case ActionProcess:
		id, err := caseID(eng, step.Case)
		if err != nil {
			return "", err
		}
		p1 := session.Coord{X: step.X, H: step.H}
		p2 := session.Coord{X: step.X2, H: step.H2}
		_, res := eng.AddProcess(id, session.ProcessType(strings.ToLower(step.Type)), p1, p2)
		return res.Message, nil

	case ActionActive:
		id, err := caseID(eng, step.Case)
		if err != nil {
			return "", err
		}
		return eng.SetActiveCase(id).Message, nil

	case ActionUndo:
		eng.Undo()
		return "", nil

	case ActionRedo:
		eng.Redo()
		return "", nil

	case ActionClear:
		return eng.ClearAll().Message, nil

	case ActionResize:
		eng.Resize(step.Width, step.Height, step.DPR)
		return "", nil

	case ActionHydraulics:
		id, err := caseID(eng, step.Case)
		if err != nil {
			return "", err
		}
		cfg := hvac.HydraulicConfig{DutyKW: step.DutyKW, SupplyT: step.SupplyT, ReturnT: step.ReturnT}
		return eng.SetHydraulics(id, hvac.Loop(strings.ToLower(step.Loop)), cfg).Message, nil

	default:
		return "", errors.Newf("unknown action %q", step.Action).Build()
	}
}

func caseID(eng *engine.Engine, index int) (string, error) {
	cases := eng.Session().Cases
	if index < 0 || index >= len(cases) {
		return "", errors.Newf("case index %d out of range, session has %d cases", index, len(cases)).Build()
	}
	return cases[index].ID, nil
}

// Run loads the script at path, builds its engine and replays it. The caller
// owns the returned engine and must Close it.
func Run(ctx context.Context, path string, base *conf.Settings, m *metrics.DiagramMetrics) (*Script, *engine.Engine, Report, error) {
	s, err := Load(path)
	if err != nil {
		return nil, nil, Report{}, err
	}
	eng, err := NewEngine(s, base, m)
	if err != nil {
		return s, nil, Report{}, err
	}
	report, err := Replay(ctx, eng, s)
	if err != nil {
		eng.Close()
		return s, nil, report, err
	}
	return s, eng, report, nil
}
