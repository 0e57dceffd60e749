// Package engine wires the edit session, undo history, curve generator,
// interaction controller, frame painter and renderer into one facade. It is
// the single entry point hosts use to drive a diagram.
//
// An Engine is not safe for concurrent use. With a frames.Loop scheduler,
// paints run on the loop goroutine, so hosts must confine every engine call
// to frame callbacks or guard the engine themselves.
package engine

import (
	"time"

	"github.com/tphakala/hxdiagram/internal/conf"
	"github.com/tphakala/hxdiagram/internal/curves"
	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/frames"
	"github.com/tphakala/hxdiagram/internal/history"
	"github.com/tphakala/hxdiagram/internal/interaction"
	"github.com/tphakala/hxdiagram/internal/labels"
	"github.com/tphakala/hxdiagram/internal/logger"
	"github.com/tphakala/hxdiagram/internal/observability/metrics"
	"github.com/tphakala/hxdiagram/internal/projection"
	"github.com/tphakala/hxdiagram/internal/render"
	"github.com/tphakala/hxdiagram/internal/session"
)

// curveCacheTTL bounds how long unused curve sets stay memoized
const curveCacheTTL = 10 * time.Minute

// Options configure a new Engine. Every field is optional.
type Options struct {
	// Settings default to conf.Defaults().
	Settings *conf.Settings
	// Session is the initial session; nil seeds the default design cases.
	Session *session.Session
	// Metrics receives operation statistics; nil disables them.
	Metrics *metrics.DiagramMetrics
	// Scheduler drives repaints; nil uses a frames.Manual the host steps.
	Scheduler frames.Scheduler
}

// Result reports the outcome of a host entry point. Message is the
// user-facing text of a rejected operation and empty on success.
type Result struct {
	Message string
	Err     error
}

// OK reports whether the operation was applied.
func (r Result) OK() bool {
	return r.Err == nil
}

// Engine is the diagram facade.
type Engine struct {
	settings   *conf.Settings
	bounds     projection.Bounds
	curveOpts  curves.Options
	labelMode  string
	showLabels bool

	sess    *session.Session
	history *history.Manager
	metrics *metrics.DiagramMetrics

	generator *curves.Generator
	labels    *labels.Labels
	renderer  *render.Renderer
	surface   *render.Surface
	sched     frames.Scheduler
	painter   *frames.Painter
	ctrl      *interaction.Controller
	proj      *projection.Projection
	projErr   error

	message string
}

// New builds an engine with a surface of the configured render size.
func New(opts Options) (*Engine, error) {
	settings := opts.Settings
	if settings == nil {
		settings = conf.Defaults()
	}
	sess := opts.Session
	if sess == nil {
		sess = session.DefaultSession()
	}
	if len(sess.Cases) == 0 {
		return nil, errors.Newf("session has no cases").
			Category(errors.CategoryValidation).
			Build()
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = frames.NewManual()
	}

	d := settings.Diagram
	width, height, dpr := float64(settings.Render.Width), float64(settings.Render.Height), settings.Render.DPR
	surface, err := render.NewSurface(width, height, dpr)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		settings:   settings,
		bounds:     projection.NewBounds(d.PressureKPa, d.TMin, d.TMax, d.XMax),
		curveOpts:  curves.Options{Isotherms: d.Isotherms, RHCurves: d.RHCurves, Saturation: d.Saturation},
		labelMode:  d.LabelMode,
		showLabels: true,
		sess:       sess,
		history:    history.NewManager(settings.History.Depth),
		metrics:    opts.Metrics,
		generator:  curves.NewGenerator(curveCacheTTL, opts.Metrics),
		labels:     labels.New(d.Locale),
		surface:    surface,
		sched:      sched,
	}
	e.renderer = render.NewRenderer(e.labels, opts.Metrics)
	e.painter = frames.NewPainter(sched, &target{e: e}, width, height, dpr)
	e.painter.SetRecorder(opts.Metrics)
	e.ctrl = interaction.NewController(e, surface, e.painter, e.labels)
	e.ctrl.SetStateObserver(func(from, to interaction.State) {
		GetLogger().Trace("interaction state changed",
			logger.String("from", from.String()),
			logger.String("to", to.String()))
	})
	e.refreshProjection(width, height)
	e.updateGauges()

	GetLogger().Debug("engine created",
		logger.Int("cases", len(sess.Cases)),
		logger.String("locale", e.labels.Tag().String()),
		logger.Float64("pressure_kpa", e.bounds.PressureKPa))
	return e, nil
}

// Close stops all scheduled frames. A frames.Loop passed in Options is
// owned by the caller and is not closed.
func (e *Engine) Close() {
	e.painter.Stop()
}

// Session returns the current session. Callers must not mutate it.
func (e *Engine) Session() *session.Session { return e.sess }

// Bounds returns the diagram bounds.
func (e *Engine) Bounds() projection.Bounds { return e.bounds }

// Labels returns the localized labels.
func (e *Engine) Labels() *labels.Labels { return e.labels }

// Surface returns the drawing surface.
func (e *Engine) Surface() *render.Surface { return e.surface }

// Painter returns the frame painter.
func (e *Engine) Painter() *frames.Painter { return e.painter }

// Controller returns the interaction controller.
func (e *Engine) Controller() *interaction.Controller { return e.ctrl }

// Projection returns the live projection, or nil when the surface is too
// small to paint.
func (e *Engine) Projection() *projection.Projection { return e.proj }

// Message returns the user message of the last rejected operation, from
// either an entry point or the interaction controller.
func (e *Engine) Message() string {
	if m := e.ctrl.Message(); m != "" {
		return m
	}
	return e.message
}

// CanUndo reports whether Undo would change the session.
func (e *Engine) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo would change the session.
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// Summary lists the points and processes with derived states.
func (e *Engine) Summary() session.Summary {
	return session.Summarize(e.sess, e.bounds.PressurePa())
}

// commit applies fn as one undo step and records the outcome
func (e *Engine) commit(op string, fn func(*session.Session) error) Result {
	start := time.Now()
	next, err := e.history.Commit(e.sess, fn)
	e.metrics.RecordDuration(op, time.Since(start).Seconds())

	if err != nil {
		status := metrics.StatusError
		if errors.IsCategory(err, errors.CategoryValidation) || errors.IsNotFound(err) {
			status = metrics.StatusRejected
		}
		e.metrics.RecordOperation(op, status)
		e.message = errors.UserMessage(err)
		if e.message == "" {
			e.message = err.Error()
		}
		GetLogger().Debug("operation rejected",
			logger.String("operation", op),
			logger.String("status", status),
			logger.Error(err))
		return Result{Message: e.message, Err: err}
	}

	e.sess = next
	e.message = ""
	e.metrics.RecordOperation(op, metrics.StatusSuccess)
	e.updateGauges()
	e.painter.Invalidate()
	return Result{}
}

func (e *Engine) updateGauges() {
	e.metrics.UpdateSessionSize(e.sess.Counts())
}

// refreshProjection rebuilds the live projection for a logical size. A
// surface too small to paint leaves the controller without a projection.
func (e *Engine) refreshProjection(width, height float64) {
	p, err := projection.ForSurface(e.bounds, width, height)
	e.proj, e.projErr = p, err
	e.ctrl.SetProjection(p)
	if err != nil {
		GetLogger().Warn("surface too small for the plot region",
			logger.Float64("width", width),
			logger.Float64("height", height),
			logger.Error(err))
	}
}

// Curves returns the memoized curve set for the current bounds.
func (e *Engine) Curves() curves.Set {
	return e.generator.Generate(e.bounds, e.curveOpts)
}
