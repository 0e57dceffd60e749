package engine

import (
	"io"
	"time"

	"github.com/tphakala/hxdiagram/internal/conf"
	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/export"
	"github.com/tphakala/hxdiagram/internal/logger"
	"github.com/tphakala/hxdiagram/internal/observability/metrics"
)

// Document builds the vector export of the current session.
func (e *Engine) Document() (*export.Document, error) {
	return export.Build(e.sess, e.bounds, export.Options{
		Curves:     e.curveOpts,
		LabelMode:  e.labelMode,
		ShowLabels: e.showLabels,
		Labels:     e.labels,
		Generator:  e.generator,
	})
}

// Export writes the vector export in the given format: svg, json or html.
func (e *Engine) Export(w io.Writer, format, title string) error {
	start := time.Now()
	err := e.export(w, format, title)
	e.metrics.RecordDuration(metrics.OpExportDocument, time.Since(start).Seconds())
	if err != nil {
		e.metrics.RecordExport(format, metrics.StatusError)
		GetLogger().Error("export failed",
			logger.String("format", format),
			logger.Error(err))
		return err
	}
	e.metrics.RecordExport(format, metrics.StatusSuccess)
	return nil
}

func (e *Engine) export(w io.Writer, format, title string) error {
	doc, err := e.Document()
	if err != nil {
		return err
	}
	switch format {
	case conf.FormatSVG:
		return export.EncodeSVG(w, doc)
	case conf.FormatJSON:
		return export.EncodeJSON(w, doc)
	case conf.FormatHTML:
		return export.EncodePrintHTML(w, doc, e.labels.Tag().String(), title)
	default:
		return errors.Newf("unknown export format %q", format).
			Category(errors.CategoryExport).
			Context("format", format).
			Build()
	}
}

// WritePNG paints a fresh frame and writes the rasterized snapshot.
func (e *Engine) WritePNG(w io.Writer) error {
	if err := e.PaintNow(time.Now()); err != nil {
		return err
	}
	return e.surface.WritePNG(w)
}
