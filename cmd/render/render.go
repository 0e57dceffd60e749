// render.go: rasterized diagram snapshot
package render

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/tphakala/hxdiagram/internal/conf"
	"github.com/tphakala/hxdiagram/internal/engine"
	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/observability/metrics"
	"github.com/tphakala/hxdiagram/internal/scenario"
)

// Command creates the render command
func Command(settings *conf.Settings, m *metrics.DiagramMetrics) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render [scenario]",
		Short: "Render the diagram to a PNG file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			viewport := cmd.Flags().Changed("width") || cmd.Flags().Changed("height") || cmd.Flags().Changed("dpr")
			return Run(cmd.Context(), settings, m, path, out, viewport)
		},
	}

	cmd.Flags().IntVar(&settings.Render.Width, "width", settings.Render.Width, "Logical width in px")
	cmd.Flags().IntVar(&settings.Render.Height, "height", settings.Render.Height, "Logical height in px")
	cmd.Flags().Float64Var(&settings.Render.DPR, "dpr", settings.Render.DPR, "Device pixel ratio")
	cmd.Flags().StringVarP(&out, "out", "o", "hxdiagram.png", "Output PNG file")

	return cmd
}

// Run paints the default session, or the replayed scenario at path, into a
// PNG file. With forceViewport the render settings override the scenario's
// viewport.
func Run(ctx context.Context, settings *conf.Settings, m *metrics.DiagramMetrics, path, out string, forceViewport bool) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := conf.ValidateSettings(settings); err != nil {
		return err
	}

	var eng *engine.Engine
	if path == "" {
		eng, err = engine.New(engine.Options{Settings: settings, Metrics: m})
	} else {
		_, eng, _, err = scenario.Run(ctx, path, settings, m)
	}
	if err != nil {
		return err
	}
	defer eng.Close()

	if forceViewport {
		r := settings.Render
		eng.Resize(float64(r.Width), float64(r.Height), r.DPR)
	}

	f, err := os.Create(out)
	if err != nil {
		return errors.New(err).
			Component("cli").
			Category(errors.CategoryFileIO).
			Context("operation", "create_png").
			Context("path", out).
			Build()
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return eng.WritePNG(f)
}
