// export.go: batch vector export of scenarios
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/tphakala/hxdiagram/internal/conf"
	"github.com/tphakala/hxdiagram/internal/engine"
	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/logger"
	"github.com/tphakala/hxdiagram/internal/observability/metrics"
	"github.com/tphakala/hxdiagram/internal/scenario"
	"golang.org/x/sync/errgroup"
)

// DefaultName is the file stem used when no scenario is given
const DefaultName = "hxdiagram"

// Command creates the export command
func Command(settings *conf.Settings, m *metrics.DiagramMetrics) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [scenario...]",
		Short: "Export diagrams as SVG, JSON or printable HTML",
		Long: `Replay each scenario and write its diagram to the output directory.
Without arguments the default session is exported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := Run(cmd.Context(), settings, m, args)
			for _, path := range written {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&settings.Export.Format, "format", settings.Export.Format, "Output format: svg, json or html")
	cmd.Flags().StringVarP(&settings.Export.OutputDir, "out", "o", settings.Export.OutputDir, "Output directory")
	cmd.Flags().IntVarP(&settings.Export.Parallelism, "jobs", "j", settings.Export.Parallelism, "Scenarios exported concurrently")

	return cmd
}

// Run exports every scenario in paths, or the default session when paths is
// empty, and returns the written files in input order. Every scenario runs on
// its own engine.
func Run(ctx context.Context, settings *conf.Settings, m *metrics.DiagramMetrics, paths []string) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := conf.ValidateSettings(settings); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(settings.Export.OutputDir, 0o755); err != nil {
		return nil, errors.New(err).
			Component("cli").
			Category(errors.CategoryFileIO).
			Context("operation", "create_output_dir").
			Context("dir", settings.Export.OutputDir).
			Build()
	}

	if len(paths) == 0 {
		path, err := exportDefault(settings, m)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	written := make([]string, len(paths))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(settings.Export.Parallelism)

	stems := uniqueStems(paths)
	for i, path := range paths {
		g.Go(func() error {
			out, err := exportScenario(gctx, settings, m, path, stems[i])
			if err != nil {
				return err
			}
			mu.Lock()
			written[i] = out
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	result := written[:0]
	for _, p := range written {
		if p != "" {
			result = append(result, p)
		}
	}
	return result, err
}

// uniqueStems names output files after their scenario files, suffixing
// repeated stems with -2, -3, ... until the name is unused.
func uniqueStems(paths []string) []string {
	taken := make(map[string]bool, len(paths))
	next := make(map[string]int, len(paths))
	stems := make([]string, len(paths))
	for i, path := range paths {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		stem := base
		for taken[stem] {
			if next[base] < 2 {
				next[base] = 2
			}
			stem = fmt.Sprintf("%s-%d", base, next[base])
			next[base]++
		}
		taken[stem] = true
		stems[i] = stem
	}
	return stems
}

func exportScenario(ctx context.Context, settings *conf.Settings, m *metrics.DiagramMetrics, path, stem string) (string, error) {
	s, eng, report, err := scenario.Run(ctx, path, settings, m)
	if err != nil {
		return "", err
	}
	defer eng.Close()

	for _, msg := range report.Messages {
		GetLogger().Info("scenario step rejected",
			logger.String("scenario", s.Name),
			logger.Int("step", msg.Step),
			logger.String("message", msg.Text))
	}
	return write(eng, settings, stem, s.Name)
}

func exportDefault(settings *conf.Settings, m *metrics.DiagramMetrics) (string, error) {
	eng, err := engine.New(engine.Options{Settings: settings, Metrics: m})
	if err != nil {
		return "", err
	}
	defer eng.Close()
	return write(eng, settings, DefaultName, DefaultName)
}

func write(eng *engine.Engine, settings *conf.Settings, stem, title string) (path string, err error) {
	format := settings.Export.Format
	path = filepath.Join(settings.Export.OutputDir, stem+"."+format)

	f, err := os.Create(path)
	if err != nil {
		return "", errors.New(err).
			Component("cli").
			Category(errors.CategoryFileIO).
			Context("operation", "create_export").
			Context("path", path).
			Build()
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
			path = ""
		}
	}()

	if err := eng.Export(f, format, title); err != nil {
		return "", err
	}
	GetLogger().Debug("exported diagram",
		logger.String("path", path),
		logger.String("format", format))
	return path, nil
}
