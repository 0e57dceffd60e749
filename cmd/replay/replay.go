// replay.go: replay a scenario and print the point and process lists
package replay

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tphakala/hxdiagram/internal/conf"
	"github.com/tphakala/hxdiagram/internal/labels"
	"github.com/tphakala/hxdiagram/internal/observability/metrics"
	"github.com/tphakala/hxdiagram/internal/scenario"
	"github.com/tphakala/hxdiagram/internal/session"
)

// Command creates the replay command
func Command(settings *conf.Settings, m *metrics.DiagramMetrics) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "replay scenario",
		Short: "Replay a scenario script and print the resulting lists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := conf.ValidateSettings(settings); err != nil {
				return err
			}
			_, eng, report, err := scenario.Run(cmd.Context(), args[0], settings, m)
			if err != nil {
				return err
			}
			defer eng.Close()

			sum := eng.Summary()
			if asJSON {
				return printJSON(cmd.OutOrStdout(), sum, report)
			}
			return Print(cmd.OutOrStdout(), eng.Labels(), eng.Session(), sum, report)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	return cmd
}

// Print writes the point list, the process list and the rejected step messages
func Print(w io.Writer, l *labels.Labels, s *session.Session, sum session.Summary, report scenario.Report) error {
	pw := &printer{w: w}

	pw.println("Points")
	for _, p := range sum.Points {
		pw.println("  " + l.PointSummary(p.Index-1, p.Label, p.T, p.RH, p.H, p.X))
	}

	pw.println("Processes")
	for _, p := range sum.Processes {
		name := p.CaseID
		if c, ok := s.Case(p.CaseID); ok {
			name = c.Name
		}
		pw.println("  " + l.ProcessSummary(string(p.Type), name, p.X1, p.X2, p.T1, p.RH1, p.T2, p.RH2))
	}

	if len(report.Messages) > 0 {
		pw.println("Messages")
		for _, msg := range report.Messages {
			pw.println(fmt.Sprintf("  step %d (%s): %s", msg.Step+1, msg.Action, msg.Text))
		}
	}
	return pw.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) println(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func printJSON(w io.Writer, sum session.Summary, report scenario.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		session.Summary
		Steps    int                `json:"steps"`
		Messages []scenario.Message `json:"messages"`
	}{sum, report.Steps, report.Messages})
}
