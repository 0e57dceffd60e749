// Package observability provides metrics and monitoring capabilities for the diagram engine.
package observability

import (
	"fmt"
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/observability/metrics"
)

// Metrics holds all the metric collectors for the application.
type Metrics struct {
	registry *prometheus.Registry
	Diagram  *metrics.DiagramMetrics
}

// NewMetrics creates a new instance of Metrics, initializing all metric collectors.
// It returns an error if any metric collector fails to initialize.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	diagramMetrics, err := metrics.NewDiagramMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create diagram metrics: %w", err)
	}

	return &Metrics{
		registry: registry,
		Diagram:  diagramMetrics,
	}, nil
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// CountErrors installs an error hook that counts every built enhanced error
// by component and category. The returned function removes all hooks.
func (m *Metrics) CountErrors() func() {
	errors.AddErrorHook(func(ee *errors.EnhancedError) {
		m.Diagram.RecordError(ee.GetComponent(), ee.GetCategory())
	})
	return errors.ClearErrorHooks
}

// Gather returns the current metric families sorted by name.
func (m *Metrics) Gather() ([]*dto.MetricFamily, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}
	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})
	return families, nil
}

// WriteText writes all metrics in the Prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.Gather()
	if err != nil {
		return errors.New(err).
			Category(errors.CategorySystem).
			Context("operation", "gather_metrics").
			Build()
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return errors.New(err).
				Category(errors.CategorySystem).
				Context("operation", "encode_metrics").
				Context("family", mf.GetName()).
				Build()
		}
	}
	return nil
}

// CounterValue returns the summed value of all series of a counter family,
// or 0 if the family is absent.
func (m *Metrics) CounterValue(name string) float64 {
	families, err := m.registry.Gather()
	if err != nil {
		return 0
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}
