package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds the process-local collectors. Each process owns its own registry;
// there is no scrape endpoint, values are dumped on demand with WriteText.
type Metrics struct {
	registry *prometheus.Registry

	Transitions   *prometheus.CounterVec
	StoreFailures *prometheus.CounterVec
	ReportSeconds prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dragochi",
			Subsystem: "tracking",
			Name:      "transitions_total",
			Help:      "Tracking state transitions by operation.",
		}, []string{"op"}),
		StoreFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dragochi",
			Name:      "store_failures_total",
			Help:      "Failed writes by store.",
		}, []string{"store"}),
		ReportSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dragochi",
			Subsystem: "analytics",
			Name:      "report_build_seconds",
			Help:      "Time spent building a monthly report.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}
	m.registry.MustRegister(m.Transitions, m.StoreFailures, m.ReportSeconds)
	return m
}

// WriteText renders every registered family in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
