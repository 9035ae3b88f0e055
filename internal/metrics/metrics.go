// Package metrics holds pwclip's in-process Prometheus counters.
package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registry *prometheus.Registry

	clipboardEvents *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	backendSelected *prometheus.GaugeVec

	// metricsOnce ensures metrics are only registered once.
	metricsOnce sync.Once
)

// Init registers the collectors. Safe to call repeatedly.
func Init() {
	metricsOnce.Do(func() {
		registry = prometheus.NewRegistry()
		factory := promauto.With(registry)

		clipboardEvents = factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pwclip_clipboard_events_total",
			Help: "Clipboard lifecycle events by kind (copied, cleared, skipped, failed)",
		}, []string{"event"})

		persistFailures = factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pwclip_persist_failures_total",
			Help: "Non-fatal credential persistence failures by kind",
		}, []string{"kind"})

		backendSelected = factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pwclip_backend_selected",
			Help: "1 for the encryption backend chosen at startup",
		}, []string{"backend", "security"})
	})
}

// Registry returns the registry holding pwclip's collectors
func Registry() *prometheus.Registry {
	Init()
	return registry
}

// ClipboardEvent counts one clipboard lifecycle event
func ClipboardEvent(event string) {
	Init()
	clipboardEvents.WithLabelValues(event).Inc()
}

// PersistFailure counts one swallowed persistence failure
func PersistFailure(kind string) {
	Init()
	persistFailures.WithLabelValues(kind).Inc()
}

// BackendSelected records the startup backend choice
func BackendSelected(name, security string) {
	Init()
	backendSelected.Reset()
	backendSelected.WithLabelValues(name, security).Set(1)
}

// ClipboardEventCount returns the current counter value for event
func ClipboardEventCount(event string) float64 {
	return counterValue("pwclip_clipboard_events_total", "event", event)
}

// PersistFailureCount returns the current counter value for kind
func PersistFailureCount(kind string) float64 {
	return counterValue("pwclip_persist_failures_total", "kind", kind)
}

func counterValue(name, label, value string) float64 {
	families, err := Registry().Gather()
	if err != nil {
		return 0
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

// WriteText dumps every collected sample as "name{labels} value" lines
func WriteText(w io.Writer) error {
	families, err := Registry().Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			sort.Strings(labels)

			value := m.GetCounter().GetValue()
			if m.GetGauge() != nil {
				value = m.GetGauge().GetValue()
			}
			if _, err := fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), value); err != nil {
				return err
			}
		}
	}
	return nil
}
