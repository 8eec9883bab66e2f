package generator

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess     = "success"
	statusUnavailable = "unavailable"
	statusError       = "error"
	statusPanic       = "panic"
)

type metrics struct {
	startTime prometheus.Gauge

	generationTime     prometheus.Gauge
	generationStatus   *prometheus.CounterVec
	generationDuration prometheus.Histogram
	fetchDuration      prometheus.Histogram
	lookups            *prometheus.CounterVec
	publications       *prometheus.GaugeVec
}

func makeMetrics() metrics {
	startTime := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "easypub_start_time",
		Help: "Daemon start time",
	})
	startTime.SetToCurrentTime()

	return metrics{
		startTime: startTime,

		generationTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "easypub_generation_time",
			Help: "Time of the last successful publication list generation",
		}),

		generationStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "easypub_generation_status",
			Help: "Publication list generation status",
		}, []string{"status"}),

		generationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "easypub_generation_duration",
			Help:    "Publication list generation duration",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		}),

		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "easypub_fetch_duration",
			Help:    "Metadata fetch duration",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),

		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "easypub_lookups",
			Help: "Metadata source lookups",
		}, []string{"source", "status"}),

		publications: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "easypub_publications",
			Help: "Number of publications in the list",
		}, []string{"type"}),
	}
}

var _ prometheus.Collector = &metrics{}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.startTime, m.generationTime, m.generationStatus, m.generationDuration, m.fetchDuration, m.lookups,
		m.publications,
	}
}

func (m *metrics) Describe(descs chan<- *prometheus.Desc) {
	for _, collector := range m.collectors() {
		collector.Describe(descs)
	}
}

func (m *metrics) Collect(metrics chan<- prometheus.Metric) {
	for _, collector := range m.collectors() {
		collector.Collect(metrics)
	}
}
