package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RecomputesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "globelabels_recomputes_total",
		Help: "Collision passes run, by trigger",
	}, []string{"trigger"})
	RecomputeDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "globelabels_recompute_duration_ms",
		Help:    "Collision pass duration in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 50, 100},
	})
	ThrottledZoomTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "globelabels_zoom_throttled_total",
		Help: "Zoom updates ignored because the integer zoom did not change",
	})
	VisibleLabels = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "globelabels_visible_labels",
		Help: "Labels visible after the last pass",
	})
	SuppressedLabels = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "globelabels_suppressed_labels",
		Help: "Labels suppressed by collisions in the last pass",
	})
	CuddleOffsets = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "globelabels_cuddle_offsets",
		Help: "Country labels displaced in the last pass",
	})
	FadeCommandsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "globelabels_fade_commands_total",
		Help: "Fade commands issued, by direction",
	}, []string{"direction"})
	RecordsSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "globelabels_records_skipped_total",
		Help: "Label records rejected at load, by reason",
	}, []string{"reason"})
	StreamClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "globelabels_stream_clients",
		Help: "Connected websocket stream clients",
	})
)

func init() {
	prometheus.MustRegister(RecomputesTotal)
	prometheus.MustRegister(RecomputeDurationMs)
	prometheus.MustRegister(ThrottledZoomTotal)
	prometheus.MustRegister(VisibleLabels)
	prometheus.MustRegister(SuppressedLabels)
	prometheus.MustRegister(CuddleOffsets)
	prometheus.MustRegister(FadeCommandsTotal)
	prometheus.MustRegister(RecordsSkippedTotal)
	prometheus.MustRegister(StreamClients)
}

// Handler exposes the registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }
