// Package metrics exposes the monitor's counters through a private
// Prometheus registry. The hot path only touches atomics; the
// collectors read them lazily when scraped.
package metrics

import (
	"math"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the monitor counters.
type Metrics struct {
	FramesProcessed   atomic.Uint64
	FramesWithFace    atomic.Uint64
	FramesWithoutFace atomic.Uint64
	BlinksTotal       atomic.Uint64
	AlertsTotal       atomic.Uint64
	ScoresEmitted     atomic.Uint64

	// Float64 bits of the latest smoothed score.
	focusScoreBits atomic.Uint64

	registry *prometheus.Registry
}

// New creates a Metrics instance with its collectors registered on a
// private registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	m.register()
	return m
}

func (m *Metrics) register() {
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "focusmind_frames_processed_total",
			Help: "Total camera frames run through the pipeline",
		},
		func() float64 { return float64(m.FramesProcessed.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "focusmind_frames_with_face_total",
			Help: "Frames where a face was detected",
		},
		func() float64 { return float64(m.FramesWithFace.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "focusmind_frames_without_face_total",
			Help: "Frames where no face was detected",
		},
		func() float64 { return float64(m.FramesWithoutFace.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "focusmind_blinks_total",
			Help: "Completed blinks detected",
		},
		func() float64 { return float64(m.BlinksTotal.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "focusmind_alerts_total",
			Help: "Focus threshold alerts fired",
		},
		func() float64 { return float64(m.AlertsTotal.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "focusmind_scores_emitted_total",
			Help: "Smoothed scores emitted to the session recorder",
		},
		func() float64 { return float64(m.ScoresEmitted.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "focusmind_focus_score",
			Help: "Latest smoothed focus score (0-100)",
		},
		func() float64 { return m.FocusScore() },
	))
}

// ObserveFrame records one processed frame and the score after it.
func (m *Metrics) ObserveFrame(facePresent bool, score float64) {
	m.FramesProcessed.Add(1)
	if facePresent {
		m.FramesWithFace.Add(1)
	} else {
		m.FramesWithoutFace.Add(1)
	}
	m.focusScoreBits.Store(math.Float64bits(score))
}

// FocusScore returns the latest recorded score.
func (m *Metrics) FocusScore() float64 {
	return math.Float64frombits(m.focusScoreBits.Load())
}

// Handler returns the Prometheus scrape handler for the private
// registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
