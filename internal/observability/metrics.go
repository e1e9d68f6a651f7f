// Package observability wires the wire layer's Recorder injection
// point to Prometheus, and nothing else: this module exposes no HTTP
// surface, so there is no request-metrics middleware here.
package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	datagramsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wireclient",
			Name:      "datagrams_received_total",
			Help:      "Datagrams fed to the network serializer, by outcome.",
		},
		[]string{"result"},
	)
	datagramsEmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wireclient",
			Name:      "datagrams_emitted_total",
			Help:      "Datagrams produced by encoding an outgoing frame.",
		},
	)
	framesCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wireclient",
			Name:      "frames_completed_total",
			Help:      "Frames fully reassembled and harvested.",
		},
	)
	buildersInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "wireclient",
			Name:      "builders_in_progress",
			Help:      "Frame builders currently awaiting further chunks. Observational only; nothing here enforces a limit.",
		},
	)
)

// RegisterMetrics registers every collector with the default registry.
// Safe to call more than once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(datagramsReceived, datagramsEmitted, framesCompleted, buildersInProgress)
	})
}

// Recorder implements netstream.Recorder over the package's Prometheus
// collectors. It is declared structurally rather than by importing
// netstream, so observability stays free to be used (or not) without
// creating an import cycle with the wire packages it instruments.
type Recorder struct{}

// NewRecorder registers the collectors and returns a Recorder ready to
// hand to a netstream.Serializer.
func NewRecorder() Recorder {
	RegisterMetrics()
	return Recorder{}
}

func (Recorder) DatagramAccepted() {
	datagramsReceived.WithLabelValues("accepted").Inc()
}

func (Recorder) DatagramRejected(reason string) {
	datagramsReceived.WithLabelValues(reason).Inc()
}

func (Recorder) DatagramEmitted() {
	datagramsEmitted.Inc()
}

func (Recorder) FrameCompleted() {
	framesCompleted.Inc()
}

func (Recorder) BuildersInProgress(n int) {
	buildersInProgress.Set(float64(n))
}
