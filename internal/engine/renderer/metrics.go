package renderer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	frames       prometheus.Counter
	frameSeconds prometheus.Histogram
	rays         *prometheus.CounterVec
}

// newMetrics registers the renderer metrics on reg. A nil reg gives
// unregistered collectors.
func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		frames: f.NewCounter(prometheus.CounterOpts{
			Name: "prayground_frames_total",
			Help: "The total number of rendered frames.",
		}),
		frameSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "prayground_frame_seconds",
			Help:    "Time spent rendering one frame.",
			Buckets: prometheus.ExponentialBuckets(0.002, 2, 12),
		}),
		rays: f.NewCounterVec(prometheus.CounterOpts{
			Name: "prayground_rays_total",
			Help: "The total number of primary rays traced.",
		}, []string{"mode"}),
	}
}

func (m *metrics) observeFrame(mode Mode, seconds float64, rays int) {
	m.frames.Inc()
	m.frameSeconds.Observe(seconds)
	m.rays.
		With(prometheus.Labels{"mode": mode.String()}).
		Add(float64(rays))
}
