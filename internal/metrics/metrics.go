// Package metrics exports component runtime events as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/vcrobe/nojs-clock/runtime"
)

const namespace = "nojsclock"

// DefBucketsMs is similar to prometheus.DefBuckets, but tailored for milliseconds instead of seconds.
var DefBucketsMs = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100}

// Compile-time assertion to ensure Recorder implements runtime.Observer.
var _ runtime.Observer = (*Recorder)(nil)

// Recorder implements runtime.Observer on a Prometheus registry. One
// Recorder is shared by every engine and scheduler of a process.
type Recorder struct {
	renders      *prometheus.CounterVec
	renderTime   prometheus.Histogram
	mounts       *prometheus.CounterVec
	unmounts     *prometheus.CounterVec
	ticks        prometheus.Counter
	activeTimers prometheus.Gauge
	sessions     prometheus.Gauge
}

// NewRecorder registers the metrics on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Render cycles that reached a surface, by kind (mount or patch).",
		}, []string{"kind"}),
		renderTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_ms",
			Help:      "Time spent in a render cycle in milliseconds.",
			Buckets:   DefBucketsMs,
		}),
		mounts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "component_mounts_total",
			Help:      "Components that received OnMount, by instance key.",
		}, []string{"component"}),
		unmounts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "component_unmounts_total",
			Help:      "Components that received OnUnmount, by instance key.",
		}, []string{"component"}),
		ticks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "timer_ticks_total",
			Help:      "Timer callbacks run.",
		}),
		activeTimers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_timers",
			Help:      "Repeating timers currently scheduled.",
		}),
		sessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_sessions",
			Help:      "Live sessions currently mounted.",
		}),
	}
}

func (r *Recorder) Rendered(initial bool, elapsed time.Duration) {
	kind := "patch"
	if initial {
		kind = "mount"
	}
	r.renders.WithLabelValues(kind).Inc()
	r.renderTime.Observe(float64(elapsed) / float64(time.Millisecond))
}

func (r *Recorder) Mounted(key string)   { r.mounts.WithLabelValues(key).Inc() }
func (r *Recorder) Unmounted(key string) { r.unmounts.WithLabelValues(key).Inc() }
func (r *Recorder) TimerStarted()        { r.activeTimers.Inc() }
func (r *Recorder) TimerStopped()        { r.activeTimers.Dec() }
func (r *Recorder) Ticked()              { r.ticks.Inc() }

// SessionOpened and SessionClosed track live sessions.
func (r *Recorder) SessionOpened() { r.sessions.Inc() }
func (r *Recorder) SessionClosed() { r.sessions.Dec() }

// FilterMetric returns the family called metricName, or nil.
func FilterMetric(metrics []*dto.MetricFamily, metricName string) *dto.MetricFamily {
	for _, m := range metrics {
		if m.GetName() == metricName {
			return m
		}
	}
	return nil
}
