// Package metrics exports thread queue activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sevigo/threadcall/internal/loop"
)

// Task duration buckets in seconds.
var durationBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5}

// LoopMetrics implements loop.Observer on top of a private Prometheus
// registry.
type LoopMetrics struct {
	registry *prometheus.Registry

	posted   *prometheus.CounterVec
	rejected *prometheus.CounterVec
	executed *prometheus.CounterVec
	panicked *prometheus.CounterVec
	dropped  *prometheus.CounterVec
	finished prometheus.Counter
	duration *prometheus.HistogramVec
}

var _ loop.Observer = (*LoopMetrics)(nil)

// NewLoopMetrics creates the collectors and registers them under namespace.
func NewLoopMetrics(namespace string) *LoopMetrics {
	m := &LoopMetrics{
		registry: prometheus.NewRegistry(),
		posted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_posted_total",
			Help:      "Tasks accepted by a thread's queue.",
		}, []string{"thread"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_rejected_total",
			Help:      "Tasks refused because the thread was shutting down.",
		}, []string{"thread"}),
		executed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_executed_total",
			Help:      "Tasks that ran to completion.",
		}, []string{"thread"}),
		panicked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_panicked_total",
			Help:      "Tasks that panicked and were recovered.",
		}, []string{"thread"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_dropped_total",
			Help:      "Tasks still queued when their thread finished.",
		}, []string{"thread"}),
		finished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "threads_finished_total",
			Help:      "Threads whose loop has exited.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_duration_seconds",
			Help:      "Time spent executing a task.",
			Buckets:   durationBuckets,
		}, []string{"thread"}),
	}

	m.registry.MustRegister(
		m.posted,
		m.rejected,
		m.executed,
		m.panicked,
		m.dropped,
		m.finished,
		m.duration,
	)
	return m
}

// Registry returns the registry holding the collectors.
func (m *LoopMetrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *LoopMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *LoopMetrics) TaskPosted(thread string) { m.posted.WithLabelValues(thread).Inc() }

func (m *LoopMetrics) TaskRejected(thread string) { m.rejected.WithLabelValues(thread).Inc() }

func (m *LoopMetrics) TaskExecuted(thread string, elapsed time.Duration) {
	m.executed.WithLabelValues(thread).Inc()
	m.duration.WithLabelValues(thread).Observe(elapsed.Seconds())
}

func (m *LoopMetrics) TaskPanicked(thread string) { m.panicked.WithLabelValues(thread).Inc() }

func (m *LoopMetrics) TasksDropped(thread string, n int) {
	m.dropped.WithLabelValues(thread).Add(float64(n))
}

func (m *LoopMetrics) ThreadFinished(string) { m.finished.Inc() }
