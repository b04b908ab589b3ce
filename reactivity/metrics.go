package reactivity

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsConfig struct {
	Namespace   string
	Subsystem   string
	ConstLabels prometheus.Labels
	// Buckets for the flush duration histogram, in seconds.
	Buckets  []float64
	Registry prometheus.Registerer
}

type MetricsOption func(c *MetricsConfig)

func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "proxyparty",
		Subsystem: "reactivity",
		Buckets:   []float64{.00001, .0001, .001, .01, .1, 1},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics counts engine activity. A nil *Metrics records nothing.
type Metrics struct {
	effectRuns    prometheus.Counter
	triggers      *prometheus.CounterVec
	jobsQueued    prometheus.Counter
	flushes       prometheus.Counter
	flushDuration prometheus.Histogram
	diagnostics   *prometheus.CounterVec
}

// NewMetrics registers the engine collectors. Registering twice with the
// same registry panics, so share one *Metrics between systems.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		effectRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total number of effect executions",
			ConstLabels: config.ConstLabels,
		}),
		triggers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "triggers_total",
			Help:        "Total number of triggered keys by mutation kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),
		jobsQueued: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "jobs_queued_total",
			Help:        "Total number of jobs accepted by the job queue",
			ConstLabels: config.ConstLabels,
		}),
		flushes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushes_total",
			Help:        "Total number of job queue flushes",
			ConstLabels: config.ConstLabels,
		}),
		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_duration_seconds",
			Help:        "Job queue flush duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
		diagnostics: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "diagnostics_total",
			Help:        "Total number of reported diagnostics by code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),
	}
}

func (m *Metrics) effectRun() {
	if m == nil {
		return
	}
	m.effectRuns.Inc()
}

func (m *Metrics) trigger(kind TriggerKind) {
	if m == nil {
		return
	}
	m.triggers.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) jobQueued() {
	if m == nil {
		return
	}
	m.jobsQueued.Inc()
}

func (m *Metrics) flush(d time.Duration) {
	if m == nil {
		return
	}
	m.flushes.Inc()
	m.flushDuration.Observe(d.Seconds())
}

func (m *Metrics) diagnostic(code string) {
	if m == nil {
		return
	}
	m.diagnostics.WithLabelValues(code).Inc()
}
