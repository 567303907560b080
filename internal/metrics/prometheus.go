package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements Collector backed by Prometheus.
//
// Metrics are registered lazily on first use so that constructing a
// collector never fails.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	trials        prometheus.Counter
	trialDuration prometheus.Histogram
	trialScore    prometheus.Histogram
	bestScore     prometheus.Gauge
	improvements  prometheus.Counter
	runs          *prometheus.CounterVec
	runDuration   prometheus.Histogram
	jobs          *prometheus.CounterVec
}

var _ Collector = (*PrometheusCollector)(nil)

// NewPrometheus creates a Prometheus-backed collector.
//
// Parameters:
//   - reg: registerer to use (prometheus.DefaultRegisterer if nil)
//   - namespace: metrics namespace ("workshop" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "workshop"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.trials = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "trials_total",
			Help:      "Total number of finished allocation trials.",
		})
		p.trialDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "trial_duration_seconds",
			Help:      "Duration of a single allocation trial.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		})
		p.trialScore = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "trial_score",
			Help:      "Score of finished allocation trials.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		})
		p.bestScore = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "best_score",
			Help:      "Most recent best score reported by a run.",
		})
		p.improvements = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "improvements_total",
			Help:      "Number of times a trial replaced the best mapping.",
		})
		p.runs = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "runs_total",
			Help:      "Finished search runs by cancellation state.",
		}, []string{"cancelled"})
		p.runDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete search run.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		})
		p.jobs = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "server",
			Name:      "jobs_total",
			Help:      "Mapping job state changes by status.",
		}, []string{"status"})

		p.reg.MustRegister(
			p.trials,
			p.trialDuration,
			p.trialScore,
			p.bestScore,
			p.improvements,
			p.runs,
			p.runDuration,
			p.jobs,
		)
	})
}

func (p *PrometheusCollector) RecordTrial(score float64, duration time.Duration) {
	p.ensureRegistered()
	p.trials.Inc()
	p.trialScore.Observe(score)
	p.trialDuration.Observe(duration.Seconds())
}

func (p *PrometheusCollector) RecordImprovement(score float64) {
	p.ensureRegistered()
	p.improvements.Inc()
	p.bestScore.Set(score)
}

func (p *PrometheusCollector) RecordRun(duration time.Duration, _ int, cancelled bool) {
	p.ensureRegistered()
	p.runs.WithLabelValues(strconv.FormatBool(cancelled)).Inc()
	p.runDuration.Observe(duration.Seconds())
}

func (p *PrometheusCollector) RecordJob(status string) {
	p.ensureRegistered()
	p.jobs.WithLabelValues(status).Inc()
}
