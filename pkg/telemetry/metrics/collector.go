package metrics

import (
	"time"

	"mercator-hq/pairnum/pkg/config"
	"mercator-hq/pairnum/pkg/pairnum"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records homework measurements as Prometheus metrics.
// It implements homework.Recorder. A collector whose config is disabled
// registers its metrics but ignores every update.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	reductionsTotal      prometheus.Counter
	explodesTotal        prometheus.Counter
	splitsTotal          prometheus.Counter
	pairEvaluationsTotal prometheus.Counter

	runDuration   *prometheus.HistogramVec
	lastMagnitude *prometheus.GaugeVec
	runsTotal     *prometheus.CounterVec
}

// NewCollector creates a collector with the specified configuration and
// Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true, Namespace: "pairnum"}
//	collector := metrics.NewCollector(cfg, nil)
//	driver := homework.NewDriver(homework.WithRecorder(collector))
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), config.DefaultDurationBuckets...)
	}

	c := &Collector{
		config:   cfg,
		registry: registry,

		reductionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "reductions_total",
			Help:      "Number of scenario reductions recorded",
		}),
		explodesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "explodes_total",
			Help:      "Number of explode rewrites performed",
		}),
		splitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "splits_total",
			Help:      "Number of split rewrites performed",
		}),
		pairEvaluationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "pair_evaluations_total",
			Help:      "Number of ordered pairs added and measured",
		}),

		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of homework scenarios in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"scenario"},
		),
		lastMagnitude: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "last_magnitude",
				Help:      "Magnitude produced by the most recent run of each scenario",
			},
			[]string{"scenario"},
		),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "runs_total",
				Help:      "Number of homework runs by outcome",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(
		c.reductionsTotal,
		c.explodesTotal,
		c.splitsTotal,
		c.pairEvaluationsTotal,
		c.runDuration,
		c.lastMagnitude,
		c.runsTotal,
	)

	return c
}

// RecordReduction records the rewrites performed by one scenario.
func (c *Collector) RecordReduction(stats pairnum.Stats) {
	if !c.config.Enabled {
		return
	}

	c.reductionsTotal.Inc()
	c.explodesTotal.Add(float64(stats.Explodes))
	c.splitsTotal.Add(float64(stats.Splits))
}

// RecordPairEvaluations records how many ordered pairs were evaluated.
func (c *Collector) RecordPairEvaluations(n int) {
	if !c.config.Enabled || n <= 0 {
		return
	}

	c.pairEvaluationsTotal.Add(float64(n))
}

// RecordScenario records the duration and resulting magnitude of a scenario.
func (c *Collector) RecordScenario(scenario string, magnitude int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.runDuration.WithLabelValues(scenario).Observe(duration.Seconds())
	c.lastMagnitude.WithLabelValues(scenario).Set(float64(magnitude))
}

// RecordRun records the outcome of a full homework run.
//
// Parameters:
//   - status: "success", "parse_error" or "error"
//   - duration: wall time of the run (not observed; scenarios carry timing)
func (c *Collector) RecordRun(status string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.runsTotal.WithLabelValues(status).Inc()
}

// Enabled reports whether the collector records updates.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
