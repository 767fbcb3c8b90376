package metrics

import (
	"math"

	coremetrics "github.com/kerguelen/boatgrid/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records analysis events in Prometheus metrics.
type PromSink struct {
	analyses  prometheus.Counter
	duration  prometheus.Histogram
	errors    prometheus.Gauge
	warnings  prometheus.Gauge
	autonomy  prometheus.Gauge
	balanceAh *prometheus.GaugeVec
}

// NewPromSink registers analysis metrics on the default Prometheus
// registerer. The metrics server is started separately.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		analyses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boatgrid_analyses_total",
			Help: "Total number of network analyses performed",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "boatgrid_analysis_duration_seconds",
			Help:    "Time spent computing one analysis",
			Buckets: prometheus.DefBuckets,
		}),
		errors: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "boatgrid_validation_errors",
			Help: "Validation errors found by the latest analysis",
		}),
		warnings: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "boatgrid_validation_warnings",
			Help: "Validation warnings found by the latest analysis",
		}),
		autonomy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "boatgrid_estimated_autonomy_days",
			Help: "Estimated battery autonomy from the latest analysis",
		}),
		balanceAh: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "boatgrid_daily_energy_ah",
			Help: "Daily energy figures from the latest analysis",
		}, []string{"direction"}),
	}
	for _, c := range []prometheus.Collector{s.analyses, s.duration, s.errors, s.warnings, s.autonomy, s.balanceAh} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordAnalysis updates the gauges with the latest analysis figures.
func (s *PromSink) RecordAnalysis(ev coremetrics.AnalysisEvent) error {
	s.analyses.Inc()
	s.duration.Observe(ev.Duration.Seconds())
	s.errors.Set(float64(ev.Errors))
	s.warnings.Set(float64(ev.Warnings))
	if !math.IsInf(ev.AutonomyDays, 0) {
		s.autonomy.Set(ev.AutonomyDays)
	}
	s.balanceAh.WithLabelValues("consumption").Set(ev.DailyConsumptionAh)
	s.balanceAh.WithLabelValues("production").Set(ev.DailyProductionAh)
	return nil
}
