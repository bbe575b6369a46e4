package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels for quotebook_repository_ops_total.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultTimeout  = "timeout"
	ResultError    = "error"
)

// Metrics holds the repository collectors. Labels are limited to the
// operation name and a fixed result set to keep cardinality bounded.
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Ops counts repository operations by op and result.
	Ops *prometheus.CounterVec
	// Latency records operation duration in seconds by op.
	Latency *prometheus.HistogramVec
	// Dropped counts stored records that failed mapping and were skipped.
	Dropped prometheus.Counter
}

// NewMetrics creates the repository collectors and registers them on reg.
// A nil reg leaves them unregistered, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Ops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quotebook_repository_ops_total",
				Help: "Total number of quote repository operations.",
			},
			[]string{"op", "result"},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quotebook_repository_op_duration_seconds",
				Help:    "Duration of bounded quote repository operations in seconds.",
				Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"op"},
		),
		Dropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "quotebook_repository_dropped_records_total",
				Help: "Stored quote records skipped because they could not be mapped.",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Ops, m.Latency, m.Dropped)
	}
	return m
}

// Observe records one finished operation.
func (m *Metrics) Observe(op, result string, dur time.Duration) {
	if m == nil {
		return
	}
	m.Ops.WithLabelValues(op, result).Inc()
	m.Latency.WithLabelValues(op).Observe(dur.Seconds())
}

// RecordDropped counts one skipped record.
func (m *Metrics) RecordDropped() {
	if m == nil {
		return
	}
	m.Dropped.Inc()
}

// RegisterStreamGauge exposes quotebook_live_streams_active, sampled from
// active at scrape time.
func RegisterStreamGauge(reg prometheus.Registerer, active func() int) error {
	g := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "quotebook_live_streams_active",
			Help: "Number of open live query streams.",
		},
		func() float64 { return float64(active()) },
	)
	return reg.Register(g)
}
