package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for transfer submissions.
type Metrics struct {
	// Accepted transfers by kind: mint, burn, transfer
	Accepted *prometheus.CounterVec

	// Rejections by taxonomy code
	Rejected *prometheus.CounterVec

	// Resubmissions answered with the existing record
	Duplicates prometheus.Counter

	// Events that could not be published after commit
	PublishFailures prometheus.Counter

	// Full validate-and-persist latency
	CreateLatency prometheus.Histogram
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Accepted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fname_registry_transfers_accepted_total",
			Help: "Accepted transfers by kind",
		}, []string{"kind"}),

		Rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fname_registry_transfers_rejected_total",
			Help: "Rejected transfers by validation code",
		}, []string{"code"}),

		Duplicates: factory.NewCounter(prometheus.CounterOpts{
			Name: "fname_registry_transfers_duplicate_total",
			Help: "Transfer submissions that repeated the current state",
		}),

		PublishFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "fname_registry_transfer_events_failed_total",
			Help: "Accepted transfers whose event could not be published",
		}),

		CreateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fname_registry_transfer_create_duration_seconds",
			Help:    "Duration of transfer validation and persistence",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

func (m *Metrics) IncrementAccepted(kind string) {
	if m != nil {
		m.Accepted.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncrementRejected(code string) {
	if m != nil {
		m.Rejected.WithLabelValues(code).Inc()
	}
}

func (m *Metrics) IncrementDuplicate() {
	if m != nil {
		m.Duplicates.Inc()
	}
}

func (m *Metrics) IncrementPublishFailure() {
	if m != nil {
		m.PublishFailures.Inc()
	}
}

func (m *Metrics) ObserveCreateLatency(d time.Duration) {
	if m != nil {
		m.CreateLatency.Observe(d.Seconds())
	}
}
