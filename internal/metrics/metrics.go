// Package metrics provides Prometheus observability for the catalog service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all service-level instruments. A nil *Metrics is safe to use;
// every recorder is a no-op.
type Metrics struct {
	// Record writes by operation and outcome
	RecordWrites *prometheus.CounterVec

	// Duplicate-flag recomputations triggered by writes and deletes
	DuplicateRecomputes prometheus.Counter

	// Comments appended to records
	CommentsAdded prometheus.Counter

	// Feedback messages received by type
	FeedbackReceived *prometheus.CounterVec

	// External metadata lookup latencies by outcome
	MetadataLookupLatency *prometheus.HistogramVec
}

// New creates a Metrics instance with all instruments registered on the
// default registry.
func New() *Metrics {
	return &Metrics{
		RecordWrites: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booknest_record_writes_total",
			Help: "Total book record writes by operation and outcome",
		}, []string{"operation", "outcome"}), // operation: "create", "update", "replace", "delete"

		DuplicateRecomputes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "booknest_duplicate_recomputes_total",
			Help: "Total duplicate-flag recomputations",
		}),

		CommentsAdded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "booknest_comments_added_total",
			Help: "Total comments appended to book records",
		}),

		FeedbackReceived: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booknest_feedback_received_total",
			Help: "Total feedback messages received by type",
		}, []string{"type"}),

		MetadataLookupLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "booknest_metadata_lookup_duration_seconds",
			Help:    "Duration of external metadata lookups by outcome",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"outcome"}), // outcome: "ok", "not_found", "upstream_error"
	}
}

// IncrementRecordWrite records a write operation outcome.
func (m *Metrics) IncrementRecordWrite(operation, outcome string) {
	if m != nil {
		m.RecordWrites.WithLabelValues(operation, outcome).Inc()
	}
}

// IncrementDuplicateRecompute records one duplicate-flag recomputation.
func (m *Metrics) IncrementDuplicateRecompute() {
	if m != nil {
		m.DuplicateRecomputes.Inc()
	}
}

// IncrementCommentAdded records a comment append.
func (m *Metrics) IncrementCommentAdded() {
	if m != nil {
		m.CommentsAdded.Inc()
	}
}

// IncrementFeedbackReceived records a feedback message.
func (m *Metrics) IncrementFeedbackReceived(feedbackType string) {
	if m != nil {
		m.FeedbackReceived.WithLabelValues(feedbackType).Inc()
	}
}

// ObserveMetadataLookup records an external lookup duration.
func (m *Metrics) ObserveMetadataLookup(outcome string, d time.Duration) {
	if m != nil {
		m.MetadataLookupLatency.WithLabelValues(outcome).Observe(d.Seconds())
	}
}
