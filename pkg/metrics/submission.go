package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SubmissionMetrics records the outcome of group order submissions.
type SubmissionMetrics struct {
	duration *prometheus.HistogramVec
	success  prometheus.Counter
	failure  prometheus.Counter
}

// NewSubmissionMetrics registers the submission metrics on the provided
// registerer. A nil registerer yields a no-op recorder.
func NewSubmissionMetrics(reg prometheus.Registerer) *SubmissionMetrics {
	if reg == nil {
		return &SubmissionMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "group_order_submission_duration_seconds",
		Help:    "Duration of group order submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	success := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "group_order_submission_success_total",
		Help: "Successful group order submissions.",
	})
	failure := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "group_order_submission_failure_total",
		Help: "Failed group order submissions.",
	})
	reg.MustRegister(duration, success, failure)
	return &SubmissionMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// Observe records one finished submission attempt.
func (s *SubmissionMetrics) Observe(duration time.Duration, ok bool) {
	if s == nil || s.duration == nil {
		return
	}
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	s.duration.WithLabelValues(outcome).Observe(duration.Seconds())
	if ok {
		s.success.Inc()
		return
	}
	s.failure.Inc()
}
