package notify

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the welcome email dispatch pipeline
var (
	mailDispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "welcome_mail_dispatched_total",
			Help: "Total number of welcome emails dispatched",
		},
		[]string{"channel"},
	)

	mailSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "welcome_mail_sent_total",
			Help: "Total number of welcome email send results",
		},
		[]string{"channel", "status"}, // status: success|failure
	)

	mailDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "welcome_mail_duration_seconds",
			Help:    "Welcome email send duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"channel"},
	)

	mailCircuitBreakerOpenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "welcome_mail_circuit_breaker_open_total",
			Help: "Total number of circuit breaker open events",
		},
		[]string{"channel"},
	)

	mailDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "welcome_mail_dropped_total",
			Help: "Total number of dropped welcome emails",
		},
		[]string{"channel", "reason"}, // reason: pool_full|circuit_open|disabled
	)

	activeSends = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "welcome_mail_active_goroutines",
			Help: "Number of active welcome email goroutines",
		},
	)

	channelsEnabled = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "welcome_mail_channels_enabled",
			Help: "Number of enabled mail channels",
		},
	)
)

// RecordDispatch records a welcome email dispatch attempt.
func RecordDispatch(channel string) {
	mailDispatchedTotal.WithLabelValues(channel).Inc()
}

// RecordSuccess records a successful send and its duration.
func RecordSuccess(channel string, duration time.Duration) {
	mailSentTotal.WithLabelValues(channel, "success").Inc()
	mailDuration.WithLabelValues(channel).Observe(duration.Seconds())
}

// RecordFailure records a failed send and its duration.
func RecordFailure(channel string, duration time.Duration) {
	mailSentTotal.WithLabelValues(channel, "failure").Inc()
	mailDuration.WithLabelValues(channel).Observe(duration.Seconds())
}

// RecordDropped records a dropped welcome email with the drop reason.
func RecordDropped(channel string, reason string) {
	mailDroppedTotal.WithLabelValues(channel, reason).Inc()
}

// RecordCircuitBreakerOpen records a circuit breaker open event.
func RecordCircuitBreakerOpen(channel string) {
	mailCircuitBreakerOpenTotal.WithLabelValues(channel).Inc()
}

// IncrementActiveGoroutines increments the active sends gauge by 1.
func IncrementActiveGoroutines() {
	activeSends.Inc()
}

// DecrementActiveGoroutines decrements the active sends gauge by 1.
func DecrementActiveGoroutines() {
	activeSends.Dec()
}

// SetChannelsEnabled sets the number of enabled mail channels.
func SetChannelsEnabled(count float64) {
	channelsEnabled.Set(count)
}
