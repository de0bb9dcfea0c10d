package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_requests_total",
		Help: "Total authentication requests by role and result",
	}, []string{"role", "result"}) // result: success | failure

	authDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "auth_duration_seconds",
		Help:    "Authentication duration by role",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
	}, []string{"role"})

	authzCheckDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "authz_check_duration_seconds",
		Help:    "Authorization check duration",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01},
	})

	forbiddenAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forbidden_attempts_total",
		Help: "Forbidden access attempts by role and method",
	}, []string{"role", "method"})
)

// RecordAuthRequest counts a token request outcome ("success" or "failure").
func RecordAuthRequest(role, result string) {
	authRequestsTotal.WithLabelValues(role, result).Inc()
}

// RecordAuthDuration records how long a token request took.
func RecordAuthDuration(role string, d time.Duration) {
	authDuration.WithLabelValues(role).Observe(d.Seconds())
}

// RecordAuthzCheckDuration records how long a role check took.
func RecordAuthzCheckDuration(d time.Duration) {
	authzCheckDuration.Observe(d.Seconds())
}

// RecordForbiddenAttempt counts a request rejected by the role matrix.
func RecordForbiddenAttempt(role, method string) {
	forbiddenAttempts.WithLabelValues(role, method).Inc()
}
