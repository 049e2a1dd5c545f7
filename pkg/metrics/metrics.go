// Package metrics defines Prometheus metrics for the multi-user service.
//
// All metrics are registered with the default Prometheus registry and served
// by Handler.
//
// Metric naming follows Prometheus conventions:
//   - multiuser_ prefix for all custom metrics
//   - _total suffix for counters
//   - _seconds suffix for duration histograms
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// UserTypeSelectionsTotal counts explicit user type selections by class
	// and whether the selection was persisted to the session.
	UserTypeSelectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multiuser_user_type_selections_total",
			Help: "Total number of user type selections by class.",
		},
		[]string{"class", "persisted"},
	)

	// UsersCreatedTotal counts users created through registration by class.
	UsersCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multiuser_users_created_total",
			Help: "Total number of users created by class.",
		},
		[]string{"class"},
	)

	// ConfigErrorsTotal counts rejected user type configurations.
	ConfigErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "multiuser_config_errors_total",
			Help: "Total number of rejected user type configurations.",
		},
	)

	// SessionErrorsTotal counts session backend failures by operation.
	SessionErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multiuser_session_errors_total",
			Help: "Total number of session backend errors by operation.",
		},
		[]string{"op"},
	)

	// SessionOpDurationSeconds is a histogram of session backend latency.
	SessionOpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "multiuser_session_op_duration_seconds",
			Help:    "Duration of session backend operations in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	// RateLimitedTotal counts rejected requests by limiter.
	RateLimitedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multiuser_rate_limited_total",
			Help: "Total number of requests rejected by rate limiting.",
		},
		[]string{"limiter"},
	)
)

func init() {
	prometheus.MustRegister(
		UserTypeSelectionsTotal,
		UsersCreatedTotal,
		ConfigErrorsTotal,
		SessionErrorsTotal,
		SessionOpDurationSeconds,
		RateLimitedTotal,
	)
}

// RecordSelection records a single user type selection.
func RecordSelection(class string, persisted bool) {
	UserTypeSelectionsTotal.WithLabelValues(class, strconv.FormatBool(persisted)).Inc()
}

// RecordUserCreated records a single created user.
func RecordUserCreated(class string) {
	UsersCreatedTotal.WithLabelValues(class).Inc()
}

// RecordConfigError records a rejected configuration.
func RecordConfigError() {
	ConfigErrorsTotal.Inc()
}

// RecordSessionOp records the outcome of a session backend operation.
func RecordSessionOp(op string, duration time.Duration, err error) {
	SessionOpDurationSeconds.WithLabelValues(op).Observe(duration.Seconds())
	if err != nil {
		SessionErrorsTotal.WithLabelValues(op).Inc()
	}
}

// RecordRateLimited records a single rejected request.
func RecordRateLimited(limiter string) {
	RateLimitedTotal.WithLabelValues(limiter).Inc()
}

// Handler serves the registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
