// Package metrics defines and registers the custom Prometheus metrics of the
// appliance portal. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry through promauto, which
// is also what the /metrics endpoint exposes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "appliance_portal"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginAttemptsTotal counts login form submissions.
// Label:
//   - result: "success", "invalid", "throttled", "rejected" (form validation) or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsIssuedTotal counts session cookies minted after a successful login.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of session tokens issued.",
	},
)

// SessionRejectionsTotal counts protected requests turned away for a missing,
// expired or tampered session.
var SessionRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_rejections_total",
		Help:      "Total number of requests rejected for an invalid session.",
	},
)

// ── Device relay metrics ──────────────────────────────────────────────────────

// RelayCallsTotal counts calls to the device gateway.
// Labels:
//   - method: "status" or "toggle"
//   - result: the returned status ("on", "off", "unknown") or "error"
var RelayCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relay_calls_total",
		Help:      "Total number of device relay calls, by method and result.",
	},
	[]string{"method", "result"},
)

// RelayCallDuration measures the round trip to the device gateway.
var RelayCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "relay_call_duration_seconds",
		Help:      "Duration of device relay calls, including failures and timeouts.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15},
	},
	[]string{"method"},
)
