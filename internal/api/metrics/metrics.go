// Package metrics defines and registers all custom Prometheus metrics for the
// StudyHub tutoring gateway. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto) and exposed by the gateway on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "studyhub"

// ── Directory metrics ─────────────────────────────────────────────────────────

// DirectoryRefreshTotal counts session list refreshes.
// Label:
//   - result: "ok", "enrollment_degraded" or "list_unavailable"
var DirectoryRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "directory_refresh_total",
		Help:      "Total number of session directory refreshes, by result.",
	},
	[]string{"result"},
)

// DirectoryQueriesTotal counts rendered directory pages.
// Label:
//   - sort: the applied sort order
var DirectoryQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "directory_queries_total",
		Help:      "Total number of directory pages rendered, by sort order.",
	},
	[]string{"sort"},
)

// JoinAttemptsTotal counts enroll actions.
// Label:
//   - result: "joined", "full", "already_enrolled", "in_flight", "rejected", "error"
var JoinAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "join_attempts_total",
		Help:      "Total number of session join attempts, by result.",
	},
	[]string{"result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthTransitionsTotal counts auth store state changes.
// Label:
//   - state: the state entered ("authenticated" or "anonymous")
var AuthTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_transitions_total",
		Help:      "Total number of auth store state transitions, by target state.",
	},
	[]string{"state"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestDuration measures calls to the tutoring backend.
// Labels:
//   - operation: e.g. "list_sessions", "learner_login"
//   - outcome: "ok" or "error"
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the tutoring backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation", "outcome"},
)
