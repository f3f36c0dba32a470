// Package metrics defines and registers all custom Prometheus metrics for the
// federation platform's authentication core. It is the single source of truth
// for metric names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "federation"

// ── Login metrics ─────────────────────────────────────────────────────────────

// LoginsInitiatedTotal counts phase-1 login attempts.
// Label:
//   - outcome: "code_issued", "password_reset_required", "invalid_credentials",
//     "unknown_account", "deactivated", "not_activated"
var LoginsInitiatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_initiated_total",
		Help:      "Total number of phase-1 login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// CodesIssuedTotal counts verification codes issued after a successful
// credential check.
var CodesIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "codes_issued_total",
		Help:      "Total number of verification codes issued.",
	},
)

// CodeChecksTotal counts phase-2 verification attempts.
// Label:
//   - result: "success", "incorrect", "expired", "exhausted", "not_found"
var CodeChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "code_checks_total",
		Help:      "Total number of verification code checks, by result.",
	},
	[]string{"result"},
)

// ── Lifecycle metrics ─────────────────────────────────────────────────────────

// ManagersProvisionedTotal counts club-manager accounts created.
var ManagersProvisionedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "managers_provisioned_total",
		Help:      "Total number of club manager accounts provisioned.",
	},
)

// EmailsSentTotal counts outbound emails.
// Labels:
//   - kind: "verification_code" or "credentials"
//   - result: "ok" or "error"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of outbound emails, by kind and result.",
	},
	[]string{"kind", "result"},
)

// CodesSweptTotal counts expired verification codes removed by the periodic
// sweep.
var CodesSweptTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "codes_swept_total",
		Help:      "Total number of expired verification codes removed by the sweeper.",
	},
)
