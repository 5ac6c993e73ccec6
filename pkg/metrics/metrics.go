// Package metrics defines and registers the custom Prometheus metrics of the
// ClubHub API. HTTP request metrics come from echoprometheus; everything
// domain specific lives here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clubhub"

// ── Auth metrics ─────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "success", "rejected" (client error) or "error" (server error)
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts.",
	},
	[]string{"operation", "result"},
)

// TokenVerificationsTotal counts bearer token checks performed by the auth gate.
// Label:
//   - result: "ok", "missing", "malformed", "invalid_signature", "expired" or "misconfigured"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// ── Resource metrics ─────────────────────────────────────────────────────────

// ClubsCreatedTotal counts newly created clubs.
var ClubsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clubs_created_total",
		Help:      "Total number of clubs created.",
	},
)

// EventsCreatedTotal counts newly created events.
// Label:
//   - role: role of the creator ("business" or "admin")
var EventsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_created_total",
		Help:      "Total number of events created, by creator role.",
	},
	[]string{"role"},
)

// IdempotentReplaysTotal counts create requests answered from the idempotency store.
// Label:
//   - resource: "club" or "event"
var IdempotentReplaysTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of create requests replayed from a previous Idempotency-Key.",
	},
	[]string{"resource"},
)

// ── Audit metrics ────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit entries waiting in each worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditDroppedTotal counts audit entries dropped because their worker channel was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit entries dropped on a full queue.",
	},
)

// AuditWriteErrorsTotal counts audit entries that failed to persist.
var AuditWriteErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_errors_total",
		Help:      "Total number of audit entries that failed to persist.",
	},
)
