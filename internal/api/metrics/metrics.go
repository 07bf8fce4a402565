// Package metrics defines and registers the custom Prometheus metrics of the
// gazette API. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default registry on package init via
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gazette"

// ── Identity metrics ──────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected", "pool_error", "query_error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts calls to the register procedure.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// ConfirmationsTotal counts invitation confirmations.
var ConfirmationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "confirmations_total",
		Help:      "Total number of account confirmation attempts, by result.",
	},
	[]string{"result"},
)

// EmailsDispatchedTotal counts confirmation emails handed to the mail API.
// A "failure" here is an account left pending without an email.
var EmailsDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_dispatched_total",
		Help:      "Total number of confirmation emails dispatched, by result (success/failure).",
	},
	[]string{"result"},
)

// ── Article metrics ───────────────────────────────────────────────────────────

// ArticleListDegradedTotal counts listings served empty because the
// datastore failed.
var ArticleListDegradedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "article_list_degraded_total",
		Help:      "Total number of article listings answered with an empty list after a datastore error.",
	},
)

// ArticleCacheTotal counts article listing cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var ArticleCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "article_cache_total",
		Help:      "Total number of article listing cache lookups, by result.",
	},
	[]string{"result"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the audit events waiting in each dispatcher worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditDroppedTotal counts audit events dropped because a worker channel was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit events dropped because the dispatcher was saturated.",
	},
)
