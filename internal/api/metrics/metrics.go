// Package metrics defines and registers all custom Prometheus metrics for the
// portfolio API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Collectors are created with promauto and therefore registered with the
// default Prometheus registry when the package is first imported.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portfolio"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "throttled", "invalid_input" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts self-service registrations by outcome.
// Label:
//   - result: "success", "duplicate", "invalid_input" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// AdminAccessDeniedTotal counts requests rejected by the admin gate.
// Label:
//   - reason: "token_missing", "token_invalid", "token_expired" or "forbidden"
var AdminAccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_access_denied_total",
		Help:      "Total number of requests rejected by the admin access gate.",
	},
	[]string{"reason"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// TestimonialsSubmittedTotal counts accepted testimonial submissions.
var TestimonialsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "testimonials_submitted_total",
		Help:      "Total number of testimonials submitted for moderation.",
	},
)

// TestimonialsModeratedTotal counts moderation decisions.
// Label:
//   - status: the status the testimonial was moved to
var TestimonialsModeratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "testimonials_moderated_total",
		Help:      "Total number of testimonial status changes, by new status.",
	},
	[]string{"status"},
)

// TestimonialsDeletedTotal counts testimonials removed by an admin.
var TestimonialsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "testimonials_deleted_total",
		Help:      "Total number of testimonials deleted.",
	},
)

// ContactMessagesReceivedTotal counts stored contact-form submissions.
var ContactMessagesReceivedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_messages_received_total",
		Help:      "Total number of contact messages received.",
	},
)
