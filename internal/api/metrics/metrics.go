// Package metrics defines and registers the custom Prometheus metrics for the
// theories application. It is the single source of truth for metric names,
// labels, and help strings. Metrics self-register with the default registry
// via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "theories"

// RegistrationsTotal counts account registrations, labelled by result
// ("success" or "duplicate").
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts, labelled by result ("success" or
// "failure"). Failures are not broken down further so the metric cannot be
// used to distinguish unknown users from wrong passwords.
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TheoriesCreatedTotal counts newly posted theories by category.
var TheoriesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "theories_created_total",
		Help:      "Total number of theories created, by category.",
	},
	[]string{"category"},
)

// TheoriesUpdatedTotal counts in-place edits of existing theories.
var TheoriesUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "theories_updated_total",
		Help:      "Total number of theory edits applied.",
	},
)

// TheoriesDeletedTotal counts theory deletions, including no-op deletes of
// ids that matched nothing.
var TheoriesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "theories_deleted_total",
		Help:      "Total number of theory delete requests processed.",
	},
)
