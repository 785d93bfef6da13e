// Package metrics defines the custom Prometheus metrics of the taskboard API.
// Collectors are registered with the default registry on package init through
// promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskboard"

// Result label values shared by the counters below.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultError   = "error"
)

// AuthResolutionsTotal counts identity resolutions.
// Labels:
//   - channel: "session", "bearer" or "none"
//   - result: "success", "failure" (no identity) or "error" (store failure)
var AuthResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_resolutions_total",
		Help:      "Total number of caller identity resolutions, by channel and result.",
	},
	[]string{"channel", "result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// StatsRequestsTotal counts stats responses.
// Labels:
//   - scope: "tasks" or "users"
//   - result: "success" or "error"
var StatsRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_requests_total",
		Help:      "Total number of stats requests served, by scope and result.",
	},
	[]string{"scope", "result"},
)
