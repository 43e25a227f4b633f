package proxy

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// taskOutcomes counts task requests by effective answer source.
var taskOutcomes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "openclaw_task_requests_total",
		Help: "Task requests by outcome (real upstream answer, mock fallback, unmasked error).",
	},
	[]string{"outcome"},
)
