package shell

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommandsHandledTotal counts processed commands by type and outcome
	// (success, idempotent, rejected, error).
	CommandsHandledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exlibris_commands_handled_total",
		Help: "Total number of inventory commands handled",
	}, []string{"command", "outcome"})

	// CoordinatorReactionsTotal counts coordinator reactions by coordinator
	// and action (satisfy_reservation, mark_available, forbid, allow, noop, dropped_rejection).
	CoordinatorReactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exlibris_coordinator_reactions_total",
		Help: "Total number of coordinator reactions to inventory events",
	}, []string{"coordinator", "action"})

	// CoordinatorFatalTotal counts fatal coordinator failures (missing inventory).
	CoordinatorFatalTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exlibris_coordinator_fatal_total",
		Help: "Total number of fatal coordinator errors",
	}, []string{"coordinator"})

	// BusPublishedTotal counts events published on the in-process bus by event type.
	BusPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exlibris_bus_events_published_total",
		Help: "Total number of events published on the event bus",
	}, []string{"event_type"})

	// BusHandlerDuration measures event handler latency per event type.
	BusHandlerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "exlibris_bus_handler_duration_seconds",
		Help:    "Latency of event bus handler invocations",
		Buckets: prometheus.DefBuckets,
	}, []string{"event_type"})
)
