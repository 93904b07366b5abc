// Package metrics declares the coordinator's Prometheus instruments.
//
// Naming convention: namespace_subsystem_name
//   - namespace: mafia_room (application-level grouping)
//   - subsystem: phase, subscription, vote (feature-level grouping)
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PhaseTransitions counts every phase the room has entered, by the
	// phase it entered.
	PhaseTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mafia_room",
		Subsystem: "phase",
		Name:      "transitions_total",
		Help:      "Total phase transitions, labeled by the entered phase",
	}, []string{"phase"})

	// ActiveSubscriptions tracks the number of currently streaming
	// per-viewer subscriptions.
	ActiveSubscriptions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mafia_room",
		Subsystem: "subscription",
		Name:      "active",
		Help:      "Current number of active view subscriptions",
	})

	// PlayersEliminated counts kills, labeled by the victim's true role.
	PlayersEliminated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mafia_room",
		Subsystem: "vote",
		Name:      "players_eliminated_total",
		Help:      "Total players eliminated, labeled by their role",
	}, []string{"role"})

	// ViewComputeDuration tracks how long Room.View takes to compute a
	// projection, per room.
	ViewComputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mafia_room",
		Subsystem: "subscription",
		Name:      "view_compute_seconds",
		Help:      "Time spent computing a single Room.View projection",
		Buckets:   prometheus.DefBuckets,
	})
)
