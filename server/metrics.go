// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are ambient observability (§2.1), not the excluded anti-cheat or
// matchmaking features, so they are in scope despite those Non-goals.
var metrics = struct {
	tickDuration   prometheus.Histogram
	activeSessions prometheus.Gauge
	kills          prometheus.Counter
	bulletsFired   prometheus.Counter
}{
	tickDuration: promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "arenasync",
		Name:      "tick_duration_seconds",
		Help:      "Wall-clock duration of one Simulation Core tick.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
	}),
	activeSessions: promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "arenasync",
		Name:      "active_sessions",
		Help:      "Number of sessions currently registered with the room.",
	}),
	kills: promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "arenasync",
		Name:      "kills_total",
		Help:      "Total player kills since process start.",
	}),
	bulletsFired: promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "arenasync",
		Name:      "bullets_fired_total",
		Help:      "Total bullets spawned since process start.",
	}),
}
