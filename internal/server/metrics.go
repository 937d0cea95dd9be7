// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "signal_scout_searches_total",
		Help: "Search requests by outcome.",
	}, []string{"status"})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "signal_scout_search_duration_seconds",
		Help:    "End-to-end search pipeline latency.",
		Buckets: prometheus.DefBuckets,
	})
)
