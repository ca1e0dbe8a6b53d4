// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

// Manager owns the Prometheus registry and the proxy's search counters.
type Manager struct {
	registry *prometheus.Registry

	searchesTotal       prometheus.Counter
	cacheHitsTotal      prometheus.Counter
	cacheMissesTotal    prometheus.Counter
	upstreamErrorsTotal prometheus.Counter
	resultsReturned     prometheus.Counter
}

func NewManager() *Manager {
	registry := prometheus.NewRegistry()

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Manager{
		registry: registry,
		searchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seedable_searches_total",
			Help: "Total number of search requests handled.",
		}),
		cacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seedable_cache_hits_total",
			Help: "Search requests served from the result cache.",
		}),
		cacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seedable_cache_misses_total",
			Help: "Search requests that required an upstream query.",
		}),
		upstreamErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seedable_upstream_errors_total",
			Help: "Failed calls to the metasearch aggregator.",
		}),
		resultsReturned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seedable_results_returned_total",
			Help: "Cross-seedable results returned across all searches.",
		}),
	}

	registry.MustRegister(
		m.searchesTotal,
		m.cacheHitsTotal,
		m.cacheMissesTotal,
		m.upstreamErrorsTotal,
		m.resultsReturned,
	)

	log.Info().Msg("Metrics manager initialized")

	return m
}

func (m *Manager) GetRegistry() *prometheus.Registry {
	return m.registry
}

// Counter helpers are nil-safe so the search service can run without metrics
// wired, e.g. in tests.

func (m *Manager) IncSearches() {
	if m != nil {
		m.searchesTotal.Inc()
	}
}

func (m *Manager) IncCacheHits() {
	if m != nil {
		m.cacheHitsTotal.Inc()
	}
}

func (m *Manager) IncCacheMisses() {
	if m != nil {
		m.cacheMissesTotal.Inc()
	}
}

func (m *Manager) IncUpstreamErrors() {
	if m != nil {
		m.upstreamErrorsTotal.Inc()
	}
}

func (m *Manager) AddResultsReturned(n int) {
	if m != nil && n > 0 {
		m.resultsReturned.Add(float64(n))
	}
}
