// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/CAFxX/httpcompression"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/genie-coder21/seedable/internal/api/handlers"
	"github.com/genie-coder21/seedable/internal/domain"
	"github.com/genie-coder21/seedable/internal/metrics"
	"github.com/genie-coder21/seedable/internal/services/search"
)

// Dependencies holds everything the HTTP server needs.
type Dependencies struct {
	Config         *domain.Config
	SearchService  *search.Service
	MetricsManager *metrics.Manager
}

// Server is the HTTP front of the proxy.
type Server struct {
	deps *Dependencies
}

// NewServer creates the API server from its dependencies.
func NewServer(deps *Dependencies) *Server {
	return &Server{deps: deps}
}

// Handler builds the router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}).Handler)

	if compress, err := httpcompression.DefaultAdapter(); err != nil {
		log.Error().Err(err).Msg("failed to initialize response compression")
	} else {
		r.Use(compress)
	}

	r.Route("/api", func(r chi.Router) {
		handlers.NewTorznabHandler(s.deps.Config, s.deps.SearchService).Routes(r)
	})

	r.Route("/health", func(r chi.Router) {
		handlers.NewHealthHandler(s.deps.Config).Routes(r)
	})

	if s.deps.Config.MetricsEnabled && s.deps.MetricsManager != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(
			s.deps.MetricsManager.GetRegistry(),
			promhttp.HandlerOpts{},
		))
	}

	r.Get("/", s.index)

	return r
}

// index serves a minimal status page so operators can confirm the proxy is
// up and copy the endpoint into their download clients.
func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<html>
<head><title>Seedable</title></head>
<body>
<h1>Seedable - Cross-Seed Torznab Filter</h1>
<p>Status: <strong>Running</strong></p>
<p>Minimum trackers required: <strong>%d</strong></p>
<p>NZBHydra2 URL: <strong>%s</strong></p>
<hr>
<h3>Add to Sonarr/Radarr:</h3>
<ul>
<li>URL: <code>%sapi</code></li>
</ul>
</body>
</html>`, s.deps.Config.MinDuplicates, s.deps.Config.HydraURL, s.deps.Config.BaseURL)
}
