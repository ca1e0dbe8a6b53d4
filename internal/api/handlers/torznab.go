// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/genie-coder21/seedable/internal/domain"
	"github.com/genie-coder21/seedable/internal/services/search"
	"github.com/genie-coder21/seedable/internal/services/seedfilter"
	"github.com/genie-coder21/seedable/internal/torznab"
)

// TorznabHandler serves the Torznab-compatible search API.
type TorznabHandler struct {
	cfg           *domain.Config
	searchService *search.Service
}

// NewTorznabHandler creates a new Torznab API handler
func NewTorznabHandler(cfg *domain.Config, searchService *search.Service) *TorznabHandler {
	return &TorznabHandler{
		cfg:           cfg,
		searchService: searchService,
	}
}

// Routes registers the Torznab routes on the given router
func (h *TorznabHandler) Routes(r chi.Router) {
	r.Get("/", h.Handle)
}

// Handle dispatches on the Torznab request type parameter.
func (h *TorznabHandler) Handle(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	requestType := params.Get("t")

	log.Info().
		Str("t", requestType).
		Str("q", params.Get("q")).
		Str("cat", params.Get("cat")).
		Str("userAgent", r.UserAgent()).
		Msg("incoming torznab request")

	if subtle.ConstantTimeCompare([]byte(params.Get("apikey")), []byte(h.cfg.APIKey)) != 1 {
		log.Warn().Msg("invalid API key")
		http.Error(w, "Invalid API key", http.StatusForbidden)
		return
	}

	switch requestType {
	case "caps":
		h.handleCaps(w)
	case "search", "movie", "tvsearch":
		h.handleSearch(w, r, requestType)
	default:
		http.Error(w, "Unknown request type", http.StatusBadRequest)
	}
}

func (h *TorznabHandler) handleCaps(w http.ResponseWriter) {
	body, err := torznab.Marshal(torznab.DefaultCaps())
	if err != nil {
		log.Error().Err(err).Msg("failed to render caps document")
		RespondError(w, http.StatusInternalServerError, "Failed to render capabilities")
		return
	}
	RespondXML(w, http.StatusOK, body)
}

func (h *TorznabHandler) handleSearch(w http.ResponseWriter, r *http.Request, requestType string) {
	params := r.URL.Query()

	req := search.Request{
		Query:       params.Get("q"),
		Category:    params.Get("cat"),
		ImdbID:      params.Get("imdbid"),
		TvdbID:      params.Get("tvdbid"),
		Season:      params.Get("season"),
		Episode:     params.Get("ep"),
		RequestType: requestType,
	}

	results := h.searchService.Search(r.Context(), req)

	pagination := ParsePagination(r, seedfilter.DefaultLimit, seedfilter.MaxLimit)
	page := seedfilter.Paginate(results, pagination.Offset, pagination.Limit)

	log.Info().
		Int("total", len(results)).
		Int("offset", pagination.Offset).
		Int("limit", pagination.Limit).
		Int("returned", len(page)).
		Msg("returning paginated results")

	feed := torznab.BuildFeed(page, torznab.FeedOptions{
		Link:                  h.cfg.BaseURL,
		AnnotateTrackerCounts: len(h.cfg.PrivateTrackerList()) > 0,
	})

	body, err := torznab.Marshal(feed)
	if err != nil {
		log.Error().Err(err).Msg("failed to render result feed")
		RespondError(w, http.StatusInternalServerError, "Failed to render results")
		return
	}

	RespondXML(w, http.StatusOK, body)
}
