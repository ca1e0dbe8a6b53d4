// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package search orchestrates one search request end to end: resolving the
// query, calling the metasearch aggregator, running the cross-seed filtering
// engine, and serving repeat requests from the result cache.
package search

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/genie-coder21/seedable/internal/domain"
	"github.com/genie-coder21/seedable/internal/metrics"
	"github.com/genie-coder21/seedable/internal/services/seedfilter"
	"github.com/genie-coder21/seedable/internal/torznab"
	"github.com/genie-coder21/seedable/pkg/arr"
	"github.com/genie-coder21/seedable/pkg/nzbhydra"
)

// Request carries the inbound Torznab search parameters the pipeline cares
// about. Pagination is handled by the caller and never reaches this layer.
type Request struct {
	Query       string
	Category    string
	ImdbID      string
	TvdbID      string
	Season      string
	Episode     string
	RequestType string
}

// Intent maps the request onto the cache identity of the search.
func (r Request) Intent() seedfilter.Intent {
	return seedfilter.Intent{
		Query:       r.Query,
		Category:    r.Category,
		ImdbID:      r.ImdbID,
		TvdbID:      r.TvdbID,
		Season:      r.Season,
		Episode:     r.Episode,
		RequestType: r.RequestType,
	}
}

// Service handles search requests against the configured aggregator.
type Service struct {
	cfg     *domain.Config
	hydra   *nzbhydra.Client
	radarr  *arr.Client
	sonarr  *arr.Client
	engine  *seedfilter.Service
	metrics *metrics.Manager

	// flights collapses concurrent cache misses for the same fingerprint
	// into a single upstream query, so cache population stays atomic per key.
	flights singleflight.Group
}

// NewService wires the search pipeline from configuration.
func NewService(cfg *domain.Config, hydra *nzbhydra.Client, radarr, sonarr *arr.Client, engine *seedfilter.Service, metricsManager *metrics.Manager) *Service {
	return &Service{
		cfg:     cfg,
		hydra:   hydra,
		radarr:  radarr,
		sonarr:  sonarr,
		engine:  engine,
		metrics: metricsManager,
	}
}

// Search returns the full filtered result list for the request, from cache
// when a fresh entry exists. Upstream failures degrade to an empty list;
// Search never returns an error to the handler.
func (s *Service) Search(ctx context.Context, req Request) []seedfilter.Result {
	s.metrics.IncSearches()

	fingerprint := req.Intent().Fingerprint()

	if results, ok := s.engine.Cached(fingerprint); ok {
		s.metrics.IncCacheHits()
		s.metrics.AddResultsReturned(len(results))
		log.Info().
			Str("fingerprint", fingerprint).
			Int("results", len(results)).
			Msg("serving cached results")
		return results
	}
	s.metrics.IncCacheMisses()

	value, _, _ := s.flights.Do(fingerprint, func() (any, error) {
		// A concurrent flight may have populated the cache while this
		// caller was queued behind it.
		if results, ok := s.engine.Cached(fingerprint); ok {
			return results, nil
		}

		raw, ok := s.fetchResults(ctx, req)
		if !ok {
			// Upstream failure: return empty without caching so the next
			// request for this intent re-attempts independently.
			return []seedfilter.Result{}, nil
		}
		raw = filterByRequestedIDs(raw, req)

		var requestedCats []string
		if req.Category != "" {
			requestedCats = strings.Split(req.Category, ",")
		}

		return s.engine.Evaluate(raw, requestedCats, fingerprint), nil
	})

	results, ok := value.([]seedfilter.Result)
	if !ok {
		return nil
	}

	s.metrics.AddResultsReturned(len(results))
	return results
}

// fetchResults queries the aggregator, resolving external IDs to a title
// first when no free-text query was given. The second return value is false
// when the upstream call failed, so the caller can avoid caching the miss.
func (s *Service) fetchResults(ctx context.Context, req Request) ([]seedfilter.Result, bool) {
	query := req.Query

	if query == "" {
		switch {
		case req.ImdbID != "" && s.radarr.Configured():
			if title, err := s.radarr.LookupMovieTitle(ctx, req.ImdbID); err != nil {
				log.Error().Err(err).Str("imdbid", req.ImdbID).Msg("radarr title lookup failed")
			} else if title != "" {
				query = title
				log.Info().Str("imdbid", req.ImdbID).Str("title", title).Msg("using radarr title lookup")
			}
		case req.TvdbID != "" && s.sonarr.Configured():
			if title, err := s.sonarr.LookupSeriesTitle(ctx, req.TvdbID); err != nil {
				log.Error().Err(err).Str("tvdbid", req.TvdbID).Msg("sonarr title lookup failed")
			} else if title != "" {
				query = title
				log.Info().Str("tvdbid", req.TvdbID).Str("title", title).Msg("using sonarr title lookup")
			}
		}
	}

	hydraReq := nzbhydra.SearchRequest{
		Query:    query,
		Category: torznab.HydraCategory(req.Category),
		Season:   req.Season,
		Episode:  req.Episode,
		ImdbID:   arr.EnsureIMDbPrefix(req.ImdbID),
		TvdbID:   req.TvdbID,
	}

	response, err := s.hydra.Search(ctx, hydraReq)
	if err != nil {
		s.metrics.IncUpstreamErrors()
		log.Error().Err(err).Str("query", query).Msg("nzbhydra search failed")
		return nil, false
	}

	log.Info().
		Int("results", len(response.SearchResults)).
		Int("available", response.NumberOfAvailableResults).
		Msg("nzbhydra returned results")

	return convertResults(response.SearchResults), true
}

// filterByRequestedIDs keeps only results matching the requested external ID.
// IMDb wins when both are present, matching how callers pair the IDs.
func filterByRequestedIDs(results []seedfilter.Result, req Request) []seedfilter.Result {
	switch {
	case req.ImdbID != "":
		wanted := arr.EnsureIMDbPrefix(req.ImdbID)
		kept := make([]seedfilter.Result, 0, len(results))
		for _, result := range results {
			if result.ImdbID == wanted {
				kept = append(kept, result)
			}
		}
		log.Info().Int("results", len(kept)).Str("imdbid", wanted).Msg("filtered results by IMDb ID")
		return kept
	case req.TvdbID != "":
		kept := make([]seedfilter.Result, 0, len(results))
		for _, result := range results {
			if result.TvdbID == req.TvdbID {
				kept = append(kept, result)
			}
		}
		log.Info().Int("results", len(kept)).Str("tvdbid", req.TvdbID).Msg("filtered results by TVDb ID")
		return kept
	default:
		return results
	}
}

// convertResults maps aggregator records onto the engine's result type.
// Missing fields keep their zero values; conversion never fails.
func convertResults(raw []nzbhydra.SearchResult) []seedfilter.Result {
	results := make([]seedfilter.Result, 0, len(raw))
	for _, entry := range raw {
		pubDate := entry.PubDate
		if pubDate == "" {
			pubDate = entry.Date
		}

		downloadFactor := rawToString(entry.DownloadVolumeFactor)
		if downloadFactor == "" {
			downloadFactor = rawToString(entry.TorrentDownloadFactor)
		}

		results = append(results, seedfilter.Result{
			Title:                entry.Title,
			Size:                 entry.Size,
			Indexer:              entry.Indexer,
			DownloadLink:         entry.Link,
			GUID:                 entry.SearchResultID,
			Details:              entry.DetailsLink,
			Category:             entry.Category,
			Seeders:              entry.Seeders,
			Peers:                entry.Peers,
			Grabs:                entry.Grabs,
			PublishDate:          pubDate,
			DownloadVolumeFactor: downloadFactor,
			ImdbID:               entry.ImdbID,
			TvdbID:               rawToString(entry.TvdbID),
		})
	}
	return results
}

// rawToString renders a JSON value that may arrive as a string or a number
// as its plain string form.
func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "null" {
		return ""
	}
	return trimmed
}
