// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package seedfilter implements the cross-seed filtering engine: grouping raw
// search results into release equivalence classes, keeping only the classes
// available on enough trackers, deduplicating by download link, and caching
// the outcome per search intent.
package seedfilter

import (
	"time"

	"github.com/rs/zerolog/log"
)

// CategoryMapper maps a free-text category to its Torznab numeric code. The
// lookup table itself lives outside this package; the engine only needs the
// function.
type CategoryMapper func(category string) string

// Service ties the pipeline stages together for one process. Grouping,
// filtering and deduplication are pure per-request work; the cache is the
// only shared state.
type Service struct {
	minDuplicates   int
	privateTrackers map[string]struct{}
	mapCategory     CategoryMapper
	titles          *TitleCache
	cache           *Cache
}

// NewService creates the filtering engine. minDuplicates values below 1 are
// raised to 1 so a misconfigured threshold never drops everything.
func NewService(minDuplicates int, privateTrackers []string, mapCategory CategoryMapper, cacheTTL time.Duration, opts ...CacheOption) *Service {
	if minDuplicates < 1 {
		minDuplicates = 1
	}

	trackerSet := make(map[string]struct{}, len(privateTrackers))
	for _, tracker := range privateTrackers {
		if tracker == "" {
			continue
		}
		trackerSet[tracker] = struct{}{}
	}

	return &Service{
		minDuplicates:   minDuplicates,
		privateTrackers: trackerSet,
		mapCategory:     mapCategory,
		titles:          NewTitleCache(),
		cache:           NewCache(cacheTTL, opts...),
	}
}

// PrivateTrackersConfigured reports whether a private-tracker set is in effect.
func (s *Service) PrivateTrackersConfigured() bool {
	return len(s.privateTrackers) > 0
}

// MinDuplicates returns the configured duplicate threshold.
func (s *Service) MinDuplicates() int {
	return s.minDuplicates
}

// Cached returns the previously evaluated result list for the fingerprint,
// sweeping expired entries first.
func (s *Service) Cached(fingerprint string) ([]Result, bool) {
	s.cache.Sweep()
	return s.cache.Get(fingerprint)
}

// Evaluate runs the full pipeline over one raw result set: grouping,
// cross-seed filtering, category filtering, deduplication, then stores the
// outcome under the given fingerprint. It returns the complete filtered list;
// pagination is the caller's concern. Every stage is total, so an odd input
// can shrink the output but never abort the query.
func (s *Service) Evaluate(rawResults []Result, requestedCats []string, fingerprint string) []Result {
	groups := GroupResults(rawResults, s.titles)
	log.Info().
		Int("results", len(rawResults)).
		Int("groups", len(groups)).
		Msg("grouped results into unique releases")

	filtered := FilterCrossSeedable(groups, s.minDuplicates, s.privateTrackers)
	log.Info().
		Int("crossSeedable", len(filtered)).
		Int("minDuplicates", s.minDuplicates).
		Msg("filtered to cross-seedable results")

	if len(requestedCats) > 0 {
		filtered = s.filterCategories(filtered, requestedCats)
		log.Info().
			Int("results", len(filtered)).
			Strs("categories", requestedCats).
			Msg("filtered results by requested categories")
	}

	before := len(filtered)
	filtered = DeduplicateByLink(filtered)
	if len(filtered) < before {
		log.Info().
			Int("before", before).
			Int("after", len(filtered)).
			Msg("removed duplicate download links")
	}

	s.cache.Set(fingerprint, filtered)

	return filtered
}

// filterCategories keeps results whose mapped Torznab code matches one of the
// requested codes, either exactly or by parent category (e.g. 2040 matches a
// request for 2000).
func (s *Service) filterCategories(results []Result, requestedCats []string) []Result {
	requested := make(map[string]struct{}, len(requestedCats))
	for _, cat := range requestedCats {
		if cat == "" {
			continue
		}
		requested[cat] = struct{}{}
	}
	if len(requested) == 0 {
		return results
	}

	kept := make([]Result, 0, len(results))
	for _, result := range results {
		code := s.mapCategory(result.Category)
		if _, ok := requested[code]; ok {
			kept = append(kept, result)
			continue
		}
		if len(code) == 4 {
			if _, ok := requested[code[:1]+"000"]; ok {
				kept = append(kept, result)
			}
		}
	}

	return kept
}
