// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package seedfilter

import (
	"regexp"
	"strings"
	"time"

	"github.com/autobrr/autobrr/pkg/ttlcache"
)

var (
	separatorRe   = regexp.MustCompile(`[._-]+`)
	boilerplateRe = regexp.MustCompile(`\bwww\s+\w+\s+(org|com|net)\b`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// NormalizeTitle canonicalizes a release title for comparison: lowercase,
// dot/underscore/hyphen separators collapsed to single spaces, site
// boilerplate of the form "www <word> org|com|net" removed, whitespace runs
// collapsed and trimmed. Word order is preserved, so reordered titles stay
// distinct.
func NormalizeTitle(title string) string {
	normalized := strings.ToLower(title)
	normalized = separatorRe.ReplaceAllString(normalized, " ")
	normalized = boilerplateRe.ReplaceAllString(normalized, "")
	normalized = whitespaceRe.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}

// TitleCache provides cached title normalization so repeated titles across
// indexers are not re-normalized on every query.
type TitleCache struct {
	cache *ttlcache.Cache[string, string]
}

// NewTitleCache creates a new title cache with 5 minute expiration
func NewTitleCache() *TitleCache {
	cache := ttlcache.New(ttlcache.Options[string, string]{}.
		SetDefaultTTL(5 * time.Minute))

	return &TitleCache{
		cache: cache,
	}
}

// Normalize normalizes a title, with caching
func (tc *TitleCache) Normalize(title string) string {
	if cached, found := tc.cache.Get(title); found {
		return cached
	}

	normalized := NormalizeTitle(title)
	tc.cache.Set(title, normalized, ttlcache.DefaultTTL)

	return normalized
}

// Clear removes a specific entry from cache
func (tc *TitleCache) Clear(title string) {
	tc.cache.Delete(title)
}
