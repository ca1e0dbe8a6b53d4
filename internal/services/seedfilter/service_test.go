// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package seedfilter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movieCategoryMapper(string) string { return "2000" }

func crossSeedFixture() []Result {
	return []Result{
		{Title: "Movie.Name.2024.1080p", Size: mb(2000), Indexer: "A", DownloadLink: "http://a/dl", Category: "Movies HD"},
		{Title: "Movie.Name.2024.1080p", Size: mb(2000), Indexer: "B", DownloadLink: "http://b/dl", Category: "Movies HD"},
		{Title: "Movie.Name.2024.1080p", Size: mb(2000), Indexer: "C", DownloadLink: "http://c/dl", Category: "Movies HD"},
		{Title: "movie name 2024 1080p", Size: mb(2005), Indexer: "D", DownloadLink: "http://d/dl", Category: "Movies HD"},
		{Title: "movie name 2024 1080p", Size: mb(2005), Indexer: "E", DownloadLink: "http://e/dl", Category: "Movies HD"},
	}
}

func TestService_Evaluate_CrossSeedGroup(t *testing.T) {
	t.Parallel()

	svc := NewService(2, nil, movieCategoryMapper, time.Minute)

	results := svc.Evaluate(crossSeedFixture(), nil, "fp-1")

	// Title variants and the 5 MB size drift land in one bucket, so the
	// whole set survives as a single cross-seedable group.
	require.Len(t, results, 5)

	indexers := make([]string, 0, len(results))
	for _, result := range results {
		indexers = append(indexers, result.Indexer)
	}
	assert.ElementsMatch(t, []string{"A", "B", "C", "D", "E"}, indexers)
}

func TestService_Evaluate_ThresholdNotMet(t *testing.T) {
	t.Parallel()

	svc := NewService(6, nil, movieCategoryMapper, time.Minute)

	results := svc.Evaluate(crossSeedFixture(), nil, "fp-2")
	assert.Empty(t, results)
}

func TestService_Evaluate_CachesUnderFingerprint(t *testing.T) {
	t.Parallel()

	svc := NewService(2, nil, movieCategoryMapper, time.Minute)

	_, ok := svc.Cached("fp-3")
	require.False(t, ok)

	evaluated := svc.Evaluate(crossSeedFixture(), nil, "fp-3")

	cached, ok := svc.Cached("fp-3")
	require.True(t, ok)
	assert.Equal(t, evaluated, cached)
}

func TestService_Evaluate_CategoryFilter(t *testing.T) {
	t.Parallel()

	mapper := func(category string) string {
		if category == "TV HD" {
			return "5040"
		}
		return "2040"
	}
	svc := NewService(2, nil, mapper, time.Minute)

	raw := []Result{
		{Title: "Show.S01.1080p", Size: mb(500), Indexer: "A", DownloadLink: "http://a", Category: "TV HD"},
		{Title: "Show.S01.1080p", Size: mb(500), Indexer: "B", DownloadLink: "http://b", Category: "TV HD"},
		{Title: "Film.2024.1080p", Size: mb(500), Indexer: "C", DownloadLink: "http://c", Category: "Movies HD"},
		{Title: "Film.2024.1080p", Size: mb(500), Indexer: "D", DownloadLink: "http://d", Category: "Movies HD"},
	}

	tests := []struct {
		name          string
		requestedCats []string
		wantIndexers  []string
	}{
		{name: "no categories keeps all", requestedCats: nil, wantIndexers: []string{"A", "B", "C", "D"}},
		{name: "exact code match", requestedCats: []string{"5040"}, wantIndexers: []string{"A", "B"}},
		{name: "parent category matches children", requestedCats: []string{"5000"}, wantIndexers: []string{"A", "B"}},
		{name: "movie parent", requestedCats: []string{"2000"}, wantIndexers: []string{"C", "D"}},
		{name: "no overlap", requestedCats: []string{"3000"}, wantIndexers: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			results := svc.Evaluate(raw, tt.requestedCats, "fp-cat-"+tt.name)

			indexers := make([]string, 0, len(results))
			for _, result := range results {
				indexers = append(indexers, result.Indexer)
			}
			assert.ElementsMatch(t, tt.wantIndexers, indexers)
		})
	}
}

func TestService_Evaluate_DeduplicatesLinks(t *testing.T) {
	t.Parallel()

	svc := NewService(2, nil, movieCategoryMapper, time.Minute)

	raw := []Result{
		{Title: "Movie.2024", Size: mb(2000), Indexer: "A", DownloadLink: "http://same/dl"},
		{Title: "Movie.2024", Size: mb(2000), Indexer: "B", DownloadLink: "http://same/dl"},
		{Title: "Movie.2024", Size: mb(2000), Indexer: "C", DownloadLink: "http://other/dl"},
	}

	results := svc.Evaluate(raw, nil, "fp-dedup")

	require.Len(t, results, 2)
	assert.Equal(t, "A", results[0].Indexer)
	assert.Equal(t, "C", results[1].Indexer)
}

func TestService_Evaluate_PrivateTrackerAnnotation(t *testing.T) {
	t.Parallel()

	svc := NewService(2, []string{"PrivA"}, movieCategoryMapper, time.Minute)
	require.True(t, svc.PrivateTrackersConfigured())

	raw := []Result{
		{Title: "Movie.2024", Size: mb(2000), Indexer: "PrivA", DownloadLink: "http://a"},
		{Title: "Movie.2024", Size: mb(2000), Indexer: "PubB", DownloadLink: "http://b"},
	}

	results := svc.Evaluate(raw, nil, "fp-priv")

	require.Len(t, results, 2)
	for _, result := range results {
		require.NotNil(t, result.TrackerCounts)
		assert.Equal(t, 1, result.TrackerCounts.Private)
		assert.Equal(t, 1, result.TrackerCounts.Public)
	}
}

func TestNewService_MinDuplicatesFloor(t *testing.T) {
	t.Parallel()

	svc := NewService(0, nil, movieCategoryMapper, time.Minute)
	assert.Equal(t, 1, svc.MinDuplicates())
}
