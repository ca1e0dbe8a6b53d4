// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package torznab

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genie-coder21/seedable/internal/services/seedfilter"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC)
}

func TestFormatRFC822Date(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "iso with offset", raw: "2024-03-01T10:00:00+02:00", want: "Fri, 01 Mar 2024 08:00:00 +0000"},
		{name: "iso zulu", raw: "2024-03-01T10:00:00Z", want: "Fri, 01 Mar 2024 10:00:00 +0000"},
		{name: "iso without zone", raw: "2024-03-01T10:00:00", want: "Fri, 01 Mar 2024 10:00:00 +0000"},
		{name: "day first", raw: "01-03-2024 10:00", want: "Fri, 01 Mar 2024 10:00:00 +0000"},
		{name: "empty falls back to now", raw: "", want: "Sat, 15 Jun 2024 12:30:00 +0000"},
		{name: "garbage falls back to now", raw: "not a date", want: "Sat, 15 Jun 2024 12:30:00 +0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatRFC822Date(tt.raw, fixedNow))
		})
	}
}

func TestBuildFeed(t *testing.T) {
	t.Parallel()

	results := []seedfilter.Result{
		{
			Title:        "Movie.Name.2024.1080p",
			Size:         2097152000,
			Indexer:      "TrackerA",
			DownloadLink: "http://tracker-a/dl/1",
			GUID:         "abc123",
			Details:      "http://tracker-a/details/1",
			Category:     "Movies HD",
			Seeders:      42,
			Peers:        7,
			Grabs:        100,
			PublishDate:  "2024-03-01T10:00:00Z",
		},
	}

	feed := BuildFeed(results, FeedOptions{Link: "http://localhost:5000", Now: fixedNow})

	assert.Equal(t, "2.0", feed.Version)
	assert.Equal(t, "http://torznab.com/schemas/2015/feed", feed.TorznabXMLNS)
	assert.Equal(t, "http://localhost:5000", feed.Channel.Link)

	require.Len(t, feed.Channel.Items, 1)
	item := feed.Channel.Items[0]

	assert.Equal(t, "Movie.Name.2024.1080p", item.Title)
	assert.Equal(t, "abc123", item.GUID)
	assert.Equal(t, "http://tracker-a/dl/1", item.Link)
	assert.Equal(t, "http://tracker-a/dl/1", item.Enclosure.URL)
	assert.Equal(t, "2097152000", item.Enclosure.Length)
	assert.Equal(t, "application/x-bittorrent", item.Enclosure.Type)
	assert.Equal(t, "http://tracker-a/details/1", item.Comments)
	assert.Equal(t, "Fri, 01 Mar 2024 10:00:00 +0000", item.PubDate)
	assert.Equal(t, "2040", item.Category)
	assert.Equal(t, "Tracker: TrackerA", item.Description)

	attrs := make(map[string]string, len(item.Attrs))
	for _, attr := range item.Attrs {
		attrs[attr.Name] = attr.Value
	}
	assert.Equal(t, "2097152000", attrs["size"])
	assert.Equal(t, "2040", attrs["category"])
	assert.Equal(t, "42", attrs["seeders"])
	assert.Equal(t, "7", attrs["peers"])
	assert.Equal(t, "100", attrs["grabs"])
	assert.Equal(t, "1", attrs["downloadvolumefactor"])
	assert.Equal(t, "1", attrs["uploadvolumefactor"])
	assert.Equal(t, "TrackerA", attrs["indexer"])
}

func TestBuildFeed_TrackerCountAnnotation(t *testing.T) {
	t.Parallel()

	results := []seedfilter.Result{
		{Title: "Movie.Name.2024", TrackerCounts: &seedfilter.TrackerCounts{Private: 1, Public: 2}},
	}

	annotated := BuildFeed(results, FeedOptions{AnnotateTrackerCounts: true, Now: fixedNow})
	require.Len(t, annotated.Channel.Items, 1)
	assert.Equal(t, "[PRI:1 PUB:2] Movie.Name.2024", annotated.Channel.Items[0].Title)

	plain := BuildFeed(results, FeedOptions{AnnotateTrackerCounts: false, Now: fixedNow})
	assert.Equal(t, "Movie.Name.2024", plain.Channel.Items[0].Title)
}

func TestBuildFeed_GUIDFallsBackToIndex(t *testing.T) {
	t.Parallel()

	results := []seedfilter.Result{
		{Title: "First"},
		{Title: "Second", GUID: "real-guid"},
		{Title: "Third"},
	}

	feed := BuildFeed(results, FeedOptions{Now: fixedNow})

	require.Len(t, feed.Channel.Items, 3)
	assert.Equal(t, "0", feed.Channel.Items[0].GUID)
	assert.Equal(t, "real-guid", feed.Channel.Items[1].GUID)
	assert.Equal(t, "2", feed.Channel.Items[2].GUID)
}

func TestBuildFeed_FreelechZeroesDownloadFactor(t *testing.T) {
	t.Parallel()

	results := []seedfilter.Result{
		{Title: "Freebie", DownloadVolumeFactor: "Freelech"},
		{Title: "Paid", DownloadVolumeFactor: "1"},
	}

	feed := BuildFeed(results, FeedOptions{Now: fixedNow})
	require.Len(t, feed.Channel.Items, 2)

	factor := func(item Item) string {
		for _, attr := range item.Attrs {
			if attr.Name == "downloadvolumefactor" {
				return attr.Value
			}
		}
		return ""
	}

	assert.Equal(t, "0", factor(feed.Channel.Items[0]))
	assert.Equal(t, "1", factor(feed.Channel.Items[1]))
}

func TestBuildFeed_UnknownIndexer(t *testing.T) {
	t.Parallel()

	feed := BuildFeed([]seedfilter.Result{{Title: "No Tracker"}}, FeedOptions{Now: fixedNow})

	require.Len(t, feed.Channel.Items, 1)
	assert.Equal(t, "Tracker: Unknown", feed.Channel.Items[0].Description)
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	feed := BuildFeed([]seedfilter.Result{{Title: "Movie", GUID: "g1"}}, FeedOptions{Now: fixedNow})

	body, err := Marshal(feed)
	require.NoError(t, err)

	out := string(body)
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `xmlns:torznab="http://torznab.com/schemas/2015/feed"`)
	assert.Contains(t, out, "<torznab:attr ")
	assert.Contains(t, out, "<title>Movie</title>")
}

func TestDefaultCaps(t *testing.T) {
	t.Parallel()

	caps := DefaultCaps()

	assert.Equal(t, "100", caps.Limits.Default)
	assert.Equal(t, "100", caps.Limits.Max)
	assert.Equal(t, "Seedable", caps.Server.Title)
	assert.Equal(t, "yes", caps.Searching.MovieSearch.Available)
	require.NotEmpty(t, caps.Categories)

	var foundMovies, foundTV bool
	for _, cat := range caps.Categories {
		switch cat.ID {
		case "2000":
			foundMovies = true
			assert.Equal(t, "Movies", cat.Name)
		case "5000":
			foundTV = true
			assert.Equal(t, "TV", cat.Name)
		}
	}
	assert.True(t, foundMovies)
	assert.True(t, foundTV)

	body, err := Marshal(caps)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<caps>")
}
