// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package arr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureIMDbPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare numeric", input: "0133093", want: "tt0133093"},
		{name: "already prefixed", input: "tt0133093", want: "tt0133093"},
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: "  ", want: ""},
		{name: "trims whitespace", input: " 0133093 ", want: "tt0133093"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, EnsureIMDbPrefix(tt.input))
		})
	}
}

func TestClient_Configured(t *testing.T) {
	t.Parallel()

	var nilClient *Client
	assert.False(t, nilClient.Configured())

	assert.False(t, NewClient(Config{}).Configured())
	assert.False(t, NewClient(Config{Host: "http://radarr:7878"}).Configured())
	assert.False(t, NewClient(Config{APIKey: "key"}).Configured())
	assert.True(t, NewClient(Config{Host: "http://radarr:7878", APIKey: "key"}).Configured())
}

func TestClient_LookupMovieTitle(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/movie/lookup/imdb", r.URL.Path)
		assert.Equal(t, "tt0133093", r.URL.Query().Get("imdbId"))
		assert.Equal(t, "radarr-key", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"The Matrix"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{Host: server.URL, APIKey: "radarr-key", Timeout: 5})

	// A bare numeric ID gets the tt prefix before the request goes out.
	title, err := client.LookupMovieTitle(context.Background(), "0133093")
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", title)
}

func TestClient_LookupMovieTitle_EmptyID(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{Host: "http://radarr:7878", APIKey: "key"})

	_, err := client.LookupMovieTitle(context.Background(), "")
	require.Error(t, err)
}

func TestClient_LookupSeriesTitle(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/series/lookup", r.URL.Path)
		assert.Equal(t, "tvdb:121361", r.URL.Query().Get("term"))
		assert.Equal(t, "sonarr-key", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"title":"Game of Thrones"},{"title":"Other Match"}]`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{Host: server.URL, APIKey: "sonarr-key", Timeout: 5})

	title, err := client.LookupSeriesTitle(context.Background(), "121361")
	require.NoError(t, err)
	assert.Equal(t, "Game of Thrones", title)
}

func TestClient_LookupSeriesTitle_NoMatches(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{Host: server.URL, APIKey: "key", Timeout: 5})

	title, err := client.LookupSeriesTitle(context.Background(), "121361")
	require.NoError(t, err)
	assert.Empty(t, title)
}

func TestClient_LookupErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{Host: server.URL, APIKey: "key", Timeout: 5})

	_, err := client.LookupMovieTitle(context.Background(), "tt0133093")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
