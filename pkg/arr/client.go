// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package arr provides minimal Radarr and Sonarr lookup clients used to turn
// external IDs into searchable titles.
package arr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds the options for constructing a Client.
type Config struct {
	Host       string
	APIKey     string
	Timeout    int
	HTTPClient *http.Client
	UserAgent  string
}

// Client talks to one *arr instance (Radarr or Sonarr); which lookup method
// applies depends on the instance behind the host.
type Client struct {
	host       string
	apiKey     string
	httpClient *http.Client
	userAgent  string
}

// NewClient constructs a new Client using the provided configuration.
func NewClient(cfg Config) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	ua := strings.TrimSpace(cfg.UserAgent)
	if ua == "" {
		ua = "seedable"
	}

	return &Client{
		host:       strings.TrimRight(cfg.Host, "/"),
		apiKey:     cfg.APIKey,
		httpClient: client,
		userAgent:  ua,
	}
}

// Configured reports whether both host and API key are set.
func (c *Client) Configured() bool {
	return c != nil && c.host != "" && c.apiKey != ""
}

// EnsureIMDbPrefix normalizes a bare numeric IMDb ID to its tt-prefixed form.
func EnsureIMDbPrefix(imdbID string) string {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" || strings.HasPrefix(imdbID, "tt") {
		return imdbID
	}
	return "tt" + imdbID
}

type movieResource struct {
	Title string `json:"title"`
}

type seriesResource struct {
	Title string `json:"title"`
}

// LookupMovieTitle resolves an IMDb ID to a movie title via Radarr.
func (c *Client) LookupMovieTitle(ctx context.Context, imdbID string) (string, error) {
	imdbID = EnsureIMDbPrefix(imdbID)
	if imdbID == "" {
		return "", fmt.Errorf("imdb id is required")
	}

	endpoint, err := url.JoinPath(c.host, "api", "v3", "movie", "lookup", "imdb")
	if err != nil {
		return "", fmt.Errorf("failed to build radarr endpoint: %w", err)
	}

	var movie movieResource
	if err := c.getJSON(ctx, endpoint, url.Values{"imdbId": []string{imdbID}}, &movie); err != nil {
		return "", err
	}

	return movie.Title, nil
}

// LookupSeriesTitle resolves a TVDb ID to a series title via Sonarr.
func (c *Client) LookupSeriesTitle(ctx context.Context, tvdbID string) (string, error) {
	tvdbID = strings.TrimSpace(tvdbID)
	if tvdbID == "" {
		return "", fmt.Errorf("tvdb id is required")
	}

	endpoint, err := url.JoinPath(c.host, "api", "v3", "series", "lookup")
	if err != nil {
		return "", fmt.Errorf("failed to build sonarr endpoint: %w", err)
	}

	var series []seriesResource
	if err := c.getJSON(ctx, endpoint, url.Values{"term": []string{"tvdb:" + tvdbID}}, &series); err != nil {
		return "", err
	}

	if len(series) == 0 {
		return "", nil
	}
	return series[0].Title, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, dest any) error {
	if c.httpClient == nil {
		return fmt.Errorf("arr HTTP client is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build arr request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("arr request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("arr returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode arr response: %w", err)
	}

	return nil
}
