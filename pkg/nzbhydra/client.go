// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package nzbhydra provides a minimal client for the NZBHydra2 internal
// search API.
package nzbhydra

import (
	"bytes"
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

// Client provides access to the NZBHydra2 metasearch aggregator.
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
		timeout = 60 * time.Second
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

// SearchRequest is the JSON body for the internal search endpoint. Empty
// fields are omitted so Hydra applies its own defaults.
type SearchRequest struct {
	Query    string `json:"query"`
	Category string `json:"category"`
	Season   string `json:"season,omitempty"`
	Episode  string `json:"episode,omitempty"`
	ImdbID   string `json:"imdbid,omitempty"`
	TvdbID   string `json:"tvdbid,omitempty"`
}

// SearchResponse is the aggregator's search result envelope.
type SearchResponse struct {
	SearchResults            []SearchResult `json:"searchResults"`
	NumberOfAvailableResults int            `json:"numberOfAvailableResults"`
}

// SearchResult is one entry as returned by NZBHydra2. Unknown attributes are
// collected so they can be carried through untouched.
type SearchResult struct {
	Title                 string          `json:"title"`
	Size                  int64           `json:"size"`
	Indexer               string          `json:"indexer"`
	Link                  string          `json:"link"`
	DetailsLink           string          `json:"details_link"`
	SearchResultID        string          `json:"searchResultId"`
	Category              string          `json:"category"`
	Seeders               int             `json:"seeders"`
	Peers                 int             `json:"peers"`
	Grabs                 int             `json:"grabs"`
	PubDate               string          `json:"pubDate"`
	Date                  string          `json:"date"`
	DownloadVolumeFactor  json.RawMessage `json:"downloadVolumeFactor"`
	TorrentDownloadFactor json.RawMessage `json:"torrentDownloadFactor"`
	ImdbID                string          `json:"imdbId"`
	TvdbID                json.RawMessage `json:"tvdbId"`
}

// Search performs a search via the NZBHydra2 internal API.
func (c *Client) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	var response SearchResponse

	if c.httpClient == nil {
		return response, fmt.Errorf("nzbhydra HTTP client is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	endpoint, err := url.JoinPath(c.host, "internalapi", "search")
	if err != nil {
		return response, fmt.Errorf("failed to build nzbhydra endpoint: %w", err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return response, fmt.Errorf("failed to encode nzbhydra request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return response, fmt.Errorf("failed to build nzbhydra request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if c.apiKey != "" {
		query := httpReq.URL.Query()
		query.Set("apikey", c.apiKey)
		httpReq.URL.RawQuery = query.Encode()
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return response, fmt.Errorf("nzbhydra request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return response, fmt.Errorf("nzbhydra returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return response, fmt.Errorf("failed to decode nzbhydra response: %w", err)
	}

	return response, nil
}
