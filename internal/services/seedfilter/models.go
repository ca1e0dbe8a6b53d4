// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package seedfilter

// TrackerCounts describes how many copies of a release live on private vs
// public trackers. It is attached to results that survive cross-seed filtering.
type TrackerCounts struct {
	Private int `json:"private"`
	Public  int `json:"public"`
}

// Result represents a single release offered by one indexer. Fields beyond
// Title, Size and Indexer are carried through the pipeline untouched; the
// filter only ever adds TrackerCounts.
type Result struct {
	Title                string
	Size                 int64
	Indexer              string
	DownloadLink         string
	GUID                 string
	Details              string
	Category             string
	Seeders              int
	Peers                int
	Grabs                int
	PublishDate          string
	DownloadVolumeFactor string
	ImdbID               string
	TvdbID               string

	// TrackerCounts is nil until the result passes the cross-seed filter.
	TrackerCounts *TrackerCounts
}

// GroupKey identifies one release equivalence class. Two results with equal
// keys are treated as the same release available from different trackers.
type GroupKey struct {
	Title  string
	Bucket int
}
