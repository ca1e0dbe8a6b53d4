// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package torznab renders filtered search results as Torznab-flavoured RSS
// and maps between the category vocabularies of the inbound API and the
// upstream aggregator.
package torznab

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/genie-coder21/seedable/internal/services/seedfilter"
)

const rfc822Layout = "Mon, 02 Jan 2006 15:04:05 +0000"

// Rss is the root element of a Torznab search response.
type Rss struct {
	XMLName      xml.Name `xml:"rss"`
	Version      string   `xml:"version,attr"`
	TorznabXMLNS string   `xml:"xmlns:torznab,attr"`
	AtomXMLNS    string   `xml:"xmlns:atom,attr"`
	Channel      Channel  `xml:"channel"`
}

// Channel carries the feed metadata and the result items.
type Channel struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
	Items       []Item `xml:"item"`
}

// Item is one release in the feed.
type Item struct {
	Title       string    `xml:"title"`
	GUID        string    `xml:"guid"`
	Link        string    `xml:"link"`
	Enclosure   Enclosure `xml:"enclosure"`
	Comments    string    `xml:"comments"`
	PubDate     string    `xml:"pubDate"`
	Size        string    `xml:"size"`
	Description string    `xml:"description"`
	Category    string    `xml:"category"`
	Attrs       []Attr    `xml:"torznab:attr"`
}

// Enclosure points download clients at the torrent file.
type Enclosure struct {
	URL    string `xml:"url,attr"`
	Length string `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

// Attr is a torznab extension attribute.
type Attr struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// FeedOptions controls how BuildFeed renders results.
type FeedOptions struct {
	// Link is the absolute URL of the proxy, used as the channel link.
	Link string
	// AnnotateTrackerCounts prefixes titles with [PRI:n PUB:m] so download
	// clients show the tracker spread at a glance. Only useful when private
	// trackers are configured.
	AnnotateTrackerCounts bool
	// Now supplies the timestamp for results without a parseable publish
	// date; defaults to time.Now when nil.
	Now func() time.Time
}

// BuildFeed converts filtered results into a Torznab RSS document.
func BuildFeed(results []seedfilter.Result, opts FeedOptions) Rss {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	items := make([]Item, 0, len(results))
	for idx, result := range results {
		title := result.Title
		if opts.AnnotateTrackerCounts && result.TrackerCounts != nil {
			title = fmt.Sprintf("[PRI:%d PUB:%d] %s", result.TrackerCounts.Private, result.TrackerCounts.Public, title)
		}

		guid := result.GUID
		if guid == "" {
			guid = strconv.Itoa(idx)
		}

		size := strconv.FormatInt(result.Size, 10)
		categoryCode := MapCategory(result.Category)

		indexer := result.Indexer
		if indexer == "" {
			indexer = "Unknown"
		}

		downloadFactor := "1"
		if result.DownloadVolumeFactor == "Freelech" {
			downloadFactor = "0"
		}

		items = append(items, Item{
			Title: title,
			GUID:  guid,
			Link:  result.DownloadLink,
			Enclosure: Enclosure{
				URL:    result.DownloadLink,
				Length: size,
				Type:   "application/x-bittorrent",
			},
			Comments:    result.Details,
			PubDate:     FormatRFC822Date(result.PublishDate, now),
			Size:        size,
			Description: "Tracker: " + indexer,
			Category:    categoryCode,
			Attrs: []Attr{
				{Name: "size", Value: size},
				{Name: "category", Value: categoryCode},
				{Name: "seeders", Value: strconv.Itoa(result.Seeders)},
				{Name: "peers", Value: strconv.Itoa(result.Peers)},
				{Name: "grabs", Value: strconv.Itoa(result.Grabs)},
				{Name: "downloadvolumefactor", Value: downloadFactor},
				{Name: "uploadvolumefactor", Value: "1"},
				{Name: "indexer", Value: indexer},
			},
		})
	}

	return Rss{
		Version:      "2.0",
		TorznabXMLNS: "http://torznab.com/schemas/2015/feed",
		AtomXMLNS:    "http://www.w3.org/2005/Atom",
		Channel: Channel{
			Title:       "Seedable - Cross-Seed Filter",
			Description: "Filtered torrents available on 2+ trackers",
			Link:        opts.Link,
			Items:       items,
		},
	}
}

// FormatRFC822Date renders an upstream publish date in the RFC 822 form RSS
// readers expect. ISO 8601 and "02-01-2006 15:04" inputs are recognized;
// anything else falls back to the current time.
func FormatRFC822Date(raw string, now func() time.Time) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now().UTC().Format(rfc822Layout)
	}

	if strings.Contains(raw, "T") {
		candidate := strings.Replace(raw, "Z", "+00:00", 1)
		for _, layout := range []string{"2006-01-02T15:04:05-07:00", "2006-01-02T15:04:05.999999999-07:00", "2006-01-02T15:04:05"} {
			if t, err := time.Parse(layout, candidate); err == nil {
				return t.UTC().Format(rfc822Layout)
			}
		}
	} else if strings.Contains(raw, "-") && strings.Contains(raw, " ") {
		if t, err := time.Parse("02-01-2006 15:04", raw); err == nil {
			return t.UTC().Format(rfc822Layout)
		}
	}

	return now().UTC().Format(rfc822Layout)
}

// Marshal renders an XML document with the standard header.
func Marshal(doc any) ([]byte, error) {
	body, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal torznab document: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
