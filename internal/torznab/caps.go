// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package torznab

import "encoding/xml"

// Caps is the Torznab capabilities document advertised on t=caps.
type Caps struct {
	XMLName    xml.Name       `xml:"caps"`
	Server     CapsServer     `xml:"server"`
	Limits     CapsLimits     `xml:"limits"`
	Searching  CapsSearching  `xml:"searching"`
	Categories []CapsCategory `xml:"categories>category"`
}

type CapsServer struct {
	Version string `xml:"version,attr"`
	Title   string `xml:"title,attr"`
}

type CapsLimits struct {
	Max     string `xml:"max,attr"`
	Default string `xml:"default,attr"`
}

type CapsSearching struct {
	Search      CapsSearch `xml:"search"`
	TVSearch    CapsSearch `xml:"tv-search"`
	MovieSearch CapsSearch `xml:"movie-search"`
}

type CapsSearch struct {
	Available       string `xml:"available,attr"`
	SupportedParams string `xml:"supportedParams,attr"`
}

type CapsCategory struct {
	ID      string       `xml:"id,attr"`
	Name    string       `xml:"name,attr"`
	Subcats []CapsSubcat `xml:"subcat,omitempty"`
}

type CapsSubcat struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

// DefaultCaps describes what this proxy supports: plain, TV, and movie
// search with the standard category tree.
func DefaultCaps() Caps {
	return Caps{
		Server: CapsServer{Version: "1.0", Title: "Seedable"},
		Limits: CapsLimits{Max: "100", Default: "100"},
		Searching: CapsSearching{
			Search:      CapsSearch{Available: "yes", SupportedParams: "q"},
			TVSearch:    CapsSearch{Available: "yes", SupportedParams: "q,season,ep,tvdbid"},
			MovieSearch: CapsSearch{Available: "yes", SupportedParams: "q,imdbid"},
		},
		Categories: []CapsCategory{
			{
				ID: "2000", Name: "Movies",
				Subcats: []CapsSubcat{
					{ID: "2010", Name: "Movies/Foreign"},
					{ID: "2020", Name: "Movies/Other"},
					{ID: "2030", Name: "Movies/SD"},
					{ID: "2040", Name: "Movies/HD"},
					{ID: "2045", Name: "Movies/UHD"},
					{ID: "2050", Name: "Movies/BluRay"},
					{ID: "2060", Name: "Movies/3D"},
				},
			},
			{
				ID: "5000", Name: "TV",
				Subcats: []CapsSubcat{
					{ID: "5020", Name: "TV/Foreign"},
					{ID: "5030", Name: "TV/SD"},
					{ID: "5040", Name: "TV/HD"},
					{ID: "5045", Name: "TV/UHD"},
					{ID: "5050", Name: "TV/Other"},
					{ID: "5060", Name: "TV/Sport"},
					{ID: "5070", Name: "TV/Anime"},
					{ID: "5080", Name: "TV/Documentary"},
				},
			},
			{
				ID: "3000", Name: "Audio",
				Subcats: []CapsSubcat{
					{ID: "3010", Name: "Audio/MP3"},
					{ID: "3020", Name: "Audio/Video"},
					{ID: "3030", Name: "Audio/Audiobook"},
					{ID: "3040", Name: "Audio/Lossless"},
				},
			},
			{ID: "1000", Name: "Console"},
			{ID: "4000", Name: "PC"},
			{ID: "6000", Name: "XXX"},
			{ID: "7000", Name: "Books"},
			{ID: "8000", Name: "Other"},
		},
	}
}
