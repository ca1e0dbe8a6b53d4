// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package torznab

import "strings"

// categoryCodes maps free-text aggregator categories to four-digit Torznab
// category codes.
var categoryCodes = map[string]string{
	"movies":          "2000",
	"movies foreign":  "2010",
	"movies other":    "2020",
	"movies sd":       "2030",
	"movies hd":       "2040",
	"movies uhd":      "2045",
	"movies 4k":       "2045",
	"movies bluray":   "2050",
	"movies 3d":       "2060",
	"tv":              "5000",
	"tv foreign":      "5020",
	"tv sd":           "5030",
	"tv hd":           "5040",
	"tv uhd":          "5045",
	"tv 4k":           "5045",
	"tv other":        "5050",
	"tv sport":        "5060",
	"tv anime":        "5070",
	"anime":           "5070",
	"tv documentary":  "5080",
	"audio":           "3000",
	"audio mp3":       "3010",
	"audio video":     "3020",
	"audio audiobook": "3030",
	"audio lossless":  "3040",
	"console":         "1000",
	"pc":              "4000",
	"xxx":             "6000",
	"books":           "7000",
	"other":           "8000",
}

// MapCategory converts a free-text category to its Torznab code. Unknown
// categories fall back to 2000 (Movies), matching what most of the upstream
// feed carries.
func MapCategory(category string) string {
	if code, ok := categoryCodes[strings.ToLower(strings.TrimSpace(category))]; ok {
		return code
	}
	return "2000"
}

// hydraCategories maps the inbound Torznab category code to the category
// name the NZBHydra2 internal search API expects.
var hydraCategories = map[string]string{
	"2000": "Movies",
	"2010": "Movies SD",
	"2040": "Movies HD",
	"2045": "Movies UHD",
	"5000": "TV",
	"5030": "TV SD",
	"5040": "TV HD",
	"5045": "TV UHD",
}

// HydraCategory translates an inbound category code into the aggregator's
// category name, defaulting to "All" when the code is unknown or absent.
func HydraCategory(code string) string {
	if name, ok := hydraCategories[code]; ok {
		return name
	}
	return "All"
}
