// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package torznab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		category string
		want     string
	}{
		{name: "movies hd", category: "Movies HD", want: "2040"},
		{name: "case insensitive", category: "MOVIES UHD", want: "2045"},
		{name: "surrounding whitespace", category: "  TV HD  ", want: "5040"},
		{name: "anime alias", category: "Anime", want: "5070"},
		{name: "4k alias", category: "Movies 4K", want: "2045"},
		{name: "audio", category: "Audio Lossless", want: "3040"},
		{name: "unknown falls back to movies", category: "Something Odd", want: "2000"},
		{name: "empty falls back to movies", category: "", want: "2000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapCategory(tt.category))
		})
	}
}

func TestHydraCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "movies root", code: "2000", want: "Movies"},
		{name: "movies hd", code: "2040", want: "Movies HD"},
		{name: "tv root", code: "5000", want: "TV"},
		{name: "tv uhd", code: "5045", want: "TV UHD"},
		{name: "unknown code", code: "7020", want: "All"},
		{name: "empty code", code: "", want: "All"},
		{name: "comma separated list is not a single code", code: "2000,5000", want: "All"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, HydraCategory(tt.code))
		})
	}
}
