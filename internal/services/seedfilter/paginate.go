// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package seedfilter

const (
	// DefaultLimit is the page size used when the caller does not specify one.
	DefaultLimit = 100
	// MaxLimit caps the page size regardless of what the caller requests.
	MaxLimit = 100
)

// Paginate returns the slice [offset, offset+limit) clamped to the bounds of
// results. A negative offset is treated as 0, a negative limit falls back to
// DefaultLimit, and requests beyond MaxLimit are capped. An explicit zero
// limit is honored and yields an empty page, as does an out-of-range offset.
func Paginate(results []Result, offset, limit int) []Result {
	if offset < 0 {
		offset = 0
	}
	if limit == 0 {
		return []Result{}
	}
	if limit < 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	if offset >= len(results) {
		return []Result{}
	}

	end := offset + limit
	if end > len(results) {
		end = len(results)
	}

	return results[offset:end]
}
