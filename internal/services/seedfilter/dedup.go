// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package seedfilter

// DeduplicateByLink removes results whose download link was already seen
// earlier in the sequence, keeping the first occurrence and the original
// order. An empty link carries no identity, so such results are always
// retained.
func DeduplicateByLink(results []Result) []Result {
	if len(results) == 0 {
		return results
	}

	seen := make(map[string]struct{}, len(results))
	unique := make([]Result, 0, len(results))

	for _, result := range results {
		if result.DownloadLink == "" {
			unique = append(unique, result)
			continue
		}
		if _, exists := seen[result.DownloadLink]; exists {
			continue
		}
		seen[result.DownloadLink] = struct{}{}
		unique = append(unique, result)
	}

	return unique
}
