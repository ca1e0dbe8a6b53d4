// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package seedfilter

// GroupResults partitions results into release groups keyed by normalized
// title and size bucket. Single pass; input order is preserved within each
// group. A missing title or size simply yields the empty-title or zero-size
// key, never an error.
func GroupResults(results []Result, titles *TitleCache) map[GroupKey][]Result {
	groups := make(map[GroupKey][]Result)

	for _, result := range results {
		key := GroupKey{
			Title:  titles.Normalize(result.Title),
			Bucket: SizeBucket(result.Size),
		}
		groups[key] = append(groups[key], result)
	}

	return groups
}
