// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package seedfilter

import (
	"github.com/rs/zerolog/log"
)

// FilterCrossSeedable selects the release groups worth cross-seeding and
// flattens them back into a single list.
//
// A group survives when it has at least minDuplicates members and, if private
// trackers are configured, at least one member on a private tracker
// (public-only duplicates are useless for private cross-seeding). Surviving
// results are emitted group-contiguously as augmented copies carrying the
// group's tracker counts; the inputs are never mutated, so results shared
// with concurrent requests stay untouched.
func FilterCrossSeedable(groups map[GroupKey][]Result, minDuplicates int, privateTrackers map[string]struct{}) []Result {
	var crossSeedable []Result

	for key, members := range groups {
		if len(members) < minDuplicates {
			log.Debug().
				Str("title", key.Title).
				Int("matches", len(members)).
				Int("minDuplicates", minDuplicates).
				Msg("group below duplicate threshold, filtered")
			continue
		}

		privateCount := 0
		publicCount := 0
		for _, member := range members {
			if _, ok := privateTrackers[member.Indexer]; ok {
				privateCount++
			} else {
				publicCount++
			}
		}

		if len(privateTrackers) > 0 && privateCount == 0 {
			log.Debug().
				Str("title", key.Title).
				Int("publicCount", publicCount).
				Msg("group has only public trackers, filtered")
			continue
		}

		counts := TrackerCounts{Private: privateCount, Public: publicCount}
		for _, member := range members {
			annotated := member
			annotated.TrackerCounts = &counts
			crossSeedable = append(crossSeedable, annotated)
		}

		log.Debug().
			Str("title", key.Title).
			Int("private", privateCount).
			Int("public", publicCount).
			Msg("group kept as cross-seedable")
	}

	return crossSeedable
}
