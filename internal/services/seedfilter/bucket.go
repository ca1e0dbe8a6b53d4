// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package seedfilter

import "math"

const bytesPerMB = 1024 * 1024

// SizeBucket maps a size in bytes to a coarse megabyte bucket so that
// releases whose sizes differ only by container or metadata overhead land in
// the same bucket. The bucket width grows with magnitude: 10 MB below 100 MB,
// 50 MB below 1000 MB, 100 MB above that.
//
// Rounding is half away from zero (math.Round), so a size exactly between two
// buckets always rounds up. Bucket boundaries decide grouping membership, so
// this must not change without migrating the tests that pin it.
func SizeBucket(sizeBytes int64) int {
	sizeMB := float64(sizeBytes) / bytesPerMB

	var bucketSize float64
	switch {
	case sizeMB < 100:
		bucketSize = 10
	case sizeMB < 1000:
		bucketSize = 50
	default:
		bucketSize = 100
	}

	return int(math.Round(sizeMB/bucketSize) * bucketSize)
}
