// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package buildinfo exposes build-time version metadata.
package buildinfo

import (
	"encoding/json"
	"fmt"
	"runtime"
)

// Populated via -ldflags at release build time.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// UserAgent identifies this service in outbound HTTP requests.
var UserAgent string

func init() {
	UserAgent = fmt.Sprintf("seedable/%s (%s %s)", Version, runtime.GOOS, runtime.GOARCH)
}

// String returns a human-readable build summary.
func String() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild date: %s\n", Version, Commit, Date)
}

// JSON returns the build metadata as a JSON document.
func JSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"version": Version,
		"commit":  Commit,
		"date":    Date,
	})
}
