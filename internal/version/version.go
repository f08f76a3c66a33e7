// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import "fmt"

// Values injected via ldflags:
//
//	-X github.com/olegiv/polysite/internal/version.Version=v1.2.3
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = ""
)

// Info contains build-time version information.
type Info struct {
	Version   string `json:"version"`    // semantic version from git tags
	GitCommit string `json:"git_commit"` // short commit hash
	BuildTime string `json:"build_time,omitempty"`
}

// Current returns the injected build information.
func Current() Info {
	return Info{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime}
}

// String formats the info for -version output.
func (i Info) String() string {
	s := fmt.Sprintf("polysite %s (commit %s)", i.Version, i.GitCommit)
	if i.BuildTime != "" {
		s += ", built " + i.BuildTime
	}
	return s
}
