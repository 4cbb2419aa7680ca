/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Name is the binary name shown in version output and sent to AWS
const Name = "stackpreview"

// Build-time variables (populated via -ldflags during build)
var (
	// Version is the semantic version of stackpreview (e.g., "v1.0.0" or "1.0.0+a1b2c3d")
	Version = "dev"

	// GitCommit is the short git commit hash (e.g., "a1b2c3d")
	GitCommit = "unknown"

	// BuildDate is when the binary was built (e.g., "2025-01-27 14:30:45 UTC")
	BuildDate = "unknown"
)

// Runtime variables
var (
	GoVersion = runtime.Version()
	Platform  = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
)

// Info returns formatted version information for display to users
func Info() string {
	return fmt.Sprintf(`%s %s
  Git commit: %s
  Build date: %s
  Go version: %s
  Platform:   %s`, Name, Version, GitCommit, BuildDate, GoVersion, Platform)
}

// Short returns just the version string without additional metadata
func Short() string {
	return Version
}

// AppID identifies this tool in AWS request user agents. The SDK limits it to 50 characters.
func AppID() string {
	id := Name + "-" + strings.NewReplacer("+", "-", " ", "-").Replace(Version)
	if len(id) > 50 {
		id = id[:50]
	}
	return id
}
