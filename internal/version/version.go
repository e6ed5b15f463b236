// Package version holds the build metadata of the tally binary. main copies
// its ldflags values here at start-up. `tally --version` prints GetVersionInfo
// after cobra's "tally version" prefix, and `tally version` hands the same
// fields to go-version for its json or yaml output.
package version

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// IsRelease reports whether the binary was built with a release version.
func IsRelease() bool { return Version != "" && Version != "dev" }

// GetVersion is the version string, "dev" for local builds.
func GetVersion() string {
	if !IsRelease() {
		return "dev"
	}
	return Version
}

// GetVersionInfo is the line cobra prints for --version. Commit and date are
// only known for release builds.
func GetVersionInfo() string {
	if !IsRelease() {
		return fmt.Sprintf("dev (%s/%s)", runtime.GOOS, runtime.GOARCH)
	}
	return fmt.Sprintf("%s (commit %s, built %s, %s/%s)",
		Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}
