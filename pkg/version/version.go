// Package version exposes build metadata injected via -ldflags.
package version

import "fmt"

// Build metadata. Overridden at build time with
// -ldflags "-X github.com/rshade/homeenergy/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // ldflags targets must be package variables.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the semantic version of the binary.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// UserAgent is the User-Agent sent to the backend.
func UserAgent() string {
	return fmt.Sprintf("homeenergy/%s", version)
}
