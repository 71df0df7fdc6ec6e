package oasnorm

import (
	"fmt"
	"runtime"
)

var (
	// version is set via ldflags during build by GoReleaser.
	// For development builds, this will show "dev".
	version = "dev"
	// commit is set via ldflags during build by GoReleaser.
	commit = "unknown"
	// buildTime is set via ldflags during build by GoReleaser, in RFC3339 format.
	buildTime = "unknown"
)

// Version returns the compiled version or 'dev' if run from source.
func Version() string {
	return version
}

// Commit returns the git commit hash the binary was built from, or 'unknown'.
func Commit() string {
	return commit
}

// BuildTime returns the RFC3339 build timestamp, or 'unknown' if run from source.
func BuildTime() string {
	return buildTime
}

// GoVersion returns the Go runtime version used to build the binary.
func GoVersion() string {
	return runtime.Version()
}

// UserAgent returns the User-Agent string to use for outbound HTTP requests.
func UserAgent() string {
	return fmt.Sprintf("oasnorm/%s", version)
}

// BuildInfo returns a human-readable summary of the build metadata.
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild Time: %s\nGo Version: %s",
		version, commit, buildTime, GoVersion())
}
