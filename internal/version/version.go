package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version of timerd. It can be overridden via ldflags.
	Version = "0.1.0"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns a human-readable version string with commit, build time and Go version.
func Full() string {
	return fmt.Sprintf("timerd %s (commit: %s, built at: %s, %s)", Version, Commit, BuildTime, runtime.Version())
}

// KV returns the build metadata as key-value pairs for structured logs.
func KV() []any {
	return []any{"version", Version, "commit", Commit, "build_time", BuildTime}
}
