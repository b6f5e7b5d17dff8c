// Package version holds build metadata injected at link time.
package version

import "fmt"

// Set via -ldflags at build time.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns a human-readable version line.
func String() string {
	return fmt.Sprintf("mug-studio %s (%s, built %s)", Version, GitCommit, BuildTime)
}
