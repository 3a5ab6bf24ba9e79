package version

import "fmt"

// Build-time variables set by ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// String returns a human-readable version line for CLI output.
func String() string {
	return fmt.Sprintf("receiptly %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
