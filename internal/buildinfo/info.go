// Package buildinfo carries the version metadata stamped at link time with
// -ldflags "-X github.com/soldes-dev/soldes/internal/buildinfo.Version=...".
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String renders the metadata as shown by "soldes --version".
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
