// Package buildinfo carries the version stamped into the laporan binary.
package buildinfo

import "fmt"

// Set with -ldflags "-X github.com/cleared-dev/laporan/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String is the value printed by `laporan --version`.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
