// Package buildinfo carries version metadata stamped in via ldflags.
package buildinfo

var (
	// Version is set via ldflags during build.
	Version = "dev"
	// Commit is set via ldflags during build.
	Commit = "none"
	// Date is set via ldflags during build.
	Date = "unknown"
)
