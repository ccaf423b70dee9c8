// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Zindekal is the canonical application identifier used for filesystem paths and CLI branding.
	Zindekal = "zindekal"

	// Title is the heading shown at the top of the break overlay.
	Title = "Zinde Kal"

	// Version is the current application semantic version string.
	Version = "0.1.0"
)
