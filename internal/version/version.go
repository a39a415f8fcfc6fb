package version

import "github.com/fatih/color"

// Version information for the deftuple CLI.
// These variables can be overridden at build time via -ldflags.

const (
	versionMajor  = "0"
	versionMinor  = "1"
	versionPatch  = "0"
	versionSuffix = "-dev"
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = versionMajorColor.Sprint(versionMajor) + "." +
		versionMinorColor.Sprint(versionMinor) + "." +
		versionPatchColor.Sprint(versionPatch) + versionSuffix

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Plain returns the version string without color escapes.
func Plain() string {
	return versionMajor + "." + versionMinor + "." + versionPatch + versionSuffix
}
