package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the ferric CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = versionMajorColor.Sprint("0") + "." + versionMinorColor.Sprint("1") + "." + versionPatchColor.Sprint("0") + "-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Plain returns Version without ANSI color sequences, for machine-readable
// output.
func Plain() string {
	return stripANSI(Version)
}

func stripANSI(s string) string {
	var sb strings.Builder
	skip := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			skip = true
		case skip:
			if r == 'm' {
				skip = false
			}
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
