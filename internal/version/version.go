package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build metadata, overridable with -ldflags "-X phpsniff/internal/version.Version=...".
var (
	// Version is the semantic version. It is part of the disk cache key.
	Version = "0.1.0-dev"

	GitCommit  = ""
	GitMessage = ""
	// BuildDate is ISO-8601 when set.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Pretty renders Version with each numeric component coloured. Colours follow
// color.NoColor, so the plain string is returned when output is not a terminal.
func Pretty() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}
