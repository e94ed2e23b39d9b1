// Package version records the build fingerprint of the ion diagnostics
// toolchain.
package version

import (
	"strings"

	"github.com/fatih/color"
)

// Release metadata. A plain `go build` leaves the optional fields empty;
// release builds inject them via -ldflags.
var (
	// Version is the semantic version of the toolchain. The core segments
	// are colorized when ANSI output is enabled.
	Version = Render("0.2.0-dev")

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var segmentColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Render colorizes the major.minor.patch segments of a semantic version,
// one color per segment. A pre-release suffix after '-' stays plain, and
// segments beyond the third keep the last color.
func Render(v string) string {
	core, suffix, found := strings.Cut(v, "-")
	segments := strings.Split(core, ".")
	var b strings.Builder
	for i, seg := range segments {
		if i > 0 {
			b.WriteByte('.')
		}
		c := segmentColors[min(i, len(segmentColors)-1)]
		b.WriteString(c.Sprint(seg))
	}
	if found {
		b.WriteByte('-')
		b.WriteString(suffix)
	}
	return b.String()
}
