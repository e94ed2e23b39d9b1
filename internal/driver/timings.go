package driver

import (
	"fmt"
	"strings"
)

// TimingSummary renders the collected per-recording timing reports in
// input order. Recordings replayed without timings contribute nothing.
func TimingSummary(results []FileResult) string {
	var b strings.Builder
	for i := range results {
		res := &results[i]
		if res.Timing == nil || len(res.Timing.Phases) == 0 {
			continue
		}
		fmt.Fprintf(&b, "== %s ==\n%s", res.Path, res.Timing.Summary())
	}
	return b.String()
}
