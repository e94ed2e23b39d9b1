package diag

import (
	"fmt"
	"sort"
	"strings"
)

// FormatStableDiagnostics renders caught diagnostics into a stable,
// single-line-per-entry representation suitable for golden files and CLI
// short output. Entries are sorted deterministically and messages are
// flattened to one line. Empty input renders as an empty string.
func FormatStableDiagnostics(diags []*Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}

	rendered := make([]*Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d != nil {
			rendered = append(rendered, d)
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.File != dj.File {
			return di.File < dj.File
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Kind != dj.Kind {
			return di.Kind < dj.Kind
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s", d.Kind, d.Location(), sanitizeMessage(d.Message))
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FormatStableWarnings renders collected warning events in the same
// single-line shape, prefixed with "warning".
func FormatStableWarnings(events []WarningEvent) string {
	if len(events) == 0 {
		return ""
	}

	sorted := make([]WarningEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		ei, ej := sorted[i], sorted[j]
		if ei.File != ej.File {
			return ei.File < ej.File
		}
		if ei.Line != ej.Line {
			return ei.Line < ej.Line
		}
		return ei.Text < ej.Text
	})

	var b strings.Builder
	for i, ev := range sorted {
		fmt.Fprintf(&b, "warning %s %s", locationString(ev.File, ev.Line), sanitizeMessage(ev.Text))
		if i < len(sorted)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
