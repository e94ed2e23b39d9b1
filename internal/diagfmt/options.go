// Package diagfmt renders replay results for terminals and machine
// consumers. The pretty form mirrors the banner a crashed compile run
// prints; the JSON form is stable across runs and safe to diff.
package diagfmt

import (
	"strconv"

	"ion/internal/diag"
	"ion/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of fatal diagnostics.
type PrettyOpts struct {
	PathMode      PathMode
	Width         uint8 // максимальная ширина сообщения, 0 - не ограничено
	ShowBacktrace bool
}

// JSONOpts configures JSON output of replay reports.
type JSONOpts struct {
	PathMode PathMode
	Max      int // обрезка вывода, 0 - без лимита
}

// formatPath renders a diagnostic path according to mode.
func formatPath(path string, mode PathMode) string {
	if path == "" {
		return path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := source.AbsolutePath(path); err == nil {
			return abs
		}
		return path
	case PathModeBasename:
		return source.BaseName(path)
	default:
		return source.RelativeToCwd(path)
	}
}

// location renders "file:line", or the file alone when the line is unknown.
func location(d *diag.Diagnostic, mode PathMode) string {
	path := formatPath(d.File, mode)
	if d.Line <= 0 {
		return path
	}
	return path + ":" + strconv.Itoa(d.Line)
}
