package diag

import (
	"fmt"
	"strconv"
)

// Diagnostic is a fatal compilation finding. It travels by panic from one
// of the raising entry points to a Catch boundary, never as a plain return
// value. File is always set by the raising entry points; Line 0 means the
// position is unknown.
type Diagnostic struct {
	Kind    Kind
	Message string
	File    string
	Line    int
	stack   []uintptr
}

// Location renders "file:line", or just "file" when the line is unknown.
func (d *Diagnostic) Location() string {
	return locationString(d.File, d.Line)
}

// Error implements error so a caught diagnostic can flow through ordinary
// error paths. The kind is part of the text, matching the compiler's
// user-facing shape.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("(%s) %s: %s", d.Kind, d.Location(), d.Message)
}

func locationString(file string, line int) string {
	if line == 0 {
		return file
	}
	return file + ":" + strconv.Itoa(line)
}
