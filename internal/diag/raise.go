package diag

import (
	"runtime"
)

// Frame is one entry of a captured raise backtrace.
type Frame struct {
	Function string
	File     string
	Line     int
}

// Raise aborts the current compilation by panicking with a *Diagnostic.
// A negative line is coerced to 0 (unknown). Raise writes nothing to any
// stream; presentation is the Catch boundary's business. The raising
// frame itself is elided, so the captured backtrace starts at the caller.
func Raise(line int, file string, kind Kind, message string) {
	panic(newDiagnostic(line, file, kind, message))
}

// Catch runs fn and returns the *Diagnostic it raised, or nil when fn
// completed. Any other panic value is propagated untouched: only
// diagnostics ride this protocol.
func Catch(fn func()) (d *Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*Diagnostic); ok {
				d = e
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}

// Backtrace expands the captured frames. The raising machinery is already
// elided; the first frame is the entry point that produced the diagnostic.
func (d *Diagnostic) Backtrace() []Frame {
	if len(d.stack) == 0 {
		return nil
	}
	frames := runtime.CallersFrames(d.stack)
	var out []Frame
	for {
		fr, more := frames.Next()
		if fr.Function != "" {
			out = append(out, Frame{Function: fr.Function, File: fr.File, Line: fr.Line})
		}
		if !more {
			break
		}
	}
	return out
}

// newDiagnostic is the single construction point: both Raise and Normalize
// go through it, two frames above the recorded stack top.
func newDiagnostic(line int, file string, kind Kind, message string) *Diagnostic {
	if line < 0 {
		line = 0
	}
	return &Diagnostic{
		Kind:    kind,
		Message: message,
		File:    file,
		Line:    line,
		stack:   callers(4),
	}
}

func callers(skip int) []uintptr {
	pc := make([]uintptr, 64)
	n := runtime.Callers(skip, pc)
	return pc[:n]
}
