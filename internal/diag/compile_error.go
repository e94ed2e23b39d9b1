package diag

import (
	"fmt"

	"ion/internal/source"
)

// ErrorFormatter renders module-specific error descriptors into text.
// Form handlers receive opaque descriptors; only the owning module knows
// how to spell them, so the form entry points delegate through this.
type ErrorFormatter interface {
	FormatError(desc any) string
}

// CompileError resolves the node location and raises a compile error with
// a ready-made message. Never returns.
func CompileError(meta source.Meta, file, message string) {
	resolvedFile, line := meta.Resolve(file)
	Raise(line, resolvedFile, KindCompileError, message)
}

// CompileErrorf renders the format pair before raising.
func CompileErrorf(meta source.Meta, file, format string, args ...any) {
	CompileError(meta, file, fmt.Sprintf(format, args...))
}

// FormError raises a compile error for a form, message courtesy of the
// module's formatter. Never returns.
func FormError(meta source.Meta, file string, f ErrorFormatter, desc any) {
	CompileError(meta, file, f.FormatError(desc))
}
