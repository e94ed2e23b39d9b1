package diag

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"

	"ion/internal/source"
)

// Options configures a Reporter.
type Options struct {
	// Out receives warning output. Defaults to os.Stderr.
	Out io.Writer
	// Session is the per-compilation collaborator notified about
	// warnings. Optional.
	Session Session
}

// Reporter is the warning side of the pipeline, one per compilation unit.
// It is read-only after construction: concurrent compilation units each
// hold their own Reporter, so the reporting path takes no locks.
type Reporter struct {
	out     io.Writer
	session Session
}

// NewReporter builds a Reporter from opts.
func NewReporter(opts Options) *Reporter {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	return &Reporter{out: out, session: opts.Session}
}

var warnColor = color.New(color.FgYellow)

// warningPrefix is yellow when ANSI output is enabled. The flag is
// process-wide (color.NoColor), set once at startup and only read here.
func warningPrefix() string {
	return warnColor.Sprint("warning: ")
}

// Warn prints a located warning and notifies the session first, fire and
// forget. It never fails: IO errors are dropped and a nil session is the
// common case. A negative line is coerced to 0 and rendered without a
// line suffix.
func (r *Reporter) Warn(line int, file, text string) {
	if line < 0 {
		line = 0
	}
	if r.session != nil {
		r.session.Warning(WarningEvent{File: file, Line: line, Text: text})
	}
	fmt.Fprintf(r.out, "%s%s\n  %s\n\n", warningPrefix(), text, fileFormat(line, file))
}

// WarnPlain prints a warning that has no location and bumps the session
// counter. Exactly one line of output.
func (r *Reporter) WarnPlain(text string) {
	if r.session != nil {
		r.session.RegisterWarning()
	}
	fmt.Fprintf(r.out, "%s%s\n", warningPrefix(), text)
}

// FormWarn reports a form warning, message courtesy of the module's
// formatter. Unlike FormError it returns: warnings never abort.
func (r *Reporter) FormWarn(meta source.Meta, file string, f ErrorFormatter, desc any) {
	warnFile, line := meta.Resolve(file)
	r.Warn(line, warnFile, f.FormatError(desc))
}

// fileFormat renders the location line of a warning: the file relative to
// the working directory, with ":line" appended when the line is known.
func fileFormat(line int, file string) string {
	rel := source.RelativeToCwd(file)
	if line == 0 {
		return rel
	}
	return rel + ":" + strconv.Itoa(line)
}
