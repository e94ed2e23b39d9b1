package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ion/internal/diag"
)

var bannerColor = color.New(color.FgRed, color.Bold)

// Pretty форматирует фатальные диагностики в человекочитаемый вид.
// Для каждой печатает баннер
//
//	** (SyntaxError) lib/a.ion:3: syntax error before: '+'
//
// и, если включено, трассировку вызовов с отступом. Цвет управляется
// глобальным флагом пакета color.
func Pretty(w io.Writer, diags []*diag.Diagnostic, opts PrettyOpts) {
	first := true
	for _, d := range diags {
		if d == nil {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		prettyOne(w, d, opts)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, opts PrettyOpts) {
	msg := d.Message
	if opts.Width > 0 {
		msg = runewidth.Truncate(msg, int(opts.Width), "...")
	}

	banner := bannerColor.Sprintf("** (%s)", d.Kind)
	fmt.Fprintf(w, "%s %s: %s\n", banner, location(d, opts.PathMode), msg)

	if !opts.ShowBacktrace {
		return
	}
	for _, fr := range d.Backtrace() {
		fmt.Fprintf(w, "    %s:%d: %s\n", fr.File, fr.Line, fr.Function)
	}
}
