package diagfmt

import (
	"encoding/json"
	"io"

	"ion/internal/diag"
)

// DiagnosticJSON представляет фатальную диагностику в JSON формате
type DiagnosticJSON struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	File    string `json:"file"`
	Line    int    `json:"line,omitempty"`
}

// WarningJSON представляет напечатанное предупреждение в JSON формате
type WarningJSON struct {
	File string `json:"file,omitempty"`
	Line int    `json:"line,omitempty"`
	Text string `json:"text"`
}

// ReportOutput представляет корневую структуру JSON вывода
type ReportOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Warnings    []WarningJSON    `json:"warnings"`
	Errors      int              `json:"errors"`
	// RegisteredWarnings counts every observed warning, including ones a
	// session suppressed before printing.
	RegisteredWarnings int64 `json:"registered_warnings"`
}

// BuildReportOutput формирует структуру JSON-вывода без сериализации.
func BuildReportOutput(diags []*diag.Diagnostic, warnings []diag.WarningEvent, registered int64, opts JSONOpts) ReportOutput {
	out := ReportOutput{
		Diagnostics:        make([]DiagnosticJSON, 0, len(diags)),
		Warnings:           make([]WarningJSON, 0, len(warnings)),
		RegisteredWarnings: registered,
	}

	for _, d := range diags {
		if d == nil {
			continue
		}
		if opts.Max > 0 && len(out.Diagnostics) >= opts.Max {
			break
		}
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			Kind:    d.Kind.String(),
			Message: d.Message,
			File:    formatPath(d.File, opts.PathMode),
			Line:    d.Line,
		})
	}

	for _, e := range warnings {
		if opts.Max > 0 && len(out.Warnings) >= opts.Max {
			break
		}
		out.Warnings = append(out.Warnings, WarningJSON{
			File: formatPath(e.File, opts.PathMode),
			Line: e.Line,
			Text: e.Text,
		})
	}

	out.Errors = len(out.Diagnostics)
	return out
}

// JSON форматирует отчёт прогона в JSON формат.
func JSON(w io.Writer, diags []*diag.Diagnostic, warnings []diag.WarningEvent, registered int64, opts JSONOpts) error {
	output := BuildReportOutput(diags, warnings, registered, opts)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
