package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"ion/internal/diag"
)

// TestJSONBasic проверяет базовое JSON форматирование отчёта
func TestJSONBasic(t *testing.T) {
	diags := []*diag.Diagnostic{
		{Kind: diag.KindSyntaxError, Message: "syntax error before: '+'", File: "lib/a.ion", Line: 3},
	}
	warnings := []diag.WarningEvent{
		{File: "lib/a.ion", Line: 1, Text: "unused variable x"},
		{File: "lib/b.ion", Line: 0, Text: "redefining module B"},
	}

	var buf bytes.Buffer
	if err := JSON(&buf, diags, warnings, 5, JSONOpts{}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	// Парсим JSON чтобы убедиться что он валидный
	var output ReportOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}

	if output.Errors != 1 {
		t.Errorf("Expected errors=1, got %d", output.Errors)
	}
	if output.RegisteredWarnings != 5 {
		t.Errorf("Expected registered_warnings=5, got %d", output.RegisteredWarnings)
	}
	if len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(output.Diagnostics))
	}

	d := output.Diagnostics[0]
	if d.Kind != "SyntaxError" {
		t.Errorf("Expected kind=SyntaxError, got %s", d.Kind)
	}
	if d.Message != "syntax error before: '+'" {
		t.Errorf("Expected message='syntax error before: '+'' got %s", d.Message)
	}
	if d.File != "lib/a.ion" {
		t.Errorf("Expected file=lib/a.ion, got %s", d.File)
	}
	if d.Line != 3 {
		t.Errorf("Expected line=3, got %d", d.Line)
	}

	if len(output.Warnings) != 2 {
		t.Fatalf("Expected 2 warnings, got %d", len(output.Warnings))
	}
	if output.Warnings[1].Line != 0 {
		t.Errorf("Expected warnings[1].line=0, got %d", output.Warnings[1].Line)
	}
}

// TestJSONAppliesMax проверяет обрезку списков по Max
func TestJSONAppliesMax(t *testing.T) {
	diags := []*diag.Diagnostic{
		{Kind: diag.KindSyntaxError, Message: "one", File: "a.ion", Line: 1},
		{Kind: diag.KindSyntaxError, Message: "two", File: "a.ion", Line: 2},
		{Kind: diag.KindSyntaxError, Message: "three", File: "a.ion", Line: 3},
	}
	warnings := []diag.WarningEvent{
		{File: "a.ion", Line: 1, Text: "w1"},
		{File: "a.ion", Line: 2, Text: "w2"},
		{File: "a.ion", Line: 3, Text: "w3"},
	}

	output := BuildReportOutput(diags, warnings, 3, JSONOpts{Max: 2})

	if len(output.Diagnostics) != 2 {
		t.Errorf("Expected 2 diagnostics after truncation, got %d", len(output.Diagnostics))
	}
	if len(output.Warnings) != 2 {
		t.Errorf("Expected 2 warnings after truncation, got %d", len(output.Warnings))
	}
	if output.Errors != 2 {
		t.Errorf("Expected errors=2, got %d", output.Errors)
	}
	if output.Diagnostics[1].Message != "two" {
		t.Errorf("Expected truncation to keep input order, got %s", output.Diagnostics[1].Message)
	}
}

// TestJSONSkipsNilDiagnostics проверяет что nil записи пропускаются
func TestJSONSkipsNilDiagnostics(t *testing.T) {
	diags := []*diag.Diagnostic{
		nil,
		{Kind: diag.KindCompileError, Message: "boom", File: "a.ion", Line: 1},
	}

	output := BuildReportOutput(diags, nil, 1, JSONOpts{})

	if len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(output.Diagnostics))
	}
	if output.Diagnostics[0].Message != "boom" {
		t.Errorf("Expected message=boom, got %s", output.Diagnostics[0].Message)
	}
}

// TestJSONEmptyReportKeepsArrays проверяет что пустые списки сериализуются как []
func TestJSONEmptyReportKeepsArrays(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, nil, nil, 0, JSONOpts{}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"diagnostics": []`) {
		t.Errorf("Output %q must contain empty diagnostics array", out)
	}
	if !strings.Contains(out, `"warnings": []`) {
		t.Errorf("Output %q must contain empty warnings array", out)
	}
}

// TestJSONBasenamePathMode проверяет применение режима путей к обоим спискам
func TestJSONBasenamePathMode(t *testing.T) {
	diags := []*diag.Diagnostic{
		{Kind: diag.KindSyntaxError, Message: "m", File: "lib/deep/a.ion", Line: 1},
	}
	warnings := []diag.WarningEvent{
		{File: "lib/deep/b.ion", Line: 2, Text: "w"},
	}

	output := BuildReportOutput(diags, warnings, 1, JSONOpts{PathMode: PathModeBasename})

	if output.Diagnostics[0].File != "a.ion" {
		t.Errorf("Expected file=a.ion, got %s", output.Diagnostics[0].File)
	}
	if output.Warnings[0].File != "b.ion" {
		t.Errorf("Expected file=b.ion, got %s", output.Warnings[0].File)
	}
}
