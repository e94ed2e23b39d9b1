package diag_test

import (
	"bytes"
	"fmt"
	"testing"

	"ion/internal/diag"
	"ion/internal/source"
)

func TestCompileErrorResolvesLocation(t *testing.T) {
	tests := []struct {
		name     string
		meta     source.Meta
		wantFile string
		wantLine int
	}{
		{
			name:     "plain meta uses the compiling file",
			meta:     source.Meta{Line: 4},
			wantFile: "lib/a.ion",
			wantLine: 4,
		},
		{
			name:     "file override wins with its keep line",
			meta:     source.Meta{Line: 4, File: "gen/router.ion", Keep: 2},
			wantFile: "gen/router.ion",
			wantLine: 2,
		},
		{
			name:     "zero meta reports the file with no line",
			meta:     source.Meta{},
			wantFile: "lib/a.ion",
			wantLine: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := diag.Catch(func() {
				diag.CompileError(tt.meta, "lib/a.ion", "undefined function foo/1")
			})
			if d == nil {
				t.Fatal("expected a caught diagnostic")
			}
			if d.Kind != diag.KindCompileError {
				t.Fatalf("kind = %s, want %s", d.Kind, diag.KindCompileError)
			}
			if d.File != tt.wantFile || d.Line != tt.wantLine {
				t.Fatalf("location = %s, want %s:%d", d.Location(), tt.wantFile, tt.wantLine)
			}
			if d.Message != "undefined function foo/1" {
				t.Fatalf("message = %q", d.Message)
			}
		})
	}
}

func TestCompileErrorfRendersFormatPair(t *testing.T) {
	d := diag.Catch(func() {
		diag.CompileErrorf(source.Meta{Line: 2}, "lib/a.ion", "cannot define module %s because it is currently being defined", "Kernel")
	})
	want := "cannot define module Kernel because it is currently being defined"
	if d.Message != want {
		t.Fatalf("message = %q, want %q", d.Message, want)
	}
}

// moduleFormatter fakes the owning module's error formatter capability.
type moduleFormatter struct{}

func (moduleFormatter) FormatError(desc any) string {
	return fmt.Sprintf("bad form: %v", desc)
}

func TestFormErrorDelegatesToFormatter(t *testing.T) {
	d := diag.Catch(func() {
		diag.FormError(source.Meta{Line: 11}, "lib/a.ion", moduleFormatter{}, "defp inside guard")
	})
	if d.Message != "bad form: defp inside guard" {
		t.Fatalf("message = %q", d.Message)
	}
	if d.Line != 11 {
		t.Fatalf("line = %d, want 11", d.Line)
	}
}

func TestFormWarnResolvesAndPrints(t *testing.T) {
	disableColor(t)

	sess := &recordingSession{}
	var buf bytes.Buffer
	r := diag.NewReporter(diag.Options{Out: &buf, Session: sess})

	r.FormWarn(source.Meta{Line: 8, File: "gen/router.ion", Keep: 5}, "lib/a.ion", moduleFormatter{}, "unused import")

	want := "warning: bad form: unused import\n  gen/router.ion:5\n\n"
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
	if len(sess.events) != 1 {
		t.Fatalf("events = %d, want 1", len(sess.events))
	}
	if ev := sess.events[0]; ev.File != "gen/router.ion" || ev.Line != 5 {
		t.Fatalf("event location = %s:%d, want gen/router.ion:5", ev.File, ev.Line)
	}
}
