package diag_test

import (
	"strings"
	"testing"

	"ion/internal/diag"
)

func TestNormalizeRuleTable(t *testing.T) {
	tests := []struct {
		name     string
		prefix   diag.ErrorPrefix
		token    string
		wantKind diag.Kind
		wantMsg  string
	}{
		{
			name:     "incomplete expression",
			prefix:   diag.PlainPrefix("syntax error before: "),
			token:    "",
			wantKind: diag.KindTokenMissingError,
			wantMsg:  "syntax error: expression is incomplete",
		},
		{
			name:     "empty token keeps other prefixes verbatim",
			prefix:   diag.PlainPrefix("missing terminator: \" (for string starting at line 1)"),
			token:    "",
			wantKind: diag.KindTokenMissingError,
			wantMsg:  "missing terminator: \" (for string starting at line 1)",
		},
		{
			name:     "empty token with wrapped pair joins both sides",
			prefix:   diag.WrappedPrefix("unexpected token: ", " (expected do)"),
			token:    "",
			wantKind: diag.KindTokenMissingError,
			wantMsg:  "unexpected token:  (expected do)",
		},
		{
			name:     "bare end of line",
			prefix:   diag.PlainPrefix("syntax error before: "),
			token:    "eol",
			wantKind: diag.KindSyntaxError,
			wantMsg:  "unexpectedly reached end of line. The current expression is invalid or incomplete",
		},
		{
			name:     "dangling end keyword",
			prefix:   diag.PlainPrefix("syntax error before: "),
			token:    "'end'",
			wantKind: diag.KindSyntaxError,
			wantMsg:  "unexpected token: end",
		},
		{
			name:     "sigil with text content",
			prefix:   diag.PlainPrefix("syntax error before: "),
			token:    `{sigil,1,114,[<<"foo">>],[]}`,
			wantKind: diag.KindSyntaxError,
			wantMsg:  "syntax error before: sigil ~r starting with content 'foo'",
		},
		{
			name:     "sigil with interpolated head reports empty content",
			prefix:   diag.PlainPrefix("syntax error before: "),
			token:    `{sigil,1,115,[{1,2,3}],[]}`,
			wantKind: diag.KindSyntaxError,
			wantMsg:  "syntax error before: sigil ~s starting with content ''",
		},
		{
			name:     "quoted identifier is unwrapped",
			prefix:   diag.PlainPrefix("syntax error before: "),
			token:    "['Kernel.Router']",
			wantKind: diag.KindSyntaxError,
			wantMsg:  "syntax error before: Kernel.Router",
		},
		{
			name:     "list with binary head is quoted",
			prefix:   diag.PlainPrefix("syntax error before: "),
			token:    `[<<"abc">>]`,
			wantKind: diag.KindSyntaxError,
			wantMsg:  `syntax error before: "abc"`,
		},
		{
			name:     "list with non-text head falls back to a bare quote",
			prefix:   diag.PlainPrefix("syntax error before: "),
			token:    "[{1,2,3}]",
			wantKind: diag.KindSyntaxError,
			wantMsg:  `syntax error before: "`,
		},
		{
			name:     "empty list falls back to a bare quote",
			prefix:   diag.PlainPrefix("syntax error before: "),
			token:    "[]",
			wantKind: diag.KindSyntaxError,
			wantMsg:  `syntax error before: "`,
		},
		{
			name:     "wrapped pair brackets the token",
			prefix:   diag.WrappedPrefix("unexpected token: ", " (expected do)"),
			token:    "fn",
			wantKind: diag.KindSyntaxError,
			wantMsg:  "unexpected token: fn (expected do)",
		},
		{
			name:     "default concatenates verbatim",
			prefix:   diag.PlainPrefix("syntax error before: "),
			token:    "'%'",
			wantKind: diag.KindSyntaxError,
			wantMsg:  "syntax error before: '%'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := diag.Normalize(5, "lib/a.ion", tt.prefix, tt.token)
			if d.Kind != tt.wantKind {
				t.Fatalf("kind = %s, want %s", d.Kind, tt.wantKind)
			}
			if d.Message != tt.wantMsg {
				t.Fatalf("message = %q, want %q", d.Message, tt.wantMsg)
			}
			if d.File != "lib/a.ion" || d.Line != 5 {
				t.Fatalf("location = %s, want lib/a.ion:5", d.Location())
			}
		})
	}
}

func TestNormalizeRulePrecedence(t *testing.T) {
	tests := []struct {
		name    string
		prefix  diag.ErrorPrefix
		token   string
		wantMsg string
	}{
		{
			// The empty token rules run before everything else.
			name:    "empty token beats eol handling",
			prefix:  diag.PlainPrefix("syntax error before: "),
			token:   "",
			wantMsg: "syntax error: expression is incomplete",
		},
		{
			// A quoted identifier also starts with '[' and must win over
			// the generic list rule.
			name:    "quoted identifier beats list wrapper",
			prefix:  diag.PlainPrefix("syntax error before: "),
			token:   "['end']",
			wantMsg: "syntax error before: end",
		},
		{
			// Sigil handling applies regardless of the prefix text.
			name:    "sigil marker beats default concatenation",
			prefix:  diag.PlainPrefix("unexpected token: "),
			token:   `{sigil,1,126,[<<"x">>],[]}`,
			wantMsg: "syntax error before: sigil ~~ starting with content 'x'",
		},
		{
			// Wrapped pairs skip the identifier and list rules: those
			// render the prefix as plain text.
			name:    "wrapped pair beats identifier unwrapping",
			prefix:  diag.WrappedPrefix("before: ", " :after"),
			token:   "['Kernel']",
			wantMsg: "before: ['Kernel'] :after",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := diag.Normalize(1, "lib/a.ion", tt.prefix, tt.token)
			if d.Message != tt.wantMsg {
				t.Fatalf("message = %q, want %q", d.Message, tt.wantMsg)
			}
		})
	}
}

func TestNormalizePanicsOnMalformedStructuredToken(t *testing.T) {
	tokens := []string{
		"{sigil,1,114",
		"['Kernel",
		"[<<1,",
	}

	for _, token := range tokens {
		t.Run(token, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected a panic for a malformed structured token")
				}
				if _, ok := r.(*diag.Diagnostic); ok {
					t.Fatal("decode failures must not masquerade as diagnostics")
				}
				if _, ok := r.(error); !ok {
					t.Fatalf("expected an error panic, got %T", r)
				}
			}()
			diag.Normalize(1, "lib/a.ion", diag.PlainPrefix("syntax error before: "), token)
		})
	}
}

func TestParseErrorRaisesNormalizedDiagnostic(t *testing.T) {
	d := diag.Catch(func() {
		diag.ParseError(7, "lib/b.ion", diag.PlainPrefix("syntax error before: "), "'%'")
	})
	if d == nil {
		t.Fatal("expected a caught diagnostic")
	}
	if d.Kind != diag.KindSyntaxError {
		t.Fatalf("kind = %s, want %s", d.Kind, diag.KindSyntaxError)
	}
	if d.Message != "syntax error before: '%'" {
		t.Fatalf("message = %q", d.Message)
	}
	if d.File != "lib/b.ion" || d.Line != 7 {
		t.Fatalf("location = %s, want lib/b.ion:7", d.Location())
	}
	frames := d.Backtrace()
	if len(frames) == 0 {
		t.Fatal("expected a backtrace")
	}
	if !strings.Contains(frames[0].Function, "ParseError") {
		t.Fatalf("top frame = %q, want the raising entry point", frames[0].Function)
	}
}
