package diag

import (
	"fmt"
	"strings"

	"ion/internal/term"
)

// ErrorPrefix is the raw fragment prefix the parser hands over: plain text,
// or a (Text, Suffix) pair bracketing the offending token. Wrapped is the
// discriminant and stays true even when Suffix is empty.
type ErrorPrefix struct {
	Text    string
	Suffix  string
	Wrapped bool
}

// PlainPrefix wraps plain prefix text.
func PlainPrefix(text string) ErrorPrefix {
	return ErrorPrefix{Text: text}
}

// WrappedPrefix builds the bracketing (prefix, suffix) pair.
func WrappedPrefix(text, suffix string) ErrorPrefix {
	return ErrorPrefix{Text: text, Suffix: suffix, Wrapped: true}
}

const (
	// syntaxErrorText is the exact prefix the tokenizer emits for generic
	// syntax errors; several rules below key on it verbatim.
	syntaxErrorText = "syntax error before: "
	// sigilMarker opens the serialized form of a sigil token.
	sigilMarker = "{sigil,"
)

type parseRule struct {
	match func(p ErrorPrefix, token string) bool
	build func(p ErrorPrefix, token string) (Kind, string)
}

// parseRules is tried top to bottom; the first structural match wins and
// there is no fallthrough. The order is semantic. In particular the quoted
// identifier rule must stay ahead of the generic list rule: both match a
// leading '['.
var parseRules = [...]parseRule{
	{ // input ended in the middle of an expression
		match: func(p ErrorPrefix, token string) bool {
			return token == "" && !p.Wrapped && p.Text == syntaxErrorText
		},
		build: func(ErrorPrefix, string) (Kind, string) {
			return KindTokenMissingError, "syntax error: expression is incomplete"
		},
	},
	{ // no token at all: the prefix already is the whole message
		match: func(_ ErrorPrefix, token string) bool {
			return token == ""
		},
		build: func(p ErrorPrefix, _ string) (Kind, string) {
			return KindTokenMissingError, p.Text + p.Suffix
		},
	},
	{ // bare end of line
		match: func(p ErrorPrefix, token string) bool {
			return !p.Wrapped && p.Text == syntaxErrorText && token == "eol"
		},
		build: func(ErrorPrefix, string) (Kind, string) {
			return KindSyntaxError, "unexpectedly reached end of line. The current expression is invalid or incomplete"
		},
	},
	{ // dangling end keyword
		match: func(p ErrorPrefix, token string) bool {
			return !p.Wrapped && p.Text == syntaxErrorText && token == "'end'"
		},
		build: func(ErrorPrefix, string) (Kind, string) {
			return KindSyntaxError, "unexpected token: end"
		},
	},
	{ // serialized sigil node
		match: func(_ ErrorPrefix, token string) bool {
			return strings.HasPrefix(token, sigilMarker)
		},
		build: func(_ ErrorPrefix, token string) (Kind, string) {
			s, err := term.DecodeSigil(token)
			if err != nil {
				panic(err)
			}
			return KindSyntaxError, fmt.Sprintf("syntax error before: sigil ~%c starting with content '%s'", s.Tag, s.Content)
		},
	},
	{ // quoted identifier wrapper
		match: func(p ErrorPrefix, token string) bool {
			return !p.Wrapped && strings.HasPrefix(token, "['")
		},
		build: func(p ErrorPrefix, token string) (Kind, string) {
			name, err := term.DecodeIdentifier(token)
			if err != nil {
				panic(err)
			}
			return KindSyntaxError, p.Text + name
		},
	},
	{ // list wrapper, e.g. a binary or interpolation literal
		match: func(p ErrorPrefix, token string) bool {
			return !p.Wrapped && strings.HasPrefix(token, "[")
		},
		build: func(p ErrorPrefix, token string) (Kind, string) {
			v, err := term.Parse(token)
			if err != nil {
				panic(err)
			}
			if list, ok := v.(term.List); ok && len(list) > 0 {
				if head, ok := list[0].(term.Str); ok {
					return KindSyntaxError, p.Text + `"` + string(head) + `"`
				}
			}
			return KindSyntaxError, p.Text + `"`
		},
	},
	{ // bracketing pair around the raw token
		match: func(p ErrorPrefix, _ string) bool {
			return p.Wrapped
		},
		build: func(p ErrorPrefix, token string) (Kind, string) {
			return KindSyntaxError, p.Text + token + p.Suffix
		},
	},
	{ // default: verbatim concatenation
		match: func(ErrorPrefix, string) bool {
			return true
		},
		build: func(p ErrorPrefix, token string) (Kind, string) {
			return KindSyntaxError, p.Text + token
		},
	},
}

// Normalize turns a raw parser fragment into a presentable diagnostic
// without raising it. Malformed structured tokens in the decoding rules
// propagate their decode error via panic: that is an internal invariant
// violation, not a user-facing diagnostic, and Catch will re-panic it.
func Normalize(line int, file string, prefix ErrorPrefix, token string) *Diagnostic {
	for _, rule := range parseRules {
		if rule.match(prefix, token) {
			kind, message := rule.build(prefix, token)
			return newDiagnostic(line, file, kind, message)
		}
	}
	// unreachable: the default rule matches everything
	panic(fmt.Errorf("no parse rule matched token %q", token))
}

// ParseError normalizes the raw fragment and raises the result. Never
// returns.
func ParseError(line int, file string, prefix ErrorPrefix, token string) {
	panic(Normalize(line, file, prefix, token))
}
