// Package term decodes the serialized form of structured front-end tokens.
//
// A few tokens reach diagnostics not as plain text but as the textual
// encoding of an internal value: a sigil node, a quoted identifier wrapper,
// a list carrying binary content. The grammar here is deliberately narrow.
// Atoms, integers, binaries, lists and tuples are everything the writer
// emits; this package reconstructs already-serialized values, not arbitrary
// source text.
package term

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is one decoded node of a serialized token.
type Value interface {
	fmt.Stringer
	isTerm()
}

type (
	// Atom is a bare or quoted name in its unquoted form.
	Atom string
	// Int is a signed integer.
	Int int64
	// Str is binary text content.
	Str string
	// List is an ordered sequence of values.
	List []Value
	// Tuple is a fixed-shape sequence of values.
	Tuple []Value
)

func (Atom) isTerm()  {}
func (Int) isTerm()   {}
func (Str) isTerm()   {}
func (List) isTerm()  {}
func (Tuple) isTerm() {}

func (a Atom) String() string {
	if isBareAtom(string(a)) {
		return string(a)
	}
	return "'" + escapeText(string(a), '\'') + "'"
}

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (s Str) String() string {
	return `<<"` + escapeText(string(s), '"') + `">>`
}

func (l List) String() string  { return joinValues(l, '[', ']') }
func (t Tuple) String() string { return joinValues(t, '{', '}') }

func joinValues(vals []Value, open, close byte) string {
	var sb strings.Builder
	sb.WriteByte(open)
	for i, v := range vals {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte(close)
	return sb.String()
}

func isBareAtom(s string) bool {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isAtomByte(s[i]) {
			return false
		}
	}
	return true
}

// escapeText renders s for re-serialization inside the given quote byte.
func escapeText(s string, quote byte) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == quote || b == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(b)
		case b == '\n':
			sb.WriteString(`\n`)
		case b == '\t':
			sb.WriteString(`\t`)
		case b == '\r':
			sb.WriteString(`\r`)
		case b < 0x20 || b == 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, b)
		default:
			sb.WriteByte(b)
		}
	}
	return sb.String()
}
