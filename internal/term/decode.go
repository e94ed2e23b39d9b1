package term

import (
	"fmt"

	"fortio.org/safecast"
)

// Sigil is the decoded shape of a serialized sigil token,
// {sigil, line, tag, parts, modifiers}.
type Sigil struct {
	Tag     rune   // the character after '~'
	Content string // leading text content, "" when the head is not text
}

// DecodeSigil reconstructs a sigil token. The parts list must be
// non-empty; a text head becomes Content, anything else leaves it empty.
func DecodeSigil(text string) (Sigil, error) {
	v, err := Parse(text)
	if err != nil {
		return Sigil{}, err
	}
	tup, ok := v.(Tuple)
	if !ok || len(tup) != 5 {
		return Sigil{}, fmt.Errorf("not a sigil tuple: %s", v)
	}
	if name, ok := tup[0].(Atom); !ok || name != "sigil" {
		return Sigil{}, fmt.Errorf("not a sigil tuple: %s", v)
	}
	code, ok := tup[2].(Int)
	if !ok {
		return Sigil{}, fmt.Errorf("sigil tag is not an integer: %s", tup[2])
	}
	parts, ok := tup[3].(List)
	if !ok || len(parts) == 0 {
		return Sigil{}, fmt.Errorf("sigil without content parts: %s", tup[3])
	}
	tag, err := safecast.Conv[int32](int64(code))
	if err != nil {
		return Sigil{}, fmt.Errorf("sigil tag out of range: %w", err)
	}
	s := Sigil{Tag: rune(tag)}
	if head, ok := parts[0].(Str); ok {
		s.Content = string(head)
	}
	return s, nil
}

// DecodeIdentifier reconstructs a wrapped identifier, a one-element list
// holding the identifier atom.
func DecodeIdentifier(text string) (string, error) {
	v, err := Parse(text)
	if err != nil {
		return "", err
	}
	list, ok := v.(List)
	if !ok || len(list) != 1 {
		return "", fmt.Errorf("not a wrapped identifier: %s", v)
	}
	name, ok := list[0].(Atom)
	if !ok {
		return "", fmt.Errorf("wrapped value is not an identifier: %s", list[0])
	}
	return string(name), nil
}
