package term

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

type tokKind uint8

const (
	tokEnd tokKind = iota // terminator appended after the last real token
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokComma
	tokAtom
	tokInt
	tokBinary
)

func (k tokKind) String() string {
	switch k {
	case tokEnd:
		return "end of input"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokComma:
		return "','"
	case tokAtom:
		return "atom"
	case tokInt:
		return "integer"
	case tokBinary:
		return "binary"
	default:
		return "unknown"
	}
}

type scanToken struct {
	kind tokKind
	text string // atom or binary payload
	val  int64  // integer payload
	off  uint32 // byte offset of the first byte
}

// cursor — позиция в сериализованном тексте, всегда движется вперёд.
type cursor struct {
	src   string
	off   uint32
	limit uint32
}

func newCursor(src string) cursor {
	limit, err := safecast.Conv[uint32](len(src))
	if err != nil {
		panic(fmt.Errorf("term text overflow: %w", err))
	}
	return cursor{src: src, limit: limit}
}

func (c *cursor) EOF() bool { return c.off >= c.limit }

func (c *cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.src[c.off]
}

func (c *cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	return b
}

// Eat consumes the next byte if it matches the provided byte.
func (c *cursor) Eat(b byte) bool {
	if !c.EOF() && c.src[c.off] == b {
		c.off++
		return true
	}
	return false
}

func (c *cursor) skipSpace() {
	for !c.EOF() {
		switch c.src[c.off] {
		case ' ', '\t', '\n', '\r':
			c.off++
		default:
			return
		}
	}
}

// scanAll tokenizes the whole text and appends the terminator marker.
func scanAll(src string) ([]scanToken, error) {
	cur := newCursor(src)
	var toks []scanToken
	for {
		cur.skipSpace()
		if cur.EOF() {
			break
		}
		tok, err := cur.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
	return append(toks, scanToken{kind: tokEnd, off: cur.off}), nil
}

func (c *cursor) next() (scanToken, error) {
	start := c.off
	b := c.Peek()
	switch {
	case b == '{':
		c.Bump()
		return scanToken{kind: tokLBrace, off: start}, nil
	case b == '}':
		c.Bump()
		return scanToken{kind: tokRBrace, off: start}, nil
	case b == '[':
		c.Bump()
		return scanToken{kind: tokLBracket, off: start}, nil
	case b == ']':
		c.Bump()
		return scanToken{kind: tokRBracket, off: start}, nil
	case b == ',':
		c.Bump()
		return scanToken{kind: tokComma, off: start}, nil
	case b == '<':
		return c.scanBinary()
	case b == '\'':
		c.Bump()
		text, err := c.scanQuoted('\'')
		if err != nil {
			return scanToken{}, err
		}
		return scanToken{kind: tokAtom, text: text, off: start}, nil
	case b == '-' || isDigit(b):
		return c.scanInt()
	case b >= 'a' && b <= 'z':
		return c.scanBareAtom(), nil
	default:
		return scanToken{}, fmt.Errorf("unexpected byte %q at offset %d", b, start)
	}
}

// scanBinary handles <<>>, <<"text">> and the numeric form <<104,105>>.
func (c *cursor) scanBinary() (scanToken, error) {
	start := c.off
	c.Bump()
	if !c.Eat('<') {
		return scanToken{}, fmt.Errorf(`expected "<<" at offset %d`, start)
	}
	c.skipSpace()
	switch {
	case c.Peek() == '"':
		c.Bump()
		text, err := c.scanQuoted('"')
		if err != nil {
			return scanToken{}, err
		}
		c.skipSpace()
		if err := c.expectClose(); err != nil {
			return scanToken{}, err
		}
		return scanToken{kind: tokBinary, text: text, off: start}, nil
	case c.Peek() == '>':
		if err := c.expectClose(); err != nil {
			return scanToken{}, err
		}
		return scanToken{kind: tokBinary, off: start}, nil
	default:
		var sb strings.Builder
		for {
			c.skipSpace()
			tok, err := c.scanInt()
			if err != nil {
				return scanToken{}, err
			}
			bv, err := safecast.Conv[uint8](tok.val)
			if err != nil {
				return scanToken{}, fmt.Errorf("byte value out of range at offset %d: %w", tok.off, err)
			}
			sb.WriteByte(bv)
			c.skipSpace()
			if c.Eat(',') {
				continue
			}
			if err := c.expectClose(); err != nil {
				return scanToken{}, err
			}
			return scanToken{kind: tokBinary, text: sb.String(), off: start}, nil
		}
	}
}

func (c *cursor) expectClose() error {
	off := c.off
	if c.Eat('>') && c.Eat('>') {
		return nil
	}
	return fmt.Errorf(`expected ">>" at offset %d`, off)
}

// scanQuoted consumes up to the closing quote; the opening quote is
// already gone. Decoded text is NFC-normalized.
func (c *cursor) scanQuoted(quote byte) (string, error) {
	var sb strings.Builder
	for {
		if c.EOF() {
			return "", fmt.Errorf("unterminated %q at offset %d", quote, c.off)
		}
		b := c.Bump()
		switch b {
		case quote:
			return norm.NFC.String(sb.String()), nil
		case '\\':
			if err := c.unescapeInto(&sb); err != nil {
				return "", err
			}
		default:
			sb.WriteByte(b)
		}
	}
}

func (c *cursor) unescapeInto(sb *strings.Builder) error {
	if c.EOF() {
		return fmt.Errorf("dangling escape at offset %d", c.off)
	}
	off := c.off
	b := c.Bump()
	switch b {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'f':
		sb.WriteByte('\f')
	case 'v':
		sb.WriteByte('\v')
	case 'b':
		sb.WriteByte('\b')
	case 'e':
		sb.WriteByte(0x1b)
	case 's':
		sb.WriteByte(' ')
	case 'd':
		sb.WriteByte(0x7f)
	case '0':
		sb.WriteByte(0)
	case 'x':
		hi := hexVal(c.Bump())
		lo := hexVal(c.Bump())
		if hi < 0 || lo < 0 {
			return fmt.Errorf("bad hex escape at offset %d", off)
		}
		sb.WriteByte(byte(hi<<4 | lo))
	case '\\', '\'', '"':
		sb.WriteByte(b)
	default:
		return fmt.Errorf("unknown escape %q at offset %d", b, off)
	}
	return nil
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	default:
		return -1
	}
}

func (c *cursor) scanInt() (scanToken, error) {
	start := c.off
	c.Eat('-')
	first := c.off
	for isDigit(c.Peek()) {
		c.Bump()
	}
	if c.off == first {
		return scanToken{}, fmt.Errorf("expected digit at offset %d", c.off)
	}
	val, err := strconv.ParseInt(c.src[start:c.off], 10, 64)
	if err != nil {
		return scanToken{}, fmt.Errorf("bad integer at offset %d: %w", start, err)
	}
	return scanToken{kind: tokInt, val: val, off: start}, nil
}

func (c *cursor) scanBareAtom() scanToken {
	start := c.off
	for !c.EOF() && isAtomByte(c.Peek()) {
		c.Bump()
	}
	return scanToken{kind: tokAtom, text: c.src[start:c.off], off: start}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAtomByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || isDigit(b) || b == '_' || b == '@'
}
