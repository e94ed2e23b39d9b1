package term

import "fmt"

type parser struct {
	toks []scanToken
	pos  int
}

func (p *parser) peek() scanToken { return p.toks[p.pos] }

func (p *parser) bump() scanToken {
	t := p.toks[p.pos]
	if t.kind != tokEnd {
		p.pos++
	}
	return t
}

// Parse decodes text as exactly one serialized term. The scanner appends a
// terminator marker and the parser must stop right on it, so trailing input
// after the term is an error.
func Parse(text string) (Value, error) {
	toks, err := scanAll(text)
	if err != nil {
		return nil, err
	}
	p := parser{toks: toks}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if t := p.bump(); t.kind != tokEnd {
		return nil, fmt.Errorf("trailing %s at offset %d", t.kind, t.off)
	}
	return v, nil
}

func (p *parser) parseValue() (Value, error) {
	t := p.bump()
	switch t.kind {
	case tokLBrace:
		elems, err := p.parseElems(tokRBrace)
		if err != nil {
			return nil, err
		}
		return Tuple(elems), nil
	case tokLBracket:
		elems, err := p.parseElems(tokRBracket)
		if err != nil {
			return nil, err
		}
		return List(elems), nil
	case tokAtom:
		return Atom(t.text), nil
	case tokInt:
		return Int(t.val), nil
	case tokBinary:
		return Str(t.text), nil
	default:
		return nil, fmt.Errorf("unexpected %s at offset %d", t.kind, t.off)
	}
}

func (p *parser) parseElems(close tokKind) ([]Value, error) {
	if p.peek().kind == close {
		p.bump()
		return nil, nil
	}
	var elems []Value
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
		t := p.bump()
		if t.kind == close {
			return elems, nil
		}
		if t.kind != tokComma {
			return nil, fmt.Errorf("expected ',' or %s, got %s at offset %d", close, t.kind, t.off)
		}
	}
}
