package regex

import (
	"errors"
	"fmt"

	"fsm/internal/automaton"
)

var ErrSyntax = errors.New("regex: syntax error")

// ParseError describes why a pattern was rejected. Pos is the byte offset of
// the offending character.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string { return fmt.Sprintf("%s at position %d", e.Msg, e.Pos) }

func (e *ParseError) Unwrap() error { return ErrSyntax }

func syntaxError(pos int, msg string) error { return &ParseError{Pos: pos, Msg: msg} }

func unexpected(t token) error {
	if t.typ == tEOF {
		return syntaxError(t.pos, "unexpected end of pattern")
	}
	return syntaxError(t.pos, fmt.Sprintf("unexpected character '%c'", t.ch))
}

// Grammar, lowest precedence first:
//
//	pattern := expr ('|' expr)*
//	expr    := suffix*
//	suffix  := term ('+' | '*' | '?')*
//	term    := '.' | '(' expr ('|' expr)* ')' | '[' class ']' | literal
type parser struct {
	maxDepth int
}

func (p *parser) parse(pattern string) (Node, error) {
	c, err := newCursor(pattern)
	if err != nil {
		return nil, err
	}
	n, c, err := p.alternatives(c, 0)
	if err != nil {
		return nil, err
	}
	if !c.is(tEOF) {
		return nil, unexpected(c.tok)
	}
	return n, nil
}

func (p *parser) alternatives(c cursor, depth int) (Node, cursor, error) {
	var alts []Node
	for {
		n, next, err := p.expr(c, depth)
		if err != nil {
			return nil, c, err
		}
		alts = append(alts, n)
		if !next.is(tUnion) {
			c = next
			break
		}
		if c, err = next.advance(); err != nil {
			return nil, c, err
		}
	}
	if len(alts) == 1 {
		return alts[0], c, nil
	}
	return &Group{Alternatives: alts}, c, nil
}

func (p *parser) expr(c cursor, depth int) (Node, cursor, error) {
	var nodes []Node
	for !c.is(tEOF) && !c.is(tUnion) && !c.is(tRParen) {
		n, next, err := p.suffix(c, depth)
		if err != nil {
			return nil, c, err
		}
		nodes = append(nodes, n)
		c = next
	}
	if len(nodes) == 1 {
		return nodes[0], c, nil
	}
	return &Concatenation{Nodes: nodes}, c, nil
}

func (p *parser) suffix(c cursor, depth int) (Node, cursor, error) {
	n, c, err := p.term(c, depth)
	if err != nil {
		return nil, c, err
	}
	for {
		switch c.tok.typ {
		case tPlus:
			n = &Iteration{Node: n}
		case tStar:
			n = &Optional{Node: &Iteration{Node: n}}
		case tQMark:
			n = &Optional{Node: n}
		default:
			return n, c, nil
		}
		if c, err = c.advance(); err != nil {
			return nil, c, err
		}
	}
}

func (p *parser) term(c cursor, depth int) (Node, cursor, error) {
	switch c.tok.typ {
	case tDot:
		next, err := c.advance()
		return &Wildcard{}, next, err
	case tLParen:
		return p.group(c, depth)
	case tLBracket:
		return p.class(c)
	case tChar:
		n := &Character{Symbol: automaton.Symbol(c.tok.ch)}
		next, err := c.advance()
		return n, next, err
	default:
		return nil, c, unexpected(c.tok)
	}
}

func (p *parser) group(c cursor, depth int) (Node, cursor, error) {
	open := c.tok
	if depth >= p.maxDepth {
		return nil, c, syntaxError(open.pos, "pattern nested too deeply")
	}
	c, err := c.advance()
	if err != nil {
		return nil, c, err
	}
	n, c, err := p.alternatives(c, depth+1)
	if err != nil {
		return nil, c, err
	}
	if !c.is(tRParen) {
		return nil, c, syntaxError(open.pos, "unmatched parentheses")
	}
	c, err = c.advance()
	return n, c, err
}

// class parses the body of [...]. Operators other than ']' are literal here,
// and an unescaped '-' between two symbols forms an inclusive range.
func (p *parser) class(c cursor) (Node, cursor, error) {
	open := c.tok
	c, err := c.advance()
	if err != nil {
		return nil, c, err
	}
	set := &CharacterSet{}
	for !c.is(tRBracket) {
		if c.is(tEOF) {
			return nil, c, syntaxError(open.pos, "unmatched brackets")
		}
		if c.tok.hyphen() {
			return nil, c, syntaxError(c.tok.pos, "invalid character set")
		}
		first := c.tok
		if c, err = c.advance(); err != nil {
			return nil, c, err
		}
		last := first
		if c.tok.hyphen() {
			if c, err = c.advance(); err != nil {
				return nil, c, err
			}
			switch {
			case c.is(tEOF):
				return nil, c, syntaxError(open.pos, "unmatched brackets")
			case c.is(tRBracket):
				return nil, c, syntaxError(c.tok.pos, "invalid character set")
			}
			last = c.tok
			if c, err = c.advance(); err != nil {
				return nil, c, err
			}
		}
		if last.ch < first.ch {
			return nil, c, syntaxError(first.pos, "invalid character set")
		}
		set.Ranges = append(set.Ranges, Range{Low: automaton.Symbol(first.ch), High: automaton.Symbol(last.ch)})
	}
	c, err = c.advance()
	return set, c, err
}
