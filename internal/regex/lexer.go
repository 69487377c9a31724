package regex

type tokenType int

const (
	tEOF      tokenType = iota
	tChar               // literal byte
	tLParen             // (
	tRParen             // )
	tStar               // *
	tPlus               // +
	tQMark              // ?
	tDot                // .
	tUnion              // |
	tLBracket           // [
	tRBracket           // ]
)

var operators = map[byte]tokenType{
	'(': tLParen,
	')': tRParen,
	'*': tStar,
	'+': tPlus,
	'?': tQMark,
	'.': tDot,
	'|': tUnion,
	'[': tLBracket,
	']': tRBracket,
}

type token struct {
	typ     tokenType
	ch      byte // raw byte, kept for operators too
	escaped bool // produced by a backslash escape
	pos     int
}

// hyphen reports an unescaped '-', the range separator inside [...].
func (t token) hyphen() bool { return t.typ == tChar && t.ch == '-' && !t.escaped }

// cursor is the whole lexer state. It is a value: advancing returns a new
// cursor and leaves the old one usable.
type cursor struct {
	src  string
	next int // offset of the first unread byte
	tok  token
}

func newCursor(src string) (cursor, error) {
	return cursor{src: src}.advance()
}

func (c cursor) is(typ tokenType) bool { return c.tok.typ == typ }

func (c cursor) advance() (cursor, error) {
	if c.next >= len(c.src) {
		c.tok = token{typ: tEOF, pos: len(c.src)}
		return c, nil
	}
	pos := c.next
	b := c.src[pos]
	if b == '\\' {
		if pos+1 >= len(c.src) {
			return c, syntaxError(pos, "invalid escape sequence")
		}
		c.tok = token{typ: tChar, ch: c.src[pos+1], escaped: true, pos: pos}
		c.next = pos + 2
		return c, nil
	}
	c.next = pos + 1
	if typ, ok := operators[b]; ok {
		c.tok = token{typ: typ, ch: b, pos: pos}
		return c, nil
	}
	c.tok = token{typ: tChar, ch: b, pos: pos}
	return c, nil
}
