package regex

import (
	"errors"
	"strings"
	"testing"
)

func TestLexerTokens(t *testing.T) {
	c, err := newCursor(`a\*|()[d-f].`)
	if err != nil {
		t.Fatal(err)
	}
	want := []tokenType{
		tChar, tChar, tUnion, tLParen, tRParen,
		tLBracket, tChar, tChar, tChar, tRBracket, tDot, tEOF,
	}
	for i, typ := range want {
		if c.tok.typ != typ {
			t.Fatalf("tok %d want %v got %v", i, typ, c.tok.typ)
		}
		if i == 1 && (!c.tok.escaped || c.tok.ch != '*') {
			t.Fatalf("tok 1 should be an escaped '*': %+v", c.tok)
		}
		if i == 7 && !c.tok.hyphen() {
			t.Fatalf("tok 7 should be a bare hyphen: %+v", c.tok)
		}
		if c, err = c.advance(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCursorIsAValue(t *testing.T) {
	c0, err := newCursor("ab")
	if err != nil {
		t.Fatal(err)
	}
	c1, err := c0.advance()
	if err != nil {
		t.Fatal(err)
	}
	if c0.tok.ch != 'a' || c1.tok.ch != 'b' {
		t.Fatalf("advance modified its receiver: %+v %+v", c0.tok, c1.tok)
	}
	// the same partial state can be resumed twice
	again, _ := c0.advance()
	if again != c1 {
		t.Fatal("advance is not deterministic")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		pattern string
		pos     int
		msg     string
	}{
		{"(", 0, "unmatched parentheses"},
		{"(a|b", 0, "unmatched parentheses"},
		{"a(b(c)", 1, "unmatched parentheses"},
		{"[a-", 0, "unmatched brackets"},
		{"[ab", 0, "unmatched brackets"},
		{"[", 0, "unmatched brackets"},
		{`a\`, 1, "invalid escape sequence"},
		{")", 0, "unexpected character ')'"},
		{"a)", 1, "unexpected character ')'"},
		{"]", 0, "unexpected character ']'"},
		{"*a", 0, "unexpected character '*'"},
		{"a|+", 2, "unexpected character '+'"},
		{"[z-a]", 1, "invalid character set"},
		{"[-a]", 1, "invalid character set"},
		{"[a-]", 3, "invalid character set"},
		{"[a--]", 1, "invalid character set"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n, err := Parse(tt.pattern)
			if n != nil {
				t.Fatalf("partial tree returned: %s", Format(n))
			}
			if !errors.Is(err, ErrSyntax) {
				t.Fatalf("want ErrSyntax got %v", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("want *ParseError got %T", err)
			}
			if pe.Pos != tt.pos || pe.Msg != tt.msg {
				t.Fatalf("got %q at %d want %q at %d", pe.Msg, pe.Pos, tt.msg, tt.pos)
			}
			if f, err := Compile(tt.pattern); f != nil || err == nil {
				t.Fatal("compile must fail without an automaton")
			}
		})
	}
}

func TestParseDepthLimit(t *testing.T) {
	c := NewCompiler(Config{MaxDepth: 2})
	if _, err := c.Parse("((a))"); err != nil {
		t.Fatalf("depth 2 rejected: %v", err)
	}
	_, err := c.Parse("(((a)))")
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Pos != 2 {
		t.Fatalf("want nesting error at 2 got %v", err)
	}

	deep := strings.Repeat("(", 10000) + "a" + strings.Repeat(")", 10000)
	if _, err := Parse(deep); !errors.Is(err, ErrSyntax) {
		t.Fatalf("deep pattern: %v", err)
	}
}

func TestParseTree(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"a", "Character { a }\n"},
		{"", "Concatenation {\n}\n"},
		{"()", "Concatenation {\n}\n"},
		{"(a)", "Character { a }\n"},
		{"a(b|c)+d", `Concatenation {
    Character { a }
    Iteration {
        Group {
            Character { b }
            Character { c }
        }
    }
    Character { d }
}
`},
		{"a*", `Optional {
    Iteration {
        Character { a }
    }
}
`},
		{"a|bc?", `Group {
    Character { a }
    Concatenation {
        Character { b }
        Optional {
            Character { c }
        }
    }
}
`},
		{"[a-cx]", `CharacterSet {
    Range { a-c }
    Character { x }
}
`},
		{`[a\-z]`, `CharacterSet {
    Character { a }
    Character { - }
    Character { z }
}
`},
		{"[.*(]", `CharacterSet {
    Character { . }
    Character { * }
    Character { ( }
}
`},
		{`[\]]`, `CharacterSet {
    Character { ] }
}
`},
		{"[]", "CharacterSet {\n}\n"},
		{`.\.`, `Concatenation {
    Wildcard {}
    Character { . }
}
`},
		{"|", `Group {
    Concatenation {
    }
    Concatenation {
    }
}
`},
	}
	for _, tt := range tests {
		n, err := Parse(tt.pattern)
		if err != nil {
			t.Errorf("parse %q: %v", tt.pattern, err)
			continue
		}
		if got := Format(n); got != tt.want {
			t.Errorf("parse %q:\n%s\nwant:\n%s", tt.pattern, got, tt.want)
		}
	}
}
