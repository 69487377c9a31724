// Package fsmtext reads and writes automata in a small line-oriented text
// format:
//
//	# three states, accepts "ab"
//	states 3
//	start 0
//	final 2
//	0 -> 1 'a'
//	1 -> 2 'b'
//	2 -> 2 eps
//
// Symbols are quoted bytes. Inside quotes \\, \', \n, \t and \xHH are
// recognised. The keyword eps stands for an epsilon edge.
package fsmtext

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"fsm/internal/automaton"
)

// MaxStates caps the declared state count; the transition matrix is
// quadratic in it.
const MaxStates = 4096

var ErrTooManyStates = errors.New("too many states")

type document struct {
	Pos     lexer.Position
	States  int       `parser:"'states' @Int"`
	Clauses []*clause `parser:"@@*"`
}

type clause struct {
	Pos      lexer.Position
	Starting []int `parser:"  'start' @Int (',' @Int)*"`
	Final    []int `parser:"| 'final' @Int (',' @Int)*"`
	Edge     *edge `parser:"| @@"`
}

type edge struct {
	From   int     `parser:"@Int '->'"`
	To     int     `parser:"@Int"`
	Symbol *symbol `parser:"@@"`
}

type symbol struct {
	Epsilon bool  `parser:"  @'eps'"`
	Char    *char `parser:"| @Char"`
}

type char automaton.Symbol

func (c *char) Capture(values []string) error {
	a, err := unquote(values[0])
	if err != nil {
		return err
	}
	*c = char(a)
	return nil
}

var parser = participle.MustBuild[document](participle.Lexer(definition{}))

// Parse reads one automaton from r. name is used in error positions.
func Parse(name string, r io.Reader) (*automaton.Fsm, error) {
	doc, err := parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("fsmtext: %w", err)
	}
	return doc.build()
}

func ParseString(name, src string) (*automaton.Fsm, error) {
	return Parse(name, strings.NewReader(src))
}

func (d *document) build() (*automaton.Fsm, error) {
	if d.States > MaxStates {
		return nil, fmt.Errorf("fsmtext: %s: %w: %d > %d", d.Pos, ErrTooManyStates, d.States, MaxStates)
	}
	f := automaton.New(d.States)
	for _, c := range d.Clauses {
		if err := c.apply(f); err != nil {
			return nil, fmt.Errorf("fsmtext: %s: %w", c.Pos, err)
		}
	}
	return f, nil
}

func (c *clause) apply(f *automaton.Fsm) error {
	switch {
	case c.Edge != nil:
		a := automaton.Epsilon
		if !c.Edge.Symbol.Epsilon {
			a = automaton.Symbol(*c.Edge.Symbol.Char)
		}
		return f.Connect(c.Edge.From, c.Edge.To, a)
	case c.Starting != nil:
		for _, s := range c.Starting {
			if err := f.SetStarting(s, true); err != nil {
				return err
			}
		}
	default:
		for _, s := range c.Final {
			if err := f.SetFinal(s, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func unquote(lit string) (automaton.Symbol, error) {
	if len(lit) < 3 || lit[0] != '\'' || lit[len(lit)-1] != '\'' {
		return 0, fmt.Errorf("malformed symbol %s", lit)
	}
	body := lit[1 : len(lit)-1]
	if body[0] != '\\' {
		if len(body) != 1 {
			return 0, fmt.Errorf("malformed symbol %s", lit)
		}
		return automaton.Symbol(body[0]), nil
	}
	switch {
	case len(body) == 2:
		switch body[1] {
		case '\\', '\'':
			return automaton.Symbol(body[1]), nil
		case 'n':
			return '\n', nil
		case 't':
			return '\t', nil
		}
	case len(body) == 4 && body[1] == 'x':
		v, err := strconv.ParseUint(body[2:], 16, 8)
		if err == nil {
			return automaton.Symbol(v), nil
		}
	}
	return 0, fmt.Errorf("unknown escape %s", lit)
}
