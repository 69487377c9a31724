package regex

import (
	"fmt"

	"fsm/internal/automaton"
)

// DefaultMaxDepth bounds parenthesis nesting so hostile patterns cannot
// exhaust the stack.
const DefaultMaxDepth = 512

type Config struct {
	// WildcardAlphabet is what '.' matches. Nil means printable ASCII;
	// an empty non-nil slice makes '.' match nothing. Epsilon and other
	// invalid symbols are dropped.
	WildcardAlphabet []automaton.Symbol
	MaxDepth         int
}

func DefaultConfig() Config {
	return Config{
		WildcardAlphabet: printableASCII(),
		MaxDepth:         DefaultMaxDepth,
	}
}

func printableASCII() []automaton.Symbol {
	out := make([]automaton.Symbol, 0, 0x7f-0x20)
	for a := automaton.Symbol(0x20); a < 0x7f; a++ {
		out = append(out, a)
	}
	return out
}

// Compiler turns patterns into automata under a fixed Config. It holds no
// mutable state and is safe for concurrent use.
type Compiler struct {
	cfg Config
}

func NewCompiler(cfg Config) *Compiler {
	if cfg.WildcardAlphabet == nil {
		cfg.WildcardAlphabet = printableASCII()
	} else {
		// an epsilon entry would let '.' match the empty word
		valid := make([]automaton.Symbol, 0, len(cfg.WildcardAlphabet))
		for _, a := range cfg.WildcardAlphabet {
			if a.Valid() {
				valid = append(valid, a)
			}
		}
		cfg.WildcardAlphabet = valid
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return &Compiler{cfg: cfg}
}

func (c *Compiler) Config() Config { return c.cfg }

func (c *Compiler) Parse(pattern string) (Node, error) {
	p := &parser{maxDepth: c.cfg.MaxDepth}
	n, err := p.parse(pattern)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", pattern, err)
	}
	return n, nil
}

// Compile returns the raw Thompson automaton for pattern, with exactly one
// starting and one final state.
func (c *Compiler) Compile(pattern string) (*automaton.Fsm, error) {
	n, err := c.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return c.CompileNode(n)
}

// Build returns the minimal deterministic automaton for pattern.
func (c *Compiler) Build(pattern string) (*automaton.Fsm, error) {
	f, err := c.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return f.Minimize(), nil
}

func (c *Compiler) New(pattern string) (*Regex, error) {
	f, err := c.Build(pattern)
	if err != nil {
		return nil, err
	}
	return newRegex(pattern, f), nil
}

func (c *Compiler) CompileNode(n Node) (*automaton.Fsm, error) {
	switch n := n.(type) {
	case *Character:
		return edge(n.Symbol)
	case *CharacterSet:
		var symbols []automaton.Symbol
		for _, r := range n.Ranges {
			for a := r.Low; a <= r.High; a++ {
				symbols = append(symbols, a)
			}
		}
		return edge(symbols...)
	case *Wildcard:
		return edge(c.cfg.WildcardAlphabet...)
	case *Concatenation:
		fsms, err := c.compileAll(n.Nodes)
		if err != nil {
			return nil, err
		}
		return automaton.Concatenation(fsms...)
	case *Group:
		fsms, err := c.compileAll(n.Alternatives)
		if err != nil {
			return nil, err
		}
		return automaton.Disjunction(fsms...)
	case *Iteration:
		f, err := c.CompileNode(n.Node)
		if err != nil {
			return nil, err
		}
		return automaton.Iteration(f)
	case *Optional:
		f, err := c.CompileNode(n.Node)
		if err != nil {
			return nil, err
		}
		return automaton.Option(f)
	case nil:
		return nil, fmt.Errorf("regex: nil node")
	default:
		return nil, fmt.Errorf("regex: unknown node %T", n)
	}
}

func (c *Compiler) compileAll(nodes []Node) ([]*automaton.Fsm, error) {
	fsms := make([]*automaton.Fsm, 0, len(nodes))
	for _, n := range nodes {
		f, err := c.CompileNode(n)
		if err != nil {
			return nil, err
		}
		fsms = append(fsms, f)
	}
	return fsms, nil
}

// edge is the two-state automaton 0 -> 1 over symbols. With no symbols it
// accepts nothing.
func edge(symbols ...automaton.Symbol) (*automaton.Fsm, error) {
	f := automaton.New(2)
	f.SetStarting(0, true)
	f.SetFinal(1, true)
	for _, a := range symbols {
		if err := f.Connect(0, 1, a); err != nil {
			return nil, err
		}
	}
	return f, nil
}
