package regex

import (
	"io"
	"strings"

	"fsm/internal/automaton"
)

// Node is one element of a parsed pattern. The set of implementations is
// closed; the compiler switches over them.
type Node interface {
	node()
}

type Character struct {
	Symbol automaton.Symbol
}

// Range is an inclusive symbol range; Low == High is a single symbol.
type Range struct {
	Low, High automaton.Symbol
}

type CharacterSet struct {
	Ranges []Range
}

// Wildcard matches any one symbol of the compiler's wildcard alphabet.
type Wildcard struct{}

type Concatenation struct {
	Nodes []Node
}

// Group is a disjunction of alternatives.
type Group struct {
	Alternatives []Node
}

// Iteration is one or more repetitions.
type Iteration struct {
	Node Node
}

// Optional is zero or one occurrence.
type Optional struct {
	Node Node
}

func (*Character) node()     {}
func (*CharacterSet) node()  {}
func (*Wildcard) node()      {}
func (*Concatenation) node() {}
func (*Group) node()         {}
func (*Iteration) node()     {}
func (*Optional) node()      {}

// Format renders the tree one node per line, children indented by four spaces.
func Format(n Node) string {
	var sb strings.Builder
	_ = Dump(&sb, n)
	return sb.String()
}

func Dump(w io.Writer, n Node) error {
	d := &dumper{w: w}
	d.node(n)
	return d.err
}

type dumper struct {
	w      io.Writer
	indent int
	err    error
}

func (d *dumper) print(parts ...string) {
	if d.err != nil {
		return
	}
	_, d.err = io.WriteString(d.w, strings.Repeat("    ", d.indent)+strings.Join(parts, "")+"\n")
}

func (d *dumper) block(name string, children ...Node) {
	d.print(name, " {")
	d.indent++
	for _, c := range children {
		d.node(c)
	}
	d.indent--
	d.print("}")
}

func (d *dumper) node(n Node) {
	switch n := n.(type) {
	case *Character:
		d.print("Character { ", n.Symbol.String(), " }")
	case *CharacterSet:
		d.print("CharacterSet {")
		d.indent++
		for _, r := range n.Ranges {
			if r.Low == r.High {
				d.print("Character { ", r.Low.String(), " }")
			} else {
				d.print("Range { ", r.Low.String(), "-", r.High.String(), " }")
			}
		}
		d.indent--
		d.print("}")
	case *Wildcard:
		d.print("Wildcard {}")
	case *Concatenation:
		d.block("Concatenation", n.Nodes...)
	case *Group:
		d.block("Group", n.Alternatives...)
	case *Iteration:
		d.block("Iteration", n.Node)
	case *Optional:
		d.block("Optional", n.Node)
	}
}
