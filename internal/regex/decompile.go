package regex

import (
	"strings"

	"fsm/internal/automaton"
)

// expression fragments used during state elimination; "" means no path.
const (
	none    = ""
	emptyRe = "()"
	nothing = "[]"
)

// FromAutomaton returns a pattern whose language equals that of f, by state
// elimination over a generalized automaton with a fresh entry and exit. The
// result parses with Parse but is not simplified beyond trivial cases.
func FromAutomaton(f *automaton.Fsm) string {
	n := f.StateCount()
	entry, exit := n, n+1
	size := n + 2
	r := make([][]string, size)
	for i := range r {
		r[i] = make([]string, size)
	}
	for s1, row := range f.Transitions() {
		for s2, l := range row {
			r[s1][s2] = label(l)
		}
	}
	for _, s := range f.StartingStates() {
		r[entry][s] = union(r[entry][s], emptyRe)
	}
	for _, s := range f.FinalStates() {
		r[s][exit] = union(r[s][exit], emptyRe)
	}

	for k := 0; k < n; k++ {
		loop := star(r[k][k])
		for i := 0; i < size; i++ {
			if i == k || r[i][k] == none {
				continue
			}
			for j := 0; j < size; j++ {
				if j == k || r[k][j] == none {
					continue
				}
				r[i][j] = union(r[i][j], concat(r[i][k], loop, r[k][j]))
			}
		}
		for i := 0; i < size; i++ {
			r[i][k], r[k][i] = none, none
		}
	}

	if r[entry][exit] == none {
		return nothing
	}
	return r[entry][exit]
}

func label(l automaton.Label) string {
	out := none
	if l.Epsilon() {
		out = emptyRe
	}
	if syms := l.Symbols(); len(syms) > 0 {
		out = union(out, class(syms))
	}
	return out
}

// class renders ascending symbols as one literal or a bracket expression,
// collapsing runs of three or more into ranges.
func class(syms []automaton.Symbol) string {
	if len(syms) == 1 {
		return literal(syms[0])
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < len(syms); {
		j := i
		for j+1 < len(syms) && syms[j+1] == syms[j]+1 {
			j++
		}
		switch {
		case j-i >= 2:
			sb.WriteString(literal(syms[i]) + "-" + literal(syms[j]))
		default:
			for k := i; k <= j; k++ {
				sb.WriteString(literal(syms[k]))
			}
		}
		i = j + 1
	}
	sb.WriteByte(']')
	return sb.String()
}

// literal escapes everything except ASCII letters and digits, which is
// valid both inside and outside brackets.
func literal(a automaton.Symbol) string {
	b := byte(a)
	if b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' {
		return string([]byte{b})
	}
	return string([]byte{'\\', b})
}

func union(a, b string) string {
	switch {
	case a == none:
		return b
	case b == none, a == b:
		return a
	}
	return a + "|" + b
}

func concat(parts ...string) string {
	var sb strings.Builder
	for _, p := range parts {
		if p == emptyRe || p == none {
			continue
		}
		sb.WriteString(group(p))
	}
	if sb.Len() == 0 {
		return emptyRe
	}
	return sb.String()
}

func star(x string) string {
	if x == none || x == emptyRe {
		return none
	}
	if atomic(x) {
		return x + "*"
	}
	return "(" + x + ")*"
}

// group parenthesizes x when it holds a top-level alternation.
func group(x string) string {
	depth := 0
	for i := 0; i < len(x); i++ {
		switch x[i] {
		case '\\':
			i++
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case '|':
			if depth == 0 {
				return "(" + x + ")"
			}
		}
	}
	return x
}

// atomic reports whether x is a single literal, class or parenthesized group.
func atomic(x string) bool {
	switch {
	case len(x) == 1:
		return true
	case len(x) == 2 && x[0] == '\\':
		return true
	case x[0] != '(' && x[0] != '[':
		return false
	}
	depth := 0
	for i := 0; i < len(x); i++ {
		switch x[i] {
		case '\\':
			i++
		case '(', '[':
			depth++
		case ')', ']':
			depth--
			if depth == 0 && i != len(x)-1 {
				return false
			}
		}
	}
	return true
}
