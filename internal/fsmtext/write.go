package fsmtext

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fsm/internal/automaton"
)

// Write emits f in canonical form: header, marks, then edges ordered by
// source, destination and symbol, with epsilon first. Parse(Write(f))
// reproduces f exactly.
func Write(w io.Writer, f *automaton.Fsm) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "states %d\n", f.StateCount())
	if st := f.StartingStates(); len(st) > 0 {
		fmt.Fprintf(bw, "start %s\n", joinInts(st))
	}
	if fin := f.FinalStates(); len(fin) > 0 {
		fmt.Fprintf(bw, "final %s\n", joinInts(fin))
	}
	for s1, row := range f.Transitions() {
		for s2, l := range row {
			for _, a := range l.All() {
				fmt.Fprintf(bw, "%d -> %d %s\n", s1, s2, Quote(a))
			}
		}
	}
	return bw.Flush()
}

func Format(f *automaton.Fsm) string {
	var sb strings.Builder
	_ = Write(&sb, f)
	return sb.String()
}

// Quote renders a symbol the way Parse reads it back.
func Quote(a automaton.Symbol) string {
	switch {
	case a == automaton.Epsilon:
		return "eps"
	case a == '\\' || a == '\'':
		return `'\` + string(rune(a)) + `'`
	case a == '\n':
		return `'\n'`
	case a == '\t':
		return `'\t'`
	case a >= ' ' && a <= '~':
		return "'" + string(rune(a)) + "'"
	}
	return fmt.Sprintf(`'\x%02x'`, int(a))
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ", ")
}
