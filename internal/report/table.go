// Package report renders automata as transition tables for terminals.
package report

import (
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/exp/maps"

	"fsm/internal/automaton"
	"fsm/internal/fsmtext"
)

// Row is one line of a transition table: every destination reachable from
// State on Symbol.
type Row struct {
	State   int
	Symbol  automaton.Symbol
	Targets []int
}

// Rows lists the transition relation grouped by source and symbol, sources
// ascending and epsilon before ordinary symbols. A state without outgoing
// edges yields no rows.
func Rows(f *automaton.Fsm) []Row {
	var rows []Row
	for s1, row := range f.Transitions() {
		targets := map[automaton.Symbol][]int{}
		for s2, l := range row {
			for _, a := range l.All() {
				targets[a] = append(targets[a], s2)
			}
		}
		symbols := maps.Keys(targets)
		slices.Sort(symbols)
		for _, a := range symbols {
			rows = append(rows, Row{State: s1, Symbol: a, Targets: targets[a]})
		}
	}
	return rows
}

// StateName marks starting states with a leading "->" and final states with
// a trailing "*".
func StateName(f *automaton.Fsm, s int) string {
	name := strconv.Itoa(s)
	if f.IsStarting(s) {
		name = "->" + name
	}
	if f.IsFinal(s) {
		name += "*"
	}
	return name
}

func Table(w io.Writer, f *automaton.Fsm) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"State", "Symbol", "Targets"})

	seen := make([]bool, f.StateCount())
	for _, r := range Rows(f) {
		seen[r.State] = true
		if err := table.Append([]string{StateName(f, r.State), fsmtext.Quote(r.Symbol), joinInts(r.Targets)}); err != nil {
			return err
		}
	}
	// marked states without edges would otherwise vanish from the table
	for s, ok := range seen {
		if !ok && (f.IsStarting(s) || f.IsFinal(s)) {
			if err := table.Append([]string{StateName(f, s), "", ""}); err != nil {
				return err
			}
		}
	}
	return table.Render()
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ", ")
}
