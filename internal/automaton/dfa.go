package automaton

import (
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// EpsilonClosures returns, for every state, the set of states reachable from
// it through epsilon edges alone, the state itself included.
func (f *Fsm) EpsilonClosures() []*bitset.BitSet {
	n := len(f.transitions)
	succ := f.epsilonSuccessors()
	closures := make([]*bitset.BitSet, n)
	done := bitset.New(uint(n))

	stack := make([]int, 0, n)
	for s := 0; s < n; s++ {
		c := bitset.New(uint(n))
		c.Set(uint(s))
		stack = append(stack[:0], s)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, next := range succ[cur] {
				if c.Test(uint(next)) {
					continue
				}
				if done.Test(uint(next)) {
					// already complete, nothing beyond it to expand
					c.InPlaceUnion(closures[next])
					continue
				}
				c.Set(uint(next))
				stack = append(stack, next)
			}
		}
		closures[s] = c
		done.Set(uint(s))
	}
	return closures
}

func (f *Fsm) epsilonSuccessors() [][]int {
	succ := make([][]int, len(f.transitions))
	for s1, row := range f.transitions {
		for s2, l := range row {
			if l.epsilon {
				succ[s1] = append(succ[s1], s2)
			}
		}
	}
	return succ
}

// closureOf unions the epsilon closures of every member of set.
func closureOf(set *bitset.BitSet, closures []*bitset.BitSet, n int) *bitset.BitSet {
	out := bitset.New(uint(n))
	for s, ok := set.NextSet(0); ok; s, ok = set.NextSet(s + 1) {
		out.InPlaceUnion(closures[s])
	}
	return out
}

// move collects every state reachable from a member of set on symbol a.
func (f *Fsm) move(set *bitset.BitSet, a Symbol) *bitset.BitSet {
	n := len(f.transitions)
	out := bitset.New(uint(n))
	for s, ok := set.NextSet(0); ok; s, ok = set.NextSet(s + 1) {
		for s2, l := range f.transitions[s] {
			if l.Has(a) {
				out.Set(uint(s2))
			}
		}
	}
	return out
}

func setKey(set *bitset.BitSet) string {
	var sb strings.Builder
	for s, ok := set.NextSet(0); ok; s, ok = set.NextSet(s + 1) {
		sb.WriteString(strconv.FormatUint(uint64(s), 10))
		sb.WriteByte(',')
	}
	return sb.String()
}

// Determinize runs the subset construction. State 0 of the result is the
// closure of all starting states; each state has at most one destination per
// symbol, and a missing destination means the symbol is rejected there.
func (f *Fsm) Determinize() *Fsm {
	n := len(f.transitions)
	closures := f.EpsilonClosures()
	alphabet := f.Alphabet()

	start := closureOf(f.starting, closures, n)
	metas := []*bitset.BitSet{start}
	index := map[string]int{setKey(start): 0}

	var adj [][][]int
	for len(adj) < len(metas) {
		cur := metas[len(adj)]
		row := make([][]int, len(alphabet)+1)
		for i, a := range alphabet {
			next := closureOf(f.move(cur, a), closures, n)
			if next.None() {
				continue
			}
			k := setKey(next)
			idx, ok := index[k]
			if !ok {
				idx = len(metas)
				index[k] = idx
				metas = append(metas, next)
			}
			row[i] = []int{idx}
		}
		adj = append(adj, row)
	}

	var final []int
	for i, m := range metas {
		if m.IntersectionCardinality(f.final) > 0 {
			final = append(final, i)
		}
	}

	d, err := FromIndexed(alphabet, adj, []int{0}, final)
	if err != nil {
		// adj only references discovered meta-states
		panic(err)
	}
	return d
}
