package automaton

// dead stands for the implicit rejecting sink of a partial DFA.
const dead = -1

type pair struct{ a, b int }

// Product runs a and b in lockstep over the union of their alphabets and
// accepts where keep(acceptedByA, acceptedByB) holds. Both operands are
// determinized first; the result is deterministic and unminimized. When
// keep(false, false) holds, words both operands have dropped end in an
// accepting sink.
func Product(a, b *Fsm, keep func(bool, bool) bool) *Fsm {
	da, db := a.Determinize(), b.Determinize()
	alphabet := unionSymbols(da.Alphabet(), db.Alphabet())
	ta, tb := da.table(), db.table()

	accepts := func(p pair) bool {
		return keep(p.a != dead && da.IsFinal(p.a), p.b != dead && db.IsFinal(p.b))
	}

	sink := keep(false, false)
	start := pair{startOf(da), startOf(db)}
	index := map[pair]int{start: 0}
	queue := []pair{start}
	var adj [][][]int
	var final []int
	for len(adj) < len(queue) {
		p := queue[len(adj)]
		if accepts(p) {
			final = append(final, len(adj))
		}
		row := make([][]int, len(alphabet)+1)
		for i, sym := range alphabet {
			np := pair{step(ta, p.a, sym), step(tb, p.b, sym)}
			if np.a == dead && np.b == dead && !sink {
				continue
			}
			idx, ok := index[np]
			if !ok {
				idx = len(queue)
				index[np] = idx
				queue = append(queue, np)
			}
			row[i] = []int{idx}
		}
		adj = append(adj, row)
	}

	out, err := FromIndexed(alphabet, adj, []int{0}, final)
	if err != nil {
		panic("automaton: product: " + err.Error())
	}
	return out
}

func Intersect(a, b *Fsm) *Fsm { return Product(a, b, func(x, y bool) bool { return x && y }) }

func Union(a, b *Fsm) *Fsm { return Product(a, b, func(x, y bool) bool { return x || y }) }

// Difference accepts the words of a that b rejects.
func Difference(a, b *Fsm) *Fsm { return Product(a, b, func(x, y bool) bool { return x && !y }) }

// Complement accepts every word over f's alphabet plus extra that f rejects.
// The result is a complete DFA.
func Complement(f *Fsm, extra ...Symbol) *Fsm {
	d := f.Determinize()
	alphabet := unionSymbols(d.Alphabet(), extra)
	t := d.table()
	n := d.StateCount()
	sink := n // absorbs missing moves, possibly unreachable

	adj := make([][][]int, n+1)
	var final []int
	for s := 0; s <= n; s++ {
		row := make([][]int, len(alphabet)+1)
		for i, sym := range alphabet {
			next := dead
			if s < n {
				next = step(t, s, sym)
			}
			if next == dead {
				next = sink
			}
			row[i] = []int{next}
		}
		adj[s] = row
		if s == sink || !d.IsFinal(s) {
			final = append(final, s)
		}
	}

	out, err := FromIndexed(alphabet, adj, []int{0}, final)
	if err != nil {
		panic("automaton: complement: " + err.Error())
	}
	return out
}

// table maps state*256+symbol to the destination of a deterministic
// automaton, dead where there is none.
func (f *Fsm) table() []int {
	n := len(f.transitions)
	t := make([]int, n*int(symbolCount))
	for i := range t {
		t[i] = dead
	}
	for s1, row := range f.transitions {
		for s2, l := range row {
			for _, a := range l.Symbols() {
				t[s1*int(symbolCount)+int(a)] = s2
			}
		}
	}
	return t
}

func step(t []int, s int, a Symbol) int {
	if s == dead {
		return dead
	}
	return t[s*int(symbolCount)+int(a)]
}

func startOf(d *Fsm) int {
	if d.StateCount() == 0 {
		return dead
	}
	return 0
}

func unionSymbols(a, b []Symbol) []Symbol {
	var seen [symbolCount]bool
	for _, x := range a {
		seen[x] = true
	}
	for _, x := range b {
		if x.Valid() {
			seen[x] = true
		}
	}
	var out []Symbol
	for i, ok := range seen {
		if ok {
			out = append(out, Symbol(i))
		}
	}
	return out
}
