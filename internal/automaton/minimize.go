package automaton

// Reverse transposes every edge and swaps the starting and final sets.
func (f *Fsm) Reverse() *Fsm {
	n := len(f.transitions)
	r := New(n)
	for s1, row := range f.transitions {
		for s2, l := range row {
			if !l.Empty() {
				r.transitions[s2][s1] = l.clone()
			}
		}
	}
	r.alphabet = f.alphabet.Clone()
	r.starting = f.final.Clone()
	r.final = f.starting.Clone()
	return r
}

// Minimize returns the minimal deterministic automaton for the language of f
// (Brzozowski: reverse, determinize, reverse, determinize). It accepts any
// automaton, epsilon edges and several starting states included.
func (f *Fsm) Minimize() *Fsm {
	return f.Reverse().Determinize().Reverse().Determinize()
}
