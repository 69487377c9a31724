package automaton

// Accepts simulates f on input, tracking the whole set of reachable states,
// and reports whether a final state is reachable once input is consumed.
// It works on any automaton; deterministic callers can walk edges directly.
func (f *Fsm) Accepts(input []byte) bool {
	n := len(f.transitions)
	closures := f.EpsilonClosures()
	cur := closureOf(f.starting, closures, n)
	for _, b := range input {
		if cur.None() {
			return false
		}
		cur = closureOf(f.move(cur, Symbol(b)), closures, n)
	}
	return cur.IntersectionCardinality(f.final) > 0
}

func (f *Fsm) AcceptsString(input string) bool { return f.Accepts([]byte(input)) }
