package automaton

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

var (
	ErrNotAtomic   = errors.New("automaton is not atomic")
	ErrStateRange  = errors.New("state index out of range")
	ErrSymbolRange = errors.New("symbol out of range")
	ErrShape       = errors.New("transition relation is not square")
)

// Fsm is a nondeterministic finite automaton over byte symbols with epsilon
// moves. States are the indices [0, N); N is fixed once the value exists.
// Only the edges and the starting/final marks change after construction.
type Fsm struct {
	alphabet    *bitset.BitSet
	transitions [][]Label
	starting    *bitset.BitSet
	final       *bitset.BitSet
}

// New returns an automaton with n states and no edges.
func New(n int) *Fsm {
	if n < 0 {
		n = 0
	}
	f := &Fsm{
		alphabet:    bitset.New(symbolCount),
		transitions: make([][]Label, n),
		starting:    bitset.New(uint(n)),
		final:       bitset.New(uint(n)),
	}
	for i := range f.transitions {
		f.transitions[i] = make([]Label, n)
	}
	return f
}

// FromTransitions adopts a full relation; t[s1][s2] holds the symbols on the
// edges from s1 to s2. The alphabet is rebuilt from the relation.
func FromTransitions(t [][]Label, starting, final []int) (*Fsm, error) {
	f := New(len(t))
	for s1, row := range t {
		if len(row) != len(t) {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShape, s1, len(row), len(t))
		}
		for s2, l := range row {
			f.transitions[s1][s2] = l.clone()
		}
	}
	f.buildAlphabet()
	if err := f.mark(starting, final); err != nil {
		return nil, err
	}
	return f, nil
}

// FromIndexed rebuilds an automaton from per-symbol adjacency: adj[s][i]
// lists the destinations of s on alphabet[i], and the trailing slot
// adj[s][len(alphabet)] lists its epsilon destinations.
func FromIndexed(alphabet []Symbol, adj [][][]int, starting, final []int) (*Fsm, error) {
	f := New(len(adj))
	for s1, row := range adj {
		if len(row) > len(alphabet)+1 {
			return nil, fmt.Errorf("%w: state %d has %d symbol slots, want at most %d", ErrShape, s1, len(row), len(alphabet)+1)
		}
		for i, dests := range row {
			a := Epsilon
			if i < len(alphabet) {
				a = alphabet[i]
			}
			for _, s2 := range dests {
				if err := f.Connect(s1, s2, a); err != nil {
					return nil, err
				}
			}
		}
	}
	if err := f.mark(starting, final); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Fsm) mark(starting, final []int) error {
	for _, s := range starting {
		if err := f.SetStarting(s, true); err != nil {
			return err
		}
	}
	for _, s := range final {
		if err := f.SetFinal(s, true); err != nil {
			return err
		}
	}
	return nil
}

func (f *Fsm) checkState(s int) error {
	if s < 0 || s >= len(f.transitions) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrStateRange, s, len(f.transitions))
	}
	return nil
}

// Connect adds a to the edge set from s1 to s2. Adding a symbol twice is a
// no-op.
func (f *Fsm) Connect(s1, s2 int, a Symbol) error {
	if err := f.checkState(s1); err != nil {
		return err
	}
	if err := f.checkState(s2); err != nil {
		return err
	}
	if a != Epsilon && !a.Valid() {
		return fmt.Errorf("%w: %d", ErrSymbolRange, int(a))
	}
	f.connect(s1, s2, a)
	return nil
}

func (f *Fsm) connect(s1, s2 int, a Symbol) {
	f.transitions[s1][s2].add(a)
	if a != Epsilon {
		f.alphabet.Set(uint(a))
	}
}

func (f *Fsm) SetStarting(s int, value bool) error {
	if err := f.checkState(s); err != nil {
		return err
	}
	f.starting.SetTo(uint(s), value)
	return nil
}

func (f *Fsm) SetFinal(s int, value bool) error {
	if err := f.checkState(s); err != nil {
		return err
	}
	f.final.SetTo(uint(s), value)
	return nil
}

func (f *Fsm) StateCount() int { return len(f.transitions) }

func (f *Fsm) IsStarting(s int) bool { return s >= 0 && f.starting.Test(uint(s)) }

func (f *Fsm) IsFinal(s int) bool { return s >= 0 && f.final.Test(uint(s)) }

// Transitions returns a copy of the relation.
func (f *Fsm) Transitions() [][]Label {
	out := make([][]Label, len(f.transitions))
	for s1, row := range f.transitions {
		out[s1] = make([]Label, len(row))
		for s2, l := range row {
			out[s1][s2] = l.clone()
		}
	}
	return out
}

// Label returns a copy of the symbols on the edges from s1 to s2.
func (f *Fsm) Label(s1, s2 int) Label {
	if f.checkState(s1) != nil || f.checkState(s2) != nil {
		return Label{}
	}
	return f.transitions[s1][s2].clone()
}

func (f *Fsm) StartingStates() []int { return members(f.starting) }

func (f *Fsm) FinalStates() []int { return members(f.final) }

// Alphabet lists the ordinary symbols used anywhere in the relation.
func (f *Fsm) Alphabet() []Symbol {
	out := make([]Symbol, 0, f.alphabet.Count())
	for i, ok := f.alphabet.NextSet(0); ok; i, ok = f.alphabet.NextSet(i + 1) {
		out = append(out, Symbol(i))
	}
	return out
}

// Clone returns an independent copy.
func (f *Fsm) Clone() *Fsm {
	return &Fsm{
		alphabet:    f.alphabet.Clone(),
		transitions: f.Transitions(),
		starting:    f.starting.Clone(),
		final:       f.final.Clone(),
	}
}

// IsDeterministic reports whether f has at most one starting state, no
// epsilon edges and at most one destination per (state, symbol).
func (f *Fsm) IsDeterministic() bool {
	if f.starting.Count() > 1 {
		return false
	}
	seen := bitset.New(symbolCount)
	for _, row := range f.transitions {
		seen.ClearAll()
		for _, l := range row {
			if l.epsilon {
				return false
			}
			if l.symbols == nil {
				continue
			}
			if seen.IntersectionCardinality(l.symbols) > 0 {
				return false
			}
			seen.InPlaceUnion(l.symbols)
		}
	}
	return true
}

// EnsureAtomic fails unless f has exactly one starting state and exactly one
// final state.
func (f *Fsm) EnsureAtomic() error {
	_, _, err := f.ends()
	return err
}

func (f *Fsm) ends() (start, end int, err error) {
	ns, nf := f.starting.Count(), f.final.Count()
	if ns != 1 || nf != 1 {
		return 0, 0, fmt.Errorf("%w: %d starting and %d final states", ErrNotAtomic, ns, nf)
	}
	s, _ := f.starting.NextSet(0)
	e, _ := f.final.NextSet(0)
	return int(s), int(e), nil
}

func (f *Fsm) buildAlphabet() {
	f.alphabet.ClearAll()
	for _, row := range f.transitions {
		for _, l := range row {
			if l.symbols != nil {
				f.alphabet.InPlaceUnion(l.symbols)
			}
		}
	}
}

func members(b *bitset.BitSet) []int {
	out := make([]int, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}
