package automaton

import "fmt"

// splice copies every edge of src into dst with both endpoints shifted by
// offset and returns the shifted start and end of src. dst must have room
// for the states [offset, offset+src.StateCount()).
func splice(dst, src *Fsm, offset int) (start, end int) {
	for s1, row := range src.transitions {
		for s2, l := range row {
			if l.Empty() {
				continue
			}
			dst.transitions[offset+s1][offset+s2].merge(l)
		}
	}
	dst.alphabet.InPlaceUnion(src.alphabet)
	s, e, _ := src.ends()
	return offset + s, offset + e
}

// frame allocates a global start (state 0) and a global end (last state)
// around copies of every operand, which must all be atomic.
func frame(op string, fsms []*Fsm) (*Fsm, error) {
	total := 2
	for i, f := range fsms {
		if err := f.EnsureAtomic(); err != nil {
			return nil, fmt.Errorf("%s: operand %d: %w", op, i, err)
		}
		total += f.StateCount()
	}
	res := New(total)
	res.starting.Set(0)
	res.final.Set(uint(total - 1))
	return res, nil
}

// Concatenation chains the operands with epsilon edges:
// start -> f0 -> f1 -> ... -> end.
func Concatenation(fsms ...*Fsm) (*Fsm, error) {
	res, err := frame("concatenation", fsms)
	if err != nil {
		return nil, err
	}
	prev, offset := 0, 1
	for _, f := range fsms {
		s, e := splice(res, f, offset)
		res.connect(prev, s, Epsilon)
		prev = e
		offset += f.StateCount()
	}
	res.connect(prev, res.StateCount()-1, Epsilon)
	return res, nil
}

// Disjunction joins the operands in parallel between a fresh start and end.
func Disjunction(fsms ...*Fsm) (*Fsm, error) {
	res, err := frame("disjunction", fsms)
	if err != nil {
		return nil, err
	}
	end, offset := res.StateCount()-1, 1
	for _, f := range fsms {
		s, e := splice(res, f, offset)
		res.connect(0, s, Epsilon)
		res.connect(e, end, Epsilon)
		offset += f.StateCount()
	}
	return res, nil
}

// Option adds an epsilon edge from the start to the end of an atomic
// automaton, so zero occurrences are accepted.
func Option(f *Fsm) (*Fsm, error) {
	s, e, err := f.ends()
	if err != nil {
		return nil, fmt.Errorf("option: %w", err)
	}
	res := f.Clone()
	res.connect(s, e, Epsilon)
	return res, nil
}

// Iteration adds an epsilon edge from the end back to the start of an atomic
// automaton (one or more repetitions). Zero or more is Option(Iteration(f)).
func Iteration(f *Fsm) (*Fsm, error) {
	s, e, err := f.ends()
	if err != nil {
		return nil, fmt.Errorf("iteration: %w", err)
	}
	res := f.Clone()
	res.connect(e, s, Epsilon)
	return res, nil
}
