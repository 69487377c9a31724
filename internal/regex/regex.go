// Package regex compiles a small regular expression language into finite
// automata.
//
// Supported syntax: literals, '\' escapes, '.', '|', grouping with
// parentheses, bracket classes with ranges, and the '+', '*', '?' suffixes.
// Match tests a whole input against a pattern; FindAll reports matching
// substrings.
package regex

import (
	"fsm/internal/automaton"
)

const symbols = int(automaton.MaxSymbol) + 1

// Regex is a compiled pattern. Matching walks a flat transition table built
// from the minimal automaton. A Regex is immutable and safe for concurrent
// use.
type Regex struct {
	pattern string
	fsm     *automaton.Fsm

	start int     // -1 when the language is empty
	next  []int32 // next[s*symbols+a], -1 for no move
	final []bool
}

func newRegex(pattern string, f *automaton.Fsm) *Regex {
	n := f.StateCount()
	re := &Regex{
		pattern: pattern,
		fsm:     f,
		start:   -1,
		next:    make([]int32, n*symbols),
		final:   make([]bool, n),
	}
	for i := range re.next {
		re.next[i] = -1
	}
	if st := f.StartingStates(); len(st) > 0 {
		re.start = st[0]
	}
	for s1, row := range f.Transitions() {
		for s2, l := range row {
			for _, a := range l.Symbols() {
				re.next[s1*symbols+int(a)] = int32(s2)
			}
		}
		re.final[s1] = f.IsFinal(s1)
	}
	return re
}

func (re *Regex) Match(s string) bool { return walk(re, s) }

func (re *Regex) MatchBytes(b []byte) bool { return walk(re, b) }

func walk[T string | []byte](re *Regex, in T) bool {
	st := re.start
	if st < 0 {
		return false
	}
	for i := 0; i < len(in); i++ {
		if st = int(re.next[st*symbols+int(in[i])]); st < 0 {
			return false
		}
	}
	return re.final[st]
}

// Span is the byte range [Start, End) of a match within a text.
type Span struct {
	Start, End int
}

// FindAll scans text left to right and returns the longest non-empty match
// at each position, skipping past it. Matches never overlap.
func (re *Regex) FindAll(text string) []Span {
	var out []Span
	for i := 0; i < len(text); {
		if end := re.longest(text, i); end > i {
			out = append(out, Span{Start: i, End: end})
			i = end
			continue
		}
		i++
	}
	return out
}

// longest returns the end of the longest match starting at i, or -1.
func (re *Regex) longest(text string, i int) int {
	st := re.start
	if st < 0 {
		return -1
	}
	end := -1
	if re.final[st] {
		end = i
	}
	for j := i; j < len(text); j++ {
		if st = int(re.next[st*symbols+int(text[j])]); st < 0 {
			break
		}
		if re.final[st] {
			end = j + 1
		}
	}
	return end
}

// Automaton returns a copy of the minimal automaton behind re.
func (re *Regex) Automaton() *automaton.Fsm { return re.fsm.Clone() }

func (re *Regex) String() string { return re.pattern }

var std = NewCompiler(DefaultConfig())

func Parse(pattern string) (Node, error) { return std.Parse(pattern) }

func Compile(pattern string) (*automaton.Fsm, error) { return std.Compile(pattern) }

func Build(pattern string) (*automaton.Fsm, error) { return std.Build(pattern) }

func New(pattern string) (*Regex, error) { return std.New(pattern) }

// MustNew is like New but panics if the pattern cannot be parsed.
func MustNew(pattern string) *Regex {
	re, err := New(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// Match reports whether text as a whole belongs to the language of pattern.
func Match(pattern, text string) (bool, error) {
	re, err := New(pattern)
	if err != nil {
		return false, err
	}
	return re.Match(text), nil
}
