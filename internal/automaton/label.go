package automaton

import (
	"strconv"

	"github.com/bits-and-blooms/bitset"
)

// Symbol is a single input byte. Epsilon lives outside the byte range so it can
// never be confused with an ordinary symbol.
type Symbol int

const (
	Epsilon   Symbol = -1
	MinSymbol Symbol = 0
	MaxSymbol Symbol = 255

	symbolCount = uint(MaxSymbol) + 1
)

func (a Symbol) Valid() bool { return a >= MinSymbol && a <= MaxSymbol }

func (a Symbol) String() string {
	if a == Epsilon {
		return "ε"
	}
	if a >= ' ' && a <= '~' {
		return string(rune(a))
	}
	if a < 0x10 {
		return "\\x0" + strconv.FormatInt(int64(a), 16)
	}
	return "\\x" + strconv.FormatInt(int64(a), 16)
}

// Label is the set of symbols carried by the edges between one ordered pair
// of states. Each symbol stands for a parallel edge.
type Label struct {
	epsilon bool
	symbols *bitset.BitSet // nil until the first ordinary symbol
}

func NewLabel(symbols ...Symbol) Label {
	var l Label
	for _, a := range symbols {
		l.add(a)
	}
	return l
}

func (l Label) Epsilon() bool { return l.epsilon }

func (l Label) Has(a Symbol) bool {
	if a == Epsilon {
		return l.epsilon
	}
	return a.Valid() && l.symbols != nil && l.symbols.Test(uint(a))
}

func (l Label) Empty() bool {
	return !l.epsilon && (l.symbols == nil || l.symbols.None())
}

// Len counts every symbol on the label, epsilon included.
func (l Label) Len() int {
	n := 0
	if l.epsilon {
		n++
	}
	if l.symbols != nil {
		n += int(l.symbols.Count())
	}
	return n
}

// Symbols lists the ordinary symbols in ascending order.
func (l Label) Symbols() []Symbol {
	if l.symbols == nil {
		return nil
	}
	out := make([]Symbol, 0, l.symbols.Count())
	for i, ok := l.symbols.NextSet(0); ok; i, ok = l.symbols.NextSet(i + 1) {
		out = append(out, Symbol(i))
	}
	return out
}

// All is Symbols with epsilon first when present.
func (l Label) All() []Symbol {
	out := l.Symbols()
	if l.epsilon {
		out = append([]Symbol{Epsilon}, out...)
	}
	return out
}

func (l *Label) add(a Symbol) {
	if a == Epsilon {
		l.epsilon = true
		return
	}
	if l.symbols == nil {
		l.symbols = bitset.New(symbolCount)
	}
	l.symbols.Set(uint(a))
}

func (l *Label) merge(o Label) {
	l.epsilon = l.epsilon || o.epsilon
	if o.symbols == nil {
		return
	}
	if l.symbols == nil {
		l.symbols = o.symbols.Clone()
		return
	}
	l.symbols.InPlaceUnion(o.symbols)
}

func (l Label) clone() Label {
	c := Label{epsilon: l.epsilon}
	if l.symbols != nil {
		c.symbols = l.symbols.Clone()
	}
	return c
}

func (l Label) equal(o Label) bool {
	if l.epsilon != o.epsilon {
		return false
	}
	a, b := l.symbols, o.symbols
	switch {
	case a == nil && b == nil:
		return true
	case a == nil:
		return b.None()
	case b == nil:
		return a.None()
	}
	return a.Equal(b)
}
