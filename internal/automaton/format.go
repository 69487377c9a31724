package automaton

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Fprint writes one line per edge symbol:
//
//	*0  --a->  1*
//	 1  --->>  2
//
// A leading '*' marks a starting state, a trailing '*' a final one, and
// "--->>" is an epsilon edge.
func (f *Fsm) Fprint(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for s1, row := range f.transitions {
		for s2, l := range row {
			for _, a := range l.All() {
				f.printState(bw, s1)
				if a == Epsilon {
					bw.WriteString(" --->> ")
				} else {
					bw.WriteString(" --")
					bw.WriteByte(byte(a))
					bw.WriteString("-> ")
				}
				f.printState(bw, s2)
				bw.WriteByte('\n')
			}
		}
	}
	return bw.Flush()
}

func (f *Fsm) printState(w *bufio.Writer, s int) {
	if f.IsStarting(s) {
		w.WriteByte('*')
	} else {
		w.WriteByte(' ')
	}
	w.WriteString(strconv.Itoa(s))
	if f.IsFinal(s) {
		w.WriteByte('*')
	} else {
		w.WriteByte(' ')
	}
}

func (f *Fsm) String() string {
	var sb strings.Builder
	_ = f.Fprint(&sb)
	return sb.String()
}
