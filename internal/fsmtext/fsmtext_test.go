package fsmtext

import (
	"errors"
	"strings"
	"testing"

	"fsm/internal/automaton"
)

const sample = `# accepts "ab" and "a\n"
states 4
start 0
final 2, 3
0 -> 1 'a'
1 -> 2 'b'
1 -> 3 '\n'
3 -> 3 eps
`

func TestParse(t *testing.T) {
	f, err := ParseString("sample", sample)
	if err != nil {
		t.Fatal(err)
	}
	if f.StateCount() != 4 {
		t.Fatalf("states = %d", f.StateCount())
	}
	if got := f.FinalStates(); len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Fatalf("final = %v", got)
	}
	for in, want := range map[string]bool{"ab": true, "a\n": true, "a": false, "b": false} {
		if f.AcceptsString(in) != want {
			t.Errorf("accepts(%q) want %v", in, want)
		}
	}
	if !f.Label(3, 3).Epsilon() {
		t.Error("eps edge missing")
	}
}

func TestSymbolEscapes(t *testing.T) {
	tests := []struct {
		lit  string
		want automaton.Symbol
	}{
		{`'a'`, 'a'},
		{`' '`, ' '},
		{`'#'`, '#'},
		{`'\\'`, '\\'},
		{`'\''`, '\''},
		{`'\n'`, '\n'},
		{`'\t'`, '\t'},
		{`'\x00'`, 0},
		{`'\xFf'`, 255},
	}
	for _, tt := range tests {
		f, err := ParseString("t", "states 2\n0 -> 1 "+tt.lit+"\n")
		if err != nil {
			t.Errorf("%s: %v", tt.lit, err)
			continue
		}
		if l := f.Label(0, 1); l.Len() != 1 || !l.Has(tt.want) {
			t.Errorf("%s: got %v want %v", tt.lit, l.All(), tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name, src string
		is        error
	}{
		{"no header", "start 0\n", nil},
		{"bad token", "states 2\n0 -> 1 @\n", nil},
		{"unknown escape", `states 2` + "\n" + `0 -> 1 '\q'` + "\n", nil},
		{"two chars", "states 2\n0 -> 1 'ab'\n", nil},
		{"missing symbol", "states 2\n0 -> 1\n", nil},
		{"edge out of range", "states 2\n0 -> 2 'a'\n", automaton.ErrStateRange},
		{"start out of range", "states 1\nstart 1\n", automaton.ErrStateRange},
		{"final out of range", "states 1\nfinal 0, 5\n", automaton.ErrStateRange},
		{"too large", "states 100000\n", ErrTooManyStates},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseString(tt.name, tt.src)
			if err == nil || f != nil {
				t.Fatalf("accepted %q", tt.src)
			}
			if !strings.HasPrefix(err.Error(), "fsmtext: ") {
				t.Errorf("unprefixed error %v", err)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("want %v got %v", tt.is, err)
			}
		})
	}
}

func TestErrorPosition(t *testing.T) {
	_, err := ParseString("in.fsm", "states 2\nstart 0\n0 -> 7 'a'\n")
	if err == nil || !strings.Contains(err.Error(), "in.fsm:3:") {
		t.Fatalf("want position of line 3, got %v", err)
	}
}

func TestWriteCanonical(t *testing.T) {
	f := automaton.New(3)
	f.SetStarting(0, true)
	f.SetFinal(2, true)
	f.Connect(0, 1, 'b')
	f.Connect(0, 1, 'a')
	f.Connect(0, 1, automaton.Epsilon)
	f.Connect(1, 2, '\'')
	f.Connect(2, 0, 0x7f)

	want := `states 3
start 0
final 2
0 -> 1 eps
0 -> 1 'a'
0 -> 1 'b'
1 -> 2 '\''
2 -> 0 '\x7f'
`
	if got := Format(f); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	f, err := ParseString("sample", sample)
	if err != nil {
		t.Fatal(err)
	}
	text := Format(f)
	g, err := ParseString("again", text)
	if err != nil {
		t.Fatalf("%v\n%s", err, text)
	}
	if Format(g) != text {
		t.Fatalf("not a fixed point:\n%s\n%s", text, Format(g))
	}
	for a := automaton.Symbol(0); a <= automaton.MaxSymbol; a++ {
		h := automaton.New(1)
		h.Connect(0, 0, a)
		back, err := ParseString("sym", Format(h))
		if err != nil {
			t.Fatalf("%s: %v", Quote(a), err)
		}
		if !back.Label(0, 0).Has(a) {
			t.Fatalf("%s did not survive", Quote(a))
		}
	}
}

func TestEmptyAutomaton(t *testing.T) {
	f, err := ParseString("empty", "states 0")
	if err != nil {
		t.Fatal(err)
	}
	if f.StateCount() != 0 || Format(f) != "states 0\n" {
		t.Fatalf("got %q", Format(f))
	}
}

func TestUnknownInput(t *testing.T) {
	_, err := ParseString("bad.fsm", "states 2\n0 -> 1 @\n")
	if err == nil {
		t.Fatal("accepted '@'")
	}
	msg := err.Error()
	if !strings.Contains(msg, "bad.fsm:") || !strings.Contains(msg, "invalid input") || !strings.Contains(msg, "@") {
		t.Fatalf("got %v", err)
	}
}
