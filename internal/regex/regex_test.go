package regex

import (
	"errors"
	stdregexp "regexp"
	"testing"

	"fsm/internal/automaton"
)

// ------------------------------------------------------------------- helpers

func acc(t *testing.T, re *Regex, in string, want bool) {
	t.Helper()
	if got := re.Match(in); got != want {
		t.Fatalf("pattern %q on %q want %v got %v", re, in, want, got)
	}
}

func newRE(t *testing.T, pat string) *Regex {
	t.Helper()
	re, err := New(pat)
	if err != nil {
		t.Fatalf("compile %q: %v", pat, err)
	}
	return re
}

// words lists every string over alpha of length at most max.
func words(alpha string, max int) []string {
	out := []string{""}
	level := []string{""}
	for l := 0; l < max; l++ {
		var next []string
		for _, w := range level {
			for i := 0; i < len(alpha); i++ {
				next = append(next, w+alpha[i:i+1])
			}
		}
		out = append(out, next...)
		level = next
	}
	return out
}

// ------------------------------------------------------------------- Languages

func TestLanguages(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"ab", []string{"ab"}, []string{"a", "b", "", "ba", "abb"}},
		{"a|b", []string{"a", "b"}, []string{"ab", "", "c"}},
		{"a+", []string{"a", "aa", "aaa"}, []string{"", "b", "ab"}},
		{"a*", []string{"", "a", "aa"}, []string{"b", "ab"}},
		{"a?", []string{"", "a"}, []string{"aa", "b"}},
		{"[a-c]", []string{"a", "b", "c"}, []string{"d", "", "ab"}},
		{`\+`, []string{"+"}, []string{"", "\\+", "++"}},
		{`a\|b`, []string{"a|b"}, []string{"a", "b"}},
		{"a(b|c)+d", []string{"abd", "acd", "abbcd", "acbcbd"}, []string{"ad", "abc", "bd", "abdd"}},
		{"", []string{""}, []string{"a"}},
		{"()", []string{""}, []string{"a"}},
		{"[]", nil, []string{"", "a"}},
		{"[]|a", []string{"a"}, []string{""}},
		{"a.c", []string{"abc", "a c", "a~c"}, []string{"ac", "a\nc", "abbc"}},
		{"[a-c]+x", []string{"ax", "cabx"}, []string{"x", "dx"}},
		{"(ab)*", []string{"", "ab", "abab"}, []string{"a", "aba"}},
		{"a**", []string{"", "aaa"}, []string{"b"}},
		{"|a", []string{"", "a"}, []string{"aa"}},
	}
	for _, tt := range tests {
		re := newRE(t, tt.pattern)
		for _, in := range tt.accept {
			acc(t, re, in, true)
		}
		for _, in := range tt.reject {
			acc(t, re, in, false)
		}
	}
}

func TestEndToEnd(t *testing.T) {
	ok, err := Match("a(b|c)+d", "abbcd")
	if err != nil || !ok {
		t.Fatalf("abbcd: %v %v", ok, err)
	}
	ok, err = Match("a(b|c)+d", "ad")
	if err != nil || ok {
		t.Fatalf("ad: %v %v", ok, err)
	}
	if _, err := Match("(", "x"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("bad pattern: %v", err)
	}
}

// The language of a pattern must agree with the standard library anchored at
// both ends.
func TestAgainstStdlib(t *testing.T) {
	patterns := []string{
		"a(b|c)+d", "ab*c?", "(a|b)*abb", "[a-c]+b", "a?b?c?",
		"(ab|a)*c", "((a|b)c)*", ".b", "a.*c", "", "(|a)b", "[ab]*[bc]",
	}
	inputs := words("abcd", 5)
	for _, p := range patterns {
		want := stdregexp.MustCompile("^(?:" + p + ")$")
		re := newRE(t, p)
		for _, in := range inputs {
			if got := re.Match(in); got != want.MatchString(in) {
				t.Errorf("%q on %q: got %v", p, in, got)
			}
		}
	}
}

func TestCompileIsAtomic(t *testing.T) {
	for _, p := range []string{"a", "ab", "a|b", "a*", "[a-z]", ".", "", "[]"} {
		f, err := Compile(p)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.EnsureAtomic(); err != nil {
			t.Errorf("%q: %v", p, err)
		}
	}
}

func TestBuildIsMinimal(t *testing.T) {
	tests := []struct {
		pattern string
		states  int
	}{
		{"a", 2},
		{"a*", 1},
		{"a+", 2},
		{"(a|b)*abb", 4},
		{"a(b|c)+d", 4},
	}
	for _, tt := range tests {
		f, err := Build(tt.pattern)
		if err != nil {
			t.Fatal(err)
		}
		if !f.IsDeterministic() {
			t.Errorf("%q not deterministic", tt.pattern)
		}
		if f.StateCount() != tt.states {
			t.Errorf("%q: %d states want %d\n%s", tt.pattern, f.StateCount(), tt.states, f)
		}
	}
}

func TestWildcardAlphabet(t *testing.T) {
	c := NewCompiler(Config{WildcardAlphabet: []automaton.Symbol{'x', 'y'}})
	re, err := c.New("a.")
	if err != nil {
		t.Fatal(err)
	}
	acc(t, re, "ax", true)
	acc(t, re, "ay", true)
	acc(t, re, "az", false)

	none := NewCompiler(Config{WildcardAlphabet: []automaton.Symbol{}})
	re, err = none.New(".|b")
	if err != nil {
		t.Fatal(err)
	}
	acc(t, re, "b", true)
	acc(t, re, "a", false)

	eps := NewCompiler(Config{WildcardAlphabet: []automaton.Symbol{automaton.Epsilon, 'x'}})
	if got := eps.Config().WildcardAlphabet; len(got) != 1 || got[0] != 'x' {
		t.Fatalf("alphabet not filtered: %v", got)
	}
	re, err = eps.New("a.")
	if err != nil {
		t.Fatal(err)
	}
	acc(t, re, "a", false)
	acc(t, re, "ax", true)
}

func TestCompileNode(t *testing.T) {
	tree := &Concatenation{Nodes: []Node{
		&Character{Symbol: 0},
		&Optional{Node: &CharacterSet{Ranges: []Range{{Low: 200, High: 255}}}},
	}}
	f, err := NewCompiler(DefaultConfig()).CompileNode(tree)
	if err != nil {
		t.Fatal(err)
	}
	for in, want := range map[string]bool{"\x00": true, "\x00\xc8": true, "\x00\xff": true, "\x00\xc7": false} {
		if f.AcceptsString(in) != want {
			t.Errorf("%q want %v", in, want)
		}
	}

	bad := &CharacterSet{Ranges: []Range{{Low: 250, High: 300}}}
	if _, err := std.CompileNode(bad); !errors.Is(err, automaton.ErrSymbolRange) {
		t.Fatalf("out of range set: %v", err)
	}
	if _, err := std.CompileNode(nil); err == nil {
		t.Fatal("nil node compiled")
	}
}

func TestMatchBytes(t *testing.T) {
	re := newRE(t, `[\x]+`)
	if !re.MatchBytes([]byte("xx")) || re.MatchBytes([]byte("xy")) {
		t.Fatal("MatchBytes disagrees with the pattern")
	}
	for _, w := range words("xy", 4) {
		if re.Match(w) != re.MatchBytes([]byte(w)) {
			t.Fatalf("Match and MatchBytes differ on %q", w)
		}
	}
	if re.String() != `[\x]+` {
		t.Fatalf("String() = %q", re.String())
	}
	a := re.Automaton()
	a.SetFinal(0, true)
	acc(t, re, "", false)
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustNew accepted a bad pattern")
		}
	}()
	MustNew("[")
}

func BenchmarkNew(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := New("(a|b)*a(a|b)(a|b)(a|b)"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMatch(b *testing.B) {
	re := MustNew("(a|b)*a(a|b)(a|b)(a|b)")
	in := []byte("abababababababababababababababbbbbbaaabbbaaab")
	b.SetBytes(int64(len(in)))
	for i := 0; i < b.N; i++ {
		re.MatchBytes(in)
	}
}
