package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"fsm/internal/automaton"
	"fsm/internal/fsmtext"
	"fsm/internal/regex"
	"fsm/internal/report"
)

var (
	// errRejected makes match exit with status 1 without an error line.
	errRejected = errors.New("input rejected")
	errUsage    = errors.New("usage")
)

type env struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	log            *slog.Logger
}

type command struct {
	summary string
	run     func(e *env, args []string) error
}

func commands() map[string]command {
	return map[string]command{
		"build": {"compile a pattern and print its automaton", runBuild},
		"parse": {"print the syntax tree of a pattern", runParse},
		"match": {"test whole strings against a pattern", runMatch},
		"rev":   {"reverse an automaton", transform("rev", (*automaton.Fsm).Reverse)},
		"det":   {"determinize an automaton", transform("det", (*automaton.Fsm).Determinize)},
		"min":   {"minimize an automaton", transform("min", (*automaton.Fsm).Minimize)},
		"table": {"print the transition table of an automaton", runTable},
		"repl":  {"test strings against a pattern interactively", runRepl},
		"find":  {"list the matches of a pattern inside texts", runFind},
		"regex": {"convert an automaton back to a pattern", runRegex},
		"and":   {"intersect two automata", product("and", automaton.Intersect)},
		"or":    {"unite two automata", product("or", automaton.Union)},
		"diff":  {"subtract the second automaton from the first", product("diff", automaton.Difference)},
		"not":   {"complement an automaton", runNot},
	}
}

func (e *env) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

// patternFlags registers the flags shared by every pattern-driven command.
func patternFlags(fs *flag.FlagSet) (pattern *string, cfg func() regex.Config) {
	pattern = fs.String("re", "", "regular expression")
	depth := fs.Int("max-depth", regex.DefaultMaxDepth, "maximum group nesting")
	return pattern, func() regex.Config {
		c := regex.DefaultConfig()
		c.MaxDepth = *depth
		return c
	}
}

// requirePattern rejects a missing -re; an explicit empty pattern is valid.
func requirePattern(fs *flag.FlagSet) error {
	if !flagSet(fs, "re") {
		fmt.Fprintf(fs.Output(), "%s: -re is required\n", fs.Name())
		fs.Usage()
		return errUsage
	}
	return nil
}

func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func runBuild(e *env, args []string) error {
	fs := e.flags("build")
	pattern, cfg := patternFlags(fs)
	raw := fs.Bool("raw", false, "print the Thompson automaton instead of the minimal one")
	format := fs.String("format", "dump", "output format: dump, fsm or table")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requirePattern(fs); err != nil {
		return err
	}

	c := regex.NewCompiler(cfg())
	var (
		f   *automaton.Fsm
		err error
	)
	if *raw {
		f, err = c.Compile(*pattern)
	} else {
		f, err = c.Build(*pattern)
	}
	if err != nil {
		return err
	}
	e.log.Debug("built automaton", "pattern", *pattern, "raw", *raw, "states", f.StateCount())
	return emit(e.stdout, f, *format)
}

func runParse(e *env, args []string) error {
	fs := e.flags("parse")
	pattern, cfg := patternFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requirePattern(fs); err != nil {
		return err
	}
	n, err := regex.NewCompiler(cfg()).Parse(*pattern)
	if err != nil {
		return err
	}
	return regex.Dump(e.stdout, n)
}

func runMatch(e *env, args []string) error {
	fs := e.flags("match")
	pattern, cfg := patternFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requirePattern(fs); err != nil {
		return err
	}
	re, err := regex.NewCompiler(cfg()).New(*pattern)
	if err != nil {
		return err
	}
	rejected := 0
	for _, text := range fs.Args() {
		ok := re.Match(text)
		if !ok {
			rejected++
		}
		fmt.Fprintf(e.stdout, "%s: %v\n", text, ok)
	}
	e.log.Info("matched", "pattern", *pattern, "inputs", fs.NArg(), "rejected", rejected)
	if rejected > 0 {
		return errRejected
	}
	return nil
}

func runFind(e *env, args []string) error {
	fs := e.flags("find")
	pattern, cfg := patternFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requirePattern(fs); err != nil {
		return err
	}
	re, err := regex.NewCompiler(cfg()).New(*pattern)
	if err != nil {
		return err
	}
	for _, text := range fs.Args() {
		for _, m := range re.FindAll(text) {
			fmt.Fprintf(e.stdout, "%d-%d: %s\n", m.Start, m.End, text[m.Start:m.End])
		}
	}
	return nil
}

func runRegex(e *env, args []string) error {
	fs := e.flags("regex")
	minimize := fs.Bool("min", true, "minimize before converting")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := e.load(fs)
	if err != nil {
		return err
	}
	if *minimize {
		f = f.Minimize()
	}
	_, err = fmt.Fprintln(e.stdout, regex.FromAutomaton(f))
	return err
}

func product(name string, op func(a, b *automaton.Fsm) *automaton.Fsm) func(*env, []string) error {
	return func(e *env, args []string) error {
		fs := e.flags(name)
		format := fs.String("format", "fsm", "output format: dump, fsm or table")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 2 {
			fmt.Fprintf(fs.Output(), "%s: expected two FILE arguments\n", name)
			return errUsage
		}
		a, err := e.open(fs.Arg(0))
		if err != nil {
			return err
		}
		b, err := e.open(fs.Arg(1))
		if err != nil {
			return err
		}
		return emit(e.stdout, op(a, b).Minimize(), *format)
	}
}

func runNot(e *env, args []string) error {
	fs := e.flags("not")
	format := fs.String("format", "fsm", "output format: dump, fsm or table")
	over := fs.String("alphabet", "", "extra symbols the complement ranges over")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := e.load(fs)
	if err != nil {
		return err
	}
	var extra []automaton.Symbol
	for i := 0; i < len(*over); i++ {
		extra = append(extra, automaton.Symbol((*over)[i]))
	}
	return emit(e.stdout, automaton.Complement(f, extra...), *format)
}

func transform(name string, op func(*automaton.Fsm) *automaton.Fsm) func(*env, []string) error {
	return func(e *env, args []string) error {
		fs := e.flags(name)
		format := fs.String("format", "fsm", "output format: dump, fsm or table")
		if err := fs.Parse(args); err != nil {
			return err
		}
		f, err := e.load(fs)
		if err != nil {
			return err
		}
		out := op(f)
		e.log.Debug("transformed", "op", name, "in", f.StateCount(), "out", out.StateCount())
		return emit(e.stdout, out, *format)
	}
}

func runTable(e *env, args []string) error {
	fs := e.flags("table")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := e.load(fs)
	if err != nil {
		return err
	}
	return report.Table(e.stdout, f)
}

// load reads the single FILE argument of fs; "-" is standard input.
func (e *env) load(fs *flag.FlagSet) (*automaton.Fsm, error) {
	if fs.NArg() != 1 {
		fmt.Fprintf(fs.Output(), "%s: expected one FILE argument\n", fs.Name())
		return nil, errUsage
	}
	return e.open(fs.Arg(0))
}

func (e *env) open(name string) (*automaton.Fsm, error) {
	if name == "-" {
		return fsmtext.Parse("<stdin>", e.stdin)
	}
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	e.log.Debug("loading automaton", "file", name)
	return fsmtext.Parse(name, file)
}

func emit(w io.Writer, f *automaton.Fsm, format string) error {
	switch format {
	case "dump":
		return f.Fprint(w)
	case "fsm":
		return fsmtext.Write(w, f)
	case "table":
		return report.Table(w, f)
	}
	return fmt.Errorf("unknown format %q", format)
}
