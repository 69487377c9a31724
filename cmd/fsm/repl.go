package main

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"

	"fsm/internal/regex"
)

func runRepl(e *env, args []string) error {
	fs := e.flags("repl")
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
	fmt.Fprintf(e.stdout, "%s: %d states, ctrl-d to quit\n", re, re.Automaton().StateCount())

	prompt := promptui.Prompt{Label: re.String()}
	for {
		text, err := prompt.Run()
		if errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrInterrupt) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("prompt: %w", err)
		}
		fmt.Fprintln(e.stdout, verdict(re, text))
	}
}

func verdict(re *regex.Regex, text string) string {
	if re.Match(text) {
		return promptui.Styler(promptui.FGGreen)(fmt.Sprintf("%q accepted", text))
	}
	return promptui.Styler(promptui.FGRed)(fmt.Sprintf("%q rejected", text))
}
