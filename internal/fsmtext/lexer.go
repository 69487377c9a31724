package fsmtext

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

const (
	tokIdent lexer.TokenType = -(iota + 2)
	tokInt
	tokChar
	tokArrow
	tokComma
)

var symbols = map[string]lexer.TokenType{
	"EOF":   lexer.EOF,
	"Ident": tokIdent,
	"Int":   tokInt,
	"Char":  tokChar,
	"Arrow": tokArrow,
	"Comma": tokComma,
}

var (
	scannerOnce sync.Once
	scannerDef  *lexmachine.Lexer
	scannerErr  error
)

func compiled() (*lexmachine.Lexer, error) {
	scannerOnce.Do(func() {
		l := lexmachine.NewLexer()
		l.Add([]byte(`[ \t\r\n]+`), skip)
		l.Add([]byte(`#[^\n]*`), skip)
		l.Add([]byte(`->`), tokAction(tokArrow))
		l.Add([]byte(`,`), tokAction(tokComma))
		l.Add([]byte(`[0-9]+`), tokAction(tokInt))
		l.Add([]byte(`[a-zA-Z_][a-zA-Z0-9_]*`), tokAction(tokIdent))
		l.Add([]byte(`'([^\\'\n]|\\[^\n]|\\x[0-9a-fA-F][0-9a-fA-F])'`), tokAction(tokChar))
		scannerErr = l.Compile()
		scannerDef = l
	})
	return scannerDef, scannerErr
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func tokAction(typ lexer.TokenType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return lexer.Token{
			Type:  typ,
			Value: string(m.Bytes),
			Pos: lexer.Position{
				Offset: m.TC,
				Line:   m.StartLine,
				Column: m.StartColumn,
			},
		}, nil
	}
}

// definition plugs the lexmachine scanner into participle.
type definition struct{}

func (definition) Symbols() map[string]lexer.TokenType { return symbols }

func (definition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	l, err := compiled()
	if err != nil {
		return nil, fmt.Errorf("compile lexer: %w", err)
	}
	scanner, err := l.Scanner(src)
	if err != nil {
		return nil, err
	}
	return &stream{filename: filename, src: src, scanner: scanner}, nil
}

type stream struct {
	filename string
	src      []byte
	scanner  *lexmachine.Scanner
}

func (s *stream) Next() (lexer.Token, error) {
	tok, err, eof := s.scanner.Next()
	if eof {
		return lexer.Token{Type: lexer.EOF, Pos: s.end()}, nil
	}
	if ui, ok := err.(*machines.UnconsumedInput); ok {
		pos := lexer.Position{Filename: s.filename, Offset: ui.FailTC, Line: ui.FailLine, Column: ui.FailColumn}
		return lexer.Token{}, &lexer.Error{Pos: pos, Msg: fmt.Sprintf("invalid input %q", s.snippet(ui.StartTC, ui.FailTC))}
	}
	if err != nil {
		return lexer.Token{}, err
	}
	t := tok.(lexer.Token)
	t.Pos.Filename = s.filename
	return t, nil
}

// snippet returns the rejected text, up to and including the failing byte.
func (s *stream) snippet(from, fail int) []byte {
	to := fail + 1
	if to > len(s.src) {
		to = len(s.src)
	}
	if from < 0 || from > to {
		from = to
	}
	return s.src[from:to]
}

func (s *stream) end() lexer.Position {
	line := bytes.Count(s.src, []byte{'\n'}) + 1
	col := len(s.src) - bytes.LastIndexByte(s.src, '\n')
	return lexer.Position{Filename: s.filename, Offset: len(s.src), Line: line, Column: col}
}
