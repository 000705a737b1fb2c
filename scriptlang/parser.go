package scriptlang

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

const (
	TOKEN_WORD = iota
	TOKEN_NUMBER
	TOKEN_NEWLINE
	TOKEN_COMMENT
)

var lexer *lexmachine.Lexer

func init() {
	lexer = lexmachine.NewLexer()
	lexer.Add([]byte(`[a-zA-Z_][a-zA-Z0-9_]*`), getToken(TOKEN_WORD))
	lexer.Add([]byte(`[\+\-]?[0-9]*\.?[0-9]+`), getToken(TOKEN_NUMBER))
	lexer.Add([]byte(`[\r\n]+`), getToken(TOKEN_NEWLINE))
	lexer.Add([]byte(`;`), getToken(TOKEN_NEWLINE))
	lexer.Add([]byte(`//[^\n]*`), getToken(TOKEN_COMMENT))
	lexer.Add([]byte(`#[^\n]*`), getToken(TOKEN_COMMENT))
	lexer.Add([]byte(`[ \t]+`), skip)
	if err := lexer.Compile(); err != nil {
		panic(err)
	}
}

func getToken(tokenType int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(tokenType, string(m.Bytes), m), nil
	}
}

func skip(scan *lexmachine.Scanner, match *machines.Match) (interface{}, error) {
	return nil, nil
}

// ParseScript splits text into statements, one per line or per ';'.
// Arguments are strings for words and float32 for numbers.
func ParseScript(text []byte) ([]*Statement, error) {
	scanner, err := lexer.Scanner(text)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to create lexer scanner")
	}

	result := make([]*Statement, 0, 16)

	var current *Statement
	for Itok, err, eos := scanner.Next(); !eos; Itok, err, eos = scanner.Next() {
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to parse token")
		}
		tok := Itok.(*lexmachine.Token)

		switch tok.Type {
		case TOKEN_WORD:
			word := strings.ToLower(string(tok.Lexeme))
			if current == nil {
				current = &Statement{Line: tok.StartLine, Name: word}
				result = append(result, current)
			} else {
				current.Args = append(current.Args, word)
			}
		case TOKEN_NUMBER:
			if current == nil {
				return nil, errors.Errorf("Missed command on line %v (%q)", tok.StartLine, tok.Lexeme)
			}
			if f, err := strconv.ParseFloat(string(tok.Lexeme), 32); err == nil {
				current.Args = append(current.Args, float32(f))
			} else {
				return nil, errors.Errorf("Unknown number format on line %v (%q)", tok.StartLine, tok.Lexeme)
			}
		case TOKEN_NEWLINE:
			current = nil
		case TOKEN_COMMENT:
			if current != nil {
				current.Comment = strings.TrimSpace(strings.TrimLeft(string(tok.Lexeme), "/#"))
			}
		}
	}

	return result, nil
}
