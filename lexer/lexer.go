// Package lexer defines regexp-driven lexical analyzer.
package lexer

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/ava12/flexpeg"
	"github.com/ava12/flexpeg/source"
)

const (
	// ErrorTokenType is the type for fake tokens capturing broken lexemes (e.g. unterminated strings).
	// Scanner never returns a token of this type, an error with message containing token text is returned instead.
	ErrorTokenType = LowestTokenType - 1

	// ErrorTokenName is the type name for ErrorTokenType.
	ErrorTokenName = "-error-"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that lexer cannot fetch any token at current position.
	WrongCharError = flexpeg.FrontEndErrors + iota

	// BadTokenError indicates that lexer has fetched a token of ErrorTokenType.
	BadTokenError
)

// TokenType describes token type for specific capturing group of regular expression.
type TokenType struct {
	Type     int
	TypeName string
}

// Lexer splits text into tokens using a single regexp.Regexp.
// Each token type maps to its own capturing group; a match with no captured groups
// is an insignificant lexeme and is skipped.
// Lexer is immutable and safe for concurrent use, scanning state lives in Scanner.
type Lexer struct {
	types []TokenType
	re    *regexp.Regexp
}

// New creates new Lexer. re must be anchored at the start of input (^).
// Each n-th element of types describes token type for (n+1)-th capturing group,
// a group with negative type or without description yields ErrorTokenType.
func New(re *regexp.Regexp, types []TokenType) *Lexer {
	ts := make([]TokenType, len(types))
	for i, t := range types {
		ts[i].TypeName = t.TypeName
		if t.Type >= 0 {
			ts[i].Type = t.Type
		} else {
			ts[i].Type = ErrorTokenType
		}
	}
	return &Lexer{types: ts, re: re}
}

// Scanner fetches tokens from a byte range of a source.
type Scanner struct {
	lexer    *Lexer
	src      *source.Source
	pos, end int
}

// Scan creates a scanner for src content in [from, to) range.
func (l *Lexer) Scan(src *source.Source, from, to int) *Scanner {
	if to > src.Len() {
		to = src.Len()
	}
	if from > to {
		from = to
	}
	return &Scanner{l, src, from, to}
}

// Pos returns current byte offset.
func (s *Scanner) Pos() int {
	return s.pos
}

func wrongCharError(src *source.Source, content []byte, pos int) *flexpeg.Error {
	r, _ := utf8.DecodeRune(content)
	msg := fmt.Sprintf("wrong char \"%c\" (u+%x)", r, r)
	return flexpeg.FormatErrorPos(source.NewPos(src, pos), WrongCharError, "%s", msg)
}

func badTokenError(t *Token) *flexpeg.Error {
	return flexpeg.FormatErrorPos(t, BadTokenError, "bad token %q", t.Text())
}

func (s *Scanner) match() (*Token, int, error) {
	content := s.src.Content()[s.pos:s.end]
	match := s.lexer.re.FindSubmatchIndex(content)
	if len(match) == 0 || match[0] != 0 || match[1] <= match[0] {
		return nil, 0, wrongCharError(s.src, content, s.pos)
	}

	for i := 2; i < len(match); i += 2 {
		if match[i] < 0 || match[i+1] < 0 {
			continue
		}

		tokenType := ErrorTokenType
		typeName := ErrorTokenName
		if len(s.lexer.types) >= (i >> 1) {
			tokenType = s.lexer.types[(i>>1)-1].Type
			typeName = s.lexer.types[(i>>1)-1].TypeName
		}
		token := NewToken(tokenType, typeName, string(content[match[i]:match[i+1]]), source.NewPos(s.src, s.pos+match[i]))
		if tokenType == ErrorTokenType {
			return nil, 0, badTokenError(token)
		}

		return token, match[1], nil
	}

	return nil, match[1], nil
}

// Next fetches token at current position and advances the scanner.
// Returns EoF token at the end of range.
// Returns nil token and flexpeg.Error and does not advance on lexical error.
func (s *Scanner) Next() (*Token, error) {
	for {
		if s.pos >= s.end {
			return EofToken(source.NewPos(s.src, s.end)), nil
		}

		tok, advance, e := s.match()
		if e != nil {
			return nil, e
		}

		s.pos += advance
		if tok != nil {
			return tok, nil
		}
	}
}
