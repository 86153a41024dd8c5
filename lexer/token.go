package lexer

import (
	"github.com/ava12/flexpeg/source"
)

// Token is a lexeme fetched by Scanner.
type Token struct {
	tokenType int
	typeName  string
	text      string
	pos       source.Pos
}

// Type returns token type as defined in TokenType.
func (t *Token) Type() int {
	return t.tokenType
}

// TypeName returns token type name as defined in TokenType.
func (t *Token) TypeName() string {
	return t.typeName
}

// Text returns the lexeme.
func (t *Token) Text() string {
	return t.text
}

// Pos returns position of the first byte of the lexeme.
func (t *Token) Pos() source.Pos {
	return t.pos
}

func (t *Token) SourceName() string {
	return t.pos.SourceName()
}

func (t *Token) Line() int {
	return t.pos.Line()
}

func (t *Token) Col() int {
	return t.pos.Col()
}

// NewToken creates a token, the position may be zero.
func NewToken(tokenType int, typeName, text string, pos source.Pos) *Token {
	return &Token{tokenType, typeName, text, pos}
}

const (
	EofTokenType    = -2
	LowestTokenType = -2
	EofTokenName    = "-end-of-input-"
)

// EofToken creates a token marking the end of scanned range.
func EofToken(pos source.Pos) *Token {
	return &Token{tokenType: EofTokenType, typeName: EofTokenName, pos: pos}
}

// IsEof reports whether t marks the end of input.
func (t *Token) IsEof() bool {
	return t.tokenType == EofTokenType
}
