/*
Package flexpeg translates flex lexer specifications to Treetop-style PEG grammars.

Consists of subpackages:
  - ast: tagged AST nodes, static per-kind schema, resolution of front-end parse trees;
  - query: compiled child-selection paths ("*", "[0]", "[1]*", ...) over AST nodes;
  - emitter: indentation-aware output writer with buffered or streaming sinks;
  - translate: per-kind translation of an AST to grammar text;
  - source: source file with line/column lookup;
  - lexer: regexp-driven lexical analyzer used for flex patterns;
  - tree: parse tree nodes produced by the front-end;
  - flex: front-end turning flex file contents into a parse tree;
  - cmd/flexpeg: console utility wrapping all of the above.

Typical usage is:

1. Parse flex file with flex.Parse and convert the parse tree with ast.Resolve.

2. Create an emitter.Emitter over the destination and a translate.Context with desired options.

3. Run translate.New(ctx, em).Translate(root) and flush the emitter.
*/
package flexpeg

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	QueryErrors     = 1   // used by query
	TranslateErrors = 101 // used by ast and translate
	NoticeCodes     = 201 // non-fatal notices produced by translate
	FrontEndErrors  = 301 // used by lexer and flex
	HostErrors      = 401 // used by internal/host
)

// Error is the error type used by flexpeg subpackages.
// Notices (non-fatal conditions) use the same type with NoticeCodes codes.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if line != 0 && col != 0 {
		if name == "" {
			msg += fmt.Sprintf(" at line %d col %d", line, col)
		} else {
			msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
		}
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// IsNotice reports whether the error is a non-fatal notice.
func (e *Error) IsNotice() bool {
	return e.Code >= NoticeCodes && e.Code < FrontEndErrors
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// A nil pos is allowed and yields no position information.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	if pos == nil {
		return NewError(code, msg, "", 0, 0)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
