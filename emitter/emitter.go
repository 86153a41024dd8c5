// Package emitter defines hierarchical indentation-aware text writer for grammar output.
package emitter

import (
	"io"
	"strings"
)

// BlockKind is the kind of an output block.
type BlockKind int

const (
	ModuleBlock BlockKind = iota
	GrammarBlock
	RuleBlock
)

var keywords = [...]string{
	ModuleBlock:  "module",
	GrammarBlock: "grammar",
	RuleBlock:    "rule",
}

// Keyword returns the opening keyword of the block.
func (k BlockKind) Keyword() string {
	if k < 0 || int(k) >= len(keywords) {
		return ""
	}
	return keywords[k]
}

func (k BlockKind) String() string {
	return k.Keyword()
}

const (
	// DefaultIndent is one level of indentation.
	DefaultIndent = "  "
	endKeyword    = "end"
	commentPrefix = "# "
)

// Emitter writes text fragments to a Sink.
// The first write error is kept and all subsequent writes are skipped.
// Emitter is not safe for concurrent use.
type Emitter struct {
	sink        Sink
	indent      string
	level       int
	blocks      []BlockKind
	atLineStart bool
	e           error
}

// Option configures Emitter.
type Option func(*Emitter)

// WithIndent sets indentation unit.
func WithIndent(indent string) Option {
	return func(em *Emitter) {
		em.indent = indent
	}
}

// New creates an emitter writing to sink.
func New(sink Sink, opts ...Option) *Emitter {
	em := &Emitter{sink: sink, indent: DefaultIndent, atLineStart: true}
	for _, opt := range opts {
		opt(em)
	}
	return em
}

func (em *Emitter) put(s string) {
	if em.e != nil || s == "" {
		return
	}

	_, em.e = io.WriteString(em.sink, s)
}

// Write writes a fragment at the cursor. A fragment starting a line is prefixed with indentation.
func (em *Emitter) Write(s string) {
	if s == "" {
		return
	}

	if em.atLineStart {
		em.put(strings.Repeat(em.indent, em.level))
		em.atLineStart = false
	}
	em.put(s)
}

// Newline ends current line.
func (em *Emitter) Newline() {
	em.put("\n")
	em.atLineStart = true
}

// Line writes a fragment and ends the line. A pending unterminated line is ended first.
func (em *Emitter) Line(s string) {
	if !em.atLineStart {
		em.Newline()
	}
	em.Write(s)
	em.Newline()
}

// Comment writes a line comment.
func (em *Emitter) Comment(s string) {
	em.Line(commentPrefix + s)
}

// Block writes "<keyword> <name>" line, runs body one level deeper, and writes "end" line.
// Indentation is restored whatever body does; body error is returned after the block is closed.
func (em *Emitter) Block(kind BlockKind, name string, body func() error) (e error) {
	em.Line(kind.Keyword() + " " + name)
	em.level++
	em.blocks = append(em.blocks, kind)

	defer func() {
		em.level--
		em.blocks = em.blocks[:len(em.blocks)-1]
		em.Line(endKeyword)
	}()

	if body != nil {
		e = body()
	}
	return
}

// Level returns current indentation depth.
func (em *Emitter) Level() int {
	return em.level
}

// Open returns kinds of currently open blocks, outermost first.
func (em *Emitter) Open() []BlockKind {
	res := make([]BlockKind, len(em.blocks))
	copy(res, em.blocks)
	return res
}

// Err returns the first write error.
func (em *Emitter) Err() error {
	return em.e
}

// Flush ends a pending line and flushes the sink. Returns the first write or flush error.
func (em *Emitter) Flush() error {
	if !em.atLineStart {
		em.Newline()
	}
	if em.e != nil {
		return em.e
	}

	em.e = em.sink.Flush()
	return em.e
}
