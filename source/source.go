// Package source defines source file with line and column lookup.
package source

import (
	"bytes"
	"sort"
	"unicode/utf8"
)

// Source is an immutable named chunk of input text.
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

// New creates a new source. content must not be modified afterwards.
func New(name string, content []byte) *Source {
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s := &Source{name: name, content: content, lineStarts: make([]int, 1, lineCnt)}
	for i, c := range content {
		if c == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}

	return s
}

// Name returns source name, may be empty.
func (s *Source) Name() string {
	return s.name
}

// Content returns the whole source content.
func (s *Source) Content() []byte {
	return s.content
}

// Len returns content length in bytes.
func (s *Source) Len() int {
	return len(s.content)
}

// Text returns content between byte offsets from and to, both clamped to content bounds.
func (s *Source) Text(from, to int) string {
	from = s.clamp(from)
	to = s.clamp(to)
	if to <= from {
		return ""
	}

	return string(s.content[from:to])
}

// NumLines returns the number of lines, a trailing line feed starts an empty last line.
func (s *Source) NumLines() int {
	return len(s.lineStarts)
}

// LineCol converts byte offset to 1-based line and column numbers, columns count runes.
func (s *Source) LineCol(pos int) (line, col int) {
	pos = s.clamp(pos)
	lineIndex := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1

	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

// Pos converts 1-based line and column numbers to byte offset, col is treated as byte count.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	if line > len(s.lineStarts) {
		return len(s.content)
	}

	return s.clamp(s.lineStarts[line-1] + col - 1)
}

// Line returns the content of 1-based line without trailing line break.
func (s *Source) Line(line int) string {
	if line <= 0 || line > len(s.lineStarts) {
		return ""
	}

	from := s.lineStarts[line-1]
	to := len(s.content)
	if line < len(s.lineStarts) {
		to = s.lineStarts[line] - 1
	}
	return string(bytes.TrimSuffix(s.content[from:to], []byte("\r")))
}

func (s *Source) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(s.content) {
		return len(s.content)
	}
	return pos
}

// Pos is a position in a source, the zero value means "unknown position".
type Pos struct {
	src            *Source
	pos, line, col int
}

// NewPos creates a position for byte offset pos in src.
func NewPos(src *Source, pos int) Pos {
	if src == nil {
		return Pos{}
	}

	line, col := src.LineCol(pos)
	return Pos{src, src.clamp(pos), line, col}
}

// Source returns the source or nil.
func (p Pos) Source() *Source {
	return p.src
}

// SourceName returns source name or empty string.
func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

// Pos returns byte offset.
func (p Pos) Pos() int {
	return p.pos
}

// Line returns line number or 0 for unknown position.
func (p Pos) Line() int {
	return p.line
}

// Col returns column number or 0 for unknown position.
func (p Pos) Col() int {
	return p.col
}

// IsValid reports whether p refers to a source.
func (p Pos) IsValid() bool {
	return p.src != nil
}
