// Package query implements child-selection paths over syntax trees.
//
// A path is a sequence of steps, each either "*" (all children) or "[n]"
// (n-th child, 0-based), e.g. "[0]*" selects all children of the first child.
package query

import (
	"strconv"
	"strings"

	"github.com/ava12/flexpeg"
	"github.com/ava12/flexpeg/ast"
)

const (
	// PathSyntaxError indicates malformed path string.
	PathSyntaxError = flexpeg.QueryErrors + iota
)

// Wildcard is the step value selecting all children.
const Wildcard = -1

// Path is a compiled path expression. It is immutable and may be shared.
type Path struct {
	steps []int
}

func syntaxError(path string, pos int, expected string) *flexpeg.Error {
	rest := path[pos:]
	if rest == "" {
		rest = "end of path"
	} else {
		rest = strconv.Quote(rest)
	}
	return flexpeg.FormatError(PathSyntaxError, "path %q: expecting %s, got %s", path, expected, rest)
}

// Compile parses path string.
func Compile(path string) (*Path, error) {
	steps := make([]int, 0, len(path)/2+1)
	pos := 0
	for {
		if pos >= len(path) {
			if len(steps) == 0 {
				return nil, syntaxError(path, pos, "'*' or '['")
			}
			break
		}

		switch path[pos] {
		case '*':
			steps = append(steps, Wildcard)
			pos++

		case '[':
			pos++
			start := pos
			for pos < len(path) && path[pos] >= '0' && path[pos] <= '9' {
				pos++
			}
			if pos == start {
				return nil, syntaxError(path, pos, "digit")
			}

			index, e := strconv.Atoi(path[start:pos])
			if e != nil {
				return nil, flexpeg.FormatError(PathSyntaxError, "path %q: bad index: %s", path, e.Error())
			}

			if pos >= len(path) || path[pos] != ']' {
				return nil, syntaxError(path, pos, "']'")
			}
			pos++
			steps = append(steps, index)

		default:
			return nil, syntaxError(path, pos, "'*' or '['")
		}
	}

	return &Path{steps}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(path string) *Path {
	p, e := Compile(path)
	if e != nil {
		panic(e)
	}
	return p
}

// String returns canonical path string.
func (p *Path) String() string {
	b := &strings.Builder{}
	for _, s := range p.steps {
		if s == Wildcard {
			b.WriteByte('*')
		} else {
			b.WriteString("[" + strconv.Itoa(s) + "]")
		}
	}
	return b.String()
}

// Steps returns a copy of compiled steps, Wildcard for "*".
func (p *Path) Steps() []int {
	res := make([]int, len(p.steps))
	copy(res, p.steps)
	return res
}

func selectStep(n *ast.Node, step int) []*ast.Node {
	if step == Wildcard {
		return n.Children()
	}

	c := n.Child(step)
	if c == nil {
		return nil
	}
	return []*ast.Node{c}
}

// Select returns nodes matching the path, the first step applies to immediate children of n.
// Result is in document order and may be empty.
func (p *Path) Select(n *ast.Node) []*ast.Node {
	if n == nil || len(p.steps) == 0 {
		return nil
	}

	res := selectStep(n, p.steps[0])
	for _, step := range p.steps[1:] {
		if len(res) == 0 {
			break
		}

		next := make([]*ast.Node, 0, len(res))
		for _, nn := range res {
			next = append(next, selectStep(nn, step)...)
		}
		res = next
	}
	return res
}

// First returns the first node matching the path or nil.
func (p *Path) First(n *ast.Node) *ast.Node {
	res := p.Select(n)
	if len(res) == 0 {
		return nil
	}
	return res[0]
}
