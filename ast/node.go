// Package ast defines the translator's syntax tree.
//
// A node is an immutable tagged variant: its kind fixes whether it has children
// (composite kinds) or raw text (terminal kinds). Terminal nodes built from children
// are collapsed to the children's raw text once, at construction.
package ast

import (
	"strings"

	"github.com/ava12/flexpeg"
	"github.com/ava12/flexpeg/source"
)

const (
	// NodeShapeError indicates a node whose shape contradicts its kind.
	NodeShapeError = flexpeg.TranslateErrors + iota
)

func shapeError(k Kind, pos source.Pos, msg string, params ...any) *flexpeg.Error {
	return flexpeg.FormatErrorPos(pos, NodeShapeError, k.String()+" node: "+msg, params...)
}

// Node is a syntax tree node.
type Node struct {
	kind     Kind
	pos      source.Pos
	children []*Node
	text     string
}

// New creates a node of kind k.
// Nodes of terminal kinds are collapsed to the concatenated raw text of children.
// Composite nodes must have at least as many children as their kind requires.
func New(k Kind, pos source.Pos, children ...*Node) (*Node, error) {
	if !k.IsValid() {
		return nil, shapeError(k, pos, "undefined kind")
	}

	for i, c := range children {
		if c == nil {
			return nil, shapeError(k, pos, "child #%d is nil", i)
		}
	}

	if schemas[k].terminal {
		b := &strings.Builder{}
		for _, c := range children {
			b.WriteString(c.Text())
		}
		return &Node{kind: k, pos: pos, text: b.String()}, nil
	}

	if len(children) < schemas[k].minLen {
		return nil, shapeError(k, pos, "expecting at least %d children, got %d", schemas[k].minLen, len(children))
	}

	cs := make([]*Node, len(children))
	copy(cs, children)
	return &Node{kind: k, pos: pos, children: cs}, nil
}

// NewText creates a node of terminal kind k with raw text.
func NewText(k Kind, pos source.Pos, text string) (*Node, error) {
	if !IsTerminal(k) {
		return nil, shapeError(k, pos, "cannot create from raw text %q", text)
	}

	return &Node{kind: k, pos: pos, text: text}, nil
}

// MustNew is like New but panics on error. Intended for trees built in code.
func MustNew(k Kind, children ...*Node) *Node {
	n, e := New(k, source.Pos{}, children...)
	if e != nil {
		panic(e)
	}
	return n
}

// MustText is like NewText but panics on error. Intended for trees built in code.
func MustText(k Kind, text string) *Node {
	n, e := NewText(k, source.Pos{}, text)
	if e != nil {
		panic(e)
	}
	return n
}

func (n *Node) Kind() Kind {
	return n.kind
}

// Name returns kind display name.
func (n *Node) Name() string {
	return DisplayName(n.kind)
}

func (n *Node) Pos() source.Pos {
	return n.pos
}

// IsTerminal reports whether the node holds raw text instead of children.
func (n *Node) IsTerminal() bool {
	return schemas[n.kind].terminal
}

// Text returns raw text of a terminal node or concatenated raw text of all descendants.
func (n *Node) Text() string {
	if n.IsTerminal() {
		return n.text
	}

	b := &strings.Builder{}
	for _, c := range n.children {
		b.WriteString(c.Text())
	}
	return b.String()
}

// Len returns the number of children.
func (n *Node) Len() int {
	return len(n.children)
}

// Child returns i-th child or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns a copy of child list.
func (n *Node) Children() []*Node {
	res := make([]*Node, len(n.children))
	copy(res, n.children)
	return res
}

// Named returns the first node bound to the label or nil if the label is not bound.
func (n *Node) Named(name string) (*Node, error) {
	ns, e := n.NamedList(name)
	if e != nil || len(ns) == 0 {
		return nil, e
	}
	return ns[0], nil
}

// NamedList returns all nodes bound to the label in positional order.
func (n *Node) NamedList(name string) ([]*Node, error) {
	l, found := findLabel(n.kind, name)
	if !found {
		return nil, shapeError(n.kind, n.pos, "unknown label %q", name)
	}

	end := l.end
	if end == Aggregate || end > len(n.children) {
		end = len(n.children)
	}
	if l.index >= end {
		return nil, nil
	}

	res := make([]*Node, end-l.index)
	copy(res, n.children[l.index:end])
	return res, nil
}
