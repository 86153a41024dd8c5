package ast

import (
	"github.com/ava12/flexpeg/source"
)

// Produced is the capability a parsing front-end provides for its tree nodes.
type Produced interface {
	// NodeKind returns the kind the node claims to have, false if it claims none.
	NodeKind() (Kind, bool)
	NumChildren() int
	// ProducedChild returns i-th child, 0 <= i < NumChildren().
	ProducedChild(i int) Produced
	// Text returns raw matched text.
	Text() string
	Pos() source.Pos
}

// Resolve converts a produced tree to a syntax tree.
// A node claiming no kind has no resolved form: nil is returned for empty text
// (e.g. an empty optional element), NodeShapeError otherwise.
// Children without resolved form are skipped.
func Resolve(p Produced) (*Node, error) {
	k, claimed := p.NodeKind()
	if !claimed {
		if p.Text() == "" {
			return nil, nil
		}
		return nil, shapeError(Text, p.Pos(), "no resolved form for %q", p.Text())
	}

	if IsTerminal(k) {
		return NewText(k, p.Pos(), p.Text())
	}

	children := make([]*Node, 0, p.NumChildren())
	for i := 0; i < p.NumChildren(); i++ {
		c, e := Resolve(p.ProducedChild(i))
		if e != nil {
			return nil, e
		}

		if c != nil {
			children = append(children, c)
		}
	}

	return New(k, p.Pos(), children...)
}
