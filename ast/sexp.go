package ast

import (
	"strconv"
	"strings"
)

// Sexp renders a tree as a one-line s-expression, e.g.
//
//	(rule (pattern_choice (pattern_sequence (pattern_part (literal_chars "if")))) (action "{ return IF; }"))
func Sexp(n *Node) string {
	if n == nil {
		return "()"
	}

	b := &strings.Builder{}
	writeSexp(b, n)
	return b.String()
}

func writeSexp(b *strings.Builder, n *Node) {
	b.WriteString("(")
	b.WriteString(n.Name())
	if n.IsTerminal() {
		b.WriteString(" ")
		b.WriteString(strconv.Quote(n.text))
	} else {
		for _, c := range n.children {
			b.WriteString(" ")
			writeSexp(b, c)
		}
	}
	b.WriteString(")")
}
