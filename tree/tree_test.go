package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/flexpeg/ast"
	"github.com/ava12/flexpeg/lexer"
	"github.com/ava12/flexpeg/source"
)

func tok(src *source.Source, typeName, text string, pos int) Node {
	return NewTokenNode(lexer.NewToken(0, typeName, text, source.NewPos(src, pos)))
}

func nt(typeName string, children ...Node) NonTermNode {
	n := NewNonTermNode(typeName, nil)
	for _, c := range children {
		AppendChild(n, c)
	}
	return n
}

func typeNames(ns []Node) []string {
	res := make([]string, len(ns))
	for i, n := range ns {
		res[i] = n.TypeName()
	}
	return res
}

func TestLinks(t *testing.T) {
	a := tok(nil, "a", "a", 0)
	b := tok(nil, "b", "b", 0)
	c := tok(nil, "c", "c", 0)
	root := nt("root", a, b, c)

	assert.Equal(t, 3, NumOfChildren(root))
	assert.Equal(t, []string{"a", "b", "c"}, typeNames(Children(root)))
	assert.Equal(t, b, NthChild(root, 1))
	assert.Equal(t, c, NthChild(root, -1))
	assert.Equal(t, a, NthChild(root, -3))
	assert.Nil(t, NthChild(root, 3))
	assert.Nil(t, NthChild(root, -4))
	assert.Nil(t, NthChild(a, 0))
	assert.Equal(t, root, b.Parent())
	assert.Equal(t, a, b.Prev())
	assert.Equal(t, c, b.Next())

	Detach(c)
	assert.Equal(t, b, root.LastChild())
	assert.Nil(t, c.Parent())
	assert.Nil(t, b.Next())

	Detach(a)
	assert.Equal(t, b, root.FirstChild())
	assert.Nil(t, b.Prev())

	other := nt("other")
	AppendChild(other, b)
	assert.Equal(t, 0, NumOfChildren(root))
	assert.Nil(t, root.FirstChild())
	assert.Nil(t, root.LastChild())
	assert.Equal(t, other, b.Parent())
}

func TestFirstTokenNode(t *testing.T) {
	x := tok(nil, "x", "x", 0)
	root := nt("root", nt("empty"), nt("inner", nt("deeper", x)), tok(nil, "y", "y", 0))
	assert.Equal(t, x, FirstTokenNode(root))
	assert.Nil(t, FirstTokenNode(nt("empty")))
	assert.Equal(t, x, FirstTokenNode(x))
}

func TestPosAndText(t *testing.T) {
	src := source.New("file.l", []byte("ab\ncd"))
	root := nt("literal_chars", tok(src, "char", "c", 3), tok(src, "char", "d", 4))
	assert.Equal(t, "cd", root.Text())
	assert.Equal(t, 2, root.Pos().Line())
	assert.Equal(t, 1, root.Pos().Col())
	assert.False(t, nt("empty").Pos().IsValid())

	anchored := NewNonTermNode("rule", lexer.NewToken(0, "x", "", source.NewPos(src, 1)))
	assert.Equal(t, 2, anchored.Pos().Col())
}

func TestResolve(t *testing.T) {
	root := nt("pattern_part",
		nt("literal_chars", tok(nil, "char", "i", 0), tok(nil, "char", "f", 1)),
		tok(nil, "range", "+", 2),
	)

	k, claimed := root.NodeKind()
	assert.True(t, claimed)
	assert.Equal(t, ast.PatternPart, k)
	_, claimed = NthChild(NthChild(root, 0), 0).NodeKind()
	assert.False(t, claimed)

	n, e := ast.Resolve(root)
	require.NoError(t, e)
	assert.Equal(t, `(pattern_part (literal_chars "if") (range "+"))`, ast.Sexp(n))
}

func TestResolveSkipsEmptyUnclaimed(t *testing.T) {
	root := nt("pattern_part", tok(nil, "any_char", ".", 0), tok(nil, "none", "", 1))
	n, e := ast.Resolve(root)
	require.NoError(t, e)
	assert.Equal(t, 1, n.Len())
}
