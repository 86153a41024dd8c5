// Package tree defines parse tree nodes built by the front-end.
//
// Nodes are doubly linked with their siblings and parent. Node type names double as
// syntax tree kind names: a node whose type name is a kind name claims that kind
// when resolved with ast.Resolve.
package tree

import (
	"strings"

	"github.com/ava12/flexpeg/ast"
	"github.com/ava12/flexpeg/lexer"
	"github.com/ava12/flexpeg/source"
)

type Node interface {
	ast.Produced
	IsNonTerm() bool
	TypeName() string
	Token() *lexer.Token
	Parent() NonTermNode
	Prev() Node
	Next() Node
	SetParent(NonTermNode)
	SetPrev(Node)
	SetNext(Node)
}

type NonTermNode interface {
	Node
	FirstChild() Node
	LastChild() Node
	SetFirstChild(Node)
	AppendChild(Node)
}

// NthChild returns i-th child of n, counting from the end for negative i (-1 is the last child).
// Returns nil if there is no such child.
func NthChild(n Node, i int) Node {
	if n == nil || !n.IsNonTerm() {
		return nil
	}

	nn := n.(NonTermNode)
	var c Node
	if i >= 0 {
		c = nn.FirstChild()
		for c != nil && i > 0 {
			c = c.Next()
			i--
		}
	} else {
		i++
		c = nn.LastChild()
		for c != nil && i < 0 {
			c = c.Prev()
			i++
		}
	}

	return c
}

// NumOfChildren returns the number of direct children.
func NumOfChildren(n Node) int {
	if n == nil || !n.IsNonTerm() {
		return 0
	}

	i := 0
	for c := n.(NonTermNode).FirstChild(); c != nil; c = c.Next() {
		i++
	}
	return i
}

// FirstTokenNode returns the leftmost token node of the subtree or nil.
func FirstTokenNode(n Node) Node {
	if n == nil || !n.IsNonTerm() {
		return n
	}

	n = n.(NonTermNode).FirstChild()
	for n != nil && n.IsNonTerm() {
		nn := FirstTokenNode(n)
		if nn != nil {
			return nn
		}

		n = n.Next()
	}

	return n
}

func Children(n Node) []Node {
	if n == nil || !n.IsNonTerm() {
		return nil
	}

	res := make([]Node, 0)
	for c := n.(NonTermNode).FirstChild(); c != nil; c = c.Next() {
		res = append(res, c)
	}
	return res
}

// Detach removes n from its parent's child list.
func Detach(n Node) {
	if n == nil || n.Parent() == nil {
		return
	}

	np := n.Prev()
	nn := n.Next()

	if np == nil {
		n.Parent().SetFirstChild(nn)
	} else {
		np.SetNext(nn)
		n.SetPrev(nil)
	}
	if nn != nil {
		nn.SetPrev(np)
		n.SetNext(nil)
	} else if ntn, is := n.Parent().(*nonTermNode); is {
		ntn.lastChild = np
	}
	n.SetParent(nil)
}

// AppendSibling inserts node right after prev, detaching it from its previous parent.
func AppendSibling(prev, node Node) {
	if node == nil || prev == nil {
		return
	}

	Detach(node)
	next := prev.Next()
	node.SetParent(prev.Parent())
	node.SetPrev(prev)
	node.SetNext(next)
	prev.SetNext(node)
	if next != nil {
		next.SetPrev(node)
	}
}

// AppendChild appends node as the last child of parent, detaching it from its previous parent.
func AppendChild(parent NonTermNode, node Node) {
	if parent == nil || node == nil {
		return
	}

	Detach(node)
	parent.AppendChild(node)
}

func claimedKind(typeName string) (ast.Kind, bool) {
	return ast.KindByName(typeName)
}

type tokenNode struct {
	parent     NonTermNode
	prev, next Node
	token      *lexer.Token
}

func NewTokenNode(t *lexer.Token) Node {
	return &tokenNode{token: t}
}

func (tn *tokenNode) IsNonTerm() bool {
	return false
}

func (tn *tokenNode) TypeName() string {
	return tn.token.TypeName()
}

func (tn *tokenNode) Parent() NonTermNode {
	return tn.parent
}

func (tn *tokenNode) Prev() Node {
	return tn.prev
}

func (tn *tokenNode) Next() Node {
	return tn.next
}

func (tn *tokenNode) Pos() source.Pos {
	return tn.token.Pos()
}

func (tn *tokenNode) Token() *lexer.Token {
	return tn.token
}

func (tn *tokenNode) SetParent(p NonTermNode) {
	tn.parent = p
}

func (tn *tokenNode) SetPrev(p Node) {
	tn.prev = p
}

func (tn *tokenNode) SetNext(n Node) {
	tn.next = n
}

func (tn *tokenNode) NodeKind() (ast.Kind, bool) {
	return claimedKind(tn.token.TypeName())
}

func (tn *tokenNode) NumChildren() int {
	return 0
}

func (tn *tokenNode) ProducedChild(i int) ast.Produced {
	return nil
}

func (tn *tokenNode) Text() string {
	return tn.token.Text()
}

type nonTermNode struct {
	typeName              string
	token                 *lexer.Token
	parent                NonTermNode
	prev, next            Node
	firstChild, lastChild Node
}

// NewNonTermNode creates a node with no children.
// tok is the first token of the node, it is used as node position when the node has no token descendants.
func NewNonTermNode(typeName string, tok *lexer.Token) NonTermNode {
	return &nonTermNode{typeName: typeName, token: tok}
}

func (ntn *nonTermNode) IsNonTerm() bool {
	return true
}

func (ntn *nonTermNode) TypeName() string {
	return ntn.typeName
}

func (ntn *nonTermNode) Token() *lexer.Token {
	return ntn.token
}

func (ntn *nonTermNode) Parent() NonTermNode {
	return ntn.parent
}

func (ntn *nonTermNode) FirstChild() Node {
	return ntn.firstChild
}

func (ntn *nonTermNode) LastChild() Node {
	return ntn.lastChild
}

func (ntn *nonTermNode) Prev() Node {
	return ntn.prev
}

func (ntn *nonTermNode) Next() Node {
	return ntn.next
}

func (ntn *nonTermNode) SetParent(p NonTermNode) {
	ntn.parent = p
}

func (ntn *nonTermNode) SetFirstChild(c Node) {
	ntn.firstChild = c
	if ntn.lastChild == nil || c == nil {
		ntn.lastChild = c
	}
	if c != nil {
		c.SetParent(ntn)
	}
}

func (ntn *nonTermNode) AppendChild(c Node) {
	if ntn.firstChild == nil {
		ntn.SetFirstChild(c)
	} else {
		AppendSibling(ntn.lastChild, c)
		ntn.lastChild = c
	}
}

func (ntn *nonTermNode) SetPrev(p Node) {
	ntn.prev = p
}

func (ntn *nonTermNode) SetNext(n Node) {
	ntn.next = n
}

func (ntn *nonTermNode) Pos() source.Pos {
	if ntn.token != nil {
		return ntn.token.Pos()
	}

	if tn := FirstTokenNode(ntn); tn != nil {
		return tn.Pos()
	}
	return source.Pos{}
}

func (ntn *nonTermNode) NodeKind() (ast.Kind, bool) {
	return claimedKind(ntn.typeName)
}

func (ntn *nonTermNode) NumChildren() int {
	return NumOfChildren(ntn)
}

func (ntn *nonTermNode) ProducedChild(i int) ast.Produced {
	c := NthChild(ntn, i)
	if c == nil {
		return nil
	}
	return c
}

// Text returns concatenated text of all descendant tokens.
func (ntn *nonTermNode) Text() string {
	b := &strings.Builder{}
	for c := ntn.firstChild; c != nil; c = c.Next() {
		b.WriteString(c.Text())
	}
	return b.String()
}
