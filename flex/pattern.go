package flex

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ava12/flexpeg"
	"github.com/ava12/flexpeg/ast"
	"github.com/ava12/flexpeg/lexer"
	"github.com/ava12/flexpeg/source"
	"github.com/ava12/flexpeg/tree"
)

const (
	stringTok = iota
	classTok
	hexTok
	octalTok
	nullTok
	escapeTok
	useTok
	rangeTok
	opTok
	anyTok
	charTok
	textTok
	actionTok
)

const (
	stringName = "string"
	useName    = "use"
	opName     = "op"
	charName   = "char"
)

var (
	patternRe = regexp.MustCompile(`^(?:` +
		`("(?:[^"\\\n]|\\.)*")` +
		`|(\[\^?\]?(?:\[:[a-z]+:\]|[^\]\\\n]|\\.)*\])` +
		`|(\\x[0-9A-Fa-f]{1,2})` +
		`|(\\(?:[1-7][0-7]{0,2}|0[0-7]{1,2}))` +
		`|(\\0)` +
		`|(\\(?s:.))` +
		`|(\{[A-Za-z_][A-Za-z0-9_-]*\})` +
		`|(\{[0-9]+(?:,[0-9]*)?\}|[*+?])` +
		`|([|()])` +
		`|(\.)` +
		`|(["\[{\\])` +
		`|(\S))`)

	patternTypes = []lexer.TokenType{
		{Type: stringTok, TypeName: stringName},
		{Type: classTok, TypeName: ast.CharClass.String()},
		{Type: hexTok, TypeName: ast.Hex.String()},
		{Type: octalTok, TypeName: ast.Octal.String()},
		{Type: nullTok, TypeName: ast.AsciiNull.String()},
		{Type: escapeTok, TypeName: ast.BackslashOther.String()},
		{Type: useTok, TypeName: useName},
		{Type: rangeTok, TypeName: ast.Range.String()},
		{Type: opTok, TypeName: opName},
		{Type: anyTok, TypeName: ast.AnyChar.String()},
		{Type: -1, TypeName: "broken"},
		{Type: charTok, TypeName: charName},
	}

	patternLexer = lexer.New(patternRe, patternTypes)
)

type patternParser struct {
	scanner *lexer.Scanner
	tok     *lexer.Token
}

// ParsePattern parses flex pattern located in src content between byte offsets from and to.
// Returned node has pattern_choice type.
func ParsePattern(src *source.Source, from, to int) (tree.NonTermNode, error) {
	p := &patternParser{scanner: patternLexer.Scan(src, from, to)}
	if e := p.next(); e != nil {
		return nil, e
	}

	res, e := p.choice()
	if e != nil {
		return nil, e
	}

	if !p.tok.IsEof() {
		return nil, p.unexpected("end of pattern")
	}
	return res, nil
}

func (p *patternParser) next() (e error) {
	p.tok, e = p.scanner.Next()
	return
}

func (p *patternParser) is(tokenType int, texts ...string) bool {
	if p.tok.Type() != tokenType {
		return false
	}
	if len(texts) == 0 {
		return true
	}

	for _, t := range texts {
		if p.tok.Text() == t {
			return true
		}
	}
	return false
}

func (p *patternParser) unexpected(expected string) error {
	if p.tok.IsEof() {
		return flexpeg.FormatErrorPos(p.tok, UnexpectedEofError, "unexpected end of pattern, expecting %s", expected)
	}
	return flexpeg.FormatErrorPos(p.tok, UnexpectedTokenError, "unexpected %q, expecting %s", p.tok.Text(), expected)
}

func (p *patternParser) choice() (tree.NonTermNode, error) {
	node := tree.NewNonTermNode(ast.PatternChoice.String(), p.tok)
	for {
		seq, e := p.sequence()
		if e != nil {
			return nil, e
		}

		node.AppendChild(seq)
		if !p.is(opTok, "|") {
			return node, nil
		}

		if e = p.next(); e != nil {
			return nil, e
		}
	}
}

func (p *patternParser) startsPart() bool {
	return !p.tok.IsEof() && !p.is(opTok, "|", ")") && !p.is(rangeTok)
}

func (p *patternParser) sequence() (tree.NonTermNode, error) {
	node := tree.NewNonTermNode(ast.PatternSequence.String(), p.tok)
	for p.startsPart() {
		var base tree.Node
		if p.is(charTok) {
			chars := make([]*lexer.Token, 0)
			for p.is(charTok) {
				chars = append(chars, p.tok)
				if e := p.next(); e != nil {
					return nil, e
				}
			}

			// a suffix applies to the last char only
			last := len(chars) - 1
			if last > 0 && p.is(rangeTok) {
				node.AppendChild(newPart(literal(chars[:last]), nil))
				chars = chars[last:]
			}
			base = literal(chars)
		} else {
			var e error
			base, e = p.atom()
			if e != nil {
				return nil, e
			}
		}

		var suffix tree.Node
		if p.is(rangeTok) {
			suffix = tree.NewTokenNode(p.tok)
			if e := p.next(); e != nil {
				return nil, e
			}
		}
		node.AppendChild(newPart(base, suffix))
	}

	if node.FirstChild() == nil {
		return nil, p.unexpected("pattern")
	}
	return node, nil
}

func (p *patternParser) atom() (tree.Node, error) {
	tok := p.tok
	switch tok.Type() {
	case stringTok:
		text := unquote(tok.Text())
		e := p.next()
		return tree.NewTokenNode(lexer.NewToken(textTok, ast.LiteralChars.String(), text, tok.Pos())), e

	case useTok:
		name := strings.TrimSuffix(strings.TrimPrefix(tok.Text(), "{"), "}")
		node := tree.NewNonTermNode(ast.UseDefinition.String(), tok)
		node.AppendChild(tree.NewTokenNode(lexer.NewToken(textTok, ast.Text.String(), name, tok.Pos())))
		return node, p.next()

	case classTok, hexTok, octalTok, nullTok, escapeTok, anyTok:
		return tree.NewTokenNode(tok), p.next()

	case opTok:
		if tok.Text() != "(" {
			break
		}

		if e := p.next(); e != nil {
			return nil, e
		}

		inner, e := p.choice()
		if e != nil {
			return nil, e
		}

		if !p.is(opTok, ")") {
			return nil, p.unexpected(`")"`)
		}

		node := tree.NewNonTermNode(ast.Group.String(), tok)
		node.AppendChild(inner)
		return node, p.next()
	}

	return nil, p.unexpected("pattern")
}

func literal(chars []*lexer.Token) tree.Node {
	node := tree.NewNonTermNode(ast.LiteralChars.String(), chars[0])
	for _, c := range chars {
		node.AppendChild(tree.NewTokenNode(c))
	}
	return node
}

func newPart(base, suffix tree.Node) tree.Node {
	node := tree.NewNonTermNode(ast.PatternPart.String(), nil)
	node.AppendChild(base)
	if suffix != nil {
		node.AppendChild(suffix)
	}
	return node
}

// unquote returns contents of a quoted flex string with C escapes resolved where possible.
func unquote(quoted string) string {
	if s, e := strconv.Unquote(quoted); e == nil {
		return s
	}

	body := quoted[1 : len(quoted)-1]
	b := &strings.Builder{}
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			i++
		}
		b.WriteByte(body[i])
	}
	return b.String()
}
