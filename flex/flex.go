// Package flex parses flex lexer specification files into parse trees.
//
// Recognized layout is
//
//	definitions
//	%%
//	rules
//	%%
//	user code
//
// Definitions section contains name definitions ("name pattern"), "%option" lines,
// other "%" directives, "%{ ... %}" code blocks, comments, and indented code lines.
// Rules section contains "pattern action" lines, an action starting with "{" may span
// several lines up to the matching "}". User code section is ignored.
//
// Produced tree nodes use syntax tree kind names as type names, so the root may be
// converted with ast.Resolve.
package flex

import (
	"regexp"
	"strings"

	"github.com/ava12/flexpeg"
	"github.com/ava12/flexpeg/ast"
	"github.com/ava12/flexpeg/lexer"
	"github.com/ava12/flexpeg/source"
	"github.com/ava12/flexpeg/tree"
)

// Error codes used by flex; lexer.WrongCharError and lexer.BadTokenError are used too:
const (
	// UnexpectedEofError indicates that input ends in the middle of a construct.
	UnexpectedEofError = flexpeg.FrontEndErrors + 10 + iota

	// UnexpectedTokenError indicates a token or a line that does not fit the construct.
	UnexpectedTokenError

	// UnterminatedError indicates a code block, a comment, an action, or a phrase that is not closed.
	UnterminatedError
)

const (
	sectionSeparator = "%%"
	codeStart        = "%{"
	codeEnd          = "%}"
	commentStart     = "/*"
	commentEnd       = "*/"
	optionDirective  = "%option"
	eofRule          = "<<EOF>>"
)

var (
	definitionRe     = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_-]*)[ \t]+(\S)`)
	startConditionRe = regexp.MustCompile(`^<[A-Za-z0-9_,*]+>`)
	blanksRe         = regexp.MustCompile(`[ \t]+`)
)

type line struct {
	start, end int // byte offsets, end excludes line break
	text       string
}

type fileParser struct {
	src   *source.Source
	pos   int
	defs  tree.NonTermNode
	rules tree.NonTermNode
}

// ParseString parses named flex text.
func ParseString(name, content string) (tree.NonTermNode, error) {
	return Parse(source.New(name, []byte(content)))
}

// Parse parses flex source. Returned node has file type with definition_section and rule_section children.
func Parse(src *source.Source) (tree.NonTermNode, error) {
	p := &fileParser{
		src:   src,
		defs:  tree.NewNonTermNode(ast.DefinitionSection.String(), nil),
		rules: tree.NewNonTermNode(ast.RuleSection.String(), nil),
	}

	e := p.definitions()
	if e == nil {
		e = p.ruleLines()
	}
	if e != nil {
		return nil, e
	}

	root := tree.NewNonTermNode(ast.File.String(), lexer.NewToken(textTok, ast.Text.String(), "", source.NewPos(src, 0)))
	root.AppendChild(p.defs)
	root.AppendChild(p.rules)
	return root, nil
}

func (p *fileParser) eof() bool {
	return p.pos >= p.src.Len()
}

func (p *fileParser) readLine() line {
	content := p.src.Content()
	start := p.pos
	end := start
	for end < len(content) && content[end] != '\n' {
		end++
	}

	next := end
	if next < len(content) {
		next++
	}
	if end > start && content[end-1] == '\r' {
		end--
	}

	p.pos = next
	return line{start, end, string(content[start:end])}
}

func (p *fileParser) position(pos int) source.Pos {
	return source.NewPos(p.src, pos)
}

func (p *fileParser) token(typeName, text string, pos int) *lexer.Token {
	return lexer.NewToken(textTok, typeName, text, p.position(pos))
}

// skipUntil skips lines up to and including the first line starting with marker.
func (p *fileParser) skipUntil(marker string, from int, what string) error {
	for !p.eof() {
		if strings.HasPrefix(p.readLine().text, marker) {
			return nil
		}
	}
	return flexpeg.FormatErrorPos(p.position(from), UnterminatedError, "unterminated %s", what)
}

// skipComment skips a comment starting at byte offset from, possibly spanning several lines.
func (p *fileParser) skipComment(from int) error {
	content := string(p.src.Content())
	end := strings.Index(content[from+len(commentStart):], commentEnd)
	if end < 0 {
		return flexpeg.FormatErrorPos(p.position(from), UnterminatedError, "unterminated comment")
	}

	p.pos = from + len(commentStart) + end + len(commentEnd)
	p.readLine()
	return nil
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

func (p *fileParser) definitions() error {
	for !p.eof() {
		l := p.readLine()
		switch {
		case strings.HasPrefix(l.text, sectionSeparator):
			return nil

		case isBlank(l.text), l.text[0] == ' ', l.text[0] == '\t':
			continue

		case strings.HasPrefix(l.text, codeStart):
			if e := p.skipUntil(codeEnd, l.start, "code block"); e != nil {
				return e
			}

		case strings.HasPrefix(l.text, commentStart):
			if e := p.skipComment(l.start); e != nil {
				return e
			}

		case strings.HasPrefix(l.text, optionDirective) && (len(l.text) == len(optionDirective) || l.text[len(optionDirective)] == ' ' || l.text[len(optionDirective)] == '\t'):
			if e := p.options(l); e != nil {
				return e
			}

		case l.text[0] == '%':
			p.declaration(strings.TrimSpace(l.text), l.start)

		default:
			if e := p.nameDefinition(l); e != nil {
				return e
			}
		}
	}

	return flexpeg.FormatErrorPos(p.position(p.src.Len()), UnexpectedEofError, "unexpected end of input, expecting %q", sectionSeparator)
}

func (p *fileParser) declaration(value string, pos int) {
	node := tree.NewNonTermNode(ast.StartDeclaration.String(), nil)
	node.AppendChild(tree.NewTokenNode(p.token(ast.Text.String(), value, pos)))
	p.defs.AppendChild(node)
}

func (p *fileParser) options(l line) error {
	offset := l.start + len(optionDirective)
	list := strings.TrimSpace(blanksRe.ReplaceAllString(l.text[len(optionDirective):], " "))
	if list == "" {
		return flexpeg.FormatErrorPos(p.position(offset), UnexpectedTokenError, "expecting option list")
	}

	units, e := SplitUnits(list)
	if fe, is := e.(*flexpeg.Error); is {
		return flexpeg.FormatErrorPos(p.position(offset), fe.Code, "%s", fe.Message)
	}
	if e != nil {
		return e
	}

	for _, u := range units {
		p.declaration(u.Text, offset)
	}
	return nil
}

func (p *fileParser) nameDefinition(l line) error {
	m := definitionRe.FindStringSubmatchIndex(l.text)
	if m == nil {
		return flexpeg.FormatErrorPos(p.position(l.start), UnexpectedTokenError, "expecting name definition, got %q", l.text)
	}

	name := l.text[m[2]:m[3]]
	from := l.start + m[4]
	to := l.start + patternEnd(l.text, m[4])
	pattern, e := ParsePattern(p.src, from, to)
	if e != nil {
		return e
	}

	node := tree.NewNonTermNode(ast.NameDefinition.String(), nil)
	node.AppendChild(tree.NewTokenNode(p.token(ast.Text.String(), name, l.start)))
	node.AppendChild(pattern)
	p.defs.AppendChild(node)
	return nil
}

func (p *fileParser) ruleLines() error {
	for !p.eof() {
		l := p.readLine()
		switch {
		case strings.HasPrefix(l.text, sectionSeparator):
			return nil

		case isBlank(l.text), l.text[0] == ' ', l.text[0] == '\t':
			continue

		case strings.HasPrefix(l.text, codeStart):
			if e := p.skipUntil(codeEnd, l.start, "code block"); e != nil {
				return e
			}

		case strings.HasPrefix(l.text, commentStart):
			if e := p.skipComment(l.start); e != nil {
				return e
			}

		default:
			if e := p.rule(l); e != nil {
				return e
			}
		}
	}

	return nil
}

func (p *fileParser) rule(l line) error {
	from := 0
	if m := startConditionRe.FindStringIndex(l.text); m != nil {
		from = m[1]
	}

	if strings.HasPrefix(l.text[from:], eofRule) {
		return p.skipAction(l, from+len(eofRule))
	}

	to := patternEnd(l.text, from)
	if to == from {
		return flexpeg.FormatErrorPos(p.position(l.start+from), UnexpectedTokenError, "expecting pattern")
	}

	pattern, e := ParsePattern(p.src, l.start+from, l.start+to)
	if e != nil {
		return e
	}

	action, e := p.action(l, to)
	if e != nil {
		return e
	}

	node := tree.NewNonTermNode(ast.Rule.String(), nil)
	node.AppendChild(pattern)
	node.AppendChild(tree.NewTokenNode(action))
	p.rules.AppendChild(node)
	return nil
}

func (p *fileParser) skipAction(l line, from int) error {
	_, e := p.action(l, from)
	return e
}

func skipBlanks(text string, from int) int {
	for from < len(text) && (text[from] == ' ' || text[from] == '\t') {
		from++
	}
	return from
}

// action fetches action text following pattern ending at byte offset from of line l.
// Comments before the action are skipped, a comment with nothing after it is the action itself.
// Braced action may continue on following lines.
func (p *fileParser) action(l line, from int) (*lexer.Token, error) {
	from = skipBlanks(l.text, from)
	for strings.HasPrefix(l.text[from:], commentStart) {
		end := strings.Index(l.text[from+len(commentStart):], commentEnd)
		if end < 0 {
			break
		}

		next := skipBlanks(l.text, from+len(commentStart)+end+len(commentEnd))
		if next >= len(l.text) {
			break
		}
		from = next
	}

	start := l.start + from
	if from >= len(l.text) || l.text[from] != '{' {
		return p.token(ast.Action.String(), strings.TrimSpace(l.text[from:]), start), nil
	}

	end, found := braceEnd(p.src.Content(), start)
	if !found {
		return nil, flexpeg.FormatErrorPos(p.position(start), UnterminatedError, "unterminated action")
	}

	if end > l.end {
		p.pos = end
		p.readLine()
	}
	return p.token(ast.Action.String(), p.src.Text(start, end), start), nil
}

// braceEnd returns offset past the "}" matching "{" at offset start.
// Braces inside string and char literals and comments are not counted.
func braceEnd(content []byte, start int) (int, bool) {
	depth := 0
	for i := start; i < len(content); i++ {
		switch c := content[i]; c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		case '"', '\'':
			for i++; i < len(content) && content[i] != c && content[i] != '\n'; i++ {
				if content[i] == '\\' {
					i++
				}
			}
		case '/':
			if i+1 < len(content) && content[i+1] == '*' {
				end := strings.Index(string(content[i+2:]), commentEnd)
				if end < 0 {
					return 0, false
				}
				i += 2 + end + 1
			}
		}
	}
	return 0, false
}

// patternEnd returns index of the first whitespace of text at or after from
// that is not inside a quoted string or a character class, or len(text).
func patternEnd(text string, from int) int {
	inQuote, inClass := false, false
	i := from
	for i < len(text) {
		c := text[i]
		switch {
		case c == '\\':
			i++
		case inQuote:
			inQuote = c != '"'
		case inClass:
			inClass = c != ']'
		case c == '"':
			inQuote = true
		case c == '[':
			inClass = true
			if i+1 < len(text) && text[i+1] == '^' {
				i++
			}
			if i+1 < len(text) && text[i+1] == ']' {
				i++
			}
		case c == ' ' || c == '\t':
			return i
		}
		i++
	}

	if i > len(text) {
		i = len(text)
	}
	return i
}
