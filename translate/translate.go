// Package translate converts flex syntax trees to Treetop grammar text.
package translate

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/ava12/flexpeg"
	"github.com/ava12/flexpeg/ast"
	"github.com/ava12/flexpeg/emitter"
	"github.com/ava12/flexpeg/internal/logging"
	"github.com/ava12/flexpeg/internal/logging/logfields"
	"github.com/ava12/flexpeg/query"
)

const (
	// UnresolvedActionError indicates a rule whose action yields no rule name; the rule is skipped.
	UnresolvedActionError = flexpeg.NoticeCodes + iota
	// UnknownDeclarationNotice indicates an ignored start declaration.
	UnknownDeclarationNotice
	// UnsupportedEscapeNotice indicates an escape sequence replaced with a placeholder.
	UnsupportedEscapeNotice
)

const (
	definitionsComment = "from flex name definitions"
	rulesComment       = "flex rules"
	choiceSeparator    = " / "
	sequenceSeparator  = " "
	anyCharPattern     = `(!"\n" .)`
	hexPlaceholder     = "OHAI_HEX_SEXP"
	octalPlaceholder   = "OHAI_OCTAL_SEXP"
	nullPlaceholder    = "OHAI_NULL_SEXP"
)

var caseInsensitiveValues = map[string]bool{
	"case-insensitive": true,
	"caseless":         true,
}

var (
	allChildren = query.MustCompile("*")
	definitions = query.MustCompile("[0]*")
	rules       = query.MustCompile("[1]*")
)

var _ ast.Visitor = (*Translator)(nil)

// Translator writes grammar text for syntax tree nodes. Each node kind has its own Visit method.
type Translator struct {
	ctx *Context
	em  *emitter.Emitter
	log logrus.FieldLogger
}

// New creates translator writing to em. A nil log means logging.DefaultLogger.
func New(ctx *Context, em *emitter.Emitter, log logrus.FieldLogger) *Translator {
	if log == nil {
		log = logging.DefaultLogger.WithField(logfields.LogSubsys, "translate")
	}
	return &Translator{ctx: ctx, em: em, log: log}
}

// Context returns translation context.
func (t *Translator) Context() *Context {
	return t.ctx
}

// Translate writes grammar text for the tree rooted at root.
// Returns the first fatal error, including emitter write errors. Notices are collected in the context.
func (t *Translator) Translate(root *ast.Node) error {
	if root == nil {
		return flexpeg.FormatError(ast.NodeShapeError, "no syntax tree to translate")
	}

	e := root.Accept(t)
	if e == nil {
		e = t.em.Err()
	}
	return e
}

func (t *Translator) notice(n *ast.Node, code int, msg string, params ...any) {
	ne := flexpeg.FormatErrorPos(n.Pos(), code, msg, params...)
	t.ctx.addNotice(ne)
	t.log.WithFields(logrus.Fields{
		logfields.Code: code,
		logfields.Kind: n.Name(),
		logfields.Line: ne.Line,
		logfields.Col:  ne.Col,
	}).Warn(ne.Message)
}

func (t *Translator) acceptAll(ns []*ast.Node, sep string) error {
	for i, n := range ns {
		if i > 0 && sep != "" {
			t.em.Write(sep)
		}
		if e := n.Accept(t); e != nil {
			return e
		}
	}
	return nil
}

func (t *Translator) named(n *ast.Node, label string) (*ast.Node, error) {
	c, e := n.Named(label)
	if e == nil && c == nil {
		e = flexpeg.FormatErrorPos(n.Pos(), ast.NodeShapeError, "%s node: no %q child", n.Name(), label)
	}
	return c, e
}

func (t *Translator) writeRule(name string, pattern *ast.Node) error {
	return t.em.Block(emitter.RuleBlock, t.ctx.RuleName(name), func() error {
		e := pattern.Accept(t)
		t.em.Newline()
		return e
	})
}

func (t *Translator) nest(names []string, body func() error) error {
	if len(names) == 0 {
		return body()
	}

	kind := emitter.ModuleBlock
	if len(names) == 1 {
		kind = emitter.GrammarBlock
	}
	return t.em.Block(kind, names[0], func() error {
		return t.nest(names[1:], body)
	})
}

func (t *Translator) VisitFile(n *ast.Node) error {
	return t.nest(QualifierParts(t.ctx.Grammar()), func() error {
		if ds := definitions.Select(n); len(ds) > 0 {
			t.em.Comment(definitionsComment)
			if e := t.acceptAll(ds, ""); e != nil {
				return e
			}
		}

		if rs := rules.Select(n); len(rs) > 0 {
			t.em.Comment(rulesComment)
			if e := t.acceptAll(rs, ""); e != nil {
				return e
			}
		}

		return nil
	})
}

func (t *Translator) VisitDefinitionSection(n *ast.Node) error {
	return t.acceptAll(allChildren.Select(n), "")
}

func (t *Translator) VisitRuleSection(n *ast.Node) error {
	return t.acceptAll(allChildren.Select(n), "")
}

func (t *Translator) VisitStartDeclaration(n *ast.Node) error {
	v, e := t.named(n, "declaration_value")
	if e != nil {
		return e
	}

	value := v.Text()
	if caseInsensitiveValues[value] {
		t.ctx.setCaseInsensitive()
		return nil
	}

	t.em.Comment("declaration ignored: " + strconv.Quote(value))
	t.notice(n, UnknownDeclarationNotice, "declaration ignored: %q", value)
	return nil
}

func (t *Translator) VisitNameDefinition(n *ast.Node) error {
	name, e := t.named(n, "name")
	if e != nil {
		return e
	}

	def, e := t.named(n, "definition")
	if e != nil {
		return e
	}

	return t.writeRule(name.Text(), def)
}

func (t *Translator) VisitRule(n *ast.Node) error {
	pattern, e := t.named(n, "pattern")
	if e != nil {
		return e
	}

	action, e := t.named(n, "action")
	if e != nil {
		return e
	}

	name, found := ActionName(action.Text())
	if !found {
		t.notice(action, UnresolvedActionError, "Can't deduce a rule name from: %s  Skipping.", strconv.Quote(ActionText(action.Text())))
		return nil
	}

	return t.writeRule(name, pattern)
}

func (t *Translator) VisitPatternChoice(n *ast.Node) error {
	alts, e := n.NamedList("alternatives")
	if e != nil {
		return e
	}
	return t.acceptAll(alts, choiceSeparator)
}

func (t *Translator) VisitPatternSequence(n *ast.Node) error {
	parts, e := n.NamedList("parts")
	if e != nil {
		return e
	}
	return t.acceptAll(parts, sequenceSeparator)
}

func (t *Translator) VisitPatternPart(n *ast.Node) error {
	base, e := t.named(n, "base")
	if e != nil {
		return e
	}

	if e = base.Accept(t); e != nil {
		return e
	}

	r, e := n.Named("range")
	if e != nil || r == nil {
		return e
	}
	return r.Accept(t)
}

func (t *Translator) VisitRange(n *ast.Node) error {
	suffix, valid := RangeSuffix(n.Text())
	if !valid {
		return flexpeg.FormatErrorPos(n.Pos(), ast.NodeShapeError, "%s node: malformed range %q", n.Name(), n.Text())
	}

	t.em.Write(suffix)
	return nil
}

func (t *Translator) VisitGroup(n *ast.Node) error {
	p, e := t.named(n, "pattern")
	if e != nil {
		return e
	}

	t.em.Write("(")
	e = p.Accept(t)
	t.em.Write(")")
	return e
}

func (t *Translator) VisitUseDefinition(n *ast.Node) error {
	name, e := t.named(n, "name")
	if e != nil {
		return e
	}

	t.em.Write(t.ctx.RuleName(name.Text()))
	return nil
}

func (t *Translator) VisitLiteralChars(n *ast.Node) error {
	t.em.Write(strconv.Quote(n.Text()))
	return nil
}

func (t *Translator) VisitCharClass(n *ast.Node) error {
	class := n.Text()
	if t.ctx.CaseInsensitive() {
		class = FoldCharClass(class)
	}

	t.em.Write(class)
	return nil
}

func (t *Translator) VisitAnyChar(n *ast.Node) error {
	t.em.Write(anyCharPattern)
	return nil
}

func (t *Translator) placeholder(n *ast.Node, text string) error {
	t.em.Write(text)
	t.notice(n, UnsupportedEscapeNotice, "unsupported escape %q replaced with %s", n.Text(), text)
	return nil
}

func (t *Translator) VisitHex(n *ast.Node) error {
	return t.placeholder(n, hexPlaceholder)
}

func (t *Translator) VisitOctal(n *ast.Node) error {
	return t.placeholder(n, octalPlaceholder)
}

func (t *Translator) VisitAsciiNull(n *ast.Node) error {
	return t.placeholder(n, nullPlaceholder)
}

func (t *Translator) VisitBackslashOther(n *ast.Node) error {
	t.em.Write(`"` + n.Text() + `"`)
	return nil
}

// VisitAction writes nothing: actions are only used to name rules.
func (t *Translator) VisitAction(n *ast.Node) error {
	return nil
}

func (t *Translator) VisitText(n *ast.Node) error {
	t.em.Write(n.Text())
	return nil
}
