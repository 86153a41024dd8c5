package translate

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/flexpeg/ast"
	"github.com/ava12/flexpeg/emitter"
	"github.com/ava12/flexpeg/internal/test"
)

func text(k ast.Kind, s string) *ast.Node {
	return ast.MustText(k, s)
}

func part(base *ast.Node, suffix ...string) *ast.Node {
	if len(suffix) > 0 {
		return ast.MustNew(ast.PatternPart, base, text(ast.Range, suffix[0]))
	}
	return ast.MustNew(ast.PatternPart, base)
}

func seq(parts ...*ast.Node) *ast.Node {
	return ast.MustNew(ast.PatternSequence, parts...)
}

func choice(seqs ...*ast.Node) *ast.Node {
	return ast.MustNew(ast.PatternChoice, seqs...)
}

func single(base *ast.Node, suffix ...string) *ast.Node {
	return choice(seq(part(base, suffix...)))
}

func lit(s string) *ast.Node {
	return text(ast.LiteralChars, s)
}

func class(s string) *ast.Node {
	return text(ast.CharClass, s)
}

func use(name string) *ast.Node {
	return ast.MustNew(ast.UseDefinition, text(ast.Text, name))
}

func group(p *ast.Node) *ast.Node {
	return ast.MustNew(ast.Group, p)
}

func rule(pattern *ast.Node, action string) *ast.Node {
	return ast.MustNew(ast.Rule, pattern, text(ast.Action, action))
}

func define(name string, pattern *ast.Node) *ast.Node {
	return ast.MustNew(ast.NameDefinition, text(ast.Text, name), pattern)
}

func declare(value string) *ast.Node {
	return ast.MustNew(ast.StartDeclaration, text(ast.Text, value))
}

func file(defs []*ast.Node, rules ...*ast.Node) *ast.Node {
	return ast.MustNew(ast.File, ast.MustNew(ast.DefinitionSection, defs...), ast.MustNew(ast.RuleSection, rules...))
}

func quietLog() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func translate(t *testing.T, ctx *Context, root *ast.Node) string {
	t.Helper()
	buf := emitter.NewBuffer()
	em := emitter.New(buf)
	require.NoError(t, New(ctx, em, quietLog()).Translate(root))
	require.NoError(t, em.Flush())
	return buf.String()
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func expectOutput(t *testing.T, expected, got string) {
	t.Helper()
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestFileSections(t *testing.T) {
	root := file(
		[]*ast.Node{
			define("DIGIT", single(class("[0-9]"))),
			define("ID", choice(seq(part(class("[a-z_]")), part(class("[a-z0-9_]"), "*")))),
		},
		rule(single(lit("if")), "{ return IF; }"),
		rule(single(use("DIGIT"), "+"), "{ return NUMBER; }"),
		rule(single(lit("\n")), "{ /* LINE BREAK */ }"),
	)

	expected := lines(
		"# from flex name definitions",
		"rule DIGIT",
		"  [0-9]",
		"end",
		"rule ID",
		"  [a-z_] [a-z0-9_]*",
		"end",
		"# flex rules",
		"rule IF",
		`  "if"`,
		"end",
		"rule NUMBER",
		"  DIGIT+",
		"end",
		"rule LINE_BREAK",
		`  "\n"`,
		"end",
	)
	expectOutput(t, expected, translate(t, NewContext("", false), root))
}

func TestEmptySectionsWriteNoComments(t *testing.T) {
	expectOutput(t, "", translate(t, NewContext("", false), file(nil)))

	root := file(nil, rule(single(lit("x")), "{ return X; }"))
	expectOutput(t, lines("# flex rules", "rule X", `  "x"`, "end"), translate(t, NewContext("", false), root))

	root = file([]*ast.Node{define("D", single(lit("d")))})
	expectOutput(t, lines("# from flex name definitions", "rule D", `  "d"`, "end"), translate(t, NewContext("", false), root))
}

func TestNamespaceWrapping(t *testing.T) {
	root := file(nil, rule(single(lit("if")), "{ return IF; }"))
	expected := lines(
		"module A",
		"  module B",
		"    grammar Grammar",
		"      # flex rules",
		"      rule IF",
		`        "if"`,
		"      end",
		"    end",
		"  end",
		"end",
	)

	for _, q := range []string{"A::B::Grammar", "A.B.Grammar", "A:B:Grammar"} {
		expectOutput(t, expected, translate(t, NewContext(q, false), root))
	}

	expectOutput(t, lines("grammar G", "end"), translate(t, NewContext("G", false), file(nil)))
}

func TestDocumentOrder(t *testing.T) {
	root := file(nil,
		rule(single(lit("b")), "{ return B; }"),
		rule(single(lit("a")), "{ return A; }"),
		rule(single(lit("b")), "{ return B; }"),
	)
	got := translate(t, NewContext("", false), root)
	assert.Equal(t, []string{"rule B", "rule A", "rule B"}, grep(got, "rule "))
}

func grep(s, prefix string) []string {
	var res []string
	for _, l := range strings.Split(s, "\n") {
		if strings.HasPrefix(l, prefix) {
			res = append(res, l)
		}
	}
	return res
}

func TestSeparators(t *testing.T) {
	samples := []struct {
		pattern  *ast.Node
		expected string
	}{
		{choice(seq(part(lit("a"))), seq(part(lit("b"))), seq(part(lit("c")))), `"a" / "b" / "c"`},
		{choice(seq(part(lit("a")), part(lit("b")), part(lit("c")))), `"a" "b" "c"`},
		{single(group(choice(seq(part(lit("a"))), seq(part(lit("b"))))), "?"), `("a" / "b")?`},
		{single(lit("x"), "{5}"), `"x"5`},
		{single(lit("x"), "{3,}"), `"x" 3..`},
		{single(lit("x"), "{2,4}"), `"x"2..4`},
		{single(lit("x"), "{0,4}"), `"x"..4`},
		{single(text(ast.AnyChar, ".")), `(!"\n" .)`},
		{single(text(ast.BackslashOther, `\.`)), `"\."`},
		{single(lit(`say "hi"`)), `"say \"hi\""`},
	}

	for _, s := range samples {
		root := file(nil, rule(s.pattern, "{ return T; }"))
		expectOutput(t, lines("# flex rules", "rule T", "  "+s.expected, "end"), translate(t, NewContext("", false), root))
	}
}

func TestUseDefinitionSuffix(t *testing.T) {
	root := file(nil, rule(single(use("x"), "{5}"), "{ return T; }"))
	expectOutput(t, lines("# flex rules", "rule T", "  x5", "end"), translate(t, NewContext("", false), root))
}

func TestCaseInsensitive(t *testing.T) {
	root := file(
		[]*ast.Node{
			define("BEFORE", single(class("[a-z_]"))),
			declare("case-insensitive"),
			define("AFTER", single(class("[a-z_]"))),
		},
		rule(single(class("[A-Z]"), "+"), "{ return UP; }"),
	)

	ctx := NewContext("", false)
	expected := lines(
		"# from flex name definitions",
		"rule BEFORE",
		"  [a-z_]",
		"end",
		"rule AFTER",
		"  [a-zA-Z_]",
		"end",
		"# flex rules",
		"rule UP",
		"  [A-Za-z]+",
		"end",
	)
	expectOutput(t, expected, translate(t, ctx, root))
	assert.True(t, ctx.CaseInsensitive())
	assert.Empty(t, ctx.Notices())

	ctx = NewContext("", true)
	root = file(nil, rule(single(class("[a-z]")), "{ return LOW; }"))
	expectOutput(t, lines("# flex rules", "rule LOW", "  [a-zA-Z]", "end"), translate(t, ctx, root))

	ctx = NewContext("", false)
	root = file([]*ast.Node{declare("caseless")}, rule(single(class("[a-z]")), "{ return LOW; }"))
	assert.Contains(t, translate(t, ctx, root), "  [a-zA-Z]\n")
}

func TestUnknownDeclaration(t *testing.T) {
	ctx := NewContext("", false)
	root := file([]*ast.Node{declare("noyywrap")}, rule(single(class("[a-z]")), "{ return LOW; }"))
	expected := lines(
		"# from flex name definitions",
		`# declaration ignored: "noyywrap"`,
		"# flex rules",
		"rule LOW",
		"  [a-z]",
		"end",
	)
	expectOutput(t, expected, translate(t, ctx, root))
	assert.False(t, ctx.CaseInsensitive())
	test.ExpectCodes(t, []int{UnknownDeclarationNotice}, ctx.Notices())
}

func TestUnresolvedAction(t *testing.T) {
	ctx := NewContext("", false)
	root := file(nil,
		rule(single(lit("a")), "{ yylval = 1; }"),
		rule(single(lit("b")), "{ return B; }"),
	)
	expectOutput(t, lines("# flex rules", "rule B", `  "b"`, "end"), translate(t, ctx, root))

	notices := ctx.Notices()
	test.ExpectCodes(t, []int{UnresolvedActionError}, notices)
	assert.Equal(t, `Can't deduce a rule name from: "yylval = 1;"  Skipping.`, notices[0].Message)
	assert.True(t, notices[0].IsNotice())
}

func TestEscapePlaceholders(t *testing.T) {
	ctx := NewContext("", false)
	pattern := choice(seq(
		part(text(ast.Hex, `\x41`)),
		part(text(ast.Octal, `\101`)),
		part(text(ast.AsciiNull, `\0`)),
	))
	root := file(nil, rule(pattern, "{ return ESC; }"))
	expectOutput(t, lines("# flex rules", "rule ESC", "  OHAI_HEX_SEXP OHAI_OCTAL_SEXP OHAI_NULL_SEXP", "end"), translate(t, ctx, root))
	test.ExpectCodes(t, []int{UnsupportedEscapeNotice, UnsupportedEscapeNotice, UnsupportedEscapeNotice}, ctx.Notices())
}

func TestActionIsNotEmitted(t *testing.T) {
	buf := emitter.NewBuffer()
	tr := New(NewContext("", false), emitter.New(buf), quietLog())
	require.NoError(t, tr.Translate(text(ast.Action, "{ return X; }")))
	assert.Equal(t, "", buf.String())
}

func TestShapeErrors(t *testing.T) {
	tr := New(NewContext("", false), emitter.New(emitter.NewBuffer()), quietLog())
	test.ExpectErrorCode(t, ast.NodeShapeError, tr.Translate(nil))

	root := file(nil, rule(single(lit("x"), "{x}"), "{ return X; }"))
	test.ExpectErrorCode(t, ast.NodeShapeError, tr.Translate(root))
}

type failingWriter struct{}

var errWrite = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

func TestWriteError(t *testing.T) {
	em := emitter.New(emitter.Streaming(failingWriter{}))
	root := file(nil, rule(single(lit("x")), "{ return X; }"))
	e := New(NewContext("", false), em, quietLog()).Translate(root)
	assert.ErrorIs(t, e, errWrite)
	assert.Equal(t, 0, em.Level())
}
