package flex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/flexpeg/ast"
	"github.com/ava12/flexpeg/internal/test"
	"github.com/ava12/flexpeg/lexer"
	"github.com/ava12/flexpeg/source"
)

const sampleFile = `%{
#include <stdio.h>
%}
%option noyywrap case-insensitive
%x COMMENT
DIGIT    [0-9]
ID       [a-z_][a-z0-9_]*
/* a comment
   on two lines */
%%
  /* indented code is skipped */
"if"        { return IF; }
{DIGIT}+    { return NUMBER; }
{ID}        {
              return IDENT;
            }
ab*         /* SOME THING */
<COMMENT>\n { /* LINE BREAK */ }
<<EOF>>     { yyterminate(); }
%%
int main() { return 0; }
`

func parseFile(t *testing.T, content string) *ast.Node {
	t.Helper()
	p, e := ParseString("sample.l", content)
	require.NoError(t, e)
	n, e := ast.Resolve(p)
	require.NoError(t, e)
	return n
}

func sexps(ns []*ast.Node) []string {
	res := make([]string, len(ns))
	for i, n := range ns {
		res[i] = ast.Sexp(n)
	}
	return res
}

func TestSampleFile(t *testing.T) {
	root := parseFile(t, sampleFile)
	require.Equal(t, ast.File, root.Kind())

	defs := []string{
		`(start_declaration (text "noyywrap"))`,
		`(start_declaration (text "case-insensitive"))`,
		`(start_declaration (text "%x COMMENT"))`,
		`(name_definition (text "DIGIT") (pattern_choice (pattern_sequence (pattern_part (char_class "[0-9]")))))`,
		`(name_definition (text "ID") (pattern_choice (pattern_sequence (pattern_part (char_class "[a-z_]")) (pattern_part (char_class "[a-z0-9_]") (range "*")))))`,
	}
	assert.Equal(t, defs, sexps(root.Child(0).Children()))

	rules := []string{
		`(rule (pattern_choice (pattern_sequence (pattern_part (literal_chars "if")))) (action "{ return IF; }"))`,
		`(rule (pattern_choice (pattern_sequence (pattern_part (use_definition (text "DIGIT")) (range "+")))) (action "{ return NUMBER; }"))`,
		`(rule (pattern_choice (pattern_sequence (pattern_part (use_definition (text "ID"))))) (action "{\n              return IDENT;\n            }"))`,
		`(rule (pattern_choice (pattern_sequence (pattern_part (literal_chars "a")) (pattern_part (literal_chars "b") (range "*")))) (action "/* SOME THING */"))`,
		`(rule (pattern_choice (pattern_sequence (pattern_part (backslash_other "\\n")))) (action "{ /* LINE BREAK */ }"))`,
	}
	assert.Equal(t, rules, sexps(root.Child(1).Children()))
}

func TestPositions(t *testing.T) {
	root := parseFile(t, sampleFile)
	def := root.Child(0).Child(3)
	assert.Equal(t, 6, def.Pos().Line())
	assert.Equal(t, "sample.l", def.Pos().SourceName())

	rule := root.Child(1).Child(2)
	action, e := rule.Named("action")
	require.NoError(t, e)
	assert.Equal(t, 14, action.Pos().Line())
	assert.Equal(t, 13, action.Pos().Col())
}

func TestEmptySections(t *testing.T) {
	root := parseFile(t, "%%\n")
	assert.Equal(t, 0, root.Child(0).Len())
	assert.Equal(t, 0, root.Child(1).Len())

	root = parseFile(t, "%%\r\nx\r\n")
	assert.Equal(t, `(rule (pattern_choice (pattern_sequence (pattern_part (literal_chars "x")))) (action ""))`, ast.Sexp(root.Child(1).Child(0)))
}

func TestRuleComments(t *testing.T) {
	samples := []struct {
		content string
		rules   []string
	}{
		{
			"%%\nabc   /* after regex */ {return ABC;}\n",
			[]string{`(rule (pattern_choice (pattern_sequence (pattern_part (literal_chars "abc")))) (action "{return ABC;}"))`},
		},
		{
			"%%\nabc /* one */ /* two */ return ABC;\n",
			[]string{`(rule (pattern_choice (pattern_sequence (pattern_part (literal_chars "abc")))) (action "return ABC;"))`},
		},
		{
			"%%\n/* tokens */\nabc {return ABC;}\n",
			[]string{`(rule (pattern_choice (pattern_sequence (pattern_part (literal_chars "abc")))) (action "{return ABC;}"))`},
		},
		{
			"%%\n/* tokens\n   and more */\nabc {return ABC;}\n/* trailing */\n",
			[]string{`(rule (pattern_choice (pattern_sequence (pattern_part (literal_chars "abc")))) (action "{return ABC;}"))`},
		},
	}

	for _, s := range samples {
		root := parseFile(t, s.content)
		assert.Equal(t, s.rules, sexps(root.Child(1).Children()), "content %q", s.content)
	}

	root := parseFile(t, samples[0].content)
	action, e := root.Child(1).Child(0).Named("action")
	require.NoError(t, e)
	assert.Equal(t, 2, action.Pos().Line())
	assert.Equal(t, 25, action.Pos().Col())
}

func parsePattern(t *testing.T, pattern string) string {
	t.Helper()
	src := source.New("", []byte(pattern))
	p, e := ParsePattern(src, 0, src.Len())
	require.NoError(t, e, "pattern %q", pattern)
	n, e := ast.Resolve(p)
	require.NoError(t, e, "pattern %q", pattern)
	return ast.Sexp(n)
}

func TestPatterns(t *testing.T) {
	samples := [][2]string{
		{`abc`, `(pattern_choice (pattern_sequence (pattern_part (literal_chars "abc"))))`},
		{`abc+`, `(pattern_choice (pattern_sequence (pattern_part (literal_chars "ab")) (pattern_part (literal_chars "c") (range "+"))))`},
		{`a|b`, `(pattern_choice (pattern_sequence (pattern_part (literal_chars "a"))) (pattern_sequence (pattern_part (literal_chars "b"))))`},
		{`(a|bc){2,3}`, `(pattern_choice (pattern_sequence (pattern_part (group (pattern_choice (pattern_sequence (pattern_part (literal_chars "a"))) (pattern_sequence (pattern_part (literal_chars "bc"))))) (range "{2,3}"))))`},
		{`"a b"x`, `(pattern_choice (pattern_sequence (pattern_part (literal_chars "a b")) (pattern_part (literal_chars "x"))))`},
		{`"a\"b"`, `(pattern_choice (pattern_sequence (pattern_part (literal_chars "a\"b"))))`},
		{`[^"\]]*`, `(pattern_choice (pattern_sequence (pattern_part (char_class "[^\"\\]]") (range "*"))))`},
		{`[[:alpha:]_]`, `(pattern_choice (pattern_sequence (pattern_part (char_class "[[:alpha:]_]"))))`},
		{`\x41\101\0\.`, `(pattern_choice (pattern_sequence (pattern_part (hex "\\x41")) (pattern_part (octal "\\101")) (pattern_part (ascii_null "\\0")) (pattern_part (backslash_other "\\."))))`},
		{`.{DIGIT}?`, `(pattern_choice (pattern_sequence (pattern_part (any_char ".")) (pattern_part (use_definition (text "DIGIT")) (range "?"))))`},
		{`ab[c]d{3,}`, `(pattern_choice (pattern_sequence (pattern_part (literal_chars "ab")) (pattern_part (char_class "[c]")) (pattern_part (literal_chars "d") (range "{3,}"))))`},
	}

	for _, s := range samples {
		assert.Equal(t, s[1], parsePattern(t, s[0]), "pattern %q", s[0])
	}
}

func TestErrors(t *testing.T) {
	samples := []struct {
		content   string
		code      int
		line, col int
	}{
		{"x [a]\n", UnexpectedEofError, 2, 1},
		{"%{\nint x;\n", UnterminatedError, 1, 1},
		{"/* open\n%%\n", UnterminatedError, 1, 1},
		{"9abc x\n%%\n", UnexpectedTokenError, 1, 1},
		{"%option\n%%\n", UnexpectedTokenError, 1, 8},
		{"%option \"open\n%%\n", UnterminatedError, 1, 8},
		{"%%\n(ab { return X; }\n", UnexpectedEofError, 2, 4},
		{"%%\na|*b x\n", UnexpectedTokenError, 2, 3},
		{"%%\na) x\n", UnexpectedTokenError, 2, 2},
		{"%%\nx {\n  return X;\n", UnterminatedError, 2, 3},
		{"%%\n\"abc x\n", lexer.BadTokenError, 2, 1},
		{"%%\n<S> x\n", UnexpectedTokenError, 2, 4},
		{"%%\nx y\n/* open\n", UnterminatedError, 3, 1},
	}

	for _, s := range samples {
		_, e := ParseString("", s.content)
		test.ExpectErrorPos(t, s.code, s.line, s.col, e)
	}
}
