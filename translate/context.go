package translate

import (
	"github.com/ava12/flexpeg"
)

// Context holds per-run translation state. It is not reentrant: use a new Context for each run.
type Context struct {
	grammar         string
	caseInsensitive bool
	notices         []*flexpeg.Error
}

// NewContext creates translation context.
// grammar is an optional namespace qualifier, e.g. "A::B::Grammar"; empty string means no wrapping blocks.
// caseInsensitive is the initial character class mode.
func NewContext(grammar string, caseInsensitive bool) *Context {
	return &Context{grammar: grammar, caseInsensitive: caseInsensitive}
}

// Grammar returns namespace qualifier.
func (c *Context) Grammar() string {
	return c.grammar
}

// CaseInsensitive reports whether character classes are case-folded.
func (c *Context) CaseInsensitive() bool {
	return c.caseInsensitive
}

// The only place the flag is changed after construction. It is never reset.
func (c *Context) setCaseInsensitive() {
	c.caseInsensitive = true
}

// Notices returns notices collected so far in emission order.
func (c *Context) Notices() []*flexpeg.Error {
	res := make([]*flexpeg.Error, len(c.notices))
	copy(res, c.notices)
	return res
}

func (c *Context) addNotice(n *flexpeg.Error) {
	c.notices = append(c.notices, n)
}

// RuleName maps flex name to grammar rule name. Names are kept as is.
func (c *Context) RuleName(name string) string {
	return name
}
