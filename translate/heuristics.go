package translate

import (
	"regexp"
	"strings"
)

var (
	bracedActionRe  = regexp.MustCompile(`(?s)^\{(.*)\}$`)
	returnActionRe  = regexp.MustCompile(`^return\s+([A-Za-z_][A-Za-z0-9_]*)\s*;$`)
	commentActionRe = regexp.MustCompile(`^/\*([A-Za-z0-9 ]+)\*/$`)
	letterRangeRe   = regexp.MustCompile(`[a-z]-[a-z]|[A-Z]-[A-Z]`)
	qualifierSepRe  = regexp.MustCompile(`::|[.:]`)
)

// ActionText strips one layer of enclosing braces and surrounding whitespace from action code.
func ActionText(action string) string {
	action = strings.TrimSpace(action)
	if m := bracedActionRe.FindStringSubmatch(action); m != nil {
		action = strings.TrimSpace(m[1])
	}
	return action
}

// ActionName deduces rule name from action code.
// Recognized forms are "return NAME;" and "/* words */", the latter with spaces replaced by underscores.
func ActionName(action string) (string, bool) {
	text := ActionText(action)
	if m := returnActionRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}

	if m := commentActionRe.FindStringSubmatch(text); m != nil {
		name := strings.ReplaceAll(strings.TrimSpace(m[1]), " ", "_")
		if name != "" {
			return name, true
		}
	}

	return "", false
}

// FoldCharClass adds inverse-case counterpart after every single-letter range of a character class,
// e.g. "[a-z_]" becomes "[a-zA-Z_]". A counterpart already following the range is kept once.
func FoldCharClass(class string) string {
	b := &strings.Builder{}
	rest := class
	for {
		loc := letterRangeRe.FindStringIndex(rest)
		if loc == nil {
			break
		}

		found := rest[loc[0]:loc[1]]
		swapped := strings.ToUpper(found)
		if swapped == found {
			swapped = strings.ToLower(found)
		}

		b.WriteString(rest[:loc[1]])
		b.WriteString(swapped)
		rest = strings.TrimPrefix(rest[loc[1]:], swapped)
	}

	b.WriteString(rest)
	return b.String()
}

// QualifierParts splits namespace qualifier on "::", ".", or ":" dropping empty parts.
func QualifierParts(qualifier string) []string {
	parts := qualifierSepRe.Split(qualifier, -1)
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
