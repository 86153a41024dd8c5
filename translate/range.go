package translate

import (
	"regexp"
)

var boundsRe = regexp.MustCompile(`^\{\s*([0-9]+)\s*(?:(,)\s*([0-9]*)\s*)?\}$`)

// RangeSuffix converts flex occurrence suffix to grammar form:
// "*", "+", "?" are kept, "{N}" becomes "N", "{N,}" becomes " N..", "{0,M}" becomes "..M", "{N,M}" becomes "N..M".
func RangeSuffix(raw string) (string, bool) {
	switch raw {
	case "*", "+", "?":
		return raw, true
	}

	m := boundsRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}

	min, comma, max := m[1], m[2], m[3]
	switch {
	case comma == "":
		return min, true
	case max == "":
		return " " + min + "..", true
	case isZero(min):
		return ".." + max, true
	default:
		return min + ".." + max, true
	}
}

func isZero(digits string) bool {
	for _, c := range digits {
		if c != '0' {
			return false
		}
	}
	return true
}
