package flex

import (
	"strings"

	"github.com/ava12/flexpeg"
)

// Unit is a word or a quoted phrase of a declaration value list.
type Unit struct {
	// Text is the word or the phrase without quotes.
	Text string
	// Quoted reports whether the unit was a quoted phrase.
	Quoted bool
	// Proximity is the digits of "~digits" phrase suffix or empty string.
	Proximity string
	// Offset is the byte offset of the unit in the list.
	Offset int
}

// SplitUnits splits a list of words and quoted phrases.
// Units are delimited by a comma with an optional space, a line break, or a single space;
// the end of the list also ends the last unit.
// A quoted phrase is enclosed in double quotes, may contain escaped quotes (\"),
// and may be followed by "~" and digits.
func SplitUnits(list string) ([]Unit, error) {
	res := make([]Unit, 0)
	pos := 0
	for pos < len(list) {
		start := pos
		var u Unit
		if list[pos] == '"' {
			end, found := phraseEnd(list, pos+1)
			if !found {
				return nil, flexpeg.FormatError(UnterminatedError, "unterminated quoted phrase at offset %d", start)
			}
			if end == pos+1 {
				return nil, flexpeg.FormatError(UnexpectedTokenError, "empty quoted phrase at offset %d", start)
			}

			u = Unit{Text: strings.ReplaceAll(list[pos+1:end], `\"`, `"`), Quoted: true, Offset: start}
			pos = end + 1
			if pos < len(list) && list[pos] == '~' {
				digits := pos + 1
				for digits < len(list) && list[digits] >= '0' && list[digits] <= '9' {
					digits++
				}
				if digits == pos+1 {
					return nil, flexpeg.FormatError(UnexpectedTokenError, "expecting digits after \"~\" at offset %d", pos)
				}
				u.Proximity = list[pos+1 : digits]
				pos = digits
			}
		} else {
			for pos < len(list) && delimiterLen(list, pos) == 0 {
				pos++
			}
			if pos == start {
				return nil, flexpeg.FormatError(UnexpectedTokenError, "expecting word or quoted phrase at offset %d", start)
			}
			u = Unit{Text: list[start:pos], Offset: start}
		}

		res = append(res, u)
		if pos < len(list) {
			dl := delimiterLen(list, pos)
			if dl == 0 {
				return nil, flexpeg.FormatError(UnexpectedTokenError, "expecting delimiter at offset %d", pos)
			}
			pos += dl
		}
	}

	return res, nil
}

func phraseEnd(list string, pos int) (int, bool) {
	for pos < len(list) {
		switch list[pos] {
		case '\\':
			if pos+1 < len(list) && list[pos+1] == '"' {
				pos++
			}
		case '"':
			return pos, true
		}
		pos++
	}
	return pos, false
}

func delimiterLen(list string, pos int) int {
	switch {
	case strings.HasPrefix(list[pos:], ", "):
		return 2
	case strings.HasPrefix(list[pos:], "\r\n"):
		return 2
	}

	switch list[pos] {
	case ',', '\n', '\r', ' ':
		return 1
	}
	return 0
}
