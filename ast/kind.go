package ast

import (
	"fmt"
)

// Kind is the node kind tag. The set of kinds is closed.
type Kind int

const (
	File Kind = iota
	DefinitionSection
	RuleSection
	StartDeclaration
	NameDefinition
	Rule
	PatternChoice
	PatternSequence
	PatternPart
	Range
	Group
	UseDefinition
	LiteralChars
	CharClass
	AnyChar
	Hex
	Octal
	AsciiNull
	BackslashOther
	Action
	Text

	// KindCount is the number of kinds, not a kind itself.
	KindCount
)

// Aggregate is used as label end index meaning "up to the last child".
const Aggregate = -1

type label struct {
	name       string
	index, end int
}

type schema struct {
	name     string
	terminal bool
	minLen   int
	labels   []label
}

func single(name string, index int) label {
	return label{name, index, index + 1}
}

func rest(name string, index int) label {
	return label{name, index, Aggregate}
}

var schemas = [KindCount]schema{
	File:              {"file", false, 2, []label{single("definitions", 0), single("rules", 1)}},
	DefinitionSection: {"definition_section", false, 0, []label{rest("items", 0)}},
	RuleSection:       {"rule_section", false, 0, []label{rest("rules", 0)}},
	StartDeclaration:  {"start_declaration", false, 1, []label{single("declaration_value", 0)}},
	NameDefinition:    {"name_definition", false, 2, []label{single("name", 0), single("definition", 1)}},
	Rule:              {"rule", false, 2, []label{single("pattern", 0), single("action", 1)}},
	PatternChoice:     {"pattern_choice", false, 1, []label{rest("alternatives", 0)}},
	PatternSequence:   {"pattern_sequence", false, 1, []label{rest("parts", 0)}},
	PatternPart:       {"pattern_part", false, 1, []label{single("base", 0), single("range", 1)}},
	Range:             {name: "range", terminal: true},
	Group:             {"group", false, 1, []label{single("pattern", 0)}},
	UseDefinition:     {"use_definition", false, 1, []label{single("name", 0)}},
	LiteralChars:      {name: "literal_chars", terminal: true},
	CharClass:         {name: "char_class", terminal: true},
	AnyChar:           {name: "any_char", terminal: true},
	Hex:               {name: "hex", terminal: true},
	Octal:             {name: "octal", terminal: true},
	AsciiNull:         {name: "ascii_null", terminal: true},
	BackslashOther:    {name: "backslash_other", terminal: true},
	Action:            {name: "action", terminal: true},
	Text:              {name: "text", terminal: true},
}

var kindIndex = func() map[string]Kind {
	res := make(map[string]Kind, KindCount)
	for k := Kind(0); k < KindCount; k++ {
		res[schemas[k].name] = k
	}
	return res
}()

// IsValid reports whether k is one of the defined kinds.
func (k Kind) IsValid() bool {
	return k >= 0 && k < KindCount
}

// String returns kind display name.
func (k Kind) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return schemas[k].name
}

// DisplayName returns the name of a kind as used in dumps and error messages.
// Panics on undefined kind: every kind must have a name.
func DisplayName(k Kind) string {
	if !k.IsValid() || schemas[k].name == "" {
		panic(fmt.Sprintf("cannot determine name for node kind %d", int(k)))
	}
	return schemas[k].name
}

// KindByName returns kind for display name.
func KindByName(name string) (Kind, bool) {
	k, found := kindIndex[name]
	return k, found
}

// IsTerminal reports whether nodes of kind k are collapsed to raw text at construction.
func IsTerminal(k Kind) bool {
	return k.IsValid() && schemas[k].terminal
}

// Labels returns label names defined for kind k in positional order.
func Labels(k Kind) []string {
	if !k.IsValid() {
		return nil
	}

	ls := schemas[k].labels
	res := make([]string, len(ls))
	for i, l := range ls {
		res[i] = l.name
	}
	return res
}

func findLabel(k Kind, name string) (label, bool) {
	if k.IsValid() {
		for _, l := range schemas[k].labels {
			if l.name == name {
				return l, true
			}
		}
	}
	return label{}, false
}
