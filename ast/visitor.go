package ast

// Visitor has one method per node kind. A type implementing Visitor handles every kind.
type Visitor interface {
	VisitFile(*Node) error
	VisitDefinitionSection(*Node) error
	VisitRuleSection(*Node) error
	VisitStartDeclaration(*Node) error
	VisitNameDefinition(*Node) error
	VisitRule(*Node) error
	VisitPatternChoice(*Node) error
	VisitPatternSequence(*Node) error
	VisitPatternPart(*Node) error
	VisitRange(*Node) error
	VisitGroup(*Node) error
	VisitUseDefinition(*Node) error
	VisitLiteralChars(*Node) error
	VisitCharClass(*Node) error
	VisitAnyChar(*Node) error
	VisitHex(*Node) error
	VisitOctal(*Node) error
	VisitAsciiNull(*Node) error
	VisitBackslashOther(*Node) error
	VisitAction(*Node) error
	VisitText(*Node) error
}

// Fails to compile when the kind list and the switch below go out of sync.
var _ = [1]struct{}{}[KindCount-21]

// Accept calls the visitor method matching node kind.
func (n *Node) Accept(v Visitor) error {
	switch n.kind {
	case File:
		return v.VisitFile(n)
	case DefinitionSection:
		return v.VisitDefinitionSection(n)
	case RuleSection:
		return v.VisitRuleSection(n)
	case StartDeclaration:
		return v.VisitStartDeclaration(n)
	case NameDefinition:
		return v.VisitNameDefinition(n)
	case Rule:
		return v.VisitRule(n)
	case PatternChoice:
		return v.VisitPatternChoice(n)
	case PatternSequence:
		return v.VisitPatternSequence(n)
	case PatternPart:
		return v.VisitPatternPart(n)
	case Range:
		return v.VisitRange(n)
	case Group:
		return v.VisitGroup(n)
	case UseDefinition:
		return v.VisitUseDefinition(n)
	case LiteralChars:
		return v.VisitLiteralChars(n)
	case CharClass:
		return v.VisitCharClass(n)
	case AnyChar:
		return v.VisitAnyChar(n)
	case Hex:
		return v.VisitHex(n)
	case Octal:
		return v.VisitOctal(n)
	case AsciiNull:
		return v.VisitAsciiNull(n)
	case BackslashOther:
		return v.VisitBackslashOther(n)
	case Action:
		return v.VisitAction(n)
	case Text:
		return v.VisitText(n)
	default:
		return shapeError(n.kind, n.pos, "no visitor method")
	}
}
