// Package query builds the backend-agnostic boolean query tree for a listing request.
package query

import "strings"

// Kind identifies the shape of a Node.
type Kind int

const (
	// KindEverything matches every document.
	KindEverything Kind = iota
	// KindTerm matches documents whose field equals a value exactly.
	KindTerm
	// KindText is a full-text match of words against a field.
	KindText
	// KindFuzzy is a typo-tolerant phrase match against a field.
	KindFuzzy
	// KindAnd requires all children to match.
	KindAnd
	// KindOr requires any child to match.
	KindOr
)

func (k Kind) String() string {
	switch k {
	case KindEverything:
		return "everything"
	case KindTerm:
		return "term"
	case KindText:
		return "text"
	case KindFuzzy:
		return "fuzzy"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	default:
		return "unknown"
	}
}

// Node is an immutable boolean query expression.
type Node struct {
	kind     Kind
	field    string
	value    string
	children []Node
}

// Everything returns the match-everything node.
func Everything() Node { return Node{kind: KindEverything} }

// Term returns a leaf matching field == value.
func Term(field, value string) Node { return Node{kind: KindTerm, field: field, value: value} }

// Text returns a full-text leaf over field.
func Text(field, text string) Node { return Node{kind: KindText, field: field, value: text} }

// Fuzzy returns a fuzzy phrase leaf over field.
func Fuzzy(field, text string) Node { return Node{kind: KindFuzzy, field: field, value: text} }

// And returns a composite requiring all children.
func And(children ...Node) Node { return composite(KindAnd, children) }

// Or returns a composite requiring any child.
func Or(children ...Node) Node { return composite(KindOr, children) }

func composite(kind Kind, children []Node) Node {
	cp := make([]Node, len(children))
	copy(cp, children)
	return Node{kind: kind, children: cp}
}

// Kind returns the node kind.
func (n Node) Kind() Kind { return n.kind }

// Field returns the leaf field name.
func (n Node) Field() string { return n.field }

// Value returns the leaf value (term value or text).
func (n Node) Value() string { return n.value }

// Children returns a copy of the composite's children.
func (n Node) Children() []Node {
	out := make([]Node, len(n.children))
	copy(out, n.children)
	return out
}

// IsLeaf reports whether the node has no children by construction.
func (n Node) IsLeaf() bool { return n.kind != KindAnd && n.kind != KindOr }

// String renders a readable form, e.g. and(or(gender=male)).
func (n Node) String() string {
	switch n.kind {
	case KindEverything:
		return "*"
	case KindTerm:
		return n.field + "=" + n.value
	case KindText:
		return n.field + "~" + n.value
	case KindFuzzy:
		return n.field + "%" + n.value
	default:
		parts := make([]string, len(n.children))
		for i, c := range n.children {
			parts[i] = c.String()
		}
		return n.kind.String() + "(" + strings.Join(parts, ", ") + ")"
	}
}
