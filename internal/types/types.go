// Package types implements the type algebra (C1) of the semantic pass:
// equality, numeric coercion, ancestor and structural comparisons,
// assignment compatibility, and diagnostic pretty-printing of the
// language's type descriptors.
package types

import "fmt"

// Kind tags the variant a Type descriptor holds.
type Kind int

const (
	Integer Kind = iota
	Real
	Char
	Boolean
	ClassKind
	ArrayKind
)

// Type is the tagged-variant type descriptor of spec §3. A nil *Type
// means "no type": it is the Unknown sentinel returned when typing
// fails.
type Type struct {
	Kind Kind

	// ClassKind
	ClassName string
	Line      int // line the class type reference was written on

	// ArrayKind
	Min     int
	Max     int
	Element *Type
}

// Primitive singletons. Primitives carry no identity beyond their
// kind, so these can be shared freely; the original implementation
// heap-allocates a fresh TypeDenoter per use, which
// this reimplementation avoids per spec §9 note 6.
var (
	IntegerType = &Type{Kind: Integer}
	RealType    = &Type{Kind: Real}
	CharType    = &Type{Kind: Char}
	BooleanType = &Type{Kind: Boolean}
)

// Unknown is the sentinel for "typing failed for this node": a nil
// *Type, returned whenever a subexpression could not be typed so that
// consumers can check for it without a second out-of-band bool.
var Unknown *Type = nil

// IsUnknown reports whether t is the "typing failed" sentinel.
func IsUnknown(t *Type) bool {
	return t == nil
}

// NewClassType builds a class-kind type descriptor naming className.
func NewClassType(className string, line int) *Type {
	return &Type{Kind: ClassKind, ClassName: className, Line: line}
}

// NewArrayType builds an array-kind type descriptor over [min, max].
func NewArrayType(min, max int, element *Type) *Type {
	return &Type{Kind: ArrayKind, Min: min, Max: max, Element: element}
}

// String renders t for diagnostics: "integer", "real", "char",
// "boolean", the class name, or "array[min..max] of <elem>".
func (t *Type) String() string {
	if t == nil {
		return "<unknown>"
	}
	switch t.Kind {
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Char:
		return "char"
	case Boolean:
		return "boolean"
	case ClassKind:
		return t.ClassName
	case ArrayKind:
		return fmt.Sprintf("array[%d..%d] of %s", t.Min, t.Max, t.Element.String())
	default:
		return "<invalid type>"
	}
}

// Equal reports structural equality (types_equal in the original):
// primitives equal iff same kind, classes equal iff same name, arrays
// equal iff same element count and recursively-equal elements.
func Equal(t1, t2 *Type) bool {
	if t1 == nil || t2 == nil {
		return false
	}
	if t1.Kind != t2.Kind {
		return false
	}
	switch t1.Kind {
	case ArrayKind:
		return (t1.Max - t1.Min) == (t2.Max - t2.Min) && Equal(t1.Element, t2.Element)
	case ClassKind:
		return t1.ClassName == t2.ClassName
	default:
		return true
	}
}

// ClassAncestry resolves, for a given class name, the name of its
// declared parent class (hasParent=false if it has none, known=false if
// the class itself is unknown) and its ordered field types. The
// semantic package supplies this so the
// type algebra never has to know about SymbolTable directly.
type ClassAncestry interface {
	ParentOf(className string) (parent string, hasParent bool, known bool)
	FieldTypes(className string) ([]*Type, bool)
}

// IsAncestor returns whether ancestor's class is child's class or one
// of its transitive parents, per is_ancestor. The walk is defensively
// bounded by a visited set (spec §9: "the implementation should
// defensively bound the walk") even though a well-formed program never
// needs it, since a prior pass - not this one - is responsible for
// rejecting inheritance cycles.
//
// AssignmentValid calls this as IsAncestor(lhs, rhs), i.e. with the
// assignment target as child and the assigned value's type as
// ancestor - so a class assignment is ancestor-valid only when the
// *target's* declared type is reached by climbing up from... the
// *target* itself, looking for the *source* type. Concretely: given
// "class Dog extends Animal", assigning an Animal into a
// Dog-typed variable is ancestor-valid (Dog's own chain reaches
// Animal), while assigning a Dog into an Animal-typed variable is not
// (Animal's chain never reaches Dog) unless the two classes are also
// structurally equivalent. This is the literal original behavior, not
// the usual covariant "assign derived to base" rule - see DESIGN.md.
func IsAncestor(chain ClassAncestry, child, ancestor *Type) bool {
	if child == nil || ancestor == nil || child.Kind != ClassKind || ancestor.Kind != ClassKind {
		return false
	}
	visited := map[string]bool{}
	name := child.ClassName
	for {
		if name == ancestor.ClassName {
			return true
		}
		if visited[name] {
			return false
		}
		visited[name] = true
		parent, hasParent, known := chain.ParentOf(name)
		if !known || !hasParent {
			return false
		}
		name = parent
	}
}

// equivGuard tracks in-flight (left, right) class name pairs during a
// structurally_equivalent recursion so that cyclic class shapes
// terminate. Per spec §9, a cleaner reimplementation keeps a
// visited-pair set rather than the original's sticky global boolean;
// re-entering a pair already on the stack returns true, mirroring the
// original's permissive "assume equivalent" behavior once a cycle is
// detected, without poisoning unrelated comparisons for the rest of
// the pass.
type equivGuard struct {
	stack map[[2]string]bool
}

func newEquivGuard() *equivGuard {
	return &equivGuard{stack: map[[2]string]bool{}}
}

func (g *equivGuard) enter(left, right string) bool {
	key := [2]string{left, right}
	if g.stack[key] {
		return false
	}
	g.stack[key] = true
	return true
}

func (g *equivGuard) leave(left, right string) {
	delete(g.stack, [2]string{left, right})
}

// StructurallyEquivalent reports whether two class types have pairwise
// assignment-compatible, same-length ordered field lists.
func StructurallyEquivalent(chain ClassAncestry, left, right *Type) bool {
	return structurallyEquivalent(chain, left, right, newEquivGuard())
}

func structurallyEquivalent(chain ClassAncestry, left, right *Type, guard *equivGuard) bool {
	if left == nil || right == nil || left.Kind != ClassKind || right.Kind != ClassKind {
		return false
	}
	if !guard.enter(left.ClassName, right.ClassName) {
		return true
	}
	defer guard.leave(left.ClassName, right.ClassName)

	leftFields, ok := chain.FieldTypes(left.ClassName)
	if !ok {
		return false
	}
	rightFields, ok := chain.FieldTypes(right.ClassName)
	if !ok {
		return false
	}
	if len(leftFields) != len(rightFields) {
		return false
	}
	for i := range leftFields {
		if !assignmentValid(chain, leftFields[i], rightFields[i], guard) {
			return false
		}
	}
	return true
}

// AssignmentValid reports whether a value of type rhs may be stored
// into a location of type lhs (assignment_valid).
func AssignmentValid(chain ClassAncestry, lhs, rhs *Type) bool {
	return assignmentValid(chain, lhs, rhs, newEquivGuard())
}

func assignmentValid(chain ClassAncestry, lhs, rhs *Type, guard *equivGuard) bool {
	if lhs == nil || rhs == nil {
		return false
	}
	if lhs.Kind == rhs.Kind {
		switch lhs.Kind {
		case ArrayKind:
			sameSize := (lhs.Max - lhs.Min) == (rhs.Max - rhs.Min)
			return sameSize && assignmentValid(chain, lhs.Element, rhs.Element, guard)
		case ClassKind:
			return IsAncestor(chain, lhs, rhs) || structurallyEquivalent(chain, lhs, rhs, guard)
		default:
			return true
		}
	}
	if lhs.Kind == Integer && rhs.Kind == Char {
		return true
	}
	if lhs.Kind == Real && (rhs.Kind == Integer || rhs.Kind == Char) {
		return true
	}
	return false
}

// Comparable reports whether a == b is legal for a relational
// operator: assignment-compatible in either direction.
func Comparable(chain ClassAncestry, a, b *Type) bool {
	return AssignmentValid(chain, a, b) || AssignmentValid(chain, b, a)
}

// CombinedType is the result type of an arithmetic binary operator
// (combined_type), or Unknown if the operand kinds don't combine.
func CombinedType(left, right *Type) *Type {
	if left == nil || right == nil {
		return Unknown
	}
	switch {
	case left.Kind == Char && right.Kind == Char:
		return CharType
	case left.Kind == Integer && right.Kind == Integer:
		return IntegerType
	case left.Kind == Real && right.Kind == Real:
		return RealType
	case (left.Kind == Integer && right.Kind == Char) || (left.Kind == Char && right.Kind == Integer):
		return IntegerType
	case (left.Kind == Real && right.Kind == Integer) || (left.Kind == Integer && right.Kind == Real):
		return RealType
	case (left.Kind == Real && right.Kind == Char) || (left.Kind == Char && right.Kind == Real):
		return RealType
	case left.Kind == Boolean && right.Kind == Boolean:
		return BooleanType
	default:
		return Unknown
	}
}
