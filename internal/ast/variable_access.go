package ast

import "github.com/smasonuk/oopchecker/internal/lexer"

// VariableAccessKind tags which variant a VariableAccess holds.
type VariableAccessKind int

const (
	// VarIdentifier is a bare identifier. The semantic pass rewrites
	// nodes of this kind in place to VarAttribute once it resolves the
	// identifier to an instance field (spec §3 invariant 4).
	VarIdentifier VariableAccessKind = iota
	VarIndexed
	VarAttribute
	VarThis
)

// VariableAccess is the variable-access grammar node: a bare
// identifier, an indexed access, an attribute designator, or `this`.
type VariableAccess struct {
	Kind VariableAccessKind
	PosV lexer.Position

	// VarIdentifier
	Name string

	// VarIndexed
	Base    *VariableAccess
	Indices []*Expression

	// VarAttribute
	Owner *VariableAccess
	Field string
}

func (v *VariableAccess) Pos() lexer.Position { return v.PosV }

// Identifier returns the name of the leaf identifier this access
// chain ultimately reads or writes: itself if it is a bare
// identifier, the attribute name for attribute designators, or the
// recursively-found identifier of the base variable access for
// indexed accesses (find_identifier).
func (v *VariableAccess) Identifier() (string, lexer.Position) {
	switch v.Kind {
	case VarIdentifier:
		return v.Name, v.PosV
	case VarIndexed:
		return v.Base.Identifier()
	case VarAttribute:
		return v.Field, v.PosV
	default:
		panic("ast: VariableAccess.Identifier called on a kind with no identifier (VarThis)")
	}
}
