package semantic

import (
	"strings"

	"github.com/smasonuk/oopchecker/internal/ast"
	"github.com/smasonuk/oopchecker/internal/types"
)

// checkVariableAccess is the Variable-Access Typer (C4): it dispatches
// on the four access kinds, resolving identifiers against the current
// method's locals/params first and the current class's field chain
// second, rewriting a resolved bare field access in place to an
// explicit this.field attribute designator (check_variable_access).
func (c *Checker) checkVariableAccess(sc scope, va *ast.VariableAccess, allowFunctionReturnValue bool) *types.Type {
	switch va.Kind {
	case ast.VarIdentifier:
		return c.checkIdentifierAccess(sc, va, allowFunctionReturnValue)
	case ast.VarIndexed:
		return c.checkIndexedAccess(sc, va)
	case ast.VarAttribute:
		return c.checkAttributeAccess(sc, va)
	case ast.VarThis:
		return types.NewClassType(sc.className, va.Pos().Line)
	default:
		panic("semantic: unhandled VariableAccess kind")
	}
}

func (c *Checker) checkIdentifierAccess(sc scope, va *ast.VariableAccess, allowFunctionReturnValue bool) *types.Type {
	cs := c.table.Get(sc.className)
	ms := cs.Functions[strings.ToLower(sc.methodName)]

	if t, ok := ms.Variables[strings.ToLower(va.Name)]; ok {
		if !allowFunctionReturnValue && strings.EqualFold(ms.Decl.Name, va.Name) {
			c.errorf(va.PosV.Line, "cannot read from \"%s\" because it is reserved for use as the function return value", va.Name)
		}
		return t
	}

	if t, ok := classVariableType(c.table, sc.className, va.Name); ok {
		pos := va.PosV
		field := va.Name
		va.Kind = ast.VarAttribute
		va.Owner = &ast.VariableAccess{Kind: ast.VarThis, PosV: pos}
		va.Field = field
		va.Name = ""
		return t
	}

	c.errorf(va.PosV.Line, "variable \"%s\" not declared", va.Name)
	return nil
}

func (c *Checker) checkAttributeAccess(sc scope, va *ast.VariableAccess) *types.Type {
	ownerType := c.checkVariableAccess(sc, va.Owner, false)
	if ownerType == nil || ownerType.Kind != types.ClassKind {
		return nil
	}
	t, ok := classVariableType(c.table, ownerType.ClassName, va.Field)
	if !ok {
		c.errorf(va.PosV.Line, "class \"%s\" has no attribute \"%s\"", ownerType.ClassName, va.Field)
		return nil
	}
	return t
}

func (c *Checker) checkIndexedAccess(sc scope, va *ast.VariableAccess) *types.Type {
	current := c.checkVariableAccess(sc, va.Base, false)
	if current == nil || current.Kind != types.ArrayKind {
		name, pos := va.Base.Identifier()
		c.errorf(pos.Line, "indexed variable \"%s\" is not an array", name)
		return nil
	}

	for _, idxExpr := range va.Indices {
		idxType := c.checkExpression(sc, idxExpr)
		if idxType == nil {
			// Matches the original's loop: a subexpression that failed to
			// type skips the element-type advance for this index too.
			continue
		}
		if idxType.Kind != types.Integer {
			name, pos := va.Base.Identifier()
			c.errorf(pos.Line, "array index not an integer for variable \"%s\"", name)
		} else if value, litPos, ok := constantInteger(idxExpr); ok {
			if value < current.Min || value > current.Max {
				c.errorf(litPos.Line, "array index %d is out of the range [%d..%d]", value, current.Min, current.Max)
			}
		}
		current = current.Element
	}

	return current
}
