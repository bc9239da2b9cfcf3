package semantic

import (
	"github.com/smasonuk/oopchecker/internal/ast"
	"github.com/smasonuk/oopchecker/internal/types"
)

// checkExpression is the top level of the Expression Typer (C3): an
// optional comparison over two additive expressions.
//
// assignment_valid is consulted without a nil guard in the original,
// which dereferences a NULL operand type straight into a crash once
// either side has already failed to type. That contradicts the
// pass's own no-cascade contract (a none result must not itself
// produce a further diagnostic), so this reimplementation guards here
// and propagates none silently instead - see DESIGN.md.
func (c *Checker) checkExpression(sc scope, e *ast.Expression) *types.Type {
	if e.Right == nil {
		t := c.checkAdditive(sc, e.Left)
		e.Type = t
		return t
	}

	left := c.checkAdditive(sc, e.Left)
	right := c.checkAdditive(sc, e.Right)
	if left == nil || right == nil {
		e.Type = nil
		return nil
	}
	if !types.Comparable(c.table, left, right) {
		c.errorf(e.OpPos.Line, "%s and %s are not comparable.", left.String(), right.String())
		e.Type = nil
		return nil
	}
	e.Type = types.BooleanType
	return types.BooleanType
}

func (c *Checker) checkAdditive(sc scope, a *ast.AdditiveExpression) *types.Type {
	right := c.checkMultiplicative(sc, a.Right)

	var result *types.Type
	if a.Left == nil {
		result = right
	} else {
		left := c.checkAdditive(sc, a.Left)
		if left == nil || right == nil {
			result = nil
		} else {
			result = types.CombinedType(left, right)
		}
	}

	a.Type = result
	return result
}

func (c *Checker) checkMultiplicative(sc scope, m *ast.MultiplicativeExpression) *types.Type {
	right := c.checkNegatable(sc, m.Right)

	var result *types.Type
	if m.Left == nil {
		result = right
	} else {
		left := c.checkMultiplicative(sc, m.Left)
		if left == nil || right == nil {
			result = nil
		} else {
			result = types.CombinedType(left, right)
		}
	}

	m.Type = result
	return result
}

func (c *Checker) checkNegatable(sc scope, n *ast.NegatableExpression) *types.Type {
	var t *types.Type
	if n.Sign != "" {
		t = c.checkNegatable(sc, n.Next)
	} else {
		t = c.checkPrimary(sc, n.Primary)
	}
	n.Type = t
	return t
}

func (c *Checker) checkPrimary(sc scope, p *ast.PrimaryExpression) *types.Type {
	var t *types.Type
	switch p.Kind {
	case ast.PrimaryVariable:
		t = c.checkVariableAccess(sc, p.Variable, false)
	case ast.PrimaryInteger:
		t = types.IntegerType
	case ast.PrimaryReal:
		t = types.RealType
	case ast.PrimaryBoolean:
		t = types.BooleanType
	case ast.PrimaryString:
		t = stringLiteralType(p.StringValue)
	case ast.PrimaryMethod:
		t = c.checkMethodDesignator(sc, p.Method)
	case ast.PrimaryObjectInstantiation:
		t = c.checkObjectInstantiation(sc, p.Instantiation)
	case ast.PrimaryParen:
		t = c.checkExpression(sc, p.Paren)
	case ast.PrimaryNot:
		t = c.checkPrimary(sc, p.Not)
	default:
		panic("semantic: unhandled PrimaryExpression kind")
	}
	p.Type = t
	return t
}

// stringLiteralType types a string literal: length 1 is char, every
// other length (including the empty string) is an array of char. An
// empty literal therefore produces the inverted range array[0..-1],
// a well-formed but permanently-empty descriptor - see SPEC_FULL.md.
func stringLiteralType(s string) *types.Type {
	n := len([]rune(s))
	if n == 1 {
		return types.CharType
	}
	return types.NewArrayType(0, n-1, types.CharType)
}

// checkMethodDesignator types "owner.method(args)" (check_method_designator):
// the owner must type as a class, the class (or an ancestor) must
// declare the method, and actual/formal arities and types are checked
// pairwise. The walk stops at the first arity mismatch, leaving any
// remaining actuals beyond that point untyped, matching the original.
func (c *Checker) checkMethodDesignator(sc scope, md *ast.MethodDesignator) *types.Type {
	ownerType := c.checkVariableAccess(sc, md.Owner, false)
	if ownerType == nil || ownerType.Kind != types.ClassKind {
		return nil
	}

	ms, ok := classMethod(c.table, ownerType.ClassName, md.Name)
	if !ok {
		c.errorf(md.NamePos.Line, "class \"%s\" has no method \"%s\"", ownerType.ClassName, md.Name)
		return nil
	}

	formals := ms.Decl.Params
	for i := 0; ; i++ {
		switch {
		case i >= len(md.Args) && i >= len(formals):
			return ms.Decl.ReturnType
		case i >= len(md.Args):
			c.errorf(md.NamePos.Line, "too few arguments to function \"%s\"", md.Name)
			return ms.Decl.ReturnType
		case i >= len(formals):
			c.errorf(md.NamePos.Line, "too many arguments to function \"%s\"", md.Name)
			return ms.Decl.ReturnType
		}

		actualType := c.checkExpression(sc, md.Args[i])
		formalType := formals[i].Type
		if actualType != nil && formalType != nil && !types.AssignmentValid(c.table, formalType, actualType) {
			c.errorf(md.NamePos.Line, "function \"%s\": parameter index %d: cannot convert \"%s\" to \"%s\"",
				md.Name, i, actualType.String(), formalType.String())
		}
	}
}

// checkObjectInstantiation types "new ClassName(args)"
// (check_object_instantiation). Constructor arguments are typed (for
// their side effects on any nested method calls / this-rewrites) but
// never checked against a constructor's formal parameters - the
// original does not correlate the two either. If the class itself is
// undeclared, the arguments are not typed at all.
func (c *Checker) checkObjectInstantiation(sc scope, oi *ast.ObjectInstantiation) *types.Type {
	if !c.table.HasKey(oi.ClassName) {
		c.errorf(oi.NamePos.Line, "class \"%s\" not declared", oi.ClassName)
		return nil
	}
	for _, arg := range oi.Args {
		c.checkExpression(sc, arg)
	}
	return types.NewClassType(oi.ClassName, oi.NamePos.Line)
}
