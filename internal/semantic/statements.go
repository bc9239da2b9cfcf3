package semantic

import (
	"fmt"

	"github.com/smasonuk/oopchecker/internal/ast"
	"github.com/smasonuk/oopchecker/internal/types"
)

// checkStatement is the Statement Checker (C5): it dispatches on the
// statement's concrete type and checks each accordingly. Statement
// checking never stops at the first diagnostic; every statement in a
// body is visited regardless of earlier failures.
func (c *Checker) checkStatement(sc scope, s ast.Statement) {
	switch st := s.(type) {
	case nil:
	case *ast.AssignStatement:
		c.checkAssignStatement(sc, st)
	case *ast.IfStatement:
		c.checkExpression(sc, st.Cond)
		c.checkStatement(sc, st.Then)
		if st.Else != nil {
			c.checkStatement(sc, st.Else)
		}
	case *ast.WhileStatement:
		c.checkExpression(sc, st.Cond)
		c.checkStatement(sc, st.Body)
	case *ast.PrintStatement:
		c.checkExpression(sc, st.Value)
	case *ast.CompoundStatement:
		for _, inner := range st.Statements {
			c.checkStatement(sc, inner)
		}
	case *ast.MethodCallStatement:
		c.checkMethodDesignator(sc, st.Call)
	default:
		panic(fmt.Sprintf("semantic: unhandled statement type %T", s))
	}
}

// checkAssignStatement types both sides of "target := value" and
// reports whether the assignment is type-valid (check_assignment_statement).
// The target is checked with allowFunctionReturnValue=true since
// writing the method-name pseudovariable is how a function sets its
// own return value.
func (c *Checker) checkAssignStatement(sc scope, s *ast.AssignStatement) {
	leftType := c.checkVariableAccess(sc, s.Target, true)
	rightType := c.checkExpression(sc, s.Value)
	if leftType == nil || rightType == nil {
		return
	}
	if types.AssignmentValid(c.table, leftType, rightType) {
		return
	}

	_, pos := s.Target.Identifier()
	if leftType.Kind == types.ClassKind && rightType.Kind == types.ClassKind {
		c.errorf(pos.Line, "class \"%s\" is not a base class of \"%s\" in the assignment", rightType.String(), leftType.String())
		return
	}
	c.errorf(pos.Line, "cannot assign \"%s\" to \"%s\"", rightType.String(), leftType.String())
}
