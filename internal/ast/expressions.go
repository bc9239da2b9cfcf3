package ast

import (
	"github.com/smasonuk/oopchecker/internal/lexer"
	"github.com/smasonuk/oopchecker/internal/types"
)

// Expression is the top grammar level: an optional comparison over two
// additive expressions. Its Type slot is populated by the expression
// typer (C3) and left nil ("unknown") if typing fails.
type Expression struct {
	Left     *AdditiveExpression
	Operator string // "", "=", "<>", "<", ">", "<=", ">="
	OpPos    lexer.Position
	Right    *AdditiveExpression // nil if Operator == ""
	Type     *types.Type
}

func (e *Expression) Pos() lexer.Position { return e.Left.Pos() }

// AdditiveExpression is a left-linear chain of +/- (and, sharing the
// same production, boolean "or").
type AdditiveExpression struct {
	Left     *AdditiveExpression // nil if this is the base case
	Operator string              // "+", "-" or "or"; empty when Left is nil
	OpPos    lexer.Position
	Right    *MultiplicativeExpression
	Type     *types.Type
}

func (a *AdditiveExpression) Pos() lexer.Position {
	if a.Left != nil {
		return a.Left.Pos()
	}
	return a.Right.Pos()
}

// MultiplicativeExpression is a left-linear chain of */÷ (and, sharing
// the same production, boolean "and").
type MultiplicativeExpression struct {
	Left     *MultiplicativeExpression
	Operator string // "*", "/" or "and"; empty when Left is nil
	OpPos    lexer.Position
	Right    *NegatableExpression
	Type     *types.Type
}

func (m *MultiplicativeExpression) Pos() lexer.Position {
	if m.Left != nil {
		return m.Left.Pos()
	}
	return m.Right.Pos()
}

// NegatableExpression is zero or more unary sign prefixes above a
// primary expression.
type NegatableExpression struct {
	Sign    string // "+" or "-"; empty when Next is nil
	SignPos lexer.Position
	Next    *NegatableExpression // set when Sign != ""
	Primary *PrimaryExpression   // set when Sign == ""
	Type    *types.Type
}

func (n *NegatableExpression) Pos() lexer.Position {
	if n.Sign != "" {
		return n.SignPos
	}
	return n.Primary.Pos()
}

// PrimaryKind tags which variant a PrimaryExpression holds.
type PrimaryKind int

const (
	PrimaryVariable PrimaryKind = iota
	PrimaryInteger
	PrimaryReal
	PrimaryBoolean
	PrimaryString
	PrimaryMethod
	PrimaryObjectInstantiation
	PrimaryParen
	PrimaryNot
)

// PrimaryExpression is the bottom of the expression grammar.
type PrimaryExpression struct {
	Kind PrimaryKind
	Type *types.Type
	PosV lexer.Position

	Variable      *VariableAccess    // PrimaryVariable
	IntValue      int                // PrimaryInteger
	RealValue     float64            // PrimaryReal
	BoolValue     bool               // PrimaryBoolean
	StringValue   string             // PrimaryString
	Method        *MethodDesignator  // PrimaryMethod
	Instantiation *ObjectInstantiation // PrimaryObjectInstantiation
	Paren         *Expression        // PrimaryParen
	Not           *PrimaryExpression // PrimaryNot
}

func (p *PrimaryExpression) Pos() lexer.Position { return p.PosV }

// MethodDesignator is "owner.method(args)".
type MethodDesignator struct {
	Owner   *VariableAccess
	Name    string
	NamePos lexer.Position
	Args    []*Expression
}

func (m *MethodDesignator) Pos() lexer.Position { return m.NamePos }

// ObjectInstantiation is "new ClassName(args)".
type ObjectInstantiation struct {
	ClassName string
	NamePos   lexer.Position
	Args      []*Expression
}

func (o *ObjectInstantiation) Pos() lexer.Position { return o.NamePos }
