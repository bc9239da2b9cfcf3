package ast

import "github.com/smasonuk/oopchecker/internal/lexer"

// Statement is any node that performs an action rather than producing
// a value.
type Statement interface {
	Node
	statementNode()
}

// AssignStatement is "target := value;".
type AssignStatement struct {
	Target    *VariableAccess
	Value     *Expression
	AssignPos lexer.Position
}

func (s *AssignStatement) statementNode()      {}
func (s *AssignStatement) Pos() lexer.Position { return s.AssignPos }

// IfStatement is "if cond then then_ [else else_]".
type IfStatement struct {
	Cond  *Expression
	Then  Statement
	Else  Statement // nil if no else branch
	IfPos lexer.Position
}

func (s *IfStatement) statementNode()      {}
func (s *IfStatement) Pos() lexer.Position { return s.IfPos }

// WhileStatement is "while cond do body".
type WhileStatement struct {
	Cond     *Expression
	Body     Statement
	WhilePos lexer.Position
}

func (s *WhileStatement) statementNode()      {}
func (s *WhileStatement) Pos() lexer.Position { return s.WhilePos }

// PrintStatement is "print value;".
type PrintStatement struct {
	Value    *Expression
	PrintPos lexer.Position
}

func (s *PrintStatement) statementNode()      {}
func (s *PrintStatement) Pos() lexer.Position { return s.PrintPos }

// CompoundStatement is "begin ... end".
type CompoundStatement struct {
	Statements []Statement
	BeginPos   lexer.Position
}

func (s *CompoundStatement) statementNode()      {}
func (s *CompoundStatement) Pos() lexer.Position { return s.BeginPos }

// MethodCallStatement is a method call used as a statement.
type MethodCallStatement struct {
	Call *MethodDesignator
}

func (s *MethodCallStatement) statementNode()      {}
func (s *MethodCallStatement) Pos() lexer.Position { return s.Call.Pos() }
