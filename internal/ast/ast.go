// Package ast defines the abstract syntax tree for the class-based
// Pascal-flavoured teaching language. Declared types are represented
// directly as *types.Type descriptors (the grammar's array bounds are
// literal integers, never expressions, so no separate "unresolved type
// expression" layer is needed between parsing and semantic checking -
// see SPEC_FULL.md).
package ast

import (
	"github.com/smasonuk/oopchecker/internal/lexer"
	"github.com/smasonuk/oopchecker/internal/types"
)

// Node is the base interface every AST node satisfies.
type Node interface {
	Pos() lexer.Position
}

// Program is the root node: a named main class plus every declared
// class (the main class's declaration is one of Classes).
type Program struct {
	MainClassName string
	MainClassPos  lexer.Position
	Classes       []*ClassDecl
}

func (p *Program) Pos() lexer.Position { return p.MainClassPos }

// ClassDecl declares a class, its optional parent, its fields and its
// methods.
type ClassDecl struct {
	Name       string
	NamePos    lexer.Position
	Parent     string // empty if no "extends" clause
	ParentPos  lexer.Position
	Fields     []*FieldDecl
	Methods    []*MethodDecl
	Constructs lexer.Position // position of the "class" keyword
}

func (c *ClassDecl) Pos() lexer.Position { return c.NamePos }

// FieldDecl declares a field, parameter, or local variable with its
// resolved declared type.
type FieldDecl struct {
	Name    string
	NamePos lexer.Position
	Type    *types.Type
}

func (f *FieldDecl) Pos() lexer.Position { return f.NamePos }

// MethodDecl declares a method (procedure if ReturnType is nil,
// function otherwise).
type MethodDecl struct {
	Name       string
	NamePos    lexer.Position
	Params     []*FieldDecl
	ReturnType *types.Type
	Locals     []*FieldDecl
	Body       []Statement
}

func (m *MethodDecl) Pos() lexer.Position { return m.NamePos }
