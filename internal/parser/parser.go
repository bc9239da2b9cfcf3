// Package parser turns a token stream from internal/lexer into an
// internal/ast.Program: a recursive-descent parser over the small
// class-based Pascal-flavoured teaching grammar (SPEC_FULL.md §2.1).
package parser

import (
	"fmt"
	"strconv"

	"github.com/smasonuk/oopchecker/internal/ast"
	"github.com/smasonuk/oopchecker/internal/lexer"
	"github.com/smasonuk/oopchecker/internal/types"
)

// Parser holds one parse's state: the lexer feeding it tokens, a
// one-token lookahead buffer, and the parse errors accumulated so far.
// It never stops at the first error - on a mismatched token it records
// a diagnostic and forces forward progress by consuming the
// unexpected token, so a single run can surface more than one parse
// problem, matching the semantic pass's own "report everything, never
// abort" discipline.
type Parser struct {
	l      *lexer.Lexer
	cur    lexer.Token
	peek   lexer.Token
	errors []string
}

// New creates a Parser over src.
func New(src string) *Parser {
	p := &Parser{l: lexer.New(src)}
	p.next()
	p.next()
	return p
}

// Errors returns every lexical and parse error recorded so far, the
// lexer's errors first.
func (p *Parser) Errors() []string {
	return append(append([]string(nil), p.l.Errors()...), p.errors...)
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curTokenIs(tt lexer.TokenType) bool {
	return p.cur.Type == tt
}

func (p *Parser) errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, fmt.Sprintf("line %d: %s", p.cur.Pos.Line, msg))
}

// expect verifies the current token has type tt, records a diagnostic
// and advances regardless if it does not, and always advances past the
// consumed token.
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	tok := p.cur
	if tok.Type != tt {
		p.errorf("unexpected %q", tok.Literal)
	}
	p.next()
	return tok
}

// Parse parses a full program. Callers should check Errors() after
// calling Parse; a non-empty error list means the returned Program may
// be incomplete or structurally approximate.
func (p *Parser) Parse() *ast.Program {
	p.expect(lexer.PROGRAM)
	namePos := p.cur.Pos
	name := p.cur.Literal
	p.expect(lexer.IDENT)
	p.expect(lexer.SEMICOLON)

	prog := &ast.Program{MainClassName: name, MainClassPos: namePos}
	for p.curTokenIs(lexer.CLASS) {
		prog.Classes = append(prog.Classes, p.parseClass())
	}
	return prog
}

func (p *Parser) parseClass() *ast.ClassDecl {
	constructs := p.cur.Pos
	p.expect(lexer.CLASS)
	namePos := p.cur.Pos
	name := p.cur.Literal
	p.expect(lexer.IDENT)

	decl := &ast.ClassDecl{Name: name, NamePos: namePos, Constructs: constructs}

	if p.curTokenIs(lexer.EXTENDS) {
		p.next()
		decl.ParentPos = p.cur.Pos
		decl.Parent = p.cur.Literal
		p.expect(lexer.IDENT)
	}
	p.expect(lexer.SEMICOLON)

	for p.curTokenIs(lexer.VAR) {
		decl.Fields = append(decl.Fields, p.parseVarSection()...)
	}
	for p.curTokenIs(lexer.FUNCTION) || p.curTokenIs(lexer.PROCEDURE) {
		decl.Methods = append(decl.Methods, p.parseMethod())
	}

	p.expect(lexer.END)
	p.expect(lexer.SEMICOLON)
	return decl
}

func (p *Parser) parseVarSection() []*ast.FieldDecl {
	p.expect(lexer.VAR)
	var fields []*ast.FieldDecl

	for p.curTokenIs(lexer.IDENT) {
		type_ := p.parseDeclGroup()
		fields = append(fields, type_...)
		p.expect(lexer.SEMICOLON)
	}
	return fields
}

// parseDeclGroup parses "name (, name)* : type" - one declaration
// group sharing a single type - and returns one *ast.FieldDecl per
// name.
func (p *Parser) parseDeclGroup() []*ast.FieldDecl {
	var names []string
	var poses []lexer.Position

	names = append(names, p.cur.Literal)
	poses = append(poses, p.cur.Pos)
	p.expect(lexer.IDENT)
	for p.curTokenIs(lexer.COMMA) {
		p.next()
		names = append(names, p.cur.Literal)
		poses = append(poses, p.cur.Pos)
		p.expect(lexer.IDENT)
	}
	p.expect(lexer.COLON)
	t := p.parseType()

	decls := make([]*ast.FieldDecl, len(names))
	for i, n := range names {
		decls[i] = &ast.FieldDecl{Name: n, NamePos: poses[i], Type: t}
	}
	return decls
}

func (p *Parser) parseMethod() *ast.MethodDecl {
	isFunction := p.curTokenIs(lexer.FUNCTION)
	p.next() // consume function/procedure

	namePos := p.cur.Pos
	name := p.cur.Literal
	p.expect(lexer.IDENT)

	method := &ast.MethodDecl{Name: name, NamePos: namePos}
	method.Params = p.parseParamList()

	if isFunction {
		p.expect(lexer.COLON)
		method.ReturnType = p.parseType()
	}
	p.expect(lexer.SEMICOLON)

	for p.curTokenIs(lexer.VAR) {
		method.Locals = append(method.Locals, p.parseVarSection()...)
	}

	body := p.parseCompound()
	method.Body = body.Statements
	p.expect(lexer.SEMICOLON)
	return method
}

func (p *Parser) parseParamList() []*ast.FieldDecl {
	p.expect(lexer.LPAREN)
	var params []*ast.FieldDecl
	if !p.curTokenIs(lexer.RPAREN) {
		params = append(params, p.parseDeclGroup()...)
		for p.curTokenIs(lexer.SEMICOLON) {
			p.next()
			params = append(params, p.parseDeclGroup()...)
		}
	}
	p.expect(lexer.RPAREN)
	return params
}

func (p *Parser) parseType() *types.Type {
	switch p.cur.Type {
	case lexer.INTEGER:
		p.next()
		return types.IntegerType
	case lexer.REALTYPE:
		p.next()
		return types.RealType
	case lexer.CHARTYPE:
		p.next()
		return types.CharType
	case lexer.BOOLEAN:
		p.next()
		return types.BooleanType
	case lexer.ARRAY:
		p.next()
		p.expect(lexer.LBRACK)
		minPos := p.cur.Pos
		min := p.parseSignedInt()
		p.expect(lexer.DOTDOT)
		max := p.parseSignedInt()
		p.expect(lexer.RBRACK)
		p.expect(lexer.OF)
		elem := p.parseType()
		t := types.NewArrayType(min, max, elem)
		t.Line = minPos.Line
		return t
	case lexer.IDENT:
		pos := p.cur.Pos
		name := p.cur.Literal
		p.next()
		return types.NewClassType(name, pos.Line)
	default:
		p.errorf("expected a type, found %q", p.cur.Literal)
		p.next()
		return nil
	}
}

func (p *Parser) parseSignedInt() int {
	sign := 1
	if p.curTokenIs(lexer.MINUS) {
		sign = -1
		p.next()
	} else if p.curTokenIs(lexer.PLUS) {
		p.next()
	}
	lit := p.cur.Literal
	p.expect(lexer.INT)
	v, err := strconv.Atoi(lit)
	if err != nil {
		p.errorf("invalid integer literal %q", lit)
		return 0
	}
	return sign * v
}

func (p *Parser) parseCompound() *ast.CompoundStatement {
	pos := p.cur.Pos
	p.expect(lexer.BEGIN)
	var stmts []ast.Statement
	for !p.curTokenIs(lexer.END) && !p.curTokenIs(lexer.EOF) {
		stmts = append(stmts, p.parseStatement())
		for p.curTokenIs(lexer.SEMICOLON) {
			p.next()
		}
	}
	p.expect(lexer.END)
	return &ast.CompoundStatement{Statements: stmts, BeginPos: pos}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case lexer.IF:
		pos := p.cur.Pos
		p.next()
		cond := p.parseExpression()
		p.expect(lexer.THEN)
		thenStmt := p.parseStatement()
		var elseStmt ast.Statement
		if p.curTokenIs(lexer.ELSE) {
			p.next()
			elseStmt = p.parseStatement()
		}
		return &ast.IfStatement{Cond: cond, Then: thenStmt, Else: elseStmt, IfPos: pos}
	case lexer.WHILE:
		pos := p.cur.Pos
		p.next()
		cond := p.parseExpression()
		p.expect(lexer.DO)
		body := p.parseStatement()
		return &ast.WhileStatement{Cond: cond, Body: body, WhilePos: pos}
	case lexer.PRINT:
		pos := p.cur.Pos
		p.next()
		val := p.parseExpression()
		p.expect(lexer.SEMICOLON)
		return &ast.PrintStatement{Value: val, PrintPos: pos}
	case lexer.BEGIN:
		return p.parseCompound()
	default:
		va, call := p.parseDesignator()
		if call != nil {
			p.expect(lexer.SEMICOLON)
			return &ast.MethodCallStatement{Call: call}
		}
		assignPos := p.cur.Pos
		p.expect(lexer.ASSIGN)
		value := p.parseExpression()
		p.expect(lexer.SEMICOLON)
		return &ast.AssignStatement{Target: va, Value: value, AssignPos: assignPos}
	}
}

// parseDesignator parses a variable access chain, returning a
// MethodDesignator instead once a ".name(" suffix is found - the point
// at which the designator grammar terminates in a call rather than a
// value access (SPEC_FULL.md §2.1).
func (p *Parser) parseDesignator() (*ast.VariableAccess, *ast.MethodDesignator) {
	var va *ast.VariableAccess
	if p.curTokenIs(lexer.THIS) {
		va = &ast.VariableAccess{Kind: ast.VarThis, PosV: p.cur.Pos}
		p.next()
	} else {
		pos := p.cur.Pos
		name := p.cur.Literal
		p.expect(lexer.IDENT)
		va = &ast.VariableAccess{Kind: ast.VarIdentifier, Name: name, PosV: pos}
	}

	for {
		switch p.cur.Type {
		case lexer.LBRACK:
			p.next()
			indices := []*ast.Expression{p.parseExpression()}
			for p.curTokenIs(lexer.COMMA) {
				p.next()
				indices = append(indices, p.parseExpression())
			}
			p.expect(lexer.RBRACK)
			va = &ast.VariableAccess{Kind: ast.VarIndexed, Base: va, Indices: indices, PosV: va.Pos()}
		case lexer.DOT:
			dotPos := p.cur.Pos
			p.next()
			namePos := p.cur.Pos
			name := p.cur.Literal
			p.expect(lexer.IDENT)
			if p.curTokenIs(lexer.LPAREN) {
				args := p.parseArgs()
				return nil, &ast.MethodDesignator{Owner: va, Name: name, NamePos: namePos, Args: args}
			}
			va = &ast.VariableAccess{Kind: ast.VarAttribute, Owner: va, Field: name, PosV: dotPos}
		default:
			return va, nil
		}
	}
}

func (p *Parser) parseArgs() []*ast.Expression {
	p.expect(lexer.LPAREN)
	var args []*ast.Expression
	if !p.curTokenIs(lexer.RPAREN) {
		args = append(args, p.parseExpression())
		for p.curTokenIs(lexer.COMMA) {
			p.next()
			args = append(args, p.parseExpression())
		}
	}
	p.expect(lexer.RPAREN)
	return args
}

func (p *Parser) parseExpression() *ast.Expression {
	left := p.parseAdditive()
	if isRelOp(p.cur.Type) {
		op := p.cur.Literal
		opPos := p.cur.Pos
		p.next()
		right := p.parseAdditive()
		return &ast.Expression{Left: left, Operator: op, OpPos: opPos, Right: right}
	}
	return &ast.Expression{Left: left}
}

func isRelOp(tt lexer.TokenType) bool {
	switch tt {
	case lexer.EQ, lexer.NOT_EQ, lexer.LESS, lexer.GREATER, lexer.LESS_EQ, lexer.GREATER_EQ:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAdditive() *ast.AdditiveExpression {
	node := &ast.AdditiveExpression{Right: p.parseMultiplicative()}
	for p.curTokenIs(lexer.PLUS) || p.curTokenIs(lexer.MINUS) || p.curTokenIs(lexer.OR) {
		op := p.cur.Literal
		opPos := p.cur.Pos
		p.next()
		node = &ast.AdditiveExpression{Left: node, Operator: op, OpPos: opPos, Right: p.parseMultiplicative()}
	}
	return node
}

func (p *Parser) parseMultiplicative() *ast.MultiplicativeExpression {
	node := &ast.MultiplicativeExpression{Right: p.parseNegatable()}
	for p.curTokenIs(lexer.ASTERISK) || p.curTokenIs(lexer.SLASH) || p.curTokenIs(lexer.AND) {
		op := p.cur.Literal
		opPos := p.cur.Pos
		p.next()
		node = &ast.MultiplicativeExpression{Left: node, Operator: op, OpPos: opPos, Right: p.parseNegatable()}
	}
	return node
}

func (p *Parser) parseNegatable() *ast.NegatableExpression {
	if p.curTokenIs(lexer.PLUS) || p.curTokenIs(lexer.MINUS) {
		sign := p.cur.Literal
		pos := p.cur.Pos
		p.next()
		return &ast.NegatableExpression{Sign: sign, SignPos: pos, Next: p.parseNegatable()}
	}
	return &ast.NegatableExpression{Primary: p.parsePrimary()}
}

func (p *Parser) parsePrimary() *ast.PrimaryExpression {
	pos := p.cur.Pos
	switch p.cur.Type {
	case lexer.INT:
		v, err := strconv.Atoi(p.cur.Literal)
		if err != nil {
			p.errorf("invalid integer literal %q", p.cur.Literal)
		}
		p.next()
		return &ast.PrimaryExpression{Kind: ast.PrimaryInteger, IntValue: v, PosV: pos}
	case lexer.REAL:
		v, err := strconv.ParseFloat(p.cur.Literal, 64)
		if err != nil {
			p.errorf("invalid real literal %q", p.cur.Literal)
		}
		p.next()
		return &ast.PrimaryExpression{Kind: ast.PrimaryReal, RealValue: v, PosV: pos}
	case lexer.TRUE:
		p.next()
		return &ast.PrimaryExpression{Kind: ast.PrimaryBoolean, BoolValue: true, PosV: pos}
	case lexer.FALSE:
		p.next()
		return &ast.PrimaryExpression{Kind: ast.PrimaryBoolean, BoolValue: false, PosV: pos}
	case lexer.STRING:
		s := p.cur.Literal
		p.next()
		return &ast.PrimaryExpression{Kind: ast.PrimaryString, StringValue: s, PosV: pos}
	case lexer.NEW:
		p.next()
		namePos := p.cur.Pos
		name := p.cur.Literal
		p.expect(lexer.IDENT)
		args := p.parseArgs()
		return &ast.PrimaryExpression{
			Kind:          ast.PrimaryObjectInstantiation,
			Instantiation: &ast.ObjectInstantiation{ClassName: name, NamePos: namePos, Args: args},
			PosV:          pos,
		}
	case lexer.LPAREN:
		p.next()
		e := p.parseExpression()
		p.expect(lexer.RPAREN)
		return &ast.PrimaryExpression{Kind: ast.PrimaryParen, Paren: e, PosV: pos}
	case lexer.NOT:
		p.next()
		return &ast.PrimaryExpression{Kind: ast.PrimaryNot, Not: p.parsePrimary(), PosV: pos}
	case lexer.IDENT, lexer.THIS:
		va, call := p.parseDesignator()
		if call != nil {
			return &ast.PrimaryExpression{Kind: ast.PrimaryMethod, Method: call, PosV: pos}
		}
		return &ast.PrimaryExpression{Kind: ast.PrimaryVariable, Variable: va, PosV: pos}
	default:
		p.errorf("unexpected token %q in expression", p.cur.Literal)
		p.next()
		return &ast.PrimaryExpression{Kind: ast.PrimaryInteger, IntValue: 0, PosV: pos}
	}
}
