package parser

import (
	"testing"

	"github.com/smasonuk/oopchecker/internal/ast"
	"github.com/smasonuk/oopchecker/internal/types"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(src)
	prog := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return prog
}

func TestParseEmptyProgram(t *testing.T) {
	prog := parseOK(t, `
		program Empty;
		class Main;
		end;
	`)
	if prog.MainClassName != "Empty" {
		t.Fatalf("expected main class name %q, got %q", "Empty", prog.MainClassName)
	}
	if len(prog.Classes) != 1 || prog.Classes[0].Name != "Main" {
		t.Fatalf("expected a single class Main, got %#v", prog.Classes)
	}
}

func TestParseClassWithExtends(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Animal;
		end;
		class Dog extends Animal;
		end;
	`)
	dog := prog.Classes[1]
	if dog.Parent != "Animal" {
		t.Fatalf("expected parent %q, got %q", "Animal", dog.Parent)
	}
}

func TestParseVarSectionSharedType(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Main;
			var x, y, z: integer;
		end;
	`)
	fields := prog.Classes[0].Fields
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	for i, name := range []string{"x", "y", "z"} {
		if fields[i].Name != name {
			t.Fatalf("field %d: expected name %q, got %q", i, name, fields[i].Name)
		}
		if fields[i].Type != types.IntegerType {
			t.Fatalf("field %d: expected integer type", i)
		}
	}
}

func TestParseArrayType(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Main;
			var xs: array[0..9] of integer;
		end;
	`)
	typ := prog.Classes[0].Fields[0].Type
	if typ.Kind != types.ArrayKind {
		t.Fatalf("expected an array type, got %v", typ.Kind)
	}
	if typ.Min != 0 || typ.Max != 9 {
		t.Fatalf("expected bounds [0..9], got [%d..%d]", typ.Min, typ.Max)
	}
	if typ.Element != types.IntegerType {
		t.Fatalf("expected integer element type")
	}
}

func TestParseArrayTypeWithSignedBounds(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Main;
			var xs: array[-2..2] of char;
		end;
	`)
	typ := prog.Classes[0].Fields[0].Type
	if typ.Min != -2 || typ.Max != 2 {
		t.Fatalf("expected bounds [-2..2], got [%d..%d]", typ.Min, typ.Max)
	}
}

func TestParseFunctionWithParamsAndReturnType(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Main;
			function Add(a: integer; b: integer): integer;
			begin
				Add := a;
			end;
		end;
	`)
	method := prog.Classes[0].Methods[0]
	if method.Name != "Add" {
		t.Fatalf("expected method name %q, got %q", "Add", method.Name)
	}
	if len(method.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(method.Params))
	}
	if method.ReturnType != types.IntegerType {
		t.Fatalf("expected integer return type")
	}
	if len(method.Body) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(method.Body))
	}
}

func TestParseProcedureHasNoReturnType(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Main;
			procedure DoNothing();
			begin
			end;
		end;
	`)
	method := prog.Classes[0].Methods[0]
	if method.ReturnType != nil {
		t.Fatalf("expected a procedure to have no return type")
	}
}

func TestParseMethodWithLocals(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Main;
			procedure Work();
			var i: integer;
			var done: boolean;
			begin
			end;
		end;
	`)
	method := prog.Classes[0].Methods[0]
	if len(method.Locals) != 2 {
		t.Fatalf("expected 2 locals, got %d", len(method.Locals))
	}
}

func TestParseIfThenElse(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Main;
			procedure Work();
			begin
				if 1 < 2 then
					print 1;
				else
					print 2;
			end;
		end;
	`)
	stmt, ok := prog.Classes[0].Methods[0].Body[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected an IfStatement, got %T", prog.Classes[0].Methods[0].Body[0])
	}
	if stmt.Else == nil {
		t.Fatalf("expected an else branch")
	}
}

func TestParseWhileDo(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Main;
			procedure Work();
			begin
				while 1 < 2 do
				begin
					print 1;
				end;
			end;
		end;
	`)
	stmt, ok := prog.Classes[0].Methods[0].Body[0].(*ast.WhileStatement)
	if !ok {
		t.Fatalf("expected a WhileStatement, got %T", prog.Classes[0].Methods[0].Body[0])
	}
	if _, ok := stmt.Body.(*ast.CompoundStatement); !ok {
		t.Fatalf("expected a compound loop body, got %T", stmt.Body)
	}
}

func TestParseAssignStatement(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Main;
			var x: integer;
			procedure Work();
			begin
				x := 1 + 2;
			end;
		end;
	`)
	stmt, ok := prog.Classes[0].Methods[0].Body[0].(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected an AssignStatement, got %T", prog.Classes[0].Methods[0].Body[0])
	}
	if stmt.Target.Kind != ast.VarIdentifier || stmt.Target.Name != "x" {
		t.Fatalf("unexpected assign target: %#v", stmt.Target)
	}
}

func TestParseIndexedAssignStatement(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Main;
			var xs: array[0..9] of integer;
			procedure Work();
			begin
				xs[1] := 1;
			end;
		end;
	`)
	stmt, ok := prog.Classes[0].Methods[0].Body[0].(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected an AssignStatement, got %T", prog.Classes[0].Methods[0].Body[0])
	}
	if stmt.Target.Kind != ast.VarIndexed {
		t.Fatalf("expected an indexed target, got kind %v", stmt.Target.Kind)
	}
	if len(stmt.Target.Indices) != 1 {
		t.Fatalf("expected 1 index, got %d", len(stmt.Target.Indices))
	}
}

func TestParseMethodCallStatementTerminatesDesignator(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Helper;
		end;
		class Main;
			var h: Helper;
			procedure Work();
			begin
				h.Greet(1, 2);
			end;
		end;
	`)
	stmt, ok := prog.Classes[1].Methods[0].Body[0].(*ast.MethodCallStatement)
	if !ok {
		t.Fatalf("expected a MethodCallStatement, got %T", prog.Classes[1].Methods[0].Body[0])
	}
	if stmt.Call.Name != "Greet" {
		t.Fatalf("expected call to %q, got %q", "Greet", stmt.Call.Name)
	}
	if len(stmt.Call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(stmt.Call.Args))
	}
	if stmt.Call.Owner.Kind != ast.VarIdentifier || stmt.Call.Owner.Name != "h" {
		t.Fatalf("unexpected call owner: %#v", stmt.Call.Owner)
	}
}

func TestParseAttributeAccessChain(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Inner;
			var v: integer;
		end;
		class Outer;
			var inner: Inner;
		end;
		class Main;
			var o: Outer;
			procedure Work();
			begin
				print o.inner.v;
			end;
		end;
	`)
	stmt, ok := prog.Classes[2].Methods[0].Body[0].(*ast.PrintStatement)
	if !ok {
		t.Fatalf("expected a PrintStatement, got %T", prog.Classes[2].Methods[0].Body[0])
	}
	prim := stmt.Value.Left.Right.Right.Primary
	if prim.Kind != ast.PrimaryVariable {
		t.Fatalf("expected a variable primary, got kind %v", prim.Kind)
	}
	outer := prim.Variable
	if outer.Kind != ast.VarAttribute || outer.Field != "v" {
		t.Fatalf("expected outer attribute field %q, got %#v", "v", outer)
	}
	inner := outer.Owner
	if inner.Kind != ast.VarAttribute || inner.Field != "inner" {
		t.Fatalf("expected inner attribute field %q, got %#v", "inner", inner)
	}
	if inner.Owner.Kind != ast.VarIdentifier || inner.Owner.Name != "o" {
		t.Fatalf("expected base identifier %q, got %#v", "o", inner.Owner)
	}
}

func TestParseObjectInstantiationAndThis(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Helper;
		end;
		class Main;
			var h: Helper;
			function Main(): Main;
			begin
				h := new Helper();
				Main := this;
			end;
		end;
	`)
	body := prog.Classes[1].Methods[0].Body
	assign1 := body[0].(*ast.AssignStatement)
	prim := assign1.Value.Left.Right.Right.Primary
	if prim.Kind != ast.PrimaryObjectInstantiation {
		t.Fatalf("expected an object instantiation primary, got kind %v", prim.Kind)
	}
	if prim.Instantiation.ClassName != "Helper" {
		t.Fatalf("expected class name %q, got %q", "Helper", prim.Instantiation.ClassName)
	}

	assign2 := body[1].(*ast.AssignStatement)
	prim2 := assign2.Value.Left.Right.Right.Primary
	if prim2.Kind != ast.PrimaryVariable || prim2.Variable.Kind != ast.VarThis {
		t.Fatalf("expected a this-variable primary, got %#v", prim2)
	}
}

func TestParseRelationalExpressionLevel(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Main;
			procedure Work();
			begin
				print 1 <= 2;
			end;
		end;
	`)
	stmt := prog.Classes[0].Methods[0].Body[0].(*ast.PrintStatement)
	if stmt.Value.Operator != "<=" {
		t.Fatalf("expected operator %q, got %q", "<=", stmt.Value.Operator)
	}
	if stmt.Value.Right == nil {
		t.Fatalf("expected a right-hand additive expression")
	}
}

func TestParseAdditiveAndMultiplicativePrecedence(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Main;
			procedure Work();
			begin
				print 1 + 2 * 3;
			end;
		end;
	`)
	stmt := prog.Classes[0].Methods[0].Body[0].(*ast.PrintStatement)
	additive := stmt.Value.Left
	if additive.Operator != "+" {
		t.Fatalf("expected top-level additive operator %q, got %q", "+", additive.Operator)
	}
	// The left side of "+" is the nested additive node carrying "1";
	// the right side is a multiplicative chain "2 * 3".
	if additive.Left == nil || additive.Left.Operator != "" {
		t.Fatalf("expected the left additive leaf to carry no operator")
	}
	if additive.Right.Operator != "*" {
		t.Fatalf("expected the right operand to be the multiplicative chain \"2 * 3\", got operator %q", additive.Right.Operator)
	}
}

func TestParseBooleanAndOrShareOperatorLevels(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Main;
			procedure Work();
			begin
				print true and false or true;
			end;
		end;
	`)
	stmt := prog.Classes[0].Methods[0].Body[0].(*ast.PrintStatement)
	additive := stmt.Value.Left
	if additive.Operator != "or" {
		t.Fatalf("expected top-level operator %q, got %q", "or", additive.Operator)
	}
	multiplicative := additive.Left.Right
	if multiplicative.Operator != "and" {
		t.Fatalf("expected nested operator %q, got %q", "and", multiplicative.Operator)
	}
}

func TestParseNegatableSignChain(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Main;
			procedure Work();
			begin
				print - - 3;
			end;
		end;
	`)
	stmt := prog.Classes[0].Methods[0].Body[0].(*ast.PrintStatement)
	neg := stmt.Value.Left.Right.Right
	if neg.Sign != "-" {
		t.Fatalf("expected outer sign %q, got %q", "-", neg.Sign)
	}
	if neg.Next == nil || neg.Next.Sign != "-" {
		t.Fatalf("expected a nested sign chain")
	}
	if neg.Next.Next.Primary.IntValue != 3 {
		t.Fatalf("expected terminal literal 3, got %d", neg.Next.Next.Primary.IntValue)
	}
}

func TestParseParenthesizedExpression(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Main;
			procedure Work();
			begin
				print (1 + 2);
			end;
		end;
	`)
	stmt := prog.Classes[0].Methods[0].Body[0].(*ast.PrintStatement)
	prim := stmt.Value.Left.Right.Right.Primary
	if prim.Kind != ast.PrimaryParen {
		t.Fatalf("expected a parenthesized primary, got kind %v", prim.Kind)
	}
	if prim.Paren.Left.Operator != "+" {
		t.Fatalf("expected the nested expression to carry \"+\", got %q", prim.Paren.Left.Operator)
	}
}

func TestParseNotExpression(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Main;
			procedure Work();
			begin
				print not true;
			end;
		end;
	`)
	stmt := prog.Classes[0].Methods[0].Body[0].(*ast.PrintStatement)
	prim := stmt.Value.Left.Right.Right.Primary
	if prim.Kind != ast.PrimaryNot {
		t.Fatalf("expected a not-primary, got kind %v", prim.Kind)
	}
	if prim.Not.Kind != ast.PrimaryBoolean || !prim.Not.BoolValue {
		t.Fatalf("expected the negated operand to be literal true")
	}
}

func TestParseStringLiteral(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Main;
			procedure Work();
			begin
				print 'hello';
			end;
		end;
	`)
	stmt := prog.Classes[0].Methods[0].Body[0].(*ast.PrintStatement)
	prim := stmt.Value.Left.Right.Right.Primary
	if prim.Kind != ast.PrimaryString || prim.StringValue != "hello" {
		t.Fatalf("expected string literal %q, got %#v", "hello", prim)
	}
}

func TestParseCallAsPrimaryExpression(t *testing.T) {
	prog := parseOK(t, `
		program P;
		class Helper;
			function Value(): integer;
			begin
				Value := 1;
			end;
		end;
		class Main;
			var h: Helper;
			var x: integer;
			procedure Work();
			begin
				x := h.Value();
			end;
		end;
	`)
	assign := prog.Classes[1].Methods[0].Body[0].(*ast.AssignStatement)
	prim := assign.Value.Left.Right.Right.Primary
	if prim.Kind != ast.PrimaryMethod {
		t.Fatalf("expected a method-call primary, got kind %v", prim.Kind)
	}
	if prim.Method.Name != "Value" {
		t.Fatalf("expected call to %q, got %q", "Value", prim.Method.Name)
	}
}

func TestParseMismatchedTokenRecordsErrorAndRecovers(t *testing.T) {
	// The missing colon is inside the single class already dispatched by
	// Parse()'s top-level loop, so even though expect() forces progress
	// past several following tokens while recovering, the class itself
	// still comes back out with diagnostics attached rather than a panic.
	p := New(`
		program P;
		class Main;
			var x integer;
		end;
	`)
	prog := p.Parse()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected a parse error for the missing colon")
	}
	if len(prog.Classes) != 1 {
		t.Fatalf("expected the parser to recover and still parse the class, got %d classes", len(prog.Classes))
	}
}
