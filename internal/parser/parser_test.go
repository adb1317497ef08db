package parser

import (
	"testing"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diagnostics"
	"github.com/rill-lang/rill/internal/lexer"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input))
	program := p.ParseProgram()
	if len(p.Errors) > 0 {
		for _, err := range p.Errors {
			t.Errorf("parser error: %s", err.Error())
		}
		t.FailNow()
	}
	return program
}

func firstExpr(t *testing.T, program *ast.Program) ast.Expression {
	t.Helper()
	if len(program.Statements) == 0 {
		t.Fatalf("program has no statements")
	}
	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("statement is %T, not ExpressionStatement", program.Statements[0])
	}
	return stmt.Expression
}

func TestMapLiteralPreservesOrder(t *testing.T) {
	program := parse(t, `{:a => 1, :b => 2, :c => 3}`)
	m, ok := firstExpr(t, program).(*ast.MapLiteral)
	if !ok {
		t.Fatalf("expression is not MapLiteral")
	}
	if len(m.Keys) != 3 || len(m.Values) != 3 {
		t.Fatalf("expected 3 entries, got %d/%d", len(m.Keys), len(m.Values))
	}
	want := []string{"a", "b", "c"}
	for i, k := range m.Keys {
		sym, ok := k.(*ast.SymbolLiteral)
		if !ok {
			t.Fatalf("key %d is %T, not SymbolLiteral", i, k)
		}
		if sym.Name != want[i] {
			t.Errorf("key %d = %q, want %q", i, sym.Name, want[i])
		}
	}
}

func TestOperatorPrecedence(t *testing.T) {
	program := parse(t, `1 + 2 * 3 == 7`)
	eq, ok := firstExpr(t, program).(*ast.BinaryExpression)
	if !ok || eq.Op != "==" {
		t.Fatalf("top operator is not ==")
	}
	sum, ok := eq.Left.(*ast.BinaryExpression)
	if !ok || sum.Op != "+" {
		t.Fatalf("left of == is not +")
	}
	prod, ok := sum.Right.(*ast.BinaryExpression)
	if !ok || prod.Op != "*" {
		t.Fatalf("right of + is not *")
	}
}

func TestMethodDefinitionWithSplatAndBlock(t *testing.T) {
	program := parse(t, "def run(a, b, *rest, &blk)\n  a\nend")
	md, ok := program.Statements[0].(*ast.MethodDefinition)
	if !ok {
		t.Fatalf("statement is %T, not MethodDefinition", program.Statements[0])
	}
	if md.Name != "run" {
		t.Errorf("name = %q", md.Name)
	}
	if len(md.Params) != 3 {
		t.Fatalf("expected 3 positional params, got %d", len(md.Params))
	}
	if md.SplatIndex != 2 {
		t.Errorf("splat index = %d, want 2", md.SplatIndex)
	}
	if md.BlockParam != "blk" {
		t.Errorf("block param = %q, want blk", md.BlockParam)
	}
}

func TestTypeDeclarationWithMixins(t *testing.T) {
	program := parse(t, `type Dog < Animal
  include Walkable
  extend Registry

  def bark
    "woof"
  end
end`)
	td, ok := program.Statements[0].(*ast.TypeDeclaration)
	if !ok {
		t.Fatalf("statement is %T, not TypeDeclaration", program.Statements[0])
	}
	if td.Name != "Dog" || td.Super == nil || td.Super.Value != "Animal" {
		t.Fatalf("wrong type header: %q < %v", td.Name, td.Super)
	}
	if len(td.Body.Statements) != 3 {
		t.Fatalf("expected 3 body statements, got %d", len(td.Body.Statements))
	}
	if _, ok := td.Body.Statements[0].(*ast.IncludeStatement); !ok {
		t.Errorf("first body statement is %T, not IncludeStatement", td.Body.Statements[0])
	}
	if _, ok := td.Body.Statements[1].(*ast.ExtendStatement); !ok {
		t.Errorf("second body statement is %T, not ExtendStatement", td.Body.Statements[1])
	}
}

func TestCallWithBlock(t *testing.T) {
	program := parse(t, `m.each { |k, v| k }`)
	call, ok := firstExpr(t, program).(*ast.CallExpression)
	if !ok {
		t.Fatalf("expression is not CallExpression")
	}
	if call.Method != "each" {
		t.Errorf("method = %q", call.Method)
	}
	if call.Block == nil {
		t.Fatalf("no block attached")
	}
	if len(call.Block.Params) != 2 || call.Block.Params[0].Name != "k" || call.Block.Params[1].Name != "v" {
		t.Fatalf("wrong block params")
	}
	if !call.Block.IsBlock {
		t.Errorf("block literal not marked as call-site block")
	}
}

func TestIndexAssignment(t *testing.T) {
	program := parse(t, `x[:b] = 2`)
	ia, ok := firstExpr(t, program).(*ast.IndexAssignExpression)
	if !ok {
		t.Fatalf("expression is %T, not IndexAssignExpression", firstExpr(t, program))
	}
	if _, ok := ia.Receiver.(*ast.Identifier); !ok {
		t.Errorf("receiver is not identifier")
	}
}

func TestElsifChain(t *testing.T) {
	program := parse(t, "if a\n1\nelsif b\n2\nelse\n3\nend")
	ifExpr, ok := firstExpr(t, program).(*ast.IfExpression)
	if !ok {
		t.Fatalf("expression is not IfExpression")
	}
	if ifExpr.Else == nil || len(ifExpr.Else.Statements) != 1 {
		t.Fatalf("missing desugared else branch")
	}
	inner, ok := ifExpr.Else.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.IfExpression)
	if !ok {
		t.Fatalf("elsif did not desugar to nested if")
	}
	if inner.Else == nil {
		t.Fatalf("nested if lost the final else")
	}
}

func TestParseErrors(t *testing.T) {
	p := New(lexer.New(`def 42`))
	p.ParseProgram()
	if len(p.Errors) == 0 {
		t.Fatalf("expected a parse error for def 42")
	}
}

func TestUnterminatedStringDiagnostic(t *testing.T) {
	p := New(lexer.New(`x = "abc`))
	p.ParseProgram()
	if len(p.Errors) == 0 {
		t.Fatalf("expected an error for an unterminated string")
	}
	for _, err := range p.Errors {
		if err.Code == diagnostics.ErrL002 {
			return
		}
	}
	var msgs []string
	for _, err := range p.Errors {
		msgs = append(msgs, err.Error())
	}
	t.Fatalf("no %s diagnostic among: %v", diagnostics.ErrL002, msgs)
}
