package parser

import (
	"testing"

	"jal/ast"
	"jal/lexer"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	tokens := lexer.New("test.jal", src).Tokenize()
	program, err := New(tokens, "test.jal").Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return program
}

func TestParseVariableDeclarationInferred(t *testing.T) {
	program := parseSource(t, `let x := 2 + 3 * 4`)
	if len(program.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Body))
	}
	decl, ok := program.Body[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected *ast.VariableDeclaration, got %T", program.Body[0])
	}
	if decl.Name != "x" || !decl.Mutable {
		t.Errorf("unexpected declaration: %+v", decl)
	}
	if decl.Annotation == nil {
		t.Fatalf("expected inference pass to fill an annotation")
	}
}

func TestComparisonPrecedenceBelowArithmetic(t *testing.T) {
	program := parseSource(t, `let ok := 1 + 2 < 3 * 4`)
	decl := program.Body[0].(*ast.VariableDeclaration)
	bin, ok := decl.Initializer.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expected top-level binary expression, got %T", decl.Initializer)
	}
	if bin.Op != "<" {
		t.Fatalf("expected '<' to bind loosest, got %q at top of tree: %s", bin.Op, bin.String())
	}
	if _, ok := bin.Left.(*ast.BinaryExpression); !ok {
		t.Errorf("expected left side to be a nested '+' expression, got %T", bin.Left)
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	program := parseSource(t, `fn add(a:int, b:int):int { return a + b }`)
	fn, ok := program.Body[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected *ast.FunctionDeclaration, got %T", program.Body[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
}

func TestParseForInAndForOf(t *testing.T) {
	program := parseSource(t, `for v in xs { print(v) }`)
	forStmt := program.Body[0].(*ast.ForStatement)
	if forStmt.IsIndex {
		t.Errorf("'in' should bind the element, not the index")
	}

	program2 := parseSource(t, `for i of xs { print(i) }`)
	forStmt2 := program2.Body[0].(*ast.ForStatement)
	if !forStmt2.IsIndex {
		t.Errorf("'of' should bind the index")
	}
}

func TestParseListPushAndAssignment(t *testing.T) {
	program := parseSource(t, "a << 2\na = 3")
	if _, ok := program.Body[0].(*ast.ListPushStatement); !ok {
		t.Errorf("expected ListPushStatement, got %T", program.Body[0])
	}
	if _, ok := program.Body[1].(*ast.AssignmentStatement); !ok {
		t.Errorf("expected AssignmentStatement, got %T", program.Body[1])
	}
}

func TestParseErrorIsFatalAndImmediate(t *testing.T) {
	tokens := lexer.New("bad.jal", `let x := `).Tokenize()
	_, err := New(tokens, "bad.jal").Parse()
	if err == nil {
		t.Fatal("expected a parse error for an incomplete declaration")
	}
}

func TestIndexAccessChaining(t *testing.T) {
	program := parseSource(t, `let v := xs[0][1]`)
	decl := program.Body[0].(*ast.VariableDeclaration)
	outer, ok := decl.Initializer.(*ast.IndexAccess)
	if !ok {
		t.Fatalf("expected outer IndexAccess, got %T", decl.Initializer)
	}
	if _, ok := outer.Object.(*ast.IndexAccess); !ok {
		t.Errorf("expected nested IndexAccess for xs[0], got %T", outer.Object)
	}
}
