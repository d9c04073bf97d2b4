package checker

import (
	"strings"
	"testing"

	"github.com/go-test/deep"

	"jal/lexer"
	"jal/parser"
)

func checkSource(t *testing.T, src string) []string {
	t.Helper()
	tokens := lexer.New("test.jal", src).Tokenize()
	program, err := parser.New(tokens, "test.jal").Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return New().Check(program)
}

func TestAcceptsWellTypedProgram(t *testing.T) {
	errs := checkSource(t, `
fn main():void {
	let x := 2 + 3 * 4
	print(x)
}
`)
	if diff := deep.Equal(errs, []string{}); diff != nil {
		t.Errorf("expected no errors, got %v (diff %v)", errs, diff)
	}
}

func TestRejectsUndefinedSymbol(t *testing.T) {
	errs := checkSource(t, `
fn main():void {
	print(missing)
}
`)
	if len(errs) == 0 {
		t.Fatal("expected an undefined-symbol error")
	}
}

func TestRejectsImmutableAssignment(t *testing.T) {
	errs := checkSource(t, `
fn main():void {
	const k := 1
	k = 2
}
`)
	if len(errs) == 0 {
		t.Fatal("expected a mutability error")
	}
	found := false
	for _, e := range errs {
		if strings.Contains(e, "immutable") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an error mentioning 'immutable', got %v", errs)
	}
}

func TestRejectsDuplicateFunctionDeclaration(t *testing.T) {
	errs := checkSource(t, `
fn f():void { }
fn f():void { }
`)
	if len(errs) == 0 {
		t.Fatal("expected a duplicate-function error")
	}
}

func TestRejectsArityMismatch(t *testing.T) {
	errs := checkSource(t, `
fn add(a:int, b:int):int { return a + b }
fn main():void { print(add(1)) }
`)
	if len(errs) == 0 {
		t.Fatal("expected an arity-mismatch error")
	}
}

func TestForLoopBindsElementType(t *testing.T) {
	errs := checkSource(t, `
fn main():void {
	let xs := [1, 2, 3]
	let sum := 0
	for v in xs {
		sum = sum + v
	}
	print(sum)
}
`)
	if diff := deep.Equal(errs, []string{}); diff != nil {
		t.Errorf("expected no errors, got %v (diff %v)", errs, diff)
	}
}

func TestNonBoolConditionRejected(t *testing.T) {
	errs := checkSource(t, `
fn main():void {
	if (1) { print(1) }
}
`)
	if len(errs) == 0 {
		t.Fatal("expected a non-bool condition error")
	}
}
