package evaluator

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"jal/checker"
	"jal/lexer"
	"jal/parser"
)

// runAndCapture parses, type-checks, and evaluates src, returning everything
// written to stdout by `print` plus any runtime error.
func runAndCapture(t *testing.T, src string) (string, error) {
	t.Helper()

	tokens := lexer.New("test.jal", src).Tokenize()
	program, err := parser.New(tokens, "test.jal").Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	if errs := checker.New().Check(program); len(errs) > 0 {
		t.Fatalf("unexpected type errors: %v", errs)
	}

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	ev := New()
	runErr := ev.Run(program)

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return strings.TrimRight(buf.String(), "\n"), runErr
}

func TestArithmeticAndPrint(t *testing.T) {
	out, err := runAndCapture(t, `fn main():void { let x := 2 + 3 * 4; print(x) }`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "14" {
		t.Errorf("expected %q, got %q", "14", out)
	}
}

func TestIntegerDivisionPreservesLeftType(t *testing.T) {
	out, err := runAndCapture(t, `fn main():void { print(7 / 2) }`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "3" {
		t.Errorf("expected %q, got %q", "3", out)
	}
}

func TestIfElseTruthiness(t *testing.T) {
	out, err := runAndCapture(t, `fn main():void { let s := "hi"; if (s == "hi") { print(1) } else { print(0) } }`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "1" {
		t.Errorf("expected %q, got %q", "1", out)
	}
}

func TestForInOverList(t *testing.T) {
	out, err := runAndCapture(t, `fn main():void { let xs := [10, 20, 30]; let sum := 0; for v in xs { sum = sum + v } print(sum) }`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "60" {
		t.Errorf("expected %q, got %q", "60", out)
	}
}

func TestListPushAndSpread(t *testing.T) {
	out, err := runAndCapture(t, `fn main():void { let a := [1]; a << 2; a << [3,4]; print(len(a)) }`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "4" {
		t.Errorf("expected %q, got %q", "4", out)
	}
}

func TestRecursiveFunction(t *testing.T) {
	out, err := runAndCapture(t, `
fn fact(n:int):int { if (n == 0) { return 1 } else { return n * fact(n - 1) } }
fn main():void { print(fact(5)) }
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "120" {
		t.Errorf("expected %q, got %q", "120", out)
	}
}

func TestOutOfRangeIndexYieldsNull(t *testing.T) {
	out, err := runAndCapture(t, `fn main():void { let xs := [1,2]; print(xs[5]) }`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "null" {
		t.Errorf("expected %q, got %q", "null", out)
	}
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := runAndCapture(t, `fn main():void { print(1 / 0) }`)
	if err == nil {
		t.Fatal("expected a division-by-zero runtime error")
	}
}

func TestStackOverflowGuard(t *testing.T) {
	tokens := lexer.New("test.jal", `
fn loop(n:int):int { return loop(n + 1) }
fn main():void { print(loop(0)) }
`).Tokenize()
	program, err := parser.New(tokens, "test.jal").Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if errs := checker.New().Check(program); len(errs) > 0 {
		t.Fatalf("unexpected type errors: %v", errs)
	}

	ev := New()
	ev.SetMaxCallDepth(100)
	if err := ev.Run(program); err == nil {
		t.Fatal("expected a stack overflow error")
	}
}
