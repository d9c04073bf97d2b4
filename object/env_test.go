package object

import "testing"

func TestDefineAndResolve(t *testing.T) {
	env := NewEnvironment(nil)
	if err := env.Define("x", NumberValue(42), true); err != nil {
		t.Fatalf("unexpected error defining x: %v", err)
	}
	v, ok := env.Resolve("x")
	if !ok || v.Number != 42 {
		t.Fatalf("expected to resolve x to 42, got %+v ok=%v", v, ok)
	}
}

func TestResolveWalksParentChain(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.Define("outer", StringValue("hi"), false)
	child := NewEnvironment(parent)

	v, ok := child.Resolve("outer")
	if !ok || v.Str != "hi" {
		t.Fatalf("expected child to resolve 'outer' from parent, got %+v ok=%v", v, ok)
	}
}

func TestChildShadowsParent(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.Define("x", NumberValue(1), true)
	child := NewEnvironment(parent)
	child.Define("x", NumberValue(2), true)

	v, _ := child.Resolve("x")
	if v.Number != 2 {
		t.Errorf("expected shadowed value 2, got %v", v.Number)
	}
	pv, _ := parent.Resolve("x")
	if pv.Number != 1 {
		t.Errorf("expected parent binding untouched at 1, got %v", pv.Number)
	}
}

func TestAssignRejectsImmutable(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("k", NumberValue(1), false)
	if err := env.Assign("k", NumberValue(2)); err == nil {
		t.Fatal("expected an error assigning to an immutable binding")
	}
}

func TestAssignRejectsUndefined(t *testing.T) {
	env := NewEnvironment(nil)
	if err := env.Assign("missing", NumberValue(1)); err == nil {
		t.Fatal("expected an error assigning to an undefined binding")
	}
}

func TestAssignWalksToOuterScope(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.Define("x", NumberValue(1), true)
	child := NewEnvironment(parent)

	if err := child.Assign("x", NumberValue(9)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := parent.Resolve("x")
	if v.Number != 9 {
		t.Errorf("expected parent's x updated to 9, got %v", v.Number)
	}
}

func TestDefineRejectsDuplicateInSameScope(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("x", NumberValue(1), true)
	if err := env.Define("x", NumberValue(2), true); err == nil {
		t.Fatal("expected an error redefining x in the same scope")
	}
}

func TestListValuesAreSharedByReference(t *testing.T) {
	list := NewList([]*Value{NumberValue(1)})
	env := NewEnvironment(nil)
	env.Define("a", list, true)

	v, _ := env.Resolve("a")
	v.List.Elements = append(v.List.Elements, NumberValue(2))

	if len(list.List.Elements) != 2 {
		t.Errorf("expected mutation through the shared reference, got %d elements", len(list.List.Elements))
	}
}
