package types

import "testing"

func TestTypesMatchListOfVoidIsCompatibleWithAny(t *testing.T) {
	empty := ListT(VoidT())
	ints := ListT(IntT(32))
	if !TypesMatch(empty, ints) {
		t.Error("expected list{void} to match list{int32}")
	}
	if !TypesMatch(ints, empty) {
		t.Error("expected the match to be symmetric")
	}
}

func TestTypesMatchRequiresSameBitWidth(t *testing.T) {
	if TypesMatch(IntT(32), IntT(64)) {
		t.Error("expected int32 and int64 to be distinct")
	}
}

func TestWiderTypeFloatBeatsInt(t *testing.T) {
	w := WiderType(IntT(64), FloatT(32))
	if w.Kind != Float {
		t.Errorf("expected float to win over int, got %s", w)
	}
}

func TestWiderTypeWidestBitsWithinKind(t *testing.T) {
	w := WiderType(IntT(8), IntT(64))
	if w.Kind != Int || w.Bits != 64 {
		t.Errorf("expected i64, got %s", w)
	}
}
