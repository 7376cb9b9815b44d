package types

import "testing"

func TestLatticeLaws(t *testing.T) {
	sample := []Type{NoType, AnyType, Number, String, BigInt, Number | String, Object | Array}

	for _, a := range sample {
		for _, b := range sample {
			if Union(a, b) != Union(b, a) {
				t.Errorf("union not commutative for %v, %v", a, b)
			}
			if Intersect(a, b) != Intersect(b, a) {
				t.Errorf("intersect not commutative for %v, %v", a, b)
			}
		}
	}

	for _, a := range sample {
		for _, b := range sample {
			for _, c := range sample {
				if Union(Union(a, b), c) != Union(a, Union(b, c)) {
					t.Errorf("union not associative for %v, %v, %v", a, b, c)
				}
				if Intersect(Intersect(a, b), c) != Intersect(a, Intersect(b, c)) {
					t.Errorf("intersect not associative for %v, %v, %v", a, b, c)
				}
			}
		}
	}

	for _, a := range sample {
		if Union(a, a) != a {
			t.Errorf("union not idempotent for %v", a)
		}
		if Intersect(a, a) != a {
			t.Errorf("intersect not idempotent for %v", a)
		}
		if Union(a, NoType) != a {
			t.Errorf("NoType is not identity for union on %v", a)
		}
		if Intersect(a, AnyType) != a {
			t.Errorf("AnyType is not identity for intersect on %v", a)
		}
	}
}

func TestPredicates(t *testing.T) {
	if !IsNumberType(Int32) || !IsNumberType(Uint32) || !IsNumberType(Number) {
		t.Fatal("Int32/Uint32/Number should all report isNumberType")
	}
	if IsNumberType(Number | String) {
		t.Fatal("mixed set should not report isNumberType")
	}
	if !IsBigIntType(BigInt) || IsBigIntType(BigInt|Number) {
		t.Fatal("isBigIntType should require an exact match")
	}
	if !CanBeBigInt(BigInt | String) {
		t.Fatal("canBeBigInt should look at set membership")
	}
	if IsSideEffectFree(Object | Number) {
		t.Fatal("a set containing Object is never side-effect free")
	}
	if !IsSideEffectFree(Number | String) {
		t.Fatal("a set without Object should be side-effect free")
	}
}

func TestDistinguishedValues(t *testing.T) {
	if !IsNoType(NoType) || IsNoType(Number) {
		t.Fatal("isNoType should hold for NoType only")
	}
	if !IsAnyType(AnyType) || IsAnyType(Number) {
		t.Fatal("isAnyType should hold for AnyType only")
	}
	if NoType&AnyType != NoType {
		t.Fatal("NoType must be a subset of AnyType")
	}
}
