package ir

import (
	"testing"

	"github.com/orizon-lang/orizon/internal/birt/types"
)

func TestFreshOutputInstructionDefaultsToAnyType(t *testing.T) {
	add := NewBinary(KindBinaryAdd, "sum", NewLiteral("a", types.Number), NewLiteral("b", types.Number))
	if add.Type() != types.AnyType {
		t.Errorf("Type() = %s, want any for a never-inferred output instruction", add.Type())
	}
}

func TestFreshNoOutputInstructionDefaultsToNoType(t *testing.T) {
	st := NewStoreFrame("s", NewVariable("v"), NewLiteral("x", types.Number))
	if st.Type() != types.NoType {
		t.Errorf("Type() = %s, want notype for a no-output instruction", st.Type())
	}
	if st.HasOutput() {
		t.Errorf("StoreFrame must not report an output")
	}
}

func TestInherentTypeOverridesFreshAnyTypeDefault(t *testing.T) {
	obj := NewAllocObject("o")
	got, ok := obj.InherentType()
	if !ok || got != types.Object {
		t.Fatalf("InherentType() = (%s, %v), want (object, true)", got, ok)
	}
}

func TestCallLikeArgumentAccessors(t *testing.T) {
	callee := NewLiteral("callee", types.Closure)
	a0 := NewLiteral("a0", types.Number)
	a1 := NewLiteral("a1", types.String)
	call := NewCall("c", callee, a0, a1)

	if call.Callee() != Value(callee) {
		t.Errorf("Callee() = %v, want callee", call.Callee())
	}
	if call.NumArguments() != 2 {
		t.Fatalf("NumArguments() = %d, want 2", call.NumArguments())
	}
	if call.Argument(0) != Value(a0) || call.Argument(1) != Value(a1) {
		t.Errorf("Argument(0),Argument(1) = %v,%v, want a0,a1", call.Argument(0), call.Argument(1))
	}
	if call.Argument(2) != nil {
		t.Errorf("Argument(2) out of range must be nil")
	}
	if call.Argument(-1) != nil {
		t.Errorf("Argument(-1) must be nil")
	}
}

func TestCreateFunctionTargetRoundTrips(t *testing.T) {
	target := NewFunction("callee")
	cf := NewCreateFunction("cf", target)
	if cf.Target() != target {
		t.Errorf("Target() = %v, want callee", cf.Target())
	}
	if cf.Type() != types.Closure {
		t.Errorf("CreateFunction must be inherently Closure-typed, got %s", cf.Type())
	}
}

func TestCreateGeneratorMarksTargetAsGenerator(t *testing.T) {
	target := NewFunction("genBody")
	NewCreateGenerator("cg", target)
	if !target.IsGeneratorInner {
		t.Errorf("CreateGenerator must mark its target as a generator body")
	}
}

func TestStorePropertyAccessorsDistinguishGlobalStore(t *testing.T) {
	obj := NewAllocObject("o")
	prop := NewLiteral("k", types.String)
	val := NewLiteral("v", types.Number)

	ordinary := NewStoreOwnProperty("s1", obj, prop, val)
	if ordinary.Object() != Value(obj) || ordinary.Property() != Value(prop) || ordinary.StoredValue() != Value(val) {
		t.Errorf("ordinary store accessors mismatch")
	}

	global := NewTryStoreGlobalProperty("s2", prop, val)
	if global.Object() != nil {
		t.Errorf("global store has no receiver object")
	}
	if global.Property() != Value(prop) || global.StoredValue() != Value(val) {
		t.Errorf("global store accessors mismatch")
	}
}

func TestTerminatorReturnValueOnlyForReturn(t *testing.T) {
	v := NewLiteral("x", types.Number)
	ret := NewReturn("r", v)
	if ret.ReturnValue() != Value(v) {
		t.Errorf("ReturnValue() = %v, want x", ret.ReturnValue())
	}

	unreachable := NewUnreachable("u")
	if unreachable.ReturnValue() != nil {
		t.Errorf("Unreachable has no return value")
	}
}

func TestCondBranchTargetsInOrder(t *testing.T) {
	f := NewFunction("f")
	trueBB := f.AddBlock("t")
	falseBB := f.AddBlock("f")
	cb := NewCondBranch("cb", NewLiteral("cond", types.Boolean), trueBB, falseBB)

	targets := cb.Targets()
	if len(targets) != 2 || targets[0] != trueBB || targets[1] != falseBB {
		t.Errorf("Targets() = %v, want [true, false]", targets)
	}
}

func TestPhiEntriesPreserveOrderAndWireUsers(t *testing.T) {
	a := NewLiteral("a", types.Number)
	b := NewLiteral("b", types.String)

	p := NewPhi("p")
	p.AddEntry(a, nil)
	p.AddEntry(b, nil)

	if p.NumEntries() != 2 {
		t.Fatalf("NumEntries() = %d, want 2", p.NumEntries())
	}
	if p.Entry(0).Value != Value(a) || p.Entry(1).Value != Value(b) {
		t.Errorf("entries out of order")
	}
	if len(a.Users()) != 1 || a.Users()[0] != Value(p) {
		t.Errorf("phi must register itself as a's user")
	}
}
