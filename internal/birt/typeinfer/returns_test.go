package typeinfer

import (
	"testing"

	"github.com/orizon-lang/orizon/internal/birt/ir"
	"github.com/orizon-lang/orizon/internal/birt/types"
)

func TestInferFunctionReturnTypeUnionsReturns(t *testing.T) {
	f := ir.NewFunction("f")
	b1 := f.AddBlock("b1")
	b2 := f.AddBlock("b2")

	b1.AddInst(ir.NewReturn("r1", ir.NewLiteral("a", types.Number)))
	b2.AddInst(ir.NewReturn("r2", ir.NewLiteral("b", types.String)))

	f.SetType(types.NoType)
	if !inferFunctionReturnType(f) {
		t.Fatalf("expected a change")
	}
	want := types.Union(types.Number, types.String)
	if f.Type() != want {
		t.Errorf("return type = %s, want %s", f.Type(), want)
	}
}

func TestInferFunctionReturnTypeNoReturnsStaysNoType(t *testing.T) {
	f := ir.NewFunction("f")
	b := f.AddBlock("b")
	b.AddInst(ir.NewUnreachable("unreach"))

	f.SetType(types.NoType)
	if inferFunctionReturnType(f) {
		t.Fatalf("a function with no reachable return should not report a change the first time it's already NoType")
	}
	if f.Type() != types.NoType {
		t.Errorf("return type = %s, want notype", f.Type())
	}
}

func TestInferFunctionReturnTypeGeneratorIsAlwaysAny(t *testing.T) {
	f := ir.NewFunction("gen")
	f.IsGeneratorInner = true
	f.SetType(types.NoType)

	if !inferFunctionReturnType(f) {
		t.Fatalf("expected a change to AnyType")
	}
	if f.Type() != types.AnyType {
		t.Errorf("generator return type = %s, want any", f.Type())
	}
}
