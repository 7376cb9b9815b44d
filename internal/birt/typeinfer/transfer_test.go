package typeinfer

import (
	"testing"

	"github.com/orizon-lang/orizon/internal/birt/ir"
	"github.com/orizon-lang/orizon/internal/birt/oracle"
	"github.com/orizon-lang/orizon/internal/birt/types"
)

func typed(t types.Type) ir.Value {
	return ir.NewLiteral("v", t)
}

func TestInferAdd(t *testing.T) {
	cases := []struct {
		name     string
		lhs, rhs types.Type
		want     types.Type
	}{
		{"number+number", types.Number, types.Number, types.Number},
		{"string+number widens to string", types.String, types.Number, types.String},
		{"number+string widens to string", types.Number, types.String, types.String},
		{"bigint+bigint", types.BigInt, types.BigInt, types.BigInt},
		{"any+number is imprecise", types.AnyType, types.Number, types.Union(types.Number, types.String)},
		{"object operand forces string in the union (side effects)", types.Object, types.Number, types.Union(types.Number, types.String)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := inferAdd(typed(c.lhs), typed(c.rhs))
			if got != c.want {
				t.Errorf("inferAdd(%s, %s) = %s, want %s", c.lhs, c.rhs, got, c.want)
			}
		})
	}
}

func TestInferBinaryArithBigIntNarrowing(t *testing.T) {
	got := inferBinaryArith(typed(types.BigInt), typed(types.BigInt), types.Number)
	if got != types.BigInt {
		t.Errorf("bigint - bigint = %s, want bigint", got)
	}

	got = inferBinaryArith(typed(types.Number), typed(types.Number), types.Number)
	if got != types.Number {
		t.Errorf("number - number = %s, want number", got)
	}

	got = inferBinaryArith(typed(types.AnyType), typed(types.AnyType), types.Number)
	want := types.Union(types.Number, types.BigInt)
	if got != want {
		t.Errorf("any - any = %s, want %s", got, want)
	}

	got = inferBinaryArith(typed(types.AnyType), typed(types.Number), types.Number)
	if got != types.Number {
		t.Errorf("any - number = %s, want number (rhs rules out bigint)", got)
	}
}

func TestInferUnaryTilde(t *testing.T) {
	got := inferUnaryArith(typed(types.Number), types.Int32)
	if got != types.Int32 {
		t.Errorf("~number = %s, want int32", got)
	}
	got = inferUnaryArith(typed(types.BigInt), types.Int32)
	if got != types.BigInt {
		t.Errorf("~bigint = %s, want bigint", got)
	}
}

func TestInferLoadPropertyUnknownReceiversIsAnyType(t *testing.T) {
	recv := ir.NewAllocObject("recv")
	prop := ir.NewLiteral("prop", types.String)
	load := ir.NewLoadProperty("load", recv, prop)

	s := oracle.Build(ir.NewModule("m"))
	got := inferLoadProperty(s, load, &Stats{})
	if got != types.AnyType {
		t.Errorf("load with unknown receivers = %s, want any", got)
	}
}

func TestInferLoadPropertyUniqueStoreNarrows(t *testing.T) {
	m := ir.NewModule("m")
	f := ir.NewFunction("f")
	m.AddFunction(f)
	b := f.AddBlock("entry")

	recv := ir.NewAllocObject("recv")
	prop := ir.NewLiteral("prop", types.String)
	val := ir.NewLiteral("val", types.Number)
	store := ir.NewStoreNewOwnProperty("store", recv, prop, val)
	load := ir.NewLoadProperty("load", recv, prop)

	b.AddInst(recv)
	b.AddInst(store)
	b.AddInst(load)

	s := oracle.Build(m)
	stats := &Stats{}
	got := inferLoadProperty(s, load, stats)
	if got != types.Number {
		t.Errorf("load of uniquely-stored property = %s, want number", got)
	}
	if stats.UniquePropertyValue != 1 {
		t.Errorf("UniquePropertyValue = %d, want 1", stats.UniquePropertyValue)
	}
}

func TestInferLoadPropertyArrayReceiverUnionsEveryIndex(t *testing.T) {
	m := ir.NewModule("m")
	f := ir.NewFunction("f")
	m.AddFunction(f)
	b := f.AddBlock("entry")

	arr := ir.NewAllocArray("arr", 2)
	idx0 := ir.NewLiteral("i0", types.Number)
	idx1 := ir.NewLiteral("i1", types.Number)
	val0 := ir.NewLiteral("v0", types.Number)
	val1 := ir.NewLiteral("v1", types.String)
	store0 := ir.NewStoreOwnProperty("store0", arr, idx0, val0)
	store1 := ir.NewStoreOwnProperty("store1", arr, idx1, val1)
	load := ir.NewLoadProperty("load", arr, idx0)

	b.AddInst(arr)
	b.AddInst(store0)
	b.AddInst(store1)
	b.AddInst(load)

	s := oracle.Build(m)
	got := inferLoadProperty(s, load, &Stats{})
	want := types.Union(types.Number, types.String)
	if got != want {
		t.Errorf("load of array receiver = %s, want %s (every index unioned, not just i0)", got, want)
	}
}
