package typeinfer

import (
	"testing"

	"github.com/orizon-lang/orizon/internal/birt/ir"
	"github.com/orizon-lang/orizon/internal/birt/types"
)

func TestInferPhiUnionsNonPhiInputs(t *testing.T) {
	a := ir.NewLiteral("a", types.Number)
	c := ir.NewLiteral("c", types.String)

	p := ir.NewPhi("p")
	p.AddEntry(a, nil)
	p.AddEntry(c, nil)

	if !inferPhi(p) {
		t.Fatalf("expected a fresh PHI to report changed")
	}
	want := types.Union(types.Number, types.String)
	if p.Type() != want {
		t.Errorf("phi type = %s, want %s", p.Type(), want)
	}
}

func TestInferPhiFollowsNestedPhisAndHandlesCycles(t *testing.T) {
	a := ir.NewLiteral("a", types.Number)

	inner := ir.NewPhi("inner")
	outer := ir.NewPhi("outer")

	// outer and inner form a two-cycle through each other, with a single
	// real (non-PHI) input reachable from either.
	inner.AddEntry(a, nil)
	inner.AddEntry(outer, nil)
	outer.AddEntry(inner, nil)

	inferPhi(inner)
	if inner.Type() != types.Number {
		t.Errorf("inner phi type = %s, want number", inner.Type())
	}

	inferPhi(outer)
	if outer.Type() != types.Number {
		t.Errorf("outer phi type = %s, want number", outer.Type())
	}
}

func TestInferPhiReportsChangedWhileAnyInputIsNoType(t *testing.T) {
	pending := ir.NewBinary(ir.KindBinaryAdd, "pending", ir.NewLiteral("x", types.Number), ir.NewLiteral("y", types.Number))
	pending.SetType(types.NoType)

	p := ir.NewPhi("p")
	p.AddEntry(pending, nil)

	if !inferPhi(p) {
		t.Fatalf("expected changed=true while an input is still NoType")
	}
}
