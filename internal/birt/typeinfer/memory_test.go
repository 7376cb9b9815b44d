package typeinfer

import (
	"testing"

	"github.com/orizon-lang/orizon/internal/birt/ir"
	"github.com/orizon-lang/orizon/internal/birt/types"
)

func TestInferMemoryTypeUnionsStores(t *testing.T) {
	v := ir.NewVariable("v")
	ir.NewStoreFrame("s1", v, ir.NewLiteral("a", types.Number))
	ir.NewStoreFrame("s2", v, ir.NewLiteral("b", types.String))

	if !inferMemoryType(v) {
		t.Fatalf("expected a change from AnyType")
	}
	want := types.Union(types.Number, types.String)
	if v.Type() != want {
		t.Errorf("var type after two stores = %s, want %s", v.Type(), want)
	}
}

func TestInferMemoryTypeEscapesToAnyOnUnknownUser(t *testing.T) {
	v := ir.NewVariable("v")
	ir.NewStoreFrame("s1", v, ir.NewLiteral("a", types.Number))
	// A load is harmless; some other kind of user is not modeled and
	// forces AnyType.
	ir.NewLoadProperty("weird", v, ir.NewLiteral("k", types.String))

	if inferMemoryLocationType(v) != types.AnyType {
		t.Errorf("expected AnyType once an unmodeled user appears")
	}
}
