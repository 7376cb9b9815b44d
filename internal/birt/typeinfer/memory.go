package typeinfer

import (
	"github.com/orizon-lang/orizon/internal/birt/ir"
	"github.com/orizon-lang/orizon/internal/birt/types"
)

// inferMemoryLocationType computes the type of a memory slot (a stack
// allocation or a variable) as the union of every value ever stored
// into it. Loads are ignored; any other kind of user thwarts the
// analysis entirely and forces AnyType.
func inferMemoryLocationType(addr ir.Value) types.Type {
	t := types.NoType

	for _, u := range addr.Users() {
		switch user := u.(type) {
		case *ir.StoreInst:
			t = types.Union(t, user.StoredValue().Type())
		case *ir.SingleOperandInst:
			switch user.Kind() {
			case ir.KindLoadStack, ir.KindLoadFrame:
				continue
			default:
				return types.AnyType
			}
		default:
			return types.AnyType
		}
	}

	return t
}

// inferMemoryType implements the "changed" wrapper around
// inferMemoryLocationType for a Variable.
func inferMemoryType(v *ir.Variable) bool {
	t := inferMemoryLocationType(v)
	if t != v.Type() {
		v.SetType(t)
		return true
	}
	return false
}
