package typeinfer

import (
	"github.com/orizon-lang/orizon/internal/birt/ir"
	"github.com/orizon-lang/orizon/internal/birt/types"
)

// collectReturnType preserves the original engine's "first" bookkeeping:
// a function with zero reachable Return instructions keeps NoType, not
// NoType unioned with anything, and the first non-NoType return value
// seen seeds the union instead of starting from NoType (which would be
// equivalent here, but keeps the two engines' edge cases identical when
// a function's only reachable return yields NoType itself — e.g. an
// unreachable block no terminator inference should touch).
func collectReturnType(f *ir.Function) (types.Type, bool) {
	first := true
	var result types.Type

	for _, b := range f.Blocks {
		term := b.Terminator()
		if term == nil || term.Kind() != ir.KindReturn {
			continue
		}
		v := term.ReturnValue()
		if v == nil {
			continue
		}
		t := v.Type()
		if first && !types.IsNoType(t) {
			result = t
			first = false
		} else if !first {
			result = types.Union(result, t)
		}
	}

	return result, !first
}

// inferFunctionReturnType: a generator-inner function's return type is
// unconditionally AnyType (it may be resumed via `.return()` with any
// value); otherwise it's the union of every reachable Return
// instruction's operand type.
func inferFunctionReturnType(f *ir.Function) bool {
	original := f.Type()

	if f.IsGeneratorInner {
		if original != types.AnyType {
			f.SetType(types.AnyType)
			return true
		}
		return false
	}

	returnTy, found := collectReturnType(f)
	if !found {
		returnTy = types.NoType
	}
	if returnTy != original {
		f.SetType(returnTy)
		return true
	}
	return false
}
