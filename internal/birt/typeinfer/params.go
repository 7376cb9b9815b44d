package typeinfer

import (
	"github.com/orizon-lang/orizon/internal/birt/ir"
	"github.com/orizon-lang/orizon/internal/birt/oracle"
	"github.com/orizon-lang/orizon/internal/birt/types"
)

// propagateArgs implements actual-to-formal propagation: for each
// formal index i, union the type of the i-th actual across
// every known call-site, treating a missing actual as the literal
// Undefined (an unsupplied dynamic argument is always undefined at
// runtime, independent of the callee's strictness — strict-mode
// `arguments` aliasing doesn't change the parameter's own value).
func propagateArgs(callsites []*ir.CallLikeInst, f *ir.Function) {
	for i, p := range f.Parameters {
		first := true
		var paramTy types.Type

		for _, call := range callsites {
			argTy := types.Undefined
			if i < call.NumArguments() {
				argTy = call.Argument(i).Type()
			}
			if first {
				paramTy = argTy
				first = false
			} else {
				paramTy = types.Union(paramTy, argTy)
			}
		}

		if first {
			p.SetType(types.AnyType)
		} else {
			p.SetType(paramTy)
		}
	}
}

// inferParams seeds the formal parameters before the intra-procedural
// fixed point starts: if call-sites are unknown, every formal parameter
// becomes AnyType; otherwise propagate actuals from every known
// call-site.
func inferParams(cgp oracle.CallGraph, f *ir.Function) {
	if cgp.HasUnknownCallsites(f) {
		for _, p := range f.Parameters {
			p.SetType(types.AnyType)
		}
		return
	}
	propagateArgs(cgp.KnownCallsites(f).ToSlice(), f)
}
