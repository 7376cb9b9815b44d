package typeinfer

import (
	"github.com/orizon-lang/orizon/internal/birt/ir"
	"github.com/orizon-lang/orizon/internal/birt/types"
	"github.com/orizon-lang/orizon/internal/stdlib/collections"
)

// collectPHIInputs walks the transitive tree of non-PHI inputs reachable
// from p, following PHI-to-PHI edges with a visited set so cyclic SSA
// (loop headers) terminates.
func collectPHIInputs(visited *collections.Set[*ir.PhiInst], inputs *collections.Set[ir.Value], p *ir.PhiInst) {
	if !visited.Add(p) {
		return
	}
	for i := 0; i < p.NumEntries(); i++ {
		entry := p.Entry(i)
		if nested, ok := entry.Value.(*ir.PhiInst); ok {
			collectPHIInputs(visited, inputs, nested)
		} else {
			inputs.Add(entry.Value)
		}
	}
}

// inferPhi is the dedicated PHI rule: union the types of every
// transitively-reachable non-PHI input, reporting "changed" both when
// the union differs from the prior type and when any input is still
// NoType (more iteration may tighten it).
func inferPhi(p *ir.PhiInst) bool {
	if p.NumEntries() < 1 {
		return false
	}

	visited := collections.NewSet[*ir.PhiInst](8)
	inputs := collections.NewSet[ir.Value](8)
	collectPHIInputs(visited, inputs, p)

	originalTy := p.Type()
	newTy := types.NoType
	changed := false

	for _, input := range inputs.ToSlice() {
		t := input.Type()
		if types.IsNoType(t) {
			changed = true
		}
		newTy = types.Union(newTy, t)
	}

	p.SetType(newTy)
	return newTy != originalTy || changed
}
