// Package typeinfer implements the fixed-point type-inference pass:
// the lattice-based transfer functions, PHI/memory-slot handling, the
// intra-procedural fixed point, the inter-procedural driver, and the
// monotonicity guard. It owns no IR construction logic and performs no
// I/O. A single module's functions are always visited by one
// goroutine, in order, since a callee's Function.Type() is read by
// its callers through inferCallLike without synchronization;
// RunModuleConcurrently only fans independent *modules* of a
// multi-module build out across goroutines.
package typeinfer

import (
	"github.com/orizon-lang/orizon/internal/birt/ir"
	"github.com/orizon-lang/orizon/internal/birt/oracle"
	"github.com/orizon-lang/orizon/internal/birt/types"
	"github.com/orizon-lang/orizon/internal/cli"
)

// Options configures a single pass invocation.
type Options struct {
	// Strict enables the debug-mode invariants: output discipline and
	// the monotonicity guard are asserted (and panic on violation)
	// rather than silently trusted. Mirrors the !NDEBUG-gated
	// assertions in the original engine.
	Strict bool

	// Trace, if non-nil, receives a debug-level line for every
	// instruction/parameter/variable/function whose inferred type
	// changed, matching the original engine's LLVM_DEBUG tracing.
	Trace *cli.Logger

	// Stats accumulates NumTI and UniquePropertyValue across the run.
	// A caller that doesn't care about the counters may leave this nil.
	Stats *Stats
}

func (o Options) trace(format string, args ...interface{}) {
	if o.Trace != nil {
		o.Trace.Debug(format, args...)
	}
}

func (o Options) stats() *Stats {
	if o.Stats == nil {
		return &Stats{}
	}
	return o.Stats
}

// impl holds the state of one runOnFunction invocation: the call-graph
// oracle in use and the pre-pass type snapshot the monotonicity guard
// intersects against at the end.
type impl struct {
	cgp          oracle.CallGraph
	prePassTypes map[ir.Value]types.Type
	opts         Options
}

// Run executes the pass over every function of m once, in the order
// they appear in m.Functions, against a fresh Simple oracle built for
// the whole module. It returns whether any type annotation changed —
// following the original engine, this is always true, because every
// function's types are cleared and re-inferred from scratch on every
// invocation. Callers that want inter-procedural information to
// converge across functions should call Run repeatedly, or use
// RunModuleConcurrently to fan independent modules of a multi-module
// build out via an errgroup.
func Run(m *ir.Module, opts Options) bool {
	return runModule(m, oracle.Build(m), opts)
}

// runModule visits every function of m once, in declaration order, on
// the calling goroutine. cgp must already reflect the whole of m: a
// function's transfer rules read other functions of the same module
// (inferCallLike reads a callee's Function.Type(), an unsynchronized
// field) through cgp, so no two functions of one module may ever be
// processed concurrently with each other.
func runModule(m *ir.Module, cgp oracle.CallGraph, opts Options) bool {
	changed := false
	for _, f := range m.Functions {
		changed = runOnFunction(f, cgp, opts) || changed
	}
	return changed
}

func runOnFunction(f *ir.Function, cgp oracle.CallGraph, opts Options) bool {
	it := &impl{cgp: cgp, prePassTypes: map[ir.Value]types.Type{}, opts: opts}

	it.clearTypesInFunction(f)
	inferParams(cgp, f)

	for {
		changed := false

		for _, b := range f.Blocks {
			for _, inst := range b.Instructions {
				if it.inferInstruction(inst) {
					changed = true
				}
			}
		}

		if inferFunctionReturnType(f) {
			changed = true
		}

		for _, v := range f.FunctionScope.Variables {
			if inferMemoryType(v) {
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	it.applyMonotonicityGuard(f)

	if opts.Strict {
		assertOutputDiscipline(f)
	}

	return true
}

// inferInstruction dispatches a single instruction, honoring the
// "operands not all typed yet" deferral and the PHI special case.
func (it *impl) inferInstruction(inst ir.Instruction) bool {
	if phi, ok := inst.(*ir.PhiInst); ok {
		return inferPhi(phi)
	}

	for _, operand := range inst.Operands() {
		if operand == nil {
			continue
		}
		if types.IsNoType(operand.Type()) {
			return true
		}
	}

	original := inst.Type()
	inferred := inferInstructionType(it.cgp, it.opts.stats(), inst)

	changed := inferred != original
	if changed {
		it.opts.stats().incNumTI()
		inst.SetType(inferred)
		it.opts.trace("inferred %s -> %s", inst.Name(), inferred)
	}
	return changed
}

// clearTypesInFunction snapshots every value's pre-pass type, then
// resets it to its inherent type (if any) or NoType.
func (it *impl) clearTypesInFunction(f *ir.Function) {
	for _, b := range f.Blocks {
		for _, inst := range b.Instructions {
			it.prePassTypes[inst] = inst.Type()
			if t, ok := inst.InherentType(); ok {
				inst.SetType(t)
			} else {
				inst.SetType(types.NoType)
			}
		}
	}
	for _, p := range f.Parameters {
		it.prePassTypes[p] = p.Type()
		p.SetType(types.NoType)
	}
	for _, v := range f.FunctionScope.Variables {
		it.prePassTypes[v] = v.Type()
		v.SetType(types.NoType)
	}
	it.prePassTypes[f] = f.Type()
	f.SetType(types.NoType)
}

// applyMonotonicityGuard intersects every annotated value with its
// pre-pass type so the pass never widens past what was known before
// it ran.
func (it *impl) applyMonotonicityGuard(f *ir.Function) {
	for _, b := range f.Blocks {
		for _, inst := range b.Instructions {
			it.checkAndSetPrePassType(inst)
		}
	}
	it.checkAndSetPrePassType(f)
	for _, p := range f.Parameters {
		it.checkAndSetPrePassType(p)
	}
	for _, v := range f.FunctionScope.Variables {
		it.checkAndSetPrePassType(v)
	}
}

func (it *impl) checkAndSetPrePassType(val ir.Value) bool {
	pre, ok := it.prePassTypes[val]
	if !ok {
		return false
	}
	if pre != val.Type() {
		intersection := types.Intersect(pre, val.Type())
		it.opts.trace("intersecting %s from %s to %s", val.Name(), val.Type(), intersection)
		val.SetType(intersection)
		return true
	}
	return false
}

// assertOutputDiscipline checks the output-discipline invariant:
// isNoType(I.type()) ⇔ ¬I.hasOutput() for every instruction in f. Panics
// on violation, matching the original engine's debug-mode assert.
func assertOutputDiscipline(f *ir.Function) {
	for _, b := range f.Blocks {
		for _, inst := range b.Instructions {
			noType := types.IsNoType(inst.Type())
			if noType == inst.HasOutput() {
				fatal("instructions must be NoType iff they have no output: " + inst.Name())
			}
		}
	}
}
