// Package demo builds small, hand-wired birt/ir modules illustrating
// two worked examples: straight-line numeric arithmetic and a
// loop-carried PHI. It exists for the CLI demonstrator and its tests,
// which need a concrete module to run the pass against without a real
// frontend wired up (IR construction is out of scope for the pass
// itself).
package demo

import (
	"github.com/orizon-lang/orizon/internal/birt/ir"
	"github.com/orizon-lang/orizon/internal/birt/types"
)

// Arithmetic builds `function f(a) { return (a * 2) + 1 }` in IR form:
// a numeric multiply and add chained off a single untyped parameter.
func Arithmetic() *ir.Module {
	m := ir.NewModule("demo")
	f := ir.NewFunction("arithmetic")
	m.AddFunction(f)

	p := f.AddParameter("a")
	b := f.AddBlock("entry")

	two := ir.NewLiteral("two", types.Number)
	one := ir.NewLiteral("one", types.Number)
	coerced := ir.NewAsNumber("num", p)
	mul := ir.NewBinary(ir.KindBinaryMultiply, "mul", coerced, two)
	add := ir.NewBinary(ir.KindBinaryAdd, "sum", mul, one)
	ret := ir.NewReturn("ret", add)

	b.AddInst(coerced)
	b.AddInst(mul)
	b.AddInst(add)
	b.AddInst(ret)

	return m
}

// LoopCounter builds a single-variable counting loop:
//
//	function f() {
//	  var i = 0
//	  loop: i = PHI(i@entry, inc@loop)
//	        inc = i + 1
//	        branch loop
//	}
//
// exercising the PHI fixed point: should stabilize in at most 3
// iterations of the local loop.
func LoopCounter() *ir.Module {
	m := ir.NewModule("demo")
	f := ir.NewFunction("loopCounter")
	m.AddFunction(f)

	entry := f.AddBlock("entry")
	loop := f.AddBlock("loop")

	zero := ir.NewLiteral("zero", types.Number)
	entry.AddInst(ir.NewBranch("toLoop", loop))

	phi := ir.NewPhi("i")
	one := ir.NewLiteral("one", types.Number)
	inc := ir.NewBinary(ir.KindBinaryAdd, "inc", phi, one)
	br := ir.NewBranch("backEdge", loop)

	loop.AddInst(phi)
	loop.AddInst(inc)
	loop.AddInst(br)

	phi.AddEntry(zero, entry)
	phi.AddEntry(inc, loop)

	return m
}
