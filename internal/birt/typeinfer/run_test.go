package typeinfer

import (
	"testing"

	"github.com/orizon-lang/orizon/internal/birt/demo"
	"github.com/orizon-lang/orizon/internal/birt/ir"
	"github.com/orizon-lang/orizon/internal/birt/types"
)

func TestRunArithmetic(t *testing.T) {
	m := demo.Arithmetic()
	stats := &Stats{}
	if !Run(m, Options{Stats: stats}) {
		t.Fatalf("expected Run to report a change on first pass")
	}

	f := m.Functions[0]
	b := f.Blocks[0]

	mul := b.Instructions[1]
	add := b.Instructions[2]
	ret := b.Instructions[3]

	if !types.IsNumberType(mul.Type()) {
		t.Errorf("mul: got %s, want a number-shaped type", mul.Type())
	}
	if !types.IsNumberType(add.Type()) {
		t.Errorf("add: got %s, want a number-shaped type", add.Type())
	}
	if ret.Type() != types.NoType {
		t.Errorf("terminators never carry an output type, got %s", ret.Type())
	}
	if f.Type() != add.Type() {
		t.Errorf("function return type %s should equal its return operand's type %s", f.Type(), add.Type())
	}
	if stats.NumTI == 0 {
		t.Errorf("expected NumTI to count at least one inference")
	}
}

func TestRunLoopCounterConverges(t *testing.T) {
	m := demo.LoopCounter()
	if !Run(m, Options{}) {
		t.Fatalf("expected Run to report a change")
	}

	f := m.Functions[0]
	loop := f.Blocks[1]
	phi := loop.Instructions[0]
	inc := loop.Instructions[1]

	if !types.IsNumberType(phi.Type()) {
		t.Errorf("phi: got %s, want a number-shaped type", phi.Type())
	}
	if !types.IsNumberType(inc.Type()) {
		t.Errorf("inc: got %s, want a number-shaped type", inc.Type())
	}
}

func TestRunIsIdempotentAfterConvergence(t *testing.T) {
	m := demo.Arithmetic()
	Run(m, Options{})

	before := map[ir.Value]types.Type{}
	f := m.Functions[0]
	for _, b := range f.Blocks {
		for _, inst := range b.Instructions {
			before[inst] = inst.Type()
		}
	}

	Run(m, Options{})

	for _, b := range f.Blocks {
		for _, inst := range b.Instructions {
			if before[inst] != inst.Type() {
				t.Errorf("instruction %s changed type across a second run: %s -> %s",
					inst.Name(), before[inst], inst.Type())
			}
		}
	}
}

func TestRunHonorsStrictInvariant(t *testing.T) {
	m := demo.Arithmetic()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("strict mode should not panic on a well-formed module: %v", r)
		}
	}()
	Run(m, Options{Strict: true})
}
