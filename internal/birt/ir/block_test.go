package ir

import (
	"testing"

	"github.com/orizon-lang/orizon/internal/birt/types"
)

func TestAddParameterAssignsSequentialIndices(t *testing.T) {
	f := NewFunction("f")
	a := f.AddParameter("a")
	b := f.AddParameter("b")

	if a.Index() != 0 || b.Index() != 1 {
		t.Errorf("indices = %d,%d, want 0,1", a.Index(), b.Index())
	}
	if a.Type() != types.AnyType || b.Type() != types.AnyType {
		t.Errorf("fresh parameters must default to AnyType")
	}
}

func TestAddVariableAppendsToFunctionScope(t *testing.T) {
	f := NewFunction("f")
	v := f.AddVariable("v")

	if len(f.FunctionScope.Variables) != 1 || f.FunctionScope.Variables[0] != v {
		t.Errorf("FunctionScope.Variables = %v, want [v]", f.FunctionScope.Variables)
	}
}

func TestAddBlockLinksBackToFunction(t *testing.T) {
	f := NewFunction("f")
	b := f.AddBlock("entry")

	if len(f.Blocks) != 1 || f.Blocks[0] != b {
		t.Errorf("Blocks = %v, want [entry]", f.Blocks)
	}
}

func TestAddInstSetsBlockBackPointer(t *testing.T) {
	f := NewFunction("f")
	b := f.AddBlock("entry")
	ret := NewReturn("ret", NewLiteral("x", types.Number))
	b.AddInst(ret)

	if ret.Block() != b {
		t.Errorf("Block() = %v, want entry", ret.Block())
	}
}

func TestTerminatorReturnsNilForEmptyBlock(t *testing.T) {
	b := &BasicBlock{Name: "empty"}
	if b.Terminator() != nil {
		t.Errorf("Terminator() of an empty block must be nil")
	}
}

func TestTerminatorReturnsNilWhenLastInstIsNotATerminator(t *testing.T) {
	f := NewFunction("f")
	b := f.AddBlock("entry")
	b.AddInst(NewMov("m", NewLiteral("x", types.Number)))

	if b.Terminator() != nil {
		t.Errorf("Terminator() must be nil when the block doesn't end in one")
	}
}

func TestTerminatorFindsTrailingBranch(t *testing.T) {
	f := NewFunction("f")
	entry := f.AddBlock("entry")
	loop := f.AddBlock("loop")
	br := NewBranch("toLoop", loop)
	entry.AddInst(br)

	if entry.Terminator() != br {
		t.Errorf("Terminator() = %v, want the trailing branch", entry.Terminator())
	}
}

func TestModuleAddFunctionAppends(t *testing.T) {
	m := NewModule("m")
	f1 := NewFunction("f1")
	f2 := NewFunction("f2")
	m.AddFunction(f1)
	m.AddFunction(f2)

	if len(m.Functions) != 2 || m.Functions[0] != f1 || m.Functions[1] != f2 {
		t.Errorf("Functions = %v, want [f1, f2]", m.Functions)
	}
}
