package ir

import "github.com/orizon-lang/orizon/internal/birt/types"

// BasicBlock is a straight-line sequence of instructions ending in a
// terminator.
type BasicBlock struct {
	Name         string
	Instructions []Instruction
	function     *Function
}

// AddInst appends inst to the block and records the back-pointer the
// Operands()/Block() contract needs.
func (b *BasicBlock) AddInst(inst Instruction) {
	inst.setBlock(b)
	b.Instructions = append(b.Instructions, inst)
}

// Terminator returns the block's last instruction if it is a
// TerminatorInst, nil otherwise.
func (b *BasicBlock) Terminator() *TerminatorInst {
	if len(b.Instructions) == 0 {
		return nil
	}
	last := b.Instructions[len(b.Instructions)-1]
	if t, ok := last.(*TerminatorInst); ok {
		return t
	}
	return nil
}

// Parameter is a formal dynamic parameter of a Function.
type Parameter struct {
	valueBase
	index int
}

func NewParameter(name string, index int) *Parameter {
	return &Parameter{valueBase: valueBase{name: name, typ: types.AnyType}, index: index}
}

func (p *Parameter) Kind() Kind                        { return KindParameter }
func (p *Parameter) InherentType() (types.Type, bool)  { return types.NoType, false }
func (p *Parameter) HasOutput() bool                   { return true }
func (p *Parameter) Operands() []Value                 { return nil }
func (p *Parameter) Index() int                        { return p.index }

// Variable is a named slot in a function's environment, read and
// written via LoadFrame/StoreFrame.
type Variable struct {
	valueBase
}

func NewVariable(name string) *Variable {
	return &Variable{valueBase: valueBase{name: name, typ: types.AnyType}}
}

func (v *Variable) Kind() Kind                       { return KindVariable }
func (v *Variable) InherentType() (types.Type, bool) { return types.NoType, false }
func (v *Variable) HasOutput() bool                  { return true }
func (v *Variable) Operands() []Value                { return nil }

// Scope owns the set of Variables belonging to one function.
type Scope struct {
	Variables []*Variable
}

// Function is an ordered set of basic blocks plus its formal parameters,
// its scope, and its return-type annotation (Function itself is a
// Value: its Type() is the inferred return type).
type Function struct {
	valueBase

	Name           string
	Parameters     []*Parameter
	FunctionScope  *Scope
	Blocks         []*BasicBlock
	IsGeneratorInner bool
}

func NewFunction(name string) *Function {
	return &Function{
		valueBase:     valueBase{name: name, typ: types.AnyType},
		Name:          name,
		FunctionScope: &Scope{},
	}
}

func (f *Function) Kind() Kind                       { return KindFunction }
func (f *Function) InherentType() (types.Type, bool) { return types.NoType, false }
func (f *Function) HasOutput() bool                  { return true }
func (f *Function) Operands() []Value                { return nil }

// AddParameter appends a new formal parameter and returns it.
func (f *Function) AddParameter(name string) *Parameter {
	p := NewParameter(name, len(f.Parameters))
	f.Parameters = append(f.Parameters, p)
	return p
}

// AddVariable appends a new scoped variable and returns it.
func (f *Function) AddVariable(name string) *Variable {
	v := NewVariable(name)
	f.FunctionScope.Variables = append(f.FunctionScope.Variables, v)
	return v
}

// AddBlock appends a new empty basic block and returns it.
func (f *Function) AddBlock(name string) *BasicBlock {
	b := &BasicBlock{Name: name, function: f}
	f.Blocks = append(f.Blocks, b)
	return b
}

// Module owns every Function of one compilation unit.
type Module struct {
	Name      string
	Functions []*Function
}

func NewModule(name string) *Module { return &Module{Name: name} }

// AddFunction appends fn to the module.
func (m *Module) AddFunction(fn *Function) { m.Functions = append(m.Functions, fn) }
