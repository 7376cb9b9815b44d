package ir

import "github.com/orizon-lang/orizon/internal/birt/types"

// Instruction is the common shape of every concrete instruction type
// below: it lives in exactly one BasicBlock and carries a generic
// operand list in addition to whatever specialized accessors its kind
// needs.
type Instruction interface {
	Value
	Block() *BasicBlock
	setBlock(*BasicBlock)
}

// instBase is embedded by every concrete instruction struct.
type instBase struct {
	valueBase

	kind     Kind
	inherent *types.Type
	operands []Value
	block    *BasicBlock
}

// newInstBase initializes a fresh instruction's type the way a
// frontend's IR builder would, before any type-inference pass has run:
// AnyType for anything that produces a usable result, NoType for
// terminators and other no-output kinds. This matters for the
// monotonicity guard on a module's very first inference pass —
// intersecting against AnyType is a no-op, so a never-before-inferred
// instruction narrows freely, the same way intersecting against a
// prior pass's genuinely precise type would narrow less.
func newInstBase(kind Kind, name string, operands []Value, inherent *types.Type) instBase {
	typ := types.NoType
	if HasOutput(kind) {
		typ = types.AnyType
	}
	return instBase{
		valueBase: valueBase{name: name, typ: typ},
		kind:      kind,
		operands:  operands,
		inherent:  inherent,
	}
}

func (b *instBase) Kind() Kind          { return b.kind }
func (b *instBase) Operands() []Value   { return b.operands }
func (b *instBase) Block() *BasicBlock  { return b.block }
func (b *instBase) setBlock(bb *BasicBlock) { b.block = bb }

func (b *instBase) InherentType() (types.Type, bool) {
	if b.inherent == nil {
		return types.NoType, false
	}
	return *b.inherent, true
}

func (b *instBase) HasOutput() bool { return HasOutput(b.kind) }

func inherent(t types.Type) *types.Type { return &t }

// ---- Moves, loads from slots ----------------------------------------------

// SingleOperandInst is shared shape for Mov, ImplicitMov, LoadStack,
// LoadFrame, LoadConst, AsNumber, AsNumeric, AsInt32, AddEmptyString,
// CoerceThisNS, ThrowIfEmpty: one operand, result derived from it (or
// from its inherent type).
type SingleOperandInst struct{ instBase }

func newSingleOperand(kind Kind, name string, operand Value, inherent *types.Type) *SingleOperandInst {
	i := &SingleOperandInst{instBase: newInstBase(kind, name, []Value{operand}, inherent)}
	linkUsers(i, i.operands)
	return i
}

// SingleOperand returns the instruction's only operand.
func (i *SingleOperandInst) SingleOperand() Value { return i.operands[0] }

func NewMov(name string, src Value) *SingleOperandInst {
	return newSingleOperand(KindMov, name, src, nil)
}
func NewImplicitMov(name string, src Value) *SingleOperandInst {
	return newSingleOperand(KindImplicitMov, name, src, nil)
}
func NewLoadStack(name string, addr Value) *SingleOperandInst {
	return newSingleOperand(KindLoadStack, name, addr, nil)
}
func NewLoadFrame(name string, v Value) *SingleOperandInst {
	return newSingleOperand(KindLoadFrame, name, v, nil)
}
func NewLoadConst(name string, c Value) *SingleOperandInst {
	return newSingleOperand(KindLoadConst, name, c, nil)
}
func NewAsNumber(name string, v Value) *SingleOperandInst {
	return newSingleOperand(KindAsNumber, name, v, inherent(types.Number))
}
func NewAsNumeric(name string, v Value) *SingleOperandInst {
	return newSingleOperand(KindAsNumeric, name, v, inherent(types.Number|types.BigInt))
}
func NewAsInt32(name string, v Value) *SingleOperandInst {
	return newSingleOperand(KindAsInt32, name, v, inherent(types.Int32))
}
func NewAddEmptyString(name string, v Value) *SingleOperandInst {
	return newSingleOperand(KindAddEmptyString, name, v, inherent(types.String))
}
func NewCoerceThisNS(name string, v Value) *SingleOperandInst {
	return newSingleOperand(KindCoerceThisNS, name, v, inherent(types.Object))
}

// ThrowIfEmptyInst checks a value isn't Empty (TDZ) and rethrows it.
type ThrowIfEmptyInst struct{ instBase }

func NewThrowIfEmpty(name string, checked Value) *ThrowIfEmptyInst {
	i := &ThrowIfEmptyInst{instBase: newInstBase(KindThrowIfEmpty, name, []Value{checked}, nil)}
	linkUsers(i, i.operands)
	return i
}
func (i *ThrowIfEmptyInst) CheckedValue() Value { return i.operands[0] }

// LoadParamInst reads the type currently recorded on a formal parameter.
type LoadParamInst struct {
	instBase
	param *Parameter
}

func NewLoadParam(name string, p *Parameter) *LoadParamInst {
	i := &LoadParamInst{instBase: newInstBase(KindLoadParam, name, nil, nil), param: p}
	return i
}
func (i *LoadParamInst) Param() *Parameter { return i.param }

// PrLoadInst reads a property whose type was statically checked ahead of
// time (e.g. by a prior shape-guard pass).
type PrLoadInst struct {
	instBase
	checkedType types.Type
}

func NewPrLoad(name string, obj Value, checkedType types.Type) *PrLoadInst {
	i := &PrLoadInst{instBase: newInstBase(KindPrLoad, name, []Value{obj}, nil), checkedType: checkedType}
	linkUsers(i, i.operands)
	return i
}
func (i *PrLoadInst) CheckedType() types.Type { return i.checkedType }
func (i *PrLoadInst) Object() Value           { return i.operands[0] }

// PrStoreInst writes a property whose shape is statically known; no
// output.
type PrStoreInst struct{ instBase }

func NewPrStore(name string, obj, val Value) *PrStoreInst {
	i := &PrStoreInst{instBase: newInstBase(KindPrStore, name, []Value{obj, val}, nil)}
	linkUsers(i, i.operands)
	return i
}

// ---- Property loads/stores --------------------------------------------

// LoadPropertyInst reads obj[prop]; its type depends on the call-graph
// oracle's receiver/store analysis.
type LoadPropertyInst struct{ instBase }

func NewLoadProperty(name string, obj, prop Value) *LoadPropertyInst {
	i := &LoadPropertyInst{instBase: newInstBase(KindLoadProperty, name, []Value{obj, prop}, nil)}
	linkUsers(i, i.operands)
	return i
}
func (i *LoadPropertyInst) Object() Value   { return i.operands[0] }
func (i *LoadPropertyInst) Property() Value { return i.operands[1] }

func NewTryLoadGlobalProperty(name string, prop Value) *SingleOperandInst {
	return newSingleOperand(KindTryLoadGlobalProperty, name, prop, inherent(types.AnyType))
}

// BaseStorePropertyInst is shared shape for every store-to-property kind:
// no output, but a stored value and target property the LoadProperty
// rule needs.
type BaseStorePropertyInst struct{ instBase }

func newStoreProperty(kind Kind, name string, obj, prop, val Value) *BaseStorePropertyInst {
	i := &BaseStorePropertyInst{instBase: newInstBase(kind, name, []Value{obj, prop, val}, nil)}
	linkUsers(i, i.operands)
	return i
}
// Object returns the store's receiver, or nil for a global-property
// store (TryStoreGlobalProperty has no receiver object).
func (i *BaseStorePropertyInst) Object() Value {
	if i.kind == KindTryStoreGlobalProperty {
		return nil
	}
	return i.operands[0]
}
func (i *BaseStorePropertyInst) Property() Value {
	if i.kind == KindTryStoreGlobalProperty {
		return i.operands[0]
	}
	return i.operands[1]
}
func (i *BaseStorePropertyInst) StoredValue() Value {
	if i.kind == KindTryStoreGlobalProperty {
		return i.operands[1]
	}
	return i.operands[2]
}

func NewStorePropertyLoose(name string, obj, prop, val Value) *BaseStorePropertyInst {
	return newStoreProperty(KindStorePropertyLoose, name, obj, prop, val)
}
func NewStorePropertyStrict(name string, obj, prop, val Value) *BaseStorePropertyInst {
	return newStoreProperty(KindStorePropertyStrict, name, obj, prop, val)
}
func NewStoreOwnProperty(name string, obj, prop, val Value) *BaseStorePropertyInst {
	return newStoreProperty(KindStoreOwnProperty, name, obj, prop, val)
}
func NewStoreNewOwnProperty(name string, obj, prop, val Value) *BaseStorePropertyInst {
	return newStoreProperty(KindStoreNewOwnProperty, name, obj, prop, val)
}
func NewTryStoreGlobalProperty(name string, prop, val Value) *BaseStorePropertyInst {
	i := &BaseStorePropertyInst{instBase: newInstBase(KindTryStoreGlobalProperty, name, []Value{prop, val}, nil)}
	linkUsers(i, i.operands)
	return i
}
func NewStoreGetterSetter(name string, obj, prop, getter, setter Value) *BaseStorePropertyInst {
	i := &BaseStorePropertyInst{instBase: newInstBase(KindStoreGetterSetter, name, []Value{obj, prop, getter, setter}, nil)}
	linkUsers(i, i.operands)
	return i
}

// DeletePropertyInst always yields Boolean.
type DeletePropertyInst struct{ instBase }

func newDeleteProperty(kind Kind, name string, obj, prop Value) *DeletePropertyInst {
	i := &DeletePropertyInst{instBase: newInstBase(kind, name, []Value{obj, prop}, inherent(types.Boolean))}
	linkUsers(i, i.operands)
	return i
}
func NewDeletePropertyLoose(name string, obj, prop Value) *DeletePropertyInst {
	return newDeleteProperty(KindDeletePropertyLoose, name, obj, prop)
}
func NewDeletePropertyStrict(name string, obj, prop Value) *DeletePropertyInst {
	return newDeleteProperty(KindDeletePropertyStrict, name, obj, prop)
}

// ---- Stack / frame stores (no output) ---------------------------------

// StoreInst is the shared shape of StoreStack and StoreFrame: writes a
// value into a memory location, no output.
type StoreInst struct{ instBase }

func newStore(kind Kind, name string, addr, val Value) *StoreInst {
	i := &StoreInst{instBase: newInstBase(kind, name, []Value{addr, val}, nil)}
	linkUsers(i, i.operands)
	return i
}
func (i *StoreInst) Address() Value     { return i.operands[0] }
func (i *StoreInst) StoredValue() Value { return i.operands[1] }

func NewStoreStack(name string, addr, val Value) *StoreInst {
	return newStore(KindStoreStack, name, addr, val)
}
func NewStoreFrame(name string, v, val Value) *StoreInst {
	return newStore(KindStoreFrame, name, v, val)
}

// ---- Unary / binary operators ------------------------------------------

// UnaryOperatorInst covers -x, ++x, --x, ~x, voidx, typeofx, !x.
type UnaryOperatorInst struct{ instBase }

func newUnary(kind Kind, name string, operand Value) *UnaryOperatorInst {
	i := &UnaryOperatorInst{instBase: newInstBase(kind, name, []Value{operand}, nil)}
	linkUsers(i, i.operands)
	return i
}
func (i *UnaryOperatorInst) Operand() Value { return i.operands[0] }

func NewUnaryMinus(name string, v Value) *UnaryOperatorInst  { return newUnary(KindUnaryMinus, name, v) }
func NewUnaryInc(name string, v Value) *UnaryOperatorInst    { return newUnary(KindUnaryInc, name, v) }
func NewUnaryDec(name string, v Value) *UnaryOperatorInst    { return newUnary(KindUnaryDec, name, v) }
func NewUnaryTilde(name string, v Value) *UnaryOperatorInst  { return newUnary(KindUnaryTilde, name, v) }
func NewUnaryVoid(name string, v Value) *UnaryOperatorInst   { return newUnary(KindUnaryVoid, name, v) }
func NewUnaryTypeof(name string, v Value) *UnaryOperatorInst { return newUnary(KindUnaryTypeof, name, v) }
func NewUnaryBang(name string, v Value) *UnaryOperatorInst   { return newUnary(KindUnaryBang, name, v) }

// BinaryOperatorInst covers every binary arithmetic/bitwise/comparison
// operator.
type BinaryOperatorInst struct{ instBase }

func newBinary(kind Kind, name string, lhs, rhs Value) *BinaryOperatorInst {
	i := &BinaryOperatorInst{instBase: newInstBase(kind, name, []Value{lhs, rhs}, nil)}
	linkUsers(i, i.operands)
	return i
}
func (i *BinaryOperatorInst) LeftHandSide() Value  { return i.operands[0] }
func (i *BinaryOperatorInst) RightHandSide() Value { return i.operands[1] }

func NewBinary(kind Kind, name string, lhs, rhs Value) *BinaryOperatorInst {
	return newBinary(kind, name, lhs, rhs)
}

// ---- Allocations / creators --------------------------------------------

// ReceiverKind distinguishes an object allocation receiver from an
// array allocation receiver. LoadProperty resolves stores against each
// differently: an object requires a matching own-property key write,
// an array considers every stored value regardless of index.
type ReceiverKind int

const (
	ReceiverObject ReceiverKind = iota
	ReceiverArray
)

// Receiver is anything the call-graph oracle can resolve a
// LoadPropertyInst against: an AllocObjectInst or an AllocArrayInst.
type Receiver interface {
	Instruction
	ReceiverKind() ReceiverKind
}

// AllocObjectInst allocates a fresh, empty ordinary object.
type AllocObjectInst struct{ instBase }

func NewAllocObject(name string) *AllocObjectInst {
	return &AllocObjectInst{instBase: newInstBase(KindAllocObject, name, nil, inherent(types.Object))}
}

func (i *AllocObjectInst) ReceiverKind() ReceiverKind { return ReceiverObject }

// AllocArrayInst allocates a fresh array with the given element count
// hint; inherently Array-typed.
type AllocArrayInst struct{ instBase }

func NewAllocArray(name string, sizeHint int) *AllocArrayInst {
	return &AllocArrayInst{instBase: newInstBase(KindAllocArray, name, nil, inherent(types.Array))}
}

func (i *AllocArrayInst) ReceiverKind() ReceiverKind { return ReceiverArray }

var (
	_ Receiver = (*AllocObjectInst)(nil)
	_ Receiver = (*AllocArrayInst)(nil)
)

func newInherentOnly(kind Kind, name string, t types.Type) *SingleOperandInst {
	i := &SingleOperandInst{instBase: newInstBase(kind, name, nil, inherent(t))}
	return i
}

func NewAllocObjectLiteral(name string) *SingleOperandInst {
	return newInherentOnly(KindAllocObjectLiteral, name, types.Object)
}
func NewGetTemplateObject(name string) *SingleOperandInst {
	return newInherentOnly(KindGetTemplateObject, name, types.Object)
}
func NewCreateArguments(name string) *SingleOperandInst {
	return newInherentOnly(KindCreateArguments, name, types.Arguments)
}
func NewCreateRegExp(name string) *SingleOperandInst {
	return newInherentOnly(KindCreateRegExp, name, types.RegExp)
}
// CreateFunctionInst instantiates a closure over a known Function body;
// its Target is how the call-graph oracle ties a CallLikeInst's callee
// operand back to the Function it invokes.
type CreateFunctionInst struct {
	instBase
	target *Function
}

func newCreateFunction(kind Kind, name string, target *Function) *CreateFunctionInst {
	return &CreateFunctionInst{instBase: newInstBase(kind, name, nil, inherent(types.Closure)), target: target}
}
func (c *CreateFunctionInst) Target() *Function { return c.target }

func NewCreateFunction(name string, target *Function) *CreateFunctionInst {
	return newCreateFunction(KindCreateFunction, name, target)
}
func NewCreateGenerator(name string, target *Function) *CreateFunctionInst {
	target.IsGeneratorInner = true
	return newCreateFunction(KindCreateGenerator, name, target)
}
func NewAllocObjectFromBuffer(name string) *SingleOperandInst {
	return newInherentOnly(KindAllocObjectFromBuffer, name, types.Object)
}
func NewGetBuiltinClosure(name string) *SingleOperandInst {
	return newInherentOnly(KindGetBuiltinClosure, name, types.Closure)
}
func NewGetGlobalObject(name string) *SingleOperandInst {
	return newInherentOnly(KindGetGlobalObject, name, types.Object)
}
func NewCreateEnvironment(name string) *SingleOperandInst {
	return newInherentOnly(KindCreateEnvironment, name, types.Environment)
}
func NewResolveEnvironment(name string) *SingleOperandInst {
	return newInherentOnly(KindResolveEnvironment, name, types.Environment)
}
func NewGetThisNS(name string) *SingleOperandInst {
	return newInherentOnly(KindGetThisNS, name, types.Object)
}
func NewCreateThis(name string) *SingleOperandInst {
	return newInherentOnly(KindCreateThis, name, types.Object)
}
func NewGetConstructedObject(name string) *SingleOperandInst {
	return newInherentOnly(KindGetConstructedObject, name, types.Object)
}

// ---- Calls ---------------------------------------------------------------

// CallLikeInst is Call or Construct: the call-graph oracle resolves its
// return type from known callees.
type CallLikeInst struct{ instBase }

func newCallLike(kind Kind, name string, callee Value, args []Value) *CallLikeInst {
	operands := append([]Value{callee}, args...)
	i := &CallLikeInst{instBase: newInstBase(kind, name, operands, nil)}
	linkUsers(i, i.operands)
	return i
}
func (i *CallLikeInst) Callee() Value      { return i.operands[0] }
func (i *CallLikeInst) Arguments() []Value { return i.operands[1:] }
func (i *CallLikeInst) NumArguments() int  { return len(i.operands) - 1 }
func (i *CallLikeInst) Argument(idx int) Value {
	if idx < 0 || idx >= i.NumArguments() {
		return nil
	}
	return i.operands[1+idx]
}

func NewCall(name string, callee Value, args ...Value) *CallLikeInst {
	return newCallLike(KindCall, name, callee, args)
}
func NewConstruct(name string, callee Value, args ...Value) *CallLikeInst {
	return newCallLike(KindConstruct, name, callee, args)
}
func NewCallBuiltin(name string, args ...Value) *CallLikeInst {
	i := &CallLikeInst{instBase: newInstBase(KindCallBuiltin, name, args, inherent(types.AnyType))}
	linkUsers(i, i.operands)
	return i
}
func NewCallN(name string, args ...Value) *CallLikeInst {
	i := &CallLikeInst{instBase: newInstBase(KindCallN, name, args, inherent(types.AnyType))}
	linkUsers(i, i.operands)
	return i
}

// ---- Control / miscellaneous, always AnyType or a fixed inherent type ----

func NewDirectEval(name string) *SingleOperandInst {
	return newInherentOnly(KindDirectEval, name, types.AnyType)
}
func NewCatch(name string) *SingleOperandInst {
	return newInherentOnly(KindCatch, name, types.AnyType)
}
func NewGetNewTarget(name string) *SingleOperandInst {
	return newInherentOnly(KindGetNewTarget, name, types.AnyType)
}
func NewIteratorBegin(name string) *SingleOperandInst {
	return newInherentOnly(KindIteratorBegin, name, types.AnyType)
}
func NewIteratorNext(name string) *SingleOperandInst {
	return newInherentOnly(KindIteratorNext, name, types.AnyType)
}
func NewIteratorClose(name string) *SingleOperandInst {
	return newInherentOnly(KindIteratorClose, name, types.AnyType)
}
func NewLoadFromEnvironment(name string) *SingleOperandInst {
	return newInherentOnly(KindLoadFromEnvironment, name, types.AnyType)
}
func NewResumeGenerator(name string) *SingleOperandInst {
	return newInherentOnly(KindResumeGenerator, name, types.AnyType)
}
func NewGetArgumentsPropByVal(name string) *SingleOperandInst {
	return newInherentOnly(KindGetArgumentsPropByVal, name, types.AnyType)
}
func NewGetArgumentsLength(name string) *SingleOperandInst {
	return newInherentOnly(KindGetArgumentsLength, name, types.Number)
}

// ---- Memory: AllocStack -------------------------------------------------

// AllocStackInst is a stack slot; by convention its type is the union of
// every value ever stored into it.
type AllocStackInst struct{ instBase }

func NewAllocStack(name string) *AllocStackInst {
	return &AllocStackInst{instBase: newInstBase(KindAllocStack, name, nil, nil)}
}

// ---- PHI -----------------------------------------------------------------

// PhiEntry pairs an incoming value with the predecessor block it arrives
// from.
type PhiEntry struct {
	Value          Value
	IncomingBlock  *BasicBlock
}

// PhiInst is an SSA merge node. It is dispatched outside the normal
// transfer-function switch because its inputs may cycle through other
// PHIs.
type PhiInst struct {
	instBase
	entries []PhiEntry
}

func NewPhi(name string) *PhiInst {
	return &PhiInst{instBase: newInstBase(KindPhi, name, nil, nil)}
}

// AddEntry appends an incoming (value, block) pair and wires the def-use
// edge.
func (p *PhiInst) AddEntry(v Value, block *BasicBlock) {
	p.entries = append(p.entries, PhiEntry{Value: v, IncomingBlock: block})
	linkUsers(p, []Value{v})
}

func (p *PhiInst) NumEntries() int          { return len(p.entries) }
func (p *PhiInst) Entry(i int) PhiEntry     { return p.entries[i] }

// ---- Terminators and other no-output instructions -----------------------

// TerminatorInst covers every instruction that ends a basic block.
type TerminatorInst struct {
	instBase
	targets []*BasicBlock
}

func newTerminator(kind Kind, name string, operands []Value) *TerminatorInst {
	i := &TerminatorInst{instBase: newInstBase(kind, name, operands, nil)}
	linkUsers(i, i.operands)
	return i
}

func NewBranch(name string, target *BasicBlock) *TerminatorInst {
	t := newTerminator(KindBranch, name, nil)
	t.targets = []*BasicBlock{target}
	return t
}
func NewCondBranch(name string, cond Value, trueBB, falseBB *BasicBlock) *TerminatorInst {
	t := newTerminator(KindCondBranch, name, []Value{cond})
	t.targets = []*BasicBlock{trueBB, falseBB}
	return t
}
func NewReturn(name string, v Value) *TerminatorInst {
	return newTerminator(KindReturn, name, []Value{v})
}
func NewThrow(name string, v Value) *TerminatorInst {
	return newTerminator(KindThrow, name, []Value{v})
}
func NewSwitch(name string, v Value, targets ...*BasicBlock) *TerminatorInst {
	t := newTerminator(KindSwitch, name, []Value{v})
	t.targets = targets
	return t
}
func NewUnreachable(name string) *TerminatorInst {
	return newTerminator(KindUnreachable, name, nil)
}

// ReturnValue returns the value a Return terminator yields; nil for
// every other terminator kind.
func (t *TerminatorInst) ReturnValue() Value {
	if t.kind != KindReturn || len(t.operands) == 0 {
		return nil
	}
	return t.operands[0]
}

// Targets returns the successor blocks of a branch-shaped terminator.
func (t *TerminatorInst) Targets() []*BasicBlock { return t.targets }

func NewDebugger(name string) *TerminatorInst             { return newTerminator(KindDebugger, name, nil) }
func NewDeclareGlobalVar(name string) *TerminatorInst      { return newTerminator(KindDeclareGlobalVar, name, nil) }
func NewReifyArguments(name string) *TerminatorInst        { return newTerminator(KindReifyArguments, name, nil) }
func NewTryStart(name string) *TerminatorInst              { return newTerminator(KindTryStart, name, nil) }
func NewTryEnd(name string) *TerminatorInst                { return newTerminator(KindTryEnd, name, nil) }
func NewProfilePoint(name string) *TerminatorInst          { return newTerminator(KindProfilePoint, name, nil) }
func NewGetPNames(name string) *TerminatorInst             { return newTerminator(KindGetPNames, name, nil) }
func NewGetNextPName(name string) *TerminatorInst          { return newTerminator(KindGetNextPName, name, nil) }
func NewSaveAndYield(name string) *TerminatorInst          { return newTerminator(KindSaveAndYield, name, nil) }
func NewStartGenerator(name string) *TerminatorInst        { return newTerminator(KindStartGenerator, name, nil) }
