package ir

import "github.com/orizon-lang/orizon/internal/birt/types"

// Value is every IR node the type-inference pass can annotate: an
// instruction result, a formal parameter, a named variable slot, or a
// function's return-type annotation.
type Value interface {
	Kind() Kind
	Type() types.Type
	SetType(types.Type)
	InherentType() (types.Type, bool)
	HasOutput() bool
	Operands() []Value
	Users() []Value
	Name() string
}

// userTracker is the internal mixin that lets constructors wire up
// def-use edges when an instruction is built.
type userTracker interface {
	addUser(Value)
}

// valueBase implements the bookkeeping shared by every concrete Value:
// its current type, its def-use edge list, and a debug name.
type valueBase struct {
	name  string
	typ   types.Type
	users []Value
}

func (v *valueBase) Type() types.Type     { return v.typ }
func (v *valueBase) SetType(t types.Type) { v.typ = t }
func (v *valueBase) Users() []Value       { return v.users }
func (v *valueBase) Name() string         { return v.name }
func (v *valueBase) addUser(u Value)      { v.users = append(v.users, u) }

// linkUsers records self as a user of every non-nil operand that tracks
// users, mirroring how an IRBuilder wires def-use edges at construction
// time.
func linkUsers(self Value, operands []Value) {
	for _, op := range operands {
		if op == nil {
			continue
		}
		if t, ok := op.(userTracker); ok {
			t.addUser(self)
		}
	}
}

// Literal is a compile-time constant: a number, string, bool, bigint,
// or other primitive baked into the bytecode's constant pool. It
// carries its type inherently and never changes, standing in for
// whatever a real frontend's literal-pool representation looks like.
type Literal struct {
	valueBase
}

// NewLiteral returns a constant of type t.
func NewLiteral(name string, t types.Type) *Literal {
	return &Literal{valueBase: valueBase{name: name, typ: t}}
}

func (l *Literal) Kind() Kind                     { return KindLiteral }
func (l *Literal) InherentType() (types.Type, bool) { return l.typ, true }
func (l *Literal) HasOutput() bool                { return true }
func (l *Literal) Operands() []Value              { return nil }

var _ Value = (*Literal)(nil)
