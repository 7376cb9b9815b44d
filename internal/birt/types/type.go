// Package types implements the type lattice consumed by the bytecode IR
// type-inference pass: a finite bitset of primitive tags plus the handful
// of parametric refinements (Int32, Uint32) the transfer rules need.
package types

import "strings"

// Type is a finite set of tags, represented as a bitset. The zero value is
// NoType (bottom).
type Type uint32

// Primitive tags. Int32 and Uint32 are refinements of Number: every value
// that carries one of them also satisfies isNumberType.
const (
	Empty Type = 1 << iota
	Undefined
	Null
	Boolean
	String
	Number
	BigInt
	Object
	Environment
	Closure
	RegExp
	Arguments
	Array
	Symbol
	Int32
	Uint32

	numTagBits = iota
)

// NoType is the empty set: bottom of the lattice, and the "not yet inferred"
// sentinel during the fixed-point iteration.
const NoType Type = 0

// AnyType is the universe of all tags: top of the lattice.
const AnyType Type = (1 << numTagBits) - 1

var names = map[Type]string{
	Empty:       "empty",
	Undefined:   "undefined",
	Null:        "null",
	Boolean:     "boolean",
	String:      "string",
	Number:      "number",
	BigInt:      "bigint",
	Object:      "object",
	Environment: "environment",
	Closure:     "closure",
	RegExp:      "regexp",
	Arguments:   "arguments",
	Array:       "array",
	Symbol:      "symbol",
	Int32:       "int32",
	Uint32:      "uint32",
}

// Union returns the set union of a and b.
func Union(a, b Type) Type { return a | b }

// Intersect returns the set intersection of a and b.
func Intersect(a, b Type) Type { return a & b }

// IsNoType reports whether t is the empty set.
func IsNoType(t Type) bool { return t == NoType }

// IsAnyType reports whether t is the universe of all tags.
func IsAnyType(t Type) bool { return t == AnyType }

// IsNumberType reports whether t is exactly Number, or one of its
// refinements (Int32, Uint32), and nothing else.
func IsNumberType(t Type) bool {
	return t == Number || t == Int32 || t == Uint32
}

// IsBigIntType reports whether t is exactly BigInt and nothing else.
func IsBigIntType(t Type) bool { return t == BigInt }

// IsStringType reports whether t is exactly String and nothing else.
func IsStringType(t Type) bool { return t == String }

// CanBeBigInt reports whether the BigInt tag appears anywhere in t's set.
func CanBeBigInt(t Type) bool { return t&BigInt != 0 }

// CanBeString reports whether the String tag appears anywhere in t's set.
func CanBeString(t Type) bool { return t&String != 0 }

// IsSideEffectFree reports whether t excludes every tag whose implicit
// conversion to a primitive could execute user code. Only Object carries
// that risk in this lattice (user-defined valueOf/toString/toPrimitive).
func IsSideEffectFree(t Type) bool { return t&Object == 0 }

// String renders t as a sorted, pipe-joined list of tag names, or "any" /
// "notype" for the distinguished extremes.
func (t Type) String() string {
	if IsNoType(t) {
		return "notype"
	}
	if IsAnyType(t) {
		return "any"
	}
	var parts []string
	for bit := Type(1); bit != 0 && bit <= Type(1)<<(numTagBits-1); bit <<= 1 {
		if t&bit != 0 {
			if name, ok := names[bit]; ok {
				parts = append(parts, name)
			}
		}
	}
	return strings.Join(parts, "|")
}
