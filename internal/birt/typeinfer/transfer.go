package typeinfer

import (
	"github.com/orizon-lang/orizon/internal/birt/ir"
	"github.com/orizon-lang/orizon/internal/birt/oracle"
	"github.com/orizon-lang/orizon/internal/birt/types"
	"github.com/orizon-lang/orizon/internal/errors"
)

// inferUnaryArith implements the shared shape of -x, ++x, --x and ~x:
// Number stays Number (or the refined result shape R for ~), BigInt
// stays BigInt, anything else may still produce BigInt if the operand
// can be one.
func inferUnaryArith(operand ir.Value, resultShape types.Type) types.Type {
	t := operand.Type()
	if types.IsNumberType(t) {
		return resultShape
	}
	if types.IsBigIntType(t) {
		return types.BigInt
	}
	mayBeBigInt := types.NoType
	if types.CanBeBigInt(t) {
		mayBeBigInt = types.BigInt
	}
	return types.Union(resultShape, mayBeBigInt)
}

func inferUnary(inst *ir.UnaryOperatorInst) types.Type {
	switch inst.Kind() {
	case ir.KindUnaryVoid:
		return types.Undefined
	case ir.KindUnaryTypeof:
		return types.String
	case ir.KindUnaryBang:
		return types.Boolean
	case ir.KindUnaryInc, ir.KindUnaryDec, ir.KindUnaryMinus:
		return inferUnaryArith(inst.Operand(), types.Number)
	case ir.KindUnaryTilde:
		return inferUnaryArith(inst.Operand(), types.Int32)
	default:
		fatal("invalid unary operator")
		return types.AnyType
	}
}

// inferBinaryArith implements the shared shape of -, *, /, **, <<, >>
// (and % / bitwise variants via a different result shape).
func inferBinaryArith(lhs, rhs ir.Value, resultShape types.Type) types.Type {
	l, r := lhs.Type(), rhs.Type()
	if types.IsNumberType(l) && types.IsNumberType(r) {
		return resultShape
	}
	if types.IsBigIntType(l) && types.IsBigIntType(r) {
		return types.BigInt
	}
	mayBeBigInt := types.NoType
	if types.CanBeBigInt(l) && types.CanBeBigInt(r) {
		mayBeBigInt = types.BigInt
	}
	return types.Union(resultShape, mayBeBigInt)
}

func inferBinaryBitwise(lhs, rhs ir.Value) types.Type {
	l, r := lhs.Type(), rhs.Type()
	mayBeBigInt := types.NoType
	if types.CanBeBigInt(l) && types.CanBeBigInt(r) {
		mayBeBigInt = types.BigInt
	}
	return types.Union(types.Int32, mayBeBigInt)
}

func inferAdd(lhs, rhs ir.Value) types.Type {
	l, r := lhs.Type(), rhs.Type()

	if types.IsStringType(l) || types.IsStringType(r) {
		return types.String
	}
	if types.IsNumberType(l) && types.IsNumberType(r) {
		return types.Number
	}
	if types.IsBigIntType(l) && types.IsBigIntType(r) {
		return types.BigInt
	}

	mayBeBigInt := types.NoType
	if types.CanBeBigInt(l) && types.CanBeBigInt(r) {
		mayBeBigInt = types.BigInt
	}
	numeric := types.Union(types.Number, mayBeBigInt)

	if types.IsSideEffectFree(l) && types.IsSideEffectFree(r) &&
		!types.CanBeString(l) && !types.CanBeString(r) {
		return numeric
	}
	return types.Union(numeric, types.String)
}

func inferBinary(inst *ir.BinaryOperatorInst) types.Type {
	switch inst.Kind() {
	case ir.KindBinaryEqual, ir.KindBinaryNotEqual,
		ir.KindBinaryStrictlyEqual, ir.KindBinaryStrictlyNotEqual,
		ir.KindBinaryLessThan, ir.KindBinaryLessThanOrEqual,
		ir.KindBinaryGreaterThan, ir.KindBinaryGreaterThanOrEqual,
		ir.KindBinaryIn, ir.KindBinaryInstanceOf:
		// NaN comparisons observably return false at runtime, not
		// Undefined as ECMA-262 literally states; conform to runtime
		// behavior rather than the spec text.
		return types.Boolean

	case ir.KindBinaryDivide, ir.KindBinaryMultiply, ir.KindBinaryExponentiation,
		ir.KindBinarySubtract, ir.KindBinaryLeftShift, ir.KindBinaryRightShift:
		return inferBinaryArith(inst.LeftHandSide(), inst.RightHandSide(), types.Number)

	case ir.KindBinaryModulo:
		return inferBinaryArith(inst.LeftHandSide(), inst.RightHandSide(), types.Int32)

	case ir.KindBinaryUnsignedRightShift:
		return types.Uint32

	case ir.KindBinaryAdd:
		return inferAdd(inst.LeftHandSide(), inst.RightHandSide())

	case ir.KindBinaryAnd, ir.KindBinaryOr, ir.KindBinaryXor:
		return inferBinaryBitwise(inst.LeftHandSide(), inst.RightHandSide())

	default:
		return types.AnyType
	}
}

// inferLoadProperty implements the LoadProperty rule: union the
// stored-value types of every qualifying store to every known
// receiver, falling back to AnyType the moment anything is unknown.
func inferLoadProperty(cgp oracle.CallGraph, inst *ir.LoadPropertyInst, stats *Stats) types.Type {
	if cgp.HasUnknownReceivers(inst) {
		return types.AnyType
	}

	first := true
	unique := true
	var result types.Type

	for _, r := range cgp.KnownReceivers(inst).ToSlice() {
		if cgp.HasUnknownStores(r) {
			return types.AnyType
		}

		prop := inst.Property()
		if obj, ok := r.(*ir.AllocObjectInst); ok && !oracle.IsOwnProperty(obj, prop) {
			return types.AnyType
		}

		for _, s := range cgp.KnownStores(r).ToSlice() {
			store, ok := s.(*ir.BaseStorePropertyInst)
			if !ok {
				continue
			}
			if !oracle.StoreFeedsReceiver(r, store, prop) {
				continue
			}
			storedType := store.StoredValue().Type()
			if first {
				result = storedType
				first = false
			} else {
				result = types.Union(result, storedType)
				unique = false
			}
		}
	}

	if first {
		return types.AnyType
	}
	if unique {
		stats.incUniquePropertyValue()
	}
	return result
}

// inferCallLike implements the Call/Construct rule: union the
// (currently annotated) return types of every known callee.
func inferCallLike(cgp oracle.CallGraph, inst *ir.CallLikeInst) types.Type {
	if cgp.HasUnknownCallees(inst) {
		return types.AnyType
	}

	first := true
	var result types.Type
	for _, f := range cgp.KnownCallees(inst).ToSlice() {
		if first {
			result = f.Type()
			first = false
		} else {
			result = types.Union(result, f.Type())
		}
	}
	if first {
		return types.AnyType
	}
	return result
}

// inferInstructionType dispatches a single (non-PHI) instruction to its
// transfer rule. It does not check for NoType operands; the caller
// (inferInstruction) does that first.
func inferInstructionType(cgp oracle.CallGraph, stats *Stats, inst ir.Instruction) types.Type {
	switch v := inst.(type) {
	case *ir.SingleOperandInst:
		return inferSingleOperand(v)
	case *ir.ThrowIfEmptyInst:
		// Subtracting Empty from the checked value's type would be more
		// precise, but can produce NoType when the value is Empty-only,
		// which would violate the output-discipline invariant. Left
		// pessimistic on purpose.
		return v.CheckedValue().Type()
	case *ir.LoadParamInst:
		return v.Param().Type()
	case *ir.PrLoadInst:
		return v.CheckedType()
	case *ir.PrStoreInst:
		return types.NoType
	case *ir.UnaryOperatorInst:
		return inferUnary(v)
	case *ir.BinaryOperatorInst:
		return inferBinary(v)
	case *ir.LoadPropertyInst:
		return inferLoadProperty(cgp, v, stats)
	case *ir.BaseStorePropertyInst:
		return types.NoType
	case *ir.DeletePropertyInst:
		return types.Boolean
	case *ir.StoreInst:
		return types.NoType
	case *ir.AllocObjectInst:
		return types.Object
	case *ir.AllocArrayInst:
		t, _ := v.InherentType()
		return t
	case *ir.CreateFunctionInst:
		t, _ := v.InherentType()
		return t
	case *ir.CallLikeInst:
		switch v.Kind() {
		case ir.KindCall, ir.KindConstruct:
			return inferCallLike(cgp, v)
		default: // CallBuiltin, CallN: unimplemented, always AnyType.
			return types.AnyType
		}
	case *ir.AllocStackInst:
		return inferAllocStack(v)
	case *ir.TerminatorInst:
		return types.NoType
	case *ir.PhiInst:
		fatal("phis are to be handled specially by inferPhi")
		return types.NoType
	default:
		return types.AnyType
	}
}

// inferSingleOperand covers every instruction whose shape is "one
// operand, or none plus an inherent type."
func inferSingleOperand(v *ir.SingleOperandInst) types.Type {
	switch v.Kind() {
	case ir.KindMov, ir.KindImplicitMov, ir.KindLoadStack, ir.KindLoadFrame, ir.KindLoadConst:
		return v.SingleOperand().Type()
	case ir.KindAsNumber, ir.KindAsNumeric, ir.KindAsInt32, ir.KindAddEmptyString, ir.KindCoerceThisNS:
		t, _ := v.InherentType()
		return t
	default:
		if t, ok := v.InherentType(); ok {
			return t
		}
		return types.AnyType
	}
}

// inferAllocStack implements the AllocStack convention: a stack slot's
// type is the union of every value ever stored into it, or AnyType if
// it has no users at all (a live instruction must never carry NoType).
func inferAllocStack(v *ir.AllocStackInst) types.Type {
	if len(v.Users()) == 0 {
		return types.AnyType
	}
	return inferMemoryLocationType(v)
}

func fatal(msg string) {
	panic(errors.NewStandardError(errors.CategoryValidation, "TYPEINFER_FATAL", msg, nil))
}
