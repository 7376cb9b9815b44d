// Package ir is the minimal bytecode-IR surface the type-inference pass
// reads and writes: basic blocks, instructions, parameters, variables,
// functions and modules, plus the handful of specialized accessors the
// transfer functions need (getLeftHandSide, getStoredValue, PHI entries,
// ...). Construction helpers are provided for tests and the CLI
// demonstrator; the pass itself only ever calls the read side of this
// contract.
package ir

// Kind discriminates instruction (and non-instruction Value) families.
// It mirrors the opcode families the transfer rules dispatch on, one
// family per rule.
type Kind int

const (
	KindInvalid Kind = iota

	// KindLiteral tags ir.Literal, the only non-instruction Value kind.
	KindLiteral

	// Moves, loads, stores.
	KindMov
	KindImplicitMov
	KindLoadStack
	KindLoadFrame
	KindLoadConst
	KindLoadParam
	KindLoadProperty
	KindTryLoadGlobalProperty
	KindStoreStack
	KindStoreFrame
	KindStorePropertyLoose
	KindStorePropertyStrict
	KindStoreOwnProperty
	KindStoreNewOwnProperty
	KindStoreGetterSetter
	KindTryStoreGlobalProperty

	// Property/element deletion.
	KindDeletePropertyLoose
	KindDeletePropertyStrict

	// Unary operators.
	KindUnaryMinus
	KindUnaryInc
	KindUnaryDec
	KindUnaryTilde
	KindUnaryVoid
	KindUnaryTypeof
	KindUnaryBang

	// Binary operators.
	KindBinaryAdd
	KindBinarySubtract
	KindBinaryMultiply
	KindBinaryDivide
	KindBinaryExponentiation
	KindBinaryModulo
	KindBinaryLeftShift
	KindBinaryRightShift
	KindBinaryUnsignedRightShift
	KindBinaryAnd
	KindBinaryOr
	KindBinaryXor
	KindBinaryEqual
	KindBinaryNotEqual
	KindBinaryStrictlyEqual
	KindBinaryStrictlyNotEqual
	KindBinaryLessThan
	KindBinaryLessThanOrEqual
	KindBinaryGreaterThan
	KindBinaryGreaterThanOrEqual
	KindBinaryIn
	KindBinaryInstanceOf

	// Allocations and creators.
	KindAllocObject
	KindAllocArray
	KindAllocObjectLiteral
	KindGetTemplateObject
	KindCreateArguments
	KindCreateRegExp
	KindCreateFunction
	KindCreateGenerator
	KindAllocObjectFromBuffer
	KindGetBuiltinClosure
	KindGetGlobalObject
	KindCreateEnvironment
	KindResolveEnvironment
	KindGetThisNS
	KindCreateThis
	KindGetConstructedObject

	// Calls.
	KindCall
	KindConstruct
	KindCallBuiltin
	KindCallN

	// Control / miscellaneous, AnyType-producing or NoType-producing.
	KindDirectEval
	KindCatch
	KindGetNewTarget
	KindIteratorBegin
	KindIteratorNext
	KindIteratorClose
	KindLoadFromEnvironment
	KindResumeGenerator
	KindGetArgumentsPropByVal
	KindGetArgumentsLength
	KindCoerceThisNS
	KindAddEmptyString
	KindAsNumber
	KindAsNumeric
	KindAsInt32
	KindThrowIfEmpty
	KindPrLoad
	KindPrStore

	KindAllocStack

	// PHI, handled outside normal dispatch.
	KindPhi

	// Terminators and no-output instructions.
	KindBranch
	KindCondBranch
	KindReturn
	KindThrow
	KindSwitch
	KindSwitchImm
	KindCompareBranch
	KindDebugger
	KindDeclareGlobalVar
	KindReifyArguments
	KindUnreachable
	KindTryStart
	KindTryEnd
	KindProfilePoint
	KindGetPNames
	KindGetNextPName
	KindSaveAndYield
	KindStartGenerator

	// Non-instruction Values.
	KindParameter
	KindVariable
	KindFunction
)

// noOutputKinds are instruction kinds that structurally never produce a
// usable SSA result; the IR guarantees hasOutput() is false for exactly
// these and NoType iff hasOutput() is false for every instruction.
var noOutputKinds = map[Kind]bool{
	KindStoreStack:               true,
	KindStoreFrame:               true,
	KindStorePropertyLoose:       true,
	KindStorePropertyStrict:      true,
	KindStoreOwnProperty:         true,
	KindStoreNewOwnProperty:      true,
	KindStoreGetterSetter:        true,
	KindTryStoreGlobalProperty:   true,
	KindPrStore:                  true,
	KindBranch:                   true,
	KindCondBranch:               true,
	KindReturn:                   true,
	KindThrow:                    true,
	KindSwitch:                   true,
	KindSwitchImm:                true,
	KindCompareBranch:            true,
	KindDebugger:                 true,
	KindDeclareGlobalVar:         true,
	KindReifyArguments:           true,
	KindUnreachable:              true,
	KindTryStart:                 true,
	KindTryEnd:                   true,
	KindProfilePoint:             true,
	KindGetPNames:                true,
	KindGetNextPName:             true,
	KindSaveAndYield:             true,
	KindStartGenerator:           true,
}

// HasOutput reports whether instructions of kind k carry an SSA result.
func HasOutput(k Kind) bool {
	return !noOutputKinds[k]
}

var kindNames = map[Kind]string{
	KindInvalid:                  "invalid",
	KindLiteral:                  "literal",
	KindMov:                      "mov",
	KindImplicitMov:              "implicit_mov",
	KindLoadStack:                "load_stack",
	KindLoadFrame:                "load_frame",
	KindLoadConst:                "load_const",
	KindLoadParam:                "load_param",
	KindLoadProperty:             "load_property",
	KindTryLoadGlobalProperty:    "try_load_global_property",
	KindStoreStack:               "store_stack",
	KindStoreFrame:               "store_frame",
	KindStorePropertyLoose:       "store_property_loose",
	KindStorePropertyStrict:      "store_property_strict",
	KindStoreOwnProperty:         "store_own_property",
	KindStoreNewOwnProperty:      "store_new_own_property",
	KindStoreGetterSetter:        "store_getter_setter",
	KindTryStoreGlobalProperty:   "try_store_global_property",
	KindDeletePropertyLoose:      "delete_property_loose",
	KindDeletePropertyStrict:     "delete_property_strict",
	KindUnaryMinus:               "unary_minus",
	KindUnaryInc:                 "unary_inc",
	KindUnaryDec:                 "unary_dec",
	KindUnaryTilde:               "unary_tilde",
	KindUnaryVoid:                "unary_void",
	KindUnaryTypeof:              "unary_typeof",
	KindUnaryBang:                "unary_bang",
	KindBinaryAdd:                "add",
	KindBinarySubtract:           "sub",
	KindBinaryMultiply:           "mul",
	KindBinaryDivide:             "div",
	KindBinaryExponentiation:     "exp",
	KindBinaryModulo:             "mod",
	KindBinaryLeftShift:          "shl",
	KindBinaryRightShift:         "shr",
	KindBinaryUnsignedRightShift: "ushr",
	KindBinaryAnd:                "and",
	KindBinaryOr:                 "or",
	KindBinaryXor:                "xor",
	KindBinaryEqual:              "eq",
	KindBinaryNotEqual:           "neq",
	KindBinaryStrictlyEqual:      "seq",
	KindBinaryStrictlyNotEqual:   "sneq",
	KindBinaryLessThan:           "lt",
	KindBinaryLessThanOrEqual:    "lte",
	KindBinaryGreaterThan:        "gt",
	KindBinaryGreaterThanOrEqual: "gte",
	KindBinaryIn:                 "in",
	KindBinaryInstanceOf:         "instanceof",
	KindAllocObject:              "alloc_object",
	KindAllocArray:               "alloc_array",
	KindAllocObjectLiteral:       "alloc_object_literal",
	KindGetTemplateObject:        "get_template_object",
	KindCreateArguments:          "create_arguments",
	KindCreateRegExp:             "create_regexp",
	KindCreateFunction:           "create_function",
	KindCreateGenerator:          "create_generator",
	KindAllocObjectFromBuffer:    "alloc_object_from_buffer",
	KindGetBuiltinClosure:        "get_builtin_closure",
	KindGetGlobalObject:          "get_global_object",
	KindCreateEnvironment:        "create_environment",
	KindResolveEnvironment:       "resolve_environment",
	KindGetThisNS:                "get_this_ns",
	KindCreateThis:               "create_this",
	KindGetConstructedObject:     "get_constructed_object",
	KindCall:                     "call",
	KindConstruct:                "construct",
	KindCallBuiltin:              "call_builtin",
	KindCallN:                    "call_n",
	KindDirectEval:               "direct_eval",
	KindCatch:                    "catch",
	KindGetNewTarget:             "get_new_target",
	KindIteratorBegin:            "iterator_begin",
	KindIteratorNext:             "iterator_next",
	KindIteratorClose:            "iterator_close",
	KindLoadFromEnvironment:      "load_from_environment",
	KindResumeGenerator:          "resume_generator",
	KindGetArgumentsPropByVal:    "get_arguments_prop_by_val",
	KindGetArgumentsLength:       "get_arguments_length",
	KindCoerceThisNS:             "coerce_this_ns",
	KindAddEmptyString:           "add_empty_string",
	KindAsNumber:                 "as_number",
	KindAsNumeric:                "as_numeric",
	KindAsInt32:                  "as_int32",
	KindThrowIfEmpty:             "throw_if_empty",
	KindPrLoad:                   "pr_load",
	KindPrStore:                  "pr_store",
	KindAllocStack:               "alloc_stack",
	KindPhi:                      "phi",
	KindBranch:                   "branch",
	KindCondBranch:               "cond_branch",
	KindReturn:                   "return",
	KindThrow:                    "throw",
	KindSwitch:                   "switch",
	KindSwitchImm:                "switch_imm",
	KindCompareBranch:            "compare_branch",
	KindDebugger:                 "debugger",
	KindDeclareGlobalVar:         "declare_global_var",
	KindReifyArguments:           "reify_arguments",
	KindUnreachable:              "unreachable",
	KindTryStart:                 "try_start",
	KindTryEnd:                   "try_end",
	KindProfilePoint:             "profile_point",
	KindGetPNames:                "get_pnames",
	KindGetNextPName:             "get_next_pname",
	KindSaveAndYield:             "save_and_yield",
	KindStartGenerator:           "start_generator",
	KindParameter:                "parameter",
	KindVariable:                 "variable",
	KindFunction:                 "function",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind?"
}
