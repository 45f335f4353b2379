package node

import (
	"fmt"
	"strconv"
)

// Kind enumerates the variants of Type.
type Kind int

const (
	KindConstant Kind = iota
	KindLearnable
	KindVariable
	KindBinaryOp
	KindUnaryOp
	KindFunctionCall
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindLearnable:
		return "learnable"
	case KindVariable:
		return "variable"
	case KindBinaryOp:
		return "binary_op"
	case KindUnaryOp:
		return "unary_op"
	case KindFunctionCall:
		return "function_call"
	default:
		return "unknown"
	}
}

// Opcode is the symbolic tag selecting the semantics of a BinaryOp or UnaryOp.
// It is a string so that graphs built by hand can carry opcodes the evaluator
// does not know; those fail at evaluation time with an unknown-operator error.
type Opcode string

// Binary opcodes.
const (
	OpAdd Opcode = "add"
	OpSub Opcode = "sub"
	OpMul Opcode = "mul"
	OpDiv Opcode = "div"
	OpPow Opcode = "pow"
	OpEq  Opcode = "eq"
	OpNe  Opcode = "ne"
	OpLt  Opcode = "lt"
	OpGt  Opcode = "gt"
	OpLe  Opcode = "le"
	OpGe  Opcode = "ge"
)

// Unary opcodes.
const (
	OpNeg Opcode = "neg"
	OpNot Opcode = "not"
)

// Type is the closed union of node variants. Only the types in this package
// implement it.
type Type interface {
	Kind() Kind
	String() string
	isType()
}

// Constant is a literal scalar with no inputs.
type Constant struct {
	Value float64
}

// Learnable is a named trainable parameter with no inputs.
type Learnable struct {
	Name string
}

// Variable is a named alias for the value of its single input.
type Variable struct {
	Name string
}

// BinaryOp combines exactly two inputs.
type BinaryOp struct {
	Op Opcode
}

// UnaryOp transforms exactly one input.
type UnaryOp struct {
	Op Opcode
}

// FunctionCall applies a builtin to its inputs in argument order.
type FunctionCall struct {
	Name string
}

func (Constant) Kind() Kind     { return KindConstant }
func (Learnable) Kind() Kind    { return KindLearnable }
func (Variable) Kind() Kind     { return KindVariable }
func (BinaryOp) Kind() Kind     { return KindBinaryOp }
func (UnaryOp) Kind() Kind      { return KindUnaryOp }
func (FunctionCall) Kind() Kind { return KindFunctionCall }

func (Constant) isType()     {}
func (Learnable) isType()    {}
func (Variable) isType()     {}
func (BinaryOp) isType()     {}
func (UnaryOp) isType()      {}
func (FunctionCall) isType() {}

func (t Constant) String() string     { return fmt.Sprintf("Constant(%s)", FormatValue(t.Value)) }
func (t Learnable) String() string    { return fmt.Sprintf("Learnable(%s)", t.Name) }
func (t Variable) String() string     { return fmt.Sprintf("Variable(%s)", t.Name) }
func (t BinaryOp) String() string     { return fmt.Sprintf("BinaryOp(%s)", t.Op) }
func (t UnaryOp) String() string      { return fmt.Sprintf("UnaryOp(%s)", t.Op) }
func (t FunctionCall) String() string { return fmt.Sprintf("FunctionCall(%s)", t.Name) }

// VariadicArity is returned by Arity for types whose input count is set by the
// call site.
const VariadicArity = -1

// Arity returns the exact number of inputs a node of type t must have, or
// VariadicArity for function calls.
func Arity(t Type) int {
	switch t.(type) {
	case Constant, Learnable:
		return 0
	case Variable, UnaryOp:
		return 1
	case BinaryOp:
		return 2
	case FunctionCall:
		return VariadicArity
	default:
		panic(fmt.Sprintf("node: unhandled type %T", t))
	}
}

// FormatValue renders a scalar the way diagnostics show it.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
