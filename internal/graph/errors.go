package graph

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/noma/internal/node"
	"github.com/specialistvlad/noma/internal/nodeid"
)

// Error kinds. Match them with errors.Is; recover the details with errors.As
// on *Error.
var (
	// ErrUndefinedVariable is a construction-time failure: an identifier is not
	// bound in the scope used to build an expression.
	ErrUndefinedVariable = errors.New("undefined variable")
	// ErrInvalidInput is a construction-time failure: an input id does not name
	// an existing node.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingOperand means an input had no value when its dependent was
	// evaluated. It signals a broken evaluation order, not a user error.
	ErrMissingOperand = errors.New("missing operand")
	// ErrUnknownOperator is raised for an opcode outside the supported set.
	ErrUnknownOperator = errors.New("unknown operator")
	// ErrUnknownFunction is raised for a call to a name with no builtin.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrArityMismatch is raised when a builtin is called with the wrong
	// number of arguments.
	ErrArityMismatch = errors.New("arity mismatch")
	// ErrIncomplete is raised when a pass ends with a node still unvalued.
	ErrIncomplete = errors.New("incomplete evaluation")
)

// Error is the typed failure returned by graph construction and evaluation.
type Error struct {
	Kind error
	// Node is the node being processed when the failure happened. It is only
	// meaningful when HasNode is true.
	Node    nodeid.ID
	HasNode bool
	// Name is the variable or function name involved, if any.
	Name string
	// Op is the opcode involved, if any.
	Op  node.Opcode
	Msg string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Kind.Error()
	switch {
	case e.Name != "":
		msg += ": " + e.Name
	case e.Op != "":
		msg += ": " + string(e.Op)
	}
	if e.Msg != "" {
		msg += " (" + e.Msg + ")"
	}
	if e.HasNode {
		msg += " at " + e.Node.String()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Kind }

// UndefinedVariable reports an identifier missing from scope.
func UndefinedVariable(name string) error {
	return &Error{Kind: ErrUndefinedVariable, Name: name}
}

// MissingOperand reports that input had no value when at was evaluated.
func MissingOperand(at, input nodeid.ID) error {
	return &Error{Kind: ErrMissingOperand, Node: at, HasNode: true, Msg: fmt.Sprintf("%s has no value", input)}
}

// UnknownOperator reports an unsupported opcode on node at.
func UnknownOperator(at nodeid.ID, op node.Opcode) error {
	return &Error{Kind: ErrUnknownOperator, Node: at, HasNode: true, Op: op}
}

// UnknownFunction reports a call to an unregistered builtin on node at.
func UnknownFunction(at nodeid.ID, name string) error {
	return &Error{Kind: ErrUnknownFunction, Node: at, HasNode: true, Name: name}
}

// ArityMismatch reports a builtin called with got arguments instead of want.
func ArityMismatch(at nodeid.ID, name string, want, got int) error {
	return &Error{
		Kind:    ErrArityMismatch,
		Node:    at,
		HasNode: true,
		Name:    name,
		Msg:     fmt.Sprintf("want %d arguments, got %d", want, got),
	}
}

// Incomplete reports a node left without a value after a pass.
func Incomplete(at nodeid.ID) error {
	return &Error{Kind: ErrIncomplete, Node: at, HasNode: true}
}

func invalidInputf(format string, args ...any) error {
	return &Error{Kind: ErrInvalidInput, Msg: fmt.Sprintf(format, args...)}
}
