package executor

import (
	"context"

	"github.com/specialistvlad/noma/internal/graph"
	"github.com/specialistvlad/noma/internal/node"
	"github.com/specialistvlad/noma/internal/nodeid"
	"github.com/specialistvlad/noma/internal/registry"
)

// Executor evaluates a whole graph.
type Executor interface {
	Execute(ctx context.Context) error
}

// Forward computes a value for every node of one graph.
type Forward struct {
	g   *graph.ComputationalGraph
	reg *registry.Registry
}

var _ Executor = (*Forward)(nil)

// New creates a forward pass over g that dispatches calls through reg.
func New(g *graph.ComputationalGraph, reg *registry.Registry) *Forward {
	return &Forward{g: g, reg: reg}
}

// Execute evaluates every node in ascending id order. On success every node
// holds a value.
func (f *Forward) Execute(ctx context.Context) error {
	f.g.ResetValues()

	for i := 0; i < f.g.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, _ := f.g.Node(nodeid.ID(i))
		v, err := f.eval(n)
		if err != nil {
			return err
		}
		if err := f.g.SetValue(n.ID, v); err != nil {
			return err
		}
	}

	for _, n := range f.g.Nodes() {
		if _, ok := n.Value(); !ok {
			return graph.Incomplete(n.ID)
		}
	}
	return nil
}

func (f *Forward) eval(n *node.Node) (float64, error) {
	switch t := n.Type.(type) {
	case node.Constant:
		return t.Value, nil

	case node.Learnable:
		v, ok := n.Value()
		if !ok {
			return 0, graph.Incomplete(n.ID)
		}
		return v, nil

	case node.Variable:
		args, err := f.operands(n)
		if err != nil {
			return 0, err
		}
		return args[0], nil

	case node.BinaryOp:
		fn, ok := binaryOps[t.Op]
		if !ok {
			return 0, graph.UnknownOperator(n.ID, t.Op)
		}
		args, err := f.operands(n)
		if err != nil {
			return 0, err
		}
		return fn(args[0], args[1]), nil

	case node.UnaryOp:
		fn, ok := unaryOps[t.Op]
		if !ok {
			return 0, graph.UnknownOperator(n.ID, t.Op)
		}
		args, err := f.operands(n)
		if err != nil {
			return 0, err
		}
		return fn(args[0]), nil

	case node.FunctionCall:
		b, ok := f.reg.Lookup(t.Name)
		if !ok {
			return 0, graph.UnknownFunction(n.ID, t.Name)
		}
		if b.Arity != len(n.Inputs) {
			return 0, graph.ArityMismatch(n.ID, t.Name, b.Arity, len(n.Inputs))
		}
		args, err := f.operands(n)
		if err != nil {
			return 0, err
		}
		return b.Fn(args), nil

	default:
		panic("executor: unhandled node type " + n.Type.String())
	}
}

// operands reads the values of n's inputs, in input order.
func (f *Forward) operands(n *node.Node) ([]float64, error) {
	args := make([]float64, len(n.Inputs))
	for i, in := range n.Inputs {
		v, ok := f.g.Value(in)
		if !ok {
			return nil, graph.MissingOperand(n.ID, in)
		}
		args[i] = v
	}
	return args, nil
}

// Evaluate runs one forward pass over g with reg.
func Evaluate(ctx context.Context, g *graph.ComputationalGraph, reg *registry.Registry) error {
	return New(g, reg).Execute(ctx)
}
