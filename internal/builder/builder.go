package builder

import (
	"fmt"

	"github.com/specialistvlad/noma/internal/ast"
	"github.com/specialistvlad/noma/internal/graph"
	"github.com/specialistvlad/noma/internal/node"
	"github.com/specialistvlad/noma/internal/nodeid"
)

// Builder appends the nodes for expressions to a single graph.
type Builder struct {
	g *graph.ComputationalGraph
}

// New creates a builder that appends to g.
func New(g *graph.ComputationalGraph) *Builder {
	return &Builder{g: g}
}

// Graph returns the graph the builder appends to.
func (b *Builder) Graph() *graph.ComputationalGraph {
	return b.g
}

// Build lowers expr into the graph and returns the id of the node holding its
// result. An identifier that is not in scope fails with
// graph.ErrUndefinedVariable, and one bound to a node the graph has not issued
// fails with graph.ErrInvalidInput. Both are reported before any node is
// created.
func (b *Builder) Build(expr ast.Expr, scope Scope) (nodeid.ID, error) {
	next := b.g.NextID()
	for _, name := range ast.Identifiers(expr) {
		id, ok := scope[name]
		if !ok {
			return 0, graph.UndefinedVariable(name)
		}
		if !id.Before(next) {
			return 0, &graph.Error{
				Kind: graph.ErrInvalidInput,
				Name: name,
				Msg:  fmt.Sprintf("bound to %s which does not exist", id),
			}
		}
	}
	if err := checkOperators(expr); err != nil {
		return 0, err
	}
	return b.build(expr, scope)
}

func (b *Builder) build(expr ast.Expr, scope Scope) (nodeid.ID, error) {
	switch e := expr.(type) {
	case *ast.Number:
		return b.g.CreateConstant(e.Value), nil

	case *ast.Identifier:
		id, ok := scope[e.Name]
		if !ok {
			return 0, graph.UndefinedVariable(e.Name)
		}
		return id, nil

	case *ast.Binary:
		left, err := b.build(e.Left, scope)
		if err != nil {
			return 0, err
		}
		right, err := b.build(e.Right, scope)
		if err != nil {
			return 0, err
		}
		op, _ := BinaryOpcode(e.Op)
		return b.g.CreateBinaryOp(op, left, right)

	case *ast.Unary:
		operand, err := b.build(e.Operand, scope)
		if err != nil {
			return 0, err
		}
		op, _ := UnaryOpcode(e.Op)
		return b.g.CreateUnaryOp(op, operand)

	case *ast.Call:
		args := make([]nodeid.ID, 0, len(e.Args))
		for _, a := range e.Args {
			id, err := b.build(a, scope)
			if err != nil {
				return 0, err
			}
			args = append(args, id)
		}
		return b.g.CreateFunctionCall(e.Name, args)

	default:
		return 0, &graph.Error{Kind: graph.ErrInvalidInput, Msg: "unsupported expression"}
	}
}

// checkOperators returns an error for the first operator in expr that has no
// opcode, or for a node type the builder cannot lower.
func checkOperators(expr ast.Expr) error {
	var errs []error
	var walk func(ast.Expr)
	walk = func(e ast.Expr) {
		switch e := e.(type) {
		case *ast.Binary:
			if _, ok := BinaryOpcode(e.Op); !ok {
				errs = append(errs, &graph.Error{Kind: graph.ErrUnknownOperator, Op: node.Opcode(e.Op.String())})
			}
			walk(e.Left)
			walk(e.Right)
		case *ast.Unary:
			if _, ok := UnaryOpcode(e.Op); !ok {
				errs = append(errs, &graph.Error{Kind: graph.ErrUnknownOperator, Op: node.Opcode(e.Op.String())})
			}
			walk(e.Operand)
		case *ast.Call:
			for _, a := range e.Args {
				walk(a)
			}
		case *ast.Number, *ast.Identifier:
		default:
			errs = append(errs, &graph.Error{Kind: graph.ErrInvalidInput, Msg: "unsupported expression"})
		}
	}
	walk(expr)
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
