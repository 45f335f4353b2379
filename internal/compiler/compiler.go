package compiler

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/noma/internal/ast"
	"github.com/specialistvlad/noma/internal/builder"
	"github.com/specialistvlad/noma/internal/ctxlog"
	"github.com/specialistvlad/noma/internal/executor"
	"github.com/specialistvlad/noma/internal/graph"
	"github.com/specialistvlad/noma/internal/nodeid"
	"github.com/specialistvlad/noma/internal/registry"
)

var (
	// ErrDuplicateObjective is returned for a second minimize in one function.
	ErrDuplicateObjective = errors.New("function already has an objective")
	// ErrDuplicateResult is returned for a second return in one function,
	// with or without a value.
	ErrDuplicateResult = errors.New("function already has a return")
	// ErrUnsupportedStatement is returned for a statement type the compiler
	// does not know.
	ErrUnsupportedStatement = errors.New("unsupported statement")
)

// Unit is a compiled function: its graph, the final scope, and the nodes
// marked as objective and result.
type Unit struct {
	Function *ast.Function
	Graph    *graph.ComputationalGraph
	Scope    builder.Scope

	Objective    nodeid.ID
	HasObjective bool
	Result       nodeid.ID
	HasResult    bool

	// returned is set by any return, including a bare one.
	returned bool
}

// Name is the compiled function's name.
func (u *Unit) Name() string {
	return u.Function.Name
}

// StatementError locates a failure at the statement that caused it.
type StatementError struct {
	Function  string
	Statement ast.Statement
	Err       error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("%s: fn %q: %s: %v", e.Statement.Position(), e.Function, e.Statement, e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }

// Option adjusts how a function is compiled.
type Option func(*options)

type options struct {
	registry *registry.Registry
}

// WithRegistry sets the builtins available to learn initializers. The default
// is registry.Default().
func WithRegistry(reg *registry.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// Compile lowers fn into a new graph. Statements are processed in order and
// the first failure aborts the function.
func Compile(ctx context.Context, fn *ast.Function, opts ...Option) (*Unit, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = registry.Default()
	}

	logger := ctxlog.FromContext(ctx).With("function", fn.Name)
	logger.Debug("Compiling function.", "statements", len(fn.Body))

	u := &Unit{
		Function: fn,
		Graph:    graph.New(),
		Scope:    builder.Scope{},
	}
	b := builder.New(u.Graph)

	for _, st := range fn.Body {
		if err := u.lower(ctx, b, o.registry, st); err != nil {
			return nil, &StatementError{Function: fn.Name, Statement: st, Err: err}
		}
	}

	logger.Debug("Function compiled.", "nodes", u.Graph.Len(), "learnables", len(u.Graph.Learnables()))
	return u, nil
}

func (u *Unit) lower(ctx context.Context, b *builder.Builder, reg *registry.Registry, st ast.Statement) error {
	switch s := st.(type) {
	case *ast.Param:
		c := u.Graph.CreateConstant(s.Value)
		id, err := u.Graph.CreateVariable(s.Name, c)
		if err != nil {
			return err
		}
		u.Scope[s.Name] = id

	case *ast.Learn:
		initial, err := foldConstant(ctx, s.Init, reg)
		if err != nil {
			return err
		}
		u.Scope[s.Name] = u.Graph.CreateLearnable(s.Name, initial)

	case *ast.Let:
		v, err := b.Build(s.Value, u.Scope)
		if err != nil {
			return err
		}
		id, err := u.Graph.CreateVariable(s.Name, v)
		if err != nil {
			return err
		}
		u.Scope[s.Name] = id

	case *ast.ExprStmt:
		if _, err := b.Build(s.Value, u.Scope); err != nil {
			return err
		}

	case *ast.Minimize:
		if u.HasObjective {
			return ErrDuplicateObjective
		}
		id, err := b.Build(s.Value, u.Scope)
		if err != nil {
			return err
		}
		u.Objective, u.HasObjective = id, true

	case *ast.Return:
		if u.returned {
			return ErrDuplicateResult
		}
		u.returned = true
		if s.Value == nil {
			return nil
		}
		id, err := b.Build(s.Value, u.Scope)
		if err != nil {
			return err
		}
		u.Result, u.HasResult = id, true

	default:
		return ErrUnsupportedStatement
	}
	return nil
}

// foldConstant evaluates a learn initializer on a scratch graph. Nothing is in
// scope there, so an initializer that names another binding fails with
// graph.ErrUndefinedVariable.
func foldConstant(ctx context.Context, expr ast.Expr, reg *registry.Registry) (float64, error) {
	if n, ok := expr.(*ast.Number); ok {
		return n.Value, nil
	}
	scratch := graph.New()
	id, err := builder.New(scratch).Build(expr, nil)
	if err != nil {
		return 0, err
	}
	if err := executor.Evaluate(ctx, scratch, reg); err != nil {
		return 0, err
	}
	v, _ := scratch.Value(id)
	return v, nil
}

// ObjectiveValue returns the evaluated objective, if the function has one and
// it has been evaluated.
func (u *Unit) ObjectiveValue() (float64, bool) {
	if !u.HasObjective {
		return 0, false
	}
	return u.Graph.Value(u.Objective)
}

// ResultValue returns the evaluated result, if the function has one and it has
// been evaluated.
func (u *Unit) ResultValue() (float64, bool) {
	if !u.HasResult {
		return 0, false
	}
	return u.Graph.Value(u.Result)
}
