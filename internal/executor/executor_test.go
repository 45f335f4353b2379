package executor

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/specialistvlad/noma/internal/ast"
	"github.com/specialistvlad/noma/internal/builder"
	"github.com/specialistvlad/noma/internal/graph"
	"github.com/specialistvlad/noma/internal/node"
	"github.com/specialistvlad/noma/internal/nodeid"
	"github.com/specialistvlad/noma/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(v float64) ast.Expr {
	return &ast.Number{Value: v}
}

func bin(l ast.Expr, op ast.BinaryOperator, r ast.Expr) ast.Expr {
	return &ast.Binary{Left: l, Op: op, Right: r}
}

// buildAndRun lowers expr into a fresh graph, runs the forward pass and returns
// the graph and the id of the expression's node.
func buildAndRun(t *testing.T, expr ast.Expr) (*graph.ComputationalGraph, nodeid.ID, error) {
	t.Helper()
	g := graph.New()
	id, err := builder.New(g).Build(expr, nil)
	require.NoError(t, err)
	return g, id, Evaluate(context.Background(), g, registry.Default())
}

func TestExecute_Expressions(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		expr ast.Expr
		want float64
	}{
		{name: "add", expr: bin(num(3), ast.Add, num(2)), want: 5},
		{name: "sub", expr: bin(num(3), ast.Sub, num(5)), want: -2},
		{name: "mul", expr: bin(num(3), ast.Mul, num(4)), want: 12},
		{name: "div", expr: bin(num(1), ast.Div, num(4)), want: 0.25},
		{name: "pow", expr: bin(num(2), ast.Pow, num(10)), want: 1024},
		{name: "neg", expr: &ast.Unary{Op: ast.Neg, Operand: num(5)}, want: -5},
		{name: "lt true", expr: bin(num(3), ast.Less, num(5)), want: 1},
		{name: "lt false", expr: bin(num(5), ast.Less, num(3)), want: 0},
		{name: "ne equal operands", expr: bin(num(4), ast.NotEqual, num(4)), want: 0},
		{name: "eq", expr: bin(num(4), ast.Equal, num(4)), want: 1},
		{name: "gt", expr: bin(num(4), ast.Greater, num(4)), want: 0},
		{name: "le", expr: bin(num(4), ast.LessEq, num(4)), want: 1},
		{name: "ge", expr: bin(num(3), ast.GreaterEq, num(4)), want: 0},
		{name: "not zero", expr: &ast.Unary{Op: ast.Not, Operand: num(0)}, want: 1},
		{name: "not nonzero", expr: &ast.Unary{Op: ast.Not, Operand: num(-0.5)}, want: 0},
		{name: "sigmoid", expr: &ast.Call{Name: "sigmoid", Args: []ast.Expr{num(0)}}, want: 0.5},
		{name: "relu negative", expr: &ast.Call{Name: "relu", Args: []ast.Expr{num(-2)}}, want: 0},
		{name: "relu positive", expr: &ast.Call{Name: "relu", Args: []ast.Expr{num(3)}}, want: 3},
		{
			name: "nested",
			expr: bin(&ast.Call{Name: "max", Args: []ast.Expr{num(1), num(7)}}, ast.Mul, &ast.Unary{Op: ast.Neg, Operand: num(2)}),
			want: -14,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, id, err := buildAndRun(t, tc.expr)

			require.NoError(t, err)
			v, ok := g.Value(id)
			require.True(t, ok)
			assert.Equal(t, tc.want, v)
			for _, n := range g.Nodes() {
				_, ok := n.Value()
				assert.True(t, ok, "node %s has no value", n.ID)
			}
		})
	}
}

func TestExecute_DivisionByZeroFollowsIEEE(t *testing.T) {
	t.Parallel()
	g, id, err := buildAndRun(t, bin(num(1), ast.Div, num(0)))
	require.NoError(t, err)
	v, _ := g.Value(id)
	assert.True(t, math.IsInf(v, 1))

	g, id, err = buildAndRun(t, bin(num(0), ast.Div, num(0)))
	require.NoError(t, err)
	v, _ = g.Value(id)
	assert.True(t, math.IsNaN(v))
}

func TestExecute_VariablesAndLearnables(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	g := graph.New()
	x := g.CreateConstant(2)
	xv, err := g.CreateVariable("x", x)
	require.NoError(t, err)
	w := g.CreateLearnable("w", 0.5)
	b := builder.New(g)
	h, err := b.Build(bin(&ast.Identifier{Name: "w"}, ast.Mul, &ast.Identifier{Name: "x"}), builder.Scope{"x": xv, "w": w})
	require.NoError(t, err)

	// --- Act ---
	err = Evaluate(context.Background(), g, registry.Default())

	// --- Assert ---
	require.NoError(t, err)
	v, _ := g.Value(xv)
	assert.Equal(t, 2.0, v)
	v, _ = g.Value(h)
	assert.Equal(t, 1.0, v)

	n, _ := g.Node(w)
	v, _ = n.Value()
	grad, ok := n.Gradient()
	assert.Equal(t, 0.5, v, "forward pass must not touch learnables")
	assert.True(t, ok)
	assert.Equal(t, 0.0, grad)
}

func TestExecute_LearnableUpdatedExternally(t *testing.T) {
	t.Parallel()
	g := graph.New()
	w := g.CreateLearnable("w", 1)
	two := g.CreateConstant(2)
	out, err := g.CreateBinaryOp(node.OpMul, w, two)
	require.NoError(t, err)
	f := New(g, registry.Default())

	require.NoError(t, f.Execute(context.Background()))
	require.NoError(t, g.SetValue(w, 3))
	require.NoError(t, f.Execute(context.Background()))

	v, _ := g.Value(out)
	assert.Equal(t, 6.0, v)
}

func TestExecute_UnknownFunction(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	g := graph.New()
	arg := g.CreateConstant(1)
	call, err := g.CreateFunctionCall("softmax", []nodeid.ID{arg})
	require.NoError(t, err)
	after, err := g.CreateUnaryOp(node.OpNeg, call)
	require.NoError(t, err)

	// --- Act ---
	err = Evaluate(context.Background(), g, registry.Default())

	// --- Assert ---
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrUnknownFunction)
	var gerr *graph.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, "softmax", gerr.Name)
	assert.Equal(t, call, gerr.Node)

	_, ok := g.Value(call)
	assert.False(t, ok, "failed call must not hold a value")
	_, ok = g.Value(after)
	assert.False(t, ok, "nodes after the failure are not processed")
	_, ok = g.Value(arg)
	assert.True(t, ok)
}

func TestExecute_FailureClearsStaleValues(t *testing.T) {
	t.Parallel()
	// A registry that loses a builtin between passes must not leave the
	// previous pass's result behind.
	g := graph.New()
	arg := g.CreateConstant(1)
	call, err := g.CreateFunctionCall("relu", []nodeid.ID{arg})
	require.NoError(t, err)
	require.NoError(t, Evaluate(context.Background(), g, registry.Default()))

	err = Evaluate(context.Background(), g, registry.New())

	assert.ErrorIs(t, err, graph.ErrUnknownFunction)
	_, ok := g.Value(call)
	assert.False(t, ok)
}

func TestExecute_ArityMismatch(t *testing.T) {
	t.Parallel()
	g := graph.New()
	a := g.CreateConstant(1)
	b := g.CreateConstant(2)
	_, err := g.CreateFunctionCall("relu", []nodeid.ID{a, b})
	require.NoError(t, err)

	err = Evaluate(context.Background(), g, registry.Default())

	assert.ErrorIs(t, err, graph.ErrArityMismatch)
	assert.EqualError(t, err, "arity mismatch: relu (want 1 arguments, got 2) at %2")
}

func TestExecute_UnknownOperator(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name  string
		build func(g *graph.ComputationalGraph) error
	}{
		{
			name: "binary",
			build: func(g *graph.ComputationalGraph) error {
				_, err := g.CreateBinaryOp("mod", g.CreateConstant(5), g.CreateConstant(2))
				return err
			},
		},
		{
			name: "unary",
			build: func(g *graph.ComputationalGraph) error {
				_, err := g.CreateUnaryOp("sqrt", g.CreateConstant(4))
				return err
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := graph.New()
			require.NoError(t, tc.build(g))

			err := Evaluate(context.Background(), g, registry.Default())

			assert.ErrorIs(t, err, graph.ErrUnknownOperator)
		})
	}
}

func TestOperands_MissingOperand(t *testing.T) {
	t.Parallel()
	g := graph.New()
	a := g.CreateConstant(1)
	b := g.CreateConstant(2)
	sum, err := g.CreateBinaryOp(node.OpAdd, a, b)
	require.NoError(t, err)
	n, _ := g.Node(sum)

	// Nothing has been evaluated, so the inputs have no values.
	_, err = New(g, registry.Default()).operands(n)

	assert.ErrorIs(t, err, graph.ErrMissingOperand)
	assert.EqualError(t, err, "missing operand (%0 has no value) at %2")
}

func TestExecute_Idempotent(t *testing.T) {
	t.Parallel()
	g := graph.New()
	w := g.CreateLearnable("w", 0.3)
	_, err := builder.New(g).Build(
		&ast.Call{Name: "sigmoid", Args: []ast.Expr{bin(&ast.Identifier{Name: "w"}, ast.Pow, num(2))}},
		builder.Scope{"w": w},
	)
	require.NoError(t, err)
	f := New(g, registry.Default())

	require.NoError(t, f.Execute(context.Background()))
	first := values(g)
	require.NoError(t, f.Execute(context.Background()))

	assert.Equal(t, first, values(g))
}

func TestExecute_Cancelled(t *testing.T) {
	t.Parallel()
	g := graph.New()
	g.CreateConstant(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Evaluate(ctx, g, registry.Default())

	assert.ErrorIs(t, err, context.Canceled)
	_, ok := g.Value(0)
	assert.False(t, ok)
}

func TestExecute_EmptyGraph(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Evaluate(context.Background(), graph.New(), registry.Default()))
}

func values(g *graph.ComputationalGraph) []float64 {
	var out []float64
	for _, n := range g.Nodes() {
		v, _ := n.Value()
		out = append(out, v)
	}
	return out
}
