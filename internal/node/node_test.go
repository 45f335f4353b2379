package node

import (
	"math"
	"testing"

	"github.com/specialistvlad/noma/internal/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArity(t *testing.T) {
	testCases := []struct {
		name     string
		typ      Type
		expected int
	}{
		{name: "constant", typ: Constant{Value: 1}, expected: 0},
		{name: "learnable", typ: Learnable{Name: "w"}, expected: 0},
		{name: "variable", typ: Variable{Name: "h"}, expected: 1},
		{name: "unary", typ: UnaryOp{Op: OpNeg}, expected: 1},
		{name: "binary", typ: BinaryOp{Op: OpAdd}, expected: 2},
		{name: "call", typ: FunctionCall{Name: "relu"}, expected: VariadicArity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Arity(tc.typ))
		})
	}
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "Constant(2.5)", Constant{Value: 2.5}.String())
	assert.Equal(t, "Constant(+Inf)", Constant{Value: math.Inf(1)}.String())
	assert.Equal(t, "Learnable(w)", Learnable{Name: "w"}.String())
	assert.Equal(t, "Variable(h)", Variable{Name: "h"}.String())
	assert.Equal(t, "BinaryOp(pow)", BinaryOp{Op: OpPow}.String())
	assert.Equal(t, "UnaryOp(not)", UnaryOp{Op: OpNot}.String())
	assert.Equal(t, "FunctionCall(sigmoid)", FunctionCall{Name: "sigmoid"}.String())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "binary_op", KindBinaryOp.String())
	assert.Equal(t, "function_call", KindFunctionCall.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestNew_Slots(t *testing.T) {
	t.Run("learnable has zero gradient and no value", func(t *testing.T) {
		n := New(0, Learnable{Name: "w"}, nil)
		g, ok := n.Gradient()
		require.True(t, ok)
		assert.Equal(t, 0.0, g)
		_, ok = n.Value()
		assert.False(t, ok)
	})

	t.Run("other kinds have no gradient", func(t *testing.T) {
		n := New(1, BinaryOp{Op: OpAdd}, []nodeid.ID{0, 0})
		_, ok := n.Gradient()
		assert.False(t, ok)
	})
}

func TestNode_CloneIsIndependent(t *testing.T) {
	n := New(2, BinaryOp{Op: OpMul}, []nodeid.ID{0, 1})
	c := n.Clone()
	c.Inputs[0] = 9
	c.SetValue(4)

	assert.Equal(t, nodeid.ID(0), n.Inputs[0])
	_, ok := n.Value()
	assert.False(t, ok)
}

func TestNode_String(t *testing.T) {
	n := New(3, BinaryOp{Op: OpAdd}, []nodeid.ID{1, 2})
	assert.Equal(t, "%3 = BinaryOp(add) [%1 %2]", n.String())
	n.SetValue(5)
	assert.Equal(t, "%3 = BinaryOp(add) [%1 %2] value=5", n.String())
}
