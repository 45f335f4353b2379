package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpr_String(t *testing.T) {
	testCases := []struct {
		name     string
		expr     Expr
		expected string
	}{
		{name: "number", expr: &Number{Value: 2.5}, expected: "2.5"},
		{name: "identifier", expr: &Identifier{Name: "w"}, expected: "w"},
		{
			name:     "nested binary",
			expr:     &Binary{Left: &Number{Value: 2}, Op: Pow, Right: &Binary{Left: &Identifier{Name: "x"}, Op: Sub, Right: &Number{Value: 1}}},
			expected: "(2 ^ (x - 1))",
		},
		{name: "unary not", expr: &Unary{Op: Not, Operand: &Identifier{Name: "b"}}, expected: "!b"},
		{
			name:     "call",
			expr:     &Call{Name: "max", Args: []Expr{&Identifier{Name: "a"}, &Unary{Op: Neg, Operand: &Number{Value: 1}}}},
			expected: "max(a, -1)",
		},
		{name: "call without args", expr: &Call{Name: "f"}, expected: "f()"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.expr.String())
		})
	}
}

func TestOperators_String(t *testing.T) {
	assert.Equal(t, "<=", LessEq.String())
	assert.Equal(t, "!=", NotEqual.String())
	assert.Equal(t, "?", BinaryOperator(42).String())
	assert.Equal(t, "-", Neg.String())
	assert.Equal(t, "?", UnaryOperator(9).String())
}

func TestIdentifiers(t *testing.T) {
	e := &Binary{
		Left: &Call{Name: "relu", Args: []Expr{&Identifier{Name: "w"}, &Number{Value: 1}}},
		Op:   Add,
		Right: &Unary{
			Op:      Neg,
			Operand: &Binary{Left: &Identifier{Name: "b"}, Op: Mul, Right: &Identifier{Name: "w"}},
		},
	}
	assert.Equal(t, []string{"w", "b", "w"}, Identifiers(e))
	assert.Empty(t, Identifiers(&Number{Value: 1}))
}

func TestStatement_String(t *testing.T) {
	assert.Equal(t, "param x = 2", (&Param{Name: "x", Value: 2}).String())
	assert.Equal(t, "learn w = 0.5", (&Learn{Name: "w", Init: &Number{Value: 0.5}}).String())
	assert.Equal(t, "learn b = -0.1", (&Learn{Name: "b", Init: &Unary{Op: Neg, Operand: &Number{Value: 0.1}}}).String())
	assert.Equal(t, "let h = (w * x)", (&Let{Name: "h", Value: &Binary{Left: &Identifier{Name: "w"}, Op: Mul, Right: &Identifier{Name: "x"}}}).String())
	assert.Equal(t, "minimize h", (&Minimize{Value: &Identifier{Name: "h"}}).String())
	assert.Equal(t, "return h", (&Return{Value: &Identifier{Name: "h"}}).String())
	assert.Equal(t, "return", (&Return{}).String())
	assert.Equal(t, "relu(h)", (&ExprStmt{Value: &Call{Name: "relu", Args: []Expr{&Identifier{Name: "h"}}}}).String())
}

func TestField_String(t *testing.T) {
	assert.Equal(t, "x: f64", Field{Name: "x", Type: "f64"}.String())
	assert.Equal(t, "y", Field{Name: "y"}.String())
}

func TestPos_String(t *testing.T) {
	assert.Equal(t, "main.noma.hcl:3:5", Pos{File: "main.noma.hcl", Line: 3, Column: 5}.String())
	assert.Equal(t, "1:1", Pos{Line: 1, Column: 1}.String())
}

func TestProgram_Merge(t *testing.T) {
	p := &Program{Functions: []*Function{{Name: "a"}}}
	p.Merge(&Program{Functions: []*Function{{Name: "b"}}, Structs: []*StructDecl{{Name: "S"}}})
	assert.Len(t, p.Functions, 2)
	assert.Equal(t, "b", p.Functions[1].Name)
	assert.Len(t, p.Structs, 1)
}
