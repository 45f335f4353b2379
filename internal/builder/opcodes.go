package builder

import (
	"github.com/specialistvlad/noma/internal/ast"
	"github.com/specialistvlad/noma/internal/node"
)

var binaryOpcodes = map[ast.BinaryOperator]node.Opcode{
	ast.Add:       node.OpAdd,
	ast.Sub:       node.OpSub,
	ast.Mul:       node.OpMul,
	ast.Div:       node.OpDiv,
	ast.Pow:       node.OpPow,
	ast.Equal:     node.OpEq,
	ast.NotEqual:  node.OpNe,
	ast.Less:      node.OpLt,
	ast.Greater:   node.OpGt,
	ast.LessEq:    node.OpLe,
	ast.GreaterEq: node.OpGe,
}

var unaryOpcodes = map[ast.UnaryOperator]node.Opcode{
	ast.Neg: node.OpNeg,
	ast.Not: node.OpNot,
}

// BinaryOpcode maps a surface operator to the opcode stored in the graph.
func BinaryOpcode(op ast.BinaryOperator) (node.Opcode, bool) {
	code, ok := binaryOpcodes[op]
	return code, ok
}

// UnaryOpcode maps a surface prefix operator to its opcode.
func UnaryOpcode(op ast.UnaryOperator) (node.Opcode, bool) {
	code, ok := unaryOpcodes[op]
	return code, ok
}
