package executor

import (
	"math"

	"github.com/specialistvlad/noma/internal/node"
)

var binaryOps = map[node.Opcode]func(l, r float64) float64{
	node.OpAdd: func(l, r float64) float64 { return l + r },
	node.OpSub: func(l, r float64) float64 { return l - r },
	node.OpMul: func(l, r float64) float64 { return l * r },
	node.OpDiv: func(l, r float64) float64 { return l / r },
	node.OpPow: math.Pow,
	node.OpEq:  func(l, r float64) float64 { return truth(l == r) },
	node.OpNe:  func(l, r float64) float64 { return truth(l != r) },
	node.OpLt:  func(l, r float64) float64 { return truth(l < r) },
	node.OpGt:  func(l, r float64) float64 { return truth(l > r) },
	node.OpLe:  func(l, r float64) float64 { return truth(l <= r) },
	node.OpGe:  func(l, r float64) float64 { return truth(l >= r) },
}

var unaryOps = map[node.Opcode]func(x float64) float64{
	node.OpNeg: func(x float64) float64 { return -x },
	// Nonzero is true.
	node.OpNot: func(x float64) float64 { return truth(x == 0) },
}

func truth(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
