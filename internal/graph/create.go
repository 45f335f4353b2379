package graph

import (
	"github.com/specialistvlad/noma/internal/node"
	"github.com/specialistvlad/noma/internal/nodeid"
)

// CreateConstant appends a literal node.
func (g *ComputationalGraph) CreateConstant(v float64) nodeid.ID {
	return g.push(node.Constant{Value: v}, nil)
}

// CreateLearnable appends a trainable parameter holding initial and registers
// its name. Declaring the same name twice creates two independent parameters.
func (g *ComputationalGraph) CreateLearnable(name string, initial float64) nodeid.ID {
	id := g.push(node.Learnable{Name: name}, nil)
	g.nodes[id].SetValue(initial)
	g.learnables = append(g.learnables, name)
	return id
}

// CreateVariable appends a named pass-through of input.
func (g *ComputationalGraph) CreateVariable(name string, input nodeid.ID) (nodeid.ID, error) {
	if err := g.checkInputs(input); err != nil {
		return 0, err
	}
	return g.push(node.Variable{Name: name}, []nodeid.ID{input}), nil
}

// CreateBinaryOp appends op applied to left and right.
func (g *ComputationalGraph) CreateBinaryOp(op node.Opcode, left, right nodeid.ID) (nodeid.ID, error) {
	if err := g.checkInputs(left, right); err != nil {
		return 0, err
	}
	return g.push(node.BinaryOp{Op: op}, []nodeid.ID{left, right}), nil
}

// CreateUnaryOp appends op applied to operand.
func (g *ComputationalGraph) CreateUnaryOp(op node.Opcode, operand nodeid.ID) (nodeid.ID, error) {
	if err := g.checkInputs(operand); err != nil {
		return 0, err
	}
	return g.push(node.UnaryOp{Op: op}, []nodeid.ID{operand}), nil
}

// CreateFunctionCall appends a call of name over args in argument order.
func (g *ComputationalGraph) CreateFunctionCall(name string, args []nodeid.ID) (nodeid.ID, error) {
	if err := g.checkInputs(args...); err != nil {
		return 0, err
	}
	return g.push(node.FunctionCall{Name: name}, append([]nodeid.ID{}, args...)), nil
}

// checkInputs rejects ids that have not been issued yet. Since the new node
// will take NextID, this is what keeps every input below its dependent.
func (g *ComputationalGraph) checkInputs(ids ...nodeid.ID) error {
	next := g.NextID()
	for _, id := range ids {
		if !id.Before(next) {
			return invalidInputf("node %s does not exist (next id is %s)", id, next)
		}
	}
	return nil
}

func (g *ComputationalGraph) push(t node.Type, inputs []nodeid.ID) nodeid.ID {
	id := g.NextID()
	g.nodes = append(g.nodes, node.New(id, t, inputs))
	return id
}
