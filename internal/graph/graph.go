package graph

import (
	"fmt"

	"github.com/specialistvlad/noma/internal/node"
	"github.com/specialistvlad/noma/internal/nodeid"
)

// ComputationalGraph is the DAG of scalar operations built from expressions.
type ComputationalGraph struct {
	// nodes is indexed by id; len(nodes) is the next id to issue.
	nodes []*node.Node
	// learnables lists every learnable declaration in creation order.
	// Duplicate names are separate entries.
	learnables []string
}

// New creates an empty graph whose first node will get id 0.
func New() *ComputationalGraph {
	return &ComputationalGraph{}
}

// Len returns the number of nodes in the graph.
func (g *ComputationalGraph) Len() int {
	return len(g.nodes)
}

// NextID returns the id the next created node will receive.
func (g *ComputationalGraph) NextID() nodeid.ID {
	return nodeid.ID(len(g.nodes))
}

// Node returns a copy of the node with the given id.
func (g *ComputationalGraph) Node(id nodeid.ID) (*node.Node, bool) {
	n, ok := g.lookup(id)
	if !ok {
		return nil, false
	}
	return n.Clone(), true
}

// Nodes returns copies of all nodes in ascending id order.
func (g *ComputationalGraph) Nodes() []*node.Node {
	out := make([]*node.Node, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.Clone()
	}
	return out
}

// Learnables returns the registered learnable names in declaration order.
func (g *ComputationalGraph) Learnables() []string {
	return append([]string(nil), g.learnables...)
}

// Value returns the current value of a node.
func (g *ComputationalGraph) Value(id nodeid.ID) (float64, bool) {
	n, ok := g.lookup(id)
	if !ok {
		return 0, false
	}
	return n.Value()
}

// SetValue stores the result of evaluating a node. It is the only mutation the
// forward pass performs.
func (g *ComputationalGraph) SetValue(id nodeid.ID, v float64) error {
	n, ok := g.lookup(id)
	if !ok {
		return invalidInputf("node %s does not exist", id)
	}
	n.SetValue(v)
	return nil
}

// ResetValues empties the value slot of every node except learnables, whose
// values are owned by whoever trains them.
func (g *ComputationalGraph) ResetValues() {
	for _, n := range g.nodes {
		if n.Type.Kind() != node.KindLearnable {
			n.ClearValue()
		}
	}
}

// Validate checks the structural invariants of every node: ids match their
// position, inputs precede their dependents, and input counts match the
// node type.
func (g *ComputationalGraph) Validate() error {
	for i, n := range g.nodes {
		if n.ID != nodeid.ID(i) {
			return fmt.Errorf("node at position %d has id %s", i, n.ID)
		}
		if want := node.Arity(n.Type); want != node.VariadicArity && want != len(n.Inputs) {
			return fmt.Errorf("node %s: %s needs %d inputs, has %d", n.ID, n.Type, want, len(n.Inputs))
		}
		for _, in := range n.Inputs {
			if !in.Before(n.ID) {
				return fmt.Errorf("node %s: input %s does not precede it", n.ID, in)
			}
		}
	}
	return nil
}

func (g *ComputationalGraph) lookup(id nodeid.ID) (*node.Node, bool) {
	if int(id) >= len(g.nodes) {
		return nil, false
	}
	return g.nodes[id], true
}
