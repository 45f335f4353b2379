package node

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/noma/internal/nodeid"
)

// Node is one vertex of the computational graph.
//
// Structure (ID, Type, Inputs) is fixed at creation. The value slot is empty
// until a forward pass fills it, except for learnables which carry their
// initial value from creation. The gradient slot exists only for learnables and
// starts at zero; nothing in this module computes it.
type Node struct {
	ID     nodeid.ID
	Type   Type
	Inputs []nodeid.ID

	value       float64
	hasValue    bool
	gradient    float64
	hasGradient bool
}

// New creates a node. Learnables get a zeroed gradient slot.
func New(id nodeid.ID, t Type, inputs []nodeid.ID) *Node {
	n := &Node{
		ID:     id,
		Type:   t,
		Inputs: inputs,
	}
	if t.Kind() == KindLearnable {
		n.hasGradient = true
	}
	return n
}

// Value returns the node's current value and whether it is present.
func (n *Node) Value() (float64, bool) {
	return n.value, n.hasValue
}

// Gradient returns the node's gradient slot and whether it is present.
func (n *Node) Gradient() (float64, bool) {
	return n.gradient, n.hasGradient
}

// SetValue stores v in the value slot.
func (n *Node) SetValue(v float64) {
	n.value = v
	n.hasValue = true
}

// ClearValue empties the value slot.
func (n *Node) ClearValue() {
	n.value = 0
	n.hasValue = false
}

// Clone returns a copy that shares nothing with n.
func (n *Node) Clone() *Node {
	c := *n
	c.Inputs = append([]nodeid.ID(nil), n.Inputs...)
	return &c
}

// String renders the node as `%3 = BinaryOp(add) [%1 %2] value=5`.
func (n *Node) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s = %s [%s]", n.ID, n.Type, strings.Join(nodeid.Strings(n.Inputs), " "))
	if v, ok := n.Value(); ok {
		sb.WriteString(" value=")
		sb.WriteString(FormatValue(v))
	}
	return sb.String()
}
