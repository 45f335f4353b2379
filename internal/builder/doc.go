/*
Package builder lowers expression trees into nodes of a graph.ComputationalGraph.

Lowering is a post-order walk over the ast:

 1. Identifiers resolve through a Scope to an already-bound node id. They do
    not create nodes.

 2. Numbers become Constant nodes.

 3. Binary, unary and call expressions build their operands first, left to
    right, then append one operator node over the resulting ids.

Because operands always exist before the node that consumes them, every input
id is lower than the id of its dependent. The evaluator relies on this: walking
ids in ascending order is a valid topological order.

Before anything is appended the builder checks that every identifier in the
expression is bound. A failed build therefore leaves the graph untouched.

The builder does not memoize. Building the same expression twice produces two
disjoint sets of nodes.
*/
package builder
