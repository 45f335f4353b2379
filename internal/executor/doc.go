// Package executor runs the forward pass over a computational graph.
//
// # Ordering
//
// Every input id is lower than the id of the node that consumes it, so walking
// ids from zero upwards visits each node after all of its dependencies. The
// executor walks the graph's node table by index and never depends on map
// iteration order.
//
// # Failure
//
// The pass stops at the first error and returns it unchanged. Values stored
// before the failure stay in place, and every node from the failing one onward
// is left without a value. A partially evaluated graph must not be read as a
// result; run the pass again from the start once the cause is fixed.
//
// # Cancellation
//
// The context is checked once per node. The core never logs.
package executor
