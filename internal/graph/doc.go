// Package graph holds the computational graph: an append-only arena of
// scalar operation nodes addressed by nodeid.ID.
//
// # Ownership
//
// A ComputationalGraph exclusively owns its nodes. Nodes never point at each
// other; an edge is just an input id stored on the dependent node. Callers get
// copies from Node and Nodes, so the only ways to change a graph are the Create*
// methods (structure) and SetValue (the forward pass).
//
// # Ordering
//
// Ids are issued from a counter that starts at zero and only grows, and every
// Create* method that takes inputs rejects ids that do not exist yet. Together
// this guarantees that every input id is smaller than the id of the node using
// it. The graph is therefore acyclic by construction, and ascending id order is
// a topological order. Nodes are stored in a slice indexed by id, so iterating
// the table is already that order.
//
// # Concurrency
//
// A graph is owned by one compilation unit at a time and is not safe for
// concurrent use. Independent graphs share nothing and can be processed in
// parallel.
package graph
