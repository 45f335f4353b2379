// Package node defines a single vertex of the computational graph and the
// closed set of operations a vertex can perform.
//
// Every consumer of a Node (builder, evaluator, printer) matches on the same
// finite Type union with a type switch. Adding a variant means adding a case to
// each of those switches; there is no dynamic dispatch through methods on the
// variants beyond Kind and String.
package node
