// Package compiler lowers the statements of one function into its own
// computational graph.
//
// It is the layer that threads bindings between statements: each param, learn
// and let adds a name to the scope the next statement is built against. The
// expressions themselves are handed to the builder unchanged. An expression
// statement is built but binds nothing. A learn initializer is folded to a
// constant on a scratch graph, so learnables still carry their value from
// creation.
package compiler
