// Package registry holds the builtin functions a FunctionCall node can
// dispatch to.
//
// A Registry maps a function name to its arity and implementation. It is
// populated once at startup and is read-only afterwards, so one instance may be
// shared by evaluators running on different goroutines.
package registry
