// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package ast contains the format-agnostic program tree handed to the graph
// layer by a front end.
//
// Expressions form the small closed set the graph builder lowers: numbers,
// identifiers, binary and unary operators, and calls. Statements describe how
// bindings are threaded through a function body. Nothing in this package knows
// about HCL or any other surface syntax; the front end translates into it and
// every later stage reads only from it.
package ast
