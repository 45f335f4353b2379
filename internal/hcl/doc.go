// Package hcl is the HCL front end. It parses program files with hcl/v2 and
// translates them into the format-agnostic ast.Program.
//
// A program file holds `fn` and `struct` blocks. The blocks inside a `fn` are
// statements and keep their source order. Parameter values are decoded with
// gohcl; every other attribute is read through an hcl.BodySchema so required
// arguments are reported by hcl itself. Expressions are walked as hclsyntax
// trees and translated node by node.
// Constructs the graph cannot represent are reported as diagnostics pointing at
// the offending range instead of being approximated.
package hcl
