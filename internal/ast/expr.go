// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the expression tree. The operator sets mirror exactly what
// the graph can represent, so the builder never has to guess a mapping.

package ast

import (
	"strconv"
	"strings"
)

// Expr is one of Number, Identifier, Binary, Unary or Call.
type Expr interface {
	String() string
	exprNode()
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

// Identifier refers to a name bound in the enclosing scope.
type Identifier struct {
	Name string
}

// Binary is `Left Op Right`.
type Binary struct {
	Left  Expr
	Op    BinaryOperator
	Right Expr
}

// Unary is `Op Operand`.
type Unary struct {
	Op      UnaryOperator
	Operand Expr
}

// Call is `Name(Args...)`.
type Call struct {
	Name string
	Args []Expr
}

func (*Number) exprNode()     {}
func (*Identifier) exprNode() {}
func (*Binary) exprNode()     {}
func (*Unary) exprNode()      {}
func (*Call) exprNode()       {}

func (e *Number) String() string     { return strconv.FormatFloat(e.Value, 'g', -1, 64) }
func (e *Identifier) String() string { return e.Name }
func (e *Binary) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}
func (e *Unary) String() string { return e.Op.String() + e.Operand.String() }
func (e *Call) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Name + "(" + strings.Join(args, ", ") + ")"
}

// BinaryOperator enumerates the binary operators of the language.
type BinaryOperator int

const (
	Add BinaryOperator = iota
	Sub
	Mul
	Div
	Pow
	Equal
	NotEqual
	Less
	Greater
	LessEq
	GreaterEq
)

func (op BinaryOperator) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Pow:
		return "^"
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case Less:
		return "<"
	case Greater:
		return ">"
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	default:
		return "?"
	}
}

// UnaryOperator enumerates the prefix operators of the language.
type UnaryOperator int

const (
	Neg UnaryOperator = iota
	Not
)

func (op UnaryOperator) String() string {
	switch op {
	case Neg:
		return "-"
	case Not:
		return "!"
	default:
		return "?"
	}
}

// Identifiers returns every identifier name referenced by e, in the order the
// builder would resolve them (left to right, depth first).
func Identifiers(e Expr) []string {
	var names []string
	var walk func(Expr)
	walk = func(e Expr) {
		switch e := e.(type) {
		case *Identifier:
			names = append(names, e.Name)
		case *Binary:
			walk(e.Left)
			walk(e.Right)
		case *Unary:
			walk(e.Operand)
		case *Call:
			for _, a := range e.Args {
				walk(a)
			}
		}
	}
	walk(e)
	return names
}
