// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the statement side of the tree: functions made of
// statements, plus struct declarations.
//
// Why keep statements here and not in the graph layer?
//
// The graph builder only understands expressions. Statements decide which
// names are bound when, and that threading belongs to the compiler, which reads
// these types. Keeping them format-agnostic lets tests construct programs
// directly without going through a surface syntax.

package ast

import (
	"fmt"
	"strconv"
)

// Pos locates a construct in its source file.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Statement is one of Param, Learn, Let, ExprStmt, Minimize or Return.
type Statement interface {
	Position() Pos
	String() string
	stmtNode()
}

// Param binds Name to a fixed input value.
type Param struct {
	Name  string
	Value float64
	Pos   Pos
}

// Learn declares a trainable parameter. Init must fold to a constant: it may
// use numbers, operators and builtin calls but no names.
type Learn struct {
	Name string
	Init Expr
	Pos  Pos
}

// Let binds Name to the value of an expression.
type Let struct {
	Name  string
	Value Expr
	Pos   Pos
}

// ExprStmt is an expression evaluated for its own sake. Its nodes are built
// but nothing is bound to them.
type ExprStmt struct {
	Value Expr
	Pos   Pos
}

// Minimize marks an expression as the function's training objective.
type Minimize struct {
	Value Expr
	Pos   Pos
}

// Return marks an expression as the function's result. A nil Value is a bare
// return: the function ends without a result.
type Return struct {
	Value Expr
	Pos   Pos
}

func (s *Param) Position() Pos    { return s.Pos }
func (s *Learn) Position() Pos    { return s.Pos }
func (s *Let) Position() Pos      { return s.Pos }
func (s *ExprStmt) Position() Pos { return s.Pos }
func (s *Minimize) Position() Pos { return s.Pos }
func (s *Return) Position() Pos   { return s.Pos }

func (*Param) stmtNode()    {}
func (*Learn) stmtNode()    {}
func (*Let) stmtNode()      {}
func (*ExprStmt) stmtNode() {}
func (*Minimize) stmtNode() {}
func (*Return) stmtNode()   {}

func (s *Param) String() string {
	return "param " + s.Name + " = " + strconv.FormatFloat(s.Value, 'g', -1, 64)
}
func (s *Learn) String() string    { return "learn " + s.Name + " = " + s.Init.String() }
func (s *Let) String() string      { return "let " + s.Name + " = " + s.Value.String() }
func (s *ExprStmt) String() string { return s.Value.String() }
func (s *Minimize) String() string { return "minimize " + s.Value.String() }
func (s *Return) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.String()
}

// Function is a named, ordered list of statements. Each function is lowered
// into its own graph.
type Function struct {
	Name string
	Body []Statement
	Pos  Pos
}

// Field is one struct member. Type is empty when the declaration is untyped.
type Field struct {
	Name string
	Type string
}

func (f Field) String() string {
	if f.Type == "" {
		return f.Name
	}
	return f.Name + ": " + f.Type
}

// StructDecl is a named record declaration. It contributes no graph nodes.
type StructDecl struct {
	Name   string
	Fields []Field
	Pos    Pos
}

// Program is everything a front end loaded from a set of source files.
type Program struct {
	Functions []*Function
	Structs   []*StructDecl
}

// Merge appends the declarations of other to p.
func (p *Program) Merge(other *Program) {
	p.Functions = append(p.Functions, other.Functions...)
	p.Structs = append(p.Structs, other.Structs...)
}
