// Package ast defines the expression tree produced by the parser and
// consumed by the evaluator. Every node knows its own source
// Position for error reporting.
package ast

import (
	"fmt"
	"strings"

	"github.com/arvidsson/powerfx-go/internal/lexer"
	"github.com/arvidsson/powerfx-go/pkg/fxvalue"
)

// Node is the common interface implemented by every AST node.
type Node interface {
	Pos() lexer.Position
	String() string
}

// Expression is any node that can appear as an operand or top-level
// program entry. It is a marker: every Node in this package is an
// Expression, since the language has no separate statement forms.
type Expression interface {
	Node
	expressionNode()
}

// Context identifies which implicit host-supplied scope a Property
// node reaches into.
type Context int

const (
	ContextParent Context = iota
	ContextSelf
	ContextThisItem
	ContextThisRecord
)

func (c Context) String() string {
	switch c {
	case ContextParent:
		return "Parent"
	case ContextSelf:
		return "Self"
	case ContextThisItem:
		return "ThisItem"
	case ContextThisRecord:
		return "ThisRecord"
	default:
		return "UnknownContext"
	}
}

// Literal wraps a constant value. Record literals are represented
// separately (RecordLiteral) because their fields are child
// expressions evaluated lazily rather than values fixed at parse time;
// there is no table literal node (tables are built by the Table
// function). The parser only produces Literals holding Number,
// Boolean, Text or Blank; a host building an AST directly may wrap any
// already-evaluated Value, including a Record or Table.
type Literal struct {
	pos   lexer.Position
	Value fxvalue.Value
}

func NewLiteral(pos lexer.Position, v fxvalue.Value) *Literal { return &Literal{pos: pos, Value: v} }
func (n *Literal) Pos() lexer.Position                        { return n.pos }
func (n *Literal) String() string                             { return n.Value.String() }
func (*Literal) expressionNode()                              {}

// RecordLiteral is a `{ key: expr, ... }` literal; each field's
// expression is evaluated lazily at evaluation time, not at parse
// time. Keys are rendered/display-sorted by the evaluator when it
// builds the resulting fxvalue.Record, so insertion order here does
// not matter semantically, only for round-tripping source text.
type RecordLiteral struct {
	pos    lexer.Position
	Names  []string
	Fields map[string]Expression
}

func NewRecordLiteral(pos lexer.Position, names []string, fields map[string]Expression) *RecordLiteral {
	return &RecordLiteral{pos: pos, Names: names, Fields: fields}
}
func (n *RecordLiteral) Pos() lexer.Position { return n.pos }
func (n *RecordLiteral) String() string {
	parts := make([]string, len(n.Names))
	for i, name := range n.Names {
		parts[i] = fmt.Sprintf("%s: %s", name, n.Fields[name].String())
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
func (*RecordLiteral) expressionNode() {}

// Identifier resolves a name against the session (row overlay, then
// globals).
type Identifier struct {
	pos  lexer.Position
	Name string
}

func NewIdentifier(pos lexer.Position, name string) *Identifier { return &Identifier{pos: pos, Name: name} }
func (n *Identifier) Pos() lexer.Position                        { return n.pos }
func (n *Identifier) String() string                             { return n.Name }
func (*Identifier) expressionNode()                              {}

// Parameter behaves identically to Identifier at evaluation time; it
// exists as a distinct node only so a host constructing an AST
// programmatically can mark a name as a bound parameter rather than a
// free identifier. The parser never produces this node from surface
// syntax — only Identifier.
type Parameter struct {
	pos  lexer.Position
	Name string
}

func NewParameter(pos lexer.Position, name string) *Parameter { return &Parameter{pos: pos, Name: name} }
func (n *Parameter) Pos() lexer.Position                       { return n.pos }
func (n *Parameter) String() string                            { return n.Name }
func (*Parameter) expressionNode()                             {}

// Property reaches into a host-supplied implicit context (Parent,
// Self, ThisItem, ThisRecord) for a named field. The grammar produces
// these; the evaluator has no host context to resolve them against
// and always raises an error (see internal/evaluator).
type Property struct {
	pos     lexer.Position
	Context Context
	Key     string
}

func NewProperty(pos lexer.Position, ctx Context, key string) *Property {
	return &Property{pos: pos, Context: ctx, Key: key}
}
func (n *Property) Pos() lexer.Position { return n.pos }
func (n *Property) String() string      { return n.Context.String() + "." + n.Key }
func (*Property) expressionNode()       {}

// Alias wraps a top-level expression in `expr AS name`, the
// projection form used at the top of a program's expression list.
type Alias struct {
	pos    lexer.Position
	Source Expression
	Name   string
}

func NewAlias(pos lexer.Position, source Expression, name string) *Alias {
	return &Alias{pos: pos, Source: source, Name: name}
}
func (n *Alias) Pos() lexer.Position { return n.pos }
func (n *Alias) String() string      { return n.Source.String() + " As " + n.Name }
func (*Alias) expressionNode()       {}

// Not negates a Boolean operand; a non-Boolean operand is coerced to
// false before negation (so Not always yields true for non-booleans).
type Not struct {
	pos     lexer.Position
	Operand Expression
}

func NewNot(pos lexer.Position, operand Expression) *Not { return &Not{pos: pos, Operand: operand} }
func (n *Not) Pos() lexer.Position                        { return n.pos }
func (n *Not) String() string                             { return "Not(" + n.Operand.String() + ")" }
func (*Not) expressionNode()                              {}

// IsBlank tests whether its operand is the Blank variant.
type IsBlank struct {
	pos     lexer.Position
	Operand Expression
}

func NewIsBlank(pos lexer.Position, operand Expression) *IsBlank {
	return &IsBlank{pos: pos, Operand: operand}
}
func (n *IsBlank) Pos() lexer.Position { return n.pos }
func (n *IsBlank) String() string      { return "IsBlank(" + n.Operand.String() + ")" }
func (*IsBlank) expressionNode()       {}

// IsNotBlank is the negation of IsBlank.
type IsNotBlank struct {
	pos     lexer.Position
	Operand Expression
}

func NewIsNotBlank(pos lexer.Position, operand Expression) *IsNotBlank {
	return &IsNotBlank{pos: pos, Operand: operand}
}
func (n *IsNotBlank) Pos() lexer.Position { return n.pos }
func (n *IsNotBlank) String() string      { return "IsNotBlank(" + n.Operand.String() + ")" }
func (*IsNotBlank) expressionNode()       {}

// BinaryOp identifies which binary operator a BinaryExpression
// applies.
type BinaryOp int

const (
	OpAnd BinaryOp = iota
	OpOr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpIn
	OpExactIn
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpExponent
)

var binaryOpSymbols = map[BinaryOp]string{
	OpAnd: "And", OpOr: "Or", OpEq: "=", OpNe: "<>", OpLt: "<", OpLe: "<=",
	OpGt: ">", OpGe: ">=", OpIn: "in", OpExactIn: "exactin", OpAdd: "+",
	OpSubtract: "-", OpMultiply: "*", OpDivide: "/", OpModulo: "%", OpExponent: "^",
}

func (op BinaryOp) String() string {
	if s, ok := binaryOpSymbols[op]; ok {
		return s
	}
	return "?"
}

// BinaryExpression applies a binary operator to a left and right
// operand, both unevaluated until the evaluator walks the tree. The
// operator is stored as a plain enum field (rather than one struct
// type per operator) so the evaluator's dispatch is a single switch.
type BinaryExpression struct {
	pos      lexer.Position
	Left     Expression
	Operator BinaryOp
	Right    Expression
}

func NewBinaryExpression(pos lexer.Position, left Expression, op BinaryOp, right Expression) *BinaryExpression {
	return &BinaryExpression{pos: pos, Left: left, Operator: op, Right: right}
}
func (n *BinaryExpression) Pos() lexer.Position { return n.pos }
func (n *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left.String(), n.Operator.String(), n.Right.String())
}
func (*BinaryExpression) expressionNode() {}

// FunctionExpression is a named call with a positional list of
// unevaluated argument expressions; the callee decides which
// arguments to evaluate and in what scope.
type FunctionExpression struct {
	pos  lexer.Position
	Name string
	Args []Expression
}

func NewFunctionExpression(pos lexer.Position, name string, args []Expression) *FunctionExpression {
	return &FunctionExpression{pos: pos, Name: name, Args: args}
}
func (n *FunctionExpression) Pos() lexer.Position { return n.pos }
func (n *FunctionExpression) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Name + "(" + strings.Join(parts, ", ") + ")"
}
func (*FunctionExpression) expressionNode() {}

// Program is a non-empty ordered sequence of top-level expressions,
// each possibly wrapped in an Alias.
type Program struct {
	Expressions []Expression
}
