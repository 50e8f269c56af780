// Package fxerr defines the error taxonomy surfaced to the host: one
// exported type per evaluation-error kind, plus a formatted parse
// error that reproduces the offending source line with a caret,
// matching the shape of a compiler diagnostic.
package fxerr

import (
	"fmt"
	"strings"
)

// Position is a 1-based line/column location in source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError is raised when the grammar rejects the input. It carries
// enough context to print a source-line-and-caret diagnostic the way
// a compiler would.
type ParseError struct {
	Message string
	Source  string
	Pos     Position
}

func (e *ParseError) Error() string { return e.Format() }

// Format renders a multi-line diagnostic: a header with the position,
// the offending source line prefixed with a line-number gutter, and a
// caret line pointing at the error column.
func (e *ParseError) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error at line %d:%d\n", e.Pos.Line, e.Pos.Column)

	line := sourceLine(e.Source, e.Pos.Line)
	if line != "" {
		fmt.Fprintf(&b, "%4d | %s\n", e.Pos.Line, line)
		b.WriteString(strings.Repeat(" ", 7+caretOffset(line, e.Pos.Column)))
		b.WriteString("^\n")
	}
	b.WriteString(e.Message)
	return b.String()
}

func sourceLine(source string, line int) string {
	if line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func caretOffset(line string, column int) int {
	runes := []rune(line)
	if column-1 < 0 {
		return 0
	}
	if column-1 > len(runes) {
		return len(runes)
	}
	return column - 1
}

// UnknownIdentifier is raised when name resolution finds no binding
// for an Identifier or Parameter node.
type UnknownIdentifier struct {
	Name string
}

func (e *UnknownIdentifier) Error() string {
	return fmt.Sprintf("unknown identifier: %s", e.Name)
}

// UnknownFunction is raised when a function call references a name
// absent from the registry.
type UnknownFunction struct {
	Name string
}

func (e *UnknownFunction) Error() string {
	return fmt.Sprintf("unknown function: %s", e.Name)
}

// InvalidArgument is raised when an argument has the wrong shape or
// variant for the callee.
type InvalidArgument struct {
	Message string
}

func (e *InvalidArgument) Error() string { return e.Message }

// InvalidArgumentCount is raised when a call's arity violates the
// callee's contract.
type InvalidArgumentCount struct {
	Message string
}

func (e *InvalidArgumentCount) Error() string { return e.Message }

// InvalidType is raised when an operator is applied to incompatible
// operand variants — specifically in/exactin against non-Text
// operands.
type InvalidType struct {
	Message string
}

func (e *InvalidType) Error() string { return e.Message }

// DivideByZero is reserved for future use. IEEE-754 float division
// never raises it; this implementation never constructs one.
type DivideByZero struct {
	Message string
}

func (e *DivideByZero) Error() string { return e.Message }

// Constructors, for call-site brevity.

func NewParseError(source, message string, pos Position) *ParseError {
	return &ParseError{Message: message, Source: source, Pos: pos}
}

func NewUnknownIdentifier(name string) *UnknownIdentifier {
	return &UnknownIdentifier{Name: name}
}

func NewUnknownFunction(name string) *UnknownFunction {
	return &UnknownFunction{Name: name}
}

func NewInvalidArgument(format string, args ...any) *InvalidArgument {
	return &InvalidArgument{Message: fmt.Sprintf(format, args...)}
}

func NewInvalidArgumentCount(format string, args ...any) *InvalidArgumentCount {
	return &InvalidArgumentCount{Message: fmt.Sprintf(format, args...)}
}

func NewInvalidType(format string, args ...any) *InvalidType {
	return &InvalidType{Message: fmt.Sprintf(format, args...)}
}
