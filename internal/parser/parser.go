// Package parser implements a hand-written Pratt (precedence-climbing)
// parser over the token stream produced by internal/lexer, lowering
// source text into the internal/ast tree.
package parser

import (
	"fmt"
	"strconv"

	"github.com/arvidsson/powerfx-go/internal/ast"
	"github.com/arvidsson/powerfx-go/internal/fxerr"
	"github.com/arvidsson/powerfx-go/internal/lexer"
	"github.com/arvidsson/powerfx-go/pkg/fxvalue"
)

// Precedence levels, weakest to strongest. PrefixNot sits strictly
// between Logical and Comparison: a prefix Not/! must absorb
// everything from Comparison through Power but stop before Logical,
// so `Not a And b` parses as `(Not a) And b` and `Not a = b` parses as
// `Not (a = b)`.
const (
	Lowest = iota
	Logical
	PrefixNot
	Comparison
	Sum
	Product
	Power
)

var precedences = map[lexer.TokenType]int{
	lexer.AND:      Logical,
	lexer.OR:       Logical,
	lexer.ANDAND:   Logical,
	lexer.OROR:     Logical,
	lexer.EQ:       Comparison,
	lexer.NE:       Comparison,
	lexer.LT:       Comparison,
	lexer.LE:       Comparison,
	lexer.GT:       Comparison,
	lexer.GE:       Comparison,
	lexer.IN:       Comparison,
	lexer.EXACTIN:  Comparison,
	lexer.PLUS:     Sum,
	lexer.MINUS:    Sum,
	lexer.ASTERISK: Product,
	lexer.SLASH:    Product,
	lexer.PERCENT:  Power,
	lexer.CARET:    Power,
}

var binaryOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.AND:      ast.OpAnd,
	lexer.OR:       ast.OpOr,
	lexer.ANDAND:   ast.OpAnd,
	lexer.OROR:     ast.OpOr,
	lexer.EQ:       ast.OpEq,
	lexer.NE:       ast.OpNe,
	lexer.LT:       ast.OpLt,
	lexer.LE:       ast.OpLe,
	lexer.GT:       ast.OpGt,
	lexer.GE:       ast.OpGe,
	lexer.IN:       ast.OpIn,
	lexer.EXACTIN:  ast.OpExactIn,
	lexer.PLUS:     ast.OpAdd,
	lexer.MINUS:    ast.OpSubtract,
	lexer.ASTERISK: ast.OpMultiply,
	lexer.SLASH:    ast.OpDivide,
	lexer.PERCENT:  ast.OpModulo,
	lexer.CARET:    ast.OpExponent,
}

type prefixParseFn func() (ast.Expression, error)
type infixParseFn func(ast.Expression) (ast.Expression, error)

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithTracing enables a trace hook invoked for every token consumed.
func WithTracing(trace func(lexer.Token)) Option {
	return func(p *Parser) { p.trace = trace }
}

// Parser consumes tokens from a Lexer and builds an ast.Program.
type Parser struct {
	l      *lexer.Lexer
	source string
	trace  func(lexer.Token)

	cur  lexer.Token
	peek lexer.Token

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New constructs a Parser over source.
func New(source string, opts ...Option) *Parser {
	p := &Parser{l: lexer.New(source), source: source}
	for _, opt := range opts {
		opt(p)
	}

	p.prefixFns = map[lexer.TokenType]prefixParseFn{
		lexer.NUMBER:     p.parseNumber,
		lexer.TEXT:       p.parseText,
		lexer.TRUE:       p.parseBoolean,
		lexer.FALSE:      p.parseBoolean,
		lexer.NULL:       p.parseNull,
		lexer.IDENT:      p.parseIdentifierOrCall,
		lexer.LPAREN:     p.parseGrouped,
		lexer.LBRACE:     p.parseRecordLiteral,
		lexer.NOT:        p.parsePrefixNot,
		lexer.BANG:       p.parsePrefixNot,
		lexer.MINUS:      p.parseNegativeNumber,
		lexer.PARENT:     p.parseProperty,
		lexer.SELF:       p.parseProperty,
		lexer.THISITEM:   p.parseProperty,
		lexer.THISRECORD: p.parseProperty,
	}

	p.infixFns = map[lexer.TokenType]infixParseFn{
		lexer.AND: p.parseBinary, lexer.OR: p.parseBinary,
		lexer.ANDAND: p.parseBinary, lexer.OROR: p.parseBinary,
		lexer.EQ: p.parseBinary, lexer.NE: p.parseBinary,
		lexer.LT: p.parseBinary, lexer.LE: p.parseBinary,
		lexer.GT: p.parseBinary, lexer.GE: p.parseBinary,
		lexer.IN: p.parseBinary, lexer.EXACTIN: p.parseBinary,
		lexer.PLUS: p.parseBinary, lexer.MINUS: p.parseBinary,
		lexer.ASTERISK: p.parseBinary, lexer.SLASH: p.parseBinary,
		lexer.PERCENT: p.parseBinary, lexer.CARET: p.parseBinary,
	}

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
	if p.trace != nil {
		p.trace(p.cur)
	}
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek.Type == t }

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peek.Type]; ok {
		return pr
	}
	return Lowest
}

func (p *Parser) errorf(pos lexer.Position, format string, args ...any) error {
	return fxerr.NewParseError(p.source, fmt.Sprintf(format, args...), fxerr.Position{Line: pos.Line, Column: pos.Column})
}

// ParseProgram parses the full semicolon-separated expression list.
func ParseProgram(source string, opts ...Option) (*ast.Program, error) {
	p := New(source, opts...)
	return p.parseProgram()
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}

	if p.curIs(lexer.EOF) {
		return nil, p.errorf(p.cur.Pos, "empty input")
	}

	for {
		expr, err := p.parseExpression(Lowest)
		if err != nil {
			return nil, err
		}

		if p.peekIs(lexer.AS) {
			p.nextToken() // consume AS
			if !p.peekIs(lexer.IDENT) {
				return nil, p.errorf(p.peek.Pos, "expected identifier after As, got %q", p.peek.Literal)
			}
			p.nextToken()
			expr = ast.NewAlias(expr.Pos(), expr, p.cur.Literal)
		}

		prog.Expressions = append(prog.Expressions, expr)

		if p.peekIs(lexer.SEMICOLON) {
			p.nextToken() // consume ';'
			if p.peekIs(lexer.EOF) {
				break
			}
			p.nextToken() // move onto the first token of the next expression
			continue
		}
		break
	}

	p.nextToken()
	if !p.curIs(lexer.EOF) {
		return nil, p.errorf(p.cur.Pos, "unexpected token %q after expression", p.cur.Literal)
	}

	return prog, nil
}

func (p *Parser) parseExpression(precedence int) (ast.Expression, error) {
	prefix, ok := p.prefixFns[p.cur.Type]
	if !ok {
		return nil, p.errorf(p.cur.Pos, "unexpected token %q", p.cur.Literal)
	}
	left, err := prefix()
	if err != nil {
		return nil, err
	}

	for !p.peekIs(lexer.SEMICOLON) && !p.peekIs(lexer.AS) && precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peek.Type]
		if !ok {
			return left, nil
		}
		p.nextToken()
		left, err = infix(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

func (p *Parser) parseNumber() (ast.Expression, error) {
	lit := p.cur
	n, err := parseFloat(lit.Literal)
	if err != nil {
		return nil, p.errorf(lit.Pos, "invalid number %q", lit.Literal)
	}
	return ast.NewLiteral(lit.Pos, fxvalue.Number(n)), nil
}

// parseNegativeNumber handles the grammar's "optional leading -" on
// number literals. The language has no general unary-minus expression
// node, so a bare "-" in primary position must be immediately
// followed by a number literal; anything else is a parse error.
func (p *Parser) parseNegativeNumber() (ast.Expression, error) {
	pos := p.cur.Pos
	if !p.peekIs(lexer.NUMBER) {
		return nil, p.errorf(p.peek.Pos, "expected a number after unary -, got %q", p.peek.Literal)
	}
	p.nextToken()
	n, err := parseFloat(p.cur.Literal)
	if err != nil {
		return nil, p.errorf(p.cur.Pos, "invalid number %q", p.cur.Literal)
	}
	return ast.NewLiteral(pos, fxvalue.Number(-n)), nil
}

func (p *Parser) parseText() (ast.Expression, error) {
	return ast.NewLiteral(p.cur.Pos, fxvalue.Text(p.cur.Literal)), nil
}

func (p *Parser) parseBoolean() (ast.Expression, error) {
	return ast.NewLiteral(p.cur.Pos, fxvalue.Boolean(p.cur.Type == lexer.TRUE)), nil
}

func (p *Parser) parseNull() (ast.Expression, error) {
	return ast.NewLiteral(p.cur.Pos, fxvalue.Blank()), nil
}

func (p *Parser) parseGrouped() (ast.Expression, error) {
	p.nextToken()
	expr, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	if !p.peekIs(lexer.RPAREN) {
		return nil, p.errorf(p.peek.Pos, "expected ), got %q", p.peek.Literal)
	}
	p.nextToken()
	return expr, nil
}

func (p *Parser) parseIdentifierOrCall() (ast.Expression, error) {
	name := p.cur.Literal
	pos := p.cur.Pos
	if !p.peekIs(lexer.LPAREN) {
		return ast.NewIdentifier(pos, name), nil
	}

	switch name {
	case "IsBlank":
		return p.parseUnaryCallAsNode(pos, func(e ast.Expression) ast.Expression { return ast.NewIsBlank(pos, e) })
	case "IsNotBlank":
		return p.parseUnaryCallAsNode(pos, func(e ast.Expression) ast.Expression { return ast.NewIsNotBlank(pos, e) })
	}

	p.nextToken() // consume '('
	p.nextToken() // move to first arg token or ')'
	args, err := p.parseCallArgs()
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionExpression(pos, name, args), nil
}

// parseUnaryCallAsNode lets IsBlank/IsNotBlank be written with call
// syntax (IsBlank(x)) while still producing the dedicated AST
// node the evaluator dispatches on, rather than a generic
// FunctionExpression.
func (p *Parser) parseUnaryCallAsNode(pos lexer.Position, build func(ast.Expression) ast.Expression) (ast.Expression, error) {
	p.nextToken() // consume '('
	p.nextToken() // move to first arg token
	operand, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	if !p.peekIs(lexer.RPAREN) {
		return nil, p.errorf(p.peek.Pos, "expected ), got %q", p.peek.Literal)
	}
	p.nextToken()
	return build(operand), nil
}

func (p *Parser) parseCallArgs() ([]ast.Expression, error) {
	var args []ast.Expression
	if p.curIs(lexer.RPAREN) {
		return args, nil
	}
	for {
		arg, err := p.parseExpression(Lowest)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.peekIs(lexer.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	if !p.peekIs(lexer.RPAREN) {
		return nil, p.errorf(p.peek.Pos, "expected ) or , in argument list, got %q", p.peek.Literal)
	}
	p.nextToken()
	return args, nil
}

func (p *Parser) parsePrefixNot() (ast.Expression, error) {
	pos := p.cur.Pos
	p.nextToken()
	operand, err := p.parseExpression(PrefixNot)
	if err != nil {
		return nil, err
	}
	return ast.NewNot(pos, operand), nil
}

func (p *Parser) parseBinary(left ast.Expression) (ast.Expression, error) {
	opTok := p.cur
	pos := opTok.Pos
	precedence := precedences[opTok.Type]
	p.nextToken()
	right, err := p.parseExpression(precedence)
	if err != nil {
		return nil, err
	}
	return ast.NewBinaryExpression(pos, left, binaryOps[opTok.Type], right), nil
}

func (p *Parser) parseProperty() (ast.Expression, error) {
	pos := p.cur.Pos
	var ctx ast.Context
	switch p.cur.Type {
	case lexer.PARENT:
		ctx = ast.ContextParent
	case lexer.SELF:
		ctx = ast.ContextSelf
	case lexer.THISITEM:
		ctx = ast.ContextThisItem
	case lexer.THISRECORD:
		ctx = ast.ContextThisRecord
	}
	if !p.peekIs(lexer.DOT) {
		return nil, p.errorf(p.peek.Pos, "expected . after context keyword, got %q", p.peek.Literal)
	}
	p.nextToken() // consume '.'
	if !p.peekIs(lexer.IDENT) {
		return nil, p.errorf(p.peek.Pos, "expected property name, got %q", p.peek.Literal)
	}
	p.nextToken()
	return ast.NewProperty(pos, ctx, p.cur.Literal), nil
}

func (p *Parser) parseRecordLiteral() (ast.Expression, error) {
	pos := p.cur.Pos
	names := []string{}
	fields := map[string]ast.Expression{}

	if p.peekIs(lexer.RBRACE) {
		p.nextToken()
		return ast.NewRecordLiteral(pos, names, fields), nil
	}

	for {
		if !p.peekIs(lexer.IDENT) {
			return nil, p.errorf(p.peek.Pos, "expected field name, got %q", p.peek.Literal)
		}
		p.nextToken()
		name := p.cur.Literal

		if !p.peekIs(lexer.COLON) {
			return nil, p.errorf(p.peek.Pos, "expected : after field name %q, got %q", name, p.peek.Literal)
		}
		p.nextToken() // consume ':'
		p.nextToken() // move to value token

		value, err := p.parseExpression(Lowest)
		if err != nil {
			return nil, err
		}

		names = append(names, name)
		fields[name] = value

		if p.peekIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.peekIs(lexer.RBRACE) {
		return nil, p.errorf(p.peek.Pos, "expected } to close record literal, got %q", p.peek.Literal)
	}
	p.nextToken()
	return ast.NewRecordLiteral(pos, names, fields), nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
