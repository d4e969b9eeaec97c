// Package parser implements the recursive-descent parser for Pascal source.
//
// Expressions are parsed with a Pratt-style precedence ladder; declarations
// and statements are parsed by dedicated methods dispatching on the current
// token. The parser performs no type checking: syntactically valid but
// semantically wrong constructs are left for the evaluator to reject.
package parser

import (
	"fmt"

	"github.com/cwbudde/go-pascal/internal/ast"
	"github.com/cwbudde/go-pascal/internal/lexer"
	"github.com/cwbudde/go-pascal/pkg/ident"
	"github.com/cwbudde/go-pascal/pkg/token"
)

// Precedence levels for operators, lowest to highest.
const (
	_ int = iota
	LOWEST
	OR          // or
	AND         // and
	EQUALS      // = <> < > <= >= in
	SUM         // + -
	PRODUCT     // * / div mod
	PREFIX      // -x, not x, @x
	POSTFIX     // p^
	CALL        // name(args)
	INDEX       // arr[i]
	MEMBER      // rec.field
)

// precedences maps token types to their precedence levels.
var precedences = map[token.TokenType]int{
	token.OR:         OR,
	token.AND:        AND,
	token.EQ:         EQUALS,
	token.NOT_EQ:     EQUALS,
	token.LESS:       EQUALS,
	token.GREATER:    EQUALS,
	token.LESS_EQ:    EQUALS,
	token.GREATER_EQ: EQUALS,
	token.IN:         EQUALS,
	token.PLUS:       SUM,
	token.MINUS:      SUM,
	token.ASTERISK:   PRODUCT,
	token.SLASH:      PRODUCT,
	token.DIV:        PRODUCT,
	token.MOD:        PRODUCT,
	token.CARET:      POSTFIX,
	token.LPAREN:     CALL,
	token.LBRACK:     INDEX,
	token.DOT:        MEMBER,
}

// Error is a parse error with its source position.
type Error struct {
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// prefixParseFn parses prefix expressions (literals, unary ops, grouping).
type prefixParseFn func() ast.Expression

// infixParseFn parses infix expressions (binary ops, calls, member access).
type infixParseFn func(ast.Expression) ast.Expression

// Parser parses a token stream into a program or unit AST.
type Parser struct {
	l              *lexer.Lexer
	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
	errors         []*Error
	curToken       token.Token
	peekToken      token.Token

	// recordTypes tracks the record type names declared so far, so that a
	// variable declared with such a type name becomes a RecordVarDecl.
	recordTypes *ident.Map[bool]
	// fileVars tracks declared file variable names so that write(f, ...)
	// and read(f, ...) can be classified as file I/O at parse time.
	fileVars *ident.Map[bool]
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:           l,
		recordTypes: ident.NewMap[bool](),
		fileVars:    ident.NewMap[bool](),
	}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:  p.parseIdentifierExpression,
		token.INT:    p.parseIntegerLiteral,
		token.FLOAT:  p.parseFloatLiteral,
		token.STRING: p.parseStringLiteral,
		token.TRUE:   p.parseBooleanLiteral,
		token.FALSE:  p.parseBooleanLiteral,
		token.NIL:    p.parseNilLiteral,
		token.MINUS:  p.parseUnaryExpression,
		token.PLUS:   p.parseUnaryExpression,
		token.NOT:    p.parseUnaryExpression,
		token.AT:     p.parseAddressOfExpression,
		token.LPAREN: p.parseGroupedExpression,
		token.LBRACK: p.parseSetLiteral,
		token.EOF_FN: p.parseEofExpression,
	}

	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.OR:         p.parseBinaryExpression,
		token.AND:        p.parseBinaryExpression,
		token.EQ:         p.parseBinaryExpression,
		token.NOT_EQ:     p.parseBinaryExpression,
		token.LESS:       p.parseBinaryExpression,
		token.GREATER:    p.parseBinaryExpression,
		token.LESS_EQ:    p.parseBinaryExpression,
		token.GREATER_EQ: p.parseBinaryExpression,
		token.PLUS:       p.parseBinaryExpression,
		token.MINUS:      p.parseBinaryExpression,
		token.ASTERISK:   p.parseBinaryExpression,
		token.SLASH:      p.parseBinaryExpression,
		token.DIV:        p.parseBinaryExpression,
		token.MOD:        p.parseBinaryExpression,
		token.IN:         p.parseInExpression,
		token.CARET:      p.parseDereferenceExpression,
		token.LPAREN:     p.parseCallExpression,
		token.LBRACK:     p.parseIndexExpression,
		token.DOT:        p.parseFieldExpression,
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the accumulated parse errors.
func (p *Parser) Errors() []*Error {
	return p.errors
}

// LexerErrors returns the scan errors accumulated during tokenization.
func (p *Parser) LexerErrors() []lexer.Error {
	return p.l.Errors()
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances if the next token has the expected type, otherwise
// records an error and returns false. Parsing is non-recoverable: callers
// bail out on false.
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.addErrorAt(fmt.Sprintf("expected %s, got %s (%q)", t, p.peekToken.Type, p.peekToken.Literal), p.peekToken.Pos)
}

func (p *Parser) addError(msg string) {
	p.addErrorAt(msg, p.curToken.Pos)
}

func (p *Parser) addErrorAt(msg string, pos token.Position) {
	p.errors = append(p.errors, &Error{Message: msg, Pos: pos})
}

func (p *Parser) failed() bool {
	return len(p.errors) > 0
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// parseExpression is the Pratt expression parser core.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError(fmt.Sprintf("unexpected token %s (%q) in expression", p.curToken.Type, p.curToken.Literal))
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

// parseIdentifier parses the current token as an identifier node.
func (p *Parser) parseIdentifier() *ast.Identifier {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

// expectIdentifier advances to the next token and returns it as an
// identifier, or nil with an error recorded.
func (p *Parser) expectIdentifier() *ast.Identifier {
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	return p.parseIdentifier()
}
