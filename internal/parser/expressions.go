package parser

import (
	"fmt"
	"strconv"

	"github.com/cwbudde/go-pascal/internal/ast"
	"github.com/cwbudde/go-pascal/pkg/token"
)

func (p *Parser) parseIdentifierExpression() ast.Expression {
	return p.parseIdentifier()
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addError(fmt.Sprintf("could not parse %q as integer", p.curToken.Literal))
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError(fmt.Sprintf("could not parse %q as real", p.curToken.Literal))
		return nil
	}
	return &ast.FloatLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNilLiteral() ast.Expression {
	return &ast.NilLiteral{Token: p.curToken}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	expr := &ast.UnaryExpression{Token: p.curToken, Operator: p.curToken.Type}
	p.nextToken()
	expr.Operand = p.parseExpression(PREFIX)
	if expr.Operand == nil {
		return nil
	}
	return expr
}

// parseAddressOfExpression parses @ident. The operand must be a plain
// identifier; address-of on other expressions is not in the surface.
func (p *Parser) parseAddressOfExpression() ast.Expression {
	expr := &ast.AddressOfExpression{Token: p.curToken}
	operand := p.expectIdentifier()
	if operand == nil {
		return nil
	}
	expr.Operand = operand
	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

// parseSetLiteral parses [e1, e2, ...]. The empty set [] is allowed.
func (p *Parser) parseSetLiteral() ast.Expression {
	lit := &ast.SetLiteral{Token: p.curToken}
	if p.peekTokenIs(token.RBRACK) {
		p.nextToken()
		return lit
	}
	p.nextToken()
	for {
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		lit.Elements = append(lit.Elements, elem)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.expectPeek(token.RBRACK) {
		return nil
	}
	return lit
}

// parseEofExpression parses eof(fileVar).
func (p *Parser) parseEofExpression() ast.Expression {
	expr := &ast.EofExpression{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	file := p.expectIdentifier()
	if file == nil {
		return nil
	}
	expr.File = file
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	expr := &ast.BinaryExpression{
		Token:    p.curToken,
		Operator: p.curToken.Type,
		Left:     left,
	}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseInExpression(left ast.Expression) ast.Expression {
	expr := &ast.InExpression{Token: p.curToken, Left: left}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Set = p.parseExpression(precedence)
	if expr.Set == nil {
		return nil
	}
	return expr
}

// parseDereferenceExpression parses the postfix ^ operator.
func (p *Parser) parseDereferenceExpression(left ast.Expression) ast.Expression {
	return &ast.DereferenceExpression{Token: p.curToken, Operand: left}
}

// parseCallExpression parses name(args). Only identifiers are callable.
func (p *Parser) parseCallExpression(left ast.Expression) ast.Expression {
	name, ok := left.(*ast.Identifier)
	if !ok {
		p.addError("only a routine name can be called")
		return nil
	}
	expr := &ast.CallExpression{Token: p.curToken, Function: name}
	args, ok2 := p.parseArgumentList()
	if !ok2 {
		return nil
	}
	expr.Arguments = args
	return expr
}

// parseArgumentList parses the arguments of a call, with the opening paren
// as the current token. The empty pair of parentheses is allowed.
func (p *Parser) parseArgumentList() ([]ast.Expression, bool) {
	var args []ast.Expression
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return args, true
	}
	p.nextToken()
	for {
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return args, true
}

// parseIndexExpression parses arr[i] or arr[i, j, ...]. Indexing applies
// to array variables only, so the receiver must be an identifier.
func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	name, ok := left.(*ast.Identifier)
	if !ok {
		p.addError("only an array variable can be indexed")
		return nil
	}
	expr := &ast.IndexExpression{Token: p.curToken, Array: name}
	p.nextToken()
	for {
		idx := p.parseExpression(LOWEST)
		if idx == nil {
			return nil
		}
		expr.Indices = append(expr.Indices, idx)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.expectPeek(token.RBRACK) {
		return nil
	}
	return expr
}

// parseFieldExpression parses rec.field where the receiver is an identifier
// or an array element.
func (p *Parser) parseFieldExpression(left ast.Expression) ast.Expression {
	switch left.(type) {
	case *ast.Identifier, *ast.IndexExpression:
	default:
		p.addError("field access requires a record variable or array element")
		return nil
	}
	expr := &ast.FieldExpression{Token: p.curToken, Receiver: left}
	field := p.expectIdentifier()
	if field == nil {
		return nil
	}
	expr.Field = field.Value
	return expr
}
