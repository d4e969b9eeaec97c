package parser

import (
	"fmt"

	"github.com/cwbudde/go-pascal/internal/ast"
	"github.com/cwbudde/go-pascal/pkg/ident"
	"github.com/cwbudde/go-pascal/pkg/token"
)

// parseStatementListUntil parses statements separated by semicolons until
// one of the stop tokens appears. The current token is the keyword opening
// the list (begin, repeat, initialization); on return the current token is
// the stop token.
func (p *Parser) parseStatementListUntil(stops ...token.TokenType) ([]ast.Statement, bool) {
	isStop := func(t token.TokenType) bool {
		for _, s := range stops {
			if t == s {
				return true
			}
		}
		return false
	}

	var stmts []ast.Statement
	p.nextToken()
	for !isStop(p.curToken.Type) {
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		if p.curTokenIs(token.EOF) {
			p.addError("unexpected end of input")
			return nil, false
		}
		stmt := p.parseStatement()
		if stmt == nil {
			return nil, false
		}
		stmts = append(stmts, stmt)
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
			p.nextToken()
			continue
		}
		if isStop(p.peekToken.Type) {
			p.nextToken()
			continue
		}
		p.peekError(token.SEMICOLON)
		return nil, false
	}
	return stmts, true
}

// parseCompoundStatement parses begin..end. The current token is BEGIN; on
// return it is the matching END.
func (p *Parser) parseCompoundStatement() *ast.CompoundStatement {
	cs := &ast.CompoundStatement{Token: p.curToken}
	stmts, ok := p.parseStatementListUntil(token.END)
	if !ok {
		return nil
	}
	cs.Statements = stmts
	return cs
}

// parseStatement dispatches on the current token. On return the current
// token is the last token of the statement.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.BEGIN:
		cs := p.parseCompoundStatement()
		if cs == nil {
			return nil
		}
		return cs
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.REPEAT:
		return p.parseRepeatStatement()
	case token.CASE:
		return p.parseCaseStatement()
	case token.WITH:
		return p.parseWithStatement()
	case token.GOTO:
		return p.parseGotoStatement()
	case token.NEW:
		return p.parseNewStatement()
	case token.DISPOSE:
		return p.parseDisposeStatement()
	case token.ASSIGN_FILE:
		return p.parseAssignFileStatement()
	case token.RESET:
		return p.parseFileOpStatement(token.RESET)
	case token.REWRITE:
		return p.parseFileOpStatement(token.REWRITE)
	case token.CLOSE:
		return p.parseFileOpStatement(token.CLOSE)
	case token.PAGE, token.GET, token.PUT, token.PACK, token.UNPACK:
		return p.parseUnsupportedStatement()
	case token.IDENT:
		return p.parseIdentifierStatement()
	default:
		p.addError(fmt.Sprintf("unexpected token %s (%q) at start of statement", p.curToken.Type, p.curToken.Literal))
		return nil
	}
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}
	if !p.expectPeek(token.THEN) {
		return nil
	}
	p.nextToken()
	stmt.Then = p.parseStatement()
	if stmt.Then == nil {
		return nil
	}
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		p.nextToken()
		stmt.Else = p.parseStatement()
		if stmt.Else == nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}
	if !p.expectPeek(token.DO) {
		return nil
	}
	p.nextToken()
	stmt.Body = p.parseStatement()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStatement{Token: p.curToken}
	variable := p.expectIdentifier()
	if variable == nil {
		return nil
	}
	stmt.Variable = variable
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.Start = p.parseExpression(LOWEST)
	if stmt.Start == nil {
		return nil
	}
	switch p.peekToken.Type {
	case token.TO:
		p.nextToken()
	case token.DOWNTO:
		p.nextToken()
		stmt.Downto = true
	default:
		p.peekError(token.TO)
		return nil
	}
	p.nextToken()
	stmt.End = p.parseExpression(LOWEST)
	if stmt.End == nil {
		return nil
	}
	if !p.expectPeek(token.DO) {
		return nil
	}
	p.nextToken()
	stmt.Body = p.parseStatement()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseRepeatStatement() ast.Statement {
	stmt := &ast.RepeatStatement{Token: p.curToken}
	body, ok := p.parseStatementListUntil(token.UNTIL)
	if !ok {
		return nil
	}
	stmt.Body = body
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseCaseStatement() ast.Statement {
	stmt := &ast.CaseStatement{Token: p.curToken}
	p.nextToken()
	stmt.Selector = p.parseExpression(LOWEST)
	if stmt.Selector == nil {
		return nil
	}
	if !p.expectPeek(token.OF) {
		return nil
	}

	for !p.peekTokenIs(token.ELSE) && !p.peekTokenIs(token.END) {
		if p.peekTokenIs(token.EOF) {
			p.addError("unexpected end of input in case statement")
			return nil
		}
		branch, ok := p.parseCaseBranch()
		if !ok {
			return nil
		}
		stmt.Branches = append(stmt.Branches, branch)
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
	}

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		p.nextToken()
		stmt.Else = p.parseStatement()
		if stmt.Else == nil {
			return nil
		}
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
	}
	if !p.expectPeek(token.END) {
		return nil
	}
	return stmt
}

// parseCaseBranch parses one arm: labels, a colon and a statement.
func (p *Parser) parseCaseBranch() (ast.CaseBranch, bool) {
	var branch ast.CaseBranch
	p.nextToken()
	for {
		low := p.parseExpression(LOWEST)
		if low == nil {
			return branch, false
		}
		label := ast.CaseLabel{Low: low}
		if p.peekTokenIs(token.DOTDOT) {
			p.nextToken()
			p.nextToken()
			label.High = p.parseExpression(LOWEST)
			if label.High == nil {
				return branch, false
			}
		}
		branch.Labels = append(branch.Labels, label)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.expectPeek(token.COLON) {
		return branch, false
	}
	p.nextToken()
	branch.Body = p.parseStatement()
	if branch.Body == nil {
		return branch, false
	}
	return branch, true
}

func (p *Parser) parseWithStatement() ast.Statement {
	stmt := &ast.WithStatement{Token: p.curToken}
	p.nextToken()
	stmt.Record = p.parseExpression(LOWEST)
	if stmt.Record == nil {
		return nil
	}
	if !p.expectPeek(token.DO) {
		return nil
	}
	p.nextToken()
	stmt.Body = p.parseStatement()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseGotoStatement() ast.Statement {
	stmt := &ast.GotoStatement{Token: p.curToken}
	if p.peekTokenIs(token.IDENT) || p.peekTokenIs(token.INT) {
		p.nextToken()
		stmt.Label = p.curToken.Literal
		return stmt
	}
	p.peekError(token.IDENT)
	return nil
}

func (p *Parser) parseNewStatement() ast.Statement {
	stmt := &ast.NewStatement{Token: p.curToken}
	target, ok := p.parseSingleIdentArg()
	if !ok {
		return nil
	}
	stmt.Target = target
	return stmt
}

func (p *Parser) parseDisposeStatement() ast.Statement {
	stmt := &ast.DisposeStatement{Token: p.curToken}
	target, ok := p.parseSingleIdentArg()
	if !ok {
		return nil
	}
	stmt.Target = target
	return stmt
}

// parseSingleIdentArg parses "( IDENT )" after a builtin keyword.
func (p *Parser) parseSingleIdentArg() (*ast.Identifier, bool) {
	if !p.expectPeek(token.LPAREN) {
		return nil, false
	}
	name := p.expectIdentifier()
	if name == nil {
		return nil, false
	}
	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return name, true
}

func (p *Parser) parseAssignFileStatement() ast.Statement {
	stmt := &ast.AssignFileStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	file := p.expectIdentifier()
	if file == nil {
		return nil
	}
	stmt.File = file
	if !p.expectPeek(token.COMMA) {
		return nil
	}
	p.nextToken()
	stmt.Name = p.parseExpression(LOWEST)
	if stmt.Name == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return stmt
}

func (p *Parser) parseFileOpStatement(op token.TokenType) ast.Statement {
	tok := p.curToken
	file, ok := p.parseSingleIdentArg()
	if !ok {
		return nil
	}
	switch op {
	case token.RESET:
		return &ast.ResetStatement{Token: tok, File: file}
	case token.REWRITE:
		return &ast.RewriteStatement{Token: tok, File: file}
	default:
		return &ast.CloseStatement{Token: tok, File: file}
	}
}

// parseUnsupportedStatement parses the standard-Pascal forms recognized by
// the grammar but rejected at evaluation: page, get, put, pack, unpack.
func (p *Parser) parseUnsupportedStatement() ast.Statement {
	stmt := &ast.UnsupportedStatement{Token: p.curToken, Name: ident.Normalize(p.curToken.Literal)}
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		args, ok := p.parseArgumentList()
		if !ok {
			return nil
		}
		stmt.Arguments = args
	}
	return stmt
}

// parseIdentifierStatement handles statements that start with an
// identifier: write/writeln/read/readln, labeled statements, assignments
// and procedure calls.
func (p *Parser) parseIdentifierStatement() ast.Statement {
	name := p.curToken.Literal
	switch {
	case ident.Equal(name, "writeln"):
		return p.parseWriteStatement(true)
	case ident.Equal(name, "write"):
		return p.parseWriteStatement(false)
	case ident.Equal(name, "readln"):
		return p.parseReadStatement(true)
	case ident.Equal(name, "read"):
		return p.parseReadStatement(false)
	}

	if p.peekTokenIs(token.COLON) {
		stmt := &ast.LabeledStatement{Token: p.curToken, Label: name}
		p.nextToken()
		p.nextToken()
		stmt.Stmt = p.parseStatement()
		if stmt.Stmt == nil {
			return nil
		}
		return stmt
	}

	tok := p.curToken
	lhs := p.parseExpression(LOWEST)
	if lhs == nil {
		return nil
	}

	if call, ok := lhs.(*ast.CallExpression); ok && !p.peekTokenIs(token.ASSIGN) {
		return &ast.ProcedureCallStatement{
			Token:     call.Token,
			Name:      call.Function,
			Arguments: call.Arguments,
		}
	}

	if p.peekTokenIs(token.ASSIGN) {
		switch lhs.(type) {
		case *ast.Identifier, *ast.IndexExpression, *ast.FieldExpression, *ast.DereferenceExpression:
		default:
			p.addErrorAt("invalid assignment target", tok.Pos)
			return nil
		}
		p.nextToken()
		stmt := &ast.AssignmentStatement{Token: p.curToken, Target: lhs}
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
		if stmt.Value == nil {
			return nil
		}
		return stmt
	}

	// A bare identifier is a parameterless procedure call.
	if id, ok := lhs.(*ast.Identifier); ok {
		return &ast.ProcedureCallStatement{Token: id.Token, Name: id}
	}

	p.addErrorAt("expected := or ( after identifier", tok.Pos)
	return nil
}

// parseWriteStatement parses write/writeln to the console or a file. The
// first argument names the file when it is a declared file variable.
func (p *Parser) parseWriteStatement(newline bool) ast.Statement {
	stmt := &ast.WriteStatement{Token: p.curToken, NewLine: newline}
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		args, ok := p.parseArgumentList()
		if !ok {
			return nil
		}
		if len(args) > 0 {
			if id, isIdent := args[0].(*ast.Identifier); isIdent && p.fileVars.Has(id.Value) {
				stmt.File = id
				args = args[1:]
			}
		}
		stmt.Args = args
	}
	return stmt
}

// parseReadStatement parses read/readln from the console or a file. Every
// target must be a plain variable name.
func (p *Parser) parseReadStatement(newline bool) ast.Statement {
	stmt := &ast.ReadStatement{Token: p.curToken, NewLine: newline}
	if !p.peekTokenIs(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	args, ok := p.parseArgumentList()
	if !ok {
		return nil
	}
	for i, arg := range args {
		id, isIdent := arg.(*ast.Identifier)
		if !isIdent {
			p.addErrorAt("read target must be a variable", arg.Pos())
			return nil
		}
		if i == 0 && p.fileVars.Has(id.Value) {
			stmt.File = id
			continue
		}
		stmt.Targets = append(stmt.Targets, id)
	}
	return stmt
}
