package parser

import (
	"github.com/cwbudde/go-pascal/internal/ast"
	"github.com/cwbudde/go-pascal/pkg/token"
)

// ParseProgram parses a complete program:
//
//	program IDENT ';' [uses-clause] {type|var|routine section} block '.'
//
// Returns nil when parsing fails; the errors are available via Errors.
func (p *Parser) ParseProgram() *ast.Program {
	if !p.curTokenIs(token.PROGRAM) {
		p.addError("expected program")
		return nil
	}
	prog := &ast.Program{Token: p.curToken}

	name := p.expectIdentifier()
	if name == nil {
		return nil
	}
	prog.Name = name.Value
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}

	if p.peekTokenIs(token.USES) {
		p.nextToken()
		uses, ok := p.parseUsesClause()
		if !ok {
			return nil
		}
		prog.Uses = uses
	}

	var sec ast.UnitSection
	if !p.parseDeclSections(&sec, true) {
		return nil
	}

	if !p.expectPeek(token.BEGIN) {
		return nil
	}
	body := p.parseCompoundStatement()
	if body == nil {
		return nil
	}
	prog.Body = body
	if !p.expectPeek(token.DOT) {
		return nil
	}

	copySection(&sec, prog)
	return prog
}

// ParseUnit parses a complete unit:
//
//	unit IDENT ';' interface [uses-clause] {decls | routine-header}
//	implementation {decls | routine-decl}
//	[initialization stmts] [finalization stmts] end '.'
func (p *Parser) ParseUnit() *ast.Unit {
	if !p.curTokenIs(token.UNIT) {
		p.addError("expected unit")
		return nil
	}
	unit := &ast.Unit{Token: p.curToken}

	name := p.expectIdentifier()
	if name == nil {
		return nil
	}
	unit.Name = name.Value
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	if !p.expectPeek(token.INTERFACE) {
		return nil
	}

	if p.peekTokenIs(token.USES) {
		p.nextToken()
		uses, ok := p.parseUsesClause()
		if !ok {
			return nil
		}
		unit.Uses = uses
	}

	if !p.parseInterfaceSections(&unit.Interface) {
		return nil
	}

	if !p.expectPeek(token.IMPLEMENTATION) {
		return nil
	}
	if !p.parseDeclSections(&unit.Implementation, false) {
		return nil
	}

	switch p.peekToken.Type {
	case token.INITIALIZATION:
		p.nextToken()
		tok := p.curToken
		stmts, ok := p.parseStatementListUntil(token.FINALIZATION, token.END)
		if !ok {
			return nil
		}
		unit.Initialization = &ast.CompoundStatement{Token: tok, Statements: stmts}
		if p.curTokenIs(token.FINALIZATION) {
			tok := p.curToken
			stmts, ok := p.parseStatementListUntil(token.END)
			if !ok {
				return nil
			}
			unit.Finalization = &ast.CompoundStatement{Token: tok, Statements: stmts}
		}
	case token.FINALIZATION:
		p.nextToken()
		tok := p.curToken
		stmts, ok := p.parseStatementListUntil(token.END)
		if !ok {
			return nil
		}
		unit.Finalization = &ast.CompoundStatement{Token: tok, Statements: stmts}
	default:
		if !p.expectPeek(token.END) {
			return nil
		}
	}

	if !p.curTokenIs(token.END) {
		p.addError("expected end")
		return nil
	}
	if !p.expectPeek(token.DOT) {
		return nil
	}
	return unit
}

// parseUsesClause parses the unit name list after the USES keyword, leaving
// the current token on the trailing semicolon.
func (p *Parser) parseUsesClause() ([]string, bool) {
	names, _, ok := p.parseNameList()
	if !ok {
		return nil, false
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil, false
	}
	return names, true
}

// parseDeclSections parses a run of type/var/routine sections into sec. For
// a program the run ends at BEGIN; for a unit implementation it ends at
// initialization/finalization/end.
func (p *Parser) parseDeclSections(sec *ast.UnitSection, program bool) bool {
	for {
		switch p.peekToken.Type {
		case token.TYPE:
			p.nextToken()
			if !p.parseTypeSection(sec) {
				return false
			}
		case token.VAR:
			p.nextToken()
			if !p.parseVarSection(sec) {
				return false
			}
		case token.PROCEDURE:
			p.nextToken()
			d := p.parseProcDecl(true)
			if d == nil {
				return false
			}
			sec.Procs = append(sec.Procs, d)
		case token.FUNCTION:
			p.nextToken()
			d := p.parseFuncDecl(true)
			if d == nil {
				return false
			}
			sec.Funcs = append(sec.Funcs, d)
		default:
			if program && !p.peekTokenIs(token.BEGIN) {
				p.peekError(token.BEGIN)
				return false
			}
			return true
		}
	}
}

// parseInterfaceSections parses a unit's interface part: type and var
// sections plus routine headers without bodies.
func (p *Parser) parseInterfaceSections(sec *ast.UnitSection) bool {
	for {
		switch p.peekToken.Type {
		case token.TYPE:
			p.nextToken()
			if !p.parseTypeSection(sec) {
				return false
			}
		case token.VAR:
			p.nextToken()
			if !p.parseVarSection(sec) {
				return false
			}
		case token.PROCEDURE:
			p.nextToken()
			d := p.parseProcDecl(false)
			if d == nil {
				return false
			}
			sec.Procs = append(sec.Procs, d)
		case token.FUNCTION:
			p.nextToken()
			d := p.parseFuncDecl(false)
			if d == nil {
				return false
			}
			sec.Funcs = append(sec.Funcs, d)
		default:
			return true
		}
	}
}

// copySection moves a parsed declaration section into the program node.
func copySection(sec *ast.UnitSection, prog *ast.Program) {
	prog.RecordTypes = sec.RecordTypes
	prog.EnumTypes = sec.EnumTypes
	prog.Vars = sec.Vars
	prog.ArrayVars = sec.ArrayVars
	prog.RecordVars = sec.RecordVars
	prog.FileVars = sec.FileVars
	prog.PointerVars = sec.PointerVars
	prog.SetVars = sec.SetVars
	prog.Procs = sec.Procs
	prog.Funcs = sec.Funcs
}
