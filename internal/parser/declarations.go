package parser

import (
	"fmt"
	"strconv"

	"github.com/cwbudde/go-pascal/internal/ast"
	"github.com/cwbudde/go-pascal/pkg/token"
)

// parseNameList parses a comma-separated identifier list, starting with the
// peek token. Returns the names and the token of the first one.
func (p *Parser) parseNameList() ([]string, token.Token, bool) {
	first := p.expectIdentifier()
	if first == nil {
		return nil, token.Token{}, false
	}
	names := []string{first.Value}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		next := p.expectIdentifier()
		if next == nil {
			return nil, token.Token{}, false
		}
		names = append(names, next.Value)
	}
	return names, first.Token, true
}

// parseTypeSection parses a type section into sec. The current token is the
// TYPE keyword; on return the current token is the final semicolon of the
// section.
func (p *Parser) parseTypeSection(sec *ast.UnitSection) bool {
	for p.peekTokenIs(token.IDENT) {
		name := p.expectIdentifier()
		if name == nil {
			return false
		}
		if !p.expectPeek(token.EQ) {
			return false
		}
		switch p.peekToken.Type {
		case token.RECORD:
			p.nextToken()
			fields, ok := p.parseRecordFields()
			if !ok {
				return false
			}
			sec.RecordTypes = append(sec.RecordTypes, &ast.RecordTypeDecl{
				Name:   name.Value,
				Fields: fields,
				Token:  name.Token,
			})
			p.recordTypes.Set(name.Value, true)
		case token.LPAREN:
			p.nextToken()
			members, ok := p.parseEnumMembers()
			if !ok {
				return false
			}
			sec.EnumTypes = append(sec.EnumTypes, &ast.EnumTypeDecl{
				Name:    name.Value,
				Members: members,
				Token:   name.Token,
			})
		default:
			p.peekError(token.RECORD)
			return false
		}
		if !p.expectPeek(token.SEMICOLON) {
			return false
		}
	}
	return true
}

// parseRecordFields parses the field list of a record type. The current
// token is the RECORD keyword; on return it is the closing END.
func (p *Parser) parseRecordFields() ([]ast.RecordField, bool) {
	var fields []ast.RecordField
	for p.peekTokenIs(token.IDENT) {
		names, _, ok := p.parseNameList()
		if !ok {
			return nil, false
		}
		if !p.expectPeek(token.COLON) {
			return nil, false
		}
		typeName := p.expectIdentifier()
		if typeName == nil {
			return nil, false
		}
		fields = append(fields, ast.RecordField{Names: names, TypeName: typeName.Value})
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
	}
	if !p.expectPeek(token.END) {
		return nil, false
	}
	return fields, true
}

// parseEnumMembers parses the member list of an enumerated type. The
// current token is the opening paren; on return it is the closing paren.
func (p *Parser) parseEnumMembers() ([]string, bool) {
	members, _, ok := p.parseNameList()
	if !ok {
		return nil, false
	}
	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return members, true
}

// parseVarSection parses a var section into sec. The current token is the
// VAR keyword; on return the current token is the final semicolon.
func (p *Parser) parseVarSection(sec *ast.UnitSection) bool {
	for p.peekTokenIs(token.IDENT) {
		names, first, ok := p.parseNameList()
		if !ok {
			return false
		}
		if !p.expectPeek(token.COLON) {
			return false
		}
		if !p.parseVarGroup(sec, names, first) {
			return false
		}
		if !p.expectPeek(token.SEMICOLON) {
			return false
		}
	}
	return true
}

// parseVarGroup parses the type part of one var group and appends the
// resulting declaration to sec.
func (p *Parser) parseVarGroup(sec *ast.UnitSection, names []string, first token.Token) bool {
	switch p.peekToken.Type {
	case token.ARRAY:
		p.nextToken()
		dims, elem, ok := p.parseArrayType()
		if !ok {
			return false
		}
		sec.ArrayVars = append(sec.ArrayVars, &ast.ArrayVarDecl{
			Names:       names,
			Dims:        dims,
			ElementType: elem,
			Token:       first,
		})

	case token.RECORD:
		p.nextToken()
		fields, ok := p.parseRecordFields()
		if !ok {
			return false
		}
		sec.RecordVars = append(sec.RecordVars, &ast.RecordVarDecl{
			Names:  names,
			Fields: fields,
			Token:  first,
		})

	case token.CARET:
		p.nextToken()
		pointed := p.expectIdentifier()
		if pointed == nil {
			return false
		}
		sec.PointerVars = append(sec.PointerVars, &ast.PointerVarDecl{
			Names:       names,
			PointedType: pointed.Value,
			Token:       first,
		})

	case token.SET:
		p.nextToken()
		if !p.expectPeek(token.OF) {
			return false
		}
		elem := p.expectIdentifier()
		if elem == nil {
			return false
		}
		sec.SetVars = append(sec.SetVars, &ast.SetVarDecl{
			Names:       names,
			ElementType: elem.Value,
			Token:       first,
		})

	case token.TEXT:
		p.nextToken()
		sec.FileVars = append(sec.FileVars, &ast.FileVarDecl{
			Names:  names,
			IsText: true,
			Token:  first,
		})
		p.registerFileVars(names)

	case token.FILE:
		p.nextToken()
		if !p.expectPeek(token.OF) {
			return false
		}
		elem := p.expectIdentifier()
		if elem == nil {
			return false
		}
		sec.FileVars = append(sec.FileVars, &ast.FileVarDecl{
			Names:       names,
			ElementType: elem.Value,
			Token:       first,
		})
		p.registerFileVars(names)

	case token.IDENT:
		p.nextToken()
		typeName := p.curToken.Literal
		if p.recordTypes.Has(typeName) {
			sec.RecordVars = append(sec.RecordVars, &ast.RecordVarDecl{
				Names:    names,
				TypeName: typeName,
				Token:    first,
			})
		} else {
			sec.Vars = append(sec.Vars, &ast.VarDecl{
				Names:    names,
				TypeName: typeName,
				Token:    first,
			})
		}

	default:
		p.addErrorAt(fmt.Sprintf("expected a type, got %s (%q)", p.peekToken.Type, p.peekToken.Literal), p.peekToken.Pos)
		return false
	}
	return true
}

func (p *Parser) registerFileVars(names []string) {
	for _, name := range names {
		p.fileVars.Set(name, true)
	}
}

// parseArrayType parses `[lo..hi {, lo..hi}] of typeName`. The current
// token is the ARRAY keyword.
func (p *Parser) parseArrayType() ([]ast.Range, string, bool) {
	if !p.expectPeek(token.LBRACK) {
		return nil, "", false
	}
	var dims []ast.Range
	for {
		lo, ok := p.parseBound()
		if !ok {
			return nil, "", false
		}
		if !p.expectPeek(token.DOTDOT) {
			return nil, "", false
		}
		hi, ok := p.parseBound()
		if !ok {
			return nil, "", false
		}
		dims = append(dims, ast.Range{Low: lo, High: hi})
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RBRACK) {
		return nil, "", false
	}
	if !p.expectPeek(token.OF) {
		return nil, "", false
	}
	elem := p.expectIdentifier()
	if elem == nil {
		return nil, "", false
	}
	return dims, elem.Value, true
}

// parseBound parses one array bound: an integer literal with an optional
// leading minus.
func (p *Parser) parseBound() (int64, bool) {
	negative := false
	if p.peekTokenIs(token.MINUS) {
		p.nextToken()
		negative = true
	}
	if !p.expectPeek(token.INT) {
		return 0, false
	}
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addError(fmt.Sprintf("could not parse %q as integer", p.curToken.Literal))
		return 0, false
	}
	if negative {
		value = -value
	}
	return value, true
}

// parseParamList parses an optional parenthesized parameter list. The
// current token is the routine name; on return it is the closing paren
// (or still the name when no list is present). An empty pair of
// parentheses is equivalent to no parameters.
func (p *Parser) parseParamList() ([]*ast.Param, bool) {
	if !p.peekTokenIs(token.LPAREN) {
		return nil, true
	}
	p.nextToken()
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return nil, true
	}

	var params []*ast.Param
	for {
		byRef := false
		if p.peekTokenIs(token.VAR) {
			p.nextToken()
			byRef = true
		}
		names, _, ok := p.parseNameList()
		if !ok {
			return nil, false
		}
		if !p.expectPeek(token.COLON) {
			return nil, false
		}
		typeName := p.expectIdentifier()
		if typeName == nil {
			return nil, false
		}
		params = append(params, &ast.Param{Names: names, TypeName: typeName.Value, ByRef: byRef})
		if !p.peekTokenIs(token.SEMICOLON) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return params, true
}

// parseProcDecl parses a procedure declaration. The current token is the
// PROCEDURE keyword. With withBody false only the header is parsed (unit
// interface sections); on return the current token is the final semicolon.
func (p *Parser) parseProcDecl(withBody bool) *ast.ProcDecl {
	tok := p.curToken
	name := p.expectIdentifier()
	if name == nil {
		return nil
	}
	params, ok := p.parseParamList()
	if !ok {
		return nil
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	decl := &ast.ProcDecl{Name: name.Value, Params: params, Token: tok}
	if !withBody {
		return decl
	}
	if !p.parseRoutineBody(&decl.LocalVars, &decl.NestedProcs, &decl.NestedFuncs, &decl.Body) {
		return nil
	}
	return decl
}

// parseFuncDecl parses a function declaration. The current token is the
// FUNCTION keyword.
func (p *Parser) parseFuncDecl(withBody bool) *ast.FuncDecl {
	tok := p.curToken
	name := p.expectIdentifier()
	if name == nil {
		return nil
	}
	params, ok := p.parseParamList()
	if !ok {
		return nil
	}
	if !p.expectPeek(token.COLON) {
		return nil
	}
	returnType := p.expectIdentifier()
	if returnType == nil {
		return nil
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	decl := &ast.FuncDecl{
		Name:       name.Value,
		Params:     params,
		ReturnType: returnType.Value,
		Token:      tok,
	}
	if !withBody {
		return decl
	}
	if !p.parseRoutineBody(&decl.LocalVars, &decl.NestedProcs, &decl.NestedFuncs, &decl.Body) {
		return nil
	}
	return decl
}

// parseRoutineBody parses the local declarations and begin..end body of a
// routine, leaving the current token on the semicolon after the body.
func (p *Parser) parseRoutineBody(locals *[]ast.Declaration, procs *[]*ast.ProcDecl, funcs *[]*ast.FuncDecl, body **ast.CompoundStatement) bool {
	for {
		switch p.peekToken.Type {
		case token.VAR:
			p.nextToken()
			var scratch ast.UnitSection
			if !p.parseVarSection(&scratch) {
				return false
			}
			*locals = append(*locals, flattenVarDecls(&scratch)...)
		case token.PROCEDURE:
			p.nextToken()
			nested := p.parseProcDecl(true)
			if nested == nil {
				return false
			}
			*procs = append(*procs, nested)
		case token.FUNCTION:
			p.nextToken()
			nested := p.parseFuncDecl(true)
			if nested == nil {
				return false
			}
			*funcs = append(*funcs, nested)
		case token.BEGIN:
			p.nextToken()
			b := p.parseCompoundStatement()
			if b == nil {
				return false
			}
			*body = b
			if !p.expectPeek(token.SEMICOLON) {
				return false
			}
			return true
		default:
			p.peekError(token.BEGIN)
			return false
		}
	}
}

// flattenVarDecls converts a scratch section's variable declarations into
// the ordered declaration list used for routine locals.
func flattenVarDecls(sec *ast.UnitSection) []ast.Declaration {
	var decls []ast.Declaration
	for _, d := range sec.Vars {
		decls = append(decls, d)
	}
	for _, d := range sec.ArrayVars {
		decls = append(decls, d)
	}
	for _, d := range sec.RecordVars {
		decls = append(decls, d)
	}
	for _, d := range sec.FileVars {
		decls = append(decls, d)
	}
	for _, d := range sec.PointerVars {
		decls = append(decls, d)
	}
	for _, d := range sec.SetVars {
		decls = append(decls, d)
	}
	return decls
}
