package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-pascal/pkg/token"
)

// Program is the root node of a parsed Pascal program. Declarations are
// grouped by kind so the evaluator can install each category directly into
// its runtime table.
type Program struct {
	Name        string
	Uses        []string
	RecordTypes []*RecordTypeDecl
	EnumTypes   []*EnumTypeDecl
	Vars        []*VarDecl
	ArrayVars   []*ArrayVarDecl
	RecordVars  []*RecordVarDecl
	FileVars    []*FileVarDecl
	PointerVars []*PointerVarDecl
	SetVars     []*SetVarDecl
	Procs       []*ProcDecl
	Funcs       []*FuncDecl
	Body        *CompoundStatement
	Token       token.Token // the PROGRAM token
}

func (p *Program) TokenLiteral() string { return p.Token.Literal }
func (p *Program) Pos() token.Position  { return p.Token.Pos }
func (p *Program) String() string {
	var out bytes.Buffer
	out.WriteString("program " + p.Name + "; ")
	if len(p.Uses) > 0 {
		out.WriteString("uses " + strings.Join(p.Uses, ", ") + "; ")
	}
	if p.Body != nil {
		out.WriteString(p.Body.String())
	}
	out.WriteString(".")
	return out.String()
}

// UnitSection holds the declarations of a unit's interface or
// implementation part. Interface routines carry headers only (nil bodies)
// until the implementation supplies them.
type UnitSection struct {
	RecordTypes []*RecordTypeDecl
	EnumTypes   []*EnumTypeDecl
	Vars        []*VarDecl
	ArrayVars   []*ArrayVarDecl
	RecordVars  []*RecordVarDecl
	FileVars    []*FileVarDecl
	PointerVars []*PointerVarDecl
	SetVars     []*SetVarDecl
	Procs       []*ProcDecl
	Funcs       []*FuncDecl
}

// Unit is the root node of a parsed Pascal unit.
type Unit struct {
	Name           string
	Uses           []string
	Interface      UnitSection
	Implementation UnitSection
	Initialization *CompoundStatement // nil when absent
	Finalization   *CompoundStatement // nil when absent
	Token          token.Token        // the UNIT token
}

func (u *Unit) TokenLiteral() string { return u.Token.Literal }
func (u *Unit) Pos() token.Position  { return u.Token.Pos }
func (u *Unit) String() string {
	var out bytes.Buffer
	out.WriteString("unit " + u.Name + "; interface ")
	if len(u.Uses) > 0 {
		out.WriteString("uses " + strings.Join(u.Uses, ", ") + "; ")
	}
	out.WriteString("implementation ")
	if u.Initialization != nil {
		out.WriteString("initialization ")
	}
	if u.Finalization != nil {
		out.WriteString("finalization ")
	}
	out.WriteString("end.")
	return out.String()
}
