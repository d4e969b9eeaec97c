package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/cwbudde/go-pascal/pkg/token"
)

// VarDecl declares one or more variables of a simple or user-defined type.
// Example: var x, y: integer;
type VarDecl struct {
	Names    []string
	TypeName string
	Token    token.Token // the first name token
}

func (d *VarDecl) declarationNode()     {}
func (d *VarDecl) TokenLiteral() string { return d.Token.Literal }
func (d *VarDecl) Pos() token.Position  { return d.Token.Pos }
func (d *VarDecl) String() string {
	return strings.Join(d.Names, ", ") + ": " + d.TypeName
}

// Range is one dimension bound of an array declaration: lo..hi.
type Range struct {
	Low  int64
	High int64
}

func (r Range) String() string {
	return strconv.FormatInt(r.Low, 10) + ".." + strconv.FormatInt(r.High, 10)
}

// Size returns the number of cells in the range, or 0 when empty.
func (r Range) Size() int64 {
	if r.High < r.Low {
		return 0
	}
	return r.High - r.Low + 1
}

// ArrayVarDecl declares one or more array variables.
// Example: var grid: array[1..3, 1..4] of integer;
type ArrayVarDecl struct {
	Names       []string
	Dims        []Range
	ElementType string
	Token       token.Token
}

func (d *ArrayVarDecl) declarationNode()     {}
func (d *ArrayVarDecl) TokenLiteral() string { return d.Token.Literal }
func (d *ArrayVarDecl) Pos() token.Position  { return d.Token.Pos }
func (d *ArrayVarDecl) String() string {
	dims := make([]string, 0, len(d.Dims))
	for _, r := range d.Dims {
		dims = append(dims, r.String())
	}
	return strings.Join(d.Names, ", ") + ": array[" + strings.Join(dims, ", ") + "] of " + d.ElementType
}

// RecordField is a field group in a record type: names sharing one type.
type RecordField struct {
	Names    []string
	TypeName string
}

func (f RecordField) String() string {
	return strings.Join(f.Names, ", ") + ": " + f.TypeName
}

// RecordTypeDecl declares a named record type.
// Example: type TPoint = record x, y: integer end;
type RecordTypeDecl struct {
	Name   string
	Fields []RecordField
	Token  token.Token
}

func (d *RecordTypeDecl) declarationNode()     {}
func (d *RecordTypeDecl) TokenLiteral() string { return d.Token.Literal }
func (d *RecordTypeDecl) Pos() token.Position  { return d.Token.Pos }
func (d *RecordTypeDecl) String() string {
	var out bytes.Buffer
	out.WriteString(d.Name)
	out.WriteString(" = record ")
	fields := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		fields = append(fields, f.String())
	}
	out.WriteString(strings.Join(fields, "; "))
	out.WriteString(" end")
	return out.String()
}

// RecordVarDecl declares one or more record variables. The record type is
// either named (TypeName) or given inline (Fields).
type RecordVarDecl struct {
	Names    []string
	TypeName string // empty for inline record types
	Fields   []RecordField
	Token    token.Token
}

func (d *RecordVarDecl) declarationNode()     {}
func (d *RecordVarDecl) TokenLiteral() string { return d.Token.Literal }
func (d *RecordVarDecl) Pos() token.Position  { return d.Token.Pos }
func (d *RecordVarDecl) String() string {
	if d.TypeName != "" {
		return strings.Join(d.Names, ", ") + ": " + d.TypeName
	}
	fields := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		fields = append(fields, f.String())
	}
	return strings.Join(d.Names, ", ") + ": record " + strings.Join(fields, "; ") + " end"
}

// EnumTypeDecl declares an enumerated type.
// Example: type TColor = (Red, Green, Blue);
type EnumTypeDecl struct {
	Name    string
	Members []string
	Token   token.Token
}

func (d *EnumTypeDecl) declarationNode()     {}
func (d *EnumTypeDecl) TokenLiteral() string { return d.Token.Literal }
func (d *EnumTypeDecl) Pos() token.Position  { return d.Token.Pos }
func (d *EnumTypeDecl) String() string {
	return d.Name + " = (" + strings.Join(d.Members, ", ") + ")"
}

// PointerVarDecl declares one or more pointer variables.
// Example: var p: ^integer;
type PointerVarDecl struct {
	Names       []string
	PointedType string
	Token       token.Token
}

func (d *PointerVarDecl) declarationNode()     {}
func (d *PointerVarDecl) TokenLiteral() string { return d.Token.Literal }
func (d *PointerVarDecl) Pos() token.Position  { return d.Token.Pos }
func (d *PointerVarDecl) String() string {
	return strings.Join(d.Names, ", ") + ": ^" + d.PointedType
}

// SetVarDecl declares one or more set variables.
// Example: var digits: set of integer;
type SetVarDecl struct {
	Names       []string
	ElementType string
	Token       token.Token
}

func (d *SetVarDecl) declarationNode()     {}
func (d *SetVarDecl) TokenLiteral() string { return d.Token.Literal }
func (d *SetVarDecl) Pos() token.Position  { return d.Token.Pos }
func (d *SetVarDecl) String() string {
	return strings.Join(d.Names, ", ") + ": set of " + d.ElementType
}

// FileVarDecl declares one or more file variables, either text files or
// typed files (file of T).
type FileVarDecl struct {
	Names       []string
	ElementType string // empty for text files
	Token       token.Token
	IsText      bool
}

func (d *FileVarDecl) declarationNode()     {}
func (d *FileVarDecl) TokenLiteral() string { return d.Token.Literal }
func (d *FileVarDecl) Pos() token.Position  { return d.Token.Pos }
func (d *FileVarDecl) String() string {
	if d.IsText {
		return strings.Join(d.Names, ", ") + ": text"
	}
	return strings.Join(d.Names, ", ") + ": file of " + d.ElementType
}

// Param is one parameter group of a routine: comma-separated names sharing
// a type, optionally by reference.
type Param struct {
	Names    []string
	TypeName string
	ByRef    bool
}

func (p *Param) String() string {
	s := strings.Join(p.Names, ", ") + ": " + p.TypeName
	if p.ByRef {
		return "var " + s
	}
	return s
}

// ParamNames returns every formal parameter name in declaration order,
// expanding the comma-separated groups.
func ParamNames(params []*Param) []string {
	var names []string
	for _, p := range params {
		names = append(names, p.Names...)
	}
	return names
}

// ProcDecl declares a procedure, possibly with nested routines.
type ProcDecl struct {
	Name        string
	Params      []*Param
	LocalVars   []Declaration
	NestedProcs []*ProcDecl
	NestedFuncs []*FuncDecl
	Body        *CompoundStatement
	Token       token.Token
}

func (d *ProcDecl) declarationNode()     {}
func (d *ProcDecl) TokenLiteral() string { return d.Token.Literal }
func (d *ProcDecl) Pos() token.Position  { return d.Token.Pos }
func (d *ProcDecl) String() string {
	return "procedure " + d.Name + formatParams(d.Params)
}

// FuncDecl declares a function, possibly with nested routines.
type FuncDecl struct {
	Name        string
	Params      []*Param
	ReturnType  string
	LocalVars   []Declaration
	NestedProcs []*ProcDecl
	NestedFuncs []*FuncDecl
	Body        *CompoundStatement
	Token       token.Token
}

func (d *FuncDecl) declarationNode()     {}
func (d *FuncDecl) TokenLiteral() string { return d.Token.Literal }
func (d *FuncDecl) Pos() token.Position  { return d.Token.Pos }
func (d *FuncDecl) String() string {
	return "function " + d.Name + formatParams(d.Params) + ": " + d.ReturnType
}

func formatParams(params []*Param) string {
	if len(params) == 0 {
		return ""
	}
	groups := make([]string, 0, len(params))
	for _, p := range params {
		groups = append(groups, p.String())
	}
	return "(" + strings.Join(groups, "; ") + ")"
}
