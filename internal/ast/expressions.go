package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-pascal/pkg/token"
)

// BinaryExpression represents a binary operator applied to two operands.
// Examples: a + b, x * 2, s = 'done', i <= n.
type BinaryExpression struct {
	Left     Expression
	Right    Expression
	Token    token.Token // the operator token
	Operator token.TokenType
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpression) Pos() token.Position  { return be.Token.Pos }
func (be *BinaryExpression) String() string {
	return "(" + be.Left.String() + " " + be.Token.Literal + " " + be.Right.String() + ")"
}

// UnaryExpression represents a prefix operator applied to a single operand.
// Examples: -x, not done, +n.
type UnaryExpression struct {
	Operand  Expression
	Token    token.Token
	Operator token.TokenType
}

func (ue *UnaryExpression) expressionNode()      {}
func (ue *UnaryExpression) TokenLiteral() string { return ue.Token.Literal }
func (ue *UnaryExpression) Pos() token.Position  { return ue.Token.Pos }
func (ue *UnaryExpression) String() string {
	op := ue.Token.Literal
	if ue.Operator == token.NOT {
		op += " "
	}
	return "(" + op + ue.Operand.String() + ")"
}

// InExpression represents a set-membership test: x in [1, 2, 3].
type InExpression struct {
	Left  Expression
	Set   Expression
	Token token.Token // the IN token
}

func (ie *InExpression) expressionNode()      {}
func (ie *InExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InExpression) Pos() token.Position  { return ie.Token.Pos }
func (ie *InExpression) String() string {
	return "(" + ie.Left.String() + " in " + ie.Set.String() + ")"
}

// CallExpression represents a function call: F(5), Max(a, b).
type CallExpression struct {
	Function  *Identifier
	Arguments []Expression
	Token     token.Token
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) Pos() token.Position  { return ce.Token.Pos }
func (ce *CallExpression) String() string {
	var out bytes.Buffer
	out.WriteString(ce.Function.String())
	out.WriteString("(")
	args := make([]string, 0, len(ce.Arguments))
	for _, arg := range ce.Arguments {
		args = append(args, arg.String())
	}
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}

// IndexExpression represents an array element access with one or more
// indices: arr[i], grid[row, col].
type IndexExpression struct {
	Array   *Identifier
	Indices []Expression
	Token   token.Token
}

func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpression) Pos() token.Position  { return ie.Token.Pos }
func (ie *IndexExpression) String() string {
	var out bytes.Buffer
	out.WriteString(ie.Array.String())
	out.WriteString("[")
	idx := make([]string, 0, len(ie.Indices))
	for _, e := range ie.Indices {
		idx = append(idx, e.String())
	}
	out.WriteString(strings.Join(idx, ", "))
	out.WriteString("]")
	return out.String()
}

// FieldExpression represents a record field access. The receiver is either
// an identifier (point.x) or an array element (points[i].x).
type FieldExpression struct {
	Receiver Expression
	Field    string
	Token    token.Token // the DOT token
}

func (fe *FieldExpression) expressionNode()      {}
func (fe *FieldExpression) TokenLiteral() string { return fe.Token.Literal }
func (fe *FieldExpression) Pos() token.Position  { return fe.Token.Pos }
func (fe *FieldExpression) String() string {
	return fe.Receiver.String() + "." + fe.Field
}

// DereferenceExpression represents a pointer dereference: p^.
type DereferenceExpression struct {
	Operand Expression
	Token   token.Token // the CARET token
}

func (de *DereferenceExpression) expressionNode()      {}
func (de *DereferenceExpression) TokenLiteral() string { return de.Token.Literal }
func (de *DereferenceExpression) Pos() token.Position  { return de.Token.Pos }
func (de *DereferenceExpression) String() string {
	return de.Operand.String() + "^"
}

// AddressOfExpression represents taking the address of a variable: @x.
type AddressOfExpression struct {
	Operand *Identifier
	Token   token.Token // the AT token
}

func (ae *AddressOfExpression) expressionNode()      {}
func (ae *AddressOfExpression) TokenLiteral() string { return ae.Token.Literal }
func (ae *AddressOfExpression) Pos() token.Position  { return ae.Token.Pos }
func (ae *AddressOfExpression) String() string {
	return "@" + ae.Operand.String()
}

// SetLiteral represents a set constructor: [1, 2, 3] or ['a', c].
type SetLiteral struct {
	Elements []Expression
	Token    token.Token // the LBRACK token
}

func (sl *SetLiteral) expressionNode()      {}
func (sl *SetLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *SetLiteral) Pos() token.Position  { return sl.Token.Pos }
func (sl *SetLiteral) String() string {
	elems := make([]string, 0, len(sl.Elements))
	for _, e := range sl.Elements {
		elems = append(elems, e.String())
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// EofExpression represents the end-of-file test on a file variable: eof(f).
type EofExpression struct {
	File  *Identifier
	Token token.Token // the EOF_FN token
}

func (ee *EofExpression) expressionNode()      {}
func (ee *EofExpression) TokenLiteral() string { return ee.Token.Literal }
func (ee *EofExpression) Pos() token.Position  { return ee.Token.Pos }
func (ee *EofExpression) String() string {
	return "eof(" + ee.File.String() + ")"
}
