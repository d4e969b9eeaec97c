package ast

import (
	"testing"

	"github.com/cwbudde/go-pascal/pkg/token"
)

func ident(name string) *Identifier {
	return &Identifier{
		Token: token.NewToken(token.IDENT, name, token.Position{Line: 1, Column: 1}),
		Value: name,
	}
}

func intLit(n int64, lit string) *IntegerLiteral {
	return &IntegerLiteral{
		Token: token.NewToken(token.INT, lit, token.Position{Line: 1, Column: 1}),
		Value: n,
	}
}

func TestExpressionStrings(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		expected string
	}{
		{
			"binary",
			&BinaryExpression{
				Left:     intLit(5, "5"),
				Right:    intLit(3, "3"),
				Token:    token.NewToken(token.PLUS, "+", token.Position{}),
				Operator: token.PLUS,
			},
			"(5 + 3)",
		},
		{
			"unary not",
			&UnaryExpression{
				Operand:  ident("done"),
				Token:    token.NewToken(token.NOT, "not", token.Position{}),
				Operator: token.NOT,
			},
			"(not done)",
		},
		{
			"call",
			&CallExpression{
				Function:  ident("Max"),
				Arguments: []Expression{ident("a"), ident("b")},
			},
			"Max(a, b)",
		},
		{
			"index",
			&IndexExpression{
				Array:   ident("grid"),
				Indices: []Expression{intLit(1, "1"), intLit(2, "2")},
			},
			"grid[1, 2]",
		},
		{
			"field on element",
			&FieldExpression{
				Receiver: &IndexExpression{Array: ident("pts"), Indices: []Expression{intLit(1, "1")}},
				Field:    "x",
			},
			"pts[1].x",
		},
		{
			"dereference",
			&DereferenceExpression{Operand: ident("p")},
			"p^",
		},
		{
			"address of",
			&AddressOfExpression{Operand: ident("x")},
			"@x",
		},
		{
			"set literal",
			&SetLiteral{Elements: []Expression{intLit(1, "1"), intLit(2, "2")}},
			"[1, 2]",
		},
		{
			"eof",
			&EofExpression{File: ident("f")},
			"eof(f)",
		},
		{
			"in",
			&InExpression{
				Left:  ident("x"),
				Set:   &SetLiteral{Elements: []Expression{intLit(1, "1")}},
				Token: token.NewToken(token.IN, "in", token.Position{}),
			},
			"(x in [1])",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestStatementStrings(t *testing.T) {
	assign := &AssignmentStatement{
		Target: ident("x"),
		Value:  intLit(5, "5"),
	}
	if got := assign.String(); got != "x := 5" {
		t.Errorf("assignment String() = %q", got)
	}

	forStmt := &ForStatement{
		Variable: ident("i"),
		Start:    intLit(1, "1"),
		End:      intLit(10, "10"),
		Body:     assign,
		Downto:   true,
	}
	if got := forStmt.String(); got != "for i := 1 downto 10 do x := 5" {
		t.Errorf("for String() = %q", got)
	}

	w := &WriteStatement{File: ident("f"), Args: []Expression{ident("x")}, NewLine: true}
	if got := w.String(); got != "writeln(f, x)" {
		t.Errorf("writeln String() = %q", got)
	}
}

func TestRangeSize(t *testing.T) {
	tests := []struct {
		r    Range
		size int64
	}{
		{Range{Low: 1, High: 10}, 10},
		{Range{Low: 0, High: 0}, 1},
		{Range{Low: -3, High: 3}, 7},
		{Range{Low: 5, High: 1}, 0},
	}
	for _, tt := range tests {
		if got := tt.r.Size(); got != tt.size {
			t.Errorf("Range%s.Size() = %d, want %d", tt.r, got, tt.size)
		}
	}
}

func TestParamNames(t *testing.T) {
	params := []*Param{
		{Names: []string{"a", "b"}, TypeName: "integer"},
		{Names: []string{"s"}, TypeName: "string", ByRef: true},
	}
	names := ParamNames(params)
	want := []string{"a", "b", "s"}
	if len(names) != len(want) {
		t.Fatalf("ParamNames returned %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ParamNames[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
