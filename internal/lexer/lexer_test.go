package lexer

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-pascal/pkg/token"
)

// collect scans the entire input and returns all tokens before EOF.
func collect(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestOperatorsAndDelimiters(t *testing.T) {
	input := `+ - * / = <> < > <= >= := .. @ ^ ( ) [ ] , ; : .`
	expected := []token.TokenType{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH,
		token.EQ, token.NOT_EQ, token.LESS, token.GREATER,
		token.LESS_EQ, token.GREATER_EQ, token.ASSIGN, token.DOTDOT,
		token.AT, token.CARET,
		token.LPAREN, token.RPAREN, token.LBRACK, token.RBRACK,
		token.COMMA, token.SEMICOLON, token.COLON, token.DOT,
	}

	toks := collect(t, input)
	if len(toks) != len(expected) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(expected))
	}
	for i, want := range expected {
		if toks[i].Type != want {
			t.Errorf("token %d: got %s (%q), want %s", i, toks[i].Type, toks[i].Literal, want)
		}
	}
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	tests := []struct {
		input    string
		expected token.TokenType
	}{
		{"begin", token.BEGIN},
		{"BEGIN", token.BEGIN},
		{"Begin", token.BEGIN},
		{"bEgIn", token.BEGIN},
		{"PROGRAM", token.PROGRAM},
		{"DownTo", token.DOWNTO},
		{"Nil", token.NIL},
		{"ASSIGN", token.ASSIGN_FILE},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := collect(t, tt.input)
			if len(toks) != 1 {
				t.Fatalf("got %d tokens, want 1", len(toks))
			}
			if toks[0].Type != tt.expected {
				t.Errorf("got %s, want %s", toks[0].Type, tt.expected)
			}
			if toks[0].Literal != tt.input {
				t.Errorf("literal %q does not preserve original casing %q", toks[0].Literal, tt.input)
			}
		})
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected token.TokenType
		literal  string
	}{
		{"0", token.INT, "0"},
		{"42", token.INT, "42"},
		{"123.45", token.FLOAT, "123.45"},
		{"1.5e10", token.FLOAT, "1.5e10"},
		{"2.5E-3", token.FLOAT, "2.5E-3"},
		{"7e2", token.FLOAT, "7e2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := collect(t, tt.input)
			if len(toks) != 1 {
				t.Fatalf("got %d tokens, want 1", len(toks))
			}
			if toks[0].Type != tt.expected || toks[0].Literal != tt.literal {
				t.Errorf("got %s (%q), want %s (%q)", toks[0].Type, toks[0].Literal, tt.expected, tt.literal)
			}
		})
	}
}

func TestRangeIsNotAFloat(t *testing.T) {
	toks := collect(t, "1..10")
	expected := []struct {
		typ     token.TokenType
		literal string
	}{
		{token.INT, "1"},
		{token.DOTDOT, ".."},
		{token.INT, "10"},
	}
	if len(toks) != len(expected) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(expected))
	}
	for i, want := range expected {
		if toks[i].Type != want.typ || toks[i].Literal != want.literal {
			t.Errorf("token %d: got %s (%q), want %s (%q)",
				i, toks[i].Type, toks[i].Literal, want.typ, want.literal)
		}
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", `'hello'`, "hello"},
		{"empty", `''`, ""},
		{"doubled quote", `'it''s'`, "it's"},
		{"only a quote", `''''`, "'"},
		{"spaces", `'Hello World'`, "Hello World"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := collect(t, tt.input)
			if len(toks) != 1 {
				t.Fatalf("got %d tokens, want 1", len(toks))
			}
			if toks[0].Type != token.STRING || toks[0].Literal != tt.expected {
				t.Errorf("got %s (%q), want STRING (%q)", toks[0].Type, toks[0].Literal, tt.expected)
			}
		})
	}
}

func TestComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"brace comment", "{ this is skipped } x"},
		{"paren star comment", "(* this is skipped *) x"},
		{"multiline brace", "{ line one\nline two } x"},
		{"comment between tokens", "x { middle } "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := collect(t, tt.input)
			if len(toks) != 1 {
				t.Fatalf("got %d tokens, want 1: %v", len(toks), toks)
			}
			if toks[0].Type != token.IDENT || toks[0].Literal != "x" {
				t.Errorf("got %s (%q), want IDENT(x)", toks[0].Type, toks[0].Literal)
			}
		})
	}
}

func TestPositions(t *testing.T) {
	input := "var x\n  y := 1"
	toks := collect(t, input)

	expected := []struct {
		line, column int
	}{
		{1, 1}, // var
		{1, 5}, // x
		{2, 3}, // y
		{2, 5}, // :=
		{2, 8}, // 1
	}
	if len(toks) != len(expected) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(expected))
	}
	for i, want := range expected {
		if toks[i].Pos.Line != want.line || toks[i].Pos.Column != want.column {
			t.Errorf("token %d (%q): got %d:%d, want %d:%d",
				i, toks[i].Literal, toks[i].Pos.Line, toks[i].Pos.Column, want.line, want.column)
		}
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"unknown character", "x ? y", "unknown character"},
		{"unterminated string", "'never closed", "unterminated string literal"},
		{"unterminated brace comment", "{ never closed", "unterminated comment"},
		{"unterminated paren comment", "(* never closed", "unterminated comment"},
		{"string broken by newline", "'broken\n'", "unterminated string literal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input)
			for {
				if tok := l.NextToken(); tok.Type == token.EOF {
					break
				}
			}
			errs := l.Errors()
			if len(errs) == 0 {
				t.Fatal("expected a scan error, got none")
			}
			if !strings.Contains(errs[0].Message, tt.message) {
				t.Errorf("error %q does not contain %q", errs[0].Message, tt.message)
			}
			if !errs[0].Pos.IsValid() {
				t.Errorf("error position %+v is not valid", errs[0].Pos)
			}
		})
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("a b c")
	if got := l.Peek(0).Literal; got != "a" {
		t.Errorf("Peek(0) = %q, want a", got)
	}
	if got := l.Peek(2).Literal; got != "c" {
		t.Errorf("Peek(2) = %q, want c", got)
	}
	for _, want := range []string{"a", "b", "c"} {
		if got := l.NextToken().Literal; got != want {
			t.Errorf("NextToken() = %q, want %q", got, want)
		}
	}
}

func TestBOMIsStripped(t *testing.T) {
	toks := collect(t, "\xEF\xBB\xBFbegin")
	if len(toks) != 1 || toks[0].Type != token.BEGIN {
		t.Fatalf("BOM not stripped: %v", toks)
	}
	if toks[0].Pos.Column != 1 {
		t.Errorf("column after BOM = %d, want 1", toks[0].Pos.Column)
	}
}

// TestTokenRoundTrip checks that scanning then reprinting the literals in
// order reproduces the non-trivia content of the source.
func TestTokenRoundTrip(t *testing.T) {
	input := `program Demo ; var x : integer ; begin x := 5 + 3 * 2 ; writeln ( x ) end .`
	toks := collect(t, input)

	var parts []string
	for _, tok := range toks {
		parts = append(parts, tok.Literal)
	}
	got := strings.Join(parts, " ")
	if got != input {
		t.Errorf("round trip mismatch:\n got: %s\nwant: %s", got, input)
	}
}

func TestFullProgram(t *testing.T) {
	input := `program Sum;
var total, i: integer;
begin
  total := 0;
  for i := 1 to 10 do
    total := total + i;
  writeln(total)
end.`

	l := New(input)
	count := 0
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		if tok.Type == token.ILLEGAL {
			t.Errorf("unexpected ILLEGAL token %q at %s", tok.Literal, tok.Pos)
		}
		count++
	}
	if len(l.Errors()) != 0 {
		t.Errorf("unexpected scan errors: %v", l.Errors())
	}
	if count == 0 {
		t.Error("no tokens produced")
	}
}
