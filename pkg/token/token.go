package token

import (
	"fmt"

	"github.com/cwbudde/go-pascal/pkg/ident"
)

// Position describes a location in the source text. Line and Column are
// 1-based; Offset is the 0-based byte offset of the position.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position refers to an actual source location.
func (p Position) IsValid() bool {
	return p.Line >= 1
}

// Token is a single lexical token with its original literal text and the
// position of its first character. For keyword tokens the literal preserves
// the user's original casing so diagnostics can echo the source.
type Token struct {
	Literal string
	Type    TokenType
	Pos     Position
}

// NewToken creates a Token.
func NewToken(typ TokenType, literal string, pos Position) Token {
	return Token{Type: typ, Literal: literal, Pos: pos}
}

// String renders the token for debug output, truncating long literals.
func (t Token) String() string {
	if t.Type == EOF {
		return fmt.Sprintf("EOF at %s", t.Pos)
	}
	lit := t.Literal
	if len(lit) > 20 {
		return fmt.Sprintf("%s(%q...) at %s", t.Type, lit[:20], t.Pos)
	}
	return fmt.Sprintf("%s(%q) at %s", t.Type, lit, t.Pos)
}

// keywords maps the canonical (lower-cased) spelling of every keyword to its
// token type. The built-in file and heap routine names are keywords so the
// parser can dispatch their statement forms directly.
var keywords = map[string]TokenType{
	"program":        PROGRAM,
	"unit":           UNIT,
	"interface":      INTERFACE,
	"implementation": IMPLEMENTATION,
	"initialization": INITIALIZATION,
	"finalization":   FINALIZATION,
	"uses":           USES,

	"var":       VAR,
	"type":      TYPE,
	"const":     CONST,
	"procedure": PROCEDURE,
	"function":  FUNCTION,
	"record":    RECORD,
	"array":     ARRAY,
	"set":       SET,
	"file":      FILE,
	"text":      TEXT,

	"begin":  BEGIN,
	"end":    END,
	"if":     IF,
	"then":   THEN,
	"else":   ELSE,
	"while":  WHILE,
	"do":     DO,
	"for":    FOR,
	"to":     TO,
	"downto": DOWNTO,
	"repeat": REPEAT,
	"until":  UNTIL,
	"case":   CASE,
	"of":     OF,
	"with":   WITH,
	"goto":   GOTO,

	"nil":   NIL,
	"true":  TRUE,
	"false": FALSE,
	"and":   AND,
	"or":    OR,
	"not":   NOT,
	"div":   DIV,
	"mod":   MOD,
	"in":    IN,

	"new":     NEW,
	"dispose": DISPOSE,

	"assign":  ASSIGN_FILE,
	"reset":   RESET,
	"rewrite": REWRITE,
	"close":   CLOSE,
	"eof":     EOF_FN,
	"page":    PAGE,
	"get":     GET,
	"put":     PUT,
	"pack":    PACK,
	"unpack":  UNPACK,
}

// LookupIdent returns the keyword token type for name if it is a keyword
// under case-insensitive comparison, or IDENT otherwise.
func LookupIdent(name string) TokenType {
	if typ, ok := keywords[ident.Normalize(name)]; ok {
		return typ
	}
	return IDENT
}
