package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-pascal/pkg/token"
)

// CompoundStatement is a begin..end block of statements.
type CompoundStatement struct {
	Statements []Statement
	Token      token.Token // the BEGIN token
}

func (cs *CompoundStatement) statementNode()       {}
func (cs *CompoundStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *CompoundStatement) Pos() token.Position  { return cs.Token.Pos }
func (cs *CompoundStatement) String() string {
	var out bytes.Buffer
	out.WriteString("begin ")
	stmts := make([]string, 0, len(cs.Statements))
	for _, s := range cs.Statements {
		stmts = append(stmts, s.String())
	}
	out.WriteString(strings.Join(stmts, "; "))
	out.WriteString(" end")
	return out.String()
}

// AssignmentStatement assigns a value to a target. The target is an
// identifier, an array element, a record field, or a pointer dereference.
type AssignmentStatement struct {
	Target Expression
	Value  Expression
	Token  token.Token // the ASSIGN token
}

func (as *AssignmentStatement) statementNode()       {}
func (as *AssignmentStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignmentStatement) Pos() token.Position  { return as.Token.Pos }
func (as *AssignmentStatement) String() string {
	return as.Target.String() + " := " + as.Value.String()
}

// IfStatement is an if/then with optional else.
type IfStatement struct {
	Condition Expression
	Then      Statement
	Else      Statement // nil when absent
	Token     token.Token
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) Pos() token.Position  { return is.Token.Pos }
func (is *IfStatement) String() string {
	s := "if " + is.Condition.String() + " then " + is.Then.String()
	if is.Else != nil {
		s += " else " + is.Else.String()
	}
	return s
}

// WhileStatement is a pre-test loop.
type WhileStatement struct {
	Condition Expression
	Body      Statement
	Token     token.Token
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) Pos() token.Position  { return ws.Token.Pos }
func (ws *WhileStatement) String() string {
	return "while " + ws.Condition.String() + " do " + ws.Body.String()
}

// RepeatStatement is a post-test loop: the body always runs at least once
// and the loop exits when the condition becomes true.
type RepeatStatement struct {
	Body      []Statement
	Condition Expression
	Token     token.Token
}

func (rs *RepeatStatement) statementNode()       {}
func (rs *RepeatStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *RepeatStatement) Pos() token.Position  { return rs.Token.Pos }
func (rs *RepeatStatement) String() string {
	stmts := make([]string, 0, len(rs.Body))
	for _, s := range rs.Body {
		stmts = append(stmts, s.String())
	}
	return "repeat " + strings.Join(stmts, "; ") + " until " + rs.Condition.String()
}

// ForStatement is a counted loop. Downto selects the decrementing form.
type ForStatement struct {
	Variable *Identifier
	Start    Expression
	End      Expression
	Body     Statement
	Token    token.Token
	Downto   bool
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) Pos() token.Position  { return fs.Token.Pos }
func (fs *ForStatement) String() string {
	dir := " to "
	if fs.Downto {
		dir = " downto "
	}
	return "for " + fs.Variable.String() + " := " + fs.Start.String() + dir + fs.End.String() + " do " + fs.Body.String()
}

// CaseLabel is a single case branch label: a literal or a lo..hi range.
type CaseLabel struct {
	Low  Expression
	High Expression // nil for a single-value label
}

func (cl CaseLabel) String() string {
	if cl.High != nil {
		return cl.Low.String() + ".." + cl.High.String()
	}
	return cl.Low.String()
}

// CaseBranch is one arm of a case statement.
type CaseBranch struct {
	Labels []CaseLabel
	Body   Statement
}

func (cb CaseBranch) String() string {
	labels := make([]string, 0, len(cb.Labels))
	for _, l := range cb.Labels {
		labels = append(labels, l.String())
	}
	return strings.Join(labels, ", ") + ": " + cb.Body.String()
}

// CaseStatement selects the first branch whose label matches the selector.
type CaseStatement struct {
	Selector Expression
	Branches []CaseBranch
	Else     Statement // nil when absent
	Token    token.Token
}

func (cs *CaseStatement) statementNode()       {}
func (cs *CaseStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *CaseStatement) Pos() token.Position  { return cs.Token.Pos }
func (cs *CaseStatement) String() string {
	var out bytes.Buffer
	out.WriteString("case " + cs.Selector.String() + " of ")
	branches := make([]string, 0, len(cs.Branches))
	for _, b := range cs.Branches {
		branches = append(branches, b.String())
	}
	out.WriteString(strings.Join(branches, "; "))
	if cs.Else != nil {
		out.WriteString(" else " + cs.Else.String())
	}
	out.WriteString(" end")
	return out.String()
}

// WithStatement exposes a record's fields as names inside its body.
type WithStatement struct {
	Record Expression
	Body   Statement
	Token  token.Token
}

func (ws *WithStatement) statementNode()       {}
func (ws *WithStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WithStatement) Pos() token.Position  { return ws.Token.Pos }
func (ws *WithStatement) String() string {
	return "with " + ws.Record.String() + " do " + ws.Body.String()
}

// GotoStatement is parsed but rejected at evaluation time.
type GotoStatement struct {
	Label string
	Token token.Token
}

func (gs *GotoStatement) statementNode()       {}
func (gs *GotoStatement) TokenLiteral() string { return gs.Token.Literal }
func (gs *GotoStatement) Pos() token.Position  { return gs.Token.Pos }
func (gs *GotoStatement) String() string       { return "goto " + gs.Label }

// LabeledStatement attaches a label to a statement.
type LabeledStatement struct {
	Label string
	Stmt  Statement
	Token token.Token
}

func (ls *LabeledStatement) statementNode()       {}
func (ls *LabeledStatement) TokenLiteral() string { return ls.Token.Literal }
func (ls *LabeledStatement) Pos() token.Position  { return ls.Token.Pos }
func (ls *LabeledStatement) String() string {
	return ls.Label + ": " + ls.Stmt.String()
}

// ProcedureCallStatement invokes a procedure for its side effects.
type ProcedureCallStatement struct {
	Name      *Identifier
	Arguments []Expression
	Token     token.Token
}

func (ps *ProcedureCallStatement) statementNode()       {}
func (ps *ProcedureCallStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *ProcedureCallStatement) Pos() token.Position  { return ps.Token.Pos }
func (ps *ProcedureCallStatement) String() string {
	args := make([]string, 0, len(ps.Arguments))
	for _, a := range ps.Arguments {
		args = append(args, a.String())
	}
	return ps.Name.String() + "(" + strings.Join(args, ", ") + ")"
}

// WriteStatement writes expressions to the console or to a file variable.
// NewLine selects the writeln form.
type WriteStatement struct {
	File    *Identifier // nil for console output
	Args    []Expression
	Token   token.Token
	NewLine bool
}

func (ws *WriteStatement) statementNode()       {}
func (ws *WriteStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WriteStatement) Pos() token.Position  { return ws.Token.Pos }
func (ws *WriteStatement) String() string {
	name := "write"
	if ws.NewLine {
		name = "writeln"
	}
	parts := make([]string, 0, len(ws.Args)+1)
	if ws.File != nil {
		parts = append(parts, ws.File.String())
	}
	for _, a := range ws.Args {
		parts = append(parts, a.String())
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// ReadStatement reads values into variables from the console or a file.
// NewLine selects the readln form.
type ReadStatement struct {
	File    *Identifier // nil for console input
	Targets []*Identifier
	Token   token.Token
	NewLine bool
}

func (rs *ReadStatement) statementNode()       {}
func (rs *ReadStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReadStatement) Pos() token.Position  { return rs.Token.Pos }
func (rs *ReadStatement) String() string {
	name := "read"
	if rs.NewLine {
		name = "readln"
	}
	parts := make([]string, 0, len(rs.Targets)+1)
	if rs.File != nil {
		parts = append(parts, rs.File.String())
	}
	for _, t := range rs.Targets {
		parts = append(parts, t.String())
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// AssignFileStatement binds a host filename to a file variable: assign(f, name).
type AssignFileStatement struct {
	File  *Identifier
	Name  Expression
	Token token.Token
}

func (as *AssignFileStatement) statementNode()       {}
func (as *AssignFileStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignFileStatement) Pos() token.Position  { return as.Token.Pos }
func (as *AssignFileStatement) String() string {
	return "assign(" + as.File.String() + ", " + as.Name.String() + ")"
}

// ResetStatement opens a file variable for reading.
type ResetStatement struct {
	File  *Identifier
	Token token.Token
}

func (rs *ResetStatement) statementNode()       {}
func (rs *ResetStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ResetStatement) Pos() token.Position  { return rs.Token.Pos }
func (rs *ResetStatement) String() string       { return "reset(" + rs.File.String() + ")" }

// RewriteStatement opens (truncating) a file variable for writing.
type RewriteStatement struct {
	File  *Identifier
	Token token.Token
}

func (rs *RewriteStatement) statementNode()       {}
func (rs *RewriteStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *RewriteStatement) Pos() token.Position  { return rs.Token.Pos }
func (rs *RewriteStatement) String() string       { return "rewrite(" + rs.File.String() + ")" }

// CloseStatement flushes and closes a file variable.
type CloseStatement struct {
	File  *Identifier
	Token token.Token
}

func (cs *CloseStatement) statementNode()       {}
func (cs *CloseStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *CloseStatement) Pos() token.Position  { return cs.Token.Pos }
func (cs *CloseStatement) String() string       { return "close(" + cs.File.String() + ")" }

// NewStatement allocates a heap cell and stores its address in a pointer
// variable: new(p).
type NewStatement struct {
	Target *Identifier
	Token  token.Token
}

func (ns *NewStatement) statementNode()       {}
func (ns *NewStatement) TokenLiteral() string { return ns.Token.Literal }
func (ns *NewStatement) Pos() token.Position  { return ns.Token.Pos }
func (ns *NewStatement) String() string       { return "new(" + ns.Target.String() + ")" }

// DisposeStatement releases the heap cell a pointer variable addresses and
// sets the pointer to nil: dispose(p).
type DisposeStatement struct {
	Target *Identifier
	Token  token.Token
}

func (ds *DisposeStatement) statementNode()       {}
func (ds *DisposeStatement) TokenLiteral() string { return ds.Token.Literal }
func (ds *DisposeStatement) Pos() token.Position  { return ds.Token.Pos }
func (ds *DisposeStatement) String() string       { return "dispose(" + ds.Target.String() + ")" }

// UnsupportedStatement covers the standard-Pascal forms the parser accepts
// but the evaluator rejects: page, get, put, pack, unpack.
type UnsupportedStatement struct {
	Name      string
	Arguments []Expression
	Token     token.Token
}

func (us *UnsupportedStatement) statementNode()       {}
func (us *UnsupportedStatement) TokenLiteral() string { return us.Token.Literal }
func (us *UnsupportedStatement) Pos() token.Position  { return us.Token.Pos }
func (us *UnsupportedStatement) String() string {
	args := make([]string, 0, len(us.Arguments))
	for _, a := range us.Arguments {
		args = append(args, a.String())
	}
	if len(args) == 0 {
		return us.Name
	}
	return us.Name + "(" + strings.Join(args, ", ") + ")"
}
