package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/go-pascal/internal/ast"
	"github.com/cwbudde/go-pascal/pkg/token"
)

// execWrite writes each argument's textual form in order, to the console
// or to a file variable; writeln appends a newline.
func (i *Interpreter) execWrite(s *ast.WriteStatement) error {
	var sb strings.Builder
	for _, arg := range s.Args {
		v, err := i.evalExpression(arg)
		if err != nil {
			return err
		}
		sb.WriteString(v.String())
	}
	if s.NewLine {
		sb.WriteString("\n")
	}

	if s.File == nil {
		if _, err := fmt.Fprint(i.output, sb.String()); err != nil {
			return newError(IOError, s.Pos(), "write: %s", err)
		}
		return nil
	}

	f, err := i.lookupFile(s.File)
	if err != nil {
		return err
	}
	if !f.IsOpenForWriting() {
		return newError(FileError, s.Pos(), "%s is not open for writing", s.File.Value)
	}
	if err := f.WriteString(sb.String()); err != nil {
		return newError(IOError, s.Pos(), "write to %s: %s", f.Name, err)
	}
	return nil
}

// execRead reads one line per target variable and parses it into the
// variable's current declared kind.
func (i *Interpreter) execRead(s *ast.ReadStatement) error {
	var file *FileValue
	if s.File != nil {
		f, err := i.lookupFile(s.File)
		if err != nil {
			return err
		}
		if !f.IsOpenForReading() {
			return newError(FileError, s.Pos(), "%s is not open for reading", s.File.Value)
		}
		file = f
	}

	for _, target := range s.Targets {
		line, err := i.readInputLine(file, target.Pos())
		if err != nil {
			return err
		}
		v, err := i.parseInput(target, line)
		if err != nil {
			return err
		}
		i.env.Assign(target.Value, v)
	}
	return nil
}

// readInputLine fetches one line from the given file, or from standard
// input when file is nil.
func (i *Interpreter) readInputLine(file *FileValue, pos token.Position) (string, error) {
	if file != nil {
		line, err := file.ReadLine()
		if err != nil {
			return "", newError(IOError, pos, "read from %s: %s", file.Name, err)
		}
		return line, nil
	}
	line, err := readLine(i.input)
	if err != nil {
		return "", newError(IOError, pos, "read: %s", err)
	}
	return line, nil
}

// parseInput converts an input line according to the target variable's
// current declared kind: integer, real, boolean or string.
func (i *Interpreter) parseInput(target *ast.Identifier, line string) (Value, error) {
	current, err := i.lookupName(target.Value, target.Pos())
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(line)
	switch current.(type) {
	case *IntegerValue:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, newError(TypeError, target.Pos(), "cannot read %q as integer", text)
		}
		return &IntegerValue{Value: n}, nil
	case *FloatValue:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, newError(TypeError, target.Pos(), "cannot read %q as real", text)
		}
		return &FloatValue{Value: f}, nil
	case *BooleanValue:
		switch strings.ToLower(text) {
		case "true":
			return &BooleanValue{Value: true}, nil
		case "false":
			return &BooleanValue{Value: false}, nil
		}
		return nil, newError(TypeError, target.Pos(), "cannot read %q as boolean", text)
	default:
		return &StringValue{Value: line}, nil
	}
}

// execAssignFile records the host filename for a file variable.
func (i *Interpreter) execAssignFile(s *ast.AssignFileStatement) error {
	f, err := i.lookupFile(s.File)
	if err != nil {
		return err
	}
	name, err := i.evalExpression(s.Name)
	if err != nil {
		return err
	}
	str, ok := name.(*StringValue)
	if !ok {
		return newError(TypeError, s.Pos(), "assign requires a filename string, got %s", name.Type())
	}
	f.Name = str.Value
	return nil
}

func (i *Interpreter) execReset(s *ast.ResetStatement) error {
	f, err := i.lookupFile(s.File)
	if err != nil {
		return err
	}
	if f.Name == "" {
		return newError(FileError, s.Pos(), "%s has no filename assigned", s.File.Value)
	}
	if err := f.Reset(); err != nil {
		return newError(FileError, s.Pos(), "reset %s: %s", f.Name, err)
	}
	i.trackFile(f)
	return nil
}

func (i *Interpreter) execRewrite(s *ast.RewriteStatement) error {
	f, err := i.lookupFile(s.File)
	if err != nil {
		return err
	}
	if f.Name == "" {
		return newError(FileError, s.Pos(), "%s has no filename assigned", s.File.Value)
	}
	if err := f.Rewrite(); err != nil {
		return newError(FileError, s.Pos(), "rewrite %s: %s", f.Name, err)
	}
	i.trackFile(f)
	return nil
}

func (i *Interpreter) execClose(s *ast.CloseStatement) error {
	f, err := i.lookupFile(s.File)
	if err != nil {
		return err
	}
	if !f.IsOpenForReading() && !f.IsOpenForWriting() {
		return newError(FileError, s.Pos(), "%s is not open", s.File.Value)
	}
	if err := f.Close(); err != nil {
		return newError(IOError, s.Pos(), "close %s: %s", f.Name, err)
	}
	return nil
}
