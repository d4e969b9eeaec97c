package interp

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/go-pascal/internal/ast"
	"github.com/cwbudde/go-pascal/pkg/ident"
	"github.com/cwbudde/go-pascal/pkg/token"
)

// FloatEqualityEpsilon is the tolerance used when comparing reals with =
// and <>. Inherited behavior; exposed as a constant for auditing.
const FloatEqualityEpsilon = 1e-4

// UnitLoader maps a unit name to an already-parsed unit AST. The
// interpreter imports the unit's interface symbols and runs its
// initialization block; locating and parsing unit sources is the
// caller's concern.
type UnitLoader interface {
	LoadUnit(name string) (*ast.Unit, error)
}

// Interpreter executes a parsed Pascal program against a runtime
// environment: a global table, a scope chain for routine frames, a heap
// for pointer allocations and a file handle table.
type Interpreter struct {
	globals     *Environment
	env         *Environment
	procs       *ident.Map[*ast.ProcDecl]
	funcs       *ident.Map[*ast.FuncDecl]
	enums       *ident.Map[int64]
	enumTypes   *ident.Map[[]string]
	recordTypes *ident.Map[*ast.RecordTypeDecl]
	heap        map[int64]Value
	nextAddr    int64
	openFiles   []*FileValue
	finalizers  []*ast.CompoundStatement
	loader      UnitLoader
	output      io.Writer
	input       *bufio.Reader
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput redirects program output (write/writeln) to w.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.output = w
	}
}

// WithInput supplies the source for read/readln.
func WithInput(r io.Reader) Option {
	return func(i *Interpreter) {
		i.input = bufio.NewReader(r)
	}
}

// WithUnitLoader injects the collaborator that resolves uses-clause names
// to parsed units.
func WithUnitLoader(l UnitLoader) Option {
	return func(i *Interpreter) {
		i.loader = l
	}
}

// New creates an Interpreter. By default it reads from stdin and writes to
// stdout.
func New(opts ...Option) *Interpreter {
	globals := NewEnvironment()
	i := &Interpreter{
		globals:     globals,
		env:         globals,
		procs:       ident.NewMap[*ast.ProcDecl](),
		funcs:       ident.NewMap[*ast.FuncDecl](),
		enums:       ident.NewMap[int64](),
		enumTypes:   ident.NewMap[[]string](),
		recordTypes: ident.NewMap[*ast.RecordTypeDecl](),
		heap:        make(map[int64]Value),
		output:      os.Stdout,
		input:       bufio.NewReader(os.Stdin),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run executes a program: imports its used units, installs its
// declarations, executes the main block and finally runs any unit
// finalization blocks. Every still-open file is closed on all exit paths.
func (i *Interpreter) Run(prog *ast.Program) (err error) {
	defer func() {
		i.closeAllFiles()
	}()

	for _, name := range prog.Uses {
		if err := i.importUsedUnit(name, prog.Pos()); err != nil {
			return err
		}
	}

	i.registerTypes(prog.RecordTypes, prog.EnumTypes)
	if err := i.declareVars(i.globals, programDecls(prog)); err != nil {
		return err
	}
	for _, d := range prog.Procs {
		i.procs.Set(d.Name, d)
	}
	for _, d := range prog.Funcs {
		i.funcs.Set(d.Name, d)
	}

	if err := i.execStatement(prog.Body); err != nil {
		return err
	}
	return i.runFinalizers()
}

// runFinalizers executes unit finalization blocks in reverse import order.
func (i *Interpreter) runFinalizers() error {
	for idx := len(i.finalizers) - 1; idx >= 0; idx-- {
		if err := i.execStatement(i.finalizers[idx]); err != nil {
			return err
		}
	}
	i.finalizers = nil
	return nil
}

func (i *Interpreter) importUsedUnit(name string, pos token.Position) error {
	if i.loader == nil {
		return newError(NameError, pos, "no unit loader configured for unit %s", name)
	}
	unit, err := i.loader.LoadUnit(name)
	if err != nil {
		return fmt.Errorf("loading unit %s: %w", name, err)
	}
	return i.ImportUnit(unit)
}

// registerTypes installs record and enum type declarations. Enum members
// receive their ordinal position as value.
func (i *Interpreter) registerTypes(records []*ast.RecordTypeDecl, enums []*ast.EnumTypeDecl) {
	for _, r := range records {
		i.recordTypes.Set(r.Name, r)
	}
	for _, e := range enums {
		i.enumTypes.Set(e.Name, e.Members)
		for ord, member := range e.Members {
			i.enums.Set(member, int64(ord))
		}
	}
}

// programDecls flattens a program's variable declarations into one list.
func programDecls(prog *ast.Program) []ast.Declaration {
	var decls []ast.Declaration
	for _, d := range prog.Vars {
		decls = append(decls, d)
	}
	for _, d := range prog.ArrayVars {
		decls = append(decls, d)
	}
	for _, d := range prog.RecordVars {
		decls = append(decls, d)
	}
	for _, d := range prog.FileVars {
		decls = append(decls, d)
	}
	for _, d := range prog.PointerVars {
		decls = append(decls, d)
	}
	for _, d := range prog.SetVars {
		decls = append(decls, d)
	}
	return decls
}

// declareVars installs variable declarations into env, initializing each
// name to the default for its declared type.
func (i *Interpreter) declareVars(env *Environment, decls []ast.Declaration) error {
	for _, decl := range decls {
		switch d := decl.(type) {
		case *ast.VarDecl:
			for _, name := range d.Names {
				env.Define(name, i.defaultValue(d.TypeName))
			}
		case *ast.ArrayVarDecl:
			for _, name := range d.Names {
				env.Define(name, i.newArray(d))
			}
		case *ast.RecordVarDecl:
			rec, err := i.newRecord(d)
			if err != nil {
				return err
			}
			for _, name := range d.Names {
				env.Define(name, copyValue(rec))
			}
		case *ast.FileVarDecl:
			for _, name := range d.Names {
				env.Define(name, &FileValue{})
			}
		case *ast.PointerVarDecl:
			for _, name := range d.Names {
				env.Define(name, &NilValue{})
			}
		case *ast.SetVarDecl:
			for _, name := range d.Names {
				env.Define(name, NewSetValue())
			}
		default:
			return newError(TypeError, decl.Pos(), "unexpected declaration %T", decl)
		}
	}
	return nil
}

// defaultValue returns the zero value for a declared type name: integers
// and enum ordinals start at 0, reals at 0.0, booleans at false, strings
// and chars empty, declared record types as a record with defaulted fields;
// anything else starts unset (nil).
func (i *Interpreter) defaultValue(typeName string) Value {
	switch ident.Normalize(typeName) {
	case "integer":
		return &IntegerValue{}
	case "real":
		return &FloatValue{}
	case "boolean":
		return &BooleanValue{}
	case "string", "char":
		return &StringValue{}
	default:
		if i.enumTypes.Has(typeName) {
			return &IntegerValue{}
		}
		if decl, ok := i.recordTypes.Get(typeName); ok {
			rec, err := i.newRecord(&ast.RecordVarDecl{TypeName: decl.Name})
			if err == nil {
				return rec
			}
		}
		return &NilValue{}
	}
}

// newArray builds a defaulted array value from its declaration: the flat
// buffer holds the product of the dimension sizes.
func (i *Interpreter) newArray(d *ast.ArrayVarDecl) *ArrayValue {
	dims := make([]Dim, len(d.Dims))
	size := int64(1)
	for idx, r := range d.Dims {
		dims[idx] = Dim{Low: r.Low, High: r.High}
		size *= dims[idx].size()
	}
	elems := make([]Value, size)
	for idx := range elems {
		elems[idx] = i.defaultValue(d.ElementType)
	}
	return &ArrayValue{Dims: dims, Elems: elems, ElementType: d.ElementType}
}

// newRecord builds a defaulted record value from a declaration, resolving
// named record types through the type table.
func (i *Interpreter) newRecord(d *ast.RecordVarDecl) (*RecordValue, error) {
	fields := d.Fields
	typeName := d.TypeName
	if typeName != "" {
		decl, ok := i.recordTypes.Get(typeName)
		if !ok {
			return nil, newError(NameError, d.Pos(), "unknown record type %s", typeName)
		}
		fields = decl.Fields
	}
	rec := &RecordValue{Fields: ident.NewMap[Value](), TypeName: typeName}
	for _, group := range fields {
		for _, name := range group.Names {
			rec.Fields.Set(name, i.defaultValue(group.TypeName))
		}
	}
	return rec, nil
}

// allocCell stores a value in a fresh heap cell and returns its address.
// Addresses start at 1 so address 0 never aliases a live cell.
func (i *Interpreter) allocCell(v Value) int64 {
	i.nextAddr++
	i.heap[i.nextAddr] = v
	return i.nextAddr
}

// trackFile remembers an opened file for the shutdown sweep.
func (i *Interpreter) trackFile(f *FileValue) {
	for _, existing := range i.openFiles {
		if existing == f {
			return
		}
	}
	i.openFiles = append(i.openFiles, f)
}

// closeAllFiles closes every still-open reader and writer. Called
// unconditionally during shutdown, including on failure paths.
func (i *Interpreter) closeAllFiles() {
	for _, f := range i.openFiles {
		_ = f.Close()
	}
	i.openFiles = nil
}

// lookupName resolves a name for reading: the scope chain innermost-out,
// then the globals, then the enum member table.
func (i *Interpreter) lookupName(name string, pos token.Position) (Value, error) {
	if v, ok := i.env.Get(name); ok {
		return v, nil
	}
	if ord, ok := i.enums.Get(name); ok {
		return &IntegerValue{Value: ord}, nil
	}
	return nil, newError(NameError, pos, "undeclared identifier %s", name)
}
