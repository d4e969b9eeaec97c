package interp

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-pascal/internal/ast"
	"github.com/cwbudde/go-pascal/internal/lexer"
	"github.com/cwbudde/go-pascal/internal/parser"
	"github.com/cwbudde/go-pascal/pkg/ident"
	"github.com/stretchr/testify/require"
)

// mapLoader is a test UnitLoader over pre-parsed units.
type mapLoader struct {
	units *ident.Map[*ast.Unit]
}

func newMapLoader(t *testing.T, sources ...string) *mapLoader {
	t.Helper()
	l := &mapLoader{units: ident.NewMap[*ast.Unit]()}
	for _, src := range sources {
		p := parser.New(lexer.New(src))
		unit := p.ParseUnit()
		require.Empty(t, p.Errors(), "unit parse errors")
		require.NotNil(t, unit)
		l.units.Set(unit.Name, unit)
	}
	return l
}

func (l *mapLoader) LoadUnit(name string) (*ast.Unit, error) {
	if unit, ok := l.units.Get(name); ok {
		return unit, nil
	}
	return nil, &RuntimeError{Kind: NameError, Message: "unit " + name + " is not registered"}
}

const mathUnit = `
unit MathUtils;
interface
var Calls: integer;
function Square(n: integer): integer;
function Cube(n: integer): integer;
implementation
function Square(n: integer): integer;
begin
  Calls := Calls + 1;
  Square := n * n
end;
function Cube(n: integer): integer;
begin
  Calls := Calls + 1;
  Cube := n * Square(n)
end;
initialization
  Calls := 0
end.`

func TestImportUnitSymbols(t *testing.T) {
	out := runSource(t, `
program P;
uses MathUtils;
begin
  writeln(Square(6));
  writeln(Cube(3));
  writeln(Calls)
end.`, WithUnitLoader(newMapLoader(t, mathUnit)))
	require.Equal(t, "36\n27\n3\n", out)
}

func TestUnitInitializationRunsOnImport(t *testing.T) {
	unit := `
unit Greeter;
interface
var Greeting: string;
implementation
initialization
  Greeting := 'ready'
end.`

	out := runSource(t, `
program P;
uses Greeter;
begin
  writeln(Greeting)
end.`, WithUnitLoader(newMapLoader(t, unit)))
	require.Equal(t, "ready\n", out)
}

func TestUnitFinalizationRunsAfterProgram(t *testing.T) {
	unit := `
unit Audit;
interface
procedure Note(s: string);
implementation
procedure Note(s: string);
begin
  writeln('audit: ', s)
end;
initialization
  writeln('audit: open')
finalization
  writeln('audit: shut')
end.`

	out := runSource(t, `
program P;
uses Audit;
begin
  Note('work')
end.`, WithUnitLoader(newMapLoader(t, unit)))
	require.Equal(t, "audit: open\naudit: work\naudit: shut\n", out)
}

func TestUnitRecordAndEnumTypesVisible(t *testing.T) {
	unit := `
unit Shapes;
interface
type
  TPoint = record x, y: integer end;
  TKind = (Circle, Box);
implementation
end.`

	out := runSource(t, `
program P;
uses Shapes;
var pt: TPoint; k: TKind;
begin
  pt.x := 2; pt.y := 3;
  k := Box;
  writeln(pt.x + pt.y);
  writeln(k)
end.`, WithUnitLoader(newMapLoader(t, unit)))
	require.Equal(t, "5\n1\n", out)
}

func TestInterfaceHeaderWithoutBodyFails(t *testing.T) {
	unit := `
unit Stub;
interface
procedure Missing;
implementation
end.`

	_, err := runSourceErr(t, `
program P;
uses Stub;
begin
  Missing()
end.`, WithUnitLoader(newMapLoader(t, unit)))
	requireRuntimeError(t, err, NameError)
	require.Contains(t, err.Error(), "no body")
}

func TestMissingUnitFails(t *testing.T) {
	_, err := runSourceErr(t, `
program P;
uses Nowhere;
begin
end.`, WithUnitLoader(newMapLoader(t)))
	require.Error(t, err)
	require.Contains(t, strings.ToLower(err.Error()), "nowhere")
}

func TestNoLoaderConfigured(t *testing.T) {
	_, err := runSourceErr(t, `
program P;
uses Anything;
begin
end.`)
	require.Error(t, err)
}
