package interp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// chtmp runs the rest of the test in a fresh temporary directory so the
// programs' relative filenames stay isolated.
func chtmp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestWriteThenReadBackFile(t *testing.T) {
	dir := chtmp(t)

	out := runSource(t, `
program P;
var f: text; line: string;
begin
  assign(f, 'notes.txt');
  rewrite(f);
  writeln(f, 'first');
  writeln(f, 'second');
  close(f);

  reset(f);
  while not eof(f) do
  begin
    readln(f, line);
    writeln('got: ', line)
  end;
  close(f)
end.`)
	require.Equal(t, "got: first\ngot: second\n", out)

	content, err := os.ReadFile(filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)
	require.Equal(t, "first\nsecond\n", string(content))
}

func TestReadTypedValuesFromFile(t *testing.T) {
	dir := chtmp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nums.txt"), []byte("7\n3.5\n"), 0o644))

	out := runSource(t, `
program P;
var f: text; n: integer; r: real;
begin
  assign(f, 'nums.txt');
  reset(f);
  readln(f, n);
  readln(f, r);
  close(f);
  writeln(n * 2);
  writeln(r)
end.`)
	require.Equal(t, "14\n3.5\n", out)
}

func TestEofOnEmptyFile(t *testing.T) {
	dir := chtmp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.txt"), nil, 0o644))

	out := runSource(t, `
program P;
var f: text;
begin
  assign(f, 'empty.txt');
  reset(f);
  writeln(eof(f));
  close(f)
end.`)
	require.Equal(t, "True\n", out)
}

func TestEofOnUnopenedFile(t *testing.T) {
	out := runSource(t, `
program P;
var f: text;
begin
  writeln(eof(f))
end.`)
	require.Equal(t, "True\n", out)
}

func TestFileErrors(t *testing.T) {
	chtmp(t)

	tests := []struct {
		name   string
		source string
		kind   ErrorKind
	}{
		{
			"reset without assign",
			`program P; var f: text; begin reset(f) end.`,
			FileError,
		},
		{
			"write to unopened file",
			`program P; var f: text; begin assign(f, 'x.txt'); writeln(f, 'oops') end.`,
			FileError,
		},
		{
			"read from unopened file",
			`program P; var f: text; var s: string; begin assign(f, 'x.txt'); readln(f, s) end.`,
			FileError,
		},
		{
			"close unopened file",
			`program P; var f: text; begin close(f) end.`,
			FileError,
		},
		{
			"reset missing file",
			`program P; var f: text; begin assign(f, 'does-not-exist.txt'); reset(f) end.`,
			FileError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runSourceErr(t, tt.source)
			requireRuntimeError(t, err, tt.kind)
		})
	}
}

// TestFilesClosedOnFailure verifies the shutdown sweep: a runtime failure
// after rewrite must still flush and close the handle.
func TestFilesClosedOnFailure(t *testing.T) {
	dir := chtmp(t)

	_, err := runSourceErr(t, `
program P;
var f: text;
begin
  assign(f, 'partial.txt');
  rewrite(f);
  writeln(f, 'kept');
  writeln(missing)
end.`)
	require.Error(t, err)

	content, readErr := os.ReadFile(filepath.Join(dir, "partial.txt"))
	require.NoError(t, readErr)
	require.Equal(t, "kept\n", string(content))
}

func TestAssignRequiresString(t *testing.T) {
	_, err := runSourceErr(t, `
program P;
var f: text;
begin
  assign(f, 42)
end.`)
	requireRuntimeError(t, err, TypeError)
}

func TestRewriteTruncatesAcrossRuns(t *testing.T) {
	dir := chtmp(t)

	runSource(t, `
program P;
var f: text;
begin
  assign(f, 'log.txt'); rewrite(f); writeln(f, 'one'); close(f)
end.`)
	// rewrite truncates: the second run replaces the content.
	runSource(t, `
program P;
var f: text;
begin
  assign(f, 'log.txt'); rewrite(f); writeln(f, 'two'); close(f)
end.`)

	content, err := os.ReadFile(filepath.Join(dir, "log.txt"))
	require.NoError(t, err)
	require.Equal(t, "two\n", string(content))
	require.False(t, strings.Contains(string(content), "one"))
}
