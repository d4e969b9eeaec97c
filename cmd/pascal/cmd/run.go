package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-pascal/internal/errors"
	"github.com/cwbudde/go-pascal/internal/interp"
	"github.com/cwbudde/go-pascal/internal/lexer"
	"github.com/cwbudde/go-pascal/internal/parser"
	"github.com/cwbudde/go-pascal/internal/units"
	"github.com/spf13/cobra"
)

var (
	evalExpr  string
	dumpAST   bool
	unitFiles []string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Pascal program",
	Long: `Execute a Pascal program from a file or inline source.

Examples:
  # Run a program
  pascal run hello.pas

  # Evaluate inline source
  pascal run -e "program P; begin writeln('Hello') end."

  # Run with units available to the uses clause
  pascal run --unit mathutils.pas main.pas

  # Run with AST dump (for debugging)
  pascal run --dump-ast hello.pas`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline source instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().StringArrayVar(&unitFiles, "unit", nil, "unit source file to make available to the uses clause (repeatable)")
}

func runProgram(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(args)
	if err != nil {
		return err
	}

	registry := units.NewRegistry()
	for _, path := range unitFiles {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read unit %s: %w", path, err)
		}
		if _, err := registry.RegisterSource(string(content)); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	l := lexer.New(input)
	p := parser.New(l)
	prog := p.ParseProgram()
	if !reportDiagnostics(p, input, filename) || prog == nil {
		os.Exit(1)
	}

	if dumpAST {
		fmt.Fprintln(os.Stderr, prog.String())
	}

	i := interp.New(interp.WithUnitLoader(registry))
	if err := i.Run(prog); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return nil
}

// readInput resolves the program source from the -e flag or a file path.
func readInput(args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline source")
}

// reportDiagnostics prints scan and parse errors with source context.
// Returns false when any were reported.
func reportDiagnostics(p *parser.Parser, source, filename string) bool {
	var diags []*errors.CompilerError
	for _, e := range p.LexerErrors() {
		diags = append(diags, errors.NewCompilerError(e.Pos, e.Message, source, filename))
	}
	for _, e := range p.Errors() {
		diags = append(diags, errors.NewCompilerError(e.Pos, e.Message, source, filename))
	}
	if len(diags) == 0 {
		return true
	}
	fmt.Fprintln(os.Stderr, errors.FormatErrors(diags, false))
	return false
}
