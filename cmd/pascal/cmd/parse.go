package cmd

import (
	"fmt"

	"github.com/cwbudde/go-pascal/internal/lexer"
	"github.com/cwbudde/go-pascal/internal/parser"
	"github.com/spf13/cobra"
)

var parseAsUnit bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Pascal source and display the AST",
	Long: `Parse Pascal source code and display the resulting Abstract Syntax
Tree. Use --unit to parse the source as a unit instead of a program.`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseSource,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline source instead of reading from file")
	parseCmd.Flags().BoolVar(&parseAsUnit, "unit", false, "parse the source as a unit")
}

func parseSource(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	p := parser.New(l)

	if parseAsUnit {
		unit := p.ParseUnit()
		if !reportDiagnostics(p, input, filename) || unit == nil {
			return fmt.Errorf("parsing failed")
		}
		fmt.Println(unit.String())
		return nil
	}

	prog := p.ParseProgram()
	if !reportDiagnostics(p, input, filename) || prog == nil {
		return fmt.Errorf("parsing failed")
	}
	fmt.Println(prog.String())
	return nil
}
