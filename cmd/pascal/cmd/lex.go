package cmd

import (
	"fmt"

	"github.com/cwbudde/go-pascal/internal/lexer"
	"github.com/cwbudde/go-pascal/pkg/token"
	"github.com/spf13/cobra"
)

var (
	showPos  bool
	showType bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Pascal file or inline source",
	Long: `Tokenize (lex) a Pascal program and print the resulting tokens.

This command is useful for debugging the scanner and understanding how
source code is tokenized.

Examples:
  # Tokenize a program
  pascal lex hello.pas

  # Tokenize inline source
  pascal lex -e "x := 5 + 3;"

  # Show token types and positions
  pascal lex --show-type --show-pos hello.pas`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexSource,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline source instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
}

func lexSource(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	l := lexer.New(input)
	tokenCount := 0
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		tokenCount++
		printToken(tok)
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", tokenCount)
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Println("error:", e.Error())
		}
		return fmt.Errorf("found %d scan error(s)", len(errs))
	}
	return nil
}

func printToken(tok token.Token) {
	var output string
	if showType {
		output = fmt.Sprintf("[%-12s]", tok.Type)
	}
	output += fmt.Sprintf(" %q", tok.Literal)
	if showPos {
		output += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(output)
}
