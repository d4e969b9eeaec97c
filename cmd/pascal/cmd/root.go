package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "pascal",
	Short: "Pascal interpreter",
	Long: `go-pascal is a Go implementation of a substantial subset of the
Pascal programming language.

The interpreter scans and parses Pascal source into an abstract syntax
tree and executes the tree directly, with support for:
  - Procedures and functions with value and var parameters
  - Records, multi-dimensional arrays, sets, pointers and enums
  - Units with interface/implementation sections
  - Line-oriented text file I/O`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
