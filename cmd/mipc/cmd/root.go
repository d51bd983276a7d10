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
	Use:   "mipc",
	Short: "A compiler back end for a small imperative language, targeting MIPS/SPIM assembly",
	Long: `mipc is the semantic back end of a compiler for a small statically
typed imperative language: name analysis, type checking, and code
generation over an AST produced upstream by a lexer and parser.

It emits SPIM/MIPS assembly text implementing a stack-based evaluation
discipline and a standard caller/callee activation-record protocol.`,
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
	rootCmd.PersistentFlags().String("config", ".mipc.yaml", "path to project configuration file")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
