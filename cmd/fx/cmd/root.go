// Package cmd implements the fx command-line demo: a thin host around
// the pkg/fx library, not part of the library's public surface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "fx",
	Short:   "Evaluate expression-language text against a session",
	Long:    "fx is a small demo host for the embeddable expression-language engine: it parses and evaluates expression text given on the command line, optionally against session variables loaded from a YAML file.",
	Version: "0.1.0",
}

func init() {
	rootCmd.SetVersionTemplate("fx version {{.Version}}\n")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print additional diagnostic output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "fx: "+msg+"\n", args...)
	os.Exit(1)
}
