package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arvidsson/powerfx-go/pkg/fx"
)

var sessionYAMLPath string

var evalCmd = &cobra.Command{
	Use:   "eval [expression]",
	Short: "Evaluate a single expression string and print its result",
	Args:  cobra.ExactArgs(1),
	RunE:  runEval,
}

func init() {
	evalCmd.Flags().StringVarP(&sessionYAMLPath, "session", "s", "", "path to a YAML file seeding session variables")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	engine := fx.New()

	session := fx.NewSession()
	if sessionYAMLPath != "" {
		f, err := os.Open(sessionYAMLPath)
		if err != nil {
			exitWithError("opening session file: %v", err)
		}
		defer f.Close()

		loaded, err := fx.LoadSessionFromYAML(f)
		if err != nil {
			exitWithError("loading session: %v", err)
		}
		session = loaded
	}

	result, err := engine.Evaluate(args[0], session)
	if err != nil {
		exitWithError("%v", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "fx: evaluated %d-byte expression\n", len(args[0]))
	}
	fmt.Println(result.String())
	return nil
}
