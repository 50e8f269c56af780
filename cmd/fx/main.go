// Command fx is a demo host for the embeddable expression-language
// engine in pkg/fx.
package main

import (
	"fmt"
	"os"

	"github.com/arvidsson/powerfx-go/cmd/fx/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
