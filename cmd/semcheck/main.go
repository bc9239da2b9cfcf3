// Command semcheck is the CLI entry point for the semantic analyzer.
package main

import (
	"fmt"
	"os"

	"github.com/smasonuk/oopchecker/cmd/semcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
