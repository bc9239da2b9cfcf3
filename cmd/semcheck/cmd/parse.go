package cmd

import (
	"fmt"
	"os"

	"github.com/smasonuk/oopchecker/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a source file and report any syntax errors",
	Args:  cobra.ExactArgs(1),
	Run:   runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) {
	src, filename := readSource(args)
	p := parser.New(src)
	program := p.Parse()

	if len(p.Errors()) > 0 {
		for _, e := range p.Errors() {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}

	fmt.Printf("%s: parsed ok, program class %q, %d classes declared\n", filename, program.MainClassName, len(program.Classes))
}
