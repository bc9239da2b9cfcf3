package cmd

import (
	"fmt"
	"os"

	"github.com/smasonuk/oopchecker/internal/parser"
	"github.com/smasonuk/oopchecker/internal/semantic"
	"github.com/smasonuk/oopchecker/internal/symbols"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Lex, parse, and semantically check a source file",
	Long: `check runs the full pipeline - lexing, parsing, symbol-table
construction, and semantic analysis - over one source file, printing
every diagnostic found at any stage to stderr.

It exits 0 if the program is well-formed and non-zero otherwise,
stopping at the first stage that reports a problem: a program with
syntax errors is never handed to the semantic pass.`,
	Args: cobra.ExactArgs(1),
	Run:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) {
	src, filename := readSource(args)
	ok, diagnostics := checkPipeline(src)
	for _, d := range diagnostics {
		fmt.Fprintln(os.Stderr, d)
	}
	if !ok {
		os.Exit(1)
	}
	fmt.Printf("%s: ok\n", filename)
}

// checkPipeline runs the lex/parse/build/check pipeline over src and
// returns whether it succeeded plus every diagnostic line produced,
// stopping at the first stage that reports a problem. Split out of
// runCheck so it can be exercised by tests without os.Exit tearing
// down the test binary.
func checkPipeline(src string) (bool, []string) {
	p := parser.New(src)
	program := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		return false, errs
	}

	table, buildErrors := symbols.Build(program)
	if len(buildErrors) > 0 {
		return false, buildErrors
	}

	return semantic.Check(program, table)
}
