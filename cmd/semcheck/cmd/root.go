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
	Use:   "semcheck",
	Short: "Semantic analyzer for the class-based teaching language",
	Long: `semcheck is a standalone semantic analysis pass for a small
class-based, Pascal-flavoured teaching language: single inheritance,
primitive scalars, fixed-range arrays, and a designated main class with
a parameterless constructor.

semcheck never executes a program - it only lexes, parses, and type
checks one, reporting every well-formedness violation it finds.`,
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
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

func readSource(args []string) (string, string) {
	if len(args) == 0 {
		exitWithError("a source file is required")
	}
	filename := args[0]
	data, err := os.ReadFile(filename)
	if err != nil {
		exitWithError("reading %s: %v", filename, err)
	}
	return string(data), filename
}
