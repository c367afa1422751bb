package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sdecook/glox/internal/diagnostics"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "run a Language source file or inline expression",
	Long: `Execute a Language program from a file or inline expression.

Examples:
  glox run script.lox
  glox run -e "print 1 + 2;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFile,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading a file")
}

func runFile(_ *cobra.Command, args []string) error {
	src, err := sourceFromArgs(args)
	if err != nil {
		return err
	}

	diags := diagnostics.New()
	return run(src, os.Stdout, os.Stderr, diags, tracer(), false)
}

// sourceFromArgs resolves the script source either from --eval or from the
// single positional file argument, matching dwscript's run command's
// either-one-or-the-other contract.
func sourceFromArgs(args []string) (string, error) {
	if evalExpr != "" {
		if len(args) == 1 {
			return "", usageErr("provide either a file path or -e, not both")
		}
		return evalExpr, nil
	}
	if len(args) != 1 {
		return "", usageErr("expected a file path or -e <code>")
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		return "", fileErr("failed to read %s: %v", args[0], err)
	}
	return string(content), nil
}
