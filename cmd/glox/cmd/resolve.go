package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdecook/glox/internal/diagnostics"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <file>",
	Short: "run the static resolver over a Language source file and report any errors",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fileErr("failed to read %s: %v", args[0], err)
		}

		diags := diagnostics.New()
		log := tracer()
		toks := scanSource(string(content), diags, log)
		if diags.HadError() {
			return reportAndFail(diags, os.Stderr, exitDataErr)
		}
		program := parseSource(toks, diags, log)
		if diags.HadError() {
			return reportAndFail(diags, os.Stderr, exitDataErr)
		}
		resolved := resolveProgram(program, diags, log)
		if diags.HadError() {
			return reportAndFail(diags, os.Stderr, exitDataErr)
		}
		fmt.Printf("resolved %d local variable reference(s), no errors\n", len(resolved))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
