package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdecook/glox/internal/diagnostics"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "print the parsed AST for a Language source file",
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
		fmt.Println(program.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
