package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdecook/glox/internal/diagnostics"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file>",
	Short: "print the token stream for a Language source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fileErr("failed to read %s: %v", args[0], err)
		}

		diags := diagnostics.New()
		toks := scanSource(string(content), diags, tracer())
		for _, t := range toks {
			fmt.Println(t.String())
		}
		if diags.HadError() {
			return reportAndFail(diags, os.Stderr, exitDataErr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
}
