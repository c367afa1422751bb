package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Exit codes per SPEC_FULL.md §6, matching the sysexits.h conventions the
// teacher's scripts follow informally (EX_DATAERR for a bad script,
// EX_SOFTWARE for a runtime fault, EX_USAGE for a CLI invocation error).
const (
	exitOK         = 0
	exitUsage      = 64
	exitDataErr    = 65
	exitFileErr    = 68
	exitRuntimeErr = 70
)

// exitError carries the process exit code a subcommand wants. When silent
// is true the subcommand already wrote its message to stderr (e.g. a sorted
// diagnostics dump) and Execute must not print it again.
type exitError struct {
	code   int
	err    error
	silent bool
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

var errAlreadyReported = fmt.Errorf("reported")

func usageErr(format string, args ...any) error {
	return &exitError{code: exitUsage, err: fmt.Errorf(format, args...)}
}

func fileErr(format string, args ...any) error {
	return &exitError{code: exitFileErr, err: fmt.Errorf(format, args...)}
}

var rootCmd = &cobra.Command{
	Use:   "glox",
	Short: "glox is a tree-walking interpreter for the Language",
	Long: `glox scans, parses, resolves, and evaluates programs written in the
Language: a small dynamically-typed scripting language with closures,
single-inheritance classes, and a break statement.

Run with no arguments to start an interactive REPL, or give it a file to
execute.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runREPLOrFile,
}

var traceFlag bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&traceFlag, "trace", false, "log pipeline stage transitions to stderr")
	color.NoColor = false
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return exitOK
	}
	if ee, ok := err.(*exitError); ok {
		if !ee.silent {
			fmt.Fprintln(os.Stderr, color.RedString("Error:"), ee.Error())
		}
		return ee.code
	}
	fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
	return exitUsage
}
