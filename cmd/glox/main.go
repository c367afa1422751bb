// Command glox is the Language's command-line front end: a REPL plus
// tokenize/parse/resolve/run subcommands over the scanner, parser,
// resolver, and interp packages.
//
// Grounded on the teacher's codecrafters/cmd/main.go (a bare switch over
// os.Args), rewritten with spf13/cobra the way CWBudde-go-dws's
// cmd/dwscript does, and carrying the same sysexits-style exit codes
// spec.md §6 requires.
package main

import (
	"os"

	"github.com/sdecook/glox/cmd/glox/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
