package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/sdecook/glox/internal/ast"
	"github.com/sdecook/glox/internal/diagnostics"
	"github.com/sdecook/glox/internal/interp"
	"github.com/sdecook/glox/internal/parser"
	"github.com/sdecook/glox/internal/resolver"
	"github.com/sdecook/glox/internal/scanner"
	"github.com/sdecook/glox/internal/token"
)

// tracer is the --trace logger: a no-op slog.Logger discarding everything
// unless --trace was given, in which case it writes text-handler lines to
// stderr. Grounded on SPEC_FULL.md §6's ambient logging requirement.
func tracer() *slog.Logger {
	if !traceFlag {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func scanSource(src string, diags *diagnostics.Sink, log *slog.Logger) []token.Token {
	log.Debug("scanning")
	toks := scanner.New(src, diags).ScanTokens()
	log.Debug("scanned", "tokens", len(toks))
	return toks
}

func parseSource(toks []token.Token, diags *diagnostics.Sink, log *slog.Logger) *ast.Program {
	log.Debug("parsing")
	program := parser.New(toks, diags).Parse()
	log.Debug("parsed", "statements", len(program.Stmts))
	return program
}

func resolveProgram(program *ast.Program, diags *diagnostics.Sink, log *slog.Logger) resolver.Resolved {
	log.Debug("resolving")
	res := resolver.Resolve(program, diags)
	log.Debug("resolved", "bindings", len(res))
	return res
}

// run scans, parses, resolves, and evaluates src, writing `print` output to
// stdout and any diagnostics to stderr. It returns the exit-code error the
// CLI should surface (with its message already emitted), or nil on success.
func run(src string, stdout, stderr io.Writer, diags *diagnostics.Sink, log *slog.Logger, replEcho bool) error {
	toks := scanSource(src, diags, log)
	if diags.HadError() {
		return reportAndFail(diags, stderr, exitDataErr)
	}

	program := parseSource(toks, diags, log)
	if diags.HadError() {
		return reportAndFail(diags, stderr, exitDataErr)
	}

	resolved := resolveProgram(program, diags, log)
	if diags.HadError() {
		return reportAndFail(diags, stderr, exitDataErr)
	}

	in := interp.New(diags, resolved, stdout)
	in.SetREPLEcho(replEcho)
	log.Debug("evaluating")
	if err := in.Interpret(program); err != nil {
		io.WriteString(stderr, err.Error()+"\n")
		return &exitError{code: exitRuntimeErr, err: err, silent: true}
	}
	return nil
}

func reportAndFail(diags *diagnostics.Sink, stderr io.Writer, code int) error {
	diags.SortByLine()
	io.WriteString(stderr, diags.Render())
	return &exitError{code: code, err: errAlreadyReported, silent: true}
}
